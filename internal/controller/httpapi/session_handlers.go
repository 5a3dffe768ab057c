package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/classboard/backend/internal/errorz"
	"github.com/classboard/backend/internal/model"
	"github.com/classboard/backend/internal/service"
)

type SessionHandler struct {
	sessions  *service.SessionService
	analytics *service.AnalyticsService
	logger    *zap.Logger
}

func NewSessionHandler(sessions *service.SessionService, analytics *service.AnalyticsService, logger *zap.Logger) *SessionHandler {
	return &SessionHandler{sessions: sessions, analytics: analytics, logger: logger}
}

type createSessionRequest struct {
	SubjectName       string `json:"subjectName"`
	DurationInMinutes int    `json:"durationInMinutes"`
}

type joinRequest struct {
	AccessCode string `json:"accessCode"`
}

func (h *SessionHandler) Create(c *gin.Context) {
	var req createSessionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, errorz.ErrInvalidInput)
		return
	}

	session, err := h.sessions.Create(c.Request.Context(), currentPrincipal(c), req.SubjectName, req.DurationInMinutes)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusCreated, session)
}

func (h *SessionHandler) ListOwn(c *gin.Context) {
	sessions, err := h.sessions.ListByInstructor(c.Request.Context(), currentPrincipal(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// Keep the payload an array even before the first session is created.
	if sessions == nil {
		sessions = []*model.ClassSession{}
	}

	respondList(c, sessions, len(sessions))
}

func (h *SessionHandler) Join(c *gin.Context) {
	var req joinRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.AccessCode == "" {
		respondMessage(c, http.StatusBadRequest, "Access code is required")
		return
	}

	info, err := h.sessions.Join(c.Request.Context(), req.AccessCode)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, info)
}

func (h *SessionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	session, err := h.sessions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, session)
}

func (h *SessionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.sessions.Delete(c.Request.Context(), id, currentPrincipal(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{})
}

func (h *SessionHandler) Analytics(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	// Make sure the session exists before aggregating over it; an unknown id
	// should be a 404, not a board of zeroes.
	if _, err := h.sessions.Get(c.Request.Context(), id); err != nil {
		respondError(c, h.logger, err)
		return
	}

	snapshot, err := h.analytics.Snapshot(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, snapshot)
}

// pathID parses a uuid path parameter, writing the 400 itself on failure.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid id format")
		return uuid.Nil, false
	}
	return id, true
}
