package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/classboard/backend/internal/errorz"
	"github.com/classboard/backend/internal/model"
	"github.com/classboard/backend/internal/service"
)

type QuestionHandler struct {
	questions *service.QuestionService
	logger    *zap.Logger
}

func NewQuestionHandler(questions *service.QuestionService, logger *zap.Logger) *QuestionHandler {
	return &QuestionHandler{questions: questions, logger: logger}
}

type submitQuestionRequest struct {
	ClassID string `json:"classId"`
	Text    string `json:"text"`
	Author  string `json:"author"`
}

type setStatusRequest struct {
	Status string `json:"status"`
}

func (h *QuestionHandler) Submit(c *gin.Context) {
	var req submitQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, errorz.ErrInvalidInput)
		return
	}

	classID, err := parseUUID(req.ClassID)
	if err != nil {
		respondMessage(c, http.StatusBadRequest, "Invalid class ID format")
		return
	}

	question, err := h.questions.Submit(c.Request.Context(), classID, req.Text, req.Author)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusCreated, question)
}

func (h *QuestionHandler) ListByClass(c *gin.Context) {
	classID, ok := pathID(c, "classId")
	if !ok {
		return
	}

	questions, err := h.questions.List(c.Request.Context(), classID, c.Query("status"))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	// Keep the payload an array even for an empty board; pollers index into it.
	if questions == nil {
		questions = []*model.Question{}
	}

	respondList(c, questions, len(questions))
}

func (h *QuestionHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	question, err := h.questions.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, question)
}

func (h *QuestionHandler) SetStatus(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	var req setStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, h.logger, errorz.ErrInvalidStatus)
		return
	}

	question, err := h.questions.SetStatus(c.Request.Context(), id, model.QuestionStatus(req.Status), currentPrincipal(c))
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, question)
}

func (h *QuestionHandler) Delete(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}

	if err := h.questions.Delete(c.Request.Context(), id, currentPrincipal(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	respondData(c, http.StatusOK, gin.H{})
}

func (h *QuestionHandler) Clear(c *gin.Context) {
	classID, ok := pathID(c, "classId")
	if !ok {
		return
	}

	if err := h.questions.ClearBoard(c.Request.Context(), classID, currentPrincipal(c)); err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "message": "All questions cleared successfully"})
}
