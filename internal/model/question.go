package model

import (
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
)

type QuestionStatus string

const (
	QuestionStatusPending   QuestionStatus = "pending"
	QuestionStatusAnswered  QuestionStatus = "answered"
	QuestionStatusImportant QuestionStatus = "important"
)

// Valid reports whether the status is one of the three known values.
func (s QuestionStatus) Valid() bool {
	switch s {
	case QuestionStatusPending, QuestionStatusAnswered, QuestionStatusImportant:
		return true
	}
	return false
}

const (
	// MaxQuestionLength caps the trimmed question text, counted in runes.
	MaxQuestionLength = 500

	// DefaultAuthor is used when a student submits without a name.
	DefaultAuthor = "Anonymous Student"
)

// StickyColors is the fixed palette sticky notes are drawn from. The color is
// cosmetic only, picked uniformly at submission time.
var StickyColors = []string{
	"#FFE135", "#FF6B6B", "#4ECDC4", "#45B7D1",
	"#96CEB4", "#FFEAA7", "#DDA0DD", "#98D8C8",
}

// RandomStickyColor picks a palette color for a new question.
func RandomStickyColor() string {
	return StickyColors[rand.IntN(len(StickyColors))]
}

// Question is a student-submitted sticky note attached to a class session.
// SubjectName and InstructorName are denormalized from the owning session at
// read time for display.
type Question struct {
	ID             uuid.UUID      `json:"_id"`
	ClassID        uuid.UUID      `json:"classId"`
	Text           string         `json:"text"`
	Author         string         `json:"author"`
	Color          string         `json:"color"`
	Status         QuestionStatus `json:"status"`
	CreatedAt      time.Time      `json:"createdAt"`
	SubjectName    string         `json:"subjectName,omitempty"`
	InstructorName string         `json:"instructorName,omitempty"`
}

// BoardSnapshot holds the aggregate counts for one session's board, computed
// at the moment the session is first seen ended or right before the board is
// cleared. It survives the questions it was computed from.
type BoardSnapshot struct {
	ClassID        uuid.UUID `json:"classId"`
	TotalQuestions int       `json:"totalQuestions"`
	Answered       int       `json:"answered"`
	Unanswered     int       `json:"unanswered"`
	Important      int       `json:"important"`
	CreatedAt      time.Time `json:"createdAt"`
}
