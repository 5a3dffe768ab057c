package model

import (
	"time"

	"github.com/google/uuid"
)

// AccessCodeLength is the length of the code students type to join a class.
const AccessCodeLength = 6

// ClassSession represents a single time-boxed class meeting. Whether a
// session is still running is derived from EndTime on every read; there is
// no stored "ended" flag that could drift from the clock.
type ClassSession struct {
	ID              uuid.UUID `json:"_id"`
	SubjectName     string    `json:"subjectName"`
	InstructorID    uuid.UUID `json:"instructorId"`
	InstructorName  string    `json:"instructorName"`
	AccessCode      string    `json:"accessCode"`
	DurationMinutes int       `json:"durationInMinutes"`
	StartTime       time.Time `json:"startTime"`
	EndTime         time.Time `json:"endTime"`
	CreatedAt       time.Time `json:"createdAt"`
}

// Active reports whether the session still accepts writes at the given
// instant. Once false for some instant it stays false for every later one.
func (s *ClassSession) Active(now time.Time) bool {
	return !now.After(s.EndTime)
}

// OwnedBy reports whether the given instructor created this session.
func (s *ClassSession) OwnedBy(instructorID uuid.UUID) bool {
	return s.InstructorID == instructorID
}

// JoinInfo is what a student gets back when resolving an access code.
type JoinInfo struct {
	ClassID        uuid.UUID `json:"classId"`
	SubjectName    string    `json:"subjectName"`
	InstructorName string    `json:"instructorName"`
	EndTime        time.Time `json:"endTime"`
}
