package session

import (
	"crypto/rand"
	"encoding/hex"
	"time"

	"study-tracker/internal/model"
)

// Session is the per-browser login state handed to every view handler.
// It starts LoggedOut; LoggedIn lasts until the session expires.
type Session struct {
	ID        string            `json:"id"`
	LoggedIn  bool              `json:"logged_in"`
	UserName  string            `json:"user_name"`
	Goals     model.WeeklyGoals `json:"goals"`
	CreatedAt time.Time         `json:"created_at"`
}

func New() (*Session, error) {
	id, err := newID()
	if err != nil {
		return nil, err
	}
	return &Session{ID: id, CreatedAt: time.Now().UTC()}, nil
}

// Reset drops the user and goal snapshot, keeping the id.
func (s *Session) Reset() {
	s.LoggedIn = false
	s.UserName = ""
	s.Goals = model.WeeklyGoals{}
}

func (s *Session) authenticate(student model.Student) {
	s.LoggedIn = true
	s.UserName = student.Name
	s.Goals = student.Goals
}

// rotate replaces the id, so an id issued before login is useless after it.
func (s *Session) rotate() error {
	id, err := newID()
	if err != nil {
		return err
	}
	s.ID = id
	return nil
}

// 32 random bytes, hex encoded.
func newID() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
