package session

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"study-tracker/internal/logger"
	"study-tracker/internal/model"
	"study-tracker/pkg/errors"

	"github.com/rs/zerolog"
)

// StudentSource finds the first student whose stored password equals the
// given text.
type StudentSource interface {
	StudentByPassword(ctx context.Context, password string) (model.Student, bool, error)
}

// Gate authenticates sessions against the Students table. Passwords are
// compared as plain text; this is a convenience lock, not a security
// boundary.
type Gate struct {
	students StudentSource
	store    Store
	log      zerolog.Logger
}

func NewGate(students StudentSource, store Store) *Gate {
	return &Gate{
		students: students,
		store:    store,
		log:      logger.For("session"),
	}
}

// Start creates a LoggedOut session. It is not persisted; only a successful
// login stores a session.
func (g *Gate) Start(ctx context.Context) (*Session, error) {
	sess, err := New()
	if err != nil {
		return nil, fmt.Errorf("failed to create session: %w", err)
	}
	return sess, nil
}

func (g *Gate) Resume(ctx context.Context, id string) (*Session, error) {
	if id == "" {
		return nil, errors.ErrSessionNotFound
	}
	return g.store.Load(ctx, id)
}

// Login logs the session in as the first student whose password matches and
// gives it a fresh id. A LoggedIn session is left as it is.
func (g *Gate) Login(ctx context.Context, sess *Session, password interface{}) error {
	if sess.LoggedIn {
		return nil
	}

	student, found, err := g.students.StudentByPassword(ctx, PasswordText(password))
	if err != nil {
		return err
	}
	if !found {
		g.log.Warn().Msg("Login rejected")
		return errors.ErrIncorrectPassword
	}

	if err := sess.rotate(); err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	sess.authenticate(student)
	if err := g.store.Save(ctx, sess); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	g.log.Info().Str("user", student.Name).Msg("Logged in")
	return nil
}

// PasswordText renders a submitted password the way the sheet stores it, so
// the number 123 and the string "123" compare the same.
func PasswordText(v interface{}) string {
	switch p := v.(type) {
	case nil:
		return ""
	case string:
		return p
	case json.Number:
		return p.String()
	case float64:
		return strconv.FormatFloat(p, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(p), 'f', -1, 32)
	case int:
		return strconv.Itoa(p)
	case int64:
		return strconv.FormatInt(p, 10)
	default:
		return fmt.Sprint(p)
	}
}
