package api

import (
	stderrors "errors"
	"net/http"
	"time"

	"study-tracker/internal/logger"
	"study-tracker/internal/session"
	"study-tracker/pkg/errors"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
)

const sessionKey = "session"

func CORSMiddleware(origins []string) gin.HandlerFunc {
	cfg := cors.Config{
		AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}
	if len(origins) == 0 {
		cfg.AllowAllOrigins = true
	} else {
		cfg.AllowOrigins = origins
	}
	return cors.New(cfg)
}

func LoggingMiddleware() gin.HandlerFunc {
	log := logger.For("http")
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		event := log.Info()
		if c.Writer.Status() >= http.StatusInternalServerError {
			event = log.Error()
		}
		event.
			Str("method", c.Request.Method).
			Str("path", c.Request.URL.Path).
			Int("status", c.Writer.Status()).
			Dur("latency", time.Since(start)).
			Msg("Request handled")
	}
}

func RecoveryMiddleware() gin.HandlerFunc {
	log := logger.For("http")
	return gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Error().
			Interface("panic", recovered).
			Str("path", c.Request.URL.Path).
			Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	})
}

// SessionMiddleware resumes the session named by the cookie. Requests
// without a stored session get a transient LoggedOut one; the cookie is set
// only at login.
func (h *Handler) SessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()

		id, _ := c.Cookie(h.cfg.Session.CookieName)
		sess, err := h.gate.Resume(ctx, id)
		if stderrors.Is(err, errors.ErrSessionNotFound) {
			sess, err = h.gate.Start(ctx)
		}
		if err != nil {
			h.log.Error().Err(err).Msg("Failed to load session")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
			return
		}

		c.Set(sessionKey, sess)
		c.Next()
	}
}

func (h *Handler) setSessionCookie(c *gin.Context, id string) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.cfg.Session.CookieName, id, int(h.cfg.Session.TTL.Seconds()),
		"/", "", h.cfg.Session.SecureCookie, true)
}

// RequireLogin stops requests whose session has not logged in.
func RequireLogin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if sess := currentSession(c); sess == nil || !sess.LoggedIn {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": errors.ErrNotLoggedIn.Error()})
			return
		}
		c.Next()
	}
}

func currentSession(c *gin.Context) *session.Session {
	v, ok := c.Get(sessionKey)
	if !ok {
		return nil
	}
	sess, _ := v.(*session.Session)
	return sess
}
