package api

import (
	stderrors "errors"
	"net/http"
	"time"

	"study-tracker/internal/config"
	"study-tracker/internal/db"
	"study-tracker/internal/logger"
	"study-tracker/internal/queue"
	"study-tracker/internal/session"
	"study-tracker/internal/summary"
	"study-tracker/pkg/errors"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// Handler serves one view per menu destination. Every request re-reads the
// tables it needs; nothing is cached between requests.
type Handler struct {
	repo     db.Repository
	gate     *session.Gate
	summary  *summary.Service
	producer *queue.Producer
	cfg      *config.Config
	loc      *time.Location
	now      func() time.Time
	log      zerolog.Logger
}

// NewHandler accepts a nil producer; summary requests then run inline.
func NewHandler(
	cfg *config.Config,
	loc *time.Location,
	repo db.Repository,
	gate *session.Gate,
	summaryService *summary.Service,
	producer *queue.Producer,
) *Handler {
	return &Handler{
		repo:     repo,
		gate:     gate,
		summary:  summaryService,
		producer: producer,
		cfg:      cfg,
		loc:      loc,
		now:      time.Now,
		log:      logger.For("api"),
	}
}

func (h *Handler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "healthy",
		"service": h.cfg.App.Name,
		"version": h.cfg.App.Version,
	})
}

func (h *Handler) today() time.Time {
	return h.now().In(h.loc)
}

// storeFailure answers a failed store read or write. Malformed stored data
// fails only the current request.
func (h *Handler) storeFailure(c *gin.Context, err error, msg string) {
	var verr errors.ValidationError
	switch {
	case stderrors.As(err, &verr):
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg("Malformed stored data")
		c.JSON(http.StatusInternalServerError, gin.H{"error": verr.Error()})
	case errors.IsRetryable(err):
		h.log.Warn().Err(err).Str("path", c.FullPath()).Msg(msg)
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Record store unavailable, try again"})
	default:
		h.log.Error().Err(err).Str("path", c.FullPath()).Msg(msg)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
