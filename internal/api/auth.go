package api

import (
	stderrors "errors"
	"net/http"

	"study-tracker/internal/model"
	"study-tracker/internal/session"
	"study-tracker/pkg/errors"

	"github.com/gin-gonic/gin"
)

type MenuItem struct {
	Key   string `json:"key"`
	Title string `json:"title"`
	Path  string `json:"path"`
}

var menu = []MenuItem{
	{Key: "daily", Title: "Today's study", Path: "/api/v1/daily"},
	{Key: "homework", Title: "Homework check", Path: "/api/v1/homework"},
	{Key: "exams", Title: "Vocabulary tests", Path: "/api/v1/exams"},
	{Key: "report", Title: "Weekly/monthly report", Path: "/api/v1/report"},
	{Key: "archive", Title: "Archive", Path: "/api/v1/archive"},
}

func (h *Handler) Menu(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"items": menu})
}

func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request body"})
		return
	}

	sess := currentSession(c)
	if err := h.gate.Login(c.Request.Context(), sess, req.Password); err != nil {
		if stderrors.Is(err, errors.ErrIncorrectPassword) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
			return
		}
		h.storeFailure(c, err, "Failed to log in")
		return
	}

	h.setSessionCookie(c, sess.ID)
	c.JSON(http.StatusOK, sessionView(sess))
}

func (h *Handler) Session(c *gin.Context) {
	c.JSON(http.StatusOK, sessionView(currentSession(c)))
}

func sessionView(sess *session.Session) gin.H {
	return gin.H{
		"logged_in": sess.LoggedIn,
		"user_name": sess.UserName,
		"goals":     sess.Goals,
	}
}
