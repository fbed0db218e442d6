package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/chatcode-io/auth-service/internal/logger"
	"github.com/chatcode-io/auth-service/internal/mailer"
)

// ContactHandler relays contact-form submissions to the admin mailbox.
type ContactHandler struct {
	mail mailer.Mailer
	log  *logger.Logger
}

// NewContactHandler creates a new ContactHandler instance.
func NewContactHandler(mail mailer.Mailer, log *logger.Logger) *ContactHandler {
	return &ContactHandler{mail: mail, log: log}
}

// ContactRequest represents a contact-form submission.
type ContactRequest struct {
	Name    string `json:"name" binding:"required"`
	Email   string `json:"email" binding:"required,email"`
	Message string `json:"message" binding:"required"`
}

// Send forwards the submission by mail.
func (h *ContactHandler) Send(c *gin.Context) {
	var req ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.mail.SendContact(req.Name, req.Email, req.Message); err != nil {
		LogAndRespondError(c, h.log, http.StatusInternalServerError, err, "Failed to send email")
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
