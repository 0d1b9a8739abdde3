package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/vhvplatform/go-permit-notification-service/internal/domain"
	"github.com/vhvplatform/go-permit-notification-service/internal/service"
	"github.com/vhvplatform/go-permit-notification-service/internal/shared/errors"
	"github.com/vhvplatform/go-permit-notification-service/internal/shared/logger"
)

// NotifyHandler handles the notification endpoints.
type NotifyHandler struct {
	dispatcher *service.Dispatcher
	log        *logger.Logger
}

// NewNotifyHandler creates a new notification handler.
func NewNotifyHandler(dispatcher *service.Dispatcher, log *logger.Logger) *NotifyHandler {
	return &NotifyHandler{
		dispatcher: dispatcher,
		log:        log,
	}
}

// PermitSubmission handles POST /api/notify/permit-submission.
func (h *NotifyHandler) PermitSubmission(c *gin.Context) {
	var req domain.SubmissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	outcome, err := h.dispatcher.DispatchSubmission(c.Request.Context(), &req)
	h.respond(c, "submission notification", outcome, err)
}

// Comment handles POST /api/notify/comment.
func (h *NotifyHandler) Comment(c *gin.Context) {
	var req domain.CommentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	outcome, err := h.dispatcher.DispatchComment(c.Request.Context(), &req)
	h.respond(c, "comment notification", outcome, err)
}

// Approval handles POST /api/notify/approval.
func (h *NotifyHandler) Approval(c *gin.Context) {
	var req domain.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Invalid request body"})
		return
	}

	outcome, err := h.dispatcher.DispatchApproval(c.Request.Context(), &req)
	h.respond(c, "approval notification", outcome, err)
}

// respond maps a dispatch result onto the wire. Validation failures are 400,
// anything else unexpected is 500, and a settled fan-out is 200 even when
// some recipients failed.
func (h *NotifyHandler) respond(c *gin.Context, what string, outcome domain.DispatchOutcome, err error) {
	if err != nil {
		if errors.IsValidation(err) {
			message := err.Error()
			var appErr *errors.AppError
			if stderrors.As(err, &appErr) {
				message = appErr.Message
			}
			c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": message})
			return
		}

		h.log.Error("Notification dispatch failed", "what", what, "error", err)
		message := err.Error()
		if message == "" {
			message = "Unknown error"
		}
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": message})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": fmt.Sprintf("Sent %s to %d of %d recipients", what, outcome.Sent, outcome.Total),
		"sentTo":  outcome.Sent,
		"failed":  outcome.Failed,
	})
}
