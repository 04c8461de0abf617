package handler

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
)

// Notifications queues transactional email.
type Notifications interface {
	VerificationEmail(to, firstName, code string)
	LoginNotification(to, firstName string)
}

// NotificationHandler exposes the mail templates for callers that send
// their own notifications. Delivery is asynchronous: 202 means queued.
type NotificationHandler struct {
	notify Notifications
}

// NewNotificationHandler returns handlers for the raw mail endpoints.
func NewNotificationHandler(notify Notifications) *NotificationHandler {
	return &NotificationHandler{notify: notify}
}

// SendVerification handles POST /send-verification-email. The email is
// queued and the request answered with 202 before delivery is attempted.
func (h *NotificationHandler) SendVerification(c echo.Context) error {
	var req sendVerificationReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	h.notify.VerificationEmail(req.Email, strings.TrimSpace(req.FirstName), req.Code)
	return c.JSON(http.StatusAccepted, echo.Map{"success": true})
}

// SendLogin handles POST /send-login-notification. Like SendVerification
// it only queues the message.
func (h *NotificationHandler) SendLogin(c echo.Context) error {
	var req sendLoginReq
	if err := c.Bind(&req); err != nil {
		return fail(c, http.StatusBadRequest, "Invalid request body")
	}
	req.Email = strings.TrimSpace(req.Email)
	if err := req.Validate(); err != nil {
		return fail(c, http.StatusBadRequest, err.Error())
	}
	h.notify.LoginNotification(req.Email, strings.TrimSpace(req.FirstName))
	return c.JSON(http.StatusAccepted, echo.Map{"success": true})
}
