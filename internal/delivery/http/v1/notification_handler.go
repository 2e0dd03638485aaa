package v1

import (
	"io"
	"net/http"

	"github.com/Alfiasnyah78/labubu-projectv2/internal/delivery/http/response"
	"github.com/Alfiasnyah78/labubu-projectv2/internal/domain"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type NotificationHandler struct {
	notificationUC domain.NotificationUsecase
}

// NewNotificationHandler registers the email dispatch route (public, no auth required)
func NewNotificationHandler(public *gin.RouterGroup, notificationUC domain.NotificationUsecase) {
	handler := &NotificationHandler{
		notificationUC: notificationUC,
	}

	// Public Routes - NO authentication required, rate limited upstream
	public.POST("/send-email", handler.SendEmail)
}

// SendEmail godoc
// @Summary      Dispatch a transactional email
// @Description  Accepts a contact confirmation, status update, welcome, or generic email request and delivers it. This is a public endpoint.
// @Tags         email
// @Accept       json
// @Produce      json
// @Param        notification  body      object  true  "Email request, discriminated by the 'type' field"
// @Success      200           {object}  response.Response
// @Failure      429           {object}  response.Response
// @Failure      500           {object}  response.Response
// @Router       /send-email [post]
func (h *NotificationHandler) SendEmail(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, "Failed to read request body", err))
		return
	}

	notification, err := domain.ParseNotification(body)
	if err != nil {
		// The frontend surfaces the error string verbatim, so every
		// rejection here reports with its original message.
		c.Error(apperror.New(http.StatusInternalServerError, err.Error(), err))
		return
	}

	result, err := h.notificationUC.Dispatch(c.Request.Context(), notification)
	if err != nil {
		c.Error(apperror.New(http.StatusInternalServerError, err.Error(), err))
		return
	}

	response.Success(c, http.StatusOK, result)
}
