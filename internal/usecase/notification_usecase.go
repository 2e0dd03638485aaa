package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Alfiasnyah78/labubu-projectv2/internal/domain"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/email"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/sanitize"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/validation"
)

type notificationUsecase struct {
	sender     email.Sender
	from       string
	adminEmail string
	log        *slog.Logger
}

// NewNotificationUsecase creates the dispatcher. fromAddr is the verified
// sender identity, adminEmail the default staff-alert recipient when the
// request names none; log is the side channel for swallowed
// secondary-delivery failures.
func NewNotificationUsecase(sender email.Sender, fromAddr, adminEmail string, log *slog.Logger) domain.NotificationUsecase {
	return &notificationUsecase{
		sender:     sender,
		from:       fromAddr,
		adminEmail: adminEmail,
		log:        log,
	}
}

// Dispatch validates, sanitizes, renders and delivers a notification.
// Validation stops at the first violated rule. Transport failures surface
// immediately; nothing is retried.
func (uc *notificationUsecase) Dispatch(ctx context.Context, n domain.Notification) (json.RawMessage, error) {
	switch v := n.(type) {
	case domain.ContactNotification:
		return uc.dispatchContact(ctx, v)
	case domain.StatusUpdateNotification:
		return uc.dispatchStatusUpdate(ctx, v)
	case domain.WelcomeNotification:
		return uc.dispatchWelcome(ctx, v)
	case domain.GenericNotification:
		return uc.dispatchGeneric(ctx, v)
	default:
		return nil, domain.ErrUnknownKind
	}
}

func (uc *notificationUsecase) dispatchContact(ctx context.Context, n domain.ContactNotification) (json.RawMessage, error) {
	if err := validateContact(n); err != nil {
		return nil, err
	}

	data := email.ContactEmailData{
		Name:     sanitize.EscapeHTML(n.Name),
		Email:    sanitize.EscapeHTML(n.Email),
		Phone:    sanitize.EscapeHTML(n.Phone),
		Company:  sanitize.EscapeHTML(n.Company),
		Service:  sanitize.EscapeHTML(n.Service),
		Message:  sanitize.EscapeHTML(n.Message),
		LandSize: sanitize.EscapeHTML(n.LandSize),
	}

	body, err := email.RenderContactConfirmation(data)
	if err != nil {
		return nil, err
	}

	// Transport addressing uses the original, unescaped address; the
	// escaped copy exists only inside rendered body content.
	resp, err := uc.sender.Send(ctx, email.Message{
		From:    uc.from,
		To:      []string{n.Email},
		Subject: fmt.Sprintf("Terima Kasih atas Pengajuan Anda - %s", data.Service),
		HTML:    body,
	})
	if err != nil {
		return nil, err
	}

	// Secondary staff alert: its failure is logged and discarded. The
	// customer already has their confirmation; staff plumbing must not
	// take that away.
	adminTo := n.AdminEmail
	if adminTo == "" {
		adminTo = uc.adminEmail
	}
	if adminTo != "" && validation.IsEmail(adminTo) {
		alert, renderErr := email.RenderAdminAlert(data)
		if renderErr != nil {
			uc.log.Error("failed to render admin notification", "error", renderErr)
			return resp, nil
		}
		if _, sendErr := uc.sender.Send(ctx, email.Message{
			From:    uc.from,
			To:      []string{adminTo},
			Subject: fmt.Sprintf("[Pengajuan Baru] %s - %s", data.Service, data.Name),
			HTML:    alert,
		}); sendErr != nil {
			uc.log.Error("failed to send admin notification", "error", sendErr, "admin_email", adminTo)
		} else {
			uc.log.Info("admin notification email sent")
		}
	}

	return resp, nil
}

func (uc *notificationUsecase) dispatchStatusUpdate(ctx context.Context, n domain.StatusUpdateNotification) (json.RawMessage, error) {
	if err := validateStatusUpdate(n); err != nil {
		return nil, err
	}

	data := email.StatusEmailData{
		Name:      sanitize.EscapeHTML(n.Name),
		Service:   sanitize.EscapeHTML(n.Service),
		OldStatus: sanitize.EscapeHTML(n.OldStatus),
		NewStatus: sanitize.EscapeHTML(n.NewStatus),
	}

	body, err := email.RenderStatusUpdate(data)
	if err != nil {
		return nil, err
	}

	return uc.sender.Send(ctx, email.Message{
		From:    uc.from,
		To:      []string{n.Email},
		Subject: fmt.Sprintf("Update Status Pengajuan - %s", data.Service),
		HTML:    body,
	})
}

func (uc *notificationUsecase) dispatchWelcome(ctx context.Context, n domain.WelcomeNotification) (json.RawMessage, error) {
	if err := validateWelcome(n); err != nil {
		return nil, err
	}

	body, err := email.RenderWelcome(email.WelcomeEmailData{
		Name: sanitize.EscapeHTML(n.Name),
	})
	if err != nil {
		return nil, err
	}

	return uc.sender.Send(ctx, email.Message{
		From:    uc.from,
		To:      []string{n.Email},
		Subject: "Selamat Datang di AlmondSense",
		HTML:    body,
	})
}

func (uc *notificationUsecase) dispatchGeneric(ctx context.Context, n domain.GenericNotification) (json.RawMessage, error) {
	if err := validateGeneric(n); err != nil {
		return nil, err
	}

	from := n.From
	if from == "" {
		from = uc.from
	}

	html := n.HTML
	if html == "" {
		html = sanitize.EscapeHTML(n.Text)
	}

	return uc.sender.Send(ctx, email.Message{
		From:    from,
		To:      n.To,
		Subject: sanitize.EscapeHTML(n.Subject),
		HTML:    html,
		ReplyTo: n.ReplyTo,
	})
}

// Validation rules run in a fixed order and report the first violation:
// presence, then email format, then phone format, then length ceilings
// (name, company, message, service, land size).

func validateContact(n domain.ContactNotification) error {
	if n.Name == "" || n.Email == "" || n.Phone == "" || n.Service == "" {
		return errors.New("Missing required fields: name, email, phone, service")
	}
	if !validation.IsEmail(n.Email) {
		return errors.New("Invalid email format")
	}
	if !validation.IsPhone(n.Phone) {
		return errors.New("Invalid phone format")
	}
	if !validation.WithinLimit(n.Name, validation.MaxNameLen) {
		return errors.New("Name too long (max 200 characters)")
	}
	if !validation.WithinLimit(n.Company, validation.MaxCompanyLen) {
		return errors.New("Company name too long (max 200 characters)")
	}
	if !validation.WithinLimit(n.Message, validation.MaxMessageLen) {
		return errors.New("Message too long (max 5000 characters)")
	}
	if !validation.WithinLimit(n.Service, validation.MaxServiceLen) {
		return errors.New("Service name too long (max 100 characters)")
	}
	if !validation.WithinLimit(n.LandSize, validation.MaxLandSizeLen) {
		return errors.New("Land size too long (max 100 characters)")
	}
	return nil
}

func validateStatusUpdate(n domain.StatusUpdateNotification) error {
	if n.Name == "" || n.Email == "" || n.Service == "" || n.NewStatus == "" {
		return errors.New("Missing required fields for status update")
	}
	if !validation.IsEmail(n.Email) {
		return errors.New("Invalid email format")
	}
	if !validation.WithinLimit(n.Name, validation.MaxNameLen) {
		return errors.New("Name too long (max 200 characters)")
	}
	return nil
}

func validateWelcome(n domain.WelcomeNotification) error {
	if n.Name == "" || n.Email == "" {
		return errors.New("Missing required fields for welcome email")
	}
	if !validation.IsEmail(n.Email) {
		return errors.New("Invalid email format")
	}
	if !validation.WithinLimit(n.Name, validation.MaxNameLen) {
		return errors.New("Name too long (max 200 characters)")
	}
	return nil
}

func validateGeneric(n domain.GenericNotification) error {
	if len(n.To) == 0 || n.Subject == "" {
		return errors.New("Missing required fields: to, subject")
	}
	for _, addr := range n.To {
		if !validation.IsEmail(addr) {
			return fmt.Errorf("Invalid email format: %s", addr)
		}
	}
	return nil
}
