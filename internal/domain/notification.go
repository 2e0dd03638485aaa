package domain

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// NotificationKind discriminates the payload shape and template of a
// notification request.
type NotificationKind string

const (
	KindContact      NotificationKind = "contact"
	KindStatusUpdate NotificationKind = "status_update"
	KindWelcome      NotificationKind = "welcome"
	KindGeneric      NotificationKind = "generic"
)

// Notification is the sum type over the four request variants. Exactly one
// concrete variant backs a value; fields of other variants do not exist on it.
type Notification interface {
	Kind() NotificationKind
}

// ContactNotification is a lead-intake form submission: a confirmation for
// the customer plus an optional alert to staff.
type ContactNotification struct {
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone"`
	Company    string `json:"company,omitempty"`
	Service    string `json:"service"`
	Message    string `json:"message,omitempty"`
	LandSize   string `json:"landSize,omitempty"`
	AdminEmail string `json:"adminEmail,omitempty"`
}

func (ContactNotification) Kind() NotificationKind { return KindContact }

// StatusUpdateNotification informs a customer their submission moved to a
// new workflow status.
type StatusUpdateNotification struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Service   string `json:"service"`
	OldStatus string `json:"oldStatus,omitempty"`
	NewStatus string `json:"newStatus"`
}

func (StatusUpdateNotification) Kind() NotificationKind { return KindStatusUpdate }

// WelcomeNotification greets a newly registered user.
type WelcomeNotification struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

func (WelcomeNotification) Kind() NotificationKind { return KindWelcome }

// GenericNotification is a pass-through email with caller-supplied content.
type GenericNotification struct {
	To      []string `json:"-"`
	Subject string   `json:"subject"`
	HTML    string   `json:"html,omitempty"`
	Text    string   `json:"text,omitempty"`
	From    string   `json:"from,omitempty"`
	ReplyTo string   `json:"replyTo,omitempty"`
}

func (GenericNotification) Kind() NotificationKind { return KindGeneric }

// ErrUnknownKind is returned when the discriminant names no known variant.
var ErrUnknownKind = errors.New("Invalid email type")

// ParseNotification decodes a request body discriminant-first: the "type"
// field selects the variant, then only that variant's fields are decoded.
// A body without a "type" field is a generic email. An unrecognized
// discriminant fails closed.
func ParseNotification(body []byte) (Notification, error) {
	var probe struct {
		Type *string `json:"type"`
	}
	if err := json.Unmarshal(body, &probe); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	if probe.Type == nil {
		return parseGeneric(body)
	}

	switch NotificationKind(*probe.Type) {
	case KindContact:
		var n ContactNotification
		if err := json.Unmarshal(body, &n); err != nil {
			return nil, fmt.Errorf("invalid contact payload: %w", err)
		}
		return n, nil
	case KindStatusUpdate:
		var n StatusUpdateNotification
		if err := json.Unmarshal(body, &n); err != nil {
			return nil, fmt.Errorf("invalid status update payload: %w", err)
		}
		return n, nil
	case KindWelcome:
		var n WelcomeNotification
		if err := json.Unmarshal(body, &n); err != nil {
			return nil, fmt.Errorf("invalid welcome payload: %w", err)
		}
		return n, nil
	default:
		return nil, ErrUnknownKind
	}
}

func parseGeneric(body []byte) (Notification, error) {
	// "to" accepts a single address or a list.
	var raw struct {
		To      json.RawMessage `json:"to"`
		Subject string          `json:"subject"`
		HTML    string          `json:"html"`
		Text    string          `json:"text"`
		From    string          `json:"from"`
		ReplyTo string          `json:"replyTo"`
	}
	if err := json.Unmarshal(body, &raw); err != nil {
		return nil, fmt.Errorf("invalid request body: %w", err)
	}

	n := GenericNotification{
		Subject: raw.Subject,
		HTML:    raw.HTML,
		Text:    raw.Text,
		From:    raw.From,
		ReplyTo: raw.ReplyTo,
	}

	if len(raw.To) > 0 {
		var single string
		if err := json.Unmarshal(raw.To, &single); err == nil {
			n.To = []string{single}
		} else if err := json.Unmarshal(raw.To, &n.To); err != nil {
			return nil, fmt.Errorf("invalid recipient list: %w", err)
		}
	}

	return n, nil
}

// NotificationUsecase dispatches a notification end to end: validation,
// sanitization, rendering and delivery.
type NotificationUsecase interface {
	// Dispatch returns the transport's response payload on success.
	Dispatch(ctx context.Context, n Notification) (json.RawMessage, error)
}
