package usecase_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/Alfiasnyah78/labubu-projectv2/internal/domain"
	"github.com/Alfiasnyah78/labubu-projectv2/internal/usecase"
	"github.com/Alfiasnyah78/labubu-projectv2/pkg/email"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// Mock Sender
type MockSender struct {
	mock.Mock
	sent []email.Message
}

func (m *MockSender) Send(ctx context.Context, msg email.Message) (json.RawMessage, error) {
	m.sent = append(m.sent, msg)
	args := m.Called(ctx, msg)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(json.RawMessage), args.Error(1)
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

const fromAddr = "AlmondSense <onboarding@resend.dev>"

func newDispatcher(sender email.Sender) domain.NotificationUsecase {
	return usecase.NewNotificationUsecase(sender, fromAddr, "", testLogger())
}

func validContact() domain.ContactNotification {
	return domain.ContactNotification{
		Name:    "Ana",
		Email:   "ana@x.com",
		Phone:   "08123456789",
		Service: "Land Clearing",
	}
}

func TestDispatchContactSendsConfirmation(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return(json.RawMessage(`{"id":"e-1"}`), nil)

	resp, err := newDispatcher(sender).Dispatch(context.Background(), validContact())

	require.NoError(t, err)
	assert.JSONEq(t, `{"id":"e-1"}`, string(resp))
	require.Len(t, sender.sent, 1, "no admin email was supplied, only the confirmation goes out")

	msg := sender.sent[0]
	assert.Equal(t, fromAddr, msg.From)
	assert.Equal(t, []string{"ana@x.com"}, msg.To)
	assert.Equal(t, "Terima Kasih atas Pengajuan Anda - Land Clearing", msg.Subject)
	assert.Contains(t, msg.HTML, "Ana")
	assert.Contains(t, msg.HTML, "Land Clearing")
}

func TestDispatchContactEscapesBodyNotRecipient(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return(json.RawMessage(`{}`), nil)

	contact := validContact()
	contact.Company = `<b>"Maju" & Co</b>`
	contact.Message = "<script>alert('x')</script>"

	_, err := newDispatcher(sender).Dispatch(context.Background(), contact)
	require.NoError(t, err)

	msg := sender.sent[0]
	assert.Equal(t, []string{"ana@x.com"}, msg.To, "original address is used for transport")
	assert.Contains(t, msg.HTML, "&lt;script&gt;alert(&#039;x&#039;)&lt;/script&gt;")
	assert.Contains(t, msg.HTML, "&lt;b&gt;&quot;Maju&quot; &amp; Co&lt;/b&gt;")
	assert.NotContains(t, msg.HTML, "<script")
}

func TestDispatchContactSendsSecondaryAdminAlert(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return(json.RawMessage(`{"id":"e-1"}`), nil)

	contact := validContact()
	contact.AdminEmail = "admin@x.com"

	_, err := newDispatcher(sender).Dispatch(context.Background(), contact)
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)

	assert.Equal(t, []string{"ana@x.com"}, sender.sent[0].To, "confirmation goes first")
	assert.Equal(t, []string{"admin@x.com"}, sender.sent[1].To)
	assert.Equal(t, "[Pengajuan Baru] Land Clearing - Ana", sender.sent[1].Subject)
}

func TestDispatchContactFallsBackToConfiguredAdminEmail(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return(json.RawMessage(`{"id":"e-1"}`), nil)

	uc := usecase.NewNotificationUsecase(sender, fromAddr, "staff@x.com", testLogger())

	_, err := uc.Dispatch(context.Background(), validContact())
	require.NoError(t, err)
	require.Len(t, sender.sent, 2)
	assert.Equal(t, []string{"staff@x.com"}, sender.sent[1].To, "configured address is used when the request names none")
}

func TestDispatchContactSkipsInvalidAdminEmail(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return(json.RawMessage(`{"id":"e-1"}`), nil)

	contact := validContact()
	contact.AdminEmail = "not-an-email"

	resp, err := newDispatcher(sender).Dispatch(context.Background(), contact)

	require.NoError(t, err, "a bad admin address never fails the request")
	assert.NotNil(t, resp)
	assert.Len(t, sender.sent, 1, "the admin alert is skipped, not attempted")
}

func TestDispatchContactSwallowsSecondaryFailure(t *testing.T) {
	sender := new(MockSender)
	// Primary succeeds, secondary blows up.
	sender.On("Send", mock.Anything, mock.MatchedBy(func(m email.Message) bool {
		return m.To[0] == "ana@x.com"
	})).Return(json.RawMessage(`{"id":"e-1"}`), nil)
	sender.On("Send", mock.Anything, mock.MatchedBy(func(m email.Message) bool {
		return m.To[0] == "admin@x.com"
	})).Return(nil, errors.New("Resend API error: boom"))

	contact := validContact()
	contact.AdminEmail = "admin@x.com"

	resp, err := newDispatcher(sender).Dispatch(context.Background(), contact)

	require.NoError(t, err, "secondary failure never surfaces")
	assert.JSONEq(t, `{"id":"e-1"}`, string(resp))
	assert.Len(t, sender.sent, 2, "the secondary was attempted")
}

func TestDispatchContactPrimaryFailureAborts(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return(nil, errors.New("Resend API error: invalid key"))

	contact := validContact()
	contact.AdminEmail = "admin@x.com"

	_, err := newDispatcher(sender).Dispatch(context.Background(), contact)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Resend API error")
	assert.Len(t, sender.sent, 1, "no secondary attempt after a failed primary")
}

func TestDispatchContactValidationOrder(t *testing.T) {
	long := func(n int) string { return strings.Repeat("x", n) }

	cases := []struct {
		name    string
		mutate  func(*domain.ContactNotification)
		wantErr string
	}{
		{"missing service", func(n *domain.ContactNotification) { n.Service = "" },
			"Missing required fields: name, email, phone, service"},
		{"missing name", func(n *domain.ContactNotification) { n.Name = "" },
			"Missing required fields: name, email, phone, service"},
		{"bad email", func(n *domain.ContactNotification) { n.Email = "nope" },
			"Invalid email format"},
		{"bad phone", func(n *domain.ContactNotification) { n.Phone = "abc" },
			"Invalid phone format"},
		{"name too long", func(n *domain.ContactNotification) { n.Name = long(201) },
			"Name too long (max 200 characters)"},
		{"company too long", func(n *domain.ContactNotification) { n.Company = long(201) },
			"Company name too long (max 200 characters)"},
		{"message too long", func(n *domain.ContactNotification) { n.Message = long(5001) },
			"Message too long (max 5000 characters)"},
		{"service too long", func(n *domain.ContactNotification) { n.Service = long(101) },
			"Service name too long (max 100 characters)"},
		{"land size too long", func(n *domain.ContactNotification) { n.LandSize = long(101) },
			"Land size too long (max 100 characters)"},
		// Name length is checked before company length
		{"first violation wins", func(n *domain.ContactNotification) {
			n.Name = long(201)
			n.Company = long(201)
		}, "Name too long (max 200 characters)"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			sender := new(MockSender)
			contact := validContact()
			tc.mutate(&contact)

			_, err := newDispatcher(sender).Dispatch(context.Background(), contact)

			require.Error(t, err)
			assert.Equal(t, tc.wantErr, err.Error())
			assert.Empty(t, sender.sent, "no delivery is attempted on validation failure")
		})
	}
}

func TestDispatchStatusUpdate(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return(json.RawMessage(`{}`), nil)

	_, err := newDispatcher(sender).Dispatch(context.Background(), domain.StatusUpdateNotification{
		Name:      "Budi",
		Email:     "budi@x.com",
		Service:   "Galian Tanah",
		OldStatus: "pending",
		NewStatus: "negosiasi",
	})
	require.NoError(t, err)

	msg := sender.sent[0]
	assert.Equal(t, "Update Status Pengajuan - Galian Tanah", msg.Subject)
	assert.Contains(t, msg.HTML, "Negosiasi")
}

func TestDispatchStatusUpdateUnknownStatusStillDelivers(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return(json.RawMessage(`{}`), nil)

	_, err := newDispatcher(sender).Dispatch(context.Background(), domain.StatusUpdateNotification{
		Name:      "Budi",
		Email:     "budi@x.com",
		Service:   "Galian Tanah",
		NewStatus: "on-hold",
	})

	require.NoError(t, err, "unknown statuses render with the fallback presentation")
	assert.Contains(t, sender.sent[0].HTML, "Status: on-hold")
}

func TestDispatchStatusUpdateMissingFields(t *testing.T) {
	sender := new(MockSender)
	_, err := newDispatcher(sender).Dispatch(context.Background(), domain.StatusUpdateNotification{
		Name:  "Budi",
		Email: "budi@x.com",
	})
	require.Error(t, err)
	assert.Equal(t, "Missing required fields for status update", err.Error())
}

func TestDispatchWelcome(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return(json.RawMessage(`{}`), nil)

	_, err := newDispatcher(sender).Dispatch(context.Background(), domain.WelcomeNotification{
		Name:  "Citra",
		Email: "citra@x.com",
	})
	require.NoError(t, err)

	msg := sender.sent[0]
	assert.Equal(t, "Selamat Datang di AlmondSense", msg.Subject)
	assert.Contains(t, msg.HTML, "Citra")
}

func TestDispatchGeneric(t *testing.T) {
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.AnythingOfType("email.Message")).
		Return(json.RawMessage(`{}`), nil)

	_, err := newDispatcher(sender).Dispatch(context.Background(), domain.GenericNotification{
		To:      []string{"ops@x.com"},
		Subject: `Laporan <mingguan>`,
		Text:    "semua & aman",
		ReplyTo: "noreply@x.com",
	})
	require.NoError(t, err)

	msg := sender.sent[0]
	assert.Equal(t, fromAddr, msg.From, "sender falls back to the configured identity")
	assert.Equal(t, "Laporan &lt;mingguan&gt;", msg.Subject)
	assert.Equal(t, "semua &amp; aman", msg.HTML, "text bodies are escaped when no html is given")
	assert.Equal(t, "noreply@x.com", msg.ReplyTo)
}

func TestDispatchGenericRejectsBadRecipient(t *testing.T) {
	sender := new(MockSender)
	_, err := newDispatcher(sender).Dispatch(context.Background(), domain.GenericNotification{
		To:      []string{"ok@x.com", "broken"},
		Subject: "s",
	})
	require.Error(t, err)
	assert.Equal(t, "Invalid email format: broken", err.Error())
	assert.Empty(t, sender.sent)
}

func TestDispatchGenericRequiresRecipientAndSubject(t *testing.T) {
	sender := new(MockSender)
	_, err := newDispatcher(sender).Dispatch(context.Background(), domain.GenericNotification{})
	require.Error(t, err)
	assert.Equal(t, "Missing required fields: to, subject", err.Error())
}
