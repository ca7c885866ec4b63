package business

import (
	"context"
	"errors"
	"net/smtp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/common/model"
	"printshop/pkg/errorutil"
	"printshop/pkg/logger"
)

type fakeMailer struct {
	sent []*Mail
	err  error
}

func (f *fakeMailer) Send(_ context.Context, m *Mail) error {
	f.sent = append(f.sent, m)
	return f.err
}

type fakeEvents struct {
	events []*model.NotificationEvent
	err    error
}

func (f *fakeEvents) PublishNotificationEvent(_ context.Context, e *model.NotificationEvent) error {
	f.events = append(f.events, e)
	return f.err
}

func notification() *model.OrderNotification {
	return &model.OrderNotification{
		OrderNo:      "PS-1",
		Email:        "jo@example.com",
		Name:         "Jo",
		Size:         `8"x10"`,
		Paper:        "100lb Matte",
		Color:        "white",
		Finish:       "matte",
		Quantity:     10,
		DPI:          300,
		Quality:      "high",
		Total:        "$22.50",
		PricePerUnit: "2.25",
		Artwork:      "art.png",
	}
}

func newService(m Mailer, e EventPublisher) *NotificationService {
	s := NewNotificationService(m, e, "Print Shop", logger.NewNop())
	s.now = func() time.Time { return time.Unix(1700000000, 0) }
	return s
}

func TestDeliverSendsMailAndPublishesSent(t *testing.T) {
	mailer, events := &fakeMailer{}, &fakeEvents{}

	require.NoError(t, newService(mailer, events).Deliver(context.Background(), notification()))

	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "jo@example.com", mailer.sent[0].To)
	assert.Equal(t, "Print Shop: order PS-1 accepted", mailer.sent[0].Subject)
	assert.Contains(t, mailer.sent[0].Body, "Total:     $22.50")
	assert.Contains(t, mailer.sent[0].Body, "Hi Jo,")

	require.Len(t, events.events, 1)
	assert.Equal(t, &model.NotificationEvent{
		OrderNo:   "PS-1",
		Email:     "jo@example.com",
		Status:    model.NotificationStatusSent,
		Timestamp: 1700000000,
	}, events.events[0])
}

func TestDeliverRetryableFailurePublishesNothing(t *testing.T) {
	mailer := &fakeMailer{err: errorutil.Retriable("smtp timeout")}
	events := &fakeEvents{}

	err := newService(mailer, events).Deliver(context.Background(), notification())
	require.Error(t, err)
	assert.True(t, errorutil.IsRetryable(err))
	assert.Empty(t, events.events)
}

func TestDeliverPermanentFailurePublishesFailed(t *testing.T) {
	mailer := &fakeMailer{err: errorutil.NonRetriable("550 mailbox unavailable")}
	events := &fakeEvents{}

	err := newService(mailer, events).Deliver(context.Background(), notification())
	require.Error(t, err)
	assert.False(t, errorutil.IsRetryable(err))

	require.Len(t, events.events, 1)
	assert.Equal(t, model.NotificationStatusFailed, events.events[0].Status)
	assert.Equal(t, "550 mailbox unavailable", events.events[0].Error)
}

func TestDeliverIgnoresEventFailuresAndNilPublisher(t *testing.T) {
	assert.NoError(t, newService(&fakeMailer{}, &fakeEvents{err: errors.New("redis down")}).
		Deliver(context.Background(), notification()))
	assert.NoError(t, newService(&fakeMailer{}, nil).Deliver(context.Background(), notification()))
}

func TestDeliverValidatesInput(t *testing.T) {
	n := notification()
	n.Email = ""
	err := newService(&fakeMailer{}, nil).Deliver(context.Background(), n)
	require.Error(t, err)
	assert.False(t, errorutil.IsRetryable(err))
}

func TestSMTPMailer(t *testing.T) {
	m := NewSMTPMailer(SMTPConfig{Host: "mail.local", Port: 2525, From: "orders@shop"})

	var gotAddr string
	var gotMsg []byte
	m.send = func(addr string, _ smtp.Auth, _ string, to []string, msg []byte) error {
		gotAddr, gotMsg = addr, msg
		return nil
	}
	require.NoError(t, m.Send(context.Background(), &Mail{To: "jo@example.com", Subject: "Hi", Body: "a\nb"}))
	assert.Equal(t, "mail.local:2525", gotAddr)
	assert.True(t, strings.HasPrefix(string(gotMsg), "From: orders@shop\r\nTo: jo@example.com\r\nSubject: Hi\r\n"))
	assert.True(t, strings.HasSuffix(string(gotMsg), "a\r\nb"))

	m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("dial tcp: refused") }
	assert.True(t, errorutil.IsRetryable(m.Send(context.Background(), &Mail{To: "x@y"})))

	m.send = func(string, smtp.Auth, string, []string, []byte) error { return errors.New("550 mailbox unavailable") }
	err := m.Send(context.Background(), &Mail{To: "x@y"})
	require.Error(t, err)
	assert.False(t, errorutil.IsRetryable(err))
}
