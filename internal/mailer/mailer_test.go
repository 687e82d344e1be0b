package mailer

import (
	"errors"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"

	"github.com/reportpilot/internal/logger"
	"github.com/reportpilot/internal/models"
)

type captureSender struct {
	messages []*gomail.Message
	err      error
}

func (c *captureSender) DialAndSend(m ...*gomail.Message) error {
	if c.err != nil {
		return c.err
	}
	c.messages = append(c.messages, m...)
	return nil
}

func testSettings() *models.Settings {
	return &models.Settings{
		SMTPServer:   "smtp.example.com",
		SMTPPort:     587,
		SMTPUser:     "bot@example.com",
		SMTPPassword: "secret",
	}
}

func newTestMailer(sender Sender) *Mailer {
	return NewWithDialer(logger.Nop(), func(*models.Settings) Sender { return sender })
}

func TestFilterAddresses(t *testing.T) {
	got := FilterAddresses([]string{"a@x.com", "  b@y.com ", "sin-arroba", "", "  "})
	assert.Equal(t, []string{"a@x.com", "b@y.com"}, got)
}

func TestSplitAddressList(t *testing.T) {
	got := SplitAddressList(" a@x.com, b@y.com ,, c@z.com ")
	assert.Equal(t, []string{"a@x.com", "b@y.com", "c@z.com"}, got)
}

func TestSendNoValidRecipientsIsNoop(t *testing.T) {
	sender := &captureSender{}
	m := newTestMailer(sender)

	sent, err := m.Send(testSettings(), []string{"sin-arroba", ""}, nil, "s", "b", false, nil, nil)
	require.NoError(t, err)
	assert.False(t, sent)
	assert.Empty(t, sender.messages)
}

func TestSendFiltersInvalidAddresses(t *testing.T) {
	sender := &captureSender{}
	m := newTestMailer(sender)

	sent, err := m.Send(testSettings(), []string{"a@x.com", "basura"}, []string{"c@z.com", "mala"}, "s", "b", true, nil, nil)
	require.NoError(t, err)
	assert.True(t, sent)
	require.Len(t, sender.messages, 1)

	msg := sender.messages[0]
	assert.Equal(t, []string{"a@x.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"c@z.com"}, msg.GetHeader("Cc"))
}

func TestSendIncompleteSMTPConfig(t *testing.T) {
	m := newTestMailer(&captureSender{})

	sent, err := m.Send(&models.Settings{}, []string{"a@x.com"}, nil, "s", "b", false, nil, nil)
	assert.False(t, sent)
	assert.ErrorIs(t, err, ErrTransport)
}

func TestSendAuthFailureClassified(t *testing.T) {
	sender := &captureSender{err: &textproto.Error{Code: 535, Msg: "5.7.8 bad credentials"}}
	m := newTestMailer(sender)

	sent, err := m.Send(testSettings(), []string{"a@x.com"}, nil, "s", "b", false, nil, nil)
	assert.False(t, sent)
	assert.ErrorIs(t, err, ErrTransportAuth)
}

func TestSendTransportFailureClassified(t *testing.T) {
	sender := &captureSender{err: errors.New("connection refused")}
	m := newTestMailer(sender)

	sent, err := m.Send(testSettings(), []string{"a@x.com"}, nil, "s", "b", false, nil, nil)
	assert.False(t, sent)
	assert.ErrorIs(t, err, ErrTransport)
	assert.NotErrorIs(t, err, ErrTransportAuth)
}

func TestSendSkipsEmptyInlineImage(t *testing.T) {
	sender := &captureSender{}
	m := newTestMailer(sender)

	images := []InlineImage{
		{CID: "vacia", Content: nil},
		{CID: "llena", Content: []byte{0x89, 0x50}},
	}
	sent, err := m.Send(testSettings(), []string{"a@x.com"}, nil, "s", "<p>hola</p>", true, nil, images)
	require.NoError(t, err)
	assert.True(t, sent)
}

func TestSmtpDialerTLSMode(t *testing.T) {
	settings := testSettings()
	settings.SMTPPort = 465
	d, ok := smtpDialer(settings).(*gomail.Dialer)
	require.True(t, ok)
	assert.True(t, d.SSL)

	settings.SMTPPort = 587
	d = smtpDialer(settings).(*gomail.Dialer)
	assert.False(t, d.SSL)
}

func TestSmtpDialerCredentialsOnlyWhenPasswordSet(t *testing.T) {
	settings := testSettings()
	settings.SMTPPassword = ""
	d := smtpDialer(settings).(*gomail.Dialer)
	assert.Empty(t, d.Username)
	assert.Empty(t, d.Password)

	settings.SMTPPassword = "secret"
	d = smtpDialer(settings).(*gomail.Dialer)
	assert.Equal(t, "bot@example.com", d.Username)
	assert.Equal(t, "secret", d.Password)
}
