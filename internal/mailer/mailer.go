package mailer

import (
	"errors"
	"fmt"
	"io"
	"net/textproto"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"

	"github.com/reportpilot/internal/logger"
	"github.com/reportpilot/internal/models"
)

var (
	// ErrTransportAuth marks SMTP authentication failures; retrying
	// with the same credential will not help.
	ErrTransportAuth = errors.New("smtp authentication failed")
	// ErrTransport marks any other transport failure.
	ErrTransport = errors.New("smtp transport failed")
)

// Attachment is a regular file attachment.
type Attachment struct {
	Filename string
	MIMEType string
	Content  []byte
}

// InlineImage is embedded into the HTML body and referenced by its
// content-id.
type InlineImage struct {
	CID     string
	Content []byte
}

// Sender abstracts the dial-and-send step so tests can capture
// messages without a server.
type Sender interface {
	DialAndSend(m ...*gomail.Message) error
}

// Mailer composes and sends mail through the configured SMTP
// transport. The connection is torn down on every exit path by the
// underlying dialer.
type Mailer struct {
	log  *logger.Logger
	dial func(settings *models.Settings) Sender
}

func New(log *logger.Logger) *Mailer {
	return &Mailer{log: log, dial: smtpDialer}
}

// NewWithDialer is used by tests.
func NewWithDialer(log *logger.Logger, dial func(*models.Settings) Sender) *Mailer {
	return &Mailer{log: log, dial: dial}
}

func smtpDialer(settings *models.Settings) Sender {
	d := &gomail.Dialer{
		Host: settings.SMTPServer,
		Port: settings.SMTPPort,
		// Port 465 means implicit TLS; anything else negotiates
		// STARTTLS.
		SSL: settings.SMTPPort == 465,
	}
	// Authentication is attempted only when a credential is
	// configured.
	if settings.SMTPPassword != "" {
		d.Username = settings.SMTPUser
		d.Password = settings.SMTPPassword
	}
	return d
}

// FilterAddresses keeps only syntactically plausible addresses.
func FilterAddresses(addrs []string) []string {
	var valid []string
	for _, a := range addrs {
		a = strings.TrimSpace(a)
		if a != "" && strings.Contains(a, "@") {
			valid = append(valid, a)
		}
	}
	return valid
}

// SplitAddressList splits a stored comma-separated recipient string.
func SplitAddressList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Send dispatches one message. When no valid primary recipient
// remains after filtering, the send is a logged no-op and the first
// return value is false.
func (m *Mailer) Send(settings *models.Settings, recipients, cc []string, subject, body string, isHTML bool, attachment *Attachment, images []InlineImage) (bool, error) {
	validTo := FilterAddresses(recipients)
	validCC := FilterAddresses(cc)
	if len(validTo) == 0 {
		m.log.Info("email not sent: no valid recipients", "subject", subject)
		return false, nil
	}

	if settings == nil || settings.SMTPServer == "" || settings.SMTPPort == 0 {
		return false, fmt.Errorf("%w: incomplete SMTP configuration", ErrTransport)
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", settings.SMTPUser)
	msg.SetHeader("To", validTo...)
	if len(validCC) > 0 {
		msg.SetHeader("Cc", validCC...)
	}
	msg.SetHeader("Subject", subject)

	contentType := "text/plain"
	if isHTML {
		contentType = "text/html"
	}
	msg.SetBody(contentType, body)

	// An image without content is logged and skipped; the send
	// proceeds without it.
	for _, img := range images {
		if len(img.Content) == 0 {
			m.log.Warn("skipping empty embedded image", "cid", img.CID)
			continue
		}
		cid := img.CID
		if cid == "" {
			cid = uuid.NewString()
		}
		content := img.Content
		msg.Embed(cid+".png",
			gomail.SetHeader(map[string][]string{"Content-ID": {"<" + cid + ">"}}),
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		)
	}

	if attachment != nil && len(attachment.Content) > 0 {
		content := attachment.Content
		fileSettings := []gomail.FileSetting{
			gomail.SetCopyFunc(func(w io.Writer) error {
				_, err := w.Write(content)
				return err
			}),
		}
		if attachment.MIMEType != "" {
			fileSettings = append(fileSettings, gomail.SetHeader(map[string][]string{
				"Content-Type": {attachment.MIMEType},
			}))
		}
		msg.Attach(attachment.Filename, fileSettings...)
	}

	if err := m.dial(settings).DialAndSend(msg); err != nil {
		return false, classify(err)
	}
	m.log.Info("email sent", "to", strings.Join(validTo, ", "), "subject", subject)
	return true, nil
}

func classify(err error) error {
	var tpErr *textproto.Error
	if errors.As(err, &tpErr) && (tpErr.Code == 535 || tpErr.Code == 534 || tpErr.Code == 530) {
		return fmt.Errorf("%w: %v", ErrTransportAuth, err)
	}
	if strings.Contains(strings.ToLower(err.Error()), "auth") {
		return fmt.Errorf("%w: %v", ErrTransportAuth, err)
	}
	return fmt.Errorf("%w: %v", ErrTransport, err)
}
