package mailer

import (
	"crypto/tls"
	"fmt"
	"net/mail"
	"net/url"

	"github.com/dajohi/goemail"
	"go.uber.org/zap"
)

// Mailer sends transactional email (account activation, password reset OTPs,
// contract delivery, contact form relay).
type Mailer interface {
	// IsEnabled reports whether outbound mail is configured.
	IsEnabled() bool
	// Send delivers a message. htmlBody may be empty, in which case the
	// plaintext body is sent alone. attachmentPaths are absolute file paths.
	Send(to []string, subject, textBody, htmlBody string, attachmentPaths ...string) error
}

// Opts configures the SMTP client.
type Opts struct {
	Host        string // host:port
	User        string
	Pass        string
	FromName    string
	FromAddress string
	SkipVerify  bool
}

type client struct {
	smtp        *goemail.SMTP
	mailName    string
	mailAddress string
	disabled    bool
}

// New creates an SMTP-backed Mailer. An empty host disables mail entirely:
// sends become no-ops so the rest of the application keeps working in
// development.
func New(opts Opts) (Mailer, error) {
	if opts.Host == "" {
		zap.L().Info("mail: disabled")
		return &client{disabled: true}, nil
	}

	h := fmt.Sprintf("smtps://%v:%v@%v", opts.User, opts.Pass, opts.Host)
	u, err := url.Parse(h)
	if err != nil {
		return nil, err
	}

	a, err := mail.ParseAddress(opts.FromAddress)
	if err != nil {
		return nil, fmt.Errorf("invalid from address: %w", err)
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: opts.SkipVerify,
	}

	smtp, err := goemail.NewSMTP(u.String(), tlsConfig)
	if err != nil {
		return nil, err
	}

	name := opts.FromName
	if name == "" {
		name = a.Name
	}

	zap.L().Info("mail: enabled", zap.String("host", opts.Host), zap.String("from", a.Address))

	return &client{
		smtp:        smtp,
		mailName:    name,
		mailAddress: a.Address,
	}, nil
}

func (c *client) IsEnabled() bool {
	return !c.disabled
}

func (c *client) Send(to []string, subject, textBody, htmlBody string, attachmentPaths ...string) error {
	if c.disabled || len(to) == 0 {
		return nil
	}

	var msg *goemail.Message
	if htmlBody != "" {
		msg = goemail.NewHTMLMessage(c.mailAddress, subject, htmlBody)
	} else {
		msg = goemail.NewMessage(c.mailAddress, subject, textBody)
	}
	msg.SetName(c.mailName)

	for _, v := range to {
		msg.AddTo(v)
	}

	for _, path := range attachmentPaths {
		if err := msg.AddAttachmentFromFile(path); err != nil {
			return fmt.Errorf("failed to attach %s: %w", path, err)
		}
	}

	return c.smtp.Send(msg)
}
