package service

import (
	"context"
	"fmt"
	"html"
	"time"

	"anoa.com/hrpayroll/internal/model"
	"anoa.com/hrpayroll/internal/repository"
	"anoa.com/hrpayroll/internal/session"
	"anoa.com/hrpayroll/pkg/apperror"
	"anoa.com/hrpayroll/pkg/mailer"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

type ContactInput struct {
	Email   string `json:"email" binding:"required,email"`
	Subject string `json:"subject" binding:"required,max=200"`
	Body    string `json:"body" binding:"required,max=5000"`
}

type ContactService interface {
	// Submit stores the message and relays it to the configured inbox.
	Submit(ctx context.Context, input ContactInput) error
}

type contactService struct {
	messages repository.ContactRepository
	mail     mailer.Mailer
	rdb      *redis.Client

	inbox    string
	rateWait time.Duration
}

func NewContactService(messages repository.ContactRepository, mail mailer.Mailer, rdb *redis.Client, inbox string, rateWait time.Duration) ContactService {
	return &contactService{
		messages: messages,
		mail:     mail,
		rdb:      rdb,
		inbox:    inbox,
		rateWait: rateWait,
	}
}

func (s *contactService) Submit(ctx context.Context, input ContactInput) error {
	allowed, err := session.CheckAndSetRateLimit(ctx, s.rdb, input.Email, "contact", s.rateWait)
	if err != nil {
		return err
	}
	if !allowed {
		ttl, _ := session.GetRateLimitTTL(ctx, s.rdb, input.Email, "contact")
		return fmt.Errorf("%w: try again in %s", apperror.ErrRateLimitExceeded, ttl.Round(time.Second))
	}

	message := &model.ContactMessage{
		Email:   input.Email,
		Subject: input.Subject,
		Body:    input.Body,
	}
	if err := s.messages.Create(ctx, message); err != nil {
		return err
	}

	if s.inbox == "" || !s.mail.IsEnabled() {
		zap.L().Warn("contact relay disabled, message stored only",
			zap.String("message_id", message.ID.String()))
		return nil
	}

	subject := fmt.Sprintf("[contact] %s", input.Subject)
	text := fmt.Sprintf("From: %s\n\n%s", input.Email, input.Body)
	htmlBody := fmt.Sprintf("<p><b>From:</b> %s</p><p>%s</p>",
		html.EscapeString(input.Email), html.EscapeString(input.Body))

	if err := s.mail.Send([]string{s.inbox}, subject, text, htmlBody); err != nil {
		return fmt.Errorf("%w: %v", apperror.ErrExternalService, err)
	}
	return nil
}
