package usecase

import (
	"context"
	"fmt"

	"storefront/internal/dto/request"
	"storefront/pkg/utils"

	"go.uber.org/zap"
)

type ContactService interface {
	Submit(ctx context.Context, req *request.ContactRequest) error
}

type contactService struct {
	notifier Notifier
	support  string
	log      *zap.Logger
}

func NewContactService(notifier Notifier, support string, log *zap.Logger) ContactService {
	return &contactService{
		notifier: notifier,
		support:  support,
		log:      log.With(zap.String("service", "contact")),
	}
}

// Submit forwards a contact message to the support inbox. Delivery failures
// are logged and not reported to the sender.
func (s *contactService) Submit(ctx context.Context, req *request.ContactRequest) error {
	if errs := utils.ValidateStruct(req); len(errs) > 0 {
		return fmt.Errorf("validation failed: %s", utils.FormatValidationErrors(errs))
	}

	if s.support == "" {
		s.log.Warn("Contact message dropped, no support address configured", zap.String("from", req.Email))
		return nil
	}

	body := fmt.Sprintf("From: %s <%s>\n\n%s\n", req.Name, req.Email, req.Message)
	if err := s.notifier.Send(s.support, "[Contact] "+req.Subject, body); err != nil {
		s.log.Error("Failed to forward contact message", zap.Error(err), zap.String("from", req.Email))
		return nil
	}

	s.log.Info("Contact message forwarded", zap.String("from", req.Email))
	return nil
}
