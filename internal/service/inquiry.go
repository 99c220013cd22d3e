package service

import (
	"log/slog"

	"github.com/efreitasn/bonddesk/internal/domain"
	"github.com/efreitasn/bonddesk/internal/pubsub"
)

// InquiryService manages customer inquiries. Keyed on inquiry ID (not
// product ID — each inquiry is unique).
//
// Transitions are deliberately unguarded, matching the reference
// behavior: SendQuote and RejectInquiry only require the inquiry to
// exist and will happily move a DONE or REJECTED inquiry back to QUOTED
// or REJECTED.
type InquiryService struct {
	*pubsub.Service[string, *domain.Inquiry]
}

// NewInquiryService creates an empty inquiry service.
func NewInquiryService(logger *slog.Logger) *InquiryService {
	return &InquiryService{
		Service: pubsub.NewService("inquiry", func(i *domain.Inquiry) string {
			return i.InquiryID
		}, domain.ErrInquiryNotFound, logger),
	}
}

// SendQuote responds to an inquiry with a price: the price is set, the
// state moves to QUOTED, and listeners receive an update notification.
// Fails with the inquiry NotFound sentinel if the inquiry is unknown.
func (s *InquiryService) SendQuote(inquiryID string, price float64) (*domain.Inquiry, error) {
	return s.Amend(inquiryID, func(i *domain.Inquiry) *domain.Inquiry {
		i.Price = price
		i.State = domain.InquiryQuoted
		return i
	})
}

// RejectInquiry moves an inquiry to REJECTED and notifies listeners.
// Fails with the inquiry NotFound sentinel if the inquiry is unknown.
func (s *InquiryService) RejectInquiry(inquiryID string) (*domain.Inquiry, error) {
	return s.Amend(inquiryID, func(i *domain.Inquiry) *domain.Inquiry {
		i.State = domain.InquiryRejected
		return i
	})
}
