package service

import (
	"testing"

	"github.com/efreitasn/bonddesk/internal/domain"
)

func newInquiry(id string, state domain.InquiryState) *domain.Inquiry {
	return &domain.Inquiry{
		InquiryID: id,
		Product:   testBond("CUSIP1"),
		Side:      domain.SideBuy,
		Quantity:  1_000_000,
		State:     state,
	}
}

func TestInquiryService_OnMessage_StoresAtSuppliedState(t *testing.T) {
	s := NewInquiryService(nil)
	l := &countingListener[*domain.Inquiry]{}
	s.AddListener(l)

	s.OnMessage(newInquiry("I-1", domain.InquiryReceived))

	got, err := s.GetData("I-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if got.State != domain.InquiryReceived {
		t.Fatalf("expected state received, got %s", got.State)
	}
	if l.adds != 1 || l.updates != 0 {
		t.Fatalf("expected one add notification, got adds=%d updates=%d", l.adds, l.updates)
	}
}

func TestInquiryService_SendQuote(t *testing.T) {
	s := NewInquiryService(nil)
	l := &countingListener[*domain.Inquiry]{}
	s.AddListener(l)

	s.OnMessage(newInquiry("I-1", domain.InquiryReceived))
	inq, err := s.SendQuote("I-1", 99.75)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inq.State != domain.InquiryQuoted {
		t.Fatalf("expected state quoted, got %s", inq.State)
	}
	if inq.Price != 99.75 {
		t.Fatalf("expected price 99.75, got %v", inq.Price)
	}
	if l.updates != 1 {
		t.Fatalf("expected one update notification, got %d", l.updates)
	}
}

func TestInquiryService_SendQuote_NotFound(t *testing.T) {
	s := NewInquiryService(nil)

	_, err := s.SendQuote("missing", 99.75)
	if err != domain.ErrInquiryNotFound {
		t.Fatalf("expected ErrInquiryNotFound, got %v", err)
	}
}

// The state machine has no transition guards: quoting an inquiry that
// is already DONE still moves it back to QUOTED. This pins the current
// permissive behavior; a guard here would be a behavior change.
func TestInquiryService_SendQuote_OnDoneInquiry_StillQuotes(t *testing.T) {
	s := NewInquiryService(nil)

	s.OnMessage(newInquiry("I-1", domain.InquiryDone))
	inq, err := s.SendQuote("I-1", 100.25)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inq.State != domain.InquiryQuoted {
		t.Fatalf("expected permissive transition to quoted, got %s", inq.State)
	}
}

func TestInquiryService_RejectInquiry(t *testing.T) {
	s := NewInquiryService(nil)

	s.OnMessage(newInquiry("I-1", domain.InquiryReceived))
	inq, err := s.RejectInquiry("I-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inq.State != domain.InquiryRejected {
		t.Fatalf("expected state rejected, got %s", inq.State)
	}
}

func TestInquiryService_RejectInquiry_NotFound(t *testing.T) {
	s := NewInquiryService(nil)

	_, err := s.RejectInquiry("missing")
	if err != domain.ErrInquiryNotFound {
		t.Fatalf("expected ErrInquiryNotFound, got %v", err)
	}
}

// Re-rejecting a DONE inquiry is also unguarded.
func TestInquiryService_Reject_OnDoneInquiry_StillRejects(t *testing.T) {
	s := NewInquiryService(nil)

	s.OnMessage(newInquiry("I-1", domain.InquiryDone))
	inq, err := s.RejectInquiry("I-1")
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if inq.State != domain.InquiryRejected {
		t.Fatalf("expected state rejected, got %s", inq.State)
	}
}
