// Package checkout models the multi-step checkout flow: contact info,
// delivery and extras, payment, review, confirmation. Forward movement is
// gated by per-step validation; going back never loses entered data. Sessions
// live in memory per authenticated user.
package checkout

import (
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/AmanMishra107/sweet-artisan-bakery/pricing"
)

type Step int

const (
	StepContactInfo Step = iota + 1
	StepDeliveryAndExtras
	StepPayment
	StepReview
	StepConfirmed
)

func (s Step) String() string {
	switch s {
	case StepContactInfo:
		return "contact_info"
	case StepDeliveryAndExtras:
		return "delivery_and_extras"
	case StepPayment:
		return "payment"
	case StepReview:
		return "review"
	case StepConfirmed:
		return "confirmed"
	}
	return "unknown"
}

const PaymentMethodCard = "card"

type ContactInfo struct {
	Email     string `json:"email"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Phone     string `json:"phone"`
}

type DeliveryInfo struct {
	Address             string  `json:"address"`
	City                string  `json:"city"`
	PostalCode          string  `json:"postal_code"`
	Method              string  `json:"method"`
	Tip                 float64 `json:"tip"`
	SpecialInstructions string  `json:"special_instructions"`
}

type PaymentInfo struct {
	Method     string `json:"method"` // card, cod, upi
	CardNumber string `json:"card_number"`
	ExpiryDate string `json:"expiry_date"`
	CVV        string `json:"cvv"`
	NameOnCard string `json:"name_on_card"`
}

var (
	ErrIncompleteStep    = errors.New("please complete all required fields")
	ErrAlreadyConfirmed  = errors.New("checkout already confirmed")
	ErrNotAtReview       = errors.New("order can only be placed from the review step")
	ErrSubmitInFlight    = errors.New("order submission already in progress")
	ErrInvalidTip        = errors.New("tip must not be negative")
	ErrCannotSkipForward = errors.New("cannot jump to a later step")
)

// Session is one user's in-flight checkout. All mutations go through the
// mutex so a second browser tab cannot race the step machine.
type Session struct {
	mu sync.Mutex

	UserID         string
	Step           Step
	Contact        ContactInfo
	Delivery       DeliveryInfo
	Payment        PaymentInfo
	PromoCode      string
	Discount       float64
	IdempotencyKey string

	submitting bool
}

func NewSession(userID string) *Session {
	return &Session{
		UserID:         userID,
		Step:           StepContactInfo,
		Delivery:       DeliveryInfo{Method: pricing.DeliveryStandard},
		Payment:        PaymentInfo{Method: PaymentMethodCard},
		IdempotencyKey: uuid.NewString(),
	}
}

func filled(fields ...string) bool {
	for _, f := range fields {
		if strings.TrimSpace(f) == "" {
			return false
		}
	}
	return true
}

// validateStep reports whether the given step's required fields are complete.
// Caller must hold the mutex.
func (s *Session) validateStep(step Step) bool {
	switch step {
	case StepContactInfo:
		return filled(s.Contact.Email, s.Contact.FirstName, s.Contact.LastName, s.Contact.Phone)
	case StepDeliveryAndExtras:
		// Delivery method always has a default, so it never blocks.
		return filled(s.Delivery.Address, s.Delivery.City, s.Delivery.PostalCode)
	case StepPayment:
		if s.Payment.Method == PaymentMethodCard {
			return filled(s.Payment.CardNumber, s.Payment.ExpiryDate, s.Payment.CVV, s.Payment.NameOnCard)
		}
		return true
	case StepReview:
		return true
	}
	return false
}

// Next advances to the following step when the current step validates.
func (s *Session) Next() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Step == StepConfirmed {
		return ErrAlreadyConfirmed
	}
	if s.Step == StepReview {
		return ErrNotAtReview
	}
	if !s.validateStep(s.Step) {
		return ErrIncompleteStep
	}
	s.Step++
	return nil
}

// Back returns to the previous step. Entered data is kept.
func (s *Session) Back() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step > StepContactInfo && s.Step != StepConfirmed {
		s.Step--
	}
}

// GoTo jumps to any prior step directly; forward jumps are rejected.
func (s *Session) GoTo(step Step) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if step < StepContactInfo || step > s.Step || s.Step == StepConfirmed {
		return ErrCannotSkipForward
	}
	s.Step = step
	return nil
}

// View is a point-in-time copy of the session state. Handlers read from a
// View rather than the live fields so a concurrent step update cannot tear
// the read.
type View struct {
	Step           Step
	Contact        ContactInfo
	Delivery       DeliveryInfo
	Payment        PaymentInfo
	PromoCode      string
	Discount       float64
	IdempotencyKey string
}

// Snapshot copies the session state under the lock.
func (s *Session) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{
		Step:           s.Step,
		Contact:        s.Contact,
		Delivery:       s.Delivery,
		Payment:        s.Payment,
		PromoCode:      s.PromoCode,
		Discount:       s.Discount,
		IdempotencyKey: s.IdempotencyKey,
	}
}

func (s *Session) SetContact(c ContactInfo) {
	s.mu.Lock()
	s.Contact = c
	s.mu.Unlock()
}

func (s *Session) SetDelivery(d DeliveryInfo) error {
	if d.Tip < 0 {
		return ErrInvalidTip
	}
	s.mu.Lock()
	if d.Method == "" {
		d.Method = pricing.DeliveryStandard
	}
	s.Delivery = d
	s.mu.Unlock()
	return nil
}

func (s *Session) SetPayment(p PaymentInfo) {
	s.mu.Lock()
	if p.Method == "" {
		p.Method = PaymentMethodCard
	}
	s.Payment = p
	s.mu.Unlock()
}

// ApplyPromo evaluates a code against the rule table. On a match the discount
// is overwritten; an unknown code leaves the prior discount in place and
// returns pricing.ErrUnknownPromoCode for the rejection notice.
func (s *Session) ApplyPromo(code string, subtotal float64) (float64, error) {
	discount, err := pricing.EvaluatePromo(code, subtotal)
	if err != nil {
		return 0, err
	}
	s.mu.Lock()
	s.PromoCode = code
	s.Discount = discount
	s.mu.Unlock()
	return discount, nil
}

// ApplyPreDiscount installs a review-reward percentage carried in from
// outside checkout. A later manual code overwrites it.
func (s *Session) ApplyPreDiscount(code string, pct int, subtotal float64) float64 {
	discount := pricing.PercentDiscount(subtotal, pct)
	s.mu.Lock()
	s.PromoCode = code
	s.Discount = discount
	s.mu.Unlock()
	return discount
}

// Quote recomputes the price breakdown from the current selections.
func (s *Session) Quote(subtotal float64) pricing.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return pricing.Compute(subtotal, s.Delivery.Method, s.Delivery.Tip, s.Discount)
}

// BeginSubmit marks the session busy. It fails unless the machine is at the
// review step and no submission is already in flight, so a double click
// cannot fire two inserts.
func (s *Session) BeginSubmit() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Step == StepConfirmed {
		return ErrAlreadyConfirmed
	}
	if s.Step != StepReview {
		return ErrNotAtReview
	}
	if s.submitting {
		return ErrSubmitInFlight
	}
	s.submitting = true
	return nil
}

// FinishSubmit resolves a submission. Success moves to Confirmed; failure
// stays at Review so the user can retry manually.
func (s *Session) FinishSubmit(ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.submitting = false
	if ok {
		s.Step = StepConfirmed
	}
}

// Store keeps one checkout session per user id.
type Store struct {
	mu       sync.Mutex
	sessions map[string]*Session
}

func NewStore() *Store {
	return &Store{sessions: make(map[string]*Session)}
}

// Get returns the user's session, creating one at the first step if needed.
func (st *Store) Get(userID string) *Session {
	st.mu.Lock()
	defer st.mu.Unlock()
	if s, ok := st.sessions[userID]; ok {
		return s
	}
	s := NewSession(userID)
	st.sessions[userID] = s
	return s
}

// Reset discards the user's session, e.g. after a confirmed order.
func (st *Store) Reset(userID string) {
	st.mu.Lock()
	delete(st.sessions, userID)
	st.mu.Unlock()
}
