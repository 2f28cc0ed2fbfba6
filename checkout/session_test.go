package checkout_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmanMishra107/sweet-artisan-bakery/checkout"
	"github.com/AmanMishra107/sweet-artisan-bakery/pricing"
)

func completeContact() checkout.ContactInfo {
	return checkout.ContactInfo{
		Email:     "mira@example.com",
		FirstName: "Mira",
		LastName:  "Kapoor",
		Phone:     "9876543210",
	}
}

func completeDelivery() checkout.DeliveryInfo {
	return checkout.DeliveryInfo{
		Address:    "12 Rose Lane",
		City:       "Pune",
		PostalCode: "411001",
		Method:     pricing.DeliveryExpress,
	}
}

func TestNextBlockedByMissingContactField(t *testing.T) {
	s := checkout.NewSession("u1")
	contact := completeContact()
	contact.Phone = "" // required
	s.SetContact(contact)

	err := s.Next()
	require.ErrorIs(t, err, checkout.ErrIncompleteStep)
	assert.Equal(t, checkout.StepContactInfo, s.Step)
}

func TestWhitespaceOnlyFieldDoesNotValidate(t *testing.T) {
	s := checkout.NewSession("u1")
	contact := completeContact()
	contact.Phone = "   "
	s.SetContact(contact)

	require.ErrorIs(t, s.Next(), checkout.ErrIncompleteStep)
}

func TestLinearProgressionToReview(t *testing.T) {
	s := checkout.NewSession("u1")
	s.SetContact(completeContact())
	require.NoError(t, s.Next())
	assert.Equal(t, checkout.StepDeliveryAndExtras, s.Step)

	require.NoError(t, s.SetDelivery(completeDelivery()))
	require.NoError(t, s.Next())
	assert.Equal(t, checkout.StepPayment, s.Step)

	s.SetPayment(checkout.PaymentInfo{Method: "cod"})
	require.NoError(t, s.Next())
	assert.Equal(t, checkout.StepReview, s.Step)
}

func TestCardPaymentRequiresCardFields(t *testing.T) {
	s := checkout.NewSession("u1")
	s.SetContact(completeContact())
	require.NoError(t, s.Next())
	require.NoError(t, s.SetDelivery(completeDelivery()))
	require.NoError(t, s.Next())

	s.SetPayment(checkout.PaymentInfo{Method: checkout.PaymentMethodCard, CardNumber: "4111111111111111"})
	require.ErrorIs(t, s.Next(), checkout.ErrIncompleteStep)

	s.SetPayment(checkout.PaymentInfo{
		Method:     checkout.PaymentMethodCard,
		CardNumber: "4111111111111111",
		ExpiryDate: "12/27",
		CVV:        "123",
		NameOnCard: "Mira Kapoor",
	})
	require.NoError(t, s.Next())
	assert.Equal(t, checkout.StepReview, s.Step)
}

func TestBackKeepsEnteredData(t *testing.T) {
	s := checkout.NewSession("u1")
	s.SetContact(completeContact())
	require.NoError(t, s.Next())
	require.NoError(t, s.SetDelivery(completeDelivery()))

	s.Back()
	assert.Equal(t, checkout.StepContactInfo, s.Step)
	assert.Equal(t, "Mira", s.Contact.FirstName)
	assert.Equal(t, "12 Rose Lane", s.Delivery.Address)

	s.Back() // already at the first step; stays put
	assert.Equal(t, checkout.StepContactInfo, s.Step)
}

func TestGoToRejectsForwardJump(t *testing.T) {
	s := checkout.NewSession("u1")
	require.ErrorIs(t, s.GoTo(checkout.StepPayment), checkout.ErrCannotSkipForward)

	s.SetContact(completeContact())
	require.NoError(t, s.Next())
	require.NoError(t, s.GoTo(checkout.StepContactInfo))
	assert.Equal(t, checkout.StepContactInfo, s.Step)
}

func TestApplyPromoOverwritesAndRejectionKeepsDiscount(t *testing.T) {
	s := checkout.NewSession("u1")

	discount, err := s.ApplyPromo("SWEET20", 200)
	require.NoError(t, err)
	assert.Equal(t, 40.0, discount)

	_, err = s.ApplyPromo("TOTALLYFAKE", 200)
	require.ErrorIs(t, err, pricing.ErrUnknownPromoCode)
	assert.Equal(t, 40.0, s.Discount, "rejected code must not reset the discount")
	assert.Equal(t, "SWEET20", s.PromoCode)

	// A different valid code overwrites rather than stacks.
	discount, err = s.ApplyPromo("firstorder", 200)
	require.NoError(t, err)
	assert.Equal(t, 50.0, discount)
	assert.Equal(t, 50.0, s.Discount)
}

func TestApplyPreDiscountOverwritableByManualCode(t *testing.T) {
	s := checkout.NewSession("u1")
	got := s.ApplyPreDiscount("SWEET15", 15, 200)
	assert.Equal(t, 30.0, got)
	assert.Equal(t, 30.0, s.Discount)

	_, err := s.ApplyPromo("SWEET5", 200)
	require.NoError(t, err)
	assert.Equal(t, 10.0, s.Discount)
}

func TestQuoteMatchesPricing(t *testing.T) {
	s := checkout.NewSession("u1")
	require.NoError(t, s.SetDelivery(completeDelivery())) // express, fee 50
	_, err := s.ApplyPromo("SWEET10", 300)
	require.NoError(t, err)

	q := s.Quote(300)
	assert.Equal(t, 300.0, q.Subtotal)
	assert.Equal(t, 50.0, q.DeliveryFee)
	assert.Equal(t, 15.0, q.Tax)
	assert.Equal(t, 30.0, q.Discount)
	assert.Equal(t, 335.0, q.Total)

	assert.Equal(t, q, s.Quote(300), "recomputation must be idempotent")
}

func TestSetDeliveryRejectsNegativeTip(t *testing.T) {
	s := checkout.NewSession("u1")
	d := completeDelivery()
	d.Tip = -5
	require.ErrorIs(t, s.SetDelivery(d), checkout.ErrInvalidTip)
}

func TestSubmitLifecycle(t *testing.T) {
	s := checkout.NewSession("u1")
	require.ErrorIs(t, s.BeginSubmit(), checkout.ErrNotAtReview)

	s.SetContact(completeContact())
	require.NoError(t, s.Next())
	require.NoError(t, s.SetDelivery(completeDelivery()))
	require.NoError(t, s.Next())
	s.SetPayment(checkout.PaymentInfo{Method: "upi"})
	require.NoError(t, s.Next())

	require.NoError(t, s.BeginSubmit())
	require.ErrorIs(t, s.BeginSubmit(), checkout.ErrSubmitInFlight)

	// Failed insert: back to review, retry allowed.
	s.FinishSubmit(false)
	assert.Equal(t, checkout.StepReview, s.Step)
	require.NoError(t, s.BeginSubmit())

	s.FinishSubmit(true)
	assert.Equal(t, checkout.StepConfirmed, s.Step)
	require.ErrorIs(t, s.BeginSubmit(), checkout.ErrAlreadyConfirmed)
}

func TestNextAtReviewDirectsToPlaceOrder(t *testing.T) {
	s := checkout.NewSession("u1")
	s.SetContact(completeContact())
	require.NoError(t, s.Next())
	require.NoError(t, s.SetDelivery(completeDelivery()))
	require.NoError(t, s.Next())
	s.SetPayment(checkout.PaymentInfo{Method: "upi"})
	require.NoError(t, s.Next())

	// Review is the last step before placing the order; advancing past it is
	// not "already confirmed".
	require.ErrorIs(t, s.Next(), checkout.ErrNotAtReview)

	require.NoError(t, s.BeginSubmit())
	s.FinishSubmit(true)
	require.ErrorIs(t, s.Next(), checkout.ErrAlreadyConfirmed)
}

func TestSnapshotConsistentUnderConcurrentUpdates(t *testing.T) {
	s := checkout.NewSession("u1")

	done := make(chan struct{})
	go func() {
		defer close(done)
		for i := 0; i < 500; i++ {
			if i%2 == 0 {
				s.SetContact(completeContact())
				s.ApplyPreDiscount("SWEET15", 15, 200)
			} else {
				s.SetContact(checkout.ContactInfo{})
				s.ApplyPreDiscount("SWEET5", 5, 200)
			}
		}
	}()

	// The writer alternates between a fully set and a fully zero contact, so
	// a copy taken without the lock could mix fields from both.
	for i := 0; i < 500; i++ {
		v := s.Snapshot()
		if v.Contact.Email != "" && v.Contact.Phone == "" {
			t.Fatalf("torn snapshot: %+v", v.Contact)
		}
		if v.PromoCode == "SWEET15" && v.Discount != 30 {
			t.Fatalf("promo code and discount out of sync: %q %v", v.PromoCode, v.Discount)
		}
	}
	<-done
}

func TestStoreReturnsSameSessionPerUser(t *testing.T) {
	store := checkout.NewStore()
	a := store.Get("u1")
	b := store.Get("u1")
	assert.Same(t, a, b)
	assert.NotSame(t, a, store.Get("u2"))
	assert.NotEmpty(t, a.IdempotencyKey)
	assert.NotEqual(t, a.IdempotencyKey, store.Get("u2").IdempotencyKey)

	store.Reset("u1")
	assert.NotSame(t, a, store.Get("u1"))
}
