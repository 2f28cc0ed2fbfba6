package pricing_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AmanMishra107/sweet-artisan-bakery/pricing"
)

func TestDeliveryFee(t *testing.T) {
	tests := []struct {
		method string
		want   float64
	}{
		{"standard", 25},
		{"express", 50},
		{"premium", 80},
		{"", 25},
		{"carrier-pigeon", 25},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, pricing.DeliveryFee(tt.method), "method %q", tt.method)
	}
}

func TestTaxRoundsToWholeRupee(t *testing.T) {
	assert.Equal(t, 10.0, pricing.Tax(200))
	// 50 * 0.05 = 2.5 rounds half away from zero
	assert.Equal(t, 3.0, pricing.Tax(50))
	assert.Equal(t, 0.0, pricing.Tax(0))
}

func TestComputeBaseline(t *testing.T) {
	q := pricing.Compute(200, "standard", 0, 0)
	assert.Equal(t, 200.0, q.Subtotal)
	assert.Equal(t, 25.0, q.DeliveryFee)
	assert.Equal(t, 10.0, q.Tax)
	assert.Equal(t, 235.0, q.Total)
}

func TestEvaluatePromo(t *testing.T) {
	tests := []struct {
		name     string
		code     string
		subtotal float64
		want     float64
		wantErr  bool
	}{
		{"sweet20 on 200", "SWEET20", 200, 40, false},
		{"case insensitive", "sweet20", 200, 40, false},
		{"whitespace trimmed", "  Sweet15 ", 200, 30, false},
		{"sweet10", "SWEET10", 200, 20, false},
		{"sweet5", "SWEET5", 200, 10, false},
		{"firstorder flat", "FIRSTORDER", 200, 50, false},
		{"firstorder ignores subtotal", "firstorder", 10, 50, false},
		{"unknown code", "BOGUS99", 200, 0, true},
		{"empty code", "", 200, 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := pricing.EvaluatePromo(tt.code, tt.subtotal)
			if tt.wantErr {
				require.ErrorIs(t, err, pricing.ErrUnknownPromoCode)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRejectedCodeKeepsPriorDiscount(t *testing.T) {
	discount, err := pricing.EvaluatePromo("SWEET20", 200)
	require.NoError(t, err)
	require.Equal(t, 40.0, discount)

	// An unmatched code errors and the caller keeps the prior value; the quote
	// must still reflect the earlier discount.
	_, err = pricing.EvaluatePromo("NOPE", 200)
	require.Error(t, err)

	q := pricing.Compute(200, "standard", 0, discount)
	assert.Equal(t, 195.0, q.Total) // 200 + 25 + 10 - 40
}

func TestNegativeTotalIsNotClamped(t *testing.T) {
	// subtotal 50: fee 25, tax round(2.5)=3, discount 100 drives the total
	// below zero and it stays there.
	q := pricing.Compute(50, "standard", 0, 100)
	assert.Equal(t, 3.0, q.Tax)
	assert.Equal(t, -22.0, q.Total)
}

func TestComputeIsIdempotent(t *testing.T) {
	first := pricing.Compute(200, "express", 20, 40)
	second := pricing.Compute(200, "express", 20, 40)
	assert.Equal(t, first, second)
}

func TestPercentDiscount(t *testing.T) {
	assert.Equal(t, 40.0, pricing.PercentDiscount(200, 20))
	assert.Equal(t, 30.0, pricing.PercentDiscount(199, 15)) // 29.85 rounds up
	assert.Equal(t, 0.0, pricing.PercentDiscount(0, 20))
}

func TestApplyMembership(t *testing.T) {
	base := pricing.Compute(250, "standard", 0, 0)

	t.Run("no tier leaves quote untouched", func(t *testing.T) {
		assert.Equal(t, base, pricing.ApplyMembership(base, ""))
	})

	t.Run("royal always waives delivery", func(t *testing.T) {
		q := pricing.ApplyMembership(base, "royal")
		assert.Equal(t, 0.0, q.DeliveryFee)
		assert.Equal(t, base.Total-25, q.Total)
	})

	t.Run("premium waives above threshold", func(t *testing.T) {
		q := pricing.ApplyMembership(base, "premium") // 250 >= 200
		assert.Equal(t, 0.0, q.DeliveryFee)
	})

	t.Run("basic below threshold keeps fee", func(t *testing.T) {
		q := pricing.ApplyMembership(base, "basic") // 250 < 300
		assert.Equal(t, 25.0, q.DeliveryFee)
		assert.Equal(t, base.Total, q.Total)
	})
}
