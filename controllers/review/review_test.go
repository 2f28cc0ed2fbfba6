package reviewcontroller

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRewardForRating(t *testing.T) {
	tests := []struct {
		name     string
		rating   int
		wantCode string
		wantPct  int
	}{
		{name: "five stars", rating: 5, wantCode: "SWEET20", wantPct: 20},
		{name: "four stars", rating: 4, wantCode: "SWEET15", wantPct: 15},
		{name: "three stars", rating: 3, wantCode: "SWEET10", wantPct: 10},
		{name: "two stars", rating: 2, wantCode: "SWEET5", wantPct: 5},
		{name: "one star", rating: 1, wantCode: "SWEET5", wantPct: 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RewardForRating(tt.rating)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantPct, got.DiscountPct)
		})
	}
}
