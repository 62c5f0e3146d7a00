package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}

	return d
}

func charges(fee string, count int) []decimal.Decimal {
	out := make([]decimal.Decimal, count)
	for i := range out {
		out[i] = dec(fee)
	}

	return out
}

func TestAllocatePayment(t *testing.T) {
	tests := []struct {
		name          string
		amount        string
		charges       []decimal.Decimal
		wantConfirmed int
		wantAllocated string
		wantRemaining string
	}{
		{
			name:          "exact multiple covers exactly that many sessions",
			amount:        "12.00",
			charges:       charges("4.00", 5),
			wantConfirmed: 3,
			wantAllocated: "12.00",
			wantRemaining: "0.00",
		},
		{
			name:          "remainder below one fee is returned",
			amount:        "18.00",
			charges:       charges("4.00", 5),
			wantConfirmed: 4,
			wantAllocated: "16.00",
			wantRemaining: "2.00",
		},
		{
			name:          "amount below one fee confirms nothing",
			amount:        "3.50",
			charges:       charges("4.00", 5),
			wantConfirmed: 0,
			wantAllocated: "0",
			wantRemaining: "3.50",
		},
		{
			name:          "allocation is capped at the unpaid count",
			amount:        "100.00",
			charges:       charges("4.00", 3),
			wantConfirmed: 3,
			wantAllocated: "12.00",
			wantRemaining: "88.00",
		},
		{
			name:          "no unpaid sessions leaves the full amount",
			amount:        "20.00",
			charges:       nil,
			wantConfirmed: 0,
			wantAllocated: "0",
			wantRemaining: "20.00",
		},
		{
			name:          "non-positive charge confirms nothing",
			amount:        "20.00",
			charges:       charges("0", 5),
			wantConfirmed: 0,
			wantAllocated: "0",
			wantRemaining: "20.00",
		},
		{
			name:          "rows keep the charge they were recorded at",
			amount:        "10.50",
			charges:       []decimal.Decimal{dec("3.50"), dec("3.50"), dec("3.50"), dec("4.00")},
			wantConfirmed: 3,
			wantAllocated: "10.50",
			wantRemaining: "0.00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := AllocatePayment(dec(tt.amount), tt.charges)

			assert.Equal(t, tt.wantConfirmed, got.SessionsConfirmed)
			assert.True(t, got.AmountAllocated.Equal(dec(tt.wantAllocated)),
				"allocated = %s, want %s", got.AmountAllocated, tt.wantAllocated)
			assert.True(t, got.RemainingAmount.Equal(dec(tt.wantRemaining)),
				"remaining = %s, want %s", got.RemainingAmount, tt.wantRemaining)
		})
	}
}

func TestAllocatePayment_AllocatedPlusRemainingEqualsAmount(t *testing.T) {
	amounts := []string{"0.01", "4.00", "7.99", "18.00", "160.00"}

	for _, a := range amounts {
		amount := dec(a)
		got := AllocatePayment(amount, charges("4.00", 10))

		assert.True(t, got.AmountAllocated.Add(got.RemainingAmount).Equal(amount),
			"allocation of %s does not conserve the amount", a)
	}
}
