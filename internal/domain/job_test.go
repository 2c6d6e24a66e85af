package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func dec(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	if err != nil {
		t.Fatalf("bad decimal %q: %v", s, err)
	}
	return d
}

func TestJobTotal_NoParts(t *testing.T) {
	total := JobTotal(dec(t, "30"), nil)
	assert.True(t, total.Equal(dec(t, "30")), "expected 30, got %s", total)
}

func TestJobTotal_SumsParts(t *testing.T) {
	parts := []*Part{
		{Cost: dec(t, "5")},
		{Cost: dec(t, "12.50")},
	}
	total := JobTotal(dec(t, "20"), parts)
	assert.True(t, total.Equal(dec(t, "37.50")), "expected 37.50, got %s", total)
}

func TestJobTotal_DecimalExact(t *testing.T) {
	// Fractions that drift under binary floating point must sum exactly.
	parts := []*Part{
		{Cost: dec(t, "0.10")},
		{Cost: dec(t, "0.20")},
	}
	total := JobTotal(dec(t, "0.30"), parts)
	assert.True(t, total.Equal(dec(t, "0.60")), "expected 0.60, got %s", total)
}

func TestJobTotal_ZeroLabor(t *testing.T) {
	parts := []*Part{{Cost: dec(t, "99.99")}}
	total := JobTotal(decimal.Zero, parts)
	assert.True(t, total.Equal(dec(t, "99.99")), "expected 99.99, got %s", total)
}
