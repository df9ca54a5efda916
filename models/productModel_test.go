package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func intPtr(v int) *int { return &v }

func TestRound2(t *testing.T) {
	assert.Equal(t, 1.5, Round2(1.499999999))
	assert.Equal(t, 0.3, Round2(0.1+0.2))
	assert.Equal(t, 31.7, Round2(31.700000000000003))
	assert.Equal(t, 0.0, Round2(0))
}

func TestVATInclusivePrice(t *testing.T) {
	tests := []struct {
		name     string
		price    float64
		taxRate  int
		expected float64
	}{
		{"standard rate", 100, 20, 120},
		{"reduced rate", 50, 10, 55},
		{"zero rate", 75, 0, 75},
		{"rounding", 0.5, 20, 0.6},
		{"repeating decimal", 9.99, 20, 11.99},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := Product{Price: tt.price, TaxRate: tt.taxRate}
			assert.Equal(t, tt.expected, p.VATInclusivePrice())
		})
	}
}

func TestUnitPriceFor(t *testing.T) {
	product := Product{
		Price: 1.00,
		PriceTiers: []PriceTier{
			{MinQty: 10, MaxQty: intPtr(99), Price: 0.80},
			{MinQty: 100, MaxQty: nil, Price: 0.60},
		},
	}

	assert.Equal(t, 1.00, product.UnitPriceFor(1))
	assert.Equal(t, 1.00, product.UnitPriceFor(9))
	assert.Equal(t, 0.80, product.UnitPriceFor(10))
	assert.Equal(t, 0.80, product.UnitPriceFor(99))
	assert.Equal(t, 0.60, product.UnitPriceFor(100))
	assert.Equal(t, 0.60, product.UnitPriceFor(100000))
}

func TestUnitPriceForWithoutTiers(t *testing.T) {
	product := Product{Price: 2.50}
	assert.Equal(t, 2.50, product.UnitPriceFor(500))
}

func TestTiersOverlap(t *testing.T) {
	tests := []struct {
		name    string
		tiers   []PriceTier
		overlap bool
	}{
		{
			"disjoint ranges",
			[]PriceTier{
				{MinQty: 1, MaxQty: intPtr(9)},
				{MinQty: 10, MaxQty: intPtr(99)},
				{MinQty: 100, MaxQty: nil},
			},
			false,
		},
		{
			"shared boundary",
			[]PriceTier{
				{MinQty: 1, MaxQty: intPtr(10)},
				{MinQty: 10, MaxQty: intPtr(99)},
			},
			true,
		},
		{
			"two unbounded tiers",
			[]PriceTier{
				{MinQty: 10, MaxQty: nil},
				{MinQty: 100, MaxQty: nil},
			},
			true,
		},
		{
			"unbounded below a bounded tier",
			[]PriceTier{
				{MinQty: 50, MaxQty: nil},
				{MinQty: 1, MaxQty: intPtr(49)},
			},
			false,
		},
		{
			"single tier", []PriceTier{{MinQty: 1, MaxQty: nil}}, false,
		},
		{
			"empty", nil, false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.overlap, TiersOverlap(tt.tiers))
		})
	}
}

func TestPriceTierCovers(t *testing.T) {
	bounded := PriceTier{MinQty: 10, MaxQty: intPtr(99)}
	assert.False(t, bounded.Covers(9))
	assert.True(t, bounded.Covers(10))
	assert.True(t, bounded.Covers(99))
	assert.False(t, bounded.Covers(100))

	open := PriceTier{MinQty: 100}
	assert.False(t, open.Covers(99))
	assert.True(t, open.Covers(100))
	assert.True(t, open.Covers(1000000))
}
