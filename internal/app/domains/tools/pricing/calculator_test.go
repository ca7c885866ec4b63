package pricing

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/app/domains/entity/etcatalog/catalogtest"
)

func newCalculator(t *testing.T) *Calculator {
	_, table := catalogtest.New(t)
	return NewCalculator(table)
}

func TestCalculatePriceStandardOrder(t *testing.T) {
	b, err := newCalculator(t).CalculatePrice(Request{
		PaperStock:   "100lb Matte",
		Quantity:     10,
		WidthInches:  8,
		HeightInches: 10,
		FullColor:    true,
	})
	require.NoError(t, err)

	assert.Equal(t, "$22.50", b.FormattedTotal())
	assert.Equal(t, "0.75", b.PerSheetCost.String())
	assert.Equal(t, "7.5", b.SheetsCost.String())
	assert.Equal(t, "1-10", b.QuantityBreak)
	assert.Equal(t, "0%", b.DiscountPercent())
	assert.Equal(t, "1", b.RushMultiplier.String())
	assert.Equal(t, "2.25", b.PricePerUnit.String())
	assert.Equal(t, `8"x10"`, b.Dimensions)
	assert.Equal(t, "USD", b.Currency)
}

func TestCalculatePriceFormula(t *testing.T) {
	calc := newCalculator(t)

	tests := []struct {
		name  string
		req   Request
		total string
	}{
		// (0.50 + 0.25) * 0.95 * 11 + 15
		{"second break", Request{PaperStock: "100lb Matte", Quantity: 11, FullColor: true}, "22.84"},
		// 0.50 * 1.0 * 10 + 15
		{"no color surcharge", Request{PaperStock: "100lb Matte", Quantity: 10}, "20.00"},
		// ((0.75 + 0.30) * 0.85 * 500 + 20) * 1.5
		{"rush large run", Request{PaperStock: "110lb Cardstock", Quantity: 500, FullColor: true, RushType: "rush"}, "699.38"},
		// ((0.30 + 0.20) * 0.90 * 100 + 10) * 2
		{"express", Request{PaperStock: "65lb Text", Quantity: 100, FullColor: true, RushType: "express"}, "110.00"},
		// unrecognized rush leaves the total unchanged
		{"unknown rush", Request{PaperStock: "100lb Matte", Quantity: 10, FullColor: true, RushType: "overnight"}, "22.50"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := calc.CalculatePrice(tt.req)
			require.NoError(t, err)
			assert.Equal(t, tt.total, b.Total.StringFixed(2))
		})
	}
}

func TestQuantityBreakBoundary(t *testing.T) {
	calc := newCalculator(t)

	at10, err := calc.CalculatePrice(Request{PaperStock: "100lb Matte", Quantity: 10, FullColor: true})
	require.NoError(t, err)
	at11, err := calc.CalculatePrice(Request{PaperStock: "100lb Matte", Quantity: 11, FullColor: true})
	require.NoError(t, err)

	assert.Equal(t, "1", at10.QuantityMultiplier.String())
	assert.Equal(t, "0.95", at11.QuantityMultiplier.String())
	assert.Equal(t, "5%", at11.DiscountPercent())
	assert.True(t, at11.PerSheetCost.LessThan(at10.PerSheetCost))
}

func TestRushRecognition(t *testing.T) {
	calc := newCalculator(t)

	b, err := calc.CalculatePrice(Request{PaperStock: "100lb Matte", Quantity: 1, RushType: "RUSH"})
	require.NoError(t, err)
	assert.True(t, b.RushRecognized)
	assert.True(t, b.RushMultiplier.Equal(decimal.NewFromFloat(1.5)))

	b, err = calc.CalculatePrice(Request{PaperStock: "100lb Matte", Quantity: 1, RushType: "tomorrow"})
	require.NoError(t, err)
	assert.False(t, b.RushRecognized)
	assert.True(t, b.RushMultiplier.Equal(decimal.NewFromInt(1)))
}

func TestCalculatePriceErrors(t *testing.T) {
	calc := newCalculator(t)

	_, err := calc.CalculatePrice(Request{PaperStock: "Vellum", Quantity: 10})
	var unknown *UnknownStockError
	require.ErrorAs(t, err, &unknown)
	assert.Contains(t, unknown.Known, "100lb Matte")
	assert.Contains(t, err.Error(), "Vellum")

	_, err = calc.CalculatePrice(Request{PaperStock: "100lb Matte", Quantity: 0})
	assert.ErrorIs(t, err, ErrInvalidQuantity)
}

func TestCalculatePriceIsDeterministic(t *testing.T) {
	calc := newCalculator(t)
	req := Request{PaperStock: "80lb Glossy", Quantity: 73, WidthInches: 5, HeightInches: 7, FullColor: true, RushType: "rush"}

	first, err := calc.CalculatePrice(req)
	require.NoError(t, err)
	second, err := calc.CalculatePrice(req)
	require.NoError(t, err)

	a, err := json.Marshal(first)
	require.NoError(t, err)
	b, err := json.Marshal(second)
	require.NoError(t, err)
	assert.Equal(t, string(a), string(b))
}

func TestFormatMoneyRoundsOnlyAtOutput(t *testing.T) {
	calc := newCalculator(t)
	// 0.45 * 0.95 = 0.4275 per sheet, kept exact until formatting
	b, err := calc.CalculatePrice(Request{PaperStock: "80lb Glossy", Quantity: 20})
	require.NoError(t, err)

	assert.Equal(t, "0.4275", b.PerSheetCost.String())
	assert.Equal(t, "8.55", b.SheetsCost.String())
	assert.Equal(t, "$23.55", FormatMoney(b.Total))
}
