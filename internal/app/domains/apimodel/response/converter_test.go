package response

import (
	"bytes"
	"context"
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"printshop/internal/app/domains/entity/etcatalog/catalogtest"
	"printshop/internal/app/domains/entity/etorder"
	"printshop/internal/app/domains/guardrail"
	"printshop/internal/app/domains/tools/inventory"
	"printshop/internal/app/domains/tools/pricing"
	"printshop/internal/app/domains/tools/resolution"
	"printshop/pkg/logger"
)

func runOrder(t *testing.T, w, h int, paper string) *guardrail.Verdict {
	t.Helper()
	catalog, table := catalogtest.New(t)
	p := guardrail.NewPipeline(
		catalog,
		inventory.NewChecker(catalog),
		resolution.NewChecker(catalog.FileRequirements(), resolution.Limits{}, nil),
		pricing.NewCalculator(table),
		logger.NewNop(),
	)

	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h))))
	path := filepath.Join(t.TempDir(), "art.png")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))

	o, err := etorder.NewOrderRequest(etorder.Params{
		Size:        etorder.Size{Width: 8, Height: 10},
		PaperStock:  paper,
		Color:       "white",
		Finish:      "matte",
		Quantity:    10,
		ArtworkPath: path,
		FullColor:   true,
	})
	require.NoError(t, err)
	return p.Run(context.Background(), o)
}

func TestFromVerdictAccepted(t *testing.T) {
	resp := FromVerdict(runOrder(t, 2400, 3000, "100lb Matte"))

	assert.True(t, resp.Valid)
	assert.Empty(t, resp.Layer)
	require.NotNil(t, resp.OrderSummary)
	assert.Equal(t, "$22.50", resp.OrderSummary.Price)
	assert.Equal(t, "$2.25", resp.OrderSummary.PricePerUnit)
	assert.Equal(t, "high", resp.OrderSummary.FileQuality.Quality)
	assert.Equal(t, "2400x3000", resp.OrderSummary.FileQuality.PixelDimensions)

	b := resp.OrderSummary.PriceBreakdown
	require.NotNil(t, b)
	assert.Equal(t, "$0.75", b.PerSheet)
	assert.Equal(t, "$7.50", b.Sheets)
	assert.Equal(t, "$22.50", b.Subtotal)
	assert.Equal(t, "$15.00", b.SetupFee)
	assert.Equal(t, "0%", b.Discount)
	assert.Equal(t, "1x", b.RushMultiplier)
	assert.Equal(t, "$22.50", b.Total)
}

func TestFromVerdictRejected(t *testing.T) {
	resp := FromVerdict(runOrder(t, 2400, 3000, "Metallic Paper"))

	assert.False(t, resp.Valid)
	assert.Equal(t, string(guardrail.LayerSpecCheck), resp.Layer)
	assert.NotEmpty(t, resp.Errors)
	assert.Nil(t, resp.OrderSummary)
	assert.NotNil(t, resp.ToolCalls)
}

func TestFromCatalog(t *testing.T) {
	catalog, table := catalogtest.New(t)
	resp := FromCatalog(catalog, table)

	assert.Len(t, resp.PaperStocks, len(catalog.StockNames()))
	require.NotNil(t, resp.Pricing)
	assert.Equal(t, "USD", resp.Pricing.Currency)
	assert.Equal(t, "1.5x", resp.Pricing.Rush["rush"])
	assert.Equal(t, "2x", resp.Pricing.Rush["express"])
	require.NotEmpty(t, resp.Pricing.QuantityBreaks)
	assert.Equal(t, "1-10", resp.Pricing.QuantityBreaks[0].Range)
	assert.Equal(t, "0%", resp.Pricing.QuantityBreaks[0].Discount)
	assert.Equal(t, "15%", resp.Pricing.QuantityBreaks[len(resp.Pricing.QuantityBreaks)-1].Discount)
}
