package chart

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var pngHeader = []byte{0x89, 'P', 'N', 'G'}

func TestRenderSummaryPie(t *testing.T) {
	img, err := RenderSummaryPie(50000, 8000)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngHeader), "PNG başlığı bekleniyordu")
}

// Boş raporda bile grafik üretilebilmeli (eşit dilimler çizilir)
func TestRenderSummaryPieZeroTotals(t *testing.T) {
	img, err := RenderSummaryPie(0, 0)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngHeader))
}

func TestRenderExpenseBars(t *testing.T) {
	img, err := RenderExpenseBars([]CategoryAmount{
		{Category: "Tohum", Amount: 5000},
		{Category: "Gübre", Amount: 3000},
	})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(img, pngHeader))
}

func TestRenderExpenseBarsEmpty(t *testing.T) {
	img, err := RenderExpenseBars(nil)
	require.NoError(t, err)
	assert.Nil(t, img)

	img, err = RenderExpenseBars([]CategoryAmount{{Category: "Boş", Amount: 0}})
	require.NoError(t, err)
	assert.Nil(t, img)
}

// Aynı girdi aynı görseli vermeli
func TestRenderSummaryPieDeterministic(t *testing.T) {
	a, err := RenderSummaryPie(1000, 500)
	require.NoError(t, err)
	b, err := RenderSummaryPie(1000, 500)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}
