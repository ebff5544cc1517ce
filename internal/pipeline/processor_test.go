package pipeline

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joseph-ayodele/invoice-extractor/constants"
	"github.com/joseph-ayodele/invoice-extractor/internal/export"
)

func TestProcessFile_MissingFile(t *testing.T) {
	p := NewProcessor(nil, export.NewService("", nil), t.TempDir())
	_, err := p.ProcessFile(context.Background(), filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode")
}

func TestProcessFile_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := NewProcessor(nil, export.NewService("", nil), t.TempDir())
	_, err := p.ProcessFile(ctx, "whatever.pdf")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestOutputName(t *testing.T) {
	got := outputName("/tmp/out", "/data/invoices/order 42.PDF", constants.BrandAmazon)
	assert.Equal(t, filepath.Join("/tmp/out", "order 42_amazon_output.xlsx"), got)
}

func TestStats(t *testing.T) {
	s := NewStats()
	s.AddSuccess(constants.BrandAmazon)
	s.AddSuccess(constants.BrandAmazon)
	s.AddSuccess(constants.BrandZomato)
	s.AddFailure()

	assert.Equal(t, 3, s.Processed())
	assert.Equal(t, 2, s.ByBrand[constants.BrandAmazon])
	assert.Equal(t, 1, s.ByBrand[constants.BrandZomato])
	assert.Equal(t, 1, s.Failed)
}
