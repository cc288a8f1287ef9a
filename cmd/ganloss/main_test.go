package main

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/irisdum/sent2-cloud-remover/config"
	"github.com/irisdum/sent2-cloud-remover/gan"
	"github.com/irisdum/sent2-cloud-remover/summary"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEvaluate(t *testing.T) {
	f := &config.File{
		Loss:       "wasserstein_generator_loss",
		Lambda:     10,
		Fake:       []float32{1, 3},
		RealImages: []float32{0, 1, 0, 1},
		FakeImages: []float32{1, 1, 0, 0},
		ImageShape: []int{1, 1, 2, 2},
	}
	require.NoError(t, f.Validate())

	out := &bytes.Buffer{}
	err := evaluate(context.Background(), f, options{Summaries: true}, out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "wasserstein_generator_loss\t-2\t5", lines[0])

	var e summary.Entry
	require.NoError(t, json.Unmarshal([]byte(lines[1]), &e))
	assert.Equal(t, summary.KindLoss, e.Kind)
	assert.Equal(t, "generator_wasserstein_loss", e.Name)
	assert.InDelta(t, -2.0, e.Value, 1e-6)
}

func TestEvaluateChannelsLast(t *testing.T) {
	// One 1x2 image with two channels. Both layouts hold the same pixels.
	f := &config.File{
		Loss:         "wasser_gene_loss",
		Lambda:       1,
		Fake:         []float32{2},
		RealImages:   []float32{1, 10, 2, 20},
		FakeImages:   []float32{1, 10, 2, 20},
		ImageShape:   []int{1, 2, 1, 2},
		ChannelsLast: true,
	}
	b, err := newBatch(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, []float32{1, 2, 10, 20}, b.RealImages.Data)

	out := &bytes.Buffer{}
	require.NoError(t, evaluate(context.Background(), f, options{}, out))
	assert.Equal(t, "wasser_gene_loss\t-2\t0\n", out.String())
}

func TestEvaluatePatches(t *testing.T) {
	f := &config.File{
		Loss:        "wasser_discri_loss",
		RealPatches: [][]float32{{1, 3}, {2, 2}},
		FakePatches: [][]float32{{0, 0}, {-1, 1}},
	}
	b, err := newBatch(context.Background(), f)
	require.NoError(t, err)
	assert.Equal(t, 4, b.RealOutputs.N)

	out := &bytes.Buffer{}
	require.NoError(t, evaluate(context.Background(), f, options{}, out))
	assert.Equal(t, "wasser_discri_loss\t-2\t0\n", out.String())

	f.RealPatches = [][]float32{{1, 3}, {2}}
	_, err = newBatch(context.Background(), f)
	assert.Error(t, err)
}

func TestEvaluateUndefinedLoss(t *testing.T) {
	f := &config.File{Loss: "pix2pix_loss"}
	err := evaluate(context.Background(), f, options{}, &bytes.Buffer{})
	assert.ErrorIs(t, err, gan.ErrUndefinedLoss)
}
