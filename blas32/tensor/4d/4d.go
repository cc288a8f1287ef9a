package tensor4d

import (
	"fmt"
	"slices"

	"github.com/irisdum/sent2-cloud-remover/blas32/tensor/3d"
	"github.com/irisdum/sent2-cloud-remover/blas32/vector"
	"gonum.org/v1/gonum/blas/blas32"
)

// General is a batch of channels-first images.
type General struct {
	Batches       int
	Channels      int
	Rows          int
	Cols          int
	BatchStride   int
	ChannelStride int
	RowStride     int
	Data          []float32
}

func NewZeros(batches, chs, rows, cols int) General {
	rowStride := cols
	chStride := rows * rowStride
	batchStride := chs * chStride
	n := batches * batchStride

	return General{
		Batches:       batches,
		Channels:      chs,
		Rows:          rows,
		Cols:          cols,
		BatchStride:   batchStride,
		ChannelStride: chStride,
		RowStride:     rowStride,
		Data:          make([]float32, n),
	}
}

func NewZerosLike(gen General) General {
	return NewZeros(gen.Batches, gen.Channels, gen.Rows, gen.Cols)
}

func NewOnes(batches, chs, rows, cols int) General {
	gen := NewZeros(batches, chs, rows, cols)
	for i := range gen.Data {
		gen.Data[i] = 1.0
	}
	return gen
}

func NewOnesLike(gen General) General {
	return NewOnes(gen.Batches, gen.Channels, gen.Rows, gen.Cols)
}

// FromData wraps data laid out batch, channel, row, col. data is not copied.
func FromData(batches, chs, rows, cols int, data []float32) (General, error) {
	gen := NewZeros(0, chs, rows, cols)
	gen.Batches = batches
	gen.Data = data
	if len(data) != gen.N() {
		return General{}, fmt.Errorf("%w: %d values for a (%d, %d, %d, %d) batch",
			vector.ErrShapeMismatch, len(data), batches, chs, rows, cols)
	}
	return gen, nil
}

// FromChannelsLast converts a (batches, rows, cols, chs) batch to channels first.
func FromChannelsLast(batches, rows, cols, chs int, data []float32) (General, error) {
	n := rows * cols * chs
	if len(data) != batches*n {
		return General{}, fmt.Errorf("%w: %d values for a (%d, %d, %d, %d) batch",
			vector.ErrShapeMismatch, len(data), batches, rows, cols, chs)
	}
	gen := NewZeros(batches, chs, rows, cols)
	for b := 0; b < batches; b++ {
		img, err := tensor3d.FromChannelsLast(rows, cols, chs, data[b*n:(b+1)*n])
		if err != nil {
			return General{}, err
		}
		copy(gen.Data[b*gen.BatchStride:], img.Data)
	}
	return gen, nil
}

func (g General) N() int {
	return g.Batches * g.Channels * g.Rows * g.Cols
}

func (g General) Clone() General {
	return General{
		Batches:       g.Batches,
		Channels:      g.Channels,
		Rows:          g.Rows,
		Cols:          g.Cols,
		BatchStride:   g.BatchStride,
		ChannelStride: g.ChannelStride,
		RowStride:     g.RowStride,
		Data:          slices.Clone(g.Data),
	}
}

func (g General) At(batch, ch, row, col int) int {
	return (batch * g.BatchStride) + (ch * g.ChannelStride) + (row * g.RowStride) + col
}

func (g General) SameShape(other General) error {
	if g.Batches != other.Batches || g.Channels != other.Channels || g.Rows != other.Rows || g.Cols != other.Cols {
		return fmt.Errorf("%w: (%d, %d, %d, %d) != (%d, %d, %d, %d)", vector.ErrShapeMismatch,
			g.Batches, g.Channels, g.Rows, g.Cols, other.Batches, other.Channels, other.Rows, other.Cols)
	}
	return nil
}

// Image returns a view of one example of the batch.
func (g General) Image(batch int) tensor3d.General {
	offset := batch * g.BatchStride
	return tensor3d.General{
		Channels:      g.Channels,
		Rows:          g.Rows,
		Cols:          g.Cols,
		ChannelStride: g.ChannelStride,
		RowStride:     g.RowStride,
		Data:          g.Data[offset : offset+g.BatchStride],
	}
}

func (g General) ToVector() blas32.Vector {
	return blas32.Vector{
		N:    g.N(),
		Inc:  1,
		Data: g.Data,
	}
}

func (g General) Flatten() blas32.Vector {
	return blas32.Vector{
		N:    g.N(),
		Inc:  1,
		Data: slices.Clone(g.Data),
	}
}
