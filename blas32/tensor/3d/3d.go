package tensor3d

import (
	"fmt"
	"slices"

	"github.com/irisdum/sent2-cloud-remover/blas32/vector"
	"gonum.org/v1/gonum/blas/blas32"
)

// General is a channels-first image.
type General struct {
	Channels      int
	Rows          int
	Cols          int
	ChannelStride int
	RowStride     int
	Data          []float32
}

func NewZeros(chs, rows, cols int) General {
	rowStride := cols
	chStride := rows * rowStride
	n := chs * chStride
	return General{
		Channels:      chs,
		Rows:          rows,
		Cols:          cols,
		ChannelStride: chStride,
		RowStride:     rowStride,
		Data:          make([]float32, n),
	}
}

func NewZerosLike(gen General) General {
	return NewZeros(gen.Channels, gen.Rows, gen.Cols)
}

func NewOnes(chs, rows, cols int) General {
	gen := NewZeros(chs, rows, cols)
	for i := range gen.Data {
		gen.Data[i] = 1.0
	}
	return gen
}

func NewOnesLike(gen General) General {
	return NewOnes(gen.Channels, gen.Rows, gen.Cols)
}

// FromData wraps data laid out channels first. data is not copied.
func FromData(chs, rows, cols int, data []float32) (General, error) {
	gen := General{
		Channels:      chs,
		Rows:          rows,
		Cols:          cols,
		ChannelStride: rows * cols,
		RowStride:     cols,
		Data:          data,
	}
	if len(data) != gen.N() {
		return General{}, fmt.Errorf("%w: %d values for a (%d, %d, %d) image", vector.ErrShapeMismatch, len(data), chs, rows, cols)
	}
	return gen, nil
}

// FromChannelsLast converts a (rows, cols, chs) image to channels first.
func FromChannelsLast(rows, cols, chs int, data []float32) (General, error) {
	hwc, err := FromData(rows, cols, chs, data)
	if err != nil {
		return General{}, err
	}
	return hwc.Transpose201(), nil
}

func (g General) N() int {
	return g.Channels * g.Rows * g.Cols
}

func (g General) Clone() General {
	return General{
		Channels:      g.Channels,
		Rows:          g.Rows,
		Cols:          g.Cols,
		ChannelStride: g.ChannelStride,
		RowStride:     g.RowStride,
		Data:          slices.Clone(g.Data),
	}
}

func (g General) At(ch, row, col int) int {
	return ch*g.ChannelStride + row*g.RowStride + col
}

func (g General) SameShape(other General) error {
	if g.Channels != other.Channels || g.Rows != other.Rows || g.Cols != other.Cols {
		return fmt.Errorf("%w: (%d, %d, %d) != (%d, %d, %d)", vector.ErrShapeMismatch,
			g.Channels, g.Rows, g.Cols, other.Channels, other.Rows, other.Cols)
	}
	return nil
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

// Transpose201 moves axis 2 to the front: a (d0, d1, d2) tensor becomes
// (d2, d0, d1).
func (g *General) Transpose201() General {
	dst := NewZeros(g.Cols, g.Channels, g.Rows)
	dstChStride := dst.ChannelStride
	dstRowStride := dst.RowStride
	for col := 0; col < g.Cols; col++ {
		dstBase := col * dstChStride
		for ch := 0; ch < g.Channels; ch++ {
			srcBase := ch*g.ChannelStride + col
			dstOff := dstBase + ch*dstRowStride
			for row := 0; row < g.Rows; row++ {
				dst.Data[dstOff+row] = g.Data[srcBase+row*g.RowStride]
			}
		}
	}
	return dst
}
