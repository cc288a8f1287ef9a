package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"k8s.io/klog/v2"

	"github.com/irisdum/sent2-cloud-remover/blas32/backend"
	"github.com/irisdum/sent2-cloud-remover/blas32/tensor/2d"
	"github.com/irisdum/sent2-cloud-remover/blas32/tensor/4d"
	"github.com/irisdum/sent2-cloud-remover/blas32/vector"
	"github.com/irisdum/sent2-cloud-remover/config"
	"github.com/irisdum/sent2-cloud-remover/gan"
	"github.com/irisdum/sent2-cloud-remover/reduction"
	"github.com/irisdum/sent2-cloud-remover/summary"
	"gonum.org/v1/gonum/blas/blas32"
)

func main() {
	ctx := context.Background()
	err := run(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s\n", err)
		os.Exit(1)
	}
}

type options struct {
	Summaries bool
	Scope     string
}

func run(ctx context.Context) error {
	configPath := ""
	flag.StringVar(&configPath, "config", configPath, "batch file (.yaml, .yml or .toml)")
	opt := options{}
	flag.BoolVar(&opt.Summaries, "summaries", opt.Summaries, "print the collected losses and summaries as JSON lines")
	flag.StringVar(&opt.Scope, "scope", opt.Scope, "name the loss is collected under")

	klog.InitFlags(nil)
	flag.Parse()

	log := klog.FromContext(ctx)

	if configPath == "" {
		return fmt.Errorf("-config is required")
	}
	f, err := config.Load(configPath)
	if err != nil {
		return err
	}
	log.Info("Starting ganloss", "config", configPath, "loss", f.Loss, "blas", backend.Name())

	return evaluate(ctx, f, opt, os.Stdout)
}

// evaluate runs the loss named in f and writes both terms to out.
func evaluate(ctx context.Context, f *config.File, opt options, out io.Writer) error {
	log := klog.FromContext(ctx)

	b, err := newBatch(ctx, f)
	if err != nil {
		return err
	}

	t, err := reduction.Parse(f.Reduction)
	if err != nil {
		return err
	}
	collection := summary.NewCollection()
	c := &gan.Config{
		Reduction:    t,
		Scope:        opt.Scope,
		Collection:   collection,
		AddSummaries: opt.Summaries,
	}

	lossFunc, err := gan.Load(f.Loss, c)
	if err != nil {
		return err
	}
	first, second, err := lossFunc(b)
	if err != nil {
		return fmt.Errorf("evaluating %s: %w", f.Loss, err)
	}
	log.V(2).Info("Evaluated loss", "loss", f.Loss, "first", first, "second", second)

	if _, err := fmt.Fprintf(out, "%s\t%g\t%g\n", f.Loss, first, second); err != nil {
		return err
	}
	if opt.Summaries {
		if err := collection.WriteJSONLines(out); err != nil {
			return fmt.Errorf("writing summaries: %w", err)
		}
	}
	return nil
}

func newBatch(ctx context.Context, f *config.File) (*gan.Batch, error) {
	realOutputs, err := newOutputs(ctx, "real", f.Real, f.RealPatches)
	if err != nil {
		return nil, err
	}
	fakeOutputs, err := newOutputs(ctx, "fake", f.Fake, f.FakePatches)
	if err != nil {
		return nil, err
	}
	realImages, err := newImages(f, f.RealImages)
	if err != nil {
		return nil, fmt.Errorf("real images: %w", err)
	}
	fakeImages, err := newImages(f, f.FakeImages)
	if err != nil {
		return nil, fmt.Errorf("fake images: %w", err)
	}
	return &gan.Batch{
		RealOutputs: realOutputs,
		FakeOutputs: fakeOutputs,
		RealImages:  realImages,
		FakeImages:  fakeImages,
		NoiseReal:   vector.FromSlice(f.NoiseReal),
		NoiseFake:   vector.FromSlice(f.NoiseFake),
		Lambda:      f.Lambda,
	}, nil
}

// newOutputs scores every patch of a patch discriminator as its own logit.
func newOutputs(ctx context.Context, side string, outputs []float32, patches [][]float32) (blas32.Vector, error) {
	if len(patches) == 0 {
		return vector.FromSlice(outputs), nil
	}
	gen, err := tensor2d.FromRows(patches)
	if err != nil {
		return blas32.Vector{}, fmt.Errorf("%s patches: %w", side, err)
	}
	if log := klog.FromContext(ctx).V(2); log.Enabled() {
		scores, err := tensor2d.Mean1(gen)
		if err != nil {
			return blas32.Vector{}, fmt.Errorf("%s patches: %w", side, err)
		}
		log.Info("Patch discriminator scores", "side", side, "mean", scores.Data)
	}
	return tensor2d.ToVector(gen), nil
}

// newImages lays data out channels first so real and fake batches compare
// element by element whatever layout the file uses.
func newImages(f *config.File, data []float32) (blas32.Vector, error) {
	if len(f.ImageShape) == 0 {
		return vector.FromSlice(data), nil
	}
	batches, chs, rows, cols := f.ImageShape[0], f.ImageShape[1], f.ImageShape[2], f.ImageShape[3]
	var images tensor4d.General
	var err error
	if f.ChannelsLast {
		images, err = tensor4d.FromChannelsLast(batches, rows, cols, chs, data)
	} else {
		images, err = tensor4d.FromData(batches, chs, rows, cols, data)
	}
	if err != nil {
		return blas32.Vector{}, err
	}
	return images.ToVector(), nil
}
