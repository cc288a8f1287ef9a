// Package config reads a batch of discriminator outputs and images from a
// YAML or TOML file.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/irisdum/sent2-cloud-remover/reduction"
)

// File is the on-disk form of a loss evaluation.
type File struct {
	// Loss is a name accepted by gan.Load.
	Loss   string  `yaml:"loss" toml:"loss"`
	Lambda float32 `yaml:"lambda" toml:"lambda"`

	// Reduction configures the weighted Wasserstein losses.
	Reduction string `yaml:"reduction" toml:"reduction"`

	Real []float32 `yaml:"real" toml:"real"`
	Fake []float32 `yaml:"fake" toml:"fake"`

	// RealPatches and FakePatches hold one row of patch logits per example
	// and replace Real and Fake when set.
	RealPatches [][]float32 `yaml:"real_patches" toml:"real_patches"`
	FakePatches [][]float32 `yaml:"fake_patches" toml:"fake_patches"`

	RealImages []float32 `yaml:"real_images" toml:"real_images"`
	FakeImages []float32 `yaml:"fake_images" toml:"fake_images"`

	// ImageShape is (batch, channels, rows, cols). ChannelsLast reads the
	// image data as (batch, rows, cols, channels) instead.
	ImageShape   []int `yaml:"image_shape" toml:"image_shape"`
	ChannelsLast bool  `yaml:"channels_last" toml:"channels_last"`

	NoiseReal []float32 `yaml:"noise_real" toml:"noise_real"`
	NoiseFake []float32 `yaml:"noise_fake" toml:"noise_fake"`
}

// Load decodes path according to its extension: .yaml and .yml with
// yaml.v3, .toml with go-toml.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}
	f, err := Decode(filepath.Ext(path), data)
	if err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return f, nil
}

// Decode parses data in the format named by ext. Keys that File does not
// declare are errors.
func Decode(ext string, data []byte) (*File, error) {
	f := &File{}
	switch strings.ToLower(ext) {
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(f); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("decoding yaml: %w", err)
		}
	case ".toml":
		dec := toml.NewDecoder(bytes.NewReader(data)).DisallowUnknownFields()
		if err := dec.Decode(f); err != nil {
			var strict *toml.StrictMissingError
			if errors.As(err, &strict) {
				return nil, fmt.Errorf("decoding toml: %w\n%s", err, strict.String())
			}
			return nil, fmt.Errorf("decoding toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config format %q", ext)
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// ImageSize is the number of elements ImageShape describes.
func (f *File) ImageSize() int {
	if len(f.ImageShape) == 0 {
		return 0
	}
	n := 1
	for _, d := range f.ImageShape {
		n *= d
	}
	return n
}

func (f *File) Validate() error {
	if f.Loss == "" {
		return fmt.Errorf("loss is required")
	}
	if _, err := reduction.Parse(f.Reduction); err != nil {
		return err
	}

	if len(f.Real) != 0 && len(f.RealPatches) != 0 {
		return fmt.Errorf("real and real_patches are mutually exclusive")
	}
	if len(f.Fake) != 0 && len(f.FakePatches) != 0 {
		return fmt.Errorf("fake and fake_patches are mutually exclusive")
	}

	if len(f.ImageShape) == 0 {
		if len(f.RealImages) != len(f.FakeImages) {
			return fmt.Errorf("real_images has %d elements but fake_images has %d", len(f.RealImages), len(f.FakeImages))
		}
		return nil
	}
	if len(f.ImageShape) != 4 {
		return fmt.Errorf("image_shape must be (batch, channels, rows, cols), got %v", f.ImageShape)
	}
	for _, d := range f.ImageShape {
		if d <= 0 {
			return fmt.Errorf("image_shape %v has a non-positive dimension", f.ImageShape)
		}
	}
	n := f.ImageSize()
	if len(f.RealImages) != n {
		return fmt.Errorf("real_images has %d elements, image_shape %v needs %d", len(f.RealImages), f.ImageShape, n)
	}
	if len(f.FakeImages) != n {
		return fmt.Errorf("fake_images has %d elements, image_shape %v needs %d", len(f.FakeImages), f.ImageShape, n)
	}
	return nil
}
