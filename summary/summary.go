// Package summary collects the losses and scalar summaries produced while
// evaluating GAN losses.
package summary

import (
	"encoding/json"
	"io"
	"path"
	"sync"

	"k8s.io/klog/v2"
)

type Kind string

const (
	KindLoss   Kind = "loss"
	KindScalar Kind = "scalar"
)

type Entry struct {
	Kind  Kind    `json:"kind"`
	Name  string  `json:"name"`
	Value float32 `json:"value"`
}

// Collection is safe for concurrent use. The zero value is ready to use and a
// nil *Collection records nothing.
type Collection struct {
	mu      sync.Mutex
	losses  []Entry
	scalars []Entry
}

func NewCollection() *Collection {
	return &Collection{}
}

// Join prefixes name with scope.
func Join(scope, name string) string {
	if scope == "" {
		return name
	}
	return path.Join(scope, name)
}

// AddLoss is a no-op on a nil Collection.
func (c *Collection) AddLoss(name string, value float32) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.losses = append(c.losses, Entry{Kind: KindLoss, Name: name, Value: value})
	c.mu.Unlock()
	klog.V(4).InfoS("loss added", "name", name, "value", value)
}

// Scalar is a no-op on a nil Collection.
func (c *Collection) Scalar(name string, value float32) {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.scalars = append(c.scalars, Entry{Kind: KindScalar, Name: name, Value: value})
	c.mu.Unlock()
	klog.V(4).InfoS("scalar summary", "name", name, "value", value)
}

func (c *Collection) Losses() []Entry {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), c.losses...)
}

func (c *Collection) Scalars() []Entry {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]Entry(nil), c.scalars...)
}

// TotalLoss sums every collected loss.
func (c *Collection) TotalLoss() float32 {
	if c == nil {
		return 0.0
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	var total float32
	for _, e := range c.losses {
		total += e.Value
	}
	return total
}

func (c *Collection) Reset() {
	if c == nil {
		return
	}
	c.mu.Lock()
	c.losses = nil
	c.scalars = nil
	c.mu.Unlock()
}

// WriteJSONLines writes losses then scalars, one JSON object per line.
func (c *Collection) WriteJSONLines(w io.Writer) error {
	enc := json.NewEncoder(w)
	for _, e := range append(c.Losses(), c.Scalars()...) {
		if err := enc.Encode(e); err != nil {
			return err
		}
	}
	return nil
}
