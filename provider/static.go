package provider

import (
	"errors"
	"fmt"
	"iter"
	"maps"
	"slices"
	"sync"

	"github.com/arloliu/zcbuf/capsule"
	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/internal/options"
)

// StaticProvider serves payloads that live for the whole program, such as
// datasets baked into the binary with go:embed. Loading never copies.
type StaticProvider struct {
	cfg     Config
	mu      sync.RWMutex
	entries map[string][]byte
}

var _ Provider = (*StaticProvider)(nil)

// NewStaticProvider creates a provider over entries. The map is copied but
// the payload slices are not; they must never be modified.
func NewStaticProvider(entries map[string][]byte, opts ...Option) (*StaticProvider, error) {
	cfg, err := options.Build(defaultConfig(), opts...)
	if err != nil {
		return nil, err
	}

	return &StaticProvider{cfg: cfg, entries: maps.Clone(entries)}, nil
}

// Register adds a payload. Registering a key twice fails with
// errs.ErrDuplicateKey.
func (p *StaticProvider) Register(key string, data []byte) error {
	if key == "" {
		return errs.ErrInvalidKeyName
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if p.entries == nil {
		p.entries = make(map[string][]byte)
	}

	if _, exists := p.entries[key]; exists {
		return fmt.Errorf("%w: %q", errs.ErrDuplicateKey, key)
	}

	p.entries[key] = data

	return nil
}

// Static returns the registered payload without wrapping it in a capsule.
func (p *StaticProvider) Static(key string) ([]byte, bool) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	data, ok := p.entries[key]

	return data, ok
}

// Load returns the payload in a capsule anchored by a capsule.StaticBuffer.
func (p *StaticProvider) Load(key string) (*Payload, error) {
	data, ok := p.Static(key)
	if !ok {
		p.cfg.logger.Debug("static miss", "key", key)
		return nil, notFound(key)
	}

	p.cfg.logger.Debug("static hit", "key", key, "bytes", len(data))

	return capsule.Attach[capsule.Anchor](capsule.NewStaticBuffer(data), func(b []byte) []byte { return b }), nil
}

// Keys yields the registered keys in sorted order.
func (p *StaticProvider) Keys() iter.Seq[string] {
	p.mu.RLock()
	keys := slices.Sorted(maps.Keys(p.entries))
	p.mu.RUnlock()

	return slices.Values(keys)
}

// chain tries providers in order.
type chain struct {
	providers []Provider
}

// Chain returns a provider that asks each of providers in turn. The first
// provider that has the key wins. A not-found error moves on to the next
// provider; any other error is returned immediately.
func Chain(providers ...Provider) Provider {
	return chain{providers: slices.Clone(providers)}
}

func (c chain) Load(key string) (*Payload, error) {
	for _, p := range c.providers {
		payload, err := p.Load(key)
		if err == nil {
			return payload, nil
		}

		if !errors.Is(err, errs.ErrNotFound) {
			return nil, err
		}
	}

	return nil, notFound(key)
}
