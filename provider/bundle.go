package provider

import (
	"fmt"
	"iter"
	"sync"

	"github.com/arloliu/zcbuf/bundle"
	"github.com/arloliu/zcbuf/capsule"
	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/internal/options"
)

// BundleProvider serves the entries of one bundle.
//
// The bundle is opened once from its anchor. Every loaded payload shares
// that anchor: a capsule.Retainer anchor such as capsule.SharedBuffer is
// retained per payload and only released after the provider and every
// payload are closed.
type BundleProvider struct {
	cfg  Config
	mu   sync.RWMutex
	root *capsule.Capsule[bundle.Bundle, capsule.Anchor]
}

var _ Provider = (*BundleProvider)(nil)

// NewBundleProvider opens the bundle held by anchor. On failure the anchor
// is released.
func NewBundleProvider(anchor capsule.Anchor, opts ...Option) (*BundleProvider, error) {
	cfg, err := options.Build(defaultConfig(), opts...)
	if err != nil {
		return nil, err
	}

	size := len(anchor.Bytes())

	root, err := capsule.TryAttach(anchor, func(b []byte) (bundle.Bundle, error) {
		return bundle.Open(b, cfg.openOpts...)
	})
	if err != nil {
		cfg.logger.Warn("bundle rejected", "bytes", size, "error", err)
		return nil, fmt.Errorf("open bundle: %w", err)
	}

	b := root.Get()
	header := b.Header()
	cfg.logger.Info("bundle opened",
		"keys", b.Len(),
		"compression", b.Compression().String(),
		"storedBytes", header.StoredSize,
		"rawBytes", header.RawSize,
		"keyNames", b.HasKeyNames(),
	)

	return &BundleProvider{cfg: cfg, root: root}, nil
}

// NewBundleProviderFromBytes is NewBundleProvider over an owned copy of data.
func NewBundleProviderFromBytes(data []byte, opts ...Option) (*BundleProvider, error) {
	return NewBundleProvider(capsule.NewOwnedBuffer(data), opts...)
}

// Load returns the payload stored under key.
func (p *BundleProvider) Load(key string) (*Payload, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.root == nil {
		return nil, errs.ErrClosed
	}

	c, err := capsule.TryProject(p.root, func(b bundle.Bundle) ([]byte, error) {
		payload, ok := b.Lookup(key)
		if !ok {
			return nil, notFound(key)
		}

		return payload, nil
	})
	if err != nil {
		p.cfg.logger.Debug("bundle miss", "key", key)
		return nil, err
	}

	p.cfg.logger.Debug("bundle hit", "key", key, "bytes", len(c.Get()))

	return c, nil
}

// Len returns the number of entries.
func (p *BundleProvider) Len() int {
	p.mu.RLock()
	defer p.mu.RUnlock()

	if p.root == nil {
		return 0
	}

	return p.root.Get().Len()
}

// Keys yields every key name of the bundle. It yields nothing when the
// bundle has no key names or the provider was closed before iteration
// started. No lock is held while yielding; the iteration keeps its own
// reference to the bundle anchor, so it finishes even if Close runs
// meanwhile.
func (p *BundleProvider) Keys() iter.Seq[string] {
	return func(yield func(string) bool) {
		p.mu.RLock()
		if p.root == nil {
			p.mu.RUnlock()
			return
		}

		view := capsule.Project(p.root, func(b bundle.Bundle) bundle.Bundle { return b })
		p.mu.RUnlock()

		defer view.Close()

		for k := range view.Get().Keys() {
			if !yield(k) {
				return
			}
		}
	}
}

// Close releases the provider's reference to the bundle anchor. Payloads
// loaded earlier stay valid until they are closed. Close is idempotent.
func (p *BundleProvider) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.root == nil {
		return
	}

	p.root.Close()
	p.root = nil
	p.cfg.logger.Debug("bundle provider closed")
}
