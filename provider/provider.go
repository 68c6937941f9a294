// Package provider serves named payloads as capsules.
//
// A Provider hands out each payload together with the anchor it borrows
// from, so callers can keep a loaded value for as long as they like and
// close it independently of the provider:
//
//	p, err := provider.NewBundleProvider(capsule.NewOwnedBuffer(data))
//	if err != nil {
//	    return err
//	}
//	defer p.Close()
//
//	c, err := p.Load("calendar/japanese")
//	if errs.IsNotFound(err) {
//	    // fall back
//	}
//	defer c.Close()
//
// Lookup misses are reported with the errs.ErrNotFound class and never
// confused with malformed data, which uses errs.ErrValidation. All providers
// in this package are safe for concurrent Load.
package provider

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/arloliu/zcbuf/bundle"
	"github.com/arloliu/zcbuf/capsule"
	"github.com/arloliu/zcbuf/errs"
	"github.com/arloliu/zcbuf/internal/options"
)

// Payload is a loaded payload together with its anchor.
type Payload = capsule.Capsule[[]byte, capsule.Anchor]

// Provider loads payloads by key.
type Provider interface {
	// Load returns the payload stored under key. A missing key yields an
	// error matching errs.ErrNotFound.
	Load(key string) (*Payload, error)
}

// Config holds the settings shared by every provider.
type Config struct {
	logger   *slog.Logger
	openOpts []bundle.ReaderOption
}

// Option configures a provider.
type Option = options.Option[*Config]

func defaultConfig() Config {
	return Config{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// WithLogger sets the logger. Providers log loads and misses at debug
// level and bundle opens at info level. The default discards everything.
func WithLogger(logger *slog.Logger) Option {
	return options.New(func(cfg *Config) error {
		if logger == nil {
			return errors.New("provider: nil logger")
		}

		cfg.logger = logger

		return nil
	})
}

// WithOpenOptions sets the options passed to bundle.Open.
func WithOpenOptions(opts ...bundle.ReaderOption) Option {
	return options.NoError(func(cfg *Config) {
		cfg.openOpts = append(cfg.openOpts, opts...)
	})
}

func notFound(key string) error {
	return fmt.Errorf("%w: %q", errs.ErrNotFound, key)
}

// LoadAs loads key from p and decodes the payload into a typed value that
// keeps borrowing the same anchor. A decode failure closes the payload.
func LoadAs[T any](p Provider, key string, decode func([]byte) (T, error)) (*capsule.Capsule[T, capsule.Anchor], error) {
	c, err := p.Load(key)
	if err != nil {
		return nil, err
	}

	out, err := capsule.TryMap(c, decode)
	if err != nil {
		return nil, fmt.Errorf("decode %q: %w", key, err)
	}

	return out, nil
}
