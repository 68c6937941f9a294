// Package zcbuf provides zero-copy binary containers for read-mostly
// datasets: typed sequences and sorted maps that are validated once and
// then read in place, capsules that keep a view together with the buffer
// it borrows from, and a persisted bundle format with providers on top.
//
// # Core Features
//
//   - Fixed and variable record codecs (record package)
//   - Seq and VarSeq views with O(1) indexing and binary search (seq, varseq)
//   - Sorted one and two level maps (zmap)
//   - Owner+view capsules with shared, owned and static anchors (capsule)
//   - Checksummed, optionally compressed bundles (bundle)
//   - Key/value providers returning capsules (provider)
//
// # Basic Usage
//
// Building and reading a map of strings:
//
//	m, _ := zcbuf.NewStringMap(map[string]string{"en": "hello", "fr": "bonjour"})
//	data := m.Bytes()
//
//	view, err := zcbuf.ParseStringMap(data)
//	if err != nil {
//	    return err
//	}
//	greeting, ok := view.Get("fr")
//
// Writing and serving a bundle:
//
//	data, _ := zcbuf.EncodeBundle(map[string][]byte{"calendar/japanese": eras})
//
//	p, _ := zcbuf.OpenBundle(data)
//	defer p.Close()
//
//	c, err := p.Load("calendar/japanese")
//
// # Package Structure
//
// This package provides convenient top-level wrappers for the common paths.
// For fine-grained control, use the sub-packages directly.
package zcbuf

import (
	"maps"
	"slices"

	"github.com/arloliu/zcbuf/bundle"
	"github.com/arloliu/zcbuf/provider"
	"github.com/arloliu/zcbuf/record"
	"github.com/arloliu/zcbuf/varseq"
	"github.com/arloliu/zcbuf/zmap"
)

var stringColumn = zmap.Var(record.String)

// KeyID returns the 64-bit key a bundle stores for name.
func KeyID(name string) uint64 {
	return bundle.KeyID(name)
}

// NewStringMap builds an owned string to string map.
func NewStringMap(m map[string]string) (zmap.Map[string, string], error) {
	return zmap.FromMap(stringColumn, stringColumn, m)
}

// ParseStringMap validates a string to string map, key order included, and
// returns a view over data.
func ParseStringMap(data []byte) (zmap.Map[string, string], error) {
	return zmap.ParseSorted(stringColumn, stringColumn, data)
}

// NewStrings encodes a list of strings.
func NewStrings(elems []string) (varseq.VarSeq[string], error) {
	return varseq.FromElements(record.String, elems)
}

// ParseStrings validates an encoded list of strings and returns a view over data.
func ParseStrings(data []byte) (varseq.VarSeq[string], error) {
	return varseq.Parse(record.String, data)
}

// EncodeBundle writes entries as a bundle, in key order so that equal
// inputs give identical bytes.
func EncodeBundle(entries map[string][]byte, opts ...bundle.EncoderOption) ([]byte, error) {
	enc, err := bundle.NewEncoder(opts...)
	if err != nil {
		return nil, err
	}

	for _, name := range slices.Sorted(maps.Keys(entries)) {
		if err := enc.Add(name, entries[name]); err != nil {
			return nil, err
		}
	}

	return enc.Finish()
}

// OpenBundle validates data and returns a provider over an owned copy of it.
func OpenBundle(data []byte, opts ...provider.Option) (*provider.BundleProvider, error) {
	return provider.NewBundleProviderFromBytes(data, opts...)
}
