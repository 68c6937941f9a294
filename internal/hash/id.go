// Package hash provides the xxHash64 functions used for bundle key IDs and
// body checksums.
package hash

import "github.com/cespare/xxhash/v2"

// ID computes the xxHash64 of the given key name.
func ID(data string) uint64 {
	return xxhash.Sum64String(data)
}

// Sum computes the xxHash64 of a byte slice. Bundles store it as the raw
// body checksum.
func Sum(data []byte) uint64 {
	return xxhash.Sum64(data)
}
