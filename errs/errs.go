// Package errs defines the sentinel errors shared by every zcbuf package.
//
// Errors are grouped into three classes so that higher layers can tell
// malformed data apart from a missing key:
//
//   - ErrValidation: the bytes (or the input of an owned constructor) are malformed
//   - ErrCapacity: an encode step would overflow the format's size fields
//   - ErrNotFound: a provider does not hold the requested key
//
// Every specific sentinel matches its class with errors.Is:
//
//	if errors.Is(err, errs.ErrValidation) {
//	    // reject the dataset
//	}
package errs

import (
	"errors"
	"fmt"
)

// Error classes.
var (
	ErrValidation = errors.New("zcbuf: validation failed")
	ErrCapacity   = errors.New("zcbuf: capacity exceeded")
	ErrNotFound   = errors.New("zcbuf: key not found")
)

type classError struct {
	msg   string
	class error
}

func (e *classError) Error() string {
	return e.msg
}

func (e *classError) Is(target error) bool {
	return target == e.class
}

func validation(msg string) error {
	return &classError{msg: "zcbuf: " + msg, class: ErrValidation}
}

// Record and container validation errors.
var (
	ErrInvalidLength       = validation("invalid byte length")
	ErrInvalidDiscriminant = validation("invalid discriminant")
	ErrInvalidUTF8         = validation("invalid UTF-8")
	ErrInvalidASCII        = validation("invalid ASCII string")
	ErrInvalidCodePoint    = validation("invalid code point")
	ErrInvalidOffsets      = validation("invalid offset table")
	ErrUnsorted            = validation("keys are not sorted")
	ErrDuplicateKey        = validation("duplicate key")
	ErrLengthMismatch      = validation("length mismatch")
	ErrInvalidJoiner       = validation("invalid joiner")
)

// Bundle validation errors.
var (
	ErrInvalidHeaderSize  = validation("invalid header size")
	ErrInvalidMagicNumber = validation("invalid magic number")
	ErrInvalidHeaderFlags = validation("invalid header flags")
	ErrInvalidCompression = validation("invalid compression type")
	ErrInvalidBodySize    = validation("invalid body size")
	ErrCorruptBody        = validation("corrupt body")
	ErrChecksumMismatch   = validation("checksum mismatch")
	ErrHashMismatch       = validation("key name hash mismatch")
	ErrHashCollision      = validation("key hash collision")
	ErrInvalidKeyName     = validation("invalid key name")
)

// ErrClosed is returned by a provider after Close.
var ErrClosed = errors.New("zcbuf: provider closed")

// ErrTooLarge is returned when an encoded size does not fit the format.
var ErrTooLarge = &classError{msg: "zcbuf: encoded size exceeds format limit", class: ErrCapacity}

// ElementError tags a validation failure with the index of the offending element.
type ElementError struct {
	Index int
	Err   error
}

func (e *ElementError) Error() string {
	return fmt.Sprintf("element %d: %v", e.Index, e.Err)
}

func (e *ElementError) Unwrap() error {
	return e.Err
}

// AtIndex wraps err with the element index i. A nil err stays nil.
func AtIndex(i int, err error) error {
	if err == nil {
		return nil
	}

	return &ElementError{Index: i, Err: err}
}

// IsValidation reports whether err belongs to the validation class.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsCapacity reports whether err belongs to the capacity class.
func IsCapacity(err error) bool {
	return errors.Is(err, ErrCapacity)
}

// IsNotFound reports whether err belongs to the not-found class.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
