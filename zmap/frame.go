package zmap

import (
	"fmt"
	"math"

	"github.com/arloliu/zcbuf/endian"
	"github.com/arloliu/zcbuf/errs"
)

const frameHeaderSize = 4

// splitFrames cuts b into exactly n parts, each stored as [len:u32][bytes].
// Trailing bytes are rejected.
func splitFrames(b []byte, n int) ([][]byte, error) {
	engine := endian.Engine()
	parts := make([][]byte, n)

	rest := b
	for i := range parts {
		if len(rest) < frameHeaderSize {
			return nil, fmt.Errorf("%w: part %d header needs %d bytes, %d left", errs.ErrInvalidLength, i, frameHeaderSize, len(rest))
		}

		size := uint64(engine.Uint32(rest))
		rest = rest[frameHeaderSize:]

		if size > uint64(len(rest)) {
			return nil, fmt.Errorf("%w: part %d declares %d bytes, %d left", errs.ErrInvalidLength, i, size, len(rest))
		}

		parts[i] = rest[:size:size]
		rest = rest[size:]
	}

	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: %d trailing bytes", errs.ErrInvalidLength, len(rest))
	}

	return parts, nil
}

// joinFrames writes every part with its length prefix into one buffer.
func joinFrames(parts ...[]byte) ([]byte, error) {
	total := 0
	for _, p := range parts {
		if uint64(len(p)) > math.MaxUint32 {
			return nil, fmt.Errorf("%w: %d-byte part", errs.ErrTooLarge, len(p))
		}

		total += frameHeaderSize + len(p)
	}

	engine := endian.Engine()
	out := make([]byte, 0, total)
	for _, p := range parts {
		out = engine.AppendUint32(out, uint32(len(p)))
		out = append(out, p...)
	}

	return out, nil
}
