package record

// Tuple2 is an ordered pair of values.
type Tuple2[A, B any] struct {
	First  A
	Second B
}

type pairCodec[A, B any] struct {
	a Fixed[A]
	b Fixed[B]
}

// Pair returns a codec for Tuple2[A, B] laid out as a's record followed by b's.
// Pairs compare lexicographically.
func Pair[A, B any](a Fixed[A], b Fixed[B]) Fixed[Tuple2[A, B]] {
	return pairCodec[A, B]{a: a, b: b}
}

func (c pairCodec[A, B]) Width() int {
	return c.a.Width() + c.b.Width()
}

func (c pairCodec[A, B]) Validate(b []byte) error {
	wa := c.a.Width()

	return ValidateChunks(b, c.Width(), func(chunk []byte) error {
		if err := c.a.Validate(chunk[:wa]); err != nil {
			return err
		}

		return c.b.Validate(chunk[wa:])
	})
}

func (c pairCodec[A, B]) Decode(b []byte) Tuple2[A, B] {
	wa := c.a.Width()

	return Tuple2[A, B]{
		First:  c.a.Decode(b[:wa]),
		Second: c.b.Decode(b[wa:]),
	}
}

func (c pairCodec[A, B]) Encode(dst []byte, v Tuple2[A, B]) error {
	if err := checkDst(dst, c.Width()); err != nil {
		return err
	}

	wa := c.a.Width()
	if err := c.a.Encode(dst[:wa], v.First); err != nil {
		return err
	}

	return c.b.Encode(dst[wa:], v.Second)
}

func (c pairCodec[A, B]) Compare(x, y Tuple2[A, B]) int {
	if r := c.a.Compare(x.First, y.First); r != 0 {
		return r
	}

	return c.b.Compare(x.Second, y.Second)
}
