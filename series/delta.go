package series

import (
	"encoding/binary"

	errs "github.com/ArthurRichard/energytrace/internal/errors"
)

// Layout is the byte layout of a payload before compression.
type Layout uint8

const (
	// LayoutRaw stores every element at its fixed width.
	LayoutRaw Layout = iota
	// LayoutDelta stores the first element as a uvarint followed by
	// zigzag varint delta-of-deltas.
	LayoutDelta
)

func (l Layout) String() string {
	switch l {
	case LayoutRaw:
		return "raw"
	case LayoutDelta:
		return "delta"
	default:
		return "unknown"
	}
}

// encodeDelta writes seq as delta-of-delta varints. Differences wrap in
// uint64, so decreasing sequences round-trip too.
//
// Steady sample clocks produce a delta-of-delta of 0, one byte per element.
func encodeDelta[T Element](seq []T) []byte {
	if len(seq) == 0 {
		return nil
	}

	buf := make([]byte, 0, binary.MaxVarintLen64+len(seq)*2)
	buf = binary.AppendUvarint(buf, uint64(seq[0]))

	prev := uint64(seq[0])
	var prevDelta int64
	for _, v := range seq[1:] {
		delta := int64(uint64(v) - prev) //nolint:gosec
		buf = binary.AppendVarint(buf, delta-prevDelta)
		prev, prevDelta = uint64(v), delta
	}

	return buf
}

func decodeDelta[T Element](raw []byte, count int) ([]T, error) {
	out := make([]T, 0, count)
	if count == 0 {
		if len(raw) != 0 {
			return nil, errs.Decodef("delta payload has %d bytes for no elements", len(raw))
		}

		return out, nil
	}

	first, n := binary.Uvarint(raw)
	if n <= 0 {
		return nil, errs.Decodef("delta payload: bad first value")
	}
	if uint64(T(first)) != first {
		return nil, errs.Decodef("delta payload: value %d overflows element", first)
	}
	raw = raw[n:]
	out = append(out, T(first))

	prev := first
	var prevDelta int64
	for len(out) < count {
		dod, n := binary.Varint(raw)
		if n <= 0 {
			return nil, errs.Decodef("delta payload truncated after %d of %d elements", len(out), count)
		}
		raw = raw[n:]

		prevDelta += dod
		prev += uint64(prevDelta) //nolint:gosec
		if uint64(T(prev)) != prev {
			return nil, errs.Decodef("delta payload: value %d overflows element", prev)
		}
		out = append(out, T(prev))
	}
	if len(raw) != 0 {
		return nil, errs.Decodef("delta payload has %d trailing bytes", len(raw))
	}

	return out, nil
}
