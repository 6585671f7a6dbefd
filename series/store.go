// Package series stores one sample sequence as a compressed, immutable payload.
//
// A Handle is created once by New and never changes. Every Get decompresses
// the payload into a fresh slice; nothing is cached, so repeated reads return
// bit-identical sequences and readers never share memory with each other or
// with the Handle.
package series

import (
	"github.com/cespare/xxhash/v2"

	"github.com/ArthurRichard/energytrace/compress"
	"github.com/ArthurRichard/energytrace/endian"
	"github.com/ArthurRichard/energytrace/format"
	errs "github.com/ArthurRichard/energytrace/internal/errors"
	"github.com/ArthurRichard/energytrace/internal/options"
)

// Element is the set of sample types a Handle can hold.
type Element interface {
	uint8 | uint16 | uint32 | uint64
}

// Handle is an immutable compressed sequence.
type Handle struct {
	elem     format.ElementType
	codec    format.CompressionType
	engine   endian.EndianEngine
	layout   Layout
	count    int
	rawLen   int
	checksum uint64
	data     []byte
}

type config struct {
	compression format.CompressionType
	engine      endian.EndianEngine
	layout      Layout
}

// Option configures New.
type Option = options.Option[*config]

// WithCompression selects the codec. The default is LZ4.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *config) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return errs.Formatf("%v", err)
		}
		c.compression = ct

		return nil
	})
}

// WithLittleEndian serializes elements least significant byte first. It is the default.
func WithLittleEndian() Option {
	return options.NoError(func(c *config) {
		c.engine = endian.GetLittleEndianEngine()
	})
}

// WithBigEndian serializes elements most significant byte first.
func WithBigEndian() Option {
	return options.NoError(func(c *config) {
		c.engine = endian.GetBigEndianEngine()
	})
}

// WithDelta stores the sequence as delta-of-delta varints before
// compression. It suits monotonic channels such as timestamps and
// accumulated energy; the byte order option is ignored.
func WithDelta() Option {
	return options.NoError(func(c *config) {
		c.layout = LayoutDelta
	})
}

// New serializes seq, compresses it and returns the resulting Handle.
// seq is not retained.
func New[T Element](seq []T, opts ...Option) (*Handle, error) {
	cfg := &config{
		compression: format.CompressionLZ4,
		engine:      endian.GetLittleEndianEngine(),
	}
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}

	elem := elementType[T]()
	var raw []byte
	if cfg.layout == LayoutDelta {
		raw = encodeDelta(seq)
	} else {
		raw = encode(cfg.engine, elem.Width(), seq)
	}

	h := &Handle{
		elem:     elem,
		codec:    cfg.compression,
		engine:   cfg.engine,
		layout:   cfg.layout,
		count:    len(seq),
		rawLen:   len(raw),
		checksum: xxhash.Sum64(raw),
	}
	if len(raw) == 0 {
		return h, nil
	}

	codec, err := compress.GetCodec(cfg.compression)
	if err != nil {
		return nil, errs.Formatf("%v", err)
	}
	data, err := codec.Compress(raw)
	if err != nil {
		return nil, errs.Decodef("%s compression: %v", cfg.compression, err)
	}
	h.data = data

	return h, nil
}

// Get decompresses h into a new slice.
//
// Fails with ErrFormat if T is not the stored element type or the payload
// length is not a multiple of the element width, and with ErrDecode if the
// payload is corrupted or truncated.
func Get[T Element](h *Handle) ([]T, error) {
	if want := elementType[T](); want != h.elem {
		return nil, errs.Formatf("series holds %s, not %s", h.elem, want)
	}
	if h.rawLen == 0 {
		return make([]T, 0), nil
	}

	codec, err := compress.GetCodec(h.codec)
	if err != nil {
		return nil, errs.Decodef("%v", err)
	}
	raw, err := compress.Decompress(codec, h.data, h.rawLen)
	if err != nil {
		return nil, errs.Decodef("%s decompression: %v", h.codec, err)
	}

	width := h.elem.Width()
	if h.layout == LayoutRaw && len(raw)%width != 0 {
		return nil, errs.Formatf("payload of %d bytes is not a multiple of %s width %d", len(raw), h.elem, width)
	}
	if len(raw) != h.rawLen {
		return nil, errs.Decodef("payload is %d bytes, expected %d", len(raw), h.rawLen)
	}
	if xxhash.Sum64(raw) != h.checksum {
		return nil, errs.Decodef("payload checksum mismatch")
	}

	if h.layout == LayoutDelta {
		return decodeDelta[T](raw, h.count)
	}

	return decodeRaw[T](h.engine, width, raw), nil
}

// Uint32s is Get[uint32](h).
func (h *Handle) Uint32s() ([]uint32, error) {
	return Get[uint32](h)
}

// ElementType returns the stored element type tag.
func (h *Handle) ElementType() format.ElementType { return h.elem }

// Compression returns the codec used for the payload.
func (h *Handle) Compression() format.CompressionType { return h.codec }

// Len returns the number of elements.
func (h *Handle) Len() int { return h.count }

// Layout returns the payload layout.
func (h *Handle) Layout() Layout { return h.layout }

// RawSize returns the uncompressed payload size in bytes. For LayoutDelta
// this is the varint stream, not count times the element width.
func (h *Handle) RawSize() int { return h.rawLen }

// Stats reports the fixed-width size of the sequence and the compressed
// payload size.
func (h *Handle) Stats() compress.CompressionStats {
	return compress.CompressionStats{
		Algorithm:      h.codec,
		OriginalSize:   int64(h.count * h.elem.Width()),
		CompressedSize: int64(len(h.data)),
	}
}

func elementType[T Element]() format.ElementType {
	var zero T
	switch any(zero).(type) {
	case uint8:
		return format.ElementUint8
	case uint16:
		return format.ElementUint16
	case uint32:
		return format.ElementUint32
	default:
		return format.ElementUint64
	}
}

func encode[T Element](engine endian.EndianEngine, width int, seq []T) []byte {
	buf := make([]byte, 0, len(seq)*width)
	for _, v := range seq {
		switch width {
		case 1:
			buf = append(buf, byte(v))
		case 2:
			buf = engine.AppendUint16(buf, uint16(v))
		case 4:
			buf = engine.AppendUint32(buf, uint32(v))
		default:
			buf = engine.AppendUint64(buf, uint64(v))
		}
	}

	return buf
}

func decodeRaw[T Element](engine endian.EndianEngine, width int, raw []byte) []T {
	out := make([]T, len(raw)/width)
	for i := range out {
		b := raw[i*width : (i+1)*width]
		switch width {
		case 1:
			out[i] = T(b[0])
		case 2:
			out[i] = T(engine.Uint16(b))
		case 4:
			out[i] = T(engine.Uint32(b))
		default:
			out[i] = T(engine.Uint64(b))
		}
	}

	return out
}
