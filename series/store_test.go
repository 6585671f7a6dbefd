package series

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ArthurRichard/energytrace/format"
	errs "github.com/ArthurRichard/energytrace/internal/errors"
)

var allCompressions = []format.CompressionType{
	format.CompressionNone,
	format.CompressionLZ4,
	format.CompressionS2,
	format.CompressionZstd,
}

func randomSeq[T Element](n int, maxVal uint64) []T {
	r := rand.New(rand.NewPCG(1, 2))
	seq := make([]T, n)
	for i := range seq {
		seq[i] = T(r.Uint64N(maxVal))
	}

	return seq
}

func roundTrip[T Element](t *testing.T, seq []T, opts ...Option) {
	t.Helper()

	h, err := New(seq, opts...)
	require.NoError(t, err)
	require.Equal(t, len(seq), h.Len())

	got, err := Get[T](h)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Len(t, got, len(seq))
	if len(seq) > 0 {
		require.Equal(t, seq, got)
	}
}

func TestRoundTrip_AllWidths(t *testing.T) {
	for _, ct := range allCompressions {
		t.Run(ct.String(), func(t *testing.T) {
			roundTrip(t, randomSeq[uint8](1000, math.MaxUint8+1), WithCompression(ct))
			roundTrip(t, randomSeq[uint16](1000, math.MaxUint16+1), WithCompression(ct))
			roundTrip(t, randomSeq[uint32](1000, math.MaxUint32+1), WithCompression(ct))
			roundTrip(t, randomSeq[uint64](1000, math.MaxUint64), WithCompression(ct))
			roundTrip(t, []uint32{0, math.MaxUint32, 1}, WithCompression(ct), WithBigEndian())
			roundTrip(t, []uint32{}, WithCompression(ct))
			roundTrip[uint32](t, nil, WithCompression(ct))
		})
	}
}

func TestGet_Deterministic(t *testing.T) {
	seq := randomSeq[uint32](4096, 1<<20)
	h, err := New(seq)
	require.NoError(t, err)

	first, err := h.Uint32s()
	require.NoError(t, err)
	second, err := h.Uint32s()
	require.NoError(t, err)

	require.Equal(t, first, second)
	first[0]++
	third, err := h.Uint32s()
	require.NoError(t, err)
	require.Equal(t, seq, third, "mutating a result must not affect later reads")
}

func TestNew_DoesNotRetainInput(t *testing.T) {
	seq := []uint32{1, 2, 3}
	h, err := New(seq, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	seq[0] = 99
	got, err := h.Uint32s()
	require.NoError(t, err)
	require.Equal(t, []uint32{1, 2, 3}, got)
}

func TestGet_Concurrent(t *testing.T) {
	seq := randomSeq[uint32](8192, 1<<16)
	h, err := New(seq, WithCompression(format.CompressionZstd))
	require.NoError(t, err)

	var wg sync.WaitGroup
	for range 16 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			got, err := h.Uint32s()
			require.NoError(t, err)
			require.Equal(t, seq, got)
		}()
	}
	wg.Wait()
}

func TestHandle_Metadata(t *testing.T) {
	h, err := New([]uint16{1, 2, 3}, WithCompression(format.CompressionS2))
	require.NoError(t, err)

	require.Equal(t, format.ElementUint16, h.ElementType())
	require.Equal(t, format.CompressionS2, h.Compression())
	require.Equal(t, 3, h.Len())
	require.Equal(t, 6, h.RawSize())

	stats := h.Stats()
	require.Equal(t, format.CompressionS2, stats.Algorithm)
	require.Equal(t, int64(6), stats.OriginalSize)
	require.Positive(t, stats.CompressedSize)
}

func TestNew_InvalidCompression(t *testing.T) {
	_, err := New([]uint32{1}, WithCompression(format.CompressionType(0x42)))
	require.ErrorIs(t, err, errs.ErrFormat)
}

func TestGet_WrongElementType(t *testing.T) {
	h, err := New([]uint32{1, 2})
	require.NoError(t, err)

	_, err = Get[uint64](h)
	require.ErrorIs(t, err, errs.ErrFormat)
	require.Contains(t, err.Error(), "series holds uint32, not uint64")
}

func TestGet_CorruptedPayload(t *testing.T) {
	seq := randomSeq[uint32](2048, 1<<24)

	for _, ct := range allCompressions {
		t.Run(ct.String(), func(t *testing.T) {
			h, err := New(seq, WithCompression(ct))
			require.NoError(t, err)

			corrupted := *h
			corrupted.data = append([]byte(nil), h.data...)
			corrupted.data[len(corrupted.data)/2] ^= 0xFF

			_, err = Get[uint32](&corrupted)
			require.ErrorIs(t, err, errs.ErrDecode)

			original, err := h.Uint32s()
			require.NoError(t, err)
			require.Equal(t, seq, original)
		})
	}
}

func TestGet_TruncatedPayload(t *testing.T) {
	h, err := New([]uint32{1, 2, 3, 4}, WithCompression(format.CompressionNone))
	require.NoError(t, err)

	t.Run("not a multiple of the width", func(t *testing.T) {
		bad := *h
		bad.data = h.data[:len(h.data)-1]

		_, err := Get[uint32](&bad)
		require.ErrorIs(t, err, errs.ErrFormat)
	})

	t.Run("whole elements missing", func(t *testing.T) {
		bad := *h
		bad.data = h.data[:len(h.data)-4]

		_, err := Get[uint32](&bad)
		require.ErrorIs(t, err, errs.ErrDecode)
	})

	t.Run("truncated lz4 block", func(t *testing.T) {
		lz, err := New(randomSeq[uint32](512, 1<<30))
		require.NoError(t, err)

		bad := *lz
		bad.data = lz.data[:len(lz.data)/2]

		_, err = Get[uint32](&bad)
		require.Error(t, err)
	})
}

func BenchmarkGet(b *testing.B) {
	seq := randomSeq[uint32](256*1024, 1<<16)

	for _, ct := range allCompressions {
		h, err := New(seq, WithCompression(ct))
		require.NoError(b, err)

		b.Run(ct.String(), func(b *testing.B) {
			b.SetBytes(int64(h.RawSize()))
			b.ReportAllocs()
			for b.Loop() {
				_, _ = h.Uint32s()
			}
		})
	}
}
