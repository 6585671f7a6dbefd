package shard

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ArthurRichard/energytrace/decode"
	"github.com/ArthurRichard/energytrace/format"
	errs "github.com/ArthurRichard/energytrace/internal/errors"
)

func samples(ts, cur, en []uint32) decode.Samples {
	return decode.Samples{Timestamp: ts, Current: cur, Energy: en}
}

func TestConcat_DiscoveryOrder(t *testing.T) {
	parts := []decode.Samples{
		samples([]uint32{500, 600}, []uint32{5, 6}, []uint32{50, 60}),
		samples([]uint32{100}, []uint32{1}, []uint32{10}),
		samples([]uint32{900, 200}, []uint32{9, 2}, []uint32{90, 20}),
	}

	agg, err := Concat(parts)
	require.NoError(t, err)
	require.Equal(t, 5, agg.Len())

	require.Equal(t, []uint32{500, 600, 100, 900, 200}, agg.Samples.Timestamp)
	require.Equal(t, []uint32{5, 6, 1, 9, 2}, agg.Samples.Current)
	require.Equal(t, []uint32{50, 60, 10, 90, 20}, agg.Samples.Energy)

	require.Equal(t, Range{Min: 100, Max: 900}, agg.Range(format.ChannelTimestamp))
	require.Equal(t, Range{Min: 1, Max: 9}, agg.Range(format.ChannelCurrent))
	require.Equal(t, Range{Min: 10, Max: 90}, agg.Range(format.ChannelEnergy))
}

func TestConcat_RangeInvariant(t *testing.T) {
	parts := []decode.Samples{
		samples([]uint32{3, 1, 4, 1, 5}, []uint32{9, 2, 6, 5, 3}, []uint32{5, 8, 9, 7, 9}),
		samples(nil, nil, nil),
		samples([]uint32{2, 6}, []uint32{5, 3}, []uint32{5, 8}),
	}

	agg, err := Concat(parts)
	require.NoError(t, err)

	channels := map[format.Channel][]uint32{
		format.ChannelTimestamp: agg.Samples.Timestamp,
		format.ChannelCurrent:   agg.Samples.Current,
		format.ChannelEnergy:    agg.Samples.Energy,
	}
	for ch, values := range channels {
		require.Len(t, values, agg.Len())
		r := agg.Range(ch)
		for _, v := range values {
			require.True(t, r.Contains(v), "%s value %d outside [%d, %d]", ch, v, r.Min, r.Max)
		}
	}
}

func TestConcat_Warnings(t *testing.T) {
	a := samples([]uint32{1}, []uint32{1}, []uint32{1})
	a.Warnings = []decode.Warning{{Kind: decode.WarnAmbiguousSync, Shard: 0}}
	b := samples([]uint32{2}, []uint32{2}, []uint32{2})
	b.Warnings = []decode.Warning{{Kind: decode.WarnPaddedTail, Shard: 1}}

	agg, err := Concat([]decode.Samples{a, b})
	require.NoError(t, err)
	require.Len(t, agg.Samples.Warnings, 2)
	require.Equal(t, decode.WarnAmbiguousSync, agg.Samples.Warnings[0].Kind)
	require.Equal(t, 1, agg.Samples.Warnings[1].Shard)
}

func TestConcat_Empty(t *testing.T) {
	_, err := Concat(nil)
	require.ErrorIs(t, err, errs.ErrEmptyCapture)

	_, err = Concat([]decode.Samples{{}, {}})
	require.ErrorIs(t, err, errs.ErrEmptyCapture)
}

func TestConcat_MisalignedPart(t *testing.T) {
	_, err := Concat([]decode.Samples{samples([]uint32{1, 2}, []uint32{1}, []uint32{1, 2})})
	require.ErrorIs(t, err, errs.ErrFormat)
}
