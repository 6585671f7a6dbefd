package shard

import (
	"slices"

	"github.com/ArthurRichard/energytrace/decode"
	"github.com/ArthurRichard/energytrace/format"
	errs "github.com/ArthurRichard/energytrace/internal/errors"
)

// Range is the closed interval of values seen on one channel.
type Range struct {
	Min uint32
	Max uint32
}

// Contains reports whether v lies within r.
func (r Range) Contains(v uint32) bool {
	return v >= r.Min && v <= r.Max
}

// Aggregate is the concatenation of every shard of a capture.
type Aggregate struct {
	Samples decode.Samples
	Ranges  [len(format.Channels)]Range
}

// Range returns the value range of ch.
func (a Aggregate) Range(ch format.Channel) Range {
	return a.Ranges[ch]
}

// Len returns the number of samples across all shards.
func (a Aggregate) Len() int {
	return a.Samples.Len()
}

// Concat joins parts in slice order and computes per-channel ranges.
//
// Parts are never sorted or merged by value. Zero parts, or parts holding no
// samples at all, fail with ErrEmptyCapture.
func Concat(parts []decode.Samples) (Aggregate, error) {
	if len(parts) == 0 {
		return Aggregate{}, errs.Emptyf("no shards")
	}

	total := 0
	warnings := 0
	for i, p := range parts {
		if err := p.Validate(); err != nil {
			return Aggregate{}, errs.Formatf("shard %d: %v", i, err)
		}
		total += p.Len()
		warnings += len(p.Warnings)
	}
	if total == 0 {
		return Aggregate{}, errs.Emptyf("%d shards hold no samples", len(parts))
	}

	out := decode.Samples{
		Timestamp: make([]uint32, 0, total),
		Current:   make([]uint32, 0, total),
		Energy:    make([]uint32, 0, total),
	}
	if warnings > 0 {
		out.Warnings = make([]decode.Warning, 0, warnings)
	}
	for _, p := range parts {
		out.Timestamp = append(out.Timestamp, p.Timestamp...)
		out.Current = append(out.Current, p.Current...)
		out.Energy = append(out.Energy, p.Energy...)
		out.Warnings = append(out.Warnings, p.Warnings...)
	}

	agg := Aggregate{Samples: out}
	agg.Ranges[format.ChannelTimestamp] = rangeOf(out.Timestamp)
	agg.Ranges[format.ChannelCurrent] = rangeOf(out.Current)
	agg.Ranges[format.ChannelEnergy] = rangeOf(out.Energy)

	return agg, nil
}

func rangeOf(values []uint32) Range {
	return Range{Min: slices.Min(values), Max: slices.Max(values)}
}
