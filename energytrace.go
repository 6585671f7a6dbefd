// Package energytrace loads EnergyTrace power-profiling captures into memory.
//
// A capture is either a multi-shard CSV export or a .profxml root whose
// binary shards are listed in a companion ETData.xml index. Both are
// normalized into three aligned uint32 channels: timestamp, current and
// energy.
//
// # Basic Usage
//
//	capture, err := energytrace.Open(ctx, "run.profxml")
//	if err != nil {
//	    return err
//	}
//	current, _ := capture.Current()
//	for i, v := range current {
//	    fmt.Println(i, v)
//	}
//	fmt.Println("peak current:", capture.Max(format.ChannelCurrent))
//
// # Pipeline
//
// Open discovers shards (sequential suffix probing for CSV, index traversal
// for binary), decodes them in parallel, concatenates them in discovery order,
// computes per-channel min/max and compresses each channel independently.
// Any failure aborts the whole capture.
//
// # Heuristics
//
// Binary shards without a sync byte, or with a partial trailing record, are
// decoded with a fallback in lenient mode and reported via Warnings. Use
// WithStrict to reject them instead.
//
// # Concurrency
//
// A Capture is immutable. Channel reads decompress into a fresh slice every
// time and are safe from any number of goroutines.
package energytrace

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/ArthurRichard/energytrace/compress"
	"github.com/ArthurRichard/energytrace/decode"
	"github.com/ArthurRichard/energytrace/format"
	errs "github.com/ArthurRichard/energytrace/internal/errors"
	"github.com/ArthurRichard/energytrace/internal/options"
	"github.com/ArthurRichard/energytrace/series"
	"github.com/ArthurRichard/energytrace/shard"
)

type (
	// Range is the closed interval of values seen on one channel.
	Range = shard.Range
	// Warning reports a decoding heuristic applied to one shard.
	Warning = decode.Warning
	// Shard describes one file of a capture.
	Shard = shard.Descriptor
)

// Capture is an immutable, fully loaded capture.
type Capture struct {
	name     string
	format   format.SourceFormat
	length   int
	ranges   [len(format.Channels)]Range
	channels [len(format.Channels)]*series.Handle
	shards   []Shard
	warnings []Warning
}

// Open loads the capture at path. Paths ending in .csv are read as CSV
// exports, anything else as a binary .profxml root.
func Open(ctx context.Context, path string, opts ...Option) (*Capture, error) {
	cfg := newConfig()
	if err := options.Apply(cfg, opts...); err != nil {
		return nil, err
	}
	log := cfg.log().With("capture", path)

	descs, err := shard.Discover(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	log.Debug("shards discovered", "shards", len(descs), "format", shard.DetectFormat(path).String())

	parts, err := shard.Load(ctx, descs, shard.LoadConfig{
		Workers: cfg.workers,
		Mode:    cfg.mode,
		Logger:  log,
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	agg, err := shard.Concat(parts)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	c := &Capture{
		name:     path,
		format:   shard.DetectFormat(path),
		length:   agg.Len(),
		ranges:   agg.Ranges,
		shards:   descs,
		warnings: agg.Samples.Warnings,
	}

	raw := [len(format.Channels)][]uint32{
		format.ChannelTimestamp: agg.Samples.Timestamp,
		format.ChannelCurrent:   agg.Samples.Current,
		format.ChannelEnergy:    agg.Samples.Energy,
	}

	var g errgroup.Group
	for _, ch := range format.Channels {
		g.Go(func() error {
			h, err := series.New(raw[ch], cfg.seriesOptions(ch)...)
			if err != nil {
				return fmt.Errorf("%s channel: %w", ch, err)
			}
			c.channels[ch] = h

			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}

	stats := c.TotalStats()
	log.Info("capture loaded",
		"samples", c.length,
		"shards", len(descs),
		"warnings", len(c.warnings),
		"compression", cfg.compression.String(),
		"delta", cfg.delta,
		"ratio", stats.CompressionRatio(),
	)

	return c, nil
}

// Name returns the path the capture was opened from.
func (c *Capture) Name() string { return c.name }

// Format returns the on-disk shape of the capture.
func (c *Capture) Format() format.SourceFormat { return c.format }

// ElementType returns the element type of every channel.
func (c *Capture) ElementType() format.ElementType { return format.ElementUint32 }

// Len returns the number of samples in each channel.
func (c *Capture) Len() int { return c.length }

// Range returns the min/max of ch.
func (c *Capture) Range(ch format.Channel) (Range, error) {
	if !ch.Valid() {
		return Range{}, errs.Formatf("unknown channel %d", ch)
	}

	return c.ranges[ch], nil
}

// Min returns the smallest value of ch. It panics on an unknown channel.
func (c *Capture) Min(ch format.Channel) uint32 {
	return c.mustRange(ch).Min
}

// Max returns the largest value of ch. It panics on an unknown channel.
func (c *Capture) Max(ch format.Channel) uint32 {
	return c.mustRange(ch).Max
}

func (c *Capture) mustRange(ch format.Channel) Range {
	r, err := c.Range(ch)
	if err != nil {
		panic(err)
	}

	return r
}

// Channel decompresses ch into a new slice.
func (c *Capture) Channel(ch format.Channel) ([]uint32, error) {
	if !ch.Valid() {
		return nil, errs.Formatf("unknown channel %d", ch)
	}

	values, err := c.channels[ch].Uint32s()
	if err != nil {
		return nil, fmt.Errorf("%s channel: %w", ch, err)
	}

	return values, nil
}

// ChannelByName is Channel for a case-insensitive channel name
// ("timestamp", "current", "energy").
func (c *Capture) ChannelByName(name string) ([]uint32, error) {
	ch, ok := format.ParseChannel(name)
	if !ok {
		return nil, errs.Formatf("unknown channel %q", name)
	}

	return c.Channel(ch)
}

// Timestamp returns the timestamp channel in microseconds.
func (c *Capture) Timestamp() ([]uint32, error) { return c.Channel(format.ChannelTimestamp) }

// Current returns the current channel.
func (c *Capture) Current() ([]uint32, error) { return c.Channel(format.ChannelCurrent) }

// Energy returns the energy channel.
func (c *Capture) Energy() ([]uint32, error) { return c.Channel(format.ChannelEnergy) }

// Shards returns the shards in discovery order.
func (c *Capture) Shards() []Shard {
	return append([]Shard(nil), c.shards...)
}

// Warnings returns every heuristic applied while decoding, in shard order.
func (c *Capture) Warnings() []Warning {
	return append([]Warning(nil), c.warnings...)
}

// Stats returns the compressed footprint of ch.
func (c *Capture) Stats(ch format.Channel) compress.CompressionStats {
	if !ch.Valid() {
		return compress.CompressionStats{}
	}

	return c.channels[ch].Stats()
}

// TotalStats sums Stats over all channels.
func (c *Capture) TotalStats() compress.CompressionStats {
	total := c.channels[format.ChannelTimestamp].Stats()
	for _, ch := range format.Channels[1:] {
		total = total.Add(c.channels[ch].Stats())
	}

	return total
}
