// Package decode turns one capture shard, CSV or binary, into three aligned
// sample sequences.
//
// Decoding never looks at other shards; ordering and concatenation belong to
// the shard package.
package decode

import (
	"fmt"

	errs "github.com/ArthurRichard/energytrace/internal/errors"
)

// WarningKind classifies a heuristic applied while decoding a shard.
type WarningKind uint8

const (
	// WarnAmbiguousSync means no sync byte was found and decoding started at offset 0.
	WarnAmbiguousSync WarningKind = iota + 1
	// WarnPaddedTail means the last record was completed by repeating the final byte.
	WarnPaddedTail
)

func (k WarningKind) String() string {
	switch k {
	case WarnAmbiguousSync:
		return "ambiguous-sync"
	case WarnPaddedTail:
		return "padded-tail"
	default:
		return "unknown"
	}
}

// Warning reports a non-fatal heuristic that altered how raw bytes were read.
type Warning struct {
	Kind WarningKind
	// Shard is the discovery index of the shard, or -1 when decoded standalone.
	Shard int
	// Path is the shard file, empty when decoded from memory.
	Path string
	// Bytes is the number of pad bytes for WarnPaddedTail.
	Bytes  int
	Detail string
}

func (w Warning) String() string {
	if w.Path != "" {
		return fmt.Sprintf("%s: shard %d (%s): %s", w.Kind, w.Shard, w.Path, w.Detail)
	}

	return fmt.Sprintf("%s: %s", w.Kind, w.Detail)
}

// Samples holds the decoded channels of one shard. Index i of each slice
// refers to the same measurement.
type Samples struct {
	Timestamp []uint32
	Current   []uint32
	Energy    []uint32
	Warnings  []Warning
}

// Len returns the number of samples.
func (s Samples) Len() int {
	return len(s.Timestamp)
}

// Validate checks that the three channels have the same length.
func (s Samples) Validate() error {
	if len(s.Current) != len(s.Timestamp) || len(s.Energy) != len(s.Timestamp) {
		return errs.Formatf("channel length mismatch: timestamp=%d current=%d energy=%d",
			len(s.Timestamp), len(s.Current), len(s.Energy))
	}

	return nil
}

// WithShard returns a copy of s whose warnings are tagged with the shard index and path.
func (s Samples) WithShard(index int, path string) Samples {
	if len(s.Warnings) == 0 {
		return s
	}

	tagged := make([]Warning, len(s.Warnings))
	for i, w := range s.Warnings {
		w.Shard = index
		w.Path = path
		tagged[i] = w
	}
	s.Warnings = tagged

	return s
}

func makeSamples(n int) Samples {
	return Samples{
		Timestamp: make([]uint32, n),
		Current:   make([]uint32, n),
		Energy:    make([]uint32, n),
	}
}
