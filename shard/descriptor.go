// Package shard discovers the files that make up a capture, loads them in
// parallel and concatenates their samples in discovery order.
package shard

import "github.com/ArthurRichard/energytrace/format"

// Descriptor identifies one shard of a capture.
type Descriptor struct {
	// Index is the position of the shard in discovery order.
	Index  int
	Path   string
	Format format.SourceFormat
	// LengthHint is the length declared by the binary index. It is kept for
	// reporting only and never checked against the decoded shard.
	LengthHint    int64
	HasLengthHint bool
}
