package shard

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/ArthurRichard/energytrace/decode"
	"github.com/ArthurRichard/energytrace/format"
	errs "github.com/ArthurRichard/energytrace/internal/errors"
	"github.com/ArthurRichard/energytrace/internal/logging"
	"github.com/ArthurRichard/energytrace/internal/pool"
)

// LoadConfig controls how shards are read and decoded.
type LoadConfig struct {
	// Workers bounds the number of shards decoded at once. Zero means GOMAXPROCS.
	Workers int
	// Mode selects strict or lenient binary decoding.
	Mode format.DecodeMode
	// Logger receives per-shard debug records and heuristic warnings.
	Logger *slog.Logger

	// readFile replaces pooled file reads in tests.
	readFile func(path string, bb *pool.ByteBuffer) error
}

// Load reads and decodes every shard in descs concurrently.
//
// The result has one entry per descriptor, in the order of descs regardless
// of which shard finishes first. The first failure cancels the remaining
// shards and is returned; no partial result is produced.
func Load(ctx context.Context, descs []Descriptor, cfg LoadConfig) ([]decode.Samples, error) {
	workers := cfg.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}
	log := cfg.Logger
	if log == nil {
		log = logging.Component("shard")
	}
	read := cfg.readFile
	if read == nil {
		read = func(path string, bb *pool.ByteBuffer) error { return bb.ReadFile(path) }
	}

	results := make([]decode.Samples, len(descs))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)

	for i, d := range descs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			s, err := loadShard(d, cfg.Mode, read)
			if err != nil {
				return fmt.Errorf("shard %d (%s): %w", d.Index, d.Path, err)
			}
			s = s.WithShard(d.Index, d.Path)

			log.Debug("shard decoded", "shard", d.Index, "path", d.Path, "samples", s.Len())
			for _, w := range s.Warnings {
				log.Warn("shard decoded with heuristic", "kind", w.Kind.String(), "shard", w.Shard,
					"path", w.Path, "bytes", w.Bytes, "detail", w.Detail)
			}

			results[i] = s

			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}

func loadShard(d Descriptor, mode format.DecodeMode, read func(string, *pool.ByteBuffer) error) (decode.Samples, error) {
	bb := pool.GetShardBuffer()
	defer pool.PutShardBuffer(bb)

	if err := read(d.Path, bb); err != nil {
		return decode.Samples{}, errs.WrapIO(d.Path, err)
	}

	switch d.Format {
	case format.SourceCSV:
		return decode.ParseCSV(bytes.NewReader(bb.Bytes()))
	case format.SourceBinary:
		return decode.DecodeBinary(bb.Bytes(), mode)
	default:
		return decode.Samples{}, errs.Formatf("unknown shard format %s", d.Format)
	}
}
