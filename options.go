package energytrace

import (
	"log/slog"
	"runtime"

	"github.com/ArthurRichard/energytrace/compress"
	"github.com/ArthurRichard/energytrace/format"
	errs "github.com/ArthurRichard/energytrace/internal/errors"
	"github.com/ArthurRichard/energytrace/internal/logging"
	"github.com/ArthurRichard/energytrace/internal/options"
	"github.com/ArthurRichard/energytrace/series"
)

// Config holds the settings Open applies while building a capture.
type Config struct {
	compression format.CompressionType
	mode        format.DecodeMode
	workers     int
	delta       bool
	logger      *slog.Logger
}

// Option configures Open.
type Option = options.Option[*Config]

func newConfig() *Config {
	return &Config{
		compression: format.CompressionLZ4,
		mode:        format.DecodeLenient,
		workers:     runtime.GOMAXPROCS(0),
	}
}

// WithCompression sets the codec used to hold channels in memory.
// The default is LZ4.
func WithCompression(ct format.CompressionType) Option {
	return options.New(func(c *Config) error {
		if _, err := compress.GetCodec(ct); err != nil {
			return errs.Formatf("%v", err)
		}
		c.compression = ct

		return nil
	})
}

// WithDecodeMode selects lenient (default) or strict binary decoding.
func WithDecodeMode(mode format.DecodeMode) Option {
	return options.New(func(c *Config) error {
		switch mode {
		case format.DecodeLenient, format.DecodeStrict:
			c.mode = mode
			return nil
		default:
			return errs.Formatf("invalid decode mode: %d", mode)
		}
	})
}

// WithStrict is WithDecodeMode(format.DecodeStrict).
func WithStrict() Option {
	return WithDecodeMode(format.DecodeStrict)
}

// WithWorkers bounds how many shards are decoded concurrently.
// The default is GOMAXPROCS.
func WithWorkers(n int) Option {
	return options.New(func(c *Config) error {
		if n < 1 {
			return errs.Formatf("workers must be at least 1, got %d", n)
		}
		c.workers = n

		return nil
	})
}

// WithDeltaEncoding stores the timestamp and energy channels as
// delta-of-delta varints before compression. Both grow monotonically in a
// well-formed capture, so the encoded stream is mostly single bytes.
func WithDeltaEncoding() Option {
	return options.NoError(func(c *Config) {
		c.delta = true
	})
}

// WithLogger sets the logger for load progress and decoding warnings.
// The default is the "energytrace" component logger.
func WithLogger(l *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		c.logger = l
	})
}

func (c *Config) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}

	return logging.Component("energytrace")
}

// seriesOptions returns the series options used to store ch.
func (c *Config) seriesOptions(ch format.Channel) []series.Option {
	opts := []series.Option{series.WithCompression(c.compression)}
	if c.delta && ch != format.ChannelCurrent {
		opts = append(opts, series.WithDelta())
	}

	return opts
}
