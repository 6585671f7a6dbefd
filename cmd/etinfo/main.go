// etinfo loads EnergyTrace captures and prints a summary of each.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"text/tabwriter"

	"github.com/ArthurRichard/energytrace"
	"github.com/ArthurRichard/energytrace/format"
	"github.com/ArthurRichard/energytrace/internal/config"
	"github.com/ArthurRichard/energytrace/internal/logging"
)

// Version is set at build time via ldflags
var Version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintf(os.Stderr, "etinfo: %v\n", err)
		stop()
		os.Exit(1)
	}
}

type channelSummary struct {
	Channel string `json:"channel"`
	Min     uint32 `json:"min"`
	Max     uint32 `json:"max"`
}

type summary struct {
	Name           string           `json:"name"`
	Format         string           `json:"format"`
	Shards         int              `json:"shards"`
	Samples        int              `json:"samples"`
	Channels       []channelSummary `json:"channels"`
	Compression    string           `json:"compression"`
	RawBytes       int64            `json:"raw_bytes"`
	CompressedSize int64            `json:"compressed_bytes"`
	Ratio          float64          `json:"ratio"`
	Warnings       []string         `json:"warnings,omitempty"`
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	fs := flag.NewFlagSet("etinfo", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintf(stderr, "usage: etinfo [flags] <capture-path>...\n")
		fs.PrintDefaults()
	}

	// CLI flags
	cfgPath := fs.String("config", "", "config file path")
	compression := fs.String("compression", "", "channel codec: lz4, s2, zstd or none (overrides config)")
	strict := fs.Bool("strict", false, "reject binary shards that need decoding heuristics")
	delta := fs.Bool("delta", false, "delta-encode timestamp and energy channels")
	workers := fs.Int("workers", 0, "concurrent shard decoders (overrides config)")
	jsonOut := fs.Bool("json", false, "print summaries as JSON lines")
	verbose := fs.Bool("v", false, "debug logging")
	version := fs.Bool("version", false, "print version and exit")
	if err := fs.Parse(args); err != nil {
		return err
	}

	if *version {
		fmt.Fprintf(stdout, "etinfo %s\n", Version)
		return nil
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return fmt.Errorf("no capture path given")
	}

	cfg := config.Default()
	if *cfgPath != "" {
		loaded, err := config.Load(*cfgPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}

	// CLI overrides
	if *compression != "" {
		cfg.Compression = *compression
	}
	if *strict {
		cfg.Strict = true
	}
	if *delta {
		cfg.Delta = true
	}
	if *workers != 0 {
		cfg.Workers = *workers
	}
	if *verbose {
		cfg.Log.Level = "debug"
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

	logging.InitWithWriter(stderr, logging.ParseLevel(cfg.Log.Level), cfg.Log.JSON)
	log := logging.Component("etinfo")
	log.Debug("etinfo starting", "version", Version, "captures", fs.NArg())

	opts := cfg.Options()
	for _, path := range fs.Args() {
		c, err := energytrace.Open(ctx, path, append(opts, energytrace.WithLogger(log))...)
		if err != nil {
			return err
		}

		s := summarize(c)
		if *jsonOut {
			if err := json.NewEncoder(stdout).Encode(s); err != nil {
				return err
			}
			continue
		}
		if err := printSummary(stdout, s); err != nil {
			return err
		}
	}

	return nil
}

func summarize(c *energytrace.Capture) summary {
	stats := c.TotalStats()
	s := summary{
		Name:           c.Name(),
		Format:         c.Format().String(),
		Shards:         len(c.Shards()),
		Samples:        c.Len(),
		Compression:    stats.Algorithm.String(),
		RawBytes:       stats.OriginalSize,
		CompressedSize: stats.CompressedSize,
		Ratio:          stats.CompressionRatio(),
	}

	for _, ch := range format.Channels {
		s.Channels = append(s.Channels, channelSummary{
			Channel: ch.String(),
			Min:     c.Min(ch),
			Max:     c.Max(ch),
		})
	}
	for _, w := range c.Warnings() {
		s.Warnings = append(s.Warnings, w.String())
	}

	return s
}

func printSummary(w io.Writer, s summary) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "capture:\t%s\n", s.Name)
	fmt.Fprintf(tw, "format:\t%s\n", s.Format)
	fmt.Fprintf(tw, "shards:\t%d\n", s.Shards)
	fmt.Fprintf(tw, "samples:\t%d\n", s.Samples)
	for _, ch := range s.Channels {
		fmt.Fprintf(tw, "%s:\t[%d, %d]\n", ch.Channel, ch.Min, ch.Max)
	}
	fmt.Fprintf(tw, "memory:\t%d -> %d bytes (%s, ratio %.3f)\n",
		s.RawBytes, s.CompressedSize, s.Compression, s.Ratio)
	for _, w := range s.Warnings {
		fmt.Fprintf(tw, "warning:\t%s\n", w)
	}
	fmt.Fprintln(tw)

	return tw.Flush()
}
