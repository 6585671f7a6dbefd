package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

type loadConfig struct {
	workers int
	strict  bool
	calls   []string
}

func withWorkers(n int) Option[*loadConfig] {
	return New(func(c *loadConfig) error {
		if n < 1 {
			return errors.New("workers must be at least 1")
		}
		c.workers = n
		c.calls = append(c.calls, "workers")

		return nil
	})
}

func withStrict() Option[*loadConfig] {
	return NoError(func(c *loadConfig) {
		c.strict = true
		c.calls = append(c.calls, "strict")
	})
}

func TestApply(t *testing.T) {
	t.Run("applies options in order", func(t *testing.T) {
		cfg := &loadConfig{}
		require.NoError(t, Apply(cfg, withStrict(), withWorkers(4)))
		require.Equal(t, 4, cfg.workers)
		require.True(t, cfg.strict)
		require.Equal(t, []string{"strict", "workers"}, cfg.calls)
	})

	t.Run("stops at first error", func(t *testing.T) {
		cfg := &loadConfig{}
		err := Apply(cfg, withWorkers(0), withStrict())
		require.Error(t, err)
		require.Contains(t, err.Error(), "workers must be at least 1")
		require.False(t, cfg.strict)
		require.Empty(t, cfg.calls)
	})

	t.Run("no options", func(t *testing.T) {
		cfg := &loadConfig{workers: 2}
		require.NoError(t, Apply(cfg))
		require.Equal(t, 2, cfg.workers)
	})

	t.Run("skips nil options", func(t *testing.T) {
		cfg := &loadConfig{}
		require.NoError(t, Apply[*loadConfig](cfg, nil, withStrict()))
		require.True(t, cfg.strict)
	})
}
