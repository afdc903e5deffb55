package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/spf13/cobra"

	"github.com/gi-bielefeld/carp/pkg/cache"
	"github.com/gi-bielefeld/carp/pkg/errors"
	"github.com/gi-bielefeld/carp/pkg/pipeline"
)

// Config is the on-disk configuration. Flags override every field.
type Config struct {
	Analysis AnalysisConfig `toml:"analysis"`
	Cache    CacheConfig    `toml:"cache"`
	Server   ServerConfig   `toml:"server"`
}

// AnalysisConfig holds analysis defaults.
type AnalysisConfig struct {
	Core      bool    `toml:"core"`
	Workers   int     `toml:"workers"`
	Top       float64 `toml:"top"`
	ScanDepth int     `toml:"scan_depth"`
}

// CacheConfig selects the cache backend.
type CacheConfig struct {
	Backend  string `toml:"backend"`
	Dir      string `toml:"dir,omitempty"`
	RedisURL string `toml:"redis_url,omitempty"`
}

// ServerConfig configures `carp serve`.
type ServerConfig struct {
	Addr string `toml:"addr"`
}

// DefaultConfig returns the built-in defaults. Core projection is on.
func DefaultConfig() Config {
	return Config{
		Analysis: AnalysisConfig{Core: true, Workers: pipeline.DefaultWorkers, ScanDepth: pipeline.DefaultScanDepth},
		Cache:    CacheConfig{Backend: cache.BackendFile},
		Server:   ServerConfig{Addr: "localhost:8080"},
	}
}

// Validate checks field values.
func (cfg Config) Validate() error {
	switch cfg.Cache.Backend {
	case cache.BackendFile, cache.BackendNone:
	case cache.BackendRedis:
		if cfg.Cache.RedisURL == "" {
			return errors.New(errors.ErrCodeInvalidConfig, "cache.redis_url is required for the redis backend")
		}
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "cache.backend must be file, redis or none, got %q", cfg.Cache.Backend)
	}
	if cfg.Analysis.Workers < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "analysis.workers must be at least 1")
	}
	if cfg.Analysis.Top < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "analysis.top must not be negative")
	}
	if cfg.Analysis.ScanDepth < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "analysis.scan_depth must not be negative")
	}
	return nil
}

// readConfig decodes path over the defaults. A missing file yields the
// defaults; unknown keys are rejected.
func readConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	md, err := toml.DecodeFile(path, &cfg)
	if os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	if err != nil {
		return cfg, errors.Wrap(errors.ErrCodeInvalidConfig, err, "read %s", path)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return cfg, errors.New(errors.ErrCodeInvalidConfig, "%s: unknown keys: %s", path, strings.Join(keys, ", "))
	}
	return cfg, cfg.Validate()
}

func writeConfig(w io.Writer, cfg Config) error {
	return toml.NewEncoder(w).Encode(cfg)
}

func (c *CLI) resolvedConfigPath() (string, error) {
	if c.configPath != "" {
		return c.configPath, nil
	}
	dir, err := configDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

func (c *CLI) loadConfig() error {
	path, err := c.resolvedConfigPath()
	if err != nil {
		c.Logger.Debug("no config directory, using defaults", "error", err)
		return nil
	}
	cfg, err := readConfig(path)
	if err != nil {
		return err
	}
	c.Config = cfg
	c.Logger.Debug("loaded config", "path", path)
	return nil
}

// configCommand creates the config command.
func (c *CLI) configCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeConfig(c.out, c.Config)
		},
	}
	cmd.AddCommand(c.configInitCommand())
	cmd.AddCommand(c.configPathCommand())
	return cmd
}

func (c *CLI) configInitCommand() *cobra.Command {
	var force bool
	cmd := &cobra.Command{
		Use:   "init",
		Short: "Write the default configuration file",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolvedConfigPath()
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return fmt.Errorf("%s already exists (use --force to overwrite)", path)
			}
			if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
				return err
			}
			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := writeConfig(f, DefaultConfig()); err != nil {
				f.Close()
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			printSuccess("Wrote default configuration")
			printFile(path)
			return nil
		},
	}
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing file")
	return cmd
}

func (c *CLI) configPathCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "path",
		Short: "Print the configuration file path",
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := c.resolvedConfigPath()
			if err != nil {
				return err
			}
			fmt.Fprintln(c.out, path)
			return nil
		},
	}
}
