// Package config loads runtime settings from the environment.
//
// A .env file in the working directory is read first (if present); real
// environment variables take precedence over it.
package config

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// Config controls where words and solutions come from and how logs are
// written.
type Config struct {
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`
	// LogFile receives JSON logs. Empty logs to stderr.
	LogFile string `env:"LOG_FILE"`
	// WordsFile replaces the bundled dictionary. Empty uses the bundle.
	WordsFile string `env:"WORDS_FILE"`

	SolutionURL     string        `env:"SOLUTION_URL" envDefault:"https://www.nytimes.com/svc/wordle/v2"`
	SolutionTimeout time.Duration `env:"SOLUTION_TIMEOUT" envDefault:"5s"`
	SolutionRetries uint          `env:"SOLUTION_RETRIES" envDefault:"2"`
	// SolutionCache is a SQLite path. Empty means solutions.db under the
	// user cache directory; NoCache keeps the cache in memory.
	SolutionCache string `env:"SOLUTION_CACHE"`
}

// NoCache as SOLUTION_CACHE disables the on-disk solution cache.
const NoCache = "off"

// Load reads .env (if any) and parses the environment into a Config.
func Load() (Config, error) {
	_ = godotenv.Load()

	var c Config
	if err := env.Parse(&c); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if c.SolutionCache == "" {
		c.SolutionCache = defaultCachePath()
	}
	if err := c.Validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

// Validate checks ranges that the parser cannot.
func (c *Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	if c.SolutionTimeout <= 0 {
		return errors.New("SOLUTION_TIMEOUT must be positive")
	}
	if c.SolutionRetries > 10 {
		return fmt.Errorf("SOLUTION_RETRIES %d exceeds 10", c.SolutionRetries)
	}
	return nil
}

// defaultCachePath is solutions.db in the user cache directory, or NoCache
// when the platform has none.
func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return NoCache
	}
	return filepath.Join(dir, "wordle-term", "solutions.db")
}

// ConfigureLogging points the global zerolog logger at LogFile or stderr
// and applies LogLevel. The returned func closes the log file.
func (c *Config) ConfigureLogging() (func() error, error) {
	lvl, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return nil, err
	}
	zerolog.SetGlobalLevel(lvl)

	var out io.Writer = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}
	closer := func() error { return nil }
	if c.LogFile != "" {
		f, err := os.OpenFile(c.LogFile, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, fmt.Errorf("open log file: %w", err)
		}
		out, closer = f, f.Close
	}
	log.Logger = zerolog.New(out).With().Timestamp().Logger()
	return closer, nil
}

// HoldConsoleLogs buffers log events while the game draws on the terminal,
// if they would otherwise be written to that same terminal. The returned
// func restores the logger and writes out what was held.
func (c *Config) HoldConsoleLogs(stderr *os.File) (release func()) {
	if c.LogFile != "" || !isatty.IsTerminal(stderr.Fd()) {
		return func() {}
	}
	return holdLogs(zerolog.ConsoleWriter{Out: stderr, TimeFormat: time.Kitchen})
}

func holdLogs(out io.Writer) func() {
	prev := log.Logger
	var held bytes.Buffer
	log.Logger = prev.Output(&held)
	return func() {
		log.Logger = prev
		sc := bufio.NewScanner(&held)
		for sc.Scan() {
			_, _ = out.Write(sc.Bytes())
		}
	}
}
