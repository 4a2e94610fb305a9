// Package config loads settings shared by the moneycalc programs from a YAML
// file and the environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/zephyrtronium/moneycalc"
)

// MaxPrecision is the largest precision a caller may request.
const MaxPrecision = 8

// Environment variables which override the file.
const (
	EnvFile      = "MONEYCALC_CONFIG"
	EnvPrecision = "MONEYCALC_PRECISION"
	EnvLang      = "MONEYCALC_LANG"
	EnvAddr      = "MONEYCALC_ADDR"
	EnvHistory   = "MONEYCALC_HISTORY"
)

// Config holds program settings.
type Config struct {
	// Precision is the default number of fractional digits, 0 to MaxPrecision.
	Precision uint `yaml:"precision"`
	// Lang is the language code of failure messages.
	Lang string `yaml:"lang"`
	// Addr is the listen address of the HTTP server.
	Addr string `yaml:"addr"`
	// History is the REPL history file.
	History string `yaml:"history"`
}

// Default returns the settings used when nothing overrides them.
func Default() Config {
	cfg := Config{
		Precision: moneycalc.DefaultPrec,
		Lang:      "ru",
		Addr:      ":8080",
	}
	if home, err := os.UserHomeDir(); err == nil {
		cfg.History = filepath.Join(home, ".moneycalc_history")
	}
	return cfg
}

// Load reads settings. Values in .env files are added to the environment
// first without replacing variables that are already set; missing files are
// ignored. Then the YAML file at path, or at $MONEYCALC_CONFIG if path is
// empty, overrides the defaults, and finally the MONEYCALC_* variables
// override the file.
func Load(path string, envfiles ...string) (Config, error) {
	cfg := Default()
	for _, f := range envfiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("loading %s: %w", f, err)
		}
	}
	if path == "" {
		path = os.Getenv(EnvFile)
	}
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, err)
		}
	}
	if s, ok := os.LookupEnv(EnvPrecision); ok {
		p, err := strconv.ParseUint(strings.TrimSpace(s), 10, 8)
		if err != nil {
			return cfg, fmt.Errorf("%s: %w", EnvPrecision, err)
		}
		cfg.Precision = uint(p)
	}
	if s, ok := os.LookupEnv(EnvLang); ok {
		cfg.Lang = s
	}
	if s, ok := os.LookupEnv(EnvAddr); ok {
		cfg.Addr = s
	}
	if s, ok := os.LookupEnv(EnvHistory); ok {
		cfg.History = s
	}
	return cfg, cfg.Validate()
}

// Validate checks that the settings are usable.
func (cfg Config) Validate() error {
	if cfg.Precision > MaxPrecision {
		return fmt.Errorf("precision %d is out of range 0-%d", cfg.Precision, MaxPrecision)
	}
	if _, err := moneycalc.ParseLanguage(cfg.Lang); err != nil {
		return err
	}
	return nil
}

// Language returns the parsed message language. It is Russian if Lang is
// invalid.
func (cfg Config) Language() moneycalc.Language {
	l, _ := moneycalc.ParseLanguage(cfg.Lang)
	return l
}

// Calculator creates a calculator with the configured precision and language.
func (cfg Config) Calculator() *moneycalc.Calculator {
	return moneycalc.NewCalculator(moneycalc.Prec(cfg.Precision), moneycalc.Lang(cfg.Language()))
}

// Vars returns the settings as interpolation variables for command-line
// defaults.
func (cfg Config) Vars() map[string]string {
	return map[string]string{
		"precision": strconv.FormatUint(uint64(cfg.Precision), 10),
		"lang":      cfg.Language().String(),
		"addr":      cfg.Addr,
		"history":   cfg.History,
	}
}
