package config

import (
	"reflect"
	"testing"

	"github.com/Belphemur/khdl/internal/parser"
)

func loadArgs(t *testing.T, args ...string) (*Config, error) {
	t.Helper()
	fs := NewFlagSet("khdl")
	if err := fs.Parse(args); err != nil {
		t.Fatalf("Parse(%v) failed: %v", args, err)
	}
	return LoadConfig(fs)
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg, err := loadArgs(t, "https://example.com/game-soundtracks/album/test", "out")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.SourceURL != "https://example.com/game-soundtracks/album/test" || cfg.DestinationPath != "out" {
		t.Errorf("Positional arguments not applied: %q %q", cfg.SourceURL, cfg.DestinationPath)
	}
	if cfg.Quality != ".mp3" || cfg.InfoFilename != "info.txt" {
		t.Errorf("Unexpected quality/info defaults: %q %q", cfg.Quality, cfg.InfoFilename)
	}
	if cfg.Strategy != parser.StrategySemantic || cfg.Dedupe != "auto" || cfg.Concurrency != 1 {
		t.Errorf("Unexpected strategy defaults: %q %q %d", cfg.Strategy, cfg.Dedupe, cfg.Concurrency)
	}
	if cfg.ClientTimeout != "" {
		t.Errorf("Expected no client timeout by default, got %q", cfg.ClientTimeout)
	}
	if cfg.DownloadServer != DefaultDownloadServer || cfg.UserAgent != DefaultUserAgent {
		t.Errorf("Unexpected server/agent defaults: %q %q", cfg.DownloadServer, cfg.UserAgent)
	}
	if cfg.Cache.Provider != "memory" || cfg.Cache.Size != 256 || cfg.Cache.TTL != "1h" {
		t.Errorf("Unexpected cache defaults: %+v", cfg.Cache)
	}
	if !reflect.DeepEqual(cfg.Selectors, parser.DefaultSelectors()) {
		t.Errorf("Expected default selectors, got %+v", cfg.Selectors)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Expected defaults to validate, got %v", err)
	}
}

func TestLoadConfig_Flags(t *testing.T) {
	cfg, err := loadArgs(t,
		"--quality", "flac", "--info", "about.txt",
		"--noart", "--noinfo", "--nomusic", "--countfrom1", "-q",
		"--strategy", "positional", "--dedupe", "false", "--concurrency", "4", "--tag",
		"--metrics-addr", ":9100",
		"https://example.com/album", "out/",
	)
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}

	if cfg.Quality != "flac" || cfg.InfoFilename != "about.txt" {
		t.Errorf("Unexpected quality/info: %q %q", cfg.Quality, cfg.InfoFilename)
	}
	if !cfg.NoArt || !cfg.NoInfo || !cfg.NoMusic || !cfg.CountFrom1 || !cfg.Quiet || !cfg.Tag {
		t.Errorf("Expected all boolean flags to be set: %+v", cfg)
	}
	if cfg.Strategy != "positional" || cfg.Dedupe != "false" || cfg.Concurrency != 4 {
		t.Errorf("Unexpected strategy settings: %q %q %d", cfg.Strategy, cfg.Dedupe, cfg.Concurrency)
	}
	if cfg.MetricsAddr != ":9100" {
		t.Errorf("Expected metrics addr ':9100', got %q", cfg.MetricsAddr)
	}
	if cfg.DestinationPath != "out/" {
		t.Errorf("Expected destination 'out/', got %q", cfg.DestinationPath)
	}
}

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("APP_CLIENT_TIMEOUT", "45s")
	t.Setenv("APP_CACHE_PROVIDER", "none")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := loadArgs(t, "https://example.com/album", "out")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.ClientTimeout != "45s" {
		t.Errorf("Expected client timeout from env, got %q", cfg.ClientTimeout)
	}
	if cfg.Cache.Provider != "none" {
		t.Errorf("Expected cache provider from env, got %q", cfg.Cache.Provider)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("Expected log level from LOG_LEVEL, got %q", cfg.LogLevel)
	}
}

func TestLoadConfig_PositionalCellZero(t *testing.T) {
	t.Setenv("APP_SELECTORS_POSITIONAL_CELL", "0")

	cfg, err := loadArgs(t, "https://example.com/album", "out")
	if err != nil {
		t.Fatalf("LoadConfig failed: %v", err)
	}
	if cfg.Selectors.PositionalCell == nil || *cfg.Selectors.PositionalCell != 0 {
		t.Errorf("Expected positional cell 0 from env, got %v", cfg.Selectors.PositionalCell)
	}
}

func TestLoadConfig_WrongArgumentCount(t *testing.T) {
	for _, args := range [][]string{nil, {"https://example.com/album"}, {"a", "b", "c"}} {
		if _, err := loadArgs(t, args...); err == nil {
			t.Errorf("Expected an error for arguments %v", args)
		}
	}
}

func TestConfig_Validate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			SourceURL:       "https://example.com/album",
			DestinationPath: "out",
			Quality:         ".mp3",
			InfoFilename:    "info.txt",
			Strategy:        parser.StrategySemantic,
			Dedupe:          "auto",
			Concurrency:     1,
			DownloadServer:  DefaultDownloadServer,
		}
	}

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "ftp source", mutate: func(c *Config) { c.SourceURL = "ftp://example.com/album" }, wantErr: true},
		{name: "relative source", mutate: func(c *Config) { c.SourceURL = "album/x" }, wantErr: true},
		{name: "empty destination", mutate: func(c *Config) { c.DestinationPath = "" }, wantErr: true},
		{name: "dot quality", mutate: func(c *Config) { c.Quality = "." }, wantErr: true},
		{name: "empty info", mutate: func(c *Config) { c.InfoFilename = "" }, wantErr: true},
		{name: "empty info with noinfo", mutate: func(c *Config) { c.InfoFilename = ""; c.NoInfo = true }},
		{name: "unknown strategy", mutate: func(c *Config) { c.Strategy = "regex" }, wantErr: true},
		{name: "positional without server", mutate: func(c *Config) { c.Strategy = "positional"; c.DownloadServer = "" }, wantErr: true},
		{name: "bad dedupe", mutate: func(c *Config) { c.Dedupe = "sometimes" }, wantErr: true},
		{name: "zero concurrency", mutate: func(c *Config) { c.Concurrency = 0 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)
			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestConfig_DedupeEnabled(t *testing.T) {
	tests := []struct {
		value           string
		strategyDefault bool
		want            bool
	}{
		{"auto", true, true},
		{"auto", false, false},
		{"", true, true},
		{"true", false, true},
		{"FALSE", true, false},
	}
	for _, tt := range tests {
		cfg := &Config{Dedupe: tt.value}
		got, err := cfg.DedupeEnabled(tt.strategyDefault)
		if err != nil {
			t.Fatalf("DedupeEnabled(%q) failed: %v", tt.value, err)
		}
		if got != tt.want {
			t.Errorf("DedupeEnabled(%q, %v) = %v, want %v", tt.value, tt.strategyDefault, got, tt.want)
		}
	}
}
