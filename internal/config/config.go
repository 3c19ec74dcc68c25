package config

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/Belphemur/khdl/internal/parser"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// DefaultUserAgent is the default User-Agent string sent with all HTTP requests.
const DefaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:147.0) Gecko/20100101 Firefox/147.0"

// DefaultDownloadServer is prefixed to relative track links by the positional strategy.
const DefaultDownloadServer = "https://downloads.khinsider.com"

type Config struct {
	SourceURL             string `mapstructure:"source_url"`
	DestinationPath       string `mapstructure:"destination_path"`
	Quality               string `mapstructure:"quality"`
	InfoFilename          string `mapstructure:"info"`
	NoArt                 bool   `mapstructure:"no_art"`
	NoInfo                bool   `mapstructure:"no_info"`
	NoMusic               bool   `mapstructure:"no_music"`
	CountFrom1            bool   `mapstructure:"count_from_1"`
	Quiet                 bool   `mapstructure:"quiet"`
	Strategy              string `mapstructure:"strategy"`
	Dedupe                string `mapstructure:"dedupe"` // "auto", "true" or "false"
	Concurrency           int    `mapstructure:"concurrency"`
	Tag                   bool   `mapstructure:"tag"`
	MetricsAddr           string `mapstructure:"metrics_addr"`
	ClientTimeout         string `mapstructure:"client_timeout"` // Go duration string like "30s"; empty means no timeout
	UserAgent             string `mapstructure:"user_agent"`
	ProxyConnectionString string `mapstructure:"proxy_connection_string"`
	DownloadServer        string `mapstructure:"download_server"`
	LogLevel              string `mapstructure:"log_level"`
	SentryDSN             string `mapstructure:"sentry_dsn"`
	Cache                 struct {
		Provider string `mapstructure:"provider"` // "memory" or "none"
		Size     int    `mapstructure:"size"`
		TTL      string `mapstructure:"ttl"`
	} `mapstructure:"cache"`
	Selectors parser.Selectors `mapstructure:"selectors"`
}

// flagKeys maps command line flag names onto configuration keys.
var flagKeys = map[string]string{
	"quality":      "quality",
	"info":         "info",
	"noart":        "no_art",
	"noinfo":       "no_info",
	"nomusic":      "no_music",
	"countfrom1":   "count_from_1",
	"quiet":        "quiet",
	"strategy":     "strategy",
	"dedupe":       "dedupe",
	"concurrency":  "concurrency",
	"tag":          "tag",
	"metrics-addr": "metrics_addr",
}

// NewFlagSet declares the command line surface of khdl.
func NewFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.String("quality", ".mp3", "The file extension quality to download")
	fs.String("info", "info.txt", "Name of album info file to download")
	fs.Bool("noart", false, "Don't download album art")
	fs.Bool("noinfo", false, "Don't download info")
	fs.Bool("nomusic", false, "Don't download music")
	fs.Bool("countfrom1", false, "Count track numbers from 1 instead of 0")
	fs.BoolP("quiet", "q", false, "Run in quiet mode")
	fs.String("strategy", parser.StrategySemantic, "Track extraction strategy (semantic or positional)")
	fs.String("dedupe", "auto", "Drop tracks with duplicate names (auto, true or false)")
	fs.Int("concurrency", 1, "Number of parallel downloads")
	fs.Bool("tag", false, "Write ID3 tags to downloaded mp3 tracks")
	fs.String("metrics-addr", "", "Serve Prometheus metrics on this address during the run")
	return fs
}

// LoadConfig builds the configuration from defaults, an optional config.yaml,
// APP_ prefixed environment variables and the parsed flag set, in increasing priority.
// The two positional arguments are the album page URL and the destination directory.
func LoadConfig(fs *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	// Environment variable support
	v.AutomaticEnv()
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	_ = v.BindEnv("log_level", "LOG_LEVEL")

	setDefaults(v)

	if fs != nil {
		for flagName, key := range flagKeys {
			if f := fs.Lookup(flagName); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", flagName, err)
				}
			}
		}
		args := fs.Args()
		if len(args) != 2 {
			return nil, fmt.Errorf("expected 2 arguments (source_url destination_path), got %d", len(args))
		}
		v.Set("source_url", args[0])
		v.Set("destination_path", args[1])
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, err
	}
	if config.UserAgent == "" {
		config.UserAgent = DefaultUserAgent
	}

	return &config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("quality", ".mp3")
	v.SetDefault("info", "info.txt")
	v.SetDefault("strategy", parser.StrategySemantic)
	v.SetDefault("dedupe", "auto")
	v.SetDefault("concurrency", 1)
	v.SetDefault("client_timeout", "")
	v.SetDefault("user_agent", DefaultUserAgent)
	v.SetDefault("proxy_connection_string", "")
	v.SetDefault("download_server", DefaultDownloadServer)
	v.SetDefault("log_level", "info")
	v.SetDefault("cache.provider", "memory")
	v.SetDefault("cache.size", 256)
	v.SetDefault("cache.ttl", "1h")

	sel := parser.DefaultSelectors()
	v.SetDefault("selectors.info_paragraph", sel.InfoParagraph)
	v.SetDefault("selectors.info_marker", sel.InfoMarker)
	v.SetDefault("selectors.art_table", sel.ArtTable)
	v.SetDefault("selectors.song_table", sel.SongTable)
	v.SetDefault("selectors.header_row_id", sel.HeaderRowID)
	v.SetDefault("selectors.footer_row_id", sel.FooterRowID)
	v.SetDefault("selectors.track_cell", sel.TrackCell)
	v.SetDefault("selectors.download_span", sel.DownloadSpan)
	v.SetDefault("selectors.positional_table", sel.PositionalTable)
	v.SetDefault("selectors.positional_cell", *sel.PositionalCell)
	v.SetDefault("selectors.positional_marker", sel.PositionalMarker)
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	u, err := url.Parse(c.SourceURL)
	if err != nil {
		return fmt.Errorf("invalid source_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("invalid source_url %q: scheme must be http or https", c.SourceURL)
	}
	if c.DestinationPath == "" {
		return errors.New("destination_path must not be empty")
	}
	if strings.TrimLeft(c.Quality, ".") == "" {
		return errors.New("quality must name a file extension")
	}
	if c.InfoFilename == "" && !c.NoInfo {
		return errors.New("info filename must not be empty")
	}
	if _, err := parser.NewTrackStrategy(c.Strategy, c.DownloadServer, c.Selectors); err != nil {
		return err
	}
	if _, err := c.DedupeEnabled(true); err != nil {
		return err
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("concurrency must be at least 1, got %d", c.Concurrency)
	}
	return nil
}

// DedupeEnabled resolves the dedupe setting; "auto" falls back to strategyDefault.
func (c *Config) DedupeEnabled(strategyDefault bool) (bool, error) {
	switch strings.ToLower(c.Dedupe) {
	case "", "auto":
		return strategyDefault, nil
	case "true", "yes", "on":
		return true, nil
	case "false", "no", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid dedupe value %q (want auto, true or false)", c.Dedupe)
	}
}
