package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "DOCLN"
	ConfigFileName = "docln"

	DefaultBaseURL      = "https://docln.net"
	DefaultCategory     = CategorySangTac
	DefaultOutputPath   = "."
	DefaultTimeout      = 30 * time.Second
	DefaultChapterDelay = 500 * time.Millisecond
	DefaultConcurrency  = 1
	DefaultLanguage     = "vi"
	DefaultUserAgent    = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	DefaultLogLevel     = "info"
)

// Listing categories of docln.net.
const (
	CategorySangTac = "sang-tac" // 原创
	CategoryAiDich  = "ai-dich"  // AI翻译
)

type Config struct {
	BaseURL      string
	Category     string
	OutputPath   string
	Timeout      time.Duration
	ChapterDelay time.Duration
	Concurrency  int
	Language     string
	UserAgent    string
	Text         bool
	LogLevel     string
}

func Default() *Config {
	return &Config{
		BaseURL:      DefaultBaseURL,
		Category:     DefaultCategory,
		OutputPath:   DefaultOutputPath,
		Timeout:      DefaultTimeout,
		ChapterDelay: DefaultChapterDelay,
		Concurrency:  DefaultConcurrency,
		Language:     DefaultLanguage,
		UserAgent:    DefaultUserAgent,
		LogLevel:     DefaultLogLevel,
	}
}

// New returns a viper instance carrying the defaults, reading DOCLN_* from the
// environment and an optional docln.yaml from the working directory.
func New() *viper.Viper {
	v := viper.New()

	defaults := Default()
	v.SetDefault("base-url", defaults.BaseURL)
	v.SetDefault("category", defaults.Category)
	v.SetDefault("output", defaults.OutputPath)
	v.SetDefault("timeout", defaults.Timeout)
	v.SetDefault("chapter-delay", defaults.ChapterDelay)
	v.SetDefault("concurrency", defaults.Concurrency)
	v.SetDefault("language", defaults.Language)
	v.SetDefault("user-agent", defaults.UserAgent)
	v.SetDefault("text", defaults.Text)
	v.SetDefault("log-level", defaults.LogLevel)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigName(ConfigFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	return v
}

// BindFlags lets command line flags take precedence over env and file values.
func BindFlags(v *viper.Viper, flags *pflag.FlagSet) error {
	var err error
	flags.VisitAll(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		err = v.BindPFlag(f.Name, f)
	})
	if err != nil {
		return fmt.Errorf("failed to bind flags: %w", err)
	}
	return nil
}

func Load(v *viper.Viper) (*Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{
		BaseURL:      strings.TrimSuffix(v.GetString("base-url"), "/"),
		Category:     v.GetString("category"),
		OutputPath:   v.GetString("output"),
		Timeout:      v.GetDuration("timeout"),
		ChapterDelay: v.GetDuration("chapter-delay"),
		Concurrency:  v.GetInt("concurrency"),
		Language:     v.GetString("language"),
		UserAgent:    v.GetString("user-agent"),
		Text:         v.GetBool("text"),
		LogLevel:     v.GetString("log-level"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.Category {
	case CategorySangTac, CategoryAiDich:
	default:
		return fmt.Errorf("invalid category %q: expected %s or %s", c.Category, CategorySangTac, CategoryAiDich)
	}
	if c.BaseURL == "" {
		return errors.New("base url is required")
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("invalid timeout %v: must be positive", c.Timeout)
	}
	if c.ChapterDelay < 0 {
		return fmt.Errorf("invalid chapter delay %v: must not be negative", c.ChapterDelay)
	}
	if c.Concurrency < 1 {
		return fmt.Errorf("invalid concurrency %d: must be at least 1", c.Concurrency)
	}
	return nil
}

// NovelURL is the public listing page of a novel.
func (c *Config) NovelURL(novelId int) string {
	return fmt.Sprintf("%s/%s/%d", c.BaseURL, c.Category, novelId)
}
