package cmd

import (
	"fmt"

	"docln-downloader/config"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var RootCmd = &cobra.Command{
	Use:               "docln-downloader",
	Short:             "Download light novels from docln.net as epub",
	Long:              "Download light novels from docln.net and pack them into EPUB 2 files",
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

var (
	v   = config.New()
	cfg *config.Config
)

func init() {
	flags := RootCmd.PersistentFlags()
	flags.String("base-url", config.DefaultBaseURL, "site base url")
	flags.String("category", config.DefaultCategory, "listing category: sang-tac or ai-dich")
	flags.StringP("output", "o", config.DefaultOutputPath, "output directory")
	flags.Duration("timeout", config.DefaultTimeout, "timeout of a single request")
	flags.Duration("chapter-delay", config.DefaultChapterDelay, "minimum delay between chapter requests")
	flags.Int("concurrency", config.DefaultConcurrency, "chapters fetched at the same time")
	flags.String("language", config.DefaultLanguage, "language written into the package metadata")
	flags.String("user-agent", config.DefaultUserAgent, "user agent of http requests")
	flags.String("log-level", config.DefaultLogLevel, "log level: debug, info, warn or error")
	cobra.CheckErr(config.BindFlags(v, flags))
}

func loadConfig(cmd *cobra.Command, args []string) error {
	loaded, err := config.Load(v)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	level, err := log.ParseLevel(loaded.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", loaded.LogLevel, err)
	}
	log.SetLevel(level)
	cfg = loaded
	return nil
}
