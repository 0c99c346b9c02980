// Package commands implements the CLI commands for mdextract.
package commands

import (
	"errors"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/mdextract/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:   "mdextract",
	Short: "Extract the readable content of HTML pages as Markdown",
	Long: `mdextract converts HTML documents into Markdown that keeps only the
primary content. Headers, footers, navigation, sidebars, cookie banners and
scripts are dropped. When too little text survives, the whole body is tried,
and finally text blocks are harvested from the entire page.

Examples:
  # Convert a saved page
  mdextract convert page.html

  # Read from stdin, write JSON with stats
  curl -s https://example.com | mdextract convert - --format json

  # Prefer a site-specific root and drop an extra banner
  mdextract convert page.html --root ".story-body" --exclude-class promo

  # Compare every engine on the same page
  mdextract compare page.html`,
	SilenceUsage: true,
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().String("config", "", "config file (default $HOME/.mdextract.yaml or ./.mdextract.yaml)")
	rootCmd.PersistentFlags().Bool("debug", false, "enable debug logging")
	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "only log errors")
	rootCmd.PersistentFlags().Bool("log-json", false, "log as JSON")

	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
	_ = viper.BindPFlag("debug", rootCmd.PersistentFlags().Lookup("debug"))
	_ = viper.BindPFlag("quiet", rootCmd.PersistentFlags().Lookup("quiet"))
	_ = viper.BindPFlag("log_json", rootCmd.PersistentFlags().Lookup("log-json"))
}

func initConfig() {
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(home)
		}
		viper.AddConfigPath(".")
		viper.SetConfigName(".mdextract")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("MDEXTRACT")
	viper.AutomaticEnv()

	// The config file may set debug/quiet, so the logger is set up after it.
	readErr := viper.ReadInConfig()

	logger.Init(logger.Options{
		Debug: viper.GetBool("debug"),
		Quiet: viper.GetBool("quiet"),
		JSON:  viper.GetBool("log_json"),
	})

	var notFound viper.ConfigFileNotFoundError
	switch {
	case readErr == nil:
		logger.Debug("loaded config file", "path", viper.ConfigFileUsed())
	case !errors.As(readErr, &notFound):
		logger.Warn("failed to read config file", "error", readErr)
	}
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
