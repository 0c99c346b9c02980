package commands

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/jmylchreest/mdextract/internal/logger"
	"github.com/jmylchreest/mdextract/pkg/extract"
)

// addExtractFlags registers the flags that tune the extractor.
func addExtractFlags(cmd *cobra.Command) {
	flags := cmd.Flags()

	flags.String("preset", "default", "rule preset: default, simple, strict")
	flags.StringSlice("root", nil, "root selector to try before the built-in list (can be repeated)")
	flags.StringSlice("exclude-class", nil, "extra class substring that marks page chrome (can be repeated)")
	flags.StringSlice("exclude-id", nil, "extra element id that marks page chrome (can be repeated)")
	flags.Int("min-length", 0, "content length below which the fallback runs (default 500)")
	flags.Bool("no-fallback", false, "render the selected root only")
	flags.Bool("hide-excluded", false, "mark excluded elements display:none in the parsed document")
}

// setting returns the flag value when set on the command line, else the
// config file or environment value for key, else the flag default.
func setting(cmd *cobra.Command, flag, key string) string {
	if cmd.Flags().Changed(flag) || !viper.IsSet(key) {
		v, _ := cmd.Flags().GetString(flag)
		return v
	}
	return viper.GetString(key)
}

// buildConfig resolves the extractor config: preset, then the config file's
// "extract" section, then flags.
func buildConfig(cmd *cobra.Command) (*extract.Config, error) {
	preset := setting(cmd, "preset", "preset")
	cfg, err := extract.Preset(preset)
	if err != nil {
		return nil, err
	}

	if viper.IsSet("extract") {
		var fromFile extract.Config
		if err := viper.UnmarshalKey("extract", &fromFile); err != nil {
			return nil, fmt.Errorf("parsing extract config: %w", err)
		}
		cfg = cfg.Merge(&fromFile)
		applyExplicit(cfg, &fromFile)
	}

	flags := cmd.Flags()

	roots, _ := flags.GetStringSlice("root")
	if len(roots) > 0 {
		cfg.RootSelectors = append(append([]string{}, roots...), cfg.RootSelectors...)
	}

	classes, _ := flags.GetStringSlice("exclude-class")
	ids, _ := flags.GetStringSlice("exclude-id")
	cfg = cfg.Merge(&extract.Config{ChromeClassPatterns: classes, ChromeIDs: ids})

	if flags.Changed("min-length") {
		cfg.MinContentLength, _ = flags.GetInt("min-length")
	}
	if v, _ := flags.GetBool("no-fallback"); v {
		cfg.DisableFallback = true
	}
	if v, _ := flags.GetBool("hide-excluded"); v {
		cfg.HideExcluded = true
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	logger.Debug("extract config resolved",
		"preset", preset,
		"roots", len(cfg.RootSelectors),
		"min_length", cfg.MinContentLength,
		"fallback", !cfg.DisableFallback)
	return cfg, nil
}

// applyExplicit copies scalar settings the config file sets, including zero
// and false values that Merge ignores.
func applyExplicit(cfg, fromFile *extract.Config) {
	if viper.IsSet("extract.complementary_width_ratio") {
		cfg.ComplementaryWidthRatio = fromFile.ComplementaryWidthRatio
	}
	if viper.IsSet("extract.min_content_length") {
		cfg.MinContentLength = fromFile.MinContentLength
	}
	if viper.IsSet("extract.min_harvest_length") {
		cfg.MinHarvestLength = fromFile.MinHarvestLength
	}
	if viper.IsSet("extract.hide_excluded") {
		cfg.HideExcluded = fromFile.HideExcluded
	}
	if viper.IsSet("extract.disable_fallback") {
		cfg.DisableFallback = fromFile.DisableFallback
	}
}
