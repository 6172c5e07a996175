// Command bisync-suffix expands suffix!("_async", expr) macro invocations
// in Rust-style sources into feature-gated async/blocking alternatives.
package main

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/okhsunrog/bisync-suffix-macro/config"
	"github.com/okhsunrog/bisync-suffix-macro/expand"
)

var rootCmd = &cobra.Command{
	Use:   "bisync-suffix",
	Short: "Dual async/blocking expansion of suffix macro call sites.",
	Long: `bisync-suffix rewrites suffix!(STRING, EXPRESSION) call sites into a block
with two mutually exclusive alternatives: under the "async" feature, every
method call directly beneath an .await in the expression has the suffix
appended to its name; under the "blocking" feature the expression is kept
verbatim. The external build's feature selection picks exactly one branch.`,
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "increase logging verbosity")
	rootCmd.PersistentFlags().String("config", "", "path to a bisync.yaml configuration file")
	rootCmd.PersistentFlags().String("macro", "", "macro name to expand (default \"suffix\")")
	rootCmd.PersistentFlags().String("async-feature", "", "feature name selecting the async branch (default \"async\")")
	rootCmd.PersistentFlags().String("blocking-feature", "", "feature name selecting the blocking branch (default \"blocking\")")
}

// options resolves expansion options from the configuration file (if any)
// and flag overrides, and configures logging.
func options(cmd *cobra.Command) (expand.Options, error) {
	if v, _ := cmd.Flags().GetBool("verbose"); v {
		log.SetLevel(log.DebugLevel)
	}

	var opts expand.Options
	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return opts, err
		}
		opts = cfg.Options()
		log.WithField("config", path).Debug("loaded configuration")
	}
	if v, _ := cmd.Flags().GetString("macro"); v != "" {
		opts.MacroName = v
	}
	if v, _ := cmd.Flags().GetString("async-feature"); v != "" {
		opts.AsyncFeature = v
	}
	if v, _ := cmd.Flags().GetString("blocking-feature"); v != "" {
		opts.BlockingFeature = v
	}
	return opts, nil
}
