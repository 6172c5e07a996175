package main

import (
	"fmt"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/okhsunrog/bisync-suffix-macro/expand"
	"github.com/okhsunrog/bisync-suffix-macro/parser"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve [invocation arguments]",
	Short: "print the branch a given feature selection compiles.",
	Long: `Parse a single invocation argument sequence (STRING, EXPRESSION) and print
the alternative the given feature set would compile: the suffixed expression
when the async feature is enabled, the original when only the blocking
feature is. With neither feature enabled resolution fails, matching the
compile error the expanded block raises.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}
		features, _ := cmd.Flags().GetStringSlice("feature")

		inv, err := parser.ParseInvocation("<args>", args[0])
		if err != nil {
			return err
		}
		out, err := expand.Select(inv, features, opts)
		if err != nil {
			return err
		}
		log.WithField("features", features).Debug("resolved")
		fmt.Println(out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().StringSliceP("feature", "F", nil, "enabled feature name (repeatable)")
}
