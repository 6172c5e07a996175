package main

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/okhsunrog/bisync-suffix-macro/expand"
)

var expandCmd = &cobra.Command{
	Use:   "expand [file]",
	Short: "expand all macro invocations in a source file.",
	Long: `Expand every suffix macro invocation found in the given file (or stdin)
and write the resulting source to stdout or the file given with --output.
Malformed invocations are reported per call site; the remaining call sites
still expand.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := options(cmd)
		if err != nil {
			return err
		}

		name, src, err := readInput(args)
		if err != nil {
			return err
		}

		out, n, err := expand.Source(name, src, opts)
		if err != nil {
			reportExpandErrors(err)
			return fmt.Errorf("%s: expansion failed", name)
		}
		log.WithFields(log.Fields{"file": name, "sites": n}).Debug("expanded")

		output, _ := cmd.Flags().GetString("output")
		return writeOutput(output, out)
	},
}

func init() {
	rootCmd.AddCommand(expandCmd)
	expandCmd.Flags().StringP("output", "o", "", "write result to file instead of stdout")
}

func readInput(args []string) (name, src string, err error) {
	if len(args) == 0 || args[0] == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", "", err
		}
		return "<stdin>", string(data), nil
	}
	data, err := os.ReadFile(args[0])
	if err != nil {
		return "", "", err
	}
	return args[0], string(data), nil
}

func writeOutput(path, out string) error {
	if path == "" {
		_, err := io.WriteString(os.Stdout, out)
		return err
	}
	return os.WriteFile(path, []byte(out), 0o644)
}

func reportExpandErrors(err error) {
	if list, ok := err.(expand.ErrorList); ok {
		for _, e := range list {
			fmt.Fprintln(os.Stderr, e)
		}
		return
	}
	fmt.Fprintln(os.Stderr, err)
}
