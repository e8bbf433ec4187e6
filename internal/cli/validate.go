package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/teambrain/brainconf/internal/store"
)

var errValidationFailed = errors.New("configuration is invalid")

func init() {
	rootCmd.AddCommand(validateCmd)
}

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check the configuration for structural problems and missing paths",
	Long: `Validate checks that the paths, agents and settings sections exist, that every
agent declares a model, and that the version is a semantic version. Configured
paths that do not exist on disk are reported as warnings and do not fail the
command.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		result := s.Validate()
		for _, issue := range result.Issues {
			tag := "[FAIL]"
			if issue.Severity == store.SeverityWarning {
				tag = "[WARN]"
			}
			fmt.Fprintf(w, "%s %s\n", tag, issue)
		}

		if !result.Valid() {
			fmt.Fprintf(w, "\n%d error(s), %d warning(s)\n", len(result.Errors()), len(result.Warnings()))
			return errValidationFailed
		}
		if n := len(result.Warnings()); n > 0 {
			fmt.Fprintf(w, "\n[OK] Configuration is valid (%d warning(s))\n", n)
			return nil
		}
		fmt.Fprintln(w, "[OK] Configuration is valid")
		return nil
	},
}
