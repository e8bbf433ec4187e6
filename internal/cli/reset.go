package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"
)

var resetYes bool

func init() {
	resetCmd.Flags().BoolVarP(&resetYes, "yes", "y", false, "Skip the confirmation prompt")
	rootCmd.AddCommand(resetCmd)
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Replace the configuration with the built-in defaults",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		w := cmd.OutOrStdout()
		if !resetYes {
			ok, err := confirm(cmd.InOrStdin(), w, "Reset to defaults? This will overwrite current config! (yes/no): ")
			if err != nil {
				return err
			}
			if !ok {
				fmt.Fprintln(w, "[CANCELLED] Reset aborted")
				return nil
			}
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		s.Reset()
		if err := s.Save(); err != nil {
			return err
		}

		fmt.Fprintf(w, "[OK] Configuration reset to defaults (%s)\n", s.Path())
		return nil
	},
}

// confirm prints prompt and reports whether the answer was yes. End of input
// counts as no.
func confirm(in io.Reader, out io.Writer, prompt string) (bool, error) {
	fmt.Fprint(out, prompt)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, fmt.Errorf("reading answer: %w", err)
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "yes", "y":
		return true, nil
	default:
		return false, nil
	}
}
