package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/teambrain/brainconf/internal/store"
	"go.yaml.in/yaml/v3"
)

var (
	showJSON bool
	showYAML bool
)

func init() {
	showCmd.Flags().BoolVar(&showJSON, "json", false, "Print the whole document as JSON")
	showCmd.Flags().BoolVar(&showYAML, "yaml", false, "Print the whole document as YAML")
	showCmd.MarkFlagsMutuallyExclusive("json", "yaml")
	rootCmd.AddCommand(showCmd)
}

var showCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the current configuration",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()

		switch {
		case showJSON:
			return printJSON(w, s.Document())
		case showYAML:
			out, err := yaml.Marshal(s.Document())
			if err != nil {
				return fmt.Errorf("encoding YAML: %w", err)
			}
			_, err = w.Write(out)
			return err
		}

		fmt.Fprintf(w, "Config file: %s\n", s.Path())
		if v, err := s.Get(store.KeyVersion); err == nil {
			fmt.Fprintf(w, "Version:     %s\n", v)
		}

		fmt.Fprintln(w, "\nPaths:")
		renderPaths(w, s.ListPaths())
		fmt.Fprintln(w, "\nAgents:")
		renderAgents(w, s.ListAgents())
		fmt.Fprintln(w, "\nSettings:")
		renderSettings(w, s.ListSettings())
		return nil
	},
}
