package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/teambrain/brainconf/internal/store"
)

var (
	listSection string
	listJSON    bool
)

func init() {
	listCmd.Flags().StringVar(&listSection, "section", "", "Section to list: "+strings.Join(store.Sections, ", "))
	listCmd.Flags().BoolVar(&listJSON, "json", false, "Print the section as JSON")
	_ = listCmd.MarkFlagRequired("section")
	rootCmd.AddCommand(listCmd)
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List the entries of one section",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		switch listSection {
		case store.SectionPaths, store.SectionAgents, store.SectionSettings:
		default:
			return fmt.Errorf("unknown section %q (want one of: %s)", listSection, strings.Join(store.Sections, ", "))
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		w := cmd.OutOrStdout()

		if listJSON {
			v, err := s.Get(listSection)
			if err != nil {
				return err
			}
			return printJSON(w, v)
		}

		switch listSection {
		case store.SectionPaths:
			renderPaths(w, s.ListPaths())
		case store.SectionAgents:
			renderAgents(w, s.ListAgents())
		case store.SectionSettings:
			renderSettings(w, s.ListSettings())
		}
		return nil
	},
}
