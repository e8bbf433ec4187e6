package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"
)

var (
	getKey  string
	getYAML bool
)

func init() {
	getCmd.Flags().StringVar(&getKey, "key", "", "Dotted key, e.g. agents.ATLAS.model")
	getCmd.Flags().BoolVar(&getYAML, "yaml", false, "Print the value as YAML")
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get [key]",
	Short: "Print the value at a dotted key",
	Example: `  brainconf get agents.ATLAS.model
  brainconf get --key settings --yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		key, err := keyFromArgs(getKey, args)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		v, err := s.Get(key)
		if err != nil {
			return err
		}

		w := cmd.OutOrStdout()
		if getYAML {
			out, err := yaml.Marshal(v)
			if err != nil {
				return fmt.Errorf("encoding YAML: %w", err)
			}
			_, err = w.Write(out)
			return err
		}
		return printJSON(w, v)
	},
}

// keyFromArgs returns the key given either by flag or as the single
// positional argument.
func keyFromArgs(flag string, args []string) (string, error) {
	switch {
	case flag != "" && len(args) > 0:
		return "", fmt.Errorf("key given twice: use either --key or an argument")
	case flag != "":
		return flag, nil
	case len(args) == 1:
		return args[0], nil
	default:
		return "", fmt.Errorf("a key is required (--key)")
	}
}
