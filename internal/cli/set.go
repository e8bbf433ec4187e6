package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/teambrain/brainconf/internal/store"
)

var (
	setKey   string
	setValue string
)

func init() {
	setCmd.Flags().StringVar(&setKey, "key", "", "Dotted key, e.g. settings.max_retries")
	setCmd.Flags().StringVar(&setValue, "value", "", "New value; parsed as JSON, otherwise stored as a string")
	_ = setCmd.MarkFlagRequired("key")
	_ = setCmd.MarkFlagRequired("value")
	rootCmd.AddCommand(setCmd)
}

var setCmd = &cobra.Command{
	Use:   "set",
	Short: "Set the value at a dotted key and save",
	Example: `  brainconf set --key settings.max_retries --value 5
  brainconf set --key agents.ATLAS.model --value opus-4.5
  brainconf set --key agents.ATLAS.capabilities --value '["planning","review"]'`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openStore(cmd)
		if err != nil {
			return err
		}

		val := parseCLIValue(setValue)
		if err := s.Set(setKey, val); err != nil {
			return err
		}
		if err := s.Save(); err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "[OK] Set %s = %s\n", setKey, val)
		return nil
	},
}

// parseCLIValue reads raw as a JSON literal so numbers, booleans, arrays and
// objects keep their type. Anything that is not valid JSON is a plain string.
func parseCLIValue(raw string) store.Value {
	if v, err := store.ParseValue([]byte(raw)); err == nil {
		return v
	}
	return store.String(raw)
}
