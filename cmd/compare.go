package main

import (
	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <name> <name>...",
	Short: "Compare brand names side by side",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := validateFor("evaluate"); err != nil {
			return err
		}

		mission, _ := cmd.Flags().GetString("mission")
		asJSON, _ := cmd.Flags().GetBool("json")

		env, err := initEnv(ctx, "cli", false)
		if err != nil {
			return err
		}
		defer env.Close()

		cmp, err := env.Evaluator.Compare(ctx, args, mission)
		if err != nil {
			return eris.Wrap(err, "compare")
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), cmp)
		}
		formatComparison(cmd.OutOrStdout(), cmp)
		return nil
	},
}

func init() {
	compareCmd.Flags().String("mission", "", "company mission shared by every name")
	compareCmd.Flags().Bool("json", false, "print the comparison as JSON")
	rootCmd.AddCommand(compareCmd)
}
