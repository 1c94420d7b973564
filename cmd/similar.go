package main

import (
	"github.com/spf13/cobra"

	"github.com/sells-group/namecast/internal/evaluator"
)

var similarCmd = &cobra.Command{
	Use:   "similar <name>",
	Short: "List existing companies a name could be confused with",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := args[0]
		if err := evaluator.ValidateName(name); err != nil {
			return err
		}

		env, err := initEnv(ctx, "cli", false)
		if err != nil {
			return err
		}
		defer env.Close()

		res := env.Finder.Find(ctx, name)
		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		formatSimilar(cmd.OutOrStdout(), name, res)
		return nil
	},
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the known-company catalog used for similarity checks",
	RunE: func(cmd *cobra.Command, _ []string) error {
		env, err := initEnv(cmd.Context(), "cli", false)
		if err != nil {
			return err
		}
		defer env.Close()

		formatCatalog(cmd.OutOrStdout(), env.Catalog)
		return nil
	},
}

func init() {
	similarCmd.Flags().Bool("json", false, "print matches as JSON")
	rootCmd.AddCommand(similarCmd)
	rootCmd.AddCommand(catalogCmd)
}
