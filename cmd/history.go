package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/namecast/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect saved evaluations",
	Long:  "Lists evaluations saved with evaluate --save or through the API.",
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx := cmd.Context()
		st, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		name, _ := cmd.Flags().GetString("name")
		limit, _ := cmd.Flags().GetInt("limit")
		offset, _ := cmd.Flags().GetInt("offset")

		recs, err := st.ListEvaluations(ctx, store.ListFilter{Name: name, Limit: limit, Offset: offset})
		if err != nil {
			return eris.Wrap(err, "history list")
		}
		if len(recs) == 0 {
			fmt.Fprintln(os.Stderr, "No evaluations found.")
			return nil
		}

		formatHistory(cmd.OutOrStdout(), recs)
		return nil
	},
}

var historyShowCmd = &cobra.Command{
	Use:   "show <evaluation-id>",
	Short: "Show a saved evaluation",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		st, err := openHistory(cmd)
		if err != nil {
			return err
		}
		defer st.Close() //nolint:errcheck

		rec, err := st.GetEvaluation(ctx, args[0])
		if err != nil {
			return eris.Wrap(err, "history show")
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			return writeJSON(cmd.OutOrStdout(), rec)
		}
		fmt.Fprint(cmd.OutOrStdout(), rec.Result.Markdown())
		return nil
	},
}

func openHistory(cmd *cobra.Command) (store.Store, error) {
	if err := validateFor("history"); err != nil {
		return nil, err
	}
	return store.Open(cmd.Context(), cfg.Store)
}

func init() {
	historyCmd.Flags().String("name", "", "only evaluations of this name (case-insensitive)")
	historyCmd.Flags().Int("limit", store.DefaultListLimit, "max number of evaluations to display")
	historyCmd.Flags().Int("offset", 0, "number of evaluations to skip")

	historyShowCmd.Flags().Bool("json", false, "print the stored record as JSON")

	historyCmd.AddCommand(historyShowCmd)
	rootCmd.AddCommand(historyCmd)
}
