package main

import (
	"fmt"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/namecast/internal/evaluator"
)

var evaluateCmd = &cobra.Command{
	Use:   "evaluate <name>...",
	Short: "Evaluate one or more brand names",
	Long:  "Runs every sub-evaluation for each name and prints a markdown report, or JSON with --json.",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		if err := validateFor("evaluate"); err != nil {
			return err
		}

		mission, _ := cmd.Flags().GetString("mission")
		domain, _ := cmd.Flags().GetString("domain")
		asJSON, _ := cmd.Flags().GetBool("json")
		save, _ := cmd.Flags().GetBool("save")

		env, err := initEnv(ctx, "cli", save)
		if err != nil {
			return err
		}
		defer env.Close()
		if save && env.Store == nil {
			zap.L().Warn("store.driver is none, results will not be saved")
		}

		out := cmd.OutOrStdout()
		for i, name := range args {
			res, err := env.Evaluator.EvaluateRequest(ctx, evaluator.Request{
				Name:          name,
				Mission:       mission,
				PlannedDomain: domain,
			})
			if err != nil {
				return eris.Wrapf(err, "evaluate %s", name)
			}

			if env.Store != nil {
				id, err := env.Store.SaveEvaluation(ctx, res)
				if err != nil {
					return eris.Wrapf(err, "save %s", name)
				}
				zap.L().Info("evaluation saved", zap.String("name", name), zap.String("id", id))
				fmt.Fprintf(os.Stderr, "Saved %s as %s\n", name, id)
			}

			if asJSON {
				if err := writeJSON(out, res); err != nil {
					return err
				}
				continue
			}
			if i > 0 {
				fmt.Fprintln(out)
			}
			fmt.Fprint(out, res.Markdown())
		}
		return nil
	},
}

func init() {
	evaluateCmd.Flags().String("mission", "", "company mission to judge alignment against")
	evaluateCmd.Flags().String("domain", "", "planned domain, e.g. acme.ai, used for handle alternatives")
	evaluateCmd.Flags().Bool("json", false, "print results as JSON")
	evaluateCmd.Flags().Bool("save", false, "save results to the evaluation history")
	rootCmd.AddCommand(evaluateCmd)
}
