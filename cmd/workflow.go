package main

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/sells-group/namecast/internal/evaluator"
)

var workflowCmd = &cobra.Command{
	Use:   "workflow <project description>",
	Short: "Generate, screen and evaluate names for a project",
	Long: `Combines your own name ideas with generated ones, drops names without an
available .com, .ai or .io domain, evaluates the best-placed survivors against
the project description and recommends the highest scorer. Name generation
needs an Anthropic key; without one only --idea names are considered.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		ideas, _ := cmd.Flags().GetStringSlice("idea")
		generate, _ := cmd.Flags().GetInt("generate")
		maxEval, _ := cmd.Flags().GetInt("max")
		asJSON, _ := cmd.Flags().GetBool("json")
		if generate != 0 {
			cfg.Evaluator.GenerateCount = generate
		}
		if maxEval != 0 {
			cfg.Evaluator.MaxToEvaluate = maxEval
		}
		if err := validateFor("workflow"); err != nil {
			return err
		}

		env, err := initEnv(ctx, "cli", false)
		if err != nil {
			return err
		}
		defer env.Close()

		res, err := env.Evaluator.Workflow(ctx, evaluator.WorkflowRequest{
			Description: strings.Join(args, " "),
			Ideas:       ideas,
		})
		if err != nil {
			return eris.Wrap(err, "workflow")
		}

		if asJSON {
			return writeJSON(cmd.OutOrStdout(), res)
		}
		formatWorkflow(cmd.OutOrStdout(), res)
		return nil
	},
}

func init() {
	workflowCmd.Flags().StringSlice("idea", nil, "your own name idea, repeatable")
	workflowCmd.Flags().Int("generate", 0, "names to generate (default from config)")
	workflowCmd.Flags().Int("max", 0, "most names to fully evaluate (default from config)")
	workflowCmd.Flags().Bool("json", false, "print the workflow result as JSON")
	rootCmd.AddCommand(workflowCmd)
}
