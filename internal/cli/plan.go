package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/branchboard/branchboard/pkg/plan"
)

// planCommand creates the plan command group.
func (c *CLI) planCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Validate and inspect plan files",
	}

	cmd.AddCommand(c.planValidateCommand())
	cmd.AddCommand(c.planBranchesCommand())

	return cmd
}

// planValidateCommand creates the "plan validate" subcommand.
func (c *CLI) planValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [plan.yaml]",
		Short: "Check a plan file for structural errors",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plan.LoadFile(args[0])
			if err != nil {
				return err
			}

			printSuccess("Plan is valid")
			printDetail("%d tasks, %d dependencies", len(p.Tasks), len(p.Deps))
			return nil
		},
	}
}

// planBranchesCommand creates the "plan branches" subcommand, which shows
// the branch name each task will claim when it becomes real.
func (c *CLI) planBranchesCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "branches [plan.yaml]",
		Short: "Print the effective branch name for each task",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := plan.LoadFile(args[0])
			if err != nil {
				return err
			}

			for _, t := range p.Tasks {
				fmt.Println(StyleValue.Render(t.EffectiveBranch()) + "  " + StyleDim.Render(t.Title))
			}
			return nil
		},
	}
}
