package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"blinky/internal/core"
	"blinky/internal/state"
)

var goalCmd = &cobra.Command{
	Use:     "goal",
	Aliases: []string{"goals"},
	Short:   "Manage savings goals",
}

var (
	goalName     string
	goalTarget   string
	goalPriority string
)

var goalListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List savings goals with their outlook",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		_, outlooks, err := client.Summary(cmd.Context(), 0, 0)
		if err != nil {
			return fmt.Errorf("failed to load goals: %w", err)
		}
		if len(outlooks) == 0 {
			fmt.Println("No savings goals yet.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tTARGET\tPRIORITY\tPROGRESS\tACHIEVABLE")
		for _, o := range outlooks {
			achievable := "no"
			if o.CanAchieve {
				achievable = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%.0f%%\t%s\n",
				o.Goal.ID, o.Goal.Name, o.Goal.TargetAmount, o.Goal.Priority, o.Progress, achievable)
		}
		return w.Flush()
	},
}

var goalAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Add a savings goal",
	Long: `Add a savings goal.

Examples:
  blinkyctl goal add --name "Emergency fund" --target 5000 --priority High`,
	RunE: func(cmd *cobra.Command, args []string) error {
		target, err := core.ParseAmount(goalTarget)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		provider := state.NewProvider(client.Goals())
		created, err := provider.Create(cmd.Context(), core.SavingsGoal{
			Name:         goalName,
			TargetAmount: target,
			Priority:     core.GoalPriority(goalPriority),
		})
		if err != nil {
			return fmt.Errorf("failed to add goal: %w", err)
		}
		fmt.Printf("Added goal %s targeting %s (%s)\n", created.Name, created.TargetAmount, created.ID)
		return nil
	},
}

var goalUpdateCmd = &cobra.Command{
	Use:   "update [id]",
	Short: "Update a savings goal",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		provider := state.NewProvider(client.Goals())
		if _, err := provider.FetchAll(cmd.Context()); err != nil {
			return fmt.Errorf("failed to load goals: %w", err)
		}
		if _, ok := provider.Get(args[0]); !ok {
			return fmt.Errorf("no goal with id %s", args[0])
		}

		draft := core.SavingsGoal{ID: args[0]}
		if cmd.Flags().Changed("name") {
			draft.Name = goalName
		}
		if cmd.Flags().Changed("target") {
			target, err := core.ParseAmount(goalTarget)
			if err != nil {
				return err
			}
			draft.TargetAmount = target
		}
		if cmd.Flags().Changed("priority") {
			draft.Priority = core.GoalPriority(goalPriority)
		}

		updated, err := provider.Update(cmd.Context(), draft)
		if err != nil {
			return fmt.Errorf("failed to update goal: %w", err)
		}
		fmt.Printf("Updated goal %s targeting %s\n", updated.Name, updated.TargetAmount)
		return nil
	},
}

var goalDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete a savings goal",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		provider := state.NewProvider(client.Goals())
		if err := provider.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete goal: %w", err)
		}
		fmt.Printf("Deleted goal %s\n", args[0])
		return nil
	},
}

func init() {
	for _, cmd := range []*cobra.Command{goalAddCmd, goalUpdateCmd} {
		cmd.Flags().StringVarP(&goalName, "name", "n", "", "Goal name")
		cmd.Flags().StringVarP(&goalTarget, "target", "t", "", "Target amount")
		cmd.Flags().StringVarP(&goalPriority, "priority", "p", string(core.PriorityMedium), "Priority (Low, Medium, High)")
	}

	goalCmd.AddCommand(goalListCmd, goalAddCmd, goalUpdateCmd, goalDeleteCmd)
}
