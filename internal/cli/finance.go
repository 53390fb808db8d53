package cli

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"blinky/internal/core"
	"blinky/internal/state"
)

const dateLayout = "2006-01-02"

func parseDateFlag(raw string) (time.Time, error) {
	if raw == "" {
		now := time.Now()
		return time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC), nil
	}
	t, err := time.Parse(dateLayout, raw)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, want YYYY-MM-DD", raw)
	}
	return t, nil
}

var incomeCmd = &cobra.Command{
	Use:   "income",
	Short: "Manage income entries",
}

var (
	incomeAmount  string
	incomeSource  string
	incomeDate    string
	incomeSavings int
)

var incomeListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List income entries",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		provider := state.NewProvider(client.Income())
		entries, err := provider.FetchAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list income: %w", err)
		}
		if len(entries) == 0 {
			fmt.Println("No income recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tSOURCE\tAMOUNT\tSAVINGS")
		for _, in := range entries {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d%%\n",
				in.ID, in.Date.Format(dateLayout), in.Source, in.Amount, in.SavingsPercentage)
		}
		return w.Flush()
	},
}

var incomeAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an income entry",
	Long: `Record an income entry.

Examples:
  blinkyctl income add --amount 2500 --source Salary
  blinkyctl income add --amount 400.50 --source Freelance --savings 30 --date 2026-08-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := core.ParseAmount(incomeAmount)
		if err != nil {
			return err
		}
		date, err := parseDateFlag(incomeDate)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		provider := state.NewProvider(client.Income())
		created, err := provider.Create(cmd.Context(), core.Income{
			Amount:            amount,
			Source:            incomeSource,
			Date:              date,
			SavingsPercentage: incomeSavings,
		})
		if err != nil {
			return fmt.Errorf("failed to add income: %w", err)
		}
		fmt.Printf("Recorded %s from %s (%s)\n", created.Amount, created.Source, created.ID)
		return nil
	},
}

var incomeDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete an income entry",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		provider := state.NewProvider(client.Income())
		if err := provider.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete income: %w", err)
		}
		fmt.Printf("Deleted income %s\n", args[0])
		return nil
	},
}

var expenseCmd = &cobra.Command{
	Use:     "expense",
	Aliases: []string{"expenses"},
	Short:   "Manage expenses",
}

var (
	expenseAmount      string
	expenseCategory    string
	expenseDescription string
	expenseDate        string
)

var expenseListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List expenses",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		provider := state.NewProvider(client.Expenses())
		expenses, err := provider.FetchAll(cmd.Context())
		if err != nil {
			return fmt.Errorf("failed to list expenses: %w", err)
		}
		if len(expenses) == 0 {
			fmt.Println("No expenses recorded.")
			return nil
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tCATEGORY\tDESCRIPTION\tAMOUNT")
		for _, e := range expenses {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
				e.ID, e.Date.Format(dateLayout), e.Category, e.Description, e.Amount)
		}
		return w.Flush()
	},
}

var expenseAddCmd = &cobra.Command{
	Use:   "add",
	Short: "Record an expense",
	Long: `Record an expense.

Examples:
  blinkyctl expense add --amount 42.90 --category Food --description "Weekly groceries"`,
	RunE: func(cmd *cobra.Command, args []string) error {
		amount, err := core.ParseAmount(expenseAmount)
		if err != nil {
			return err
		}
		date, err := parseDateFlag(expenseDate)
		if err != nil {
			return err
		}
		client, err := newClient()
		if err != nil {
			return err
		}

		provider := state.NewProvider(client.Expenses())
		created, err := provider.Create(cmd.Context(), core.Expense{
			Amount:      amount,
			Category:    expenseCategory,
			Description: expenseDescription,
			Date:        date,
		})
		if err != nil {
			return fmt.Errorf("failed to add expense: %w", err)
		}
		fmt.Printf("Recorded %s for %s (%s)\n", created.Amount, created.Category, created.ID)
		return nil
	},
}

var expenseDeleteCmd = &cobra.Command{
	Use:     "delete [id]",
	Aliases: []string{"rm"},
	Short:   "Delete an expense",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient()
		if err != nil {
			return err
		}
		provider := state.NewProvider(client.Expenses())
		if err := provider.Delete(cmd.Context(), args[0]); err != nil {
			return fmt.Errorf("failed to delete expense: %w", err)
		}
		fmt.Printf("Deleted expense %s\n", args[0])
		return nil
	},
}

func init() {
	incomeAddCmd.Flags().StringVarP(&incomeAmount, "amount", "a", "", "Amount (e.g. 2500 or 2500.00)")
	incomeAddCmd.Flags().StringVarP(&incomeSource, "source", "s", "", "Income source")
	incomeAddCmd.Flags().StringVarP(&incomeDate, "date", "d", "", "Date (YYYY-MM-DD, default today)")
	incomeAddCmd.Flags().IntVar(&incomeSavings, "savings", 0, "Percentage earmarked for savings")

	expenseAddCmd.Flags().StringVarP(&expenseAmount, "amount", "a", "", "Amount (e.g. 42.90)")
	expenseAddCmd.Flags().StringVarP(&expenseCategory, "category", "c", "", "Expense category")
	expenseAddCmd.Flags().StringVar(&expenseDescription, "description", "", "What the money went to")
	expenseAddCmd.Flags().StringVarP(&expenseDate, "date", "d", "", "Date (YYYY-MM-DD, default today)")

	incomeCmd.AddCommand(incomeListCmd, incomeAddCmd, incomeDeleteCmd)
	expenseCmd.AddCommand(expenseListCmd, expenseAddCmd, expenseDeleteCmd)
}
