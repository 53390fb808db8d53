package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	summaryYear  int
	summaryMonth int
)

var summaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Show the finance summary",
	Long: `Show totals for income, expenses, savings and the resulting balance,
with the outlook for every savings goal.

Examples:
  blinkyctl summary
  blinkyctl summary --year 2026 --month 8`,
	RunE: func(cmd *cobra.Command, args []string) error {
		if (summaryYear == 0) != (summaryMonth == 0) {
			return fmt.Errorf("--year and --month must be given together")
		}

		client, err := newClient()
		if err != nil {
			return err
		}
		summary, outlooks, err := client.Summary(cmd.Context(), summaryYear, summaryMonth)
		if err != nil {
			return fmt.Errorf("failed to load summary: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintf(w, "Income\t%s\n", summary.TotalIncome)
		fmt.Fprintf(w, "Expenses\t%s\n", summary.TotalExpenses)
		fmt.Fprintf(w, "Savings\t%s\n", summary.TotalSavings)
		fmt.Fprintf(w, "Balance\t%s\n", summary.Balance)
		if err := w.Flush(); err != nil {
			return err
		}

		if len(outlooks) == 0 {
			return nil
		}
		fmt.Println()
		w = tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "GOAL\tTARGET\tPROGRESS\tACHIEVABLE\tSAVINGS IMPACT")
		for _, o := range outlooks {
			achievable := "no"
			if o.CanAchieve {
				achievable = "yes"
			}
			fmt.Fprintf(w, "%s\t%s\t%.0f%%\t%s\t%.0f%%\n",
				o.Goal.Name, o.Goal.TargetAmount, o.Progress, achievable, o.SavingsImpact)
		}
		return w.Flush()
	},
}

func init() {
	summaryCmd.Flags().IntVar(&summaryYear, "year", 0, "Window year")
	summaryCmd.Flags().IntVar(&summaryMonth, "month", 0, "Window month (1-12)")
}
