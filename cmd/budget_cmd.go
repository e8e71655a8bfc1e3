package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/theirongolddev/bplan/internal/budget"
	"github.com/theirongolddev/bplan/internal/cli"
	"github.com/theirongolddev/bplan/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagBudgetTotal   string
	flagBudgetSavings string
	flagBudgetIncome  string
	flagBudgetCycle   string
	flagBudgetDays    int
	flagBudgetStart   string
)

var budgetCmd = &cobra.Command{
	Use:   "budget",
	Short: "Budget-level settings",
}

var budgetSetCmd = &cobra.Command{
	Use:   "set",
	Short: "Change total budget, savings goal, income or cycle",
	RunE:  runBudgetSet,
}

func init() {
	budgetSetCmd.Flags().StringVar(&flagBudgetTotal, "total", "", "Total monthly budget")
	budgetSetCmd.Flags().StringVar(&flagBudgetSavings, "savings", "", "Monthly savings goal")
	budgetSetCmd.Flags().StringVar(&flagBudgetIncome, "income", "", "Monthly income")
	budgetSetCmd.Flags().StringVar(&flagBudgetCycle, "cycle", "", "Cycle type: monthly, weekly, custom")
	budgetSetCmd.Flags().IntVar(&flagBudgetDays, "cycle-days", 0, "Cycle length in days (custom cycles)")
	budgetSetCmd.Flags().StringVar(&flagBudgetStart, "start", "", "Cycle start date YYYY-MM-DD")

	budgetCmd.AddCommand(budgetSetCmd)
	rootCmd.AddCommand(budgetCmd)
}

func parseCycleType(s string) (model.CycleType, error) {
	switch c := model.CycleType(strings.ToLower(strings.TrimSpace(s))); c {
	case model.CycleMonthly, model.CycleWeekly, model.CycleCustom:
		return c, nil
	}
	return "", fmt.Errorf("invalid cycle %q (want monthly, weekly or custom)", s)
}

func runBudgetSet(cmd *cobra.Command, _ []string) error {
	var p budget.SettingsPatch
	flags := cmd.Flags()

	money := func(name, value string, dst **float64) error {
		if !flags.Changed(name) {
			return nil
		}
		v, err := cli.ParseAmount(value)
		if err != nil {
			return fmt.Errorf("--%s: %w", name, err)
		}
		*dst = &v
		return nil
	}
	if err := money("total", flagBudgetTotal, &p.TotalBudget); err != nil {
		return err
	}
	if err := money("savings", flagBudgetSavings, &p.SavingsGoal); err != nil {
		return err
	}
	if err := money("income", flagBudgetIncome, &p.MonthlyIncome); err != nil {
		return err
	}
	if flags.Changed("cycle") {
		c, err := parseCycleType(flagBudgetCycle)
		if err != nil {
			return err
		}
		p.CycleType = &c
	}
	if flags.Changed("cycle-days") {
		if flagBudgetDays <= 0 {
			return errors.New("--cycle-days must be positive")
		}
		p.CycleDuration = &flagBudgetDays
	}
	if flags.Changed("start") {
		d, err := parseDateFlag(flagBudgetStart)
		if err != nil {
			return err
		}
		p.StartDate = &d
	}
	if p == (budget.SettingsPatch{}) {
		return errors.New("nothing to change; pass at least one flag")
	}

	s, closeDB, err := openStore(nil)
	if err != nil {
		return err
	}
	defer closeDB()

	s.UpdateSettings(p)
	b := s.Budget()
	fmt.Printf("  Budget %s  savings goal %s  cycle %s\n",
		cli.FormatMoney(b.TotalBudget), cli.FormatMoney(b.SavingsGoal), b.CycleType)
	return nil
}
