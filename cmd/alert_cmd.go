package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/theirongolddev/bplan/internal/cli"
	"github.com/theirongolddev/bplan/internal/model"

	"github.com/spf13/cobra"
)

var flagAlertCategory string

var alertCmd = &cobra.Command{
	Use:   "alert",
	Short: "List and manage budget alerts",
	RunE:  runAlertList,
}

var alertListCmd = &cobra.Command{
	Use:   "list",
	Short: "List alerts",
	RunE:  runAlertList,
}

var alertAddCmd = &cobra.Command{
	Use:   "add <type> <threshold> <message...>",
	Short: "Add an alert (overspending, categoryLimit, savingsGoal, custom)",
	Long: `Add an alert. Thresholds are percentages:
  overspending   fires when spending passes threshold% of the total budget
  categoryLimit  fires when --category passes threshold% of its budget
  savingsGoal    fires when savings progress drops below threshold%
  custom         stored but never fires`,
	Args: cobra.MinimumNArgs(3),
	RunE: runAlertAdd,
}

var alertToggleCmd = &cobra.Command{
	Use:   "toggle <id>",
	Short: "Turn an alert on or off",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlertToggle,
}

func init() {
	alertAddCmd.Flags().StringVarP(&flagAlertCategory, "category", "c", "", "Category id or name (categoryLimit)")

	alertCmd.AddCommand(alertListCmd, alertAddCmd, alertToggleCmd)
	rootCmd.AddCommand(alertCmd)
}

func parseAlertType(s string) (model.AlertType, error) {
	for _, t := range []model.AlertType{
		model.AlertOverspending, model.AlertCategoryLimit, model.AlertSavingsGoal, model.AlertCustom,
	} {
		if strings.EqualFold(s, string(t)) {
			return t, nil
		}
	}
	return "", fmt.Errorf("invalid alert type %q", s)
}

func runAlertList(_ *cobra.Command, _ []string) error {
	s, closeDB, err := openStore(nil)
	if err != nil {
		return err
	}
	defer closeDB()

	b := s.Budget()
	if len(b.Alerts) == 0 {
		fmt.Println("\n  No alerts. Add one with `bplan alert add`.")
		return nil
	}

	rows := make([][]string, 0, len(b.Alerts))
	for _, al := range b.Alerts {
		state := "off"
		if al.IsActive {
			state = "on"
		}
		category := ""
		if al.Type == model.AlertCategoryLimit {
			category = b.CategoryName(al.CategoryID)
		}
		rows = append(rows, []string{
			shortID(al.ID), state, string(al.Type), category, al.Message, cli.FormatPercent(al.Threshold),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"ID", "State", "Type", "Category", "Message", "Threshold"},
		Rows:     rows,
		TextCols: 5,
	}))
	return nil
}

func runAlertAdd(_ *cobra.Command, args []string) error {
	typ, err := parseAlertType(args[0])
	if err != nil {
		return err
	}
	threshold, err := strconv.ParseFloat(strings.TrimSuffix(args[1], "%"), 64)
	if err != nil {
		return fmt.Errorf("invalid threshold %q: %w", args[1], err)
	}

	s, closeDB, err := openStore(nil)
	if err != nil {
		return err
	}
	defer closeDB()

	al := model.BudgetAlert{
		Type:      typ,
		Threshold: threshold,
		Message:   strings.Join(args[2:], " "),
	}
	if typ == model.AlertCategoryLimit {
		if flagAlertCategory == "" {
			return fmt.Errorf("%s alerts need --category", typ)
		}
		cat, err := resolveCategory(s.Budget(), flagAlertCategory)
		if err != nil {
			return err
		}
		al.CategoryID = cat.ID
	}

	added := s.AddBudgetAlert(al)
	fmt.Printf("  Added alert %s  %s at %s\n", shortID(added.ID), added.Type, cli.FormatPercent(added.Threshold))
	return nil
}

func runAlertToggle(_ *cobra.Command, args []string) error {
	s, closeDB, err := openStore(nil)
	if err != nil {
		return err
	}
	defer closeDB()

	al, err := resolveAlert(s.Budget(), args[0])
	if err != nil {
		return err
	}
	s.ToggleAlert(al.ID)

	state := "on"
	if al.IsActive {
		state = "off"
	}
	fmt.Printf("  Alert %s turned %s\n", shortID(al.ID), state)
	return nil
}
