package cmd

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/theirongolddev/bplan/internal/analytics"
	"github.com/theirongolddev/bplan/internal/budget"
	"github.com/theirongolddev/bplan/internal/cli"
	"github.com/theirongolddev/bplan/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagExpDate      string
	flagExpRecurring string
	flagExpTags      []string
	flagExpNotes     string
	flagExpAmount    string
	flagExpCategory  string
	flagExpDesc      string
)

var (
	flagListSearch   string
	flagListCategory string
	flagListSort     string
	flagListOrder    string
	flagListLimit    int
)

var addCmd = &cobra.Command{
	Use:   "add <amount> <category> [description...]",
	Short: "Log an expense",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAdd,
}

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List expenses",
	RunE:    runList,
}

var editCmd = &cobra.Command{
	Use:   "edit <id>",
	Short: "Change fields of an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runEdit,
}

var rmCmd = &cobra.Command{
	Use:   "rm <id>",
	Short: "Delete an expense",
	Args:  cobra.ExactArgs(1),
	RunE:  runRm,
}

func init() {
	addCmd.Flags().StringVar(&flagExpDate, "date", "", "Expense date YYYY-MM-DD (default today)")
	addCmd.Flags().StringVar(&flagExpRecurring, "recurring", "", "Repeat interval: weekly, monthly or yearly")
	addCmd.Flags().StringSliceVar(&flagExpTags, "tag", nil, "Tag (repeatable or comma-separated)")
	addCmd.Flags().StringVar(&flagExpNotes, "notes", "", "Free-form notes")

	editCmd.Flags().StringVar(&flagExpAmount, "amount", "", "New amount")
	editCmd.Flags().StringVar(&flagExpCategory, "category", "", "New category id or name")
	editCmd.Flags().StringVar(&flagExpDesc, "description", "", "New description")
	editCmd.Flags().StringVar(&flagExpDate, "date", "", "New date YYYY-MM-DD")
	editCmd.Flags().StringVar(&flagExpRecurring, "recurring", "", "Repeat interval, or \"none\"")
	editCmd.Flags().StringSliceVar(&flagExpTags, "tag", nil, "Replace tags")
	editCmd.Flags().StringVar(&flagExpNotes, "notes", "", "New notes")

	listCmd.Flags().StringVarP(&flagListSearch, "search", "s", "", "Match description or category (glob with *)")
	listCmd.Flags().StringVarP(&flagListCategory, "category", "c", "", "Only this category (id or name)")
	listCmd.Flags().StringVar(&flagListSort, "sort", string(analytics.SortByDate), "Sort by: date, amount")
	listCmd.Flags().StringVar(&flagListOrder, "order", string(analytics.Descending), "Order: asc, desc")
	listCmd.Flags().IntVarP(&flagListLimit, "limit", "n", 0, "Show at most n expenses (0 = all)")

	rootCmd.AddCommand(addCmd, listCmd, editCmd, rmCmd)
}

func parseInterval(s string) (model.RecurringInterval, error) {
	switch iv := model.RecurringInterval(strings.ToLower(strings.TrimSpace(s))); iv {
	case model.IntervalWeekly, model.IntervalMonthly, model.IntervalYearly:
		return iv, nil
	}
	return "", fmt.Errorf("invalid interval %q (want weekly, monthly or yearly)", s)
}

func parseDateFlag(s string) (string, error) {
	s = strings.TrimSpace(s)
	if _, ok := analytics.ParseDate(s, time.Local); !ok {
		return "", fmt.Errorf("invalid date %q (want YYYY-MM-DD)", s)
	}
	return s, nil
}

func parseExpenseAmount(s string) (float64, error) {
	v, err := cli.ParseAmount(s)
	if err != nil {
		return 0, err
	}
	if v == 0 {
		return 0, fmt.Errorf("%w: amount must not be zero", cli.ErrInvalidAmount)
	}
	return v, nil
}

func runAdd(_ *cobra.Command, args []string) error {
	amount, err := parseExpenseAmount(args[0])
	if err != nil {
		return err
	}

	s, closeDB, err := openStore(nil)
	if err != nil {
		return err
	}
	defer closeDB()

	cat, err := resolveCategory(s.Budget(), args[1])
	if err != nil {
		return err
	}

	e := model.Expense{
		Amount:      amount,
		CategoryID:  cat.ID,
		Description: strings.Join(args[2:], " "),
		Date:        analytics.Today(time.Now()),
		Tags:        flagExpTags,
		Notes:       flagExpNotes,
	}
	if flagExpDate != "" {
		if e.Date, err = parseDateFlag(flagExpDate); err != nil {
			return err
		}
	}
	if flagExpRecurring != "" {
		if e.RecurringInterval, err = parseInterval(flagExpRecurring); err != nil {
			return err
		}
		e.IsRecurring = true
	}

	added := s.AddExpense(e)
	fmt.Printf("  Added %s  %s  %s  %s\n",
		shortID(added.ID), cli.FormatMoney(added.Amount), cat.Name, cli.FormatDate(added.Date))
	return nil
}

func runList(_ *cobra.Command, _ []string) error {
	s, closeDB, err := openStore(nil)
	if err != nil {
		return err
	}
	defer closeDB()

	b := s.Budget()
	q := analytics.ExpenseQuery{
		Search:     flagListSearch,
		CategoryID: analytics.AllCategories,
		SortBy:     analytics.SortField(flagListSort),
		Order:      analytics.SortOrder(flagListOrder),
	}
	if q.SortBy != analytics.SortByDate && q.SortBy != analytics.SortByAmount {
		return fmt.Errorf("invalid --sort %q (want date or amount)", flagListSort)
	}
	if q.Order != analytics.Ascending && q.Order != analytics.Descending {
		return fmt.Errorf("invalid --order %q (want asc or desc)", flagListOrder)
	}
	if flagListCategory != "" && flagListCategory != analytics.AllCategories {
		cat, err := resolveCategory(b, flagListCategory)
		if err != nil {
			return err
		}
		q.CategoryID = cat.ID
	}

	expenses := analytics.QueryExpenses(b, q)
	if len(expenses) == 0 {
		fmt.Println("\n  No expenses found.")
		return nil
	}

	total := 0.0
	for _, e := range expenses {
		total += e.Amount
	}
	shown := expenses
	if flagListLimit > 0 && len(shown) > flagListLimit {
		shown = shown[:flagListLimit]
	}

	rows := make([][]string, 0, len(shown)+2)
	for _, e := range shown {
		desc := e.Description
		if desc == "" {
			desc = "Unnamed Expense"
		}
		if e.IsRecurring {
			desc += " (" + string(e.RecurringInterval) + ")"
		}
		rows = append(rows, []string{
			shortID(e.ID),
			cli.FormatDate(e.Date),
			cli.Truncate(desc, 40),
			b.CategoryName(e.CategoryID),
			cli.FormatMoney(e.Amount),
		})
	}
	rows = append(rows, []string{"---"})
	rows = append(rows, []string{"", "", fmt.Sprintf("%d expenses", len(expenses)), "", cli.FormatMoney(total)})

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"ID", "Date", "Description", "Category", "Amount"},
		Rows:     rows,
		TextCols: 4,
	}))
	return nil
}

func runEdit(cmd *cobra.Command, args []string) error {
	s, closeDB, err := openStore(nil)
	if err != nil {
		return err
	}
	defer closeDB()

	b := s.Budget()
	e, err := resolveExpense(b, args[0])
	if err != nil {
		return err
	}

	var p budget.ExpensePatch
	flags := cmd.Flags()
	if flags.Changed("amount") {
		v, err := parseExpenseAmount(flagExpAmount)
		if err != nil {
			return err
		}
		p.Amount = &v
	}
	if flags.Changed("category") {
		cat, err := resolveCategory(b, flagExpCategory)
		if err != nil {
			return err
		}
		p.CategoryID = &cat.ID
	}
	if flags.Changed("description") {
		p.Description = &flagExpDesc
	}
	if flags.Changed("date") {
		d, err := parseDateFlag(flagExpDate)
		if err != nil {
			return err
		}
		p.Date = &d
	}
	if flags.Changed("recurring") {
		on := flagExpRecurring != "none"
		p.IsRecurring = &on
		if on {
			iv, err := parseInterval(flagExpRecurring)
			if err != nil {
				return err
			}
			p.RecurringInterval = &iv
		}
	}
	if flags.Changed("tag") {
		p.Tags = &flagExpTags
	}
	if flags.Changed("notes") {
		p.Notes = &flagExpNotes
	}

	if p == (budget.ExpensePatch{}) {
		return errors.New("nothing to change; pass at least one flag")
	}

	s.UpdateExpense(e.ID, p)
	fmt.Printf("  Updated %s\n", shortID(e.ID))
	return nil
}

func runRm(_ *cobra.Command, args []string) error {
	s, closeDB, err := openStore(nil)
	if err != nil {
		return err
	}
	defer closeDB()

	e, err := resolveExpense(s.Budget(), args[0])
	if err != nil {
		return err
	}
	s.DeleteExpense(e.ID)
	fmt.Printf("  Deleted %s  %s  %s\n", shortID(e.ID), cli.FormatMoney(e.Amount), e.Description)
	return nil
}
