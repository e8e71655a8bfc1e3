package cmd

import (
	"fmt"

	"github.com/theirongolddev/bplan/internal/budget"
	"github.com/theirongolddev/bplan/internal/cli"
	"github.com/theirongolddev/bplan/internal/model"

	"github.com/spf13/cobra"
)

var (
	flagCatName   string
	flagCatAmount string
	flagCatColor  string
	flagCatIcon   string
)

var categoryCmd = &cobra.Command{
	Use:     "category",
	Aliases: []string{"cat"},
	Short:   "List and manage categories",
	RunE:    runCategoryList,
}

var categoryListCmd = &cobra.Command{
	Use:   "list",
	Short: "List categories with this month's spending",
	RunE:  runCategoryList,
}

var categoryAddCmd = &cobra.Command{
	Use:   "add <name> <amount>",
	Short: "Add a custom category",
	Args:  cobra.ExactArgs(2),
	RunE:  runCategoryAdd,
}

var categorySetCmd = &cobra.Command{
	Use:   "set <id|name>",
	Short: "Change a category's name, budget, color or icon",
	Args:  cobra.ExactArgs(1),
	RunE:  runCategorySet,
}

func init() {
	categoryAddCmd.Flags().StringVar(&flagCatColor, "color", "#B8B8FF", "Display color (#RRGGBB)")
	categoryAddCmd.Flags().StringVar(&flagCatIcon, "icon", "", "Icon name")

	categorySetCmd.Flags().StringVar(&flagCatName, "name", "", "New name")
	categorySetCmd.Flags().StringVar(&flagCatAmount, "amount", "", "New monthly budget")
	categorySetCmd.Flags().StringVar(&flagCatColor, "color", "", "New color")
	categorySetCmd.Flags().StringVar(&flagCatIcon, "icon", "", "New icon")

	categoryCmd.AddCommand(categoryListCmd, categoryAddCmd, categorySetCmd)
	rootCmd.AddCommand(categoryCmd)
}

func runCategoryList(_ *cobra.Command, _ []string) error {
	s, closeDB, err := openStore(nil)
	if err != nil {
		return err
	}
	defer closeDB()

	b := s.Budget()
	a := s.Analytics()

	rows := make([][]string, 0, len(b.Categories)+len(b.CustomCategories)+1)
	for i, c := range b.AllCategories() {
		if i == len(b.Categories) && len(b.CustomCategories) > 0 {
			rows = append(rows, []string{"---"})
		}
		ca, _ := a.Category(c.ID)
		rows = append(rows, []string{
			shortID(c.ID),
			c.Name,
			c.Color,
			cli.FormatMoney(c.Amount),
			cli.FormatMoney(ca.Spent),
			cli.FormatPercent(ca.Percentage),
		})
	}

	fmt.Println()
	fmt.Print(cli.RenderTable(cli.Table{
		Headers:  []string{"ID", "Name", "Color", "Budget", "Spent", "Used"},
		Rows:     rows,
		TextCols: 3,
	}))
	return nil
}

func runCategoryAdd(_ *cobra.Command, args []string) error {
	amount, err := cli.ParseAmount(args[1])
	if err != nil {
		return err
	}

	s, closeDB, err := openStore(nil)
	if err != nil {
		return err
	}
	defer closeDB()

	c := s.AddCustomCategory(model.Category{
		Name:   args[0],
		Amount: amount,
		Color:  flagCatColor,
		Icon:   flagCatIcon,
	})
	fmt.Printf("  Added category %s  %s  %s\n", shortID(c.ID), c.Name, cli.FormatMoney(c.Amount))
	return nil
}

func runCategorySet(cmd *cobra.Command, args []string) error {
	s, closeDB, err := openStore(nil)
	if err != nil {
		return err
	}
	defer closeDB()

	c, err := resolveCategory(s.Budget(), args[0])
	if err != nil {
		return err
	}

	var p budget.CategoryPatch
	flags := cmd.Flags()
	if flags.Changed("name") {
		p.Name = &flagCatName
	}
	if flags.Changed("amount") {
		v, err := cli.ParseAmount(flagCatAmount)
		if err != nil {
			return err
		}
		p.Amount = &v
	}
	if flags.Changed("color") {
		p.Color = &flagCatColor
	}
	if flags.Changed("icon") {
		p.Icon = &flagCatIcon
	}
	if p == (budget.CategoryPatch{}) {
		return fmt.Errorf("nothing to change for %s; pass --name, --amount, --color or --icon", c.Name)
	}

	s.UpdateCategory(c.ID, p)
	fmt.Printf("  Updated category %s\n", c.Name)
	return nil
}
