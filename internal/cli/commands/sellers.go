package commands

import (
	"fmt"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

// NewSellersCommand creates the sellers command.
func NewSellersCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "sellers",
		Short: "Show configured sellers and their imported row counts",
		Long: `List every seller from the configuration together with the number of
product and price rows currently held for it in each category table.`,
		RunE: runSellers,
	}
}

func runSellers(cmd *cobra.Command, _ []string) error {
	cc, cleanup, err := NewCommandContext(cmd)
	if err != nil {
		return err
	}
	defer cleanup()

	if len(cc.Cfg.Sellers) == 0 {
		_, _ = fmt.Fprintln(cmd.OutOrStdout(), "(no sellers configured)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(cmd.OutOrStdout())
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"ID", "Name", "Category", "Products", "Prices"})

	for _, s := range cc.Cfg.Sellers {
		counts, err := cc.Store.CountSellerRows(s.ID)
		if err != nil {
			return err
		}
		for _, c := range counts {
			t.AppendRow(table.Row{s.ID, s.Name, c.Category, c.Products, c.Prices})
		}
		t.AppendSeparator()
	}

	t.Render()
	return nil
}
