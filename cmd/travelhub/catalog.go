package main

import (
	"fmt"

	"github.com/mark3labs/travelhub/internal/catalog"
	"github.com/spf13/cobra"
)

var catalogFlags struct {
	tab string
}

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Print the fixed listings",
	Long: `Print the listings of every catalog, or of one with --tab.

Each line starts with the item key accepted by the item-select MCP tool.`,
	RunE: runCatalog,
}

func init() {
	catalogCmd.Flags().StringVarP(&catalogFlags.tab, "tab", "t", "", "Catalog to print (hotels, cars, tours, visa)")
}

func runCatalog(cmd *cobra.Command, args []string) error {
	tabs := catalog.Tabs()
	if catalogFlags.tab != "" {
		tab, err := catalog.ParseTab(catalogFlags.tab)
		if err != nil {
			return err
		}
		tabs = []catalog.Tab{tab}
	}

	out := cmd.OutOrStdout()
	for i, tab := range tabs {
		if i > 0 {
			fmt.Fprintln(out)
		}
		fmt.Fprintf(out, "%s:\n", tab.Title())
		for _, item := range catalog.Items(tab) {
			fmt.Fprintf(out, "  %s\n", item.Line())
		}
	}
	return nil
}
