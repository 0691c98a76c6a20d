package cmd

import (
	"strconv"
	"strings"

	"mmsmonthly/cmd/mms-monthly/utils"
	"mmsmonthly/lib/periods"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(periodsCmd)
}

var periodsCmd = &cobra.Command{
	Use:   "periods",
	Short: "Display years and the months within them for which data is available.",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		catalog := client.AvailablePeriods()

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Year", "Months"})
		for _, year := range periods.Years(catalog) {
			months := make([]string, len(catalog[year]))
			for i, month := range catalog[year] {
				months[i] = strconv.Itoa(month)
			}
			t.AppendRow(table.Row{year, strings.Join(months, " ")})
		}
		t.Render()
	},
}
