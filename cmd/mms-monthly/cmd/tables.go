package cmd

import (
	"fmt"
	"os"
	"strconv"

	"mmsmonthly/cmd/mms-monthly/utils"
	"mmsmonthly/lib/periods"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	tablesCmd.Flags().StringVar(
		&dataDir, "data-dir", "DATA",
		"directory within the monthly archive (DATA, PREDISP_ALL_DATA or P5MIN_ALL_DATA)",
	)
	rootCmd.AddCommand(tablesCmd)
}

func parsePeriodArgs(args []string) periods.Period {
	year, err := strconv.Atoi(args[0])
	if err != nil {
		fatal("invalid year", err)
	}
	month, err := strconv.Atoi(args[1])
	if err != nil {
		fatal("invalid month", err)
	}
	return periods.Period{Year: year, Month: month}
}

var tablesCmd = &cobra.Command{
	Use:   "tables <year> <month>",
	Short: "Display available tables and their archive sizes for a period.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		period := parsePeriodArgs(args)
		dir := parseDataDir()

		entries, err := client.TableSizes(cmd.Context(), period, dir)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		t := utils.NewTable()
		t.AppendHeader(table.Row{"Table", "Size"})
		for _, entry := range entries {
			t.AppendRow(table.Row{entry.Table, utils.FormatBytes(entry.Size)})
		}
		t.Render()
	},
}
