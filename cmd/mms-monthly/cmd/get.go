package cmd

import (
	"fmt"
	"os"

	"mmsmonthly/lib/scrapers/mmsdm"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"
)

func init() {
	getCmd.Flags().StringVar(
		&dataDir, "data-dir", "DATA",
		"directory within the monthly archive (DATA, PREDISP_ALL_DATA or P5MIN_ALL_DATA)",
	)
	rootCmd.AddCommand(getCmd)
}

var getCmd = &cobra.Command{
	Use:   "get <year> <month> <table> [dest]",
	Short: "Download and unzip a monthly archive to get the table CSV in dest.",
	Long: "Download and unzip a monthly archive to get the table CSV in dest.\n" +
		"To see available periods, use the `periods` command.\n" +
		"To see available tables for a given period, use the `tables` command.",
	Args: cobra.RangeArgs(3, 4),
	Run: func(cmd *cobra.Command, args []string) {
		period := parsePeriodArgs(args)
		dir := parseDataDir()
		tableName := args[2]

		dest := config.CacheDir
		if len(args) == 4 {
			dest = args[3]
		}
		if dest == "" {
			dest = "."
		}

		var bar *progressbar.ProgressBar
		sink := mmsdm.ProgressFunc(func(complete, total int64) {
			if bar == nil {
				bar = progressbar.DefaultBytes(
					total,
					mmsdm.ArchiveStem(period, tableName)+".zip",
				)
			}
			bar.Set64(complete)
		})

		csvPath, err := client.Retrieve(cmd.Context(), mmsdm.Request{
			Period: period,
			Dir:    dir,
			Table:  tableName,
			Dest:   dest,
		}, sink)
		if bar != nil {
			bar.Finish()
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}

		fmt.Println(csvPath)
	},
}
