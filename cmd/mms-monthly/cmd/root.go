package cmd

import (
	"context"
	"fmt"
	"os"

	"mmsmonthly/lib/configutil"
	"mmsmonthly/lib/restyutil"
	"mmsmonthly/lib/scrapers/mmsdm"
	"mmsmonthly/lib/telemetry"

	"github.com/spf13/cobra"
)

type Config struct {
	// BaseUrl overrides the archive root, mostly for testing against a
	// local mirror.
	BaseUrl string `json:"base_url"`
	// CacheDir is the default destination for downloaded tables.
	CacheDir string `json:"cache_dir"`
	// RestyTelemetryDir receives request/response exchange dumps when
	// running verbose.
	RestyTelemetryDir string `json:"resty_telemetry_dir"`
}

var (
	verbose bool
	dataDir string

	config Config
	client *mmsdm.Client
)

var rootCmd = &cobra.Command{
	Use: "mms-monthly",
	Short: "A CLI utility to find and obtain data made available through " +
		"AEMO's MMS Monthly Data Archive: " + mmsdm.DefaultArchiveUrl,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		telemetry.InitSlog(verbose)
		if err := telemetry.SetupFromEnv(cmd.Context(), "mms-monthly"); err != nil {
			fatal("failed to setup telemetry", err)
		}
		telemetry.InstrumentPerfStats(cmd.Context())

		var err error
		config, err = configutil.ReadRecursively[Config]("mms-monthly.json5")
		if err != nil && !os.IsNotExist(err) {
			fatal("failed to read config", err)
		}

		if verbose && config.RestyTelemetryDir != "" {
			mmsdm.SetRestyInstrumentOutput(
				restyutil.NewFilesystemOutput(config.RestyTelemetryDir),
			)
		}

		client = mmsdm.NewClient(mmsdm.ClientOptions{
			BaseUrl: config.BaseUrl,
		})
	},
}

func Execute() {
	err := rootCmd.Execute()
	telemetry.Shutdown(context.Background())
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func fatal(message string, err error) {
	fmt.Fprintf(os.Stderr, "%s: %s\n", message, err)
	os.Exit(1)
}

func parseDataDir() mmsdm.DataDirectory {
	dir, err := mmsdm.ParseDataDirectory(dataDir)
	if err != nil {
		fatal("invalid --data-dir", err)
	}
	return dir
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(
		&verbose, "verbose", "v", false,
		"enable debug logging and HTTP exchange capture",
	)
}
