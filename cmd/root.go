package cmd

import (
	"os"

	"github.com/ehusby/qreport/internal/config"
	"github.com/ehusby/qreport/internal/pbs"
	"github.com/ehusby/qreport/internal/report"
	"github.com/ehusby/qreport/internal/utils"
	"github.com/spf13/cobra"
)

var (
	debugMode  bool
	quietMode  bool
	blockMode  bool
	includeAll bool
)

var rootCmd = &cobra.Command{
	Use:   "qreport [mode...]",
	Short: "QReport: job and node utilization reports for PBS/Torque clusters.",
	Long: `QReport renders human-readable summaries of PBS/Torque scheduler state:
job tables grouped by batch, node, user, or status, per-node utilization with
reservation overlays, and a user-by-status cross-tab.

Modes run in the order given; with no mode, the status-grouped job summary is
printed. Available modes:

  none            status-grouped job summary (the default)
  runs            active interactive reservations and remaining walltime
  table           user-by-status cross-tab with totals
  nodes           per-node utilization, plus the high-memory partition
  jobs            status-grouped job table
  jobs-by-batch   jobs grouped by batch (user and queue)
  jobs-by-node    jobs grouped by assigned node
  jobs-by-user    jobs grouped by user only`,
	Version:       config.VERSION,
	SilenceErrors: true,

	ValidArgs: report.ModeTokens,
	Args:      cobra.OnlyValidArgs,

	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		// Step 1: built-in defaults
		config.LoadDefaults()

		// Step 2: config file and environment via Viper
		if err := config.InitViper(); err != nil {
			utils.PrintDebug("Error reading config file: %v", err)
		}

		// Step 3: resolve scheduler binaries through PATH when unset
		config.AutoDetectBinaries()

		// Step 4: resolved values into the Global config
		config.LoadFromViper()

		// Step 5: command-line flags (highest priority)
		if quietMode {
			utils.QuietMode = true
			config.Global.Quiet = true
		}
		if debugMode {
			utils.DebugMode = true
			config.Global.Debug = true
			utils.PrintDebug("Debug mode enabled")
			utils.PrintDebug("QReport Version: %s", config.VERSION)
			if configPath, err := config.GetUserConfigPath(); err == nil {
				utils.PrintDebug("User Config Path: %s", configPath)
			}
			utils.PrintDebug("qstat Binary: %s", config.Global.QstatBin)
			if !config.ValidateBinary(config.Global.QstatBin) {
				utils.PrintDebug("qstat binary not resolvable on PATH")
			}
			utils.PrintDebug("pbsnodes Binary: %s", config.Global.PbsnodesBin)
			if !config.ValidateBinary(config.Global.PbsnodesBin) {
				utils.PrintDebug("pbsnodes binary not resolvable on PATH")
			}
			utils.PrintDebug("Staff Users: %v", config.Global.StaffUsers)
			utils.PrintDebug("High-memory Property: %s", config.Global.HighMemProperty)
			if config.Global.LogDir != "" {
				utils.PrintDebug("Log Directory: %s", config.Global.LogDir)
			}
		}
	},

	RunE: func(cmd *cobra.Command, args []string) error {
		opts := config.OptionsFromGlobal(includeAll, blockMode)
		report.Run(cmd.OutOrStdout(), pbs.ActiveSource(), args, opts)
		return nil
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra's automatic error printing is silenced; report the error
		// once and exit non-zero. This is the InvalidMode path: an
		// unrecognized token aborts before any report runs.
		utils.PrintError("%v", err)
		os.Exit(1)
	}
}

func init() {
	// Subcommands are attached to rootCmd in their respective init() functions
	rootCmd.PersistentFlags().BoolVarP(&blockMode, "blocks", "b", false, "Aggregate contiguous runs instead of counting all unique groups")
	rootCmd.PersistentFlags().BoolVarP(&includeAll, "all", "a", false, "Include staff users and extended job info")
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode with verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quietMode, "quiet", "q", false, "Suppress informational messages")
}
