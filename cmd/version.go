package cmd

import (
	"fmt"

	"github.com/ehusby/qreport/internal/config"
	"github.com/ehusby/qreport/internal/pbs"
	"github.com/ehusby/qreport/internal/utils"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show QReport and scheduler versions",
	Long: `Show the QReport version and the installed scheduler release.

The scheduler release is probed with 'qstat --version' and checked against
the oldest release the report formats are known to parse. A failed probe is
not fatal; the release prints as "unknown".`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("QReport version %s\n", config.VERSION)

		version, err := pbs.NewCommandSource().SchedulerVersion()
		if err != nil {
			utils.PrintDebug("Scheduler version probe failed: %v", err)
			utils.PrintMessage("Scheduler version unknown")
			return
		}

		fmt.Printf("Scheduler version %s\n", version)
		if !pbs.VersionSupported(version, config.MinSchedulerVersion) {
			utils.PrintWarning("Scheduler release %s is older than the minimum supported %s; reports may be incomplete.",
				version, config.MinSchedulerVersion)
		}
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
