package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove session directories older than the retention threshold",
	Long: `Sweep deletes every session directory (and its snapshots) whose age
exceeds the retention threshold. The editor integration runs the same sweep
automatically at activation; this command exists for manual housekeeping.

Use --dry-run to see what would be removed without deleting anything.`,
	RunE: runSweep,
}

var (
	sweepDryRun        bool
	sweepRetentionDays uint
)

func init() {
	sweepCmd.Flags().BoolVar(&sweepDryRun, "dry-run", false, "Show what would be removed without making changes")
	sweepCmd.Flags().UintVar(&sweepRetentionDays, "retention-days", 0, "Override the configured retention threshold")
	rootCmd.AddCommand(sweepCmd)
}

func runSweep(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}

	retention := cfg.Store.Retention()
	if sweepRetentionDays > 0 {
		retention = time.Duration(sweepRetentionDays) * 24 * time.Hour
	}

	now := time.Now()

	if sweepDryRun {
		sessions, err := st.Sessions()
		if err != nil {
			return fmt.Errorf("failed to list sessions: %w", err)
		}

		stale := 0
		for _, s := range sessions {
			if !s.Current && s.Age(now) >= retention {
				fmt.Printf("would remove %s (%s, %d snapshot(s))\n",
					sessionIDStyle.Render(s.ID), formatAge(s.Age(now)), s.Snapshots)
				stale++
			}
		}
		if stale == 0 {
			fmt.Println(dimStyle.Render("Nothing to sweep."))
		}
		return nil
	}

	result, err := st.SweepOldSessions(now, retention)
	for _, id := range result.Removed {
		fmt.Println("removed " + sessionIDStyle.Render(id))
	}
	for _, name := range result.Skipped {
		fmt.Println(warnStyle.Render("skipped foreign entry: " + name))
	}
	if err != nil {
		return fmt.Errorf("sweep finished with failures: %w", err)
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("Swept %d session(s), kept %d.",
		len(result.Removed), len(result.Kept))))
	return nil
}
