package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
)

var sessionsCmd = &cobra.Command{
	Use:   "sessions",
	Short: "List sessions in the unsaved-document store",
	Long: `List the session directories under the store root, oldest first,
with their age and how many snapshots each still holds. Sessions past the
retention threshold are flagged; they will be removed by the next sweep.`,
	RunE: runSessions,
}

var sessionsShowFiles bool

func init() {
	sessionsCmd.Flags().BoolVarP(&sessionsShowFiles, "files", "f", false, "Also list the snapshot files in each session")
	rootCmd.AddCommand(sessionsCmd)
}

func runSessions(cmd *cobra.Command, args []string) error {
	st, cfg, err := openStore()
	if err != nil {
		return err
	}

	sessions, err := st.Sessions()
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	if len(sessions) == 0 {
		fmt.Println(dimStyle.Render("No sessions in " + st.Root()))
		return nil
	}

	fmt.Println(titleStyle.Render(fmt.Sprintf("%d session(s) in %s", len(sessions), st.Root())))

	now := time.Now()
	retention := cfg.Store.Retention()
	for _, s := range sessions {
		age := s.Age(now)
		line := fmt.Sprintf("  %s  %s  %d snapshot(s)",
			sessionIDStyle.Render(s.ID), formatAge(age), s.Snapshots)
		if age >= retention {
			line += "  " + staleStyle.Render("stale (past retention)")
		}
		fmt.Println(line)

		if sessionsShowFiles {
			entries, err := os.ReadDir(filepath.Join(st.Root(), s.ID))
			if err != nil {
				fmt.Println(warnStyle.Render("    cannot list: " + err.Error()))
				continue
			}
			for _, e := range entries {
				fmt.Println(dimStyle.Render("    " + e.Name()))
			}
		}
	}
	return nil
}

// formatAge renders a duration in the largest useful unit.
func formatAge(age time.Duration) string {
	switch {
	case age >= 48*time.Hour:
		return fmt.Sprintf("%dd old", int(age.Hours()/24))
	case age >= time.Hour:
		return fmt.Sprintf("%dh old", int(age.Hours()))
	default:
		return fmt.Sprintf("%dm old", int(age.Minutes()))
	}
}
