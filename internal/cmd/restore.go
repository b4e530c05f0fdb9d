package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var restoreCmd = &cobra.Command{
	Use:   "restore <session-id> <name>",
	Short: "Recover the text of a stored snapshot",
	Long: `Restore prints the stored text of an unsaved-document snapshot to
stdout, or writes it to a file with --output. The snapshot itself is left in
the store; remove it by saving the document in the editor or by sweeping.

Example:
  safekeep restore 20240115-093000 "Untitled Document 1" -o recovered.txt`,
	Args: cobra.ExactArgs(2),
	RunE: runRestore,
}

var restoreOutput string

func init() {
	restoreCmd.Flags().StringVarP(&restoreOutput, "output", "o", "", "Write the snapshot to this file instead of stdout")
	rootCmd.AddCommand(restoreCmd)
}

func runRestore(cmd *cobra.Command, args []string) error {
	st, _, err := openStore()
	if err != nil {
		return err
	}

	sessionID, name := args[0], args[1]

	text, err := st.ReadSnapshot(sessionID, name)
	if err != nil {
		return fmt.Errorf("failed to read snapshot: %w", err)
	}

	if restoreOutput == "" {
		fmt.Print(text)
		return nil
	}

	// 0600 to match the store's own permissions; recovered drafts may
	// hold anything the user was typing.
	if err := os.WriteFile(restoreOutput, []byte(text), 0600); err != nil {
		return fmt.Errorf("failed to write output file: %w", err)
	}
	fmt.Printf("Recovered %d bytes to %s\n", len(text), restoreOutput)
	return nil
}
