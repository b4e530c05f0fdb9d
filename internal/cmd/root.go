// Package cmd implements the safekeep command line, the operator surface
// over the unsaved-document store: listing sessions, sweeping old ones, and
// recovering snapshots.
package cmd

import (
	"strings"
	"time"

	"github.com/safekeep/safekeep/internal/config"
	"github.com/safekeep/safekeep/internal/logging"
	"github.com/safekeep/safekeep/internal/store"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var rootCmd = &cobra.Command{
	Use:   "safekeep",
	Short: "Crash-recovery store for unsaved editor buffers",
	Long: `Safekeep periodically snapshots the text of unsaved, untitled editor
documents into a per-session store under ~/` + config.StoreDirName + `, so an
editor crash or abrupt close never loses an unnamed buffer.

The editor integration does the snapshotting; this command inspects and
maintains the store: list past sessions, sweep out sessions older than the
retention threshold, and recover snapshot text.`,
}

// Execute runs the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", "", "config file (default is $HOME/.config/safekeep/config.yaml)")
	_ = viper.BindPFlag("config", rootCmd.PersistentFlags().Lookup("config"))
}

func initConfig() {
	// Set defaults first so they're available even without a config file
	config.SetDefaults()

	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(config.ConfigDir())
		viper.AddConfigPath("$HOME/.config/safekeep")
		viper.AddConfigPath(".")
	}

	viper.AutomaticEnv()
	viper.SetEnvPrefix("SAFEKEEP")
	// Replace dots with underscores for nested keys in env vars
	// e.g., SAFEKEEP_STORE_RETENTION_DAYS for store.retention_days
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Read config file if it exists (ignore error if not found)
	_ = viper.ReadInConfig()
}

// openStore builds a store handle from the effective configuration. CLI
// invocations get their own throwaway session id; they only ever read or
// sweep past sessions, never write snapshots.
func openStore() (*store.Store, *config.Config, error) {
	cfg := config.Get()

	log, err := logging.NewLogger(cfg.Logging.Dir, cfg.Logging.Level)
	if err != nil {
		return nil, nil, err
	}

	return store.Open(cfg.Store.ResolveRoot(), time.Now(), log), cfg, nil
}
