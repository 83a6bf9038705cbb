package cmd

import (
	"fmt"
	"os"

	"github.com/chriserin/jsxgen/internal/config"
	"github.com/chriserin/jsxgen/internal/db"
	"github.com/chriserin/jsxgen/internal/logging"
	"github.com/spf13/cobra"
)

var (
	verbosity  int
	configPath string
)

var rootCmd = &cobra.Command{
	Use:          "jsxgen",
	Short:        "Generate React component files from a JSX outline",
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		logging.SetupLogger(verbosity)
		log := logging.GetLogger("cmd")
		log.Debug().
			Str("command", cmd.Name()).
			Strs("args", args).
			Msg("Executing command")
	},
}

func init() {
	rootCmd.PersistentFlags().CountVarP(&verbosity, "verbose", "v", "increase log verbosity (-v info, -vv debug, -vvv trace)")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./"+config.ProjectFile+")")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadConfig(overrides map[string]interface{}) (*config.Config, error) {
	return config.Load(config.LoadOptions{ConfigFile: configPath, Overrides: overrides})
}

// openStore opens the history database, which must already exist.
func openStore(cfg *config.Config) (*db.Store, func() error, error) {
	if _, err := os.Stat(cfg.History.Path); os.IsNotExist(err) {
		return nil, nil, fmt.Errorf("no history at %s, run `jsxgen generate` first", cfg.History.Path)
	}
	sqlDB, err := db.Open(cfg.History.Path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening database: %w", err)
	}
	return db.NewStore(sqlDB), sqlDB.Close, nil
}

func readSource(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	return string(data), nil
}
