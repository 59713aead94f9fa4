// commands — CLI reverb-scraper на cobra.
//
// Конфигурация загружается один раз в PersistentPreRunE (флаг --config
// имеет приоритет над CONFIG_PATH); логгер кладётся в контекст команды.
package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/pribylovaa/reverb-scraper/internal/config"
	"github.com/pribylovaa/reverb-scraper/internal/pkg/log"
	"github.com/spf13/cobra"
)

var (
	configPath string

	cfg    *config.Config
	logger *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:           "reverb-scraper",
	Short:         "reverb-scraper dumps Reverb category listings to JSON and manages tracked instruments.",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
		loaded, err := config.Load(configPath)
		if err != nil {
			return err
		}
		cfg = loaded

		logger = setupLogger(cfg.Env)
		slog.SetDefault(logger)
		cmd.SetContext(log.Into(cmd.Context(), logger))

		logger.Debug("config_loaded", slog.String("env", cfg.Env))
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file (overrides CONFIG_PATH env)")
}

// ExecuteContext запускает CLI; любая ошибка завершает процесс с кодом 1.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
