package commands

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/pribylovaa/reverb-scraper/internal/models"
	"github.com/pribylovaa/reverb-scraper/internal/pkg/redact"
	"github.com/pribylovaa/reverb-scraper/internal/service"
	"github.com/pribylovaa/reverb-scraper/internal/storage/postgres"
	"github.com/spf13/cobra"
)

var (
	accountEmail string

	instrumentID    int64
	instrumentType  string
	instrumentMake  string
	instrumentModel string
)

func init() {
	for _, c := range []*cobra.Command{addUserCmd, addInstrumentCmd, userInstrumentsCmd, deleteUserCmd} {
		c.Flags().StringVar(&accountEmail, "email", "", "user e-mail")
		_ = c.MarkFlagRequired("email")
	}

	addInstrumentCmd.Flags().Int64Var(&instrumentID, "id", 0, "link an existing instrument by id")
	addInstrumentCmd.Flags().StringVar(&instrumentType, "type", "", "instrument type, e.g. guitar")
	addInstrumentCmd.Flags().StringVar(&instrumentMake, "make", "", "instrument make, e.g. Fender")
	addInstrumentCmd.Flags().StringVar(&instrumentModel, "model", "", "instrument model, e.g. Stratocaster")
	addInstrumentCmd.MarkFlagsMutuallyExclusive("id", "type")

	rootCmd.AddCommand(addUserCmd, addInstrumentCmd, userInstrumentsCmd, deleteUserCmd, pruneInstrumentsCmd)
}

var addUserCmd = &cobra.Command{
	Use:   "add-user --email <email>",
	Short: "Registers a user whose instruments are tracked.",
	Args:  cobra.NoArgs,
	RunE: withAccounts(func(cmd *cobra.Command, accounts *service.Accounts) error {
		user, err := accounts.RegisterUser(cmd.Context(), accountEmail)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user %d created\n", user.ID)
		return nil
	}),
}

var addInstrumentCmd = &cobra.Command{
	Use:   "add-instrument --email <email> (--id <n> | --type <t> --make <m> --model <m>)",
	Short: "Links a new or existing instrument to a user.",
	Args:  cobra.NoArgs,
	RunE: withAccounts(func(cmd *cobra.Command, accounts *service.Accounts) error {
		inst, err := accounts.AddInstrument(cmd.Context(), accountEmail, models.Instrument{
			ID:    instrumentID,
			Type:  instrumentType,
			Make:  instrumentMake,
			Model: instrumentModel,
		})
		if err != nil {
			return err
		}
		renderInstruments(cmd.OutOrStdout(), []models.Instrument{*inst})
		return nil
	}),
}

var userInstrumentsCmd = &cobra.Command{
	Use:   "user-instruments --email <email>",
	Short: "Lists the instruments linked to a user.",
	Args:  cobra.NoArgs,
	RunE: withAccounts(func(cmd *cobra.Command, accounts *service.Accounts) error {
		list, err := accounts.UserInstruments(cmd.Context(), accountEmail)
		if err != nil {
			return err
		}
		renderInstruments(cmd.OutOrStdout(), list)
		return nil
	}),
}

var deleteUserCmd = &cobra.Command{
	Use:   "delete-user --email <email>",
	Short: "Deletes a user and the instruments no other user owns.",
	Args:  cobra.NoArgs,
	RunE: withAccounts(func(cmd *cobra.Command, accounts *service.Accounts) error {
		removed, err := accounts.DeleteUser(cmd.Context(), accountEmail)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "user deleted, %d orphaned instruments removed\n", removed)
		return nil
	}),
}

var pruneInstrumentsCmd = &cobra.Command{
	Use:   "prune-instruments",
	Short: "Deletes instruments that are not linked to any user.",
	Args:  cobra.NoArgs,
	RunE: withAccounts(func(cmd *cobra.Command, accounts *service.Accounts) error {
		removed, err := accounts.PruneInstruments(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%d orphaned instruments removed\n", removed)
		return nil
	}),
}

// withAccounts подключает PostgreSQL на время выполнения команды.
func withAccounts(run func(cmd *cobra.Command, accounts *service.Accounts) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := cfg.RequireDB(); err != nil {
			return err
		}

		st, err := connectDB(cmd.Context())
		if err != nil {
			return err
		}
		defer st.Close()

		return run(cmd, service.NewAccounts(st))
	}
}

func connectDB(ctx context.Context) (*postgres.Storage, error) {
	dbCtx, cancel := context.WithTimeout(ctx, cfg.Timeouts.DB)
	defer cancel()

	st, err := postgres.New(dbCtx, cfg.DB.URL)
	if err != nil {
		logger.Error("postgres_connect_failed",
			slog.String("dsn", redact.URL(cfg.DB.URL)),
			slog.String("err", err.Error()),
		)
		return nil, err
	}
	logger.Info("postgres_connected", slog.String("dsn", redact.URL(cfg.DB.URL)))

	return st, nil
}
