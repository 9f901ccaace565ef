// Package cli provides the command-line interface for tabledb.
package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabledb-io/tabledb/internal/config"
	"github.com/tabledb-io/tabledb/pkg/adapter"
	"github.com/tabledb-io/tabledb/pkg/dialect"
	"github.com/tabledb-io/tabledb/pkg/engine"

	// Registered backends.
	_ "github.com/tabledb-io/tabledb/pkg/adapters/duckdb"
	_ "github.com/tabledb-io/tabledb/pkg/adapters/postgres"
	_ "github.com/tabledb-io/tabledb/pkg/adapters/sqlite"
)

var (
	cfgFile    string
	schemaFlag string
	cfg        *config.Config
	logger     *slog.Logger
)

// Version information (set at build time).
var (
	Version   = "0.1.0"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

// NewRootCmd creates and returns the root command.
func NewRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "tabledb",
		Short: "tabledb - move tabular data in and out of relational schemas",
		Long: `tabledb moves tabular data between delimited files and relational schemas
across interchangeable database backends, without hand-written SQL.

Writes are synthesized as parameterized statements and committed in
transactional batches; reads come back as a header-plus-rows grid.`,
		Version:       Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Name() == "help" || cmd.Name() == "completion" || cmd.Name() == "__complete" {
				return nil
			}

			var err error
			cfg, err = config.Load(cfgFile, cmd.Root().PersistentFlags())
			if err != nil {
				return err
			}

			level := slog.LevelWarn
			if cfg.Verbose {
				level = slog.LevelDebug
			}
			logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: tabledb.yaml)")
	rootCmd.PersistentFlags().StringVar(&schemaFlag, "schema", "", "schema to connect to (default: default_schema from config)")
	rootCmd.PersistentFlags().Bool("verbose", false, "enable debug logging")

	rootCmd.AddCommand(newQueryCmd())
	rootCmd.AddCommand(newLoadCmd())
	rootCmd.AddCommand(newSchemasCmd())
	rootCmd.AddCommand(newVersionCmd())

	return rootCmd
}

// Execute runs the root command.
func Execute() error {
	rootCmd := NewRootCmd()
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return err
	}
	return nil
}

// openSession connects a manager and session for the selected schema.
// The returned release func closes the connection on every exit path.
func openSession(ctx context.Context) (*engine.Session, func(), error) {
	schema, err := cfg.Schema(schemaFlag)
	if err != nil {
		return nil, nil, err
	}

	desc, err := dialect.Lookup(schema.Driver)
	if err != nil {
		return nil, nil, err
	}

	mgr := adapter.NewManager(logger)
	if err := mgr.Connect(ctx, desc, schema.AdapterConfig()); err != nil {
		return nil, nil, err
	}

	sess, err := engine.NewSession(mgr, logger)
	if err != nil {
		_ = mgr.Close()
		return nil, nil, err
	}

	return sess, func() { _ = mgr.Close() }, nil
}
