package cli

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/tabledb-io/tabledb/pkg/engine"
	"github.com/tabledb-io/tabledb/pkg/synth"
	"github.com/tabledb-io/tabledb/pkg/table"
)

func newLoadCmd() *cobra.Command {
	var (
		tableName string
		modeName  string
		batchSize int
		keys      []string
		noHeader  bool
	)

	cmd := &cobra.Command{
		Use:   "load <file.csv>",
		Short: "Write a CSV file into a table in transactional batches",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			mode, err := synth.ParseMode(modeName)
			if err != nil {
				return err
			}

			tbl, err := readCSV(args[0], !noHeader)
			if err != nil {
				return err
			}

			sess, release, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			count, err := sess.ToDB(cmd.Context(), tbl, tableName, engine.WriteOptions{
				Mode:         mode,
				BatchSize:    batchSize,
				DuplicateKey: keys,
			})
			if err != nil {
				var be *engine.BatchError
				if errors.As(err, &be) {
					// Earlier batches stay committed; tell the caller how far we got.
					fmt.Fprintf(cmd.ErrOrStderr(), "%d rows committed before failure\n", count)
				}
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%d rows written to %s\n", count, tableName)
			return nil
		},
	}

	cmd.Flags().StringVar(&tableName, "table", "", "target table name (required)")
	cmd.Flags().StringVar(&modeName, "mode", "insert", "write mode: insert, replace, update, truncate, create")
	cmd.Flags().IntVar(&batchSize, "batch-size", engine.DefaultBatchSize, "rows committed per transaction")
	cmd.Flags().StringSliceVar(&keys, "key", nil, "duplicate key column for update mode (repeatable)")
	cmd.Flags().BoolVar(&noHeader, "no-header", false, "treat the first CSV row as data, synthesizing column names")
	_ = cmd.MarkFlagRequired("table")

	return cmd
}

func readCSV(path string, withHeader bool) (*table.Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open CSV file: %w", err)
	}
	defer func() { _ = f.Close() }()

	// FieldsPerRecord stays at its default so ragged rows surface as errors
	// with line numbers before any table validation runs.
	records, err := csv.NewReader(f).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}

	return table.FromStrings(records, withHeader)
}
