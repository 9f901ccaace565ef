package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/tabledb-io/tabledb/pkg/engine"
	"github.com/tabledb-io/tabledb/pkg/table"
)

func newQueryCmd() *cobra.Command {
	var (
		format string
		lazy   bool
	)

	cmd := &cobra.Command{
		Use:   "query <sql>",
		Short: "Run a read statement and render the result",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")

			sess, release, err := openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer release()

			if format == "" {
				format = cfg.Format
			}

			if lazy {
				return streamQuery(cmd.Context(), cmd, sess, query)
			}

			tbl, err := sess.FromDB(cmd.Context(), query)
			if err != nil {
				return err
			}
			return renderResult(cmd.OutOrStdout(), tbl, format)
		},
	}

	cmd.Flags().StringVar(&format, "format", "", "output format: table, json, csv, md")
	cmd.Flags().BoolVar(&lazy, "lazy", false, "stream rows as they arrive instead of materializing the result")

	return cmd
}

// streamQuery consumes the single-pass row sequence, printing tab-separated
// rows as they arrive. The cursor stays open until exhaustion.
func streamQuery(ctx context.Context, cmd *cobra.Command, sess *engine.Session, query string) error {
	rows, err := sess.FromDBLazy(ctx, query)
	if err != nil {
		return err
	}
	defer func() { _ = rows.Close() }()

	w := cmd.OutOrStdout()
	_, _ = fmt.Fprintln(w, rowHeaderString(rows.Header()))

	count := 0
	for rows.Next() {
		_, _ = fmt.Fprintln(w, rowString(rows.Row()))
		count++
	}
	if err := rows.Err(); err != nil {
		return err
	}

	_, _ = fmt.Fprintf(w, "(%d rows)\n", count)
	return nil
}

func rowHeaderString(header []string) string {
	return strings.Join(header, "\t")
}

// rowString renders one streamed row.
func rowString(row []table.Value) string {
	parts := make([]string, len(row))
	for i, v := range row {
		parts[i] = formatValue(v)
	}
	return strings.Join(parts, "\t")
}
