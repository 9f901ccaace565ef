package cli

import (
	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func newSchemasCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schemas",
		Short: "List the configured schemas",
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := prettytable.NewWriter()
			t.SetOutputMirror(cmd.OutOrStdout())
			t.SetStyle(prettytable.StyleLight)
			t.AppendHeader(prettytable.Row{"SCHEMA", "DRIVER", "TARGET", "DEFAULT"})

			for _, name := range cfg.SchemaNames() {
				s := cfg.Schemas[name]
				target := s.Path
				if target == "" {
					target = s.Database
				}
				def := ""
				if name == cfg.DefaultSchema {
					def = "*"
				}
				t.AppendRow(prettytable.Row{name, s.Driver, target, def})
			}

			t.Render()
			return nil
		},
	}
}
