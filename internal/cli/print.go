package cli

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"checkreg/checkreg/internal/grid"
)

func newPrintCommand(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "print [file]",
		Short: "Print a file as a table without starting the grid",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			defer a.closeLog()

			path := a.cfg.DefaultPath
			if len(args) == 1 {
				path = args[0]
			}

			session, err := a.newSession()
			if err != nil {
				return err
			}
			if err := session.Load(path); err != nil {
				log.Error().Stack().Err(err).Str("path", path).Msg("print failed")
				return err
			}
			return renderTable(cmd.OutOrStdout(), session.View())
		},
	}
}

func renderTable(w io.Writer, t *grid.Table) error {
	tw := table.NewWriter()
	tw.SetOutputMirror(w)
	tw.SetStyle(table.StyleLight)

	header := make(table.Row, len(t.Columns))
	configs := make([]table.ColumnConfig, 0, len(t.Columns))
	for i, c := range t.Columns {
		header[i] = c.Name
		if c.Kind == grid.KindInt {
			configs = append(configs, table.ColumnConfig{Number: i + 1, Align: text.AlignRight})
		}
	}
	tw.AppendHeader(header)
	tw.SetColumnConfigs(configs)

	for _, cells := range t.Strings() {
		row := make(table.Row, len(cells))
		for i, cell := range cells {
			row[i] = cell
		}
		tw.AppendRow(row)
	}

	tw.Render()
	_, err := fmt.Fprintf(w, "(%d rows)\n", t.Len())
	return err
}
