package root

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/iafilius/CanDashboard/src/export"
	"github.com/iafilius/CanDashboard/src/termchart"
)

func newPreviewCmd(s *session) *cobra.Command {
	var (
		cols, rows int
		cf         chartFlags
	)

	cmd := &cobra.Command{
		Use:   "preview [data-file]",
		Short: "Draw the chart in the terminal",
		Long:  `Draw the retained window as braille lines in each metric's color.`,
		Example: heredoc.Doc(`
			$ canchart preview drive.jsonl --metric rpm
			$ canchart preview drive.jsonl --overlay --cols 120 --rows 24
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, cfg, err := s.load(args)
			if err != nil {
				return err
			}
			if cfg, err = cf.apply(cmd, cfg); err != nil {
				return err
			}
			if cmd.Flags().Changed("cols") {
				cfg.Terminal.Width = cols
			}
			if cmd.Flags().Changed("rows") {
				cfg.Terminal.Height = rows
			}
			out := termchart.Render(data, cfg.ChartOptions(), cfg.Terminal.Width, cfg.Terminal.Height)
			if out == "" {
				return export.ErrNothingToDraw
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().IntVar(&cols, "cols", 0, "Preview width in cells (overrides terminal.width)")
	cmd.Flags().IntVar(&rows, "rows", 0, "Preview height in cells (overrides terminal.height)")
	cf.register(cmd)

	return cmd
}
