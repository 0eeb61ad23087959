package root

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/iafilius/CanDashboard/src/chart"
)

func newTooltipCmd(s *session) *cobra.Command {
	var (
		x, y float64
		cf   chartFlags
	)

	cmd := &cobra.Command{
		Use:   "tooltip [data-file]",
		Short: "Show the tooltip a pointer at x,y would get",
		Long:  `Hit-test a surface-local position against the retained window and print the tooltip.`,
		Example: heredoc.Doc(`
			# Leftmost record
			$ canchart tooltip drive.jsonl --x 60 --y 100
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
			opts := cfg.ChartOptions()
			l := chart.NewLayout(cfg.Width, opts.SurfaceHeight())
			tip := chart.ResolveTooltip(l, data, opts.Selected(), chart.Point{X: x, Y: y}, chart.Frame{})
			w := cmd.OutOrStdout()
			if !tip.Show {
				fmt.Fprintln(w, "no tooltip")
				return nil
			}
			fmt.Fprintf(w, "at %.0f,%.0f\n", tip.X, tip.Y)
			for _, line := range tip.Lines() {
				fmt.Fprintln(w, line)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&x, "x", 0, "Pointer x in logical pixels")
	cmd.Flags().Float64Var(&y, "y", 0, "Pointer y in logical pixels")
	cf.register(cmd)

	return cmd
}
