package root

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/iafilius/CanDashboard/src/export"
)

func newRenderCmd(s *session) *cobra.Command {
	var (
		out    string
		dir    string
		format string
		cf     chartFlags
	)

	cmd := &cobra.Command{
		Use:   "render [data-file]",
		Short: "Render a chart to PNG or SVG",
		Long:  `Render the configured chart headlessly. The output format follows the file extension.`,
		Example: heredoc.Doc(`
			# Single metric at twice the resolution
			$ canchart render drive.jsonl --metric engine.rpm --pixel-ratio 2 --out rpm.png

			# Every configured metric together, as SVG
			$ canchart render drive.jsonl --overlay --out overlay.svg

			# One file per metric plus an overlay into a directory
			$ canchart render drive.jsonl --dir charts --format svg
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
			if dir != "" {
				paths, err := export.Directory(dir, format, cfg, data)
				if err != nil {
					return err
				}
				for _, p := range paths {
					fmt.Fprintln(cmd.OutOrStdout(), p)
				}
				return nil
			}
			if err := export.File(out, cfg, data); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVarP(&out, "out", "o", "chart.png", "Output file (.png or .svg)")
	cmd.Flags().StringVar(&dir, "dir", "", "Write an overlay and one chart per metric into this directory")
	cmd.Flags().StringVar(&format, "format", "png", "Format for --dir: png or svg")
	cf.register(cmd)
	cmd.MarkFlagsMutuallyExclusive("out", "dir")

	return cmd
}
