package root

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/iafilius/CanDashboard/src/metrics"
)

func newInspectCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "inspect [data-file]",
		Short: "Summarize a data file",
		Long:  `Print the record count, time span, categories with their keys and the metrics that would be discovered.`,
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			data, cfg, err := s.load(args)
			if err != nil {
				return err
			}
			printSummary(cmd.OutOrStdout(), metrics.Summarize(data), cfg.Metrics)
			return nil
		},
	}
	return cmd
}

func printSummary(w io.Writer, sum metrics.Summary, ds []metrics.Descriptor) {
	fmt.Fprintf(w, "Total records: %d\n", sum.Records)
	if !sum.First.IsZero() {
		fmt.Fprintf(w, "Span: %s .. %s (%s)\n",
			sum.First.Format(time.RFC3339), sum.Last.Format(time.RFC3339), sum.Last.Sub(sum.First))
	}
	cats := make([]string, 0, len(sum.Keys))
	for c := range sum.Keys {
		cats = append(cats, c)
	}
	sort.Strings(cats)
	for _, c := range cats {
		fmt.Fprintf(w, "%s:\n", c)
		for _, k := range sum.Keys[c] {
			if n := sum.Booleans[c+"."+k]; n > 0 {
				fmt.Fprintf(w, "  %s (boolean, %d samples)\n", k, n)
				continue
			}
			fmt.Fprintf(w, "  %s\n", k)
		}
	}
	fmt.Fprintf(w, "Metrics: %d\n", len(ds))
	for _, d := range ds {
		unit := d.Unit
		if unit == "" {
			unit = "-"
		}
		fmt.Fprintf(w, "  %s.%s  %s  %s  %s\n", d.Category, d.Key, d.Label, d.Color, unit)
	}
}
