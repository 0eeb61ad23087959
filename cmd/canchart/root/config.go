package root

import (
	"github.com/spf13/cobra"

	"github.com/iafilius/CanDashboard/src/config"
)

func newConfigCmd(s *session) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config [data-file]",
		Short: "Print the effective configuration",
		Long: `Print the configuration after defaults, file and environment are merged.
With a data file, metrics that are not configured are discovered from it.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := s.cfg
			if len(args) > 0 {
				_, discovered, err := s.load(args)
				if err != nil {
					return err
				}
				cfg = discovered
			}
			out, err := config.Marshal(cfg)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(out)
			return err
		},
	}
	return cmd
}
