// Package root wires the canchart commands.
package root

import (
	"fmt"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/spf13/cobra"

	"github.com/iafilius/CanDashboard/src/config"
	"github.com/iafilius/CanDashboard/src/logging"
	"github.com/iafilius/CanDashboard/src/metrics"
)

// session carries the resolved configuration into subcommands.
type session struct {
	cfgFile  string
	logLevel string
	cfg      config.Config
}

func NewRootCmd() *cobra.Command {
	s := &session{}

	cmd := &cobra.Command{
		Use:   "canchart <command>",
		Short: "Render and inspect CAN telemetry charts",
		Long: heredoc.Doc(`
			Render CAN telemetry as the dashboard draws it: PNG and SVG exports,
			a braille preview for the terminal, data file summaries and tooltip
			lookups.
		`),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return s.init()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	cmd.PersistentFlags().StringVar(&s.cfgFile, "config", "", "Config file (default is $HOME/"+config.DefaultName+".yaml)")
	cmd.PersistentFlags().StringVar(&s.logLevel, "log-level", "", "Log level: debug, info, warn, error (overrides log_level)")

	cmd.AddCommand(
		newRenderCmd(s),
		newPreviewCmd(s),
		newInspectCmd(s),
		newTooltipCmd(s),
		newConfigCmd(s),
	)
	return cmd
}

func (s *session) init() error {
	path := s.cfgFile
	if path == "" {
		if p, ok := config.FindDefault(); ok {
			path = p
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return err
	}
	s.cfg = cfg
	level := cfg.LogLevel
	if s.logLevel != "" {
		level = s.logLevel
	}
	logging.SetLogLevel(level)
	if path != "" {
		logging.Debugf("[canchart] using config %s", path)
	}
	return nil
}

// load reads the data file named by args[0] or the data_file setting and
// fills in discovered metrics when none are configured.
func (s *session) load(args []string) ([]metrics.DataPoint, config.Config, error) {
	path := s.cfg.DataFile
	if len(args) > 0 {
		path = args[0]
	}
	if path == "" {
		return nil, s.cfg, fmt.Errorf("no data file: pass one or set data_file")
	}
	data, err := metrics.LoadFile(path, 0)
	if err != nil {
		return nil, s.cfg, err
	}
	return data, s.cfg.WithDiscovered(data), nil
}

// chartFlags are the prop overrides shared by commands that draw.
type chartFlags struct {
	overlay bool
	metric  string
	width   float64
	height  float64
	ratio   float64
	light   bool
}

func (f *chartFlags) register(cmd *cobra.Command) {
	cmd.Flags().BoolVar(&f.overlay, "overlay", false, "Plot every configured metric together")
	cmd.Flags().StringVar(&f.metric, "metric", "", "Metric to plot (category.key, key or label)")
	cmd.Flags().Float64Var(&f.width, "width", 0, "Surface width in logical pixels")
	cmd.Flags().Float64Var(&f.height, "height", 0, "Surface height in logical pixels")
	cmd.Flags().Float64Var(&f.ratio, "pixel-ratio", 0, "Device pixel ratio")
	cmd.Flags().BoolVar(&f.light, "light", false, "Use the light palette")
}

// apply overlays the flags the user set on cfg and revalidates it.
func (f *chartFlags) apply(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("overlay") {
		cfg.Overlay = f.overlay
	}
	if flags.Changed("metric") {
		cfg.Metric = f.metric
	}
	if flags.Changed("width") {
		cfg.Width = f.width
	}
	if flags.Changed("height") {
		cfg.Height = f.height
	}
	if flags.Changed("pixel-ratio") {
		cfg.PixelRatio = f.ratio
	}
	if flags.Changed("light") {
		cfg.DarkMode = !f.light
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
