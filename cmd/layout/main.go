package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	layout "github.com/goliatone/go-layout"
	"github.com/goliatone/go-layout/pkg/config"
)

// app carries the global flags and the state PersistentPreRunE builds.
type app struct {
	configPath   string
	debug        bool
	templatesDir string

	logger *zap.Logger
	cfg    config.Config
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "layout",
		Short: "Resolve and render model layouts",
		Long: `layout computes the candidate templates of a record from its type
hierarchy and renders the first one that exists.

Record types are declared in the configuration file:

  types:
    - {namespace: content, name: Item}
    - {namespace: news, name: Article, parents: [content.Item]}`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if a.logger != nil {
				_ = a.logger.Sync()
			}
		},
	}

	root.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "configuration file (YAML)")
	root.PersistentFlags().BoolVar(&a.debug, "debug", false, "fail on missing templates and log at debug level")
	root.PersistentFlags().StringVarP(&a.templatesDir, "templates", "t", "", "template directory (overrides configuration)")

	root.AddCommand(newCandidatesCmd(a), newRenderCmd(a))
	return root
}

func (a *app) init(cmd *cobra.Command) error {
	cfg, err := config.LoadFile(a.configPath)
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("debug") {
		cfg.Debug = a.debug
	}
	if dir := strings.TrimSpace(a.templatesDir); dir != "" {
		cfg.TemplatesDir = dir
	}
	a.cfg = cfg

	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{"stderr"}
	if cfg.Debug {
		zcfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	logger, err := zcfg.Build()
	if err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	a.logger = logger
	return nil
}

func (a *app) layout() (*layout.Layout, error) {
	return layout.New(a.cfg, layout.WithLogger(a.logger))
}
