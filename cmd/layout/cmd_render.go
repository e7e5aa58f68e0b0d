package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	layout "github.com/goliatone/go-layout"
	"github.com/goliatone/go-layout/pkg/render"
)

type renderFlags struct {
	view     string
	theme    string
	variant  string
	sanitize bool
}

func newRenderCmd(a *app) *cobra.Command {
	f := &renderFlags{}

	cmd := &cobra.Command{
		Use:   "render <record.yaml>",
		Short: "Render a record file with its first existing template",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			doc, err := layout.DecodeDocument(file)
			if err != nil {
				return err
			}

			opts := []layout.Option{layout.WithLogger(a.logger)}
			if f.sanitize {
				opts = append(opts, layout.WithSanitizer(render.LayoutPolicy()))
			}
			l, err := layout.New(a.cfg, opts...)
			if err != nil {
				return err
			}

			view, err := chooseView(cmd, a.cfg.Views, f.view)
			if err != nil {
				return err
			}
			obj, err := l.Record(doc)
			if err != nil {
				return err
			}

			a.logger.Debug("rendering record",
				zap.String("file", args[0]),
				zap.String("view", view),
			)
			if err := l.RenderTo(cmd.Context(), cmd.OutOrStdout(), obj, view, layout.RenderOptions{
				Theme:   f.theme,
				Variant: f.variant,
			}); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout())
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.view, "view", "v", "", "view name (prompted when omitted on a terminal)")
	cmd.Flags().StringVar(&f.theme, "theme", "", "theme override")
	cmd.Flags().StringVar(&f.variant, "variant", "", "theme variant override")
	cmd.Flags().BoolVar(&f.sanitize, "sanitize", false, "strip scripts and event handlers from the output")
	return cmd
}
