package main

import (
	"fmt"

	"github.com/spf13/cobra"

	layout "github.com/goliatone/go-layout"
)

type candidatesFlags struct {
	view     string
	slug     string
	fullSlug string
	typeKey  string
	typeSlug string
}

func newCandidatesCmd(a *app) *cobra.Command {
	f := &candidatesFlags{}

	cmd := &cobra.Command{
		Use:   "candidates <namespace.Name>",
		Short: "Print the candidate templates of a record type, most specific first",
		Example: `  layout candidates news.Article --view full --slug breaking
  layout candidates news.Article --full-slug docs/guides/intro
  layout candidates news.Article --type news.Section --type-slug world`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			l, err := a.layout()
			if err != nil {
				return err
			}

			view, err := chooseView(cmd, a.cfg.Views, f.view)
			if err != nil {
				return err
			}

			doc := layout.Document{
				Type:     args[0],
				Slug:     f.slug,
				FullSlug: f.fullSlug,
			}
			if f.typeKey != "" {
				doc.TypeObject = &layout.Document{Type: f.typeKey, Slug: f.typeSlug}
			}

			obj, err := l.Record(doc)
			if err != nil {
				return err
			}
			names, err := l.TemplateNames(obj, view)
			if err != nil {
				return err
			}
			for _, name := range names {
				fmt.Fprintln(cmd.OutOrStdout(), name)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&f.view, "view", "v", "", "view name (prompted when omitted on a terminal)")
	cmd.Flags().StringVar(&f.slug, "slug", "", "record slug")
	cmd.Flags().StringVar(&f.fullSlug, "full-slug", "", "hierarchical record slug, e.g. docs/guides/intro")
	cmd.Flags().StringVar(&f.typeKey, "type", "", "type object key (namespace.Name)")
	cmd.Flags().StringVar(&f.typeSlug, "type-slug", "", "type object slug")
	return cmd
}
