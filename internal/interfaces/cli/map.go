package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	appmapping "github.com/agrabowski5/TaxonomyViewing/internal/application/mapping"
	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/dataloader"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

func newMapCommand(opts *RootOptions) *cobra.Command {
	var nodeID string

	cmd := &cobra.Command{
		Use:   "map <taxonomy> <code>",
		Short: "Resolve a code into every other taxonomy",
		Example: `  taxview map hs 010121
  taxview map naics 112920 -o json
  taxview map combined 97120 --node-id cpc-97120`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			registry := taxonomy.Default()
			snap, err := dataloader.NewLoader(cfg.Data.Dir, registry, logger).Load()
			if err != nil {
				return err
			}

			svc := appmapping.NewService(registry, dataloader.NewStore(snap), nil, logger)
			res, err := svc.Resolve(cmd.Context(), &appmapping.ResolveInput{
				Source: ttypes.ID(args[0]),
				Code:   args[1],
				NodeID: nodeID,
			})
			if err != nil {
				return err
			}

			if opts.Output == "json" {
				return printJSON(res)
			}
			printResolutionTable(res)
			return nil
		},
	}
	cmd.Flags().StringVar(&nodeID, "node-id", "", "tree node id, disambiguates grafted entries of synthetic taxonomies")
	return cmd
}

func printResolutionTable(res *ttypes.Resolution) {
	fmt.Printf("Mappings for %s %s\n\n", res.Source, res.SourceCode)
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "TAXONOMY\tMETHOD\tCODE\tDESCRIPTION\tNOTES")
	for _, tr := range res.Targets {
		if len(tr.Matches) == 0 {
			fmt.Fprintf(w, "%s\t%s\t-\t-\t\n", tr.Taxonomy, tr.Method)
			continue
		}
		for _, m := range tr.Matches {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", tr.Taxonomy, tr.Method, m.Code, m.Description, matchNotes(m))
		}
	}
	w.Flush()
}

func matchNotes(m ttypes.MatchResult) string {
	switch {
	case m.Fuzzy:
		return fmt.Sprintf("fuzzy %.0f%%", m.Similarity*100)
	case m.SourcePartial || m.TargetPartial:
		return "partial"
	case m.Cardinality != "":
		return m.Cardinality
	}
	return ""
}
