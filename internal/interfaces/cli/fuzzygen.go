package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/agrabowski5/TaxonomyViewing/internal/application/fuzzygen"
	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/dataloader"
	ttypes "github.com/agrabowski5/TaxonomyViewing/pkg/types/taxonomy"
)

func newFuzzygenCommand(opts *RootOptions) *cobra.Command {
	var (
		out         string
		floor       float64
		forwardCap  int
		backwardCap int
	)

	cmd := &cobra.Command{
		Use:   "fuzzygen",
		Short: "Rebuild the precomputed fuzzy mapping tables",
		Long:  "fuzzygen scores every HS description against every NAICS description\nand writes the capped, similarity-ranked tables the engine consumes.",
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

			anchor := registry.Anchor()
			builder := fuzzygen.NewBuilder(fuzzygen.Options{
				Floor:       floor,
				ForwardCap:  forwardCap,
				BackwardCap: backwardCap,
			}, logger)
			data, err := builder.Build(snap.Lookups[anchor.ID], snap.Lookups[ttypes.NAICS])
			if err != nil {
				return err
			}

			raw, err := json.MarshalIndent(data, "", "  ")
			if err != nil {
				return err
			}
			if err := os.WriteFile(out, raw, 0o644); err != nil {
				return err
			}
			fmt.Printf("wrote %s (%d forward keys, %d backward keys)\n", out, len(data.AToB), len(data.BToA))
			return nil
		},
	}

	defaults := fuzzygen.DefaultOptions()
	cmd.Flags().StringVar(&out, "out", "fuzzy-mappings.json", "output file")
	cmd.Flags().Float64Var(&floor, "floor", defaults.Floor, "minimum similarity to store a candidate")
	cmd.Flags().IntVar(&forwardCap, "forward-cap", defaults.ForwardCap, "max candidates per shared-family code")
	cmd.Flags().IntVar(&backwardCap, "backward-cap", defaults.BackwardCap, "max candidates per counterpart code")
	return cmd
}
