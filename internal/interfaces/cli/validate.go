package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/agrabowski5/TaxonomyViewing/internal/domain/taxonomy"
	"github.com/agrabowski5/TaxonomyViewing/internal/infrastructure/dataloader"
)

func newValidateCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Load the dataset and report referential-integrity problems",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(opts)
			if err != nil {
				return err
			}
			logger, err := newLogger(cfg)
			if err != nil {
				return err
			}

			loader := dataloader.NewLoader(cfg.Data.Dir, taxonomy.Default(), logger)
			snap, err := loader.Load()
			if err != nil {
				return err
			}
			report := loader.Validate(snap)

			if opts.Output == "json" {
				return printJSON(report)
			}
			fmt.Printf("dangling concordance entries: %d\n", report.DanglingConcordance)
			fmt.Printf("dangling fuzzy candidates:    %d\n", report.DanglingFuzzy)
			fmt.Printf("orphan tree nodes:            %d\n", report.OrphanTreeNodes)
			if report.Clean() {
				fmt.Println("dataset is clean")
				return nil
			}
			return fmt.Errorf("dataset has integrity problems")
		},
	}
}
