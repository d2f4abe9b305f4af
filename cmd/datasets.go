package main

import (
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfaustino/boycott-evil/internal/dataset"
	"github.com/pfaustino/boycott-evil/internal/importer"
	"github.com/pfaustino/boycott-evil/internal/model"
)

var (
	datasetsWitness   string
	datasetsAvoid     string
	datasetsFormatted string
	datasetsGood      string
	datasetsDonors    string
	datasetsTag       string
)

var datasetsCmd = &cobra.Command{
	Use:   "datasets",
	Short: "Rebuild the company datasets from upstream list sources",
	Long: "Runs the configured import passes, merges duplicate company records, " +
		"writes the boycotted/recommended/alias dataset files, and upserts " +
		"synthetic catalog rows for list-only brands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		var results []*importer.PassResult

		runPass := func(path, name string, pass func(f *os.File) (*importer.PassResult, error)) error {
			if path == "" {
				return nil
			}
			f, err := os.Open(path)
			if err != nil {
				return eris.Wrapf(err, "open %s source %s", name, path)
			}
			defer f.Close()
			res, err := pass(f)
			if err != nil {
				return err
			}
			zap.L().Info("dataset pass complete",
				zap.String("pass", name),
				zap.Int("companies", len(res.Companies)),
				zap.Int("brands", len(res.Brands)),
				zap.Int("aliases", len(res.Aliases)),
			)
			results = append(results, res)
			return nil
		}

		if err := runPass(datasetsWitness, "witness", func(f *os.File) (*importer.PassResult, error) {
			return importer.ImportWitnessJSON(ctx, f, datasetsTag)
		}); err != nil {
			return err
		}
		if err := runPass(datasetsAvoid, "avoid", func(f *os.File) (*importer.PassResult, error) {
			return importer.ImportAvoidCSV(ctx, f, datasetsTag)
		}); err != nil {
			return err
		}
		if err := runPass(datasetsFormatted, "formatted", func(f *os.File) (*importer.PassResult, error) {
			return importer.ImportFormattedJSON(ctx, f, datasetsTag)
		}); err != nil {
			return err
		}
		if err := runPass(datasetsGood, "good", func(f *os.File) (*importer.PassResult, error) {
			return importer.ImportGoodTSV(ctx, f)
		}); err != nil {
			return err
		}
		if datasetsDonors != "" {
			res, err := importer.ImportDonorXLSX(datasetsDonors)
			if err != nil {
				return err
			}
			zap.L().Info("dataset pass complete",
				zap.String("pass", "donors"),
				zap.Int("companies", len(res.Companies)),
			)
			results = append(results, res)
		}

		if len(results) == 0 {
			return eris.New("datasets: no source files given")
		}

		boycotted := map[string]model.CompanyRecord{}
		recommended := map[string]model.CompanyRecord{}
		aliases := map[string]string{}
		var brands []importer.BrandEntry

		for _, res := range results {
			evil := map[string]model.CompanyRecord{}
			good := map[string]model.CompanyRecord{}
			for name, rec := range res.Companies {
				if rec.Evil {
					evil[name] = rec
				}
				if rec.Good {
					good[name] = rec
				}
			}
			boycotted = dataset.MergeAll(boycotted, evil)
			recommended = dataset.MergeAll(recommended, good)
			for brand, parent := range res.Aliases {
				if existing, ok := aliases[brand]; ok && existing != parent {
					zap.L().Warn("alias conflict, keeping first",
						zap.String("brand", brand),
						zap.String("kept", existing),
						zap.String("dropped", parent),
					)
					continue
				}
				aliases[brand] = parent
			}
			brands = append(brands, res.Brands...)
		}

		if err := dataset.WriteCompanyFile(cfg.Datasets.Boycotted, boycotted); err != nil {
			return err
		}
		if err := dataset.WriteCompanyFile(cfg.Datasets.Recommended, recommended); err != nil {
			return err
		}
		if err := dataset.WriteAliasFile(cfg.Datasets.Aliases, aliases); err != nil {
			return err
		}

		synthetic := importer.SyntheticProducts(brands)
		if len(synthetic) > 0 {
			store, err := initStoreOnly(ctx)
			if err != nil {
				return err
			}
			defer store.Close()
			if err := store.BulkUpsert(ctx, synthetic); err != nil {
				return eris.Wrap(err, "upsert synthetic brand products")
			}
		}

		cmd.Printf("datasets rebuilt: %d boycotted, %d recommended, %d aliases, %d synthetic products\n",
			len(boycotted), len(recommended), len(aliases), len(synthetic))
		return nil
	},
}

func init() {
	datasetsCmd.Flags().StringVar(&datasetsWitness, "witness", "", "witness-list JSON source")
	datasetsCmd.Flags().StringVar(&datasetsAvoid, "avoid", "", "avoid-list CSV source")
	datasetsCmd.Flags().StringVar(&datasetsFormatted, "formatted", "", "formatted boycott-list JSON source")
	datasetsCmd.Flags().StringVar(&datasetsGood, "good", "", "good-companies TSV source")
	datasetsCmd.Flags().StringVar(&datasetsDonors, "donors", "", "donor spreadsheet (xlsx)")
	datasetsCmd.Flags().StringVar(&datasetsTag, "tag", "Occupation", "support tag attached to boycott passes")
	rootCmd.AddCommand(datasetsCmd)
}
