package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/pfaustino/boycott-evil/internal/model"
)

var (
	searchLimit   int
	searchSupport string
	searchJSON    bool
)

var searchCmd = &cobra.Command{
	Use:   "search <term>",
	Short: "Search companies and products by name",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		term := args[0]

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		limit := searchLimit
		if limit <= 0 {
			limit = cfg.Search.MaxResults
		}

		hits, err := env.Name.Search(ctx, term, limit)
		if err != nil {
			return eris.Wrapf(err, "search %q", term)
		}

		if searchSupport != "" {
			hits = filterBySupport(hits, searchSupport)
		}

		type scoredHit struct {
			model.SearchHit
			Verdict model.Verdict `json:"verdict"`
		}
		scored := make([]scoredHit, 0, len(hits))
		for _, h := range hits {
			scored = append(scored, scoredHit{
				SearchHit: h,
				Verdict:   env.Engine.Classify(h.AsProduct()),
			})
		}

		if searchJSON {
			return json.NewEncoder(os.Stdout).Encode(scored)
		}

		if len(scored) == 0 {
			cmd.Println("no companies or products found")
			return nil
		}
		for _, h := range scored {
			switch h.Kind {
			case model.HitProduct:
				cmd.Printf("product   [%s] %s  %s (%s)\n",
					h.Verdict.Status, h.Product.Code, h.Product.ProductName, h.Product.Brands)
			case model.HitBoycottedCompany:
				cmd.Printf("boycott   %s  %s\n", h.Company, h.Record.Reason)
			case model.HitRecommendedCompany:
				cmd.Printf("recommend %s  %s\n", h.Company, h.Record.Reason)
			}
		}
		return nil
	},
}

// filterBySupport keeps product hits and the company hits whose record
// carries the given tag category.
func filterBySupport(hits []model.SearchHit, tag string) []model.SearchHit {
	out := hits[:0]
	for _, h := range hits {
		if h.Kind == model.HitProduct || (h.Record != nil && h.Record.HasSupport(tag)) {
			out = append(out, h)
		}
	}
	return out
}

func init() {
	searchCmd.Flags().IntVar(&searchLimit, "limit", 0, "max results (default from config)")
	searchCmd.Flags().StringVar(&searchSupport, "support", "", "only show companies carrying this support tag")
	searchCmd.Flags().BoolVar(&searchJSON, "json", false, "emit JSON instead of text")
	rootCmd.AddCommand(searchCmd)
}
