package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pfaustino/boycott-evil/internal/model"
)

var scanJSON bool

var scanCmd = &cobra.Command{
	Use:   "scan <barcode>",
	Short: "Resolve a barcode and classify the product's brand",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		code := args[0]

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		result, err := env.Barcode.Resolve(ctx, code)
		if err != nil {
			return eris.Wrapf(err, "scan %s", code)
		}

		out := struct {
			Result  model.SmartSearchResult `json:"result"`
			Verdict *model.Verdict          `json:"verdict,omitempty"`
		}{Result: result}

		if result.Product != nil {
			v := env.Engine.Classify(*result.Product)
			out.Verdict = &v
		}

		if scanJSON {
			return json.NewEncoder(os.Stdout).Encode(out)
		}

		switch result.MatchType {
		case model.MatchNone:
			cmd.Println("no match")
		case model.MatchExact:
			cmd.Printf("%s  %s\n", result.Product.Code, result.Product.ProductName)
		case model.MatchPrefix:
			cmd.Printf("%s  %s (prefix match, %d digits)\n",
				result.Product.Code, result.Product.ProductName, result.PrefixLength)
			for _, p := range result.SimilarProducts {
				cmd.Printf("  similar: %s  %s\n", p.Code, p.ProductName)
			}
		}
		if out.Verdict != nil {
			printVerdict(cmd, *out.Verdict)
		}

		zap.L().Debug("scan complete",
			zap.String("code", code),
			zap.String("match_type", string(result.MatchType)),
		)
		return nil
	},
}

func printVerdict(cmd *cobra.Command, v model.Verdict) {
	cmd.Printf("verdict: %s\n", v)
	rec := v.Boycott
	if rec == nil {
		rec = v.Recommended
	}
	if rec == nil {
		return
	}
	if rec.Reason != "" {
		cmd.Printf("  reason: %s\n", rec.Reason)
	}
	if len(rec.Supports) > 0 {
		cmd.Printf("  supports: %v\n", rec.Supports)
	}
	if len(rec.Alternatives) > 0 {
		cmd.Printf("  alternatives: %v\n", rec.Alternatives)
	}
	for _, c := range rec.Citations {
		cmd.Printf("  citation: %s (%s)\n", c.URL, c.Source)
	}
}

func init() {
	scanCmd.Flags().BoolVar(&scanJSON, "json", false, "emit JSON instead of text")
	rootCmd.AddCommand(scanCmd)
}
