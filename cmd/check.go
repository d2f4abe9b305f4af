package main

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pfaustino/boycott-evil/internal/model"
)

var checkJSON bool

var checkCmd = &cobra.Command{
	Use:   "check <brand or company name>",
	Short: "Classify a brand or company name against the datasets",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		name := strings.Join(args, " ")

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		v := env.Engine.Classify(model.Product{
			Code:            model.BrandCode(name),
			ProductName:     name,
			Brands:          name,
			NormalizedBrand: model.NormalizeBrand(name),
		})

		if checkJSON {
			return json.NewEncoder(os.Stdout).Encode(v)
		}
		printVerdict(cmd, v)
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&checkJSON, "json", false, "emit JSON instead of text")
	rootCmd.AddCommand(checkCmd)
}
