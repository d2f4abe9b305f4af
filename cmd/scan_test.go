package main

import (
	"bytes"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"

	"github.com/pfaustino/boycott-evil/internal/model"
)

func captureOutput(fn func(cmd *cobra.Command)) string {
	var buf bytes.Buffer
	cmd := &cobra.Command{}
	cmd.SetOut(&buf)
	fn(cmd)
	return buf.String()
}

func TestPrintVerdict_Boycott(t *testing.T) {
	out := captureOutput(func(cmd *cobra.Command) {
		printVerdict(cmd, model.Verdict{
			Status: model.StatusEvil,
			Brand:  "colaco",
			Boycott: &model.CompanyRecord{
				Evil:         true,
				Reason:       "lobbying",
				Supports:     []string{"Occupation"},
				Alternatives: []string{"Fair Cola"},
				Citations:    []model.Citation{{URL: "https://example.org", Source: "report"}},
			},
		})
	})

	assert.Contains(t, out, "verdict: evil (colaco)")
	assert.Contains(t, out, "reason: lobbying")
	assert.Contains(t, out, "supports: [Occupation]")
	assert.Contains(t, out, "alternatives: [Fair Cola]")
	assert.Contains(t, out, "citation: https://example.org (report)")
}

func TestPrintVerdict_Clean(t *testing.T) {
	out := captureOutput(func(cmd *cobra.Command) {
		printVerdict(cmd, model.Verdict{Status: model.StatusClean, Brand: "innocent"})
	})

	assert.Contains(t, out, "verdict: clean (innocent)")
	assert.NotContains(t, out, "reason:")
}

func TestCommandsRegistered(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, want := range []string{"scan", "search", "check", "import", "datasets", "serve", "status", "config"} {
		assert.True(t, names[want], "command %s not registered", want)
	}
}
