package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pfaustino/boycott-evil/internal/model"
)

func TestFilterBySupport(t *testing.T) {
	hits := []model.SearchHit{
		{Kind: model.HitBoycottedCompany, Company: "colaco",
			Record: &model.CompanyRecord{Supports: []string{"Occupation"}}},
		{Kind: model.HitBoycottedCompany, Company: "fizzco",
			Record: &model.CompanyRecord{Supports: []string{"Trump-Donor"}}},
		{Kind: model.HitProduct, Product: &model.Product{Code: "1"}},
	}

	got := filterBySupport(hits, "occupation")
	require.Len(t, got, 2)
	assert.Equal(t, "colaco", got[0].Company)
	assert.Equal(t, model.HitProduct, got[1].Kind, "product hits pass through")
}
