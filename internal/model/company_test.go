package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHasSupport(t *testing.T) {
	rec := CompanyRecord{Supports: []string{"Occupation", "Trump-Donor"}}

	assert.True(t, rec.HasSupport("occupation"))
	assert.True(t, rec.HasSupport(" TRUMP-DONOR "))
	assert.False(t, rec.HasSupport("Pro-DEI"))
	assert.False(t, CompanyRecord{}.HasSupport("Occupation"))
}
