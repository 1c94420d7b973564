package evaluator

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompare_TooFewNames(t *testing.T) {
	e := New(DefaultOptions())

	_, err := e.Compare(context.Background(), nil, "")
	assert.ErrorIs(t, err, ErrTooFewNames)

	_, err = e.Compare(context.Background(), []string{"Acme"}, "")
	assert.ErrorIs(t, err, ErrTooFewNames)
}

func TestCompare_RejectsShortName(t *testing.T) {
	e := New(DefaultOptions())

	_, err := e.Compare(context.Background(), []string{"Acme", "x"}, "")
	assert.ErrorIs(t, err, ErrNameTooShort)
}

func TestCompare_AcmeGlobexInitech(t *testing.T) {
	domains := &fakeDomains{registered: map[string]bool{
		"acme.com": true, "acme.io": true, "acme.co": true, "acme.ai": true, "acme.app": true,
		"globex.io": true, "globex.co": true, "globex.ai": true, "globex.app": true,
		"initech.com": true, "initech.io": true, "initech.co": true, "initech.ai": true, "initech.app": true,
	}}
	e := New(DefaultOptions(), WithDomainLookup(domains))

	cmp, err := e.Compare(context.Background(), []string{"Acme", "Globex", "Initech"}, "Industrial supplies")
	require.NoError(t, err)

	require.Len(t, cmp.Results, 3)
	assert.Equal(t, "Acme", cmp.Results[0].Name)
	assert.Equal(t, "Globex", cmp.Results[1].Name)
	assert.Equal(t, "Initech", cmp.Results[2].Name)

	assert.Equal(t, "Globex", cmp.Winner)
	assert.Equal(t, cmp.Results[1].OverallScore, cmp.WinnerScore)
	assert.Greater(t, cmp.WinnerScore, cmp.Results[0].OverallScore)
	assert.Greater(t, cmp.WinnerScore, cmp.Results[2].OverallScore)
}

func TestCompare_TieGoesToFirst(t *testing.T) {
	e := New(DefaultOptions(), WithDomainLookup(allAvailable()))

	cmp, err := e.Compare(context.Background(), []string{"Zorbo", "zorbo"}, "")
	require.NoError(t, err)

	require.Len(t, cmp.Results, 2)
	assert.Equal(t, cmp.Results[0].OverallScore, cmp.Results[1].OverallScore)
	assert.Equal(t, "Zorbo", cmp.Winner)
}
