package repository

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeLike(t *testing.T) {
	cases := map[string]string{
		"dress":     "dress",
		"50%":       `50\%`,
		"a_b":       `a\_b`,
		`back\side`: `back\\side`,
		`%_\`:       `\%\_\\`,
	}
	for in, want := range cases {
		assert.Equal(t, want, escapeLike(in), in)
	}
}

func TestBuildWhere_NameQueryMatchesLiterally(t *testing.T) {
	var qb strings.Builder
	args := []any{}

	next := buildWhere(&qb, ProductFilter{CategoryName: "Dresses", NameQuery: "100%_silk"}, &args)

	assert.Equal(t, 3, next)
	assert.Contains(t, qb.String(), `p.name ILIKE $2 ESCAPE '\'`)
	require.Len(t, args, 2)
	assert.Equal(t, "Dresses", args[0])
	assert.Equal(t, `%100\%\_silk%`, args[1])
}

func TestBuildWhere_NoFilters(t *testing.T) {
	var qb strings.Builder
	args := []any{}

	next := buildWhere(&qb, ProductFilter{}, &args)

	assert.Equal(t, 1, next)
	assert.Equal(t, " WHERE 1=1", qb.String())
	assert.Empty(t, args)
}
