package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseSortOrder(t *testing.T) {
	assert.Equal(t, SortAscending, ParseSortOrder("asc"))
	assert.Equal(t, SortDescending, ParseSortOrder("desc"))

	// anything unrecognized falls back to the default
	assert.Equal(t, SortDescending, ParseSortOrder(""))
	assert.Equal(t, SortDescending, ParseSortOrder("ASC"))
	assert.Equal(t, SortDescending, ParseSortOrder("rating"))
}
