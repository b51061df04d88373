package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 3, TotalPages(25, 10))
	assert.Equal(t, 1, TotalPages(10, 10))
	assert.Equal(t, 2, TotalPages(11, 10))
	assert.Equal(t, 0, TotalPages(0, 10))
	assert.Equal(t, 0, TotalPages(25, 0))
}

func TestGetPaginationMeta(t *testing.T) {
	meta := GetPaginationMeta(25, 10, 10, 2)

	assert.Equal(t, int64(25), meta.TotalItems)
	assert.Equal(t, 10, meta.ItemCount)
	assert.Equal(t, 10, meta.ItemsPerPage)
	assert.Equal(t, 3, meta.TotalPages)
	assert.Equal(t, 2, meta.CurrentPage)
}

func TestGetPaginationLinksFirstPage(t *testing.T) {
	links := GetPaginationLinks("people", 1, 10, 25)

	assert.Nil(t, links.Previous)
	require.NotNil(t, links.Next)
	assert.Equal(t, "/api/v1/people?page=2&limit=10", *links.Next)
	assert.Equal(t, "/api/v1/people?page=1&limit=10", links.First)
	assert.Equal(t, "/api/v1/people?page=3&limit=10", links.Last)
}

func TestGetPaginationLinksMiddlePage(t *testing.T) {
	links := GetPaginationLinks("people", 2, 10, 25)

	require.NotNil(t, links.Previous)
	require.NotNil(t, links.Next)
	assert.Equal(t, "/api/v1/people?page=1&limit=10", *links.Previous)
	assert.Equal(t, "/api/v1/people?page=3&limit=10", *links.Next)
}

func TestGetPaginationLinksLastPage(t *testing.T) {
	links := GetPaginationLinks("people", 3, 10, 25)

	require.NotNil(t, links.Previous)
	assert.Nil(t, links.Next)
	assert.Equal(t, "/api/v1/people?page=2&limit=10", *links.Previous)
}

func TestGetPaginationLinksEmptyListing(t *testing.T) {
	links := GetPaginationLinks("people", 1, 10, 0)

	assert.Nil(t, links.Previous)
	assert.Nil(t, links.Next)
	assert.Equal(t, "/api/v1/people?page=1&limit=10", links.First)
	assert.Equal(t, "/api/v1/people?page=1&limit=10", links.Last)
}

func TestNormalizePageDefaults(t *testing.T) {
	page, limit := normalizePage(0, 0)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageLimit, limit)

	page, limit = normalizePage(-3, -1)
	assert.Equal(t, 1, page)
	assert.Equal(t, defaultPageLimit, limit)

	page, limit = normalizePage(4, 25)
	assert.Equal(t, 4, page)
	assert.Equal(t, 25, limit)
}
