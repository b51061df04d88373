package services

import "fmt"

// PaginationMeta describes one page of a listing
type PaginationMeta struct {
	TotalItems   int64 `json:"totalItems"`
	ItemCount    int   `json:"itemCount"`
	ItemsPerPage int   `json:"itemsPerPage"`
	TotalPages   int   `json:"totalPages"`
	CurrentPage  int   `json:"currentPage"`
}

// PaginationLinks holds the navigation links for a listing page. Previous is
// nil on the first page and Next is nil on the last.
type PaginationLinks struct {
	First    string  `json:"first"`
	Previous *string `json:"previous"`
	Next     *string `json:"next"`
	Last     string  `json:"last"`
}

// TotalPages computes ceil(total/limit); zero when either input is empty
func TotalPages(total int64, limit int) int {
	if limit <= 0 || total <= 0 {
		return 0
	}
	return int((total + int64(limit) - 1) / int64(limit))
}

// GetPaginationMeta computes listing metadata from raw counts. It is a pure
// function of its inputs and carries no storage coupling.
func GetPaginationMeta(total int64, count, limit, page int) PaginationMeta {
	return PaginationMeta{
		TotalItems:   total,
		ItemCount:    count,
		ItemsPerPage: limit,
		TotalPages:   TotalPages(total, limit),
		CurrentPage:  page,
	}
}

// GetPaginationLinks computes the first/previous/next/last navigation links
// for the given entity kind's listing
func GetPaginationLinks(entityName string, page, limit int, total int64) PaginationLinks {
	link := func(p int) string {
		return fmt.Sprintf("/api/v1/%s?page=%d&limit=%d", entityName, p, limit)
	}

	totalPages := TotalPages(total, limit)
	if totalPages < 1 {
		totalPages = 1 // empty listings still link to page 1
	}
	links := PaginationLinks{
		First: link(1),
		Last:  link(totalPages),
	}
	if page > 1 {
		prev := link(page - 1)
		links.Previous = &prev
	}
	if page < totalPages {
		next := link(page + 1)
		links.Next = &next
	}
	return links
}
