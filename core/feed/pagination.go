// ABOUTME: Item pagination for API responses over large merged feeds

package feed

import "feedcanon/core/domain"

// DefaultItemsPerPage is used when a caller does not specify a page size.
const DefaultItemsPerPage = 50

// PaginateItems returns the requested page of items. Page numbering starts
// at 1; out-of-range pages yield an empty slice, never an error.
func PaginateItems(items []domain.Item, page, itemsPerPage int) []domain.Item {
	if page < 1 {
		page = 1
	}
	if itemsPerPage < 1 {
		itemsPerPage = DefaultItemsPerPage
	}

	start := (page - 1) * itemsPerPage
	if start >= len(items) {
		return []domain.Item{}
	}

	end := start + itemsPerPage
	if end > len(items) {
		end = len(items)
	}

	return items[start:end]
}
