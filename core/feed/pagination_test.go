package feed

import (
	"fmt"
	"testing"

	"feedcanon/core/domain"
)

func makeItems(n int) []domain.Item {
	items := make([]domain.Item, n)
	for i := range items {
		items[i] = domain.Item{Title: fmt.Sprintf("item-%d", i)}
	}
	return items
}

func TestPaginateItems_FirstPage(t *testing.T) {
	items := makeItems(10)

	page := PaginateItems(items, 1, 3)
	if len(page) != 3 {
		t.Fatalf("len = %d, want 3", len(page))
	}
	if page[0].Title != "item-0" || page[2].Title != "item-2" {
		t.Errorf("wrong slice: %s..%s", page[0].Title, page[2].Title)
	}
}

func TestPaginateItems_MiddleAndLastPage(t *testing.T) {
	items := makeItems(10)

	page := PaginateItems(items, 2, 3)
	if page[0].Title != "item-3" {
		t.Errorf("page 2 starts at %s", page[0].Title)
	}

	last := PaginateItems(items, 4, 3)
	if len(last) != 1 || last[0].Title != "item-9" {
		t.Errorf("last page = %v", last)
	}
}

func TestPaginateItems_OutOfRange(t *testing.T) {
	items := makeItems(5)

	page := PaginateItems(items, 3, 5)
	if len(page) != 0 {
		t.Errorf("out-of-range page should be empty, got %d items", len(page))
	}
}

func TestPaginateItems_DefaultsForBadInputs(t *testing.T) {
	items := makeItems(5)

	if got := PaginateItems(items, 0, 2); got[0].Title != "item-0" {
		t.Errorf("page 0 should clamp to 1")
	}
	if got := PaginateItems(items, -1, 2); got[0].Title != "item-0" {
		t.Errorf("negative page should clamp to 1")
	}
	if got := PaginateItems(items, 1, 0); len(got) != 5 {
		t.Errorf("zero per-page should use the default, got %d", len(got))
	}
}

func TestPaginateItems_EmptyInput(t *testing.T) {
	if got := PaginateItems(nil, 1, 10); len(got) != 0 {
		t.Errorf("nil input should yield empty page, got %d", len(got))
	}
}
