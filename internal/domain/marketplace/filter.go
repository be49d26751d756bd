package marketplace

import (
	"sort"
	"strings"

	"github.com/kosthub/backend/internal/domain/property"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// PriceSort is an optional explicit ordering. Without it the catalog
// property order is preserved.
type PriceSort string

const (
	PriceSortNone PriceSort = ""
	PriceSortAsc  PriceSort = "asc"
	PriceSortDesc PriceSort = "desc"
)

// IsValid checks if the price sort is valid
func (s PriceSort) IsValid() bool {
	return s == PriceSortNone || s == PriceSortAsc || s == PriceSortDesc
}

// Filter narrows derived listings. Every set predicate must hold for a
// listing to pass; unset predicates are unconstrained.
type Filter struct {
	Search       string
	City         string
	MinPrice     *decimal.Decimal
	MaxPrice     *decimal.Decimal
	Gender       property.Gender
	RoomTypeName string
	PriceSort    PriceSort
}

// IsZero reports whether the filter constrains nothing
func (f Filter) IsZero() bool {
	return f.Search == "" && f.City == "" && f.MinPrice == nil && f.MaxPrice == nil &&
		f.Gender == "" && f.RoomTypeName == "" && f.PriceSort == PriceSortNone
}

// Matches applies the filter's predicates as a conjunction
func (f Filter) Matches(listing Listing) bool {
	if f.Search != "" && !matchesSearch(listing, f.Search) {
		return false
	}
	if f.City != "" && foldCase(listing.City) != foldCase(f.City) {
		return false
	}
	if f.MinPrice != nil && listing.LowestPrice.LessThan(*f.MinPrice) {
		return false
	}
	if f.MaxPrice != nil && listing.HighestPrice.GreaterThan(*f.MaxPrice) {
		return false
	}
	if f.Gender != "" && !listing.Gender.Matches(f.Gender) {
		return false
	}
	if f.RoomTypeName != "" && foldCase(listing.RoomTypeName) != foldCase(f.RoomTypeName) {
		return false
	}
	return true
}

// Apply filters and optionally price-sorts listings. The input order
// is preserved for listings that pass; sorting is stable so equal
// prices keep their catalog order.
func (f Filter) Apply(listings []Listing) []Listing {
	result := make([]Listing, 0, len(listings))
	for _, listing := range listings {
		if f.Matches(listing) {
			result = append(result, listing)
		}
	}

	switch f.PriceSort {
	case PriceSortAsc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].LowestPrice.LessThan(result[j].LowestPrice)
		})
	case PriceSortDesc:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].LowestPrice.GreaterThan(result[j].LowestPrice)
		})
	}

	return result
}

// matchesSearch checks the free-text needle against every searchable
// field; one hit suffices.
func matchesSearch(listing Listing, needle string) bool {
	needle = foldCase(strings.TrimSpace(needle))
	if needle == "" {
		return true
	}
	for _, haystack := range []string{
		listing.PropertyName,
		listing.City,
		listing.Address,
		listing.Description,
	} {
		if strings.Contains(foldCase(haystack), needle) {
			return true
		}
	}
	return false
}

// foldCase normalizes for caseless comparison. A fresh caser per call:
// a cases.Caser is stateful and must not be shared across goroutines.
func foldCase(s string) string {
	return cases.Fold().String(s)
}
