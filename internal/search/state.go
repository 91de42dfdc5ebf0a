// Package search implements the restaurant search state machine:
// query/filter/sort/pagination state mutated only by user actions, encoded
// as backend query parameters.
//
// Every transition except ChangePage resets pagination to page 1, because a
// changed query, filter set, or sort order invalidates the previously
// fetched result window; the first page is the only one guaranteed to exist
// in the new result set. ResetQuery deliberately leaves the page untouched,
// matching long-standing behavior.
package search

import (
	"net/url"
	"slices"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

// Option is a result ordering choice.
type Option string

const (
	SortBestMatch             Option = "bestMatch"
	SortDeliveryPrice         Option = "deliveryPrice"
	SortEstimatedDeliveryTime Option = "estimatedDeliveryTime"
)

// ErrInvalidSort is returned when parsing an unknown sort option.
var ErrInvalidSort = errors.New("invalid sort option")

// ParseOption validates a sort option string. An empty string maps to
// SortBestMatch.
func ParseOption(s string) (Option, error) {
	switch Option(s) {
	case "":
		return SortBestMatch, nil
	case SortBestMatch, SortDeliveryPrice, SortEstimatedDeliveryTime:
		return Option(s), nil
	}
	return "", errors.Wrapf(ErrInvalidSort, "%q", s)
}

// State is the complete search view state. Its lifetime is one mount of the
// search view; it is never persisted. All transitions are synchronous and
// pure: they return the next state and leave the receiver unchanged.
type State struct {
	Query    string
	Page     int
	Cuisines []string
	Sort     Option
}

// New returns the initial state: empty query, first page, no cuisine
// filters, best-match ordering.
func New() State {
	return State{Page: 1, Sort: SortBestMatch}
}

// SubmitQuery sets the search text and rewinds to the first page.
func (s State) SubmitQuery(text string) State {
	s.Query = text
	s.Page = 1
	return s.copyCuisines()
}

// ResetQuery clears the search text only. The page is intentionally left
// as-is; see the package comment.
func (s State) ResetQuery() State {
	s.Query = ""
	return s.copyCuisines()
}

// ToggleCuisine adds the cuisine to the filter set, or removes it when
// already selected, and rewinds to the first page.
func (s State) ToggleCuisine(name string) State {
	next := s.copyCuisines()
	if i := slices.Index(next.Cuisines, name); i >= 0 {
		next.Cuisines = slices.Delete(next.Cuisines, i, i+1)
	} else {
		next.Cuisines = append(next.Cuisines, name)
	}
	next.Page = 1
	return next
}

// ChangeSort sets the result ordering and rewinds to the first page.
func (s State) ChangeSort(opt Option) State {
	s.Sort = opt
	s.Page = 1
	return s.copyCuisines()
}

// ChangePage moves to page n without touching query, filters, or sort.
func (s State) ChangePage(n int) State {
	s.Page = n
	return s.copyCuisines()
}

// Values encodes the state as the backend's search query parameters.
func (s State) Values() url.Values {
	v := url.Values{}
	v.Set("searchQuery", s.Query)
	v.Set("page", strconv.Itoa(s.Page))
	v.Set("selectedCuisines", strings.Join(s.Cuisines, ","))
	v.Set("sortOption", string(s.Sort))
	return v
}

// FromValues parses gateway query parameters into a State. Unknown sort
// options and non-positive pages are rejected.
func FromValues(v url.Values) (State, error) {
	s := New()
	s.Query = v.Get("searchQuery")

	if raw := v.Get("page"); raw != "" {
		page, err := strconv.Atoi(raw)
		if err != nil || page < 1 {
			return State{}, errors.Errorf("invalid page %q", raw)
		}
		s.Page = page
	}

	sort, err := ParseOption(v.Get("sortOption"))
	if err != nil {
		return State{}, err
	}
	s.Sort = sort

	if raw := v.Get("selectedCuisines"); raw != "" {
		s.Cuisines = strings.Split(raw, ",")
	}
	return s, nil
}

// copyCuisines returns s with its cuisine slice copied, so value-semantics
// transitions never alias the previous state's backing array.
func (s State) copyCuisines() State {
	s.Cuisines = slices.Clone(s.Cuisines)
	return s
}
