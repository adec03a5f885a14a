// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package labels

import (
	"slices"
	"strings"
)

// Category is a filterable dimension of a matrix entry.
type Category string

const (
	Platform Category = "platform"
	Python   Category = "python"
	Build    Category = "build"
	Arch     Category = "arch"
	Libc     Category = "libc"
)

// Categories lists every filter category in canonical order.
var Categories = []Category{Platform, Python, Build, Arch, Libc}

// Directive names recognized by the matrix generator. Other directive
// values are retained in the filter but have no effect.
const (
	DirectiveSkip   = "skip"
	DirectiveDryRun = "dry-run"
)

// directivesCategory is the label category carrying directives. The
// "ci" prefix is the spelling used on pull request labels.
const (
	directivesCategory = "directives"
	ciCategory         = "ci"
)

// DefaultSkipLabels are bare labels that suppress every build.
var DefaultSkipLabels = []string{"documentation"}

// Set is a set of accepted label values.
type Set map[string]struct{}

// Contains reports whether value is in the set.
func (set Set) Contains(value string) bool {
	_, ok := set[value]
	return ok
}

// Sorted returns the members in lexical order.
func (set Set) Sorted() []string {
	values := make([]string, 0, len(set))
	for value := range set {
		values = append(values, value)
	}
	slices.Sort(values)
	return values
}

// Filter is the parsed form of a label string. The zero value accepts
// everything.
type Filter struct {
	categories map[Category]Set
	directives Set
}

// Parse parses a comma-separated label string. Tokens equal to one of
// skipLabels set the skip directive; pass [DefaultSkipLabels] for the
// standard behavior.
func Parse(labels string, skipLabels []string) Filter {
	var filter Filter

	for _, token := range strings.Split(labels, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}

		if slices.Contains(skipLabels, token) {
			filter.addDirective(DirectiveSkip)
			continue
		}

		category, value, found := strings.Cut(token, ":")
		if !found {
			continue
		}

		switch category {
		case ciCategory, directivesCategory:
			filter.addDirective(value)
		default:
			if !isCategory(Category(category)) {
				continue
			}
			filter.add(Category(category), value)
		}
	}

	return filter
}

func isCategory(category Category) bool {
	return slices.Contains(Categories, category)
}

func (filter *Filter) add(category Category, value string) {
	if filter.categories == nil {
		filter.categories = make(map[Category]Set)
	}
	set := filter.categories[category]
	if set == nil {
		set = make(Set)
		filter.categories[category] = set
	}
	set[value] = struct{}{}
}

func (filter *Filter) addDirective(value string) {
	if filter.directives == nil {
		filter.directives = make(Set)
	}
	filter.directives[value] = struct{}{}
}

// Values returns the accepted values for category. An empty set means
// the category is unconstrained. The returned set must not be modified.
func (filter Filter) Values(category Category) Set {
	return filter.categories[category]
}

// Constrains reports whether category has at least one accepted value.
func (filter Filter) Constrains(category Category) bool {
	return len(filter.categories[category]) > 0
}

// Directives returns the directive set. The returned set must not be
// modified.
func (filter Filter) Directives() Set {
	return filter.directives
}

// HasDirective reports whether the named directive is present.
func (filter Filter) HasDirective(name string) bool {
	return filter.directives.Contains(name)
}

// Skip reports whether the filter suppresses every build.
func (filter Filter) Skip() bool {
	return filter.HasDirective(DirectiveSkip)
}

// DryRun reports whether matrix entries should be marked as dry runs.
func (filter Filter) DryRun() bool {
	return filter.HasDirective(DirectiveDryRun)
}

// IsEmpty reports whether the filter has no categories and no
// directives, i.e. accepts every entry unchanged.
func (filter Filter) IsEmpty() bool {
	return len(filter.categories) == 0 && len(filter.directives) == 0
}

// String renders the filter in canonical label syntax: categories in
// [Categories] order, directives last, values sorted. Parsing the
// result yields an equivalent filter.
func (filter Filter) String() string {
	var tokens []string
	for _, category := range Categories {
		for _, value := range filter.categories[category].Sorted() {
			tokens = append(tokens, string(category)+":"+value)
		}
	}
	for _, value := range filter.Directives().Sorted() {
		tokens = append(tokens, ciCategory+":"+value)
	}
	return strings.Join(tokens, ",")
}
