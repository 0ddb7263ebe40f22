// Package filter narrows event and fused tables to a selection of companies,
// years, months, and industries before aggregation or presentation.
package filter

import "workforce-pulse/pkg/employment"

// Choice is an optional inclusion constraint over one dimension.
//
// The zero value is unconstrained: every row passes. Only() with no values is
// an explicit empty selection that matches nothing. The two are deliberately
// distinct so "no filter chosen" and "filter chosen, nothing selected" cannot
// be confused at the interface boundary.
type Choice[T comparable] struct {
	constrained bool
	allowed     map[T]struct{}
}

// Only constrains the dimension to the given values.
func Only[T comparable](values ...T) Choice[T] {
	c := Choice[T]{constrained: true, allowed: make(map[T]struct{}, len(values))}
	for _, v := range values {
		c.allowed[v] = struct{}{}
	}
	return c
}

// Any returns the unconstrained choice. Equivalent to the zero value; exists
// for call sites that want to be explicit.
func Any[T comparable]() Choice[T] {
	return Choice[T]{}
}

// Constrained reports whether the choice restricts the dimension at all.
func (c Choice[T]) Constrained() bool { return c.constrained }

// Allows reports whether v passes the choice.
func (c Choice[T]) Allows(v T) bool {
	if !c.constrained {
		return true
	}
	_, ok := c.allowed[v]
	return ok
}

// Values returns the allowed values of a constrained choice, in map order.
// Unconstrained choices return nil.
func (c Choice[T]) Values() []T {
	if !c.constrained {
		return nil
	}
	out := make([]T, 0, len(c.allowed))
	for v := range c.allowed {
		out = append(out, v)
	}
	return out
}

// Selection is the full set of dimension constraints the core accepts.
type Selection struct {
	Companies  Choice[string]
	Years      Choice[int]
	Months     Choice[int]
	Industries Choice[string]
}

// Matches reports whether a row's dimensions pass every supplied constraint.
func (s Selection) Matches(d employment.Dims) bool {
	return s.Companies.Allows(d.Company) &&
		s.Years.Allows(d.Year) &&
		s.Months.Allows(d.Month) &&
		s.Industries.Allows(d.Industry)
}

// Apply returns the rows that match sel. The input is never mutated; the
// result is a fresh slice preserving input order.
func Apply[R employment.Dimensioned](rows []R, sel Selection) []R {
	out := make([]R, 0, len(rows))
	for _, r := range rows {
		if sel.Matches(r.Dims()) {
			out = append(out, r)
		}
	}
	return out
}
