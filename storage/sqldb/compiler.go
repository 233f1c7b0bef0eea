// Copyright 2025 Tavolo Labs
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package sqldb

import (
	"strings"

	"github.com/tavolo/dishsearch/core"
)

// The compiler turns a DishFilter into an ordered list of predicate
// fragments with a parallel argument list. Fragments are dialect-neutral;
// rendering substitutes the dialect's placeholder token and match operator
// and nothing else.

type fragmentKind int

const (
	// fragStatic is a fixed boolean expression with no arguments.
	fragStatic fragmentKind = iota
	// fragContains is a case-insensitive substring match OR-combined over
	// one or more columns, binding the %term% pattern once per column.
	fragContains
	// fragCompare is a single-column comparison against one argument.
	fragCompare
)

type fragment struct {
	kind fragmentKind
	expr string   // fragStatic only
	cols []string // fragContains only
	col  string   // fragCompare only
	op   string   // fragCompare only
	arg  any
}

// visibilityPredicate is applied unconditionally, independent of caller
// input: a dish is searchable only while it is available and its category
// and menu are active.
const visibilityPredicate = "d.is_available = TRUE AND mc.is_active = TRUE AND m.is_active = TRUE"

// compileFilter builds the predicate fragment list for a filter. Omitted
// criteria contribute no fragment; supplied criteria are AND-combined at
// render time. Degenerate bounds (min > max) are compiled as-is and yield
// an unsatisfiable conjunction, so they return empty results by policy
// rather than an error.
func compileFilter(f core.DishFilter) []fragment {
	frags := []fragment{{kind: fragStatic, expr: visibilityPredicate}}

	if f.Name != "" {
		frags = append(frags, fragment{
			kind: fragContains,
			cols: []string{"d.name", "d.description"},
			arg:  containsPattern(f.Name),
		})
	}
	if f.Category != "" {
		frags = append(frags, fragment{
			kind: fragContains,
			cols: []string{"mc.name"},
			arg:  containsPattern(f.Category),
		})
	}
	if f.Restaurant != "" {
		frags = append(frags, fragment{
			kind: fragContains,
			cols: []string{"r.name", "r.description"},
			arg:  containsPattern(f.Restaurant),
		})
	}
	if f.MinPrice != nil {
		frags = append(frags, fragment{kind: fragCompare, col: "d.price", op: ">=", arg: *f.MinPrice})
	}
	if f.MaxPrice != nil {
		frags = append(frags, fragment{kind: fragCompare, col: "d.price", op: "<=", arg: *f.MaxPrice})
	}

	return frags
}

func containsPattern(term string) string {
	return "%" + term + "%"
}

// renderWhere renders fragments into a WHERE clause and its argument list
// for the given dialect. Placeholder numbering starts at startIndex to allow
// composition with arguments that precede the clause.
func renderWhere(frags []fragment, d Dialect, startIndex int) (string, []any) {
	conditions := make([]string, 0, len(frags))
	args := make([]any, 0, len(frags))
	idx := startIndex

	for _, f := range frags {
		switch f.kind {
		case fragStatic:
			conditions = append(conditions, f.expr)

		case fragContains:
			alts := make([]string, 0, len(f.cols))
			for _, col := range f.cols {
				alts = append(alts, col+" "+d.LikeOp()+" "+d.Placeholder(idx))
				args = append(args, f.arg)
				idx++
			}
			cond := strings.Join(alts, " OR ")
			if len(alts) > 1 {
				cond = "(" + cond + ")"
			}
			conditions = append(conditions, cond)

		case fragCompare:
			conditions = append(conditions, f.col+" "+f.op+" "+d.Placeholder(idx))
			args = append(args, f.arg)
			idx++
		}
	}

	return "WHERE " + strings.Join(conditions, " AND "), args
}

// renderIDList renders a placeholder list for an id set, for IN clauses.
func renderIDList(d Dialect, startIndex, count int) string {
	parts := make([]string, count)
	for i := range parts {
		parts[i] = d.Placeholder(startIndex + i)
	}
	return strings.Join(parts, ",")
}
