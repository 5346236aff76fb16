// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dataset

import (
	"sort"

	"github.com/aclements/go-gg/table"
)

// Table converts recs to a table with one column per field. If cols
// is empty, every field that appears in any record is used, in
// sorted order. A column whose values are all numeric becomes a
// []float64 column; any other column becomes a []string column.
func Table(recs []Record, cols ...string) *table.Table {
	if len(cols) == 0 {
		seen := map[string]bool{}
		for _, r := range recs {
			for k := range r {
				if !seen[k] {
					seen[k] = true
					cols = append(cols, k)
				}
			}
		}
		sort.Strings(cols)
	}

	tab := new(table.Builder)
	for _, col := range cols {
		if numericColumn(recs, col) {
			tab.Add(col, Floats(recs, col))
			continue
		}
		strs := make([]string, len(recs))
		for i, r := range recs {
			strs[i] = r.String(col)
		}
		tab.Add(col, strs)
	}
	return tab.Done()
}

func numericColumn(recs []Record, col string) bool {
	for _, r := range recs {
		switch r[col].(type) {
		case float64, int, nil:
		default:
			return false
		}
	}
	return len(recs) > 0
}
