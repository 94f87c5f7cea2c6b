package model

import (
	"sort"
	"strings"
)

// Sort orders TypeDefs for emission: enums rank before table-derived types so
// union declarations precede the structs that reference them; within a rank,
// ordering is alphabetical by base name (the name a read shape shares with
// its insertion variant), read shape first.
func Sort(defs []TypeDef, insertSuffix string) {
	sort.SliceStable(defs, func(i, j int) bool {
		ri, rj := rank(defs[i]), rank(defs[j])
		if ri != rj {
			return ri < rj
		}
		bi, bj := baseName(defs[i], insertSuffix), baseName(defs[j], insertSuffix)
		if bi != bj {
			return bi < bj
		}
		if defs[i].Insertion != defs[j].Insertion {
			return !defs[i].Insertion
		}
		return defs[i].Name < defs[j].Name
	})
}

func rank(d TypeDef) int {
	if d.Kind == KindEnum {
		return 0
	}
	return 1
}

// BaseName returns the name a type shares with its insertion variant.
func BaseName(d TypeDef, insertSuffix string) string {
	return baseName(d, insertSuffix)
}

func baseName(d TypeDef, insertSuffix string) string {
	if d.Insertion {
		return strings.TrimSuffix(d.Name, insertSuffix)
	}
	return d.Name
}
