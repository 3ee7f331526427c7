// Package compare projects parsed fragments onto their entries and computes
// the id-level differences between two files.
package compare

import (
	"slices"
	"sort"

	"tradiff/internal/ast"
)

// Project keeps the entries of frags, sorted ascending by id. Entries with
// equal ids keep their file order; nothing is deduplicated.
func Project(frags []ast.Fragment) []ast.Entry {
	entries := make([]ast.Entry, 0, len(frags))
	for _, f := range frags {
		if e, ok := f.AsEntry(); ok {
			entries = append(entries, e)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries
}

// Duplicate is an id defined more than once in a file.
type Duplicate struct {
	ID    int64 `json:"id" msgpack:"id"`
	Count int   `json:"count" msgpack:"count"`
}

// Duplicates lists the ids occurring more than once, ascending by id.
// entries must be sorted by id, as returned by Project.
func Duplicates(entries []ast.Entry) []Duplicate {
	var out []Duplicate
	for i := 0; i < len(entries); {
		j := i + 1
		for j < len(entries) && entries[j].ID == entries[i].ID {
			j++
		}
		if n := j - i; n > 1 {
			out = append(out, Duplicate{ID: entries[i].ID, Count: n})
		}
		i = j
	}
	return out
}

// Delta is the id-level difference between two files.
type Delta struct {
	Added   []int64 `json:"added" msgpack:"added"`     // in the second file only
	Removed []int64 `json:"removed" msgpack:"removed"` // in the first file only
}

// Same reports whether both files define the same set of ids.
func (d Delta) Same() bool {
	return len(d.Added) == 0 && len(d.Removed) == 0
}

// Diff compares the distinct ids of two sorted entry lists. Both result
// lists are ascending.
func Diff(first, second []ast.Entry) Delta {
	a, b := distinctIDs(first), distinctIDs(second)
	var d Delta
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			d.Removed = append(d.Removed, a[i])
			i++
		case a[i] > b[j]:
			d.Added = append(d.Added, b[j])
			j++
		default:
			i++
			j++
		}
	}
	d.Removed = append(d.Removed, a[i:]...)
	d.Added = append(d.Added, b[j:]...)
	return d
}

// Report is everything the comparison output needs.
type Report struct {
	FirstDuplicates  []Duplicate `json:"first_duplicates" msgpack:"first_duplicates"`
	SecondDuplicates []Duplicate `json:"second_duplicates" msgpack:"second_duplicates"`
	Delta            Delta       `json:"delta" msgpack:"delta"`
	Unchanged        []int64     `json:"unchanged" msgpack:"unchanged"` // ids in both files
}

// Compare runs Duplicates on both sides and Diff between them. Duplicate
// warnings never change the set result.
func Compare(first, second []ast.Entry) Report {
	return Report{
		FirstDuplicates:  Duplicates(first),
		SecondDuplicates: Duplicates(second),
		Delta:            Diff(first, second),
		Unchanged:        intersect(distinctIDs(first), distinctIDs(second)),
	}
}

// distinctIDs returns the sorted unique ids of entries.
func distinctIDs(entries []ast.Entry) []int64 {
	ids := make([]int64, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	slices.Sort(ids)
	return slices.Compact(ids)
}

func intersect(a, b []int64) []int64 {
	var out []int64
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] < b[j]:
			i++
		case a[i] > b[j]:
			j++
		default:
			out = append(out, a[i])
			i++
			j++
		}
	}
	return out
}
