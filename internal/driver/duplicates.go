package driver

import "tradiff/internal/diag"

// reportDuplicates adds one CMP3001 warning per id that r defines more than
// once. The warning points at the second definition; notes point at the
// others in file order.
func reportDuplicates(r *FileResult) {
	entries := r.Entries
	for i := 0; i < len(entries); {
		j := i + 1
		for j < len(entries) && entries[j].ID == entries[i].ID {
			j++
		}
		if j-i > 1 {
			group := entries[i:j]
			d := diag.Warningf(diag.CmpDuplicateEntry, group[1].Span,
				"entry @%d is defined %d times in the %s file", group[0].ID, len(group), r.Which)
			d = d.WithNote(group[0].Span, "first defined here")
			for _, e := range group[2:] {
				d = d.WithNote(e.Span, "defined again here")
			}
			r.Bag.Add(d)
		}
		i = j
	}
}
