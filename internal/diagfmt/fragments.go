package diagfmt

import (
	"fmt"
	"io"
	"strconv"

	"tradiff/internal/ast"
	"tradiff/internal/source"
)

type FragmentOutput struct {
	Type   string         `json:"type"`
	Kind   string         `json:"kind,omitempty"`
	Span   source.Span    `json:"span"`
	Text   string         `json:"text,omitempty"`
	Fields map[string]any `json:"fields,omitempty"`
}

// FormatFragmentsPretty prints the fragments of one file as a tree.
func FormatFragmentsPretty(w io.Writer, frags []ast.Fragment, fs *source.FileSet, path string) error {
	if _, err := fmt.Fprintf(w, "File %s (fragments: %d)\n", path, len(frags)); err != nil {
		return err
	}

	for i, frag := range frags {
		branch, prefix := "├─", "│  "
		if i == len(frags)-1 {
			branch, prefix = "└─", "   "
		}
		fmt.Fprintf(w, "%s Fragment[%d]: ", branch, i)
		formatFragmentPretty(w, frag, fs, prefix)
	}
	return nil
}

func formatFragmentPretty(w io.Writer, frag ast.Fragment, fs *source.FileSet, prefix string) {
	switch frag.Kind {
	case ast.FragComment:
		fmt.Fprintf(w, "Comment %s (span: %s)\n", commentKind(frag.Comment.Kind), formatSpan(frag.Span, fs))
		fmt.Fprintf(w, "%s└─ Text: %q\n", prefix, frag.Comment.Text)
	case ast.FragEntry:
		fmt.Fprintf(w, "Entry @%d (span: %s)\n", frag.Entry.ID, formatSpan(frag.Span, fs))
		fields := entryFields(frag.Entry.Content)
		for i, f := range fields {
			branch := "├─"
			if i == len(fields)-1 {
				branch = "└─"
			}
			fmt.Fprintf(w, "%s%s %s: %s\n", prefix, branch, f.name, f.value)
		}
	default:
		fmt.Fprintf(w, "Error (span: %s)\n", formatSpan(frag.Span, fs))
	}
}

type entryField struct {
	name  string
	value string
}

func entryFields(c ast.EntryContent) []entryField {
	switch c.Kind {
	case ast.ContentAt:
		return []entryField{{"At", "@" + strconv.FormatInt(c.At, 10)}}
	case ast.ContentTlk:
		return []entryField{{"Tlk", "#" + strconv.FormatUint(uint64(c.Tlk), 10)}}
	}

	e := c.Explicit
	fields := []entryField{{"Value", describeString(e.Value)}}
	if e.Sound != nil {
		fields = append(fields, entryField{"Sound", "[" + *e.Sound + "]"})
	}
	if e.AltValue != nil {
		fields = append(fields, entryField{"AltValue", describeString(*e.AltValue)})
	}
	if e.AltSound != nil {
		fields = append(fields, entryField{"AltSound", "[" + *e.AltSound + "]"})
	}
	return fields
}

func describeString(s ast.WeiduString) string {
	if d := s.Depth(); d > 0 {
		return fmt.Sprintf("%s (concat: %d)", s.String(), d)
	}
	return s.String()
}

func commentKind(k ast.CommentKind) string {
	if k == ast.Enclosed {
		return "Enclosed"
	}
	return "EndOfLine"
}

func formatSpan(span source.Span, fs *source.FileSet) string {
	if known(fs, span) {
		start, end := fs.Resolve(span)
		return fmt.Sprintf("%d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
	}
	return fmt.Sprintf("span(%d-%d)", span.Start, span.End)
}

// FormatFragmentsJSON writes the fragments as a JSON array.
func FormatFragmentsJSON(w io.Writer, frags []ast.Fragment) error {
	output := make([]FragmentOutput, 0, len(frags))
	for _, frag := range frags {
		out := FragmentOutput{
			Type: frag.Kind.String(),
			Span: frag.Span,
		}
		switch frag.Kind {
		case ast.FragComment:
			out.Kind = commentKind(frag.Comment.Kind)
			out.Text = frag.Comment.Text
		case ast.FragEntry:
			out.Kind = frag.Entry.Content.Kind.String()
			out.Text = frag.Entry.String()
			out.Fields = map[string]any{"id": frag.Entry.ID}
			for _, f := range entryFields(frag.Entry.Content) {
				out.Fields[f.name] = f.value
			}
		}
		output = append(output, out)
	}
	return encodeJSON(w, output)
}
