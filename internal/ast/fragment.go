package ast

import (
	"strconv"

	"tradiff/internal/source"
)

type CommentKind uint8

const (
	EndOfLine CommentKind = iota // "// text"
	Enclosed                     // "/* text */"
)

// Comment text excludes the delimiters.
type Comment struct {
	Kind CommentKind
	Text string
}

func (c Comment) String() string {
	if c.Kind == Enclosed {
		return "/*" + c.Text + "*/"
	}
	return "//" + c.Text
}

type FragmentKind uint8

const (
	FragComment FragmentKind = iota
	FragEntry
	// FragError marks a region skipped by error recovery. The error itself
	// lives in the parser's error list.
	FragError
)

func (k FragmentKind) String() string {
	switch k {
	case FragComment:
		return "Comment"
	case FragEntry:
		return "Entry"
	case FragError:
		return "Error"
	default:
		return "FragmentKind(" + strconv.Itoa(int(k)) + ")"
	}
}

// Fragment is a top-level unit of a file.
type Fragment struct {
	Kind    FragmentKind
	Comment Comment
	Entry   Entry
	Span    source.Span
}

func CommentFragment(c Comment, sp source.Span) Fragment {
	return Fragment{Kind: FragComment, Comment: c, Span: sp}
}

func EntryFragment(e Entry) Fragment {
	return Fragment{Kind: FragEntry, Entry: e, Span: e.Span}
}

func ErrorFragment(sp source.Span) Fragment {
	return Fragment{Kind: FragError, Span: sp}
}

// AsEntry returns the entry carried by an entry fragment.
func (f Fragment) AsEntry() (Entry, bool) {
	if f.Kind != FragEntry {
		return Entry{}, false
	}
	return f.Entry, true
}

// Equal compares fragments by kind and payload; spans are ignored.
func (f Fragment) Equal(other Fragment) bool {
	if f.Kind != other.Kind {
		return false
	}
	switch f.Kind {
	case FragComment:
		return f.Comment == other.Comment
	case FragEntry:
		return f.Entry.Equal(other.Entry)
	default:
		return true
	}
}

func (f Fragment) String() string {
	switch f.Kind {
	case FragComment:
		return f.Comment.String()
	case FragEntry:
		return f.Entry.String()
	default:
		return "<error>"
	}
}
