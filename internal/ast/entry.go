package ast

import (
	"strconv"
	"strings"

	"tradiff/internal/source"
)

// ExplicitEntry is an entry body spelled out in the file. AltValue is the
// variant used for female speakers; AltSound is only set together with it.
type ExplicitEntry struct {
	Value    WeiduString
	Sound    *string
	AltValue *WeiduString
	AltSound *string
}

func (e ExplicitEntry) Equal(other ExplicitEntry) bool {
	if !e.Value.Equal(other.Value) || !eqOptString(e.Sound, other.Sound) || !eqOptString(e.AltSound, other.AltSound) {
		return false
	}
	if e.AltValue == nil || other.AltValue == nil {
		return e.AltValue == other.AltValue
	}
	return e.AltValue.Equal(*other.AltValue)
}

func (e ExplicitEntry) String() string {
	var sb strings.Builder
	sb.WriteString(e.Value.String())
	if e.Sound != nil {
		sb.WriteString(" [" + *e.Sound + "]")
	}
	if e.AltValue != nil {
		sb.WriteString(" " + e.AltValue.String())
		if e.AltSound != nil {
			sb.WriteString(" [" + *e.AltSound + "]")
		}
	}
	return sb.String()
}

func eqOptString(a, b *string) bool {
	if a == nil || b == nil {
		return a == b
	}
	return *a == *b
}

// ContentKind tags the variant held by an EntryContent.
type ContentKind uint8

const (
	ContentExplicit ContentKind = iota
	ContentAt                   // @1 = @2
	ContentTlk                  // @1 = #2
)

func (k ContentKind) String() string {
	switch k {
	case ContentExplicit:
		return "Explicit"
	case ContentAt:
		return "At"
	case ContentTlk:
		return "Tlk"
	default:
		return "ContentKind(" + strconv.Itoa(int(k)) + ")"
	}
}

type EntryContent struct {
	Kind     ContentKind
	Explicit ExplicitEntry
	At       int64
	Tlk      uint32
}

func ExplicitContent(e ExplicitEntry) EntryContent {
	return EntryContent{Kind: ContentExplicit, Explicit: e}
}

func AtContent(id int64) EntryContent {
	return EntryContent{Kind: ContentAt, At: id}
}

func TlkContent(ref uint32) EntryContent {
	return EntryContent{Kind: ContentTlk, Tlk: ref}
}

func (c EntryContent) Equal(other EntryContent) bool {
	if c.Kind != other.Kind {
		return false
	}
	switch c.Kind {
	case ContentAt:
		return c.At == other.At
	case ContentTlk:
		return c.Tlk == other.Tlk
	default:
		return c.Explicit.Equal(other.Explicit)
	}
}

func (c EntryContent) String() string {
	switch c.Kind {
	case ContentAt:
		return "@" + strconv.FormatInt(c.At, 10)
	case ContentTlk:
		return "#" + strconv.FormatUint(uint64(c.Tlk), 10)
	default:
		return c.Explicit.String()
	}
}

// Entry is one "@id = ..." definition. Ids may be negative and may repeat
// within a file.
type Entry struct {
	ID      int64
	Content EntryContent
	Span    source.Span
}

func NewEntry(id int64, content EntryContent) Entry {
	return Entry{ID: id, Content: content}
}

// Equal compares id and content; spans are ignored.
func (e Entry) Equal(other Entry) bool {
	return e.ID == other.ID && e.Content.Equal(other.Content)
}

func (e Entry) String() string {
	return "@" + strconv.FormatInt(e.ID, 10) + " = " + e.Content.String()
}
