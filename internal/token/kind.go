package token

// Kind represents the category of a token.
type Kind uint8

const (
	// Invalid indicates an erroneous token.
	Invalid Kind = iota
	// EOF marks the end of the input.
	EOF

	// Id is an entry id or an alias reference: @123, @-5.
	Id
	// Equal is '='.
	Equal
	// ConcatOperator is '^'.
	ConcatOperator

	// FiveTildeString is ~~~~~text~~~~~; the body may contain up to four tildes in a row.
	FiveTildeString
	// TildeString is ~text~.
	TildeString
	// DoubleQuoteString is "text".
	DoubleQuoteString
	// PercentString is %text%.
	PercentString

	// EndOfLineComment is // text.
	EndOfLineComment
	// EnclosedComment is /* text */.
	EnclosedComment

	// SoundRef is [SOUND].
	SoundRef
	// TlkRef is #123, a direct reference into dialog.tlk.
	TlkRef
)

var kindNames = [...]string{
	Invalid:           "Invalid",
	EOF:               "EOF",
	Id:                "Id",
	Equal:             "Equal",
	ConcatOperator:    "ConcatOperator",
	FiveTildeString:   "FiveTildeString",
	TildeString:       "TildeString",
	DoubleQuoteString: "DoubleQuoteString",
	PercentString:     "PercentString",
	EndOfLineComment:  "EndOfLineComment",
	EnclosedComment:   "EnclosedComment",
	SoundRef:          "SoundRef",
	TlkRef:            "TlkRef",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Describe returns the form used in "expected one of" lists.
func (k Kind) Describe() string {
	switch k {
	case Id:
		return "@id"
	case Equal:
		return "'='"
	case ConcatOperator:
		return "'^'"
	case FiveTildeString:
		return "~~~~~string~~~~~"
	case TildeString:
		return "~string~"
	case DoubleQuoteString:
		return "\"string\""
	case PercentString:
		return "%string%"
	case EndOfLineComment:
		return "// comment"
	case EnclosedComment:
		return "/* comment */"
	case SoundRef:
		return "[sound]"
	case TlkRef:
		return "#tlk"
	case EOF:
		return "end of file"
	default:
		return k.String()
	}
}

// IsEOF reports whether the kind marks the end of input.
func (k Kind) IsEOF() bool { return k == EOF }

// IsString reports whether the kind is one of the four string literal forms.
func (k Kind) IsString() bool {
	switch k {
	case FiveTildeString, TildeString, DoubleQuoteString, PercentString:
		return true
	default:
		return false
	}
}

// IsComment reports whether the kind is a comment.
func (k Kind) IsComment() bool {
	return k == EndOfLineComment || k == EnclosedComment
}

// StartsFragment reports whether a token of this kind may begin a top-level
// fragment. Error recovery skips tokens until one of these shows up.
func (k Kind) StartsFragment() bool {
	return k == Id || k.IsComment()
}
