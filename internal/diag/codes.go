package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// lexical
	LexInfo            Code = 1000
	LexInvalidToken    Code = 1001
	LexUnterminated    Code = 1002
	LexInvalidDigit    Code = 1003
	LexIntegerOverflow Code = 1004
	LexInvalidInteger  Code = 1005

	// syntax
	SynInfo            Code = 2000
	SynUnexpectedToken Code = 2001
	SynUnexpectedEOF   Code = 2002
	SynExtraToken      Code = 2003
	SynTooManyErrors   Code = 2004

	// comparison
	CmpInfo           Code = 3000
	CmpDuplicateEntry Code = 3001

	// input
	IOInfo        Code = 4000
	IOLossyDecode Code = 4001
)

var (
	codeDescription = map[Code]string{
		UnknownCode:        "Unknown error",
		LexInfo:            "Lexical information",
		LexInvalidToken:    "Invalid token",
		LexUnterminated:    "Unterminated delimiter",
		LexInvalidDigit:    "Invalid digit in number",
		LexIntegerOverflow: "Integer overflow",
		LexInvalidInteger:  "Invalid integer",
		SynInfo:            "Syntax information",
		SynUnexpectedToken: "Unexpected token",
		SynUnexpectedEOF:   "Unexpected end of file",
		SynExtraToken:      "Extra token",
		SynTooManyErrors:   "Too many errors",
		CmpInfo:            "Comparison information",
		CmpDuplicateEntry:  "Duplicate entry",
		IOInfo:             "Input information",
		IOLossyDecode:      "Lossy charset decoding",
	}
)

// ID returns the stable code label, e.g. "SYN2001".
func (c Code) ID() string {
	ic := int(c)
	switch {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CMP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("IO%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	if desc, ok := codeDescription[c]; ok {
		return desc
	}
	return codeDescription[UnknownCode]
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}
