// Package charset decodes raw file bytes to UTF-8 using WHATWG encoding labels
// ("utf-8", "windows-1252", "gbk", "shift_jis", ...).
package charset

import (
	"bytes"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/transform"
)

// Default is the label used when none is configured.
const Default = "utf-8"

// ErrUnknownLabel is returned for labels the WHATWG registry does not know.
var ErrUnknownLabel = errors.New("unknown charset label")

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Result is decoded text plus what happened on the way.
type Result struct {
	Text   []byte
	Label  string // canonical encoding name
	HadBOM bool
	Lossy  bool // some input bytes were replaced by U+FFFD
}

// Lookup resolves a label to its encoding and canonical name.
func Lookup(label string) (encoding.Encoding, string, error) {
	label = strings.TrimSpace(label)
	if label == "" {
		label = Default
	}
	enc, err := htmlindex.Get(label)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %q", ErrUnknownLabel, label)
	}
	name, err := htmlindex.Name(enc)
	if err != nil {
		name = strings.ToLower(label)
	}
	return enc, name, nil
}

// Validate reports whether label is usable.
func Validate(label string) error {
	_, _, err := Lookup(label)
	return err
}

// Decode converts raw to UTF-8. A leading UTF-8 BOM is dropped. Invalid input
// never fails: bad sequences become U+FFFD and Result.Lossy is set.
func Decode(raw []byte, label string) (Result, error) {
	enc, name, err := Lookup(label)
	if err != nil {
		return Result{}, err
	}
	res := Result{Label: name}

	if name == "utf-8" {
		if bytes.HasPrefix(raw, utf8BOM) {
			raw = raw[len(utf8BOM):]
			res.HadBOM = true
		}
		if utf8.Valid(raw) {
			res.Text = raw
			return res, nil
		}
		res.Text = bytes.ToValidUTF8(raw, []byte(string(utf8.RuneError)))
		res.Lossy = true
		return res, nil
	}

	out, _, err := transform.Bytes(enc.NewDecoder(), raw)
	if err != nil {
		return Result{}, fmt.Errorf("failed to decode as %s: %w", name, err)
	}
	if bytes.HasPrefix(out, utf8BOM) {
		out = out[len(utf8BOM):]
		res.HadBOM = true
	}
	res.Text = out
	res.Lossy = bytes.ContainsRune(out, utf8.RuneError)
	return res, nil
}
