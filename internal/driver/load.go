package driver

import (
	"fmt"
	"os"

	"github.com/rs/zerolog/log"

	"tradiff/internal/charset"
	"tradiff/internal/diag"
	"tradiff/internal/source"
)

// decoded is a file read from disk and converted to UTF-8 but not yet
// registered in a FileSet.
type decoded struct {
	path  string
	label string
	text  []byte
	flags source.FileFlags
}

func readAndDecode(path, label string) (decoded, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return decoded{}, fmt.Errorf("failed to read %s: %w", path, err)
	}
	res, err := charset.Decode(raw, label)
	if err != nil {
		return decoded{}, fmt.Errorf("failed to decode %s: %w", path, err)
	}

	var flags source.FileFlags
	if res.HadBOM {
		flags |= source.FileHadBOM
	}
	if res.Lossy {
		flags |= source.FileLossyDecode
		log.Warn().Str("path", path).Str("charset", res.Label).Msg("input contains bytes invalid in its charset")
	}
	return decoded{path: path, label: res.Label, text: res.Text, flags: flags}, nil
}

// register adds d to fs and reports a lossy decode as a warning at the
// start of the file.
func (d decoded) register(fs *source.FileSet, bag *diag.Bag) source.FileID {
	id := fs.AddDecoded(d.path, d.label, d.text, d.flags)
	if d.flags&source.FileLossyDecode != 0 && bag != nil {
		bag.Add(diag.New(diag.SevWarning, diag.IOLossyDecode, source.Span{File: id},
			fmt.Sprintf("%s is not valid %s; invalid bytes were replaced with U+FFFD", d.path, d.label)))
	}
	return id
}

// LoadFile reads path, decodes it from the charset named by label and adds
// it to fs.
func LoadFile(fs *source.FileSet, bag *diag.Bag, path, label string) (source.FileID, error) {
	d, err := readAndDecode(path, label)
	if err != nil {
		return 0, err
	}
	return d.register(fs, bag), nil
}
