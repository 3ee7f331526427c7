package driver

import (
	"errors"

	"fortio.org/safecast"

	"tradiff/internal/ast"
	"tradiff/internal/diag"
	"tradiff/internal/lexer"
	"tradiff/internal/parser"
	"tradiff/internal/source"
)

type ParseResult struct {
	FileSet   *source.FileSet
	File      *source.File
	Fragments []ast.Fragment
	Errors    []*parser.Error
	Fatal     error
	Bag       *diag.Bag
}

// Parse reads one file into fragments. A fatal parse error is kept in
// ParseResult.Fatal and reported in the bag; the returned error is only set
// when the file cannot be loaded.
func Parse(path, label string, maxDiagnostics int) (*ParseResult, error) {
	fs := source.NewFileSet()
	bag := diag.NewBag(maxDiagnostics)
	fileID, err := LoadFile(fs, bag, path, label)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	maxErrors, err := safecast.Conv[uint](max(maxDiagnostics, 0))
	if err != nil {
		return nil, err
	}
	frags, errs, fatal := parser.Parse(file, nil, parser.Options{
		MaxErrors: maxErrors,
		Reporter:  diag.NewDedupReporter(diag.BagReporter{Bag: bag}),
	})

	return &ParseResult{
		FileSet:   fs,
		File:      file,
		Fragments: frags,
		Errors:    errs,
		Fatal:     fatal,
		Bag:       bag,
	}, nil
}

func reportLexError(bag *diag.Bag, err error) {
	var lexErr *lexer.Error
	if !errors.As(err, &lexErr) {
		return
	}
	bag.Add(diag.NewError(lexErr.Code(), lexErr.Span, lexErr.Error()))
}
