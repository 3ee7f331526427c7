package driver

import (
	"tradiff/internal/diag"
	"tradiff/internal/lexer"
	"tradiff/internal/source"
	"tradiff/internal/token"
)

type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize lexes one file to EOF. Lexical errors become diagnostics and
// lexing resumes after them.
func Tokenize(path, label string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	bag := diag.NewBag(maxDiagnostics)
	fileID, err := LoadFile(fs, bag, path, label)
	if err != nil {
		return nil, err
	}
	file := fs.Get(fileID)

	lx := lexer.New(file)
	var tokens []token.Token
	for {
		tok, err := lx.Next()
		if err != nil {
			reportLexError(bag, err)
			continue
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			break
		}
	}

	return &TokenizeResult{
		FileSet: fs,
		File:    file,
		Tokens:  tokens,
		Bag:     bag,
	}, nil
}
