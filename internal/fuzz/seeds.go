package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB
)

var edgeSeeds = []string{
	"",
	"@1 = ~a~",
	"@1 = ~~~~~a~~~~~~~~~~",
	"~~~~~ never closed",
	"@1 = ~a~ ^ \"b\" ^ %c% [S] #5 ^ ~d~ [T]",
	"@-9223372036854775808 = #4294967295",
	"@99999999999999999999 = #-1",
	"/* unclosed",
	"// no newline",
	"[]",
	"[unclosed",
	"= 50% done\n@1 = ~a~",
	"@1 = @2 = @3",
	"\xff\xfe@1 = ~\x00~",
}

func addCorpusSeeds(f *testing.F) {
	for _, s := range edgeSeeds {
		f.Add([]byte(s))
	}
	addTestdataSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	_ = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil || d.IsDir() || filepath.Ext(path) != ".tra" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
