package driver

import (
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"

	"tradiff/internal/ast"
	"tradiff/internal/source"
)

// Current schema version - increment when DiskPayload format changes
const diskCacheSchemaVersion uint16 = 1

// DiskCache stores parsed fragments on disk, keyed by the SHA-256 of the
// decoded file content. Thread-safe for concurrent access.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the cached parse of one file. Spans keep their offsets; the
// file id is reassigned on load.
type DiskPayload struct {
	Schema    uint16
	Fragments []FragmentDTO
}

type FragmentDTO struct {
	Kind        uint8
	CommentKind uint8
	CommentText string
	Entry       *EntryDTO
	Start       uint32
	End         uint32
}

type EntryDTO struct {
	ID       int64
	Kind     uint8
	At       int64
	Tlk      uint32
	Value    *StringDTO
	Sound    *string
	AltValue *StringDTO
	AltSound *string
}

// StringDTO is a WeiduString with its concat chain flattened.
type StringDTO struct {
	Kind uint8
	Head LiteralDTO
	At   int64
	Ref  uint32
	Tail []LiteralDTO
}

type LiteralDTO struct {
	Delim uint8
	Text  string
}

// OpenDiskCache creates dir if needed and returns a cache rooted there.
func OpenDiskCache(dir string) (*DiskCache, error) {
	if dir == "" {
		return nil, errors.New("cache directory is empty")
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	if c == nil {
		return ""
	}
	return c.dir
}

func (c *DiskCache) pathFor(key [32]byte) string {
	hexKey := hex.EncodeToString(key[:])
	return filepath.Join(c.dir, "frags", hexKey+".mp")
}

// Put serializes and writes a payload to the disk cache.
func (c *DiskCache) Put(key [32]byte, payload *DiskPayload) (err error) {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err = os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		if rmErr := os.Remove(f.Name()); rmErr != nil && !errors.Is(rmErr, os.ErrNotExist) && err == nil {
			err = rmErr
		}
	}()

	if err = msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		return err
	}
	if err = f.Close(); err != nil {
		return err
	}
	// atomic replace
	return os.Rename(f.Name(), p)
}

// Get reads and deserializes a payload from the disk cache.
func (c *DiskCache) Get(key [32]byte, out *DiskPayload) (found bool, err error) {
	if c == nil {
		return false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return false, nil
		}
		return false, err
	}
	defer func() {
		if closeErr := f.Close(); closeErr != nil && err == nil {
			err = closeErr
		}
	}()
	if err := msgpack.NewDecoder(f).Decode(out); err != nil {
		return false, err
	}
	if out.Schema != diskCacheSchemaVersion {
		return false, nil
	}
	return true, nil
}

// DropAll invalidates the cache, useful after format changes.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return err
	}
	return os.RemoveAll(old)
}

func fragmentsToPayload(frags []ast.Fragment) *DiskPayload {
	payload := &DiskPayload{
		Schema:    diskCacheSchemaVersion,
		Fragments: make([]FragmentDTO, len(frags)),
	}
	for i, f := range frags {
		dto := FragmentDTO{
			Kind:  uint8(f.Kind),
			Start: f.Span.Start,
			End:   f.Span.End,
		}
		switch f.Kind {
		case ast.FragComment:
			dto.CommentKind = uint8(f.Comment.Kind)
			dto.CommentText = f.Comment.Text
		case ast.FragEntry:
			dto.Entry = entryToDTO(f.Entry)
		}
		payload.Fragments[i] = dto
	}
	return payload
}

func entryToDTO(e ast.Entry) *EntryDTO {
	dto := &EntryDTO{ID: e.ID, Kind: uint8(e.Content.Kind)}
	switch e.Content.Kind {
	case ast.ContentAt:
		dto.At = e.Content.At
	case ast.ContentTlk:
		dto.Tlk = e.Content.Tlk
	default:
		x := e.Content.Explicit
		dto.Value = stringToDTO(x.Value)
		dto.Sound = x.Sound
		if x.AltValue != nil {
			dto.AltValue = stringToDTO(*x.AltValue)
		}
		dto.AltSound = x.AltSound
	}
	return dto
}

func stringToDTO(s ast.WeiduString) *StringDTO {
	head, tail := s.Parts()
	dto := &StringDTO{
		Kind: uint8(head.Kind),
		Head: LiteralDTO{Delim: uint8(head.Lit.Delim), Text: head.Lit.Text},
		At:   head.At,
		Ref:  head.Ref,
	}
	for _, lit := range tail {
		dto.Tail = append(dto.Tail, LiteralDTO{Delim: uint8(lit.Delim), Text: lit.Text})
	}
	return dto
}

// payloadToFragments rebuilds fragments for file id. It returns nil for a
// payload written by another schema.
func payloadToFragments(payload *DiskPayload, id source.FileID) []ast.Fragment {
	if payload == nil || payload.Schema != diskCacheSchemaVersion {
		return nil
	}
	frags := make([]ast.Fragment, len(payload.Fragments))
	for i, dto := range payload.Fragments {
		sp := source.Span{File: id, Start: dto.Start, End: dto.End}
		switch ast.FragmentKind(dto.Kind) {
		case ast.FragComment:
			frags[i] = ast.CommentFragment(ast.Comment{Kind: ast.CommentKind(dto.CommentKind), Text: dto.CommentText}, sp)
		case ast.FragEntry:
			e := dtoToEntry(dto.Entry)
			e.Span = sp
			frags[i] = ast.EntryFragment(e)
		default:
			frags[i] = ast.ErrorFragment(sp)
		}
	}
	return frags
}

func dtoToEntry(dto *EntryDTO) ast.Entry {
	if dto == nil {
		return ast.Entry{}
	}
	switch ast.ContentKind(dto.Kind) {
	case ast.ContentAt:
		return ast.NewEntry(dto.ID, ast.AtContent(dto.At))
	case ast.ContentTlk:
		return ast.NewEntry(dto.ID, ast.TlkContent(dto.Tlk))
	}
	x := ast.ExplicitEntry{
		Value:    dtoToString(dto.Value),
		Sound:    dto.Sound,
		AltSound: dto.AltSound,
	}
	if dto.AltValue != nil {
		alt := dtoToString(dto.AltValue)
		x.AltValue = &alt
	}
	return ast.NewEntry(dto.ID, ast.ExplicitContent(x))
}

func dtoToString(dto *StringDTO) ast.WeiduString {
	if dto == nil {
		return ast.WeiduString{}
	}
	var head ast.WeiduString
	switch ast.StringKind(dto.Kind) {
	case ast.StrAt:
		head = ast.AtRef(dto.At)
	case ast.StrRef:
		head = ast.TlkRef(dto.Ref)
	default:
		head = ast.Lit(ast.StringLit{Delim: ast.Delim(dto.Head.Delim), Text: dto.Head.Text})
	}
	tail := make([]ast.StringLit, len(dto.Tail))
	for i, lit := range dto.Tail {
		tail[i] = ast.StringLit{Delim: ast.Delim(lit.Delim), Text: lit.Text}
	}
	return ast.Chain(head, tail...)
}
