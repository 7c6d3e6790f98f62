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

	"dndml/internal/sheet"
	"dndml/internal/source"
)

// Increment when DiskPayload changes shape; older entries then read as misses.
const diskCacheSchemaVersion uint16 = 1

// ErrCacheCorrupt marks an entry that decoded but does not describe a valid document.
var ErrCacheCorrupt = errors.New("corrupt cache entry")

// DiskCache stores parsed sheets keyed by the SHA-256 of their normalized content.
// Only successful parses are cached. Safe for concurrent use.
type DiskCache struct {
	mu  sync.RWMutex
	dir string
}

// DiskPayload is the on-disk form of a Document. Spans are stored as byte
// offsets and rebound to the requesting file on load.
type DiskPayload struct {
	Schema     uint16
	SourceName string
	Sections   []cachedSection
}

type cachedSection struct {
	Name       string
	Start, End uint32
	Fields     []cachedField
}

// cachedField flattens a Value: Ints/Strs/Items hold the variant's slots in declaration order.
type cachedField struct {
	Name       string
	Start, End uint32
	Kind       uint8
	Ints       []*int
	Strs       []*string
	Items      []cachedItem
}

type cachedItem struct {
	Val    *string
	Qty    *int
	Weight *int
}

// OpenDiskCache opens (and creates) the cache directory. An empty dir
// selects $XDG_CACHE_HOME/app, falling back to ~/.cache/app.
func OpenDiskCache(dir, app string) (*DiskCache, error) {
	if dir == "" {
		base := os.Getenv("XDG_CACHE_HOME")
		if base == "" {
			home, err := os.UserHomeDir()
			if err != nil {
				return nil, err
			}
			base = filepath.Join(home, ".cache")
		}
		dir = filepath.Join(base, app)
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{dir: dir}, nil
}

// Dir returns the cache root.
func (c *DiskCache) Dir() string {
	return c.dir
}

func (c *DiskCache) pathFor(key [32]byte) string {
	return filepath.Join(c.dir, "sheets", hex.EncodeToString(key[:])+".mp")
}

// Put serializes doc and writes it atomically under key.
func (c *DiskCache) Put(key [32]byte, doc *sheet.Document) error {
	if c == nil || doc == nil {
		return nil
	}
	payload, err := documentToPayload(doc)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	p := c.pathFor(key)
	if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
		return err
	}
	f, err := os.CreateTemp(filepath.Dir(p), "tmp-*")
	if err != nil {
		return err
	}
	tmp := f.Name()

	if err := msgpack.NewEncoder(f).Encode(payload); err != nil {
		_ = f.Close()
		_ = os.Remove(tmp)
		return err
	}
	if err := f.Close(); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	if err := os.Rename(tmp, p); err != nil {
		_ = os.Remove(tmp)
		return err
	}
	return nil
}

// Get loads the document cached under key with spans bound to file.
// A missing entry or one from another schema version is a miss, not an error.
func (c *DiskCache) Get(key [32]byte, file *source.File) (*sheet.Document, bool, error) {
	if c == nil {
		return nil, false, nil
	}
	c.mu.RLock()
	defer c.mu.RUnlock()

	f, err := os.Open(c.pathFor(key))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}
	defer f.Close() //nolint:errcheck

	var payload DiskPayload
	if err := msgpack.NewDecoder(f).Decode(&payload); err != nil {
		return nil, false, fmt.Errorf("%w: %w", ErrCacheCorrupt, err)
	}
	if payload.Schema != diskCacheSchemaVersion {
		return nil, false, nil
	}
	doc, err := payloadToDocument(&payload, file)
	if err != nil {
		return nil, false, err
	}
	return doc, true, nil
}

// DropAll removes every cached entry.
func (c *DiskCache) DropAll() error {
	if c == nil {
		return nil
	}
	c.mu.Lock()
	defer c.mu.Unlock()

	old := c.dir + ".old-" + time.Now().Format("20060102150405")
	if err := os.Rename(c.dir, old); err != nil {
		return err
	}
	if err := os.MkdirAll(c.dir, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(old)
}

func documentToPayload(doc *sheet.Document) (*DiskPayload, error) {
	payload := &DiskPayload{
		Schema:     diskCacheSchemaVersion,
		SourceName: doc.SourceName,
		Sections:   make([]cachedSection, 0, len(doc.Sections)),
	}
	for _, sec := range doc.Sections {
		cs := cachedSection{
			Name:   sec.Name,
			Start:  sec.Span.Start,
			End:    sec.Span.End,
			Fields: make([]cachedField, 0, len(sec.Fields)),
		}
		for _, f := range sec.Fields {
			cf := cachedField{Name: f.Name, Start: f.Span.Start, End: f.Span.End}
			switch v := f.Value.(type) {
			case sheet.Stat:
				cf.Ints = []*int{v.Ability, v.Mod}
			case sheet.Str:
				cf.Strs = []*string{v.Value}
			case sheet.Int:
				cf.Ints = []*int{v.Value}
			case sheet.Dice:
				cf.Ints = []*int{v.Count, v.Faces, v.Modifier}
			case sheet.DeathSaves:
				cf.Ints = []*int{v.Succ, v.Fail}
			case sheet.Item:
				cf.Items = []cachedItem{toCachedItem(v)}
			case sheet.ItemList:
				cf.Items = make([]cachedItem, 0, len(v.Items))
				for _, it := range v.Items {
					cf.Items = append(cf.Items, toCachedItem(it))
				}
			default:
				return nil, fmt.Errorf("field %s.%s: cannot cache value %T", sec.Name, f.Name, f.Value)
			}
			cf.Kind = uint8(f.Value.Kind())
			cs.Fields = append(cs.Fields, cf)
		}
		payload.Sections = append(payload.Sections, cs)
	}
	return payload, nil
}

func toCachedItem(it sheet.Item) cachedItem {
	return cachedItem{Val: it.Val, Qty: it.Qty, Weight: it.Weight}
}

func fromCachedItem(it cachedItem) sheet.Item {
	return sheet.Item{Val: it.Val, Qty: it.Qty, Weight: it.Weight}
}

func payloadToDocument(payload *DiskPayload, file *source.File) (*sheet.Document, error) {
	// the key is a content hash, so the stored name may belong to another file
	doc := &sheet.Document{SourceName: payload.SourceName}
	var fileID source.FileID
	if file != nil {
		doc.Source, doc.SourceName = file, file.Path
		fileID = file.ID
	}
	span := func(start, end uint32) source.Span {
		return source.Span{File: fileID, Start: start, End: end}
	}

	doc.Sections = make([]sheet.Section, 0, len(payload.Sections))
	for _, cs := range payload.Sections {
		sec := sheet.Section{Name: cs.Name, Span: span(cs.Start, cs.End)}
		for _, cf := range cs.Fields {
			v, err := cachedValue(cf)
			if err != nil {
				return nil, fmt.Errorf("%w: field %s.%s: %w", ErrCacheCorrupt, cs.Name, cf.Name, err)
			}
			sec.Fields = append(sec.Fields, sheet.Field{Name: cf.Name, Span: span(cf.Start, cf.End), Value: v})
		}
		doc.Sections = append(doc.Sections, sec)
	}
	return doc, nil
}

func cachedValue(cf cachedField) (sheet.Value, error) {
	want := func(ints, strs int) error {
		if len(cf.Ints) != ints || len(cf.Strs) != strs {
			return fmt.Errorf("kind %d with %d ints and %d strings", cf.Kind, len(cf.Ints), len(cf.Strs))
		}
		return nil
	}

	switch sheet.ValueKind(cf.Kind) {
	case sheet.KindStat:
		if err := want(2, 0); err != nil {
			return nil, err
		}
		return sheet.Stat{Ability: cf.Ints[0], Mod: cf.Ints[1]}, nil
	case sheet.KindString:
		if err := want(0, 1); err != nil {
			return nil, err
		}
		return sheet.Str{Value: cf.Strs[0]}, nil
	case sheet.KindInt:
		if err := want(1, 0); err != nil {
			return nil, err
		}
		return sheet.Int{Value: cf.Ints[0]}, nil
	case sheet.KindDice:
		if err := want(3, 0); err != nil {
			return nil, err
		}
		return sheet.Dice{Count: cf.Ints[0], Faces: cf.Ints[1], Modifier: cf.Ints[2]}, nil
	case sheet.KindDeathSaves:
		if err := want(2, 0); err != nil {
			return nil, err
		}
		return sheet.DeathSaves{Succ: cf.Ints[0], Fail: cf.Ints[1]}, nil
	case sheet.KindItem:
		if len(cf.Items) != 1 {
			return nil, fmt.Errorf("item with %d entries", len(cf.Items))
		}
		return fromCachedItem(cf.Items[0]), nil
	case sheet.KindItemList:
		items := make([]sheet.Item, 0, len(cf.Items))
		for _, it := range cf.Items {
			items = append(items, fromCachedItem(it))
		}
		return sheet.ItemList{Items: items}, nil
	}
	return nil, fmt.Errorf("unknown kind %d", cf.Kind)
}
