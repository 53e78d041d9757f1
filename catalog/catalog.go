package catalog

import (
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/reoring/refined"
	"github.com/reoring/refined/codec"
	"github.com/reoring/refined/pickle"
	"github.com/reoring/refined/schema"
)

// Primitive base names.
const (
	baseString = "string"
	baseInt    = "int"
	baseFloat  = "float"
	baseBool   = "bool"
	baseTime   = "time"
)

// Entry kinds besides refined.Opaque and refined.Transparent.
const (
	KindPrimitive = "primitive"
	KindRecord    = "record"
)

var (
	ErrUnknownType = errors.New("catalog: unknown type")
	ErrUnknownRule = errors.New("catalog: unknown rule")
	ErrDuplicate   = errors.New("catalog: duplicate name")
	ErrCycle       = errors.New("catalog: definition cycle")
	ErrInvalid     = errors.New("catalog: invalid declaration")
)

// Object is the runtime value of a record.
type Object map[string]any

// Entry is one named type with its derived adapters. Plain is nil for
// records. Adapters panic when handed a value of the wrong dynamic type;
// pass only values they decoded.
type Entry struct {
	Name        string
	Kind        string
	Description string
	Validator   schema.Validator[any]
	Plain       codec.PlainCodec[any]
	Pickler     pickle.Pickler[any]
}

// Catalog is an immutable set of entries, safe for concurrent use.
type Catalog struct {
	entries map[string]*Entry
	names   []string
}

// Load decodes a YAML catalog from r. Unknown YAML keys are rejected.
func Load(r io.Reader) (*Catalog, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	var f File
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("catalog: decode yaml: %w", err)
	}
	return Build(f)
}

// LoadFile is Load for a file path.
func LoadFile(path string) (*Catalog, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	defer fh.Close()
	return Load(fh)
}

// Build resolves every declaration in f.
func Build(f File) (*Catalog, error) {
	b := &builder{
		types:    make(map[string]*TypeDecl, len(f.Types)),
		records:  make(map[string]*RecordDecl, len(f.Records)),
		built:    map[string]*built{},
		visiting: map[string]bool{},
	}
	c := &Catalog{entries: map[string]*Entry{}}
	declare := func(name string) error {
		if name == "" {
			return fmt.Errorf("%w: missing name", ErrInvalid)
		}
		if isPrimitive(name) {
			return fmt.Errorf("%w: %s shadows a primitive", ErrDuplicate, name)
		}
		if _, ok := b.types[name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, name)
		}
		if _, ok := b.records[name]; ok {
			return fmt.Errorf("%w: %s", ErrDuplicate, name)
		}
		c.names = append(c.names, name)
		return nil
	}
	for i := range f.Types {
		if err := declare(f.Types[i].Name); err != nil {
			return nil, err
		}
		b.types[f.Types[i].Name] = &f.Types[i]
	}
	for i := range f.Records {
		if err := declare(f.Records[i].Name); err != nil {
			return nil, err
		}
		b.records[f.Records[i].Name] = &f.Records[i]
	}
	for _, name := range c.names {
		e, err := b.resolve(name)
		if err != nil {
			return nil, err
		}
		c.entries[name] = e.entry
	}
	return c, nil
}

// Lookup returns the entry for name. Primitive names resolve to their bases.
func (c *Catalog) Lookup(name string) (*Entry, bool) {
	if e, ok := c.entries[name]; ok {
		return e, true
	}
	if isPrimitive(name) {
		return primitiveEntry(name), true
	}
	return nil, false
}

// Names lists declared entries in declaration order, types first.
func (c *Catalog) Names() []string { return append([]string(nil), c.names...) }

type built struct {
	entry *Entry
	u     refined.Underlying[any] // nil for records
	prim  string
}

type builder struct {
	types    map[string]*TypeDecl
	records  map[string]*RecordDecl
	built    map[string]*built
	visiting map[string]bool
}

func (b *builder) resolve(name string) (*built, error) {
	if isPrimitive(name) {
		return &built{entry: primitiveEntry(name), u: primitive(name), prim: name}, nil
	}
	if r, ok := b.built[name]; ok {
		return r, nil
	}
	if b.visiting[name] {
		return nil, fmt.Errorf("%w: %s", ErrCycle, name)
	}
	b.visiting[name] = true
	defer delete(b.visiting, name)

	var (
		r   *built
		err error
	)
	switch {
	case b.types[name] != nil:
		r, err = b.buildType(b.types[name])
	case b.records[name] != nil:
		r, err = b.buildRecord(b.records[name])
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownType, name)
	}
	if err != nil {
		return nil, err
	}
	b.built[name] = r
	return r, nil
}

func (b *builder) buildType(ts *TypeDecl) (*built, error) {
	if ts.Base == "" {
		return nil, fmt.Errorf("%w: type %s has no base", ErrInvalid, ts.Name)
	}
	base, err := b.resolve(ts.Base)
	if err != nil {
		return nil, fmt.Errorf("type %s: %w", ts.Name, err)
	}
	if base.u == nil {
		return nil, fmt.Errorf("%w: type %s is based on record %s", ErrInvalid, ts.Name, ts.Base)
	}
	preds := make([]refined.Predicate[any], 0, len(ts.Rules))
	for _, rs := range ts.Rules {
		p, err := buildRule(base.prim, rs)
		if err != nil {
			return nil, fmt.Errorf("type %s: %w", ts.Name, err)
		}
		preds = append(preds, p)
	}

	var def *refined.Definition[any, any]
	switch ts.Kind {
	case "", refined.Opaque.String():
		def = refined.Newtype(ts.Name, base.u, identity, identity, preds...)
	case refined.Transparent.String():
		def = refined.Subtype(ts.Name, base.u, identity, identity, preds...)
	default:
		return nil, fmt.Errorf("%w: type %s has kind %q", ErrInvalid, ts.Name, ts.Kind)
	}
	if ts.Description != "" {
		def = def.WithDescription(ts.Description)
	}
	return &built{
		entry: &Entry{
			Name:        ts.Name,
			Kind:        def.Kind().String(),
			Description: ts.Description,
			Validator:   schema.Derive[any](def),
			Plain:       codec.Plain[any](def),
			Pickler:     pickle.Derive[any](def),
		},
		u:    def,
		prim: base.prim,
	}, nil
}

func (b *builder) buildRecord(rs *RecordDecl) (*built, error) {
	if len(rs.Fields) == 0 {
		return nil, fmt.Errorf("%w: record %s has no fields", ErrInvalid, rs.Name)
	}
	vfields := make([]schema.Field[Object], 0, len(rs.Fields))
	pfields := make([]pickle.Field[Object], 0, len(rs.Fields))
	seen := make(map[string]struct{}, len(rs.Fields))
	for _, fs := range rs.Fields {
		if fs.Name == "" {
			return nil, fmt.Errorf("%w: record %s has an unnamed field", ErrInvalid, rs.Name)
		}
		if _, dup := seen[fs.Name]; dup {
			return nil, fmt.Errorf("%w: record %s field %s", ErrDuplicate, rs.Name, fs.Name)
		}
		seen[fs.Name] = struct{}{}
		ft, err := b.resolve(fs.Type)
		if err != nil {
			return nil, fmt.Errorf("record %s field %s: %w", rs.Name, fs.Name, err)
		}
		name := fs.Name
		get := func(o Object) any { return o[name] }
		set := func(o *Object, v any) { (*o)[name] = v }
		vfields = append(vfields, schema.FieldOf[Object, any](name, get, presentValidator{ft.entry.Validator}))
		pfields = append(pfields, pickle.FieldOf[Object, any](name, get, set, ft.entry.Pickler))
	}

	rp := pickle.Record[Object](rs.Name, pfields...).WithInit(func() Object { return Object{} })
	if rs.Strict {
		rp = rp.UnknownStrict()
	}
	return &built{
		entry: &Entry{
			Name:        rs.Name,
			Kind:        KindRecord,
			Description: rs.Description,
			Validator:   recordValidator{r: schema.Record[Object](rs.Name, vfields...), desc: rs.Description},
			Pickler:     recordPickler{r: rp, desc: rs.Description},
		},
	}, nil
}

func identity(v any) any { return v }

func isPrimitive(name string) bool {
	switch name {
	case baseString, baseInt, baseFloat, baseBool, baseTime:
		return true
	}
	return false
}

func primitive(name string) refined.Underlying[any] {
	switch name {
	case baseString:
		return refined.Erase(refined.String())
	case baseInt:
		return refined.Erase(refined.Int())
	case baseFloat:
		return refined.Erase(refined.Float())
	case baseBool:
		return refined.Erase(refined.Bool())
	case baseTime:
		return refined.Erase(refined.Time())
	}
	return nil
}

func primitiveEntry(name string) *Entry {
	u := primitive(name)
	return &Entry{
		Name:      name,
		Kind:      KindPrimitive,
		Validator: schema.Derive[any](u),
		Plain:     codec.Plain[any](u),
		Pickler:   pickle.Derive[any](u),
	}
}
