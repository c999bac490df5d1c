package serialization

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"sync"

	"github.com/zoobzio/sentinel"
	"golang.org/x/sync/singleflight"

	"github.com/zeusync/inspect/internal/core/observability/log"
)

const tagName = "inspect"

func init() {
	sentinel.Tag(tagName)
}

type fieldLayout struct {
	name     string
	flags    Flags
	typ      FieldType
	internal reflect.Type
	index    []int
}

type layout struct {
	typ    reflect.Type
	fields []fieldLayout
}

var (
	layouts     sync.Map // reflect.Type -> *layout
	layoutGroup singleflight.Group
)

// Register scans T ahead of first use. Objects over *T then start from the
// cached layout. T must be a struct type.
func Register[T any]() error {
	rt := reflect.TypeFor[T]()
	if rt.Kind() != reflect.Struct {
		return fmt.Errorf("%w: %v is not a struct", ErrInvalidInstance, rt)
	}
	meta := sentinel.Scan[T]()
	if !describes(meta, rt) {
		meta = describe(rt)
	}
	l, err := scanLayout(rt, meta)
	if err != nil {
		return err
	}
	layouts.Store(rt, l)
	return nil
}

// layoutOf returns the field layout of the struct type rt, scanning it once.
func layoutOf(rt reflect.Type) (*layout, error) {
	if cached, ok := layouts.Load(rt); ok {
		return cached.(*layout), nil
	}

	v, err, _ := layoutGroup.Do(fmt.Sprintf("%p", rt), func() (any, error) {
		if cached, ok := layouts.Load(rt); ok {
			return cached, nil
		}
		l, err := scanLayout(rt, describe(rt))
		if err != nil {
			return nil, err
		}
		layouts.Store(rt, l)
		return l, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*layout), nil
}

// describes reports whether meta was extracted from rt. Sentinel caches by
// bare type name, so same-named types of other packages share an entry.
func describes(meta sentinel.Metadata, rt reflect.Type) bool {
	return meta.TypeName == rt.Name() && meta.PackageName == rt.PkgPath()
}

// describe returns sentinel metadata for rt, building it from reflection when
// the type was never scanned through sentinel.
func describe(rt reflect.Type) sentinel.Metadata {
	if meta, ok := sentinel.Lookup(rt.Name()); ok && describes(meta, rt) {
		return meta
	}

	meta := sentinel.Metadata{
		TypeName:    rt.Name(),
		PackageName: rt.PkgPath(),
		Fields:      make([]sentinel.FieldMetadata, 0, rt.NumField()),
	}
	for i := 0; i < rt.NumField(); i++ {
		sf := rt.Field(i)
		if !sf.IsExported() {
			continue
		}

		fm := sentinel.FieldMetadata{
			Name:        sf.Name,
			Type:        sf.Type.String(),
			ReflectType: sf.Type,
			Index:       sf.Index,
			Tags:        map[string]string{},
		}
		if tag, ok := sf.Tag.Lookup(tagName); ok {
			fm.Tags[tagName] = tag
		}

		switch sf.Type.Kind() {
		case reflect.Struct:
			fm.Kind = sentinel.KindStruct
		case reflect.Ptr:
			fm.Kind = sentinel.KindPointer
		case reflect.Slice, reflect.Array:
			fm.Kind = sentinel.KindSlice
		case reflect.Map:
			fm.Kind = sentinel.KindMap
		case reflect.Interface:
			fm.Kind = sentinel.KindInterface
		default:
			fm.Kind = sentinel.KindScalar
		}
		meta.Fields = append(meta.Fields, fm)
	}
	return meta
}

func scanLayout(rt reflect.Type, meta sentinel.Metadata) (*layout, error) {
	l := &layout{typ: rt, fields: make([]fieldLayout, 0, len(meta.Fields))}

	for _, fm := range meta.Fields {
		sf, ok := rt.FieldByName(fm.Name)
		if !ok || len(sf.Index) != 1 || !sf.IsExported() {
			continue
		}

		tag, ok := fm.Tags[tagName]
		if !ok {
			tag = sf.Tag.Get(tagName)
		}
		name, flags, skip := parseTag(sf.Name, tag)
		if skip {
			continue
		}

		typ, err := DetermineFieldType(sf.Type)
		if err != nil {
			return nil, fmt.Errorf("field %s.%s: %w", rt.Name(), sf.Name, err)
		}
		l.fields = append(l.fields, fieldLayout{
			name:     name,
			flags:    flags,
			typ:      typ,
			internal: sf.Type,
			index:    sf.Index,
		})
	}

	slices.SortFunc(l.fields, func(a, b fieldLayout) int {
		return a.index[0] - b.index[0]
	})

	emitLayoutScanned(context.Background(), rt.String(), len(l.fields))
	logger().Debug("layout scanned",
		log.String("type", rt.String()),
		log.Int("fields", len(l.fields)),
	)
	return l, nil
}

// parseTag reads `inspect:"name,hidden,transient"`. A field with neither
// flag left is skipped, as is one tagged "-".
func parseTag(fieldName, tag string) (name string, flags Flags, skip bool) {
	if tag == "-" {
		return "", 0, true
	}

	name = fieldName
	flags = FlagSerializable | FlagInspectable

	parts := strings.Split(tag, ",")
	if parts[0] != "" {
		name = parts[0]
	}
	for _, opt := range parts[1:] {
		switch strings.TrimSpace(opt) {
		case "hidden":
			flags &^= FlagInspectable
		case "transient":
			flags &^= FlagSerializable
		}
	}
	return name, flags, flags == 0
}
