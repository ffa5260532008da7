package byteable

import (
	"encoding/binary"
	"fmt"
	"reflect"

	"github.com/zoobzio/sentinel"
)

func init() {
	// Register the byteable tag with sentinel
	sentinel.Tag("byteable")
}

// planKind discriminates the compiled representation of a type.
type planKind uint8

const (
	planScalar   planKind = iota // fixed-width number written in plan order
	planEndian                   // endian wrapper: raw byte copy of stored order
	planStruct                   // ordered fields at fixed offsets
	planArray                    // count contiguous elements
	planEnum                     // backing integer validated against a discriminant table
	planOverride                 // type-supplied ByteArrayMarshaler/Unmarshaler
)

// typePlan is the compiled layout of one type: the byte-exact companion of
// the user type, produced once at generation time and immutable afterward.
// Size is the exact wire width with no padding; fallible reports whether any
// reachable field decodes through a discriminant table or an opaque
// unmarshaler; wireSafe reports whether every byte pattern of the wire image
// is a valid value.
type typePlan struct {
	rt       reflect.Type
	typeName string
	kind     planKind
	size     int
	fallible bool
	wireSafe bool

	// planScalar, planEnum
	scalarKind reflect.Kind
	order      binary.ByteOrder

	// planEnum
	enum *enumTable

	// planArray
	elem  *typePlan
	count int

	// planStruct
	fields []structField
}

// structField binds a compiled field plan to its position in the parent.
type structField struct {
	name   string
	index  []int
	offset int
	plan   *typePlan
}

var (
	endianValueType  = reflect.TypeOf((*endianValue)(nil)).Elem()
	endianSetterType = reflect.TypeOf((*endianSetter)(nil)).Elem()
	marshalerType    = reflect.TypeOf((*ByteArrayMarshaler)(nil)).Elem()
	unmarshalerType  = reflect.TypeOf((*ByteArrayUnmarshaler)(nil)).Elem()
	wireSafeType     = reflect.TypeOf((*WireSafe)(nil)).Elem()
)

// compilePlan compiles the layout plan for type T.
func compilePlan[T any]() (*typePlan, error) {
	rt := reflect.TypeFor[T]()

	if p, ok, err := compileSpecial(rt); ok {
		return p, err
	}

	if rt.Kind() == reflect.Struct {
		meta := sentinel.Scan[T]()
		return compileStructMeta(rt, &meta)
	}

	return compileRoot(rt)
}

// compileSpecial handles the type shapes recognized by identity rather than
// kind: registered enums, endian wrappers, and override-implementing types.
func compileSpecial(rt reflect.Type) (*typePlan, bool, error) {
	if table, ok := lookupEnum(rt); ok {
		return enumPlan(rt, table), true, nil
	}
	if p := endianWrapperPlan(rt); p != nil {
		return p, true, nil
	}
	if p, err := overridePlan(rt); p != nil || err != nil {
		return p, true, err
	}
	return nil, false, nil
}

// compileRoot compiles a type in top-level position: primitives convert via
// their native byte representation, so portability at the top level is the
// caller's explicit decision, same as for struct fields.
func compileRoot(rt reflect.Type) (*typePlan, error) {
	if p, ok, err := compileSpecial(rt); ok {
		return p, err
	}

	switch rt.Kind() {
	case reflect.Uint8, reflect.Int8, reflect.Uint16, reflect.Int16,
		reflect.Uint32, reflect.Int32, reflect.Uint64, reflect.Int64,
		reflect.Float32, reflect.Float64:
		return scalarPlan(rt, OrderNative), nil
	case reflect.Array:
		elem, err := compileRoot(rt.Elem())
		if err != nil {
			return nil, err
		}
		return arrayPlan(rt, elem), nil
	case reflect.Struct:
		return compileStructMeta(rt, scanNestedType(rt))
	default:
		return nil, newSchemaError(ErrUnsupportedType, typeNameOf(rt), "", rt.Kind().String())
	}
}

// compileStructMeta compiles a struct layout from its scanned metadata.
// Offsets accumulate in declared field order with no padding; the struct is
// fallible if any field is, and wire-safe only if every field is.
func compileStructMeta(rt reflect.Type, meta *sentinel.Metadata) (*typePlan, error) {
	typeName := typeNameOf(rt)

	for i := 0; i < rt.NumField(); i++ {
		if !rt.Field(i).IsExported() {
			return nil, newSchemaError(ErrUnexportedField, typeName, rt.Field(i).Name, "")
		}
	}

	p := &typePlan{
		rt:       rt,
		typeName: typeName,
		kind:     planStruct,
		wireSafe: true,
		fields:   make([]structField, 0, len(meta.Fields)),
	}

	for _, field := range meta.Fields {
		tag := FieldTag(field.Tags["byteable"])
		fp, err := compileField(typeName, field.Name, field.ReflectType, tag)
		if err != nil {
			return nil, err
		}
		p.fields = append(p.fields, structField{
			name:   field.Name,
			index:  field.Index,
			offset: p.size,
			plan:   fp,
		})
		p.size += fp.size
		p.fallible = p.fallible || fp.fallible
		p.wireSafe = p.wireSafe && fp.wireSafe
	}

	return p, nil
}

// compileField compiles one schema entry: a field type plus its tag.
func compileField(typeName, fieldName string, ft reflect.Type, tag FieldTag) (*typePlan, error) {
	if !IsValidFieldTag(tag) {
		return nil, newSchemaError(ErrUnknownTag, typeName, fieldName, fmt.Sprintf("keyword %q", string(tag)))
	}

	switch tag {
	case TagLittleEndian, TagBigEndian:
		return compileOrderedField(typeName, fieldName, ft, tag)
	case TagTransparent:
		return compileTransparentField(typeName, fieldName, ft)
	case TagTryTransparent:
		return compileTryField(typeName, fieldName, ft)
	default:
		return compilePlainField(typeName, fieldName, ft)
	}
}

// compileOrderedField handles little_endian/big_endian tags: the field stays
// a plain scalar in the user struct and the plan carries the wire order.
func compileOrderedField(typeName, fieldName string, ft reflect.Type, tag FieldTag) (*typePlan, error) {
	if ft.Implements(endianValueType) {
		return nil, newSchemaError(ErrUnsupportedType, typeName, fieldName,
			"endian wrapper fields already carry an order")
	}
	if scalarKindWidth(ft.Kind()) == 0 {
		return nil, newSchemaError(ErrUnsupportedType, typeName, fieldName,
			fmt.Sprintf("%s tag requires a fixed-width numeric field, got %s", string(tag), ft.Kind()))
	}
	if _, ok := lookupEnum(ft); ok {
		return nil, newSchemaError(ErrFallibleField, typeName, fieldName, "")
	}

	order := OrderLittleEndian
	if tag == TagBigEndian {
		order = OrderBigEndian
	}
	return scalarPlan(ft, order), nil
}

// compileTransparentField delegates to the nested type's own layout. The
// nested layout must be infallible: transparency promises that decoding the
// parent cannot fail on this field.
func compileTransparentField(typeName, fieldName string, ft reflect.Type) (*typePlan, error) {
	child, err := compileRoot(ft)
	if err != nil {
		return nil, err
	}
	if child.fallible {
		return nil, newSchemaError(ErrFallibleField, typeName, fieldName, "")
	}
	switch child.kind {
	case planStruct, planArray, planOverride, planEndian:
		return child, nil
	default:
		return nil, newSchemaError(ErrUnsupportedType, typeName, fieldName,
			"transparent requires a nested layout, wrapper, or marshaler type")
	}
}

// compileTryField delegates to the nested type's fallible layout. This is
// the one path by which a struct containing an enum becomes itself fallibly
// convertible; the nested error propagates verbatim.
func compileTryField(typeName, fieldName string, ft reflect.Type) (*typePlan, error) {
	if table, ok := lookupEnum(ft); ok {
		return enumPlan(ft, table), nil
	}
	if kindWidth(ft.Kind()) != 0 {
		// An integer type under try_transparent must have a declared
		// discriminant table; decoding it unvalidated would defeat the tag.
		return nil, newSchemaError(ErrUnknownEnum, typeName, fieldName, typeNameOf(ft))
	}
	child, err := compileRoot(ft)
	if err != nil {
		return nil, err
	}
	switch child.kind {
	case planStruct, planArray, planOverride, planEnum:
		return child, nil
	default:
		return nil, newSchemaError(ErrUnsupportedType, typeName, fieldName,
			"try_transparent requires an enum, nested layout, or marshaler type")
	}
}

// compilePlainField handles untagged fields. Only types whose wire form is
// already unambiguous pass: byte-sized integers, endian wrappers, wire-safe
// marshaler types, and fixed-size arrays of those. Multi-byte scalars are
// rejected so that byte order is a visible decision at every field.
func compilePlainField(typeName, fieldName string, ft reflect.Type) (*typePlan, error) {
	if _, ok := lookupEnum(ft); ok {
		return nil, newSchemaError(ErrFallibleField, typeName, fieldName, "")
	}
	if p := endianWrapperPlan(ft); p != nil {
		return p, nil
	}
	if p, err := overridePlan(ft); p != nil || err != nil {
		if err != nil {
			return nil, err
		}
		if !p.wireSafe {
			return nil, newSchemaError(ErrFallibleField, typeName, fieldName,
				fmt.Sprintf("%s does not assert WireSafe", typeNameOf(ft)))
		}
		return p, nil
	}

	switch ft.Kind() {
	case reflect.Uint8, reflect.Int8:
		return scalarPlan(ft, OrderNative), nil
	case reflect.Uint16, reflect.Int16, reflect.Uint32, reflect.Int32,
		reflect.Uint64, reflect.Int64, reflect.Float32, reflect.Float64:
		return nil, newSchemaError(ErrMissingEndianness, typeName, fieldName,
			fmt.Sprintf("%s field needs a little_endian/big_endian tag or an endian wrapper", ft.Kind()))
	case reflect.Array:
		elem, err := compileField(typeName, fieldName, ft.Elem(), TagNone)
		if err != nil {
			return nil, err
		}
		return arrayPlan(ft, elem), nil
	case reflect.Struct:
		return nil, newSchemaError(ErrUnsupportedType, typeName, fieldName,
			"nested struct requires transparent or try_transparent")
	case reflect.Bool:
		return nil, newSchemaError(ErrUnsupportedType, typeName, fieldName,
			"bool has byte patterns with no valid value")
	default:
		return nil, newSchemaError(ErrUnsupportedType, typeName, fieldName, ft.Kind().String())
	}
}

// scalarPlan builds the plan for a fixed-width number in the given order.
func scalarPlan(rt reflect.Type, order ByteOrder) *typePlan {
	return &typePlan{
		rt:         rt,
		typeName:   typeNameOf(rt),
		kind:       planScalar,
		size:       scalarKindWidth(rt.Kind()),
		scalarKind: rt.Kind(),
		order:      order.binaryOrder(),
		wireSafe:   true,
	}
}

// enumPlan builds the plan for a registered enum's backing integer.
// Decode is necessarily fallible: the table is the declared source of
// truth even when its entries happen to cover the whole backing range.
func enumPlan(rt reflect.Type, table *enumTable) *typePlan {
	return &typePlan{
		rt:         rt,
		typeName:   table.typeName,
		kind:       planEnum,
		size:       table.width,
		scalarKind: table.kind,
		order:      table.order,
		enum:       table,
		fallible:   true,
	}
}

// arrayPlan builds the plan for a fixed-size array: count contiguous
// elements, converted as a unit.
func arrayPlan(rt reflect.Type, elem *typePlan) *typePlan {
	count := rt.Len()
	return &typePlan{
		rt:       rt,
		typeName: typeNameOf(rt),
		kind:     planArray,
		size:     count * elem.size,
		elem:     elem,
		count:    count,
		fallible: elem.fallible,
		wireSafe: elem.wireSafe,
	}
}

// endianWrapperPlan recognizes BigEndian/LittleEndian fields. The setter
// interface is unexported, so no type outside this package can pose as a
// wrapper.
func endianWrapperPlan(rt reflect.Type) *typePlan {
	if !rt.Implements(endianValueType) || !reflect.PointerTo(rt).Implements(endianSetterType) {
		return nil
	}
	width := reflect.New(rt).Elem().Interface().(endianValue).ByteSize()
	return &typePlan{
		rt:       rt,
		typeName: typeNameOf(rt),
		kind:     planEndian,
		size:     width,
		wireSafe: true,
	}
}

// overridePlan recognizes types that supply their own fixed-size encoding
// via the override interfaces. Such a type is wire-safe only if it says so.
func overridePlan(rt reflect.Type) (*typePlan, error) {
	if rt.Implements(endianValueType) {
		return nil, nil
	}
	hasMarshal := rt.Implements(marshalerType)
	hasUnmarshal := reflect.PointerTo(rt).Implements(unmarshalerType)
	if !hasMarshal && !hasUnmarshal {
		return nil, nil
	}
	if !hasMarshal || !hasUnmarshal {
		return nil, newSchemaError(ErrUnsupportedType, typeNameOf(rt), "",
			"marshaler types must implement both ByteArrayMarshaler and ByteArrayUnmarshaler")
	}

	size := reflect.New(rt).Elem().Interface().(ByteArrayMarshaler).ByteSize()
	wireSafe := rt.Implements(wireSafeType)
	return &typePlan{
		rt:       rt,
		typeName: typeNameOf(rt),
		kind:     planOverride,
		size:     size,
		fallible: !wireSafe,
		wireSafe: wireSafe,
	}, nil
}

// scanNestedType scans a nested struct type and returns its metadata.
func scanNestedType(rt reflect.Type) *sentinel.Metadata {
	if spec, ok := sentinel.Lookup(rt.String()); ok {
		return &spec
	}

	spec := sentinel.Metadata{
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
			Tags:        parseByteableTag(sf.Tag),
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

		spec.Fields = append(spec.Fields, fm)
	}

	return &spec
}

// parseByteableTag extracts the byteable tag from a struct tag.
func parseByteableTag(tag reflect.StructTag) map[string]string {
	tags := make(map[string]string)
	if val, ok := tag.Lookup("byteable"); ok {
		tags["byteable"] = val
	}
	return tags
}

// scalarKindWidth returns the wire width of a fixed-width numeric kind,
// or 0 for every other kind.
func scalarKindWidth(kind reflect.Kind) int {
	if w := kindWidth(kind); w != 0 {
		return w
	}
	switch kind {
	case reflect.Float32:
		return 4
	case reflect.Float64:
		return 8
	default:
		return 0
	}
}
