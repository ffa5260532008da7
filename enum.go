package byteable

import (
	"context"
	"encoding/binary"
	"fmt"
	"reflect"
)

// Integer is the set of integer kinds usable as an enum backing. Named
// types are included (~): a Go enum is a named integer type with a closed
// constant set.
type Integer interface {
	~uint8 | ~uint16 | ~uint32 | ~uint64 |
		~int8 | ~int16 | ~int32 | ~int64
}

// Discriminant is an enum discriminant value tagged with its concrete
// integer width and signedness. The tag prevents lossy normalization in
// error messages: a rejected int16 renders as "-2 (int16)", never as a
// widened untyped number.
type Discriminant struct {
	kind reflect.Kind
	bits uint64 // two's complement bits, truncated to the kind's width
}

// DiscriminantOf returns the width/signedness-tagged discriminant of v.
func DiscriminantOf[E Integer](v E) Discriminant {
	rv := reflect.ValueOf(v)
	return newDiscriminant(rv.Kind(), discriminantBits(rv))
}

func newDiscriminant(kind reflect.Kind, bits uint64) Discriminant {
	return Discriminant{kind: kind, bits: bits & widthMask(kindWidth(kind))}
}

// Kind returns the discriminant's integer kind (reflect.Uint8, ...).
func (d Discriminant) Kind() reflect.Kind {
	return d.kind
}

// Bits returns the discriminant's raw two's complement bit pattern,
// truncated to the kind's width.
func (d Discriminant) Bits() uint64 {
	return d.bits
}

func (d Discriminant) String() string {
	width := kindWidth(d.kind)
	switch d.kind {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		shift := uint(64 - 8*width)
		return fmt.Sprintf("%d (%s)", int64(d.bits<<shift)>>shift, d.kind)
	default:
		return fmt.Sprintf("%d (%s)", d.bits, d.kind)
	}
}

// kindWidth returns the byte width of an integer kind, or 0 for non-integer
// kinds.
func kindWidth(kind reflect.Kind) int {
	switch kind {
	case reflect.Uint8, reflect.Int8:
		return 1
	case reflect.Uint16, reflect.Int16:
		return 2
	case reflect.Uint32, reflect.Int32:
		return 4
	case reflect.Uint64, reflect.Int64:
		return 8
	default:
		return 0
	}
}

// widthMask returns the bit mask covering width bytes.
func widthMask(width int) uint64 {
	if width >= 8 {
		return ^uint64(0)
	}
	return (uint64(1) << (8 * uint(width))) - 1
}

// kindSigned reports whether the kind is a signed integer kind.
func kindSigned(kind reflect.Kind) bool {
	switch kind {
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	default:
		return false
	}
}

// discriminantBits extracts a value's two's complement bits via reflection.
func discriminantBits(rv reflect.Value) uint64 {
	if kindSigned(rv.Kind()) {
		return uint64(rv.Int())
	}
	return rv.Uint()
}

// enumTable is a compiled discriminant table: the finite injective mapping
// from declared discriminant values to variants, plus the wire order of the
// backing integer. Immutable after registration.
type enumTable struct {
	typeName string
	rt       reflect.Type
	kind     reflect.Kind
	width    int
	signed   bool
	orderTag ByteOrder
	order    binary.ByteOrder
	variants map[uint64]struct{}
}

// decode validates a wire bit pattern against the declared variants.
// The table is the source of truth: even if every pattern of the backing
// width happened to be declared, decode stays on the fallible path.
func (t *enumTable) decode(bits uint64) error {
	if _, ok := t.variants[bits&widthMask(t.width)]; !ok {
		return &EnumError{
			Type:         t.typeName,
			Discriminant: newDiscriminant(t.kind, bits),
		}
	}
	return nil
}

// enumOptions holds registration options.
type enumOptions struct {
	order    ByteOrder
	orderSet bool
}

// EnumOption configures an enum registration.
type EnumOption func(*enumOptions)

// WithByteOrder declares the wire byte order of the enum's backing integer.
// Mandatory for multi-byte backings; ignored for one-byte backings, where
// order has no meaning.
func WithByteOrder(order ByteOrder) EnumOption {
	return func(o *enumOptions) {
		o.order = order
		o.orderSet = true
	}
}

// RegisterEnum declares the variant set of enum type E. Each element of
// variants is one declared discriminant; the set must be non-empty and
// free of duplicates, and multi-byte backings must carry WithByteOrder.
//
// Registration is the generation-time half of the discriminant codec:
// every defect is rejected here, so a field of a registered enum type can
// only ever fail at decode, and only with an EnumError. Registering the
// same type twice is an error; use Reset in tests that re-register.
//
//	type Status uint8
//	const (
//	    StatusIdle    Status = 0
//	    StatusRunning Status = 1
//	)
//	byteable.MustRegisterEnum([]Status{StatusIdle, StatusRunning})
func RegisterEnum[E Integer](variants []E, opts ...EnumOption) error {
	var cfg enumOptions
	for _, opt := range opts {
		opt(&cfg)
	}

	rt := reflect.TypeFor[E]()
	typeName := typeNameOf(rt)
	kind := rt.Kind()
	width := kindWidth(kind)

	if len(variants) == 0 {
		return newSchemaError(ErrNoVariants, typeName, "", "")
	}
	if cfg.orderSet && !IsValidByteOrder(cfg.order) {
		return newSchemaError(ErrUnknownTag, typeName, "", fmt.Sprintf("byte order %q", string(cfg.order)))
	}
	if width > 1 && !cfg.orderSet {
		return newSchemaError(ErrMissingByteOrder, typeName, "",
			fmt.Sprintf("%d-byte backing requires an explicit byte order", width))
	}
	if width == 1 {
		// Order is meaningless for a single byte; normalize it away.
		cfg.order = OrderNative
	}

	table := &enumTable{
		typeName: typeName,
		rt:       rt,
		kind:     kind,
		width:    width,
		signed:   kindSigned(kind),
		orderTag: cfg.order,
		order:    cfg.order.binaryOrder(),
		variants: make(map[uint64]struct{}, len(variants)),
	}

	mask := widthMask(width)
	for _, v := range variants {
		bits := discriminantBits(reflect.ValueOf(v)) & mask
		if _, dup := table.variants[bits]; dup {
			return newSchemaError(ErrDuplicateDiscriminant, typeName, "",
				DiscriminantOf(v).String())
		}
		table.variants[bits] = struct{}{}
	}

	if err := storeEnum(rt, table); err != nil {
		return err
	}

	emitEnumRegistered(context.Background(), typeName, string(cfg.order), len(variants))
	return nil
}

// MustRegisterEnum is RegisterEnum that panics on registration errors.
// Intended for package init, where a schema defect should stop the program.
func MustRegisterEnum[E Integer](variants []E, opts ...EnumOption) {
	if err := RegisterEnum(variants, opts...); err != nil {
		panic(err)
	}
}

// typeNameOf renders a type name for error messages and signals.
func typeNameOf(rt reflect.Type) string {
	if name := rt.Name(); name != "" {
		return name
	}
	return rt.String()
}
