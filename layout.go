package byteable

import (
	"context"
	"math"
	"reflect"
)

// Layout is the compiled byte-exact companion of type T: its wire size,
// field offsets, byte orders, and discriminant tables, resolved once at
// generation time. Obtain layouts through For, which caches them per type.
//
// A Layout is immutable and safe for concurrent use. Marshal and Unmarshal
// are pure: they consume their input, touch no shared state, and allocate
// nothing beyond the returned value and byte array.
type Layout[T any] struct {
	plan *typePlan
}

// compileLayout builds the layout for T. Called once per type by For.
func compileLayout[T any]() (*Layout[T], error) {
	plan, err := compilePlan[T]()
	if err != nil {
		return nil, err
	}
	emitLayoutCompiled(context.Background(), plan.typeName, plan.size, !plan.fallible)
	return &Layout[T]{plan: plan}, nil
}

// Size returns the exact wire width of T in bytes: the sum of the field
// widths with no padding. Zero for zero-field layouts.
func (l *Layout[T]) Size() int {
	return l.plan.size
}

// TypeName returns the layout's type name as used in error messages.
func (l *Layout[T]) TypeName() string {
	return l.plan.typeName
}

// Infallible reports whether Unmarshal can ever reject a correctly sized
// byte array. Layouts containing a discriminant-validated or opaque field
// are fallible; everything else decodes any byte pattern.
func (l *Layout[T]) Infallible() bool {
	return !l.plan.fallible
}

// NewByteArray returns a zeroed byte array of exactly Size bytes.
func (l *Layout[T]) NewByteArray() ByteArray {
	return NewByteArray(l.plan.size)
}

// Marshal converts a value into its byte array. Encoding is total: every
// value of T has a wire image, so there is no error path.
func (l *Layout[T]) Marshal(v T) ByteArray {
	ba := NewByteArray(l.plan.size)
	l.plan.encode(reflect.ValueOf(v), ba)
	return ba
}

// MarshalTo encodes a value into a caller-supplied byte array, which must
// be exactly Size bytes. The only failure is a SizeError; with a correctly
// sized buffer MarshalTo is total.
func (l *Layout[T]) MarshalTo(dst ByteArray, v T) error {
	if len(dst) != l.plan.size {
		return &SizeError{Type: l.plan.typeName, Want: l.plan.size, Got: len(dst)}
	}
	l.plan.encode(reflect.ValueOf(v), dst)
	return nil
}

// Unmarshal converts a byte array back into a value. The array must be
// exactly Size bytes. For fallible layouts the error is the nested
// conversion error verbatim, an EnumError for a rejected discriminant,
// never a defaulted value. For infallible layouts the error is always nil
// once the size check passes.
func (l *Layout[T]) Unmarshal(ba ByteArray) (T, error) {
	var v T
	if len(ba) != l.plan.size {
		return v, &SizeError{Type: l.plan.typeName, Want: l.plan.size, Got: len(ba)}
	}
	err := l.plan.decode(reflect.ValueOf(&v).Elem(), ba)
	return v, err
}

// MustUnmarshal is Unmarshal for layouts that report Infallible. It panics
// on error, which for an infallible layout can only mean a wrongly sized
// byte array, a collaborator bug rather than a data condition.
func (l *Layout[T]) MustUnmarshal(ba ByteArray) T {
	v, err := l.Unmarshal(ba)
	if err != nil {
		panic(err)
	}
	return v
}

// encode writes v's wire image into dst, which is exactly p.size bytes.
func (p *typePlan) encode(v reflect.Value, dst []byte) {
	switch p.kind {
	case planScalar:
		putBits(dst, valueBits(v, p.scalarKind), p.size, p.order)
	case planEndian:
		copy(dst, v.Interface().(endianValue).RawBytes())
	case planEnum:
		// Total projection: every declared variant value has a wire image.
		putBits(dst, discriminantBits(v)&widthMask(p.size), p.size, p.order)
	case planOverride:
		copy(dst, v.Interface().(ByteArrayMarshaler).MarshalByteArray())
	case planStruct:
		for i := range p.fields {
			f := &p.fields[i]
			f.plan.encode(v.FieldByIndex(f.index), dst[f.offset:f.offset+f.plan.size])
		}
	case planArray:
		for i := 0; i < p.count; i++ {
			p.elem.encode(v.Index(i), dst[i*p.elem.size:(i+1)*p.elem.size])
		}
	}
}

// decode fills the settable value v from src, which is exactly p.size
// bytes. Errors from nested plans propagate unchanged.
func (p *typePlan) decode(v reflect.Value, src []byte) error {
	switch p.kind {
	case planScalar:
		setValueBits(v, p.scalarKind, getBits(src, p.size, p.order))
	case planEndian:
		v.Addr().Interface().(endianSetter).setRaw(src[:p.size])
	case planEnum:
		bits := getBits(src, p.size, p.order)
		if err := p.enum.decode(bits); err != nil {
			return err
		}
		if p.enum.signed {
			v.SetInt(signExtend(bits, p.size))
		} else {
			v.SetUint(bits & widthMask(p.size))
		}
	case planOverride:
		return v.Addr().Interface().(ByteArrayUnmarshaler).UnmarshalByteArray(ByteArray(src[:p.size]))
	case planStruct:
		for i := range p.fields {
			f := &p.fields[i]
			if err := f.plan.decode(v.FieldByIndex(f.index), src[f.offset:f.offset+f.plan.size]); err != nil {
				return err
			}
		}
	case planArray:
		for i := 0; i < p.count; i++ {
			if err := p.elem.decode(v.Index(i), src[i*p.elem.size:(i+1)*p.elem.size]); err != nil {
				return err
			}
		}
	}
	return nil
}

// valueBits extracts a scalar's raw bit pattern via reflection.
func valueBits(v reflect.Value, kind reflect.Kind) uint64 {
	switch kind {
	case reflect.Float32:
		return uint64(math.Float32bits(float32(v.Float())))
	case reflect.Float64:
		return math.Float64bits(v.Float())
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return uint64(v.Int())
	default:
		return v.Uint()
	}
}

// setValueBits stores a raw bit pattern into a settable scalar value.
func setValueBits(v reflect.Value, kind reflect.Kind, bits uint64) {
	switch kind {
	case reflect.Float32:
		v.SetFloat(float64(math.Float32frombits(uint32(bits))))
	case reflect.Float64:
		v.SetFloat(math.Float64frombits(bits))
	case reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(signExtend(bits, kindWidth(kind)))
	default:
		v.SetUint(bits)
	}
}

// signExtend interprets the low width bytes of bits as a signed integer.
func signExtend(bits uint64, width int) int64 {
	shift := uint(64 - 8*width)
	return int64(bits<<shift) >> shift
}
