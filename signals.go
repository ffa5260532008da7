package byteable

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signals for byteable events.
var (
	SignalLayoutCompiled = capitan.NewSignal("byteable.layout.compiled", "Layout plan compiled")
	SignalEnumRegistered = capitan.NewSignal("byteable.enum.registered", "Enum discriminant table registered")
	SignalEncodeComplete = capitan.NewSignal("byteable.encode.complete", "Value encoded to byte array")
	SignalDecodeComplete = capitan.NewSignal("byteable.decode.complete", "Byte array decoded to value")
)

// Keys for typed event data.
var (
	KeyTypeName     = capitan.NewStringKey("type_name")
	KeySize         = capitan.NewIntKey("size")
	KeyByteOrder    = capitan.NewStringKey("byte_order")
	KeyVariantCount = capitan.NewIntKey("variant_count")
	KeyInfallible   = capitan.NewStringKey("infallible")
	KeyDuration     = capitan.NewDurationKey("duration")
	KeyError        = capitan.NewErrorKey("error")
)

// emitLayoutCompiled emits an event when a layout plan is compiled.
func emitLayoutCompiled(ctx context.Context, typeName string, size int, infallible bool) {
	mode := "false"
	if infallible {
		mode = "true"
	}
	capitan.Emit(ctx, SignalLayoutCompiled,
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyInfallible.Field(mode),
	)
}

// emitEnumRegistered emits an event when an enum table is registered.
func emitEnumRegistered(ctx context.Context, typeName, order string, variants int) {
	capitan.Emit(ctx, SignalEnumRegistered,
		KeyTypeName.Field(typeName),
		KeyByteOrder.Field(order),
		KeyVariantCount.Field(variants),
	)
}

// emitEncodeComplete emits an event when a package-level encode finishes.
func emitEncodeComplete(ctx context.Context, typeName string, size int, duration time.Duration) {
	capitan.Emit(ctx, SignalEncodeComplete,
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	)
}

// emitDecodeComplete emits an event when a package-level decode finishes.
func emitDecodeComplete(ctx context.Context, typeName string, size int, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeySize.Field(size),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalDecodeComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalDecodeComplete, fields...)
	}
}
