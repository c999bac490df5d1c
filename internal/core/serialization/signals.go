package serialization

import (
	"context"
	"time"

	"github.com/zoobzio/capitan"
)

// Signal definitions for serialization lifecycle events.
var (
	SignalLayoutScanned = capitan.NewSignal("serialization.layout.scanned", "Struct layout scanned")
	SignalCloneStart    = capitan.NewSignal("serialization.clone.start", "Clone operation beginning")
	SignalCloneComplete = capitan.NewSignal("serialization.clone.complete", "Clone operation finished")
)

// Keys for typed event data.
var (
	KeyTypeName   = capitan.NewStringKey("type_name")
	KeyFieldType  = capitan.NewStringKey("field_type")
	KeyFieldCount = capitan.NewIntKey("field_count")
	KeyDuration   = capitan.NewDurationKey("duration")
	KeyError      = capitan.NewErrorKey("error")
)

func emitLayoutScanned(ctx context.Context, typeName string, fields int) {
	capitan.Emit(ctx, SignalLayoutScanned,
		KeyTypeName.Field(typeName),
		KeyFieldCount.Field(fields),
	)
}

func emitCloneStart(ctx context.Context, typeName string) {
	capitan.Emit(ctx, SignalCloneStart,
		KeyTypeName.Field(typeName),
	)
}

func emitCloneComplete(ctx context.Context, typeName string, typ FieldType, duration time.Duration, err error) {
	fields := []capitan.Field{
		KeyTypeName.Field(typeName),
		KeyFieldType.Field(typ.String()),
		KeyDuration.Field(duration),
	}
	if err != nil {
		fields = append(fields, KeyError.Field(err))
		capitan.Error(ctx, SignalCloneComplete, fields...)
	} else {
		capitan.Emit(ctx, SignalCloneComplete, fields...)
	}
}
