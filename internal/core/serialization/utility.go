package serialization

import (
	"context"
	"fmt"
	"reflect"
	"time"

	"github.com/zeusync/inspect/internal/core/observability/log"
	"github.com/zeusync/inspect/pkg/deepcopy"
)

// Clone returns a deep copy of original. Game objects and resources reachable
// from it are shared with the original rather than duplicated; cloning a game
// object or resource itself returns it unchanged.
func Clone(original any) (any, error) {
	return CloneContext(context.Background(), original)
}

// CloneContext is Clone with a context for the emitted signals.
func CloneContext(ctx context.Context, original any) (any, error) {
	if original == nil {
		return nil, fmt.Errorf("%w: cannot clone nil", ErrNilValue)
	}

	rv := reflect.ValueOf(original)
	typeName := rv.Type().String()
	emitCloneStart(ctx, typeName)
	start := time.Now()

	typ, err := DetermineFieldType(rv.Type())
	if err != nil {
		err = fmt.Errorf("%w: %v", ErrNotSerializable, err)
		emitCloneComplete(ctx, typeName, typ, time.Since(start), err)
		return nil, err
	}
	if rv.Kind() == reflect.Ptr && rv.IsNil() {
		err = fmt.Errorf("%w: cannot clone a nil %v", ErrNilValue, rv.Type())
		emitCloneComplete(ctx, typeName, typ, time.Since(start), err)
		return nil, err
	}

	out := cloneValue(rv).Interface()

	elapsed := time.Since(start)
	emitCloneComplete(ctx, typeName, typ, elapsed, nil)
	logger().Debug("clone finished",
		log.String("type", typeName),
		log.String("field_type", typ.String()),
		log.Duration("duration", elapsed),
	)
	return out, nil
}

// Create returns a default instance of rt: a pointer to a new zero struct for
// pointer types, an empty slice or map for containers and the zero value for
// everything else.
func Create(rt reflect.Type) (any, error) {
	typ, err := DetermineFieldType(rt)
	if err != nil {
		return nil, err
	}
	return newInstance(rt, typ).Interface(), nil
}

func newInstance(rt reflect.Type, typ FieldType) reflect.Value {
	if typ.IsReference() {
		return reflect.Zero(rt)
	}
	switch rt.Kind() {
	case reflect.Ptr:
		return reflect.New(rt.Elem())
	case reflect.Slice:
		return reflect.MakeSlice(rt, 0, 0)
	case reflect.Map:
		return reflect.MakeMap(rt)
	default:
		return reflect.New(rt).Elem()
	}
}

// cloneValue deep copies v. Game objects and resources are never duplicated,
// not even when v is one.
func cloneValue(v reflect.Value) reflect.Value {
	if !v.IsValid() || isReferenceType(v.Type()) {
		return v
	}
	return deepcopy.Value(v, deepcopy.WithShared(isReferenceType))
}

func isReferenceType(rt reflect.Type) bool {
	return rt.Implements(gameObjectType) || rt.Implements(resourceType)
}
