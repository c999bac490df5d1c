package inspector

import (
	"context"
	"fmt"
	"reflect"

	"github.com/pkg/errors"

	"github.com/zeusync/inspect/internal/core/models"
	"github.com/zeusync/inspect/internal/core/observability/log"
	"github.com/zeusync/inspect/internal/core/serialization"
	"github.com/zeusync/inspect/pkg/concurrent"
	"github.com/zeusync/inspect/pkg/generic"
	"github.com/zeusync/inspect/pkg/sequence"
)

// Inspector turns live object graphs into Node trees. It only reads the
// graph; an Inspector may be shared between goroutines.
type Inspector struct {
	cfg     Config
	log     log.Log
	walkers *generic.Pool[*walker]
}

func New(cfg Config, logger log.Log) *Inspector {
	i := &Inspector{
		cfg: cfg,
		log: logger.With(log.String("component", "inspector")),
	}
	i.walkers = generic.NewResetPool(
		func() *walker {
			return &walker{ancestors: make(map[serialization.Identity]struct{})}
		},
		func(w *walker) {
			clear(w.ancestors)
			w.nodes = 0
		},
	)
	return i
}

// Config returns the configuration the inspector was built with.
func (i *Inspector) Config() Config {
	return i.cfg
}

// Inspect builds the tree for instance, a non-nil pointer to a struct.
func (i *Inspector) Inspect(instance any) (*Node, error) {
	obj, err := serialization.NewObject(instance)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to inspect %T", instance)
	}
	return i.Walk(obj), nil
}

// InspectAll inspects several roots concurrently. Results keep input order.
func (i *Inspector) InspectAll(ctx context.Context, instances ...any) ([]*Node, error) {
	return concurrent.Map(ctx, sequence.From(instances), i.cfg.Workers,
		func(ctx context.Context, instance any) (*Node, error) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			return i.Inspect(instance)
		})
}

// Walk builds the tree for an existing object view.
func (i *Inspector) Walk(obj *serialization.Object) *Node {
	w := i.walkers.Get()
	defer i.walkers.Put(w)

	w.cfg = i.cfg
	w.log = i.log
	root := w.object(obj.Type().String(), obj, 0)

	i.log.Debug("object inspected",
		log.String("type", obj.Type().String()),
		log.String("object_id", obj.ID().String()),
		log.Int("nodes", w.nodes),
		log.Bool("include_hidden", i.cfg.IncludeHidden),
		log.Bool("expand_references", i.cfg.ExpandReferences),
	)
	return root
}

type walker struct {
	cfg       Config
	log       log.Log
	ancestors map[serialization.Identity]struct{}
	nodes     int
}

func (w *walker) newNode(name string, typ serialization.FieldType, path serialization.Path) *Node {
	w.nodes++
	return &Node{Name: name, Type: typ.String(), Path: path.String()}
}

func (w *walker) truncated(depth int) bool {
	return w.cfg.MaxDepth > 0 && depth >= w.cfg.MaxDepth
}

func (w *walker) object(name string, obj *serialization.Object, depth int) *Node {
	node := w.newNode(name, serialization.TypeObject, obj.Path())

	if isNil(obj.ReferencedObject()) {
		node.Null = true
		return node
	}

	if id, ok := obj.Identity(); ok {
		if _, seen := w.ancestors[id]; seen {
			node.Cycle = true
			return node
		}
		w.ancestors[id] = struct{}{}
		defer delete(w.ancestors, id)
	}

	if w.truncated(depth) {
		node.Truncated = true
		return node
	}

	visible := sequence.From(obj.Fields()).Filter(func(f *serialization.Field) bool {
		return f.Inspectable() || w.cfg.IncludeHidden
	})
	for f := range visible.Seq() {
		child := w.property(f.Name(), f.Property(), depth+1)
		child.Hidden = !f.Inspectable()
		child.Transient = !f.Serializable()
		node.Children = append(node.Children, child)
	}
	return node
}

func (w *walker) property(name string, p *serialization.Property, depth int) *Node {
	switch p.Type() {
	case serialization.TypeObject:
		obj, err := p.GetObject()
		if err != nil {
			return w.failed(name, p, err)
		}
		return w.object(name, obj, depth)

	case serialization.TypeArray:
		a, err := p.GetArray()
		if err != nil {
			return w.failed(name, p, err)
		}
		node := w.newNode(name, p.Type(), p.Path())
		node.Length = a.GetLength()
		if w.truncated(depth) {
			node.Truncated = true
			return node
		}
		for idx := 0; idx < a.GetLength(); idx++ {
			node.Children = append(node.Children, w.property(fmt.Sprintf("[%d]", idx), a.GetProperty(idx), depth+1))
		}
		return node

	case serialization.TypeList:
		l, err := p.GetList()
		if err != nil {
			return w.failed(name, p, err)
		}
		node := w.newNode(name, p.Type(), p.Path())
		node.Length = l.GetLength()
		if w.truncated(depth) {
			node.Truncated = true
			return node
		}
		for idx := 0; idx < l.GetLength(); idx++ {
			node.Children = append(node.Children, w.property(fmt.Sprintf("[%d]", idx), l.GetProperty(idx), depth+1))
		}
		return node

	case serialization.TypeDictionary:
		d, err := p.GetDictionary()
		if err != nil {
			return w.failed(name, p, err)
		}
		node := w.newNode(name, p.Type(), p.Path())
		node.Length = d.GetLength()
		if w.truncated(depth) {
			node.Truncated = true
			return node
		}
		for _, key := range d.Keys() {
			_, value := d.GetProperty(key)
			if value == nil {
				continue
			}
			node.Children = append(node.Children, w.property(fmt.Sprint(key), value, depth+1))
		}
		return node

	case serialization.TypeGameObjectRef, serialization.TypeResourceRef:
		return w.reference(name, p, depth)
	}

	node := w.newNode(name, p.Type(), p.Path())
	v, err := serialization.GetValue[any](p)
	if err != nil {
		return w.failed(name, p, err)
	}
	node.Value = v
	return node
}

func (w *walker) reference(name string, p *serialization.Property, depth int) *Node {
	node := w.newNode(name, p.Type(), p.Path())
	v, err := serialization.GetValue[any](p)
	if err != nil {
		return w.failed(name, p, err)
	}
	if isNil(v) {
		node.Null = true
		return node
	}
	node.Value = describeReference(v)

	if !w.cfg.ExpandReferences {
		return node
	}
	obj, err := serialization.NewObject(v)
	if err != nil {
		// references that are not struct pointers stay summarized
		return node
	}
	expanded := w.object(name, obj, depth)
	node.Cycle = expanded.Cycle
	node.Truncated = expanded.Truncated
	node.Children = expanded.Children
	return node
}

func (w *walker) failed(name string, p *serialization.Property, err error) *Node {
	node := w.newNode(name, p.Type(), p.Path())
	node.Error = err.Error()
	w.log.Warn("property unreadable",
		log.String("path", node.Path),
		log.Error(err),
	)
	return node
}

func describeReference(v any) string {
	switch r := v.(type) {
	case *models.SceneObject:
		return fmt.Sprintf("%s (%s)", r.Name, r.InstanceID())
	case models.Resource:
		return fmt.Sprintf("%s (%s)", r.ResourceName(), r.ResourceID())
	case models.GameObject:
		return r.InstanceID().String()
	default:
		return fmt.Sprint(v)
	}
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Map, reflect.Slice, reflect.Interface:
		return rv.IsNil()
	}
	return false
}
