package container

import (
	"reflect"
	"sync/atomic"

	"github.com/pkg/errors"
)

// ── Constructors ──────────────────────────────────────────────────────────────

// Constructor builds one instance of a blueprint from positional arguments.
// Arity is the number of arguments New expects.
type Constructor interface {
	Arity() int
	New(args []any) (any, error)
}

type funcConstructor struct {
	arity int
	fn    func(args []any) (any, error)
}

func (f funcConstructor) Arity() int                  { return f.arity }
func (f funcConstructor) New(args []any) (any, error) { return f.fn(args) }

// Func wraps a raw closure as a constructor of the given arity.
//
//	container.Func(2, func(args []any) (any, error) {
//	    return &Pair{Left: args[0], Right: args[1]}, nil
//	})
func Func(arity int, fn func(args []any) (any, error)) Constructor {
	return funcConstructor{arity: arity, fn: fn}
}

// Ctor0 wraps a zero-argument constructor.
//
//	container.Ctor0(NewUserService)
func Ctor0[T any](fn func() T) Constructor {
	return Func(0, func(_ []any) (any, error) {
		return fn(), nil
	})
}

// Ctor1 wraps a one-argument constructor. An argument that is not an A
// fails the construction.
//
//	container.Ctor1(NewNamedUserService)   // func(name string) *UserService
func Ctor1[T, A any](fn func(A) T) Constructor {
	return Func(1, func(args []any) (any, error) {
		a, err := argAt[A](args, 0)
		if err != nil {
			return nil, err
		}
		return fn(a), nil
	})
}

// Ctor2 wraps a two-argument constructor.
func Ctor2[T, A, B any](fn func(A, B) T) Constructor {
	return Func(2, func(args []any) (any, error) {
		a, err := argAt[A](args, 0)
		if err != nil {
			return nil, err
		}
		b, err := argAt[B](args, 1)
		if err != nil {
			return nil, err
		}
		return fn(a, b), nil
	})
}

func argAt[A any](args []any, i int) (A, error) {
	var zero A
	if args[i] == nil {
		return zero, nil
	}
	a, ok := args[i].(A)
	if !ok {
		return zero, errors.Errorf("argument %d: want %s, got %T", i, typeName[A](), args[i])
	}
	return a, nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

type reflectConstructor struct {
	raw any
	fn  reflect.Value
}

// Reflect wraps any Go function returning T or (T, error). Its arity is the
// function's parameter count. A value that is not a function, or a variadic
// function, never matches any arity.
//
//	container.Reflect(func(host string, port int) (*Client, error) { ... })
func Reflect(fn any) Constructor {
	return reflectConstructor{raw: fn, fn: reflect.ValueOf(fn)}
}

func (r reflectConstructor) Arity() int {
	if r.fn.Kind() != reflect.Func || r.fn.IsNil() || r.fn.Type().IsVariadic() {
		return -1
	}
	return r.fn.Type().NumIn()
}

func (r reflectConstructor) New(args []any) (any, error) {
	if r.Arity() < 0 {
		return nil, errors.Errorf("%T is not a constructor function", r.raw)
	}
	t := r.fn.Type()
	switch {
	case t.NumOut() == 1:
	case t.NumOut() == 2 && t.Out(1) == errorType:
	default:
		return nil, errors.Errorf("%v must return T or (T, error)", t)
	}
	if len(args) != t.NumIn() {
		return nil, errors.Errorf("%v takes %d arguments, got %d", t, t.NumIn(), len(args))
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		want := t.In(i)
		if arg == nil {
			in[i] = reflect.Zero(want)
			continue
		}
		v := reflect.ValueOf(arg)
		if !v.Type().AssignableTo(want) {
			return nil, errors.Errorf("argument %d: want %v, got %T", i, want, arg)
		}
		in[i] = v
	}

	out := r.fn.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		return nil, out[1].Interface().(error)
	}
	return out[0].Interface(), nil
}

// ── Blueprint ─────────────────────────────────────────────────────────────────

// Blueprint describes a constructible type: a display name plus its
// constructors in declaration order.
type Blueprint struct {
	typeName string
	ctors    []Constructor
}

// NewBlueprint creates a blueprint for typeName.
func NewBlueprint(typeName string, ctors ...Constructor) *Blueprint {
	return &Blueprint{typeName: typeName, ctors: append([]Constructor(nil), ctors...)}
}

// BlueprintOf creates a blueprint named after T.
//
//	bp := container.BlueprintOf[*UserService](container.Ctor0(NewUserService))
func BlueprintOf[T any](ctors ...Constructor) *Blueprint {
	return NewBlueprint(typeName[T](), ctors...)
}

// TypeName returns the name the blueprint was created with.
func (b *Blueprint) TypeName() string { return b.typeName }

// Constructors returns a copy of the constructor list.
func (b *Blueprint) Constructors() []Constructor {
	return append([]Constructor(nil), b.ctors...)
}

func typeName[T any]() string {
	return reflect.TypeOf((*T)(nil)).Elem().String()
}

// ── BeanDefinition ────────────────────────────────────────────────────────────

// BeanDefinition binds a bean to the blueprint it is built from. The
// blueprint is not validated until the bean is first instantiated.
type BeanDefinition struct {
	blueprint atomic.Pointer[Blueprint]
}

// NewBeanDefinition creates a definition for bp.
func NewBeanDefinition(bp *Blueprint) *BeanDefinition {
	d := &BeanDefinition{}
	d.blueprint.Store(bp)
	return d
}

// Define is shorthand for NewBeanDefinition(BlueprintOf[T](ctors...)).
func Define[T any](ctors ...Constructor) *BeanDefinition {
	return NewBeanDefinition(BlueprintOf[T](ctors...))
}

// Blueprint returns the current blueprint, or nil for a nil definition.
func (d *BeanDefinition) Blueprint() *Blueprint {
	if d == nil {
		return nil
	}
	return d.blueprint.Load()
}

// SetBlueprint replaces the blueprint. Only meaningful before the bean has
// been instantiated; an existing singleton is not rebuilt.
func (d *BeanDefinition) SetBlueprint(bp *Blueprint) { d.blueprint.Store(bp) }
