package container

import (
	"github.com/pkg/errors"
)

// InstantiationStrategy turns a definition and positional arguments into a
// new instance. It never touches the registry or the singleton cache.
type InstantiationStrategy interface {
	Instantiate(def *BeanDefinition, name string, args []any) (any, error)
}

// ArityStrategy picks the first constructor, in declaration order, whose
// arity equals len(args). Argument types play no part in the choice: two
// constructors of the same arity are not disambiguated.
type ArityStrategy struct{}

func (ArityStrategy) Instantiate(def *BeanDefinition, name string, args []any) (any, error) {
	ctor, err := selectConstructor(def, name, len(args))
	if err != nil {
		return nil, err
	}
	return construct(ctor, name, args)
}

func selectConstructor(def *BeanDefinition, name string, arity int) (Constructor, error) {
	if def == nil || def.Blueprint() == nil {
		return nil, beanError(name, ErrNoSuitableConstructor, errors.New("definition has no blueprint"))
	}
	bp := def.Blueprint()
	for _, ctor := range bp.ctors {
		if ctor != nil && ctor.Arity() == arity {
			return ctor, nil
		}
	}
	return nil, beanError(name, ErrNoSuitableConstructor,
		errors.Errorf("%s has no constructor taking %d arguments", bp.typeName, arity))
}

// construct calls ctor, turning both returned errors and panics into
// ErrInstantiation.
func construct(ctor Constructor, name string, args []any) (instance any, err error) {
	defer func() {
		if r := recover(); r != nil {
			instance = nil
			if perr, ok := r.(error); ok {
				err = beanError(name, ErrInstantiation, errors.Wrap(perr, "constructor panicked"))
				return
			}
			err = beanError(name, ErrInstantiation, errors.Errorf("constructor panicked: %v", r))
		}
	}()

	instance, err = ctor.New(args)
	if err != nil {
		return nil, beanError(name, ErrInstantiation, err)
	}
	return instance, nil
}
