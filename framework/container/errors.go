package container

import (
	"fmt"

	"github.com/pkg/errors"
)

// Failure kinds reported by the container. Match them with errors.Is:
//
//	if errors.Is(err, container.ErrNotRegistered) { ... }
var (
	ErrNotRegistered         = errors.New("no bean definition registered")
	ErrNoSuitableConstructor = errors.New("no suitable constructor")
	ErrInstantiation         = errors.New("bean instantiation failed")
	ErrTypeMismatch          = errors.New("bean has unexpected type")
)

// BeanError is returned for every failed resolution. Kind is one of the
// sentinels above; Err carries the underlying cause, if any.
type BeanError struct {
	Name string
	Kind error
	Err  error
}

func (e *BeanError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("container: [%s]: %v", e.Name, e.Kind)
	}
	return fmt.Sprintf("container: [%s]: %v: %v", e.Name, e.Kind, e.Err)
}

// Unwrap exposes both the kind and the cause, so errors.Is matches either.
func (e *BeanError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Err}
}

func beanError(name string, kind, cause error) *BeanError {
	return &BeanError{Name: name, Kind: kind, Err: cause}
}
