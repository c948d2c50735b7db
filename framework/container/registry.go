package container

import (
	"sort"
	"sync"
)

// DefinitionRegistry stores bean definitions by name.
type DefinitionRegistry interface {
	// Register stores def under name, replacing any previous definition.
	Register(name string, def *BeanDefinition)
	// Lookup returns the definition for name or ErrNotRegistered.
	Lookup(name string) (*BeanDefinition, error)
	// Contains reports whether name has a definition.
	Contains(name string) bool
	// Names returns the registered names in sorted order.
	Names() []string
}

// Registry is the default DefinitionRegistry: a map guarded by a RWMutex.
type Registry struct {
	mu   sync.RWMutex
	defs map[string]*BeanDefinition
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{defs: make(map[string]*BeanDefinition)}
}

func (r *Registry) Register(name string, def *BeanDefinition) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.defs[name] = def
}

func (r *Registry) Lookup(name string) (*BeanDefinition, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	def, ok := r.defs[name]
	if !ok {
		return nil, beanError(name, ErrNotRegistered, nil)
	}
	return def, nil
}

func (r *Registry) Contains(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.defs[name]
	return ok
}

func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.defs)
}

// Len returns the number of registered definitions.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.defs)
}

func sortedKeys[V any](m map[string]V) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
