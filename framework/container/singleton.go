package container

import "sync"

// SingletonCache holds every bean that has been built, by name. Entries are
// never evicted.
type SingletonCache struct {
	mu        sync.RWMutex
	instances map[string]any
}

// NewSingletonCache creates an empty cache.
func NewSingletonCache() *SingletonCache {
	return &SingletonCache{instances: make(map[string]any)}
}

// Get returns the cached instance; ok is false when name has not been built.
func (s *SingletonCache) Get(name string) (instance any, ok bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	instance, ok = s.instances[name]
	return instance, ok
}

// Put stores instance under name, overwriting any previous entry.
func (s *SingletonCache) Put(name string, instance any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.instances[name] = instance
}

func (s *SingletonCache) Contains(name string) bool {
	_, ok := s.Get(name)
	return ok
}

// Names returns the cached names in sorted order.
func (s *SingletonCache) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.instances)
}

func (s *SingletonCache) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.instances)
}
