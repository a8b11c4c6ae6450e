package export

import (
	"fmt"
	"sort"
	"sync"
)

// Registry manages document encoders by name.
type Registry struct {
	mu       sync.RWMutex
	encoders map[string]Encoder
}

// NewRegistry creates a new encoder registry.
func NewRegistry() *Registry {
	return &Registry{
		encoders: make(map[string]Encoder),
	}
}

// Register adds an encoder to the registry.
func (r *Registry) Register(e Encoder) error {
	if e == nil {
		return fmt.Errorf("cannot register nil encoder")
	}
	name := e.Name()
	if name == "" {
		return fmt.Errorf("encoder name cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.encoders[name]; exists {
		return fmt.Errorf("encoder already registered: %s", name)
	}

	r.encoders[name] = e
	return nil
}

// Get returns an encoder by name.
func (r *Registry) Get(name string) (Encoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	e, ok := r.encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown export format: %s", name)
	}
	return e, nil
}

// List returns all registered encoder names (sorted).
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.encoders))
	for name := range r.encoders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Has checks if an encoder is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.encoders[name]
	return ok
}

// Count returns the number of registered encoders.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.encoders)
}

// Unregister removes an encoder from the registry.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.encoders[name]; !ok {
		return fmt.Errorf("unknown export format: %s", name)
	}
	delete(r.encoders, name)
	return nil
}

// DefaultRegistry holds the built-in encoders.
var DefaultRegistry = newDefaultRegistry()

func newDefaultRegistry() *Registry {
	r := NewRegistry()
	for _, e := range []Encoder{JSON{Indent: true}, YAML{}, MsgPack{}, Text{}} {
		_ = r.Register(e)
	}
	return r
}

// Get returns an encoder from the default registry.
func Get(name string) (Encoder, error) {
	return DefaultRegistry.Get(name)
}

// List returns all encoder names from the default registry.
func List() []string {
	return DefaultRegistry.List()
}
