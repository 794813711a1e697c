package prefs

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Function is a helper callable from rule expressions, for example a rule
// computing a maximum through lastIndex(source).
type Function func(args ...any) (any, error)

type registeredFunction struct {
	name string
	fn   Function
}

// FunctionRegistry holds the helpers exposed to rule expressions. Lookups
// ignore case; expressions see each helper under the name it was registered
// with. A registry is safe for concurrent use and may be shared by several
// evaluators.
type FunctionRegistry struct {
	mu        sync.RWMutex
	functions map[string]registeredFunction
}

// NewFunctionRegistry constructs an empty registry.
func NewFunctionRegistry() *FunctionRegistry {
	return &FunctionRegistry{functions: map[string]registeredFunction{}}
}

// Register adds fn under name. Names differing only in case collide.
func (r *FunctionRegistry) Register(name string, fn Function) error {
	switch {
	case strings.TrimSpace(name) == "":
		return fmt.Errorf("prefs: function name must not be empty")
	case fn == nil:
		return fmt.Errorf("prefs: function %q is nil", name)
	}

	key := strings.ToLower(name)
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.functions == nil {
		r.functions = map[string]registeredFunction{}
	}
	if existing, ok := r.functions[key]; ok {
		return fmt.Errorf("prefs: function %q conflicts with %q", name, existing.name)
	}
	r.functions[key] = registeredFunction{name: name, fn: fn}
	return nil
}

// Clone copies the registry so later registrations do not leak between
// engines.
func (r *FunctionRegistry) Clone() *FunctionRegistry {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	clone := NewFunctionRegistry()
	for key, registered := range r.functions {
		clone.functions[key] = registered
	}
	return clone
}

// Call runs the helper registered under name.
func (r *FunctionRegistry) Call(name string, args ...any) (any, error) {
	if r == nil {
		return nil, fmt.Errorf("prefs: no functions registered, cannot call %q", name)
	}
	r.mu.RLock()
	registered, ok := r.functions[strings.ToLower(name)]
	r.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("prefs: function %q not registered", name)
	}
	return registered.fn(args...)
}

// Names lists helpers by their registered names, sorted.
func (r *FunctionRegistry) Names() []string {
	if r == nil {
		return nil
	}
	r.mu.RLock()
	names := make([]string, 0, len(r.functions))
	for _, registered := range r.functions {
		names = append(names, registered.name)
	}
	r.mu.RUnlock()
	slices.Sort(names)
	return names
}
