// Package wiring conditionally constructs the configured integrations. Each
// configurer inspects the properties, decides whether its component applies,
// and wires it into the container unless the application already provided
// one under the same name.
package wiring

import (
	"fmt"
	"sort"
	"sync"

	wireuperrors "github.com/drblury/wireup/internal/errors"
)

// Container holds wired components by name. Names are dotted, mirroring the
// configuration section that produced the component, e.g. "messaging.transport".
type Container struct {
	mu         sync.RWMutex
	components map[string]any
}

// NewContainer creates an empty container.
func NewContainer() *Container {
	return &Container{components: make(map[string]any)}
}

// Provide stores a component under the given name. Providing a name twice is
// an error; wiring skips names the application provided up front.
func (c *Container) Provide(name string, component any) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if _, exists := c.components[name]; exists {
		return fmt.Errorf("%w: %q", wireuperrors.ErrComponentExists, name)
	}
	c.components[name] = component
	return nil
}

// Lookup returns the component stored under name.
func (c *Container) Lookup(name string) (any, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	component, ok := c.components[name]
	return component, ok
}

// Has reports whether a component is stored under name.
func (c *Container) Has(name string) bool {
	_, ok := c.Lookup(name)
	return ok
}

// Names returns the stored component names, sorted.
func (c *Container) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	names := make([]string, 0, len(c.components))
	for name := range c.components {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of stored components.
func (c *Container) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.components)
}

// Component looks up name and asserts it to T.
func Component[T any](c *Container, name string) (T, error) {
	var zero T
	raw, ok := c.Lookup(name)
	if !ok {
		return zero, fmt.Errorf("%w: %q", wireuperrors.ErrComponentMissing, name)
	}
	component, ok := raw.(T)
	if !ok {
		return zero, fmt.Errorf("wireup: component %q is %T, not %T", name, raw, zero)
	}
	return component, nil
}
