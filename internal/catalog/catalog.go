package catalog

import (
	"errors"
	"fmt"
)

// ErrNotFound is returned by GetModule for unknown module IDs.
var ErrNotFound = errors.New("module not found")

// Catalog is the read-only collection of learning modules. It is built once
// and never mutated; every accessor hands out copies.
type Catalog struct {
	modules []Module
	byID    map[string]int
}

// New validates modules and builds a Catalog that preserves their order.
func New(modules []Module) (*Catalog, error) {
	if err := validateModules(modules); err != nil {
		return nil, err
	}

	c := &Catalog{
		modules: make([]Module, len(modules)),
		byID:    make(map[string]int, len(modules)),
	}
	for i, m := range modules {
		c.modules[i] = m.clone()
		c.byID[m.ID] = i
	}
	return c, nil
}

// ListModules returns all modules in declaration order.
func (c *Catalog) ListModules() []Module {
	out := make([]Module, len(c.modules))
	for i, m := range c.modules {
		out[i] = m.clone()
	}
	return out
}

// GetModule returns the module with the given ID, or an error wrapping ErrNotFound.
func (c *Catalog) GetModule(id string) (Module, error) {
	i, ok := c.byID[id]
	if !ok {
		return Module{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return c.modules[i].clone(), nil
}

// Len returns the number of modules.
func (c *Catalog) Len() int {
	return len(c.modules)
}

// ByHazard returns the modules for a hazard, in declaration order.
func (c *Catalog) ByHazard(h Hazard) []Module {
	var out []Module
	for _, m := range c.modules {
		if m.Hazard == h {
			out = append(out, m.clone())
		}
	}
	return out
}
