// Package registry holds the ordered, read-only catalogue of check
// definitions.
package registry

import (
	"fmt"

	"github.com/khanhnv2901/seca-host/internal/domain/check"
	sharedErrors "github.com/khanhnv2901/seca-host/internal/shared/errors"
)

// NotFoundError is returned by ByID for ids missing from the catalogue
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("check %q not found in registry", e.ID)
}

func (e *NotFoundError) Unwrap() error {
	return sharedErrors.ErrCheckNotFound
}

// Registry is immutable after construction and safe for concurrent reads.
type Registry struct {
	definitions []check.Definition
	index       map[string]int
}

// New validates the definitions and builds a registry preserving their order.
func New(definitions []check.Definition) (*Registry, error) {
	r := &Registry{
		definitions: make([]check.Definition, 0, len(definitions)),
		index:       make(map[string]int, len(definitions)),
	}
	for _, def := range definitions {
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, dup := r.index[def.ID]; dup {
			return nil, fmt.Errorf("%w: %s", sharedErrors.ErrDuplicateCheckID, def.ID)
		}
		r.index[def.ID] = len(r.definitions)
		r.definitions = append(r.definitions, def.Clone())
	}
	return r, nil
}

// Default returns the registry over the built-in catalogue
func Default() *Registry {
	r, err := New(DefaultCatalog())
	if err != nil {
		// the literal catalogue is covered by tests
		panic(fmt.Sprintf("invalid built-in catalogue: %v", err))
	}
	return r
}

// All returns every definition in canonical order
func (r *Registry) All() []check.Definition {
	out := make([]check.Definition, len(r.definitions))
	for i, def := range r.definitions {
		out[i] = def.Clone()
	}
	return out
}

// ByID looks up a definition by id
func (r *Registry) ByID(id string) (check.Definition, error) {
	i, ok := r.index[id]
	if !ok {
		return check.Definition{}, &NotFoundError{ID: id}
	}
	return r.definitions[i].Clone(), nil
}

// Len returns the number of definitions
func (r *Registry) Len() int {
	return len(r.definitions)
}

// Categories returns the categories that have at least one check, in
// first-appearance order.
func (r *Registry) Categories() []check.Category {
	seen := make(map[check.Category]bool)
	var out []check.Category
	for _, def := range r.definitions {
		if !seen[def.Category] {
			seen[def.Category] = true
			out = append(out, def.Category)
		}
	}
	return out
}

// InCategory returns the definitions of one category in canonical order
func (r *Registry) InCategory(category check.Category) []check.Definition {
	var out []check.Definition
	for _, def := range r.definitions {
		if def.Category == category {
			out = append(out, def.Clone())
		}
	}
	return out
}

// Filter returns a registry restricted to ids, keeping canonical order.
// Unknown ids are reported as a NotFoundError.
func (r *Registry) Filter(ids []string) (*Registry, error) {
	if len(ids) == 0 {
		return r, nil
	}
	wanted := make(map[string]bool, len(ids))
	for _, id := range ids {
		if _, ok := r.index[id]; !ok {
			return nil, &NotFoundError{ID: id}
		}
		wanted[id] = true
	}
	subset := make([]check.Definition, 0, len(wanted))
	for _, def := range r.definitions {
		if wanted[def.ID] {
			subset = append(subset, def)
		}
	}
	return New(subset)
}
