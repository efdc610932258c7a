package tool

import (
	"fmt"
	"iter"

	"github.com/soyeahso/gh-manager/internal/logging"
)

// Registry holds the authoritative name→descriptor table. Registration
// happens once at startup; lookups are read-only afterwards, so no locking
// is needed beyond that contract.
type Registry struct {
	byName map[string]*Descriptor
	order  []*Descriptor
	log    *logging.Logger
}

// NewRegistry creates an empty tool registry.
func NewRegistry(log *logging.Logger) *Registry {
	return &Registry{
		byName: make(map[string]*Descriptor),
		log:    log.Sub("registry"),
	}
}

// Register adds a descriptor, validating its schema. Duplicate names and
// malformed parameter declarations are configuration errors.
func (r *Registry) Register(d *Descriptor) error {
	if d.Name == "" {
		return fmt.Errorf("tool descriptor has empty name")
	}
	if d.Handler == nil {
		return fmt.Errorf("tool %s has no handler", d.Name)
	}
	if _, exists := r.byName[d.Name]; exists {
		return &DuplicateToolNameError{Name: d.Name}
	}
	seen := make(map[string]bool, len(d.Params))
	for _, p := range d.Params {
		if p.Name == "" {
			return fmt.Errorf("tool %s declares a parameter with empty name", d.Name)
		}
		if seen[p.Name] {
			return fmt.Errorf("tool %s declares parameter %s twice", d.Name, p.Name)
		}
		seen[p.Name] = true
		if p.Default != nil {
			if err := checkDefault(p); err != nil {
				return fmt.Errorf("tool %s: %w", d.Name, err)
			}
		}
	}
	r.byName[d.Name] = d
	r.order = append(r.order, d)
	r.log.Debug().Str("tool", d.Name).Msg("tool registered")
	return nil
}

// MustRegister registers a group of descriptors and panics on configuration
// errors. Intended for startup wiring where a bad descriptor is a bug.
func (r *Registry) MustRegister(descriptors ...*Descriptor) {
	for _, d := range descriptors {
		if err := r.Register(d); err != nil {
			panic(err)
		}
	}
}

// Resolve returns the descriptor for name.
func (r *Registry) Resolve(name string) (*Descriptor, error) {
	d, ok := r.byName[name]
	if !ok {
		return nil, &UnknownToolError{Name: name}
	}
	return d, nil
}

// All iterates descriptors in registration order. The sequence is restartable.
func (r *Registry) All() iter.Seq[*Descriptor] {
	return func(yield func(*Descriptor) bool) {
		for _, d := range r.order {
			if !yield(d) {
				return
			}
		}
	}
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	return len(r.order)
}

// checkDefault verifies a declared default matches the parameter type.
func checkDefault(p Param) error {
	ok := false
	switch p.Type {
	case TypeString:
		_, ok = p.Default.(string)
	case TypeInt:
		_, ok = p.Default.(int)
	case TypeBool:
		_, ok = p.Default.(bool)
	case TypeStringList:
		_, ok = p.Default.([]string)
	}
	if !ok {
		return fmt.Errorf("parameter %s: default %v does not match type %s", p.Name, p.Default, p.Type)
	}
	return nil
}
