package tools

// Registry holds the static provider table. Register everything at
// startup; the registry is read-only afterwards and safe to share across
// concurrent requests.
type Registry struct {
	providers []Provider
	byName    map[string]Provider
}

// NewRegistry creates an empty provider registry.
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Provider),
	}
}

// Register adds a provider. Registration order is preserved and used as
// the deterministic tie-breaker during selection.
func (r *Registry) Register(p Provider) {
	if _, exists := r.byName[p.Name()]; exists {
		return
	}
	r.providers = append(r.providers, p)
	r.byName[p.Name()] = p
}

// Get retrieves a provider by name.
func (r *Registry) Get(name string) (Provider, bool) {
	p, ok := r.byName[name]
	return p, ok
}

// List returns all providers in registration order.
func (r *Registry) List() []Provider {
	out := make([]Provider, len(r.providers))
	copy(out, r.providers)
	return out
}
