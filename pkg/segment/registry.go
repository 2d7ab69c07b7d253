package segment

import (
	"context"
	"sort"
)

// Registry maps segment names to providers. Names without an entry are
// generic segments.
type Registry struct {
	providers map[string]Provider
}

// NewRegistry returns a registry with the built-in providers.
func NewRegistry() *Registry {
	r := &Registry{providers: map[string]Provider{}}
	r.Register("directory", ProviderFunc(Directory))
	r.Register("exit_code", ProviderFunc(ExitCode))
	r.Register("git", ProviderFunc(Git))
	r.Register("prompt", ProviderFunc(Prompt))
	return r
}

// Register installs p under name, replacing any previous provider.
func (r *Registry) Register(name string, p Provider) {
	r.providers[name] = p
}

// Lookup returns the provider for name, or the generic provider.
func (r *Registry) Lookup(name string) Provider {
	if p, ok := r.providers[name]; ok {
		return p
	}
	return ProviderFunc(Generic)
}

// Names lists the registered providers alphabetically.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.providers))
	for name := range r.providers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Generic renders a user-defined segment. Its content comes only from the
// output override; without one the segment is hidden.
func Generic(_ context.Context, req Request) (*Segment, error) {
	return Build(req, "", req.Options.Style), nil
}
