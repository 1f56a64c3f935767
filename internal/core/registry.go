package core

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/klauern/hookline/internal/config"
)

// FeatureMeta describes a feature without constructing it.
type FeatureMeta struct {
	// Name is unique within a registry
	Name string
	// Events lists the hook events the feature handles
	Events []EventType
	// Category is guard, validator, or tracker
	Category string
	// ConfigPath is the feature's toggle path in the configuration
	// tree; empty means always enabled
	ConfigPath string
	// Priority orders execution; lower runs earlier
	Priority int
}

// HandlesEvent reports whether the feature participates in event.
func (m FeatureMeta) HandlesEvent(event EventType) bool {
	return slices.Contains(m.Events, event)
}

// Handler processes one normalized event. Returning a nil result with a
// nil error means "no effect". A returned error ends the pipeline as an
// internal error.
type Handler func(ctx context.Context, in *Input, cfg *config.Config) (*HandlerResult, error)

// FeatureModule pairs metadata with a factory that binds a handler to a
// specific event type.
type FeatureModule struct {
	Meta FeatureMeta
	New  func(ec *EngineContext, event EventType) Handler
}

// Registry is the eager feature catalog. Registration order is
// preserved; re-registering a name replaces the existing entry in place
// rather than duplicating it.
type Registry struct {
	mu      sync.RWMutex
	order   []string
	modules map[string]*FeatureModule
}

// NewRegistry creates an empty eager registry.
func NewRegistry() *Registry {
	return &Registry{modules: make(map[string]*FeatureModule)}
}

// Register adds or replaces a module under its metadata name.
func (r *Registry) Register(m *FeatureModule) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.modules[m.Meta.Name]; !exists {
		r.order = append(r.order, m.Meta.Name)
	}
	r.modules[m.Meta.Name] = m
}

// Lookup returns the module registered under name.
func (r *Registry) Lookup(name string) (*FeatureModule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.modules[name]
	return m, ok
}

// Names returns all module names in registration order.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// ByEvent returns the modules participating in event, in registration
// order.
func (r *Registry) ByEvent(event EventType) []*FeatureModule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*FeatureModule
	for _, name := range r.order {
		if m := r.modules[name]; m.Meta.HandlesEvent(event) {
			out = append(out, m)
		}
	}
	return out
}

// Enabled returns the modules whose config-resolved status is enabled.
func (r *Registry) Enabled(cfg *config.Config) []*FeatureModule {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*FeatureModule
	for _, name := range r.order {
		if m := r.modules[name]; config.FeatureEnabled(cfg, m.Meta.ConfigPath) {
			out = append(out, m)
		}
	}
	return out
}

// LazyDescriptor defers construction of a feature module until it is
// known to run. The loader must never be invoked for a descriptor whose
// metadata excludes the requested event or whose toggle is disabled.
type LazyDescriptor struct {
	Meta FeatureMeta
	Load func(ctx context.Context) (*FeatureModule, error)
}

// LazyRegistry is the catalog of lightweight feature descriptors.
type LazyRegistry struct {
	mu          sync.RWMutex
	order       []string
	descriptors map[string]*LazyDescriptor
}

// NewLazyRegistry creates an empty lazy registry.
func NewLazyRegistry() *LazyRegistry {
	return &LazyRegistry{descriptors: make(map[string]*LazyDescriptor)}
}

// Register adds or replaces a descriptor under its metadata name.
func (r *LazyRegistry) Register(d *LazyDescriptor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.descriptors[d.Meta.Name]; !exists {
		r.order = append(r.order, d.Meta.Name)
	}
	r.descriptors[d.Meta.Name] = d
}

// Names returns all descriptor names in registration order.
func (r *LazyRegistry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.order)
}

// Descriptors returns all descriptors in registration order.
func (r *LazyRegistry) Descriptors() []*LazyDescriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*LazyDescriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.descriptors[name])
	}
	return out
}

// OrderedHandler is a materialized handler with the metadata that
// selected it.
type OrderedHandler struct {
	Meta    FeatureMeta
	Handler Handler
}

// HandlersFor selects, orders, and materializes the handlers for one
// event. Selection uses metadata alone (event membership and the
// config-resolved toggle) and survivors are sorted by ascending
// priority before any loader runs, so construction cost is paid only
// for features that will actually execute. Loading itself is parallel;
// it has no side effects on shared state.
func (r *LazyRegistry) HandlersFor(ctx context.Context, event EventType, cfg *config.Config, ec *EngineContext) ([]OrderedHandler, error) {
	r.mu.RLock()
	var picked []*LazyDescriptor
	for _, name := range r.order {
		d := r.descriptors[name]
		if !d.Meta.HandlesEvent(event) {
			continue
		}
		if !config.FeatureEnabled(cfg, d.Meta.ConfigPath) {
			continue
		}
		picked = append(picked, d)
	}
	r.mu.RUnlock()

	sort.SliceStable(picked, func(i, j int) bool {
		return picked[i].Meta.Priority < picked[j].Meta.Priority
	})

	handlers := make([]OrderedHandler, len(picked))
	g, gctx := errgroup.WithContext(ctx)
	for i, d := range picked {
		i, d := i, d
		g.Go(func() error {
			mod, err := d.Load(gctx)
			if err != nil {
				return fmt.Errorf("loading feature %q: %w", d.Meta.Name, err)
			}
			handlers[i] = OrderedHandler{Meta: mod.Meta, Handler: mod.New(ec, event)}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return handlers, nil
}
