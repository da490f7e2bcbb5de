package scrape

import (
	"fmt"
	"sort"
	"sync"
)

type Registry struct {
	mu      sync.RWMutex
	layouts map[string]Layout
}

type Descriptor struct {
	Key  string `json:"key"`
	Name string `json:"name"`
}

func NewRegistry() *Registry {
	return &Registry{layouts: map[string]Layout{}}
}

func (r *Registry) Register(layout Layout) error {
	if layout == nil {
		return fmt.Errorf("layout is nil")
	}

	key := layout.Key()
	if key == "" {
		return fmt.Errorf("layout key is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.layouts[key]; exists {
		return fmt.Errorf("layout %q already registered", key)
	}

	r.layouts[key] = layout
	return nil
}

func (r *Registry) Get(key string) (Layout, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	layout, ok := r.layouts[key]
	return layout, ok
}

func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := make([]Descriptor, 0, len(r.layouts))
	for _, layout := range r.layouts {
		items = append(items, Descriptor{Key: layout.Key(), Name: layout.Name()})
	}

	sort.Slice(items, func(i, j int) bool {
		return items[i].Key < items[j].Key
	})

	return items
}
