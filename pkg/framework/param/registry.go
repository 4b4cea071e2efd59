package param

import (
	"sync"
)

// Registry manages the parameter set. Registration happens once at setup;
// afterwards the map is only read, so value access stays lock-free through
// the parameters themselves.
type Registry struct {
	params map[uint32]*Parameter
	order  []uint32 // maintain order for indexed access
	notify func()
	mu     sync.RWMutex
}

// NewRegistry creates a new parameter registry.
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[uint32]*Parameter),
		order:  make([]uint32, 0),
	}
}

// Add registers parameters. Duplicate IDs are skipped.
func (r *Registry) Add(params ...*Parameter) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, p := range params {
		if _, exists := r.params[p.ID]; exists {
			continue
		}
		p.notify = r.notify
		r.params[p.ID] = p
		r.order = append(r.order, p.ID)
	}
}

// SetNotify installs a change hook fired after every parameter write. The
// hook may run on any thread, including the audio thread, so it must do
// nothing beyond setting an atomic flag. Install before sharing the
// registry across threads.
func (r *Registry) SetNotify(fn func()) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.notify = fn
	for _, p := range r.params {
		p.notify = fn
	}
}

// Get retrieves a parameter by ID.
func (r *Registry) Get(id uint32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[id]
}

// GetByIndex retrieves a parameter by registration order.
func (r *Registry) GetByIndex(index int32) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= int32(len(r.order)) {
		return nil
	}
	return r.params[r.order[index]]
}

// Count returns the number of parameters.
func (r *Registry) Count() int32 {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return int32(len(r.order))
}

// All returns all parameters in registration order.
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}
	return result
}
