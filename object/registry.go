package object

import "sync"

// Registry resolves data objects by id.
type Registry interface {
	// ObjectByID returns the object with the given id, or nil if it is unknown.
	ObjectByID(id string) *Object
}

// MemoryRegistry is a Registry over a fixed set of objects.
type MemoryRegistry struct {
	mu      sync.RWMutex
	objects map[string]*Object
}

var _ Registry = (*MemoryRegistry)(nil)

func NewMemoryRegistry(objects ...*Object) *MemoryRegistry {
	r := &MemoryRegistry{
		objects: make(map[string]*Object, len(objects)),
	}

	for _, o := range objects {
		r.objects[o.ID] = o
	}

	return r
}

func (r *MemoryRegistry) Add(o *Object) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.objects[o.ID] = o
}

func (r *MemoryRegistry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.objects, id)
}

func (r *MemoryRegistry) ObjectByID(id string) *Object {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.objects[id]
}
