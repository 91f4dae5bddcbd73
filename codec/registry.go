package codec

import (
	"sort"
	"sync"
)

// Registry resolves codecs by name or transfer syntax UID. The module
// registers its JFIF encoder at init time; callers may add their own
// codecs (a decoder for the same UID, say) alongside it.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Codec
	byUID  map[string]Codec
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		byName: make(map[string]Codec),
		byUID:  make(map[string]Codec),
	}
}

var defaultRegistry = NewRegistry()

// Register adds a codec to the default registry
func Register(c Codec) {
	defaultRegistry.Register(c)
}

// Get resolves a codec from the default registry by name or UID
func Get(nameOrUID string) (Codec, error) {
	return defaultRegistry.Get(nameOrUID)
}

// List returns the codecs in the default registry
func List() []Codec {
	return defaultRegistry.List()
}

// Register adds a codec, addressable by both its name and its UID. A
// later registration under the same name or UID replaces the earlier
// one.
func (r *Registry) Register(c Codec) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.byName[c.Name()] = c
	r.byUID[c.UID()] = c
}

// Get resolves a codec by name or UID
func (r *Registry) Get(nameOrUID string) (Codec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if c, ok := r.byUID[nameOrUID]; ok {
		return c, nil
	}
	if c, ok := r.byName[nameOrUID]; ok {
		return c, nil
	}
	return nil, ErrCodecNotFound
}

// List returns all registered codecs, ordered by UID
func (r *Registry) List() []Codec {
	r.mu.RLock()
	defer r.mu.RUnlock()

	uids := make([]string, 0, len(r.byUID))
	for uid := range r.byUID {
		uids = append(uids, uid)
	}
	sort.Strings(uids)

	codecs := make([]Codec, 0, len(uids))
	for _, uid := range uids {
		codecs = append(codecs, r.byUID[uid])
	}
	return codecs
}
