package placeholder

// Registry holds one placeholder Context per document path. Entries live
// until explicitly cleared; hosts must call Clear when a document closes.
//
// A Registry is not safe for concurrent use; rebuilds are expected to run one
// at a time.
type Registry struct {
	entries map[string]*entry
}

type entry struct {
	ctx    *Context
	labels []string
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry { return &Registry{} }

// Create installs and returns a fresh context for path, replacing any
// existing one.
func (r *Registry) Create(path string) *Context {
	if r.entries == nil {
		r.entries = make(map[string]*entry)
	}
	ent := &entry{ctx: NewContext()}
	r.entries[path] = ent
	return ent.ctx
}

// Get returns the context for path, if one exists.
func (r *Registry) Get(path string) (*Context, bool) {
	if ent, ok := r.entries[path]; ok {
		return ent.ctx, true
	}
	return nil, false
}

// Resolve returns a context for path numbered from the given definition
// labels, processed in order. The cached context is reused when labels equals
// the list it was last resolved from; otherwise it is rebuilt from scratch, so
// numbering is always a function of first occurrence order alone.
func (r *Registry) Resolve(path string, labels []string) *Context {
	if ent, ok := r.entries[path]; ok && sameLabels(ent.labels, labels) {
		return ent.ctx
	}
	ctx := r.Create(path)
	for _, label := range labels {
		ctx.ProcessLabel(label)
	}
	r.entries[path].labels = append([]string(nil), labels...)
	return ctx
}

// Clear discards any state held for path.
func (r *Registry) Clear(path string) {
	delete(r.entries, path)
}

// ClearAll discards the state of every path.
func (r *Registry) ClearAll() {
	r.entries = nil
}

// Len returns the number of paths with live state.
func (r *Registry) Len() int { return len(r.entries) }

func sameLabels(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
