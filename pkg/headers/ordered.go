package headers

// OrderedHeaders keeps request headers in insertion order.
// Names are matched exactly as stored; a repeated name overwrites the
// earlier value and keeps its position.
// OrderedHeaders is not safe for concurrent mutation.
type OrderedHeaders struct {
	entries []Header
	index   map[string]int // name -> position in entries
}

// Header represents a single HTTP header
type Header struct {
	Name  string
	Value string
}

// NewOrderedHeaders creates a new OrderedHeaders instance
func NewOrderedHeaders() *OrderedHeaders {
	return &OrderedHeaders{
		entries: make([]Header, 0),
		index:   make(map[string]int),
	}
}

// Set adds or updates a header. New names are appended; existing
// names keep their position.
func (h *OrderedHeaders) Set(name, value string) {
	if name == "" {
		return
	}
	if i, exists := h.index[name]; exists {
		h.entries[i].Value = value
		return
	}
	h.index[name] = len(h.entries)
	h.entries = append(h.entries, Header{Name: name, Value: value})
}

// SetAfter adds a header directly after afterHeader. If name already
// exists only its value changes. A missing anchor appends at the end.
func (h *OrderedHeaders) SetAfter(name, value, afterHeader string) {
	pos := len(h.entries)
	if i, ok := h.index[afterHeader]; ok {
		pos = i + 1
	}
	h.SetAt(name, value, pos)
}

// SetBefore adds a header directly before beforeHeader. If name already
// exists only its value changes. A missing anchor appends at the end.
func (h *OrderedHeaders) SetBefore(name, value, beforeHeader string) {
	pos := len(h.entries)
	if i, ok := h.index[beforeHeader]; ok {
		pos = i
	}
	h.SetAt(name, value, pos)
}

// SetAt adds a header at index. If name already exists only its value
// changes. Out of range indexes append at the end.
func (h *OrderedHeaders) SetAt(name, value string, index int) {
	if name == "" {
		return
	}
	if i, exists := h.index[name]; exists {
		h.entries[i].Value = value
		return
	}
	if index < 0 || index > len(h.entries) {
		index = len(h.entries)
	}

	h.entries = append(h.entries, Header{})
	copy(h.entries[index+1:], h.entries[index:])
	h.entries[index] = Header{Name: name, Value: value}
	h.reindex()
}

// Get returns the value for name, or "" when absent
func (h *OrderedHeaders) Get(name string) string {
	v, _ := h.Lookup(name)
	return v
}

// Lookup returns the value for name and whether it is present
func (h *OrderedHeaders) Lookup(name string) (string, bool) {
	i, ok := h.index[name]
	if !ok {
		return "", false
	}
	return h.entries[i].Value, true
}

// Has checks if a header exists
func (h *OrderedHeaders) Has(name string) bool {
	_, ok := h.index[name]
	return ok
}

// Del removes a header
func (h *OrderedHeaders) Del(name string) {
	i, ok := h.index[name]
	if !ok {
		return
	}
	h.entries = append(h.entries[:i], h.entries[i+1:]...)
	h.reindex()
}

// Position returns the zero-based position of name, or -1
func (h *OrderedHeaders) Position(name string) int {
	if i, ok := h.index[name]; ok {
		return i
	}
	return -1
}

// All returns a copy of all headers in order
func (h *OrderedHeaders) All() []Header {
	out := make([]Header, len(h.entries))
	copy(out, h.entries)
	return out
}

// Names returns header names in order
func (h *OrderedHeaders) Names() []string {
	names := make([]string, len(h.entries))
	for i, e := range h.entries {
		names[i] = e.Name
	}
	return names
}

// Len returns the number of headers
func (h *OrderedHeaders) Len() int {
	return len(h.entries)
}

// Clone returns a deep copy
func (h *OrderedHeaders) Clone() *OrderedHeaders {
	clone := NewOrderedHeaders()
	for _, e := range h.entries {
		clone.Set(e.Name, e.Value)
	}
	return clone
}

func (h *OrderedHeaders) reindex() {
	h.index = make(map[string]int, len(h.entries))
	for i, e := range h.entries {
		h.index[e.Name] = i
	}
}
