package props

// Entry is one property read from a file.
type Entry struct {
	// Key is the text before the separator on the logical line.
	Key string `json:"key"`

	// Raw is the whole logical line, key and separator included.
	// Continuation lines are joined with "\n".
	Raw string `json:"raw"`

	// Comment holds the comment lines preceding the entry, each ending in "\n".
	Comment string `json:"comment,omitempty"`
}

// Properties is an insertion-ordered set of entries with unique keys.
type Properties struct {
	entries []Entry
	index   map[string]int
}

// New creates an empty Properties.
func New() *Properties {
	return &Properties{
		index: make(map[string]int),
	}
}

// Set adds e, or replaces the raw line of the entry already holding e.Key.
// A replaced entry keeps its position and its comment.
// Reports whether e.Key was already present.
func (p *Properties) Set(e Entry) bool {
	if i, ok := p.index[e.Key]; ok {
		p.entries[i].Raw = e.Raw
		return true
	}
	p.index[e.Key] = len(p.entries)
	p.entries = append(p.entries, e)
	return false
}

// Get returns the entry stored under key.
func (p *Properties) Get(key string) (Entry, bool) {
	i, ok := p.index[key]
	if !ok {
		return Entry{}, false
	}
	return p.entries[i], true
}

// Has reports whether key is present.
func (p *Properties) Has(key string) bool {
	_, ok := p.index[key]
	return ok
}

// Len returns the number of entries.
func (p *Properties) Len() int {
	return len(p.entries)
}

// Entries returns a copy of the entries in insertion order.
func (p *Properties) Entries() []Entry {
	out := make([]Entry, len(p.entries))
	copy(out, p.entries)
	return out
}

// Keys returns the keys in insertion order.
func (p *Properties) Keys() []string {
	keys := make([]string, len(p.entries))
	for i, e := range p.entries {
		keys[i] = e.Key
	}
	return keys
}

// Clone returns an independent copy of p.
func (p *Properties) Clone() *Properties {
	c := &Properties{
		entries: p.Entries(),
		index:   make(map[string]int, len(p.index)),
	}
	for k, i := range p.index {
		c.index[k] = i
	}
	return c
}

// Equal reports whether p and other hold the same entries in the same order.
func (p *Properties) Equal(other *Properties) bool {
	if p.Len() != other.Len() {
		return false
	}
	for i := range p.entries {
		if p.entries[i] != other.entries[i] {
			return false
		}
	}
	return true
}
