package template

// Binding pairs a placeholder name with its current value.
type Binding struct {
	Name  string `json:"name"`
	Value string `json:"value"`
}

// Bindings is an ordered name-to-value mapping for one editing session.
// Order follows the de-duplicated extraction order of the draft so the
// variable panel renders deterministically. The zero value is empty and
// ready to use.
type Bindings struct {
	names  []string
	values map[string]string
}

// Len returns the number of bound names.
func (b Bindings) Len() int {
	return len(b.names)
}

// Names returns the bound names in presentation order. The slice is a copy.
func (b Bindings) Names() []string {
	out := make([]string, len(b.names))
	copy(out, b.names)
	return out
}

// Value returns the value bound to name and whether the name is bound.
func (b Bindings) Value(name string) (string, bool) {
	v, ok := b.values[name]
	return v, ok
}

// Set assigns a value to an already-bound name. It reports false when the
// name is not bound; bindings only come and go through Reconcile.
func (b Bindings) Set(name, value string) bool {
	if _, ok := b.values[name]; !ok {
		return false
	}
	b.values[name] = value
	return true
}

// All returns the bindings in presentation order.
func (b Bindings) All() []Binding {
	out := make([]Binding, 0, len(b.names))
	for _, n := range b.names {
		out = append(out, Binding{Name: n, Value: b.values[n]})
	}
	return out
}

// FromValues builds Bindings with the given name order and values. Names are
// de-duplicated by first occurrence; values for unknown names are ignored.
func FromValues(names []string, values map[string]string) Bindings {
	names = dedupe(names)
	b := Bindings{
		names:  names,
		values: make(map[string]string, len(names)),
	}
	for _, n := range names {
		b.values[n] = values[n]
	}
	return b
}

// Reconcile diffs the previous bindings against the placeholder names of the
// edited draft and returns a fresh Bindings:
//
//   - names present in both keep their previous value
//   - names new to the draft start with the empty value
//   - names gone from the draft are dropped
//
// prev is never mutated, so callers comparing before/after by identity see a
// change. Order of the result follows names, de-duplicated.
func Reconcile(prev Bindings, names []string) Bindings {
	names = dedupe(names)
	next := Bindings{
		names:  names,
		values: make(map[string]string, len(names)),
	}
	for _, n := range names {
		if v, ok := prev.values[n]; ok {
			next.values[n] = v
		} else {
			next.values[n] = ""
		}
	}
	return next
}
