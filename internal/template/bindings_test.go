package template

import (
	"reflect"
	"testing"
)

func TestReconcile(t *testing.T) {
	tests := []struct {
		name       string
		prev       Bindings
		names      []string
		wantNames  []string
		wantValues map[string]string
	}{
		{
			name:       "empty to empty",
			prev:       Bindings{},
			names:      nil,
			wantNames:  []string{},
			wantValues: map[string]string{},
		},
		{
			name:       "new names default to empty value",
			prev:       Bindings{},
			names:      []string{"name", "place"},
			wantNames:  []string{"name", "place"},
			wantValues: map[string]string{"name": "", "place": ""},
		},
		{
			name:       "existing values carried forward",
			prev:       FromValues([]string{"name", "place"}, map[string]string{"name": "Ana", "place": "Lisbon"}),
			names:      []string{"name", "place"},
			wantNames:  []string{"name", "place"},
			wantValues: map[string]string{"name": "Ana", "place": "Lisbon"},
		},
		{
			name:       "stale names dropped",
			prev:       FromValues([]string{"name", "place"}, map[string]string{"name": "Ana", "place": "Lisbon"}),
			names:      []string{"name"},
			wantNames:  []string{"name"},
			wantValues: map[string]string{"name": "Ana"},
		},
		{
			name:       "mixed carry drop add",
			prev:       FromValues([]string{"a", "b"}, map[string]string{"a": "1", "b": "2"}),
			names:      []string{"b", "c"},
			wantNames:  []string{"b", "c"},
			wantValues: map[string]string{"b": "2", "c": ""},
		},
		{
			name:       "duplicate names de-duplicated keeping first position",
			prev:       Bindings{},
			names:      []string{"a", "b", "a"},
			wantNames:  []string{"a", "b"},
			wantValues: map[string]string{"a": "", "b": ""},
		},
		{
			name:       "order follows new names not previous",
			prev:       FromValues([]string{"a", "b"}, map[string]string{"a": "1", "b": "2"}),
			names:      []string{"b", "a"},
			wantNames:  []string{"b", "a"},
			wantValues: map[string]string{"a": "1", "b": "2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Reconcile(tt.prev, tt.names)

			if !reflect.DeepEqual(got.Names(), tt.wantNames) {
				t.Errorf("names = %v, want %v", got.Names(), tt.wantNames)
			}
			for name, want := range tt.wantValues {
				v, ok := got.Value(name)
				if !ok {
					t.Errorf("name %q missing from result", name)
					continue
				}
				if v != want {
					t.Errorf("value for %q = %q, want %q", name, v, want)
				}
			}
			if got.Len() != len(tt.wantNames) {
				t.Errorf("len = %d, want %d", got.Len(), len(tt.wantNames))
			}
		})
	}
}

func TestReconcileDoesNotMutatePrevious(t *testing.T) {
	prev := FromValues([]string{"a", "b"}, map[string]string{"a": "1", "b": "2"})

	_ = Reconcile(prev, []string{"b"})

	if v, _ := prev.Value("a"); v != "1" {
		t.Errorf("previous binding a mutated: %q", v)
	}
	if prev.Len() != 2 {
		t.Errorf("previous bindings length changed: %d", prev.Len())
	}
}

func TestBindingsSet(t *testing.T) {
	b := FromValues([]string{"name"}, nil)

	if !b.Set("name", "Ana") {
		t.Fatal("Set on bound name returned false")
	}
	if v, _ := b.Value("name"); v != "Ana" {
		t.Errorf("value = %q, want %q", v, "Ana")
	}

	if b.Set("unknown", "x") {
		t.Error("Set on unbound name returned true")
	}
}

func TestBindingsAll(t *testing.T) {
	b := FromValues([]string{"b", "a"}, map[string]string{"a": "1", "b": "2"})

	want := []Binding{{Name: "b", Value: "2"}, {Name: "a", Value: "1"}}
	if got := b.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %v, want %v", got, want)
	}
}
