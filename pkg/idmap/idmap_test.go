package idmap

import (
	"slices"
	"testing"
)

func TestMapCaseInsensitive(t *testing.T) {
	m := New[int]()
	m.Set("Foo", 1)
	m.Set("FOO", 2)

	if m.Len() != 1 {
		t.Fatalf("Len() = %d, want 1", m.Len())
	}
	got, ok := m.Get("foo")
	if !ok || got != 2 {
		t.Errorf("Get(foo) = %d, %v, want 2, true", got, ok)
	}
	if k, _ := m.Key("FOO"); k != "Foo" {
		t.Errorf("Key(FOO) = %q, want %q", k, "Foo")
	}
}

func TestMapOrder(t *testing.T) {
	m := New[string]()
	for _, k := range []string{"b", "A", "c"} {
		m.Set(k, k)
	}
	m.Set("a", "again")

	if got, want := m.Keys(), []string{"b", "A", "c"}; !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	if got, want := m.Values(), []string{"b", "again", "c"}; !slices.Equal(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
}

func TestMapDelete(t *testing.T) {
	m := New[int]()
	m.Set("a", 1)
	m.Set("b", 2)
	m.Set("c", 3)
	m.Delete("B")

	if m.Has("b") {
		t.Error("Has(b) = true after Delete")
	}
	if got, _ := m.Get("C"); got != 3 {
		t.Errorf("Get(C) = %d, want 3", got)
	}
	if got, want := m.Keys(), []string{"a", "c"}; !slices.Equal(got, want) {
		t.Errorf("Keys() = %v, want %v", got, want)
	}
	m.Delete("missing")
	if m.Len() != 2 {
		t.Errorf("Len() = %d, want 2", m.Len())
	}
}

func TestMapGetOrCreate(t *testing.T) {
	m := New[*int]()
	calls := 0
	create := func() *int { calls++; v := 7; return &v }

	first, existed := m.GetOrCreate("Pkg", create)
	if existed {
		t.Error("first GetOrCreate reported existing entry")
	}
	second, existed := m.GetOrCreate("PKG", create)
	if !existed {
		t.Error("second GetOrCreate reported new entry")
	}
	if first != second || calls != 1 {
		t.Errorf("GetOrCreate created %d values, want 1", calls)
	}
}

func TestMapAll(t *testing.T) {
	m := New[int]()
	m.Set("x", 1)
	m.Set("y", 2)

	var keys []string
	for k, v := range m.All() {
		keys = append(keys, k)
		if v == 2 {
			break
		}
	}
	if !slices.Equal(keys, []string{"x", "y"}) {
		t.Errorf("All() keys = %v", keys)
	}
}

func TestSet(t *testing.T) {
	s := NewSet("System.Memory", "system.memory", "Newtonsoft.Json")
	if s.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", s.Len())
	}
	if s.Add("NEWTONSOFT.JSON") {
		t.Error("Add() of existing id returned true")
	}
	s.Remove("SYSTEM.MEMORY")
	if s.Has("System.Memory") {
		t.Error("Has() = true after Remove")
	}
	if got := s.Items(); !slices.Equal(got, []string{"Newtonsoft.Json"}) {
		t.Errorf("Items() = %v", got)
	}
}

func TestEqual(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		{"Foo", "FOO", true},
		{"Microsoft.Extensions.Logging", "microsoft.extensions.logging", true},
		{"Foo", "Foo2", false},
		{"", "", true},
	}
	for _, tt := range tests {
		if got := Equal(tt.a, tt.b); got != tt.want {
			t.Errorf("Equal(%q, %q) = %v, want %v", tt.a, tt.b, got, tt.want)
		}
	}
}
