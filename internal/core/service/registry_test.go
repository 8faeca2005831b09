package service

import "testing"

type clock struct{ now int }

func TestProvideResolve(t *testing.T) {
	r := NewRegistry()
	if _, ok := Resolve[*clock](r); ok {
		t.Fatal("expected nothing before Provide")
	}
	c := &clock{now: 3}
	Provide(r, c)
	got, ok := Resolve[*clock](r)
	if !ok || got != c {
		t.Fatalf("Resolve = %v, %v; want %v", got, ok, c)
	}
	if r.Len() != 1 {
		t.Fatalf("Len = %d, want 1", r.Len())
	}
}

func TestProvideReplaces(t *testing.T) {
	r := NewRegistry()
	Provide(r, &clock{now: 1})
	Provide(r, &clock{now: 2})
	if got := MustResolve[*clock](r); got.now != 2 {
		t.Fatalf("now = %d, want 2", got.now)
	}
	Remove[*clock](r)
	if _, ok := Resolve[*clock](r); ok {
		t.Fatal("expected removal")
	}
}

func TestMustResolvePanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	MustResolve[*clock](NewRegistry())
}
