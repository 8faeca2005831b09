package ecs

import (
	"errors"
	"slices"
	"testing"
	"time"
)

type posConfig struct{ X, Y float64 }

type pos struct {
	x, y    float64
	updates int
}

func (p *pos) Import(cfg Config) bool {
	c, ok := ConfigAs[*posConfig](cfg)
	if !ok {
		return false
	}
	p.x, p.y = c.X, c.Y
	return true
}

func (p *pos) Export() Config { return &posConfig{X: p.x, Y: p.y} }

func (p *pos) Update(EntityHandle, time.Duration) { p.updates++ }

type velConfig struct{ VX, VY float64 }

type vel struct{ vx, vy float64 }

func (v *vel) Import(cfg Config) bool {
	c, ok := ConfigAs[*velConfig](cfg)
	if !ok {
		return false
	}
	v.vx, v.vy = c.VX, c.VY
	return true
}

func (v *vel) Export() Config { return &velConfig{VX: v.vx, VY: v.vy} }

func (v *vel) Update(h EntityHandle, dt time.Duration) {
	p, ok := Lookup[pos](h)
	if !ok {
		return
	}
	p.x += v.vx * dt.Seconds()
	p.y += v.vy * dt.Seconds()
}

func (*vel) ComponentName() string { return "Velocity" }

func newTestWorld() *World {
	types := NewTypeRegistry()
	RegisterType[pos](types)
	RegisterType[vel](types)
	return NewWorld(types)
}

func mustViolate(t *testing.T, want error, fn func()) {
	t.Helper()
	defer func() {
		r := recover()
		if r == nil {
			t.Fatalf("expected panic wrapping %v", want)
		}
		err, ok := r.(error)
		if !ok || !errors.Is(err, want) {
			t.Fatalf("panic = %v, want %v", r, want)
		}
	}()
	fn()
}

func TestCreateEntityUniqueIDs(t *testing.T) {
	w := newTestWorld()
	seen := make(map[uint32]bool)
	for i := 0; i < 100; i++ {
		e := w.CreateEntity()
		if !w.CheckEntityValidity(e) {
			t.Fatalf("%s not valid after create", e)
		}
		if seen[e.ID()] {
			t.Fatalf("id %d issued twice", e.ID())
		}
		seen[e.ID()] = true
	}
	if w.EntityCount() != 100 {
		t.Fatalf("EntityCount = %d, want 100", w.EntityCount())
	}
}

func TestDestroyRecyclesWithNewGeneration(t *testing.T) {
	w := newTestWorld()
	e := w.CreateEntity()
	if !w.DestroyEntity(e) {
		t.Fatal("DestroyEntity returned false")
	}
	if w.CheckEntityValidity(e) {
		t.Fatal("destroyed entity still valid")
	}

	r := w.CreateEntity()
	if r.ID() != e.ID() {
		t.Fatalf("expected id reuse, got %d want %d", r.ID(), e.ID())
	}
	if r.Gen() <= e.Gen() {
		t.Fatalf("generation %d not greater than %d", r.Gen(), e.Gen())
	}
	if !w.CheckEntityValidity(r) {
		t.Fatal("recycled entity not valid")
	}
	if w.CheckEntityValidity(e) {
		t.Fatal("stale handle must stay invalid after recycle")
	}
}

func TestCheckEntityValidityOutOfRange(t *testing.T) {
	w := newTestWorld()
	if w.CheckEntityValidity(NewEntity(42, 0)) {
		t.Fatal("out-of-range id reported valid")
	}
	if w.CheckEntityValidity(Entity(0)) {
		t.Fatal("invalid entity reported valid")
	}
}

func TestAddHasRemove(t *testing.T) {
	w := newTestWorld()
	id := IDOf[pos](w.Types())
	e := w.CreateEntity()

	if w.HasComponent(e, id) {
		t.Fatal("HasComponent before add")
	}
	w.AddComponent(e, id, &pos{x: 1})
	if !w.HasComponent(e, id) {
		t.Fatal("HasComponent false after add")
	}
	if got := w.GetComponent(e, id).(*pos); got.x != 1 {
		t.Fatalf("x = %v, want 1", got.x)
	}
	w.RemoveComponent(e, id)
	if w.HasComponent(e, id) {
		t.Fatal("HasComponent true after remove")
	}
	if w.GetComponent(e, id) != nil {
		t.Fatal("GetComponent must return nil when absent")
	}
}

func TestContractViolations(t *testing.T) {
	w := newTestWorld()
	id := IDOf[pos](w.Types())
	e := w.CreateEntity()
	w.AddComponent(e, id, &pos{})

	mustViolate(t, ErrDuplicateComponent, func() { w.AddComponent(e, id, &pos{}) })
	mustViolate(t, ErrMissingComponent, func() { w.RemoveComponent(e, IDOf[vel](w.Types())) })

	w.DestroyEntity(e)
	mustViolate(t, ErrInvalidEntity, func() { w.CommitEntity(e) })
	mustViolate(t, ErrInvalidEntity, func() { w.DestroyEntity(e) })
	mustViolate(t, ErrInvalidEntity, func() { w.AddComponent(e, id, &pos{}) })
	mustViolate(t, ErrInvalidEntity, func() { w.HasComponent(e, id) })
	mustViolate(t, ErrInvalidEntity, func() { w.HasComponent(Entity(0), id) })
}

func TestViewRequiresCommit(t *testing.T) {
	w := newTestWorld()
	pid, vid := IDOf[pos](w.Types()), IDOf[vel](w.Types())
	e := w.CreateEntity()
	w.AddComponent(e, pid, &pos{})
	w.AddComponent(e, vid, &vel{})

	if len(w.View(pid)) != 0 || len(w.View(vid)) != 0 {
		t.Fatal("view populated before commit")
	}
	w.CommitEntity(e)
	if !slices.Equal(w.View(pid), []Entity{e}) || !slices.Equal(w.View(vid), []Entity{e}) {
		t.Fatalf("views after commit = %v, %v", w.View(pid), w.View(vid))
	}

	w.DestroyEntity(e)
	if len(w.View(pid)) != 0 || len(w.View(vid)) != 0 {
		t.Fatal("views not emptied by destroy")
	}
	if w.CheckEntityValidity(e) {
		t.Fatal("entity valid after destroy")
	}
}

func TestAddAfterCommitIsIndexed(t *testing.T) {
	w := newTestWorld()
	pid, vid := IDOf[pos](w.Types()), IDOf[vel](w.Types())
	e := w.CreateEntity()
	w.AddComponent(e, pid, &pos{})
	w.CommitEntity(e)

	w.AddComponent(e, vid, &vel{})
	if !slices.Contains(w.View(vid), e) {
		t.Fatal("component added after commit not visible")
	}

	w.RemoveComponent(e, vid)
	if w.ViewLen(vid) != 0 {
		t.Fatal("removed component still indexed")
	}
}

func TestRemoveBeforeCommitNeverIndexed(t *testing.T) {
	w := newTestWorld()
	pid := IDOf[pos](w.Types())
	e := w.CreateEntity()
	w.AddComponent(e, pid, &pos{})
	w.RemoveComponent(e, pid)
	w.CommitEntity(e)
	if w.ViewLen(pid) != 0 {
		t.Fatal("component removed before commit appeared in view")
	}
}

func TestRecycledEntityNeedsCommit(t *testing.T) {
	w := newTestWorld()
	pid := IDOf[pos](w.Types())
	e := w.CreateEntity()
	w.CommitEntity(e)
	w.DestroyEntity(e)

	r := w.CreateEntity()
	if w.IsCommitted(r) {
		t.Fatal("recycled slot inherited committed flag")
	}
	w.AddComponent(r, pid, &pos{})
	if w.ViewLen(pid) != 0 {
		t.Fatal("recycled entity visible before commit")
	}
}

func TestViewOrderedAndEmpty(t *testing.T) {
	w := newTestWorld()
	pid := IDOf[pos](w.Types())
	if v := w.View(pid); len(v) != 0 {
		t.Fatalf("empty view = %v", v)
	}
	if v := w.View(ComponentID(999)); len(v) != 0 {
		t.Fatalf("unknown id view = %v", v)
	}

	var want []Entity
	for i := 0; i < 5; i++ {
		e := w.CreateEntity()
		w.AddComponent(e, pid, &pos{})
		w.CommitEntity(e)
		want = append(want, e)
	}
	if got := w.View(pid); !slices.Equal(got, want) {
		t.Fatalf("View = %v, want %v", got, want)
	}
}

func TestGetHavingComponents(t *testing.T) {
	w := newTestWorld()
	pid, vid := IDOf[pos](w.Types()), IDOf[vel](w.Types())
	e := w.CreateEntity()
	if got := w.GetHavingComponents(e); len(got) != 0 {
		t.Fatalf("fresh entity has %v", got)
	}
	w.AddComponent(e, vid, &vel{})
	w.AddComponent(e, pid, &pos{})
	if got := w.GetHavingComponents(e); !slices.Equal(got, []ComponentID{pid, vid}) {
		t.Fatalf("GetHavingComponents = %v", got)
	}
}

func TestHandleGenericHelpers(t *testing.T) {
	w := newTestWorld()
	h := NewHandle(w, w.CreateEntity())

	if Attach[pos](h, &velConfig{}) {
		t.Fatal("Attach must reject a mismatched config")
	}
	if Has[pos](h) {
		t.Fatal("rejected Attach left a component behind")
	}
	if !Attach[pos](h, &posConfig{X: 2, Y: 3}) {
		t.Fatal("Attach failed")
	}
	if !Attach[vel](h, &velConfig{VX: 1, VY: -1}) {
		t.Fatal("Attach failed")
	}
	h.Commit()

	v, ok := Lookup[vel](h)
	if !ok {
		t.Fatal("Lookup vel failed")
	}
	v.Update(h, 2*time.Second)
	p, _ := Lookup[pos](h)
	if p.x != 4 || p.y != 1 {
		t.Fatalf("pos = (%v, %v), want (4, 1)", p.x, p.y)
	}

	Detach[vel](h)
	if Has[vel](h) {
		t.Fatal("Detach did not remove")
	}
	if !h.Destroy() || h.IsValid() {
		t.Fatal("handle destroy failed")
	}
}

func TestEachAndEach2(t *testing.T) {
	w := newTestWorld()
	both := NewHandle(w, w.CreateEntity())
	Attach[pos](both, &posConfig{})
	Attach[vel](both, &velConfig{})
	both.Commit()

	only := NewHandle(w, w.CreateEntity())
	Attach[pos](only, &posConfig{})
	only.Commit()

	uncommitted := NewHandle(w, w.CreateEntity())
	Attach[pos](uncommitted, &posConfig{})

	var n int
	Each[pos](w, func(EntityHandle, *pos) { n++ })
	if n != 2 {
		t.Fatalf("Each visited %d, want 2", n)
	}

	var got []Entity
	Each2[pos, vel](w, func(h EntityHandle, _ *pos, _ *vel) { got = append(got, h.Entity()) })
	if !slices.Equal(got, []Entity{both.Entity()}) {
		t.Fatalf("Each2 visited %v", got)
	}
}
