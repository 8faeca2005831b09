package main

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/tecs/engine/internal/component"
	"github.com/tecs/engine/internal/config"
	"github.com/tecs/engine/internal/core/ecs"
	"github.com/tecs/engine/internal/core/object"
	coresys "github.com/tecs/engine/internal/core/system"
	"github.com/tecs/engine/internal/data"
	"github.com/tecs/engine/internal/scripting"
	"go.uber.org/zap/zaptest"
)

func TestSpawnAllFromRepoData(t *testing.T) {
	types := ecs.NewTypeRegistry()
	component.Register(types)
	log := zaptest.NewLogger(t)

	prefabs, err := data.LoadPrefabTable(filepath.Join("..", "..", "data", "prefabs.yaml"), types)
	if err != nil {
		t.Fatal(err)
	}
	engine, err := scripting.NewEngine(filepath.Join("..", "..", "scripts"), types, log)
	if err != nil {
		t.Fatal(err)
	}
	defer engine.Close()

	w := ecs.NewWorld(types)
	g := object.NewGraph()
	n, err := spawnAll(prefabs, object.NewSpawner(w, g, log), engine)
	if err != nil {
		t.Fatal(err)
	}
	if n != 5 || g.Len() != 5 {
		t.Fatalf("spawned %d (graph %d), want 5", n, g.Len())
	}
	if got := w.ViewLen(ecs.IDOf[component.Transform](types)); got != 5 {
		t.Fatalf("Transform view = %d, want 5", got)
	}
}

func TestSpawnAllNeedsScripting(t *testing.T) {
	types := ecs.NewTypeRegistry()
	component.Register(types)
	raw := []byte("prefabs:\n  - name: a\n    script: A\nspawns:\n  - prefab: a\n    count: 1\n")
	prefabs, err := data.ParsePrefabTable(raw, types)
	if err != nil {
		t.Fatal(err)
	}
	w := ecs.NewWorld(types)
	if _, err := spawnAll(prefabs, object.NewSpawner(w, object.NewGraph(), nil), nil); err == nil {
		t.Fatal("expected error without scripting engine")
	}
}

func TestRepoConfigLoads(t *testing.T) {
	cfg, err := config.Load(filepath.Join("..", "..", "config", "engine.toml"))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := newLogger(cfg.Logging); err != nil {
		t.Fatal(err)
	}
}

func TestRepoDataRunsToCompletion(t *testing.T) {
	types := ecs.NewTypeRegistry()
	component.Register(types)
	log := zaptest.NewLogger(t)

	prefabs, err := data.LoadPrefabTable(filepath.Join("..", "..", "data", "prefabs.yaml"), types)
	if err != nil {
		t.Fatal(err)
	}
	engine, err := scripting.NewEngine(filepath.Join("..", "..", "scripts"), types, log)
	if err != nil {
		t.Fatal(err)
	}
	defer engine.Close()

	w := ecs.NewWorld(types)
	g := object.NewGraph(object.WithLogger(log))
	if _, err := spawnAll(prefabs, object.NewSpawner(w, g, log), engine); err != nil {
		t.Fatal(err)
	}

	sys := coresys.New(w, g, coresys.WithLogger(log))
	for sys.Step(100 * time.Millisecond) {
		if sys.Frame() > 200 {
			t.Fatal("scene never emptied")
		}
	}
	if w.EntityCount() != 0 {
		t.Fatalf("%d entities left", w.EntityCount())
	}
}
