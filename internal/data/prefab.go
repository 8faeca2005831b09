package data

import (
	"fmt"
	"os"

	"github.com/tecs/engine/internal/core/ecs"
	"go.uber.org/multierr"
	"gopkg.in/yaml.v3"
)

// ComponentSpec names a component type and the fields of its config.
type ComponentSpec struct {
	Type   string    `yaml:"type"`
	Fields yaml.Node `yaml:"fields"`
}

// Prefab is a named entity template. Script, when set, names the Lua
// behavior class the spawned entity object runs.
type Prefab struct {
	Name       string          `yaml:"name"`
	Script     string          `yaml:"script"`
	Components []ComponentSpec `yaml:"components"`
}

// SpawnEntry asks for Count instances of a prefab at startup.
type SpawnEntry struct {
	Prefab string `yaml:"prefab"`
	Count  int    `yaml:"count"`
}

type prefabFile struct {
	Prefabs []Prefab     `yaml:"prefabs"`
	Spawns  []SpawnEntry `yaml:"spawns"`
}

// PrefabTable provides lookup of prefabs by name plus the startup spawn list.
type PrefabTable struct {
	prefabs map[string]*Prefab
	order   []string
	spawns  []SpawnEntry
}

// LoadPrefabTable loads a prefab YAML file and validates it against types.
func LoadPrefabTable(path string, types *ecs.TypeRegistry) (*PrefabTable, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prefab list: %w", err)
	}
	return ParsePrefabTable(raw, types)
}

// ParsePrefabTable decodes raw and reports every validation problem at once.
func ParsePrefabTable(raw []byte, types *ecs.TypeRegistry) (*PrefabTable, error) {
	var f prefabFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse prefab list: %w", err)
	}

	t := &PrefabTable{
		prefabs: make(map[string]*Prefab, len(f.Prefabs)),
		order:   make([]string, 0, len(f.Prefabs)),
		spawns:  f.Spawns,
	}
	var errs error
	for i := range f.Prefabs {
		p := &f.Prefabs[i]
		if p.Name == "" {
			errs = multierr.Append(errs, fmt.Errorf("prefab #%d: missing name", i))
			continue
		}
		if _, dup := t.prefabs[p.Name]; dup {
			errs = multierr.Append(errs, fmt.Errorf("prefab %s: defined twice", p.Name))
			continue
		}
		seen := make(map[ecs.ComponentID]bool, len(p.Components))
		for _, cs := range p.Components {
			id, ok := types.Lookup(cs.Type)
			if !ok {
				errs = multierr.Append(errs, fmt.Errorf("prefab %s: unknown component %q", p.Name, cs.Type))
				continue
			}
			if seen[id] {
				errs = multierr.Append(errs, fmt.Errorf("prefab %s: component %s listed twice", p.Name, cs.Type))
			}
			seen[id] = true
		}
		t.prefabs[p.Name] = p
		t.order = append(t.order, p.Name)
	}
	for _, s := range f.Spawns {
		if _, ok := t.prefabs[s.Prefab]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("spawn: unknown prefab %q", s.Prefab))
		}
		if s.Count < 1 {
			errs = multierr.Append(errs, fmt.Errorf("spawn %s: count must be positive", s.Prefab))
		}
	}
	if errs != nil {
		return nil, fmt.Errorf("validate prefab list: %w", errs)
	}
	return t, nil
}

// Get returns the named prefab, or nil.
func (t *PrefabTable) Get(name string) *Prefab {
	return t.prefabs[name]
}

// Names returns prefab names in file order.
func (t *PrefabTable) Names() []string { return t.order }

func (t *PrefabTable) Spawns() []SpawnEntry { return t.spawns }

// Count returns the number of prefabs loaded.
func (t *PrefabTable) Count() int {
	return len(t.prefabs)
}

// Apply builds every component of the prefab and attaches it to h. Each
// component starts from its own Export, has the YAML fields decoded over it,
// and is imported back. The entity is left uncommitted.
func (p *Prefab) Apply(h ecs.EntityHandle) error {
	types := h.World().Types()
	for _, cs := range p.Components {
		id, ok := types.Lookup(cs.Type)
		if !ok {
			return fmt.Errorf("prefab %s: unknown component %q", p.Name, cs.Type)
		}
		c := types.New(id)
		cfg := c.Export()
		if cs.Fields.Kind != 0 {
			if err := cs.Fields.Decode(cfg); err != nil {
				return fmt.Errorf("prefab %s: decode %s fields: %w", p.Name, cs.Type, err)
			}
		}
		if !c.Import(cfg) {
			return fmt.Errorf("prefab %s: %s rejected its config", p.Name, cs.Type)
		}
		h.AddComponent(id, c)
	}
	return nil
}
