package ecs

// entityPool tracks every slot ever allocated. A destroyed slot goes onto the
// free list and comes back with its generation advanced by one.
type entityPool struct {
	entities  []Entity
	validity  []bool
	committed []bool
	freeList  []Entity
}

func newEntityPool() *entityPool {
	return &entityPool{
		entities:  make([]Entity, 0, 1024),
		validity:  make([]bool, 0, 1024),
		committed: make([]bool, 0, 1024),
		freeList:  make([]Entity, 0, 256),
	}
}

func (p *entityPool) create() Entity {
	if n := len(p.freeList); n > 0 {
		old := p.freeList[n-1]
		p.freeList = p.freeList[:n-1]
		e := NewEntity(old.ID(), old.Gen()+1)
		p.entities[e.ID()] = e
		p.validity[e.ID()] = true
		p.committed[e.ID()] = false
		return e
	}
	id := uint32(len(p.entities))
	if id > MaxEntityID {
		panic("ecs: entity id space exhausted")
	}
	e := NewEntity(id, 0)
	p.entities = append(p.entities, e)
	p.validity = append(p.validity, true)
	p.committed = append(p.committed, false)
	return e
}

// alive reports whether e is the live occupant of its slot.
func (p *entityPool) alive(e Entity) bool {
	if !e.IsValid() {
		return false
	}
	id := e.ID()
	if int(id) >= len(p.entities) {
		return false
	}
	return p.validity[id] && p.entities[id] == e
}

func (p *entityPool) release(e Entity) {
	id := e.ID()
	p.validity[id] = false
	p.committed[id] = false
	p.freeList = append(p.freeList, e)
}

func (p *entityPool) len() int { return len(p.entities) }

func (p *entityPool) free() int { return len(p.freeList) }
