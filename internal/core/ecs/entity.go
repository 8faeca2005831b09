package ecs

import "fmt"

// Entity packs a validity bit, a 31-bit id and a 32-bit generation into one word.
// The zero value is invalid and must never be used for lookups.
type Entity uint64

const (
	validShift = 0
	idShift    = 1
	genShift   = 32

	validMask = uint64(1)
	idMask    = uint64(1)<<31 - 1
	genMask   = uint64(1)<<32 - 1
)

// MaxEntityID is the largest id an Entity can encode.
const MaxEntityID = uint32(idMask)

// NewEntity returns a valid entity with the given id and generation.
// Ids above MaxEntityID are truncated.
func NewEntity(id, gen uint32) Entity {
	return Entity(validMask<<validShift |
		(uint64(id)&idMask)<<idShift |
		(uint64(gen)&genMask)<<genShift)
}

func (e Entity) ID() uint32    { return uint32(uint64(e) >> idShift & idMask) }
func (e Entity) Gen() uint32   { return uint32(uint64(e) >> genShift & genMask) }
func (e Entity) IsValid() bool { return uint64(e)>>validShift&validMask != 0 }

// Less orders entities by generation first, then id.
func (e Entity) Less(o Entity) bool {
	if e.Gen() != o.Gen() {
		return e.Gen() < o.Gen()
	}
	return e.ID() < o.ID()
}

// Compare returns -1, 0 or +1 following Less; usable with slices.SortFunc.
func (e Entity) Compare(o Entity) int {
	switch {
	case e == o:
		return 0
	case e.Less(o):
		return -1
	case o.Less(e):
		return 1
	}
	// same id and generation, differing only in validity
	if !e.IsValid() {
		return -1
	}
	return 1
}

func (e Entity) String() string {
	if !e.IsValid() {
		return "entity(invalid)"
	}
	return fmt.Sprintf("entity(%d@%d)", e.ID(), e.Gen())
}
