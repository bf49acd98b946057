package placement

import (
	"errors"
	"fmt"
)

var (
	ErrTagNotFound     = errors.New("tag not found")
	ErrDuplicateTag    = errors.New("duplicate tag")
	ErrInvalidPosition = errors.New("position must be finite")
	ErrInvalidKind     = errors.New("invalid entity kind")
)

// Rename records a tag change caused by renumbering after a removal.
type Rename struct {
	From Tag
	To   Tag
}

type record struct {
	number int
	pos    Position
	handle Handle
}

// roster holds the entities of one kind in insertion order.
type roster struct {
	records []*record
	counter int
}

func (r *roster) index(number int) int {
	for i, rec := range r.records {
		if rec.number == number {
			return i
		}
	}
	return -1
}

// Store owns every placed entity of a level. Within a kind, tags are kept
// contiguous (1..N) after each removal.
type Store struct {
	rosters  map[Kind]*roster
	byHandle map[Handle]Kind
}

func NewStore() *Store {
	s := &Store{}
	s.Reset()
	return s
}

// Reset drops every entity and counter.
func (s *Store) Reset() {
	s.rosters = make(map[Kind]*roster, len(Kinds))
	for _, k := range Kinds {
		s.rosters[k] = &roster{}
	}
	s.byHandle = make(map[Handle]Kind)
}

// Add places a new entity of kind at pos under the next free tag.
func (s *Store) Add(kind Kind, pos Position) (Entity, error) {
	r, ok := s.rosters[kind]
	if !ok {
		return Entity{}, fmt.Errorf("add %d: %w", kind, ErrInvalidKind)
	}
	if !pos.Finite() {
		return Entity{}, fmt.Errorf("add %s: %w", kind, ErrInvalidPosition)
	}
	r.counter++
	for r.index(r.counter) >= 0 {
		r.counter++
	}
	return s.insert(kind, r, r.counter, pos), nil
}

// Insert places an entity under an explicit tag. A tag already in use is
// rejected and the existing entity is left untouched.
func (s *Store) Insert(tag Tag, pos Position) (Entity, error) {
	r, ok := s.rosters[tag.Kind]
	if !ok {
		return Entity{}, fmt.Errorf("insert %s: %w", tag, ErrInvalidKind)
	}
	if tag.Number <= 0 {
		return Entity{}, fmt.Errorf("insert %s: number must be positive", tag)
	}
	if !pos.Finite() {
		return Entity{}, fmt.Errorf("insert %s: %w", tag, ErrInvalidPosition)
	}
	if r.index(tag.Number) >= 0 {
		return Entity{}, fmt.Errorf("insert %s: %w", tag, ErrDuplicateTag)
	}
	r.counter++
	return s.insert(tag.Kind, r, tag.Number, pos), nil
}

func (s *Store) insert(kind Kind, r *roster, number int, pos Position) Entity {
	rec := &record{number: number, pos: pos, handle: NewHandle()}
	r.records = append(r.records, rec)
	s.byHandle[rec.handle] = kind
	return entityOf(kind, rec)
}

// Remove deletes the entity named by tag and renumbers the remaining entities
// of that kind to 1..N in insertion order. Tags do not survive removals of
// other entities; use the Handle for a stable reference.
func (s *Store) Remove(tag Tag) ([]Rename, error) {
	r, ok := s.rosters[tag.Kind]
	if !ok {
		return nil, fmt.Errorf("remove %s: %w", tag, ErrInvalidKind)
	}
	i := r.index(tag.Number)
	if i < 0 {
		return nil, fmt.Errorf("remove %s: %w", tag, ErrTagNotFound)
	}
	delete(s.byHandle, r.records[i].handle)
	r.records = append(r.records[:i], r.records[i+1:]...)

	var renames []Rename
	for n, rec := range r.records {
		want := n + 1
		if rec.number != want {
			renames = append(renames, Rename{
				From: Tag{Kind: tag.Kind, Number: rec.number},
				To:   Tag{Kind: tag.Kind, Number: want},
			})
			rec.number = want
		}
	}
	r.counter = len(r.records)
	return renames, nil
}

// Move overwrites the position of the entity named by tag.
func (s *Store) Move(tag Tag, pos Position) error {
	r, ok := s.rosters[tag.Kind]
	if !ok {
		return fmt.Errorf("move %s: %w", tag, ErrInvalidKind)
	}
	i := r.index(tag.Number)
	if i < 0 {
		return fmt.Errorf("move %s: %w", tag, ErrTagNotFound)
	}
	if !pos.Finite() {
		return fmt.Errorf("move %s: %w", tag, ErrInvalidPosition)
	}
	r.records[i].pos = pos
	return nil
}

// Get returns the entity currently named by tag.
func (s *Store) Get(tag Tag) (Entity, bool) {
	r, ok := s.rosters[tag.Kind]
	if !ok {
		return Entity{}, false
	}
	i := r.index(tag.Number)
	if i < 0 {
		return Entity{}, false
	}
	return entityOf(tag.Kind, r.records[i]), true
}

// ByHandle resolves a render handle to the entity it refers to.
func (s *Store) ByHandle(h Handle) (Entity, bool) {
	kind, ok := s.byHandle[h]
	if !ok {
		return Entity{}, false
	}
	for _, rec := range s.rosters[kind].records {
		if rec.handle == h {
			return entityOf(kind, rec), true
		}
	}
	return Entity{}, false
}

// List returns the entities of kind in insertion order.
func (s *Store) List(kind Kind) []Entity {
	r, ok := s.rosters[kind]
	if !ok {
		return nil
	}
	out := make([]Entity, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, entityOf(kind, rec))
	}
	return out
}

// All returns every entity, enemies first.
func (s *Store) All() []Entity {
	var out []Entity
	for _, k := range Kinds {
		out = append(out, s.List(k)...)
	}
	return out
}

func (s *Store) Len(kind Kind) int {
	if r, ok := s.rosters[kind]; ok {
		return len(r.records)
	}
	return 0
}

func entityOf(kind Kind, rec *record) Entity {
	return Entity{
		Kind:     kind,
		Tag:      Tag{Kind: kind, Number: rec.number},
		Position: rec.pos,
		Handle:   rec.handle,
	}
}
