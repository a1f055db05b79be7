package entity

import (
	"errors"
	"fmt"
	"slices"

	"github.com/zyedidia/generic/mapset"
)

// ErrNoSuchEntity is returned when a component is attached to an unknown ID.
var ErrNoSuchEntity = errors.New("no such entity")

// ID identifies an entity. IDs are never reused.
type ID uint32

// Store owns every entity and its components. An entity has a component when
// its ID is a key in that component's store.
type Store struct {
	next        ID
	alive       mapset.Set[ID]
	positions   map[ID]*Position
	viewsheds   map[ID]*Viewshed
	renderables map[ID]Renderable
	players     mapset.Set[ID]
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		next:        1,
		alive:       mapset.New[ID](),
		positions:   make(map[ID]*Position),
		viewsheds:   make(map[ID]*Viewshed),
		renderables: make(map[ID]Renderable),
		players:     mapset.New[ID](),
	}
}

// Create allocates a new entity with no components.
func (s *Store) Create() ID {
	id := s.next
	s.next++
	s.alive.Put(id)
	return id
}

// Destroy removes an entity and all its components.
func (s *Store) Destroy(id ID) {
	s.alive.Remove(id)
	delete(s.positions, id)
	delete(s.viewsheds, id)
	delete(s.renderables, id)
	s.players.Remove(id)
}

// Alive returns true if the entity exists.
func (s *Store) Alive(id ID) bool {
	return s.alive.Has(id)
}

// Len returns the number of live entities.
func (s *Store) Len() int {
	return s.alive.Size()
}

func (s *Store) check(id ID) error {
	if !s.alive.Has(id) {
		return fmt.Errorf("%w: %d", ErrNoSuchEntity, id)
	}
	return nil
}

// AddPosition attaches or replaces the entity's position.
func (s *Store) AddPosition(id ID, pos Position) error {
	if err := s.check(id); err != nil {
		return err
	}
	s.positions[id] = &pos
	return nil
}

// AddViewshed attaches an empty viewshed with the given range.
func (s *Store) AddViewshed(id ID, sightRange int) error {
	if err := s.check(id); err != nil {
		return err
	}
	v, err := NewViewshed(sightRange)
	if err != nil {
		return err
	}
	s.viewsheds[id] = v
	return nil
}

// AddRenderable attaches or replaces the entity's renderable.
func (s *Store) AddRenderable(id ID, r Renderable) error {
	if err := s.check(id); err != nil {
		return err
	}
	s.renderables[id] = r
	return nil
}

// TagPlayer marks the entity as player-controlled.
func (s *Store) TagPlayer(id ID) error {
	if err := s.check(id); err != nil {
		return err
	}
	s.players.Put(id)
	return nil
}

// Position returns the entity's position for in-place mutation.
func (s *Store) Position(id ID) (*Position, bool) {
	p, ok := s.positions[id]
	return p, ok
}

// Viewshed returns the entity's viewshed.
func (s *Store) Viewshed(id ID) (*Viewshed, bool) {
	v, ok := s.viewsheds[id]
	return v, ok
}

// Renderable returns the entity's renderable.
func (s *Store) Renderable(id ID) (Renderable, bool) {
	r, ok := s.renderables[id]
	return r, ok
}

// IsPlayer returns true if the entity carries the player tag.
func (s *Store) IsPlayer(id ID) bool {
	return s.players.Has(id)
}

// Players returns player-tagged entities that have a position, in ID order.
func (s *Store) Players() []ID {
	var ids []ID
	s.players.Each(func(id ID) {
		if _, ok := s.positions[id]; ok {
			ids = append(ids, id)
		}
	})
	slices.Sort(ids)
	return ids
}

// WithViewshed returns entities that have both a position and a viewshed, in
// ID order.
func (s *Store) WithViewshed() []ID {
	ids := make([]ID, 0, len(s.viewsheds))
	for id := range s.viewsheds {
		if _, ok := s.positions[id]; ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}

// WithRenderable returns entities that have both a position and a
// renderable, in ID order.
func (s *Store) WithRenderable() []ID {
	ids := make([]ID, 0, len(s.renderables))
	for id := range s.renderables {
		if _, ok := s.positions[id]; ok {
			ids = append(ids, id)
		}
	}
	slices.Sort(ids)
	return ids
}
