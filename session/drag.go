package session

import (
	"github.com/sirupsen/logrus"

	"github.com/milk9111/mapeditor/placement"
)

// PointerDown grabs the entity nearest to p and selects it. It reports
// whether a drag started; pressing away from every entity is a no-op.
func (s *Session) PointerDown(p placement.Position) bool {
	if s.drag.active {
		s.PointerUp(s.drag.last)
	}
	h, ok := s.surface.Nearest(p, s.grabRadius)
	if !ok {
		return false
	}
	e, ok := s.store.ByHandle(h)
	if !ok {
		return false
	}
	s.drag = dragState{active: true, handle: h, last: p}
	s.selected = h
	s.hasSelect = true
	s.log.WithField("tag", e.Tag).Debug("drag started")
	return true
}

// PointerMove drags the grabbed item along with the pointer. Only the
// rendered item moves; the store is written on PointerUp.
func (s *Session) PointerMove(p placement.Position) bool {
	if !s.drag.active {
		return false
	}
	dx := p.X - s.drag.last.X
	dy := p.Y - s.drag.last.Y
	s.surface.Move(s.drag.handle, dx, dy)
	s.drag.last = p
	return true
}

// PointerUp commits the dragged item's rendered position to the store.
func (s *Session) PointerUp(p placement.Position) bool {
	if !s.drag.active {
		return false
	}
	h := s.drag.handle
	s.drag = dragState{}

	e, ok := s.store.ByHandle(h)
	if !ok {
		return false
	}
	pos, ok := s.surface.Coords(h)
	if !ok {
		s.log.WithField("tag", e.Tag).Warn("dragged item vanished from the canvas")
		return false
	}
	if pos == e.Position {
		return true
	}
	if err := s.store.Move(e.Tag, pos); err != nil {
		s.log.WithError(err).WithField("tag", e.Tag).Warn("move ignored")
		s.surface.Place(h, e.Kind, e.Position)
		return false
	}
	s.changes++
	s.log.WithFields(logrus.Fields{"tag": e.Tag, "x": pos.X, "y": pos.Y}).Info("new position")
	return true
}

// CancelDrag abandons a drag in progress and puts the item back where the
// store has it.
func (s *Session) CancelDrag() {
	if !s.drag.active {
		return
	}
	h := s.drag.handle
	s.drag = dragState{}
	if e, ok := s.store.ByHandle(h); ok {
		s.surface.Place(h, e.Kind, e.Position)
	}
}
