package session

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/mapeditor/placement"
)

// AddEntity places a new entity of kind under the next free tag.
func (s *Session) AddEntity(kind placement.Kind, pos placement.Position) (placement.Entity, error) {
	e, err := s.store.Add(kind, pos)
	if err != nil {
		s.log.WithError(err).WithField("kind", kind).Warn("add rejected")
		return placement.Entity{}, err
	}
	s.surface.Place(e.Handle, e.Kind, e.Position)
	s.changes++
	s.log.WithFields(logrus.Fields{"tag": e.Tag, "x": pos.X, "y": pos.Y}).Debug("entity added")
	return e, nil
}

// MoveEntity sets the stored and rendered position of tag.
func (s *Session) MoveEntity(tag placement.Tag, pos placement.Position) error {
	if err := s.store.Move(tag, pos); err != nil {
		s.log.WithError(err).WithField("tag", tag).Warn("move ignored")
		return err
	}
	e, _ := s.store.Get(tag)
	if s.drag.active && s.drag.handle == e.Handle {
		s.drag = dragState{}
	}
	s.surface.Place(e.Handle, e.Kind, e.Position)
	s.changes++
	return nil
}

// RemoveEntity deletes tag and renumbers the rest of its kind.
func (s *Session) RemoveEntity(tag placement.Tag) error {
	e, ok := s.store.Get(tag)
	if !ok {
		err := fmt.Errorf("remove %s: %w", tag, placement.ErrTagNotFound)
		s.log.WithError(err).WithField("tag", tag).Warn("remove ignored")
		return err
	}
	return s.remove(e)
}

// DeleteSelected removes the selected entity. It reports whether anything
// was deleted; without a selection it does nothing.
func (s *Session) DeleteSelected() bool {
	if !s.hasSelect {
		return false
	}
	e, ok := s.store.ByHandle(s.selected)
	if !ok {
		s.clearSelection()
		return false
	}
	return s.remove(e) == nil
}

func (s *Session) remove(e placement.Entity) error {
	renames, err := s.store.Remove(e.Tag)
	if err != nil {
		s.log.WithError(err).WithField("tag", e.Tag).Warn("remove ignored")
		return err
	}
	if s.drag.active && s.drag.handle == e.Handle {
		s.drag = dragState{}
	}
	if s.hasSelect && s.selected == e.Handle {
		s.clearSelection()
	}
	s.surface.Delete(e.Handle)
	s.changes++

	fields := logrus.Fields{"tag": e.Tag}
	if len(renames) > 0 {
		renamed := make([]string, 0, len(renames))
		for _, r := range renames {
			renamed = append(renamed, r.From.String()+"->"+r.To.String())
		}
		fields["renamed"] = renamed
	}
	s.log.WithFields(fields).Info("entity deleted")
	return nil
}
