package session

import (
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/mapeditor/levels"
	"github.com/milk9111/mapeditor/placement"
)

// Load replaces the in-memory state with the content of id's config file.
// Unsaved edits are dropped. On error the current state is kept as is.
func (s *Session) Load(id levels.ID) error {
	path := levels.Path(s.dir, id)
	cfg, err := levels.Read(path)
	if err != nil {
		s.log.WithError(err).WithField("level", id).Error("load failed")
		return fmt.Errorf("load %s: %w", id, err)
	}
	store := placement.NewStore()
	if err := cfg.Populate(store); err != nil {
		s.log.WithError(err).WithField("level", id).Error("load failed")
		return fmt.Errorf("load %s: %s: %w", id, path, err)
	}

	s.drag = dragState{}
	s.clearSelection()
	s.surface.Clear()
	for _, e := range store.All() {
		s.surface.Place(e.Handle, e.Kind, e.Position)
	}
	s.store = store
	s.active = id
	s.loaded = true
	s.changes = 0

	s.log.WithFields(logrus.Fields{
		"level":   id,
		"path":    path,
		"enemies": store.Len(placement.Enemy),
		"foods":   store.Len(placement.Food),
	}).Info("level loaded")
	return nil
}

// Reload reads the active level's file again.
func (s *Session) Reload() error {
	if !s.loaded {
		return ErrNoLevel
	}
	return s.Load(s.active)
}

// Switch makes id the active level. A drag in progress is abandoned and
// unsaved edits of the previous level are discarded; nothing is saved
// automatically. If loading id fails the previous level stays active.
func (s *Session) Switch(id levels.ID) error {
	if s.drag.active {
		s.CancelDrag()
	}
	if s.loaded && s.changes > 0 && id != s.active {
		s.log.WithFields(logrus.Fields{
			"from":      s.active,
			"to":        id,
			"discarded": s.changes,
		}).Warn("switching level with unsaved changes; they are discarded")
	}
	return s.Load(id)
}

// Save writes the store to the active level's file, overwriting it.
func (s *Session) Save() error {
	if !s.loaded {
		return ErrNoLevel
	}
	path := levels.Path(s.dir, s.active)
	if err := levels.Write(path, levels.FromStore(s.store)); err != nil {
		s.log.WithError(err).WithField("path", path).Error("save failed")
		return fmt.Errorf("save %s: %w", s.active, err)
	}
	s.changes = 0
	s.log.WithFields(logrus.Fields{
		"level":   s.active,
		"path":    path,
		"enemies": s.store.Len(placement.Enemy),
		"foods":   s.store.Len(placement.Food),
	}).Info("config saved")
	return nil
}
