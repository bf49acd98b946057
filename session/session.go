// Package session drives the load, edit and save cycle of one level at a
// time. A Session is owned by a single goroutine (the editor's update loop or
// a CLI) and is not safe for concurrent use.
package session

import (
	"errors"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/mapeditor/levels"
	"github.com/milk9111/mapeditor/placement"
)

var ErrNoLevel = errors.New("no level loaded")

// Surface is the rendering side of the editor. It keeps one item per entity,
// addressed by the entity's handle.
type Surface interface {
	Place(h placement.Handle, kind placement.Kind, pos placement.Position)
	Nearest(p placement.Position, radius float64) (placement.Handle, bool)
	Move(h placement.Handle, dx, dy float64) bool
	Coords(h placement.Handle) (placement.Position, bool)
	Delete(h placement.Handle)
	Clear()
}

type Options struct {
	// Dir holds the <level>_config.txt files.
	Dir string
	// GrabRadius limits how far from an item a press may be and still grab
	// it. Zero or less grabs the nearest item wherever it is.
	GrabRadius float64
	Log        *logrus.Entry
}

type dragState struct {
	active bool
	handle placement.Handle
	last   placement.Position
}

type Session struct {
	dir        string
	grabRadius float64
	log        *logrus.Entry

	surface Surface
	store   *placement.Store
	active  levels.ID
	loaded  bool

	drag      dragState
	selected  placement.Handle
	hasSelect bool
	changes   int
}

func New(surface Surface, opts Options) *Session {
	log := opts.Log
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	return &Session{
		dir:        opts.Dir,
		grabRadius: opts.GrabRadius,
		log:        log.WithField("component", "session"),
		surface:    surface,
		store:      placement.NewStore(),
	}
}

// Active returns the level being edited, or "" before the first Load.
func (s *Session) Active() levels.ID { return s.active }

func (s *Session) Loaded() bool { return s.loaded }

// Path returns the config file of the active level.
func (s *Session) Path() string {
	if !s.loaded {
		return ""
	}
	return levels.Path(s.dir, s.active)
}

// Dirty reports whether there are edits since the last load or save.
func (s *Session) Dirty() bool { return s.changes > 0 }

// Changes counts the edits since the last load or save.
func (s *Session) Changes() int { return s.changes }

func (s *Session) Entities(kind placement.Kind) []placement.Entity {
	return s.store.List(kind)
}

func (s *Session) Entity(tag placement.Tag) (placement.Entity, bool) {
	return s.store.Get(tag)
}

// EntityAt resolves a surface handle.
func (s *Session) EntityAt(h placement.Handle) (placement.Entity, bool) {
	return s.store.ByHandle(h)
}

// Selected returns the entity chosen for deletion, if any.
func (s *Session) Selected() (placement.Entity, bool) {
	if !s.hasSelect {
		return placement.Entity{}, false
	}
	return s.store.ByHandle(s.selected)
}

func (s *Session) Dragging() bool { return s.drag.active }

func (s *Session) clearSelection() {
	s.selected = placement.Handle{}
	s.hasSelect = false
}
