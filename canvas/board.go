// Package canvas models the editing surface: one rendered item per placed
// entity, keyed by its placement.Handle.
//
// Item positions are tracked exactly by the Board. A chipmunk space holds a
// box shape per item and only serves the nearest-item query used when the
// user presses the mouse.
package canvas

import (
	"math"

	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/mapeditor/placement"
)

// Size is an item's extent in canvas pixels.
type Size struct {
	W float64
	H float64
}

// Item is a snapshot of one rendered entity marker.
type Item struct {
	Handle   placement.Handle
	Kind     placement.Kind
	Position placement.Position
	Size     Size
}

type item struct {
	Item
	body  *cp.Body
	shape *cp.Shape
}

// Board is the in-memory scene of entity markers.
type Board struct {
	space *cp.Space
	items map[placement.Handle]*item
	order []placement.Handle
	sizes map[placement.Kind]Size
	log   *logrus.Entry
}

// DefaultSize is used for kinds missing from the sizes passed to NewBoard.
var DefaultSize = Size{W: 32, H: 32}

func NewBoard(sizes map[placement.Kind]Size, log *logrus.Entry) *Board {
	if log == nil {
		log = logrus.NewEntry(logrus.StandardLogger())
	}
	b := &Board{
		sizes: make(map[placement.Kind]Size, len(sizes)),
		log:   log.WithField("component", "canvas"),
	}
	for k, s := range sizes {
		if s.W > 0 && s.H > 0 {
			b.sizes[k] = s
		}
	}
	b.Clear()
	return b
}

// SizeOf returns the marker size used for kind.
func (b *Board) SizeOf(kind placement.Kind) Size {
	if s, ok := b.sizes[kind]; ok {
		return s
	}
	return DefaultSize
}

// Place adds a marker for h at pos, or repositions it if h is already placed.
func (b *Board) Place(h placement.Handle, kind placement.Kind, pos placement.Position) {
	if it, ok := b.items[h]; ok {
		it.Position = pos
		b.sync(it)
		return
	}

	size := b.SizeOf(kind)
	body := cp.NewKinematicBody()
	body.SetPosition(center(pos, size))
	shape := cp.NewBox(body, size.W, size.H, 0)
	shape.UserData = h
	b.space.AddBody(body)
	b.space.AddShape(shape)

	b.items[h] = &item{
		Item:  Item{Handle: h, Kind: kind, Position: pos, Size: size},
		body:  body,
		shape: shape,
	}
	b.order = append(b.order, h)
	b.log.WithFields(logrus.Fields{"handle": h, "kind": kind, "x": pos.X, "y": pos.Y}).Debug("placed")
}

// Nearest returns the item closest to p. Points inside an item count as
// distance zero or less, so covered items win over nearby ones. A radius of
// zero or less means no limit.
func (b *Board) Nearest(p placement.Position, radius float64) (placement.Handle, bool) {
	if len(b.items) == 0 {
		return placement.Handle{}, false
	}
	maxDist := radius
	if maxDist <= 0 {
		maxDist = math.Inf(1)
	}
	info := b.space.PointQueryNearest(cp.Vector{X: p.X, Y: p.Y}, maxDist, cp.SHAPE_FILTER_ALL)
	if info == nil || info.Shape == nil {
		return placement.Handle{}, false
	}
	h, ok := info.Shape.UserData.(placement.Handle)
	if !ok {
		return placement.Handle{}, false
	}
	_, ok = b.items[h]
	return h, ok
}

// Move shifts the marker for h by (dx, dy).
func (b *Board) Move(h placement.Handle, dx, dy float64) bool {
	it, ok := b.items[h]
	if !ok {
		return false
	}
	it.Position = it.Position.Add(dx, dy)
	b.sync(it)
	return true
}

// Coords returns the rendered top-left position of h.
func (b *Board) Coords(h placement.Handle) (placement.Position, bool) {
	it, ok := b.items[h]
	if !ok {
		return placement.Position{}, false
	}
	return it.Position, true
}

// Delete removes the marker for h.
func (b *Board) Delete(h placement.Handle) {
	it, ok := b.items[h]
	if !ok {
		return
	}
	b.space.RemoveShape(it.shape)
	b.space.RemoveBody(it.body)
	delete(b.items, h)
	for i, oh := range b.order {
		if oh == h {
			b.order = append(b.order[:i], b.order[i+1:]...)
			break
		}
	}
	b.log.WithField("handle", h).Debug("deleted")
}

// Clear removes every marker.
func (b *Board) Clear() {
	b.space = cp.NewSpace()
	b.items = make(map[placement.Handle]*item)
	b.order = nil
}

// Items returns the markers in placement order, which is also draw order.
func (b *Board) Items() []Item {
	out := make([]Item, 0, len(b.order))
	for _, h := range b.order {
		out = append(out, b.items[h].Item)
	}
	return out
}

func (b *Board) Len() int { return len(b.items) }

// sync moves the body to the item's position and re-inserts its shape so the
// spatial index sees the new bounds. The space is never stepped.
func (b *Board) sync(it *item) {
	it.body.SetPosition(center(it.Position, it.Size))
	b.space.RemoveShape(it.shape)
	b.space.AddShape(it.shape)
}

// center converts a top-left anchored position to a body center.
func center(pos placement.Position, size Size) cp.Vector {
	return cp.Vector{X: pos.X + size.W/2.0, Y: pos.Y + size.H/2.0}
}
