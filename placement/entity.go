package placement

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/google/uuid"
)

// Kind is the category of a placed entity.
type Kind int

const (
	Enemy Kind = iota
	Food
)

// Kinds lists every kind in serialization order.
var Kinds = []Kind{Enemy, Food}

func (k Kind) Name() string {
	switch k {
	case Enemy:
		return "enemy"
	case Food:
		return "food"
	default:
		return "unknown"
	}
}

func (k Kind) String() string { return k.Name() }

func (k Kind) Valid() bool { return k == Enemy || k == Food }

// KindFromName maps "enemy" / "food" back to a Kind.
func KindFromName(name string) (Kind, error) {
	for _, k := range Kinds {
		if strings.EqualFold(name, k.Name()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown entity kind %q", name)
}

// Tag identifies an entity within its kind. The textual form ("enemy3") is
// derived from the kind name and number.
type Tag struct {
	Kind   Kind
	Number int
}

func (t Tag) String() string {
	return t.Kind.Name() + strconv.Itoa(t.Number)
}

// ParseTag parses "<kindname><positive integer>".
func ParseTag(s string) (Tag, error) {
	for _, k := range Kinds {
		rest, ok := strings.CutPrefix(s, k.Name())
		if !ok {
			continue
		}
		n, err := strconv.Atoi(rest)
		if err != nil || n <= 0 || rest[0] == '+' || rest[0] == '0' {
			return Tag{}, fmt.Errorf("tag %q: number must be a positive integer", s)
		}
		return Tag{Kind: k, Number: n}, nil
	}
	return Tag{}, fmt.Errorf("tag %q: unknown kind prefix", s)
}

// Handle is the opaque reference a render surface keeps for an entity. It
// does not change when the entity is renumbered.
type Handle uuid.UUID

func NewHandle() Handle { return Handle(uuid.New()) }

func (h Handle) String() string { return uuid.UUID(h).String() }

func (h Handle) IsZero() bool { return h == Handle{} }

// Position is a top-left anchored point in canvas space.
type Position struct {
	X float64
	Y float64
}

func (p Position) Add(dx, dy float64) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

func (p Position) Finite() bool {
	return !math.IsNaN(p.X) && !math.IsInf(p.X, 0) && !math.IsNaN(p.Y) && !math.IsInf(p.Y, 0)
}

// Entity is a snapshot of a placed enemy or food marker.
type Entity struct {
	Kind     Kind
	Tag      Tag
	Position Position
	Handle   Handle
}
