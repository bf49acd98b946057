package canvas

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/require"

	"github.com/milk9111/mapeditor/placement"
)

func newTestBoard() *Board {
	logger, _ := test.NewNullLogger()
	return NewBoard(map[placement.Kind]Size{
		placement.Enemy: {W: 20, H: 20},
		placement.Food:  {W: 10, H: 10},
	}, logrus.NewEntry(logger))
}

func TestBoardNearest(t *testing.T) {
	b := newTestBoard()
	a := placement.NewHandle()
	c := placement.NewHandle()
	b.Place(a, placement.Enemy, placement.Position{X: 0, Y: 0})
	b.Place(c, placement.Food, placement.Position{X: 100, Y: 100})

	cases := []struct {
		name   string
		point  placement.Position
		radius float64
		want   placement.Handle
		found  bool
	}{
		{"inside_first", placement.Position{X: 5, Y: 5}, 0, a, true},
		{"inside_second", placement.Position{X: 105, Y: 105}, 0, c, true},
		{"outside_but_closest", placement.Position{X: 80, Y: 80}, 0, c, true},
		{"far_away_unlimited", placement.Position{X: -500, Y: -500}, 0, a, true},
		{"outside_radius", placement.Position{X: 50, Y: 50}, 5, placement.Handle{}, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := b.Nearest(tc.point, tc.radius)
			require.Equal(t, tc.found, ok)
			if tc.found {
				require.Equal(t, tc.want, got)
			}
		})
	}
}

func TestBoardEmptyNearest(t *testing.T) {
	_, ok := newTestBoard().Nearest(placement.Position{}, 0)
	require.False(t, ok)
}

func TestBoardMoveUpdatesIndex(t *testing.T) {
	b := newTestBoard()
	a := placement.NewHandle()
	c := placement.NewHandle()
	b.Place(a, placement.Enemy, placement.Position{X: 0, Y: 0})
	b.Place(c, placement.Enemy, placement.Position{X: 200, Y: 0})

	require.True(t, b.Move(a, 300, 50))
	pos, ok := b.Coords(a)
	require.True(t, ok)
	require.Equal(t, placement.Position{X: 300, Y: 50}, pos)

	got, ok := b.Nearest(placement.Position{X: 310, Y: 60}, 0)
	require.True(t, ok)
	require.Equal(t, a, got)

	got, ok = b.Nearest(placement.Position{X: 0, Y: 0}, 0)
	require.True(t, ok)
	require.Equal(t, c, got)
}

func TestBoardDeleteAndClear(t *testing.T) {
	b := newTestBoard()
	a := placement.NewHandle()
	c := placement.NewHandle()
	b.Place(a, placement.Food, placement.Position{})
	b.Place(c, placement.Food, placement.Position{X: 50})

	b.Delete(a)
	require.Equal(t, 1, b.Len())
	require.False(t, b.Move(a, 1, 1))
	got, ok := b.Nearest(placement.Position{}, 0)
	require.True(t, ok)
	require.Equal(t, c, got)

	items := b.Items()
	require.Len(t, items, 1)
	require.Equal(t, Size{W: 10, H: 10}, items[0].Size)

	b.Clear()
	require.Zero(t, b.Len())
	_, ok = b.Nearest(placement.Position{}, 0)
	require.False(t, ok)
}

func TestBoardPlaceExistingRepositions(t *testing.T) {
	b := newTestBoard()
	a := placement.NewHandle()
	b.Place(a, placement.Enemy, placement.Position{X: 1, Y: 1})
	b.Place(a, placement.Enemy, placement.Position{X: 7, Y: 9})
	require.Equal(t, 1, b.Len())
	pos, _ := b.Coords(a)
	require.Equal(t, placement.Position{X: 7, Y: 9}, pos)
}

func TestBoardIndexFollowsRepeatedMoves(t *testing.T) {
	b := newTestBoard()
	a := placement.NewHandle()
	b.Place(a, placement.Food, placement.Position{X: 0, Y: 0})

	for i := 0; i < 5; i++ {
		require.True(t, b.Move(a, 40, 30))
	}
	b.Place(a, placement.Food, placement.Position{X: 400, Y: 400})

	_, ok := b.Nearest(placement.Position{X: 205, Y: 155}, 8)
	require.False(t, ok)

	got, ok := b.Nearest(placement.Position{X: 405, Y: 405}, 8)
	require.True(t, ok)
	require.Equal(t, a, got)
}
