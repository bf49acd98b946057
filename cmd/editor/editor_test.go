package main

import (
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/mapeditor/canvas"
	"github.com/milk9111/mapeditor/levels"
	"github.com/milk9111/mapeditor/placement"
)

func TestToCanvasPoint(t *testing.T) {
	cases := []struct {
		name   string
		sx, sy int
		want   placement.Position
		in     bool
	}{
		{"origin", 0, toolbarHeight, placement.Position{X: 0, Y: 0}, true},
		{"inside", 100, toolbarHeight + 50, placement.Position{X: 100, Y: 50}, true},
		{"toolbar", 10, 5, placement.Position{X: 10, Y: 5 - toolbarHeight}, false},
		{"right_edge", 640, toolbarHeight + 1, placement.Position{X: 640, Y: 1}, false},
		{"status_bar", 5, toolbarHeight + 480, placement.Position{X: 5, Y: 480}, false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, in := toCanvasPoint(c.sx, c.sy, 640, 480)
			require.Equal(t, c.want, got)
			require.Equal(t, c.in, in)
		})
	}
}

func TestStatusLine(t *testing.T) {
	require.Equal(t, "no level  enemies:0  foods:0", statusLine("", 0, 0, false, ""))
	require.Equal(t, "level2_config.txt *  enemies:3  foods:1  | added food1",
		statusLine(levels.Level2, 3, 1, true, "added food1"))
}

func TestWindowTitle(t *testing.T) {
	require.Equal(t, "Map Editor", windowTitle("", false))
	require.Equal(t, "Map Editor - level3 *", windowTitle(levels.Level3, true))
}

func TestMarkerShapes(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}

	e := ellipseRGBA(24, 12, red)
	require.Equal(t, image.Rect(0, 0, 24, 12), e.Bounds())
	require.Equal(t, red, e.RGBAAt(12, 6))
	require.Equal(t, markerOutline, e.RGBAAt(1, 6))
	require.Equal(t, color.RGBA{}, e.RGBAAt(0, 0))
	require.Equal(t, color.RGBA{}, e.RGBAAt(0, 6))

	tri := triangleRGBA(16, 16, red)
	require.Equal(t, red, tri.RGBAAt(8, 10))
	require.Equal(t, markerOutline, tri.RGBAAt(8, 15))
	require.Equal(t, color.RGBA{}, tri.RGBAAt(0, 0))
	require.Equal(t, color.RGBA{}, tri.RGBAAt(15, 2))
}

func TestMarkerSize(t *testing.T) {
	cases := []struct {
		in   canvas.Size
		w, h int
	}{
		{canvas.Size{W: 32, H: 32}, 32, 32},
		{canvas.Size{W: 24.2, H: 10}, 25, 10},
		{canvas.Size{W: 1, H: 0}, 4, 4},
	}
	for _, c := range cases {
		w, h := markerSize(c.in)
		require.Equal(t, c.w, w)
		require.Equal(t, c.h, h)
	}
}

func TestCloseAction(t *testing.T) {
	cases := []struct {
		name                      string
		loaded, dirty, failedSave bool
		want                      closeDecision
	}{
		{"no_level", false, false, false, closeNow},
		{"clean", true, false, false, closeNow},
		{"dirty_saves", true, true, false, closeSave},
		{"dirty_after_failed_save", true, true, true, closeDiscard},
		{"clean_after_failed_save", true, false, true, closeNow},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			require.Equal(t, c.want, closeAction(c.loaded, c.dirty, c.failedSave))
		})
	}
}

func TestRunRefusesMissingLevel(t *testing.T) {
	dir := t.TempDir()
	err := run(flags{
		settingsPath: filepath.Join(dir, "editor.yaml"),
		level:        "level2",
		dir:          dir,
	})
	require.ErrorIs(t, err, levels.ErrConfigMissing)
	require.Contains(t, err.Error(), "placer -init -dir "+dir)

	err = run(flags{dir: dir, level: "level9"})
	require.ErrorContains(t, err, "-level")
}
