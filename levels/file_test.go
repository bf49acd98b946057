package levels

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/mapeditor/placement"
)

func TestReadMissing(t *testing.T) {
	_, err := Read(Path(t.TempDir(), Level2))
	require.ErrorIs(t, err, ErrConfigMissing)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestWriteThenRead(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "config")
	path := Path(dir, Level1)
	cfg := &Config{
		Enemies: []Placement{{Tag: placement.Tag{Kind: placement.Enemy, Number: 1}, Position: placement.Position{X: 12.75, Y: 3}}},
		Foods:   []Placement{{Tag: placement.Tag{Kind: placement.Food, Number: 1}, Position: placement.Position{X: -1, Y: 0.1}}},
	}
	require.NoError(t, Write(path, cfg))

	got, err := Read(path)
	require.NoError(t, err)
	require.Equal(t, cfg, got)
}

func TestReadReportsPath(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir, Level3)
	require.NoError(t, os.WriteFile(path, []byte("# Enemies Configuration\nenemy1_x=oops\n"), 0o644))

	_, err := Read(path)
	require.ErrorIs(t, err, ErrMalformedLine)
	require.Contains(t, err.Error(), path)
}

func TestSeed(t *testing.T) {
	dir := t.TempDir()
	wrote, err := Seed(dir, Level1, false)
	require.NoError(t, err)
	require.True(t, wrote)

	cfg, err := Read(Path(dir, Level1))
	require.NoError(t, err)
	require.Empty(t, cfg.Enemies)
	require.Empty(t, cfg.Foods)

	require.NoError(t, os.WriteFile(Path(dir, Level1), []byte(EnemiesMarker+"\nenemy1_x=1\nenemy1_y=1\n"), 0o644))
	wrote, err = Seed(dir, Level1, false)
	require.NoError(t, err)
	require.False(t, wrote)
	cfg, err = Read(Path(dir, Level1))
	require.NoError(t, err)
	require.Len(t, cfg.Enemies, 1)
}

func TestParseIDAndPath(t *testing.T) {
	id, err := ParseID("level3")
	require.NoError(t, err)
	require.Equal(t, Level3, id)
	_, err = ParseID("level9")
	require.Error(t, err)

	require.Equal(t, filepath.Join("config", "level2_config.txt"), Path("config", Level2))
	got, ok := IDFromPath("/tmp/x/level2_config.txt")
	require.True(t, ok)
	require.Equal(t, Level2, got)
	_, ok = IDFromPath("/tmp/x/level2.json")
	require.False(t, ok)
}
