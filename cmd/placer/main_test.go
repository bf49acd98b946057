package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/mapeditor/levels"
)

func runPlacer(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	base := []string{
		"-settings", filepath.Join(t.TempDir(), "none.yaml"),
		"-env", "",
	}
	err := run(append(base, args...), &out, &errOut)
	return out.String(), err
}

func TestInitSeedsMissingConfigs(t *testing.T) {
	dir := t.TempDir()
	custom := "# Enemies Configuration\nenemy1_x=1.0\nenemy1_y=2.0\n# Foods Configuration\n"
	require.NoError(t, os.WriteFile(levels.Path(dir, levels.Level2), []byte(custom), 0o644))

	_, err := runPlacer(t, "-dir", dir, "-init")
	require.NoError(t, err)

	for _, id := range levels.All {
		_, err := os.Stat(levels.Path(dir, id))
		require.NoError(t, err, id)
	}
	got, err := os.ReadFile(levels.Path(dir, levels.Level2))
	require.NoError(t, err)
	require.Equal(t, custom, string(got))
}

func TestListPrintsPlacements(t *testing.T) {
	dir := t.TempDir()
	body := "# Enemies Configuration\nenemy1_x=10\nenemy1_y=20.5\n# Foods Configuration\nfood1_x=-3\nfood1_y=4\n"
	require.NoError(t, os.WriteFile(levels.Path(dir, levels.Level1), []byte(body), 0o644))

	out, err := runPlacer(t, "-dir", dir, "-level", "level1", "-list")
	require.NoError(t, err)
	require.Contains(t, out, "TAG")
	require.Regexp(t, `enemy1\s+10\.0\s+20\.5`, out)
	require.Regexp(t, `food1\s+-3\.0\s+4\.0`, out)
}

func TestScriptSavesResult(t *testing.T) {
	dir := t.TempDir()
	_, err := runPlacer(t, "-dir", dir, "-init")
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "row.tengo")
	require.NoError(t, os.WriteFile(src, []byte(`
for i := 0; i < 2; i++ {
	editor.add("enemy", i * 32, 100)
}
`), 0o644))

	_, err = runPlacer(t, "-dir", dir, "-level", "level3", "-script", src)
	require.NoError(t, err)

	got, err := os.ReadFile(levels.Path(dir, levels.Level3))
	require.NoError(t, err)
	require.Equal(t, "# Enemies Configuration\nenemy1_x=0.0\nenemy1_y=100.0\nenemy2_x=32.0\nenemy2_y=100.0\n# Foods Configuration\n", string(got))
}

func TestScriptDryRunLeavesFile(t *testing.T) {
	dir := t.TempDir()
	_, err := runPlacer(t, "-dir", dir, "-init")
	require.NoError(t, err)
	before, err := os.ReadFile(levels.Path(dir, levels.Level1))
	require.NoError(t, err)

	src := filepath.Join(t.TempDir(), "one.tengo")
	require.NoError(t, os.WriteFile(src, []byte(`editor.add("food", 1, 1)`), 0o644))

	_, err = runPlacer(t, "-dir", dir, "-script", src, "-dry-run")
	require.NoError(t, err)
	after, err := os.ReadFile(levels.Path(dir, levels.Level1))
	require.NoError(t, err)
	require.Equal(t, before, after)
}

func TestNormalizeRewritesCanonically(t *testing.T) {
	dir := t.TempDir()
	body := "; exported by hand\n# Enemies Configuration\nenemy1_y = 20\nenemy1_x = 10\n\n# Foods Configuration\n"
	require.NoError(t, os.WriteFile(levels.Path(dir, levels.Level1), []byte(body), 0o644))

	_, err := runPlacer(t, "-dir", dir, "-normalize")
	require.NoError(t, err)

	got, err := os.ReadFile(levels.Path(dir, levels.Level1))
	require.NoError(t, err)
	require.Equal(t, "# Enemies Configuration\nenemy1_x=10.0\nenemy1_y=20.0\n# Foods Configuration\n", string(got))
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	cases := []struct {
		name string
		args []string
	}{
		{"nothing_to_do", []string{"-dir", dir}},
		{"unknown_level", []string{"-dir", dir, "-level", "level9", "-list"}},
		{"missing_config", []string{"-dir", dir, "-list"}},
		{"stray_args", []string{"-dir", dir, "-list", "extra"}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := runPlacer(t, c.args...)
			require.Error(t, err)
		})
	}
}
