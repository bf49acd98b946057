package levels

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/milk9111/mapeditor/placement"
)

const scenario = "# Enemies Configuration\nenemy1_x=10\nenemy1_y=20\n# Foods Configuration\nfood1_x=5\nfood1_y=6\n"

func TestDecodeScenario(t *testing.T) {
	cfg, err := Decode(strings.NewReader(scenario))
	require.NoError(t, err)
	require.Equal(t, []Placement{{Tag: placement.Tag{Kind: placement.Enemy, Number: 1}, Position: placement.Position{X: 10, Y: 20}}}, cfg.Enemies)
	require.Equal(t, []Placement{{Tag: placement.Tag{Kind: placement.Food, Number: 1}, Position: placement.Position{X: 5, Y: 6}}}, cfg.Foods)

	var buf bytes.Buffer
	require.NoError(t, Encode(&buf, cfg))
	require.Equal(t,
		"# Enemies Configuration\nenemy1_x=10.0\nenemy1_y=20.0\n# Foods Configuration\nfood1_x=5.0\nfood1_y=6.0\n",
		buf.String())

	again, err := Decode(&buf)
	require.NoError(t, err)
	require.Equal(t, cfg, again)
}

func TestDecodeTolerances(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  *Config
	}{
		{
			name:  "marker_with_extra_text",
			input: "## Enemies Configuration (v1)\n\nenemy1_x=1.5\n\nenemy1_y=-2\n   # Foods Configuration   \n",
			want: &Config{Enemies: []Placement{
				{Tag: placement.Tag{Kind: placement.Enemy, Number: 1}, Position: placement.Position{X: 1.5, Y: -2}},
			}},
		},
		{
			name:  "y_before_x",
			input: "# Enemies Configuration\nenemy2_y=4\nenemy1_x=1\nenemy2_x=3\nenemy1_y=2\n",
			want: &Config{Enemies: []Placement{
				{Tag: placement.Tag{Kind: placement.Enemy, Number: 2}, Position: placement.Position{X: 3, Y: 4}},
				{Tag: placement.Tag{Kind: placement.Enemy, Number: 1}, Position: placement.Position{X: 1, Y: 2}},
			}},
		},
		{
			name:  "comments_and_crlf",
			input: "# Enemies Configuration\r\n; generated\r\n# Foods Configuration\r\nfood3_x = 7\r\nfood3_y = 8\r\n",
			want: &Config{Foods: []Placement{
				{Tag: placement.Tag{Kind: placement.Food, Number: 3}, Position: placement.Position{X: 7, Y: 8}},
			}},
		},
		{
			name:  "empty_file",
			input: "",
			want:  &Config{},
		},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got, err := Decode(strings.NewReader(c.input))
			require.NoError(t, err)
			require.Equal(t, c.want, got)
		})
	}
}

func TestDecodeMalformed(t *testing.T) {
	cases := []struct {
		name  string
		input string
		line  int
	}{
		{"no_equals", "# Enemies Configuration\nenemy1_x 10\n", 2},
		{"bad_axis", "# Enemies Configuration\nenemy1_z=10\n", 2},
		{"bad_float", "# Enemies Configuration\nenemy1_x=ten\nenemy1_y=1\n", 2},
		{"infinite", "# Enemies Configuration\nenemy1_x=Inf\nenemy1_y=1\n", 2},
		{"wrong_section", "# Enemies Configuration\nfood1_x=1\nfood1_y=1\n", 2},
		{"before_section", "enemy1_x=1\n", 1},
		{"unknown_prefix", "# Enemies Configuration\nboss1_x=1\n", 2},
		{"duplicate_axis", "# Enemies Configuration\nenemy1_x=1\nenemy1_x=2\nenemy1_y=3\n", 3},
		{"missing_y", "# Enemies Configuration\nenemy1_x=1\nenemy2_x=1\nenemy2_y=1\n", 2},
		{"missing_x", "# Foods Configuration\n\nfood1_y=1\n", 3},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(c.input))
			require.Error(t, err)
			require.ErrorIs(t, err, ErrMalformedLine)
			var le *LineError
			require.True(t, errors.As(err, &le))
			require.Equal(t, c.line, le.Line)
		})
	}
}

func TestFormatFloat(t *testing.T) {
	cases := map[float64]string{
		10:        "10.0",
		-3:        "-3.0",
		0.5:       "0.5",
		123.25:    "123.25",
		1e21:      "1000000000000000000000.0",
		0.0000125: "0.0000125",
	}
	for in, want := range cases {
		require.Equal(t, want, FormatFloat(in))
	}
}

func TestConfigPopulateAndFromStore(t *testing.T) {
	cfg, err := Decode(strings.NewReader("# Enemies Configuration\nenemy2_x=1\nenemy2_y=1\nenemy1_x=2\nenemy1_y=2\n# Foods Configuration\nfood1_x=3\nfood1_y=3\n"))
	require.NoError(t, err)

	s := placement.NewStore()
	require.NoError(t, cfg.Populate(s))
	require.Equal(t, cfg, FromStore(s))

	dup := &Config{Enemies: append(cfg.Enemies, cfg.Enemies[0])}
	require.ErrorIs(t, dup.Populate(placement.NewStore()), placement.ErrDuplicateTag)
}
