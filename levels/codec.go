package levels

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/milk9111/mapeditor/placement"
)

const (
	EnemiesMarker = "# Enemies Configuration"
	FoodsMarker   = "# Foods Configuration"
)

var ErrMalformedLine = errors.New("malformed config line")

// LineError points at the offending line of a config file.
type LineError struct {
	Line int
	Text string
	Err  error
}

func (e *LineError) Error() string {
	return fmt.Sprintf("line %d %q: %v", e.Line, e.Text, e.Err)
}

func (e *LineError) Unwrap() []error {
	return []error{ErrMalformedLine, e.Err}
}

// Placement is one entity entry of a config file.
type Placement struct {
	Tag      placement.Tag
	Position placement.Position
}

// Config is the decoded content of a <level>_config.txt file.
type Config struct {
	Enemies []Placement
	Foods   []Placement
}

// Section returns the placements of kind in file order.
func (c *Config) Section(kind placement.Kind) []Placement {
	switch kind {
	case placement.Enemy:
		return c.Enemies
	case placement.Food:
		return c.Foods
	}
	return nil
}

// FromStore snapshots the store in serialization order.
func FromStore(s *placement.Store) *Config {
	cfg := &Config{}
	for _, e := range s.List(placement.Enemy) {
		cfg.Enemies = append(cfg.Enemies, Placement{Tag: e.Tag, Position: e.Position})
	}
	for _, e := range s.List(placement.Food) {
		cfg.Foods = append(cfg.Foods, Placement{Tag: e.Tag, Position: e.Position})
	}
	return cfg
}

// Populate inserts every placement into s with its file tag, enemies first,
// each section in file order.
func (c *Config) Populate(s *placement.Store) error {
	for _, kind := range placement.Kinds {
		for _, p := range c.Section(kind) {
			if _, err := s.Insert(p.Tag, p.Position); err != nil {
				return err
			}
		}
	}
	return nil
}

type axes struct {
	tag        placement.Tag
	line       int
	text       string
	x, y       float64
	hasX, hasY bool
}

type sectionState struct {
	kind  placement.Kind
	order []*axes
	byTag map[placement.Tag]*axes
}

// Decode parses the line oriented config format. Both coordinates of every
// tag must be present somewhere in its section; the order of the _x and _y
// lines does not matter.
func Decode(r io.Reader) (*Config, error) {
	sections := map[placement.Kind]*sectionState{}
	for _, k := range placement.Kinds {
		sections[k] = &sectionState{kind: k, byTag: map[placement.Tag]*axes{}}
	}
	var cur *sectionState

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		raw := sc.Text()
		line := strings.TrimSpace(raw)
		switch {
		case line == "":
			continue
		case strings.Contains(line, "Enemies Configuration"):
			cur = sections[placement.Enemy]
			continue
		case strings.Contains(line, "Foods Configuration"):
			cur = sections[placement.Food]
			continue
		case strings.HasPrefix(line, "#"), strings.HasPrefix(line, ";"):
			continue
		}

		lineErr := func(err error) error {
			return &LineError{Line: lineNo, Text: raw, Err: err}
		}
		if cur == nil {
			return nil, lineErr(errors.New("data before any section marker"))
		}
		tag, axis, value, err := parseDataLine(line)
		if err != nil {
			return nil, lineErr(err)
		}
		if tag.Kind != cur.kind {
			return nil, lineErr(fmt.Errorf("tag %s in %s section", tag, cur.kind))
		}

		a, ok := cur.byTag[tag]
		if !ok {
			a = &axes{tag: tag, line: lineNo, text: raw}
			cur.byTag[tag] = a
			cur.order = append(cur.order, a)
		}
		switch axis {
		case 'x':
			if a.hasX {
				return nil, lineErr(fmt.Errorf("duplicate %s_x", tag))
			}
			a.x, a.hasX = value, true
		case 'y':
			if a.hasY {
				return nil, lineErr(fmt.Errorf("duplicate %s_y", tag))
			}
			a.y, a.hasY = value, true
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := &Config{}
	for _, k := range placement.Kinds {
		var out []Placement
		for _, a := range sections[k].order {
			if !a.hasX || !a.hasY {
				missing := "y"
				if !a.hasX {
					missing = "x"
				}
				return nil, &LineError{Line: a.line, Text: a.text, Err: fmt.Errorf("%s has no _%s line", a.tag, missing)}
			}
			out = append(out, Placement{Tag: a.tag, Position: placement.Position{X: a.x, Y: a.y}})
		}
		if k == placement.Enemy {
			cfg.Enemies = out
		} else {
			cfg.Foods = out
		}
	}
	return cfg, nil
}

// parseDataLine splits "<tag>_<axis>=<float>".
func parseDataLine(line string) (placement.Tag, byte, float64, error) {
	key, value, ok := strings.Cut(line, "=")
	if !ok {
		return placement.Tag{}, 0, 0, errors.New("expected <tag>_<axis>=<value>")
	}
	key = strings.TrimSpace(key)
	value = strings.TrimSpace(value)

	i := strings.LastIndexByte(key, '_')
	if i < 0 || i != len(key)-2 || (key[i+1] != 'x' && key[i+1] != 'y') {
		return placement.Tag{}, 0, 0, fmt.Errorf("key %q must end in _x or _y", key)
	}
	tag, err := placement.ParseTag(key[:i])
	if err != nil {
		return placement.Tag{}, 0, 0, err
	}
	v, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return placement.Tag{}, 0, 0, fmt.Errorf("value %q: %w", value, err)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return placement.Tag{}, 0, 0, fmt.Errorf("value %q is not finite", value)
	}
	return tag, key[i+1], v, nil
}

// Encode writes cfg in the format Decode and the game runtime read.
func Encode(w io.Writer, cfg *Config) error {
	bw := bufio.NewWriter(w)
	writeSection := func(marker string, ps []Placement) {
		fmt.Fprintln(bw, marker)
		for _, p := range ps {
			fmt.Fprintf(bw, "%s_x=%s\n", p.Tag, FormatFloat(p.Position.X))
			fmt.Fprintf(bw, "%s_y=%s\n", p.Tag, FormatFloat(p.Position.Y))
		}
	}
	writeSection(EnemiesMarker, cfg.Enemies)
	writeSection(FoodsMarker, cfg.Foods)
	return bw.Flush()
}

// FormatFloat renders v in its shortest decimal form without an exponent,
// keeping a ".0" on integral values ("10.0").
func FormatFloat(v float64) string {
	s := strconv.FormatFloat(v, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
