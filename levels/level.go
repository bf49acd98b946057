package levels

import (
	"fmt"
	"path/filepath"
)

// ID names one of the editable levels.
type ID string

const (
	Level1 ID = "level1"
	Level2 ID = "level2"
	Level3 ID = "level3"
)

// All is the closed set of levels shipped with the game.
var All = []ID{Level1, Level2, Level3}

func (id ID) String() string { return string(id) }

// FileName is the config file name the game runtime looks up for the level.
func (id ID) FileName() string { return string(id) + "_config.txt" }

func ParseID(s string) (ID, error) {
	for _, id := range All {
		if string(id) == s {
			return id, nil
		}
	}
	return "", fmt.Errorf("unknown level %q", s)
}

// Path returns <dir>/<level>_config.txt.
func Path(dir string, id ID) string {
	return filepath.Join(dir, id.FileName())
}
