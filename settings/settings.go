// Package settings loads the editor's YAML settings file, applies
// environment overrides and builds the logger.
package settings

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/milk9111/mapeditor/canvas"
	"github.com/milk9111/mapeditor/levels"
	"github.com/milk9111/mapeditor/placement"
)

const (
	EnvConfigDir  = "MAPEDITOR_CONFIG_DIR"
	EnvLogLevel   = "MAPEDITOR_LOG_LEVEL"
	EnvLogFormat  = "MAPEDITOR_LOG_FORMAT"
	EnvGrabRadius = "MAPEDITOR_GRAB_RADIUS"
)

type Settings struct {
	ConfigDir    string      `yaml:"config_dir"`
	Levels       []string    `yaml:"levels"`
	InitialLevel string      `yaml:"initial_level"`
	Canvas       CanvasSpec  `yaml:"canvas"`
	Assets       AssetsSpec  `yaml:"assets"`
	SpriteSize   SpritesSpec `yaml:"sprite_size"`
	GrabRadius   float64     `yaml:"grab_radius"`
	Log          LogSpec     `yaml:"log"`
}

type CanvasSpec struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// AssetsSpec points at the images drawn by the editor. Missing files are
// replaced by generated markers.
type AssetsSpec struct {
	Background string `yaml:"background"`
	Enemy      string `yaml:"enemy"`
	Food       string `yaml:"food"`
}

type SizeSpec struct {
	W float64 `yaml:"w"`
	H float64 `yaml:"h"`
}

type SpritesSpec struct {
	Enemy SizeSpec `yaml:"enemy"`
	Food  SizeSpec `yaml:"food"`
}

type LogSpec struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

func Default() Settings {
	return Settings{
		ConfigDir:    "config",
		Levels:       []string{string(levels.Level1), string(levels.Level2), string(levels.Level3)},
		InitialLevel: string(levels.Level1),
		Canvas:       CanvasSpec{Width: 640, Height: 480},
		Assets: AssetsSpec{
			Background: "assets/scene.png",
			Enemy:      "assets/enemy.png",
			Food:       "assets/food.png",
		},
		SpriteSize: SpritesSpec{
			Enemy: SizeSpec{W: 32, H: 32},
			Food:  SizeSpec{W: 24, H: 24},
		},
		Log: LogSpec{Level: "info", Format: "text"},
	}
}

// LoadEnv loads KEY=VALUE pairs from an env file into the process
// environment without overriding variables that are already set. A missing
// file is not an error.
func LoadEnv(path string) error {
	if path == "" {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("settings: load env %s: %w", path, err)
	}
	return nil
}

// Load reads path on top of Default, then applies environment overrides. A
// missing settings file yields the defaults.
func Load(path string) (Settings, error) {
	s := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &s); err != nil {
				return Settings{}, fmt.Errorf("settings: unmarshal %s: %w", path, err)
			}
		case errors.Is(err, fs.ErrNotExist):
		default:
			return Settings{}, fmt.Errorf("settings: read %s: %w", path, err)
		}
	}
	if err := s.applyEnv(); err != nil {
		return Settings{}, err
	}
	if err := s.Validate(); err != nil {
		return Settings{}, err
	}
	return s, nil
}

func (s *Settings) applyEnv() error {
	if v := strings.TrimSpace(os.Getenv(EnvConfigDir)); v != "" {
		s.ConfigDir = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		s.Log.Level = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogFormat)); v != "" {
		s.Log.Format = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvGrabRadius)); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("settings: %s: %w", EnvGrabRadius, err)
		}
		s.GrabRadius = r
	}
	return nil
}

func (s Settings) Validate() error {
	if s.ConfigDir == "" {
		return errors.New("settings: config_dir is empty")
	}
	if s.Canvas.Width <= 0 || s.Canvas.Height <= 0 {
		return fmt.Errorf("settings: canvas must be positive, got %dx%d", s.Canvas.Width, s.Canvas.Height)
	}
	ids, err := s.LevelIDs()
	if err != nil {
		return err
	}
	if len(ids) == 0 {
		return errors.New("settings: no levels configured")
	}
	if _, err := s.Initial(); err != nil {
		return err
	}
	if _, err := ParseLogLevel(s.Log.Level); err != nil {
		return err
	}
	switch s.Log.Format {
	case "", "text", "json":
	default:
		return fmt.Errorf("settings: unknown log format %q", s.Log.Format)
	}
	return nil
}

// LevelIDs returns the levels offered by the level selector.
func (s Settings) LevelIDs() ([]levels.ID, error) {
	out := make([]levels.ID, 0, len(s.Levels))
	for _, name := range s.Levels {
		id, err := levels.ParseID(name)
		if err != nil {
			return nil, fmt.Errorf("settings: %w", err)
		}
		out = append(out, id)
	}
	return out, nil
}

// Initial returns the level opened at startup; it must be one of Levels.
func (s Settings) Initial() (levels.ID, error) {
	ids, err := s.LevelIDs()
	if err != nil {
		return "", err
	}
	if s.InitialLevel == "" && len(ids) > 0 {
		return ids[0], nil
	}
	for _, id := range ids {
		if string(id) == s.InitialLevel {
			return id, nil
		}
	}
	return "", fmt.Errorf("settings: initial_level %q is not in levels", s.InitialLevel)
}

// SpriteSizes returns the marker size per kind for the canvas.
func (s Settings) SpriteSizes() map[placement.Kind]canvas.Size {
	return map[placement.Kind]canvas.Size{
		placement.Enemy: {W: s.SpriteSize.Enemy.W, H: s.SpriteSize.Enemy.H},
		placement.Food:  {W: s.SpriteSize.Food.W, H: s.SpriteSize.Food.H},
	}
}
