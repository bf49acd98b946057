package main

import (
	"errors"
	"flag"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"

	"github.com/milk9111/mapeditor/canvas"
	"github.com/milk9111/mapeditor/levels"
	"github.com/milk9111/mapeditor/session"
	"github.com/milk9111/mapeditor/settings"
)

type flags struct {
	settingsPath string
	envPath      string
	level        string
	dir          string
}

func main() {
	var f flags
	flag.StringVar(&f.settingsPath, "settings", "editor.yaml", "Settings file (YAML); defaults are used when missing")
	flag.StringVar(&f.envPath, "env", ".env", "Env file with MAPEDITOR_* overrides")
	flag.StringVar(&f.level, "level", "", "Level to open at startup (level1, level2, level3)")
	flag.StringVar(&f.dir, "dir", "", "Directory holding the <level>_config.txt files")
	flag.Parse()

	if err := run(f); err != nil {
		logrus.WithError(err).Fatal("editor")
	}
}

func run(f flags) error {
	if err := settings.LoadEnv(f.envPath); err != nil {
		return err
	}
	cfg, err := settings.Load(f.settingsPath)
	if err != nil {
		return err
	}
	if f.dir != "" {
		cfg.ConfigDir = f.dir
	}
	logger, err := cfg.Logger(nil)
	if err != nil {
		return err
	}
	log := logrus.NewEntry(logger)

	ids, err := cfg.LevelIDs()
	if err != nil {
		return err
	}
	initial, err := cfg.Initial()
	if err != nil {
		return err
	}
	if f.level != "" {
		if initial, err = levels.ParseID(f.level); err != nil {
			return fmt.Errorf("-level: %w", err)
		}
	}

	board := canvas.NewBoard(cfg.SpriteSizes(), log)
	sess := session.New(board, session.Options{
		Dir:        cfg.ConfigDir,
		GrabRadius: cfg.GrabRadius,
		Log:        log,
	})

	// The editor does not start on an undefined level; -init on placer
	// creates the missing files.
	if err := sess.Load(initial); err != nil {
		if errors.Is(err, levels.ErrConfigMissing) {
			return fmt.Errorf("%w (run `placer -init -dir %s` to create it)", err, cfg.ConfigDir)
		}
		return err
	}

	game := NewEditor(sess, board, cfg, ids, log)
	game.levelBar.SetLevel(sess.Active())

	if w, err := levels.NewWatcher(cfg.ConfigDir); err != nil {
		log.WithError(err).Warn("editor: config directory is not watched")
	} else {
		game.watcher = w
		defer w.Close()
	}

	ebiten.SetWindowSize(game.screenW, game.screenH)
	ebiten.SetWindowTitle(game.title())
	ebiten.SetWindowClosingHandled(true)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		return err
	}
	return nil
}
