// Command placer works on level config files without opening a window: it
// seeds empty configs, lists placements, runs tengo scripts against a level
// and rewrites files in canonical form.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"text/tabwriter"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/milk9111/mapeditor/canvas"
	"github.com/milk9111/mapeditor/levels"
	"github.com/milk9111/mapeditor/placement"
	"github.com/milk9111/mapeditor/script"
	"github.com/milk9111/mapeditor/session"
	"github.com/milk9111/mapeditor/settings"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(2)
		}
		fmt.Fprintln(os.Stderr, "placer:", err)
		os.Exit(1)
	}
}

type options struct {
	settingsPath string
	envPath      string
	dir          string
	level        string
	seed         bool
	list         bool
	scriptPath   string
	timeout      time.Duration
	normalize    bool
	dryRun       bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options
	fs := flag.NewFlagSet("placer", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.settingsPath, "settings", "editor.yaml", "Settings file (YAML); defaults are used when missing")
	fs.StringVar(&o.envPath, "env", ".env", "Env file with MAPEDITOR_* overrides")
	fs.StringVar(&o.dir, "dir", "", "Directory holding the <level>_config.txt files")
	fs.StringVar(&o.level, "level", "", "Level to work on (defaults to initial_level)")
	fs.BoolVar(&o.seed, "init", false, "Write an empty config for every configured level that has none")
	fs.BoolVar(&o.list, "list", false, "Print the placements of the level")
	fs.StringVar(&o.scriptPath, "script", "", "Run a tengo script against the level and save the result")
	fs.DurationVar(&o.timeout, "timeout", 10*time.Second, "Script time limit")
	fs.BoolVar(&o.normalize, "normalize", false, "Load and save the level, rewriting it in canonical form")
	fs.BoolVar(&o.dryRun, "dry-run", false, "Do not write script results back")
	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	if fs.NArg() > 0 {
		return options{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	if !o.seed && !o.list && o.scriptPath == "" && !o.normalize {
		fs.Usage()
		return options{}, errors.New("nothing to do: pass -init, -list, -script or -normalize")
	}
	return o, nil
}

func run(args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	if err := settings.LoadEnv(o.envPath); err != nil {
		return err
	}
	cfg, err := settings.Load(o.settingsPath)
	if err != nil {
		return err
	}
	if o.dir != "" {
		cfg.ConfigDir = o.dir
	}
	logger, err := cfg.Logger(stderr)
	if err != nil {
		return err
	}
	log := logrus.NewEntry(logger).WithField("cmd", "placer")

	if o.seed {
		if err := seedAll(cfg, log); err != nil {
			return err
		}
	}
	if !o.list && o.scriptPath == "" && !o.normalize {
		return nil
	}

	id, err := cfg.Initial()
	if err != nil {
		return err
	}
	if o.level != "" {
		if id, err = levels.ParseID(o.level); err != nil {
			return err
		}
	}

	sess := session.New(canvas.NewBoard(cfg.SpriteSizes(), log), session.Options{
		Dir:        cfg.ConfigDir,
		GrabRadius: cfg.GrabRadius,
		Log:        log,
	})
	if err := sess.Load(id); err != nil {
		return err
	}

	if o.scriptPath != "" {
		ctx, cancel := context.WithTimeout(context.Background(), o.timeout)
		err := script.RunFile(ctx, sess, o.scriptPath, log)
		cancel()
		if err != nil {
			return err
		}
		if sess.Dirty() && !o.dryRun {
			if err := sess.Save(); err != nil {
				return err
			}
		}
	}

	if o.normalize {
		if err := sess.Save(); err != nil {
			return err
		}
	}

	if o.list {
		return writeList(stdout, sess)
	}
	return nil
}

func seedAll(cfg settings.Settings, log *logrus.Entry) error {
	ids, err := cfg.LevelIDs()
	if err != nil {
		return err
	}
	for _, id := range ids {
		created, err := levels.Seed(cfg.ConfigDir, id, false)
		if err != nil {
			return err
		}
		log.WithFields(logrus.Fields{
			"level":   id,
			"path":    levels.Path(cfg.ConfigDir, id),
			"created": created,
		}).Info("seed")
	}
	return nil
}

func writeList(w io.Writer, sess *session.Session) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "TAG\tX\tY")
	for _, kind := range placement.Kinds {
		for _, e := range sess.Entities(kind) {
			fmt.Fprintf(tw, "%s\t%s\t%s\n", e.Tag, levels.FormatFloat(e.Position.X), levels.FormatFloat(e.Position.Y))
		}
	}
	return tw.Flush()
}
