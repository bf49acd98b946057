package main

import (
	"fmt"
	"image/color"
	"time"

	"github.com/ebitenui/ebitenui"
	ebuiinput "github.com/ebitenui/ebitenui/input"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"

	"github.com/milk9111/mapeditor/canvas"
	"github.com/milk9111/mapeditor/levels"
	"github.com/milk9111/mapeditor/placement"
	"github.com/milk9111/mapeditor/session"
	"github.com/milk9111/mapeditor/settings"
)

const (
	toolbarHeight = 48
	statusHeight  = 20

	// Our own saves show up on the watcher a debounce later.
	selfWriteGrace = 500 * time.Millisecond
)

// Editor is the ebiten game driving one editing session.
type Editor struct {
	sess     *session.Session
	board    *canvas.Board
	watcher  *levels.Watcher
	log      *logrus.Entry
	ui       *ebitenui.UI
	levelBar *LevelBar

	canvasW, canvasH int
	screenW, screenH int

	background *ebiten.Image
	sprites    map[placement.Kind]*ebiten.Image

	status      string
	shownTitle  string
	ignoreUntil time.Time
	closeFailed bool
}

func NewEditor(sess *session.Session, board *canvas.Board, cfg settings.Settings, ids []levels.ID, log *logrus.Entry) *Editor {
	g := &Editor{
		sess:    sess,
		board:   board,
		log:     log.WithField("component", "editor"),
		canvasW: cfg.Canvas.Width,
		canvasH: cfg.Canvas.Height,
	}
	g.screenW = g.canvasW
	g.screenH = toolbarHeight + g.canvasH + statusHeight

	g.background = loadBackground(cfg.Assets.Background, g.canvasW, g.canvasH, g.log)
	g.sprites = map[placement.Kind]*ebiten.Image{
		placement.Enemy: loadSprite(cfg.Assets.Enemy, placement.Enemy, board.SizeOf(placement.Enemy), g.log),
		placement.Food:  loadSprite(cfg.Assets.Food, placement.Food, board.SizeOf(placement.Food), g.log),
	}

	g.ui, g.levelBar = BuildEditorUI(ids, toolbarActions{
		onAddEnemy: func() { g.add(placement.Enemy) },
		onAddFood:  func() { g.add(placement.Food) },
		onSave:     g.save,
		onDelete:   g.deleteSelected,
		onLevel:    g.switchLevel,
	})
	return g
}

func (g *Editor) Update() error {
	if ebiten.IsWindowBeingClosed() {
		return g.close()
	}
	if g.ui != nil {
		g.ui.Update()
	}
	g.drainWatcher()
	g.handleKeys()
	g.handlePointer()

	if t := g.title(); t != g.shownTitle {
		ebiten.SetWindowTitle(t)
		g.shownTitle = t
	}
	return nil
}

func (g *Editor) handlePointer() {
	mx, my := ebiten.CursorPosition()
	p, inCanvas := toCanvasPoint(mx, my, g.canvasW, g.canvasH)

	// Clicks on the toolbar must not grab markers underneath it.
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) && inCanvas && !ebuiinput.UIHovered {
		g.sess.PointerDown(p)
	}
	if !g.sess.Dragging() {
		return
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		g.sess.PointerUp(p)
		return
	}
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.sess.PointerMove(p)
	}
}

func (g *Editor) handleKeys() {
	ctrl := ebiten.IsKeyPressed(ebiten.KeyControl) || ebiten.IsKeyPressed(ebiten.KeyMeta)
	if inpututil.IsKeyJustPressed(ebiten.KeyS) && ctrl {
		g.save()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDelete) || inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		g.deleteSelected()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) && g.sess.Dragging() {
		g.sess.CancelDrag()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF5) {
		g.reload()
	}
}

func (g *Editor) drainWatcher() {
	if g.watcher == nil {
		return
	}
	for {
		select {
		case path, ok := <-g.watcher.Events:
			if !ok {
				g.watcher = nil
				return
			}
			g.onConfigChanged(path)
		case err, ok := <-g.watcher.Errors:
			if !ok {
				g.watcher = nil
				return
			}
			g.log.WithError(err).Warn("watch error")
		default:
			return
		}
	}
}

func (g *Editor) onConfigChanged(path string) {
	id, ok := levels.IDFromPath(path)
	if !ok || !g.sess.Loaded() || id != g.sess.Active() {
		return
	}
	if time.Now().Before(g.ignoreUntil) {
		return
	}
	if g.sess.Dirty() {
		g.log.WithFields(logrus.Fields{"level": id, "path": path}).
			Warn("config changed on disk while there are unsaved edits; keeping the edits")
		g.setStatus(fmt.Sprintf("%s changed on disk (unsaved edits kept)", id.FileName()))
		return
	}
	g.reload()
}

func (g *Editor) add(kind placement.Kind) {
	if !g.sess.Loaded() {
		g.setStatus("no level loaded")
		return
	}
	e, err := g.sess.AddEntity(kind, placement.Position{})
	if err != nil {
		g.setStatus(err.Error())
		return
	}
	g.setStatus("added " + e.Tag.String())
}

func (g *Editor) save() {
	g.ignoreUntil = time.Now().Add(selfWriteGrace)
	if err := g.sess.Save(); err != nil {
		g.setStatus("save failed: " + err.Error())
		return
	}
	g.setStatus("saved " + g.sess.Path())
}

func (g *Editor) deleteSelected() {
	sel, ok := g.sess.Selected()
	if !ok {
		return
	}
	if g.sess.DeleteSelected() {
		g.setStatus("deleted " + sel.Tag.String())
	}
}

func (g *Editor) reload() {
	if err := g.sess.Reload(); err != nil {
		g.setStatus("reload failed: " + err.Error())
		return
	}
	g.setStatus("reloaded " + g.sess.Path())
}

func (g *Editor) switchLevel(id levels.ID) {
	if id == g.sess.Active() {
		return
	}
	if err := g.sess.Switch(id); err != nil {
		g.setStatus(fmt.Sprintf("could not load %s: %v", id, err))
		g.levelBar.SetLevel(g.sess.Active())
		return
	}
	g.setStatus("editing " + id.FileName())
}

// close saves pending edits before the window goes away. If that save fails
// the window stays open once so the user can react; a second close request
// exits without saving.
func (g *Editor) close() error {
	switch closeAction(g.sess.Loaded(), g.sess.Dirty(), g.closeFailed) {
	case closeSave:
		if err := g.sess.Save(); err != nil {
			g.closeFailed = true
			g.setStatus("save on close failed; close again to discard edits: " + err.Error())
			return nil
		}
	case closeDiscard:
		g.log.WithFields(logrus.Fields{
			"level":     g.sess.Active(),
			"discarded": g.sess.Changes(),
		}).Warn("closing with unsaved changes after a failed save")
	}
	return ebiten.Termination
}

type closeDecision int

const (
	closeNow closeDecision = iota
	closeSave
	closeDiscard
)

func closeAction(loaded, dirty, saveFailedBefore bool) closeDecision {
	switch {
	case !loaded || !dirty:
		return closeNow
	case saveFailedBefore:
		return closeDiscard
	default:
		return closeSave
	}
}

func (g *Editor) setStatus(msg string) { g.status = msg }

func (g *Editor) title() string {
	return windowTitle(g.sess.Active(), g.sess.Dirty())
}

func (g *Editor) Draw(screen *ebiten.Image) {
	screen.Fill(color.RGBA{R: 30, G: 30, B: 36, A: 255})

	if g.background != nil {
		op := &ebiten.DrawImageOptions{}
		op.GeoM.Translate(0, toolbarHeight)
		screen.DrawImage(g.background, op)
	}

	sel, hasSel := g.sess.Selected()
	for _, it := range g.board.Items() {
		x := it.Position.X
		y := it.Position.Y + toolbarHeight
		if img := g.sprites[it.Kind]; img != nil {
			b := img.Bounds()
			op := &ebiten.DrawImageOptions{}
			op.GeoM.Scale(it.Size.W/float64(b.Dx()), it.Size.H/float64(b.Dy()))
			op.GeoM.Translate(x, y)
			screen.DrawImage(img, op)
		}
		if hasSel && sel.Handle == it.Handle {
			vector.StrokeRect(screen, float32(x)-1, float32(y)-1, float32(it.Size.W)+2, float32(it.Size.H)+2, 2, colornames.Deepskyblue, false)
		}
		if e, ok := g.sess.EntityAt(it.Handle); ok {
			ebitenutil.DebugPrintAt(screen, e.Tag.String(), int(x), int(y+it.Size.H))
		}
	}

	if g.ui != nil {
		g.ui.Draw(screen)
	}

	line := statusLine(g.sess.Active(), len(g.sess.Entities(placement.Enemy)), len(g.sess.Entities(placement.Food)), g.sess.Dirty(), g.status)
	ebitenutil.DebugPrintAt(screen, line, 6, toolbarHeight+g.canvasH+2)
}

func (g *Editor) Layout(outsideWidth, outsideHeight int) (int, int) {
	return g.screenW, g.screenH
}

// toCanvasPoint converts screen coordinates into canvas coordinates. The
// point is returned even when it falls outside the canvas so drags can
// continue past the edge.
func toCanvasPoint(sx, sy, canvasW, canvasH int) (placement.Position, bool) {
	p := placement.Position{X: float64(sx), Y: float64(sy - toolbarHeight)}
	in := sx >= 0 && sx < canvasW && sy >= toolbarHeight && sy < toolbarHeight+canvasH
	return p, in
}

func statusLine(level levels.ID, enemies, foods int, dirty bool, msg string) string {
	name := "no level"
	if level != "" {
		name = level.FileName()
	}
	mark := ""
	if dirty {
		mark = " *"
	}
	line := fmt.Sprintf("%s%s  enemies:%d  foods:%d", name, mark, enemies, foods)
	if msg != "" {
		line += "  | " + msg
	}
	return line
}

func windowTitle(level levels.ID, dirty bool) string {
	t := "Map Editor"
	if level != "" {
		t += " - " + string(level)
	}
	if dirty {
		t += " *"
	}
	return t
}
