package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"

	"github.com/milk9111/mapeditor/levels"
)

type toolbarActions struct {
	onAddEnemy func()
	onAddFood  func()
	onSave     func()
	onDelete   func()
	onLevel    func(id levels.ID)
}

// LevelBar is the radio group of level buttons.
type LevelBar struct {
	group   *widget.RadioGroup
	buttons []*widget.Button
	ids     []levels.ID
	armed   bool
}

// SetLevel highlights id without reporting it as a user choice.
func (b *LevelBar) SetLevel(id levels.ID) {
	if b == nil {
		return
	}
	b.armed = false
	for i, lid := range b.ids {
		if lid == id {
			b.group.SetActive(b.buttons[i])
			break
		}
	}
	b.armed = true
}

func buildToolBar(theme *widget.Theme, fontFace *text.Face, ids []levels.ID, actions toolbarActions) (*widget.Container, *LevelBar) {
	buttonTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.RGBA{0, 0, 200, 255},
		Disabled: color.Gray{Y: 128},
	}

	levelTextColor := &widget.ButtonTextColor{
		Idle:     color.Black,
		Hover:    color.Black,
		Pressed:  color.White,
		Disabled: color.Gray{Y: 128},
	}

	toolbar := widget.NewContainer(
		widget.ContainerOpts.WidgetOpts(
			widget.WidgetOpts.MinSize(220, toolbarHeight),
		),
		widget.ContainerOpts.Layout(
			widget.NewRowLayout(
				widget.RowLayoutOpts.Direction(widget.DirectionHorizontal),
				widget.RowLayoutOpts.Spacing(8),
				widget.RowLayoutOpts.Padding(&widget.Insets{Top: 4, Bottom: 4, Left: 4, Right: 4}),
			),
		),
		widget.ContainerOpts.BackgroundImage(solidNineSlice(toolbarColor)),
	)

	actionButton := func(label string, onClick func()) *widget.Button {
		return widget.NewButton(
			widget.ButtonOpts.Image(theme.ButtonTheme.Image),
			widget.ButtonOpts.Text(label, fontFace, buttonTextColor),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(48, 40),
			),
			widget.ButtonOpts.ClickedHandler(func(args *widget.ButtonClickedEventArgs) {
				if onClick != nil {
					onClick()
				}
			}),
		)
	}

	toolbar.AddChild(actionButton("Add Enemy", actions.onAddEnemy))
	toolbar.AddChild(actionButton("Add Food", actions.onAddFood))
	toolbar.AddChild(actionButton("Save Config", actions.onSave))
	toolbar.AddChild(actionButton("Delete Selected", actions.onDelete))

	bar := &LevelBar{ids: ids}
	for _, id := range ids {
		btn := widget.NewButton(
			widget.ButtonOpts.Image(levelButtonImage()),
			widget.ButtonOpts.Text(string(id), fontFace, levelTextColor),
			widget.ButtonOpts.ToggleMode(),
			widget.ButtonOpts.WidgetOpts(
				widget.WidgetOpts.MinSize(48, 40),
			),
		)
		bar.buttons = append(bar.buttons, btn)
		toolbar.AddChild(btn)
	}

	elements := make([]widget.RadioGroupElement, 0, len(bar.buttons))
	for _, b := range bar.buttons {
		elements = append(elements, b)
	}

	bar.group = widget.NewRadioGroup(
		widget.RadioGroupOpts.Elements(elements...),
		widget.RadioGroupOpts.ChangedHandler(func(args *widget.RadioGroupChangedEventArgs) {
			if !bar.armed || actions.onLevel == nil {
				return
			}
			for idx, b := range bar.buttons {
				if args.Active == b {
					actions.onLevel(bar.ids[idx])
					return
				}
			}
		}),
	)

	return toolbar, bar
}
