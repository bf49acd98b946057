package main

import (
	"image/color"

	"github.com/ebitenui/ebitenui/image"
	"github.com/ebitenui/ebitenui/widget"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/colornames"
)

var (
	toolbarColor     = color.RGBA{220, 220, 240, 255}
	buttonIdle       = color.RGBA{182, 186, 196, 255}
	buttonHover      = color.RGBA{204, 208, 218, 255}
	buttonDown       = color.RGBA{150, 156, 170, 255}
	activeLevelColor = colornames.Steelblue
)

func solidNineSlice(c color.Color) *image.NineSlice {
	return image.NewNineSliceColor(c)
}

// actionButtonImage is used by the one-shot toolbar buttons.
func actionButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:    solidNineSlice(buttonIdle),
		Hover:   solidNineSlice(buttonHover),
		Pressed: solidNineSlice(buttonDown),
	}
}

// levelButtonImage is used by the level toggles. A toggled button draws its
// Pressed image, so the active level stands out from the actions.
func levelButtonImage() *widget.ButtonImage {
	return &widget.ButtonImage{
		Idle:    solidNineSlice(buttonIdle),
		Hover:   solidNineSlice(buttonHover),
		Pressed: solidNineSlice(activeLevelColor),
	}
}

func newEditorTheme(fontFace *text.Face) *widget.Theme {
	return &widget.Theme{
		ButtonTheme: &widget.ButtonParams{
			Image:    actionButtonImage(),
			TextFace: fontFace,
			TextColor: &widget.ButtonTextColor{
				Idle: color.Black,
			},
		},
	}
}
