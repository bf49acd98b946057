package main

import (
	"bytes"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/image/colornames"

	"github.com/milk9111/mapeditor/canvas"
	"github.com/milk9111/mapeditor/placement"
)

func decodeImageFile(path string) (image.Image, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	img, _, err := image.Decode(bytes.NewReader(b))
	return img, err
}

// loadBackground returns the scene image scaled to the canvas, or a plain
// backdrop when the file cannot be read.
func loadBackground(path string, w, h int, log *logrus.Entry) *ebiten.Image {
	if path != "" {
		img, err := decodeImageFile(path)
		if err == nil {
			return fitImage(img, w, h)
		}
		log.WithError(err).WithField("path", path).Warn("background image unavailable; using a plain backdrop")
	}
	bg := ebiten.NewImage(w, h)
	bg.Fill(colornames.Darkslategray)
	return bg
}

// loadSprite returns the marker image for kind at the board's marker size.
// Without an asset an ellipse (enemy) or triangle (food) is generated.
func loadSprite(path string, kind placement.Kind, size canvas.Size, log *logrus.Entry) *ebiten.Image {
	if path != "" {
		img, err := decodeImageFile(path)
		if err == nil {
			w, h := markerSize(size)
			return fitImage(img, w, h)
		}
		log.WithError(err).WithFields(logrus.Fields{"path": path, "kind": kind}).Warn("sprite unavailable; using a generated marker")
	}
	w, h := markerSize(size)
	if kind == placement.Food {
		return ebiten.NewImageFromImage(triangleRGBA(w, h, colornames.Gold))
	}
	return ebiten.NewImageFromImage(ellipseRGBA(w, h, colornames.Crimson))
}
