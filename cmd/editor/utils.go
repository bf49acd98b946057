package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/milk9111/mapeditor/canvas"
)

var markerOutline = color.RGBA{16, 16, 16, 255}

// markerSize rounds an item size up to whole pixels, at least 4x4.
func markerSize(size canvas.Size) (int, int) {
	w, h := int(size.W+0.999), int(size.H+0.999)
	if w < 4 {
		w = 4
	}
	if h < 4 {
		h = 4
	}
	return w, h
}

// ellipseRGBA fills the ellipse inscribed in a w x h box with fill and draws
// a one pixel outline around it.
func ellipseRGBA(w, h int, fill color.RGBA) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	rx, ry := float64(w)/2, float64(h)/2
	inner := func(x, y, shrink float64) bool {
		ax, ay := rx-shrink, ry-shrink
		dx, dy := (x-rx)/ax, (y-ry)/ay
		return dx*dx+dy*dy <= 1
	}
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			px, py := float64(x)+0.5, float64(y)+0.5
			switch {
			case inner(px, py, 1.5):
				rgba.SetRGBA(x, y, fill)
			case inner(px, py, 0.5):
				rgba.SetRGBA(x, y, markerOutline)
			}
		}
	}
	return rgba
}

// triangleRGBA fills an upward triangle spanning the w x h box. The apex sits
// at the top centre and the base on the bottom row; edge pixels are outlined.
func triangleRGBA(w, h int, fill color.RGBA) *image.RGBA {
	rgba := image.NewRGBA(image.Rect(0, 0, w, h))
	cx := float64(w) / 2
	for y := 0; y < h; y++ {
		half := (float64(y) + 1) / float64(h) * float64(w) / 2
		left, right := cx-half, cx+half
		for x := 0; x < w; x++ {
			px := float64(x) + 0.5
			if px < left || px > right {
				continue
			}
			if y == h-1 || px-left < 1 || right-px < 1 {
				rgba.SetRGBA(x, y, markerOutline)
				continue
			}
			rgba.SetRGBA(x, y, fill)
		}
	}
	return rgba
}

// fitImage draws img stretched to exactly w x h.
func fitImage(img image.Image, w, h int) *ebiten.Image {
	src := ebiten.NewImageFromImage(img)
	b := src.Bounds()
	if b.Dx() == w && b.Dy() == h {
		return src
	}
	dst := ebiten.NewImage(w, h)
	op := &ebiten.DrawImageOptions{Filter: ebiten.FilterLinear}
	op.GeoM.Scale(float64(w)/float64(b.Dx()), float64(h)/float64(b.Dy()))
	dst.DrawImage(src, op)
	return dst
}
