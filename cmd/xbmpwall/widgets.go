package main

import (
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/cptspacemanspiff/xbmpwall/internal/xbm"
)

// tile shows one bitmap thumbnail and reports taps with its path.
type tile struct {
	widget.DisableableWidget

	path     string
	bitmap   *xbm.Bitmap
	size     int
	image    *canvas.Image
	onTapped func(path string)
}

func newTile(lb loadedBitmap, size int, fg, bg color.Color, tapped func(string)) *tile {
	t := &tile{
		path:     lb.path,
		bitmap:   lb.bitmap,
		size:     size,
		onTapped: tapped,
	}
	t.image = canvas.NewImageFromImage(lb.bitmap.Thumbnail(size, fg, bg))
	t.image.FillMode = canvas.ImageFillContain
	t.image.ScaleMode = canvas.ImageScalePixels
	t.image.SetMinSize(fyne.NewSize(float32(size), float32(size)))
	t.ExtendBaseWidget(t)
	return t
}

func (t *tile) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(t.image)
}

func (t *tile) Tapped(*fyne.PointEvent) {
	if t.Disabled() || t.onTapped == nil {
		return
	}
	t.onTapped(t.path)
}

// recolor re-renders the thumbnail with new colors.
func (t *tile) recolor(fg, bg color.Color) {
	t.image.Image = t.bitmap.Thumbnail(t.size, fg, bg)
	t.image.Refresh()
}

// swatch is a single palette color.
type swatch struct {
	widget.DisableableWidget

	hex      string
	rect     *canvas.Rectangle
	cursor   func() desktop.Cursor
	onTapped func(hex string)
}

var (
	_ fyne.Tappable      = (*swatch)(nil)
	_ desktop.Cursorable = (*swatch)(nil)
)

func newSwatch(hex string, fill color.Color, size int, cursor func() desktop.Cursor, tapped func(string)) *swatch {
	s := &swatch{
		hex:      hex,
		cursor:   cursor,
		onTapped: tapped,
	}
	s.rect = canvas.NewRectangle(fill)
	s.rect.StrokeColor = color.Gray{Y: 0x80}
	s.rect.StrokeWidth = 1
	s.rect.SetMinSize(fyne.NewSize(float32(size), float32(size)))
	s.ExtendBaseWidget(s)
	return s
}

func (s *swatch) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(s.rect)
}

func (s *swatch) Tapped(*fyne.PointEvent) {
	if s.Disabled() || s.onTapped == nil {
		return
	}
	s.onTapped(s.hex)
}

func (s *swatch) Cursor() desktop.Cursor {
	if s.cursor == nil {
		return desktop.DefaultCursor
	}
	return s.cursor()
}
