package main

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2/driver/desktop"
)

const cursorSize = 16

// arrowCursor is a 16x16 arrow shown over the swatches. It points up while
// the foreground role is active and down for the background role.
type arrowCursor struct {
	img        image.Image
	hotX, hotY int
}

var _ desktop.Cursor = (*arrowCursor)(nil)

func (c *arrowCursor) Image() (image.Image, int, int) {
	return c.img, c.hotX, c.hotY
}

func newArrowCursor(up bool) *arrowCursor {
	inside := func(x, y int) bool {
		if x < 0 || y < 0 || x >= cursorSize || y >= cursorSize {
			return false
		}
		if !up {
			y = cursorSize - 1 - y
		}
		if y < 8 {
			return x >= 7-y && x <= 8+y
		}
		return x >= 6 && x <= 9
	}

	img := image.NewNRGBA(image.Rect(0, 0, cursorSize, cursorSize))
	for y := 0; y < cursorSize; y++ {
		for x := 0; x < cursorSize; x++ {
			switch {
			case inside(x, y):
				img.SetNRGBA(x, y, color.NRGBA{A: 0xff})
			case inside(x-1, y) || inside(x+1, y) || inside(x, y-1) || inside(x, y+1):
				img.SetNRGBA(x, y, color.NRGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff})
			}
		}
	}

	c := &arrowCursor{img: img, hotX: 7}
	if !up {
		c.hotY = cursorSize - 1
	}
	return c
}
