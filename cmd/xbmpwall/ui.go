package main

import (
	"bytes"
	_ "embed"
	"fmt"
	"image/color"
	"image/png"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/cptspacemanspiff/xbmpwall/internal/palette"
	"github.com/cptspacemanspiff/xbmpwall/internal/selection"
	"github.com/cptspacemanspiff/xbmpwall/internal/version"
	"github.com/cptspacemanspiff/xbmpwall/internal/xbm"
)

//go:embed icon.xbm
var iconXBM []byte

type ui struct {
	window fyne.Window
	deps   *deps

	tiles    []*tile
	swatches []*swatch
	status   *widget.Label

	upCursor   desktop.Cursor
	downCursor desktop.Cursor

	// colors the tiles were last rendered with
	fg, bg string

	saveErr error
}

func newUI(a fyne.App, d *deps) *ui {
	u := &ui{
		deps:       d,
		upCursor:   newArrowCursor(true),
		downCursor: newArrowCursor(false),
		status:     widget.NewLabel(""),
	}

	w := a.NewWindow(version.Title())
	if icon := appIcon(); icon != nil {
		w.SetIcon(icon)
	}
	w.SetMaster()
	w.Resize(fyne.NewSize(float32(d.cfg.UI.Width), float32(d.cfg.UI.Height)))
	u.window = w

	sel := d.session.Selection()
	u.fg, u.bg = sel.Foreground, sel.Background
	fg, bg := parseOr(sel.Foreground, color.Black), parseOr(sel.Background, color.White)

	item := d.cfg.UI.ItemSize
	tileObjs := make([]fyne.CanvasObject, 0, len(d.bitmaps))
	for _, lb := range d.bitmaps {
		t := newTile(lb, item, fg, bg, u.pickBitmap)
		u.tiles = append(u.tiles, t)
		tileObjs = append(tileObjs, t)
	}

	colors := d.cfg.Colors()
	swatchSize := max(1, item/2)
	swatchObjs := make([]fyne.CanvasObject, 0, len(colors))
	for _, hex := range colors {
		fill, err := palette.Parse(hex)
		if err != nil {
			d.log.Warn("skipping palette entry", "color", hex, "err", err)
			continue
		}
		s := newSwatch(hex, fill, swatchSize, u.cursor, u.pickColor)
		u.swatches = append(u.swatches, s)
		swatchObjs = append(swatchObjs, s)
	}

	bitmapInfo := widget.NewLabel(fmt.Sprintf("%s\nOpen: %d", version.Title(), len(u.tiles)))
	bitmapGrid := container.NewGridWrap(fyne.NewSize(float32(item), float32(item)), tileObjs...)
	top := container.NewVScroll(container.NewVBox(bitmapInfo, bitmapGrid))

	colorInfo := widget.NewLabel(fmt.Sprintf("Colors: %d", len(u.swatches)))
	colorGrid := container.NewGridWrap(fyne.NewSize(float32(swatchSize), float32(swatchSize)), swatchObjs...)
	bottom := container.NewBorder(container.NewVBox(colorInfo, u.status), nil, nil, nil, container.NewVScroll(colorGrid))

	split := container.NewVSplit(top, bottom)
	split.SetOffset(0.6)
	w.SetContent(split)

	d.session.OnRoleChange(func(selection.Role) { u.refreshStatus() })
	d.session.OnBusyChange(u.setBusy)
	d.session.OnApply(func(s selection.Selection) {
		d.log.Debug("wallpaper applied", "bitmap", s.Bitmap, "fg", s.Foreground, "bg", s.Background)
	})

	w.Canvas().SetOnTypedKey(u.typedKey)
	w.SetCloseIntercept(u.quit)

	u.refreshStatus()
	return u
}

func (u *ui) pickBitmap(path string) {
	u.deps.session.PickBitmap(path)
	u.refresh()
}

func (u *ui) pickColor(hex string) {
	u.deps.session.PickColor(hex)
	u.refresh()
}

func (u *ui) typedKey(ev *fyne.KeyEvent) {
	if ev.Name == fyne.KeySpace {
		u.deps.session.ToggleRole()
	}
}

func (u *ui) cursor() desktop.Cursor {
	if u.deps.session.Selection().Active == selection.Background {
		return u.downCursor
	}
	return u.upCursor
}

func (u *ui) setBusy(busy bool) {
	for _, t := range u.tiles {
		if busy {
			t.Disable()
		} else {
			t.Enable()
		}
	}
	for _, s := range u.swatches {
		if busy {
			s.Disable()
		} else {
			s.Enable()
		}
	}
}

func (u *ui) refresh() {
	u.refreshStatus()

	sel := u.deps.session.Selection()
	if sel.Foreground == u.fg && sel.Background == u.bg {
		return
	}
	u.fg, u.bg = sel.Foreground, sel.Background
	fg, bg := parseOr(u.fg, color.Black), parseOr(u.bg, color.White)
	for _, t := range u.tiles {
		t.recolor(fg, bg)
	}
}

func (u *ui) refreshStatus() {
	sel := u.deps.session.Selection()
	u.status.SetText(fmt.Sprintf("Active: %s    Foreground: %s    Background: %s",
		sel.Active, sel.Foreground, sel.Background))
}

// quit saves the last applied command and closes the window. A save failure
// is kept in saveErr so the process exits non-zero.
func (u *ui) quit() {
	if err := persist(u.deps.store, u.deps.session, u.deps.out); err != nil {
		u.deps.log.Error("saving selection failed", "path", u.deps.store.Path(), "err", err)
		u.saveErr = err
	}
	u.window.Close()
}

func parseOr(hex string, fallback color.Color) color.Color {
	c, err := palette.Parse(hex)
	if err != nil {
		return fallback
	}
	return c
}

func appIcon() fyne.Resource {
	bm, err := xbm.Parse(bytes.NewReader(iconXBM))
	if err != nil {
		return nil
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, bm.Image(color.Black, color.White)); err != nil {
		return nil
	}
	return fyne.NewStaticResource("xbmpwall.png", buf.Bytes())
}
