// Package xbm decodes X11 bitmap files and renders thumbnails of them.
//
// Both the X11 format (unsigned char data) and the older X10 format
// (short data) are accepted. Pixels are stored least significant bit first
// and every row is padded to a whole number of data words.
package xbm

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/draw"
)

// maxDimension bounds width and height to keep allocations sane.
const maxDimension = 8192

// maxFileSize bounds how much of an input is read.
const maxFileSize = 16 << 20

var (
	ErrFormat = errors.New("xbm: invalid format")

	defineRe = regexp.MustCompile(`#define\s+(\S+)\s+(\d+)`)
	hexRe    = regexp.MustCompile(`0[xX][0-9a-fA-F]+`)
	shortRe  = regexp.MustCompile(`\bshort\b`)
)

func init() {
	image.RegisterFormat("xbm", "#define", Decode, DecodeConfig)
}

// Bitmap is a decoded 1-bit image.
type Bitmap struct {
	Width  int
	Height int
	HotX   int
	HotY   int
	stride int
	bits   []byte
}

// Empty reports whether the bitmap carries no pixels.
func (b *Bitmap) Empty() bool {
	return b.Width == 0 || b.Height == 0
}

// Set reports whether the pixel at (x, y) is a foreground pixel.
func (b *Bitmap) Set(x, y int) bool {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return false
	}
	return b.bits[y*b.stride+x/8]>>(uint(x)%8)&1 == 1
}

// Image renders b with fg for set pixels and bg for the rest.
func (b *Bitmap) Image(fg, bg color.Color) *image.Paletted {
	img := image.NewPaletted(image.Rect(0, 0, b.Width, b.Height), color.Palette{bg, fg})
	for y := 0; y < b.Height; y++ {
		for x := 0; x < b.Width; x++ {
			if b.Set(x, y) {
				img.SetColorIndex(x, y, 1)
			}
		}
	}
	return img
}

// Thumbnail scales b into a size x size square, keeping its aspect ratio
// and centering it on bg.
func (b *Bitmap) Thumbnail(size int, fg, bg color.Color) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(dst, dst.Bounds(), image.NewUniform(bg), image.Point{}, draw.Src)
	if b.Empty() || size <= 0 {
		return dst
	}

	w, h := size, size
	if b.Width > b.Height {
		h = max(1, b.Height*size/b.Width)
	} else if b.Height > b.Width {
		w = max(1, b.Width*size/b.Height)
	}
	x0 := (size - w) / 2
	y0 := (size - h) / 2

	src := b.Image(fg, bg)
	draw.NearestNeighbor.Scale(dst, image.Rect(x0, y0, x0+w, y0+h), src, src.Bounds(), draw.Over, nil)
	return dst
}

// Parse reads an XBM file.
func Parse(r io.Reader) (*Bitmap, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFileSize))
	if err != nil {
		return nil, fmt.Errorf("xbm: read: %w", err)
	}
	src := string(data)

	bm := &Bitmap{HotX: -1, HotY: -1}
	if err := parseDefines(src, bm); err != nil {
		return nil, err
	}
	if bm.Empty() {
		return bm, nil
	}

	open := strings.IndexByte(src, '{')
	if open < 0 {
		return nil, fmt.Errorf("%w: missing data block", ErrFormat)
	}
	closing := strings.IndexByte(src[open:], '}')
	if closing < 0 {
		return nil, fmt.Errorf("%w: unterminated data block", ErrFormat)
	}
	decl := src[:open]
	body := src[open+1 : open+closing]

	wordBytes := 1
	if shortRe.MatchString(decl) {
		wordBytes = 2
	}
	wordBits := wordBytes * 8
	bm.stride = (bm.Width + wordBits - 1) / wordBits * wordBytes

	tokens := hexRe.FindAllString(body, -1)
	want := bm.stride * bm.Height / wordBytes
	if len(tokens) < want {
		return nil, fmt.Errorf("%w: have %d data words, want %d", ErrFormat, len(tokens), want)
	}

	bm.bits = make([]byte, 0, bm.stride*bm.Height)
	for _, tok := range tokens[:want] {
		v, err := strconv.ParseUint(tok[2:], 16, wordBits)
		if err != nil {
			return nil, fmt.Errorf("%w: data word %q: %v", ErrFormat, tok, err)
		}
		for i := 0; i < wordBytes; i++ {
			bm.bits = append(bm.bits, byte(v>>(8*i)))
		}
	}
	return bm, nil
}

func parseDefines(src string, bm *Bitmap) error {
	haveW, haveH := false, false
	for _, m := range defineRe.FindAllStringSubmatch(src, -1) {
		n, err := strconv.Atoi(m[2])
		if err != nil {
			return fmt.Errorf("%w: %s: %v", ErrFormat, m[1], err)
		}
		switch {
		case strings.HasSuffix(m[1], "width"):
			bm.Width, haveW = n, true
		case strings.HasSuffix(m[1], "height"):
			bm.Height, haveH = n, true
		case strings.HasSuffix(m[1], "x_hot"):
			bm.HotX = n
		case strings.HasSuffix(m[1], "y_hot"):
			bm.HotY = n
		}
	}
	if !haveW || !haveH {
		return fmt.Errorf("%w: missing width or height", ErrFormat)
	}
	if bm.Width > maxDimension || bm.Height > maxDimension {
		return fmt.Errorf("%w: %dx%d exceeds %d", ErrFormat, bm.Width, bm.Height, maxDimension)
	}
	return nil
}

// ReadFile parses the XBM file at path.
func ReadFile(path string) (*Bitmap, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	bm, err := Parse(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return bm, nil
}

// Decode decodes an XBM as black on white.
func Decode(r io.Reader) (image.Image, error) {
	bm, err := Parse(r)
	if err != nil {
		return nil, err
	}
	return bm.Image(color.Black, color.White), nil
}

// DecodeConfig returns the dimensions of an XBM without decoding its data.
func DecodeConfig(r io.Reader) (image.Config, error) {
	data, err := io.ReadAll(io.LimitReader(r, maxFileSize))
	if err != nil {
		return image.Config{}, fmt.Errorf("xbm: read: %w", err)
	}
	bm := &Bitmap{}
	if err := parseDefines(string(data), bm); err != nil {
		return image.Config{}, err
	}
	return image.Config{
		ColorModel: color.Palette{color.White, color.Black},
		Width:      bm.Width,
		Height:     bm.Height,
	}, nil
}
