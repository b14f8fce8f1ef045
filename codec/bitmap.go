package codec

import (
	"encoding/base64"
	"encoding/binary"
	"errors"
	"fmt"
)

// Bitmap is a 4bpp palette-indexed image, row-major.
type Bitmap struct {
	Width  int
	Height int
	Pix    []byte
}

func NewBitmap(width, height int) *Bitmap {
	return &Bitmap{Width: width, Height: height, Pix: make([]byte, width*height)}
}

func (b *Bitmap) At(x, y int) byte {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return 0
	}
	return b.Pix[y*b.Width+x]
}

func (b *Bitmap) Set(x, y int, c byte) {
	if x < 0 || y < 0 || x >= b.Width || y >= b.Height {
		return
	}
	b.Pix[y*b.Width+x] = c & 0x0f
}

const (
	bitmapMagic  = 0x87
	bitmapBPP    = 4
	bitmapHeader = 8
)

var ErrBadBitmap = errors.New("codec: bad bitmap payload")

// columnBytes is the padded byte length of one column of 4bpp pixels.
func columnBytes(height int) int {
	n := (height + 1) / 2
	return (n + 3) &^ 3
}

// EncodeBitmap serialises b into the base64 payload stored as a tile's JRES data.
// Pixels are stored column-major, two per byte, each column padded to 4 bytes.
func EncodeBitmap(b *Bitmap) string {
	col := columnBytes(b.Height)
	buf := make([]byte, bitmapHeader+col*b.Width)
	buf[0] = bitmapMagic
	buf[1] = bitmapBPP
	binary.LittleEndian.PutUint16(buf[2:4], uint16(b.Width))
	binary.LittleEndian.PutUint16(buf[4:6], uint16(b.Height))

	for x := 0; x < b.Width; x++ {
		base := bitmapHeader + x*col
		for y := 0; y < b.Height; y++ {
			v := b.At(x, y) & 0x0f
			if y%2 == 1 {
				v <<= 4
			}
			buf[base+y/2] |= v
		}
	}
	return base64.StdEncoding.EncodeToString(buf)
}

// DecodeBitmap parses a JRES payload produced by EncodeBitmap.
func DecodeBitmap(s string) (*Bitmap, error) {
	buf, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("codec: decode bitmap: %w", err)
	}
	if len(buf) < bitmapHeader || buf[0] != bitmapMagic || buf[1] != bitmapBPP {
		return nil, ErrBadBitmap
	}
	w := int(binary.LittleEndian.Uint16(buf[2:4]))
	h := int(binary.LittleEndian.Uint16(buf[4:6]))
	col := columnBytes(h)
	if len(buf) < bitmapHeader+col*w {
		return nil, ErrBadBitmap
	}

	b := NewBitmap(w, h)
	for x := 0; x < w; x++ {
		base := bitmapHeader + x*col
		for y := 0; y < h; y++ {
			v := buf[base+y/2]
			if y%2 == 1 {
				v >>= 4
			}
			b.Pix[y*w+x] = v & 0x0f
		}
	}
	return b, nil
}

// SolidTile returns the JRES payload of a size x size tile filled with c.
func SolidTile(size int, c byte) string {
	b := NewBitmap(size, size)
	for i := range b.Pix {
		b.Pix[i] = c & 0x0f
	}
	return EncodeBitmap(b)
}
