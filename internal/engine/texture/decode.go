// Package texture decodes panorama images into RGBA pixel buffers.
package texture

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/draw"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"path/filepath"
	"strings"

	"github.com/ftrvxmtrx/tga"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/webp"
)

// ErrEmpty is returned when there is nothing to decode.
var ErrEmpty = errors.New("texture: empty image data")

// Decode decodes PNG, JPEG, GIF, BMP or WebP data into an RGBA image.
// TGA has no magic number, so it is only tried once every registered
// format has refused the data.
func Decode(data []byte) (*image.RGBA, error) {
	return DecodePath("", data)
}

// DecodePath is Decode with a name hint: a ".tga" extension selects the
// TGA decoder directly.
func DecodePath(path string, data []byte) (*image.RGBA, error) {
	if len(data) == 0 {
		return nil, ErrEmpty
	}

	var (
		img    image.Image
		format string
		err    error
	)
	if strings.EqualFold(filepath.Ext(path), ".tga") {
		img, err = tga.Decode(bytes.NewReader(data))
		format = "tga"
	} else {
		img, format, err = image.Decode(bytes.NewReader(data))
		if errors.Is(err, image.ErrFormat) {
			if timg, terr := tga.Decode(bytes.NewReader(data)); terr == nil {
				img, format, err = timg, "tga", nil
			}
		}
	}
	if err != nil {
		return nil, fmt.Errorf("texture: decode: %w", err)
	}

	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, fmt.Errorf("texture: %s image has no pixels", format)
	}

	return ToRGBA(img), nil
}

// ToRGBA converts any image to RGBA with its origin moved to (0,0).
func ToRGBA(src image.Image) *image.RGBA {
	b := src.Bounds()
	if rgba, ok := src.(*image.RGBA); ok && b.Min == (image.Point{}) {
		return rgba
	}
	dst := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst
}
