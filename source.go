//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package truescale

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"

	"github.com/disintegration/imaging"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

var formatMIME = map[string]string{
	"png":  "image/png",
	"jpeg": "image/jpeg",
	"gif":  "image/gif",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"webp": "image/webp",
}

// SourceImage is a decoded upload. Its native size never changes.
type SourceImage struct {
	Image  image.Image
	MIME   string
	Native Size
}

func NewSourceImage(img image.Image, mime string) (src *SourceImage) {
	bounds := img.Bounds()
	src = &SourceImage{
		Image:  img,
		MIME:   mime,
		Native: Size{X: bounds.Dx(), Y: bounds.Dy()},
	}

	return
}

// DecodeSource decodes an upload, honoring EXIF orientation the way a
// browser displays it.
func DecodeSource(reader io.Reader) (src *SourceImage, err error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return
	}

	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		err = fmt.Errorf("decode: %w", err)
		return
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		err = fmt.Errorf("decode %s: %w", format, err)
		return
	}

	mime, ok := formatMIME[format]
	if !ok {
		mime = "image/" + format
	}

	src = NewSourceImage(img, mime)
	if src.Native.X == 0 || src.Native.Y == 0 {
		err = fmt.Errorf("decode %s: empty image", format)
		src = nil
	}

	return
}
