//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package truescale

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"sort"
)

// DefaultMIME is the lossless type used when the upload's type is not one
// of the preferred output types.
const DefaultMIME = "image/png"

var preferredMIME = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
}

// EncodeOptions carry the tier's encode settings
type EncodeOptions struct {
	Quality int     // 1..100, ignored by lossless encoders
	DPI     float64 // Resolution to record in the file, if the format can
}

// Encoder serializes a finished page
type Encoder interface {
	Encode(writer io.Writer, img image.Image, opts EncodeOptions) (err error)
}

type NewEncoder func(mime string) (encoder Encoder)

var encoderMap map[string]NewEncoder

func RegisterEncoder(mime string, newEncoder NewEncoder) {
	if encoderMap == nil {
		encoderMap = make(map[string]NewEncoder)
	}

	encoderMap[mime] = newEncoder
}

func EncoderMIMEs() (list []string) {
	for mime := range encoderMap {
		list = append(list, mime)
	}
	sort.Strings(list)

	return
}

// OutputMIME picks the output type for an upload of the given type.
func OutputMIME(sourceMIME string) string {
	if preferredMIME[sourceMIME] {
		if _, ok := encoderMap[sourceMIME]; ok {
			return sourceMIME
		}
	}

	return DefaultMIME
}

// Encoded is the bitmap handed to the print and save collaborators.
type Encoded struct {
	MIME    string
	Quality int
	Data    []byte
}

// DataURL renders the bitmap as a data string.
func (enc *Encoded) DataURL() string {
	return "data:" + enc.MIME + ";base64," + base64.StdEncoding.EncodeToString(enc.Data)
}

func Encode(img image.Image, mime string, opts EncodeOptions) (enc *Encoded, err error) {
	newEncoder, ok := encoderMap[mime]
	if !ok {
		err = fmt.Errorf("%s: no encoder registered: %w", mime, ErrEncode)
		return
	}

	buff := &bytes.Buffer{}
	err = newEncoder(mime).Encode(buff, img, opts)
	if err != nil {
		err = fmt.Errorf("%s: %v: %w", mime, err, ErrEncode)
		return
	}

	if buff.Len() == 0 {
		err = fmt.Errorf("%s: empty output: %w", mime, ErrEncode)
		return
	}

	enc = &Encoded{
		MIME:    mime,
		Quality: opts.Quality,
		Data:    buff.Bytes(),
	}

	return
}
