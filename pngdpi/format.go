//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package pngdpi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"hash/crc32"
	"image"
	"image/png"
	"io"
	"math"

	"github.com/go-restruct/restruct"

	"github.com/ezrec/truescale"
)

const (
	metersPerInch = 0.0254

	unitMeter = uint8(1)

	signatureSize = 8
	ihdrSize      = 4 + 4 + 13 + 4
)

var signature = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n'}

var ErrNoDensity = errors.New("no pHYs chunk")

// pngPhys is the pHYs chunk type and payload, as covered by the CRC
type pngPhys struct {
	Type           [4]byte
	PixelsPerUnitX uint32
	PixelsPerUnitY uint32
	Unit           uint8
}

type Encoder struct {
	CompressionLevel png.CompressionLevel
}

func NewEncoder() (encoder *Encoder) {
	encoder = &Encoder{
		CompressionLevel: png.DefaultCompression,
	}

	return
}

// physChunk builds a complete pHYs chunk for the resolution
func physChunk(dpi float64) (chunk []byte, err error) {
	ppm := uint32(math.Round(dpi / metersPerInch))

	phys := pngPhys{
		Type:           [4]byte{'p', 'H', 'Y', 's'},
		PixelsPerUnitX: ppm,
		PixelsPerUnitY: ppm,
		Unit:           unitMeter,
	}

	data, err := restruct.Pack(binary.BigEndian, &phys)
	if err != nil {
		return
	}

	chunk = make([]byte, 4, 4+len(data)+4)
	binary.BigEndian.PutUint32(chunk, uint32(len(data)-4))
	chunk = append(chunk, data...)
	chunk = binary.BigEndian.AppendUint32(chunk, crc32.ChecksumIEEE(data))

	return
}

// Encode writes img as PNG. A positive opts.DPI is recorded in a pHYs
// chunk directly after IHDR; opts.Quality is ignored.
func (e *Encoder) Encode(writer io.Writer, img image.Image, opts truescale.EncodeOptions) (err error) {
	enc := png.Encoder{CompressionLevel: e.CompressionLevel}

	buff := &bytes.Buffer{}
	err = enc.Encode(buff, img)
	if err != nil {
		return
	}

	data := buff.Bytes()
	if !(opts.DPI > 0) || math.IsInf(opts.DPI, 0) {
		_, err = writer.Write(data)
		return
	}

	if len(data) < signatureSize+ihdrSize || string(data[12:16]) != "IHDR" {
		err = fmt.Errorf("png: unexpected header")
		return
	}

	chunk, err := physChunk(opts.DPI)
	if err != nil {
		return
	}

	for _, part := range [][]byte{data[:signatureSize+ihdrSize], chunk, data[signatureSize+ihdrSize:]} {
		_, err = writer.Write(part)
		if err != nil {
			return
		}
	}

	return
}

// Resolution reads the print resolution, in DPI, from an encoded PNG
func Resolution(data []byte) (dpi float64, err error) {
	if !bytes.HasPrefix(data, signature) {
		err = fmt.Errorf("png: bad signature")
		return
	}

	for offset := signatureSize; offset+8 <= len(data); {
		size := int(binary.BigEndian.Uint32(data[offset:]))
		kind := string(data[offset+4 : offset+8])
		end := offset + 8 + size + 4
		if size < 0 || end > len(data) {
			err = fmt.Errorf("png: truncated %s chunk", kind)
			return
		}

		switch kind {
		case "pHYs":
			var phys pngPhys
			err = restruct.Unpack(data[offset+4:offset+8+size], binary.BigEndian, &phys)
			if err != nil {
				return
			}
			if phys.Unit != unitMeter {
				err = ErrNoDensity
				return
			}
			dpi = float64(phys.PixelsPerUnitX) * metersPerInch
			return
		case "IDAT", "IEND":
			err = ErrNoDensity
			return
		}

		offset = end
	}

	err = ErrNoDensity

	return
}
