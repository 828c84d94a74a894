//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package jpegdpi

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"math"

	"github.com/go-restruct/restruct"

	"github.com/ezrec/truescale"
)

const (
	markerSOI  = uint16(0xffd8)
	markerAPP0 = uint16(0xffe0)

	unitsDotsPerInch = uint8(1)
)

var ErrNoDensity = errors.New("no JFIF density")

// jfifHeader is the JFIF APP0 segment, marker included
type jfifHeader struct {
	Marker       uint16
	Length       uint16 // Segment size, without the marker
	Identifier   [5]byte
	VersionMajor uint8
	VersionMinor uint8
	Units        uint8
	XDensity     uint16
	YDensity     uint16
	ThumbWidth   uint8
	ThumbHeight  uint8
}

type Encoder struct{}

// Quality clamps an encode quality to 1..100; zero selects 100.
func Quality(quality int) int {
	switch {
	case quality == 0, quality > 100:
		return 100
	case quality < 1:
		return 1
	default:
		return quality
	}
}

func density(dpi float64) uint16 {
	switch {
	case dpi >= math.MaxUint16:
		return math.MaxUint16
	case dpi < 1:
		return 1
	default:
		return uint16(math.Round(dpi))
	}
}

// Encode writes img as a baseline JPEG with a JFIF APP0 segment carrying
// opts.DPI, when positive.
func (e *Encoder) Encode(writer io.Writer, img image.Image, opts truescale.EncodeOptions) (err error) {
	buff := &bytes.Buffer{}
	err = jpeg.Encode(buff, img, &jpeg.Options{Quality: Quality(opts.Quality)})
	if err != nil {
		return
	}

	data := buff.Bytes()
	if len(data) < 2 || binary.BigEndian.Uint16(data) != markerSOI {
		err = fmt.Errorf("jpeg: missing SOI")
		return
	}

	if !(opts.DPI > 0) || math.IsInf(opts.DPI, 0) || binary.BigEndian.Uint16(data[2:]) == markerAPP0 {
		_, err = writer.Write(data)
		return
	}

	header := jfifHeader{
		Marker:       markerAPP0,
		Identifier:   [5]byte{'J', 'F', 'I', 'F', 0},
		VersionMajor: 1,
		VersionMinor: 2,
		Units:        unitsDotsPerInch,
		XDensity:     density(opts.DPI),
		YDensity:     density(opts.DPI),
	}

	size, err := restruct.SizeOf(&header)
	if err != nil {
		return
	}
	header.Length = uint16(size - 2)

	app0, err := restruct.Pack(binary.BigEndian, &header)
	if err != nil {
		return
	}

	for _, part := range [][]byte{data[:2], app0, data[2:]} {
		_, err = writer.Write(part)
		if err != nil {
			return
		}
	}

	return
}

// Resolution reads the JFIF density, in DPI, from an encoded JPEG
func Resolution(data []byte) (dpi float64, err error) {
	if len(data) < 2 || binary.BigEndian.Uint16(data) != markerSOI {
		err = fmt.Errorf("jpeg: missing SOI")
		return
	}

	var header jfifHeader
	size, _ := restruct.SizeOf(&header)
	if len(data) < 2+size {
		err = ErrNoDensity
		return
	}

	err = restruct.Unpack(data[2:2+size], binary.BigEndian, &header)
	if err != nil {
		return
	}

	if header.Marker != markerAPP0 || string(header.Identifier[:]) != "JFIF\x00" || header.Units != unitsDotsPerInch {
		err = ErrNoDensity
		return
	}

	dpi = float64(header.XDensity)

	return
}
