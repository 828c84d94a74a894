//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package jpegdpi encodes JPEG pages with a JFIF density header
package jpegdpi

import (
	"github.com/ezrec/truescale"
)

const MIME = "image/jpeg"

func init() {
	newEncoder := func(mime string) (encoder truescale.Encoder) { return &Encoder{} }

	truescale.RegisterEncoder(MIME, newEncoder)
}
