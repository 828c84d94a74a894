//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

// Package pngdpi encodes PNG pages that carry their print resolution
package pngdpi

import (
	"github.com/ezrec/truescale"
)

const MIME = "image/png"

func init() {
	newEncoder := func(mime string) (encoder truescale.Encoder) { return NewEncoder() }

	truescale.RegisterEncoder(MIME, newEncoder)
}
