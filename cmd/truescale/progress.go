//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"fmt"
	"io"
)

// termProgress draws a percentage on a terminal line
type termProgress struct {
	writer io.Writer
	label  string
	last   int
}

func newTermProgress(writer io.Writer, label string) *termProgress {
	return &termProgress{writer: writer, label: label, last: -1}
}

func (tp *termProgress) Show(percent float32) {
	now := int(percent)
	if now == tp.last {
		return
	}

	tp.last = now
	fmt.Fprintf(tp.writer, "\r%s: %3d%%", tp.label, now)
}

func (tp *termProgress) Stop() {
	if tp.last >= 0 {
		fmt.Fprintln(tp.writer)
	}
	tp.last = -1
}
