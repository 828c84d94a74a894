//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package truescale

type Progressor interface {
	Show(percent float32)
	Stop()
}

type nilProgress struct{}

func (np *nilProgress) Show(float32) {}
func (np *nilProgress) Stop()        {}

var defaultProgress = Progressor(&nilProgress{})

func SetProgress(prog Progressor) {
	if prog == Progressor(nil) {
		prog = &nilProgress{}
	}
	defaultProgress = prog
}

// Progress counts completed steps of one synchronous operation.
type Progress struct {
	Progressor
	total     int
	completed int
}

func NewProgress(total int) (prog *Progress) {
	return NewProgressWith(defaultProgress, total)
}

func NewProgressWith(progressor Progressor, total int) (prog *Progress) {
	if progressor == nil {
		progressor = defaultProgress
	}

	prog = &Progress{
		Progressor: progressor,
		total:      total,
	}
	prog.Show(0)

	return
}

func (prog *Progress) Indicate() {
	if prog.completed < prog.total {
		prog.completed++
	}
	if prog.total <= 0 {
		prog.Show(100.0)
		return
	}
	prog.Show(float32(prog.completed) * 100.0 / float32(prog.total))
}

func (prog *Progress) Close() {
	prog.Show(100.0)
	prog.Stop()
}
