//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package truescale

import (
	"fmt"
	"io"
	"math"
	"sort"
	"strings"
)

// PageSize is a physical output medium
type PageSize struct {
	Name       string
	Millimeter SizeMillimeter
}

var (
	PageA4 = PageSize{Name: "A4", Millimeter: SizeMillimeter{210, 297}}

	pageSizes = map[string]PageSize{}
)

// Pixels returns the canvas size of the page at the given resolution.
func (page PageSize) Pixels(ppmm float64) (size Size) {
	size.X = int(math.Floor(page.Millimeter.X * ppmm))
	size.Y = int(math.Floor(page.Millimeter.Y * ppmm))
	return
}

func RegisterPage(page PageSize) (err error) {
	key := strings.ToLower(page.Name)
	_, ok := pageSizes[key]
	if ok {
		err = fmt.Errorf("page '%s' already registered", page.Name)
		return
	}

	pageSizes[key] = page

	return
}

// PageByName looks up a registered page, ignoring case.
func PageByName(name string) (page PageSize, err error) {
	page, ok := pageSizes[strings.ToLower(name)]
	if !ok {
		err = ErrUnknownPage(name)
	}

	return
}

func PageNames() (names []string) {
	for _, page := range pageSizes {
		names = append(names, page.Name)
	}
	sort.Strings(names)

	return
}

func PrintPages(w io.Writer) {
	fmt.Fprintln(w, "Known pages:")
	for _, name := range PageNames() {
		page, _ := PageByName(name)
		fmt.Fprintf(w, "    %-10s %.1f x %.1f mm\n", page.Name, page.Millimeter.X, page.Millimeter.Y)
	}
}

func init() {
	for _, page := range []PageSize{
		PageA4,
		{Name: "A3", Millimeter: SizeMillimeter{297, 420}},
		{Name: "A5", Millimeter: SizeMillimeter{148, 210}},
		{Name: "Letter", Millimeter: SizeMillimeter{215.9, 279.4}},
		{Name: "Legal", Millimeter: SizeMillimeter{215.9, 355.6}},
	} {
		RegisterPage(page)
	}
}
