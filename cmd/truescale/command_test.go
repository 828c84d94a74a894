//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestCommandExpand(t *testing.T) {
	table := map[string]struct {
		In  string
		Out []string
	}{
		"hello":  {`hello world`, []string{"hello", "world"}},
		"setenv": {`hello ${MONKEY}`, []string{"hello", "monkey"}},
		"oct":    {`\101`, []string{"A"}},
		"escape": {`hello\ you\e[7m\z\e[m\r\n\101`, []string{"hello you\033[7mz\033[m\r\nA"}},
		"quotes": {`"hello world" 'and you "too"'`, []string{"hello world", "and you \"too\""}},
		"quoted": {`"hello 'nice' world" "you \'too"`, []string{"hello 'nice' world", "you 'too"}},
		"multi": {`photo.jpg
target --width-mm 85.6 --height-mm 53.98
page.png
`, []string{"photo.jpg", "target", "--width-mm", "85.6", "--height-mm", "53.98", "page.png"}},
		"comment": {`# credit card
  # indented comment
load card.jpg # not a comment
scale`, []string{"load", "card.jpg", "#", "not", "a", "comment", "scale"}},
	}

	t.Setenv("MONKEY", "monkey")

	for key, item := range table {
		args, err := CommandExpand(strings.NewReader(item.In))
		if err != nil {
			t.Errorf("%v: %v", key, err)
			continue
		}

		if diff := cmp.Diff(item.Out, args); diff != "" {
			t.Errorf("%v: (-want +got):\n%s", key, diff)
		}
	}
}

func TestCommandExpandIncomplete(t *testing.T) {
	for _, in := range []string{`"hello`, `'world`, `save "page.png`} {
		_, err := CommandExpand(strings.NewReader(in))
		if err == nil {
			t.Errorf("%v: expected error", in)
		}
	}
}

func TestCommandExpandLong(t *testing.T) {
	// Words must survive the scanner's buffer boundaries
	var words []string
	script := &bytes.Buffer{}
	for n := 0; n < 2000; n++ {
		word := strings.Repeat("w", n%13+1)
		words = append(words, word)
		script.WriteString(word)
		script.WriteString(" ")
	}

	args, err := CommandExpand(script)
	if err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff(words, args); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}
}

func TestExpandArgs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "select.txt")
	err := os.WriteFile(path, []byte("display 400 300\ndrag 1 2 3 4\n"), 0644)
	if err != nil {
		t.Fatal(err)
	}

	args, err := expandArgs([]string{"load", "a.png", "@" + path, "scale", "@"})
	if err != nil {
		t.Fatal(err)
	}

	expected := []string{"load", "a.png", "display", "400", "300", "drag", "1", "2", "3", "4", "scale", "@"}
	if diff := cmp.Diff(expected, args); diff != "" {
		t.Errorf("(-want +got):\n%s", diff)
	}

	_, err = expandArgs([]string{"@" + path + ".missing"})
	if err == nil {
		t.Errorf("expected missing file error")
	}
}
