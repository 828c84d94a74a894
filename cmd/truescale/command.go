//
// Copyright (c) 2020 Jason S. McMullan <jason.mcmullan@gmail.com>
//

package main

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"
)

// ScanArgs is a bufio.SplitFunc for shell-like words: quotes, backslash
// escapes and three digit octal escapes.
func ScanArgs(data []byte, atEOF bool) (advance int, token []byte, err error) {
	isSpace := func(c byte) bool { return c == ' ' || c == '\t' || c == '\r' || c == '\n' }
	skip := 0
	for ; skip < len(data) && isSpace(data[skip]); skip++ {
	}

	data = data[skip:]
	if len(data) == 0 {
		advance = skip
		return
	}

	var word []byte

	inQuote := false
	inDquote := false
	inEscape := false
	oct := 0
	octDigits := 0

	flushOct := func() {
		if octDigits > 0 {
			word = append(word, byte(oct))
			oct = 0
			octDigits = 0
		}
	}

	for here, c := range data {
		if inEscape {
			switch c {
			case '0', '1', '2', '3', '4', '5', '6', '7':
				oct = (oct * 8) + int(c-'0')
				octDigits++
				if octDigits == 3 {
					flushOct()
				}
			default:
				flushOct()
				switch c {
				case 'b':
					word = append(word, '\b')
				case 't':
					word = append(word, '\t')
				case 'n':
					word = append(word, '\n')
				case 'r':
					word = append(word, '\r')
				case 'e':
					word = append(word, '\033')
				default:
					word = append(word, c)
				}
			}
			inEscape = octDigits != 0
			continue
		}

		switch c {
		case '"':
			if inQuote {
				word = append(word, c)
			} else {
				inDquote = !inDquote
			}
		case '\'':
			if inDquote {
				word = append(word, c)
			} else {
				inQuote = !inQuote
			}
		case '\\':
			inEscape = true
		case ' ', '\t', '\r', '\n':
			if inDquote || inQuote {
				word = append(word, c)
				continue
			}
			advance = skip + here
			token = word
			return
		default:
			word = append(word, c)
		}
	}

	// Word continues past the buffer
	if !atEOF {
		advance = skip
		return
	}

	if inEscape && octDigits > 0 {
		flushOct()
		inEscape = false
	}

	if !inDquote && !inEscape && !inQuote {
		advance = skip + len(data)
		if len(word) > 0 {
			token = word
		}
		return
	}

	err = fmt.Errorf("incomplete line: '%v' => '%v'", string(data), string(word))

	return
}

// CommandExpand splits a command script into arguments. Lines starting
// with '#' are comments, and $VAR references are expanded.
func CommandExpand(reader io.Reader) (out []string, err error) {
	script := &bytes.Buffer{}
	lines := bufio.NewScanner(reader)
	for lines.Scan() {
		if strings.HasPrefix(strings.TrimSpace(lines.Text()), "#") {
			continue
		}
		script.WriteString(lines.Text())
		script.WriteByte('\n')
	}
	err = lines.Err()
	if err != nil {
		return
	}

	var args []string
	scanner := bufio.NewScanner(script)
	scanner.Split(ScanArgs)
	for scanner.Scan() {
		args = append(args, os.ExpandEnv(scanner.Text()))
	}
	err = scanner.Err()
	if err != nil {
		return
	}

	out = args

	return
}

// expandArgs replaces every '@FILE' argument with the commands in FILE
func expandArgs(args []string) (out []string, err error) {
	for _, arg := range args {
		if len(arg) < 2 || arg[0] != '@' {
			out = append(out, arg)
			continue
		}

		var reader *os.File
		reader, err = os.Open(arg[1:])
		if err != nil {
			return
		}

		var script []string
		script, err = CommandExpand(reader)
		reader.Close()
		if err != nil {
			err = fmt.Errorf("%s: %w", arg[1:], err)
			return
		}

		out = append(out, script...)
	}

	return
}
