package compiler

import (
	"fmt"
	"strings"

	"stil/pkg/logging"
)

// Report records a diagnostic for the length bytes starting at offset. It
// logs a "file:line:col: message" header followed by the surrounding source
// lines with the range underlined, and increments the error count. Parsing
// continues.
//
//	ERROR main.st:2:3: unexpected IDENT at top level
//	1 | PROGRAM P
//	2 |   foo
//	  |   ^^^
//	3 | END_PROGRAM
func (l *Lexer) Report(offset, length int, message string) {
	l.errors++

	line, col := l.Position(offset)
	l.log.Error("%s:%d:%d: %s", l.name, line, col, message)

	if !l.log.Enabled(logging.LevelError) {
		return
	}
	l.log.Write([]byte(l.snippet(line, col, length)))
}

// snippet renders lines line-1..line+1 with a caret span under the current
// one. The span is at least one caret and never runs past the end of line.
func (l *Lexer) snippet(line, col, length int) string {
	count := l.LineCount()
	first, last := max(line-1, 1), min(line+1, count)
	width := len(fmt.Sprint(max(last, line)))

	var b strings.Builder
	gutter := func(label string) {
		b.WriteString(l.log.Dim(fmt.Sprintf("%*s | ", width, label)))
	}

	for n := first; n <= last; n++ {
		text := l.LineText(n)
		gutter(fmt.Sprint(n))
		b.WriteString(text)
		b.WriteByte('\n')

		if n != line {
			continue
		}

		prefix := text[:min(col-1, len(text))]
		span := min(length, len(text)-len(prefix))
		if span < 1 {
			span = 1
		}

		gutter("")
		for _, c := range []byte(prefix) {
			if c == '\t' {
				b.WriteByte('\t')
			} else {
				b.WriteByte(' ')
			}
		}
		b.WriteString(l.log.Highlight(logging.LevelError, strings.Repeat("^", span)))
		b.WriteByte('\n')
	}

	// Offset at end of input on an empty last line.
	if line > count {
		gutter(fmt.Sprint(line))
		b.WriteByte('\n')
		gutter("")
		b.WriteString(l.log.Highlight(logging.LevelError, "^"))
		b.WriteByte('\n')
	}
	return b.String()
}
