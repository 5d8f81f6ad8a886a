package compiler

import (
	"testing"
)

func TestLexer_Report(t *testing.T) {
	tests := []struct {
		name     string
		src      string
		offset   int
		length   int
		message  string
		expected string
	}{
		{
			name:    "Middle Line",
			src:     "PROGRAM P\n  foo\nEND_PROGRAM",
			offset:  12,
			length:  3,
			message: "unexpected IDENT",
			expected: "ERROR test.st:2:3: unexpected IDENT\n" +
				"1 | PROGRAM P\n" +
				"2 |   foo\n" +
				"  |   ^^^\n" +
				"3 | END_PROGRAM\n",
		},
		{
			name:    "First Line",
			src:     "foo\nbar\n",
			offset:  0,
			length:  0,
			message: "bad",
			expected: "ERROR test.st:1:1: bad\n" +
				"1 | foo\n" +
				"  | ^\n" +
				"2 | bar\n",
		},
		{
			name:    "Span Clamped To Line",
			src:     "ab\ncd",
			offset:  4,
			length:  10,
			message: "too long",
			expected: "ERROR test.st:2:2: too long\n" +
				"1 | ab\n" +
				"2 | cd\n" +
				"  |  ^\n",
		},
		{
			name:    "Tabs Kept",
			src:     "\tx",
			offset:  1,
			length:  1,
			message: "tab",
			expected: "ERROR test.st:1:2: tab\n" +
				"1 | \tx\n" +
				"  | \t^\n",
		},
		{
			name:    "End Of Input",
			src:     "x\n",
			offset:  2,
			length:  1,
			message: "eof",
			expected: "ERROR test.st:2:1: eof\n" +
				"1 | x\n" +
				"2 | \n" +
				"  | ^\n",
		},
		{
			name:    "Wide Gutter",
			src:     "1\n2\n3\n4\n5\n6\n7\n8\n9\n10\n",
			offset:  16,
			length:  1,
			message: "nine",
			expected: "ERROR test.st:9:1: nine\n" +
				" 8 | 8\n" +
				" 9 | 9\n" +
				"   | ^\n" +
				"10 | 10\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lx, buf := newTestLexer(tt.src)
			lx.Report(tt.offset, tt.length, tt.message)

			if got := buf.String(); got != tt.expected {
				t.Errorf("output:\n%s\nwant:\n%s", got, tt.expected)
			}
			if lx.ErrorCount() != 1 {
				t.Errorf("ErrorCount() = %d, want 1", lx.ErrorCount())
			}
		})
	}
}

func TestLexer_ReportCounts(t *testing.T) {
	lx := NewLexer("test.st", []byte("a b c"), nil, nil)
	for i := 0; i < 3; i++ {
		lx.Report(i*2, 1, "again")
	}
	if lx.ErrorCount() != 3 {
		t.Errorf("ErrorCount() = %d, want 3", lx.ErrorCount())
	}
}
