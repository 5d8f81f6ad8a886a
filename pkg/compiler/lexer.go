package compiler

import (
	"bytes"
	"sort"
	"strings"
	"unicode/utf8"

	"stil/pkg/logging"
)

// Lexer is a pull scanner over one in-memory source buffer. Each call to
// Next returns the following token; once the input is exhausted it keeps
// returning EOF.
//
// The lexer also counts diagnostics raised through Report, so the parser
// and the caller share one error total per file.
type Lexer struct {
	name     string
	src      []byte
	pos      int    // offset of the next unread byte
	rest     []byte // src[pos:]
	keywords *KeywordTable
	errors   int
	log      *logging.Logger

	lineStarts []int // built on first use
}

// NewLexer returns a lexer over src. name is only used in diagnostics. A nil
// keywords table selects the default Structured Text set and a nil log
// discards warnings.
func NewLexer(name string, src []byte, keywords *KeywordTable, log *logging.Logger) *Lexer {
	if keywords == nil {
		kw, err := NewDefaultKeywordTable(defaultKeywordCapacity)
		if err != nil {
			panic("compiler: default keyword table: " + err.Error())
		}
		keywords = kw
	}
	if log == nil {
		log = logging.Discard()
	}
	return &Lexer{
		name:     name,
		src:      src,
		rest:     src,
		keywords: keywords,
		log:      log,
	}
}

const defaultKeywordCapacity = 512

// Name returns the file name used in diagnostics.
func (l *Lexer) Name() string { return l.name }

// Source returns the buffer being scanned.
func (l *Lexer) Source() []byte { return l.src }

// ErrorCount returns the number of diagnostics reported so far.
func (l *Lexer) ErrorCount() int { return l.errors }

// peek returns the byte at the cursor, or 0 at end of input.
func (l *Lexer) peek() byte {
	if len(l.rest) == 0 {
		return 0
	}
	return l.rest[0]
}

// peek2 returns the byte after the cursor.
func (l *Lexer) peek2() byte {
	if len(l.rest) < 2 {
		return 0
	}
	return l.rest[1]
}

// advance moves the cursor n bytes forward.
func (l *Lexer) advance(n int) {
	if n > len(l.rest) {
		n = len(l.rest)
	}
	l.pos += n
	l.rest = l.rest[n:]
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool  { return c >= '0' && c <= '9' }
func isLetter(c byte) bool { return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' }

func isHexDigit(c byte) bool {
	return isDigit(c) || c >= 'a' && c <= 'f' || c >= 'A' && c <= 'F'
}

func isIdentStart(c byte) bool { return isLetter(c) || c == '_' || c == '@' || c == '#' }
func isIdentPart(c byte) bool  { return isLetter(c) || isDigit(c) || c == '_' }

func (l *Lexer) skipWhitespace() {
	for len(l.rest) > 0 && isSpace(l.rest[0]) {
		l.advance(1)
	}
}

// skipComment consumes one comment at the cursor and reports whether there
// was one.
func (l *Lexer) skipComment() bool {
	switch {
	case l.peek() == '/' && l.peek2() == '/':
		for len(l.rest) > 0 && l.rest[0] != '\n' {
			l.advance(1)
		}
		return true

	case l.peek() == '(' && l.peek2() == '*':
		start := l.pos
		l.advance(2)
		for len(l.rest) > 0 {
			if l.peek() == '*' && l.peek2() == ')' {
				l.advance(2)
				return true
			}
			l.advance(1)
		}
		line, col := l.Position(start)
		l.log.Warn("%s:%d:%d: comment is not properly closed", l.name, line, col)
		return true
	}
	return false
}

// Next returns the next token.
func (l *Lexer) Next() Token {
	for {
		l.skipWhitespace()
		if l.skipComment() {
			continue
		}
		if len(l.rest) == 0 {
			return Token{Type: EOF, Offset: len(l.src)}
		}
		if tok, ok := l.scan(); ok {
			return tok
		}
	}
}

// scan dispatches on the byte at the cursor. ok is false when input was
// consumed without producing a token (an unterminated string).
func (l *Lexer) scan() (tok Token, ok bool) {
	start := l.pos
	c := l.peek()

	emit := func(tt TokenType, n int) (Token, bool) {
		l.advance(n)
		return Token{Type: tt, Offset: start, Len: n}, true
	}

	switch c {
	case ';':
		return emit(SEMICOLON, 1)
	case '(':
		return emit(LPAREN, 1)
	case ')':
		return emit(RPAREN, 1)
	case '[':
		return emit(LBRACKET, 1)
	case ']':
		return emit(RBRACKET, 1)
	case ',':
		return emit(COMMA, 1)
	case '+':
		return emit(PLUS, 1)
	case '-':
		return emit(MINUS, 1)
	case '/':
		return emit(DIVISION, 1)
	case '&':
		return emit(AMP, 1)
	case '^':
		return emit(DEREF, 1)

	case ':':
		if l.peek2() == '=' {
			return emit(ASSIGN, 2)
		}
		return emit(COLON, 1)
	case '=':
		if l.peek2() == '>' {
			return emit(OUTPUT_ASSIGN, 2)
		}
		return emit(EQ, 1)
	case '*':
		if l.peek2() == '*' {
			return emit(EXPONENT, 2)
		}
		return emit(MULTIPLICATION, 1)
	case '<':
		switch l.peek2() {
		case '=':
			return emit(LESS_THAN_EQ, 2)
		case '>':
			return emit(NOT_EQ, 2)
		}
		return emit(LESS_THAN, 1)
	case '>':
		if l.peek2() == '=' {
			return emit(GREATER_THAN_EQ, 2)
		}
		return emit(GREATER_THAN, 1)
	case '.':
		if l.peek2() == '.' {
			if len(l.rest) > 2 && l.rest[2] == '.' {
				return emit(DOT_DOT_DOT, 3)
			}
			return emit(DOT_DOT, 2)
		}
		return emit(DOT, 1)

	case '\'':
		return l.scanString()
	}

	switch {
	case isDigit(c):
		return l.scanNumber(), true
	case isIdentStart(c):
		return l.scanIdent(), true
	}

	_, size := utf8.DecodeRune(l.rest)
	text := string(l.rest[:size])
	l.advance(size)
	return Token{Type: ILLEGAL, Offset: start, Len: size, Text: text}, true
}

// scanString reads a single-quoted literal. The quotes are not part of Text.
func (l *Lexer) scanString() (Token, bool) {
	start := l.pos
	end := bytes.IndexByte(l.rest[1:], '\'')
	if end < 0 {
		line, col := l.Position(start)
		l.log.Warn("%s:%d:%d: string literal is not properly closed", l.name, line, col)
		l.advance(1)
		return Token{}, false
	}
	text := string(l.rest[1 : 1+end])
	l.advance(end + 2)
	return Token{Type: STRING_LIT, Offset: start, Len: l.pos - start, Text: text}, true
}

// scanNumber reads decimal, real and based (2#, 8#, 16#) literals.
//
//	42  1_000  3.14  1.5E-3  16#FF  8#17  2#1010_0101
//
// A '.' is only a fraction point when a digit follows it, so 1..10 lexes as
// INTEGER_LIT DOT_DOT INTEGER_LIT.
func (l *Lexer) scanNumber() Token {
	start := l.pos
	l.skipDigits(isDigit)

	if l.peek() == '#' {
		tt := ILLEGAL
		switch string(l.src[start:l.pos]) {
		case "2":
			tt = BIN_LIT
		case "8":
			tt = OCT_LIT
		case "16":
			tt = HEX_LIT
		}
		if tt != ILLEGAL && isHexDigit(l.peek2()) {
			l.advance(1)
			l.skipDigits(isHexDigit)
			return l.literal(tt, start)
		}
	}

	if l.peek() != '.' || !isDigit(l.peek2()) {
		return l.literal(INTEGER_LIT, start)
	}

	l.advance(1)
	l.skipDigits(isDigit)

	if c := l.peek(); c == 'e' || c == 'E' {
		n := 1
		if len(l.rest) > 1 && (l.rest[1] == '+' || l.rest[1] == '-') {
			n = 2
		}
		if len(l.rest) > n && isDigit(l.rest[n]) {
			l.advance(n)
			l.skipDigits(isDigit)
		}
	}
	return l.literal(REAL_LIT, start)
}

func (l *Lexer) skipDigits(accept func(byte) bool) {
	for len(l.rest) > 0 && (accept(l.rest[0]) || l.rest[0] == '_') {
		l.advance(1)
	}
}

func (l *Lexer) literal(tt TokenType, start int) Token {
	return Token{Type: tt, Offset: start, Len: l.pos - start, Text: string(l.src[start:l.pos])}
}

// scanIdent reads an identifier and resolves keywords case-insensitively.
func (l *Lexer) scanIdent() Token {
	start := l.pos
	l.advance(1)
	for len(l.rest) > 0 && isIdentPart(l.rest[0]) {
		l.advance(1)
	}
	lexeme := string(l.src[start:l.pos])

	if tt, ok := l.keywords.Get(strings.ToUpper(lexeme)); ok {
		return Token{Type: tt, Offset: start, Len: l.pos - start}
	}
	return Token{Type: IDENT, Offset: start, Len: l.pos - start, Text: lexeme}
}

// lines returns the offset of the first byte of every line.
func (l *Lexer) lines() []int {
	if l.lineStarts == nil {
		l.lineStarts = []int{0}
		for i, c := range l.src {
			if c == '\n' {
				l.lineStarts = append(l.lineStarts, i+1)
			}
		}
	}
	return l.lineStarts
}

// Position converts a byte offset into a 1-based line and column. Offsets
// past the end clamp to the end of input.
func (l *Lexer) Position(offset int) (line, col int) {
	starts := l.lines()
	offset = max(0, min(offset, len(l.src)))
	idx := sort.Search(len(starts), func(i int) bool { return starts[i] > offset }) - 1
	return idx + 1, offset - starts[idx] + 1
}

// LineCount returns the number of source lines. A final newline does not
// start another line.
func (l *Lexer) LineCount() int {
	starts := l.lines()
	n := len(starts)
	if n > 1 && starts[n-1] == len(l.src) {
		n--
	}
	return n
}

// LineText returns the 1-based line without its line terminator, or "" when
// line is out of range.
func (l *Lexer) LineText(line int) string {
	starts := l.lines()
	if line < 1 || line > len(starts) {
		return ""
	}
	end := len(l.src)
	if line < len(starts) {
		end = starts[line] - 1
	}
	return strings.TrimSuffix(string(l.src[starts[line-1]:end]), "\r")
}

// Tokens drains the lexer and returns every token including the final EOF.
func (l *Lexer) Tokens() []Token {
	var toks []Token
	for {
		tok := l.Next()
		toks = append(toks, tok)
		if tok.Type == EOF {
			return toks
		}
	}
}

// Lex tokenises src with the default keyword set.
func Lex(name string, src []byte) []Token {
	return NewLexer(name, src, nil, nil).Tokens()
}
