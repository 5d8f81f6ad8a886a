package compiler

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser pulls tokens from a Lexer through a two-token window and builds a
// CompilationUnit by recursive descent.
//
// Grammar:
//
//	compilation_unit = { st_unit } EOF
//	st_unit          = ("PROGRAM" | "ACTION") IDENT { var_block | statement } END_<kind>
//	var_block        = var_kind { var_decl } "END_VAR"
//	var_kind         = "VAR" | "VAR_TEMP" | "VAR_INPUT" | "VAR_OUTPUT"
//	                 | "VAR_IN_OUT" | "VAR_GLOBAL" | "VAR_EXTERNAL"
//	var_decl         = IDENT { "," IDENT } ":" type [ ":=" expr ] ";"
//	statement        = IDENT ":=" expr ";"
//	expr             = INTEGER | REAL | STRING | IDENT
//
// Tokens that cannot start a unit are reported through the lexer and
// skipped. Any mismatch inside a unit stops the parse with a *SyntaxError.
type Parser struct {
	lx     *Lexer
	window lookahead
}

// NewParser returns a parser reading from lx with the window already filled.
func NewParser(lx *Lexer) *Parser {
	p := &Parser{lx: lx}
	for p.window.len() < lookaheadDepth {
		p.window.push(lx.Next())
	}
	return p
}

// SyntaxError is an unrecoverable parse failure.
type SyntaxError struct {
	File     string
	Line     int
	Col      int
	Expected string // what the production needed; empty for other failures
	Got      Token
	Msg      string
	Snippet  string // the offending source line, trimmed
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("%s:%d:%d: %s\n  |> %s", e.File, e.Line, e.Col, e.Msg, e.Snippet)
}

// describe renders a token for messages: the kind and, when present, its text.
func describe(tok Token) string {
	if tok.Type.HasText() {
		return fmt.Sprintf("%s %q", tok.Type, tok.Text)
	}
	return tok.Type.String()
}

// fail builds a SyntaxError located at tok.
func (p *Parser) fail(tok Token, expected, format string, args ...any) error {
	line, col := p.lx.Position(tok.Offset)
	return &SyntaxError{
		File:     p.lx.Name(),
		Line:     line,
		Col:      col,
		Expected: expected,
		Got:      tok,
		Msg:      fmt.Sprintf(format, args...),
		Snippet:  strings.TrimSpace(p.lx.LineText(line)),
	}
}

// unexpected reports that tok is not what the production needs.
func (p *Parser) unexpected(tok Token, expected string) error {
	if tok.Type == EOF {
		return p.fail(tok, expected, "reached end of file, expected %s", expected)
	}
	return p.fail(tok, expected, "expected %s, received %s", expected, describe(tok))
}

// current returns the next unconsumed token.
func (p *Parser) current() Token { return p.window.at(0) }

// peek returns the token after current.
func (p *Parser) peek() Token { return p.window.at(1) }

// advance consumes and returns the current token.
func (p *Parser) advance() Token {
	tok := p.window.pop()
	p.window.push(p.lx.Next())
	return tok
}

// accept consumes the current token if it is of type tt.
func (p *Parser) accept(tt TokenType) bool {
	if p.current().Type != tt {
		return false
	}
	p.advance()
	return true
}

// expect consumes the current token if it matches tt, otherwise returns an error.
func (p *Parser) expect(tt TokenType) (Token, error) {
	tok := p.current()
	if tok.Type != tt {
		return tok, p.unexpected(tok, tt.String())
	}
	return p.advance(), nil
}

// ParseCompilationUnit parses units until end of input.
func (p *Parser) ParseCompilationUnit() (*CompilationUnit, error) {
	cu := &CompilationUnit{}
	for {
		tok := p.current()
		switch tok.Type {
		case EOF:
			return cu, nil

		case PROGRAM, ACTION:
			unit, err := p.parseUnit()
			if err != nil {
				return nil, err
			}
			cu.Units = append(cu.Units, unit)

		default:
			p.lx.Report(tok.Offset, max(tok.Len, 1), fmt.Sprintf("unexpected %s at top level", describe(tok)))
			p.advance()
		}
	}
}

// parseUnit parses one PROGRAM or ACTION. The unit is returned only once its
// terminator has been consumed.
func (p *Parser) parseUnit() (*STUnit, error) {
	kind := UnitProgram
	if p.advance().Type == ACTION {
		kind = UnitAction
	}

	name, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}

	unit := &STUnit{
		Kind:       kind,
		Name:       &Symbol{Label: name.Text},
		ReturnType: NoReturnType,
	}
	end := kind.terminator()

	for {
		tok := p.current()
		if tok.Type == end {
			p.advance()
			return unit, nil
		}
		if _, ok := storageClasses[tok.Type]; ok {
			block, err := p.parseVarBlock()
			if err != nil {
				return nil, err
			}
			unit.VarBlocks = append(unit.VarBlocks, block)
			continue
		}

		switch {
		case tok.Type == EOF:
			return nil, p.fail(tok, end.String(), "reached end of file before %s of %s %s", end, kind, name.Text)
		case tok.Type == IDENT && p.peek().Type == ASSIGN:
			stmt, err := p.parseStatement()
			if err != nil {
				return nil, err
			}
			unit.Statements = append(unit.Statements, stmt)
		case tok.Type == IDENT:
			return nil, p.unexpected(p.peek(), ASSIGN.String())
		default:
			return nil, p.unexpected(tok, "variable block or statement")
		}
	}
}

// parseVarBlock parses VAR... END_VAR. The current token opens the block.
func (p *Parser) parseVarBlock() (*VarBlock, error) {
	open := p.advance()
	block := &VarBlock{Class: storageClasses[open.Type]}

	for {
		tok := p.current()
		switch tok.Type {
		case END_VAR:
			p.advance()
			return block, nil
		case IDENT:
			decl, err := p.parseVarDecl()
			if err != nil {
				return nil, err
			}
			block.Decls = append(block.Decls, decl)
		default:
			return nil, p.unexpected(tok, "IDENT or END_VAR")
		}
	}
}

// parseVarDecl parses
//
//	a, b, c : INT := 0;
//
// An unknown type token is consumed and yields NoType.
func (p *Parser) parseVarDecl() (*VarDecl, error) {
	first, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	decl := &VarDecl{Labels: []*Symbol{{Label: first.Text}}}

	for p.accept(COMMA) {
		tok, err := p.expect(IDENT)
		if err != nil {
			return nil, err
		}
		decl.Labels = append(decl.Labels, &Symbol{Label: tok.Text})
	}

	if _, err := p.expect(COLON); err != nil {
		return nil, err
	}

	typeTok := p.current()
	if typeTok.Type == EOF {
		return nil, p.unexpected(typeTok, "type")
	}
	p.advance()
	decl.Type = dataTypeOf(typeTok.Type)

	if p.accept(ASSIGN) {
		init, err := p.parseExpr()
		if err != nil {
			return nil, err
		}
		decl.Init = init
	}

	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return decl, nil
}

// parseStatement parses an assignment.
func (p *Parser) parseStatement() (Node, error) {
	target, err := p.expect(IDENT)
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(ASSIGN); err != nil {
		return nil, err
	}
	value, err := p.parseExpr()
	if err != nil {
		return nil, err
	}
	if _, err := p.expect(SEMICOLON); err != nil {
		return nil, err
	}
	return &Assignment{Target: &Symbol{Label: target.Text}, Value: value}, nil
}

// parseExpr parses a single literal or name.
func (p *Parser) parseExpr() (Node, error) {
	tok := p.current()
	switch tok.Type {
	case INTEGER_LIT, HEX_LIT, OCT_LIT, BIN_LIT:
		v, err := parseInt(tok)
		if err != nil {
			return nil, p.fail(tok, "", "invalid integer literal %q: %v", tok.Text, err)
		}
		p.advance()
		return &IntLiteral{Value: v}, nil

	case REAL_LIT:
		v, err := strconv.ParseFloat(strings.ReplaceAll(tok.Text, "_", ""), 64)
		if err != nil {
			return nil, p.fail(tok, "", "invalid real literal %q: %v", tok.Text, err)
		}
		p.advance()
		return &RealLiteral{Value: v}, nil

	case STRING_LIT:
		p.advance()
		return &StrLiteral{Value: tok.Text}, nil

	case IDENT:
		p.advance()
		return &Symbol{Label: tok.Text}, nil
	}
	return nil, p.unexpected(tok, "expression")
}

// parseInt converts an integer token in any base. Digit separators are
// dropped and based literals lose their "16#" prefix.
func parseInt(tok Token) (int64, error) {
	base := 10
	switch tok.Type {
	case HEX_LIT:
		base = 16
	case OCT_LIT:
		base = 8
	case BIN_LIT:
		base = 2
	}
	digits := tok.Text
	if i := strings.IndexByte(digits, '#'); i >= 0 {
		digits = digits[i+1:]
	}
	return strconv.ParseInt(strings.ReplaceAll(digits, "_", ""), base, 64)
}
