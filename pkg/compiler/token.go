package compiler

import "fmt"

// TokenType identifies the category of a lexed token.
type TokenType int

const (
	EOF     TokenType = iota // sentinel: end of input
	ILLEGAL                  // a character no rule accepts; also the "not a keyword" sentinel

	// Literals
	IDENT       // identifier, original case kept in Text
	INTEGER_LIT // 42, 1_000
	HEX_LIT     // 16#FF
	OCT_LIT     // 8#17
	BIN_LIT     // 2#1010
	REAL_LIT    // 3.14, 1.5E-3
	STRING_LIT  // 'text', quotes stripped

	// Organisation units
	PROGRAM
	END_PROGRAM
	ACTION
	END_ACTION
	ACTIONS
	END_ACTIONS
	CLASS
	END_CLASS
	EXTENDS
	IMPLEMENTS
	INTERFACE
	END_INTERFACE
	PROPERTY
	END_PROPERTY
	METHOD
	END_METHOD
	FUNCTION
	END_FUNCTION
	FUNCTION_BLOCK
	END_FUNCTION_BLOCK
	TYPE
	END_TYPE
	STRUCT
	END_STRUCT

	// Variable blocks and qualifiers
	VAR
	VAR_INPUT
	VAR_OUTPUT
	VAR_IN_OUT
	VAR_TEMP
	VAR_GLOBAL
	VAR_EXTERNAL
	VAR_CONFIG
	END_VAR
	CONSTANT
	RETAIN
	NON_RETAIN
	ABSTRACT
	FINAL
	OVERRIDE
	PUBLIC
	PRIVATE
	INTERNAL
	PROTECTED

	// Control flow
	IF
	THEN
	ELSIF
	ELSE
	END_IF
	CASE
	OF
	END_CASE
	FOR
	TO
	BY
	DO
	END_FOR
	WHILE
	END_WHILE
	REPEAT
	UNTIL
	END_REPEAT
	RETURN
	EXIT
	CONTINUE

	// Types
	INT
	REAL
	STRING
	WSTRING
	ARRAY
	POINTER
	REF_TO
	AT

	// Punctuation
	COLON         // :
	SEMICOLON     // ;
	ASSIGN        // :=
	OUTPUT_ASSIGN // =>
	LPAREN        // (
	RPAREN        // )
	LBRACKET      // [
	RBRACKET      // ]
	COMMA         // ,
	DOT           // .
	DOT_DOT       // ..
	DOT_DOT_DOT   // ...

	// Operators
	PLUS            // +
	MINUS           // -
	MULTIPLICATION  // *
	EXPONENT        // **
	DIVISION        // /
	EQ              // =
	NOT_EQ          // <>
	LESS_THAN       // <
	LESS_THAN_EQ    // <=
	GREATER_THAN    // >
	GREATER_THAN_EQ // >=
	AMP             // &
	DEREF           // ^
	MOD             // MOD
	AND             // AND
	OR              // OR
	XOR             // XOR
	NOT             // NOT
)

// tokenNames is indexed by TokenType.
var tokenNames = [...]string{
	EOF:                "EOF",
	ILLEGAL:            "ILLEGAL",
	IDENT:              "IDENT",
	INTEGER_LIT:        "INTEGER_LIT",
	HEX_LIT:            "HEX_LIT",
	OCT_LIT:            "OCT_LIT",
	BIN_LIT:            "BIN_LIT",
	REAL_LIT:           "REAL_LIT",
	STRING_LIT:         "STRING_LIT",
	PROGRAM:            "PROGRAM",
	END_PROGRAM:        "END_PROGRAM",
	ACTION:             "ACTION",
	END_ACTION:         "END_ACTION",
	ACTIONS:            "ACTIONS",
	END_ACTIONS:        "END_ACTIONS",
	CLASS:              "CLASS",
	END_CLASS:          "END_CLASS",
	EXTENDS:            "EXTENDS",
	IMPLEMENTS:         "IMPLEMENTS",
	INTERFACE:          "INTERFACE",
	END_INTERFACE:      "END_INTERFACE",
	PROPERTY:           "PROPERTY",
	END_PROPERTY:       "END_PROPERTY",
	METHOD:             "METHOD",
	END_METHOD:         "END_METHOD",
	FUNCTION:           "FUNCTION",
	END_FUNCTION:       "END_FUNCTION",
	FUNCTION_BLOCK:     "FUNCTION_BLOCK",
	END_FUNCTION_BLOCK: "END_FUNCTION_BLOCK",
	TYPE:               "TYPE",
	END_TYPE:           "END_TYPE",
	STRUCT:             "STRUCT",
	END_STRUCT:         "END_STRUCT",
	VAR:                "VAR",
	VAR_INPUT:          "VAR_INPUT",
	VAR_OUTPUT:         "VAR_OUTPUT",
	VAR_IN_OUT:         "VAR_IN_OUT",
	VAR_TEMP:           "VAR_TEMP",
	VAR_GLOBAL:         "VAR_GLOBAL",
	VAR_EXTERNAL:       "VAR_EXTERNAL",
	VAR_CONFIG:         "VAR_CONFIG",
	END_VAR:            "END_VAR",
	CONSTANT:           "CONSTANT",
	RETAIN:             "RETAIN",
	NON_RETAIN:         "NON_RETAIN",
	ABSTRACT:           "ABSTRACT",
	FINAL:              "FINAL",
	OVERRIDE:           "OVERRIDE",
	PUBLIC:             "PUBLIC",
	PRIVATE:            "PRIVATE",
	INTERNAL:           "INTERNAL",
	PROTECTED:          "PROTECTED",
	IF:                 "IF",
	THEN:               "THEN",
	ELSIF:              "ELSIF",
	ELSE:               "ELSE",
	END_IF:             "END_IF",
	CASE:               "CASE",
	OF:                 "OF",
	END_CASE:           "END_CASE",
	FOR:                "FOR",
	TO:                 "TO",
	BY:                 "BY",
	DO:                 "DO",
	END_FOR:            "END_FOR",
	WHILE:              "WHILE",
	END_WHILE:          "END_WHILE",
	REPEAT:             "REPEAT",
	UNTIL:              "UNTIL",
	END_REPEAT:         "END_REPEAT",
	RETURN:             "RETURN",
	EXIT:               "EXIT",
	CONTINUE:           "CONTINUE",
	INT:                "INT",
	REAL:               "REAL",
	STRING:             "STRING",
	WSTRING:            "WSTRING",
	ARRAY:              "ARRAY",
	POINTER:            "POINTER",
	REF_TO:             "REF_TO",
	AT:                 "AT",
	COLON:              "COLON",
	SEMICOLON:          "SEMICOLON",
	ASSIGN:             "ASSIGN",
	OUTPUT_ASSIGN:      "OUTPUT_ASSIGN",
	LPAREN:             "LPAREN",
	RPAREN:             "RPAREN",
	LBRACKET:           "LBRACKET",
	RBRACKET:           "RBRACKET",
	COMMA:              "COMMA",
	DOT:                "DOT",
	DOT_DOT:            "DOT_DOT",
	DOT_DOT_DOT:        "DOT_DOT_DOT",
	PLUS:               "PLUS",
	MINUS:              "MINUS",
	MULTIPLICATION:     "MULTIPLICATION",
	EXPONENT:           "EXPONENT",
	DIVISION:           "DIVISION",
	EQ:                 "EQ",
	NOT_EQ:             "NOT_EQ",
	LESS_THAN:          "LESS_THAN",
	LESS_THAN_EQ:       "LESS_THAN_EQ",
	GREATER_THAN:       "GREATER_THAN",
	GREATER_THAN_EQ:    "GREATER_THAN_EQ",
	AMP:                "AMP",
	DEREF:              "DEREF",
	MOD:                "MOD",
	AND:                "AND",
	OR:                 "OR",
	XOR:                "XOR",
	NOT:                "NOT",
}

func (tt TokenType) String() string {
	if int(tt) >= 0 && int(tt) < len(tokenNames) {
		return tokenNames[tt]
	}
	return fmt.Sprintf("TokenType(%d)", int(tt))
}

// HasText reports whether tokens of this type carry source text.
func (tt TokenType) HasText() bool {
	switch tt {
	case IDENT, INTEGER_LIT, HEX_LIT, OCT_LIT, BIN_LIT, REAL_LIT, STRING_LIT, ILLEGAL:
		return true
	}
	return false
}

// Token is a single lexical unit produced by the Lexer.
type Token struct {
	Type   TokenType
	Offset int    // byte offset of the first character in the source buffer
	Len    int    // number of source bytes the token spans
	Text   string // identifier / literal / illegal character text; empty otherwise
}

func (t Token) String() string {
	if t.Type.HasText() {
		return fmt.Sprintf("%s %q @%d", t.Type, t.Text, t.Offset)
	}
	return fmt.Sprintf("%s @%d", t.Type, t.Offset)
}
