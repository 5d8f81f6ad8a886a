package compiler

import (
	"fmt"
	"io"
	"strings"
)

// Dump writes an indented debug listing of cu to w, two spaces per level:
//
//	PROGRAM:
//	  NAME: P
//	  VARIABLE_DECLARATIONS:
//	    VAR DECLARATION BLOCK (LOCAL):
//	      VAR DECLARATION:
//	        Symbols: x, y
//	        TYPE: INT
//	  BODY:
//	    ASSIGNMENT:
//	      LHS: x
//	      RHS:
//	        INT LITERAL: 5
func Dump(w io.Writer, cu *CompilationUnit) error {
	d := &dumper{w: w}
	for _, u := range cu.Units {
		d.unit(u, 0)
	}
	return d.err
}

// DumpNode writes the listing of a single node at depth 0.
func DumpNode(w io.Writer, n Node) error {
	d := &dumper{w: w}
	d.node(n, 0)
	return d.err
}

type dumper struct {
	w   io.Writer
	err error
}

func (d *dumper) line(depth int, format string, args ...any) {
	if d.err != nil {
		return
	}
	_, d.err = fmt.Fprintf(d.w, "%s%s\n", strings.Repeat("  ", depth), fmt.Sprintf(format, args...))
}

func (d *dumper) unit(u *STUnit, depth int) {
	d.line(depth, "%s:", u.Kind)
	d.line(depth+1, "NAME: %s", u.Name.Label)

	if len(u.VarBlocks) > 0 {
		d.line(depth+1, "VARIABLE_DECLARATIONS:")
		for _, b := range u.VarBlocks {
			d.node(b, depth+2)
		}
	}
	if len(u.Statements) > 0 {
		d.line(depth+1, "BODY:")
		for _, s := range u.Statements {
			d.node(s, depth+2)
		}
	}
}

func (d *dumper) node(n Node, depth int) {
	switch n := n.(type) {
	case *VarBlock:
		d.line(depth, "VAR DECLARATION BLOCK (%s):", n.Class)
		for _, decl := range n.Decls {
			d.node(decl, depth+1)
		}

	case *VarDecl:
		names := make([]string, len(n.Labels))
		for i, s := range n.Labels {
			names[i] = s.Label
		}
		d.line(depth, "VAR DECLARATION:")
		d.line(depth+1, "Symbols: %s", strings.Join(names, ", "))
		d.line(depth+1, "TYPE: %s", n.Type)
		if n.Init != nil {
			d.line(depth+1, "VALUE:")
			d.node(n.Init, depth+2)
		}

	case *Assignment:
		d.line(depth, "ASSIGNMENT:")
		d.line(depth+1, "LHS: %s", n.Target.Label)
		d.line(depth+1, "RHS:")
		d.node(n.Value, depth+2)

	case *IntLiteral:
		d.line(depth, "INT LITERAL: %d", n.Value)
	case *RealLiteral:
		d.line(depth, "REAL LITERAL: %f", n.Value)
	case *StrLiteral:
		d.line(depth, "STR LITERAL: %s", n.Value)
	case *Symbol:
		d.line(depth, "SYMBOL: %s", n.Label)

	case *UnaryExpr:
		d.line(depth, "UNARY EXPR (%d):", n.Op)
		d.node(n.Operand, depth+1)
	case *BinaryExpr:
		d.line(depth, "BINARY EXPR (%d):", n.Op)
		d.node(n.Left, depth+1)
		d.node(n.Right, depth+1)
	case *IfStmt:
		d.line(depth, "IF:")
		d.node(n.Cond, depth+1)
		for _, s := range n.Then {
			d.node(s, depth+1)
		}
		if len(n.Else) > 0 {
			d.line(depth, "ELSE:")
			for _, s := range n.Else {
				d.node(s, depth+1)
			}
		}

	default:
		panic(fmt.Sprintf("compiler: cannot dump %T", n))
	}
}
