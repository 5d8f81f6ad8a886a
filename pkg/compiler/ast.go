package compiler

import (
	"fmt"
	"strings"
)

// NodeKind discriminates the Node variants.
type NodeKind int

const (
	NodeVarBlock NodeKind = iota
	NodeVarDecl
	NodeAssignment
	NodeIntLiteral
	NodeRealLiteral
	NodeStrLiteral
	NodeSymbol

	// Reserved for expression and control-flow support; the parser does not
	// produce these yet.
	NodeUnaryExpr
	NodeBinaryExpr
	NodeIfStmt
)

var nodeKindNames = [...]string{
	NodeVarBlock:    "VarBlock",
	NodeVarDecl:     "VarDecl",
	NodeAssignment:  "Assignment",
	NodeIntLiteral:  "IntLiteral",
	NodeRealLiteral: "RealLiteral",
	NodeStrLiteral:  "StrLiteral",
	NodeSymbol:      "Symbol",
	NodeUnaryExpr:   "UnaryExpr",
	NodeBinaryExpr:  "BinaryExpr",
	NodeIfStmt:      "IfStmt",
}

func (k NodeKind) String() string {
	if k >= 0 && int(k) < len(nodeKindNames) {
		return nodeKindNames[k]
	}
	return fmt.Sprintf("NodeKind(%d)", int(k))
}

// Node is implemented by every AST variant. The set is closed: only the
// types in this file implement it.
type Node interface {
	Kind() NodeKind
	String() string
	node()
}

//  Enumerations

// StorageClass is the kind of a VAR block.
type StorageClass int

const (
	StorageLocal    StorageClass = iota // VAR
	StorageTemp                         // VAR_TEMP
	StorageInput                        // VAR_INPUT
	StorageOutput                       // VAR_OUTPUT
	StorageInOut                        // VAR_IN_OUT
	StorageGlobal                       // VAR_GLOBAL
	StorageExternal                     // VAR_EXTERNAL
)

var storageClassNames = [...]string{
	StorageLocal:    "LOCAL",
	StorageTemp:     "TEMP",
	StorageInput:    "INPUT",
	StorageOutput:   "OUTPUT",
	StorageInOut:    "IN OUT",
	StorageGlobal:   "GLOBAL",
	StorageExternal: "EXTERNAL",
}

func (c StorageClass) String() string {
	if c >= 0 && int(c) < len(storageClassNames) {
		return storageClassNames[c]
	}
	return fmt.Sprintf("StorageClass(%d)", int(c))
}

// storageClasses maps the block-opening keyword to its class.
var storageClasses = map[TokenType]StorageClass{
	VAR:          StorageLocal,
	VAR_TEMP:     StorageTemp,
	VAR_INPUT:    StorageInput,
	VAR_OUTPUT:   StorageOutput,
	VAR_IN_OUT:   StorageInOut,
	VAR_GLOBAL:   StorageGlobal,
	VAR_EXTERNAL: StorageExternal,
}

// DataType is a declared elementary type.
type DataType int

const (
	NoType DataType = iota // the type token was not a known type
	TypeInt
	TypeReal
	TypeString
	NoReturnType // return type of units that are not functions
)

var dataTypeNames = [...]string{
	NoType:       "",
	TypeInt:      "INT",
	TypeReal:     "REAL",
	TypeString:   "STRING",
	NoReturnType: "",
}

func (t DataType) String() string {
	if t >= 0 && int(t) < len(dataTypeNames) {
		return dataTypeNames[t]
	}
	return fmt.Sprintf("DataType(%d)", int(t))
}

func dataTypeOf(tt TokenType) DataType {
	switch tt {
	case INT:
		return TypeInt
	case REAL:
		return TypeReal
	case STRING:
		return TypeString
	}
	return NoType
}

// UnitKind is the kind of a program organisation unit.
type UnitKind int

const (
	UnitProgram UnitKind = iota
	UnitAction
	UnitClass
)

var unitKindNames = [...]string{
	UnitProgram: "PROGRAM",
	UnitAction:  "ACTION",
	UnitClass:   "CLASS",
}

func (k UnitKind) String() string {
	if k >= 0 && int(k) < len(unitKindNames) {
		return unitKindNames[k]
	}
	return fmt.Sprintf("UnitKind(%d)", int(k))
}

// terminator returns the keyword closing a unit of this kind.
func (k UnitKind) terminator() TokenType {
	switch k {
	case UnitAction:
		return END_ACTION
	case UnitClass:
		return END_CLASS
	}
	return END_PROGRAM
}

//  Leaves

// Symbol is a name, either declared or referenced.
//
//	x := y;
//	^    ^  Symbol{Label: "x"}, Symbol{Label: "y"}
type Symbol struct {
	Label string
}

func (*Symbol) Kind() NodeKind   { return NodeSymbol }
func (*Symbol) node()            {}
func (s *Symbol) String() string { return s.Label }

// IntLiteral is an integer constant in any base.
type IntLiteral struct {
	Value int64
}

func (*IntLiteral) Kind() NodeKind   { return NodeIntLiteral }
func (*IntLiteral) node()            {}
func (l *IntLiteral) String() string { return fmt.Sprintf("%d", l.Value) }

// RealLiteral is a floating-point constant.
type RealLiteral struct {
	Value float64
}

func (*RealLiteral) Kind() NodeKind   { return NodeRealLiteral }
func (*RealLiteral) node()            {}
func (l *RealLiteral) String() string { return fmt.Sprintf("%g", l.Value) }

// StrLiteral is a single-quoted string constant, quotes removed.
type StrLiteral struct {
	Value string
}

func (*StrLiteral) Kind() NodeKind   { return NodeStrLiteral }
func (*StrLiteral) node()            {}
func (l *StrLiteral) String() string { return fmt.Sprintf("'%s'", l.Value) }

//  Declarations and statements

// VarDecl declares one or more names of the same type.
//
//	x, y : INT := 5;
//	^^^^   ^^^    ^  Labels, Type, Init
type VarDecl struct {
	Labels []*Symbol
	Type   DataType
	Init   Node // nil when there is no initializer
}

func (*VarDecl) Kind() NodeKind { return NodeVarDecl }
func (*VarDecl) node()          {}
func (d *VarDecl) String() string {
	names := make([]string, len(d.Labels))
	for i, s := range d.Labels {
		names[i] = s.Label
	}
	out := fmt.Sprintf("%s : %s", strings.Join(names, ", "), d.Type)
	if d.Init != nil {
		out += " := " + d.Init.String()
	}
	return out + ";"
}

// VarBlock is a VAR ... END_VAR section.
type VarBlock struct {
	Class StorageClass
	Decls []*VarDecl
}

func (*VarBlock) Kind() NodeKind { return NodeVarBlock }
func (*VarBlock) node()          {}
func (b *VarBlock) String() string {
	return fmt.Sprintf("VarBlock(%s, %d decl(s))", b.Class, len(b.Decls))
}

// Assignment stores Value into Target.
type Assignment struct {
	Target *Symbol
	Value  Node
}

func (*Assignment) Kind() NodeKind { return NodeAssignment }
func (*Assignment) node()          {}
func (a *Assignment) String() string {
	return fmt.Sprintf("%s := %s;", a.Target, a.Value)
}

//  Reserved variants

// PrefixOp is a unary operator.
type PrefixOp int

const (
	OpNegate PrefixOp = iota // -
	OpNot                    // NOT
)

// InfixOp is a binary operator.
type InfixOp int

const (
	OpAdd InfixOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpPow
	OpEq
	OpNotEq
	OpLess
	OpLessEq
	OpGreater
	OpGreaterEq
	OpAnd
	OpOr
	OpXor
)

// UnaryExpr is Op Operand.
type UnaryExpr struct {
	Op      PrefixOp
	Operand Node
}

func (*UnaryExpr) Kind() NodeKind { return NodeUnaryExpr }
func (*UnaryExpr) node()          {}
func (u *UnaryExpr) String() string {
	return fmt.Sprintf("UnaryExpr(%d, %s)", u.Op, u.Operand)
}

// BinaryExpr is Left Op Right.
type BinaryExpr struct {
	Op    InfixOp
	Left  Node
	Right Node
}

func (*BinaryExpr) Kind() NodeKind { return NodeBinaryExpr }
func (*BinaryExpr) node()          {}
func (b *BinaryExpr) String() string {
	return fmt.Sprintf("BinaryExpr(%d, %s, %s)", b.Op, b.Left, b.Right)
}

// IfStmt is IF Cond THEN Then ELSE Else END_IF.
type IfStmt struct {
	Cond Node
	Then []Node
	Else []Node
}

func (*IfStmt) Kind() NodeKind { return NodeIfStmt }
func (*IfStmt) node()          {}
func (s *IfStmt) String() string {
	return fmt.Sprintf("IfStmt(%s, %d, %d)", s.Cond, len(s.Then), len(s.Else))
}

//  Units

// STUnit is one PROGRAM, ACTION or CLASS.
type STUnit struct {
	Kind       UnitKind
	Name       *Symbol
	VarBlocks  []*VarBlock
	Statements []Node
	ReturnType DataType
}

func (u *STUnit) String() string {
	return fmt.Sprintf("%s %s (%d var block(s), %d statement(s))",
		u.Kind, u.Name, len(u.VarBlocks), len(u.Statements))
}

// CompilationUnit holds the units of one source file in source order.
type CompilationUnit struct {
	Units []*STUnit
}

// Walk calls fn for n and then for every node below it, depth first. A
// false return skips the children of that node.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}
	switch n := n.(type) {
	case *VarBlock:
		for _, d := range n.Decls {
			Walk(d, fn)
		}
	case *VarDecl:
		for _, s := range n.Labels {
			Walk(s, fn)
		}
		Walk(n.Init, fn)
	case *Assignment:
		Walk(n.Target, fn)
		Walk(n.Value, fn)
	case *UnaryExpr:
		Walk(n.Operand, fn)
	case *BinaryExpr:
		Walk(n.Left, fn)
		Walk(n.Right, fn)
	case *IfStmt:
		Walk(n.Cond, fn)
		for _, s := range n.Then {
			Walk(s, fn)
		}
		for _, s := range n.Else {
			Walk(s, fn)
		}
	case *IntLiteral, *RealLiteral, *StrLiteral, *Symbol:
	default:
		panic(fmt.Sprintf("compiler: unknown node %T", n))
	}
}

// WalkUnit walks the var blocks and then the statements of u.
func WalkUnit(u *STUnit, fn func(Node) bool) {
	for _, b := range u.VarBlocks {
		Walk(b, fn)
	}
	for _, s := range u.Statements {
		Walk(s, fn)
	}
}
