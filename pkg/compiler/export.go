package compiler

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// The *Doc types are the YAML shape of a CompilationUnit.

type compilationDoc struct {
	Units []unitDoc `yaml:"units"`
}

type unitDoc struct {
	Kind       string     `yaml:"kind"`
	Name       string     `yaml:"name"`
	ReturnType string     `yaml:"return_type,omitempty"`
	VarBlocks  []blockDoc `yaml:"var_blocks,omitempty"`
	Statements []nodeDoc  `yaml:"statements,omitempty"`
}

type blockDoc struct {
	Class string    `yaml:"class"`
	Decls []declDoc `yaml:"decls"`
}

type declDoc struct {
	Symbols []string `yaml:"symbols"`
	Type    string   `yaml:"type"`
	Init    *nodeDoc `yaml:"init,omitempty"`
}

type nodeDoc struct {
	Kind     string    `yaml:"kind"`
	Target   string    `yaml:"target,omitempty"`
	Value    any       `yaml:"value,omitempty"` // omitted only when nil, so 0 and "" are kept
	Operands []nodeDoc `yaml:"operands,omitempty"`
}

// ExportYAML writes cu to w as a YAML document.
func ExportYAML(w io.Writer, cu *CompilationUnit) error {
	doc := compilationDoc{Units: make([]unitDoc, 0, len(cu.Units))}
	for _, u := range cu.Units {
		doc.Units = append(doc.Units, unitToDoc(u))
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode compilation unit: %w", err)
	}
	return enc.Close()
}

func unitToDoc(u *STUnit) unitDoc {
	doc := unitDoc{
		Kind:       u.Kind.String(),
		Name:       u.Name.Label,
		ReturnType: u.ReturnType.String(),
	}
	for _, b := range u.VarBlocks {
		bd := blockDoc{Class: b.Class.String(), Decls: make([]declDoc, 0, len(b.Decls))}
		for _, d := range b.Decls {
			bd.Decls = append(bd.Decls, declToDoc(d))
		}
		doc.VarBlocks = append(doc.VarBlocks, bd)
	}
	for _, s := range u.Statements {
		doc.Statements = append(doc.Statements, nodeToDoc(s))
	}
	return doc
}

func declToDoc(d *VarDecl) declDoc {
	doc := declDoc{Type: d.Type.String()}
	for _, s := range d.Labels {
		doc.Symbols = append(doc.Symbols, s.Label)
	}
	if d.Init != nil {
		init := nodeToDoc(d.Init)
		doc.Init = &init
	}
	return doc
}

func nodeToDoc(n Node) nodeDoc {
	doc := nodeDoc{Kind: n.Kind().String()}
	switch n := n.(type) {
	case *Assignment:
		doc.Target = n.Target.Label
		doc.Operands = []nodeDoc{nodeToDoc(n.Value)}
	case *IntLiteral:
		doc.Value = n.Value
	case *RealLiteral:
		doc.Value = n.Value
	case *StrLiteral:
		doc.Value = n.Value
	case *Symbol:
		doc.Value = n.Label
	case *UnaryExpr:
		doc.Value = int(n.Op)
		doc.Operands = []nodeDoc{nodeToDoc(n.Operand)}
	case *BinaryExpr:
		doc.Value = int(n.Op)
		doc.Operands = []nodeDoc{nodeToDoc(n.Left), nodeToDoc(n.Right)}
	case *IfStmt:
		doc.Operands = []nodeDoc{nodeToDoc(n.Cond)}
		for _, s := range n.Then {
			doc.Operands = append(doc.Operands, nodeToDoc(s))
		}
		for _, s := range n.Else {
			doc.Operands = append(doc.Operands, nodeToDoc(s))
		}
	case *VarBlock, *VarDecl:
		panic(fmt.Sprintf("compiler: %T is not an expression or statement", n))
	default:
		panic(fmt.Sprintf("compiler: cannot export %T", n))
	}
	return doc
}
