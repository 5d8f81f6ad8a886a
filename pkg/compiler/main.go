// Package compiler provides the Structured Text (IEC 61131-3) front end: a
// keyword table, a lexer, a recursive-descent parser and the AST they build.
//
// Pipeline: ST source → Lexer → Parser → CompilationUnit → Dump / ExportYAML
package compiler
