// Package analysis declares the interface surface of the
// memory-safety/type-safety analyzers the original implementation
// carried (MemorySafetyAnalyzer, TypeSafetyChecker). Neither analyzer is
// implemented or invoked by the default pipeline — spec.md §1 keeps
// them out of scope and touches them only at the interface level.
package analysis

import "github.com/peach-lang/peachc/internal/ast"

// IssueKind enumerates the memory-safety issue categories the original
// MemorySafetyAnalyzer reported.
type IssueKind int

const (
	UninitializedUse IssueKind = iota
	DanglingPointer
	DoubleFree
	MemoryLeak
	BufferOverflow
)

// Issue is one reported memory-safety finding.
type Issue struct {
	Kind     IssueKind
	Message  string
	Variable string
	Line     int
	Column   int
}

// MemorySafetyAnalyzer is the interface a real implementation of the
// original's variable-lifetime and pointer-tracking analysis would
// satisfy. No type in this module implements it.
type MemorySafetyAnalyzer interface {
	AnalyzeProgram(prog *ast.Program) []Issue
	AnalyzeFunction(fn *ast.Function) []Issue
}

// TypeSafetyResult mirrors the original TypeSafetyChecker's verdict
// shape for one checked node.
type TypeSafetyResult struct {
	Valid   bool
	Message string
	Line    int
	Column  int
}

// TypeSafetyChecker is the interface a real implementation of the
// original's compile-time type-compatibility verification would
// satisfy. No type in this module implements it.
type TypeSafetyChecker interface {
	CheckProgram(prog *ast.Program) TypeSafetyResult
	CheckFunction(fn *ast.Function) TypeSafetyResult
}
