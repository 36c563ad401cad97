// Package ast defines peachc's tagged AST hierarchy: expressions,
// statements, and types, aggregated into a Program.
//
// Every node produced by the parser has fully materialized children —
// there are no placeholder/lazy nodes (spec.md §3.7). Parents own their
// children exclusively; anything outside the AST (the type registry, the
// code generator) holds only non-owning references into it.
package ast

import "fmt"

// Node is the minimal interface shared by every AST node.
type Node interface {
	String() string
}

// Expr is any expression node.
type Expr interface {
	Node
	exprNode()
}

// Stmt is any statement node.
type Stmt interface {
	Node
	stmtNode()
}

// TypeNode is any type node.
type TypeNode interface {
	Node
	typeNode()
}

// ===== Types =====

// BasicType names one of the built-in primitive types.
type BasicType struct {
	Name string // "int" | "long" | "float" | "double" | "bool" | "string" | "void"
}

func (t *BasicType) typeNode()      {}
func (t *BasicType) String() string { return t.Name }

// PointerType is a single level of pointer indirection; **T is expressed
// as PointerType{Elem: PointerType{Elem: T}}.
type PointerType struct {
	Elem TypeNode
}

func (t *PointerType) typeNode()      {}
func (t *PointerType) String() string { return "*" + t.Elem.String() }

// ArrayType is an element type with an optional constant-expression
// size; a nil Size means "inferred from initializer" (spec.md §3.2).
type ArrayType struct {
	Elem TypeNode
	Size Expr // nil if inferred
}

func (t *ArrayType) typeNode() {}
func (t *ArrayType) String() string {
	if t.Size == nil {
		return "[]" + t.Elem.String()
	}
	return fmt.Sprintf("[%s]%s", t.Size.String(), t.Elem.String())
}

// NamedType refers to a user-defined struct, union, or enum.
type NamedType struct {
	Name string
}

func (t *NamedType) typeNode()      {}
func (t *NamedType) String() string { return t.Name }

// ===== Expressions =====

type IntLiteral struct{ Value int64 }

func (*IntLiteral) exprNode()        {}
func (e *IntLiteral) String() string { return fmt.Sprintf("%d", e.Value) }

type LongLiteral struct{ Value int64 }

func (*LongLiteral) exprNode()        {}
func (e *LongLiteral) String() string { return fmt.Sprintf("%dL", e.Value) }

type FloatLiteral struct{ Value float64 }

func (*FloatLiteral) exprNode()        {}
func (e *FloatLiteral) String() string { return fmt.Sprintf("%gf", e.Value) }

type DoubleLiteral struct{ Value float64 }

func (*DoubleLiteral) exprNode()        {}
func (e *DoubleLiteral) String() string { return fmt.Sprintf("%g", e.Value) }

type StringLiteral struct{ Value string }

func (*StringLiteral) exprNode()        {}
func (e *StringLiteral) String() string { return fmt.Sprintf("%q", e.Value) }

type BoolLiteral struct{ Value bool }

func (*BoolLiteral) exprNode()        {}
func (e *BoolLiteral) String() string { return fmt.Sprintf("%t", e.Value) }

type Identifier struct{ Name string }

func (*Identifier) exprNode()        {}
func (e *Identifier) String() string { return e.Name }

type ArrayLiteral struct{ Elements []Expr }

func (*ArrayLiteral) exprNode()        {}
func (e *ArrayLiteral) String() string { return "[array literal]" }

type IndexExpr struct {
	Array Expr
	Index Expr
}

func (*IndexExpr) exprNode()        {}
func (e *IndexExpr) String() string { return e.Array.String() + "[" + e.Index.String() + "]" }

type BinaryExpr struct {
	Left  Expr
	Op    string
	Right Expr
}

func (*BinaryExpr) exprNode() {}
func (e *BinaryExpr) String() string {
	return fmt.Sprintf("(%s %s %s)", e.Left.String(), e.Op, e.Right.String())
}

type UnaryExpr struct {
	Op      string
	Operand Expr
}

func (*UnaryExpr) exprNode()        {}
func (e *UnaryExpr) String() string { return e.Op + e.Operand.String() }

type AddressOfExpr struct{ Operand Expr }

func (*AddressOfExpr) exprNode()        {}
func (e *AddressOfExpr) String() string { return "&" + e.Operand.String() }

type DereferenceExpr struct{ Operand Expr }

func (*DereferenceExpr) exprNode()        {}
func (e *DereferenceExpr) String() string { return "*" + e.Operand.String() }

type CallExpr struct {
	FunctionName string
	Args         []Expr
}

func (*CallExpr) exprNode()        {}
func (e *CallExpr) String() string { return e.FunctionName + "(...)" }

type FieldAccessExpr struct {
	Object Expr
	Field  string
}

func (*FieldAccessExpr) exprNode()        {}
func (e *FieldAccessExpr) String() string { return e.Object.String() + "." + e.Field }

// StructFieldInit is a single `.field = value` or positional entry in a
// struct initializer.
type StructFieldInit struct {
	Name  string // empty for positional entries
	Value Expr
}

type StructInitExpr struct {
	StructName string
	Fields     []StructFieldInit
}

func (*StructInitExpr) exprNode()        {}
func (e *StructInitExpr) String() string { return e.StructName + "{...}" }

type MethodCallExpr struct {
	Receiver Expr
	Method   string
	Args     []Expr
}

func (*MethodCallExpr) exprNode()        {}
func (e *MethodCallExpr) String() string { return e.Receiver.String() + "." + e.Method + "(...)" }

// ===== Statements =====

type VarDecl struct {
	Const       bool
	Name        string
	Type        TypeNode // nil if not declared (inferred)
	Initializer Expr     // nil only when Const is false
}

func (*VarDecl) stmtNode() {}
func (s *VarDecl) String() string {
	kw := "var"
	if s.Const {
		kw = "val"
	}
	return fmt.Sprintf("%s %s", kw, s.Name)
}

type ExprStmt struct{ Expr Expr }

func (*ExprStmt) stmtNode()        {}
func (s *ExprStmt) String() string { return s.Expr.String() }

type BlockStmt struct{ Statements []Stmt }

func (*BlockStmt) stmtNode()        {}
func (s *BlockStmt) String() string { return "{ ... }" }

type IfStmt struct {
	Cond Expr
	Then Stmt
	Else Stmt // nil if no else branch
}

func (*IfStmt) stmtNode()        {}
func (s *IfStmt) String() string { return "if (...) ..." }

type WhileStmt struct {
	Cond Expr
	Body Stmt
}

func (*WhileStmt) stmtNode()        {}
func (s *WhileStmt) String() string { return "while (...) ..." }

type ForStmt struct {
	Iterator   string
	Collection Expr
	Body       Stmt
}

func (*ForStmt) stmtNode()        {}
func (s *ForStmt) String() string { return fmt.Sprintf("for (%s <- ...) ...", s.Iterator) }

type ReturnStmt struct{ Value Expr } // nil for bare `return`

func (*ReturnStmt) stmtNode()        {}
func (s *ReturnStmt) String() string { return "return ..." }

// ===== Top-level =====

type Param struct {
	Name string
	Type TypeNode
}

type Function struct {
	Name       string
	Params     []Param
	ReturnType TypeNode // nil if undeclared
	Body       Stmt     // *BlockStmt or any single Stmt wrapped as expression statement
}

func (f *Function) String() string { return "def " + f.Name }

type StructField struct {
	Name string
	Type TypeNode
}

type StructDef struct {
	Name   string
	Fields []StructField
}

func (d *StructDef) String() string { return "struct " + d.Name }

type UnionDef struct {
	Name    string
	Members []StructField
}

func (d *UnionDef) String() string { return "union " + d.Name }

// EnumMember is one `Name` or `Name = expr` entry of an EnumDef.
// Supplemental to the base grammar (see SPEC_FULL.md).
type EnumMember struct {
	Name  string
	Value Expr // nil if no explicit value
}

type EnumDef struct {
	Name    string
	Members []EnumMember
}

func (d *EnumDef) String() string { return "enum " + d.Name }

// ReceiverKind selects how an impl block's methods take `self`.
type ReceiverKind int

const (
	ReceiverValue ReceiverKind = iota
	ReceiverPointer
	ReceiverReference
)

func (r ReceiverKind) String() string {
	switch r {
	case ReceiverPointer:
		return "*"
	case ReceiverReference:
		return "&"
	default:
		return ""
	}
}

type ImplBlock struct {
	Receiver   ReceiverKind
	StructName string
	Methods    []*Function
}

func (b *ImplBlock) String() string { return "impl " + b.Receiver.String() + b.StructName }

// Program is the root of the AST: every top-level form in source order,
// partitioned by kind for the code generator's fixed emission order
// (spec.md §4.4).
type Program struct {
	Functions  []*Function
	Globals    []*VarDecl
	Structs    []*StructDef
	Unions     []*UnionDef
	Enums      []*EnumDef
	ImplBlocks []*ImplBlock
}

func (p *Program) String() string { return "Program" }
