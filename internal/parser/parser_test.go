package parser

import (
	"strings"
	"testing"

	"github.com/peach-lang/peachc/internal/ast"
	"github.com/peach-lang/peachc/internal/lexer"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()

	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}

	prog, err := Parse(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	return prog
}

func TestParseSimpleFunction(t *testing.T) {
	prog := mustParse(t, `def main() -> int = { return 0 }`)

	if len(prog.Functions) != 1 {
		t.Fatalf("expected 1 function, got %d", len(prog.Functions))
	}

	fn := prog.Functions[0]
	if fn.Name != "main" {
		t.Fatalf("expected main, got %s", fn.Name)
	}

	if fn.ReturnType.String() != "int" {
		t.Fatalf("expected int return type, got %s", fn.ReturnType.String())
	}
}

func TestParseSingleExpressionBody(t *testing.T) {
	prog := mustParse(t, `def sq(x: int) -> int = x * x`)

	fn := prog.Functions[0]
	stmt, ok := fn.Body.(*ast.ExprStmt)
	if !ok {
		t.Fatalf("expected ExprStmt body, got %T", fn.Body)
	}

	bin, ok := stmt.Expr.(*ast.BinaryExpr)
	if !ok {
		t.Fatalf("expected BinaryExpr, got %T", stmt.Expr)
	}

	if bin.Op != "*" {
		t.Fatalf("expected '*' operator, got %s", bin.Op)
	}
}

func TestPrecedence(t *testing.T) {
	prog := mustParse(t, `def f() -> int = 1 + 2 * 3`)

	stmt := prog.Functions[0].Body.(*ast.ExprStmt)
	bin := stmt.Expr.(*ast.BinaryExpr)

	if bin.Op != "+" {
		t.Fatalf("expected top-level '+', got %s", bin.Op)
	}

	right, ok := bin.Right.(*ast.BinaryExpr)
	if !ok || right.Op != "*" {
		t.Fatalf("expected right side to be '*', got %#v", bin.Right)
	}
}

func TestValWithoutInitializerIsError(t *testing.T) {
	toks, err := lexer.Tokenize(`def f() -> int = { val x: int; return x }`)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}

	_, err = Parse(toks)
	if err == nil {
		t.Fatal("expected parse error for val without initializer")
	}
}

func TestStructDefFieldOrder(t *testing.T) {
	prog := mustParse(t, `struct P { x: int y: int z: int }`)

	s := prog.Structs[0]
	names := []string{s.Fields[0].Name, s.Fields[1].Name, s.Fields[2].Name}

	if strings.Join(names, ",") != "x,y,z" {
		t.Fatalf("expected field order x,y,z got %v", names)
	}
}

func TestImplBlockReceiverKinds(t *testing.T) {
	prog := mustParse(t, `
struct P { x: int }
impl P { def a(self: void) -> int = self.x }
impl *P { def b(self: void) -> int = self.x }
impl &P { def c(self: void) -> int = self.x }
`)

	if len(prog.ImplBlocks) != 3 {
		t.Fatalf("expected 3 impl blocks, got %d", len(prog.ImplBlocks))
	}

	if prog.ImplBlocks[0].Receiver != ast.ReceiverValue {
		t.Fatalf("expected value receiver")
	}
	if prog.ImplBlocks[1].Receiver != ast.ReceiverPointer {
		t.Fatalf("expected pointer receiver")
	}
	if prog.ImplBlocks[2].Receiver != ast.ReceiverReference {
		t.Fatalf("expected reference receiver")
	}
}

func TestMethodCallVsFieldAccess(t *testing.T) {
	prog := mustParse(t, `def f(p: P) -> int = { val a = p.x; val b = p.sum(); return a }`)

	body := prog.Functions[0].Body.(*ast.BlockStmt)

	decl1 := body.Statements[0].(*ast.VarDecl)
	if _, ok := decl1.Initializer.(*ast.FieldAccessExpr); !ok {
		t.Fatalf("expected field access, got %T", decl1.Initializer)
	}

	decl2 := body.Statements[1].(*ast.VarDecl)
	if _, ok := decl2.Initializer.(*ast.MethodCallExpr); !ok {
		t.Fatalf("expected method call, got %T", decl2.Initializer)
	}
}

func TestStructInitPositionalAndNamed(t *testing.T) {
	prog := mustParse(t, `def f() -> int = { val p = P{.x = 1, .y = 2}; val q = P{1, 2}; return 0 }`)

	body := prog.Functions[0].Body.(*ast.BlockStmt)

	named := body.Statements[0].(*ast.VarDecl).Initializer.(*ast.StructInitExpr)
	if named.Fields[0].Name != "x" || named.Fields[1].Name != "y" {
		t.Fatalf("expected named fields, got %#v", named.Fields)
	}

	positional := body.Statements[1].(*ast.VarDecl).Initializer.(*ast.StructInitExpr)
	if positional.Fields[0].Name != "" {
		t.Fatalf("expected positional field with empty name, got %q", positional.Fields[0].Name)
	}
}

func TestForRangeParses(t *testing.T) {
	prog := mustParse(t, `def f() -> int = { var s: int = 0; for (i <- range(1, 5)) s = s + i; return s }`)

	body := prog.Functions[0].Body.(*ast.BlockStmt)
	forStmt := body.Statements[1].(*ast.ForStmt)

	if forStmt.Iterator != "i" {
		t.Fatalf("expected iterator 'i', got %s", forStmt.Iterator)
	}

	call, ok := forStmt.Collection.(*ast.CallExpr)
	if !ok || call.FunctionName != "range" {
		t.Fatalf("expected range(...) call, got %#v", forStmt.Collection)
	}
}

func TestChainedAssignmentRejected(t *testing.T) {
	toks, err := lexer.Tokenize(`def f() -> int = { var a = 0; var b = 0; var c = 0; a = b = c; return a }`)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}

	_, err = Parse(toks)
	if err == nil {
		t.Fatal("expected parse error for chained assignment")
	}
}

func TestEnumDef(t *testing.T) {
	prog := mustParse(t, `enum Color { Red, Green = 5, Blue }`)

	e := prog.Enums[0]
	if len(e.Members) != 3 {
		t.Fatalf("expected 3 members, got %d", len(e.Members))
	}

	if e.Members[1].Name != "Green" || e.Members[1].Value == nil {
		t.Fatalf("expected Green with explicit value, got %#v", e.Members[1])
	}
}

func TestArrayTypeAndLiteral(t *testing.T) {
	prog := mustParse(t, `def f() -> int = { var a: [3]int = {1, 2, 3}; return a[0] }`)

	body := prog.Functions[0].Body.(*ast.BlockStmt)
	decl := body.Statements[0].(*ast.VarDecl)

	arrType, ok := decl.Type.(*ast.ArrayType)
	if !ok {
		t.Fatalf("expected ArrayType, got %T", decl.Type)
	}
	if arrType.Size == nil {
		t.Fatalf("expected explicit array size")
	}

	if _, ok := decl.Initializer.(*ast.ArrayLiteral); !ok {
		t.Fatalf("expected array literal initializer, got %T", decl.Initializer)
	}
}

func TestUnexpectedTopLevelTokenIsError(t *testing.T) {
	toks, err := lexer.Tokenize(`123`)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}

	_, err = Parse(toks)
	if err == nil {
		t.Fatal("expected parse error for unexpected top-level token")
	}
}
