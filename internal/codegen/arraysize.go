package codegen

import "github.com/peach-lang/peachc/internal/ast"

// LiteralArraySize extracts an integer literal array size from a parsed
// size expression. spec.md §3.7: "the code generator accepts integer
// literals for emission and substitutes [1] otherwise" — non-literal
// sizes are the caller's job to fall back on.
func LiteralArraySize(e ast.Expr) (int, bool) {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return int(n.Value), true
	case *ast.LongLiteral:
		return int(n.Value), true
	default:
		return 0, false
	}
}
