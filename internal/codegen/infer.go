package codegen

import (
	"strings"

	"github.com/peach-lang/peachc/internal/ast"
	"github.com/peach-lang/peachc/internal/types"
)

var numericRank = map[string]int{
	"int":    0,
	"long":   1,
	"float":  2,
	"double": 3,
}

// InferType implements the local type inference rules of spec.md
// §4.4.4, applied to expression nodes to produce a C type string.
func InferType(reg *types.Registry, sym *types.SymbolTable, e ast.Expr) string {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return "int"
	case *ast.LongLiteral:
		return "long"
	case *ast.FloatLiteral:
		return "float"
	case *ast.DoubleLiteral:
		return "double"
	case *ast.StringLiteral:
		return "const char*"
	case *ast.BoolLiteral:
		return "int"
	case *ast.ArrayLiteral:
		if len(n.Elements) == 0 {
			return "int"
		}
		return InferType(reg, sym, n.Elements[0])
	case *ast.DereferenceExpr:
		t := InferType(reg, sym, n.Operand)
		if strings.HasSuffix(t, "*") {
			return strings.TrimSuffix(t, "*")
		}
		return "int"
	case *ast.AddressOfExpr:
		return InferType(reg, sym, n.Operand) + "*"
	case *ast.BinaryExpr:
		return inferBinary(reg, sym, n)
	case *ast.UnaryExpr:
		if n.Op == "!" {
			return "int"
		}
		return InferType(reg, sym, n.Operand)
	case *ast.Identifier:
		if t, ok := sym.Get(n.Name); ok {
			return t
		}
		if t := reg.VariableType(n.Name); t != "" {
			return t
		}
		return "int"
	case *ast.IndexExpr:
		return InferType(reg, sym, n.Array)
	case *ast.MethodCallExpr:
		if structName, ok := resolveStructName(reg, sym, n.Receiver); ok {
			if rt := reg.MethodReturnType(structName, n.Method); rt != "" {
				return rt
			}
		}
		return "int"
	case *ast.StructInitExpr:
		if e := reg.Lookup(n.StructName); e != nil && e.Kind == types.KindUnion {
			return "union " + n.StructName
		}
		return "struct " + n.StructName
	case *ast.FieldAccessExpr:
		if structName, ok := resolveStructName(reg, sym, n.Object); ok {
			if ft := reg.FieldType(structName, n.Field); ft != "" {
				return ft
			}
		}
		return "int"
	case *ast.CallExpr:
		return "int" // no function return-type table is maintained (spec.md §4.4.4)
	default:
		return "int"
	}
}

func inferBinary(reg *types.Registry, sym *types.SymbolTable, n *ast.BinaryExpr) string {
	if n.Op == "=" {
		return InferType(reg, sym, n.Right)
	}

	left := InferType(reg, sym, n.Left)
	right := InferType(reg, sym, n.Right)

	best := "int"
	bestRank := -1

	for _, t := range []string{left, right} {
		if rank, ok := numericRank[t]; ok && rank > bestRank {
			bestRank = rank
			best = t
		}
	}

	return best
}

// InferFunctionReturnType implements spec.md §4.4.4's function-level
// return-type inference: single-expression bodies use the expression's
// inferred type; block bodies scan statements for the first `return e`
// and use its inferred type, recursing into nested blocks and both
// branches of `if`.
func InferFunctionReturnType(reg *types.Registry, sym *types.SymbolTable, body ast.Stmt) string {
	switch b := body.(type) {
	case *ast.ExprStmt:
		return InferType(reg, sym, b.Expr)
	case *ast.BlockStmt:
		if t, ok := firstReturnType(reg, sym, b.Statements); ok {
			return t
		}
		return "void"
	default:
		return "void"
	}
}

func firstReturnType(reg *types.Registry, sym *types.SymbolTable, stmts []ast.Stmt) (string, bool) {
	for _, s := range stmts {
		switch st := s.(type) {
		case *ast.ReturnStmt:
			if st.Value == nil {
				return "void", true
			}
			return InferType(reg, sym, st.Value), true
		case *ast.BlockStmt:
			if t, ok := firstReturnType(reg, sym, st.Statements); ok {
				return t, true
			}
		case *ast.IfStmt:
			if t, ok := firstReturnType(reg, sym, []ast.Stmt{st.Then}); ok {
				return t, true
			}
			if st.Else != nil {
				if t, ok := firstReturnType(reg, sym, []ast.Stmt{st.Else}); ok {
					return t, true
				}
			}
		case *ast.WhileStmt:
			if t, ok := firstReturnType(reg, sym, []ast.Stmt{st.Body}); ok {
				return t, true
			}
		case *ast.ForStmt:
			if t, ok := firstReturnType(reg, sym, []ast.Stmt{st.Body}); ok {
				return t, true
			}
		}
	}

	return "", false
}
