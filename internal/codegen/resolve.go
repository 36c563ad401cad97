package codegen

import (
	"strings"

	"github.com/peach-lang/peachc/internal/ast"
	"github.com/peach-lang/peachc/internal/types"
)

// resolveStructName implements the receiver-resolution algorithm from
// spec.md §4.4.1 "Method call": look the receiver up in the symbol
// table, then the type registry, recognizing declared variable types of
// the form "struct X" or "union X"; when the receiver is a field access
// base.f, resolve base's struct type and then f's field type the same
// way.
func resolveStructName(reg *types.Registry, sym *types.SymbolTable, e ast.Expr) (string, bool) {
	switch n := e.(type) {
	case *ast.Identifier:
		cType, ok := sym.Get(n.Name)
		if !ok {
			cType = reg.VariableType(n.Name)
		}

		return structNameFromCType(cType)
	case *ast.FieldAccessExpr:
		baseStruct, ok := resolveStructName(reg, sym, n.Object)
		if !ok {
			return "", false
		}

		fieldCType := reg.FieldType(baseStruct, n.Field)

		return structNameFromCType(fieldCType)
	case *ast.DereferenceExpr:
		return resolveStructName(reg, sym, n.Operand)
	default:
		return "", false
	}
}

func structNameFromCType(cType string) (string, bool) {
	cType = strings.TrimSuffix(cType, "*")

	if name, ok := strings.CutPrefix(cType, "struct "); ok {
		return name, true
	}

	if name, ok := strings.CutPrefix(cType, "union "); ok {
		return name, true
	}

	return "", false
}
