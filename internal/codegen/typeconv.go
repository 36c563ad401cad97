package codegen

import (
	"github.com/peach-lang/peachc/internal/ast"
	"github.com/peach-lang/peachc/internal/types"
)

// CType converts an AST type node to its C11 spelling (spec.md §3.2):
// bool -> int, string -> char*, pointers append '*', and named types
// resolve to "struct Name" / "union Name" / "enum Name" via the
// registry's recorded Kind. The pre-pass registers every StructDef/
// UnionDef/EnumDef before any type is converted, so declaration order
// does not matter; a name the program never declares is not registered
// and lowers to "struct Name".
//
// Array types resolve to their element's C type; the "[N]" suffix is
// applied at the variable position by the statement/function emitters,
// never at the type position (spec.md §3.2).
func CType(reg *types.Registry, t ast.TypeNode) string {
	switch tt := t.(type) {
	case nil:
		return "void"
	case *ast.BasicType:
		return basicCType(tt.Name)
	case *ast.PointerType:
		return CType(reg, tt.Elem) + "*"
	case *ast.ArrayType:
		return CType(reg, tt.Elem)
	case *ast.NamedType:
		return namedCType(reg, tt.Name)
	default:
		return "int"
	}
}

func basicCType(name string) string {
	switch name {
	case "bool":
		return "int"
	case "string":
		return "char*"
	case "void":
		return "void"
	default:
		return name // int, long, float, double
	}
}

func namedCType(reg *types.Registry, name string) string {
	if e := reg.Lookup(name); e != nil {
		switch e.Kind {
		case types.KindUnion:
			return "union " + name
		case types.KindEnum:
			return "enum " + name
		}
	}

	return "struct " + name
}
