package codegen

import (
	"github.com/peach-lang/peachc/internal/ast"
	"github.com/peach-lang/peachc/internal/types"
)

// BuildRegistry runs the pre-pass spec.md §3.8 and §4.3 describe: walk
// the whole Program once to populate the TypeRegistry (struct/union/enum
// layouts, method signatures, a flat variable type map) and the Usage
// tracker the builtin prelude emitter consults (spec.md §4.5).
func BuildRegistry(prog *ast.Program) (*types.Registry, *types.Usage) {
	reg := types.New()
	usage := types.NewUsage()

	for _, s := range prog.Structs {
		reg.RegisterType(s.Name, types.KindStruct)
	}
	for _, u := range prog.Unions {
		reg.RegisterType(u.Name, types.KindUnion)
	}
	for _, e := range prog.Enums {
		reg.RegisterType(e.Name, types.KindEnum)
	}

	for _, s := range prog.Structs {
		for _, f := range s.Fields {
			reg.AddField(s.Name, f.Name, CType(reg, f.Type))
		}
	}
	for _, u := range prog.Unions {
		for _, m := range u.Members {
			reg.AddField(u.Name, m.Name, CType(reg, m.Type))
		}
	}

	for _, b := range prog.ImplBlocks {
		registerImplBlock(reg, usage, b)
	}

	globalSym := types.NewSymbolTable()
	globalBools := map[string]bool{}
	for _, g := range prog.Globals {
		registerVarDecl(reg, globalSym, globalBools, g)
		if g.Initializer != nil {
			walkExprForUsage(reg, globalSym, globalBools, usage, g.Initializer)
		}
	}

	for _, fn := range prog.Functions {
		sym := types.NewSymbolTable()
		bools := map[string]bool{}
		for _, p := range fn.Params {
			registerParam(reg, sym, bools, p)
		}
		walkStmtForUsage(reg, sym, bools, usage, fn.Body)
	}

	return reg, usage
}

func registerImplBlock(reg *types.Registry, usage *types.Usage, b *ast.ImplBlock) {
	pointerReceiver := b.Receiver == ast.ReceiverPointer || b.Receiver == ast.ReceiverReference

	for _, m := range b.Methods {
		sym := types.NewSymbolTable()
		bools := map[string]bool{}

		selfType := "struct " + b.StructName
		if pointerReceiver {
			selfType += "*"
		}
		sym.Set("self", selfType)

		params := filterVoidParams(m.Params)

		var paramTypes []string
		for _, p := range params {
			paramTypes = append(paramTypes, registerParam(reg, sym, bools, p))
		}

		returnType := "void"
		if m.ReturnType != nil {
			returnType = CType(reg, m.ReturnType)
		} else {
			returnType = InferFunctionReturnType(reg, sym, m.Body)
		}

		reg.AddMethod(b.StructName, types.Method{
			Name:            m.Name,
			ReturnType:      returnType,
			ParamTypes:      paramTypes,
			PointerReceiver: pointerReceiver,
		})

		walkStmtForUsage(reg, sym, bools, usage, m.Body)
	}
}

// registerParam records one function/method parameter in sym (and bools,
// when the declared type is bool), returning its decayed C type. Array
// parameters decay to a pointer (spec.md §4.4.3) but keep their declared
// element count in the array-size side-channel so a later collection-style
// for-loop over the parameter still knows its bound instead of falling
// back to sizeof.
func registerParam(reg *types.Registry, sym *types.SymbolTable, bools map[string]bool, p ast.Param) string {
	if at, ok := p.Type.(*ast.ArrayType); ok {
		elemType := CType(reg, at.Elem)
		cType := elemType + "*"
		sym.Set(p.Name, cType)
		if n, ok := LiteralArraySize(at.Size); ok {
			sym.SetArraySize(p.Name, n)
		}
		return cType
	}

	cType := CType(reg, p.Type)
	sym.Set(p.Name, cType)
	if isBoolType(p.Type) {
		bools[p.Name] = true
	}
	return cType
}

func isBoolType(t ast.TypeNode) bool {
	bt, ok := t.(*ast.BasicType)
	return ok && bt.Name == "bool"
}

func registerVarDecl(reg *types.Registry, sym *types.SymbolTable, bools map[string]bool, d *ast.VarDecl) {
	var cType string

	switch {
	case d.Type != nil:
		cType = CType(reg, d.Type)
		if isBoolType(d.Type) {
			bools[d.Name] = true
		}
	case d.Initializer != nil:
		cType = InferType(reg, sym, d.Initializer)
		if _, ok := d.Initializer.(*ast.BoolLiteral); ok {
			bools[d.Name] = true
		}
	default:
		cType = "int"
	}

	sym.Set(d.Name, cType)
	reg.SetVariableType(d.Name, cType)

	if size, ok := declaredArraySize(d); ok {
		sym.SetArraySize(d.Name, size)
		reg.SetArraySize(d.Name, size)
	}
}

// declaredArraySize implements the element-count side-channel spec.md
// §4.4.2 relies on: explicit `[N]T` sizes use the literal, an absent
// size falls back to the initializer's literal length, and a
// non-literal size falls back to 1 per the §3.7 invariant.
func declaredArraySize(d *ast.VarDecl) (int, bool) {
	if at, ok := d.Type.(*ast.ArrayType); ok {
		if at.Size != nil {
			if n, ok := LiteralArraySize(at.Size); ok {
				return n, true
			}
			return 1, true
		}
		if lit, ok := d.Initializer.(*ast.ArrayLiteral); ok {
			return len(lit.Elements), true
		}
		return 1, true
	}

	if d.Type == nil {
		if lit, ok := d.Initializer.(*ast.ArrayLiteral); ok {
			return len(lit.Elements), true
		}
	}

	return 0, false
}

func walkStmtForUsage(reg *types.Registry, sym *types.SymbolTable, bools map[string]bool, usage *types.Usage, s ast.Stmt) {
	switch st := s.(type) {
	case *ast.VarDecl:
		registerVarDecl(reg, sym, bools, st)
		if st.Initializer != nil {
			walkExprForUsage(reg, sym, bools, usage, st.Initializer)
		}
	case *ast.ExprStmt:
		walkExprForUsage(reg, sym, bools, usage, st.Expr)
	case *ast.BlockStmt:
		for _, inner := range st.Statements {
			walkStmtForUsage(reg, sym, bools, usage, inner)
		}
	case *ast.IfStmt:
		walkExprForUsage(reg, sym, bools, usage, st.Cond)
		walkStmtForUsage(reg, sym, bools, usage, st.Then)
		if st.Else != nil {
			walkStmtForUsage(reg, sym, bools, usage, st.Else)
		}
	case *ast.WhileStmt:
		walkExprForUsage(reg, sym, bools, usage, st.Cond)
		walkStmtForUsage(reg, sym, bools, usage, st.Body)
	case *ast.ForStmt:
		walkExprForUsage(reg, sym, bools, usage, st.Collection)
		sym.Set(st.Iterator, "int")
		walkStmtForUsage(reg, sym, bools, usage, st.Body)
	case *ast.ReturnStmt:
		if st.Value != nil {
			walkExprForUsage(reg, sym, bools, usage, st.Value)
		}
	}
}

func walkExprForUsage(reg *types.Registry, sym *types.SymbolTable, bools map[string]bool, usage *types.Usage, e ast.Expr) {
	switch n := e.(type) {
	case *ast.CallExpr:
		switch n.FunctionName {
		case "print":
			usage.MarkBuiltin("print")
			for _, a := range n.Args {
				if t, ok := printDispatchType(reg, sym, bools, a); ok {
					usage.MarkPrimitive(t)
				}
				walkExprForUsage(reg, sym, bools, usage, a)
			}
		case "range":
			usage.MarkBuiltin("range")
			for _, a := range n.Args {
				walkExprForUsage(reg, sym, bools, usage, a)
			}
		case "len":
			usage.MarkBuiltin("len")
			for _, a := range n.Args {
				walkExprForUsage(reg, sym, bools, usage, a)
			}
		default:
			for _, a := range n.Args {
				walkExprForUsage(reg, sym, bools, usage, a)
			}
		}
	case *ast.MethodCallExpr:
		walkExprForUsage(reg, sym, bools, usage, n.Receiver)
		for _, a := range n.Args {
			walkExprForUsage(reg, sym, bools, usage, a)
		}
	case *ast.BinaryExpr:
		walkExprForUsage(reg, sym, bools, usage, n.Left)
		walkExprForUsage(reg, sym, bools, usage, n.Right)
	case *ast.UnaryExpr:
		walkExprForUsage(reg, sym, bools, usage, n.Operand)
	case *ast.AddressOfExpr:
		walkExprForUsage(reg, sym, bools, usage, n.Operand)
	case *ast.DereferenceExpr:
		walkExprForUsage(reg, sym, bools, usage, n.Operand)
	case *ast.IndexExpr:
		walkExprForUsage(reg, sym, bools, usage, n.Array)
		walkExprForUsage(reg, sym, bools, usage, n.Index)
	case *ast.ArrayLiteral:
		for _, el := range n.Elements {
			walkExprForUsage(reg, sym, bools, usage, el)
		}
	case *ast.FieldAccessExpr:
		walkExprForUsage(reg, sym, bools, usage, n.Object)
	case *ast.StructInitExpr:
		for _, f := range n.Fields {
			walkExprForUsage(reg, sym, bools, usage, f.Value)
		}
	}
}

// printDispatchType recovers the L-level primitive name of a print
// argument for prelude-printer selection. This is distinct from
// InferType's C-type strings, which deliberately collapse bool to C's
// int (spec.md §3.2) — the prelude still needs to know a value was
// logically boolean to pick print_bool over print_int.
func printDispatchType(reg *types.Registry, sym *types.SymbolTable, bools map[string]bool, e ast.Expr) (string, bool) {
	switch n := e.(type) {
	case *ast.BoolLiteral:
		return "bool", true
	case *ast.UnaryExpr:
		if n.Op == "!" {
			return "bool", true
		}
	case *ast.BinaryExpr:
		switch n.Op {
		case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
			return "bool", true
		}
	case *ast.Identifier:
		if bools[n.Name] {
			return "bool", true
		}
	}

	return cTypeToPrimitive(InferType(reg, sym, e))
}

func cTypeToPrimitive(cType string) (string, bool) {
	switch cType {
	case "int":
		return "int", true
	case "long":
		return "long", true
	case "float":
		return "float", true
	case "double":
		return "double", true
	case "const char*", "char*":
		return "string", true
	default:
		return "", false
	}
}
