package codegen

import (
	"fmt"

	"github.com/peach-lang/peachc/internal/ast"
	"github.com/peach-lang/peachc/internal/types"
)

// emitVarDecl implements spec.md §4.4.2's VarDecl rule, including the
// array-size and const-suppression special cases, and re-registers the
// variable in both the current SymbolTable and the shared TypeRegistry
// after emission as the spec requires.
func (g *Generator) emitVarDecl(sym *types.SymbolTable, d *ast.VarDecl) {
	if at, ok := d.Type.(*ast.ArrayType); ok {
		elemType := CType(g.reg, at.Elem)
		size := arrayDeclSize(at, d.Initializer)

		constPrefix := ""
		if d.Const {
			constPrefix = "const "
		}

		if d.Initializer != nil {
			g.writeLine("%s%s %s[%d] = %s;", constPrefix, elemType, d.Name, size, g.exprText(sym, d.Initializer))
		} else {
			g.writeLine("%s%s %s[%d];", constPrefix, elemType, d.Name, size)
		}

		sym.Set(d.Name, elemType)
		sym.SetArraySize(d.Name, size)
		g.reg.SetVariableType(d.Name, elemType)
		g.reg.SetArraySize(d.Name, size)
		return
	}

	if d.Type == nil {
		if lit, ok := d.Initializer.(*ast.ArrayLiteral); ok {
			elemType := "int"
			if len(lit.Elements) > 0 {
				elemType = InferType(g.reg, sym, lit.Elements[0])
			}
			size := len(lit.Elements)

			g.writeLine("%s %s[%d] = %s;", elemType, d.Name, size, g.exprText(sym, d.Initializer))

			sym.Set(d.Name, elemType)
			sym.SetArraySize(d.Name, size)
			g.reg.SetVariableType(d.Name, elemType)
			g.reg.SetArraySize(d.Name, size)
			return
		}
	}

	var cType string
	if d.Type != nil {
		cType = CType(g.reg, d.Type)
	} else {
		cType = InferType(g.reg, sym, d.Initializer)
	}

	constPrefix := ""
	if d.Const {
		constPrefix = "const "
	}

	if d.Initializer != nil {
		g.writeLine("%s%s %s = %s;", constPrefix, cType, d.Name, g.exprText(sym, d.Initializer))
	} else {
		g.writeLine("%s%s %s;", constPrefix, cType, d.Name)
	}

	sym.Set(d.Name, cType)
	g.reg.SetVariableType(d.Name, cType)
}

func arrayDeclSize(at *ast.ArrayType, init ast.Expr) int {
	if at.Size != nil {
		if n, ok := LiteralArraySize(at.Size); ok {
			return n
		}
		return 1
	}

	if lit, ok := init.(*ast.ArrayLiteral); ok {
		return len(lit.Elements)
	}

	return 1
}

// emitStmt dispatches on statement kind per spec.md §4.4.2.
func (g *Generator) emitStmt(sym *types.SymbolTable, s ast.Stmt) {
	switch st := s.(type) {
	case *ast.VarDecl:
		g.emitVarDecl(sym, st)
	case *ast.ExprStmt:
		g.writeLine("%s;", g.exprText(sym, st.Expr))
	case *ast.BlockStmt:
		g.emitBlock(sym, st)
	case *ast.IfStmt:
		g.emitIf(sym, st)
	case *ast.WhileStmt:
		g.writeLine("while (%s) {", g.exprText(sym, st.Cond))
		g.indent++
		g.emitBodyStmt(sym, st.Body)
		g.indent--
		g.writeLine("}")
	case *ast.ForStmt:
		g.emitFor(sym, st)
	case *ast.ReturnStmt:
		if st.Value == nil {
			g.writeLine("return;")
		} else {
			g.writeLine("return %s;", g.exprText(sym, st.Value))
		}
	}
}

func (g *Generator) emitBlock(sym *types.SymbolTable, b *ast.BlockStmt) {
	g.writeLine("{")
	g.indent++
	for _, inner := range b.Statements {
		g.emitStmt(sym, inner)
	}
	g.indent--
	g.writeLine("}")
}

// emitBodyStmt emits a loop or branch body between the braces its caller
// writes, so a bare non-block body still ends up braced (spec.md
// §4.4.2): a block's statements are emitted without the block's own
// braces, any other statement as is.
func (g *Generator) emitBodyStmt(sym *types.SymbolTable, s ast.Stmt) {
	if b, ok := s.(*ast.BlockStmt); ok {
		for _, inner := range b.Statements {
			g.emitStmt(sym, inner)
		}
		return
	}
	g.emitStmt(sym, s)
}

func (g *Generator) emitIf(sym *types.SymbolTable, st *ast.IfStmt) {
	g.writeLine("if (%s) {", g.exprText(sym, st.Cond))
	g.indent++
	g.emitBodyStmt(sym, st.Then)
	g.indent--

	if st.Else == nil {
		g.writeLine("}")
		return
	}

	if elseIf, ok := st.Else.(*ast.IfStmt); ok {
		g.writeLine("} else if (%s) {", g.exprText(sym, elseIf.Cond))
		g.indent++
		g.emitBodyStmt(sym, elseIf.Then)
		g.indent--
		if elseIf.Else != nil {
			g.emitIfElseTail(sym, elseIf.Else)
		} else {
			g.writeLine("}")
		}
		return
	}

	g.writeLine("} else {")
	g.indent++
	g.emitBodyStmt(sym, st.Else)
	g.indent--
	g.writeLine("}")
}

func (g *Generator) emitIfElseTail(sym *types.SymbolTable, s ast.Stmt) {
	if elseIf, ok := s.(*ast.IfStmt); ok {
		g.writeLine("} else if (%s) {", g.exprText(sym, elseIf.Cond))
		g.indent++
		g.emitBodyStmt(sym, elseIf.Then)
		g.indent--
		if elseIf.Else != nil {
			g.emitIfElseTail(sym, elseIf.Else)
			return
		}
		g.writeLine("}")
		return
	}

	g.writeLine("} else {")
	g.indent++
	g.emitBodyStmt(sym, s)
	g.indent--
	g.writeLine("}")
}

// emitFor implements spec.md §4.4.2's two for-loop shapes: range-based
// (collection is a `range(...)` call) and collection iteration
// (collection is an array-typed identifier).
func (g *Generator) emitFor(sym *types.SymbolTable, st *ast.ForStmt) {
	if call, ok := st.Collection.(*ast.CallExpr); ok && call.FunctionName == "range" {
		g.emitRangeFor(sym, st, call.Args)
		return
	}

	g.emitCollectionFor(sym, st)
}

func (g *Generator) emitRangeFor(sym *types.SymbolTable, st *ast.ForStmt, args []ast.Expr) {
	texts := make([]string, len(args))
	for i, a := range args {
		texts[i] = g.exprText(sym, a)
	}

	var header string
	switch len(texts) {
	case 1:
		header = fmt.Sprintf("for (int %s = 0; %s < %s; %s++)", st.Iterator, st.Iterator, texts[0], st.Iterator)
	case 2:
		header = fmt.Sprintf("for (int %s = %s; %s < %s; %s++)", st.Iterator, texts[0], st.Iterator, texts[1], st.Iterator)
	case 3:
		header = fmt.Sprintf("for (int %s = %s; %s < %s; %s += %s)", st.Iterator, texts[0], st.Iterator, texts[1], st.Iterator, texts[2])
	default:
		header = fmt.Sprintf("for (int %s = 0; %s < 0; %s++)", st.Iterator, st.Iterator, st.Iterator)
	}

	sym.Set(st.Iterator, "int")

	g.writeLine("%s {", header)
	g.indent++
	g.emitBodyStmt(sym, st.Body)
	g.indent--
	g.writeLine("}")
}

func (g *Generator) emitCollectionFor(sym *types.SymbolTable, st *ast.ForStmt) {
	ident, ok := st.Collection.(*ast.Identifier)
	if !ok {
		g.writeLine("/* ERROR: for-loop collection is not an array identifier */")
		return
	}

	collectionCType, _ := lookupVarType(g.reg, sym, ident.Name)

	bound := ""
	if n, ok := lookupArraySize(g.reg, sym, ident.Name); ok {
		bound = fmt.Sprintf("%d", n)
	} else if isPointerCType(collectionCType) {
		g.writeLine("/* ERROR: cannot determine element count of pointer parameter %s */", ident.Name)
		bound = "1"
	} else {
		bound = fmt.Sprintf("sizeof(%s)/sizeof(%s[0])", ident.Name, ident.Name)
	}

	g.writeLine("for (int _i = 0; _i < %s; _i++) {", bound)
	g.indent++
	sym.Set(st.Iterator, "int")
	g.writeLine("int %s = %s[_i];", st.Iterator, ident.Name)
	g.emitBodyStmt(sym, st.Body)
	g.indent--
	g.writeLine("}")
}

func lookupVarType(reg *types.Registry, sym *types.SymbolTable, name string) (string, bool) {
	if t, ok := sym.Get(name); ok {
		return t, true
	}
	if t := reg.VariableType(name); t != "" {
		return t, true
	}
	return "", false
}

func lookupArraySize(reg *types.Registry, sym *types.SymbolTable, name string) (int, bool) {
	if n, ok := sym.ArraySize(name); ok {
		return n, true
	}
	return reg.ArraySize(name)
}

func isPointerCType(cType string) bool {
	return len(cType) > 0 && cType[len(cType)-1] == '*'
}
