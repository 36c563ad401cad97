package codegen

import (
	"fmt"
	"strings"

	"github.com/peach-lang/peachc/internal/ast"
	"github.com/peach-lang/peachc/internal/types"
)

// filterVoidParams drops any parameter declared with type `void` — the
// surface grammar's params rule (spec.md §6.1) allows `IDENT ":" type`
// with type = void, which method sources use idiomatically to spell
// "no extra parameters" by naming the slot `self` (spec.md §8 scenario
// 3: `def sum(self: void) -> int = ...`); a real `void`-typed C
// parameter isn't expressible, so it's elided exactly like a bare
// `void` parameter list.
func filterVoidParams(params []ast.Param) []ast.Param {
	out := make([]ast.Param, 0, len(params))
	for _, p := range params {
		if bt, ok := p.Type.(*ast.BasicType); ok && bt.Name == "void" {
			continue
		}
		out = append(out, p)
	}
	return out
}

// emitFunctions emits every regular top-level function in source order
// (spec.md §4.4 step 7).
func (g *Generator) emitFunctions(fns []*ast.Function) {
	for _, fn := range fns {
		params := filterVoidParams(fn.Params)
		sym := types.NewSymbolTable()
		bools := map[string]bool{}
		for _, p := range params {
			registerParam(g.reg, sym, bools, p)
		}

		returnType := fn.ReturnType
		var returnCType string
		if returnType != nil {
			returnCType = CType(g.reg, returnType)
		} else {
			returnCType = InferFunctionReturnType(g.reg, sym, fn.Body)
		}

		g.emitFunctionLike(sym, fn.Name, returnCType, params, nil, fn.Body)
		g.buf.WriteString("\n")
	}
}

// emitMethods lowers every impl block's methods to free functions
// before the regular functions, per spec.md §4.4 step 6.
func (g *Generator) emitMethods(blocks []*ast.ImplBlock) {
	for _, b := range blocks {
		pointerReceiver := b.Receiver == ast.ReceiverPointer || b.Receiver == ast.ReceiverReference

		for _, m := range b.Methods {
			params := filterVoidParams(m.Params)
			sym := types.NewSymbolTable()

			selfType := "struct " + b.StructName
			if pointerReceiver {
				selfType += "*"
			}
			sym.Set("self", selfType)

			for _, p := range params {
				registerParam(g.reg, sym, map[string]bool{}, p)
			}

			var returnCType string
			if m.ReturnType != nil {
				returnCType = CType(g.reg, m.ReturnType)
			} else {
				returnCType = InferFunctionReturnType(g.reg, sym, m.Body)
			}

			suffix := ""
			if pointerReceiver {
				suffix = "_p"
			}
			name := fmt.Sprintf("__%s_%s%s", b.StructName, m.Name, suffix)

			selfParam := ast.Param{Name: "self", Type: selfAsType(b.StructName, pointerReceiver)}

			g.emitFunctionLike(sym, name, returnCType, params, &selfParam, m.Body)
			g.buf.WriteString("\n")
		}
	}
}

// selfAsType builds a synthetic type node so the self parameter flows
// through the same declareParam path as every other parameter.
func selfAsType(structName string, pointerReceiver bool) ast.TypeNode {
	base := &ast.NamedType{Name: structName}
	if pointerReceiver {
		return &ast.PointerType{Elem: base}
	}
	return base
}

// emitFunctionLike implements spec.md §4.4.3's shared function/method
// emission: signature with array-to-pointer parameter decay, `void`
// for an empty parameter list, and the body-wrapping rules.
func (g *Generator) emitFunctionLike(sym *types.SymbolTable, name, returnCType string, params []ast.Param, self *ast.Param, body ast.Stmt) {
	paramTexts := make([]string, 0, len(params)+1)

	if self != nil {
		paramTexts = append(paramTexts, declareParam(g.reg, self.Name, self.Type))
	}

	for _, p := range params {
		paramTexts = append(paramTexts, declareParam(g.reg, p.Name, p.Type))
	}

	paramList := "void"
	if len(paramTexts) > 0 {
		paramList = strings.Join(paramTexts, ", ")
	}

	g.writeLine("%s %s(%s) {", returnCType, name, paramList)
	g.indent++

	switch b := body.(type) {
	case *ast.BlockStmt:
		for _, inner := range b.Statements {
			g.emitStmt(sym, inner)
		}
	case *ast.ExprStmt:
		if returnCType != "void" {
			g.writeLine("return %s;", g.exprText(sym, b.Expr))
		} else {
			g.writeLine("%s;", g.exprText(sym, b.Expr))
		}
	default:
		g.emitStmt(sym, body)
	}

	g.indent--
	g.writeLine("}")
}

// declareParam renders one "CType name" signature entry, decaying an
// array-typed parameter to a pointer per C's array-to-pointer parameter
// rule (spec.md §4.4.3).
func declareParam(reg *types.Registry, name string, t ast.TypeNode) string {
	if at, ok := t.(*ast.ArrayType); ok {
		return fmt.Sprintf("%s* %s", CType(reg, at.Elem), name)
	}
	return fmt.Sprintf("%s %s", CType(reg, t), name)
}
