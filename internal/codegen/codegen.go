// Package codegen lowers a parsed Program to a single C11 translation
// unit. The lowering is two-pass (spec.md §3.8): BuildRegistry walks the
// whole AST once to populate the type registry and usage tracker, then
// Generate walks it again to emit text, in the fixed order spec.md §4.4
// specifies.
package codegen

import (
	"fmt"
	"strings"

	"github.com/peach-lang/peachc/internal/ast"
	"github.com/peach-lang/peachc/internal/types"
)

// Generator owns the shared output buffer, indent level, type registry,
// and usage tracker for the lifetime of one Generate call. Sub-emitters
// (expr.go, stmt.go, function.go, builtin.go) are methods on Generator
// and hold no state of their own, matching the resource-ownership model
// of spec.md §5.
type Generator struct {
	buf    strings.Builder
	indent int
	reg    *types.Registry
	usage  *types.Usage
}

// Generate is the code generator's single entry point.
func Generate(prog *ast.Program) (string, error) {
	reg, usage := BuildRegistry(prog)
	g := &Generator{reg: reg, usage: usage}

	g.emitPrelude()
	g.emitStructs(prog.Structs)
	g.emitUnions(prog.Unions)
	g.emitEnums(prog.Enums)
	g.emitGlobals(prog.Globals)
	g.emitMethods(prog.ImplBlocks)
	g.emitFunctions(prog.Functions)

	return g.buf.String(), nil
}

func (g *Generator) writeLine(format string, args ...interface{}) {
	g.buf.WriteString(strings.Repeat("    ", g.indent))
	fmt.Fprintf(&g.buf, format, args...)
	g.buf.WriteString("\n")
}

func (g *Generator) emitStructs(defs []*ast.StructDef) {
	for _, s := range defs {
		g.writeLine("struct %s {", s.Name)
		g.indent++
		for _, f := range s.Fields {
			g.writeLine("%s;", declareVar(g.reg, f.Name, f.Type))
		}
		g.indent--
		g.writeLine("};")
		g.buf.WriteString("\n")
	}
}

func (g *Generator) emitUnions(defs []*ast.UnionDef) {
	for _, u := range defs {
		g.writeLine("union %s {", u.Name)
		g.indent++
		for _, m := range u.Members {
			g.writeLine("%s;", declareVar(g.reg, m.Name, m.Type))
		}
		g.indent--
		g.writeLine("};")
		g.buf.WriteString("\n")
	}
}

func (g *Generator) emitEnums(defs []*ast.EnumDef) {
	sym := types.NewSymbolTable()

	for _, e := range defs {
		g.writeLine("enum %s {", e.Name)
		g.indent++
		for _, m := range e.Members {
			if m.Value != nil {
				g.writeLine("%s = %s,", m.Name, g.exprText(sym, m.Value))
			} else {
				g.writeLine("%s,", m.Name)
			}
		}
		g.indent--
		g.writeLine("};")
		g.buf.WriteString("\n")
	}
}

func (g *Generator) emitGlobals(globals []*ast.VarDecl) {
	if len(globals) == 0 {
		return
	}

	sym := types.NewSymbolTable()
	for _, decl := range globals {
		g.emitVarDecl(sym, decl)
	}
	g.buf.WriteString("\n")
}

// declareVar renders "CType name" or "CType name[N]" with the array
// size suffix placed at the variable position, never the type position
// (spec.md §3.2) — used for struct fields and union members, which
// (unlike function parameters) keep their fixed array form rather than
// decaying to a pointer.
func declareVar(reg *types.Registry, name string, t ast.TypeNode) string {
	if at, ok := t.(*ast.ArrayType); ok {
		size := 1
		if at.Size != nil {
			if n, ok := LiteralArraySize(at.Size); ok {
				size = n
			}
		}
		return fmt.Sprintf("%s %s[%d]", CType(reg, at.Elem), name, size)
	}
	return fmt.Sprintf("%s %s", CType(reg, t), name)
}
