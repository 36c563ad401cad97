package codegen

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/peach-lang/peachc/internal/ast"
	"github.com/peach-lang/peachc/internal/types"
)

// exprText renders one expression to its C11 spelling (spec.md §4.4.1).
// Sub-expressions recurse into the same function; the buffer-writing
// statement emitters splice the result inline rather than writing
// fragments directly, since an expression is never itself a full line.
func (g *Generator) exprText(sym *types.SymbolTable, e ast.Expr) string {
	switch n := e.(type) {
	case *ast.IntLiteral:
		return strconv.FormatInt(n.Value, 10)
	case *ast.LongLiteral:
		return strconv.FormatInt(n.Value, 10) + "L"
	case *ast.FloatLiteral:
		return formatFloat(n.Value) + "f"
	case *ast.DoubleLiteral:
		return formatFloat(n.Value)
	case *ast.StringLiteral:
		return `"` + escapeString(n.Value) + `"`
	case *ast.BoolLiteral:
		if n.Value {
			return "1"
		}
		return "0"
	case *ast.Identifier:
		return n.Name
	case *ast.ArrayLiteral:
		parts := make([]string, len(n.Elements))
		for i, el := range n.Elements {
			parts[i] = g.exprText(sym, el)
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	case *ast.IndexExpr:
		return fmt.Sprintf("%s[%s]", g.exprText(sym, n.Array), g.exprText(sym, n.Index))
	case *ast.BinaryExpr:
		return fmt.Sprintf("(%s %s %s)", g.exprText(sym, n.Left), n.Op, g.exprText(sym, n.Right))
	case *ast.UnaryExpr:
		return fmt.Sprintf("%s(%s)", n.Op, g.exprText(sym, n.Operand))
	case *ast.AddressOfExpr:
		return fmt.Sprintf("&(%s)", g.exprText(sym, n.Operand))
	case *ast.DereferenceExpr:
		return fmt.Sprintf("*(%s)", g.exprText(sym, n.Operand))
	case *ast.FieldAccessExpr:
		return fmt.Sprintf("%s.%s", g.exprText(sym, n.Object), n.Field)
	case *ast.StructInitExpr:
		return g.structInitText(sym, n)
	case *ast.CallExpr:
		return g.callText(sym, n)
	case *ast.MethodCallExpr:
		return g.methodCallText(sym, n)
	default:
		return "/* ERROR: unknown expression */"
	}
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

func escapeString(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '\n':
			b.WriteString(`\n`)
		case '\t':
			b.WriteString(`\t`)
		case '\r':
			b.WriteString(`\r`)
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func (g *Generator) structInitText(sym *types.SymbolTable, n *ast.StructInitExpr) string {
	parts := make([]string, len(n.Fields))
	for i, f := range n.Fields {
		if f.Name != "" {
			parts[i] = fmt.Sprintf(".%s = %s", f.Name, g.exprText(sym, f.Value))
		} else {
			parts[i] = g.exprText(sym, f.Value)
		}
	}

	kind := "struct"
	if e := g.reg.Lookup(n.StructName); e != nil && e.Kind == types.KindUnion {
		kind = "union"
	}

	return fmt.Sprintf("(%s %s){ %s }", kind, n.StructName, strings.Join(parts, ", "))
}

// callText implements the print/range/other-call dispatch of spec.md
// §4.4.1. print and range are reserved builtin names; anything else
// prints as an ordinary C function call.
func (g *Generator) callText(sym *types.SymbolTable, n *ast.CallExpr) string {
	switch n.FunctionName {
	case "print":
		return g.printCallText(sym, n.Args)
	case "range":
		return g.rangeCallText(sym, n.Args)
	default:
		args := make([]string, len(n.Args))
		for i, a := range n.Args {
			args[i] = g.exprText(sym, a)
		}
		return fmt.Sprintf("%s(%s)", n.FunctionName, strings.Join(args, ", "))
	}
}

func (g *Generator) printCallText(sym *types.SymbolTable, args []ast.Expr) string {
	if len(args) == 0 {
		return `printf("\n")`
	}

	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = fmt.Sprintf("%s(%s)", printDispatchFunc(a), g.exprText(sym, a))
	}

	return strings.Join(parts, "; ")
}

// printDispatchFunc routes syntactically-boolean arguments straight to
// print_bool: C's _Generic can't distinguish bool from int once both
// have lowered to the same C int (spec.md §3.2), so the polymorphic
// print(x) macro would otherwise always misdispatch them to print_int.
func printDispatchFunc(e ast.Expr) string {
	switch n := e.(type) {
	case *ast.BoolLiteral:
		return "print_bool"
	case *ast.UnaryExpr:
		if n.Op == "!" {
			return "print_bool"
		}
	case *ast.BinaryExpr:
		switch n.Op {
		case "==", "!=", "<", ">", "<=", ">=", "&&", "||":
			return "print_bool"
		}
	}
	return "print"
}

func (g *Generator) rangeCallText(sym *types.SymbolTable, args []ast.Expr) string {
	parts := make([]string, len(args))
	for i, a := range args {
		parts[i] = g.exprText(sym, a)
	}

	ctor := fmt.Sprintf("range%d", len(args))

	return fmt.Sprintf("%s(%s)", ctor, strings.Join(parts, ", "))
}

// methodCallText implements the receiver-resolution algorithm of
// spec.md §4.4.1's "Method call" bullet: resolve the receiver's struct
// name, look up its pointer-receiver flag, and lower to the reserved
// free-function name. An unresolved receiver surfaces as a diagnostic
// comment plus the UnknownStruct sentinel rather than failing silently.
func (g *Generator) methodCallText(sym *types.SymbolTable, n *ast.MethodCallExpr) string {
	receiverText := g.exprText(sym, n.Receiver)

	structName, ok := resolveStructName(g.reg, sym, n.Receiver)
	if !ok {
		args := make([]string, 0, len(n.Args)+1)
		args = append(args, receiverText)
		for _, a := range n.Args {
			args = append(args, g.exprText(sym, a))
		}
		return fmt.Sprintf("/* ERROR: Could not determine struct type for %s */ __UnknownStruct_%s(%s)",
			n.Receiver.String(), n.Method, strings.Join(args, ", "))
	}

	suffix := ""
	if m, ok := g.reg.Method(structName, n.Method); ok && m.PointerReceiver {
		suffix = "_p"
	}

	args := make([]string, 0, len(n.Args)+1)
	args = append(args, receiverText)
	for _, a := range n.Args {
		args = append(args, g.exprText(sym, a))
	}

	return fmt.Sprintf("__%s_%s%s(%s)", structName, n.Method, suffix, strings.Join(args, ", "))
}
