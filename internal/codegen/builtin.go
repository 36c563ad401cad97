package codegen

// emitPrelude implements spec.md §4.5: the four standard includes are
// always present; the Range helper, the print dispatch macro, and the
// len() macro are conditional on what the usage tracker observed.
func (g *Generator) emitPrelude() {
	g.writeLine("#include <stdio.h>")
	g.writeLine("#include <stdlib.h>")
	g.writeLine("#include <string.h>")
	g.writeLine("#include <stdbool.h>")
	g.buf.WriteString("\n")

	if g.usage.UsesBuiltin("range") {
		g.emitRangePrelude()
	}

	if g.usage.UsesBuiltin("print") {
		g.emitPrintPrelude()
	}

	if g.usage.UsesBuiltin("len") {
		g.writeLine("#define len(arr) (sizeof(arr)/sizeof((arr)[0]))")
		g.buf.WriteString("\n")
	}
}

func (g *Generator) emitRangePrelude() {
	g.writeLine("struct Range {")
	g.indent++
	g.writeLine("int start;")
	g.writeLine("int stop;")
	g.writeLine("int step;")
	g.indent--
	g.writeLine("};")
	g.buf.WriteString("\n")

	g.writeLine("struct Range range1(int stop) { return (struct Range){0, stop, 1}; }")
	g.writeLine("struct Range range2(int start, int stop) { return (struct Range){start, stop, 1}; }")
	g.writeLine("struct Range range3(int start, int stop, int step) { return (struct Range){start, stop, step}; }")
	g.buf.WriteString("\n")
}

// primitiveOrder fixes the emission order of per-type printers,
// matching usage.ObservedPrimitives's order.
var primitiveOrder = []string{"int", "long", "float", "double", "string", "bool"}

// printerCType maps a primitive name to the C type its print_<name>
// function accepts.
var printerCType = map[string]string{
	"int":    "int",
	"long":   "long",
	"float":  "float",
	"double": "double",
	"string": "const char*",
	"bool":   "int",
}

// genericArmCTypes lists the distinct C types that should dispatch to
// print_<name> via _Generic; string needs both char* and const char*
// arms since literals and char* locals both reach print().
var genericArmCTypes = map[string][]string{
	"int":    {"int"},
	"long":   {"long"},
	"float":  {"float"},
	"double": {"double"},
	"string": {"char*", "const char*"},
}

func (g *Generator) emitPrintPrelude() {
	observed := g.usage.ObservedPrimitives()

	set := map[string]bool{"int": true} // print_int is always the _Generic default arm
	for _, p := range observed {
		set[p] = true
	}
	if len(observed) == 0 {
		set["string"] = true // spec.md §4.5: minimal programs still get int and string arms
	}

	for _, p := range primitiveOrder {
		if set[p] {
			g.emitPrinterFunc(p)
		}
	}
	g.buf.WriteString("\n")

	g.writeLine("#define print(x) _Generic((x), \\")
	g.indent++
	for _, p := range primitiveOrder {
		if !set[p] {
			continue
		}
		for _, cType := range genericArmCTypes[p] {
			g.writeLine("%s: print_%s, \\", cType, p)
		}
	}
	g.writeLine("default: print_int \\")
	g.indent--
	g.writeLine(")(x)")
	g.buf.WriteString("\n")
}

func (g *Generator) emitPrinterFunc(primitive string) {
	cType := printerCType[primitive]

	switch primitive {
	case "int":
		g.writeLine("static void print_int(%s v) { printf(\"%%d\\n\", v); }", cType)
	case "long":
		g.writeLine("static void print_long(%s v) { printf(\"%%ld\\n\", v); }", cType)
	case "float":
		g.writeLine("static void print_float(%s v) { printf(\"%%f\\n\", (double)v); }", cType)
	case "double":
		g.writeLine("static void print_double(%s v) { printf(\"%%f\\n\", v); }", cType)
	case "string":
		g.writeLine("static void print_string(%s v) { printf(\"%%s\\n\", v); }", cType)
	case "bool":
		g.writeLine("static void print_bool(%s v) { printf(\"%%s\\n\", v ? \"true\" : \"false\"); }", cType)
	}
}
