package codegen

import (
	"strings"
	"testing"

	"github.com/peach-lang/peachc/internal/lexer"
	"github.com/peach-lang/peachc/internal/parser"
)

func mustGenerate(t *testing.T, src string) string {
	t.Helper()

	toks, err := lexer.Tokenize(src)
	if err != nil {
		t.Fatalf("lex error: %v", err)
	}

	prog, err := parser.Parse(toks)
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	out, err := Generate(prog)
	if err != nil {
		t.Fatalf("generate error: %v", err)
	}

	return out
}

// scenario 1: hello world
func TestHelloWorld(t *testing.T) {
	out := mustGenerate(t, `def main() -> int = { print("hello"); return 0 }`)

	if !strings.Contains(out, `print("hello")`) {
		t.Fatalf("expected print(\"hello\") in output:\n%s", out)
	}
	if !strings.Contains(out, "_Generic") {
		t.Fatalf("expected _Generic macro in output:\n%s", out)
	}
}

// scenario 2: range sum
func TestRangeSum(t *testing.T) {
	out := mustGenerate(t, `def main() -> int = {
		var s: int = 0
		for (i <- range(1, 5)) s = s + i
		print(s); return 0
	}`)

	if !strings.Contains(out, "for (int i = 1; i < 5; i++)") {
		t.Fatalf("expected canonical range for-loop in output:\n%s", out)
	}
}

// scenario 3: struct + value-receiver method
func TestStructValueReceiverMethod(t *testing.T) {
	out := mustGenerate(t, `
struct P { x: int y: int }
impl P { def sum(self: void) -> int = self.x + self.y }
def main() -> int = { val p = P{.x=3,.y=4}; print(p.sum()); return 0 }
`)

	if !strings.Contains(out, "__P_sum(p)") {
		t.Fatalf("expected __P_sum(p) call in output:\n%s", out)
	}
	if !strings.Contains(out, "struct P {") {
		t.Fatalf("expected struct P definition in output:\n%s", out)
	}
}

// scenario 4: pointer-receiver method name
func TestPointerReceiverMethodName(t *testing.T) {
	out := mustGenerate(t, `
struct C { n: int }
impl *C { def bump(self: void) -> int = (*self).n + 1 }
`)

	if !strings.Contains(out, "__C_bump_p") {
		t.Fatalf("expected __C_bump_p in output:\n%s", out)
	}
	if !strings.Contains(out, "struct C* self") {
		t.Fatalf("expected pointer self parameter in output:\n%s", out)
	}
}

// scenario 5: array decay in parameter
func TestArrayDecayInParameter(t *testing.T) {
	out := mustGenerate(t, `def sum(a: [5]int) -> int = { var s = 0; for (x <- a) s = s + x; return s }`)

	if !strings.Contains(out, "int* a") {
		t.Fatalf("expected decayed pointer parameter in output:\n%s", out)
	}
	if !strings.Contains(out, "_i < 5") {
		t.Fatalf("expected loop bound 5 known from declared array type in output:\n%s", out)
	}
}

// scenario 6: unknown method receiver
func TestUnknownMethodReceiver(t *testing.T) {
	out := mustGenerate(t, `def main() -> int = { foo.bar(); return 0 }`)

	if !strings.Contains(out, "/* ERROR: Could not determine struct type") {
		t.Fatalf("expected diagnostic comment in output:\n%s", out)
	}
}

func TestValWithoutInitializerRejectedByParser(t *testing.T) {
	toks, err := lexer.Tokenize(`def main() -> int = { val x: int; return 0 }`)
	if err != nil {
		t.Fatalf("unexpected lex error: %v", err)
	}

	if _, err := parser.Parse(toks); err == nil {
		t.Fatalf("expected parse error for val without initializer")
	}
}

func TestEmptyParamListEmitsVoid(t *testing.T) {
	out := mustGenerate(t, `def zero() -> int = 0`)

	if !strings.Contains(out, "int zero(void) {") {
		t.Fatalf("expected void parameter list in output:\n%s", out)
	}
}

func TestEmptyArrayLiteralInfersInt(t *testing.T) {
	out := mustGenerate(t, `def main() -> int = { var xs = {}; return 0 }`)

	if !strings.Contains(out, "int xs[0]") {
		t.Fatalf("expected empty array literal to infer int element type in output:\n%s", out)
	}
}

func TestStructFieldOrderPreserved(t *testing.T) {
	out := mustGenerate(t, `struct Point { z: int a: int m: int }`)

	idxZ := strings.Index(out, "z;")
	idxA := strings.Index(out, "a;")
	idxM := strings.Index(out, "m;")

	if !(idxZ < idxA && idxA < idxM) {
		t.Fatalf("expected fields in source order z, a, m in output:\n%s", out)
	}
}

func TestPreludeMinimalityNoPrintNoRange(t *testing.T) {
	out := mustGenerate(t, `def main() -> int = { return 0 }`)

	if strings.Contains(out, "_Generic") {
		t.Fatalf("did not expect print prelude when print is unused:\n%s", out)
	}
	if strings.Contains(out, "struct Range") {
		t.Fatalf("did not expect Range prelude when range is unused:\n%s", out)
	}
}

func TestPrecedenceParenthesization(t *testing.T) {
	out := mustGenerate(t, `def main() -> int = 1 + 2 * 3`)

	if !strings.Contains(out, "(1 + (2 * 3))") {
		t.Fatalf("expected precedence-preserving parenthesization in output:\n%s", out)
	}
}

func TestNameLoweringInjectivity(t *testing.T) {
	out := mustGenerate(t, `
struct S { n: int }
impl S { def touch(self: void) -> int = self.n }
impl *S { def touch(self: void) -> int = (*self).n }
`)

	if !strings.Contains(out, "__S_touch(") {
		t.Fatalf("expected value-receiver lowering in output:\n%s", out)
	}
	if !strings.Contains(out, "__S_touch_p(") {
		t.Fatalf("expected pointer-receiver lowering to differ in output:\n%s", out)
	}
}
