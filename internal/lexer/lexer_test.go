package lexer

import (
	"testing"

	"github.com/peach-lang/peachc/internal/token"
)

func TestBasicTokens(t *testing.T) {
	input := `def main() -> int = {
	print("hello");
	return 0
}`

	tests := []struct {
		expectedType token.Type
		expectedLex  string
	}{
		{token.DEF, "def"},
		{token.IDENTIFIER, "main"},
		{token.LPAREN, "("},
		{token.RPAREN, ")"},
		{token.ARROW, "->"},
		{token.INT_T, "int"},
		{token.ASSIGN, "="},
		{token.LBRACE, "{"},
		{token.IDENTIFIER, "print"},
		{token.LPAREN, "("},
		{token.STRING, "hello"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.RETURN, "return"},
		{token.INT, "0"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	l := New(input)

	for i, tt := range tests {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}

		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d] - type wrong. expected=%s, got=%s", i, tt.expectedType, tok.Type)
		}

		if tok.Lexeme != tt.expectedLex {
			t.Fatalf("tests[%d] - lexeme wrong. expected=%q, got=%q", i, tt.expectedLex, tok.Lexeme)
		}
	}
}

func TestKeywords(t *testing.T) {
	input := `val var def if else while for return true false void struct union enum impl int long float double bool string`

	expected := []token.Type{
		token.VAL, token.VAR, token.DEF, token.IF, token.ELSE, token.WHILE, token.FOR,
		token.RETURN, token.TRUE, token.FALSE, token.VOID, token.STRUCT, token.UNION,
		token.ENUM, token.IMPL, token.INT_T, token.LONG_T, token.FLOAT_T, token.DOUBLE_T,
		token.BOOL_T, token.STRING_T, token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("tests[%d] - unexpected error: %v", i, err)
		}
		if tok.Type != want {
			t.Fatalf("tests[%d] - expected %s, got %s (%q)", i, want, tok.Type, tok.Lexeme)
		}
	}
}

func TestNumberSuffixes(t *testing.T) {
	tests := []struct {
		input string
		want  token.Type
	}{
		{"42", token.INT},
		{"42L", token.LONG},
		{"42l", token.LONG},
		{"3.14", token.FLOAT},
		{"3f", token.FLOAT},
		{"3.14f", token.FLOAT},
		{"3.14d", token.DOUBLE},
		{"3d", token.DOUBLE},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("%q: unexpected error: %v", tt.input, err)
		}
		if tok.Type != tt.want {
			t.Errorf("%q: expected %s, got %s", tt.input, tt.want, tok.Type)
		}
	}
}

func TestStringEscapes(t *testing.T) {
	l := New(`"a\nb\tc\\d\"e"`)

	tok, err := l.NextToken()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := "a\nb\tc\\d\"e"
	if tok.Lexeme != want {
		t.Fatalf("expected %q, got %q", want, tok.Lexeme)
	}
}

func TestUnterminatedString(t *testing.T) {
	l := New(`"abc`)
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected error for unterminated string")
	}
}

func TestNewlineInString(t *testing.T) {
	l := New("\"abc\ndef\"")
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected error for newline inside string")
	}
}

func TestBadEscape(t *testing.T) {
	l := New(`"\q"`)
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected error for unrecognized escape")
	}
}

func TestLonePipeIsError(t *testing.T) {
	l := New("|")
	if _, err := l.NextToken(); err == nil {
		t.Fatal("expected error for lone '|'")
	}
}

func TestLineComments(t *testing.T) {
	l := New("val x = 1 // comment\nval y = 2")

	var got []token.Type
	for {
		tok, err := l.NextToken()
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		got = append(got, tok.Type)
		if tok.Type == token.EOF {
			break
		}
	}

	want := []token.Type{token.VAL, token.IDENTIFIER, token.ASSIGN, token.INT, token.VAL, token.IDENTIFIER, token.ASSIGN, token.INT, token.EOF}
	if len(got) != len(want) {
		t.Fatalf("token count mismatch: got %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("token[%d]: got %s, want %s", i, got[i], want[i])
		}
	}
}

func TestLineColumnTracking(t *testing.T) {
	l := New("val\nx")

	tok, _ := l.NextToken()
	if tok.Line != 1 {
		t.Fatalf("expected line 1, got %d", tok.Line)
	}

	tok, _ = l.NextToken()
	if tok.Line != 2 {
		t.Fatalf("expected line 2, got %d", tok.Line)
	}
}

func TestTokenizeHelper(t *testing.T) {
	toks, err := Tokenize("val x = 1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if toks[len(toks)-1].Type != token.EOF {
		t.Fatalf("last token should be EOF, got %s", toks[len(toks)-1].Type)
	}
}
