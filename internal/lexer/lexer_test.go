package lexer

import (
	"strings"
	"testing"

	"github.com/mjc-lang/minijavac/pkg/token"
)

func TestNextTokenBasic(t *testing.T) {
	input := `public class Soma {
	public static void main(String[] args) {
		double a;
		a = 2 + 3.5 * 4;
		System.out.println(a);
	}
}`

	tests := []struct {
		expectedType    token.TokenType
		expectedLiteral string
	}{
		{token.PUBLIC, "public"},
		{token.CLASS, "class"},
		{token.IDENT, "Soma"},
		{token.LBRACE, "{"},
		{token.PUBLIC, "public"},
		{token.STATIC, "static"},
		{token.VOID, "void"},
		{token.MAIN, "main"},
		{token.LPAREN, "("},
		{token.STRING, "String"},
		{token.LBRACK, "["},
		{token.RBRACK, "]"},
		{token.IDENT, "args"},
		{token.RPAREN, ")"},
		{token.LBRACE, "{"},
		{token.DOUBLE, "double"},
		{token.IDENT, "a"},
		{token.SEMICOLON, ";"},
		{token.IDENT, "a"},
		{token.ASSIGN, "="},
		{token.NUMBER, "2"},
		{token.PLUS, "+"},
		{token.NUMBER, "3.5"},
		{token.ASTERISK, "*"},
		{token.NUMBER, "4"},
		{token.SEMICOLON, ";"},
		{token.PRINTLN, "System.out.println"},
		{token.LPAREN, "("},
		{token.IDENT, "a"},
		{token.RPAREN, ")"},
		{token.SEMICOLON, ";"},
		{token.RBRACE, "}"},
		{token.RBRACE, "}"},
		{token.EOF, ""},
	}

	l := New(input)
	for i, tt := range tests {
		tok := l.NextToken()
		if tok.Type != tt.expectedType {
			t.Fatalf("tests[%d]: wrong token type. got=%v, want=%v (literal %q)",
				i, tok.Type, tt.expectedType, tok.Literal)
		}
		if tok.Literal != tt.expectedLiteral {
			t.Fatalf("tests[%d]: wrong literal. got=%q, want=%q", i, tok.Literal, tt.expectedLiteral)
		}
	}
	if errs := l.Errors(); len(errs) != 0 {
		t.Fatalf("unexpected lexer errors: %v", errs)
	}
}

func TestNextTokenOperators(t *testing.T) {
	input := `+ - * / = == != >= <= > < , ;`

	expected := []token.TokenType{
		token.PLUS, token.MINUS, token.ASTERISK, token.SLASH,
		token.ASSIGN, token.EQ, token.NOT_EQ,
		token.GREATER_EQ, token.LESS_EQ, token.GREATER, token.LESS,
		token.COMMA, token.SEMICOLON, token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: got %v, want %v", i, tok.Type, want)
		}
	}
}

func TestNumberValues(t *testing.T) {
	tests := []struct {
		input   string
		literal string
		value   float64
	}{
		{"0", "0", 0},
		{"42", "42", 42},
		{"3.5", "3.5", 3.5},
		{"0.25", "0.25", 0.25},
		{"100.001", "100.001", 100.001},
	}

	for _, tt := range tests {
		l := New(tt.input)
		tok := l.NextToken()
		if tok.Type != token.NUMBER {
			t.Errorf("%q: got type %v, want NUMBER", tt.input, tok.Type)
			continue
		}
		if tok.Literal != tt.literal {
			t.Errorf("%q: got literal %q, want %q", tt.input, tok.Literal, tt.literal)
		}
		if tok.Value != tt.value {
			t.Errorf("%q: got value %v, want %v", tt.input, tok.Value, tt.value)
		}
	}
}

func TestNumberWithTrailingDot(t *testing.T) {
	// "1." scans as NUMBER 1 followed by an unexpected '.'.
	l := New("1.")
	tok := l.NextToken()
	if tok.Type != token.NUMBER || tok.Literal != "1" {
		t.Fatalf("got (%v, %q), want (NUMBER, \"1\")", tok.Type, tok.Literal)
	}
	tok = l.NextToken()
	if tok.Type != token.ILLEGAL {
		t.Fatalf("got %v, want ILLEGAL", tok.Type)
	}
	if len(l.Errors()) != 1 {
		t.Fatalf("expected 1 lexer error, got %d", len(l.Errors()))
	}
}

func TestLineComments(t *testing.T) {
	input := `// leading comment
a = 1; // trailing comment
// final comment`

	expected := []token.TokenType{
		token.IDENT, token.ASSIGN, token.NUMBER, token.SEMICOLON, token.EOF,
	}

	l := New(input)
	for i, want := range expected {
		tok := l.NextToken()
		if tok.Type != want {
			t.Fatalf("token %d: got %v, want %v", i, tok.Type, want)
		}
	}
}

func TestPrintlnBoundary(t *testing.T) {
	// An identifier merely starting with "System" must not swallow the
	// println lexeme, and vice versa.
	l := New("System.out.println(")
	tok := l.NextToken()
	if tok.Type != token.PRINTLN {
		t.Fatalf("got %v, want PRINTLN", tok.Type)
	}
	if tok.Literal != "System.out.println" {
		t.Fatalf("got literal %q", tok.Literal)
	}
	if next := l.NextToken(); next.Type != token.LPAREN {
		t.Fatalf("got %v, want LPAREN", next.Type)
	}

	// "System" alone is an ordinary identifier followed by an unexpected
	// '.' since member access does not exist in the language.
	l = New("System.x")
	tok = l.NextToken()
	if tok.Type != token.IDENT || tok.Literal != "System" {
		t.Fatalf("got (%v, %q), want (IDENT, \"System\")", tok.Type, tok.Literal)
	}
	if next := l.NextToken(); next.Type != token.ILLEGAL {
		t.Fatalf("got %v, want ILLEGAL for '.'", next.Type)
	}
}

func TestPositions(t *testing.T) {
	input := "a = 1;\nb = 2;"

	l := New(input)

	tok := l.NextToken() // a
	if tok.Pos.Line != 1 || tok.Pos.Column != 1 {
		t.Errorf("token %q: pos %s, want 1:1", tok.Literal, tok.Pos)
	}
	l.NextToken()       // =
	l.NextToken()       // 1
	l.NextToken()       // ;
	tok = l.NextToken() // b
	if tok.Pos.Line != 2 || tok.Pos.Column != 1 {
		t.Errorf("token %q: pos %s, want 2:1", tok.Literal, tok.Pos)
	}
	tok = l.NextToken() // =
	if tok.Pos.Line != 2 || tok.Pos.Column != 3 {
		t.Errorf("token %q: pos %s, want 2:3", tok.Literal, tok.Pos)
	}
}

func TestUnknownCharacter(t *testing.T) {
	l := New("a = 1 @ 2;")

	var illegal token.Token
	for {
		tok := l.NextToken()
		if tok.Type == token.ILLEGAL {
			illegal = tok
		}
		if tok.Type == token.EOF {
			break
		}
	}

	if illegal.Literal != "@" {
		t.Fatalf("illegal token literal = %q, want \"@\"", illegal.Literal)
	}
	errs := l.Errors()
	if len(errs) != 1 {
		t.Fatalf("expected 1 error, got %d", len(errs))
	}
	if !strings.Contains(errs[0].Message, "'@'") {
		t.Errorf("error message %q should name the character", errs[0].Message)
	}
	if errs[0].Pos.Line != 1 || errs[0].Pos.Column != 7 {
		t.Errorf("error position %s, want 1:7", errs[0].Pos)
	}
}

// TestRoundTripLexing checks that concatenating token literals equals the
// source with whitespace and comments elided.
func TestRoundTripLexing(t *testing.T) {
	input := `public class Loop { // the smallest loop
	public static void main(String[] args) {
		double cont;
		cont = 3;
		while (cont > 0) {
			System.out.println(cont);
			cont = cont - 1;
		}
	}
}`

	toks, err := Tokenize(input)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}

	var lexemes strings.Builder
	for _, tok := range toks {
		lexemes.WriteString(tok.Literal)
	}

	stripped := stripWhitespaceAndComments(input)
	if lexemes.String() != stripped {
		t.Errorf("lexeme concatenation does not round-trip:\ngot:  %q\nwant: %q",
			lexemes.String(), stripped)
	}
}

func stripWhitespaceAndComments(input string) string {
	var sb strings.Builder
	lines := strings.Split(input, "\n")
	for _, line := range lines {
		if idx := strings.Index(line, "//"); idx >= 0 {
			line = line[:idx]
		}
		for _, ch := range line {
			if ch != ' ' && ch != '\t' && ch != '\r' {
				sb.WriteRune(ch)
			}
		}
	}
	return sb.String()
}

// TestDeterminism checks that two lexers over the same input produce the
// same stream.
func TestDeterminism(t *testing.T) {
	input := "double a, b; a = lerDouble(); b = a * 2; System.out.println(b);"

	first, err1 := Tokenize(input)
	second, err2 := Tokenize(input)
	if err1 != nil || err2 != nil {
		t.Fatalf("Tokenize errors: %v, %v", err1, err2)
	}
	if len(first) != len(second) {
		t.Fatalf("token counts differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("token %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}
