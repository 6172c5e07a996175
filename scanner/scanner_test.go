package scanner

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/okhsunrog/bisync-suffix-macro/token"
)

type scanResult struct {
	Tok token.Token
	Lit string
}

func scanAll(t *testing.T, src string) ([]scanResult, int) {
	t.Helper()
	var s Scanner
	file := token.NewFile("test.rs", len(src))
	s.Init(file, src, func(pos token.Position, msg string) {
		t.Logf("scan error at %v: %v", pos, msg)
	})

	var out []scanResult
	for {
		_, tok, lit := s.Scan()
		if tok == token.EOF {
			return out, s.ErrCount
		}
		out = append(out, scanResult{tok, lit})
	}
}

func TestScan(t *testing.T) {
	cases := []struct {
		src  string
		want []scanResult
	}{
		{
			src: `self.sensor.read().await?`,
			want: []scanResult{
				{token.IDENT, "self"},
				{token.PERIOD, ""},
				{token.IDENT, "sensor"},
				{token.PERIOD, ""},
				{token.IDENT, "read"},
				{token.LPAREN, ""},
				{token.RPAREN, ""},
				{token.PERIOD, ""},
				{token.AWAIT, "await"},
				{token.QUESTION, ""},
			},
		},
		{
			src: `"_async", a().await + b(1, 0.5)`,
			want: []scanResult{
				{token.STRING, `"_async"`},
				{token.COMMA, ""},
				{token.IDENT, "a"},
				{token.LPAREN, ""},
				{token.RPAREN, ""},
				{token.PERIOD, ""},
				{token.AWAIT, "await"},
				{token.ADD, ""},
				{token.IDENT, "b"},
				{token.LPAREN, ""},
				{token.INT, "1"},
				{token.COMMA, ""},
				{token.FLOAT, "0.5"},
				{token.RPAREN, ""},
			},
		},
		{
			src: `Device::new(&mut bus) // trailing comment`,
			want: []scanResult{
				{token.IDENT, "Device"},
				{token.PATHSEP, ""},
				{token.IDENT, "new"},
				{token.LPAREN, ""},
				{token.AND, ""},
				{token.MUT, "mut"},
				{token.IDENT, "bus"},
				{token.RPAREN, ""},
			},
		},
		{
			src: "a << b >> c <= d >= e == f != g && h || !i",
			want: []scanResult{
				{token.IDENT, "a"},
				{token.SHL, ""},
				{token.IDENT, "b"},
				{token.SHR, ""},
				{token.IDENT, "c"},
				{token.LEQ, ""},
				{token.IDENT, "d"},
				{token.GEQ, ""},
				{token.IDENT, "e"},
				{token.EQL, ""},
				{token.IDENT, "f"},
				{token.NEQ, ""},
				{token.IDENT, "g"},
				{token.LAND, ""},
				{token.IDENT, "h"},
				{token.LOR, ""},
				{token.NOT, ""},
				{token.IDENT, "i"},
			},
		},
		{
			src: "pair.0 /* block /* nested */ comment */ [i]",
			want: []scanResult{
				{token.IDENT, "pair"},
				{token.PERIOD, ""},
				{token.INT, "0"},
				{token.LBRACK, ""},
				{token.IDENT, "i"},
				{token.RBRACK, ""},
			},
		},
		{
			src: `'x' "with \" escape"`,
			want: []scanResult{
				{token.CHAR, `'x'`},
				{token.STRING, `"with \" escape"`},
			},
		},
	}

	for _, tt := range cases {
		got, errCount := scanAll(t, tt.src)
		if errCount != 0 {
			t.Errorf("%q: %d scan errors", tt.src, errCount)
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("%q: token mismatch (-want +got):\n%s", tt.src, diff)
		}
	}
}

func TestScanErrors(t *testing.T) {
	cases := []string{
		`"unterminated`,
		`/* unterminated`,
		`a = b`,
		"\x01",
	}
	for _, src := range cases {
		if _, errCount := scanAll(t, src); errCount == 0 {
			t.Errorf("%q: expected scan error, got none", src)
		}
	}
}

func TestScanPositions(t *testing.T) {
	src := "a\n  .read()\n  .await"
	var s Scanner
	file := token.NewFile("test.rs", len(src))
	s.Init(file, src, nil)

	type posTok struct {
		line, col int
		tok       token.Token
	}
	var got []posTok
	for {
		pos, tok, _ := s.Scan()
		if tok == token.EOF {
			break
		}
		p := file.Position(pos)
		got = append(got, posTok{p.Line, p.Column, tok})
	}

	want := []posTok{
		{1, 1, token.IDENT},
		{2, 3, token.PERIOD},
		{2, 4, token.IDENT},
		{2, 8, token.LPAREN},
		{2, 9, token.RPAREN},
		{3, 3, token.PERIOD},
		{3, 4, token.AWAIT},
	}
	if diff := cmp.Diff(want, got, cmp.AllowUnexported(posTok{})); diff != "" {
		t.Errorf("position mismatch (-want +got):\n%s", diff)
	}
}
