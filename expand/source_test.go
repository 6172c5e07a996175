package expand

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSourceExpandsCallSite(t *testing.T) {
	src := `impl Axp192 {
    pub async fn charge_current(&mut self) -> Result<f32, Error> {
        let raw = suffix!("_async", self.adc.read().await?);
        Ok(raw as f32 * 0.5)
    }
}
`
	out, n, err := Source("axp.rs", src, Options{})
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if n != 1 {
		t.Errorf("expanded %d sites, want 1", n)
	}

	want := strings.Join([]string{
		"impl Axp192 {",
		"    pub async fn charge_current(&mut self) -> Result<f32, Error> {",
		"        let raw = {",
		"            #[cfg(feature = \"async\")]",
		"            {",
		"                self.adc.read_async().await?",
		"            }",
		"            #[cfg(all(feature = \"blocking\", not(feature = \"async\")))]",
		"            {",
		"                self.adc.read().await?",
		"            }",
		"            #[cfg(not(any(feature = \"async\", feature = \"blocking\")))]",
		"            compile_error!(\"enable either the `async` or the `blocking` feature\");",
		"        };",
		"        Ok(raw as f32 * 0.5)",
		"    }",
		"}",
		"",
	}, "\n")
	if diff := cmp.Diff(want, out); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestSourceSkipsLiteralsAndComments(t *testing.T) {
	src := `// suffix!("_x", a().await) in a comment
/* suffix!("_x", b().await) in a block comment */
let s = "suffix!(\"_x\", c().await)";
let c = 'x';
let real = suffix!("_x", d.run().await);
`
	out, n, err := Source("test.rs", src, Options{})
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if n != 1 {
		t.Errorf("expanded %d sites, want 1", n)
	}
	for _, untouched := range []string{
		`// suffix!("_x", a().await) in a comment`,
		`/* suffix!("_x", b().await) in a block comment */`,
		`let s = "suffix!(\"_x\", c().await)";`,
	} {
		if !strings.Contains(out, untouched) {
			t.Errorf("output lost verbatim text %q", untouched)
		}
	}
	if !strings.Contains(out, "d.run_x().await") {
		t.Errorf("real call site not expanded:\n%s", out)
	}
	if strings.Contains(out, `suffix!("_x", d.run().await)`) {
		t.Errorf("real call site left in output:\n%s", out)
	}
}

func TestSourceMacroNameIsWordBounded(t *testing.T) {
	src := `let a = my_suffix!("_x", a().await);
let b = suffixes(1);
let c = suffix!("_x", run().await);
`
	out, n, err := Source("test.rs", src, Options{})
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if n != 1 {
		t.Errorf("expanded %d sites, want 1", n)
	}
	if !strings.Contains(out, `my_suffix!("_x", a().await)`) {
		t.Errorf("my_suffix! must not expand:\n%s", out)
	}
	if !strings.Contains(out, "suffixes(1)") {
		t.Errorf("suffixes(1) must not change:\n%s", out)
	}
	if !strings.Contains(out, "run_x().await") {
		t.Errorf("suffix! call site not expanded:\n%s", out)
	}
}

func TestSourcePerSiteErrors(t *testing.T) {
	src := `fn f() {
    let a = suffix!("_x", one().await);
    let b = suffix!(bad, two().await);
    let c = suffix!("_x", three().await);
}
`
	out, n, err := Source("test.rs", src, Options{})
	if err == nil {
		t.Fatal("expected error, got none")
	}
	list, ok := err.(ErrorList)
	if !ok {
		t.Fatalf("got %T, want ErrorList", err)
	}
	if len(list) != 1 {
		t.Fatalf("got %d errors, want 1: %v", len(list), err)
	}
	if list[0].Pos.Line != 3 {
		t.Errorf("error line = %d, want 3", list[0].Pos.Line)
	}
	if !strings.Contains(list[0].Msg, "string literal") {
		t.Errorf("error message %q does not mention the bad suffix", list[0].Msg)
	}

	// Valid call sites on both sides of the bad one still expand, and the
	// bad one is left as written.
	if n != 2 {
		t.Errorf("expanded %d sites, want 2", n)
	}
	if !strings.Contains(out, "one_x().await") || !strings.Contains(out, "three_x().await") {
		t.Errorf("valid call sites not expanded:\n%s", out)
	}
	if !strings.Contains(out, `suffix!(bad, two().await)`) {
		t.Errorf("malformed call site not preserved:\n%s", out)
	}
}

func TestSourceCustomMacroName(t *testing.T) {
	src := `let a = bisync!("_async", s.read().await);
let b = suffix!("_async", s.read().await);
`
	out, n, err := Source("test.rs", src, Options{MacroName: "bisync"})
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if n != 1 {
		t.Errorf("expanded %d sites, want 1", n)
	}
	if !strings.Contains(out, "read_async") {
		t.Errorf("bisync! call site not expanded:\n%s", out)
	}
	if !strings.Contains(out, `suffix!("_async", s.read().await)`) {
		t.Errorf("suffix! must stay verbatim under a custom macro name:\n%s", out)
	}
}

func TestSourceMultilineInvocation(t *testing.T) {
	src := `let v = suffix!(
    "_async",
    self.bus.transfer(buf).await?
);
`
	out, n, err := Source("test.rs", src, Options{})
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if n != 1 {
		t.Errorf("expanded %d sites, want 1", n)
	}
	if !strings.Contains(out, "transfer_async(buf).await?") {
		t.Errorf("multi-line call site not expanded:\n%s", out)
	}
}

func TestSourceUnterminatedInvocation(t *testing.T) {
	_, _, err := Source("test.rs", `let a = suffix!("_x", run().await`, Options{})
	if err == nil {
		t.Fatal("expected error, got none")
	}
	if !strings.Contains(err.Error(), "unterminated") {
		t.Errorf("error = %v, want unterminated macro invocation", err)
	}
}

func TestSourceNoInvocations(t *testing.T) {
	src := "fn main() {\n    println!(\"hello\");\n}\n"
	out, n, err := Source("test.rs", src, Options{})
	if err != nil {
		t.Fatalf("Source: %v", err)
	}
	if n != 0 {
		t.Errorf("expanded %d sites, want 0", n)
	}
	if out != src {
		t.Errorf("output differs from input:\n%s", out)
	}
}
