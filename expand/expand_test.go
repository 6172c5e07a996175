package expand

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/okhsunrog/bisync-suffix-macro/ast"
	"github.com/okhsunrog/bisync-suffix-macro/parser"
)

func mustInvocation(t *testing.T, src string) *ast.Invocation {
	t.Helper()
	inv, err := parser.ParseInvocation("test.rs", src)
	if err != nil {
		t.Fatalf("ParseInvocation(%q): %v", src, err)
	}
	return inv
}

func TestInvocation(t *testing.T) {
	inv := mustInvocation(t, `"_async", self.sensor.read().await?`)
	got, err := Invocation(inv, Options{})
	if err != nil {
		t.Fatalf("Invocation: %v", err)
	}

	want := strings.Join([]string{
		`{`,
		`    #[cfg(feature = "async")]`,
		`    {`,
		`        self.sensor.read_async().await?`,
		`    }`,
		`    #[cfg(all(feature = "blocking", not(feature = "async")))]`,
		`    {`,
		`        self.sensor.read().await?`,
		`    }`,
		`    #[cfg(not(any(feature = "async", feature = "blocking")))]`,
		"    compile_error!(\"enable either the `async` or the `blocking` feature\");",
		`}`,
	}, "\n")
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("expansion mismatch (-want +got):\n%s", diff)
	}
}

func TestInvocationBothBranchesPresent(t *testing.T) {
	cases := []struct {
		src              string
		asyncB, blocking string
	}{
		{`"_x", a().await + b().await`, "a_x().await + b_x().await", "a().await + b().await"},
		{`"_x", obj.field.await`, "obj.field.await", "obj.field.await"},
		{`"_async", self.ll.battery_charge_current_adc().read().await?`,
			"self.ll.battery_charge_current_adc().read_async().await?",
			"self.ll.battery_charge_current_adc().read().await?"},
	}
	for _, tt := range cases {
		got, err := Invocation(mustInvocation(t, tt.src), Options{})
		if err != nil {
			t.Fatalf("Invocation(%q): %v", tt.src, err)
		}
		if !strings.Contains(got, "\n        "+tt.asyncB+"\n") {
			t.Errorf("%q: async branch %q missing in:\n%s", tt.src, tt.asyncB, got)
		}
		if !strings.Contains(got, "\n        "+tt.blocking+"\n") {
			t.Errorf("%q: blocking branch %q missing in:\n%s", tt.src, tt.blocking, got)
		}
	}
}

func TestInvocationCustomFeatures(t *testing.T) {
	inv := mustInvocation(t, `"_async", s.read().await`)
	got, err := Invocation(inv, Options{AsyncFeature: "tokio", BlockingFeature: "sync"})
	if err != nil {
		t.Fatalf("Invocation: %v", err)
	}
	for _, want := range []string{
		`#[cfg(feature = "tokio")]`,
		`#[cfg(all(feature = "sync", not(feature = "tokio")))]`,
		`#[cfg(not(any(feature = "tokio", feature = "sync")))]`,
		"enable either the `tokio` or the `sync` feature",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("expansion missing %q:\n%s", want, got)
		}
	}
}

func TestRequestOriginalUntouched(t *testing.T) {
	inv := mustInvocation(t, `"_async", s.read().await`)
	req, err := NewRequest(inv)
	if err != nil {
		t.Fatalf("NewRequest: %v", err)
	}
	if got := req.Transform(); got == req.Expr {
		t.Fatal("Transform returned the original tree, want a copy")
	}
	// Transforming twice is independent; the request's tree never changes.
	first, second := req.Transform(), req.Transform()
	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("repeated transforms differ (-first +second):\n%s", diff)
	}
}

func TestSelect(t *testing.T) {
	inv := mustInvocation(t, `"_async", self.sensor.read().await?`)

	cases := []struct {
		features []string
		want     string
		wantErr  bool
	}{
		{[]string{"async"}, "self.sensor.read_async().await?", false},
		{[]string{"blocking"}, "self.sensor.read().await?", false},
		{[]string{"async", "blocking"}, "self.sensor.read_async().await?", false},
		{[]string{"blocking", "async"}, "self.sensor.read_async().await?", false},
		{nil, "", true},
		{[]string{"unrelated"}, "", true},
	}
	for _, tt := range cases {
		got, err := Select(inv, tt.features, Options{})
		if tt.wantErr {
			if err == nil {
				t.Errorf("Select(%v): expected error, got %q", tt.features, got)
			}
			continue
		}
		if err != nil {
			t.Errorf("Select(%v): %v", tt.features, err)
			continue
		}
		if got != tt.want {
			t.Errorf("Select(%v) = %q, want %q", tt.features, got, tt.want)
		}
	}
}
