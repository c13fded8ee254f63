package tasl_test

import (
	"testing"

	"github.com/reoring/tasl"
	"github.com/reoring/tasl/literal"
)

// TestProduct_KeyOrderIsByteWise pins the canonical component order: plain
// byte comparison, so upper case sorts before lower case and a prefix sorts
// before its extensions.
func TestProduct_KeyOrderIsByteWise(t *testing.T) {
	p := tasl.NewProduct(map[string]tasl.Type{
		"ex:b":  tasl.NewURI(),
		"ex:a":  tasl.NewURI(),
		"ex:B":  tasl.NewURI(),
		"ex:ab": tasl.NewURI(),
	})
	want := []string{"ex:B", "ex:a", "ex:ab", "ex:b"}
	got := p.Keys()
	if len(got) != len(want) {
		t.Fatalf("keys=%v", got)
	}
	for i := range want {
		if got[i] != want[i] || p.Key(i) != want[i] {
			t.Fatalf("key %d: got %q want %q", i, got[i], want[i])
		}
		if r, ok := p.Rank(want[i]); !ok || r != i {
			t.Fatalf("rank(%q)=%d,%v want %d", want[i], r, ok, i)
		}
	}
	if _, ok := p.Rank("ex:zzz"); ok {
		t.Fatalf("rank of a missing key should fail")
	}
}

func TestProduct_KeysReturnsCopy(t *testing.T) {
	p := tasl.NewProduct(map[string]tasl.Type{"ex:a": tasl.NewURI(), "ex:b": tasl.NewURI()})
	ks := p.Keys()
	ks[0] = "mutated"
	if p.Key(0) != "ex:a" {
		t.Fatalf("Keys leaked internal storage")
	}
}

func TestCoproduct_Lookup(t *testing.T) {
	c := tasl.NewCoproduct(map[string]tasl.Type{
		"ex:none": tasl.NewProduct(nil),
		"ex:some": tasl.NewLiteral(literal.Integer),
	})
	if c.Len() != 2 {
		t.Fatalf("len=%d", c.Len())
	}
	opt, ok := c.Lookup("ex:some")
	if !ok || opt.Kind() != tasl.KindLiteral {
		t.Fatalf("lookup ex:some = %v,%v", opt, ok)
	}
	if r, _ := c.Rank("ex:some"); r != 1 || c.Option(r) != opt {
		t.Fatalf("rank/option disagree")
	}
	if _, ok := c.Lookup("ex:other"); ok {
		t.Fatalf("unexpected option")
	}
}

func TestLiteral_Class(t *testing.T) {
	if c := tasl.NewLiteral(literal.Double).Class(); c != literal.ClassDouble {
		t.Fatalf("double class = %s", c)
	}
	// unknown datatypes are carried as strings
	l := tasl.NewLiteral("http://example.com/custom")
	if l.Class() != literal.ClassString || l.Datatype() != "http://example.com/custom" {
		t.Fatalf("custom literal = %s %s", l.Class(), l.Datatype())
	}
}

func TestKind_String(t *testing.T) {
	cases := map[tasl.Kind]string{
		tasl.KindReference: "reference",
		tasl.KindURI:       "uri",
		tasl.KindLiteral:   "literal",
		tasl.KindProduct:   "product",
		tasl.KindCoproduct: "coproduct",
	}
	for k, want := range cases {
		if k.String() != want {
			t.Fatalf("%d: got %q want %q", k, k.String(), want)
		}
	}
}

func TestTypeString(t *testing.T) {
	ty := tasl.NewProduct(map[string]tasl.Type{
		"ex:name":  tasl.NewLiteral(literal.String),
		"ex:knows": tasl.NewReference("ex:Person"),
		"ex:tag":   tasl.NewCoproduct(map[string]tasl.Type{"ex:id": tasl.NewURI()}),
	})
	want := "{<ex:knows> -> * <ex:Person>, <ex:name> -> <" + literal.String + ">, <ex:tag> -> [<ex:id> <- <>]}"
	if got := tasl.TypeString(ty); got != want {
		t.Fatalf("got  %s\nwant %s", got, want)
	}
}
