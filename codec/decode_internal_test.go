package codec

import (
	"testing"

	"github.com/reoring/tasl"
	"github.com/reoring/tasl/literal"
)

func TestMinSize(t *testing.T) {
	cases := []struct {
		t    tasl.Type
		want int
	}{
		{tasl.NewURI(), 1},
		{tasl.NewReference("ex:a"), 1},
		{tasl.NewLiteral(literal.Double), 8},
		{tasl.NewLiteral(literal.String), 1},
		{tasl.NewProduct(nil), 0},
		{tasl.NewProduct(map[string]tasl.Type{
			"ex:a": tasl.NewLiteral(literal.Int),
			"ex:b": tasl.NewProduct(nil),
			"ex:c": tasl.NewCoproduct(map[string]tasl.Type{"ex:x": tasl.NewProduct(nil)}),
		}), 5},
	}
	for _, tc := range cases {
		if got := minSize(tc.t); got != tc.want {
			t.Fatalf("minSize(%s)=%d want %d", tasl.TypeString(tc.t), got, tc.want)
		}
	}
}

func TestCheckCount(t *testing.T) {
	unit := tasl.NewProduct(nil)
	uri := tasl.NewURI()
	cases := []struct {
		name string
		opt  Options
		t    tasl.Type
		n    int
		ok   bool
	}{
		{"zero-width at cap", Options{}, unit, maxZeroWidth, true},
		{"zero-width over cap", Options{}, unit, maxZeroWidth + 1, false},
		{"sized over cap", Options{}, uri, maxZeroWidth + 1, true},
		{"MaxValues lifts cap", Options{MaxValues: maxZeroWidth + 1}, unit, maxZeroWidth + 1, true},
		{"MaxValues applies to sized", Options{MaxValues: 2}, uri, 3, false},
	}
	for _, tc := range cases {
		err := New(tc.opt).checkCount([]string{"ex:a"}, -1, tc.t, tc.n)
		if tc.ok != (err == nil) {
			t.Fatalf("%s: unexpected result %v", tc.name, err)
		}
		if err != nil && !tasl.HasCode(err, tasl.CodeTooBig) {
			t.Fatalf("%s: expected too_big, got %v", tc.name, err)
		}
	}
}
