package value

import "testing"

func TestEq(t *testing.T) {
	cases := []struct {
		name string
		a, b Value
		want bool
	}{
		{"int-real", Int(3), Float(3), true},
		{"int-diff", Int(3), Int(4), false},
		{"strings-equal", mustString(t, "foo"), mustString(t, "foo"), true},
		{"strings-differ", mustString(t, "foo"), mustString(t, "bar"), false},
		{"bool-equal", Boolean(true), Boolean(true), true},
		{"null-null", Nil(), Nil(), true},
		{"kind-mismatch", Nil(), Boolean(false), false},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := Eq(c.a, c.b); got != c.want {
				t.Errorf("Eq(%v, %v) = %v, want %v", c.a, c.b, got, c.want)
			}
		})
	}
}

func mustString(t *testing.T, s string) Value {
	t.Helper()
	so, err := NewString([]byte(s), TagText, Local)
	if err != nil {
		t.Fatal(err)
	}
	return Value{Kind: TextString, Obj: so}
}

func TestCmpNumbers(t *testing.T) {
	c, err := Cmp("lt", Int(1), Int(2))
	if err != nil || c >= 0 {
		t.Fatalf("Cmp(1,2) = %d, %v", c, err)
	}
}

func TestCmpTypeMismatch(t *testing.T) {
	if _, err := Cmp("lt", Int(1), Boolean(true)); err == nil {
		t.Fatal("expected typecheck error comparing number to boolean")
	}
}

func TestIsMatrix(t *testing.T) {
	arr, err := NewArray(6, false, Local)
	if err != nil {
		t.Fatal(err)
	}
	for i := range arr.Elems {
		arr.Elems[i] = Float(float64(i))
	}
	v := Value{Kind: ArrayKind, Obj: arr}
	if !v.IsMatrix() {
		t.Fatal("6-element numeric array should be a matrix")
	}
	arr.Elems[0] = mustString(t, "x")
	if v.IsMatrix() {
		t.Fatal("array with a non-numeric element should not be a matrix")
	}
}

func TestCloneArrayIsDeep(t *testing.T) {
	inner, _ := NewArray(1, false, Local)
	inner.Elems[0] = Int(1)
	outer := &ArrayObject{Elems: []Value{{Kind: ArrayKind, Obj: inner}}, Alloc: Local}
	src := Value{Kind: ArrayKind, Obj: outer}

	cloned := Clone(src, Local)
	clonedInner := cloned.AsArray().Elems[0].AsArray()
	clonedInner.Elems[0] = Int(99)

	if inner.Elems[0].Num != 1 {
		t.Fatalf("mutating the clone's nested array leaked into the source: %v", inner.Elems[0].Num)
	}
}

func TestDictGetPutCanonicalKeys(t *testing.T) {
	d := NewDict(Local)
	key := mustString(t, "count")
	if err := d.Put(key, Int(5)); err != nil {
		t.Fatal(err)
	}
	v, ok := d.Get(key)
	if !ok || v.Num != 5 {
		t.Fatalf("Get after Put = %v, %v", v, ok)
	}
	if err := d.Put(Int(1), Boolean(true)); err != nil {
		t.Fatal(err)
	}
	v, ok = d.Get(Int(1))
	if !ok || v.Flag != true {
		t.Fatalf("numeric key round trip failed: %v, %v", v, ok)
	}
}

func TestFormatNumber(t *testing.T) {
	if got := FormatNumber(Int(5)); got != "5" {
		t.Errorf("FormatNumber(Int(5)) = %q, want 5", got)
	}
	if got := FormatNumber(Float(2.5)); got != "2.5" {
		t.Errorf("FormatNumber(Float(2.5)) = %q, want 2.5", got)
	}
}
