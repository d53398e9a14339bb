package dictstack

import (
	"testing"

	"eps2pdf/internal/value"
)

func nameVal(s string) value.Value {
	so, _ := value.NewString([]byte(s), value.TagName, value.Local)
	return value.Value{Kind: value.Name, Obj: so}
}

func newTestStack() *Stack {
	return New(func(name string) (value.Value, bool) {
		if name == "moveto" {
			return value.OperatorValue("moveto"), true
		}
		return value.Value{}, false
	}, func() int { return 1 })
}

func TestDefFindLocal(t *testing.T) {
	s := newTestStack()
	if err := s.Def(nameVal("x"), value.Int(42)); err != nil {
		t.Fatal(err)
	}
	v, ok := s.Find("x")
	if !ok || v.Num != 42 {
		t.Fatalf("Find(x) = %v, %v", v, ok)
	}
}

func TestBeginShadowsLocal(t *testing.T) {
	s := newTestStack()
	s.Def(nameVal("x"), value.Int(1))
	d := value.NewDict(value.Local)
	d.Put(nameVal("x"), value.Int(2))
	s.Begin(d)
	v, ok := s.Find("x")
	if !ok || v.Num != 2 {
		t.Fatalf("Find(x) after begin = %v, %v, want 2", v, ok)
	}
	if err := s.End(); err != nil {
		t.Fatal(err)
	}
	v, ok = s.Find("x")
	if !ok || v.Num != 1 {
		t.Fatalf("Find(x) after end = %v, %v, want 1", v, ok)
	}
}

func TestEndUnderflow(t *testing.T) {
	s := newTestStack()
	if err := s.End(); err == nil {
		t.Fatal("expected dictstackunderflow ending with no user dict pushed")
	}
}

func TestFindFallsBackToSystemDict(t *testing.T) {
	s := newTestStack()
	v, ok := s.Find("moveto")
	if !ok || v.Kind != value.Operator {
		t.Fatalf("Find(moveto) = %v, %v, want operator", v, ok)
	}
}

func TestCloneRestoreRoundTrip(t *testing.T) {
	s := newTestStack()
	s.Def(nameVal("x"), value.Int(1))
	snap := Clone(s)

	s.Def(nameVal("x"), value.Int(2))
	d := value.NewDict(value.Local)
	s.Begin(d)

	if err := Restore(s, snap); err != nil {
		t.Fatal(err)
	}
	v, ok := s.Find("x")
	if !ok || v.Num != 1 {
		t.Fatalf("Find(x) after restore = %v, %v, want 1", v, ok)
	}
	if err := s.End(); err == nil {
		t.Fatal("expected the pushed user dict to be gone after restore")
	}
}
