package font

import "testing"

func TestAdvanceWidthScalesWithSize(t *testing.T) {
	small, err := Shared().AdvanceWidth("Hello", 10, false, false)
	if err != nil {
		t.Fatal(err)
	}
	large, err := Shared().AdvanceWidth("Hello", 20, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if large <= small {
		t.Fatalf("AdvanceWidth at size 20 (%v) should exceed size 10 (%v)", large, small)
	}
}

func TestAdvanceWidthLongerStringIsWider(t *testing.T) {
	short, err := Shared().AdvanceWidth("I", 12, false, false)
	if err != nil {
		t.Fatal(err)
	}
	long, err := Shared().AdvanceWidth("IIIIIIIIII", 12, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if long <= short {
		t.Fatalf("a 10-character string (%v) should be wider than 1 character (%v)", long, short)
	}
}

func TestAdvanceWidthEmptyStringIsZero(t *testing.T) {
	w, err := Shared().AdvanceWidth("", 12, false, false)
	if err != nil {
		t.Fatal(err)
	}
	if w != 0 {
		t.Fatalf("AdvanceWidth(\"\") = %v, want 0", w)
	}
}

func TestAdvanceWidthCachesPerStyle(t *testing.T) {
	if _, err := Shared().AdvanceWidth("x", 10, true, false); err != nil {
		t.Fatal(err)
	}
	if _, err := Shared().AdvanceWidth("x", 10, true, false); err != nil {
		t.Fatal(err)
	}
	if _, err := Shared().AdvanceWidth("x", 10, true, true); err != nil {
		t.Fatal(err)
	}
	if Shared().cache[true][false] == nil || Shared().cache[true][true] == nil {
		t.Fatal("bold and bold-italic faces should both be cached after use")
	}
}
