package opstack

import (
	"testing"

	"eps2pdf/internal/value"
)

func TestPushPopOrder(t *testing.T) {
	s := New()
	s.Push(value.Int(1))
	s.Push(value.Int(2))
	v, err := s.Pop()
	if err != nil || v.Num != 2 {
		t.Fatalf("Pop() = %v, %v, want 2", v, err)
	}
	v, err = s.Pop()
	if err != nil || v.Num != 1 {
		t.Fatalf("Pop() = %v, %v, want 1", v, err)
	}
	if _, err := s.Pop(); err == nil {
		t.Fatal("expected underflow on empty stack")
	}
}

func TestPopNPreservesPushOrder(t *testing.T) {
	s := New()
	for i := 1; i <= 3; i++ {
		s.Push(value.Int(int64(i)))
	}
	items, err := s.PopN(3)
	if err != nil {
		t.Fatal(err)
	}
	for i, want := range []int64{1, 2, 3} {
		if int64(items[i].Num) != want {
			t.Errorf("items[%d] = %v, want %d", i, items[i].Num, want)
		}
	}
}

func TestCountToMarkAndClearToMark(t *testing.T) {
	s := New()
	s.Push(value.Value{Kind: value.MarkPlain})
	s.Push(value.Int(1))
	s.Push(value.Int(2))
	if n := s.CountToMark(); n != 2 {
		t.Fatalf("CountToMark() = %d, want 2", n)
	}
	if _, err := s.PopToMark(); err != nil {
		t.Fatal(err)
	}
	if s.Count() != 0 {
		t.Fatalf("Count() after PopToMark = %d, want 0", s.Count())
	}
	if n := s.CountToMark(); n != NotFound {
		t.Fatalf("CountToMark() after drain = %d, want NotFound", n)
	}
}

func TestRoll(t *testing.T) {
	s := New()
	for i := 1; i <= 4; i++ {
		s.Push(value.Int(int64(i)))
	}
	// 4 items [1 2 3 4], roll 4 1 -> [4 1 2 3] front-to-back bottom-to-top.
	if err := s.Roll(4, 1); err != nil {
		t.Fatal(err)
	}
	want := []int64{4, 1, 2, 3}
	for i, w := range want {
		v, err := s.Peek(3 - i)
		if err != nil {
			t.Fatal(err)
		}
		if int64(v.Num) != w {
			t.Errorf("after roll, position %d = %v, want %d", i, v.Num, w)
		}
	}
}

func TestOverflow(t *testing.T) {
	s := New()
	for i := 0; i < MaxDepth; i++ {
		if err := s.Push(value.Int(0)); err != nil {
			t.Fatalf("unexpected overflow at %d", i)
		}
	}
	if err := s.Push(value.Int(0)); err == nil {
		t.Fatal("expected overflow past MaxDepth")
	}
}
