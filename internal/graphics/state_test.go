package graphics

import (
	"testing"

	"eps2pdf/internal/backend"
)

// fakeSurface is a minimal backend.Surface recording calls, used so State
// can be exercised without pulling in the PDF-writing backend.
type fakeSurface struct {
	matrix   Matrix
	saves    int
	restores int
	stroked  bool
	filled   bool
}

func newFakeSurface() *fakeSurface { return &fakeSurface{matrix: Identity()} }

func (f *fakeSurface) NewPath()                                          {}
func (f *fakeSurface) MoveTo(x, y float64)                               {}
func (f *fakeSurface) LineTo(x, y float64)                               {}
func (f *fakeSurface) CurveTo(x1, y1, x2, y2, x3, y3 float64)            {}
func (f *fakeSurface) ClosePath()                                        {}
func (f *fakeSurface) Arc(cx, cy, r, a1, a2 float64, negative bool)       {}
func (f *fakeSurface) Rectangle(x, y, w, h float64)                       {}
func (f *fakeSurface) FlattenPath()                                      {}
func (f *fakeSurface) Stroke()                                           { f.stroked = true }
func (f *fakeSurface) Fill(evenOdd bool)                                 { f.filled = true }
func (f *fakeSurface) Clip(evenOdd bool)                                 {}
func (f *fakeSurface) ErasePage()                                        {}
func (f *fakeSurface) SetLineWidth(w float64)                            {}
func (f *fakeSurface) SetLineCap(c backend.LineCap)                      {}
func (f *fakeSurface) SetLineJoin(j backend.LineJoin)                    {}
func (f *fakeSurface) SetMiterLimit(m float64)                           {}
func (f *fakeSurface) SetFlatness(tolerance float64)                     {}
func (f *fakeSurface) SetDash(pattern []float64, phase float64)          {}
func (f *fakeSurface) SetSourceRGB(r, g, b float64)                      {}
func (f *fakeSurface) SetMatrix(m Matrix)                                { f.matrix = m }
func (f *fakeSurface) GetMatrix() Matrix                                 { return f.matrix }
func (f *fakeSurface) Translate(x, y float64)                            {}
func (f *fakeSurface) Scale(x, y float64)                                {}
func (f *fakeSurface) Rotate(radians float64)                            {}
func (f *fakeSurface) SelectFace(face string, slant backend.Slant, bold bool) error { return nil }
func (f *fakeSurface) SetFontSize(size float64)                          {}
func (f *fakeSurface) ShowText(s string) error                           { return nil }
func (f *fakeSurface) TextPath(s string) error                           { return nil }
func (f *fakeSurface) TextExtents(s string) (float64, float64, error)    { return 0, 0, nil }
func (f *fakeSurface) Save()                                             { f.saves++ }
func (f *fakeSurface) Restore()                                          { f.restores++ }
func (f *fakeSurface) ShowPage()                                         {}
func (f *fakeSurface) WriteTo(path string) error                         { return nil }

func TestNewSetsDefaultLineStyle(t *testing.T) {
	st := New(newFakeSurface(), 612, 792)
	if st.LineWidth() != 1 {
		t.Errorf("LineWidth() = %v, want 1", st.LineWidth())
	}
	if st.MiterLimit() != 10 {
		t.Errorf("MiterLimit() = %v, want 10", st.MiterLimit())
	}
}

func TestMoveToSetsCurrentPoint(t *testing.T) {
	st := New(newFakeSurface(), 612, 792)
	st.MoveTo(10, 20)
	x, y, has := st.CurrentPoint()
	if !has || x != 10 || y != 20 {
		t.Fatalf("CurrentPoint() = %v,%v,%v, want 10,20,true", x, y, has)
	}
}

func TestLineToWithoutCurrentPointErrors(t *testing.T) {
	st := New(newFakeSurface(), 612, 792)
	if err := st.LineTo("lineto", 1, 1); err == nil {
		t.Fatal("expected nocurrentpoint error")
	}
}

func TestRLineToAccumulatesFromCurrentPoint(t *testing.T) {
	st := New(newFakeSurface(), 612, 792)
	st.MoveTo(5, 5)
	if err := st.RLineTo("rlineto", 3, 4); err != nil {
		t.Fatal(err)
	}
	x, y, _ := st.CurrentPoint()
	if x != 8 || y != 9 {
		t.Fatalf("CurrentPoint() after rlineto = %v,%v, want 8,9", x, y)
	}
}

func TestGSaveGRestoreRoundTripsLineStyle(t *testing.T) {
	fake := newFakeSurface()
	st := New(fake, 612, 792)
	st.SetLineWidth(5)
	st.MoveTo(1, 1)
	st.GSave()
	st.SetLineWidth(9)
	st.MoveTo(50, 50)
	if err := st.GRestore(); err != nil {
		t.Fatal(err)
	}
	if st.LineWidth() != 5 {
		t.Fatalf("LineWidth() after grestore = %v, want 5", st.LineWidth())
	}
	x, y, has := st.CurrentPoint()
	if !has || x != 1 || y != 1 {
		t.Fatalf("CurrentPoint() after grestore = %v,%v,%v, want 1,1,true", x, y, has)
	}
	if fake.saves != 1 || fake.restores != 1 {
		t.Fatalf("backend saves/restores = %d/%d, want 1/1", fake.saves, fake.restores)
	}
}

func TestGRestoreOnEmptyStackIsNoop(t *testing.T) {
	st := New(newFakeSurface(), 612, 792)
	if err := st.GRestore(); err != nil {
		t.Fatal("grestore with no matching gsave should be a no-op, not an error")
	}
}

func TestSnapshotRestoreRoundTrip(t *testing.T) {
	st := New(newFakeSurface(), 612, 792)
	st.MoveTo(1, 2)
	snap := Snapshot(st)
	st.MoveTo(99, 99)
	if err := Restore(st, snap); err != nil {
		t.Fatal(err)
	}
	x, y, _ := st.CurrentPoint()
	if x != 1 || y != 2 {
		t.Fatalf("CurrentPoint() after Restore = %v,%v, want 1,2", x, y)
	}
}

func TestRestoreRejectsForeignPayload(t *testing.T) {
	st := New(newFakeSurface(), 612, 792)
	if err := Restore(st, "not a snapshot"); err == nil {
		t.Fatal("expected a typecheck error restoring a non-snapshot payload")
	}
}

func TestConcatComposesOntoCTM(t *testing.T) {
	st := New(newFakeSurface(), 612, 792)
	before := st.CTM()
	st.Concat(TranslateMatrix(10, 0))
	after := st.CTM()
	if after == before {
		t.Fatal("Concat did not change the CTM")
	}
}

func TestRectFillRestoresSurroundingPath(t *testing.T) {
	fake := newFakeSurface()
	st := New(fake, 612, 792)
	st.MoveTo(3, 3)
	st.RectFillOrStroke(0, 0, 10, 10, true)
	x, y, has := st.CurrentPoint()
	if !has || x != 3 || y != 3 {
		t.Fatalf("CurrentPoint() after rectfill = %v,%v,%v, want 3,3,true", x, y, has)
	}
	if !fake.filled {
		t.Fatal("rectfill did not call Fill on the backend")
	}
}
