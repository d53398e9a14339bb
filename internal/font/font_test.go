package font

import (
	"errors"
	"testing"

	"eps2pdf/internal/backend"
)

var errFaceUnavailable = errors.New("face unavailable")

func TestFindKnownName(t *testing.T) {
	d := Find("Helvetica-BoldOblique")
	if d.Face != "Helvetica" || d.Slant != backend.SlantOblique || !d.Bold {
		t.Fatalf("Find(Helvetica-BoldOblique) = %+v, want Helvetica/Oblique/bold", d)
	}
}

func TestFindUnknownFallsBackToTimesRoman(t *testing.T) {
	d := Find("SomeUnknownFont")
	if d.Name != "Times-Roman" || d.Face != "Times" || d.Bold || d.Slant != backend.SlantNormal {
		t.Fatalf("Find(unknown) = %+v, want the Times-Roman fallback", d)
	}
}

func TestScaleSetsSizeWithoutMutatingOriginal(t *testing.T) {
	base := Find("Courier")
	scaled := base.Scale(24)
	if scaled.Size != 24 {
		t.Fatalf("Scale(24).Size = %v, want 24", scaled.Size)
	}
	if base.Size != 1 {
		t.Fatalf("Scale mutated the receiver: base.Size = %v, want 1", base.Size)
	}
}

type fakeSurface struct {
	backend.Surface
	face  string
	slant backend.Slant
	bold  bool
	size  float64
	err   error
}

func (f *fakeSurface) SelectFace(face string, slant backend.Slant, bold bool) error {
	f.face, f.slant, f.bold = face, slant, bold
	return f.err
}

func (f *fakeSurface) SetFontSize(size float64) { f.size = size }

func TestCommitSelectsFaceAndSize(t *testing.T) {
	fake := &fakeSurface{}
	d := Find("Helvetica-Bold").Scale(18)
	if err := d.Commit(fake); err != nil {
		t.Fatal(err)
	}
	if fake.face != "Helvetica" || !fake.bold || fake.size != 18 {
		t.Fatalf("fake = %+v, want face Helvetica, bold, size 18", fake)
	}
}

func TestCommitPropagatesSelectFaceError(t *testing.T) {
	fake := &fakeSurface{err: errFaceUnavailable}
	if err := Find("Symbol").Commit(fake); err == nil {
		t.Fatal("expected an error when SelectFace fails")
	}
}
