// Package backend defines the narrow contract the interpreter core
// expects from the 2D vector rendering surface: path construction,
// painting, color, line style, matrix manipulation, text and page/output.
// The core never touches pixels — everything below this interface is an
// external collaborator out of its scope.
//
// internal/backend/pdfsurface provides the concrete implementation built
// on seehuhn.de/go/pdf.
package backend

// Matrix is a 2D affine transform [a b c d e f] with
// x' = a*x + c*y + e, y' = b*x + d*y + f — the PostScript convention.
type Matrix [6]float64

// LineCap and LineJoin mirror the PostScript integer encodings (0/1/2).
type LineCap int
type LineJoin int

const (
	CapButt LineCap = iota
	CapRound
	CapSquare
)

const (
	JoinMiter LineJoin = iota
	JoinRound
	JoinBevel
)

// Slant mirrors value.Slant without creating an import cycle; the font
// package translates between the two.
type Slant int

const (
	SlantNormal Slant = iota
	SlantItalic
	SlantOblique
)

// Surface is the full backend contract.
type Surface interface {
	// Path construction.
	NewPath()
	MoveTo(x, y float64)
	LineTo(x, y float64)
	CurveTo(x1, y1, x2, y2, x3, y3 float64)
	ClosePath()
	Arc(cx, cy, r, angle1, angle2 float64, negative bool)
	Rectangle(x, y, w, h float64)
	FlattenPath()

	// Painting.
	Stroke()
	Fill(evenOdd bool)
	Clip(evenOdd bool)
	ErasePage()

	// Line and fill style.
	SetLineWidth(w float64)
	SetLineCap(c LineCap)
	SetLineJoin(j LineJoin)
	SetMiterLimit(m float64)
	SetFlatness(tolerance float64)
	SetDash(pattern []float64, phase float64)
	SetSourceRGB(r, g, b float64)

	// Matrix.
	SetMatrix(m Matrix)
	GetMatrix() Matrix
	Translate(x, y float64)
	Scale(x, y float64)
	Rotate(radians float64)

	// Text.
	SelectFace(face string, slant Slant, bold bool) error
	SetFontSize(size float64)
	ShowText(s string) error
	TextPath(s string) error
	TextExtents(s string) (xAdvance, yAdvance float64, err error)

	// Backend-local state stack, used for gsave/grestore and the
	// bracketed save/restore around rectfill/rectstroke.
	Save()
	Restore()

	// Page lifecycle.
	ShowPage()
	WriteTo(path string) error
}
