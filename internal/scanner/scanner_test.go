package scanner

import (
	"io"
	"os"
	"path/filepath"
	"testing"
)

func scanAll(t *testing.T, src string) []Token {
	t.Helper()
	sc := NewFromBytes([]byte(src))
	var toks []Token
	for {
		tok, err := sc.NextToken()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("NextToken(%q) = %v", src, err)
		}
		toks = append(toks, tok)
	}
	return toks
}

func oneToken(t *testing.T, src string) Token {
	t.Helper()
	toks := scanAll(t, src)
	if len(toks) != 1 {
		t.Fatalf("scanAll(%q) = %d tokens, want 1: %+v", src, len(toks), toks)
	}
	return toks[0]
}

func TestNumbers(t *testing.T) {
	cases := []struct {
		src      string
		num      float64
		isInt    bool
		wantKind Kind
	}{
		{"42", 42, true, Number},
		{"-17", -17, true, Number},
		{"+3", 3, true, Number},
		{"3.14", 3.14, false, Number},
		{"1.5e3", 1500, false, Number},
		{"8#17", 15, true, Number},
		{"16#FF", 255, true, Number},
	}
	for _, c := range cases {
		tok := oneToken(t, c.src)
		if tok.Kind != c.wantKind {
			t.Fatalf("%q: Kind = %v, want %v", c.src, tok.Kind, c.wantKind)
		}
		if tok.Num != c.num || tok.IsInt != c.isInt {
			t.Errorf("%q: Num=%v IsInt=%v, want Num=%v IsInt=%v", c.src, tok.Num, tok.IsInt, c.num, c.isInt)
		}
	}
}

func TestMalformedNumberFallsBackToName(t *testing.T) {
	tok := oneToken(t, "3.1.4")
	if tok.Kind != NameTok || tok.Name != "3.1.4" {
		t.Fatalf("got %+v, want a name token for an unparseable numeric run", tok)
	}
}

func TestNames(t *testing.T) {
	tok := oneToken(t, "moveto")
	if tok.Kind != NameTok || tok.Name != "moveto" {
		t.Fatalf("got %+v, want NameTok moveto", tok)
	}
}

func TestLiteralAndConstant(t *testing.T) {
	lit := oneToken(t, "/foo")
	if lit.Kind != Literal || lit.Name != "foo" {
		t.Fatalf("got %+v, want Literal foo", lit)
	}
	con := oneToken(t, "//bar")
	if con.Kind != Constant || con.Name != "bar" {
		t.Fatalf("got %+v, want Constant bar", con)
	}
}

func TestTextStringNestedParensAndEscapes(t *testing.T) {
	tok := oneToken(t, `(a (b) c\d)`)
	if tok.Kind != TextString {
		t.Fatalf("got Kind = %v, want TextString", tok.Kind)
	}
	want := "a (b) cd"
	if string(tok.Str) != want {
		t.Errorf("Str = %q, want %q", tok.Str, want)
	}
}

func TestTextStringUnterminated(t *testing.T) {
	sc := NewFromBytes([]byte("(abc"))
	if _, err := sc.NextToken(); err == nil {
		t.Fatal("expected a scan error for an unterminated text string")
	}
}

func TestHexString(t *testing.T) {
	tok := oneToken(t, "<48656C6C6F>")
	if tok.Kind != HexString {
		t.Fatalf("Kind = %v, want HexString", tok.Kind)
	}
	if string(tok.Str) != "Hello" {
		t.Errorf("Str = %q, want Hello", tok.Str)
	}
}

func TestHexStringOddNibblePadsWithZero(t *testing.T) {
	tok := oneToken(t, "<48656C6C6>")
	if tok.Kind != HexString {
		t.Fatalf("Kind = %v, want HexString", tok.Kind)
	}
	want := "Hell" + string([]byte{0x60})
	if string(tok.Str) != want {
		t.Errorf("Str = %q, want %q", tok.Str, want)
	}
}

func TestDictDelimiters(t *testing.T) {
	toks := scanAll(t, "<< /a 1 >>")
	wantKinds := []Kind{DictOpen, Literal, Number, DictClose}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantKinds), toks)
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: Kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestLoneAngleCloseIsAScanError(t *testing.T) {
	sc := NewFromBytes([]byte(">"))
	if _, err := sc.NextToken(); err == nil {
		t.Fatal("expected a scan error for a bare '>' with no matching '<'")
	}
}

func TestArrayAndProcDelimiters(t *testing.T) {
	toks := scanAll(t, "[1 2] {3 4}")
	wantKinds := []Kind{ArrayOpen, Number, Number, ArrayClose, ProcOpen, Number, Number, ProcClose}
	if len(toks) != len(wantKinds) {
		t.Fatalf("got %d tokens, want %d: %+v", len(toks), len(wantKinds), toks)
	}
	for i, k := range wantKinds {
		if toks[i].Kind != k {
			t.Errorf("token %d: Kind = %v, want %v", i, toks[i].Kind, k)
		}
	}
}

func TestDscLineIsAToken(t *testing.T) {
	toks := scanAll(t, "%%BoundingBox: 0 0 100 100\nmoveto")
	if len(toks) != 2 {
		t.Fatalf("got %d tokens, want 2: %+v", len(toks), toks)
	}
	if toks[0].Kind != Dsc || toks[0].Name != "BoundingBox: 0 0 100 100" {
		t.Fatalf("got %+v, want a Dsc token", toks[0])
	}
	if toks[1].Kind != NameTok || toks[1].Name != "moveto" {
		t.Fatalf("got %+v, want NameTok moveto", toks[1])
	}
}

func TestPlainCommentIsSkipped(t *testing.T) {
	toks := scanAll(t, "% just a comment\nmoveto")
	if len(toks) != 1 || toks[0].Kind != NameTok {
		t.Fatalf("got %+v, want a single NameTok after the comment is dropped", toks)
	}
}

func TestLoadFileRejectsNonPostScript(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not-ps.txt")
	if err := os.WriteFile(path, []byte("hello world"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, _, _, err := LoadFile(path); err == nil {
		t.Fatal("expected an error loading a file without a %!PS signature")
	}
}

func TestLoadFileReadsBoundingBox(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.eps")
	src := "%!PS-Adobe-3.0 EPSF-3.0\n%%BoundingBox: 10 20 110 220\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	sc, width, height, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if width != 100 || height != 200 {
		t.Fatalf("width,height = %v,%v, want 100,200", width, height)
	}
	if sc == nil {
		t.Fatal("LoadFile returned a nil scanner")
	}
}

func TestLoadFileFallsBackToDefaultSize(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "in.eps")
	src := "%!PS-Adobe-3.0\nmoveto\n"
	if err := os.WriteFile(path, []byte(src), 0o644); err != nil {
		t.Fatal(err)
	}
	_, width, height, err := LoadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if width != DefaultWidth || height != DefaultHeight {
		t.Fatalf("width,height = %v,%v, want defaults %v,%v", width, height, DefaultWidth, DefaultHeight)
	}
}

func TestClearInputDrainsToNewline(t *testing.T) {
	sc := NewFromBytes([]byte("garbage here\nmoveto"))
	sc.ClearInput()
	tok, err := sc.NextToken()
	if err != nil {
		t.Fatal(err)
	}
	if tok.Kind != NameTok || tok.Name != "moveto" {
		t.Fatalf("got %+v, want NameTok moveto after ClearInput", tok)
	}
}
