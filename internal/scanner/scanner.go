package scanner

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"eps2pdf/internal/errors"
)

// MaxNameLen bounds a PostScript name.
const MaxNameLen = 127

const delimiters = " \t\n\r\f/{}[]()<>%"

func isDelimiter(b byte) bool { return strings.IndexByte(delimiters, b) >= 0 }
func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}
func isGraphic(b byte) bool { return b > 0x20 && b < 0x7f }
func isDigit(b byte) bool   { return b >= '0' && b <= '9' }
func isAlpha(b byte) bool   { return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') }

// Scanner reads bytes from a file or interactive stdin and yields Tokens.
// get/peek/unget keep a single-byte cursor so error positions stay
// meaningful.
type Scanner struct {
	br          *bufio.Reader
	pushback    []byte
	row, col    int
	interactive bool
	atEOF       bool
}

// NewInteractive wraps stdin for a prompt-driven REPL-style session.
func NewInteractive(r io.Reader) *Scanner {
	return &Scanner{br: bufio.NewReader(r), row: 1, interactive: true}
}

// NewFromBytes wraps an already-loaded buffer (used by LoadFile, and by
// tests that scan source held in memory).
func NewFromBytes(data []byte) *Scanner {
	return &Scanner{br: bufio.NewReader(bytes.NewReader(data)), row: 1}
}

func (s *Scanner) IsInteractive() bool { return s.interactive }
func (s *Scanner) IsEOF() bool         { return s.atEOF }

// ClearInput discards any partially read token by draining to the next
// newline, the way interactive error recovery skips the rest of a bad line.
func (s *Scanner) ClearInput() {
	for {
		b, err := s.get()
		if err != nil || b == '\n' {
			return
		}
	}
}

func (s *Scanner) get() (byte, error) {
	if n := len(s.pushback); n > 0 {
		b := s.pushback[n-1]
		s.pushback = s.pushback[:n-1]
		s.advance(b)
		return b, nil
	}
	b, err := s.br.ReadByte()
	if err != nil {
		if err == io.EOF {
			s.atEOF = true
		}
		return 0, err
	}
	s.advance(b)
	return b, nil
}

func (s *Scanner) unget(b byte) {
	s.pushback = append(s.pushback, b)
	if b == '\n' && s.row > 1 {
		s.row--
	} else if s.col > 0 {
		s.col--
	}
}

func (s *Scanner) advance(b byte) {
	if b == '\n' {
		s.row++
		s.col = 0
	} else {
		s.col++
	}
}

func (s *Scanner) peek() (byte, error) {
	b, err := s.get()
	if err != nil {
		return 0, err
	}
	s.unget(b)
	return b, nil
}

func (s *Scanner) scanErr(format string, args ...interface{}) error {
	return &errors.ScannerError{Row: s.row, Col: s.col, Message: fmt.Sprintf(format, args...)}
}

// NextToken returns the next token, or io.EOF once the stream is exhausted.
// EOF is a normal terminator, not an error.
func (s *Scanner) NextToken() (Token, error) {
	for {
		b, err := s.get()
		if err != nil {
			return Token{Kind: EOF}, io.EOF
		}
		row, col := s.row, s.col

		switch {
		case isSpace(b):
			continue
		case b == '%':
			tok, ok, err := s.readComment()
			if err != nil {
				return Token{}, err
			}
			if ok {
				tok.Row, tok.Col = row, col
				return tok, nil
			}
			continue
		case b == '/':
			return s.readLiteralOrConstant(row, col)
		case b == '{':
			return Token{Kind: ProcOpen, Row: row, Col: col}, nil
		case b == '}':
			return Token{Kind: ProcClose, Row: row, Col: col}, nil
		case b == '[':
			return Token{Kind: ArrayOpen, Row: row, Col: col}, nil
		case b == ']':
			return Token{Kind: ArrayClose, Row: row, Col: col}, nil
		case b == '<':
			return s.readAngleOpen(row, col)
		case b == '>':
			return s.readAngleClose(row, col)
		case b == '(':
			return s.readTextString(row, col)
		case b == ')':
			return Token{}, s.scanErr("unexpected ')'")
		case isDigit(b), b == '+', b == '-', b == '.':
			return s.readNumberOrName(b, row, col)
		case isAlpha(b):
			return s.readName(b, row, col)
		case isGraphic(b):
			return s.readName(b, row, col)
		default:
			return Token{}, s.scanErr("invalid character 0x%02x", b)
		}
	}
}

func (s *Scanner) readComment() (Token, bool, error) {
	nb, err := s.peek()
	isDsc := err == nil && nb == '%'
	if isDsc {
		s.get()
	}
	var line []byte
	for {
		b, err := s.get()
		if err != nil || b == '\n' {
			break
		}
		line = append(line, b)
	}
	if isDsc {
		return Token{Kind: Dsc, Name: strings.TrimSpace(string(line))}, true, nil
	}
	return Token{}, false, nil
}

func (s *Scanner) readRawRun(first byte) string {
	buf := []byte{first}
	for {
		b, err := s.get()
		if err != nil {
			break
		}
		if isDelimiter(b) {
			s.unget(b)
			break
		}
		if !isGraphic(b) {
			s.unget(b)
			break
		}
		buf = append(buf, b)
	}
	return string(buf)
}

func (s *Scanner) readName(first byte, row, col int) (Token, error) {
	name := s.readRawRun(first)
	if len(name) > MaxNameLen {
		return Token{}, s.scanErr("name too long: %d, max is %d: %s...", len(name), MaxNameLen, name[:MaxNameLen])
	}
	return Token{Kind: NameTok, Name: name, Row: row, Col: col}, nil
}

func (s *Scanner) readLiteralOrConstant(row, col int) (Token, error) {
	nb, err := s.peek()
	constant := err == nil && nb == '/'
	if constant {
		s.get()
	}
	var name string
	b, err := s.get()
	if err == nil && !isDelimiter(b) && isGraphic(b) {
		name = s.readRawRun(b)
	} else if err == nil {
		s.unget(b)
	}
	if len(name) > MaxNameLen {
		return Token{}, s.scanErr("name too long: %d, max is %d: %s...", len(name), MaxNameLen, name[:MaxNameLen])
	}
	if constant && name == "" {
		return Token{}, s.scanErr("missing name after constant //")
	}
	if constant {
		return Token{Kind: Constant, Name: name, Row: row, Col: col}, nil
	}
	return Token{Kind: Literal, Name: name, Row: row, Col: col}, nil
}

var numCharset = "0123456789.eE+-#"

func isNumberChar(b byte) bool { return strings.IndexByte(numCharset, b) >= 0 }

func (s *Scanner) readNumberOrName(first byte, row, col int) (Token, error) {
	raw := s.readRawRun(first)
	if num, isInt, ok := parseNumber(raw); ok {
		return Token{Kind: Number, Num: num, IsInt: isInt, Row: row, Col: col}, nil
	}
	if len(raw) > MaxNameLen {
		return Token{}, s.scanErr("name too long: %d, max is %d: %s...", len(raw), MaxNameLen, raw[:MaxNameLen])
	}
	return Token{Kind: NameTok, Name: raw, Row: row, Col: col}, nil
}

// parseNumber recognizes plain integers and reals, and base#digits for
// 2<=base<=36. A run that does not fully parse as one of these falls back
// to a name.
func parseNumber(raw string) (num float64, isInt bool, ok bool) {
	if raw == "" || raw == "+" || raw == "-" || raw == "." {
		return 0, false, false
	}
	hasBase := strings.IndexByte(raw, '#') >= 0
	for _, c := range []byte(raw) {
		if !isNumberChar(c) && !(hasBase && isAlpha(c)) {
			return 0, false, false
		}
	}
	if idx := strings.IndexByte(raw, '#'); idx >= 0 {
		baseStr, digits := raw[:idx], raw[idx+1:]
		base, err := strconv.Atoi(baseStr)
		if err != nil || base < 2 || base > 36 || digits == "" {
			return 0, false, false
		}
		v, err := strconv.ParseInt(digits, base, 64)
		if err != nil {
			return 0, false, false
		}
		return float64(v), true, true
	}
	if strings.ContainsAny(raw, ".eE") {
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return 0, false, false
		}
		return v, false, true
	}
	v, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, false, false
	}
	return float64(v), true, true
}

func (s *Scanner) readAngleOpen(row, col int) (Token, error) {
	nb, err := s.peek()
	if err == nil && nb == '<' {
		s.get()
		return Token{Kind: DictOpen, Row: row, Col: col}, nil
	}
	if err == nil && nb == '~' {
		return Token{}, s.scanErr("Base-85 ASCII strings are not supported")
	}
	return s.readHexString(row, col)
}

func (s *Scanner) readAngleClose(row, col int) (Token, error) {
	nb, err := s.peek()
	if err == nil && nb == '>' {
		s.get()
		return Token{Kind: DictClose, Row: row, Col: col}, nil
	}
	return Token{}, s.scanErr("missing '<'")
}

func (s *Scanner) readHexString(row, col int) (Token, error) {
	var out []byte
	var nibble [2]byte
	count := 0
	for {
		b, err := s.get()
		if err != nil {
			return Token{}, s.scanErr("unexpected end of file in hex string")
		}
		switch {
		case isHexDigit(b):
			nibble[count] = b
			count++
			if count == 2 {
				v, _ := strconv.ParseUint(string(nibble[:]), 16, 8)
				out = append(out, byte(v))
				count = 0
			}
		case b == '>':
			if count == 1 {
				v, _ := strconv.ParseUint(string([]byte{nibble[0], '0'}), 16, 8)
				out = append(out, byte(v))
			}
			return Token{Kind: HexString, Str: out, Row: row, Col: col}, nil
		default:
			if !isSpace(b) {
				return Token{}, s.scanErr("character %q is not a hex digit", rune(b))
			}
		}
	}
}

func isHexDigit(b byte) bool {
	return isDigit(b) || (b >= 'a' && b <= 'f') || (b >= 'A' && b <= 'F')
}

// readTextString handles nested parens, minimal escaping (backslash
// dropped, next byte still processed on its own), spaces collapsed to ' ',
// and any other non-graphic byte is a scan error.
func (s *Scanner) readTextString(row, col int) (Token, error) {
	var out []byte
	depth := 1
	for {
		b, err := s.get()
		if err != nil {
			return Token{}, s.scanErr("text string has no matching ')'")
		}
		switch {
		case b == '(':
			depth++
			out = append(out, '(')
		case b == ')':
			depth--
			if depth == 0 {
				return Token{Kind: TextString, Str: out, Row: row, Col: col}, nil
			}
			out = append(out, ')')
		case isGraphic(b):
			if b != '\\' {
				out = append(out, b)
			}
		case isSpace(b):
			out = append(out, ' ')
		default:
			return Token{}, s.scanErr("invalid character in string: %d", b)
		}
	}
}

// LoadFile verifies the %!PS signature, pre-scans %%BoundingBox: to size
// the page, then rewinds so tokenization starts from the top of the file.
// The file is small EPS/PostScript source, so it is slurped into memory
// rather than seeked on the OS handle.
func LoadFile(path string) (*Scanner, float64, float64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, 0, 0, fmt.Errorf("unable to open file: %s", path)
	}
	if !bytes.HasPrefix(data, []byte("%!PS")) {
		return nil, 0, 0, fmt.Errorf("input file is neither a PostScript nor an EPS file")
	}
	width, height, _ := findBoundingBox(data)
	return NewFromBytes(data), width, height, nil
}

// DefaultWidth and DefaultHeight size a US Letter page, used whenever no
// bounding box is known: a missing or `(atend)` %%BoundingBox, or an
// interactive session with no file to scan one from.
const DefaultWidth, DefaultHeight = 612.0, 792.0

func findBoundingBox(data []byte) (width, height float64, ok bool) {
	sc := bufio.NewScanner(bytes.NewReader(data))
	for sc.Scan() {
		line := sc.Text()
		if !strings.HasPrefix(line, "%%BoundingBox:") {
			continue
		}
		rest := strings.TrimSpace(strings.TrimPrefix(line, "%%BoundingBox:"))
		if rest == "(atend)" {
			return DefaultWidth, DefaultHeight, false
		}
		var x1, y1, x2, y2 float64
		if _, err := fmt.Sscanf(rest, "%g %g %g %g", &x1, &y1, &x2, &y2); err == nil {
			return x2 - x1, y2 - y1, true
		}
	}
	return DefaultWidth, DefaultHeight, false
}
