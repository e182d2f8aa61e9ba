package scanner

import (
	"errors"
	"strconv"
	"strings"

	"lox/interpreter-go/pkg/token"
)

// Scanner turns Lox source into tokens. It keeps one rune of lookahead,
// two when a '.' follows the digits of a number.
type Scanner struct {
	source []rune
	cursor int
	line   int
	tokens []token.Token
}

// New creates a scanner positioned at the start of source.
func New(source string) *Scanner {
	return &Scanner{
		source: []rune(source),
		line:   1,
	}
}

// ScanTokens scans source in one pass.
func ScanTokens(source string) ([]token.Token, error) {
	return New(source).Scan()
}

// Scan consumes the whole source. On success the result ends with exactly
// one EOF token; on failure no tokens are returned.
func (s *Scanner) Scan() ([]token.Token, error) {
	for !s.atEnd() {
		if err := s.scanToken(); err != nil {
			s.tokens = nil
			return nil, err
		}
	}
	s.tokens = append(s.tokens, token.New(token.EOF, s.line))
	out := s.tokens
	s.tokens = nil
	return out, nil
}

func (s *Scanner) scanToken() error {
	ch := s.advance()
	switch ch {
	case '(':
		s.emit(token.LeftParen)
	case ')':
		s.emit(token.RightParen)
	case '{':
		s.emit(token.LeftBrace)
	case '}':
		s.emit(token.RightBrace)
	case ',':
		s.emit(token.Comma)
	case '.':
		s.emit(token.Dot)
	case '-':
		s.emit(token.Minus)
	case '+':
		s.emit(token.Plus)
	case ';':
		s.emit(token.Semicolon)
	case '*':
		s.emit(token.Star)
	case '!':
		s.emitPair(token.Bang, token.BangEqual)
	case '=':
		s.emitPair(token.Equal, token.EqualEqual)
	case '<':
		s.emitPair(token.Less, token.LessEqual)
	case '>':
		s.emitPair(token.Greater, token.GreaterEqual)
	case '/':
		if s.peek() == '/' {
			s.skipComment()
			return nil
		}
		s.emit(token.Slash)
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '"':
		return s.scanString()
	default:
		switch {
		case isDigit(ch):
			return s.scanNumber(ch)
		case isAlpha(ch):
			s.scanIdentifier(ch)
		default:
			return &Error{Line: s.line, Reason: ReasonUnexpectedCharacter, Text: string(ch)}
		}
	}
	return nil
}

func (s *Scanner) emit(kind token.Kind) {
	s.tokens = append(s.tokens, token.New(kind, s.line))
}

// emitPair emits double when the next rune is '=' and single otherwise.
func (s *Scanner) emitPair(single, double token.Kind) {
	if s.peek() == '=' {
		s.cursor++
		s.emit(double)
		return
	}
	s.emit(single)
}

// skipComment stops before the newline so the line counter still sees it.
func (s *Scanner) skipComment() {
	for !s.atEnd() && s.peek() != '\n' {
		s.cursor++
	}
}

func (s *Scanner) scanString() error {
	startLine := s.line
	var b strings.Builder
	for {
		if s.atEnd() || s.peek() == '\n' {
			return &Error{Line: startLine, Reason: ReasonUnterminatedString, Text: b.String()}
		}
		ch := s.advance()
		if ch == '"' {
			break
		}
		b.WriteRune(ch)
	}
	s.tokens = append(s.tokens, token.NewString(b.String(), startLine))
	return nil
}

func (s *Scanner) scanNumber(first rune) error {
	var b strings.Builder
	b.WriteRune(first)
	for isDigit(s.peek()) {
		b.WriteRune(s.advance())
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		b.WriteRune(s.advance())
		for isDigit(s.peek()) {
			b.WriteRune(s.advance())
		}
	}
	text := b.String()
	// Literals past the float64 range scan as infinity.
	value, err := strconv.ParseFloat(text, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return &Error{Line: s.line, Reason: ReasonInvalidNumber, Text: text}
	}
	s.tokens = append(s.tokens, token.NewNumber(value, s.line))
	return nil
}

func (s *Scanner) scanIdentifier(first rune) {
	var b strings.Builder
	b.WriteRune(first)
	for isAlphaNumeric(s.peek()) {
		b.WriteRune(s.advance())
	}
	text := b.String()
	kind := token.LookupIdentifier(text)
	if kind == token.Identifier {
		s.tokens = append(s.tokens, token.NewIdentifier(text, s.line))
		return
	}
	s.emit(kind)
}

func (s *Scanner) atEnd() bool {
	return s.cursor >= len(s.source)
}

func (s *Scanner) advance() rune {
	ch := s.source[s.cursor]
	s.cursor++
	return ch
}

// peek returns 0 at end of input; 0 never matches any scanning rule.
func (s *Scanner) peek() rune {
	if s.atEnd() {
		return 0
	}
	return s.source[s.cursor]
}

func (s *Scanner) peekNext() rune {
	if s.cursor+1 >= len(s.source) {
		return 0
	}
	return s.source[s.cursor+1]
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isAlpha(ch rune) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || ch == '_'
}

func isAlphaNumeric(ch rune) bool {
	return isAlpha(ch) || isDigit(ch)
}
