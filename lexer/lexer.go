// Package lexer turns source text in a Python-like surface syntax into a
// stream of tokens. The scanner is pull-based: each call to Next consumes
// just enough input to classify one token.
package lexer

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/utane/pytoken/token"
)

// Lex scans the whole source and returns the token sequence, terminated by
// an EOF token. Scan errors are not recoverable, so lexing stops at the
// first one.
func Lex(source string) ([]token.Token, error) {
	s := NewScanner(source)
	tokens := []token.Token{}

	for {
		tok, err := s.Next()
		if err != nil {
			return tokens, err
		}
		tokens = append(tokens, tok)
		if tok.Kind == token.EOF {
			return tokens, nil
		}
	}
}

// Scanner produces tokens one at a time from a fully decoded character
// buffer. It owns the buffer exclusively and consumes it monotonically;
// a Scanner is not safe for concurrent use.
type Scanner struct {
	source []rune
	pos    int // index of the next unconsumed character

	// startOfLine is true when the cursor sits at the start of a logical
	// line, where runs of leading spaces mean indentation.
	startOfLine bool
}

func NewScanner(source string) *Scanner {
	return &Scanner{source: []rune(source), startOfLine: true}
}

// Next returns the next token. Exhaustion is signalled by a token of kind
// EOF, not by an error; errors mean the input is malformed and scanning
// cannot continue.
func (s *Scanner) Next() (token.Token, error) {
	tok, err := s.scan()
	if err != nil {
		return token.Token{Kind: token.EOF}, err
	}
	if tok.Kind != token.EOF {
		s.startOfLine = tok.Kind == token.NewLine
	}

	return tok, nil
}

func (s *Scanner) scan() (token.Token, error) {
	for {
		if s.isAtEnd() {
			return token.Token{Kind: token.EOF}, nil
		}

		pos := s.pos
		c := s.advance()
		switch {
		case c == ' ' && s.startOfLine:
			count := 1
			for s.peek() == ' ' {
				count++
				s.advance()
			}
			// A single leading space is tolerated noise, not indentation.
			if count == 1 {
				continue
			}
			if count%token.IndentWidth != 0 {
				return token.Token{}, IndentError{Spaces: count, Pos: pos}
			}

			return token.Token{Kind: token.Indent, Level: count / token.IndentWidth}, nil
		case c == '\n':
			return token.Token{Kind: token.NewLine}, nil
		case c == ' ', c == '\t', c == '\r', c == '\f':
			continue
		case isLetter(c) && isQuote(s.peek()):
			// The letter is a string-literal prefix tag, e.g. r'...'.
			s.pos--

			return s.strLit()
		case isAlpha(c):
			s.pos--

			return s.identifier(), nil
		case isDigit(c), c == '.' && isDigit(s.peek()):
			s.pos--

			return s.number(), nil
		case isQuote(c):
			s.pos--

			return s.strLit()
		case c == '#':
			return s.comment(), nil
		default:
			return s.operator(c, pos)
		}
	}
}

// operator resolves punctuation and single- and multi-character operators
// with one character of lookahead, always taking the longest valid match.
func (s *Scanner) operator(c rune, pos int) (token.Token, error) {
	var kind token.Kind

	switch c {
	case '(':
		kind = token.LeftParen
	case ')':
		kind = token.RightParen
	case '{':
		kind = token.LeftCurly
	case '}':
		kind = token.RightCurly
	case '[':
		kind = token.LeftSquare
	case ']':
		kind = token.RightSquare
	case ';':
		kind = token.SemiColon
	case ',':
		kind = token.Comma
	case '.':
		kind = token.Dot
	case ':':
		kind = s.pick('=', token.ColonEquals, token.Colon)
	case '+':
		kind = s.pick('=', token.PlusEquals, token.Plus)
	case '%':
		kind = s.pick('=', token.PercentEquals, token.Percent)
	case '=':
		kind = s.pick('=', token.DoubleEqual, token.Equal)
	case '&':
		switch s.peek() {
		case '=':
			s.advance()
			kind = token.AmpersandEquals
		case '&':
			s.advance()
			kind = token.DoubleAmpersand
		default:
			kind = token.Ampersand
		}
	case '|':
		switch s.peek() {
		case '=':
			s.advance()
			kind = token.PipeEquals
		case '|':
			s.advance()
			kind = token.DoublePipe
		default:
			kind = token.Pipe
		}
	case '-':
		switch s.peek() {
		case '=':
			s.advance()
			kind = token.MinusEquals
		case '>':
			s.advance()
			kind = token.ThinArrow
		default:
			kind = token.Minus
		}
	case '*':
		switch s.peek() {
		case '*':
			s.advance()
			kind = s.pick('=', token.DoubleAsteriskEquals, token.DoubleAsterisk)
		case '=':
			s.advance()
			kind = token.AsteriskEquals
		default:
			kind = token.Asterisk
		}
	case '/':
		switch s.peek() {
		case '/':
			s.advance()
			kind = s.pick('=', token.DoubleSlashEquals, token.DoubleSlash)
		case '=':
			s.advance()
			kind = token.SlashEquals
		default:
			kind = token.Slash
		}
	case '<':
		if s.peek() == '<' {
			s.advance()
			kind = s.pick('=', token.LeftShiftEquals, token.LeftShift)
		} else {
			kind = token.LeftAngle
		}
	case '>':
		if s.peek() == '>' {
			s.advance()
			kind = s.pick('=', token.RightShiftEquals, token.RightShift)
		} else {
			kind = token.RightAngle
		}
	case '!':
		if s.peek() != '=' {
			return token.Token{}, s.unexpected(c, pos)
		}
		s.advance()
		kind = token.NotEqual
	default:
		return token.Token{}, s.unexpected(c, pos)
	}

	return token.Token{Kind: kind}, nil
}

// pick consumes the next character and returns hit if it matches want,
// otherwise returns miss without consuming.
func (s *Scanner) pick(want rune, hit, miss token.Kind) token.Kind {
	if s.peek() == want {
		s.advance()

		return hit
	}

	return miss
}

func (s *Scanner) identifier() token.Token {
	start := s.pos
	for isAlpha(s.peek()) || isDigit(s.peek()) {
		s.advance()
	}

	text := string(s.source[start:s.pos])
	if tok, ok := token.Lookup(text); ok {
		return tok
	}

	return token.Token{Kind: token.Ident, Text: text}
}

// number captures the exact source text of a numeric literal: digits, the
// hex/binary marker letters, and any dots. A dot makes it a float. The
// digit string is not validated here; downstream consumers that need a
// value must parse it with arbitrary precision.
func (s *Scanner) number() token.Token {
	start := s.pos
	kind := token.IntLit

scan:
	for {
		switch c := s.peek(); {
		case isDigit(c), c == 'x', c == 'b':
			s.advance()
		case c == '.':
			s.advance()
			kind = token.FloatLit
		default:
			break scan
		}
	}

	return token.Token{Kind: kind, Text: string(s.source[start:s.pos])}
}

// comment captures everything up to the end of the line or of the input,
// excluding the leading marker.
func (s *Scanner) comment() token.Token {
	start := s.pos
	for !s.isAtEnd() && s.peek() != '\n' {
		s.advance()
	}

	return token.Token{Kind: token.Comment, Text: string(s.source[start:s.pos])}
}

// strLit scans a string literal: zero or more single-letter prefix tags,
// an opening quote, escape-decoded content, and the matching closing quote.
func (s *Scanner) strLit() (token.Token, error) {
	start := s.pos
	tags := map[rune]bool{}

	c := s.advance()
	for !isQuote(c) {
		tags[c] = true
		if s.isAtEnd() {
			return token.Token{}, UnterminatedLiteralError{Pos: start}
		}
		c = s.advance()
	}
	quote := c

	var out strings.Builder
	for {
		if s.isAtEnd() {
			return token.Token{}, UnterminatedLiteralError{Pos: start}
		}

		switch c := s.advance(); {
		case c == '\\':
			decoded, err := s.escape()
			if err != nil {
				return token.Token{}, err
			}
			out.WriteRune(decoded)
		case c == quote:
			return token.Token{Kind: token.StrLit, Tags: tags, Text: out.String()}, nil
		default:
			out.WriteRune(c)
		}
	}
}

// escape decodes one escape sequence, the leading backslash already
// consumed.
func (s *Scanner) escape() (rune, error) {
	pos := s.pos - 1
	if s.isAtEnd() {
		return 0, UnterminatedLiteralError{Pos: pos}
	}

	switch c := s.advance(); c {
	case '\'', '"', '\\':
		return c, nil
	case 'n':
		return '\n', nil
	case 'r':
		return '\r', nil
	case 't':
		return '\t', nil
	case 'x':
		return s.escapeDigits(16, pos)
	case '0':
		return s.escapeDigits(8, pos)
	default:
		return 0, EscapeError{Seq: `\` + string(c), Pos: pos}
	}
}

// escapeDigits reads the two digits of a \xHH or \0OO escape and decodes
// them in the given base.
func (s *Scanner) escapeDigits(base int, pos int) (rune, error) {
	if len(s.source)-s.pos < 2 {
		return 0, UnterminatedLiteralError{Pos: pos}
	}

	digits := string(s.source[s.pos : s.pos+2])
	s.pos += 2

	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return 0, EscapeError{Seq: string(s.source[pos : pos+4]), Pos: pos}
	}

	return rune(n), nil
}

func (s *Scanner) unexpected(c rune, pos int) error {
	lo := max(pos-10, 0)
	hi := min(pos+10, len(s.source))

	return UnexpectedCharacterError{
		Char:    c,
		Pos:     pos,
		Context: string(s.source[lo:hi]),
	}
}

func (s *Scanner) isAtEnd() bool {
	return s.pos >= len(s.source)
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return '\x00'
	}

	return s.source[s.pos]
}

func (s *Scanner) advance() rune {
	s.pos++

	return s.source[s.pos-1]
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isLetter(c rune) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z'
}

func isAlpha(c rune) bool {
	return isLetter(c) || c == '_'
}

func isQuote(c rune) bool {
	return c == '\'' || c == '"'
}

// IndentError reports a run of leading spaces that is not a whole multiple
// of the indent width.
type IndentError struct {
	Spaces int
	Pos    int
}

func (e IndentError) Error() string {
	return fmt.Sprintf("indentation of %d spaces at offset %d is not a multiple of %d", e.Spaces, e.Pos, token.IndentWidth)
}

// UnterminatedLiteralError reports a string literal or escape sequence cut
// off by the end of the input.
type UnterminatedLiteralError struct {
	Pos int
}

func (e UnterminatedLiteralError) Error() string {
	return fmt.Sprintf("unterminated literal starting at offset %d", e.Pos)
}

// EscapeError reports an escape sequence that is not recognized or whose
// digits are not valid in the expected base.
type EscapeError struct {
	Seq string
	Pos int
}

func (e EscapeError) Error() string {
	return fmt.Sprintf("invalid escape sequence %q at offset %d", e.Seq, e.Pos)
}

// UnexpectedCharacterError reports input no scanning rule covers, with a
// window of surrounding characters for diagnosis.
type UnexpectedCharacterError struct {
	Char    rune
	Pos     int
	Context string
}

func (e UnexpectedCharacterError) Error() string {
	return fmt.Sprintf("unexpected character %q at offset %d, context: %q", e.Char, e.Pos, e.Context)
}
