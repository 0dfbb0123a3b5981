package token

import (
	"fmt"
	"io"
	"slices"
	"strings"
)

// Kind identifies the lexical class of a token.
type Kind int

const (
	EOF Kind = iota

	// Structural punctuation.
	LeftParen
	RightParen
	LeftCurly
	RightCurly
	LeftSquare
	RightSquare
	LeftAngle
	RightAngle
	Colon
	SemiColon
	Comma
	Dot

	// Operators and their compound-assignment forms.
	ColonEquals
	Equal
	DoubleEqual
	NotEqual
	Asterisk
	AsteriskEquals
	DoubleAsterisk
	DoubleAsteriskEquals
	Ampersand
	AmpersandEquals
	DoubleAmpersand
	Pipe
	PipeEquals
	DoublePipe
	ThinArrow
	Minus
	MinusEquals
	Plus
	PlusEquals
	Percent
	PercentEquals
	Slash
	SlashEquals
	DoubleSlash
	DoubleSlashEquals
	LeftShift
	LeftShiftEquals
	RightShift
	RightShiftEquals

	// Literals and identifiers.
	Ident
	IntLit
	FloatLit
	BooleanLit
	StrLit

	// Whitespace-significant tokens and comments.
	NewLine
	Indent
	Comment

	// Keywords.
	And
	As
	Assert
	Break
	Class
	Continue
	Def
	Del
	Elif
	Else
	Except
	Finally
	For
	From
	Global
	If
	Import
	In
	Is
	Lambda
	None
	Nonlocal
	Not
	Or
	Pass
	Raise
	Return
	Try
	While
	With
	Yield
)

// IndentWidth is the number of source spaces per indentation level.
const IndentWidth = 4

// Token is one lexical unit. It owns all of its textual data; nothing
// references back into the source buffer.
//
// Text holds the identifier name, the exact source digits of an IntLit or
// FloatLit, the raw comment text, or the escape-decoded value of a StrLit.
// Integer and float literals stay as text because the surface language has
// arbitrary-precision numerics; parsing them here would round.
type Token struct {
	Kind  Kind
	Text  string
	Level int           // Indent only
	Bool  bool          // BooleanLit only
	Tags  map[rune]bool // StrLit prefix letters, e.g. r'...'
}

var symbols = map[Kind]string{
	LeftParen:            "(",
	RightParen:           ")",
	LeftCurly:            "{",
	RightCurly:           "}",
	LeftSquare:           "[",
	RightSquare:          "]",
	LeftAngle:            "<",
	RightAngle:           ">",
	Colon:                ":",
	ColonEquals:          ":=",
	SemiColon:            ";",
	Comma:                ",",
	Dot:                  ".",
	Equal:                "=",
	DoubleEqual:          "==",
	NotEqual:             "!=",
	Asterisk:             "*",
	AsteriskEquals:       "*=",
	DoubleAsterisk:       "**",
	DoubleAsteriskEquals: "**=",
	Ampersand:            "&",
	AmpersandEquals:      "&=",
	Pipe:                 "|",
	PipeEquals:           "|=",
	ThinArrow:            "->",
	Minus:                "-",
	MinusEquals:          "-=",
	Plus:                 "+",
	PlusEquals:           "+=",
	Percent:              "%",
	PercentEquals:        "%=",
	Slash:                "/",
	SlashEquals:          "/=",
	DoubleSlash:          "//",
	DoubleSlashEquals:    "//=",
	LeftShift:            "<<",
	LeftShiftEquals:      "<<=",
	RightShift:           ">>",
	RightShiftEquals:     ">>=",
}

var keywords = map[string]Kind{
	"and":      And,
	"as":       As,
	"assert":   Assert,
	"break":    Break,
	"class":    Class,
	"continue": Continue,
	"def":      Def,
	"del":      Del,
	"elif":     Elif,
	"else":     Else,
	"except":   Except,
	"finally":  Finally,
	"for":      For,
	"from":     From,
	"global":   Global,
	"if":       If,
	"import":   Import,
	"in":       In,
	"is":       Is,
	"lambda":   Lambda,
	"None":     None,
	"nonlocal": Nonlocal,
	"not":      Not,
	"or":       Or,
	"pass":     Pass,
	"raise":    Raise,
	"return":   Return,
	"try":      Try,
	"while":    While,
	"with":     With,
	"yield":    Yield,
}

var keywordNames = make(map[Kind]string, len(keywords))

func init() {
	for name, kind := range keywords {
		keywordNames[kind] = name
	}
}

// Lookup resolves identifier text against the reserved words. Boolean
// literals are reserved in both capitalizations.
func Lookup(text string) (Token, bool) {
	switch text {
	case "True", "true":
		return Token{Kind: BooleanLit, Bool: true}, true
	case "False", "false":
		return Token{Kind: BooleanLit, Bool: false}, true
	}
	if kind, ok := keywords[text]; ok {
		return Token{Kind: kind}, true
	}

	return Token{}, false
}

// Surface returns the canonical textual rendering of the token.
//
// Keywords, identifiers, and numeric/boolean literals carry a single
// trailing space so that concatenated output stays syntactically separable.
// The lone exception among keywords is `else`, which renders bare;
// punctuation, operators, comments, and newlines also take no trailing
// space. DoubleAmpersand and DoublePipe render as the keywords `and` and
// `or`.
func (t Token) Surface() string {
	switch t.Kind {
	case EOF:
		return ""
	case Ident, IntLit, FloatLit:
		return t.Text + " "
	case BooleanLit:
		if t.Bool {
			return "True "
		}

		return "False "
	case StrLit:
		var b strings.Builder
		b.WriteString(string(t.sortedTags()))
		b.WriteByte('\'')
		b.WriteString(strings.ReplaceAll(t.Text, "'", `\'`))
		b.WriteByte('\'')

		return b.String()
	case Comment:
		return "#" + t.Text
	case NewLine:
		return "\n"
	case Indent:
		return strings.Repeat(strings.Repeat(" ", IndentWidth), t.Level)
	case Else:
		return "else"
	case DoubleAmpersand:
		return "and "
	case DoublePipe:
		return "or "
	}

	if sym, ok := symbols[t.Kind]; ok {
		return sym
	}
	if name, ok := keywordNames[t.Kind]; ok {
		return name + " "
	}

	panic(fmt.Sprintf("no surface form for token kind %d", int(t.Kind)))
}

// WriteTo writes the canonical rendering to w. Sink errors propagate.
func (t Token) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, t.Surface())

	return int64(n), err
}

func (t Token) sortedTags() []rune {
	tags := make([]rune, 0, len(t.Tags))
	for tag := range t.Tags {
		tags = append(tags, tag)
	}
	slices.Sort(tags)

	return tags
}

// String returns a diagnostic form, used by the CLI token dump and tests.
func (t Token) String() string {
	switch t.Kind {
	case Ident, IntLit, FloatLit, Comment:
		return fmt.Sprintf("%s(%q)", t.Kind, t.Text)
	case StrLit:
		return fmt.Sprintf("StrLit(%s%q)", string(t.sortedTags()), t.Text)
	case BooleanLit:
		return fmt.Sprintf("BooleanLit(%t)", t.Bool)
	case Indent:
		return fmt.Sprintf("Indent(%d)", t.Level)
	}

	return t.Kind.String()
}

var kindNames = [...]string{
	EOF:                  "EOF",
	LeftParen:            "LeftParen",
	RightParen:           "RightParen",
	LeftCurly:            "LeftCurly",
	RightCurly:           "RightCurly",
	LeftSquare:           "LeftSquare",
	RightSquare:          "RightSquare",
	LeftAngle:            "LeftAngle",
	RightAngle:           "RightAngle",
	Colon:                "Colon",
	SemiColon:            "SemiColon",
	Comma:                "Comma",
	Dot:                  "Dot",
	ColonEquals:          "ColonEquals",
	Equal:                "Equal",
	DoubleEqual:          "DoubleEqual",
	NotEqual:             "NotEqual",
	Asterisk:             "Asterisk",
	AsteriskEquals:       "AsteriskEquals",
	DoubleAsterisk:       "DoubleAsterisk",
	DoubleAsteriskEquals: "DoubleAsteriskEquals",
	Ampersand:            "Ampersand",
	AmpersandEquals:      "AmpersandEquals",
	DoubleAmpersand:      "DoubleAmpersand",
	Pipe:                 "Pipe",
	PipeEquals:           "PipeEquals",
	DoublePipe:           "DoublePipe",
	ThinArrow:            "ThinArrow",
	Minus:                "Minus",
	MinusEquals:          "MinusEquals",
	Plus:                 "Plus",
	PlusEquals:           "PlusEquals",
	Percent:              "Percent",
	PercentEquals:        "PercentEquals",
	Slash:                "Slash",
	SlashEquals:          "SlashEquals",
	DoubleSlash:          "DoubleSlash",
	DoubleSlashEquals:    "DoubleSlashEquals",
	LeftShift:            "LeftShift",
	LeftShiftEquals:      "LeftShiftEquals",
	RightShift:           "RightShift",
	RightShiftEquals:     "RightShiftEquals",
	Ident:                "Ident",
	IntLit:               "IntLit",
	FloatLit:             "FloatLit",
	BooleanLit:           "BooleanLit",
	StrLit:               "StrLit",
	NewLine:              "NewLine",
	Indent:               "Indent",
	Comment:              "Comment",
	And:                  "And",
	As:                   "As",
	Assert:               "Assert",
	Break:                "Break",
	Class:                "Class",
	Continue:             "Continue",
	Def:                  "Def",
	Del:                  "Del",
	Elif:                 "Elif",
	Else:                 "Else",
	Except:               "Except",
	Finally:              "Finally",
	For:                  "For",
	From:                 "From",
	Global:               "Global",
	If:                   "If",
	Import:               "Import",
	In:                   "In",
	Is:                   "Is",
	Lambda:               "Lambda",
	None:                 "None",
	Nonlocal:             "Nonlocal",
	Not:                  "Not",
	Or:                   "Or",
	Pass:                 "Pass",
	Raise:                "Raise",
	Return:               "Return",
	Try:                  "Try",
	While:                "While",
	With:                 "With",
	Yield:                "Yield",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) && kindNames[k] != "" {
		return kindNames[k]
	}

	return fmt.Sprintf("Kind(%d)", int(k))
}
