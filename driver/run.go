// Package driver glues the scanner to its consumers: it runs optional
// token-stream passes and renders the result back to text.
package driver

import (
	"fmt"
	"io"

	"github.com/utane/pytoken/lexer"
	"github.com/utane/pytoken/token"
)

// Pass rewrites a token stream. Passes must not mutate the input slice's
// tokens in place.
type Pass interface {
	Run([]token.Token) ([]token.Token, error)
}

type PassRunner struct {
	passes []Pass
}

func NewPassRunner() *PassRunner {
	return &PassRunner{}
}

// AddPass adds a pass to the end of the pass list.
func (r *PassRunner) AddPass(pass Pass) {
	r.passes = append(r.passes, pass)
}

// Run executes passes in order. If a pass fails, execution stops and the
// stream produced so far is returned.
func (r *PassRunner) Run(tokens []token.Token) ([]token.Token, error) {
	for _, pass := range r.passes {
		var err error
		tokens, err = pass.Run(tokens)
		if err != nil {
			return tokens, fmt.Errorf("run: %w", err)
		}
	}

	return tokens, nil
}

// RunSource scans the source code and executes passes in order.
func (r *PassRunner) RunSource(source string) ([]token.Token, error) {
	tokens, err := lexer.Lex(source)
	if err != nil {
		return nil, fmt.Errorf("lex: %w", err)
	}

	return r.Run(tokens)
}

// StripComments removes Comment tokens from the stream.
type StripComments struct{}

func (StripComments) Run(tokens []token.Token) ([]token.Token, error) {
	out := make([]token.Token, 0, len(tokens))
	for _, tok := range tokens {
		if tok.Kind != token.Comment {
			out = append(out, tok)
		}
	}

	return out, nil
}

// Render writes the canonical rendering of every token to w.
func Render(tokens []token.Token, w io.Writer) error {
	for _, tok := range tokens {
		if _, err := tok.WriteTo(w); err != nil {
			return fmt.Errorf("render: %w", err)
		}
	}

	return nil
}
