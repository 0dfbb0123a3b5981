package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"github.com/adrg/xdg"
	"github.com/peterh/liner"

	"github.com/utane/pytoken/driver"
	"github.com/utane/pytoken/lexer"
)

var history = filepath.Join(xdg.DataHome, "pytoken", ".pytoken_history")

// RunPrompt tokenizes lines interactively, printing the tokens of each.
func RunPrompt() error {
	line := liner.NewLiner()
	defer func() {
		if err := os.MkdirAll(filepath.Dir(history), os.ModePerm); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
		if f, err := os.Create(history); err == nil {
			defer f.Close()
			if _, err := line.WriteHistory(f); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		}
		line.Close()
	}()

	if f, err := os.Open(history); err == nil {
		defer f.Close()
		if _, err := line.ReadHistory(f); err != nil {
			fmt.Fprintln(os.Stderr, err)
		}
	}

	for {
		input, err := line.Prompt("> ")
		if err != nil {
			return err
		}
		line.AppendHistory(input)

		tokens, err := lexer.Lex(input)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)

			continue
		}
		for _, tok := range tokens {
			fmt.Println(tok)
		}
	}
}

// RunFile tokenizes the file at inPath, printing each token. When outPath
// is non-empty, the serialized token stream is also written there.
func RunFile(inPath, outPath string, stripComments bool) error {
	source, err := os.ReadFile(inPath)
	if err != nil {
		return err
	}

	r := driver.NewPassRunner()
	if stripComments {
		r.AddPass(driver.StripComments{})
	}

	tokens, err := r.RunSource(string(source))
	if err != nil {
		return err
	}

	for _, tok := range tokens {
		fmt.Println(tok)
	}

	if outPath == "" {
		return nil
	}

	out, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer out.Close()

	w := bufio.NewWriter(out)
	if err := driver.Render(tokens, w); err != nil {
		return err
	}

	return w.Flush()
}
