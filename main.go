package main

import (
	"flag"
	"fmt"
	"os"
)

func main() {
	const stripUsage = "drop comment tokens from the output"
	var stripComments bool
	flag.BoolVar(&stripComments, "strip-comments", false, stripUsage)
	flag.BoolVar(&stripComments, "s", false, stripUsage+" (shorthand)")

	flag.Parse()

	switch flag.NArg() {
	case 0:
		if err := RunPrompt(); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case 1:
		if err := RunFile(flag.Arg(0), "", stripComments); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	case 2:
		if err := RunFile(flag.Arg(0), flag.Arg(1), stripComments); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	default:
		fmt.Fprintln(os.Stderr, "usage: pytoken [-strip-comments] [input [output]]")
		os.Exit(2)
	}
}
