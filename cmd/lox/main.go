package main

import (
	"os"

	"github.com/mna/mainer"

	"github.com/go-lox/golox/internal/maincmd"
)

var (
	// placeholder values, replaced on build
	version   = "{v}"
	buildDate = "{d}"
)

func main() {
	c := maincmd.Cmd{BuildVersion: version, BuildDate: buildDate}
	os.Exit(int(c.Main(os.Args, mainer.CurrentStdio())))
}
