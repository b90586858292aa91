package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/keshon/slashery/internal/demo"
	"github.com/keshon/slashery/internal/docs"
)

func main() {
	tmplPath := flag.String("template", "README.md.tmpl", "README template")
	outPath := flag.String("out", "README.md", "output file")
	flag.Parse()

	if err := docs.UpdateReadme(*tmplPath, *outPath, demo.Commands().Metadata()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
