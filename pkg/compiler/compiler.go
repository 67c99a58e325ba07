// Package compiler turns a book into a standalone Go program that boots one
// entry, reduces it to normal form and prints the result.
package compiler

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"text/template"

	"github.com/vic/ivm/pkg/inet"
	"github.com/vic/ivm/pkg/lambda"
	"github.com/vic/ivm/pkg/lang"
	"github.com/vic/ivm/pkg/prelude"
)

// ErrNoSources is returned when a Compiler has nothing to embed.
var ErrNoSources = errors.New("compiler: no source files")

// Compiler embeds its sources in a Go program and invokes go build.
// Files ending in .lam hold a single lambda term defined under the file's
// base name; any other file is a book of `@name = ...` definitions.
type Compiler struct {
	Sources    []string
	Entry      string
	Prelude    bool
	Arena      int
	OutputName string
	GoFlags    []string // Passed directly to go build
	KeepTemp   bool     // For debugging
}

// Compile generates the program and builds it. Returns the output binary
// path on success.
func (c *Compiler) Compile() (string, error) {
	if len(c.Sources) == 0 {
		return "", ErrNoSources
	}
	gen, err := c.generator()
	if err != nil {
		return "", err
	}
	goCode, err := gen.Generate()
	if err != nil {
		return "", err
	}

	outputName := c.OutputName
	if outputName == "" {
		// Default: first source without its extension
		first := c.Sources[0]
		outputName = strings.TrimSuffix(filepath.Base(first), filepath.Ext(first))
	}

	// Write to temporary file in same directory as output (required by go build)
	outputDir := filepath.Dir(outputName)
	if outputDir == "." || outputDir == "" {
		outputDir, _ = os.Getwd()
	}

	tmpFile, err := os.CreateTemp(outputDir, "ivm-*.go")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	defer func() {
		tmpFile.Close()
		if !c.KeepTemp {
			os.Remove(tmpPath)
		}
	}()

	if _, err := tmpFile.WriteString(goCode); err != nil {
		return "", fmt.Errorf("failed to write generated code: %w", err)
	}
	tmpFile.Close()

	// Find go.mod directory to set module context
	buildDir := outputDir
	if goModDir := findGoModDir(outputDir); goModDir != "" {
		buildDir = goModDir
	}

	args := []string{"build", "-o", outputName}
	args = append(args, c.GoFlags...)
	args = append(args, tmpPath)

	cmd := exec.Command("go", args...)
	cmd.Dir = buildDir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if c.KeepTemp {
		fmt.Fprintf(os.Stderr, "Build dir: %s\n", buildDir)
		fmt.Fprintf(os.Stderr, "Build cmd: go %s\n", strings.Join(args, " "))
	}

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("go build failed: %w", err)
	}

	if !filepath.IsAbs(outputName) {
		outputName = filepath.Join(outputDir, filepath.Base(outputName))
	}

	if c.KeepTemp {
		fmt.Fprintf(os.Stderr, "Generated code kept at: %s\n", tmpPath)
	}

	return outputName, nil
}

// generator reads and checks every source. The entry and every name the
// sources mention must be defined once the prelude is loaded.
func (c *Compiler) generator() (*CodeGenerator, error) {
	gen := &CodeGenerator{Entry: c.Entry, Prelude: c.Prelude, Arena: c.Arena}
	if gen.Entry == "" {
		gen.Entry = "main"
	}
	if gen.Arena <= 0 {
		gen.Arena = 1 << 20
	}

	book := inet.NewBook()
	lc := lang.NewCompiler(book)
	if c.Prelude {
		if err := prelude.Register(lc); err != nil {
			return nil, err
		}
	}

	var defs []*lang.Definition
	for _, path := range c.Sources {
		src, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read source: %w", err)
		}
		gen.SourceFiles = append(gen.SourceFiles, filepath.Base(path))
		if filepath.Ext(path) == ".lam" {
			term, err := lambda.Parse(string(src))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			def, err := lambda.ToDefinition(term, nil)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", path, err)
			}
			def.Name = strings.TrimSuffix(filepath.Base(path), ".lam")
			defs = append(defs, def)
			continue
		}
		parsed, err := lang.ParseBook(string(src))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		defs = append(defs, parsed...)
	}

	var text strings.Builder
	for _, def := range defs {
		tpl, err := lc.Compile(def)
		if err != nil {
			return nil, err
		}
		book.Insert(def.Name, tpl)
		fmt.Fprintf(&text, "%s\n", def)
	}
	if !book.Has(gen.Entry) {
		return nil, &inet.RefError{Name: gen.Entry}
	}
	if undefined := book.Undefined(); len(undefined) > 0 {
		return nil, &inet.RefError{Name: undefined[0]}
	}
	gen.Book = text.String()
	return gen, nil
}

// CodeGenerator renders the Go source of a program running Entry from Book.
type CodeGenerator struct {
	SourceFiles []string
	Book        string
	Entry       string
	Prelude     bool
	Arena       int
}

// Generate returns the program source.
func (g *CodeGenerator) Generate() (string, error) {
	var buf bytes.Buffer
	if err := program.Execute(&buf, g); err != nil {
		return "", fmt.Errorf("compiler: %w", err)
	}
	return buf.String(), nil
}

var program = template.Must(template.New("program").Funcs(template.FuncMap{
	"quote": func(s string) string { return fmt.Sprintf("%q", s) },
}).Parse(`// Code generated by ivm build from {{range $i, $f := .SourceFiles}}{{if $i}}, {{end}}{{$f}}{{end}}. DO NOT EDIT.

package main

import (
	"fmt"
	"os"

	"github.com/vic/ivm/pkg/inet"
	"github.com/vic/ivm/pkg/lang"
{{- if .Prelude}}
	"github.com/vic/ivm/pkg/prelude"
{{- end}}
)

const book = {{quote .Book}}

func main() {
	c := lang.NewCompiler(inet.NewBook())
{{- if .Prelude}}
	if err := prelude.Register(c); err != nil {
		fail(err)
	}
{{- end}}
	if _, err := c.DefineBook(book); err != nil {
		fail(err)
	}
	net := inet.New({{.Arena}})
	if err := net.Boot(c.Book, {{quote .Entry}}); err != nil {
		fail(err)
	}
	if err := net.Normal(c.Book); err != nil {
		fail(err)
	}
	fmt.Println(lang.Show(net, c.Book))
	fmt.Fprintf(os.Stderr, "RWTS: %d\nDREF: %d\n", net.Rewrites(), net.Dereferences())
}

func fail(err error) {
	fmt.Fprintln(os.Stderr, err)
	os.Exit(1)
}
`))

// findGoModDir searches for go.mod starting from dir
func findGoModDir(dir string) string {
	if !filepath.IsAbs(dir) {
		if abs, err := filepath.Abs(dir); err == nil {
			dir = abs
		}
	}

	for {
		goModPath := filepath.Join(dir, "go.mod")
		if _, err := os.Stat(goModPath); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break // Reached root
		}
		dir = parent
	}

	return "" // Not found
}
