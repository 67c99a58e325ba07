package main

import (
	"fmt"
	"image"
	"os"

	"github.com/spf13/cobra"

	"github.com/vic/ivm/pkg/render"
)

var (
	renderOut    string
	renderList   bool
	renderWidth  int
	renderHeight int
	renderDepth  int

	renderCmd = &cobra.Command{
		Use:   "render [entry]",
		Short: "Normalize a definition and paint its normal form as a PNG",
		Long: `render reads the normal form as a binary tree and paints one pixel per
leaf at the configured depth: black when the leaf holds an eraser, white
otherwise. With --list the normal form is read as a list of rows of cells.`,
		Example: "  ivm render ex1 -o tree.png --depth 16",
		Args:    cobra.MaximumNArgs(1),
		RunE:    runRender,
	}
)

func init() {
	f := renderCmd.Flags()
	f.StringVarP(&renderOut, "out", "o", "ivm.png", "output file")
	f.BoolVar(&renderList, "list", false, "read rows and cells instead of a tree")
	f.IntVar(&renderWidth, "width", 0, "image width (overrides config)")
	f.IntVar(&renderHeight, "height", 0, "image height (overrides config)")
	f.IntVar(&renderDepth, "depth", 0, "tree depth (overrides config)")
	rootCmd.AddCommand(renderCmd)
}

func runRender(cmd *cobra.Command, args []string) error {
	opts := cfg.Render
	flags := cmd.Flags()
	if flags.Changed("width") {
		opts.Width = renderWidth
	}
	if flags.Changed("height") {
		opts.Height = renderHeight
	}
	if flags.Changed("depth") {
		opts.Depth = renderDepth
	}

	entry := cfg.Entry
	if len(args) > 0 {
		entry = args[0]
	}
	c, err := newCompiler()
	if err != nil {
		return err
	}
	res, err := newRunner(c).Run(cmd.Context(), entry)
	if err != nil {
		return err
	}

	var img image.Image
	if renderList {
		img, err = render.List(res.Net, opts)
	} else {
		img, err = render.Tree(res.Net, opts)
	}
	if err != nil {
		return err
	}
	f, err := os.Create(renderOut)
	if err != nil {
		return err
	}
	if err := render.Encode(f, img); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	res.Report(cmd.ErrOrStderr())
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%dx%d)\n", renderOut, opts.Width, opts.Height)
	return nil
}
