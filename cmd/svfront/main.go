// Command svfront is a thin inspection CLI over the front-end core: it
// wires sourcemgr/diag/arena/lexer/preprocessor/parser/visit together for
// manual use, the way cli/main.go wires the teacher's own runtime
// together. It is not a production driver — see spec's Non-goals.
package main

import (
	"fmt"
	"os"

	"github.com/aledsdavies/svfront/diag"
	"github.com/aledsdavies/svfront/internal/arena"
	"github.com/aledsdavies/svfront/lexer"
	"github.com/aledsdavies/svfront/parser"
	"github.com/aledsdavies/svfront/preprocessor"
	"github.com/aledsdavies/svfront/sourcemgr"
	"github.com/aledsdavies/svfront/token"
	"github.com/aledsdavies/svfront/visit"
	"github.com/spf13/cobra"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "svfront",
		Short: "Inspect the SystemVerilog front-end core on a single file",
	}

	var searchDirs []string
	rootCmd.PersistentFlags().StringArrayVarP(&searchDirs, "include", "I", nil, "include search directory (repeatable)")

	rootCmd.AddCommand(
		newLexCmd(),
		newPPCmd(&searchDirs),
		newParseCmd(&searchDirs),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func loadFile(path string) (*sourcemgr.MemManager, sourcemgr.FileID, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, sourcemgr.NoFile, fmt.Errorf("reading %s: %w", path, err)
	}
	sm := sourcemgr.NewMemManager(true)
	return sm, sm.AddFile(path, data), nil
}

func printDiags(bag *diag.Bag) {
	for _, d := range bag.Sorted() {
		fmt.Fprintln(os.Stderr, d.String())
	}
}

func newLexCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lex <file>",
		Short: "Scan a file and print its raw token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, id, err := loadFile(args[0])
			if err != nil {
				return err
			}
			text, _, err := sm.Open(id)
			if err != nil {
				return err
			}
			bag := diag.NewBag()
			pool := arena.NewStringPool(arena.New())
			lx := lexer.New(id, text, bag, pool)
			for {
				tok := lx.Lex()
				fmt.Printf("%-8s %-20s %q\n", tok.Location, tok.Kind, tok.Raw)
				if tok.Kind == token.EOF {
					break
				}
			}
			printDiags(bag)
			return nil
		},
	}
}

func newPPCmd(searchDirs *[]string) *cobra.Command {
	var defines []string
	cmd := &cobra.Command{
		Use:   "pp <file>",
		Short: "Run the preprocessor and print the post-expansion token stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, id, err := loadFile(args[0])
			if err != nil {
				return err
			}
			bag := diag.NewBag()
			pool := arena.NewStringPool(arena.New())
			opts := buildPPOptions(*searchDirs, defines)
			pp, err := preprocessor.New(sm, bag, pool, id, opts)
			if err != nil {
				return err
			}
			for {
				tok := pp.Consume()
				fmt.Printf("%-8s %-20s %q\n", tok.Location, tok.Kind, tok.Raw)
				if tok.Kind == token.EOF {
					break
				}
			}
			printDiags(bag)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&defines, "define", "D", nil, "predefine NAME=BODY (repeatable)")
	return cmd
}

func newParseCmd(searchDirs *[]string) *cobra.Command {
	var defines []string
	cmd := &cobra.Command{
		Use:   "parse <file>",
		Short: "Parse a file and print its reconstructed source text (round-trip check)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sm, id, err := loadFile(args[0])
			if err != nil {
				return err
			}
			bag := diag.NewBag()
			pool := arena.NewStringPool(arena.New())
			opts := buildPPOptions(*searchDirs, defines)
			pp, err := preprocessor.New(sm, bag, pool, id, opts)
			if err != nil {
				return err
			}
			root := parser.ParseCompilationUnit(pp, bag)
			fmt.Print(visit.Printer{}.Print(root))
			printDiags(bag)
			return nil
		},
	}
	cmd.Flags().StringArrayVarP(&defines, "define", "D", nil, "predefine NAME=BODY (repeatable)")
	return cmd
}

func buildPPOptions(searchDirs, defines []string) preprocessor.Options {
	var opts []preprocessor.Option
	for _, dir := range searchDirs {
		opts = append(opts, preprocessor.WithSearchDir(dir))
	}
	for _, d := range defines {
		name, body := splitDefine(d)
		opts = append(opts, preprocessor.WithDefine(name, body))
	}
	return preprocessor.NewOptions(opts...)
}

func splitDefine(s string) (name, body string) {
	for i, r := range s {
		if r == '=' {
			return s[:i], s[i+1:]
		}
	}
	return s, "1"
}
