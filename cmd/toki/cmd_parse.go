package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/toki/ebnf/parse"
	"github.com/dhamidi/toki/ebnflex"
	"github.com/dhamidi/toki/format"
	"github.com/dhamidi/toki/recognizer"
	"github.com/dhamidi/toki/stream"
)

func newParseCmd() *cobra.Command {
	var grammarFile string
	var startRule string
	var outputFormat string
	var hidden []string

	cmd := &cobra.Command{
		Use:           "parse <file>",
		Short:         "Parse a file using an EBNF grammar",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			filename := args[0]

			grammar, err := ebnflex.LoadGrammar(grammarFile)
			if err != nil {
				return err
			}

			data, err := os.ReadFile(filename)
			if err != nil {
				return fmt.Errorf("read input: %w", err)
			}

			sess := recognizer.New(stream.NewChars(filename, data))
			defer sess.Close()

			lex := ebnflex.New(grammar, sess, ebnflex.WithHidden(hidden...))
			toks, err := lex.Tokenize()
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}
			if n := sess.ErrorCount(); n > 0 {
				return fmt.Errorf("%s: %d unrecognized input sequences, last: %v",
					filename, n, sess.LastError())
			}

			p := parse.New(grammar, lex, sess)
			root, err := p.Parse(startRule, stream.NewTokens(filename, toks))
			if err != nil {
				return err
			}

			switch outputFormat {
			case "json":
				if err := format.NewTreeJSONEncoder(os.Stdout, p).Encode(root); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
				fmt.Println()
			case "tree":
				if err := format.NewTreeTextEncoder(os.Stdout, p).Encode(root); err != nil {
					return fmt.Errorf("encode: %w", err)
				}
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "EBNF grammar file (required)")
	cmd.MarkFlagRequired("grammar")
	cmd.Flags().StringVarP(&startRule, "start", "s", "", "start rule (required)")
	cmd.MarkFlagRequired("start")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "tree", "output format (json, tree)")
	cmd.Flags().StringSliceVar(&hidden, "hidden", nil, "token productions routed to the hidden channel")

	return cmd
}
