package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dhamidi/toki/ebnflex"
	"github.com/dhamidi/toki/format"
	"github.com/dhamidi/toki/recognizer"
	"github.com/dhamidi/toki/stream"
	"github.com/dhamidi/toki/token"
)

func newLexCmd() *cobra.Command {
	var grammarFile string
	var outputFormat string
	var hidden []string
	var includes []string
	var showAll bool

	cmd := &cobra.Command{
		Use:           "lex <file>",
		Short:         "Tokenize a file using an EBNF grammar",
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

			// Includes are lexed before the main file, in flag order.
			for i := len(includes) - 1; i >= 0; i-- {
				incData, err := os.ReadFile(includes[i])
				if err != nil {
					return fmt.Errorf("read include: %w", err)
				}
				sess.Include(includes[i], incData)
			}

			toks, err := lex.Tokenize()
			if err != nil {
				return fmt.Errorf("tokenize: %w", err)
			}
			if !showAll {
				toks = defaultChannelOnly(toks)
			}

			var encoder format.Encoder
			switch outputFormat {
			case "json":
				encoder = format.NewJSONEncoder(os.Stdout, lex)
			case "lines":
				encoder = format.NewLineEncoder(os.Stdout, lex)
			default:
				return fmt.Errorf("unknown format: %s", outputFormat)
			}

			if err := encoder.Encode(toks); err != nil {
				return fmt.Errorf("encode: %w", err)
			}
			if outputFormat == "json" {
				fmt.Println()
			}

			if n := sess.ErrorCount(); n > 0 {
				return fmt.Errorf("%s: %d unrecognized input sequences, last: %v",
					filename, n, sess.LastError())
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&grammarFile, "grammar", "g", "", "EBNF grammar file (required)")
	cmd.MarkFlagRequired("grammar")
	cmd.Flags().StringVarP(&outputFormat, "format", "f", "lines", "output format (json, lines)")
	cmd.Flags().StringSliceVar(&hidden, "hidden", nil, "token productions routed to the hidden channel")
	cmd.Flags().StringArrayVar(&includes, "include", nil, "file to lex before <file> (repeatable)")
	cmd.Flags().BoolVar(&showAll, "all", false, "show hidden-channel tokens too")

	return cmd
}

func defaultChannelOnly(toks []*token.Token) []*token.Token {
	var kept []*token.Token
	for _, tok := range toks {
		if tok.Channel == token.DefaultChannel {
			kept = append(kept, tok)
		}
	}
	return kept
}
