package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"isl/internal/source"
	"isl/internal/token"
)

// TokenOutput is one token rendered for JSON output.
type TokenOutput struct {
	Kind    string      `json:"kind"`
	Text    string      `json:"text,omitempty"`
	Span    source.Span `json:"span"`
	Leading []string    `json:"leading,omitempty"`
}

var triviaNames = map[token.TriviaKind]string{
	token.TriviaSpace:        "space",
	token.TriviaNewline:      "newline",
	token.TriviaLineComment:  "line-comment",
	token.TriviaBlockComment: "block-comment",
}

func triviaName(k token.TriviaKind) string {
	if n, ok := triviaNames[k]; ok {
		return n
	}
	return "trivia"
}

// FormatTokensPretty writes one line per token: index, kind, spelling,
// resolved position, and any leading trivia kinds.
func FormatTokensPretty(w io.Writer, tokens []token.Token, fs *source.FileSet) error {
	for i, tok := range tokens {
		start, end := fs.Resolve(tok.Span)

		var leading []string
		for _, tr := range tok.Leading {
			leading = append(leading, triviaName(tr.Kind))
		}

		fmt.Fprintf(w, "%3d: %-15s", i+1, tok.Kind.String())
		if tok.Text != "" {
			fmt.Fprintf(w, " %q", tok.Text)
		}
		fmt.Fprintf(w, " at %d:%d-%d:%d", start.Line, start.Col, end.Line, end.Col)
		if len(leading) > 0 {
			fmt.Fprintf(w, " (leading: %s)", strings.Join(leading, ", "))
		}
		fmt.Fprintln(w)

		if tok.Kind == token.EOF {
			break
		}
	}
	return nil
}

// FormatTokensJSON writes the token stream as an indented JSON array.
func FormatTokensJSON(w io.Writer, tokens []token.Token) error {
	var output []TokenOutput
	for _, tok := range tokens {
		out := TokenOutput{
			Kind: tok.Kind.String(),
			Text: tok.Text,
			Span: tok.Span,
		}
		for _, tr := range tok.Leading {
			out.Leading = append(out.Leading, triviaName(tr.Kind))
		}
		output = append(output, out)
		if tok.Kind == token.EOF {
			break
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}
