package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/zjrosen/texel/internal/document"
	"github.com/zjrosen/texel/internal/resolve"
	"github.com/zjrosen/texel/internal/textobject"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve <file>",
	Short: "Resolve a text object without opening the editor",
	Long: `Resolve a text object at a byte offset and print the result. Useful for
scripting and for editor integrations that want texel's structural
resolution without the TUI.

Kinds: " (quotes), $ (inline math), \ (display math), m (macro),
e (environment).`,
	Args: cobra.ExactArgs(1),
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().Int("cursor", 0, "byte offset of the cursor")
	resolveCmd.Flags().String("kind", "m", "text object kind")
	resolveCmd.Flags().Bool("outer", false, "resolve the outer variant (contents plus delimiters)")
	resolveCmd.Flags().Int("count", 1, "select the count-th enclosing object")
	resolveCmd.Flags().Bool("json", false, "print the result as JSON")

	rootCmd.AddCommand(resolveCmd)
}

// resolveResult is the JSON output shape of the resolve command.
type resolveResult struct {
	Kind    string `json:"kind"`
	Variant string `json:"variant"`
	Start   int    `json:"start"`
	End     int    `json:"end"`
	Text    string `json:"text"`
}

func runResolve(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(args[0])
	if err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	cursor, _ := cmd.Flags().GetInt("cursor")
	kindStr, _ := cmd.Flags().GetString("kind")
	outer, _ := cmd.Flags().GetBool("outer")
	count, _ := cmd.Flags().GetInt("count")
	asJSON, _ := cmd.Flags().GetBool("json")

	if len([]rune(kindStr)) != 1 {
		return fmt.Errorf("kind must be a single character, got %q", kindStr)
	}
	kind := []rune(kindStr)[0]

	svc := resolve.NewService(document.NewSnapshot(string(data)), resolve.WithCache(false))
	res, err := svc.Resolve(context.Background(), kind, textobject.Request{
		Cursor: cursor,
		Count:  count,
		Outer:  outer,
	})
	if err != nil {
		return err
	}

	variant := "inner"
	if res.Outer {
		variant = "outer"
	}

	if asJSON {
		out := resolveResult{
			Kind:    kindStr,
			Variant: variant,
			Start:   res.Span.Start,
			End:     res.Span.End,
			Text:    res.Text,
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(out)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n%s\n", kindStr, variant, res.Span.String(), res.Text)
	return nil
}
