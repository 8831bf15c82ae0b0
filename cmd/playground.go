package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	zone "github.com/lrstanley/bubblezone"
	"github.com/spf13/cobra"

	"github.com/zjrosen/texel/internal/app"
	"github.com/zjrosen/texel/internal/document"
	"github.com/zjrosen/texel/internal/resolve"
	"github.com/zjrosen/texel/internal/ui/styles"
)

// playgroundText is a small document exercising every text object kind.
const playgroundText = `\documentclass{article}
\begin{document}

\section*{Playground}

Try the text objects on this buffer. Quotes come in two flavors:
"straight quotes" and ` + "``TeX quotes''" + `.

Inline math like $e^{i\pi} + 1 = 0$ responds to i$ and a$, while
display math uses the backslash kind:
\[
  \int_0^\infty e^{-x^2}\,dx = \frac{\sqrt{\pi}}{2}
\]

Macros such as \emph{emphasized text} and \textbf{bold text} are the
m kind; im selects the argument, am the whole macro.

\begin{itemize}
  \item Environments are the e kind.
  \item ie selects the body, ae includes \begin{} and \end{}.
\end{itemize}

\end{document}
`

var playgroundCmd = &cobra.Command{
	Use:   "playground",
	Short: "Open a scratch buffer that demos every text object",
	RunE: func(cmd *cobra.Command, args []string) error {
		styles.Apply(styles.Theme{
			Highlight: cfg.Theme.Highlight,
			Subtle:    cfg.Theme.Subtle,
			Error:     cfg.Theme.Error,
			Success:   cfg.Theme.Success,
		})

		svc := resolve.NewService(document.NewSnapshot(playgroundText),
			resolve.WithCache(cfg.Cache.Enabled))

		zone.NewGlobal()
		model := app.New(cfg, "", playgroundText, svc, app.Options{})
		p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithMouseCellMotion())
		_, err := p.Run()
		return err
	},
}

func init() {
	rootCmd.AddCommand(playgroundCmd)
}
