package main

import (
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/eringen/skillsite/content"
)

// errProblems fails the command in strict mode. The report is already
// printed, so main does not repeat it.
var errProblems = errors.New("card validation problems found")

var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Check every card in the content catalog",
	Long: `Load the content catalog and run the card prop checks on every card.
Problems are advisory: the site still renders such cards. Use --strict in CI
to fail on any problem.`,
	PreRunE: func(cmd *cobra.Command, _ []string) error {
		return loadConfig(cmd)
	},
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runValidate(cmd.OutOrStdout(), validateOptions{
			Path:   getStringWithFallback("content", "content.path", ""),
			Strict: getBoolWithFallback("strict", "validate.strict", false),
			Color:  getBoolWithFallback("color", "color", false),
		})
	},
}

func init() {
	validateCmd.Flags().Bool("strict", false, "Exit 1 on any problem (CI mode)")
}

type validateOptions struct {
	Path   string
	Strict bool
	Color  bool
}

func runValidate(w io.Writer, opts validateOptions) error {
	site, err := content.Load(opts.Path)
	if err != nil {
		return err
	}

	source := opts.Path
	if source == "" {
		source = "embedded catalog"
	}
	pages := site.Pages()
	cards := 0
	for _, p := range pages {
		cards += len(p.Cards)
	}
	fmt.Fprintf(w, "%s %s %s\n",
		paint(styleHeader, "Checked", opts.Color),
		source,
		paint(styleHint, fmt.Sprintf("(%d pages, %d cards)", len(pages), cards), opts.Color))

	problems := site.Check()
	if len(problems) == 0 {
		fmt.Fprintln(w, paint(styleOK, "✓ no problems", opts.Color))
		return nil
	}

	for _, p := range problems {
		fmt.Fprintf(w, "  %s %s\n", paint(styleWarn, "warning", opts.Color), p)
	}
	summary := fmt.Sprintf("%d problem(s)", len(problems))
	if opts.Strict {
		fmt.Fprintln(w, paint(styleFail, "✗ "+summary, opts.Color))
		return errProblems
	}
	fmt.Fprintln(w, paint(styleWarn, "⚠ "+summary, opts.Color))
	return nil
}
