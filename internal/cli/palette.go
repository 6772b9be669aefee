package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/promptink/promptink/pkg/art"
	"github.com/promptink/promptink/pkg/seed"
)

// paletteCommand creates the palette command that prints the six colors
// derived for a prompt without rendering anything.
func (c *CLI) paletteCommand() *cobra.Command {
	var hexOnly bool

	cmd := &cobra.Command{
		Use:   "palette [prompt]",
		Short: "Show the six colors derived from a prompt",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompt := ""
			if len(args) == 1 {
				prompt = args[0]
			}
			return runPalette(prompt, hexOnly)
		},
	}

	cmd.Flags().BoolVar(&hexOnly, "hex", false, "print bare hex codes, one per line")

	return cmd
}

// runPalette derives and prints the palette. With --hex the output is
// plain hex codes, suitable for piping.
func runPalette(prompt string, hexOnly bool) error {
	renderer := art.New()
	pal := renderer.Palette(prompt)

	if hexOnly {
		fmt.Println(strings.Join(pal[:], "\n"))
		return nil
	}

	shown := prompt
	if strings.TrimSpace(shown) == "" {
		shown = art.DefaultPrompt
	}
	printInfo("Palette for %s", StyleHighlight.Render(fmt.Sprintf("%q", shown)))
	printDetail("seed %#08x", seed.Hash(shown))
	printNewline()
	for i, hex := range pal {
		printSwatch(i, hex)
	}
	printNewline()
	printNextStep("Render it", fmt.Sprintf("promptink render %q", shown))
	return nil
}
