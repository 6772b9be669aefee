package cli

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/promptink/promptink/pkg/art"
	"github.com/promptink/promptink/pkg/canvas"
	"github.com/promptink/promptink/pkg/errors"
	"github.com/promptink/promptink/pkg/export"
	"github.com/promptink/promptink/pkg/observability"
	"github.com/promptink/promptink/pkg/seed"
	"github.com/promptink/promptink/pkg/session"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output string // output directory for PNG files
	name   string // explicit filename (without extension), single prompt only
	scale  int    // output scale factor, 1 = 640x640
}

// renderCommand creates the render command that paints prompts to PNG files.
//
// Default settings:
//   - output: current directory (config file may override)
//   - scale: 1 (640x640 pixels)
//   - filename: derived from the prompt text
func (c *CLI) renderCommand() *cobra.Command {
	var opts renderOpts

	cmd := &cobra.Command{
		Use:   "render [prompt...]",
		Short: "Render prompts to PNG artwork files",
		Long: `Render paints one deterministic artwork per prompt and writes it as a
PNG file. The same prompt always produces the same image. With no
arguments a built-in default prompt is rendered.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") && cfg.Output != "" {
				opts.output = cfg.Output
			}
			if !cmd.Flags().Changed("scale") && cfg.Scale > 0 {
				opts.scale = cfg.Scale
			}
			if err := errors.ValidateScale(float64(opts.scale)); err != nil {
				return err
			}
			if err := errors.ValidateOutputPath(opts.output); err != nil {
				return err
			}
			if opts.name != "" && len(args) > 1 {
				return errors.New(errors.ErrCodeInvalidInput, "--name only applies to a single prompt")
			}
			return runRender(cmd.Context(), args, &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", ".", "output directory for PNG files")
	cmd.Flags().StringVarP(&opts.name, "name", "n", "", "filename without extension (single prompt only)")
	cmd.Flags().IntVarP(&opts.scale, "scale", "s", 1, "output scale factor (1 = 640x640)")

	return cmd
}

// runRender renders each prompt in order within one session, so repeated
// prompts reuse the session palette cache.
func runRender(ctx context.Context, prompts []string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	if len(prompts) == 0 {
		prompts = []string{art.DefaultPrompt}
	}

	sess := session.New()
	surface := canvas.NewImage()
	renderer := art.New(
		art.WithSurface(surface),
		art.WithCache(sess.Palettes),
		art.WithLogger(logger),
	)

	tracker := &cacheTracker{}
	observability.SetCacheHooks(tracker)
	defer observability.Reset()

	for _, prompt := range prompts {
		logger.Debug("rendering", "prompt", prompt)
		renderer.Render(prompt)
		sess.History.Push(prompt)

		name := opts.name
		if name == "" {
			name = export.Filename(prompt)
		}
		path := filepath.Join(opts.output, name+".png")

		img := export.Scale(renderer.Image(), float64(opts.scale))
		if err := export.WriteFile(path, img); err != nil {
			return err
		}

		printSuccess("Rendered %q", prompt)
		printRenderStats(seed.Hash(prompt), tracker.lastHit)
		printFile(path)
	}

	if len(prompts) > 1 {
		prog.done(fmt.Sprintf("Rendered %d artworks", len(prompts)))
	}
	return nil
}

// cacheTracker records whether the most recent palette lookup hit the
// session cache.
type cacheTracker struct {
	lastHit bool
}

func (t *cacheTracker) OnPaletteHit(string)  { t.lastHit = true }
func (t *cacheTracker) OnPaletteMiss(string) { t.lastHit = false }
