package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/promptink/promptink/pkg/art"
	"github.com/promptink/promptink/pkg/canvas"
	"github.com/promptink/promptink/pkg/errors"
	"github.com/promptink/promptink/pkg/export"
	"github.com/promptink/promptink/pkg/session"
)

// defaultSamples are the built-in prompts offered by the studio; the
// config file can add more.
var defaultSamples = []string{
	"Bioluminescent forest under a violet moon",
	"Rust and gold machinery dreaming of the sea",
	"Glacial light through a shattered prism",
	"Night market in the rain",
}

// studioCommand creates the studio command, an interactive prompt
// playground with live palette preview and render history.
func (c *CLI) studioCommand() *cobra.Command {
	var output string
	var scale int

	cmd := &cobra.Command{
		Use:   "studio",
		Short: "Interactive prompt studio",
		Long: `Studio opens an interactive session: type a prompt to preview its
palette live, press enter to render it to a PNG, and recall earlier
prompts with the arrow keys. Tab cycles through sample prompts.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("output") && cfg.Output != "" {
				output = cfg.Output
			}
			if !cmd.Flags().Changed("scale") && cfg.Scale > 0 {
				scale = cfg.Scale
			}
			if err := errors.ValidateScale(float64(scale)); err != nil {
				return err
			}
			samples := append(append([]string{}, defaultSamples...), cfg.Samples...)
			return runStudio(output, scale, samples)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", ".", "output directory for PNG files")
	cmd.Flags().IntVarP(&scale, "scale", "s", 1, "output scale factor (1 = 640x640)")

	return cmd
}

// runStudio starts the bubbletea program and blocks until the user quits.
func runStudio(output string, scale int, samples []string) error {
	m := newStudioModel(output, scale, samples)
	_, err := tea.NewProgram(m).Run()
	return err
}

// renderedMsg reports the outcome of a render triggered from the studio.
type renderedMsg struct {
	prompt string
	path   string
	err    error
}

// studioModel is the bubbletea model for the interactive studio.
type studioModel struct {
	sess     *session.Session
	renderer *art.Renderer

	input     []rune
	draft     []rune // live input saved while browsing history
	histPos   int    // -1 when editing, otherwise index into history
	sampleIdx int

	output  string
	scale   int
	samples []string

	status    string
	statusErr bool
	rendering bool
	quitting  bool
}

// newStudioModel builds the model with one session and renderer shared
// across the whole studio run, so revisited prompts hit the palette cache.
func newStudioModel(output string, scale int, samples []string) studioModel {
	sess := session.New()
	return studioModel{
		sess: sess,
		renderer: art.New(
			art.WithSurface(canvas.NewImage()),
			art.WithCache(sess.Palettes),
		),
		histPos: -1,
		output:  output,
		scale:   scale,
		samples: samples,
	}
}

func (m studioModel) Init() tea.Cmd {
	return nil
}

func (m studioModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case renderedMsg:
		m.rendering = false
		if msg.err != nil {
			m.status = msg.err.Error()
			m.statusErr = true
			return m, nil
		}
		m.sess.History.Push(msg.prompt)
		m.histPos = -1
		m.status = "wrote " + msg.path
		m.statusErr = false
		return m, nil
	}
	return m, nil
}

// handleKey processes a keypress. History browsing replaces the input
// line; any edit drops back to the live draft.
func (m studioModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c", "esc":
		m.quitting = true
		return m, tea.Quit

	case "enter":
		if m.rendering {
			return m, nil
		}
		prompt := strings.TrimSpace(string(m.input))
		if prompt == "" {
			prompt = art.DefaultPrompt
		}
		m.rendering = true
		m.status = "rendering..."
		m.statusErr = false
		return m, m.renderCmd(prompt)

	case "up":
		if m.histPos+1 < m.sess.History.Len() {
			if m.histPos == -1 {
				m.draft = m.input
			}
			m.histPos++
			m.input = []rune(m.sess.History.At(m.histPos))
		}
		return m, nil

	case "down":
		if m.histPos >= 0 {
			m.histPos--
			if m.histPos == -1 {
				m.input = m.draft
			} else {
				m.input = []rune(m.sess.History.At(m.histPos))
			}
		}
		return m, nil

	case "tab":
		if len(m.samples) > 0 {
			m.input = []rune(m.samples[m.sampleIdx])
			m.sampleIdx = (m.sampleIdx + 1) % len(m.samples)
			m.histPos = -1
		}
		return m, nil

	case "backspace":
		if len(m.input) > 0 {
			m.input = m.input[:len(m.input)-1]
		}
		m.histPos = -1
		return m, nil
	}

	switch msg.Type {
	case tea.KeyRunes:
		m.input = append(m.input, msg.Runes...)
		m.histPos = -1
	case tea.KeySpace:
		m.input = append(m.input, ' ')
		m.histPos = -1
	}
	return m, nil
}

// renderCmd renders the prompt and writes the PNG off the update loop.
func (m studioModel) renderCmd(prompt string) tea.Cmd {
	renderer := m.renderer
	output := m.output
	scale := m.scale
	return func() tea.Msg {
		renderer.Render(prompt)
		img := export.Scale(renderer.Image(), float64(scale))
		path := filepath.Join(output, export.Filename(prompt)+".png")
		if err := export.WriteFile(path, img); err != nil {
			return renderedMsg{prompt: prompt, err: err}
		}
		return renderedMsg{prompt: prompt, path: path}
	}
}

func (m studioModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(StyleTitle.Render("Promptink Studio"))
	b.WriteString("\n")
	b.WriteString(StyleDim.Render("⏎ render  ↑/↓ history  ⇥ sample  esc quit"))
	b.WriteString("\n\n")

	b.WriteString("  " + StyleHighlight.Render("prompt") + " " + string(m.input) + "█")
	b.WriteString("\n\n")

	b.WriteString(m.viewPalette())
	b.WriteString("\n")
	b.WriteString(m.viewHistory())

	if m.status != "" {
		b.WriteString("\n")
		if m.statusErr {
			b.WriteString("  " + styleIconError.Render(iconError) + " " + m.status)
		} else {
			b.WriteString("  " + styleIconSuccess.Render(iconSuccess) + " " + StyleDim.Render(m.status))
		}
		b.WriteString("\n")
	}

	return b.String()
}

// viewPalette shows the live palette swatches for the current input.
func (m studioModel) viewPalette() string {
	pal := m.renderer.Palette(string(m.input))

	var b strings.Builder
	b.WriteString("  ")
	for _, hex := range pal {
		b.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(hex)).Render("        "))
		b.WriteString(" ")
	}
	b.WriteString("\n  ")
	for _, hex := range pal {
		b.WriteString(StyleDim.Render(fmt.Sprintf("%-8s", hex)) + " ")
	}
	b.WriteString("\n")
	return b.String()
}

// viewHistory lists the session's recent prompts, most recent first.
func (m studioModel) viewHistory() string {
	if m.sess.History.Len() == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString("\n  " + StyleDim.Render("history") + "\n")
	for i := 0; i < m.sess.History.Len(); i++ {
		cursor := "  "
		if i == m.histPos {
			cursor = "▸ "
		}
		line := fmt.Sprintf("  %s%s", cursor, m.sess.History.At(i))
		if i == m.histPos {
			b.WriteString(listSelectedStyle.Render(line))
		} else {
			b.WriteString(listNormalStyle.Render(line))
		}
		b.WriteString("\n")
	}
	return b.String()
}

// List styles
var (
	listSelectedStyle = lipgloss.NewStyle().Bold(true).Foreground(colorCyan)
	listNormalStyle   = lipgloss.NewStyle().Foreground(colorGray)
)
