package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"logbook/internal/ui/theme"
)

// PaletteSubmitMsg is emitted when the user confirms a command.
type PaletteSubmitMsg struct{ Input string }

// PaletteCancelMsg is emitted when the user presses esc.
type PaletteCancelMsg struct{}

type PaletteCommand struct {
	Name string
	Help string
}

// PaletteCommands must stay in sync with the switch in app/model.go
// executePalette.
var PaletteCommands = []PaletteCommand{
	{"entry:new", "start a fresh activity entry"},
	{"entry:cancel", "discard the open follow-up"},
	{"entry:close", "dismiss the success screen"},
	{"auth:status", "show the active credential"},
	{"auth:login", "open the LogBook login page"},
	{"auth:logout", "clear stored credentials"},
	{"auth:recheck", "re-validate the session now"},
	{"sessions:refresh", "reload follow-up history"},
	{"health", "check the backend"},
	{"quit", "exit logbook"},
}

const maxSuggestions = 6

var (
	paletteStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(theme.Peach).
			Background(theme.Mantle).
			Foreground(theme.Text).
			Padding(0, 1)

	hintStyle     = lipgloss.NewStyle().Foreground(theme.Subtext0)
	hintHotStyle  = lipgloss.NewStyle().Foreground(theme.Lavender).Bold(true)
	hintHelpStyle = lipgloss.NewStyle().Foreground(theme.Surface1)
)

// Palette is a command overlay. Typing filters PaletteCommands by substring;
// up/down pick a suggestion and tab copies it into the input.
type Palette struct {
	input    textinput.Model
	visible  bool
	width    int
	selected int
}

func NewPalette() Palette {
	ti := textinput.New()
	ti.Placeholder = "entry:new, auth:status, health…"
	ti.CharLimit = 64
	return Palette{input: ti}
}

func (p Palette) Visible() bool { return p.visible }

// Open shows the palette with an empty input and returns the focus command.
func (p *Palette) Open() tea.Cmd {
	p.visible = true
	p.selected = 0
	p.input.SetValue("")
	return p.input.Focus()
}

func (p *Palette) SetWidth(w int) { p.width = w }

// Suggestions lists the commands matching the current input.
func (p Palette) Suggestions() []PaletteCommand {
	needle := strings.ToLower(strings.TrimSpace(p.input.Value()))
	var out []PaletteCommand
	for _, c := range PaletteCommands {
		if needle == "" || strings.Contains(c.Name, needle) {
			out = append(out, c)
			if len(out) == maxSuggestions {
				break
			}
		}
	}
	return out
}

func (p Palette) Update(msg tea.Msg) (Palette, tea.Cmd) {
	if !p.visible {
		return p, nil
	}
	if key, ok := msg.(tea.KeyMsg); ok {
		matches := p.Suggestions()
		switch key.String() {
		case "esc":
			p.close()
			return p, func() tea.Msg { return PaletteCancelMsg{} }
		case "up", "ctrl+k":
			if p.selected > 0 {
				p.selected--
			}
			return p, nil
		case "down", "ctrl+j":
			if p.selected < len(matches)-1 {
				p.selected++
			}
			return p, nil
		case "tab":
			if p.selected < len(matches) {
				p.input.SetValue(matches[p.selected].Name)
				p.input.CursorEnd()
				p.selected = 0
			}
			return p, nil
		case "enter":
			val := strings.TrimSpace(p.input.Value())
			if !isCommand(val) && p.selected < len(matches) {
				val = matches[p.selected].Name
			}
			p.close()
			return p, func() tea.Msg { return PaletteSubmitMsg{Input: val} }
		}
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	if n := len(p.Suggestions()); p.selected >= n {
		p.selected = max(n-1, 0)
	}
	return p, cmd
}

func (p *Palette) close() {
	p.visible = false
	p.input.Blur()
}

func isCommand(name string) bool {
	for _, c := range PaletteCommands {
		if c.Name == name {
			return true
		}
	}
	return false
}

func (p Palette) View() string {
	if !p.visible {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(theme.Title.Render("Command Palette") + "\n")
	sb.WriteString(": " + p.input.View() + "\n")
	if matches := p.Suggestions(); len(matches) > 0 {
		sb.WriteString("\n")
		for i, c := range matches {
			name := hintStyle.Render("  " + c.Name)
			if i == p.selected {
				name = hintHotStyle.Render("› " + c.Name)
			}
			sb.WriteString(name + "  " + hintHelpStyle.Render(c.Help) + "\n")
		}
	} else {
		sb.WriteString("\n" + theme.Warn.Render("no matching command") + "\n")
	}
	sb.WriteString(theme.Muted.Render("↑/↓ choose • tab complete • enter run • esc close"))

	w := p.width
	if w < 20 {
		w = 64
	}
	return paletteStyle.Width(w - 2).Render(sb.String())
}
