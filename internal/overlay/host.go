package overlay

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

var bannerStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Padding(1, 2)

// StaticHost is a host model that shows fixed text and quits on q.
type StaticHost struct {
	Content string
	width   int
	height  int
}

func NewStaticHost(content string) *StaticHost {
	return &StaticHost{Content: content}
}

func (h *StaticHost) Init() tea.Cmd { return nil }

func (h *StaticHost) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		h.width, h.height = msg.Width, msg.Height
	case tea.KeyMsg:
		if msg.String() == "q" {
			return h, tea.Quit
		}
	}
	return h, nil
}

func (h *StaticHost) View() string {
	return bannerStyle.Render(h.Content)
}

// Size is the last viewport the host was told about.
func (h *StaticHost) Size() (w, ht int) { return h.width, h.height }
