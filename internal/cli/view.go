package cli

import (
	"context"
	"fmt"
	"math"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/matzehuels/treedisplay/pkg/center"
	"github.com/matzehuels/treedisplay/pkg/display"
	"github.com/matzehuels/treedisplay/pkg/render/nodelink"
)

// viewCommand creates the view command, a terminal host for one diagram.
func (c *CLI) viewCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "view [tree.json]",
		Short: "Show a tree in the terminal",
		Long: `Show a tree in the terminal.

The terminal window is the container: the first window size the terminal
reports centers the diagram, later resizes keep it where it is.
Keys: arrows or hjkl pan, 0 resets the pan, c toggles the status line, q quits.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			if input == "" || input == stdinName {
				return fmt.Errorf("view needs a tree file: stdin is used by the terminal")
			}
			m, err := newViewModel(cmd.Context(), input)
			if err != nil {
				return err
			}
			_, err = tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(cmd.Context())).Run()
			return err
		},
	}
}

// ViewModel is the bubbletea model of the terminal viewer.
type ViewModel struct {
	Diagram *display.Diagram
	Layout  nodelink.Layout

	Width, Height int // terminal size in cells
	PanX, PanY    int // user pan in cells
	ShowStatus    bool
}

func newViewModel(ctx context.Context, input string) (ViewModel, error) {
	logger := loggerFromContext(ctx)
	tree, err := readTree(input, nil)
	if err != nil {
		return ViewModel{}, err
	}
	d := display.Mount(tree, documentPosition(input, "", 0, 0), display.WithLogger(logger))
	l, _, err := d.Layout(ctx)
	if err != nil {
		return ViewModel{}, err
	}
	return ViewModel{Diagram: d, Layout: l, ShowStatus: true}, nil
}

func (m ViewModel) Init() tea.Cmd {
	return nil
}

func (m ViewModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.Width, m.Height = msg.Width, msg.Height
		m.Diagram.Measure(center.Box{
			Width:  float64(msg.Width) * cellWidth,
			Height: float64(msg.Height) * cellHeight,
		})
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		case "left", "h":
			m.PanX -= 2
		case "right", "l":
			m.PanX += 2
		case "up", "k":
			m.PanY--
		case "down", "j":
			m.PanY++
		case "0":
			m.PanX, m.PanY = 0, 0
		case "c":
			m.ShowStatus = !m.ShowStatus
		}
	}
	return m, nil
}

func (m ViewModel) View() string {
	if m.Width == 0 || m.Height == 0 {
		return ""
	}
	rows := m.Height
	if m.ShowStatus {
		rows--
	}
	cv := m.draw(rows)

	var b strings.Builder
	b.WriteString(cv.String())
	if m.ShowStatus {
		b.WriteString("\n")
		b.WriteString(m.status())
	}
	return b.String()
}

// draw paints links first and nodes on top, translated by the diagram's
// offset plus the user pan.
func (m ViewModel) draw(rows int) *canvas {
	cv := newCanvas(m.Width, rows)
	translate, _ := m.Diagram.Offset()

	cell := func(n nodelink.PlacedNode) (int, int) {
		x := int(math.Round((n.X+translate.X)/cellWidth)) + m.PanX
		y := int(math.Round((n.Y+translate.Y)/cellHeight)) + m.PanY
		return x, y
	}

	for _, n := range m.Layout.Nodes {
		if n.Parent < 0 {
			continue
		}
		px, py := cell(m.Layout.Nodes[n.Parent])
		cx, cy := cell(n)
		cv.line(px, py, cx, cy)
	}
	for _, n := range m.Layout.Nodes {
		x, y := cell(n)
		cv.box(x, y, display.ForeignObject, n.Datum.Text())
	}
	return cv
}

func (m ViewModel) status() string {
	state := m.Diagram.State().String()
	if off, ok := m.Diagram.Offset(); ok {
		state += fmt.Sprintf(" at (%g,%g)", off.X, off.Y)
	}
	info := fmt.Sprintf(" %d nodes · %s · pan %d,%d", len(m.Layout.Nodes), state, m.PanX, m.PanY)
	keys := "  ←↑↓→ pan  0 reset  c status  q quit"
	return StyleTitle.Render(appName) + StyleDim.Render(info+keys)
}
