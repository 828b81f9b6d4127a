package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/dmaze/dungeonmaze/internal/ui/theme"
)

// Door positions follow the compass layout of the maze room: the answer
// options map to the north, east, south and west doors in that order.
const (
	DoorNorth = 0
	DoorEast  = 1
	DoorSouth = 2
	DoorWest  = 3
)

var doorArrows = [4]string{"↑", "→", "↓", "←"}

// Doors is the four-door answer selector for a maze room. Each option
// hangs on one door; an arrow key walks to that door and Enter opens it.
type Doors struct {
	Options      []string
	CorrectIndex int
	Selected     int
	Submitted    bool
	ChosenIndex  int
}

// NewDoors creates a door grid for the given options.
func NewDoors(options []string, correctIndex int) Doors {
	return Doors{
		Options:      options,
		CorrectIndex: correctIndex,
		Selected:     0,
		ChosenIndex:  -1,
	}
}

// Init returns nil.
func (d Doors) Init() tea.Cmd {
	return nil
}

// Update handles door selection. Arrow keys move between doors, Enter
// opens the selected one, and a second press of the same arrow opens it
// directly.
func (d Doors) Update(msg tea.Msg) (Doors, tea.Cmd) {
	if d.Submitted {
		return d, nil
	}

	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return d, nil
	}

	target := -1
	switch kmsg.String() {
	case "up", "k":
		target = DoorNorth
	case "right", "l":
		target = DoorEast
	case "down", "j":
		target = DoorSouth
	case "left", "h":
		target = DoorWest
	case "enter":
		d.Submitted = true
		d.ChosenIndex = d.Selected
		return d, nil
	}

	if target >= 0 && target < len(d.Options) {
		if target == d.Selected {
			d.Submitted = true
			d.ChosenIndex = target
		} else {
			d.Selected = target
		}
	}

	return d, nil
}

// IsCorrect returns true if the opened door held the right answer.
func (d Doors) IsCorrect() bool {
	return d.Submitted && d.ChosenIndex == d.CorrectIndex
}

// Chosen returns the option behind the opened door, or "" before submit.
func (d Doors) Chosen() string {
	if !d.Submitted || d.ChosenIndex < 0 || d.ChosenIndex >= len(d.Options) {
		return ""
	}
	return d.Options[d.ChosenIndex]
}

// View renders the doors in their compass layout:
//
//	      [north]
//	[west]        [east]
//	      [south]
func (d Doors) View(width int) string {
	doorW := maxOptionWidth(d.Options) + 4
	north := d.renderDoor(DoorNorth, doorW)
	east := d.renderDoor(DoorEast, doorW)
	south := d.renderDoor(DoorSouth, doorW)
	west := d.renderDoor(DoorWest, doorW)

	gap := strings.Repeat(" ", 6)
	middle := lipgloss.JoinHorizontal(lipgloss.Center, west, gap, east)

	grid := lipgloss.JoinVertical(lipgloss.Center, north, middle, south)
	return lipgloss.PlaceHorizontal(width, lipgloss.Center, grid)
}

func (d Doors) renderDoor(i, doorW int) string {
	if i >= len(d.Options) {
		return ""
	}

	label := doorArrows[i] + " " + d.Options[i]
	style := theme.DoorClosed
	switch {
	case d.Submitted && i == d.CorrectIndex:
		style = style.BorderForeground(theme.Success).Foreground(theme.Success).Bold(true)
	case d.Submitted && i == d.ChosenIndex:
		style = style.BorderForeground(theme.Error).Foreground(theme.Error).Bold(true)
	case d.Submitted:
		style = style.Foreground(theme.TextDim)
	case i == d.Selected:
		style = theme.DoorSelected
	}

	return style.Width(doorW).Align(lipgloss.Center).Render(label)
}

func maxOptionWidth(options []string) int {
	w := 8
	for _, o := range options {
		if lw := lipgloss.Width(o) + 2; lw > w {
			w = lw
		}
	}
	return w
}
