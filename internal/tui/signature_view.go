package tui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/kingrea/signoff/internal/signature"
)

// The modal is drawn from the top-left corner of the screen so the canvas
// sits at a fixed cell offset. Each canvas cell covers a 10×20 pixel block
// of the surface.
const (
	canvasLeft = 1
	canvasTop  = 4
	canvasCols = 50
	canvasRows = 10
)

func canvasBounds() signature.Bounds {
	return signature.Bounds{Left: canvasLeft, Top: canvasTop, Width: canvasCols, Height: canvasRows}
}

// clientPoint maps a terminal cell onto the centre of that cell.
func clientPoint(x, y int) signature.Point {
	return signature.Point{X: float64(x) + 0.5, Y: float64(y) + 0.5}
}

func (a *App) handleMouse(msg tea.MouseMsg) {
	point := clientPoint(msg.X, msg.Y)
	bounds := a.pad.Bounds()
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button == tea.MouseButtonLeft && bounds.Contains(point) {
			a.pad.BeginStroke(point)
		}
	case tea.MouseActionMotion:
		if !a.pad.Drawing() {
			return
		}
		// Leaving the canvas ends the stroke.
		if !bounds.Contains(point) {
			a.pad.EndStroke()
			return
		}
		a.pad.ExtendStroke(point)
	case tea.MouseActionRelease:
		a.pad.EndStroke()
	}
}

func (a *App) renderSignatureModal() string {
	grid := a.pad.Surface().Thumbnail(canvasCols, canvasRows)
	message := ""
	if msg := a.pad.Message(); msg != "" {
		message = errorStyle.Render("⚠ " + msg)
	}
	lines := make([]string, 0, canvasTop+canvasRows+3)
	lines = append(lines,
		headerStyle.Render("E-Signature Required"),
		mutedStyle.Render("Please sign below to complete this step. Drag with the mouse to draw."),
		message,
		borderStyle.Render("┌"+strings.Repeat("─", canvasCols)+"┐"),
	)
	for _, row := range grid {
		lines = append(lines, borderStyle.Render("│")+renderRow(row)+borderStyle.Render("│"))
	}
	lines = append(lines,
		borderStyle.Render("└"+strings.Repeat("─", canvasCols)+"┘"),
		"",
		a.help.View(a.padKeys),
	)
	return strings.Join(lines, "\n")
}

func renderCells(grid [][]signature.Cell) string {
	rows := make([]string, len(grid))
	for i, row := range grid {
		rows[i] = renderRow(row)
	}
	return strings.Join(rows, "\n")
}

func renderRow(row []signature.Cell) string {
	var b strings.Builder
	for _, cell := range row {
		switch {
		case cell.Ink:
			b.WriteString("█")
		case cell.Guide:
			b.WriteString(guideStyle.Render("─"))
		default:
			b.WriteString(" ")
		}
	}
	return b.String()
}
