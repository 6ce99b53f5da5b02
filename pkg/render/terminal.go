package render

import (
	"fmt"
	"strings"

	"github.com/opd-ai/go-starship/pkg/engine"
	"github.com/opd-ai/go-starship/pkg/physics"
	"github.com/opd-ai/go-starship/pkg/weapons"
)

// TerminalRenderer provides a simple ASCII top-down view (world X/Z
// plane) with a status line, for running the simulation in a terminal
type TerminalRenderer struct {
	width     int
	height    int
	buffer    [][]rune
	scale     float64
	centerPos physics.Vector3
	hudLines  []string
}

// NewTerminalRenderer creates a terminal renderer with the given
// character dimensions; scale is world units per character cell
func NewTerminalRenderer(width, height int, scale float64) *TerminalRenderer {
	buffer := make([][]rune, height)
	for i := range buffer {
		buffer[i] = make([]rune, width)
	}

	return &TerminalRenderer{
		width:  width,
		height: height,
		buffer: buffer,
		scale:  scale,
	}
}

// worldToScreen converts world coordinates to screen coordinates,
// projecting onto the X/Z plane with +Z up-screen
func (r *TerminalRenderer) worldToScreen(pos physics.Vector3) (int, int) {
	screenX := int((pos.X-r.centerPos.X)/r.scale + float64(r.width)/2)
	screenY := int((r.centerPos.Z-pos.Z)/r.scale + float64(r.height)/2)
	return screenX, screenY
}

func (r *TerminalRenderer) plot(pos physics.Vector3, symbol rune) {
	x, y := r.worldToScreen(pos)
	if x >= 0 && x < r.width && y >= 0 && y < r.height {
		r.buffer[y][x] = symbol
	}
}

// Clear implements Renderer
func (r *TerminalRenderer) Clear() {
	for y := range r.buffer {
		for x := range r.buffer[y] {
			r.buffer[y][x] = ' '
		}
	}
	r.hudLines = r.hudLines[:0]
}

// RenderShip implements Renderer; the view recenters on the ship
func (r *TerminalRenderer) RenderShip(ship engine.ShipState) {
	r.centerPos = ship.Position
	r.plot(ship.Position, '^')
}

// RenderBody implements Renderer
func (r *TerminalRenderer) RenderBody(body engine.BodyState) {
	symbol := 'O'
	switch body.State {
	case "exploding":
		symbol = '*'
	case "debris":
		symbol = ':'
	case "respawning":
		symbol = 'o'
	}
	r.plot(body.Position, symbol)
}

// RenderProjectile implements Renderer
func (r *TerminalRenderer) RenderProjectile(shot weapons.ProjectileInfo) {
	r.plot(shot.Position, '.')
}

// RenderHUD implements Renderer
func (r *TerminalRenderer) RenderHUD(state engine.GameState) {
	target := "none"
	if state.Weapons.Target != nil {
		target = fmt.Sprintf("%s (%.0f)", state.Weapons.Target.Name, state.Weapons.Target.Distance)
	}
	r.hudLines = append(r.hudLines,
		fmt.Sprintf("THR %3.0f%%  WARP %s L%d  ALERT %s",
			state.Ship.ThrottlePercent, state.Ship.WarpPhase, state.Ship.WarpLevel,
			strings.ToUpper(state.Defense.Alert.String())),
		fmt.Sprintf("PHASER %3.0f%%%s  TORP %d%s  TGT %s",
			state.Weapons.Heat, flag(state.Weapons.Overheated, " OVERHEAT"),
			state.Weapons.Ammo, flag(state.Weapons.Reloading, " RELOADING"),
			target),
		fmt.Sprintf("SHD F%3.0f A%3.0f P%3.0f S%3.0f  HULL %3.0f%%",
			state.Defense.Shields[0], state.Defense.Shields[1],
			state.Defense.Shields[2], state.Defense.Shields[3],
			state.Defense.Hull),
	)
}

// Present implements Renderer
func (r *TerminalRenderer) Present() {
	// Clear terminal
	fmt.Print("\033[H\033[2J")

	fmt.Println("+" + strings.Repeat("-", r.width) + "+")
	for y := range r.buffer {
		fmt.Print("|")
		for x := range r.buffer[y] {
			fmt.Print(string(r.buffer[y][x]))
		}
		fmt.Println("|")
	}
	fmt.Println("+" + strings.Repeat("-", r.width) + "+")

	for _, line := range r.hudLines {
		fmt.Println(line)
	}
}

func flag(on bool, label string) string {
	if on {
		return label
	}
	return ""
}
