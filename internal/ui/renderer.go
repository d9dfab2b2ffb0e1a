package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/samdwyer/troupe/internal/encounter"
	"github.com/samdwyer/troupe/internal/entity"
	"github.com/samdwyer/troupe/internal/hand"
	"github.com/samdwyer/troupe/internal/scene"
	"github.com/samdwyer/troupe/internal/world"
)

var (
	styleText     = tcell.StyleDefault.Foreground(tcell.ColorWhite)
	styleDim      = tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	styleCursor   = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
)

// Renderer handles drawing the game to the screen.
type Renderer struct {
	screen   *Screen
	tileSize int
}

// NewRenderer creates a renderer mapping one tile of tileSize pixels to one cell.
func NewRenderer(screen *Screen, tileSize int) *Renderer {
	return &Renderer{screen: screen, tileSize: tileSize}
}

// RenderCombat draws the battlefield, the units, the aim cursor, the hand and the status line.
func (r *Renderer) RenderCombat(enc *encounter.Encounter) {
	r.screen.Clear()
	if enc == nil {
		r.screen.Show()
		return
	}

	field := enc.Field()
	cam := enc.Camera()
	terrain := field.Terrain
	ts := terrain.TileSize

	for y := 0; y < terrain.Height; y++ {
		for x := 0; x < terrain.Width; x++ {
			cx, cy := WorldToCell(cam, terrainPos(x, y, ts), r.tileSize)
			tile := terrain.GetTile(x, y)
			r.screen.SetContent(cx, cy, tile.Rune(), tileStyle(tile))
		}
	}

	for _, u := range field.All() {
		cx, cy := WorldToCell(cam, u.Pos, r.tileSize)
		r.screen.SetContent(cx, cy, u.Glyph(), unitStyle(u))
	}

	phase := enc.Phase()
	if phase.Targeting() {
		cx, cy := WorldToCell(cam, enc.Cursor(), r.tileSize)
		r.screen.SetContent(cx, cy, '+', styleCursor)
	}

	width, height := r.screen.Size()
	r.screen.DrawText(1, 0, enc.Status(), styleText)
	lead := enc.Leadership()
	budget := fmt.Sprintf("leadership %d/%d", lead.Remaining(), lead.Capacity())
	r.screen.DrawText(width-len(budget)-1, 0, budget, styleText)

	if phase != encounter.Watch {
		r.drawHand(enc, phase, width, height)
	}

	r.screen.Show()
}

func (r *Renderer) drawHand(enc *encounter.Encounter, phase encounter.Phase, width, height int) {
	cards := enc.Hand().Cards()
	slots := CardSlots(len(cards), enc.Column(), phase.Targeting(), width, height-3)
	for i, card := range cards {
		style := cardStyle(card)
		if phase == encounter.UnitChooseCard && !enc.Leadership().CanAfford(card.Cost()) {
			style = styleDim
		}
		slot := slots[i]
		r.screen.SetContent(slot.X-1, slot.Y, '[', style)
		r.screen.SetContent(slot.X, slot.Y, card.Glyph, style)
		r.screen.SetContent(slot.X+1, slot.Y, ']', style)
	}

	if len(cards) > 0 {
		label := cards[enc.Column()].Label
		if c := cards[enc.Column()]; c.Kind == hand.CardUnit {
			label = fmt.Sprintf("%s (tier %d)", label, c.Cost())
		}
		r.screen.DrawText(width/2-len(label)/2, height-1, label, styleSelected)
	}
}

// RenderTroupe draws the troupe overlay.
func (r *Renderer) RenderTroupe(units []*entity.Unit, selected int) {
	r.screen.Clear()

	r.screen.DrawText(2, 1, "Troupe", styleSelected)
	for i, u := range units {
		style := styleText
		marker := "  "
		if i == selected {
			style = styleSelected
			marker = "> "
		}
		x := r.screen.DrawText(2, 3+i, marker, style)
		r.screen.SetContent(x, 3+i, u.Glyph(), unitStyle(u))
		line := fmt.Sprintf(" %-10s tier %d  hp %d/%d  atk %d  def %d",
			u.GetName(), u.Tier(), u.GetHP(), u.GetMaxHP(), u.GetAttack(), u.GetDefense())
		r.screen.DrawText(x+1, 3+i, line, style)
	}
	if len(units) == 0 {
		r.screen.DrawText(2, 3, "no units", styleDim)
	}

	_, height := r.screen.Size()
	r.screen.DrawText(2, height-2, "press X to return", styleDim)
	r.screen.Show()
}

// RenderPostCombat draws the outcome of the last encounter.
func (r *Renderer) RenderPostCombat(outcome scene.Outcome, survivors []*entity.Unit) {
	r.screen.Clear()
	width, height := r.screen.Size()

	title := "Victory!"
	style := tcell.StyleDefault.Foreground(tcell.ColorGreen).Bold(true)
	if outcome == scene.Defeat {
		title = "Defeat"
		style = tcell.StyleDefault.Foreground(tcell.ColorRed).Bold(true)
	}
	r.screen.DrawText(width/2-len(title)/2, 2, title, style)

	for i, u := range survivors {
		line := fmt.Sprintf("%s  hp %d/%d", u.GetName(), u.GetHP(), u.GetMaxHP())
		r.screen.DrawText(width/2-len(line)/2, 5+i, line, styleText)
	}

	prompt := "press Z to fight again"
	r.screen.DrawText(width/2-len(prompt)/2, height-2, prompt, styleDim)
	r.screen.Show()
}

// tileStyle returns the appropriate style for a tile type.
func tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileGrass:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGreen)
	case world.TileBrush:
		return tcell.StyleDefault.Foreground(tcell.ColorOlive)
	case world.TileRock:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	case world.TileWater:
		return tcell.StyleDefault.Foreground(tcell.ColorBlue)
	default:
		return tcell.StyleDefault
	}
}

func unitStyle(u *entity.Unit) tcell.Style {
	style := tcell.StyleDefault.Foreground(u.Def.TCellColor()).Bold(true)
	if u.Team == entity.TeamEnemy {
		style = style.Underline(true)
	}
	return style
}

func cardStyle(c hand.Card) tcell.Style {
	if c.Kind == hand.CardUnit {
		return unitStyle(c.Unit)
	}
	return tcell.StyleDefault.Foreground(tcell.ColorFuchsia).Bold(true)
}
