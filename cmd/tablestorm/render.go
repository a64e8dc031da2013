package main

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
	"golang.org/x/net/html"

	"github.com/dshills/tablestorm"
	"github.com/dshills/tablestorm/internal/dom"
	"github.com/dshills/tablestorm/internal/dom/htmltable"
)

var (
	styleText     = tcell.StyleDefault
	styleBorder   = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleMenu     = tcell.StyleDefault.Reverse(true)
	styleDisabled = tcell.StyleDefault.Reverse(true).Dim(true)
	styleButton   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorYellow)
	styleStatus   = tcell.StyleDefault.Dim(true)
)

// cellWidth returns the display width of a cell's text content.
func cellWidth(cell *html.Node) int {
	return uniseg.StringWidth(dom.Text(cell))
}

// draw repaints the whole screen: document content, then floating elements
// on top, then the status line.
func (a *App) draw() {
	a.screen.Clear()

	y := 1
	for _, el := range dom.ElementChildren(a.body) {
		switch {
		case dom.IsElement(el, "table"):
			a.drawTable(el)
			if rect, ok := a.meas.TableRect(el); ok {
				y = rect.Bottom() + 2
			}
		case dom.IsElement(el, "p"):
			a.drawText(1, y, dom.Text(el), styleText)
			y += 2
		}
	}

	a.drawFloating()
	a.drawStatus()
	a.screen.Show()
}

// drawTable renders one table as a character grid. Each cell paints its text
// plus its right and bottom border; the frame closes the top and left edges.
func (a *App) drawTable(table *html.Node) {
	t, ok := htmltable.FromNode(table)
	if !ok {
		return
	}
	rect, ok := a.meas.TableRect(table)
	if !ok {
		return
	}

	// Frame: top edge and left edge sit just outside the content rect.
	for x := rect.X - 1; x <= rect.Right(); x++ {
		a.screen.SetContent(x, rect.Y-1, '-', nil, styleBorder)
	}
	for y := rect.Y - 1; y <= rect.Bottom(); y++ {
		a.screen.SetContent(rect.X-1, y, '|', nil, styleBorder)
	}
	a.screen.SetContent(rect.X-1, rect.Y-1, '+', nil, styleBorder)

	for _, row := range t.Rows() {
		for _, cell := range htmltable.RowCells(row) {
			cr, ok := a.meas.CellRect(cell)
			if !ok {
				continue
			}
			a.drawClipped(cr.X+1, cr.Y, cr.Width-2, dom.Text(cell), styleText)
			for y := cr.Y; y <= cr.Bottom(); y++ {
				a.screen.SetContent(cr.Right(), y, '|', nil, styleBorder)
			}
			for x := cr.X; x < cr.Right(); x++ {
				a.screen.SetContent(x, cr.Bottom(), '-', nil, styleBorder)
			}
			a.screen.SetContent(cr.Right(), cr.Bottom(), '+', nil, styleBorder)
		}
	}
}

// drawFloating paints the menu, its items, and the hover buttons. The drag
// shield is deliberately invisible.
func (a *App) drawFloating() {
	for _, el := range dom.ElementChildren(a.body) {
		if _, ok := dom.Attr(el, "data-tablestorm-id"); !ok {
			continue
		}
		rect := floatRect(el)

		switch {
		case dom.HasClass(el, "ts-context-menu"):
			a.fill(rect.X, rect.Y, rect.Width, rect.Height, ' ', styleMenu)
		case dom.HasClass(el, "ts-context-menu-divider"):
			a.fill(rect.X, rect.Y, rect.Width, rect.Height, ' ', styleMenu)
			for x := rect.X + 1; x < rect.Right()-1; x++ {
				a.screen.SetContent(x, rect.Y+rect.Height/2, '-', nil, styleMenu)
			}
		case dom.HasClass(el, "ts-context-menu-item"):
			style := styleMenu
			if _, disabled := dom.Attr(el, "data-disabled"); disabled {
				style = styleDisabled
			}
			a.fill(rect.X, rect.Y, rect.Width, rect.Height, ' ', style)
			a.drawClipped(rect.X+2, rect.Y+rect.Height/2, rect.Width-4, dom.Text(el), style)
		case dom.HasClass(el, "ts-table-button"):
			label := '+'
			if action, _ := dom.Attr(el, "data-action"); action == "delete-table" {
				label = 'x'
			}
			a.fill(rect.X, rect.Y, rect.Width, rect.Height, ' ', styleButton)
			a.screen.SetContent(rect.X+rect.Width/2, rect.Y+rect.Height/2, label, nil, styleButton)
		}
	}
}

func (a *App) drawStatus() {
	w, h := a.screen.Size()
	a.fill(0, h-1, w, 1, ' ', styleStatus)
	a.drawText(1, h-1, "drag borders to resize | right-click: menu | t: new table | q: quit", styleStatus)
}

func (a *App) drawText(x, y int, s string, style tcell.Style) {
	a.drawClipped(x, y, -1, s, style)
}

// drawClipped writes a string, stopping after max display cells (max < 0
// means no limit). Wide graphemes are placed on their leading cell.
func (a *App) drawClipped(x, y, max int, s string, style tcell.Style) {
	col := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		w := g.Width()
		if max >= 0 && col+w > max {
			return
		}
		runes := g.Runes()
		if len(runes) == 0 {
			continue
		}
		a.screen.SetContent(x+col, y, runes[0], runes[1:], style)
		col += w
	}
}

func (a *App) fill(x, y, w, h int, r rune, style tcell.Style) {
	for dy := 0; dy < h; dy++ {
		for dx := 0; dx < w; dx++ {
			a.screen.SetContent(x+dx, y+dy, r, nil, style)
		}
	}
}

// floatRect reads a floating element's rect from its inline styles.
func floatRect(el *html.Node) tablestorm.Rect {
	var r tablestorm.Rect
	r.X, _ = dom.StylePx(el, "left")
	r.Y, _ = dom.StylePx(el, "top")
	r.Width, _ = dom.StylePx(el, "width")
	r.Height, _ = dom.StylePx(el, "height")
	return r
}
