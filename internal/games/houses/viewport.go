package houses

import (
	"math"

	"github.com/vovakirdan/houseguard/internal/core"
)

// viewport maps world units onto the playfield cells below the HUD.
type viewport struct {
	world  core.Rect
	sx, sy float64 // cells per world unit
	top    int     // first playfield row
	w, h   int     // playfield size in cells
}

func newViewport(world core.Rect, w, h, top int) viewport {
	v := viewport{world: world, top: top, w: max(w, 0), h: max(h, 0)}
	if world.W > 0 {
		v.sx = float64(v.w) / world.W
	}
	if world.H > 0 {
		v.sy = float64(v.h) / world.H
	}
	return v
}

// toScreen returns the cell containing world point p.
func (v viewport) toScreen(p core.Vec) (int, int) {
	x := int(math.Floor((p.X - v.world.X) * v.sx))
	y := v.top + int(math.Floor((p.Y-v.world.Y)*v.sy))
	return x, y
}

// toWorld returns the world point at the center of cell (x, y).
func (v viewport) toWorld(x, y int) core.Vec {
	if v.sx == 0 || v.sy == 0 {
		return core.Vec{}
	}
	return core.Vec{
		X: v.world.X + (float64(x)+0.5)/v.sx,
		Y: v.world.Y + (float64(y-v.top)+0.5)/v.sy,
	}
}

// cells returns the cell rectangle covered by r, at least one cell in size.
func (v viewport) cells(r core.Rect) (x, y, w, h int) {
	x0, y0 := v.toScreen(core.V(r.X, r.Y))
	x1 := int(math.Ceil((r.Right() - v.world.X) * v.sx))
	y1 := v.top + int(math.Ceil((r.Bottom()-v.world.Y)*v.sy))
	return x0, y0, max(x1-x0, 1), max(y1-y0, 1)
}

// visible reports whether row y belongs to the playfield.
func (v viewport) visible(y int) bool {
	return y >= v.top && y < v.top+v.h
}
