package grid

type point struct{ x, y int }

// FloodFill repaints the 4-connected region of the seed's color with c and
// returns the number of cells changed.
//
// Neighbours are queued without checking them first; the color test on
// dequeue is what stops the fill. A cell already repainted no longer matches
// the target, which is why target == c has to short-circuit up front.
func (g *Grid) FloodFill(seedX, seedY int, c Color) int {
	target, ok := g.At(seedX, seedY)
	if !ok || target == c {
		return 0
	}

	filled := 0
	queue := []point{{seedX, seedY}}
	for head := 0; head < len(queue); head++ {
		p := queue[head]
		if !g.InBounds(p.x, p.y) {
			continue
		}
		idx := g.index(p.x, p.y)
		if g.cells[idx] != target {
			continue
		}
		g.cells[idx] = c
		filled++
		queue = append(queue,
			point{p.x + 1, p.y},
			point{p.x - 1, p.y},
			point{p.x, p.y + 1},
			point{p.x, p.y - 1},
		)
	}
	return filled
}
