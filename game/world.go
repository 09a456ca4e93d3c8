package game

// World manages the spatial partitioning grid and entity registration.
// It also carries the simulation suspension flag driven by the pause
// state machine: while suspended, nothing integrates movement.
type World struct {
	// Preallocated 2D grid of cells
	Cells [][]*Cell

	// Configuration
	Config Config

	// All entities in the world (for iteration)
	AllEntities []*Entity

	suspended bool
}

// NewWorld creates a new world with preallocated cells
func NewWorld(config Config) *World {
	cellCountX := config.CellCountX()
	cellCountY := config.CellCountY()

	cells := make([][]*Cell, cellCountX)
	for x := 0; x < cellCountX; x++ {
		cells[x] = make([]*Cell, cellCountY)
		for y := 0; y < cellCountY; y++ {
			cells[x][y] = NewCell(32)
		}
	}

	return &World{
		Cells:       cells,
		Config:      config,
		AllEntities: make([]*Entity, 0, 2048),
	}
}

// Suspend halts the simulation. Subsystems consult Suspended before
// integrating movement or advancing timers.
func (w *World) Suspend() {
	w.suspended = true
}

// Resume lifts a previous suspension.
func (w *World) Resume() {
	w.suspended = false
}

// Suspended reports whether the simulation is currently halted.
func (w *World) Suspended() bool {
	return w.suspended
}

// WorldToCell converts world coordinates to cell coordinates
func (w *World) WorldToCell(x, y float64) (int, int) {
	cellX := int(x / w.Config.CellSize)
	cellY := int(y / w.Config.CellSize)

	// Clamp to valid cell range
	cellX = max(0, min(cellX, w.Config.CellCountX()-1))
	cellY = max(0, min(cellY, w.Config.CellCountY()-1))

	return cellX, cellY
}

// GetCell returns the cell at the given cell coordinates
func (w *World) GetCell(cellX, cellY int) *Cell {
	if cellX < 0 || cellX >= w.Config.CellCountX() ||
		cellY < 0 || cellY >= w.Config.CellCountY() {
		return nil
	}
	return w.Cells[cellX][cellY]
}

// RegisterEntity adds an entity to the world and assigns it to the correct cell
func (w *World) RegisterEntity(entity *Entity) {
	cellX, cellY := w.WorldToCell(entity.X, entity.Y)
	entity.CellX = cellX
	entity.CellY = cellY

	cell := w.GetCell(cellX, cellY)
	if cell != nil {
		cell.AddEntity(entity)
	}

	w.AllEntities = append(w.AllEntities, entity)
}

// UnregisterEntity removes an entity from the world
func (w *World) UnregisterEntity(entity *Entity) {
	cell := w.GetCell(entity.CellX, entity.CellY)
	if cell != nil {
		cell.RemoveEntity(entity)
	}

	for i, e := range w.AllEntities {
		if e == entity {
			w.AllEntities[i] = w.AllEntities[len(w.AllEntities)-1]
			w.AllEntities = w.AllEntities[:len(w.AllEntities)-1]
			break
		}
	}
}

// UpdateEntityCell updates an entity's cell membership if it moved
func (w *World) UpdateEntityCell(entity *Entity) {
	newCellX, newCellY := w.WorldToCell(entity.X, entity.Y)

	if newCellX != entity.CellX || newCellY != entity.CellY {
		oldCell := w.GetCell(entity.CellX, entity.CellY)
		if oldCell != nil {
			oldCell.RemoveEntity(entity)
		}

		entity.CellX = newCellX
		entity.CellY = newCellY
		newCell := w.GetCell(newCellX, newCellY)
		if newCell != nil {
			newCell.AddEntity(entity)
		}
	}
}

// GetEntitiesInRadius returns all active entities within a radius of a point
func (w *World) GetEntitiesInRadius(x, y, radius float64) []*Entity {
	entities := make([]*Entity, 0, 64)

	minCellX, minCellY := w.WorldToCell(x-radius, y-radius)
	maxCellX, maxCellY := w.WorldToCell(x+radius, y+radius)

	radiusSq := radius * radius
	for cellX := minCellX; cellX <= maxCellX; cellX++ {
		for cellY := minCellY; cellY <= maxCellY; cellY++ {
			cell := w.GetCell(cellX, cellY)
			if cell == nil {
				continue
			}

			for i := 0; i < cell.Count; i++ {
				entity := cell.Entities[i]
				if !entity.Active {
					continue
				}
				dx := entity.X - x
				dy := entity.Y - y
				if dx*dx+dy*dy <= radiusSq {
					entities = append(entities, entity)
				}
			}
		}
	}

	return entities
}
