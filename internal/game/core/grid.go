package core

// Faction identifies who owns a cell or building.
// FactionPending marks the transient ownership of a build preview.
type Faction int

const (
	FactionNone Faction = iota
	FactionHuman
	FactionCPU
	FactionPending
)

func (f Faction) String() string {
	switch f {
	case FactionNone:
		return "none"
	case FactionHuman:
		return "human"
	case FactionCPU:
		return "cpu"
	case FactionPending:
		return "pending"
	default:
		return "unknown"
	}
}

// Opponent returns the rival of a playing faction.
func (f Faction) Opponent() Faction {
	switch f {
	case FactionHuman:
		return FactionCPU
	case FactionCPU:
		return FactionHuman
	default:
		return FactionNone
	}
}

// Terrain is the static ground type of a cell.
type Terrain int

const (
	TerrainNone Terrain = iota
	TerrainResource
	TerrainImpassable
)

func (t Terrain) String() string {
	switch t {
	case TerrainResource:
		return "resource"
	case TerrainImpassable:
		return "impassable"
	default:
		return "none"
	}
}

const (
	// NoInfluence marks a cell untouched by the current propagation pass.
	NoInfluence = -1
	// LandingComplete is the landing progress at which a building is active.
	LandingComplete = 100
)

// Cell represents a single hex on the map.
type Cell struct {
	Terrain  Terrain
	Elevated bool // cosmetic only

	Owner     Faction
	Influence int // remaining influence budget, NoInfluence when unclaimed

	Building        *Building
	LandingProgress int // 0..100

	InvalidSelection bool
}

func (c *Cell) IsImpassable() bool { return c.Terrain == TerrainImpassable }
func (c *Cell) IsResource() bool   { return c.Terrain == TerrainResource }
func (c *Cell) HasBuilding() bool  { return c.Building != nil }
func (c *Cell) IsLanded() bool     { return c.LandingProgress >= LandingComplete }

// IsBuildable reports whether construction is physically possible on the cell.
func (c *Cell) IsBuildable() bool {
	return !c.IsImpassable() && (c.Building == nil || c.Building.IsPlaceholder())
}

// HasRealBuilding ignores the transient preview placeholder.
func (c *Cell) HasRealBuilding() bool {
	return c.Building != nil && !c.Building.IsPlaceholder()
}

// Grid stores cells column-major: iterating C in order visits every row of
// column 0, then column 1, and so on. All deterministic scans rely on this.
type Grid struct {
	W, H int
	C    []Cell
}

func NewGrid(w, h int) *Grid {
	g := &Grid{W: w, H: h, C: make([]Cell, w*h)}
	for i := range g.C {
		g.C[i].Influence = NoInfluence
	}
	return g
}

func (g *Grid) Idx(x, y int) int      { return x*g.H + y }
func (g *Grid) XY(idx int) (int, int) { return idx / g.H, idx % g.H }

// InBounds checks if coordinates are within grid boundaries
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.W && y >= 0 && y < g.H
}

// GetCell safely returns a cell pointer if coordinates are valid, nil otherwise
func (g *Grid) GetCell(x, y int) *Cell {
	if !g.InBounds(x, y) {
		return nil
	}
	return &g.C[g.Idx(x, y)]
}

// At is GetCell for a Coordinate.
func (g *Grid) At(c Coordinate) *Cell {
	return g.GetCell(c.X, c.Y)
}

// CoordOf returns the coordinate of a cell index.
func (g *Grid) CoordOf(idx int) Coordinate {
	return FromIndex(idx, g.H)
}

// CellRef pairs a cell with its position, as returned by the Find helpers.
type CellRef struct {
	Cell  *Cell
	Coord Coordinate
}

// FindBuildings returns every real building of the given kind in grid order.
func (g *Grid) FindBuildings(kind BuildingKind) []CellRef {
	var refs []CellRef
	for i := range g.C {
		b := g.C[i].Building
		if b != nil && b.Kind == kind {
			refs = append(refs, CellRef{Cell: &g.C[i], Coord: g.CoordOf(i)})
		}
	}
	return refs
}

// FindOwnedBuildings filters FindBuildings by building owner.
func (g *Grid) FindOwnedBuildings(kind BuildingKind, owner Faction) []CellRef {
	var refs []CellRef
	for _, ref := range g.FindBuildings(kind) {
		if ref.Cell.Building.Owner == owner {
			refs = append(refs, ref)
		}
	}
	return refs
}

// FindOwnedCells returns every cell whose territory owner is f.
func (g *Grid) FindOwnedCells(f Faction) []CellRef {
	var refs []CellRef
	for i := range g.C {
		if g.C[i].Owner == f {
			refs = append(refs, CellRef{Cell: &g.C[i], Coord: g.CoordOf(i)})
		}
	}
	return refs
}

// FindTerrain returns every cell with the given terrain in grid order.
func (g *Grid) FindTerrain(t Terrain) []CellRef {
	var refs []CellRef
	for i := range g.C {
		if g.C[i].Terrain == t {
			refs = append(refs, CellRef{Cell: &g.C[i], Coord: g.CoordOf(i)})
		}
	}
	return refs
}

// HasAnyBuilding reports whether any real building stands on the grid.
func (g *Grid) HasAnyBuilding() bool {
	for i := range g.C {
		if g.C[i].HasRealBuilding() {
			return true
		}
	}
	return false
}

// Clone returns a deep copy; buildings are copied by value.
func (g *Grid) Clone() *Grid {
	clone := &Grid{W: g.W, H: g.H, C: make([]Cell, len(g.C))}
	copy(clone.C, g.C)
	for i := range clone.C {
		if b := clone.C[i].Building; b != nil {
			bc := *b
			clone.C[i].Building = &bc
		}
	}
	return clone
}
