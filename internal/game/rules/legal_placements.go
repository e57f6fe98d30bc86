package rules

import "github.com/mitchelldurbincs/HexDominion/internal/game/core"

// PlacementChecker decides where a faction may put a building. It checks
// terrain and territory only; cost and cooldown belong to the build manager.
type PlacementChecker struct{}

func NewPlacementChecker() *PlacementChecker {
	return &PlacementChecker{}
}

// CanArm reports whether a build of kind may be armed on the cell. Arming is
// looser than placing: unowned cells are fine, the preview shows the result.
func (pc *PlacementChecker) CanArm(g *core.Grid, kind core.BuildingKind, at core.Coordinate, faction core.Faction) error {
	cell := g.At(at)
	if cell == nil {
		return core.ErrInvalidCoordinates
	}
	if cell.IsImpassable() {
		return core.ErrImpassable
	}
	if cell.Owner == faction.Opponent() {
		return core.ErrEnemyTerritory
	}
	if kind == core.KindRefinery && !cell.IsResource() {
		return core.ErrNotResourceDeposit
	}
	return nil
}

// CheckSite validates a placement against current (preview-free) territory.
// Before the first build every free cell is open; afterwards only command
// centers may be placed outside the faction's own territory.
func (pc *PlacementChecker) CheckSite(g *core.Grid, kind core.BuildingKind, at core.Coordinate, faction core.Faction, pristine bool) error {
	if err := pc.CanArm(g, kind, at, faction); err != nil {
		return err
	}
	cell := g.At(at)
	if cell.HasRealBuilding() {
		return core.ErrCellOccupied
	}
	if !pristine && kind != core.KindCommandCenter && cell.Owner != faction {
		return core.ErrOutsideTerritory
	}
	return nil
}

// Mask returns, in grid order, whether each cell passes CheckSite.
func (pc *PlacementChecker) Mask(g *core.Grid, kind core.BuildingKind, faction core.Faction, pristine bool) []bool {
	mask := make([]bool, len(g.C))
	for i := range g.C {
		mask[i] = pc.CheckSite(g, kind, g.CoordOf(i), faction, pristine) == nil
	}
	return mask
}

// LegalSites lists the coordinates allowed by Mask.
func (pc *PlacementChecker) LegalSites(g *core.Grid, kind core.BuildingKind, faction core.Faction, pristine bool) []core.Coordinate {
	var sites []core.Coordinate
	for i, ok := range pc.Mask(g, kind, faction, pristine) {
		if ok {
			sites = append(sites, g.CoordOf(i))
		}
	}
	return sites
}
