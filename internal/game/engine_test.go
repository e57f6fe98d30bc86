package game

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mitchelldurbincs/HexDominion/internal/common"
	"github.com/mitchelldurbincs/HexDominion/internal/game/core"
	"github.com/mitchelldurbincs/HexDominion/internal/game/events"
	"github.com/mitchelldurbincs/HexDominion/internal/game/mapgen"
	"github.com/mitchelldurbincs/HexDominion/internal/game/planner"
	"github.com/mitchelldurbincs/HexDominion/internal/game/rules"
	"github.com/mitchelldurbincs/HexDominion/internal/game/states"
	"github.com/mitchelldurbincs/HexDominion/internal/testutil"
)

// newTestEngine builds an engine over g (or a generated map when g is nil)
// with the stock economy: pool 1000, refinery income 10.
func newTestEngine(t *testing.T, g *core.Grid, opts ...func(*GameConfig)) *Engine {
	t.Helper()
	cfg := GameConfig{
		Grid:           g,
		StartingPool:   1000,
		RefineryIncome: 10,
		Rng:            testutil.NewTestRNG(42),
		Seed:           42,
		GameID:         "test-game",
		Logger:         testutil.NopLogger(),
	}
	for _, opt := range opts {
		opt(&cfg)
	}
	e, err := NewEngine(context.Background(), cfg)
	require.NoError(t, err)
	require.NotNil(t, e)
	return e
}

// depositGrid is a 20x8 grid with two resource deposits.
func depositGrid() *core.Grid {
	g := testutil.CreateTestGrid(20, 8)
	return testutil.WithTerrain(g, core.TerrainResource, core.NewCoordinate(10, 4), core.NewCoordinate(3, 1))
}

func recordEvents(e *Engine, eventType string) *[]events.Event {
	var got []events.Event
	e.EventBus().SubscribeFunc(eventType, func(ev events.Event) {
		got = append(got, ev)
	})
	return &got
}

func TestNewEngine(t *testing.T) {
	e := newTestEngine(t, nil)

	require.NotNil(t, e.Grid())
	defaults := mapgen.DefaultMapConfig()
	assert.Equal(t, defaults.Width, e.Grid().W)
	assert.Equal(t, defaults.Height, e.Grid().H)
	assert.Equal(t, states.PhaseRunning, e.Phase())
	assert.Equal(t, 0, e.CurrentTick())
	assert.Equal(t, 1000, e.Pool(core.FactionHuman))
	assert.Equal(t, 0, e.Pool(core.FactionCPU))
	assert.True(t, e.Pristine())
	assert.False(t, e.IsGameOver())
	assert.Equal(t, "Running", e.GameState())
	assert.Equal(t, planner.DefaultDifficulty, e.Difficulty())
	assert.Equal(t, "test-game", e.GameID())
}

func TestNewEngine_InvalidDifficulty(t *testing.T) {
	_, err := NewEngine(context.Background(), GameConfig{
		Grid:       depositGrid(),
		Difficulty: "nightmare",
		Logger:     testutil.NopLogger(),
	})
	assert.ErrorIs(t, err, core.ErrInvalidDifficulty)
}

func TestNewEngine_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewEngine(ctx, GameConfig{Logger: testutil.NopLogger()})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFirstCommandCenterClaimsRing(t *testing.T) {
	e := newTestEngine(t, depositGrid())
	placed := recordEvents(e, events.TypeBuildingPlaced)

	err := e.Apply(context.Background(),
		&core.SelectCellCommand{X: 9, Y: 4},
		&core.ArmBuildCommand{Kind: core.KindCommandCenter},
		&core.ArmBuildCommand{Kind: core.KindCommandCenter},
	)
	require.NoError(t, err)

	cell := e.Grid().GetCell(9, 4)
	require.True(t, cell.HasRealBuilding())
	assert.Equal(t, core.KindCommandCenter, cell.Building.Kind)
	assert.Equal(t, core.FactionHuman, cell.Building.Owner)
	assert.Equal(t, 0, cell.LandingProgress)

	assert.Equal(t, 700, e.Pool(core.FactionHuman))
	assert.Equal(t, 30, e.CooldownRemaining(core.KindCommandCenter))
	assert.False(t, e.Pristine())
	_, armed := e.Armed()
	assert.False(t, armed)
	require.Len(t, *placed, 1)

	origin := core.NewCoordinate(9, 4)
	for i := range e.Grid().C {
		at := e.Grid().CoordOf(i)
		owner := e.Grid().C[i].Owner
		if common.HexDistance(origin, at) <= 4 {
			assert.Equal(t, core.FactionHuman, owner, "cell %s inside the ring", at)
		} else {
			assert.Equal(t, core.FactionNone, owner, "cell %s outside the ring", at)
		}
	}
}

func TestArmShowsPreview(t *testing.T) {
	e := newTestEngine(t, depositGrid())

	require.NoError(t, e.Apply(context.Background(),
		&core.SelectCellCommand{X: 9, Y: 4},
		&core.ArmBuildCommand{Kind: core.KindCommandCenter},
	))

	kind, armed := e.Armed()
	assert.True(t, armed)
	assert.Equal(t, core.KindCommandCenter, kind)
	cell := e.Grid().GetCell(9, 4)
	require.NotNil(t, cell.Building)
	assert.True(t, cell.Building.IsPlaceholder())
	assert.Equal(t, core.FactionPending, e.Grid().GetCell(10, 4).Owner)
	assert.Equal(t, 1000, e.Pool(core.FactionHuman))
	assert.False(t, e.InvalidSelection())
}

func TestPlannerActsEveryDivisorTicks(t *testing.T) {
	e := newTestEngine(t, depositGrid())
	ctx := context.Background()
	transitions := recordEvents(e, events.TypePlannerTransition)

	require.NoError(t, e.Tick(ctx))
	require.NoError(t, e.Tick(ctx))
	assert.Equal(t, planner.StateInit, e.PlannerState())
	assert.Empty(t, e.Grid().FindOwnedBuildings(core.KindCommandCenter, core.FactionCPU))

	require.NoError(t, e.Tick(ctx))
	assert.Equal(t, planner.StateCommandCenterBuilt, e.PlannerState())
	ccs := e.Grid().FindOwnedBuildings(core.KindCommandCenter, core.FactionCPU)
	require.Len(t, ccs, 1)
	// First free deposit in grid order is (3,1); the site to its right wins.
	assert.Equal(t, core.NewCoordinate(4, 1), ccs[0].Coord)
	require.Len(t, *transitions, 1)

	// The opponent builds for free. Its command center ends the pristine
	// map, but the human has yet to build one and so cannot lose.
	assert.Equal(t, 0, e.Pool(core.FactionCPU))
	assert.False(t, e.Pristine())
	assert.False(t, e.IsGameOver())
}

func TestOpponentBuildEndsFreePlacement(t *testing.T) {
	e := newTestEngine(t, depositGrid())
	ctx := context.Background()
	for i := 0; i < 3; i++ {
		require.NoError(t, e.Tick(ctx))
	}
	require.Len(t, e.Grid().FindOwnedBuildings(core.KindCommandCenter, core.FactionCPU), 1)
	require.False(t, e.Pristine())

	require.NoError(t, e.SelectCell(18, 7))
	require.NoError(t, e.ArmBuild(core.KindTurret))
	assert.True(t, e.InvalidSelection())

	err := e.ArmBuild(core.KindTurret)
	assert.ErrorIs(t, err, core.ErrOutsideTerritory)
	assert.Nil(t, e.Grid().GetCell(18, 7).Building)
	assert.Equal(t, 1000, e.Pool(core.FactionHuman))
	assert.False(t, e.PlacementMask(core.KindTurret)[core.NewCoordinate(18, 7).ToIndex(8)])

	// A first command center may still go on open ground.
	require.NoError(t, e.SelectCell(16, 5))
	require.NoError(t, e.ArmBuild(core.KindCommandCenter))
	require.NoError(t, e.ConfirmBuild())
	assert.True(t, e.Grid().GetCell(16, 5).HasRealBuilding())
	assert.Equal(t, 700, e.Pool(core.FactionHuman))

	require.NoError(t, e.Tick(ctx))
	assert.False(t, e.IsGameOver())
}

func TestSetDifficultyChangesCadence(t *testing.T) {
	e := newTestEngine(t, depositGrid())
	ctx := context.Background()

	require.NoError(t, e.Apply(ctx, &core.SetDifficultyCommand{Level: "extreme"}))
	assert.Equal(t, "extreme", e.Difficulty())

	require.NoError(t, e.Tick(ctx))
	assert.Equal(t, planner.StateInit, e.PlannerState())
	require.NoError(t, e.Tick(ctx))
	assert.Equal(t, planner.StateCommandCenterBuilt, e.PlannerState())

	err := e.Apply(ctx, &core.SetDifficultyCommand{Level: "nightmare"})
	assert.ErrorIs(t, err, core.ErrInvalidDifficulty)
	assert.Equal(t, "extreme", e.Difficulty())
}

func TestTurretDestroysCommandCenterForWin(t *testing.T) {
	g := testutil.CreateDuelSetup()
	testutil.PlaceLanded(g, 3, 8, 3, core.KindTurret, core.FactionHuman)
	e := newTestEngine(t, g)
	ended := recordEvents(e, events.TypeGameEnded)
	damaged := recordEvents(e, events.TypeBuildingDamaged)
	ctx := context.Background()

	for i := 0; i < 24; i++ {
		require.NoError(t, e.Tick(ctx))
	}
	assert.False(t, e.IsGameOver())
	assert.Equal(t, 20, e.Grid().GetCell(12, 3).Building.HP)

	require.NoError(t, e.Tick(ctx))
	assert.True(t, e.IsGameOver())
	assert.Equal(t, rules.OutcomeWin, e.Outcome())
	assert.Equal(t, core.FactionHuman, e.Winner())
	assert.Equal(t, "Win", e.GameState())
	assert.Equal(t, states.PhaseWon, e.Phase())
	assert.Nil(t, e.Grid().GetCell(12, 3).Building)
	assert.Len(t, *damaged, 25)

	require.Len(t, *ended, 1)
	ev := (*ended)[0].(*events.GameEndedEvent)
	assert.Equal(t, core.FactionHuman, ev.Winner)
	assert.Equal(t, 25, ev.FinalTick)

	err := e.Tick(ctx)
	assert.ErrorIs(t, err, core.ErrGameOver)
	err = e.Step(ctx)
	assert.ErrorIs(t, err, core.ErrGameOver)
	err = e.Apply(ctx, &core.ArmBuildCommand{Kind: core.KindTurret})
	assert.ErrorIs(t, err, core.ErrGameOver)
}

func TestTurretDestroysCommandCenterForLoss(t *testing.T) {
	g := testutil.CreateDuelSetup()
	testutil.PlaceLanded(g, 3, 6, 3, core.KindTurret, core.FactionCPU)
	e := newTestEngine(t, g)
	ctx := context.Background()

	for i := 0; i < 25; i++ {
		require.NoError(t, e.Tick(ctx))
	}
	assert.Equal(t, rules.OutcomeLose, e.Outcome())
	assert.Equal(t, core.FactionCPU, e.Winner())
	assert.Equal(t, "Lose", e.GameState())
	assert.Equal(t, states.PhaseLost, e.Phase())
}

func TestNoVerdictBeforeOpponentBuilds(t *testing.T) {
	g := testutil.CreateTestGrid(20, 8)
	testutil.PlaceLanded(g, 1, 2, 3, core.KindCommandCenter, core.FactionHuman)
	e := newTestEngine(t, g)

	for i := 0; i < 5; i++ {
		require.NoError(t, e.Tick(context.Background()))
	}
	assert.False(t, e.IsGameOver())
}

func TestArmBuildRejections(t *testing.T) {
	tests := []struct {
		name    string
		at      core.Coordinate
		kind    core.BuildingKind
		wantErr error
	}{
		{"impassable", core.NewCoordinate(0, 0), core.KindTurret, core.ErrImpassable},
		{"refinery off deposit", core.NewCoordinate(3, 3), core.KindRefinery, core.ErrNotResourceDeposit},
		{"enemy territory", core.NewCoordinate(12, 4), core.KindTurret, core.ErrEnemyTerritory},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := testutil.CreateDuelSetup()
			testutil.WithTerrain(g, core.TerrainImpassable, core.NewCoordinate(0, 0))
			e := newTestEngine(t, g)

			require.NoError(t, e.SelectCell(tt.at.X, tt.at.Y))
			err := e.ArmBuild(tt.kind)

			assert.ErrorIs(t, err, tt.wantErr)
			var perr *core.PlacementError
			assert.ErrorAs(t, err, &perr)
			_, armed := e.Armed()
			assert.False(t, armed)
		})
	}
}

func TestConfirmOutsideTerritoryKeepsBuildArmed(t *testing.T) {
	e := newTestEngine(t, testutil.CreateDuelSetup())
	require.False(t, e.Pristine())

	require.NoError(t, e.SelectCell(18, 0))
	require.NoError(t, e.ArmBuild(core.KindTurret))
	assert.True(t, e.InvalidSelection())
	assert.True(t, e.Grid().GetCell(18, 0).InvalidSelection)

	err := e.ArmBuild(core.KindTurret)
	assert.ErrorIs(t, err, core.ErrOutsideTerritory)
	kind, armed := e.Armed()
	assert.True(t, armed)
	assert.Equal(t, core.KindTurret, kind)
	assert.Equal(t, 1000, e.Pool(core.FactionHuman))
	assert.Nil(t, e.Grid().GetCell(18, 0).Building)
}

func TestCommandCenterMayBeBuiltOutsideTerritory(t *testing.T) {
	e := newTestEngine(t, testutil.CreateDuelSetup())

	require.NoError(t, e.SelectCell(18, 0))
	require.NoError(t, e.ArmBuild(core.KindCommandCenter))
	require.NoError(t, e.ConfirmBuild())

	b := e.Grid().GetCell(18, 0).Building
	require.NotNil(t, b)
	assert.Equal(t, core.KindCommandCenter, b.Kind)
	assert.Equal(t, 700, e.Pool(core.FactionHuman))
}

func TestInsufficientResources(t *testing.T) {
	e := newTestEngine(t, depositGrid(), func(c *GameConfig) { c.StartingPool = 100 })

	require.NoError(t, e.SelectCell(9, 4))
	require.NoError(t, e.ArmBuild(core.KindCommandCenter))
	err := e.ConfirmBuild()

	assert.ErrorIs(t, err, core.ErrInsufficientResources)
	assert.Equal(t, 100, e.Pool(core.FactionHuman))
	assert.False(t, e.Grid().GetCell(9, 4).HasRealBuilding())
	assert.True(t, e.Pristine())
	assert.Equal(t, 0, e.CooldownRemaining(core.KindCommandCenter))
}

func TestCooldownBlocksUntilClockAdvances(t *testing.T) {
	e := newTestEngine(t, testutil.CreateDuelSetup())

	require.NoError(t, e.SelectCell(3, 3))
	require.NoError(t, e.ArmBuild(core.KindTurret))
	require.NoError(t, e.ConfirmBuild())
	assert.Equal(t, 800, e.Pool(core.FactionHuman))
	assert.Equal(t, 5, e.CooldownRemaining(core.KindTurret))

	require.NoError(t, e.SelectCell(1, 3))
	require.NoError(t, e.ArmBuild(core.KindTurret))
	err := e.ConfirmBuild()
	assert.ErrorIs(t, err, core.ErrCooldownActive)
	assert.Equal(t, 800, e.Pool(core.FactionHuman))

	e.AdvanceClock(4500 * time.Millisecond)
	assert.Equal(t, 1, e.CooldownRemaining(core.KindTurret))
	e.AdvanceClock(500 * time.Millisecond)
	assert.Equal(t, 0, e.CooldownRemaining(core.KindTurret))
	assert.Empty(t, e.Cooldowns())

	require.NoError(t, e.ConfirmBuild())
	assert.Equal(t, 600, e.Pool(core.FactionHuman))
	assert.True(t, e.Grid().GetCell(1, 3).HasRealBuilding())
}

func TestCancelBuild(t *testing.T) {
	e := newTestEngine(t, depositGrid())

	assert.ErrorIs(t, e.CancelBuild(), core.ErrNoBuildArmed)
	assert.ErrorIs(t, e.ConfirmBuild(), core.ErrNoBuildArmed)

	require.NoError(t, e.SelectCell(9, 4))
	require.NoError(t, e.ArmBuild(core.KindCommandCenter))
	require.NoError(t, e.CancelBuild())

	_, armed := e.Armed()
	assert.False(t, armed)
	assert.Nil(t, e.Grid().GetCell(9, 4).Building)
	assert.Empty(t, e.Grid().FindOwnedCells(core.FactionPending))
}

func TestSelectionDisarms(t *testing.T) {
	e := newTestEngine(t, depositGrid())

	require.NoError(t, e.SelectCell(9, 4))
	require.NoError(t, e.ArmBuild(core.KindCommandCenter))
	require.NoError(t, e.MoveSelection(1, 0))

	_, armed := e.Armed()
	assert.False(t, armed)
	assert.Equal(t, core.NewCoordinate(10, 4), e.Selection())
	assert.Nil(t, e.Grid().GetCell(9, 4).Building)
}

func TestMoveSelectionClamps(t *testing.T) {
	e := newTestEngine(t, depositGrid())

	require.NoError(t, e.MoveSelection(-5, -5))
	assert.Equal(t, core.NewCoordinate(0, 0), e.Selection())
	require.NoError(t, e.MoveSelection(100, 100))
	assert.Equal(t, core.NewCoordinate(19, 7), e.Selection())

	assert.ErrorIs(t, e.SelectCell(20, 0), core.ErrInvalidCoordinates)
}

func TestDemolish(t *testing.T) {
	e := newTestEngine(t, testutil.CreateDuelSetup())
	destroyed := recordEvents(e, events.TypeBuildingDestroyed)

	assert.ErrorIs(t, e.Demolish(12, 3), core.ErrNoBuilding)
	assert.ErrorIs(t, e.Demolish(5, 5), core.ErrNoBuilding)

	require.NoError(t, e.Demolish(2, 3))
	assert.Nil(t, e.Grid().GetCell(2, 3).Building)
	assert.Empty(t, e.Grid().FindOwnedCells(core.FactionHuman))
	require.Len(t, *destroyed, 1)
	assert.Equal(t, events.CauseDemolish, (*destroyed)[0].(*events.BuildingDestroyedEvent).Cause)

	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, rules.OutcomeLose, e.Outcome())
}

func TestRestartRebuildsRound(t *testing.T) {
	e := newTestEngine(t, depositGrid())
	ctx := context.Background()
	started := recordEvents(e, events.TypeGameStarted)

	require.NoError(t, e.Apply(ctx,
		&core.SelectCellCommand{X: 9, Y: 4},
		&core.ArmBuildCommand{Kind: core.KindCommandCenter},
		&core.ArmBuildCommand{Kind: core.KindCommandCenter},
	))
	for i := 0; i < 3; i++ {
		require.NoError(t, e.Tick(ctx))
	}
	require.False(t, e.Pristine())

	require.NoError(t, e.Apply(ctx, &core.RestartCommand{}))

	assert.Equal(t, states.PhaseRunning, e.Phase())
	assert.Equal(t, 0, e.CurrentTick())
	assert.Equal(t, 1000, e.Pool(core.FactionHuman))
	assert.True(t, e.Pristine())
	assert.Equal(t, planner.StateInit, e.PlannerState())
	assert.Equal(t, 0, e.CooldownRemaining(core.KindCommandCenter))
	assert.False(t, e.Grid().HasAnyBuilding())
	assert.Len(t, *started, 1)
	assert.Equal(t, 1, e.StateMachine().GetContext().Restarts)
}

func TestRestartAfterVerdict(t *testing.T) {
	g := testutil.CreateDuelSetup()
	testutil.PlaceLanded(g, 3, 8, 3, core.KindTurret, core.FactionHuman)
	e := newTestEngine(t, g)
	ctx := context.Background()
	for !e.IsGameOver() {
		require.NoError(t, e.Tick(ctx))
	}

	require.NoError(t, e.Restart())
	assert.False(t, e.IsGameOver())
	assert.Equal(t, rules.OutcomeNone, e.Outcome())
	assert.Equal(t, states.PhaseRunning, e.Phase())
	assert.Equal(t, 500, e.Grid().GetCell(12, 3).Building.HP)
}

func TestLandingIncrement(t *testing.T) {
	tests := []struct {
		progress, step, want int
	}{
		{0, 4, 5},
		{50, 4, 3},
		{75, 4, 2},
		{99, 4, 1},
		{0, 0, 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, landingIncrement(tt.progress, tt.step), "progress %d step %d", tt.progress, tt.step)
	}
}

func TestAdvanceFrameLandsAndTicks(t *testing.T) {
	e := newTestEngine(t, depositGrid(), func(c *GameConfig) { c.FramesPerTick = 3 })
	ctx := context.Background()

	require.NoError(t, e.Apply(ctx,
		&core.SelectCellCommand{X: 9, Y: 4},
		&core.ArmBuildCommand{Kind: core.KindCommandCenter},
		&core.ArmBuildCommand{Kind: core.KindCommandCenter},
	))
	cell := e.Grid().GetCell(9, 4)

	ticked, err := e.AdvanceFrame(ctx)
	require.NoError(t, err)
	assert.False(t, ticked)
	assert.Equal(t, 5, cell.LandingProgress)

	ticked, err = e.AdvanceFrame(ctx)
	require.NoError(t, err)
	assert.False(t, ticked)
	assert.Equal(t, 0, e.CurrentTick())

	ticked, err = e.AdvanceFrame(ctx)
	require.NoError(t, err)
	assert.True(t, ticked)
	assert.Equal(t, 1, e.CurrentTick())
	assert.Equal(t, 3, e.CurrentFrame())

	for i := 0; i < 500 && !cell.IsLanded(); i++ {
		_, err := e.AdvanceFrame(ctx)
		require.NoError(t, err)
	}
	assert.Equal(t, core.LandingComplete, cell.LandingProgress)
}

func TestStepRunsOneTick(t *testing.T) {
	e := newTestEngine(t, depositGrid(), func(c *GameConfig) { c.FramesPerTick = 4 })
	ctx := context.Background()

	require.NoError(t, e.Step(ctx))
	assert.Equal(t, 1, e.CurrentTick())
	assert.Equal(t, 4, e.CurrentFrame())

	require.NoError(t, e.Step(ctx))
	assert.Equal(t, 2, e.CurrentTick())
	assert.Equal(t, 8, e.CurrentFrame())
}

func TestRefineryIncome(t *testing.T) {
	g := testutil.CreateDuelSetup()
	testutil.WithTerrain(g, core.TerrainResource, core.NewCoordinate(3, 3), core.NewCoordinate(4, 3))
	testutil.PlaceLanded(g, 3, 3, 3, core.KindRefinery, core.FactionHuman)
	e := newTestEngine(t, g)
	gathered := recordEvents(e, events.TypeResourcesGathered)

	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, 1010, e.Pool(core.FactionHuman))
	require.Len(t, *gathered, 1)

	// A refinery still landing earns nothing.
	require.NoError(t, e.SelectCell(4, 3))
	require.NoError(t, e.ArmBuild(core.KindRefinery))
	require.NoError(t, e.ConfirmBuild())
	assert.Equal(t, 910, e.Pool(core.FactionHuman))
	require.NoError(t, e.Tick(context.Background()))
	assert.Equal(t, 920, e.Pool(core.FactionHuman))
}

func TestStatsTrackHoldings(t *testing.T) {
	g := testutil.CreateDuelSetup()
	testutil.PlaceLanded(g, 3, 3, 3, core.KindTurret, core.FactionHuman)
	e := newTestEngine(t, g)
	require.NoError(t, e.Tick(context.Background()))

	human := e.Stats(core.FactionHuman)
	assert.Equal(t, 2, human.Buildings)
	assert.Equal(t, 1, human.CommandCenters)
	assert.Equal(t, 1, human.Turrets)
	assert.Equal(t, 0, human.Landing)
	assert.Equal(t, 1000, human.Pool)
	assert.Positive(t, human.Cells)

	cpu := e.Stats(core.FactionCPU)
	assert.Equal(t, 1, cpu.CommandCenters)
}

func TestSelectedCellInfo(t *testing.T) {
	g := depositGrid()
	testutil.WithTerrain(g, core.TerrainImpassable, core.NewCoordinate(0, 0))
	testutil.PlaceLanded(g, 1, 2, 3, core.KindCommandCenter, core.FactionHuman)
	e := newTestEngine(t, g)

	tests := []struct {
		at   core.Coordinate
		want string
	}{
		{core.NewCoordinate(0, 0), "Impassable"},
		{core.NewCoordinate(10, 4), "Resource Deposit"},
		{core.NewCoordinate(2, 3), core.KindCommandCenter.DisplayName()},
		{core.NewCoordinate(5, 5), ""},
	}
	for _, tt := range tests {
		require.NoError(t, e.SelectCell(tt.at.X, tt.at.Y))
		assert.Equal(t, tt.want, e.SelectedCellInfo(), "cell %s", tt.at)
	}
	assert.Equal(t, "", DescribeCell(nil))
}

func TestPlacementMask(t *testing.T) {
	e := newTestEngine(t, testutil.CreateDuelSetup())
	g := e.Grid()

	mask := e.PlacementMask(core.KindTurret)
	require.Len(t, mask, len(g.C))
	assert.True(t, mask[g.Idx(3, 3)])
	assert.False(t, mask[g.Idx(2, 3)], "occupied")
	assert.False(t, mask[g.Idx(12, 4)], "enemy territory")
	assert.False(t, mask[g.Idx(18, 0)], "unowned after the first build")
}

func TestPlainBoard(t *testing.T) {
	g := testutil.CreateDuelSetup()
	testutil.WithTerrain(g, core.TerrainResource, core.NewCoordinate(5, 0))
	testutil.WithTerrain(g, core.TerrainImpassable, core.NewCoordinate(19, 7))
	e := newTestEngine(t, g)

	board := e.PlainBoard()
	assert.Contains(t, board, "H"+CommandCenterSymbol)
	assert.Contains(t, board, "C"+CommandCenterSymbol)
	assert.Contains(t, board, DepositSymbol)
	assert.Contains(t, board, ImpassableSymbol)
	assert.NotContains(t, board, ColorReset)
	// Header, two sublines per row, blank line, legend.
	assert.Len(t, strings.Split(strings.TrimRight(board, "\n"), "\n"), 1+2*g.H+2)

	assert.Contains(t, e.Board(), ColorBlue)
}

func TestScriptedHumanOpensWithCommandCenter(t *testing.T) {
	e := newTestEngine(t, depositGrid())
	human := NewScriptedHuman(testutil.NewTestRNG(7), testutil.NopLogger())

	cmds := human.NextCommands(e)
	require.Len(t, cmds, 3)
	require.NoError(t, e.Apply(context.Background(), cmds...))

	ccs := e.Grid().FindOwnedBuildings(core.KindCommandCenter, core.FactionHuman)
	require.Len(t, ccs, 1)
	assert.Equal(t, core.NewCoordinate(9, 4), ccs[0].Coord)

	// The command center cooldown does not block a refinery next.
	cmds = human.NextCommands(e)
	require.Len(t, cmds, 3)
	require.NoError(t, e.Apply(context.Background(), cmds...))
	refineries := e.Grid().FindOwnedBuildings(core.KindRefinery, core.FactionHuman)
	require.Len(t, refineries, 1)
	assert.Equal(t, core.NewCoordinate(10, 4), refineries[0].Coord)
}

func TestScriptedHumanAdvancesTurretsTowardEnemy(t *testing.T) {
	e := newTestEngine(t, testutil.CreateDuelSetup())
	human := NewScriptedHuman(testutil.NewTestRNG(7), testutil.NopLogger())
	cpuCC := core.NewCoordinate(12, 3)

	closest := -1
	for _, site := range e.placement.LegalSites(e.Grid(), core.KindTurret, core.FactionHuman, e.Pristine()) {
		if d := common.HexDistance(site, cpuCC); closest < 0 || d < closest {
			closest = d
		}
	}
	require.Positive(t, closest)

	cmds := human.NextCommands(e)
	require.Len(t, cmds, 3)
	require.NoError(t, e.Apply(context.Background(), cmds...))

	turrets := e.Grid().FindOwnedBuildings(core.KindTurret, core.FactionHuman)
	require.Len(t, turrets, 1)
	assert.Equal(t, closest, common.HexDistance(turrets[0].Coord, cpuCC))
	assert.Equal(t, 800, e.Pool(core.FactionHuman))
}
