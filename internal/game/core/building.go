package core

import "fmt"

// BuildingKind discriminates the building variants.
type BuildingKind int

const (
	KindCommandCenter BuildingKind = iota
	KindTurret
	KindRefinery
	// KindPlaceholder is the transient build preview. It takes part in
	// territory propagation and is removed at the start of every pass.
	KindPlaceholder
)

// BuildableKinds lists the kinds a faction may construct, in hotkey order.
var BuildableKinds = []BuildingKind{KindCommandCenter, KindTurret, KindRefinery}

func (k BuildingKind) String() string {
	switch k {
	case KindCommandCenter:
		return "command_center"
	case KindTurret:
		return "turret"
	case KindRefinery:
		return "refinery"
	case KindPlaceholder:
		return "placeholder"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// DisplayName is the human readable label shown in selection info.
func (k BuildingKind) DisplayName() string {
	switch k {
	case KindCommandCenter:
		return "Command Center"
	case KindTurret:
		return "Turret"
	case KindRefinery:
		return "Refinery"
	default:
		return ""
	}
}

// ParseBuildingKind converts a string to a BuildingKind
func ParseBuildingKind(s string) (BuildingKind, error) {
	switch s {
	case "command_center", "commandCenter", "cc":
		return KindCommandCenter, nil
	case "turret":
		return KindTurret, nil
	case "refinery", "mine":
		return KindRefinery, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownBuilding, s)
	}
}

// Template is the immutable blueprint a building is instantiated from.
// Damage and Range are only meaningful for turrets.
type Template struct {
	Kind     BuildingKind
	Cost     int
	Area     int
	Cooldown int // seconds of wall-clock time
	MaxHP    int
	Damage   int
	Range    int
}

// Templates is the read-only registry shared by every component.
type Templates map[BuildingKind]Template

// DefaultTemplates mirrors the stock balance of the game.
func DefaultTemplates() Templates {
	return Templates{
		KindCommandCenter: {Kind: KindCommandCenter, Cost: 300, Area: 4, Cooldown: 30, MaxHP: 500},
		KindTurret:        {Kind: KindTurret, Cost: 200, Area: 2, Cooldown: 5, MaxHP: 200, Damage: 20, Range: 6},
		KindRefinery:      {Kind: KindRefinery, Cost: 100, Area: 1, Cooldown: 10, MaxHP: 100},
	}
}

// Get returns the template for kind or ErrUnknownBuilding.
func (t Templates) Get(kind BuildingKind) (Template, error) {
	tpl, ok := t[kind]
	if !ok {
		return Template{}, fmt.Errorf("%w: %s", ErrUnknownBuilding, kind)
	}
	return tpl, nil
}

// MaxArea is the largest influence radius of any template.
func (t Templates) MaxArea() int {
	maxArea := 0
	for _, tpl := range t {
		if tpl.Area > maxArea {
			maxArea = tpl.Area
		}
	}
	return maxArea
}

// Building is a placed instance.
type Building struct {
	ID        int
	Kind      BuildingKind
	Owner     Faction
	HP        int
	MaxHP     int
	Area      int
	Damage    int
	Range     int
	CreatedAt int // simulation tick
}

// NewBuilding instantiates tpl at full health.
func NewBuilding(id int, tpl Template, owner Faction, tick int) *Building {
	return &Building{
		ID:        id,
		Kind:      tpl.Kind,
		Owner:     owner,
		HP:        tpl.MaxHP,
		MaxHP:     tpl.MaxHP,
		Area:      tpl.Area,
		Damage:    tpl.Damage,
		Range:     tpl.Range,
		CreatedAt: tick,
	}
}

// NewPlaceholder creates the preview building for a prospective kind.
func NewPlaceholder(area int) *Building {
	return &Building{Kind: KindPlaceholder, Owner: FactionPending, Area: area}
}

func (b *Building) IsPlaceholder() bool   { return b.Kind == KindPlaceholder }
func (b *Building) IsTurret() bool        { return b.Kind == KindTurret }
func (b *Building) IsCommandCenter() bool { return b.Kind == KindCommandCenter }
func (b *Building) IsRefinery() bool      { return b.Kind == KindRefinery }
func (b *Building) IsDestroyed() bool     { return b.HP <= 0 }

// HPFraction is current over max health, clamped to [0,1].
func (b *Building) HPFraction() float64 {
	if b.MaxHP <= 0 {
		return 0
	}
	f := float64(b.HP) / float64(b.MaxHP)
	if f < 0 {
		return 0
	}
	return f
}
