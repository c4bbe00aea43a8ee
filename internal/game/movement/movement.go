package movement

import (
	"math"

	"github.com/duskfield/gridnav/internal/game/grid"
)

const speedCacheCap = 256

// Entity is the minimal surface terrain effects need from a game agent.
type Entity interface {
	Position() grid.WorldPos
	ApplyDamage(amount float64)
	ApplyStatus(effect string)
}

type speedKey struct {
	capability Capability
	cellType   grid.CellType
	override   float64
}

// System resolves (capability × cell type) into traversability and
// speed, and applies terrain effects. It owns a small bounded cache for
// repeated speed lookups; the cache is per-instance so parallel map
// sessions (and tests) never share state.
type System struct {
	speedCache map[speedKey]float64
	cacheOrder []speedKey
	overrides  map[grid.CellType]TerrainRule
}

// NewSystem creates a movement system with an empty speed cache.
func NewSystem() *System {
	return &System{
		speedCache: make(map[speedKey]float64, speedCacheCap),
		cacheOrder: make([]speedKey, 0, speedCacheCap),
	}
}

// SetTerrainRule replaces the rule for one cell type on this instance,
// e.g. to make a terrain hazardous for a specific map. The speed cache
// is dropped since cached multipliers may derive from the old rule.
// Navigation overlays built over this system must Rebuild afterwards to
// pick up the new flags.
func (s *System) SetTerrainRule(t grid.CellType, rule TerrainRule) {
	if s.overrides == nil {
		s.overrides = make(map[grid.CellType]TerrainRule, 4)
	}
	s.overrides[t] = rule
	s.speedCache = make(map[speedKey]float64, speedCacheCap)
	s.cacheOrder = s.cacheOrder[:0]
}

// RuleFor returns the effective rule for a cell type, instance
// overrides included.
func (s *System) RuleFor(t grid.CellType) TerrainRule {
	return s.ruleFor(t)
}

func (s *System) ruleFor(t grid.CellType) TerrainRule {
	if rule, ok := s.overrides[t]; ok {
		return rule
	}
	return RuleFor(t)
}

// CanTraverse reports whether the capability may occupy the cell type.
// Unknown capabilities resolve as Walking.
func (s *System) CanTraverse(c Capability, t grid.CellType) bool {
	rule := s.ruleFor(t)
	switch c.normalize() {
	case Flying:
		return rule.Flyable
	case Swimming:
		return rule.Swimmable
	case Amphibious:
		return rule.Walkable || rule.Swimmable
	case AllTerrain:
		return rule.Walkable || rule.Flyable || rule.Swimmable
	default:
		return rule.Walkable
	}
}

// SpeedMultiplier returns the effective speed multiplier for a
// capability on a cell. Flying ignores terrain penalties: any flyable
// cell is crossed at multiplier 1. A per-cell override wins over the
// rule-table default for ground movement.
func (s *System) SpeedMultiplier(c Capability, cell *grid.Cell) float64 {
	if cell == nil {
		return 0
	}
	c = c.normalize()
	if c == Flying {
		if s.ruleFor(cell.Type).Flyable {
			return 1.0
		}
		return 0
	}

	key := speedKey{capability: c, cellType: cell.Type, override: cell.SpeedOverride}
	if v, ok := s.speedCache[key]; ok {
		return v
	}

	mult := s.ruleFor(cell.Type).SpeedMultiplier
	if cell.SpeedOverride > 0 {
		mult = cell.SpeedOverride
	}

	// Oldest-first eviction when full; access order does not matter
	// for a table this small.
	if len(s.speedCache) >= speedCacheCap {
		oldest := s.cacheOrder[0]
		s.cacheOrder = s.cacheOrder[1:]
		delete(s.speedCache, oldest)
	}
	s.speedCache[key] = mult
	s.cacheOrder = append(s.cacheOrder, key)
	return mult
}

// MoveCost returns the cost of moving between two world positions:
// distance divided by the destination cell's speed multiplier, or +Inf
// when the destination is untraversable. Slow terrain therefore costs
// proportionally more to cross.
func (s *System) MoveCost(from, to grid.WorldPos, g *grid.Grid, c Capability) float64 {
	dest := g.WorldToGrid(to)
	if !s.CanTraverse(c, g.CellTypeAt(dest.X, dest.Y)) {
		return math.Inf(1)
	}
	mult := s.SpeedMultiplier(c, g.CellAt(dest.X, dest.Y))
	if mult <= 0 {
		return math.Inf(1)
	}
	dx := to.X - from.X
	dy := to.Y - from.Y
	return math.Sqrt(dx*dx+dy*dy) / mult
}

// ApplyTerrainEffects applies periodic damage/status from the rule
// table to an entity standing on hazardous terrain. Inert for the
// default terrain set.
func (s *System) ApplyTerrainEffects(e Entity, dt float64, g *grid.Grid) {
	p := g.WorldToGrid(e.Position())
	rule := s.ruleFor(g.CellTypeAt(p.X, p.Y))
	if rule.DamagePerSecond > 0 {
		e.ApplyDamage(rule.DamagePerSecond * dt)
	}
	if rule.StatusEffect != "" {
		e.ApplyStatus(rule.StatusEffect)
	}
}

// SpeedCacheLen reports the current speed-cache population (test hook).
func (s *System) SpeedCacheLen() int {
	return len(s.speedCache)
}
