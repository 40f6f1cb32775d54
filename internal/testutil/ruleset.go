package testutil

import (
	"testing"

	"github.com/udisondev/teambuilder/internal/data"
)

// FixtureYAML is a small rain-team ruleset used across package tests.
const FixtureYAML = `
species:
  - name: Pelipper
    types: [Water, Flying]
    base_stats: [60, 50, 100, 95, 70, 65]
    weight: 28
    abilities: [Drizzle, Keen Eye]
    learnset: [Hurricane, Scald, Protect, U-turn, Roost]
  - name: Kingdra
    types: [Water, Dragon]
    base_stats: [75, 95, 95, 95, 95, 85]
    weight: 152
    abilities: [Swift Swim, Sniper]
    learnset: [Draco Meteor, Hydro Pump, Ice Beam, Rain Dance, Protect]
  - name: Garchomp
    types: [Dragon, Ground]
    base_stats: [108, 130, 95, 80, 85, 102]
    weight: 95
    abilities: [Rough Skin]
    learnset: [Earthquake, Dragon Claw, Stone Edge, Swords Dance, Protect, Scale Shot]
  - name: Magikarp
    types: [Water]
    base_stats: [20, 10, 55, 15, 20, 80]
    weight: 10
    has_evolution: true
    abilities: [Swift Swim]
    learnset: [Splash]

moves:
  - {name: Hurricane, type: Flying, category: special, base_power: 110, accuracy: 0.7}
  - {name: Scald, type: Water, category: special, base_power: 80, accuracy: 1}
  - {name: Protect, type: Normal, category: status}
  - {name: U-turn, type: Bug, category: physical, base_power: 70, accuracy: 1, flags: [Contact]}
  - {name: Roost, type: Flying, category: status}
  - {name: Draco Meteor, type: Dragon, category: special, base_power: 130, accuracy: 0.9}
  - {name: Hydro Pump, type: Water, category: special, base_power: 110, accuracy: 0.8}
  - {name: Ice Beam, type: Ice, category: special, base_power: 90, accuracy: 1}
  - {name: Rain Dance, type: Water, category: status}
  - {name: Earthquake, type: Ground, category: physical, base_power: 100, accuracy: 1}
  - {name: Dragon Claw, type: Dragon, category: physical, base_power: 80, accuracy: 1, flags: [Contact]}
  - {name: Stone Edge, type: Rock, category: physical, base_power: 100, accuracy: 0.8}
  - {name: Swords Dance, type: Normal, category: status}
  - {name: Scale Shot, type: Dragon, category: physical, base_power: 25, accuracy: 0.9, flags: [Multihit 2-5]}
  - {name: Splash, type: Normal, category: status}

abilities:
  - {name: Drizzle, flags: [Good First Slot]}
  - {name: Keen Eye}
  - {name: Swift Swim, flags: [Speed]}
  - {name: Sniper, flags: [Offensive]}
  - {name: Rough Skin, flags: [Defensive]}

items:
  - {name: Leftovers, kind: battle, flags: [Recovery]}
  - {name: Choice Specs, kind: battle, flags: [Choice]}
  - {name: Life Orb, kind: battle}
  - {name: Damp Rock, kind: battle}
  - {name: Loaded Dice, kind: battle}
  - {name: Modest Special Spread, kind: mod}
  - {name: Jolly Physical Spread, kind: mod}
  - {name: Bold Bulk Spread, kind: mod}

rules:
  - tag: "Ability:Drizzle"
    enables:
      - {target: "Strategy:Rain"}
  - tag: "Move:Rain Dance"
    enables:
      - {target: "Strategy:Rain"}
  - tag: "Strategy:Rain"
    enables:
      - {target: "Ability:Swift Swim", multiplier: 3}
      - {target: "Item:Damp Rock", multiplier: 4}
    move_mods:
      - {target: "MoveType:Water", kind: power, value: 1.5}
      - {target: "Move:Hurricane", kind: accuracy, value: 1.43}
  - tag: "Ability:Swift Swim"
    disabled: true
    stat_mods:
      - {kind: multiplier, stat: Spe, value: 2}
  - tag: "Ability:Sniper"
    stat_mods:
      - {kind: crit_stage, value: 1}
  - tag: "Ability:Rough Skin"
    weight: 0.5
  - tag: "Species:Kingdra"
    weight_mods:
      - {target: "Ability:Swift Swim", multiplier: 2}
  - tag: "Item:Damp Rock"
    disabled: true
    forces:
      - ["Strategy:Rain"]
  - tag: "Item:Choice Specs"
    stat_mods:
      - {kind: multiplier, stat: SpA, value: 1.5}
  - tag: "Item:Life Orb"
    move_mods:
      - {target: "AnyDamagingMove:Any", kind: power, value: 1.3}
  - tag: "Item:Loaded Dice"
    move_mods:
      - {target: "Move:Scale Shot", kind: add_flag, flag: "Max Hits"}
  - tag: "Item:Leftovers"
    flat: 0.5
  - tag: "Item:Modest Special Spread"
    stat_mods:
      - {kind: ev, stat: SpA, value: 252}
      - {kind: ev, stat: Spe, value: 252}
      - {kind: nature, nature: Modest}
  - tag: "Item:Jolly Physical Spread"
    stat_mods:
      - {kind: ev, stat: Atk, value: 252}
      - {kind: ev, stat: Spe, value: 252}
      - {kind: nature, nature: Jolly}
  - tag: "Item:Bold Bulk Spread"
    stat_mods:
      - {kind: ev, stat: HP, value: 252}
      - {kind: ev, stat: Def, value: 252}
      - {kind: nature, nature: Bold}
  - tag: "Move:Swords Dance"
    stat_mods:
      - {kind: boost, stat: Atk, value: 2}
    enables:
      - {target: "Strategy:Setup"}
  - tag: "Move:Protect"
    weight: 1.5
`

// FixtureRuleset parses FixtureYAML.
func FixtureRuleset(tb testing.TB) *data.Ruleset {
	tb.Helper()
	rs, err := data.ParseRuleset([]byte(FixtureYAML))
	if err != nil {
		tb.Fatalf("parsing fixture ruleset: %v", err)
	}
	return rs
}
