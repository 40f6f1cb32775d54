// Package legality decides which candidates a build stage may choose from.
package legality

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// ErrRuleFailed is returned when a compiled ban rule fails while evaluating a candidate.
var ErrRuleFailed = errors.New("ban rule failed")

// Stage names exposed to ban rules.
const (
	StageAbility    = "ability"
	StageMove       = "move"
	StageModItem    = "mod_item"
	StageBattleItem = "battle_item"
)

// BanRule rejects a candidate when Condition evaluates to true.
type BanRule struct {
	Name      string `yaml:"name"`
	Condition string `yaml:"condition"`
}

// CandidateEnv is the environment a ban rule condition is evaluated against.
//
//	Stage == "move" && Name == "Baton Pass"
//	Stage == "ability" && HasFlag("Doubles Only") && !Doubles
type CandidateEnv struct {
	Stage      string
	Name       string
	Category   string // move category, item kind
	MoveType   string
	BasePower  int
	Flags      []string
	Species    string
	Types      []string
	Slot       int
	TeamSize   int
	Doubles    bool
	Ability    string
	Moves      []string
	Strategies []string
}

// HasFlag reports whether the candidate carries flag (case-insensitive).
func (e CandidateEnv) HasFlag(flag string) bool {
	return containsFold(e.Flags, flag)
}

// HasMove reports whether the build already has move name.
func (e CandidateEnv) HasMove(name string) bool {
	return containsFold(e.Moves, name)
}

// HasStrategy reports whether the team has unlocked strategy name.
func (e CandidateEnv) HasStrategy(name string) bool {
	return containsFold(e.Strategies, name)
}

// HasType reports whether the species has type t.
func (e CandidateEnv) HasType(t string) bool {
	return containsFold(e.Types, t)
}

func containsFold(list []string, s string) bool {
	return slices.ContainsFunc(list, func(v string) bool { return strings.EqualFold(v, s) })
}

type compiledRule struct {
	name    string
	program *vm.Program
}

// Filter holds the compiled ban rules. The zero value bans nothing.
type Filter struct {
	rules []compiledRule
}

// Compile type-checks every condition against CandidateEnv.
func Compile(rules []BanRule) (*Filter, error) {
	f := &Filter{rules: make([]compiledRule, 0, len(rules))}
	for _, r := range rules {
		prog, err := expr.Compile(r.Condition, expr.Env(CandidateEnv{}), expr.AsBool())
		if err != nil {
			return nil, fmt.Errorf("compile ban rule %q: %w", r.Name, err)
		}
		f.rules = append(f.rules, compiledRule{name: r.Name, program: prog})
	}
	return f, nil
}

// Banned returns the name of the first rule that rejects env.
// A rule that fails at run time aborts the check.
func (f *Filter) Banned(env CandidateEnv) (string, bool, error) {
	if f == nil {
		return "", false, nil
	}
	for _, r := range f.rules {
		result, err := vm.Run(r.program, env)
		if err != nil {
			return "", false, fmt.Errorf("%w: %q on %s %q: %w", ErrRuleFailed, r.name, env.Stage, env.Name, err)
		}
		if banned, ok := result.(bool); ok && banned {
			return r.name, true, nil
		}
	}
	return "", false, nil
}

// Len returns the number of compiled rules.
func (f *Filter) Len() int {
	if f == nil {
		return 0
	}
	return len(f.rules)
}
