package draft

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/gaara-aza/saimon/internal/roster"
)

// WinPoints is the fixed reward added to each winning player's points.
// There is no draw state.
const WinPoints = 3

// Defaults for the canonical three-team session.
const (
	DefaultTeamCount  = 3
	DefaultMinPlayers = 6
)

// Engine partitions the roster into disjoint teams and records match results.
type Engine struct {
	store      roster.RosterStore
	teamCount  int
	minPlayers int
	rnd        *rand.Rand
}

// Option configures an Engine.
type Option func(*Engine)

// WithTeamCount overrides the number of teams produced by Randomize.
func WithTeamCount(n int) Option {
	return func(e *Engine) { e.teamCount = n }
}

// WithMinPlayers overrides the minimum roster size required for a draw.
func WithMinPlayers(n int) Option {
	return func(e *Engine) { e.minPlayers = n }
}

// WithRand supplies a deterministic source, for tests.
func WithRand(rnd *rand.Rand) Option {
	return func(e *Engine) { e.rnd = rnd }
}

// New creates an Engine with the canonical defaults.
func New(store roster.RosterStore, opts ...Option) *Engine {
	e := &Engine{
		store:      store,
		teamCount:  DefaultTeamCount,
		minPlayers: DefaultMinPlayers,
		rnd:        rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// TeamCount reports the number of teams the engine draws.
func (e *Engine) TeamCount() int {
	return e.teamCount
}

// Randomize shuffles the active roster and replaces all team memberships with
// a fresh disjoint partition. Teams 1..N-1 each receive count/N players; the
// last team absorbs the remainder. Captains are reset. Returns the new teams.
func (e *Engine) Randomize() ([]roster.Team, error) {
	players, err := e.store.ListPlayers()
	if err != nil {
		return nil, fmt.Errorf("failed to load roster: %w", err)
	}

	active := players[:0:0]
	for _, p := range players {
		if p.Active {
			active = append(active, p)
		}
	}

	if len(active) < e.minPlayers {
		return nil, &roster.ValidationError{
			Reason: fmt.Sprintf("at least %d players are required, have %d", e.minPlayers, len(active)),
		}
	}

	e.rnd.Shuffle(len(active), func(i, j int) {
		active[i], active[j] = active[j], active[i]
	})

	perTeam := len(active) / e.teamCount
	assignments := make([]roster.TeamAssignment, 0, e.teamCount)
	for i := 0; i < e.teamCount; i++ {
		start := i * perTeam
		end := start + perTeam
		if i == e.teamCount-1 {
			// The last team absorbs the remainder of the division.
			end = len(active)
		}
		ids := make([]int64, 0, end-start)
		for _, p := range active[start:end] {
			ids = append(ids, p.ID)
		}
		assignments = append(assignments, roster.TeamAssignment{
			TeamID:    int64(i + 1),
			TeamName:  fmt.Sprintf("Team %d", i+1),
			PlayerIDs: ids,
		})
	}

	if err := e.store.ReplaceMemberships(assignments); err != nil {
		return nil, fmt.Errorf("failed to write assignment: %w", err)
	}

	log.Info("Randomized teams", "players", len(active), "teams", e.teamCount, "perTeam", perTeam)
	return e.store.ListTeams()
}

// AddToTeam manually places a player on a team. Membership exclusivity is
// enforced by the store.
func (e *Engine) AddToTeam(playerID, teamID int64) error {
	return e.store.AddMember(teamID, playerID)
}

// RemoveFromTeam takes a player off a team; a removed captain loses the
// captaincy as a side effect.
func (e *Engine) RemoveFromTeam(playerID, teamID int64) error {
	return e.store.RemoveMember(teamID, playerID)
}

// RecordResult applies a declared match winner to every affected player's
// cumulative statistics as one atomic unit.
func (e *Engine) RecordResult(winningTeamID int64) error {
	return e.store.ApplyMatchResult(winningTeamID, WinPoints)
}
