package game

import (
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/charmbracelet/log"

	"github.com/lox/pokertourney/internal/randutil"
	"github.com/lox/pokertourney/poker"
	"github.com/lox/pokertourney/sdk"
)

const (
	MinSeats = 2
	MaxSeats = 10
)

var (
	ErrTooFewSeats     = errors.New("too few seats")
	ErrTooManySeats    = errors.New("too many seats")
	ErrInvalidStack    = errors.New("starting stack must be positive")
	ErrInvalidSchedule = errors.New("invalid blind schedule")
	ErrTournamentOver  = errors.New("tournament is over")
)

// Option configures a Table during creation.
type Option func(*tableConfig)

type tableConfig struct {
	seed   *int64
	button int
	stacks []int
	logger *log.Logger
}

// WithSeed makes every shuffle reproducible.
func WithSeed(seed int64) Option {
	return func(c *tableConfig) { c.seed = &seed }
}

// WithButton sets the seat holding the button for the first hand.
func WithButton(seat int) Option {
	return func(c *tableConfig) { c.button = seat }
}

// WithStacks gives each seat its own starting stack, overriding the
// uniform starting stack passed to New.
func WithStacks(stacks ...int) Option {
	return func(c *tableConfig) { c.stacks = stacks }
}

// WithLogger sets the logger; the table logs under the "table" prefix.
func WithLogger(logger *log.Logger) Option {
	return func(c *tableConfig) { c.logger = logger }
}

// Table is the aggregate root of a tournament: seats, stacks, the button,
// the blind schedule and the hand currently being played.
type Table struct {
	deciders []Decider
	logger   *log.Logger

	players     []sdk.PlayerPublicInfo
	hole        []*poker.HoleCards
	contributed []int
	totalChips  int

	deck *poker.Deck
	seed int64

	round     int
	handRound int
	button    int
	blinds    sdk.Blinds
	schedule  sdk.BlindSchedule
	minRaise  int
	whoseTurn int

	community []poker.Card
	pots      []sdk.Pot
	history   sdk.HandHistory
	showdown  *sdk.ShowdownDetail
	archive   []sdk.HandRecord

	// rig, when set, stacks the deck for a round after shuffling.
	rig func(round int) []poker.Card
}

// New creates a table with one seat per decider, each holding startingStack
// chips unless WithStacks says otherwise. The schedule maps round numbers to
// blinds and must contain at least one level; play starts at the blinds of
// the lowest configured round.
func New(deciders []Decider, startingStack int, schedule sdk.BlindSchedule, opts ...Option) (*Table, error) {
	switch {
	case len(deciders) < MinSeats:
		return nil, fmt.Errorf("%w: %d, need at least %d", ErrTooFewSeats, len(deciders), MinSeats)
	case len(deciders) > MaxSeats:
		return nil, fmt.Errorf("%w: %d, at most %d", ErrTooManySeats, len(deciders), MaxSeats)
	case len(schedule) == 0:
		return nil, fmt.Errorf("%w: no levels", ErrInvalidSchedule)
	}
	for round, b := range schedule {
		if round < 1 || b.Small <= 0 || b.Big < b.Small {
			return nil, fmt.Errorf("%w: round %d blinds %d/%d", ErrInvalidSchedule, round, b.Small, b.Big)
		}
	}

	cfg := &tableConfig{}
	for _, opt := range opts {
		opt(cfg)
	}
	if cfg.button < 0 || cfg.button >= len(deciders) {
		return nil, fmt.Errorf("button %d out of range", cfg.button)
	}
	if cfg.logger == nil {
		cfg.logger = log.Default()
	}
	stacks := cfg.stacks
	if stacks == nil {
		stacks = slices.Repeat([]int{startingStack}, len(deciders))
	}
	if len(stacks) != len(deciders) {
		return nil, fmt.Errorf("%w: %d stacks for %d seats", ErrInvalidStack, len(stacks), len(deciders))
	}
	total := 0
	for _, s := range stacks {
		if s <= 0 {
			return nil, fmt.Errorf("%w: %d", ErrInvalidStack, s)
		}
		total += s
	}
	seed := randutil.Entropy()
	if cfg.seed != nil {
		seed = *cfg.seed
	}

	n := len(deciders)
	t := &Table{
		deciders:    slices.Clone(deciders),
		logger:      cfg.logger.WithPrefix("table"),
		players:     make([]sdk.PlayerPublicInfo, n),
		hole:        make([]*poker.HoleCards, n),
		contributed: make([]int, n),
		totalChips:  total,
		deck:        poker.NewDeck(randutil.New(seed)),
		seed:        seed,
		round:       1,
		button:      cfg.button,
		schedule:    maps.Clone(schedule),
		whoseTurn:   sdk.NoSeat,
		history:     sdk.NewHandHistory(),
	}
	t.blinds = schedule[slices.Min(slices.Collect(maps.Keys(schedule)))]
	t.minRaise = t.blinds.Big
	for i := range t.players {
		t.players[i] = sdk.PlayerPublicInfo{Seat: i, Stack: stacks[i]}
	}
	return t, nil
}

// Seed returns the seed the table's shuffles derive from.
func (t *Table) Seed() int64 { return t.seed }

// Round returns the number of the next hand to be played.
func (t *Table) Round() int { return t.round }

// Button returns the seat holding the button.
func (t *Table) Button() int { return t.button }

// Blinds returns the blinds for the next hand.
func (t *Table) Blinds() sdk.Blinds { return t.blinds }

// Seats returns the number of seats.
func (t *Table) Seats() int { return len(t.players) }

// Players returns a copy of every seat's public info.
func (t *Table) Players() []sdk.PlayerPublicInfo { return slices.Clone(t.players) }

// Archive returns copies of the completed hands' records, oldest first. The
// hand most recently played is archived when the next hand starts.
func (t *Table) Archive() []sdk.HandRecord {
	out := make([]sdk.HandRecord, len(t.archive))
	for i, r := range t.archive {
		out[i] = r.Clone()
	}
	return out
}

// Finished reports whether at most one seat still has chips.
func (t *Table) Finished() bool {
	return t.nonBustedCount() <= 1
}

// RevealHoleCards returns the hole cards currently held by seat, or nil if it
// holds none. It is the only accessor for private cards.
func (t *Table) RevealHoleCards(seat int) *poker.HoleCards {
	if seat < 0 || seat >= len(t.hole) || t.hole[seat] == nil {
		return nil
	}
	h := *t.hole[seat]
	return &h
}

func (t *Table) nonBustedCount() int {
	n := 0
	for _, p := range t.players {
		if !p.Busted {
			n++
		}
	}
	return n
}

func (t *Table) activeSeats() []int {
	var seats []int
	for i, p := range t.players {
		if p.Active {
			seats = append(seats, i)
		}
	}
	return seats
}

// nextSeat returns the first seat after from, wrapping, that satisfies ok.
// It returns from itself only when no other seat does.
func (t *Table) nextSeat(from int, ok func(sdk.PlayerPublicInfo) bool) int {
	n := len(t.players)
	for i := 1; i <= n; i++ {
		s := (from + i) % n
		if ok(t.players[s]) {
			return s
		}
	}
	return from
}

func notBusted(p sdk.PlayerPublicInfo) bool { return !p.Busted }

func canAct(p sdk.PlayerPublicInfo) bool { return p.Active && !p.AllIn }

// fromButton orders seats clockwise starting with the seat after the button.
func (t *Table) fromButton(seats []int) []int {
	n := len(t.players)
	out := slices.Clone(seats)
	slices.SortFunc(out, func(a, b int) int {
		return (a-t.button-1+n)%n - (b-t.button-1+n)%n
	})
	return out
}
