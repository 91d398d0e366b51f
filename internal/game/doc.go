// Package game implements the tournament table: a state machine that plays
// one no-limit hold'em hand at a time among a fixed set of seats.
//
// The Table owns all mutable state. Seats are Deciders; each decision is
// requested with a fresh PublicState snapshot and the seat's own hole cards,
// passed through sdk.ValidateAction, and only then applied.
//
// # Basic Usage
//
//	deciders := []game.Decider{
//		game.Local(callingstation.Bot{}, logger),
//		game.Local(random.New(1), logger),
//	}
//	schedule := sdk.BlindSchedule{1: {Small: 10, Big: 20}, 50: {Small: 20, Big: 40}}
//	t, err := game.New(deciders, 1000, schedule, game.WithSeed(42))
//	for !t.Finished() {
//		result, err := t.PlayHand(ctx)
//		...
//		if err := t.VerifyChips(); err != nil {
//			...
//		}
//	}
//
// # Hand Phases
//
// A hand moves through deal, post blinds, the four betting streets with
// their community cards, end of hand and finalize. Any phase before end of
// hand short-circuits to it once fewer than two seats are still contesting.
//
// # Deterministic Testing
//
// With WithSeed, hand n is shuffled with randutil.Derive(seed, n), so whole
// tournaments replay exactly when the deciders are deterministic.
package game
