// Package sdk is the surface shared between the tournament engine and the
// agents that play in it.
//
// An agent sees the table only through PublicState, a copy that carries no
// other seat's hole cards, and answers with a Decision. Whatever it answers is
// passed through ValidateAction before the table applies it, so agents may be
// sloppy about amounts and legality without breaking the game.
//
// # Basic Usage
//
//	type myAgent struct{}
//
//	func (myAgent) Decide(state sdk.PublicState, hole poker.HoleCards) sdk.Decision {
//		legal := state.Legal(state.WhoseTurn)
//		if legal.Check {
//			return sdk.Check()
//		}
//		return sdk.Call()
//	}
//
//	func init() {
//		sdk.Register("mine", func(sdk.AgentConfig) sdk.Agent { return myAgent{} })
//	}
package sdk
