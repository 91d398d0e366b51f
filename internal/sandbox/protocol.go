package sandbox

import (
	"github.com/lox/pokertourney/poker"
	"github.com/lox/pokertourney/sdk"
)

type request struct {
	ID    uint64          `json:"id"`
	State sdk.PublicState `json:"state"`
	Hole  poker.HoleCards `json:"hole"`
}

type response struct {
	ID       uint64       `json:"id"`
	Decision sdk.Decision `json:"decision"`
	// Crash is set when the agent panicked and Decision is the fold the
	// worker substituted.
	Crash string `json:"crash,omitempty"`
}
