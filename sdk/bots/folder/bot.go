// Package folder provides an agent that gives up every hand it has to pay
// for.
package folder

import (
	"github.com/lox/pokertourney/poker"
	"github.com/lox/pokertourney/sdk"
)

const Name = "folder"

func init() {
	sdk.Register(Name, func(sdk.AgentConfig) sdk.Agent { return Bot{} })
}

// Bot always folds; the validator turns free folds into checks.
type Bot struct{}

func (Bot) Decide(sdk.PublicState, poker.HoleCards) sdk.Decision {
	return sdk.Fold("folder")
}
