// Package bots registers every reference agent. Import it for side effects.
package bots

import (
	_ "github.com/lox/pokertourney/sdk/bots/aggressive"
	_ "github.com/lox/pokertourney/sdk/bots/callingstation"
	_ "github.com/lox/pokertourney/sdk/bots/folder"
	_ "github.com/lox/pokertourney/sdk/bots/random"
)
