package engine

// RuleError is a rejected-operation reason. Engine entry points return one
// of the constants below instead of panicking; a failed call leaves the Room
// exactly as it was, and the message is safe to surface to the offending
// client directly.
type RuleError string

// Error implements the error interface.
func (e RuleError) Error() string { return string(e) }

const (
	ErrGameNotStarted   RuleError = "the game has not started yet"
	ErrGameCompleted    RuleError = "the game is already over"
	ErrEmptySelection   RuleError = "no tiles selected"
	ErrNotYourTurn      RuleError = "it's not your turn"
	ErrInvalidSelection RuleError = "selected tiles must form a connected path of distinct tiles"
	ErrNotAWord         RuleError = "that's not a word"
	ErrPlayerNotFound   RuleError = "player not found in this room"
	ErrInsufficientGems RuleError = "not enough gems"
	ErrNotInSwapMode    RuleError = "no letter swap in progress"
)
