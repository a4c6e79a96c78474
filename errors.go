package zerosum

import (
	"github.com/pkg/errors"
)

var (
	// ErrInvalidInput is returned for payoff matrices that are empty,
	// not rectangular, or contain NaN or infinite entries.
	ErrInvalidInput = errors.New("zerosum: invalid payoff matrix")
	// ErrDegenerateLP is returned when asked to build the linear program
	// of a game in which some player has no strategies.
	ErrDegenerateLP = errors.New("zerosum: degenerate linear program")
)
