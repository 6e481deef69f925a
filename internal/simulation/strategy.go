package simulation

// Strategy is a guessing policy for the unmarked questions.
type Strategy int

const (
	StrategyNone Strategy = iota
	StrategyOneThird
	StrategyTwoThirds
	StrategyFull
)

// AllStrategies returns every strategy in display order, NONE first.
func AllStrategies() []Strategy {
	return []Strategy{StrategyNone, StrategyOneThird, StrategyTwoThirds, StrategyFull}
}

// GuessStrategies returns the guessing strategies in tie-break order.
func GuessStrategies() []Strategy {
	return []Strategy{StrategyOneThird, StrategyTwoThirds, StrategyFull}
}

// Label returns the short label used as the key in results ("1/3", "2/3", "3/3").
func (s Strategy) Label() string {
	switch s {
	case StrategyNone:
		return "none"
	case StrategyOneThird:
		return "1/3"
	case StrategyTwoThirds:
		return "2/3"
	case StrategyFull:
		return "3/3"
	default:
		return "unknown"
	}
}

func (s Strategy) String() string {
	return s.Label()
}

// Fraction returns the guess fraction of the unmarked questions as num/den.
func (s Strategy) Fraction() (num, den int) {
	switch s {
	case StrategyOneThird:
		return 1, 3
	case StrategyTwoThirds:
		return 2, 3
	case StrategyFull:
		return 1, 1
	default:
		return 0, 1
	}
}

// GuessedCount returns floor(unmarked * fraction). The result never exceeds unmarked.
func (s Strategy) GuessedCount(unmarked int) int {
	if unmarked <= 0 {
		return 0
	}
	num, den := s.Fraction()
	return unmarked * num / den
}
