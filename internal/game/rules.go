// internal/game/rules.go
package game

// Scoring and seating constants. The game has a single rule set.
const (
	MinPlayers = 3
	MaxPlayers = 4

	// RoundWinBonus goes to the player who empties their hand.
	RoundWinBonus = 4
	// InitialAceBonus is paid for the ace in the first round and grows by AceBonusStep after
	// every round, whether or not the ace was played in it.
	InitialAceBonus = 2
	AceBonusStep    = 2
)

// ValidPlayerCount reports whether n players can sit at the table.
func ValidPlayerCount(n int) bool {
	return n >= MinPlayers && n <= MaxPlayers
}
