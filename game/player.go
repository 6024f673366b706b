package game

// Player is the owner of a cell. Empty marks a free cell.
type Player uint8

const (
	Empty Player = iota
	PlayerA
	PlayerB
)

// PlayerA links the top and bottom rows, PlayerB links the left and right columns.
// The assignment is fixed: the pie rule swap relies on Transpose mapping one pair onto the other.

func (p Player) Opponent() Player {
	switch p {
	case PlayerA:
		return PlayerB
	case PlayerB:
		return PlayerA
	default:
		return Empty
	}
}

// Symbol is the single character drawn on the board for the player.
func (p Player) Symbol() rune {
	switch p {
	case PlayerA:
		return 'X'
	case PlayerB:
		return 'O'
	default:
		return '.'
	}
}

func (p Player) String() string {
	switch p {
	case PlayerA:
		return "X"
	case PlayerB:
		return "O"
	default:
		return "empty"
	}
}

// ParsePlayer accepts the symbols used in configuration ("X" or "O").
func ParsePlayer(s string) (Player, bool) {
	switch s {
	case "X", "x":
		return PlayerA, true
	case "O", "o":
		return PlayerB, true
	default:
		return Empty, false
	}
}
