package field

// Player identifies one side of the game. NoPlayer marks unowned cells.
type Player uint8

const (
	NoPlayer Player = iota
	Red
	Black
)

// Next returns the opponent of p.
func (p Player) Next() Player {
	switch p {
	case Red:
		return Black
	case Black:
		return Red
	default:
		return NoPlayer
	}
}

func (p Player) String() string {
	switch p {
	case Red:
		return "red"
	case Black:
		return "black"
	default:
		return "none"
	}
}
