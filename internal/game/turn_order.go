// internal/game/turn_order.go
package game

// TurnOrder is a ring of seat indices into the match's player slice. Every seat is always
// present, so moving the front seat to the back is a head increment.
type TurnOrder struct {
	seats []int
	head  int
}

// NewTurnOrder seats n players in index order.
func NewTurnOrder(n int) *TurnOrder {
	seats := make([]int, n)
	for i := range seats {
		seats[i] = i
	}
	return &TurnOrder{seats: seats}
}

func (o *TurnOrder) Len() int { return len(o.seats) }

// Front is the seat whose turn it is.
func (o *TurnOrder) Front() int {
	return o.seats[o.head]
}

// At returns the seat i places after the front.
func (o *TurnOrder) At(i int) int {
	return o.seats[(o.head+i)%len(o.seats)]
}

// RotateToBack moves the front seat to the back of the order.
func (o *TurnOrder) RotateToBack() {
	o.head = (o.head + 1) % len(o.seats)
}

// BringToFront rotates the ring until seat is at the front, keeping the cyclic order of the rest.
// Unknown seats are ignored.
func (o *TurnOrder) BringToFront(seat int) {
	for i, s := range o.seats {
		if s == seat {
			o.head = i
			return
		}
	}
}

// Seats lists the seats starting from the front.
func (o *TurnOrder) Seats() []int {
	out := make([]int, len(o.seats))
	for i := range out {
		out[i] = o.At(i)
	}
	return out
}
