package util

// DivideAndFloor divides a by b rounding towards negative infinity. b must be
// positive.
func DivideAndFloor(a int, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}
