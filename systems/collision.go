package systems

// Collide reports whether two organisms overlap. Touching circles do not collide.
func Collide(a, b Organism) bool {
	r := a.Radius() + b.Radius()
	return distSq(a.Position(), b.Position()) < r*r
}
