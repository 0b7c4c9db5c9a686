package recurrent

import (
	"math"
	"math/rand"
	"time"
)

var r = rand.New(rand.NewSource(time.Now().UnixNano()))

// initScale is the standard deviation of freshly initialised weights.
var initScale = math.Sqrt(0.1)

/*
Randf makes random numbers between a and b.
*/
func Randf(a float64, b float64) float64 {
	return r.Float64()*(b-a) + a
}

/*
Randi makes random integers between two integers, hi excluded.
*/
func Randi(low int, hi int) int {
	a := float64(low)
	b := float64(hi)
	return int(math.Floor(r.Float64()*(b-a) + a))
}

/*
SampleIndex draws an index from p, assuming p holds probabilities that sum to one.
*/
func SampleIndex(p []float64) int {
	x := Randf(0, 1)
	acc := 0.0
	for i, pi := range p {
		acc += pi
		if acc > x {
			return i
		}
	}
	return len(p) - 1
}
