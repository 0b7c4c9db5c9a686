package recurrent

import (
	"math"
	"math/rand"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"
)

/*
OneHot returns a vector of length n with a single 1 at index ix.
*/
func OneHot(ix int, n int) *mat.VecDense {
	v := mat.NewVecDense(n, nil)
	v.SetVec(ix, 1)
	return v
}

/*
RandMat makes an n by d matrix of zero-mean normal values with standard deviation std.
*/
func RandMat(rng *rand.Rand, n int, d int, std float64) *mat.Dense {
	data := make([]float64, n*d)
	for i := range data {
		data[i] = rng.NormFloat64() * std
	}
	return mat.NewDense(n, d, data)
}

/*
Sigmoid applies the logistic function to every element of v, in place.
*/
func Sigmoid(v *mat.VecDense) {
	for i := 0; i < v.Len(); i++ {
		v.SetVec(i, 1.0/(1+math.Exp(-v.AtVec(i))))
	}
}

/*
Softmax turns the scores in v into probabilities, in place.
The maximum is subtracted first so large scores don't overflow.
*/
func Softmax(v *mat.VecDense) {
	raw := v.RawVector().Data
	if len(raw) == 0 {
		return
	}
	maxval := floats.Max(raw)
	for i := 0; i < v.Len(); i++ {
		v.SetVec(i, math.Exp(v.AtVec(i)-maxval))
	}
	v.ScaleVec(1/mat.Sum(v), v)
}

// sigmoidPrime is the derivative of the logistic function written in terms of its
// output: s * (1 - s).
func sigmoidPrime(s mat.Vector) *mat.VecDense {
	n := s.Len()
	out := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		si := s.AtVec(i)
		out.SetVec(i, si*(1.0-si))
	}
	return out
}

// outerAdd adds the outer product of a and b to m.
func outerAdd(m *mat.Dense, a mat.Vector, b mat.Vector) {
	m.RankOne(m, 1, a, b)
}

/*
Argmax returns the index of the largest entry of v.
*/
func Argmax(v mat.Vector) int {
	raw := make([]float64, v.Len())
	for i := range raw {
		raw[i] = v.AtVec(i)
	}
	return floats.MaxIdx(raw)
}
