package systems

import (
	"math"
	"math/rand"
)

// PermutationTable is a shuffled [0,255] duplicated to 512 entries so
// corner hashing never needs to wrap.
type PermutationTable [512]int

// BuildPermutationTable shuffles [0,255] with one random swap per slot.
func BuildPermutationTable(rng *rand.Rand) *PermutationTable {
	var base [256]int
	for i := range base {
		base[i] = i
	}
	for i := range base {
		j := int(rng.Float64() * 256)
		base[i], base[j] = base[j], base[i]
	}

	t := &PermutationTable{}
	for i := 0; i < 256; i++ {
		t[i] = base[i]
		t[i+256] = base[i]
	}
	return t
}

// Noise returns 2D gradient noise at (x, y), clamped to [-1, 1]. The
// unclamped value reaches +-1.5 where all four corner gradients agree.
func Noise(x, y float64, t *PermutationTable) float64 {
	return math.Max(-1, math.Min(1, rawNoise(x, y, t)))
}

func rawNoise(x, y float64, t *PermutationTable) float64 {
	fx := math.Floor(x)
	fy := math.Floor(y)
	X := int(fx) & 255
	Y := int(fy) & 255
	x -= fx
	y -= fy

	u := fade(x)
	v := fade(y)

	A := t[X] + Y
	AA := t[A]
	AB := t[A+1]
	B := t[X+1] + Y
	BA := t[B]
	BB := t[B+1]

	return lerp(v,
		lerp(u, grad(t[AA], x, y), grad(t[BA], x-1, y)),
		lerp(u, grad(t[AB], x, y-1), grad(t[BB], x-1, y-1)),
	)
}

// fade is the quintic 6t^5 - 15t^4 + 10t^3.
func fade(t float64) float64 {
	return t * t * t * (t*(t*6-15) + 10)
}

func lerp(t, a, b float64) float64 {
	return a + t*(b-a)
}

// grad picks a dominant axis from the low hash bits and weights the
// other axis by 2.
func grad(hash int, x, y float64) float64 {
	h := hash & 7
	u, v := y, x
	if h < 4 {
		u, v = x, y
	}
	if h&1 != 0 {
		u = -u
	}
	if h&2 != 0 {
		v = -2 * v
	} else {
		v = 2 * v
	}
	return u + v
}
