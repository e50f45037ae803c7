package systems

import (
	"math"
	"math/rand"
	"testing"
)

func TestBuildPermutationTable_Bijection(t *testing.T) {
	for seed := int64(1); seed <= 20; seed++ {
		table := BuildPermutationTable(rand.New(rand.NewSource(seed)))

		var seen [256]int
		for i := 0; i < 256; i++ {
			v := table[i]
			if v < 0 || v > 255 {
				t.Fatalf("seed %d: table[%d] = %d out of range", seed, i, v)
			}
			seen[v]++
			if table[i] != table[i+256] {
				t.Errorf("seed %d: table[%d] = %d, table[%d] = %d, want equal", seed, i, table[i], i+256, table[i+256])
			}
		}
		for v, n := range seen {
			if n != 1 {
				t.Errorf("seed %d: value %d appears %d times, want 1", seed, v, n)
			}
		}
	}
}

func TestBuildPermutationTable_SeedsDiffer(t *testing.T) {
	a := BuildPermutationTable(rand.New(rand.NewSource(1)))
	b := BuildPermutationTable(rand.New(rand.NewSource(2)))
	if *a == *b {
		t.Error("tables from different seeds are identical")
	}
}

func TestNoise_Deterministic(t *testing.T) {
	table := BuildPermutationTable(rand.New(rand.NewSource(42)))
	points := [][2]float64{{0.5, 0.5}, {12.3, -4.7}, {100.01, 250.9}, {-33.3, 0.001}}
	for _, p := range points {
		a := Noise(p[0], p[1], table)
		b := Noise(p[0], p[1], table)
		if a != b {
			t.Errorf("Noise(%v, %v) = %v then %v, want identical", p[0], p[1], a, b)
		}
	}
}

func TestNoise_Range(t *testing.T) {
	table := BuildPermutationTable(rand.New(rand.NewSource(7)))
	for x := -50.0; x <= 50.0; x += 0.37 {
		for y := -50.0; y <= 50.0; y += 0.41 {
			n := Noise(x, y, table)
			if n < -1 || n > 1 || math.IsNaN(n) {
				t.Fatalf("Noise(%v, %v) = %v, want in [-1, 1]", x, y, n)
			}
		}
	}
}

// cornerTable hashes the four corners of the cell at the origin to the
// given gradients, in (0,0), (1,0), (0,1), (1,1) order.
func cornerTable(h00, h10, h01, h11 int) *PermutationTable {
	t := &PermutationTable{}
	t[0], t[1] = 10, 20 // rows for x=0 and x=1
	t[10], t[11] = 30, 32
	t[20], t[21] = 31, 33
	t[30], t[31], t[32], t[33] = h00, h10, h01, h11
	return t
}

func TestNoise_ClampsPeaks(t *testing.T) {
	tests := []struct {
		name  string
		table *PermutationTable
		raw   float64
		want  float64
	}{
		{"all corners push up", cornerTable(0, 1, 2, 3), 1.5, 1},
		{"all corners push down", cornerTable(3, 2, 1, 0), -1.5, -1},
		{"opposing corners cancel", cornerTable(0, 0, 0, 0), 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := rawNoise(0.5, 0.5, tt.table); math.Abs(got-tt.raw) > 1e-12 {
				t.Errorf("rawNoise = %v, want %v", got, tt.raw)
			}
			if got := Noise(0.5, 0.5, tt.table); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("Noise = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestNoise_ZeroOnLatticePoints(t *testing.T) {
	table := BuildPermutationTable(rand.New(rand.NewSource(3)))
	for x := -5; x <= 5; x++ {
		for y := -5; y <= 5; y++ {
			if n := Noise(float64(x), float64(y), table); n != 0 {
				t.Errorf("Noise(%d, %d) = %v, want 0", x, y, n)
			}
		}
	}
}

func TestGrad(t *testing.T) {
	tests := []struct {
		name string
		hash int
		x, y float64
		want float64
	}{
		{"h0 x plus 2y", 0, 0.25, 0.5, 0.25 + 1.0},
		{"h1 negate x", 1, 0.25, 0.5, -0.25 + 1.0},
		{"h2 negate 2y", 2, 0.25, 0.5, 0.25 - 1.0},
		{"h3 both negated", 3, 0.25, 0.5, -0.25 - 1.0},
		{"h4 swaps axes", 4, 0.25, 0.5, 0.5 + 0.5},
		{"h7 swapped and negated", 7, 0.25, 0.5, -0.5 - 0.5},
		{"only low three bits", 8, 0.25, 0.5, 0.25 + 1.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := grad(tt.hash, tt.x, tt.y); math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("grad(%d, %v, %v) = %v, want %v", tt.hash, tt.x, tt.y, got, tt.want)
			}
		})
	}
}

func TestFade(t *testing.T) {
	tests := []struct {
		t, want float64
	}{
		{0, 0},
		{1, 1},
		{0.5, 0.5},
	}
	for _, tt := range tests {
		if got := fade(tt.t); math.Abs(got-tt.want) > 1e-12 {
			t.Errorf("fade(%v) = %v, want %v", tt.t, got, tt.want)
		}
	}
}
