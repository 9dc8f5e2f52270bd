package synth

import "math"

const (
	lutSize = 1024
	lutMask = lutSize - 1
)

var sinLUT [lutSize + 1]float64

func init() {
	for i := range sinLUT {
		sinLUT[i] = math.Sin(2 * math.Pi * float64(i) / lutSize)
	}
}

// fastSin is a table sine with linear interpolation, accurate to ~1e-5.
func fastSin(x float64) float64 {
	f := x * (lutSize / (2 * math.Pi))
	fl := math.Floor(f)
	i := int(int64(fl) & lutMask)
	frac := f - fl
	return sinLUT[i] + (sinLUT[i+1]-sinLUT[i])*frac
}

func fastCos(x float64) float64 {
	return fastSin(x + math.Pi/2)
}

// hash2 mixes a cell and a seed into a well-spread 32-bit value.
func hash2(x, y int, seed uint32) uint32 {
	h := uint32(x)*0x27d4eb2d ^ uint32(y)*0x165667b1 ^ seed*0x9e3779b9
	h ^= h >> 15
	h *= 0x85ebca6b
	h ^= h >> 13
	h *= 0xc2b2ae35
	h ^= h >> 16
	return h
}

// unit maps hash2 onto [0,1).
func unit(x, y int, seed uint32) float64 {
	return float64(hash2(x, y, seed)) / (1 << 32)
}
