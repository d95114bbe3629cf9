package rng

// ISAAC64 as used by NetHack: 256 words of state, output
// consumed from the top of the result block downwards.

const (
	isaacSizeLog = 8
	isaacSize    = 1 << isaacSizeLog
	isaacGolden  = 0x9E3779B97F4A7C13
)

type isaac64 struct {
	n       int
	r       [isaacSize]uint64
	m       [isaacSize]uint64
	a, b, c uint64
}

func lowerBits(x uint64) uint64 { return (x >> 3) & (isaacSize - 1) }
func upperBits(y uint64) uint64 { return (y >> (isaacSizeLog + 3)) & (isaacSize - 1) }

func (s *isaac64) step(i int, mix uint64, other int) {
	m := &s.m
	x := m[i]
	s.a = mix + m[other]
	y := m[lowerBits(x)] + s.a + s.b
	m[i] = y
	s.b = m[upperBits(y)] + x
	s.r[i] = s.b
}

func (s *isaac64) update() {
	s.c++
	s.b += s.c
	half := isaacSize / 2
	for i := 0; i < isaacSize; i += 4 {
		other := i + half
		if i >= half {
			other = i - half
		}
		s.step(i, ^(s.a ^ (s.a << 21)), other)
		s.step(i+1, s.a^(s.a>>5), other+1)
		s.step(i+2, s.a^(s.a<<12), other+2)
		s.step(i+3, s.a^(s.a>>33), other+3)
	}
	s.n = isaacSize
}

var mixShift = [8]uint{9, 9, 23, 15, 14, 20, 17, 14}

func isaacMix(x *[8]uint64) {
	for i := 0; i < 8; i += 2 {
		x[i] -= x[(i+4)&7]
		x[(i+5)&7] ^= x[(i+7)&7] >> mixShift[i]
		x[(i+7)&7] += x[i]
		j := i + 1
		x[j] -= x[(j+4)&7]
		x[(j+5)&7] ^= x[(j+7)&7] << mixShift[j]
		x[(j+7)&7] += x[j]
	}
}

// seed initialises the state from raw seed bytes (little-endian words).
func (s *isaac64) seed(b []byte) {
	*s = isaac64{}
	if len(b) > isaacSize*8 {
		b = b[:isaacSize*8]
	}
	i := 0
	for ; i < len(b)>>3; i++ {
		var w uint64
		for k := 7; k >= 0; k-- {
			w = w<<8 | uint64(b[i<<3|k])
		}
		s.r[i] ^= w
	}
	if rest := len(b) - i<<3; rest > 0 {
		var w uint64
		for k := 0; k < rest; k++ {
			w |= uint64(b[i<<3|k]) << (8 * k)
		}
		s.r[i] ^= w
	}

	var x [8]uint64
	for k := range x {
		x[k] = isaacGolden
	}
	for k := 0; k < 4; k++ {
		isaacMix(&x)
	}
	for i := 0; i < isaacSize; i += 8 {
		for j := 0; j < 8; j++ {
			x[j] += s.r[i+j]
		}
		isaacMix(&x)
		copy(s.m[i:i+8], x[:])
	}
	for i := 0; i < isaacSize; i += 8 {
		for j := 0; j < 8; j++ {
			x[j] += s.m[i+j]
		}
		isaacMix(&x)
		copy(s.m[i:i+8], x[:])
	}
	s.update()
}

func (s *isaac64) next() uint64 {
	if s.n == 0 {
		s.update()
	}
	s.n--
	return s.r[s.n]
}
