package core

import (
	"encoding/binary"
	"fmt"
	"math"
	"math/rand/v2"
)

// Stream is the deterministic pseudorandom source threaded through the
// bounce loop. It is the only stateful object of a render: for a fixed seed
// and a fixed draw order every render is bit-reproducible.
//
// A Stream is not safe for concurrent use; parallel work units each get
// their own stream through Derive.
type Stream struct {
	seed  [32]byte
	rng   *rand.Rand
	limit int // negative means unbounded
	drawn int
}

// NewStream creates a ChaCha8 backed stream from a 64-bit seed
func NewStream(seed uint64) *Stream {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:8], seed)
	return newStreamFromKey(key)
}

func newStreamFromKey(key [32]byte) *Stream {
	return &Stream{
		seed:  key,
		rng:   rand.New(rand.NewChaCha8(key)),
		limit: -1,
	}
}

// WithLimit bounds the number of draws the stream will serve.
// A bounded bounce loop never needs more than samples*(bounces+1) draws.
func (s *Stream) WithLimit(limit int) *Stream {
	s.limit = limit
	return s
}

// Derive forks a reproducible sub-stream identified by keys (for example the
// pixel coordinates). Derived streams do not consume draws from s.
func (s *Stream) Derive(keys ...uint64) *Stream {
	var words [4]uint64
	for i := range words {
		words[i] = binary.LittleEndian.Uint64(s.seed[i*8:])
	}
	for i, k := range keys {
		words[i%4] ^= splitMix64(k + uint64(i+1)*0x9e3779b97f4a7c15)
	}
	var key [32]byte
	acc := uint64(len(keys))
	for i := range words {
		acc = splitMix64(acc ^ words[i])
		binary.LittleEndian.PutUint64(key[i*8:], acc)
	}
	return newStreamFromKey(key)
}

// Drawn returns the number of draws served so far
func (s *Stream) Drawn() int {
	return s.drawn
}

func (s *Stream) take() error {
	if s.limit >= 0 && s.drawn >= s.limit {
		return fmt.Errorf("%d draws requested from a stream bounded to %d: %w", s.drawn+1, s.limit, ErrStreamExhausted)
	}
	s.drawn++
	return nil
}

// UnitSphere draws a point uniformly distributed on the unit sphere surface
func (s *Stream) UnitSphere() (Vec3, error) {
	if err := s.take(); err != nil {
		return Vec3{}, err
	}
	return SampleOnUnitSphere(s.rng.Float64(), s.rng.Float64()), nil
}

// Jitter draws a sub-pixel offset, both components in [0, 1)
func (s *Stream) Jitter() (float64, float64, error) {
	if err := s.take(); err != nil {
		return 0, 0, err
	}
	return s.rng.Float64(), s.rng.Float64(), nil
}

func splitMix64(x uint64) uint64 {
	x += 0x9e3779b97f4a7c15
	x = (x ^ (x >> 30)) * 0xbf58476d1ce4e5b9
	x = (x ^ (x >> 27)) * 0x94d049bb133111eb
	return x ^ (x >> 31)
}

// SampleOnUnitSphere maps two uniform samples to a uniform direction on the unit sphere
func SampleOnUnitSphere(u, v float64) Vec3 {
	z := 1.0 - 2.0*u // z ∈ [-1, 1]
	r := math.Sqrt(math.Max(0, 1.0-z*z))
	phi := 2.0 * math.Pi * v
	return NewVec3(r*math.Cos(phi), r*math.Sin(phi), z)
}

// CosWeightedRandomRay draws a bounce ray leaving point, distributed
// approximately proportionally to the cosine of the angle to normal.
// The direction is normalize(normalize(normal) + p) with p uniform on the
// unit sphere.
func CosWeightedRandomRay(point Point, normal Vec3, stream *Stream) (Ray, error) {
	n, err := normal.Normalize()
	if err != nil {
		return Ray{}, err
	}
	p, err := stream.UnitSphere()
	if err != nil {
		return Ray{}, err
	}
	direction, err := n.Add(p).Normalize()
	if err != nil {
		return Ray{}, err
	}
	return NewRay(point, direction), nil
}

// UniformWeightedRandomRay draws a bounce ray leaving point, uniformly
// distributed over the hemisphere around normal.
func UniformWeightedRandomRay(point Point, normal Vec3, stream *Stream) (Ray, error) {
	p, err := stream.UnitSphere()
	if err != nil {
		return Ray{}, err
	}
	if p.Dot(normal) < 0 {
		p = p.Negate()
	}
	return NewRay(point, p), nil
}

// SamplingScheme selects how bounce directions are drawn
type SamplingScheme int

const (
	CosineWeighted SamplingScheme = iota
	UniformWeighted
)

func (s SamplingScheme) String() string {
	switch s {
	case CosineWeighted:
		return "cosine"
	case UniformWeighted:
		return "uniform"
	default:
		return fmt.Sprintf("SamplingScheme(%d)", int(s))
	}
}

// ParseSamplingScheme parses "cosine" or "uniform"
func ParseSamplingScheme(name string) (SamplingScheme, error) {
	switch name {
	case "", "cosine":
		return CosineWeighted, nil
	case "uniform":
		return UniformWeighted, nil
	default:
		return 0, fmt.Errorf("unknown sampling scheme %q (want cosine or uniform)", name)
	}
}

// Sample draws the next bounce ray with this scheme
func (s SamplingScheme) Sample(point Point, normal Vec3, stream *Stream) (Ray, error) {
	if s == UniformWeighted {
		return UniformWeightedRandomRay(point, normal, stream)
	}
	return CosWeightedRandomRay(point, normal, stream)
}
