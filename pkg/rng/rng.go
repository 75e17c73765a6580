// Package rng supplies every source of "randomness" touched by the core:
// plain deterministic functions of coordinate, age, and seed. Nothing here
// reads a clock, a hardware RNG, or any other source that could vary
// between runs or thread counts — bit-reproducibility (§8 property 1)
// depends on it.
package rng

// hash32 sums its terms under 32-bit wrapping into one value, reused by both
// Mutate and the field-seeding hash below so every deterministic draw in
// the engine shares one mixing idiom.
func hash32(terms ...uint32) uint32 {
	var h uint32
	for _, t := range terms {
		h += t
	}
	return h
}

// Mutate implements the spec's deterministic daughter-genetics adjustment:
// mutate(x,y,z,age,seed) = h mod 3 -> {+0.01, -0.01, 0}, with
// h = 18397*x + 20441*y + 22543*z + 24671*age + 34567*seed computed under
// 32-bit wrapping arithmetic.
func Mutate(x, y, z int32, age uint32, seed uint32) float64 {
	h := hash32(
		18397*uint32(int32(x)),
		20441*uint32(int32(y)),
		22543*uint32(int32(z)),
		24671*age,
		34567*seed,
	)
	switch h % 3 {
	case 0:
		return 0.01
	case 1:
		return -0.01
	default:
		return 0
	}
}

// CoordHash produces a deterministic 32-bit value from a coordinate and a
// world seed, independent of iteration or thread order, for use by
// initialize's field seeding and any other coordinate-keyed deterministic
// draw. It applies a splitmix32-style avalanche so nearby coordinates do
// not produce correlated outputs.
func CoordHash(x, y, z int32, seed uint32) uint32 {
	h := hash32(
		2654435761*uint32(int32(x)),
		2246822519*uint32(int32(y)),
		3266489917*uint32(int32(z)),
		668265263*seed,
	)
	h ^= h >> 16
	h *= 2246822519
	h ^= h >> 13
	h *= 3266489917
	h ^= h >> 16
	return h
}

// Float01 maps a 32-bit hash to a float64 in [0,1).
func Float01(h uint32) float64 {
	return float64(h) / 4294967296.0
}

// CoordFloat01 is the composition of CoordHash and Float01, the primitive
// initialize uses to decide per-voxel occupancy against a density
// threshold and to seed initial field values.
func CoordFloat01(x, y, z int32, seed uint32) float64 {
	return Float01(CoordHash(x, y, z, seed))
}
