package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
)

// Profile holds the amount of every nutrient in 100g of a food.
// The zero value is a valid, all-zero profile.
type Profile struct {
	values [nutrientCount]float64
}

// NewProfile builds a profile from a sparse set of values.
// Nutrients not mentioned stay at zero.
func NewProfile(values map[Nutrient]float64) (Profile, error) {
	var p Profile
	for n, v := range values {
		if err := p.Set(n, v); err != nil {
			return Profile{}, err
		}
	}
	return p, nil
}

// MustProfile is NewProfile for literal reference data; it panics on bad input.
func MustProfile(values map[Nutrient]float64) Profile {
	p, err := NewProfile(values)
	if err != nil {
		panic(err)
	}
	return p
}

// Get returns the amount of n. Unknown nutrients read as zero.
func (p Profile) Get(n Nutrient) float64 {
	if !n.Valid() {
		return 0
	}
	return p.values[n]
}

// Set stores v for n. Negative or non-finite amounts are rejected.
func (p *Profile) Set(n Nutrient, v float64) error {
	if !n.Valid() {
		return fmt.Errorf("%w: unknown nutrient %d", ErrMalformedInput, int(n))
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Errorf("%w: %s must be finite, got %v", ErrMalformedInput, n.Key(), v)
	}
	if v < 0 {
		return fmt.Errorf("%w: %s must not be negative, got %v", ErrMalformedInput, n.Key(), v)
	}
	p.values[n] = v
	return nil
}

// Each calls fn for every nutrient in display order.
func (p Profile) Each(fn func(n Nutrient, v float64)) {
	for i, v := range p.values {
		fn(Nutrient(i), v)
	}
}

// Scale returns a new profile with every value multiplied by factor.
// Results that are negative or not finite are rejected with ErrMalformedInput.
func (p Profile) Scale(factor float64) (Profile, error) {
	var out Profile
	for i, v := range p.values {
		if err := out.Set(Nutrient(i), v*factor); err != nil {
			return Profile{}, err
		}
	}
	return out, nil
}

// IsZero reports whether every nutrient is zero
func (p Profile) IsZero() bool {
	return p == Profile{}
}

// MarshalJSON writes every nutrient, in display order, keyed by wire key.
func (p Profile) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, v := range p.values {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, _ := json.Marshal(Nutrient(i).Key())
		val, err := json.Marshal(v)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON accepts a sparse object of wire keys. Unknown keys and
// negative amounts are rejected.
func (p *Profile) UnmarshalJSON(data []byte) error {
	var raw map[string]float64
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	var out Profile
	for key, v := range raw {
		n, err := ParseNutrient(key)
		if err != nil {
			return err
		}
		if err := out.Set(n, v); err != nil {
			return err
		}
	}
	*p = out
	return nil
}
