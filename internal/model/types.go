// Package model defines shared data structures.
package model

import (
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/verte-zerg/edotune/internal/layout"
	"github.com/verte-zerg/edotune/internal/notation"
	"github.com/verte-zerg/edotune/internal/ratio"
	"github.com/verte-zerg/edotune/internal/temperament"
)

// MaxLimit caps the prime limit accepted from users.
const MaxLimit = 97

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("subgroup", validateSubgroup)
	return v
}

// validateSubgroup accepts dotted prime lists like "2.3.5".
func validateSubgroup(fl validator.FieldLevel) bool {
	_, err := ratio.ParsePrimes(fl.Field().String())
	return err == nil
}

// Descriptor names a temperament and the optional notation and keyboard
// settings to analyse it with.
type Descriptor struct {
	Steps int `validate:"gt=0,lte=10000"`
	// Primes is a dotted subgroup such as "2.5.11.13". Either Primes or
	// Limit is set.
	Primes     string `validate:"omitempty,subgroup"`
	Limit      int    `validate:"omitempty,excluded_with=Primes,gte=2,lte=97"`
	Generators *notation.GeneratorSpec
	Layout     *layout.Spec
	// Ratios are extra intervals to locate.
	Ratios []string `validate:"dive,required"`
}

// Validate checks the descriptor fields.
func (d Descriptor) Validate() error {
	if err := validate.Struct(d); err != nil {
		return fmt.Errorf("invalid temperament: %w", err)
	}
	return nil
}

// Temperament validates d and builds its patent-val temperament.
func (d Descriptor) Temperament() (temperament.Temperament, error) {
	if err := d.Validate(); err != nil {
		return temperament.Temperament{}, err
	}
	primes, err := SubgroupPrimes(d.Primes, d.Limit)
	if err != nil {
		return temperament.Temperament{}, err
	}
	return temperament.New(d.Steps, primes)
}

// ParsedRatios parses the extra ratios.
func (d Descriptor) ParsedRatios() ([]ratio.Ratio, error) {
	out := make([]ratio.Ratio, 0, len(d.Ratios))
	for _, s := range d.Ratios {
		r, err := ratio.Parse(s)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, nil
}

// ScanConfig defines the range and options of an EDO scan.
type ScanConfig struct {
	From    int    `validate:"gt=0"`
	To      int    `validate:"gtefield=From,lte=10000"`
	Primes  string `validate:"omitempty,subgroup"`
	Limit   int    `validate:"omitempty,excluded_with=Primes,gte=2,lte=97"`
	Top     int    `validate:"gte=0"`
	Workers int    `validate:"gte=0,lte=256"`
}

// Validate checks the scan range and options.
func (c ScanConfig) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid scan: %w", err)
	}
	return nil
}

// SubgroupPrimes resolves a dotted prime list, or the primes up to limit when
// the list is empty.
func SubgroupPrimes(primes string, limit int) ([]int, error) {
	if primes != "" {
		return ratio.ParsePrimes(primes)
	}
	if limit > MaxLimit {
		return nil, fmt.Errorf("%w: limit %d exceeds %d", temperament.ErrInvalidSubgroup, limit, MaxLimit)
	}
	list := ratio.PrimesUpTo(limit)
	if len(list) == 0 {
		return nil, fmt.Errorf("%w: no primes up to %d", temperament.ErrInvalidSubgroup, limit)
	}
	return list, nil
}
