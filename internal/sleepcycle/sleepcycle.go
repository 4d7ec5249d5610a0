// Package sleepcycle оценивает число полных циклов сна по его продолжительности.
package sleepcycle

import (
	"errors"
	"fmt"
	"math"
)

// CycleMinutes — длительность одного цикла сна.
const CycleMinutes = 90

// MaxHours — верхняя граница продолжительности сна.
const MaxHours = 24

// ErrInvalidHours — продолжительность вне (0, MaxHours] или не число.
var ErrInvalidHours = errors.New("invalid sleep hours")

// Result — оценка числа циклов.
// Max больше Min на единицу, если остаток не меньше половины цикла.
type Result struct {
	Hours        float64
	Min          int
	Max          int
	ExtraMinutes float64
	Label        string
}

// Estimate считает циклы сна для hours часов.
func Estimate(hours float64) (Result, error) {
	if math.IsNaN(hours) || math.IsInf(hours, 0) || hours <= 0 || hours > MaxHours {
		return Result{}, fmt.Errorf("%w: %v", ErrInvalidHours, hours)
	}

	minutes := hours * 60
	cycles := int(math.Floor(minutes / CycleMinutes))
	extra := math.Mod(minutes, CycleMinutes)

	res := Result{
		Hours:        hours,
		Min:          cycles,
		Max:          cycles,
		ExtraMinutes: extra,
	}
	if extra >= CycleMinutes/2 {
		res.Max = cycles + 1
	}
	res.Label = label(res.Min, res.Max)

	return res, nil
}

func label(lo, hi int) string {
	s := fmt.Sprintf("~%d", lo)
	if hi != lo {
		s += fmt.Sprintf("-%d", hi)
	}

	// как на сайте: число берётся по нижней границе
	if lo == 1 {
		return s + " ciclo"
	}

	return s + " ciclos"
}
