package animals

import (
	"math"
	"time"
)

// Summary agrupa las métricas derivadas que muestran la lista y el detalle.
type Summary struct {
	CurrentWeight    *float64
	TotalGain        *float64
	AverageDailyGain *float64 // kg/día
	OffspringCount   int
}

// Summarize calcula las métricas a partir del estado del animal.
// Asume pesos ordenados ascendente por fecha (invariante del store).
func Summarize(a Animal) Summary {
	return Summary{
		CurrentWeight:    CurrentWeight(a.Weights),
		TotalGain:        TotalGain(a.Weights, a.EntryWeight),
		AverageDailyGain: AverageDailyGain(a.Weights),
		OffspringCount:   len(a.Offspring),
	}
}

// CurrentWeight devuelve el kg de la última pesada, o nil si no hay pesadas.
func CurrentWeight(weights []WeightReading) *float64 {
	if len(weights) == 0 {
		return nil
	}
	kg := weights[len(weights)-1].Kg
	return &kg
}

// TotalGain = peso actual - peso de ingreso (2 decimales).
func TotalGain(weights []WeightReading, entryWeight float64) *float64 {
	current := CurrentWeight(weights)
	if current == nil {
		return nil
	}
	gain := round(*current-entryWeight, 2)
	return &gain
}

// AverageDailyGain = (último kg - primer kg) / días entre ambas fechas (3 decimales).
// nil con menos de dos pesadas o si ambas caen el mismo día.
func AverageDailyGain(weights []WeightReading) *float64 {
	if len(weights) < 2 {
		return nil
	}
	first := weights[0]
	last := weights[len(weights)-1]

	days, ok := daysBetween(first.Date, last.Date)
	if !ok || days == 0 {
		return nil
	}

	adg := round((last.Kg-first.Kg)/float64(days), 3)
	return &adg
}

// daysBetween devuelve la cantidad de días calendario (redondeada, no negativa) entre dos fechas ISO.
func daysBetween(from, to string) (int, bool) {
	a, err := time.Parse(DateLayout, from)
	if err != nil {
		return 0, false
	}
	b, err := time.Parse(DateLayout, to)
	if err != nil {
		return 0, false
	}
	days := math.Round(math.Abs(b.Sub(a).Hours()) / 24)
	return int(days), true
}

func round(v float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(v*p) / p
}
