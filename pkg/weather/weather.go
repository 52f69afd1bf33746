// Package weather generates the daily weather sample from the season and a shared random source.
package weather

import (
	"math"

	"agrosim/entities"
)

// Source is the random stream shared by the weather and pest models.
// *rand.Rand satisfies it.
type Source interface {
	Float64() float64
}

const (
	rainChance     = 0.3
	minHumidity    = 30.0
	maxHumidity    = 90.0
	solarBase      = 650.0
	minSolar       = 300.0
	maxSolar       = 1000.0
	tempSpread     = 10.0  // U(-5,+5)
	humiditySpread = 10.0  // U(-5,+5)
	solarSpread    = 300.0 // U(-150,+150)
)

// Season maps a simulated day onto the four 90-day seasons of a 365-day year.
func Season(day int) entities.Season {
	d := day % 365
	if d < 0 {
		d += 365
	}
	switch {
	case d < 90:
		return entities.SeasonSpring
	case d < 180:
		return entities.SeasonSummer
	case d < 270:
		return entities.SeasonAutumn
	default:
		return entities.SeasonWinter
	}
}

func baseTemperature(s entities.Season) float64 {
	switch s {
	case entities.SeasonSummer:
		return 28
	case entities.SeasonWinter:
		return 8
	default:
		return 18
	}
}

func baseRainfall(s entities.Season) float64 {
	switch s {
	case entities.SeasonSummer:
		return 2
	case entities.SeasonSpring:
		return 5
	default:
		return 1
	}
}

// Next draws one day of weather. The draw order is fixed: temperature noise,
// rain occurrence, rain magnitude (only on rainy days), humidity delta, solar delta.
func Next(season entities.Season, prevHumidity float64, rng Source) entities.WeatherSample {
	temp := math.Max(0, baseTemperature(season)+(rng.Float64()-0.5)*tempSpread)

	rain := 0.0
	if rng.Float64() < rainChance {
		rain = baseRainfall(season) * rng.Float64() * 3
		rain = math.Round(rain*10) / 10
	}

	humidity := clamp(prevHumidity+(rng.Float64()-0.5)*humiditySpread, minHumidity, maxHumidity)
	solar := clamp(solarBase+(rng.Float64()-0.5)*solarSpread, minSolar, maxSolar)

	return entities.WeatherSample{
		Temperature: temp,
		Humidity:    humidity,
		Rainfall:    rain,
		Solar:       solar,
	}
}

// Initial is the sample shown before the first simulated day.
func Initial() entities.WeatherSample {
	return entities.WeatherSample{Temperature: 22, Humidity: 65, Rainfall: 0, Solar: 850}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
