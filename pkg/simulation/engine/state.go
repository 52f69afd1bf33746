package engine

import (
	"agrosim/entities"
	"agrosim/pkg/economics"
	"agrosim/pkg/growth"
	"agrosim/pkg/history"
	"agrosim/pkg/soil"
	"agrosim/pkg/stress"
	"agrosim/pkg/weather"
)

// Source is the single random stream a run draws from, weather first then pests.
type Source interface {
	Float64() float64
}

// State is all mutable simulation state for one run. Growth stage and
// progress are not stored; they are derived from Day and the crop profile.
type State struct {
	Day     int
	Season  entities.Season
	Weather entities.WeatherSample
	Soil    entities.SoilState
	Pest    entities.PestState
	Stress  stress.Factors
	Harvest *entities.HarvestResult
	History *history.Ring
}

// Env is the static input of a step, resolved from the farm config.
type Env struct {
	Crop entities.CropProfile
	Soil entities.SoilProfile
	Farm entities.FarmConfig
}

// NewState returns the documented defaults of a fresh run.
func NewState() State {
	return State{
		Day:     0,
		Season:  entities.SeasonSpring,
		Weather: weather.Initial(),
		Soil:    soil.Initial(),
		Pest:    entities.PestState{Level: 0, Type: entities.PestNone},
		History: history.New(history.Capacity),
	}
}

func (s State) Progress(crop entities.CropProfile) float64 { return growth.Progress(crop, s.Day) }

func (s State) Stage(crop entities.CropProfile) string {
	return growth.Stage(crop, s.Progress(crop))
}

// Step advances one simulated day. prev is left untouched; every value a
// stage reads was written earlier in the same step:
// day, season, weather, soil, growth, stress, pests, harvest, history.
// The second result reports whether the crop was harvested on this day.
func Step(prev State, env Env, rng Source) (State, bool) {
	next := prev
	next.Day = prev.Day + 1
	next.Season = weather.Season(next.Day)
	next.Weather = weather.Next(next.Season, prev.Weather.Humidity, rng)
	next.Soil = soil.Advance(next.Weather, env.Soil, env.Farm.Irrigation, env.Farm.FertilizerRate, prev.Soil)

	progress := growth.Progress(env.Crop, next.Day)

	next.Stress = stress.Compute(next.Weather, next.Soil, env.Crop)
	next.Pest = stress.AdvancePest(next.Stress.Temp, next.Stress.Water, prev.Pest, rng)

	rec := entities.HistoryRecord{
		Day:          next.Day,
		Growth:       growth.Percent(progress),
		SoilMoisture: next.Soil.Moisture,
		Temperature:  next.Weather.Temperature,
		Rainfall:     next.Weather.Rainfall,
		Biomass:      growth.Biomass(progress, next.Stress.StressFactor()),
		Pests:        next.Pest.Level,
	}

	harvested := false
	if progress >= 1 && prev.Harvest == nil {
		h := economics.Harvest(economics.Inputs{
			Crop:      env.Crop,
			Soil:      env.Soil,
			Farm:      env.Farm,
			Stress:    next.Stress,
			PestLevel: next.Pest.Level,
			Day:       next.Day,
		})
		next.Harvest = &h
		harvested = true
		rec.Yield = h.FinalYield
		rec.Profit = h.ProfitPerHa()
	}

	if prev.History != nil {
		next.History = prev.History.Clone()
	} else {
		next.History = history.New(history.Capacity)
	}
	next.History.Append(rec)
	return next, harvested
}
