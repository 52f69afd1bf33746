package weather_test

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"agrosim/entities"
	"agrosim/pkg/weather"
)

type scripted struct {
	vals []float64
	n    int
}

func (s *scripted) Float64() float64 {
	v := s.vals[s.n]
	s.n++
	return v
}

func TestSeason(t *testing.T) {
	cases := []struct {
		day  int
		want entities.Season
	}{
		{0, entities.SeasonSpring},
		{89, entities.SeasonSpring},
		{90, entities.SeasonSummer},
		{179, entities.SeasonSummer},
		{180, entities.SeasonAutumn},
		{269, entities.SeasonAutumn},
		{270, entities.SeasonWinter},
		{364, entities.SeasonWinter},
		{365, entities.SeasonSpring},
		{455, entities.SeasonSummer},
	}
	for _, c := range cases {
		require.Equal(t, c.want, weather.Season(c.day), "day %d", c.day)
	}
}

func TestNextDrawOrder(t *testing.T) {
	// temp noise, rain occurs, rain magnitude, humidity, solar
	src := &scripted{vals: []float64{0.75, 0.1, 0.5, 1.0, 0.0}}
	w := weather.Next(entities.SeasonSpring, 60, src)

	require.Equal(t, 5, src.n)
	require.InDelta(t, 18+2.5, w.Temperature, 1e-9)
	require.InDelta(t, 7.5, w.Rainfall, 1e-9) // 5 * 0.5 * 3
	require.InDelta(t, 65, w.Humidity, 1e-9)
	require.InDelta(t, 500, w.Solar, 1e-9)
}

func TestNextDryDaySkipsMagnitude(t *testing.T) {
	src := &scripted{vals: []float64{0.5, 0.9, 0.5, 0.5}}
	w := weather.Next(entities.SeasonSummer, 50, src)

	require.Equal(t, 4, src.n)
	require.Equal(t, 0.0, w.Rainfall)
	require.InDelta(t, 28, w.Temperature, 1e-9)
	require.InDelta(t, 50, w.Humidity, 1e-9)
	require.InDelta(t, 650, w.Solar, 1e-9)
}

func TestNextClamps(t *testing.T) {
	// winter at the low end of the noise: 8 - 5 stays >= 0; humidity pinned at the floor.
	src := &scripted{vals: []float64{0.0, 0.99, 0.0, 0.0}}
	w := weather.Next(entities.SeasonWinter, 31, src)
	require.InDelta(t, 3, w.Temperature, 1e-9)
	require.Equal(t, 30.0, w.Humidity)
	require.Equal(t, 500.0, w.Solar)

	src = &scripted{vals: []float64{0.5, 0.99, 1.0, 1.0}}
	w = weather.Next(entities.SeasonAutumn, 89, src)
	require.Equal(t, 90.0, w.Humidity)
	require.Equal(t, 800.0, w.Solar)
}

func TestRainfallRoundedToTenth(t *testing.T) {
	src := &scripted{vals: []float64{0.5, 0.0, 0.123456, 0.5, 0.5}}
	w := weather.Next(entities.SeasonAutumn, 50, src)
	require.InDelta(t, 0.4, w.Rainfall, 1e-9) // 1 * 0.123456 * 3 = 0.37
}

func TestNextRanges(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	hum := 65.0
	for day := 1; day <= 2000; day++ {
		w := weather.Next(weather.Season(day), hum, rng)
		hum = w.Humidity
		require.GreaterOrEqual(t, w.Temperature, 0.0)
		require.GreaterOrEqual(t, w.Rainfall, 0.0)
		require.LessOrEqual(t, w.Rainfall, 15.0)
		require.GreaterOrEqual(t, w.Humidity, 30.0)
		require.LessOrEqual(t, w.Humidity, 90.0)
		require.GreaterOrEqual(t, w.Solar, 300.0)
		require.LessOrEqual(t, w.Solar, 1000.0)
	}
}
