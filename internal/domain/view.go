package domain

import (
	"math"
	"time"
)

const (
	// forecastDays is the number of upcoming days shown, today excluded.
	forecastDays = 5

	dateLayout = "2006-01-02"
	hourLayout = "2006-01-02T15:00"
)

// BuildView combines a forecast and a resolved place into a WeatherView.
// "Today" and the current hour are evaluated in the location's zone using the
// package clock. Missing optional series are tolerated; BuildView never fails.
func BuildView(f Forecast, place PlaceName) WeatherView {
	now := clock.Now().In(f.Zone())
	today := todayIndex(f.Daily, now.Format(dateLayout))
	uvNow := currentUV(f, today, now)

	view := WeatherView{
		Place:      place,
		Coordinate: f.Coordinate,
		Timezone:   f.Timezone,
		LocalTime:  now,
		Current: CurrentView{
			CurrentConditions: f.Current,
			Description:       DescribeWeather(f.Current.WeatherCode),
			Icon:              WeatherIcon(f.Current.WeatherCode, f.Current.IsDay),
		},
		UVNow:        uvNow,
		UV:           ClassifyUV(uvNow),
		VisibilityKm: visibilityKm(f.Hourly),
		Forecast:     upcomingDays(f.Daily),
	}

	if today >= 0 {
		view.TodaySun = &SunTimes{
			Sunrise: f.Daily[today].Sunrise,
			Sunset:  f.Daily[today].Sunset,
		}
	}
	return view
}

// todayIndex returns the index of the daily entry dated date, or -1.
func todayIndex(daily []DailyPoint, date string) int {
	for i, d := range daily {
		if d.Date == date {
			return i
		}
	}
	return -1
}

// currentUV picks hourly UV at the current hour, then today's daily max,
// then 0. A non-null hourly value wins even when it is zero.
func currentUV(f Forecast, today int, now time.Time) float64 {
	if i := hourIndex(f.Hourly, now); i < len(f.Hourly.UVIndex) && f.Hourly.UVIndex[i] != nil {
		return *f.Hourly.UVIndex[i]
	}

	if today < 0 {
		today = 0
	}
	if today < len(f.Daily) && f.Daily[today].UVIndexMax != nil {
		return *f.Daily[today].UVIndexMax
	}
	return 0
}

// hourIndex locates the current local hour in the hourly series. Without a
// matching timestamp it falls back to the hour of day, which is the index of
// the current hour when the series starts at local midnight today.
func hourIndex(h HourlySeries, now time.Time) int {
	stamp := now.Format(hourLayout)
	for i, t := range h.Time {
		if t == stamp {
			return i
		}
	}
	return now.Hour()
}

func visibilityKm(h HourlySeries) *float64 {
	if len(h.Visibility) == 0 || h.Visibility[0] == nil {
		return nil
	}
	km := math.Round(*h.Visibility[0]/1000*10) / 10
	return &km
}

// upcomingDays returns daily entries 1 through 5, clamped to the series length.
func upcomingDays(daily []DailyPoint) []ForecastDay {
	end := min(len(daily), forecastDays+1)
	if end <= 1 {
		return []ForecastDay{}
	}

	days := make([]ForecastDay, 0, end-1)
	for _, d := range daily[1:end] {
		days = append(days, ForecastDay{
			DailyPoint:  d,
			Weekday:     shortWeekday(d.Date),
			Description: DescribeWeather(d.WeatherCode),
			Icon:        WeatherIcon(d.WeatherCode, true),
		})
	}
	return days
}

func shortWeekday(date string) string {
	t, err := time.Parse(dateLayout, date)
	if err != nil {
		return ""
	}
	return t.Weekday().String()[:3]
}
