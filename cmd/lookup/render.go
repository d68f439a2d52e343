package main

import (
	"fmt"
	"io"
	"math"
	"strings"

	"github.com/couchcryptid/weather-lookup-service/internal/domain"
)

// render writes a plain-text weather card.
func render(w io.Writer, v domain.WeatherView) {
	var b strings.Builder

	fmt.Fprintln(&b, placeLine(v.Place))
	fmt.Fprintf(&b, "%s", v.LocalTime.Format("Monday, January 2 15:04"))
	if v.Timezone != "" {
		fmt.Fprintf(&b, " (%s)", v.Timezone)
	}
	b.WriteString("\n\n")

	c := v.Current
	fmt.Fprintf(&b, "%s %s  %d°C, feels like %d°C\n", c.Icon, c.Description, round(c.TemperatureC), round(c.ApparentTemperatureC))
	fmt.Fprintf(&b, "Humidity %d%%  Wind %d km/h  Pressure %d hPa  Visibility %s\n",
		round(c.RelativeHumidityPct), round(c.WindSpeedKmh), round(c.PressureHpa), visibility(v.VisibilityKm))
	fmt.Fprintf(&b, "UV %d (%s)\n", v.UV.Rounded, v.UV.Level)
	if v.TodaySun != nil {
		fmt.Fprintf(&b, "Sunrise %s  Sunset %s\n", v.TodaySun.Sunrise.Format("15:04"), v.TodaySun.Sunset.Format("15:04"))
	}

	if len(v.Forecast) > 0 {
		b.WriteString("\n")
	}
	for _, d := range v.Forecast {
		fmt.Fprintf(&b, "%-3s  %s %-24s %3d° / %3d°\n", d.Weekday, d.Icon, d.Description, round(d.TempMaxC), round(d.TempMinC))
	}

	io.WriteString(w, b.String()) //nolint:errcheck // terminal output
}

func placeLine(p domain.PlaceName) string {
	if p.Country == "" {
		return p.Label
	}
	return p.Label + ", " + p.Country
}

func visibility(km *float64) string {
	if km == nil {
		return "N/A"
	}
	return fmt.Sprintf("%.1f km", *km)
}

func round(v float64) int {
	return int(math.Round(v))
}
