// Package domain models weather lookups against the Open-Meteo and Nominatim
// public APIs.
//
// # Data Sources
//
// Geocoding uses the Open-Meteo geocoding search (count=1, first result wins).
// Forecasts come from the Open-Meteo forecast endpoint with timezone=auto and
// forecast_days=7, so every timestamp in the response is location-local and
// the response carries the location's UTC offset. Reverse geocoding uses
// OpenStreetMap Nominatim at zoom 10 with address details.
//
// # Weather Codes
//
// Conditions are WMO weather interpretation codes (0 clear sky through 99
// thunderstorm with heavy hail). [DescribeWeather] and [WeatherIcon] are total:
// codes outside the table map to [UnknownWeather] and [DefaultWeatherIcon].
//
// # UV Gauge
//
// [ClassifyUV] places a UV index on a five-level gauge:
//
//	Low 0-2 | Moderate 2-5 | High 5-7 | Very High 7-10 | Extreme >10
//
// The gauge percentage is piecewise linear within each band (0-20, 20-50,
// 50-75, 75-95, 95-100) and reaches 100 at UV 15.
//
// # View Building
//
// [BuildView] resolves "today" by matching the local date against the daily
// series and the current hour against the hourly series. The current UV is
// the hourly value at the current hour, then today's daily maximum, then 0.
// The forecast lists the five days after today.
//
// # Place Names
//
// Reverse geocoding never fails a lookup: [ResolvePlace] falls back to a
// coordinate label such as "Location (31.95°, 35.91°)".
package domain
