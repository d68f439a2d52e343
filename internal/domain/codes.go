package domain

// DefaultWeatherIcon is shown for weather codes missing from the icon table.
const DefaultWeatherIcon = iconSunSmallCld

// UnknownWeather is the description for weather codes missing from the table.
const UnknownWeather = "Unknown"

// weatherDescriptions maps WMO weather interpretation codes to descriptions.
var weatherDescriptions = map[int]string{
	0:  "Clear sky",
	1:  "Mainly clear",
	2:  "Partly cloudy",
	3:  "Overcast",
	45: "Fog",
	48: "Depositing rime fog",
	51: "Light drizzle",
	53: "Moderate drizzle",
	55: "Dense drizzle",
	56: "Light freezing drizzle",
	57: "Dense freezing drizzle",
	61: "Slight rain",
	63: "Moderate rain",
	65: "Heavy rain",
	66: "Light freezing rain",
	67: "Heavy freezing rain",
	71: "Slight snow fall",
	73: "Moderate snow fall",
	75: "Heavy snow fall",
	77: "Snow grains",
	80: "Slight rain showers",
	81: "Moderate rain showers",
	82: "Violent rain showers",
	85: "Slight snow showers",
	86: "Heavy snow showers",
	95: "Thunderstorm",
	96: "Thunderstorm with slight hail",
	99: "Thunderstorm with heavy hail",
}

const (
	iconSun          = "☀️"
	iconMoon         = "\U0001F319"
	iconSunSmallCld  = "\U0001F324️"
	iconSunBehindCld = "⛅"
	iconCloud        = "☁️"
	iconFog          = "\U0001F32B️"
	iconSunRain      = "\U0001F326️"
	iconRain         = "\U0001F327️"
	iconSnowCloud    = "\U0001F328️"
	iconSnowflake    = "❄️"
	iconThunder      = "⛈️"
)

// weatherIcons maps codes to {day, night} icons.
var weatherIcons = map[int][2]string{
	0:  {iconSun, iconMoon},
	1:  {iconSunSmallCld, iconMoon},
	2:  {iconSunBehindCld, iconSunBehindCld},
	3:  {iconCloud, iconCloud},
	45: {iconFog, iconFog},
	48: {iconFog, iconFog},
	51: {iconSunRain, iconSunRain},
	53: {iconSunRain, iconSunRain},
	55: {iconRain, iconRain},
	56: {iconSnowCloud, iconSnowCloud},
	57: {iconSnowCloud, iconSnowCloud},
	61: {iconSunRain, iconSunRain},
	63: {iconRain, iconRain},
	65: {iconRain, iconRain},
	66: {iconSnowCloud, iconSnowCloud},
	67: {iconSnowCloud, iconSnowCloud},
	71: {iconSnowCloud, iconSnowCloud},
	73: {iconSnowflake, iconSnowflake},
	75: {iconSnowflake, iconSnowflake},
	77: {iconSnowCloud, iconSnowCloud},
	80: {iconSunRain, iconSunRain},
	81: {iconRain, iconRain},
	82: {iconThunder, iconThunder},
	85: {iconSnowCloud, iconSnowCloud},
	86: {iconSnowflake, iconSnowflake},
	95: {iconThunder, iconThunder},
	96: {iconThunder, iconThunder},
	99: {iconThunder, iconThunder},
}

// DescribeWeather returns the description for a WMO weather code, or
// UnknownWeather for codes outside the table.
func DescribeWeather(code int) string {
	if d, ok := weatherDescriptions[code]; ok {
		return d
	}
	return UnknownWeather
}

// WeatherIcon returns the emoji icon for a WMO weather code. Clear and mainly
// clear skies have a night variant; unknown codes get DefaultWeatherIcon.
func WeatherIcon(code int, isDay bool) string {
	icons, ok := weatherIcons[code]
	if !ok {
		return DefaultWeatherIcon
	}
	if isDay {
		return icons[0]
	}
	return icons[1]
}
