package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewLookupEvent(t *testing.T) {
	fixed := time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(fixed))
	t.Cleanup(func() { SetClock(nil) })

	view := BuildView(testForecast(), testPlace)
	event := NewLookupEvent(MethodName, "Amman, Jordan", view)

	assert.Equal(t, MethodName, event.Method)
	assert.Equal(t, "Amman, Jordan", event.Query)
	assert.Equal(t, testPlace, event.Place)
	assert.Equal(t, 23.4, event.TemperatureC)
	assert.Equal(t, "Mainly clear", event.Description)
	assert.Equal(t, 3.0, event.UVIndex)
	assert.Equal(t, UVModerate, event.UVLevel)
	assert.Equal(t, fixed, event.ResolvedAt)
	assert.Len(t, event.ID, 64)

	data, err := json.Marshal(event)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"method":"name"`)
	assert.Contains(t, string(data), `"label":"Amman"`)
}

func TestGenerateID_Deterministic(t *testing.T) {
	at := time.Date(2026, time.October, 19, 9, 30, 0, 0, time.UTC)

	a := generateID(MethodCoordinates, "", testCoord, at)
	b := generateID(MethodCoordinates, "", testCoord, at)
	c := generateID(MethodCoordinates, "", testCoord, at.Add(time.Second))
	d := generateID(MethodName, "Amman", testCoord, at)

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEqual(t, a, d)
}
