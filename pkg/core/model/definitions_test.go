package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func testDefinitions() *ShiftDefinitions {
	return &ShiftDefinitions{
		Roles: map[string]map[string]map[ShiftType]ShiftWindow{
			"Bartender": {
				"default": {
					ShiftDay:   {Start: "10:00", End: "17:00"},
					ShiftNight: {Start: "17:00", End: "23:00"},
				},
				"Friday": {
					ShiftNight: {Start: "17:00", End: "01:00"},
				},
			},
		},
	}
}

func TestDefinitionsWindow(t *testing.T) {
	defs := testDefinitions()

	// Day-specific entry wins.
	w, ok := defs.Window("Bartender", "Friday", ShiftNight)
	assert.True(t, ok)
	assert.Equal(t, ShiftWindow{Start: "17:00", End: "01:00"}, w)

	// Missing from the day entry falls back to default.
	w, ok = defs.Window("Bartender", "Friday", ShiftDay)
	assert.True(t, ok)
	assert.Equal(t, ShiftWindow{Start: "10:00", End: "17:00"}, w)

	// No day entry at all uses default.
	w, ok = defs.Window("Bartender", "Tuesday", ShiftNight)
	assert.True(t, ok)
	assert.Equal(t, ShiftWindow{Start: "17:00", End: "23:00"}, w)

	// Legacy types resolve through their normalized form.
	w, ok = defs.Window("Bartender", "Tuesday", ShiftEvening)
	assert.True(t, ok)
	assert.Equal(t, ShiftWindow{Start: "17:00", End: "23:00"}, w)

	_, ok = defs.Window("Bartender", "Tuesday", ShiftDouble)
	assert.False(t, ok)
	_, ok = defs.Window("Chef", "Tuesday", ShiftDay)
	assert.False(t, ok)

	var nilDefs *ShiftDefinitions
	_, ok = nilDefs.Window("Bartender", "Tuesday", ShiftDay)
	assert.False(t, ok)
}

func TestDefinitionsTimesFor(t *testing.T) {
	defs := testDefinitions()

	// Per-record override wins over the canonical table.
	item := ScheduleItem{Type: ShiftDay, StartTime: "11:30", EndTime: "16:30"}
	w, ok := defs.TimesFor(item, "Bartender", "Tuesday")
	assert.True(t, ok)
	assert.Equal(t, ShiftWindow{Start: "11:30", End: "16:30"}, w)

	// A half-set override is ignored; the canonical times apply.
	item = ScheduleItem{Type: ShiftDay, StartTime: "11:30"}
	w, ok = defs.TimesFor(item, "Bartender", "Tuesday")
	assert.True(t, ok)
	assert.Equal(t, ShiftWindow{Start: "10:00", End: "17:00"}, w)

	item = ScheduleItem{Type: ShiftDouble}
	_, ok = defs.TimesFor(item, "Bartender", "Tuesday")
	assert.False(t, ok)
}
