package model

// DefaultDayKey is the fallback key in the shift definitions table when a
// role has no entry for a specific day name.
const DefaultDayKey = "default"

// ShiftWindow is a canonical start/end time pair, as opaque clock strings
// ("17:00" etc.) rendered verbatim.
type ShiftWindow struct {
	Start string
	End   string
}

// ShiftDefinitions is the global reference table of canonical shift times,
// keyed by role name, then day name (with a "default" fallback), then shift
// type. Treated as static for the session lifetime and fetched at most
// once.
type ShiftDefinitions struct {
	Roles map[string]map[string]map[ShiftType]ShiftWindow
}

// Window resolves the canonical times for a role, day name and shift type,
// falling back to the role's "default" day entry. The second return is
// false when no entry exists on either key.
func (d *ShiftDefinitions) Window(role, day string, t ShiftType) (ShiftWindow, bool) {
	if d == nil || d.Roles == nil {
		return ShiftWindow{}, false
	}
	days, ok := d.Roles[role]
	if !ok {
		return ShiftWindow{}, false
	}
	if byType, ok := days[day]; ok {
		if w, ok := byType[t.Normalized()]; ok {
			return w, true
		}
	}
	if byType, ok := days[DefaultDayKey]; ok {
		if w, ok := byType[t.Normalized()]; ok {
			return w, true
		}
	}
	return ShiftWindow{}, false
}

// TimesFor resolves the display times for a schedule item: an explicit
// per-record override wins, otherwise the canonical definition for the
// role/day applies.
func (d *ShiftDefinitions) TimesFor(item ScheduleItem, role, day string) (ShiftWindow, bool) {
	if item.StartTime != "" && item.EndTime != "" {
		return ShiftWindow{Start: item.StartTime, End: item.EndTime}, true
	}
	return d.Window(role, day, item.Type)
}
