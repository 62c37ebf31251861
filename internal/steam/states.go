package steam

// Fixed enumerations from the Steam Web API. Unrecognized codes map to
// "Unknown" instead of failing.

var personaStates = map[int]string{
	0: "Offline",
	1: "Online",
	2: "Busy",
	3: "Away",
	4: "Snooze",
	5: "Looking to trade",
	6: "Looking to play",
}

var visibilityStates = map[int]string{
	1: "Private",
	2: "Friends only",
	3: "Public",
}

// PersonaStateLabel returns the display label for a persona-state code.
func PersonaStateLabel(state int) string {
	if label, ok := personaStates[state]; ok {
		return label
	}
	return "Unknown"
}

// VisibilityStateLabel returns the display label for a
// community-visibility code.
func VisibilityStateLabel(state int) string {
	if label, ok := visibilityStates[state]; ok {
		return label
	}
	return "Unknown"
}
