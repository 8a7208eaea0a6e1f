package nav

// Screen identifies one of the app's top-level views. The zero value
// is Home.
type Screen int

const (
	Home Screen = iota
	AddChoice
	TripForm
	TripList
	GuideForm
	GuideList
	Profile
	Search
)

func (s Screen) String() string {
	switch s {
	case Home:
		return "home"
	case AddChoice:
		return "add-choice"
	case TripForm:
		return "trip-form"
	case TripList:
		return "trip-list"
	case GuideForm:
		return "guide-form"
	case GuideList:
		return "guide-list"
	case Profile:
		return "profile"
	case Search:
		return "search"
	}
	return "unknown"
}
