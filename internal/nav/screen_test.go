package nav

import "testing"

func TestScreenString(t *testing.T) {
	cases := map[Screen]string{
		Home:       "home",
		AddChoice:  "add-choice",
		TripForm:   "trip-form",
		TripList:   "trip-list",
		GuideForm:  "guide-form",
		GuideList:  "guide-list",
		Profile:    "profile",
		Search:     "search",
		Screen(99): "unknown",
	}
	for s, want := range cases {
		if s.String() != want {
			t.Fatalf("Screen(%d).String() = %q, want %q", s, s.String(), want)
		}
	}
}

func TestZeroValueIsHome(t *testing.T) {
	m := NewMachine(nil, nil, SilentDeletes)
	if m.Current() != Home {
		t.Fatalf("new machine should start at home, got %v", m.Current())
	}
}
