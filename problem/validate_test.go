package problem

import (
	"errors"
	"testing"
)

func baseRaw() RawProblem {
	return RawProblem{
		NumCandidates: 1,
		Panels: map[string]DurationSpec{
			"Intro": Minutes(30),
		},
		Availabilities: map[string][]Window{
			"Intro": {{Start: 0, End: 10}},
		},
	}
}

func TestValidateAcceptsMinimalProblem(t *testing.T) {
	v, err := Validate(baseRaw())
	if err != nil {
		t.Fatal(err)
	}
	if len(v.Panels) != 1 || v.Panels[0].Name != "Intro" || v.Panels[0].Duration != 2 {
		t.Errorf("unexpected panel resolution: %+v", v.Panels)
	}
}

func TestValidateRejectsUnknownPanelInOrder(t *testing.T) {
	raw := baseRaw()
	raw.Order = []string{"Nope"}
	_, err := Validate(raw)
	assertKind(t, err, UnknownPanelInOrder)
}

func TestValidateRejectsMissingAvailability(t *testing.T) {
	raw := baseRaw()
	raw.Panels["Extra"] = Minutes(15)
	_, err := Validate(raw)
	assertKind(t, err, MissingAvailability)
}

func TestValidateRejectsBadWindow(t *testing.T) {
	raw := baseRaw()
	raw.Availabilities["Intro"] = []Window{{Start: 5, End: 5}}
	_, err := Validate(raw)
	assertKind(t, err, BadWindow)
}

func TestValidateRejectsOverlappingWindows(t *testing.T) {
	raw := baseRaw()
	raw.Availabilities["Intro"] = []Window{{Start: 0, End: 5}, {Start: 3, End: 8}}
	_, err := Validate(raw)
	assertKind(t, err, BadWindow)
}

func TestValidateRejectsUnknownPinnedPanel(t *testing.T) {
	raw := baseRaw()
	raw.PositionConstraints = map[string]PositionConstraint{"Nope": First()}
	_, err := Validate(raw)
	assertKind(t, err, UnknownPinnedPanel)
}

func TestValidateRejectsBadPositionIndex(t *testing.T) {
	raw := baseRaw()
	raw.PositionConstraints = map[string]PositionConstraint{"Intro": AtIndex(5)}
	_, err := Validate(raw)
	assertKind(t, err, BadPosition)
}

func TestValidateRejectsTwoFirstPins(t *testing.T) {
	raw := baseRaw()
	raw.Panels["Second"] = Minutes(15)
	raw.Availabilities["Second"] = []Window{{Start: 0, End: 10}}
	raw.PositionConstraints = map[string]PositionConstraint{
		"Intro":  First(),
		"Second": First(),
	}
	_, err := Validate(raw)
	assertKind(t, err, BadPosition)
}

func TestValidateRejectsContradictoryIndexPin(t *testing.T) {
	raw := baseRaw()
	raw.Panels["Second"] = Minutes(15)
	raw.Availabilities["Second"] = []Window{{Start: 0, End: 10}}
	raw.PositionConstraints = map[string]PositionConstraint{
		"Intro":  First(),
		"Second": AtIndex(0),
	}
	_, err := Validate(raw)
	assertKind(t, err, BadPosition)
}

func TestValidateRejectsBadConflictGroup(t *testing.T) {
	raw := baseRaw()
	raw.PanelConflicts = [][]string{{"Intro"}}
	_, err := Validate(raw)
	assertKind(t, err, BadConflictGroup)
}

func TestValidateRejectsDuplicateInConflictGroup(t *testing.T) {
	raw := baseRaw()
	raw.Panels["Second"] = Minutes(15)
	raw.Availabilities["Second"] = []Window{{Start: 0, End: 10}}
	raw.PanelConflicts = [][]string{{"Intro", "Intro"}}
	_, err := Validate(raw)
	assertKind(t, err, BadConflictGroup)
}

func TestValidateRejectsBadDuration(t *testing.T) {
	raw := baseRaw()
	raw.Panels["Intro"] = Minutes(20) // not a multiple of the 15-minute slot width
	_, err := Validate(raw)
	assertKind(t, err, BadDuration)
}

func TestValidateRejectsInconsistentEndTime(t *testing.T) {
	raw := baseRaw()
	raw.SlotsPerDay = 34
	raw.SlotDurationMinutes = 15
	raw.StartHour, raw.StartMinute = 8, 30
	raw.EndHour, raw.EndMinute = 16, 0 // should be 17:00
	_, err := Validate(raw)
	assertKind(t, err, BadDayShape)
}

func TestValidateAcceptsCustomDayShapeWithoutExplicitEndTime(t *testing.T) {
	raw := baseRaw()
	raw.SlotsPerDay = 20
	raw.SlotDurationMinutes = 30
	raw.StartHour, raw.StartMinute = 9, 0
	raw.Availabilities["Intro"] = []Window{{Start: 0, End: 10}}
	if _, err := Validate(raw); err != nil {
		t.Fatalf("expected a derived end time to be consistent, got %v", err)
	}
}

func TestValidateRejectsUnknownSharedPanel(t *testing.T) {
	raw := baseRaw()
	raw.SharedPanels = []string{"Nope"}
	_, err := Validate(raw)
	assertKind(t, err, UnknownSharedPanel)
}

func TestValidateParsesTextDuration(t *testing.T) {
	raw := baseRaw()
	raw.Panels["Intro"] = Text("30min")
	v, err := Validate(raw)
	if err != nil {
		t.Fatal(err)
	}
	if v.Panels[0].Duration != 2 {
		t.Errorf("Duration = %d, want 2", v.Panels[0].Duration)
	}
}

func assertKind(t *testing.T, err error, want ErrorKind) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected error of kind %s, got nil", want)
	}
	var ve *ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected *ValidationError, got %T (%v)", err, err)
	}
	if ve.Kind != want {
		t.Errorf("error kind = %s, want %s", ve.Kind, want)
	}
}
