// Package timeline discretizes a working day into uniformly sized
// slots and converts between clock time and slot index.
//
// A Config describes the shape of the day: how many slots it has, how
// wide each slot is, and what clock time slot 0 begins at. Everything
// else in this module works in slot space; timeline is the only place
// that knows about wall-clock hours and minutes.
package timeline

import (
	"fmt"
	"strconv"
	"strings"
)

// Config describes the discretization of a single working day.
type Config struct {
	// Slots is the total number of slots in the day (S in spec.md).
	Slots int
	// SlotMinutes is the width of a single slot in minutes (W).
	SlotMinutes int
	// StartHour and StartMinute are the clock time of slot 0.
	StartHour   int
	StartMinute int
}

// Default returns the default day shape: 34 slots of 15 minutes each,
// starting at 08:30.
func Default() Config {
	return Config{
		Slots:       34,
		SlotMinutes: 15,
		StartHour:   8,
		StartMinute: 30,
	}
}

// BadTimeError reports a clock time that does not map to a valid slot.
type BadTimeError struct {
	Hour, Minute int
	Reason       string
}

func (e *BadTimeError) Error() string {
	return fmt.Sprintf("bad time %02d:%02d: %s", e.Hour, e.Minute, e.Reason)
}

// BadDurationError reports a duration string that could not be parsed.
type BadDurationError struct {
	Text   string
	Reason string
}

func (e *BadDurationError) Error() string {
	return fmt.Sprintf("bad duration %q: %s", e.Text, e.Reason)
}

// ToSlot converts a clock time to a slot index. It fails with
// *BadTimeError if the result is negative or >= cfg.Slots.
func (cfg Config) ToSlot(hour, minute int) (int, error) {
	totalMinutes := (hour-cfg.StartHour)*60 + (minute - cfg.StartMinute)
	slot := totalMinutes / cfg.SlotMinutes
	if totalMinutes < 0 && totalMinutes%cfg.SlotMinutes != 0 {
		// Go truncates integer division toward zero; a negative,
		// non-aligned offset must round further negative to stay a
		// faithful floor division (matching Python's "//").
		slot--
	}
	if slot < 0 {
		return 0, &BadTimeError{hour, minute, "before start of day"}
	}
	if slot >= cfg.Slots {
		return 0, &BadTimeError{hour, minute, "after end of day"}
	}
	return slot, nil
}

// FromSlot converts a slot index back to a clock time. It is defined
// for slot in [0, cfg.Slots]; the upper bound allows reporting the end
// time of a trailing session.
func (cfg Config) FromSlot(slot int) (hour, minute int, err error) {
	if slot < 0 || slot > cfg.Slots {
		return 0, 0, &BadTimeError{0, 0, fmt.Sprintf("slot %d out of range [0, %d]", slot, cfg.Slots)}
	}
	totalMinutes := slot*cfg.SlotMinutes + cfg.StartMinute
	hour = cfg.StartHour + totalMinutes/60
	minute = totalMinutes % 60
	return hour, minute, nil
}

// FormatSlot renders a slot as "HH:MM". It panics if the slot is out
// of FromSlot's domain; callers that accept untrusted slot values
// should call FromSlot directly.
func (cfg Config) FormatSlot(slot int) string {
	h, m, err := cfg.FromSlot(slot)
	if err != nil {
		panic(err)
	}
	return fmt.Sprintf("%02d:%02d", h, m)
}

// ParseDuration parses a duration string into minutes. It accepts:
//   - a bare integer ("30") meaning minutes
//   - "Nmin" ("45min")
//   - "Nh" ("2h")
//   - "NhMmin" ("1h30min")
//
// Matching is case-insensitive. Anything else fails with
// *BadDurationError.
func ParseDuration(text string) (int, error) {
	trimmed := strings.ToLower(strings.TrimSpace(text))
	if trimmed == "" {
		return 0, &BadDurationError{text, "empty"}
	}

	if minutes, err := strconv.Atoi(trimmed); err == nil {
		if minutes <= 0 {
			return 0, &BadDurationError{text, "must be positive"}
		}
		return minutes, nil
	}

	hIdx := strings.Index(trimmed, "h")
	switch {
	case hIdx >= 0 && strings.Contains(trimmed, "min"):
		minIdx := strings.Index(trimmed, "min")
		if minIdx < hIdx || !strings.HasSuffix(trimmed, "min") {
			return 0, &BadDurationError{text, "expected NhMmin"}
		}
		hoursPart := trimmed[:hIdx]
		minutesPart := trimmed[hIdx+1 : minIdx]
		hours, err := strconv.Atoi(hoursPart)
		if err != nil || hours < 0 {
			return 0, &BadDurationError{text, "invalid hours component"}
		}
		mins, err := strconv.Atoi(minutesPart)
		if err != nil || mins < 0 {
			return 0, &BadDurationError{text, "invalid minutes component"}
		}
		total := hours*60 + mins
		if total <= 0 {
			return 0, &BadDurationError{text, "must be positive"}
		}
		return total, nil

	case hIdx >= 0:
		if hIdx != len(trimmed)-1 {
			return 0, &BadDurationError{text, "expected Nh"}
		}
		hoursPart := trimmed[:hIdx]
		hours, err := strconv.Atoi(hoursPart)
		if err != nil {
			return 0, &BadDurationError{text, "invalid hours component"}
		}
		if hours <= 0 {
			return 0, &BadDurationError{text, "must be positive"}
		}
		return hours * 60, nil

	case strings.Contains(trimmed, "min"):
		if !strings.HasSuffix(trimmed, "min") {
			return 0, &BadDurationError{text, "expected Nmin"}
		}
		minutesPart := strings.TrimSuffix(trimmed, "min")
		mins, err := strconv.Atoi(minutesPart)
		if err != nil {
			return 0, &BadDurationError{text, "invalid minutes component"}
		}
		if mins <= 0 {
			return 0, &BadDurationError{text, "must be positive"}
		}
		return mins, nil

	default:
		return 0, &BadDurationError{text, "unrecognized format"}
	}
}

// DurationSlots converts a duration in minutes into a whole number of
// slots. It fails if the duration does not divide evenly by the slot
// width, or is not at least one slot wide.
func (cfg Config) DurationSlots(minutes int) (int, error) {
	if minutes <= 0 || minutes%cfg.SlotMinutes != 0 {
		return 0, &BadDurationError{
			Text:   strconv.Itoa(minutes),
			Reason: fmt.Sprintf("must be a positive multiple of the %d-minute slot width", cfg.SlotMinutes),
		}
	}
	return minutes / cfg.SlotMinutes, nil
}
