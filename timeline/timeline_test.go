package timeline

import "testing"

func TestToSlotFromSlotRoundTrip(t *testing.T) {
	cfg := Default()
	for slot := 0; slot <= cfg.Slots; slot++ {
		h, m, err := cfg.FromSlot(slot)
		if err != nil {
			t.Fatalf("FromSlot(%d): %v", slot, err)
		}
		if slot == cfg.Slots {
			continue // ToSlot's domain excludes the trailing boundary.
		}
		got, err := cfg.ToSlot(h, m)
		if err != nil {
			t.Fatalf("ToSlot(%02d:%02d): %v", h, m, err)
		}
		if got != slot {
			t.Errorf("ToSlot(FromSlot(%d)) = %d, want %d", slot, got, slot)
		}
	}
}

func TestFromSlotToSlotRoundTrip(t *testing.T) {
	cfg := Default()
	for h := 8; h <= 17; h++ {
		for _, m := range []int{0, 15, 30, 45} {
			slot, err := cfg.ToSlot(h, m)
			if err != nil {
				continue
			}
			gotH, gotM, err := cfg.FromSlot(slot)
			if err != nil {
				t.Fatalf("FromSlot(%d): %v", slot, err)
			}
			if gotH != h || gotM != m {
				t.Errorf("FromSlot(ToSlot(%02d:%02d)) = %02d:%02d, want %02d:%02d", h, m, gotH, gotM, h, m)
			}
		}
	}
}

func TestToSlotRejectsOutOfRange(t *testing.T) {
	cfg := Default()
	if _, err := cfg.ToSlot(8, 0); err == nil {
		t.Error("expected error for time before start of day")
	}
	if _, err := cfg.ToSlot(17, 30); err == nil {
		t.Error("expected error for time at/after end of day")
	}
}

func TestParseDuration(t *testing.T) {
	cases := map[string]int{
		"30":      30,
		"45min":   45,
		"2h":      120,
		"1h30min": 90,
		"1H30MIN": 90,
		"  90  ":  90,
	}
	for input, want := range cases {
		got, err := ParseDuration(input)
		if err != nil {
			t.Errorf("ParseDuration(%q): %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseDuration(%q) = %d, want %d", input, got, want)
		}
	}
}

func TestParseDurationRejectsGarbage(t *testing.T) {
	for _, input := range []string{"", "abc", "h30min", "1.5h", "-5"} {
		if _, err := ParseDuration(input); err == nil {
			t.Errorf("ParseDuration(%q): expected error, got nil", input)
		}
	}
}

func TestDurationSlots(t *testing.T) {
	cfg := Default()
	got, err := cfg.DurationSlots(45)
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("DurationSlots(45) = %d, want 3", got)
	}
	if _, err := cfg.DurationSlots(20); err == nil {
		t.Error("expected error for duration not divisible by slot width")
	}
	if _, err := cfg.DurationSlots(0); err == nil {
		t.Error("expected error for zero duration")
	}
}
