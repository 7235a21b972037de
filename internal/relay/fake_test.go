package relay

import "testing"

func TestFakeDriverRecordsCommands(t *testing.T) {
	f := NewFakeDriver()

	f.SetHeating(true)
	f.SetFan(true)
	f.SetHeating(false)
	f.SetFan(false)

	want := []string{"heat=on", "fan=on", "heat=off", "fan=off"}
	if len(f.Commands) != len(want) {
		t.Fatalf("expected %d commands, got %d: %v", len(want), len(f.Commands), f.Commands)
	}
	for i, w := range want {
		if f.Commands[i] != w {
			t.Errorf("command %d: expected %q, got %q", i, w, f.Commands[i])
		}
	}
}

func TestFakeDriverSuppressesDuplicates(t *testing.T) {
	f := NewFakeDriver()

	f.SetCooling(true)
	f.SetCooling(true)
	f.SetCooling(true)

	if len(f.Commands) != 1 {
		t.Errorf("duplicate writes must be suppressed, got %v", f.Commands)
	}

	f.SetHeating(false) // already off
	if len(f.Commands) != 1 {
		t.Errorf("no-op writes must be suppressed, got %v", f.Commands)
	}
}

func TestFakeDriverStates(t *testing.T) {
	f := NewFakeDriver()

	f.SetHeating(true)
	f.SetFan(true)

	heat, cool, fan := f.States()
	if !heat || cool || !fan {
		t.Errorf("expected heat=true cool=false fan=true, got %t %t %t", heat, cool, fan)
	}
}

func TestFakeDriverReset(t *testing.T) {
	f := NewFakeDriver()
	f.SetHeating(true)
	f.Close()

	f.Reset()

	if f.Heat || f.Cool || f.Fan || f.Closed || f.Commands != nil {
		t.Error("reset should clear all state")
	}
}
