package bridge

import (
	"reflect"
	"testing"
)

func TestParseAccel(t *testing.T) {
	tests := []struct {
		input string
		want  Accel
	}{
		{"<Ctrl><Alt>t", Accel{Key: "t", Modifiers: []string{"ctrl", "alt"}}},
		{"<Control><Shift>F12", Accel{Key: "F12", Modifiers: []string{"ctrl", "shift"}}},
		{"<Primary>t", Accel{Key: "t", Modifiers: []string{"ctrl"}}},
		{"<Super>Return", Accel{Key: "Return", Modifiers: []string{"super"}}},
		{"<Meta><Shift>space", Accel{Key: "space", Modifiers: []string{"meta", "shift"}}},
		{"t", Accel{Key: "t"}},
		{"<ctrl><alt>t", Accel{Key: "t", Modifiers: []string{"ctrl", "alt"}}},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseAccel(tt.input)
			if err != nil {
				t.Fatalf("ParseAccel(%q) failed: %v", tt.input, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("ParseAccel(%q) = %+v, want %+v", tt.input, got, tt.want)
			}
		})
	}
}

func TestParseAccelErrors(t *testing.T) {
	inputs := []string{
		"",
		"<Ctrl",
		"<Ctrl>",
		"<Bogus>t",
		"a<b",
		"<Ctrl><Alt>",
	}

	for _, input := range inputs {
		if _, err := ParseAccel(input); err == nil {
			t.Errorf("ParseAccel(%q) succeeded, want error", input)
		}
	}
}

func TestAccelStringSkipsEmptyModifier(t *testing.T) {
	accel := Accel{Key: "t", Modifiers: []string{"", "ctrl"}}
	if got := accel.String(); got != "<Ctrl>t" {
		t.Errorf("String = %q, want <Ctrl>t", got)
	}
}

func TestAccelString(t *testing.T) {
	accel := Accel{Key: "t", Modifiers: []string{"ctrl", "alt"}}
	if got := accel.String(); got != "<Ctrl><Alt>t" {
		t.Errorf("String = %q, want <Ctrl><Alt>t", got)
	}

	parsed, err := ParseAccel(accel.String())
	if err != nil {
		t.Fatalf("round trip failed: %v", err)
	}
	if !reflect.DeepEqual(parsed, accel) {
		t.Errorf("round trip = %+v, want %+v", parsed, accel)
	}
}
