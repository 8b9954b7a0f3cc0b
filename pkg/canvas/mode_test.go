package canvas

import (
	"testing"

	"github.com/matzehuels/pipecanvas/pkg/errors"
)

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"develop", ModeDevelop, false},
		{"DEVELOP_MODE", ModeDevelop, false},
		{"read-only", ModeReadOnly, false},
		{" standard_mode ", ModeReadOnly, false},
		{"multiselect", 0, true},
		{"new-connection", 0, true},
		{"", 0, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseMode(tt.in)
			if tt.wantErr {
				if !errors.Is(err, errors.ErrCodeInvalidMode) {
					t.Fatalf("ParseMode(%q) error = %v, want INVALID_MODE", tt.in, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseMode(%q): %v", tt.in, err)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestPermits(t *testing.T) {
	tests := []struct {
		mode   Mode
		action Action
		want   bool
	}{
		{ModeDevelop, ActDrag, true},
		{ModeDevelop, ActConnect, true},
		{ModeDevelop, ActGroupDrag, false},
		{ModeDevelop, ActLayout, false},
		{ModeReadOnly, ActSelect, true},
		{ModeReadOnly, ActDetail, true},
		{ModeReadOnly, ActDrag, false},
		{ModeReadOnly, ActRemove, false},
		{ModeReadOnly, ActConnect, false},
		{ModeReadOnly, ActMultiselect, false},
		{ModeNewConnection, ActCommitConnection, true},
		{ModeNewConnection, ActSelect, false},
		{ModeMultiselect, ActGroupDrag, true},
		{ModeMultiselect, ActLayout, true},
		{ModeMultiselect, ActRemove, false},
		{Mode(42), ActHover, false},
	}
	for _, tt := range tests {
		t.Run(tt.mode.String()+"/"+tt.action.String(), func(t *testing.T) {
			if got := Permits(tt.mode, tt.action); got != tt.want {
				t.Errorf("Permits(%v, %v) = %v, want %v", tt.mode, tt.action, got, tt.want)
			}
		})
	}
}

func TestReadOnlyPermitsNoStructuralAction(t *testing.T) {
	for a := Action(0); a < actionCount; a++ {
		if a.Structural() && Permits(ModeReadOnly, a) {
			t.Errorf("read-only permits structural action %v", a)
		}
	}
}
