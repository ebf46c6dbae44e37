package commands

import (
	"testing"
)

func TestParseTaskRef_Valid(t *testing.T) {
	tests := map[string]int{
		"5":   5,
		"#12": 12,
		"007": 7,
	}
	for in, want := range tests {
		id, err := ParseTaskRef([]string{in})
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", in, err)
		}
		if id != want {
			t.Errorf("%s: expected %d, got %d", in, want, id)
		}
	}
}

func TestParseTaskRef_Missing(t *testing.T) {
	_, err := ParseTaskRef(nil)
	if err != ErrTaskRefRequired {
		t.Errorf("expected ErrTaskRefRequired, got %v", err)
	}
}

func TestParseTaskRef_Invalid(t *testing.T) {
	for _, in := range []string{"0", "-5", "+5", "abc", "#", "a1", "1.5", ""} {
		_, err := ParseTaskRef([]string{in})
		if err == nil {
			t.Errorf("%q: expected error", in)
			continue
		}
		want := "invalid task reference: " + in
		if err.Error() != want {
			t.Errorf("%q: expected %q, got %q", in, want, err.Error())
		}
	}
}

func TestParseTaskRef_ExtraArgument(t *testing.T) {
	_, err := ParseTaskRef([]string{"1", "2"})
	if err == nil || err.Error() != "unexpected argument: 2" {
		t.Errorf("expected unexpected argument error, got %v", err)
	}
}

func TestRegistry_FindByAlias(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&RmCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	cmd, ok := r.Find("delete")
	if !ok || cmd.Name() != "rm" {
		t.Errorf("expected rm via alias, got %v %v", cmd, ok)
	}
	if _, ok := r.Find("remove"); ok {
		t.Error("expected unknown name to miss")
	}
}

func TestRegistry_RejectsClash(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&DoneCmd{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := r.Register(&DoneCmd{}); err == nil {
		t.Error("expected duplicate name to fail")
	}
}

func TestRegistry_Suggest(t *testing.T) {
	tests := map[string]string{
		"lsit":    "list",
		"lgout":   "logout",
		"ver":     "version",
		"delte":   "rm",
		"whomai":  "whoami",
		"zzzzzz":  "",
		"x":       "",
		"":        "",
		"registr": "register",
		"cmplete": "done",
	}
	for in, want := range tests {
		if got := DefaultRegistry.Suggest(in); got != want {
			t.Errorf("Suggest(%q): expected %q, got %q", in, want, got)
		}
	}
}
