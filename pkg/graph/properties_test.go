package graph

import (
	"encoding/json"
	"testing"
)

func TestPropertiesOrderPreserved(t *testing.T) {
	var p Properties
	if err := json.Unmarshal([]byte(`{"z":1,"a":"x","m":true}`), &p); err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	keys := p.Keys()
	want := []string{"z", "a", "m"}
	if len(keys) != len(want) {
		t.Fatalf("Keys() = %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Errorf("Keys()[%d] = %q, want %q", i, keys[i], want[i])
		}
	}

	out, err := json.Marshal(&p)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	if string(out) != `{"z":1,"a":"x","m":true}` {
		t.Errorf("Marshal() = %s", out)
	}
}

func TestPropertiesString(t *testing.T) {
	p := NewProperties("s", "text", "f", 2.0, "g", 2.5, "b", true, "n", nil)
	tests := map[string]string{"s": "text", "f": "2", "g": "2.5", "b": "true", "n": "", "missing": ""}
	for key, want := range tests {
		if got := p.String(key); got != want {
			t.Errorf("String(%q) = %q, want %q", key, got, want)
		}
	}
}

func TestPropertiesTruthy(t *testing.T) {
	p := NewProperties("t", true, "f", false, "one", 1.0, "zero", 0.0, "yes", "yes", "no", "false", "empty", "")
	for key, want := range map[string]bool{
		"t": true, "f": false, "one": true, "zero": false, "yes": true, "no": false, "empty": false, "missing": false,
	} {
		if got := p.Truthy(key); got != want {
			t.Errorf("Truthy(%q) = %v, want %v", key, got, want)
		}
	}
}

func TestPropertiesZeroValueAndClone(t *testing.T) {
	var p Properties
	if p.Len() != 0 || p.Has("a") {
		t.Error("zero value should be empty")
	}
	p.Set("a", 1)
	p.Set("b", 2)
	p.Set("a", 3)
	if got := p.Keys(); len(got) != 2 || got[0] != "a" {
		t.Errorf("Set should keep original position: %v", got)
	}

	c := p.Clone()
	c.Set("c", 4)
	c.Delete("a")
	if p.Len() != 2 || !p.Has("a") {
		t.Error("Clone shares storage with original")
	}

	var nilProps *Properties
	if nilProps.String("x") != "" || nilProps.Len() != 0 {
		t.Error("nil Properties should read as empty")
	}
}
