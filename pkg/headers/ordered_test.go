package headers

import (
	"reflect"
	"testing"
)

func TestOrderedHeaders_Basic(t *testing.T) {
	h := NewOrderedHeaders()
	h.Set("Content-Type", "application/json")
	h.Set("test", "deneme")

	if got := h.Get("Content-Type"); got != "application/json" {
		t.Errorf("Expected 'application/json', got '%s'", got)
	}
	if got := h.Get("test"); got != "deneme" {
		t.Errorf("Expected 'deneme', got '%s'", got)
	}
	if h.Len() != 2 {
		t.Errorf("Expected 2 headers, got %d", h.Len())
	}
}

func TestOrderedHeaders_CaseSensitive(t *testing.T) {
	h := NewOrderedHeaders()
	h.Set("Content-Type", "application/json")

	if _, ok := h.Lookup("content-type"); ok {
		t.Errorf("Lookup must match the stored name exactly")
	}

	h.Set("content-type", "text/plain")
	if h.Len() != 2 {
		t.Errorf("Differently cased names are distinct headers, got %d", h.Len())
	}
}

func TestOrderedHeaders_OrderPreservation(t *testing.T) {
	h := NewOrderedHeaders()
	h.Set("Host", "example.com")
	h.Set("User-Agent", "test")
	h.Set("test", "deneme")
	h.Set("Authorization", "Bearer token")

	expected := []string{"Host", "User-Agent", "test", "Authorization"}
	if got := h.Names(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}
}

func TestOrderedHeaders_OverwriteKeepsPosition(t *testing.T) {
	h := NewOrderedHeaders()
	h.Set("Host", "example.com")
	h.Set("A", "1")
	h.Set("B", "2")
	h.Set("A", "2")

	if h.Position("A") != 1 {
		t.Errorf("Expected A at position 1, got %d", h.Position("A"))
	}
	if h.Get("A") != "2" {
		t.Errorf("Expected A=2, got %s", h.Get("A"))
	}
}

func TestOrderedHeaders_EmptyNameIgnored(t *testing.T) {
	h := NewOrderedHeaders()
	h.Set("", "x")
	h.SetAt("", "x", 0)

	if h.Len() != 0 {
		t.Errorf("Empty header names must not be stored")
	}
}

func TestOrderedHeaders_Positioning(t *testing.T) {
	h := NewOrderedHeaders()
	h.Set("Host", "a")
	h.Set("Accept", "*/*")

	h.SetAfter("X-After", "1", "Host")
	h.SetBefore("X-Before", "2", "Host")
	h.SetAt("X-First", "3", 0)
	h.SetAt("X-Last", "4", 99)
	h.SetAfter("X-Orphan", "5", "Missing")

	expected := []string{"X-First", "X-Before", "Host", "X-After", "Accept", "X-Last", "X-Orphan"}
	if got := h.Names(); !reflect.DeepEqual(got, expected) {
		t.Errorf("Expected %v, got %v", expected, got)
	}

	// existing names are updated in place
	h.SetBefore("X-Last", "updated", "Host")
	if h.Position("X-Last") != 5 || h.Get("X-Last") != "updated" {
		t.Errorf("Existing header moved or not updated")
	}

	for i, name := range expected {
		if h.Position(name) != i {
			t.Errorf("Index out of sync for %s: %d", name, h.Position(name))
		}
	}
}

func TestOrderedHeaders_Del(t *testing.T) {
	h := NewOrderedHeaders()
	h.Set("A", "1")
	h.Set("B", "2")
	h.Set("C", "3")

	h.Del("B")
	h.Del("Missing")

	if h.Has("B") {
		t.Errorf("B should be deleted")
	}
	if h.Position("C") != 1 {
		t.Errorf("Expected C to shift to 1, got %d", h.Position("C"))
	}
	if h.Position("B") != -1 {
		t.Errorf("Expected -1 for missing header")
	}
}

func TestOrderedHeaders_CloneIndependent(t *testing.T) {
	h := NewOrderedHeaders()
	h.Set("A", "1")

	c := h.Clone()
	c.Set("A", "2")
	c.Set("B", "3")

	if h.Get("A") != "1" || h.Has("B") {
		t.Errorf("Clone shares state")
	}
}

func TestParseLine(t *testing.T) {
	tests := []struct {
		line  string
		name  string
		value string
		ok    bool
	}{
		{"Host: example.com", "Host", "example.com", true},
		{"test:deneme", "test", "deneme", true},
		{"  X-Pad  :   v  ", "X-Pad", "v", true},
		{"Referer: http://a:80/", "Referer", "http://a:80/", true},
		{"X-Empty:", "X-Empty", "", true},
		{"NoColon", "", "", false},
		{": value", "", "", false},
	}

	for _, tt := range tests {
		name, value, ok := ParseLine(tt.line)
		if name != tt.name || value != tt.value || ok != tt.ok {
			t.Errorf("ParseLine(%q) = (%q, %q, %v)", tt.line, name, value, ok)
		}
	}
}

func TestBuild(t *testing.T) {
	h := NewOrderedHeaders()
	if got := h.Build("\n"); got != "" {
		t.Errorf("Expected empty output, got %q", got)
	}

	h.Set("Host", "a")
	h.Set("Accept", "*/*")
	if got := h.Build("\r\n"); got != "Host: a\r\nAccept: */*" {
		t.Errorf("Unexpected output %q", got)
	}
}
