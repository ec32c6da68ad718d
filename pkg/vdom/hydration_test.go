package vdom

import "testing"

func TestHIDGenerator(t *testing.T) {
	gen := NewHIDGenerator()

	if got := gen.Next(); got != "h1" {
		t.Errorf("first HID = %q, want h1", got)
	}
	if got := gen.Next(); got != "h2" {
		t.Errorf("second HID = %q, want h2", got)
	}
	if gen.Current() != 2 {
		t.Errorf("Current() = %d, want 2", gen.Current())
	}

	gen.Reset()
	if got := gen.Next(); got != "h1" {
		t.Errorf("after reset HID = %q, want h1", got)
	}
}
