package models

import "testing"

func TestAppendError(t *testing.T) {
	r := NewRecord("https://example.com")
	if r.Error != "" {
		t.Fatalf("fresh record should have no error, got %q", r.Error)
	}

	r.AppendError("html error: disk full")
	if r.Error != "html error: disk full" {
		t.Errorf("first append should not add a separator, got %q", r.Error)
	}

	r.AppendError("chart screenshot error: detached")
	want := "html error: disk full | chart screenshot error: detached"
	if r.Error != want {
		t.Errorf("AppendError = %q, want %q", r.Error, want)
	}
	if r.Status != StatusOK {
		t.Errorf("accumulated warnings must not flip the status, got %q", r.Status)
	}
}

func TestFail(t *testing.T) {
	r := NewRecord("https://example.com")
	r.Fail("goto failed: timeout")

	if r.Status != StatusError {
		t.Errorf("Fail must set status error, got %q", r.Status)
	}
	if r.Error != "goto failed: timeout" {
		t.Errorf("unexpected error detail %q", r.Error)
	}
}

func TestSetElapsed(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{1.2345, 1.23},
		{1.006, 1.01},
		{0, 0},
		{12.999, 13},
	}
	for _, tt := range tests {
		r := NewRecord("u")
		r.SetElapsed(tt.in)
		if r.ElapsedSeconds != tt.want {
			t.Errorf("SetElapsed(%v) = %v, want %v", tt.in, r.ElapsedSeconds, tt.want)
		}
	}
}
