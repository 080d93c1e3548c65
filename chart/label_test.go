package chart

import "testing"

func TestLabel_AriaLabelWins(t *testing.T) {
	html := `<svg aria-label="Revenue by quarter"><title>ignored</title></svg>`
	if got := Label(html); got != "Revenue by quarter" {
		t.Errorf("expected aria-label to win, got %q", got)
	}
}

func TestLabel_TitleChild(t *testing.T) {
	html := `<svg><title>Sessions over time</title><desc>ignored</desc></svg>`
	if got := Label(html); got != "Sessions over time" {
		t.Errorf("expected title text, got %q", got)
	}
}

func TestLabel_DescOnly(t *testing.T) {
	html := `<svg><desc>  Bar chart of signups  </desc></svg>`
	if got := Label(html); got != "Bar chart of signups" {
		t.Errorf("expected trimmed desc text, got %q", got)
	}
}

func TestLabel_AltAttribute(t *testing.T) {
	html := `<svg alt="legacy alt text"></svg>`
	if got := Label(html); got != "legacy alt text" {
		t.Errorf("expected alt attribute, got %q", got)
	}
}

func TestLabel_EmptyAriaFallsThrough(t *testing.T) {
	html := `<svg aria-label="   "><title>CPU usage</title></svg>`
	if got := Label(html); got != "CPU usage" {
		t.Errorf("whitespace aria-label should fall through to title, got %q", got)
	}
}

func TestLabel_NothingFound(t *testing.T) {
	html := `<svg><rect width="10" height="10"/></svg>`
	if got := Label(html); got != "" {
		t.Errorf("expected empty label, got %q", got)
	}
}

func TestLabel_MalformedInput(t *testing.T) {
	if got := Label(""); got != "" {
		t.Errorf("empty input should yield empty label, got %q", got)
	}
}

func TestLabel_Priority(t *testing.T) {
	tests := []struct {
		name string
		html string
		want string
	}{
		{
			"all four present",
			`<svg aria-label="a" alt="d"><title>b</title><desc>c</desc></svg>`,
			"a",
		},
		{
			"title beats desc and alt",
			`<svg alt="d"><title>b</title><desc>c</desc></svg>`,
			"b",
		},
		{
			"desc beats alt",
			`<svg alt="d"><desc>c</desc></svg>`,
			"c",
		},
		{
			"nested title still found",
			`<svg><g><title>nested</title></g></svg>`,
			"nested",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Label(tt.html); got != tt.want {
				t.Errorf("Label() = %q, want %q", got, tt.want)
			}
		})
	}
}
