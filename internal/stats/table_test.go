package stats

import "testing"

func TestFormatTableAlignsColumns(t *testing.T) {
	headers := []string{"Date", "Duration", "Quality"}
	rows := [][]string{
		{"2024-01-01", "7h 30m", "2/3"},
		{"2024-01-02", "10h 5m", "3/3"},
	}
	rightAlign := map[int]bool{1: true}

	lines := formatTable(headers, rows, rightAlign)
	if len(lines) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(lines))
	}
	if lines[0] != "Date       Duration Quality" {
		t.Fatalf("unexpected header line: %q", lines[0])
	}
	if lines[1] != "2024-01-01   7h 30m 2/3    " {
		t.Fatalf("unexpected row line: %q", lines[1])
	}
	if lines[2] != "2024-01-02   10h 5m 3/3    " {
		t.Fatalf("unexpected row line: %q", lines[2])
	}
}

func TestFormatRowsWithoutHeader(t *testing.T) {
	lines := FormatRows([][]string{
		{"Sleep Time:", "10:00:00 PM"},
		{"Quality:", "2/3"},
	}, map[int]bool{1: true})
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if lines[0] != "Sleep Time: 10:00:00 PM" {
		t.Fatalf("unexpected line: %q", lines[0])
	}
	if lines[1] != "Quality:            2/3" {
		t.Fatalf("unexpected line: %q", lines[1])
	}
}

func TestDisplayWidthCountsWideRunes(t *testing.T) {
	if got := displayWidth("月"); got != 2 {
		t.Fatalf("expected width 2, got %d", got)
	}
}
