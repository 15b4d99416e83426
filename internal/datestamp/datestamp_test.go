package datestamp

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestExtract_ValidNames(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     time.Time
		wantKey  string
	}{
		{
			name:     "underscore separator",
			filename: "IMG_20240612_183015.jpg",
			want:     time.Date(2024, 6, 12, 18, 30, 15, 0, Location),
			wantKey:  "2024-06-12",
		},
		{
			name:     "dash separator",
			filename: "20240612-183015.heic",
			want:     time.Date(2024, 6, 12, 18, 30, 15, 0, Location),
			wantKey:  "2024-06-12",
		},
		{
			name:     "no separator",
			filename: "VID20240612183015.png",
			want:     time.Date(2024, 6, 12, 18, 30, 15, 0, Location),
			wantKey:  "2024-06-12",
		},
		{
			name:     "surrounding text",
			filename: "wx_camera_20201105_090000_edited.jpg",
			want:     time.Date(2020, 11, 5, 9, 0, 0, 0, Location),
			wantKey:  "2020-11-05",
		},
		{
			name:     "leap day on leap year",
			filename: "20240229_120000.jpg",
			want:     time.Date(2024, 2, 29, 12, 0, 0, 0, Location),
			wantKey:  "2024-02-29",
		},
		{
			name:     "midnight boundary",
			filename: "20301231_235959.jpg",
			want:     time.Date(2030, 12, 31, 23, 59, 59, 0, Location),
			wantKey:  "2030-12-31",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stamp, ok := Extract(tt.filename)
			if !ok {
				t.Fatalf("Extract(%q) = no match, want %v", tt.filename, tt.want)
			}
			if !stamp.Taken.Equal(tt.want) {
				t.Errorf("Extract(%q) taken = %v, want %v", tt.filename, stamp.Taken, tt.want)
			}
			if stamp.DayKey != tt.wantKey {
				t.Errorf("Extract(%q) dayKey = %q, want %q", tt.filename, stamp.DayKey, tt.wantKey)
			}
		})
	}
}

func TestExtract_InvalidNames(t *testing.T) {
	tests := []struct {
		name     string
		filename string
	}{
		{"no digits", "holiday.jpg"},
		{"too few digits", "2024061_18301.jpg"},
		{"day 30 of february", "20240230_120000.jpg"},
		{"day 29 of non-leap february", "20230229_120000.jpg"},
		{"day 31 of april", "20240431_120000.jpg"},
		{"month zero", "20240012_120000.jpg"},
		{"month 13", "20241312_120000.jpg"},
		{"day zero", "20240600_120000.jpg"},
		{"year below range", "19991231_120000.jpg"},
		{"year above range", "20510101_120000.jpg"},
		{"hour 24", "20240612_240000.jpg"},
		{"minute 60", "20240612_126000.jpg"},
		{"second 60", "20240612_120060.jpg"},
		{"empty name", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if stamp, ok := Extract(tt.filename); ok {
				t.Errorf("Extract(%q) = %v, want no match", tt.filename, stamp.Taken)
			}
		})
	}
}

func TestExtract_FixedZone(t *testing.T) {
	stamp, ok := Extract("20240612_080000.jpg")
	if !ok {
		t.Fatal("expected a match")
	}
	_, offset := stamp.Taken.Zone()
	if offset != 8*60*60 {
		t.Errorf("zone offset = %d, want %d", offset, 8*60*60)
	}
}

func TestExtract_IgnoresExtensionDigits(t *testing.T) {
	// The stamp must come from the stem, not be confused by the extension.
	stamp, ok := Extract("20240612_183015.mp4")
	if !ok {
		t.Fatal("expected a match")
	}
	if stamp.DayKey != "2024-06-12" {
		t.Errorf("dayKey = %q, want 2024-06-12", stamp.DayKey)
	}
}

func TestDaysInMonth(t *testing.T) {
	tests := []struct {
		year, month, want int
	}{
		{2024, 2, 29},
		{2023, 2, 28},
		{2000, 2, 29}, // Divisible by 400
		{2100, 2, 28}, // Divisible by 100 but not 400
		{2024, 4, 30},
		{2024, 12, 31},
	}
	for _, tt := range tests {
		if got := daysInMonth(tt.year, tt.month); got != tt.want {
			t.Errorf("daysInMonth(%d, %d) = %d, want %d", tt.year, tt.month, got, tt.want)
		}
	}
}

func TestFromEXIF_MissingFile(t *testing.T) {
	if _, ok := FromEXIF("/nonexistent/photo.jpg"); ok {
		t.Error("expected no stamp for a missing file")
	}
}

func TestFromEXIF_NotAnImage(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "not_an_image.jpg")
	if err := os.WriteFile(path, []byte("plain text, no EXIF"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, ok := FromEXIF(path); ok {
		t.Error("expected no stamp for a file without EXIF data")
	}
}
