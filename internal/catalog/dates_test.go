package catalog_test

import (
	"testing"

	"furrow/internal/catalog"
)

func TestParseDate(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want catalog.Date
		ok   bool
	}{
		{"numeric", "2024_12_05.png", catalog.Date{Year: 2024, Month: 12, Day: 5}, true},
		{"numeric single digit", "2025_3_7.png", catalog.Date{Year: 2025, Month: 3, Day: 7}, true},
		{"month underscore year", "Dec_2024.tif", catalog.Date{Year: 2024, Month: 12, Day: 1}, true},
		{"day month comma year", "5dec,2024.tif", catalog.Date{Year: 2024, Month: 12, Day: 5}, true},
		{"day month year", "17march2025.tiff", catalog.Date{Year: 2025, Month: 3, Day: 17}, true},
		{"month day underscore year", "dec5_2024.tif", catalog.Date{Year: 2024, Month: 12, Day: 5}, true},
		{"bare year", "harvest-2023-final.tif", catalog.Date{Year: 2023}, true},
		{"full path", "plots/12/2024/2024_1_9.png", catalog.Date{Year: 2024, Month: 1, Day: 9}, true},
		{"no date", "overview.tif", catalog.Date{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, ok := catalog.ParseDate(tc.in)
			if ok != tc.ok {
				t.Fatalf("ParseDate(%q) ok = %v, want %v", tc.in, ok, tc.ok)
			}
			if ok && got != tc.want {
				t.Fatalf("ParseDate(%q) = %+v, want %+v", tc.in, got, tc.want)
			}
		})
	}
}

func TestDateLabel(t *testing.T) {
	cases := []struct {
		date catalog.Date
		want string
	}{
		{catalog.Date{Year: 2024, Month: 12, Day: 5}, "Dec 5, 2024"},
		{catalog.Date{Year: 2024, Month: 12}, "Dec 2024"},
		{catalog.Date{Year: 2024}, "2024"},
	}
	for _, tc := range cases {
		if got := tc.date.Label(); got != tc.want {
			t.Fatalf("Label(%+v) = %q, want %q", tc.date, got, tc.want)
		}
	}
}

func TestDateBefore(t *testing.T) {
	earlier := catalog.Date{Year: 2024, Month: 5, Day: 2}
	later := catalog.Date{Year: 2024, Month: 5, Day: 9}
	if !earlier.Before(later) {
		t.Fatal("expected earlier.Before(later)")
	}
	if later.Before(earlier) {
		t.Fatal("expected !later.Before(earlier)")
	}
	if earlier.Before(earlier) {
		t.Fatal("a date must not sort before itself")
	}
}
