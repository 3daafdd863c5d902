package service

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/octobees/merchant-directory/internal/dto"
)

func TestAmenityLabels(t *testing.T) {
	got := AmenityLabels(dto.Amenities{
		"serves_coffee":   boolPtr(true),
		"outdoor_seating": boolPtr(true),
		"live_music":      boolPtr(false),
		"restroom":        nil,
	})
	want := []string{"Outdoor Seating", "Serves Coffee"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected labels: %#v", got)
	}
}

func TestWeeklyHours(t *testing.T) {
	if WeeklyHours(nil) != nil {
		t.Fatalf("expected nil for missing hours")
	}
	got := WeeklyHours(&dto.OpeningHours{
		Sunday:  strPtr("Closed"),
		Monday:  strPtr("09:00 - 17:00"),
		Tuesday: strPtr(""),
	})
	want := []DayHours{{Day: "monday", Hours: "09:00 - 17:00"}, {Day: "sunday", Hours: "Closed"}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected hours: %#v", got)
	}
}

func TestReviewDate(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	recent := now.AddDate(0, -1, 0)
	old := time.Date(2024, 3, 7, 10, 0, 0, 0, time.UTC)

	tests := map[string]struct {
		review dto.MerchantReview
		want   string
	}{
		"recent uses backend relative time": {
			review: dto.MerchantReview{PublishedAt: &recent, RelativeTime: strPtr("a month ago")},
			want:   "a month ago",
		},
		"recent without relative time": {
			review: dto.MerchantReview{PublishedAt: &recent},
			want:   "1 month ago",
		},
		"older than six months": {
			review: dto.MerchantReview{PublishedAt: &old, RelativeTime: strPtr("a year ago")},
			want:   "7 Mar 2024",
		},
		"no publication date": {
			review: dto.MerchantReview{RelativeTime: strPtr("2 weeks ago")},
			want:   "2 weeks ago",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			if got := ReviewDate(tt.review, now); got != tt.want {
				t.Fatalf("ReviewDate() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFormatPhone(t *testing.T) {
	if FormatPhone(nil, strPtr("  ")) != nil {
		t.Fatalf("expected nil for missing numbers")
	}

	p := FormatPhone(nil, strPtr("0812-3456-7890"))
	if p == nil || p.Tel != "+6281234567890" || !strings.HasPrefix(p.Display, "+62") {
		t.Fatalf("unexpected national formatting: %+v", p)
	}

	raw := FormatPhone(strPtr("call us"), nil)
	if raw == nil || raw.Display != "call us" || raw.Tel != "callus" {
		t.Fatalf("expected verbatim fallback, got %+v", raw)
	}
}

func TestStaticMapURL(t *testing.T) {
	if StaticMapURL(1, 2, "") != "" {
		t.Fatalf("expected no map without token")
	}
	want := "https://api.mapbox.com/styles/v1/mapbox/streets-v12/static/pin-s+2563eb(106.82,-6.175)/106.82,-6.175,19/1280x720@2x?access_token=pk.abc"
	if got := StaticMapURL(-6.175, 106.82, "pk.abc"); got != want {
		t.Fatalf("unexpected url:\n got %s\nwant %s", got, want)
	}
}
