package service

import (
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/nyaruka/phonenumbers"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/octobees/merchant-directory/internal/dto"
)

const (
	defaultPhoneRegion = "ID"
	reviewDateLayout   = "2 Jan 2006"
	mapboxStyle        = "https://api.mapbox.com/styles/v1/mapbox/streets-v12/static"
	mapPinColor        = "2563eb"
	mapZoom            = 19
)

// DayHours is one line of the opening-hours table.
type DayHours struct {
	// Day is the catalog key suffix under merchant.days.
	Day   string
	Hours string
}

// Phone holds a number ready for display and for a tel: link.
type Phone struct {
	Display string
	Tel     string
}

// AmenityLabels returns the amenities that are available, as sorted human labels.
func AmenityLabels(amenities dto.Amenities) []string {
	labels := make([]string, 0, len(amenities))
	caser := cases.Title(language.English)
	for key, available := range amenities {
		if available == nil || !*available {
			continue
		}
		label := strings.TrimSpace(strings.ReplaceAll(key, "_", " "))
		if label == "" {
			continue
		}
		labels = append(labels, caser.String(label))
	}
	sort.Strings(labels)
	return labels
}

// WeeklyHours lists the opening hours from monday to sunday, skipping days without data.
func WeeklyHours(hours *dto.OpeningHours) []DayHours {
	if hours == nil {
		return nil
	}
	days := []struct {
		name  string
		value *string
	}{
		{"monday", hours.Monday},
		{"tuesday", hours.Tuesday},
		{"wednesday", hours.Wednesday},
		{"thursday", hours.Thursday},
		{"friday", hours.Friday},
		{"saturday", hours.Saturday},
		{"sunday", hours.Sunday},
	}
	out := make([]DayHours, 0, len(days))
	for _, d := range days {
		if d.value == nil || strings.TrimSpace(*d.value) == "" {
			continue
		}
		out = append(out, DayHours{Day: d.name, Hours: strings.TrimSpace(*d.value)})
	}
	return out
}

// ReviewDate shows recent reviews relatively and older ones with an absolute date.
func ReviewDate(review dto.MerchantReview, now time.Time) string {
	relative := ""
	if review.RelativeTime != nil {
		relative = strings.TrimSpace(*review.RelativeTime)
	}
	if review.PublishedAt == nil {
		return relative
	}
	published := *review.PublishedAt
	if published.After(now.AddDate(0, -6, 0)) {
		if relative != "" {
			return relative
		}
		return humanize.RelTime(published, now, "ago", "from now")
	}
	return published.Format(reviewDateLayout)
}

// FormatPhone prefers the international number. Unparseable numbers are shown verbatim.
func FormatPhone(international, national *string) *Phone {
	raw := ""
	switch {
	case international != nil && strings.TrimSpace(*international) != "":
		raw = strings.TrimSpace(*international)
	case national != nil && strings.TrimSpace(*national) != "":
		raw = strings.TrimSpace(*national)
	default:
		return nil
	}

	number, err := phonenumbers.Parse(raw, defaultPhoneRegion)
	if err != nil || !phonenumbers.IsValidNumber(number) {
		return &Phone{Display: raw, Tel: strings.ReplaceAll(raw, " ", "")}
	}
	return &Phone{
		Display: phonenumbers.Format(number, phonenumbers.INTERNATIONAL),
		Tel:     phonenumbers.Format(number, phonenumbers.E164),
	}
}

// StaticMapURL renders a pinned static map centred on the merchant. Empty without a token.
func StaticMapURL(lat, lng float64, accessToken string) string {
	if accessToken == "" {
		return ""
	}
	lon, la := coord(lng), coord(lat)
	return mapboxStyle + "/pin-s+" + mapPinColor + "(" + lon + "," + la + ")/" +
		lon + "," + la + "," + strconv.Itoa(mapZoom) + "/1280x720@2x?access_token=" + url.QueryEscape(accessToken)
}

// DirectionsURL opens turn-by-turn directions to the coordinates.
func DirectionsURL(lat, lng float64) string {
	q := url.Values{}
	q.Set("api", "1")
	q.Set("destination", coord(lat)+","+coord(lng))
	return "https://www.google.com/maps/dir/?" + q.Encode()
}

func coord(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
