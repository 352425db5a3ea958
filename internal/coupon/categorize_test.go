package coupon

import (
	"testing"
	"time"
)

func TestCategorize(t *testing.T) {
	now := time.Date(2026, time.March, 14, 15, 30, 0, 0, time.UTC)

	mk := func(id string, expiry time.Time) Coupon {
		return Coupon{ID: id, Name: id, ExpiryDate: expiry, Type: TypeSell}
	}

	coupons := []Coupon{
		mk("today", now.Add(4*time.Hour)),             // same calendar date
		mk("week", now.AddDate(0, 0, 3)),              // +3 days
		mk("month", now.AddDate(0, 0, 20)),            // +20 days
		mk("remaining", now.AddDate(0, 0, 40)),        // +40 days
		mk("expired", now.AddDate(0, 0, -1)),          // yesterday
		mk("skipped", time.Time{}),                    // malformed, dropped
	}

	sections := Categorize(coupons, now)
	if len(sections) != 5 {
		t.Fatalf("got %d sections, want 5", len(sections))
	}

	want := map[string]string{
		SectionToday:     "today",
		SectionWeek:      "week",
		SectionMonth:     "month",
		SectionRemaining: "remaining",
		SectionExpired:   "expired",
	}
	for _, s := range sections {
		wantID, ok := want[s.Title]
		if !ok {
			t.Errorf("unexpected section %q", s.Title)
			continue
		}
		if len(s.Data) != 1 || s.Data[0].ID != wantID {
			t.Errorf("section %q holds %v, want exactly [%s]", s.Title, s.Data, wantID)
		}
	}
}

func TestCategorizeBoundaries(t *testing.T) {
	now := time.Date(2026, time.March, 14, 15, 30, 0, 0, time.UTC)
	today := time.Date(2026, time.March, 14, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name    string
		expiry  time.Time
		section string
	}{
		{"midnight today is today", today, SectionToday},
		{"end of today is today", today.Add(24*time.Hour - time.Second), SectionToday},
		{"exactly seven days out is within a week", today.AddDate(0, 0, 7), SectionWeek},
		{"just past seven days is within a month", today.AddDate(0, 0, 7).Add(time.Second), SectionMonth},
		{"exactly thirty days out is within a month", today.AddDate(0, 0, 30), SectionMonth},
		{"just past thirty days is remaining", today.AddDate(0, 0, 30).Add(time.Second), SectionRemaining},
		{"one second before today is expired", today.Add(-time.Second), SectionExpired},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			sections := Categorize([]Coupon{{ID: "c", ExpiryDate: tt.expiry}}, now)
			if len(sections) != 1 {
				t.Fatalf("got %d sections, want 1", len(sections))
			}
			if sections[0].Title != tt.section {
				t.Errorf("landed in %q, want %q", sections[0].Title, tt.section)
			}
		})
	}
}

func TestCategorizeEmpty(t *testing.T) {
	if got := Categorize(nil, time.Now()); len(got) != 0 {
		t.Fatalf("Categorize(nil) = %v, want no sections", got)
	}
}
