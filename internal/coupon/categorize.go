package coupon

import "time"

// Section titles shown by the buyer screens.
const (
	SectionToday     = "Expiring Today"
	SectionWeek      = "Expiring Within a Week"
	SectionMonth     = "Expiring Within a Month"
	SectionRemaining = "Remaining Coupons"
	SectionExpired   = "Expired Coupons"
)

// Section groups listings under one expiry heading.
type Section struct {
	Title string   `json:"title"`
	Data  []Coupon `json:"data"`
}

// Categorize partitions listings by expiry relative to now truncated to
// midnight: same calendar date, (today, today+7d], (today+7d, today+30d],
// beyond 30 days, and strictly before today. Listings with a zero expiry
// are skipped. Empty sections are dropped from the result.
func Categorize(coupons []Coupon, now time.Time) []Section {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	oneWeek := today.AddDate(0, 0, 7)
	oneMonth := today.AddDate(0, 0, 30)

	buckets := [5]Section{
		{Title: SectionToday},
		{Title: SectionWeek},
		{Title: SectionMonth},
		{Title: SectionRemaining},
		{Title: SectionExpired},
	}

	for _, c := range coupons {
		if c.ExpiryDate.IsZero() {
			continue
		}
		exp := c.ExpiryDate.In(now.Location())
		var i int
		switch {
		case sameDate(exp, today):
			i = 0
		case exp.Before(today):
			i = 4
		case !exp.After(oneWeek):
			i = 1
		case !exp.After(oneMonth):
			i = 2
		default:
			i = 3
		}
		buckets[i].Data = append(buckets[i].Data, c)
	}

	sections := make([]Section, 0, len(buckets))
	for _, b := range buckets {
		if len(b.Data) > 0 {
			sections = append(sections, b)
		}
	}
	return sections
}

func sameDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
