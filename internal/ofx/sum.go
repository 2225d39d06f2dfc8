package ofx

import "time"

// Dedupe drops debits already seen under the same account and transaction ID,
// which happens when overlapping statements are imported together. Order is kept.
func Dedupe(debits []Debit) []Debit {
	type key struct{ account, id string }
	seen := make(map[key]bool, len(debits))
	out := make([]Debit, 0, len(debits))
	for _, d := range debits {
		if d.ID != "" {
			k := key{d.AccountID, d.ID}
			if seen[k] {
				continue
			}
			seen[k] = true
		}
		out = append(out, d)
	}
	return out
}

// Sum totals the debits posted in [from, to). A zero from or to leaves that side open.
func Sum(debits []Debit, from, to time.Time) float64 {
	total := 0.0
	for _, d := range debits {
		if !from.IsZero() && d.Date.Before(from) {
			continue
		}
		if !to.IsZero() && !d.Date.Before(to) {
			continue
		}
		total += d.Amount
	}
	return total
}

// Year returns the window covering calendar year y in loc.
func Year(y int, loc *time.Location) (from, to time.Time) {
	if loc == nil {
		loc = time.UTC
	}
	from = time.Date(y, time.January, 1, 0, 0, 0, 0, loc)
	return from, from.AddDate(1, 0, 0)
}
