package form

import (
	"regexp"

	"github.com/harrylevesque/ordercode/internal/models"
)

// MaxInputLength is the size of the entry box.
const MaxInputLength = 4

const minuteKeyLength = 5

var digitsPattern = regexp.MustCompile(`^\d{4}$`)

// ValidDigits reports whether s is exactly four ASCII digits.
func ValidDigits(s string) bool {
	return digitsPattern.MatchString(s)
}

// ClampInput cuts s down to what the entry box can hold.
func ClampInput(s string) string {
	return truncate(s, MaxInputLength)
}

// MinuteKey is the HH:MM prefix of a record time.
func MinuteKey(time string) string {
	return truncate(time, minuteKeyLength)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}

// GroupByMinute buckets records (newest first) by minute key. Keys keep the
// order they were first seen and digits keep scan order within a key.
func GroupByMinute(records []models.Record) models.GroupedView {
	view := models.GroupedView{}
	index := make(map[string]int)

	for _, rec := range records {
		key := MinuteKey(rec.Time)
		i, ok := index[key]
		if !ok {
			i = len(view)
			index[key] = i
			view = append(view, models.Group{Minute: key})
		}
		view[i].Digits = append(view[i].Digits, rec.Digits)
	}
	return view
}
