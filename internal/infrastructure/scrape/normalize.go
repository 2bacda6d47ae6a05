package scrape

import (
	"sort"
	"strings"
)

var digitReplacer = strings.NewReplacer(
	"۰", "0", "۱", "1", "۲", "2", "۳", "3", "۴", "4",
	"۵", "5", "۶", "6", "۷", "7", "۸", "8", "۹", "9",
	"/", "-",
)

// NormalizeDigits rewrites Persian digits as ASCII digits and '/' as '-'.
// Every other rune passes through unchanged.
func NormalizeDigits(s string) string {
	return digitReplacer.Replace(s)
}

var calendarNames = map[string]string{
	// days
	"شنبه":     "Saturday",
	"یکشنبه":   "Sunday",
	"دوشنبه":   "Monday",
	"سه‌شنبه":  "Tuesday",
	"سه شنبه":  "Tuesday",
	"چهارشنبه": "Wednesday",
	"پنجشنبه":  "Thursday",
	"جمعه":     "Friday",
	// months
	"فروردین":  "Farvardin",
	"اردیبهشت": "Ordibehesht",
	"خرداد":    "Khordad",
	"تیر":      "Tir",
	"مرداد":    "Mordad",
	"شهریور":   "Shahrivar",
	"مهر":      "Mehr",
	"آبان":     "Aban",
	"آذر":      "Azar",
	"دی":       "Dey",
	"بهمن":     "Bahman",
	"اسفند":    "Esfand",
}

var calendarReplacer = newLongestFirstReplacer(calendarNames)

// strings.Replacer tries old strings in argument order at each position, so
// longer names go first and "یکشنبه" never degrades into "یکSaturday".
func newLongestFirstReplacer(m map[string]string) *strings.Replacer {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if len(keys[i]) != len(keys[j]) {
			return len(keys[i]) > len(keys[j])
		}
		return keys[i] < keys[j]
	})
	pairs := make([]string, 0, 2*len(keys))
	for _, k := range keys {
		pairs = append(pairs, k, m[k])
	}
	return strings.NewReplacer(pairs...)
}

// TranslateCalendar replaces Persian weekday and month names with English ones.
func TranslateCalendar(s string) string {
	return calendarReplacer.Replace(s)
}
