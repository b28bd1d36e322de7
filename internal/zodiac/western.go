package zodiac

import (
	"fmt"
	"time"

	"github.com/tartampluch/go-lifespan/internal/calendar"
)

// Sign is a Western (tropical) zodiac sign with its inclusive date range.
type Sign struct {
	Name       string     `json:"name"`
	Symbol     string     `json:"symbol"`
	Element    string     `json:"element"`
	StartMonth time.Month `json:"start_month"`
	StartDay   int        `json:"start_day"`
	EndMonth   time.Month `json:"end_month"`
	EndDay     int        `json:"end_day"`
}

// wraps reports whether the range crosses the year boundary.
func (s Sign) wraps() bool {
	return s.StartMonth > s.EndMonth
}

// Contains reports whether month/day falls inside the sign's inclusive range.
func (s Sign) Contains(month time.Month, day int) bool {
	md := monthDay(month, day)
	start, end := monthDay(s.StartMonth, s.StartDay), monthDay(s.EndMonth, s.EndDay)
	if s.wraps() {
		return md >= start || md <= end
	}
	return md >= start && md <= end
}

func monthDay(month time.Month, day int) int {
	return int(month)*100 + day
}

var signs = [...]Sign{
	{"Capricorn", "♑", "Earth", time.December, 22, time.January, 19},
	{"Aquarius", "♒", "Air", time.January, 20, time.February, 18},
	{"Pisces", "♓", "Water", time.February, 19, time.March, 20},
	{"Aries", "♈", "Fire", time.March, 21, time.April, 19},
	{"Taurus", "♉", "Earth", time.April, 20, time.May, 20},
	{"Gemini", "♊", "Air", time.May, 21, time.June, 20},
	{"Cancer", "♋", "Water", time.June, 21, time.July, 22},
	{"Leo", "♌", "Fire", time.July, 23, time.August, 22},
	{"Virgo", "♍", "Earth", time.August, 23, time.September, 22},
	{"Libra", "♎", "Air", time.September, 23, time.October, 22},
	{"Scorpio", "♏", "Water", time.October, 23, time.November, 21},
	{"Sagittarius", "♐", "Fire", time.November, 22, time.December, 21},
}

// Signs lists the twelve signs, Capricorn first.
func Signs() []Sign {
	out := make([]Sign, len(signs))
	copy(out, signs[:])
	return out
}

// WesternZodiac returns the sign whose range contains month/day.
// Feb 29 is accepted; any other impossible day fails with ErrInvalidDate.
func WesternZodiac(month time.Month, day int) (Sign, error) {
	if month < time.January || month > time.December {
		return Sign{}, fmt.Errorf("%w: month %d", calendar.ErrInvalidDate, month)
	}
	// A leap year bounds every month at its longest.
	if day < 1 || day > calendar.DaysIn(2000, month) {
		return Sign{}, fmt.Errorf("%w: day %d of month %d", calendar.ErrInvalidDate, day, month)
	}

	for _, s := range signs {
		if s.Contains(month, day) {
			return s, nil
		}
	}
	return Sign{}, fmt.Errorf("%w: %02d-%02d", calendar.ErrUnclassified, month, day)
}
