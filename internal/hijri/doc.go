// Package hijri converts Gregorian dates to the tabular (arithmetic) Islamic calendar.
//
// The conversion follows the civil tabular algorithm: the Gregorian date is
// turned into a Julian Day Number and then split into 30-year Hijri cycles of
// 10631 days. It does not observe the lunar crescent, so results may differ
// by a day from observational calendars such as Umm al-Qura. The output is
// meant for informational display only and is not suitable for religious or
// legal use.
package hijri
