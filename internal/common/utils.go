package common

import "strconv"

// NotAvailable is shown in place of readings the provider did not report.
const NotAvailable = "n/a"

// FormatOptional formats v, or returns NotAvailable when v is nil.
func FormatOptional(v *float64) string {
	if v == nil {
		return NotAvailable
	}
	return FormatFloat(*v)
}

// FormatFloat formats f with the fewest digits needed.
func FormatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func YesNo(b bool) string {
	if b {
		return "Yes"
	}
	return "No"
}
