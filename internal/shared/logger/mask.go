package logger

// MaskMobile hides all but the last four digits of a phone number.
// Example: 9876543210 -> ******3210
func MaskMobile(mobile string) string {
	runes := []rune(mobile)
	if len(runes) <= 4 {
		return "****"
	}

	masked := make([]rune, len(runes))
	for i, r := range runes {
		if i < len(runes)-4 {
			masked[i] = '*'
			continue
		}
		masked[i] = r
	}
	return string(masked)
}
