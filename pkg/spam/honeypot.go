package spam

// IsHoneypotFilled reports whether the hidden form field carries any value,
// whitespace included. Humans never see the field, so any value means a bot.
func IsHoneypotFilled(value string) bool {
	return value != ""
}
