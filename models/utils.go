package models

// StringPtr returns a pointer to the given string.
// Useful for optional fields like ParsedResponse.Mood and Frame.EmphasizedTag.
func StringPtr(s string) *string {
	return &s
}
