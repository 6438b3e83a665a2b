package model

import "strings"

// Session is the simulated logged-in identity.
type Session struct {
	ID    int64  `json:"id"`
	Name  string `json:"name,omitempty"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// DisplayName returns the name, falling back to the email.
func (s Session) DisplayName() string {
	if s.Name != "" {
		return s.Name
	}
	return s.Email
}

// Initials builds the avatar text from the first letter of each word of the name.
func (s Session) Initials() string {
	var b strings.Builder
	for _, word := range strings.Fields(s.Name) {
		r := []rune(word)
		b.WriteString(strings.ToUpper(string(r[0])))
	}
	return b.String()
}
