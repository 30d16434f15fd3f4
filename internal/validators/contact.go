package validators

import "strings"

// Shape-only checks. The booking API owns real contact verification; these
// exist so an obviously broken value is caught before a request is sent.

func IsPlausibleEmail(email string) bool {
	email = strings.TrimSpace(email)

	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return false
	}

	domain := email[at+1:]
	return strings.Contains(domain, ".") && !strings.ContainsAny(email, " \t")
}

func IsPlausiblePhone(phone string) bool {
	phone = strings.TrimSpace(phone)
	if phone == "" {
		return false
	}

	digits := 0
	for _, r := range phone {
		switch {
		case r >= '0' && r <= '9':
			digits++
		case r == '+' || r == ' ' || r == '-' || r == '(' || r == ')':
			// separators are fine
		default:
			return false
		}
	}
	return digits >= 5
}
