package payment

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"catalyster/internal/domain"
)

// Card carries the card form fields. Numbers may contain spaces; they are
// stripped before validation and submission.
type Card struct {
	Number      string
	Holder      string
	ExpiryMonth string
	ExpiryYear  string
	CVV         string
	Save        bool
}

var cardDigits = regexp.MustCompile(`^\d{13,19}$`)

// Validate applies the same checks the card form ran before submitting:
// Luhn, holder name, expiry in the future, CVV length. These are UX checks
// only; the card never enters custody here.
func (c Card) Validate(now time.Time) error {
	number := normalizeCardNumber(c.Number)
	if number == "" {
		return fmt.Errorf("%w: card number is required", domain.ErrInvalidCard)
	}
	if !ValidCardNumber(number) {
		return fmt.Errorf("%w: card number failed validation", domain.ErrInvalidCard)
	}
	if len(strings.TrimSpace(c.Holder)) < 3 {
		return fmt.Errorf("%w: card holder name is required", domain.ErrInvalidCard)
	}

	month, err := strconv.Atoi(c.ExpiryMonth)
	if err != nil || month < 1 || month > 12 {
		return fmt.Errorf("%w: invalid expiry month", domain.ErrInvalidCard)
	}
	year, err := strconv.Atoi(c.ExpiryYear)
	if err != nil {
		return fmt.Errorf("%w: invalid expiry year", domain.ErrInvalidCard)
	}
	if year >= 100 {
		year %= 100
	}
	currentYear := now.Year() % 100
	if year < currentYear {
		return fmt.Errorf("%w: card is expired", domain.ErrInvalidCard)
	}
	if year == currentYear && month < int(now.Month()) {
		return fmt.Errorf("%w: card is expired", domain.ErrInvalidCard)
	}

	cvv := strings.TrimSpace(c.CVV)
	if len(cvv) < 3 || len(cvv) > 4 {
		return fmt.Errorf("%w: cvv is required", domain.ErrInvalidCard)
	}
	for _, r := range cvv {
		if r < '0' || r > '9' {
			return fmt.Errorf("%w: cvv must be numeric", domain.ErrInvalidCard)
		}
	}
	return nil
}

// ValidCardNumber runs the Luhn check over a digit string.
func ValidCardNumber(number string) bool {
	cleaned := normalizeCardNumber(number)
	if !cardDigits.MatchString(cleaned) {
		return false
	}
	sum := 0
	double := false
	for i := len(cleaned) - 1; i >= 0; i-- {
		digit := int(cleaned[i] - '0')
		if double {
			digit *= 2
			if digit > 9 {
				digit -= 9
			}
		}
		sum += digit
		double = !double
	}
	return sum%10 == 0
}

// CardType guesses the network from the number prefix.
func CardType(number string) string {
	cleaned := normalizeCardNumber(number)
	switch {
	case strings.HasPrefix(cleaned, "4"):
		return "Visa"
	case matchPrefixRange(cleaned, "51", "55"):
		return "Mastercard"
	case strings.HasPrefix(cleaned, "34"), strings.HasPrefix(cleaned, "37"):
		return "American Express"
	case strings.HasPrefix(cleaned, "6011"), strings.HasPrefix(cleaned, "65"):
		return "Discover"
	case strings.HasPrefix(cleaned, "35"):
		return "JCB"
	case strings.HasPrefix(cleaned, "2131"), strings.HasPrefix(cleaned, "1800"), matchPrefixRange(cleaned, "300", "305"):
		return "Diners Club"
	case hasAnyPrefix(cleaned, "5018", "5020", "5038", "6304", "6759", "6761", "6763"):
		return "Maestro"
	case strings.HasPrefix(cleaned, "6062"), matchPrefixRange(cleaned, "606", "609"), matchPrefixRange(cleaned, "650", "659"):
		return "RuPay"
	default:
		return "Unknown"
	}
}

// FormatCardNumber groups digits into blocks of four for display.
func FormatCardNumber(number string) string {
	cleaned := normalizeCardNumber(number)
	if cleaned == "" {
		return number
	}
	var groups []string
	for i := 0; i < len(cleaned); i += 4 {
		end := i + 4
		if end > len(cleaned) {
			end = len(cleaned)
		}
		groups = append(groups, cleaned[i:end])
	}
	return strings.Join(groups, " ")
}

// MaskCardNumber hides all but the last four digits.
func MaskCardNumber(number string) string {
	cleaned := normalizeCardNumber(number)
	if len(cleaned) < 4 {
		return "****"
	}
	return "**** **** **** " + cleaned[len(cleaned)-4:]
}

func normalizeCardNumber(number string) string {
	return strings.ReplaceAll(strings.TrimSpace(number), " ", "")
}

func matchPrefixRange(number, low, high string) bool {
	n := len(low)
	if len(number) < n || len(high) != n {
		return false
	}
	prefix := number[:n]
	return prefix >= low && prefix <= high
}

func hasAnyPrefix(number string, prefixes ...string) bool {
	for _, p := range prefixes {
		if strings.HasPrefix(number, p) {
			return true
		}
	}
	return false
}
