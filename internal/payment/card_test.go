package payment

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"catalyster/internal/domain"
)

func TestValidCardNumber(t *testing.T) {
	cases := []struct {
		name   string
		number string
		want   bool
	}{
		{"visa", "4111111111111111", true},
		{"visa with spaces", "4111 1111 1111 1111", true},
		{"mastercard", "5555555555554444", true},
		{"amex", "378282246310005", true},
		{"luhn failure", "4111111111111112", false},
		{"too short", "411111111111", false},
		{"letters", "4111a11111111111", false},
		{"empty", "", false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, ValidCardNumber(tc.number))
		})
	}
}

func TestCardType(t *testing.T) {
	cases := []struct {
		number string
		want   string
	}{
		{"4111111111111111", "Visa"},
		{"5555555555554444", "Mastercard"},
		{"378282246310005", "American Express"},
		{"6011111111111117", "Discover"},
		{"3530111333300000", "JCB"},
		{"30569309025904", "Diners Club"},
		{"6759649826438453", "Maestro"},
		{"6062821234567890", "RuPay"},
		{"9999999999999999", "Unknown"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, CardType(tc.number))
		})
	}
}

func TestCardValidate(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	valid := Card{
		Number:      "4111 1111 1111 1111",
		Holder:      "Asha Rao",
		ExpiryMonth: "09",
		ExpiryYear:  "28",
		CVV:         "123",
	}
	assert.NoError(t, valid.Validate(now))

	cases := []struct {
		name   string
		mutate func(*Card)
	}{
		{"luhn failure", func(c *Card) { c.Number = "4111111111111112" }},
		{"missing number", func(c *Card) { c.Number = "" }},
		{"short holder", func(c *Card) { c.Holder = "Al" }},
		{"month zero", func(c *Card) { c.ExpiryMonth = "0" }},
		{"month thirteen", func(c *Card) { c.ExpiryMonth = "13" }},
		{"past year", func(c *Card) { c.ExpiryYear = "25" }},
		{"past month this year", func(c *Card) { c.ExpiryMonth = "08"; c.ExpiryYear = "26" }},
		{"short cvv", func(c *Card) { c.CVV = "12" }},
		{"alpha cvv", func(c *Card) { c.CVV = "12a" }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid
			tc.mutate(&c)
			err := c.Validate(now)
			assert.True(t, errors.Is(err, domain.ErrInvalidCard), "got %v", err)
		})
	}
}

func TestCardValidateCurrentMonthAndFourDigitYear(t *testing.T) {
	now := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)
	c := Card{
		Number:      "5555555555554444",
		Holder:      "Asha Rao",
		ExpiryMonth: "9",
		ExpiryYear:  "2026",
		CVV:         "4321",
	}
	assert.NoError(t, c.Validate(now))
}

func TestFormatAndMaskCardNumber(t *testing.T) {
	assert.Equal(t, "4111 1111 1111 1111", FormatCardNumber("4111111111111111"))
	assert.Equal(t, "3782 8224 6310 005", FormatCardNumber("378282246310005"))
	assert.Equal(t, "**** **** **** 1111", MaskCardNumber("4111 1111 1111 1111"))
	assert.Equal(t, "****", MaskCardNumber("41"))
}

func TestValidUPIID(t *testing.T) {
	assert.True(t, ValidUPIID("asha@okicici"))
	assert.True(t, ValidUPIID("user.name-1@upi"))
	assert.False(t, ValidUPIID("asha"))
	assert.False(t, ValidUPIID("asha@"))
	assert.False(t, ValidUPIID("@okicici"))
	assert.False(t, ValidUPIID("asha bai@upi"))
}

func TestUPIDeepLink(t *testing.T) {
	link, err := UPIDeepLink("asha@okicici", 500)
	assert.NoError(t, err)
	assert.Contains(t, link, "upi://pay?")
	assert.Contains(t, link, "pa=asha%40okicici")
	assert.Contains(t, link, "am=500.00")
	assert.Contains(t, link, "cu=INR")

	_, err = UPIDeepLink("not-a-vpa", 500)
	assert.ErrorIs(t, err, domain.ErrInvalidUPIID)
}
