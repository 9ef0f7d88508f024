package format

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFundingPercentage(t *testing.T) {
	assert.Equal(t, 45, FundingPercentage(45000, 100000))
	assert.Equal(t, 100, FundingPercentage(150000, 100000), "overfunded clamps to 100")
	assert.Equal(t, 0, FundingPercentage(500, 0), "zero goal reads as no progress")
	assert.Equal(t, 0, FundingPercentage(-10, 100000))
	assert.Equal(t, 1, FundingPercentage(700, 100000))
}

func TestDaysLeft(t *testing.T) {
	now := time.Date(2026, time.September, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 10, DaysLeft(now.AddDate(0, 0, 10), now))
	assert.Equal(t, 1, DaysLeft(now.Add(2*time.Hour), now), "partial days round up")
	assert.Equal(t, 0, DaysLeft(now.AddDate(0, 0, -3), now), "past deadlines never go negative")
	assert.Equal(t, 0, DaysLeft(now, now))
}

func TestCurrency(t *testing.T) {
	got := Currency(45000, "INR")
	assert.Contains(t, got, "₹")
	assert.Contains(t, got, "45,000")

	usd := Currency(1250, "USD")
	assert.Contains(t, usd, "$")

	fallback := Currency(100, "not-a-code")
	assert.Contains(t, fallback, "₹")
}

func TestCompact(t *testing.T) {
	assert.Equal(t, "999", Compact(999))
	assert.Equal(t, "1K", Compact(1000))
	assert.Equal(t, "1.2K", Compact(1234))
	assert.Equal(t, "3.4M", Compact(3_400_000))
	assert.Equal(t, "12.5K", Compact(12_500))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "Solar…", Truncate("Solar Lab for Rural Schools", 5))
	assert.Equal(t, "Solar", Truncate("Solar", 5))
	assert.Equal(t, "", Truncate("anything", 0))
}

func TestInitials(t *testing.T) {
	assert.Equal(t, "AR", Initials("Asha Rao"))
	assert.Equal(t, "A", Initials("asha"))
	assert.Equal(t, "AK", Initials("Asha  P.  Kumar"))
	assert.Equal(t, "", Initials("   "))
}
