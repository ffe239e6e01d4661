package report

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AngelCh415/digmar-dash/internal/models"
)

func TestFormatter(t *testing.T) {
	f := NewFormatter("Rp")

	assert.Equal(t, "1,234,567", f.Count(1234567))
	assert.Equal(t, "0", f.Count(0))
	assert.Equal(t, "1234567", f.Plain(1234567))

	assert.Equal(t, "10.00%", f.Percent(0.1))
	assert.Equal(t, "271.43%", f.Percent(models.Ratio(475.0/175.0)))
	assert.Equal(t, "-50.00%", f.Percent(-0.5))
	assert.Equal(t, Undefined, f.Percent(models.Ratio(math.NaN())))
	assert.Equal(t, Undefined, f.Percent(models.Ratio(math.Inf(1))))

	assert.Equal(t, "Rp1,500,000", f.Money(1500000))
	assert.Equal(t, "Rp5", f.Money(5))
	assert.Equal(t, "Rp-1,250", f.Money(-1250))
	assert.Equal(t, Undefined, f.Money(math.Inf(-1)))
	assert.Equal(t, Undefined, f.MoneyRatio(models.Ratio(math.NaN())))
	assert.Equal(t, "Rp5", f.MoneyRatio(5))
}

func TestFormatterCurrency(t *testing.T) {
	assert.Equal(t, "$2,000", NewFormatter("$").Money(2000))
}
