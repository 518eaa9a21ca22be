package classify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"SignalScanner/internal/domain"
)

func TestTypeDeterminism(t *testing.T) {
	t.Parallel()

	cases := []struct {
		headline    string
		description string
		want        domain.SignalType
	}{
		{"XYZ Corp raises $10M Series B", "", domain.TypeFunding},
		{"XYZ Corp launches new platform", "", domain.TypeProduct},
		{"Generic update", "", domain.TypeGeneral},
		{"Acme closes $50M credit facility", "", domain.TypeFunding},
		{"Acme announces warehouse expansion of lending program", "", domain.TypeFunding},
		{"Acme teams up with Beta Lending", "", domain.TypePartnership},
		{"Acme appoints new chief risk officer", "", domain.TypeHiring},
		{"Regulator opens compliance review of Acme", "", domain.TypeRegulatory},
		{"Acme surpasses origination record", "", domain.TypeMilestone},
		{"Quiet quarter", "ABS issuance grew across the sector", domain.TypeFunding},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Type(tc.headline, tc.description), "headline %q", tc.headline)
	}
}

func TestTypeFirstRuleWins(t *testing.T) {
	t.Parallel()

	// Matches both funding ("raises") and product ("launch"); funding is
	// evaluated first.
	got := Type("Acme raises $10M to launch its new platform", "")
	assert.Equal(t, domain.TypeFunding, got)
}

func TestTypeWordBoundaries(t *testing.T) {
	t.Parallel()

	// "absorb" must not trip the "abs" funding trigger.
	assert.Equal(t, domain.TypeGeneral, Type("Acme absorbs seasonal demand", ""))
}

func TestHeatTierOverride(t *testing.T) {
	t.Parallel()

	now := time.Now()
	old := now.AddDate(-2, 0, 0)

	assert.Equal(t, domain.HeatHot, Heat(domain.TierSQO, "Generic update", nil, now))
	assert.Equal(t, domain.HeatHot, Heat(domain.TierSQO, "Generic update", &old, now))
	assert.Equal(t, domain.HeatHot, Heat(domain.TierClient, "Generic update", nil, now))
}

func TestHeatRecencyBoundary(t *testing.T) {
	t.Parallel()

	now := time.Now()

	stale := now.Add(-RecencyWindow - time.Second)
	assert.Equal(t, domain.HeatCool, Heat(domain.TierICP, "Quarterly operations update", &stale, now))

	fresh := now.Add(-179 * 24 * time.Hour)
	assert.Equal(t, domain.HeatHot, Heat(domain.TierICP, "Quarterly operations update", &fresh, now))
}

func TestHeatHighIntensityKeywords(t *testing.T) {
	t.Parallel()

	now := time.Now()
	fresh := now.Add(-10 * 24 * time.Hour)

	assert.Equal(t, domain.HeatHot, Heat(domain.TierTAM, "Acme launches AI underwriting", &fresh, now))
	assert.Equal(t, domain.HeatWarm, Heat(domain.TierTAM, "Quarterly operations update", &fresh, now))
}

func TestHeatUnknownDateIsStale(t *testing.T) {
	t.Parallel()

	assert.Equal(t, domain.HeatCool, Heat(domain.TierTAM, "Acme launches AI underwriting", nil, time.Now()))
	assert.Equal(t, domain.HeatCool, Heat(domain.TierICP, "Quarterly operations update", nil, time.Now()))
}
