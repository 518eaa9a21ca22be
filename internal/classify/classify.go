package classify

import (
	"regexp"
	"strings"
	"time"

	"SignalScanner/internal/domain"
)

// RecencyWindow is how far back a published date still counts as fresh when
// assigning heat.
const RecencyWindow = 180 * 24 * time.Hour

// typeRule pairs a signal type with its trigger expression. Rules are
// evaluated in order and the first match wins; reordering silently changes
// classification output, so the order is load-bearing.
type typeRule struct {
	signalType domain.SignalType
	expr       *regexp.Regexp
}

var typeRules = []typeRule{
	{domain.TypeFunding, regexp.MustCompile(`securitiz|\babs\b|credit facilit|funding round|raise|series [a-f]\b|warehouse|\$\d|million|billion`)},
	{domain.TypePartnership, regexp.MustCompile(`partner|alliance|teams up|joint venture|collaborat`)},
	{domain.TypeProduct, regexp.MustCompile(`launch|unveil|releases|rolls out|debuts|new product|new platform|introduc`)},
	{domain.TypeHiring, regexp.MustCompile(`\bhires\b|appoint|joins as|chief \w+ officer|new ceo|new cfo|promotes`)},
	{domain.TypeRegulatory, regexp.MustCompile(`\bsec\b|regulat|compliance|lawsuit|settlement|licens|consent order|filing`)},
	{domain.TypeMilestone, regexp.MustCompile(`milestone|anniversary|surpass|record|award|\bwins\b|expands|crosses`)},
}

var highIntensityExpr = regexp.MustCompile(`\$\d|million|billion|launch|\bai\b|patent|acquisition|funding|raises|partnership|expansion`)

// Type assigns a semantic category from the lowercased concatenation of
// headline and description.
func Type(headline, description string) domain.SignalType {
	text := strings.ToLower(headline + " " + description)
	for _, rule := range typeRules {
		if rule.expr.MatchString(text) {
			return rule.signalType
		}
	}
	return domain.TypeGeneral
}

// Heat assigns an urgency tier. The recency window is measured against now,
// the moment of classification, so backfilled runs age signals correctly.
// A nil publishedAt is treated as stale.
func Heat(tier domain.Tier, headline string, publishedAt *time.Time, now time.Time) domain.Heat {
	if tier == domain.TierSQO || tier == domain.TierClient {
		return domain.HeatHot
	}

	fresh := publishedAt != nil && now.Sub(*publishedAt) <= RecencyWindow

	switch {
	case fresh && tier == domain.TierICP:
		return domain.HeatHot
	case fresh && highIntensityExpr.MatchString(strings.ToLower(headline)):
		return domain.HeatHot
	case fresh:
		return domain.HeatWarm
	default:
		return domain.HeatCool
	}
}
