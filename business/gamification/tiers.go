// Package gamification maps point totals to tier badges and titles.
package gamification

const (
	TierIron     = "Iron"
	TierSilver   = "Silver"
	TierGold     = "Gold"
	TierPlatinum = "Platinum"

	TitleNewbie       = "Newbie"
	TitleIntermediate = "Intermediate"
	TitlePro          = "Pro"
	TitleExpert       = "Expert"
)

type band struct {
	name  string
	above int64
}

// Ordered lowest first. A badge is earned once points exceed its bound.
var tierBands = []band{
	{TierSilver, 50},
	{TierGold, 100},
	{TierPlatinum, 200},
}

// Ordered highest first; the first matching band wins.
var titleBands = []band{
	{TitleExpert, 200},
	{TitlePro, 100},
	{TitleIntermediate, 50},
}

// ClassifyTiers returns every badge earned at points, always starting with Iron.
// Tiers are cumulative.
func ClassifyTiers(points int64) []string {
	tiers := make([]string, 1, len(tierBands)+1)
	tiers[0] = TierIron
	for _, b := range tierBands {
		if points > b.above {
			tiers = append(tiers, b.name)
		}
	}
	return tiers
}

// ClassifyTitle returns the single title for points.
func ClassifyTitle(points int64) string {
	for _, b := range titleBands {
		if points > b.above {
			return b.name
		}
	}
	return TitleNewbie
}

// Classify derives both badges and title from the same total.
func Classify(points int64) ([]string, string) {
	return ClassifyTiers(points), ClassifyTitle(points)
}

// NewTiers returns the badges present in after but not in before.
func NewTiers(before, after []string) []string {
	had := make(map[string]struct{}, len(before))
	for _, t := range before {
		had[t] = struct{}{}
	}

	var gained []string
	for _, t := range after {
		if _, ok := had[t]; !ok {
			gained = append(gained, t)
		}
	}
	return gained
}
