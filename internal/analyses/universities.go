package analyses

// universityEntry is one named university with the national percentile a
// student typically needs to reach it.
type universityEntry struct {
	name               string
	requiredPercentile int
}

// tierBand groups entries of comparable selectivity. A band applies only to
// callers at or above its ceiling percentile; within the band, entries are
// matched by a symmetric window around the caller's percentile, and the
// inner threshold decides 적정 versus 도전.
type tierBand struct {
	label   string
	ceiling int
	window  int
	inner   int
	entries []universityEntry
}

var academicLevels = []string{"최상위권", "상위권", "중상위권", "중위권", "중하위권"}

var topTier = tierBand{
	label:   "최상위권 (SKY/특수대학)",
	ceiling: 15,
	inner:   5,
	entries: []universityEntry{
		{"서울대학교", 1},
		{"연세대학교", 2},
		{"고려대학교", 2},
		{"KAIST", 1},
		{"포항공대", 2},
	},
}

var lowerTiers = []tierBand{
	{
		label:   "상위권 대학",
		ceiling: 25,
		window:  8,
		inner:   15,
		entries: []universityEntry{
			{"성균관대학교", 6},
			{"한양대학교", 7},
			{"서강대학교", 8},
			{"중앙대학교", 10},
			{"경희대학교", 12},
			{"한국외국어대학교", 13},
			{"서울시립대학교", 14},
		},
	},
	{
		label:   "중상위권 대학",
		ceiling: 40,
		window:  10,
		inner:   25,
		entries: []universityEntry{
			{"건국대학교", 18},
			{"동국대학교", 20},
			{"홍익대학교", 22},
			{"숙명여자대학교", 23},
			{"국민대학교", 25},
			{"숭실대학교", 27},
			{"세종대학교", 28},
		},
	},
	{
		label:   "중위권 대학",
		ceiling: 55,
		window:  12,
		inner:   40,
		entries: []universityEntry{
			{"단국대학교", 32},
			{"광운대학교", 35},
			{"명지대학교", 38},
			{"상명대학교", 40},
			{"가천대학교", 42},
			{"아주대학교", 35},
			{"인하대학교", 36},
		},
	},
	{
		label:   "지방 거점 국립대",
		ceiling: 45,
		window:  15,
		entries: []universityEntry{
			{"부산대학교", 22},
			{"경북대학교", 24},
			{"전남대학교", 28},
			{"전북대학교", 30},
			{"충남대학교", 26},
			{"충북대학교", 32},
			{"강원대학교", 35},
		},
	},
}

// regionalTierLabel identifies the band that always reports 적정.
const regionalTierLabel = "지방 거점 국립대"

// reachableUniversities builds the tier recommendations for a percentile.
// At most three universities per band and four bands overall, ordered from
// most to least selective.
func reachableUniversities(percentile int) []UniversityTier {
	results := make([]UniversityTier, 0, 5)

	if percentile <= topTier.ceiling {
		names := make([]string, 0, 3)
		for _, entry := range topTier.entries {
			// The top band widens as the caller's percentile improves
			// instead of using a symmetric window.
			if float64(entry.requiredPercentile) >= float64(percentile)*0.5 {
				names = append(names, entry.name)
				if len(names) == 3 {
					break
				}
			}
		}
		if len(names) > 0 {
			probability := ProbabilityChallenge
			if percentile <= topTier.inner {
				probability = ProbabilityFit
			}
			results = append(results, UniversityTier{Tier: topTier.label, Universities: names, Probability: probability})
		}
	}

	for _, band := range lowerTiers {
		if percentile > band.ceiling {
			continue
		}
		names := make([]string, 0, 3)
		for _, entry := range band.entries {
			if abs(entry.requiredPercentile-percentile) <= band.window {
				names = append(names, entry.name)
				if len(names) == 3 {
					break
				}
			}
		}
		if len(names) == 0 {
			continue
		}
		probability := ProbabilityChallenge
		if band.label == regionalTierLabel || percentile <= band.inner {
			probability = ProbabilityFit
		}
		results = append(results, UniversityTier{Tier: band.label, Universities: names, Probability: probability})
	}

	if len(results) > 4 {
		results = results[:4]
	}
	return results
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
