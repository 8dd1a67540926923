package dashboard

import "math"

// TrendSeries is the weekly click series for one campaign.
type TrendSeries struct {
	CampaignID int64   `json:"campaign_id"`
	Name       string  `json:"name"`
	Color      string  `json:"color"`
	Points     []int64 `json:"points"`
}

// BuildTrendSeries derives a deterministic weekly series per campaign. The daily
// value is clicks/7 shifted by a variance in [-25, 24] seeded from the campaign id,
// the weekday and the click count, clamped at zero.
func BuildTrendSeries(campaigns []Campaign) []TrendSeries {
	out := make([]TrendSeries, 0, len(campaigns))
	for _, c := range campaigns {
		points := make([]int64, len(WeekDays))
		for i, day := range WeekDays {
			points[i] = trendValue(c, day)
		}
		out = append(out, TrendSeries{
			CampaignID: c.ID,
			Name:       c.Name,
			Color:      c.Color,
			Points:     points,
		})
	}
	return out
}

func trendValue(c Campaign, day string) int64 {
	var first int64
	if day != "" {
		first = int64(day[0])
	}
	seed := c.ID * (first + c.Clicks)
	variance := seed%50 - 25
	value := math.Floor(float64(c.Clicks)/7 + float64(variance))
	if value < 0 {
		return 0
	}
	return int64(value)
}
