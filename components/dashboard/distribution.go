package dashboard

const distributionLimit = 5

// DistributionSlice is one pie slice.
type DistributionSlice struct {
	Name  string  `json:"name"`
	Value float64 `json:"value"`
	Color string  `json:"color"`
}

// DistributionView holds the cost and clicks pies plus the shared legend.
type DistributionView struct {
	ByCost   []DistributionSlice `json:"by_cost"`
	ByClicks []DistributionSlice `json:"by_clicks"`
	Legend   []DistributionSlice `json:"legend"`
}

// BuildDistribution uses the first five campaigns. The clicks pie rotates the
// palette by two so adjacent pies do not share colors.
func BuildDistribution(campaigns []Campaign) DistributionView {
	if len(campaigns) > distributionLimit {
		campaigns = campaigns[:distributionLimit]
	}
	view := DistributionView{
		ByCost:   make([]DistributionSlice, len(campaigns)),
		ByClicks: make([]DistributionSlice, len(campaigns)),
		Legend:   make([]DistributionSlice, len(campaigns)),
	}
	for i, c := range campaigns {
		view.ByCost[i] = DistributionSlice{Name: c.Name, Value: c.Cost, Color: paletteColor(i, 0)}
		view.ByClicks[i] = DistributionSlice{Name: c.Name, Value: float64(c.Clicks), Color: paletteColor(i, 2)}
		view.Legend[i] = DistributionSlice{Name: c.Name, Color: paletteColor(i, 0)}
	}
	return view
}

func paletteColor(i, offset int) string {
	return DistributionPalette[(i+offset)%len(DistributionPalette)]
}
