package dashboard

const (
	// RegionDashboardCards is the top-level card grid.
	RegionDashboardCards = "dashboard-cards"
	// RegionMetricRows is the list of metric rows inside the metrics card.
	RegionMetricRows = "metric-rows"
)

const (
	CardMetrics      = "metrics"
	CardTrend        = "trend"
	CardTable        = "table"
	CardDistribution = "distribution"

	MetricCost        = "cost"
	MetricClicks      = "clicks"
	MetricImpressions = "impressions"
	MetricCPC         = "cpc"
)

// RegionDefinition models a reorderable region and its fixed card set.
type RegionDefinition struct {
	Code               string           `json:"code" yaml:"code"`
	Name               string           `json:"name" yaml:"name"`
	Description        string           `json:"description,omitempty" yaml:"description,omitempty"`
	ActivationDistance float64          `json:"activation_distance" yaml:"activation_distance"`
	Cards              []CardDefinition `json:"cards" yaml:"cards"`
}

// CardIDs lists the default order of the region.
func (def RegionDefinition) CardIDs() []string {
	ids := make([]string, len(def.Cards))
	for i, card := range def.Cards {
		ids[i] = card.ID
	}
	return ids
}

// Card looks up a card definition by id.
func (def RegionDefinition) Card(id string) (CardDefinition, bool) {
	for _, card := range def.Cards {
		if card.ID == id {
			return card, true
		}
	}
	return CardDefinition{}, false
}

// CardDefinition describes one card of a region.
type CardDefinition struct {
	ID    string `json:"id" yaml:"id"`
	Title string `json:"title" yaml:"title"`
	// Span is the number of grid columns (out of 12) on wide screens.
	Span int `json:"span,omitempty" yaml:"span,omitempty"`
	// Wide cards get the larger drag overlay.
	Wide bool `json:"wide,omitempty" yaml:"wide,omitempty"`
}

var defaultRegionDefinitions = []RegionDefinition{
	{
		Code:               RegionDashboardCards,
		Name:               "Dashboard Cards",
		Description:        "Top-level dashboard grid",
		ActivationDistance: 8,
		Cards: []CardDefinition{
			{ID: CardMetrics, Title: "Key Metrics", Span: 4},
			{ID: CardTrend, Title: "Performance Trends", Span: 8, Wide: true},
			{ID: CardTable, Title: "Campaign Details", Span: 8, Wide: true},
			{ID: CardDistribution, Title: "Distribution", Span: 4},
		},
	},
	{
		Code:               RegionMetricRows,
		Name:               "Metric Rows",
		Description:        "Rows inside the key metrics card",
		ActivationDistance: 5,
		Cards: []CardDefinition{
			{ID: MetricCost, Title: "Total Cost"},
			{ID: MetricClicks, Title: "Total Clicks"},
			{ID: MetricImpressions, Title: "Impressions"},
			{ID: MetricCPC, Title: "Avg CPC"},
		},
	},
}

// DefaultActivationDistance is the drag threshold for regions without a built-in one.
const DefaultActivationDistance = 8

// BuiltinRegion returns the built-in definition for a region code.
func BuiltinRegion(code string) (RegionDefinition, bool) {
	for _, def := range DefaultRegionDefinitions() {
		if def.Code == code {
			return def, true
		}
	}
	return RegionDefinition{}, false
}

// DefaultRegionDefinitions returns the built-in regions.
func DefaultRegionDefinitions() []RegionDefinition {
	out := make([]RegionDefinition, len(defaultRegionDefinitions))
	for i, def := range defaultRegionDefinitions {
		out[i] = def
		out[i].Cards = append([]CardDefinition(nil), def.Cards...)
	}
	return out
}

// DistributionPalette colors the distribution slices.
var DistributionPalette = []string{"#3b82f6", "#10b981", "#f59e0b", "#ef4444", "#8b5cf6"}

// WeekDays labels the trend chart x axis.
var WeekDays = []string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

func campaignFormSchema() map[string]any {
	return map[string]any{
		"type":     "object",
		"required": []string{"name", "status", "clicks", "cost", "impressions"},
		"properties": map[string]any{
			"name": map[string]any{
				"type":      "string",
				"minLength": 1,
				"pattern":   `\S`,
			},
			"status": map[string]any{
				"type": "string",
				"enum": []string{string(StatusActive), string(StatusPaused)},
			},
			"clicks":      map[string]any{"type": "integer", "minimum": 0},
			"cost":        map[string]any{"type": "number", "minimum": 0},
			"impressions": map[string]any{"type": "integer", "minimum": 0},
		},
		"additionalProperties": false,
	}
}
