package dashboard

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rowNames(view TableView) []string {
	names := make([]string, len(view.Rows))
	for i, row := range view.Rows {
		names[i] = row.Name
	}
	return names
}

func TestBuildTableFiltersByStatus(t *testing.T) {
	view := BuildTable(seedCampaigns(), TableQuery{Status: "paused"})
	assert.Equal(t, "Paused", view.Query.Status)
	assert.Equal(t, []string{"Black Friday"}, rowNames(view))

	all := BuildTable(seedCampaigns(), TableQuery{})
	assert.Equal(t, StatusFilterAll, all.Query.Status)
	assert.Len(t, all.Rows, 4)
}

func TestBuildTableSortsStable(t *testing.T) {
	view := BuildTable(seedCampaigns(), TableQuery{SortBy: "Clicks", Desc: true})
	assert.Equal(t, []string{"Summer Sale", "Influencer", "Retargeting", "Black Friday"}, rowNames(view))

	view = BuildTable(seedCampaigns(), TableQuery{SortBy: "status"})
	assert.Equal(t, []string{"Summer Sale", "Influencer", "Retargeting", "Black Friday"}, rowNames(view))

	view = BuildTable(seedCampaigns(), TableQuery{SortBy: "cost"})
	assert.Equal(t, "Black Friday", view.Rows[0].Name)
}

func TestBuildTableFormatsRows(t *testing.T) {
	view := BuildTable(seedCampaigns(), TableQuery{})
	require.Len(t, view.Rows, 4)
	assert.Equal(t, "1,250", view.Rows[0].Clicks)
	assert.Equal(t, "$450", view.Rows[0].Cost)
	assert.Equal(t, "$89.5", view.Rows[1].Cost)
	assert.Equal(t, []string{"Campaign", "Status", "Clicks", "Cost"}, view.Columns)
}

func TestBuildTableInvalidQueryFallsBack(t *testing.T) {
	_, err := TableQuery{SortBy: "color"}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidQuery)
	_, err = TableQuery{Status: "archived"}.Normalize()
	assert.ErrorIs(t, err, ErrInvalidQuery)

	view := BuildTable(seedCampaigns(), TableQuery{Status: "archived", SortBy: "cost"})
	assert.Equal(t, StatusFilterAll, view.Query.Status)
	assert.Equal(t, "Summer Sale", view.Rows[0].Name)
}

func TestBuildTableEmpty(t *testing.T) {
	view := BuildTable(nil, TableQuery{})
	assert.True(t, view.Empty)
	assert.Empty(t, view.Rows)
}

func TestBuildTableHeadersToggleSort(t *testing.T) {
	view := BuildTable(seedCampaigns(), TableQuery{})
	require.Len(t, view.Headers, 4)
	for _, h := range view.Headers {
		assert.False(t, h.Active)
		assert.False(t, h.NextDesc)
		assert.NotEmpty(t, h.Sort)
	}

	view = BuildTable(seedCampaigns(), TableQuery{SortBy: "clicks"})
	clicks := view.Headers[2]
	assert.Equal(t, "clicks", clicks.Sort)
	assert.True(t, clicks.Active)
	assert.True(t, clicks.NextDesc)
	assert.False(t, view.Headers[0].Active)

	view = BuildTable(seedCampaigns(), TableQuery{SortBy: "clicks", Desc: true})
	assert.False(t, view.Headers[2].NextDesc)
}
