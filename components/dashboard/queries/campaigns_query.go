package queries

import (
	"context"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
	gocommand "github.com/goliatone/go-command"
)

type stateService interface {
	State() *dashboard.AppState
}

// CampaignsQuery lists the stored campaigns through the table filter and sort.
type CampaignsQuery struct {
	service stateService
}

// NewCampaignsQuery builds the query.
func NewCampaignsQuery(service stateService) *CampaignsQuery {
	return &CampaignsQuery{service: service}
}

var _ gocommand.Querier[dashboard.TableQuery, []dashboard.Campaign] = (*CampaignsQuery)(nil)

// Query returns the matching campaigns in table order.
func (q *CampaignsQuery) Query(_ context.Context, query dashboard.TableQuery) ([]dashboard.Campaign, error) {
	query, err := query.Normalize()
	if err != nil {
		return nil, err
	}
	all := q.service.State().Campaigns().List()
	table := dashboard.BuildTable(all, query)
	byID := make(map[int64]dashboard.Campaign, len(all))
	for _, c := range all {
		byID[c.ID] = c
	}
	out := make([]dashboard.Campaign, 0, len(table.Rows))
	for _, row := range table.Rows {
		out = append(out, byID[row.ID])
	}
	return out, nil
}
