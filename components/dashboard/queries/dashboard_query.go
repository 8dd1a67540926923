package queries

import (
	"context"

	dashboard "github.com/goliatone/go-campaign-dashboard/components/dashboard"
	gocommand "github.com/goliatone/go-command"
)

type viewService interface {
	View(ctx context.Context, query dashboard.TableQuery) (dashboard.DashboardView, error)
}

// DashboardQuery executes read-only view assembly.
type DashboardQuery struct {
	service viewService
}

// NewDashboardQuery builds the query.
func NewDashboardQuery(service viewService) *DashboardQuery {
	return &DashboardQuery{service: service}
}

var _ gocommand.Querier[dashboard.TableQuery, dashboard.DashboardView] = (*DashboardQuery)(nil)

// Query assembles the dashboard view with the given table filter.
func (q *DashboardQuery) Query(ctx context.Context, query dashboard.TableQuery) (dashboard.DashboardView, error) {
	return q.service.View(ctx, query)
}
