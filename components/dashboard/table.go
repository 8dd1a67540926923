package dashboard

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// StatusFilterAll disables status filtering in the table.
const StatusFilterAll = "All"

// ErrInvalidQuery is matched by every rejected table filter or sort column.
var ErrInvalidQuery = errors.New("dashboard: invalid table query")

var sortableColumns = map[string]func(a, b Campaign) int{
	"name":        func(a, b Campaign) int { return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name)) },
	"status":      func(a, b Campaign) int { return strings.Compare(string(a.Status), string(b.Status)) },
	"clicks":      func(a, b Campaign) int { return compareInt(a.Clicks, b.Clicks) },
	"impressions": func(a, b Campaign) int { return compareInt(a.Impressions, b.Impressions) },
	"cost": func(a, b Campaign) int {
		switch {
		case a.Cost < b.Cost:
			return -1
		case a.Cost > b.Cost:
			return 1
		}
		return 0
	},
}

// TableQuery filters and sorts the campaign table.
type TableQuery struct {
	Status string `json:"status"`
	SortBy string `json:"sort_by"`
	Desc   bool   `json:"desc"`
}

// Normalize fills defaults and validates the query.
func (q TableQuery) Normalize() (TableQuery, error) {
	status := strings.TrimSpace(q.Status)
	if status == "" || strings.EqualFold(status, StatusFilterAll) {
		q.Status = StatusFilterAll
	} else {
		parsed, err := ParseCampaignStatus(status)
		if err != nil {
			return q, fmt.Errorf("%w: %v", ErrInvalidQuery, err)
		}
		q.Status = string(parsed)
	}
	q.SortBy = strings.ToLower(strings.TrimSpace(q.SortBy))
	if q.SortBy != "" {
		if _, ok := sortableColumns[q.SortBy]; !ok {
			return q, fmt.Errorf("%w: unsupported sort column %q", ErrInvalidQuery, q.SortBy)
		}
	}
	return q, nil
}

// TableRow is a formatted campaign row.
type TableRow struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Status      string `json:"status"`
	Clicks      string `json:"clicks"`
	Cost        string `json:"cost"`
	Impressions string `json:"impressions"`
	Color       string `json:"color"`
}

// TableHeader is a column header. Sort is empty for columns that cannot be sorted;
// NextDesc is the direction a click on the header requests.
type TableHeader struct {
	Label    string `json:"label"`
	Sort     string `json:"sort,omitempty"`
	Active   bool   `json:"active"`
	NextDesc bool   `json:"next_desc"`
}

// TableView is the rendered table card.
type TableView struct {
	Query   TableQuery    `json:"query"`
	Columns []string      `json:"columns"`
	Headers []TableHeader `json:"headers"`
	Rows    []TableRow    `json:"rows"`
	Empty   bool          `json:"empty"`
}

var tableColumns = []TableHeader{
	{Label: "Campaign", Sort: "name"},
	{Label: "Status", Sort: "status"},
	{Label: "Clicks", Sort: "clicks"},
	{Label: "Cost", Sort: "cost"},
}

// tableHeaders marks the sorted column. Clicking it again flips the direction,
// any other column starts ascending.
func tableHeaders(query TableQuery) []TableHeader {
	headers := make([]TableHeader, len(tableColumns))
	for i, h := range tableColumns {
		h.Active = h.Sort != "" && h.Sort == query.SortBy
		h.NextDesc = h.Active && !query.Desc
		headers[i] = h
	}
	return headers
}

// FilterCampaigns keeps campaigns matching the status filter in input order.
func FilterCampaigns(campaigns []Campaign, status string) []Campaign {
	if status == "" || status == StatusFilterAll {
		return append([]Campaign(nil), campaigns...)
	}
	out := make([]Campaign, 0, len(campaigns))
	for _, c := range campaigns {
		if string(c.Status) == status {
			out = append(out, c)
		}
	}
	return out
}

// BuildTable filters then stable-sorts the campaigns. An invalid query falls back
// to the unfiltered, unsorted table.
func BuildTable(campaigns []Campaign, query TableQuery) TableView {
	normalized, err := query.Normalize()
	if err != nil {
		normalized = TableQuery{Status: StatusFilterAll}
	}
	rows := FilterCampaigns(campaigns, normalized.Status)
	if cmp, ok := sortableColumns[normalized.SortBy]; ok {
		desc := normalized.Desc
		sort.SliceStable(rows, func(i, j int) bool {
			if desc {
				return cmp(rows[i], rows[j]) > 0
			}
			return cmp(rows[i], rows[j]) < 0
		})
	}
	view := TableView{
		Query:   normalized,
		Columns: make([]string, len(tableColumns)),
		Headers: tableHeaders(normalized),
		Rows:    make([]TableRow, len(rows)),
		Empty:   len(rows) == 0,
	}
	for i, h := range tableColumns {
		view.Columns[i] = h.Label
	}
	for i, c := range rows {
		view.Rows[i] = TableRow{
			ID:          c.ID,
			Name:        c.Name,
			Status:      string(c.Status),
			Clicks:      formatCount(c.Clicks),
			Cost:        "$" + strconv.FormatFloat(c.Cost, 'f', -1, 64),
			Impressions: formatCount(c.Impressions),
			Color:       c.Color,
		}
	}
	return view
}

func compareInt(a, b int64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}
