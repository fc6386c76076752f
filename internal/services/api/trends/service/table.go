package service

import (
	"oilwatch/internal/core/timeagg"
	"oilwatch/internal/services/api/trends/domain"
)

const (
	companyCol = "company_name"
	postsCol   = "posts"
	wordsCol   = "word_count"
	dateLayout = "2006-01-02"
)

// fill writes the chart and display tables of res into v
func fill(v *domain.View, res timeagg.Result, prop bool) {
	v.Data = table(res, prop)
	v.Table = table(res.SortedForDisplay(), prop)
}

// table lays res out as axis, [company], posts, word_count, then one column
// per counted quantity holding counts or proportions
func table(res timeagg.Result, prop bool) domain.Table {
	cols := []string{res.Granularity.Axis()}
	if res.ByCompany {
		cols = append(cols, companyCol)
	}
	cols = append(cols, postsCol, wordsCol)
	cols = append(cols, res.Columns...)

	rows := make([][]any, 0, len(res.Rows))
	for _, r := range res.Rows {
		row := make([]any, 0, len(cols))
		row = append(row, r.Bucket.Format(dateLayout))
		if res.ByCompany {
			row = append(row, r.Company)
		}
		row = append(row, r.Posts, r.Words)
		for j := range res.Columns {
			if prop {
				row = append(row, r.Proportions[j])
			} else {
				row = append(row, r.Counts[j])
			}
		}
		rows = append(rows, row)
	}
	return domain.Table{Columns: cols, Rows: rows}
}
