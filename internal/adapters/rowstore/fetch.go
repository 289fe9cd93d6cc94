package rowstore

import (
	"context"
	"fmt"
	"time"

	"github.com/okian/squadrate/pkg/metrics"
)

// FetchAll returns every row of table in store order by following page
// continuations until none is left. Any failure discards what was read so
// far; callers never see a truncated table.
func FetchAll(ctx context.Context, l Lister, table string) ([]RawRow, error) {
	start := time.Now()
	rows, err := fetchAll(ctx, l, table)
	metrics.RecordFetchDuration(table, float64(time.Since(start).Milliseconds()))
	if err != nil {
		metrics.RecordFetchFailure(table)
		return nil, err
	}
	return rows, nil
}

func fetchAll(ctx context.Context, l Lister, table string) ([]RawRow, error) {
	var (
		rows    []RawRow
		token   string
		visited = map[string]struct{}{}
	)
	for {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("fetch %s: %w", table, err)
		}
		page, err := l.ListPage(ctx, table, token)
		if err != nil {
			return nil, fmt.Errorf("fetch %s: %w", table, err)
		}
		metrics.RecordPageFetched(table, len(page.Rows))
		rows = append(rows, page.Rows...)

		if page.Next == "" {
			return rows, nil
		}
		if _, ok := visited[page.Next]; ok || page.Next == token {
			return nil, fmt.Errorf("fetch %s: %w: %s", table, ErrPaginationLoop, page.Next)
		}
		visited[page.Next] = struct{}{}
		token = page.Next
	}
}
