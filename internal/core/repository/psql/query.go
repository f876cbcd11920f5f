package psql

import (
	"fmt"
	"strings"

	"github.com/duynhne/customer-service/internal/core/domain"
)

// listQuery holds the two statements the list endpoint needs: a count of
// all matches and the page select. filterArgs are shared by both; pageArgs
// append limit and offset.
type listQuery struct {
	countSQL   string
	pageSQL    string
	filterArgs []any
	pageArgs   []any
}

// buildListQuery translates normalized list parameters into SQL with bound
// arguments. Address filters are semi-joins: a customer matches when at
// least one of its addresses has the exact field value. The free-text
// search is a case-insensitive substring match over the customer columns,
// ANDed with the address filters.
//
// Every user-supplied value goes through a $n placeholder. The only
// interpolated pieces are the sort column and direction, which
// domain.NewListParams has already forced onto allow-lists.
func buildListQuery(params domain.ListParams) listQuery {
	var conditions []string
	var args []any

	addFilter := func(column, value string) {
		if value == "" {
			return
		}
		args = append(args, value)
		conditions = append(conditions,
			fmt.Sprintf("id IN (SELECT customer_id FROM addresses WHERE %s = $%d)", column, len(args)))
	}
	addFilter("city", params.City)
	addFilter("state", params.State)
	addFilter("pin_code", params.PinCode)

	if params.Search != "" {
		pattern := "%" + params.Search + "%"
		args = append(args, pattern, pattern, pattern)
		n := len(args)
		conditions = append(conditions,
			fmt.Sprintf("(first_name ILIKE $%d OR last_name ILIKE $%d OR phone_number ILIKE $%d)", n-2, n-1, n))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = " WHERE " + strings.Join(conditions, " AND ")
	}

	countSQL := "SELECT COUNT(*) FROM customers" + whereClause

	pageArgs := append(append([]any{}, args...), params.Limit, params.Offset())
	pageSQL := fmt.Sprintf(
		"SELECT id, first_name, last_name, phone_number FROM customers%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		whereClause, params.SortField, params.SortOrder, len(args)+1, len(args)+2)

	return listQuery{
		countSQL:   countSQL,
		pageSQL:    pageSQL,
		filterArgs: args,
		pageArgs:   pageArgs,
	}
}
