package pgsql

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/SscSPs/recharge_backend/internal/apperrors"
	"github.com/SscSPs/recharge_backend/internal/core/domain"
	"github.com/SscSPs/recharge_backend/internal/utils/pagination"
)

// timeIDPage builds a newest-first listing over (created_at, idColumn). One
// extra row is fetched to learn whether a next page exists.
type timeIDPage struct {
	where []string
	args  []any
	limit int
}

func newTimeIDPage(params domain.ListParams, idColumn string) (*timeIDPage, error) {
	p := &timeIDPage{limit: params.NormalizedLimit()}
	if params.AccountID != "" {
		p.add("account_id = $%d", params.AccountID)
	}
	if params.NextToken != nil && *params.NextToken != "" {
		createdAt, id, err := pagination.DecodeTimeIDToken(*params.NextToken)
		if err != nil {
			return nil, fmt.Errorf("%w: invalid nextToken: %v", apperrors.ErrValidation, err)
		}
		p.args = append(p.args, createdAt, id)
		p.where = append(p.where, fmt.Sprintf("(created_at, %s) < ($%d, $%d)", idColumn, len(p.args)-1, len(p.args)))
	}
	return p, nil
}

func (p *timeIDPage) add(clause string, arg any) {
	p.args = append(p.args, arg)
	p.where = append(p.where, fmt.Sprintf(clause, len(p.args)))
}

func (p *timeIDPage) query(columns, table, idColumn string) string {
	q := "SELECT " + columns + " FROM " + table
	if len(p.where) > 0 {
		q += " WHERE " + strings.Join(p.where, " AND ")
	}
	p.args = append(p.args, p.limit+1)
	return q + " ORDER BY created_at DESC, " + idColumn + " DESC LIMIT $" + strconv.Itoa(len(p.args)) + ";"
}
