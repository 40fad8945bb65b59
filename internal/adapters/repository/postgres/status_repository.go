package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/employee-onboarding/internal/core/employee"
	pgdb "github.com/ogurasousui/employee-onboarding/internal/platform/db/postgres"
)

// StatusRepository は PostgreSQL を利用したチェックリスト状態検索の実装です。
type StatusRepository struct {
	pool pgdb.Queryer
}

// NewStatusRepository は StatusRepository を生成します。
func NewStatusRepository(pool pgdb.Queryer) *StatusRepository {
	return &StatusRepository{pool: pool}
}

// FindByName は状態名でチェックリスト状態を取得します。
func (r *StatusRepository) FindByName(ctx context.Context, name string) (*employee.ChecklistStatus, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name
          FROM checklist_statuses
         WHERE name = $1
         LIMIT 1
    `, name)

	var status employee.ChecklistStatus
	if err := row.Scan(&status.ID, &status.Name); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, employee.ErrStatusNotFound
		}
		return nil, err
	}
	return &status, nil
}
