package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ogurasousui/employee-onboarding/internal/core/masterdata"
	pgdb "github.com/ogurasousui/employee-onboarding/internal/platform/db/postgres"
)

// MasterDataRepository は PostgreSQL を利用したマスターデータ検索の実装です。
// コードテーブルはいずれも (id, name, is_active) の同型スキーマです。
type MasterDataRepository struct {
	pool pgdb.Queryer
}

// NewMasterDataRepository は MasterDataRepository を生成します。
func NewMasterDataRepository(pool pgdb.Queryer) *MasterDataRepository {
	return &MasterDataRepository{pool: pool}
}

// FindCampus は ID でキャンパスを取得します。
func (r *MasterDataRepository) FindCampus(ctx context.Context, id int32) (*masterdata.Campus, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, campus_code, name, is_active
          FROM campuses
         WHERE id = $1
         LIMIT 1
    `, id)

	var campus masterdata.Campus
	if err := row.Scan(&campus.ID, &campus.Code, &campus.Name, &campus.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("campus %d: %w", id, masterdata.ErrNotFound)
		}
		return nil, err
	}
	return &campus, nil
}

// ListCampusesWithCode はキャンパスコードを持つ全キャンパスを返します。
// 採番キャッシュの事前ロードに使われます。
func (r *MasterDataRepository) ListCampusesWithCode(ctx context.Context) ([]*masterdata.Campus, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	rows, err := exec.Query(ctx, `
        SELECT id, campus_code, name, is_active
          FROM campuses
         WHERE campus_code <> 0
         ORDER BY id
    `)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	campuses := make([]*masterdata.Campus, 0)
	for rows.Next() {
		var campus masterdata.Campus
		if err := rows.Scan(&campus.ID, &campus.Code, &campus.Name, &campus.Active); err != nil {
			return nil, err
		}
		campuses = append(campuses, &campus)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}
	return campuses, nil
}

func (r *MasterDataRepository) findRecord(ctx context.Context, table string, id int32) (*masterdata.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, is_active
          FROM `+table+`
         WHERE id = $1
         LIMIT 1
    `, id)

	var record masterdata.Record
	if err := row.Scan(&record.ID, &record.Name, &record.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("%s %d: %w", table, id, masterdata.ErrNotFound)
		}
		return nil, err
	}
	return &record, nil
}

// FindGender は ID で性別を取得します。
func (r *MasterDataRepository) FindGender(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "genders", id)
}

// FindQualification は ID で資格を取得します。
func (r *MasterDataRepository) FindQualification(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "qualifications", id)
}

// FindQualificationDegree は ID で学位を取得します。
func (r *MasterDataRepository) FindQualificationDegree(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "qualification_degrees", id)
}

// FindDocumentType は ID で書類種別を取得します。
func (r *MasterDataRepository) FindDocumentType(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "document_types", id)
}

// FindDepartment は ID で部門を取得します。
func (r *MasterDataRepository) FindDepartment(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "departments", id)
}

// FindDesignation は ID で役職を取得します。
func (r *MasterDataRepository) FindDesignation(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "designations", id)
}

// FindEmployeeType は ID で社員種別を取得します。
func (r *MasterDataRepository) FindEmployeeType(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "employee_types", id)
}

// FindSubject は ID で科目を取得します。
func (r *MasterDataRepository) FindSubject(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "subjects", id)
}

// FindActivePaymentType は ID で有効な支払い方法を取得します。
func (r *MasterDataRepository) FindActivePaymentType(ctx context.Context, id int32) (*masterdata.Record, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, is_active
          FROM payment_types
         WHERE id = $1 AND is_active = TRUE
         LIMIT 1
    `, id)

	var record masterdata.Record
	if err := row.Scan(&record.ID, &record.Name, &record.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("payment_types %d: %w", id, masterdata.ErrNotFound)
		}
		return nil, err
	}
	return &record, nil
}

// FindBank は ID で銀行マスターを取得します。
func (r *MasterDataRepository) FindBank(ctx context.Context, id int32) (*masterdata.Bank, error) {
	exec := pgdb.QueryerFromContext(ctx, r.pool)
	row := exec.QueryRow(ctx, `
        SELECT id, name, ifsc_code, is_active
          FROM banks
         WHERE id = $1
         LIMIT 1
    `, id)

	var bank masterdata.Bank
	if err := row.Scan(&bank.ID, &bank.Name, &bank.IFSCCode, &bank.Active); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, fmt.Errorf("banks %d: %w", id, masterdata.ErrNotFound)
		}
		return nil, err
	}
	return &bank, nil
}

// FindBankBranch は ID で銀行支店を取得します。
func (r *MasterDataRepository) FindBankBranch(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "bank_branches", id)
}

// FindJoiningAs は ID で入職区分を取得します。
func (r *MasterDataRepository) FindJoiningAs(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "joining_as", id)
}

// FindStream は ID で専攻区分を取得します。
func (r *MasterDataRepository) FindStream(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "streams", id)
}

// FindEmployeeLevel は ID で社員レベルを取得します。
func (r *MasterDataRepository) FindEmployeeLevel(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "employee_levels", id)
}

// FindGrade は ID で等級を取得します。
func (r *MasterDataRepository) FindGrade(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "grades", id)
}

// FindStructure は ID で給与体系を取得します。
func (r *MasterDataRepository) FindStructure(ctx context.Context, id int32) (*masterdata.Record, error) {
	return r.findRecord(ctx, "structures", id)
}
