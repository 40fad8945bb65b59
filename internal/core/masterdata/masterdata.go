// Package masterdata は参照専用のコードテーブル(性別・資格・部門など)への
// id 検索を抽象化します。遅延ロードは行わず、「いま解決し、存在しなければ
// 失敗する」方針です。
package masterdata

import (
	"context"
	"errors"
)

// ErrNotFound は参照されたマスターデータが存在しない場合に返却されます。
var ErrNotFound = errors.New("masterdata: not found")

// Campus は物理拠点を表します。コードは仮給与 ID 採番の名前空間になります。
type Campus struct {
	ID     int32
	Code   int32
	Name   string
	Active bool
}

// Record は名前つきコードテーブルの 1 行です。
type Record struct {
	ID     int32
	Name   string
	Active bool
}

// Bank は組織銀行マスターの 1 行です。IFSC コードは給与口座の
// フォールバックとして利用されます。
type Bank struct {
	ID       int32
	Name     string
	IFSCCode string
	Active   bool
}

// Repository はマスターデータ検索の抽象です。各メソッドは対象が
// 存在しない場合 ErrNotFound を包んだエラーを返します。
type Repository interface {
	FindCampus(ctx context.Context, id int32) (*Campus, error)
	ListCampusesWithCode(ctx context.Context) ([]*Campus, error)

	FindGender(ctx context.Context, id int32) (*Record, error)
	FindQualification(ctx context.Context, id int32) (*Record, error)
	FindQualificationDegree(ctx context.Context, id int32) (*Record, error)
	FindDocumentType(ctx context.Context, id int32) (*Record, error)
	FindDepartment(ctx context.Context, id int32) (*Record, error)
	FindDesignation(ctx context.Context, id int32) (*Record, error)
	FindEmployeeType(ctx context.Context, id int32) (*Record, error)
	FindSubject(ctx context.Context, id int32) (*Record, error)
	FindActivePaymentType(ctx context.Context, id int32) (*Record, error)
	FindBank(ctx context.Context, id int32) (*Bank, error)
	FindBankBranch(ctx context.Context, id int32) (*Record, error)
	FindJoiningAs(ctx context.Context, id int32) (*Record, error)
	FindStream(ctx context.Context, id int32) (*Record, error)
	FindEmployeeLevel(ctx context.Context, id int32) (*Record, error)
	FindGrade(ctx context.Context, id int32) (*Record, error)
	FindStructure(ctx context.Context, id int32) (*Record, error)
}
