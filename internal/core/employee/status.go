package employee

// ChecklistStatus はオンボーディングのチェックリスト状態を表す参照行です。
// ここに列挙された名前以外の状態(管理用・終端状態)は不透明な名前として
// そのまま保持されます。
type ChecklistStatus struct {
	ID   int32
	Name string
}

// このコアが判定に用いる状態名。
const (
	// StatusIncompleted は仮給与 ID 採番時に設定される初期状態です。
	StatusIncompleted = "Incompleted"
	// StatusPendingAtDO は契約タブ提出時に無条件で設定されます。
	StatusPendingAtDO = "Pending at DO"
	// StatusConfirm 以降の編集のみルート集約の更新監査を刻印します。
	StatusConfirm = "Confirm"
)

// ShouldStampUpdate は現在状態と更新者の有無からルート集約の更新監査を
// 刻印すべきかを返します。確定(Confirm)前の編集は元の下書きの一部と
// みなされ、監査は刻印されません。
func ShouldStampUpdate(statusName string, updatedBy int32) bool {
	return updatedBy > 0 && statusName == StatusConfirm
}
