// Package reconcile は、タブ保存のたびに送信される繰り返しサブレコード集合を
// 既存の有効レコード集合と突き合わせる位置対応(index-zip)アルゴリズムを
// 提供します。
//
// 対応付けは業務キーではなくインデックスで行います。クライアントが常に
// 完全な現行集合を再送する前提では安価かつ正確ですが、配列の並べ替えは
// どの物理レコードが更新されるかを変化させます(順序依存)。
package reconcile

import "context"

// Funcs はひとつのレコードファミリーに対する永続化操作をまとめます。
type Funcs[T any] struct {
	// Update は同一インデックスに既存と送信の両方が存在する場合に呼ばれます。
	Update func(ctx context.Context, existing, submitted T) error
	// Insert は送信側にしか存在しないインデックスで呼ばれます。
	Insert func(ctx context.Context, submitted T) error
	// Deactivate は既存側にしか存在しないインデックスで呼ばれます。
	Deactivate func(ctx context.Context, existing T) error
}

// Result は突き合わせの内訳です。
type Result struct {
	Updated     int
	Inserted    int
	Deactivated int
}

// Zip は送信列と既存列をインデックスで突き合わせ、重なりは更新、送信超過は
// 挿入、既存超過は無効化します。最初の失敗で中断します。
func Zip[T any](ctx context.Context, submitted, existing []T, funcs Funcs[T]) (Result, error) {
	var result Result

	size := len(submitted)
	if len(existing) > size {
		size = len(existing)
	}

	for i := 0; i < size; i++ {
		switch {
		case i < len(submitted) && i < len(existing):
			if err := funcs.Update(ctx, existing[i], submitted[i]); err != nil {
				return result, err
			}
			result.Updated++
		case i < len(submitted):
			if err := funcs.Insert(ctx, submitted[i]); err != nil {
				return result, err
			}
			result.Inserted++
		default:
			if err := funcs.Deactivate(ctx, existing[i]); err != nil {
				return result, err
			}
			result.Deactivated++
		}
	}

	return result, nil
}
