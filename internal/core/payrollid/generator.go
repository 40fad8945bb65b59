package payrollid

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Prefix は仮給与 ID の固定接頭辞です。
const Prefix = "TEMP"

// MaxScanner は接頭辞に一致する仮給与 ID の最大値を検索できるストアの抽象です。
// 一致するレコードが存在しない場合は空文字列を返します。
type MaxScanner interface {
	FindMaxTempPayrollID(ctx context.Context, prefix string) (string, error)
}

// Generator はキャンパス単位の次の仮給与 ID を採番します。
//
// 採番のたびに両ストアの最大値を再スキャンするため、キャッシュは正当性に
// 関与しません。ストアへの予約は行わず、生成した ID は所有レコードの
// 永続化によってのみ確定します。同一キャンパスへの同時採番は同じ値を
// 計算し得ます(単一プロセス運用を前提とした既知の競合)。
type Generator struct {
	employees  MaxScanner
	skillTests MaxScanner
	cache      *Cache
	logger     *zap.Logger
}

// NewGenerator は Generator を生成します。
func NewGenerator(employees, skillTests MaxScanner, cache *Cache, logger *zap.Logger) *Generator {
	if cache == nil {
		cache = NewCache()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Generator{employees: employees, skillTests: skillTests, cache: cache, logger: logger}
}

// BuildPrefix はキャンパスコードから検索用の接頭辞を構築します。
func BuildPrefix(campusCode int32) string {
	return Prefix + strconv.Itoa(int(campusCode))
}

// Format は接頭辞と連番から仮給与 ID を組み立てます。4 桁ゼロ埋めし、
// 9999 を超えた場合は自然な桁数のまま出力します。
func Format(prefix string, sequence int) string {
	return prefix + fmt.Sprintf("%04d", sequence)
}

// Next はキャンパスの次の仮給与 ID を計算して返します。
func (g *Generator) Next(ctx context.Context, campusCode int32) (string, error) {
	prefix := BuildPrefix(campusCode)

	maxValue, err := g.scanMax(ctx, prefix)
	if err != nil {
		return "", err
	}

	next := maxValue + 1
	g.cache.Set(prefix, next)
	return Format(prefix, next), nil
}

// scanMax は両ストアの接頭辞一致最大値を取得し、大きい方の連番を返します。
func (g *Generator) scanMax(ctx context.Context, prefix string) (int, error) {
	maxValue := 0

	maxInSkillTest, err := g.skillTests.FindMaxTempPayrollID(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("payrollid: scan skill test store: %w", err)
	}
	if v, ok := g.parseSuffix(prefix, maxInSkillTest); ok && v > maxValue {
		maxValue = v
	}

	maxInEmployee, err := g.employees.FindMaxTempPayrollID(ctx, prefix)
	if err != nil {
		return 0, fmt.Errorf("payrollid: scan employee store: %w", err)
	}
	if v, ok := g.parseSuffix(prefix, maxInEmployee); ok && v > maxValue {
		maxValue = v
	}

	return maxValue, nil
}

// parseSuffix は ID から接頭辞を除いた残りを整数として解釈します。
// 解釈できない値は警告ログの上で無視されます(採番への寄与なし)。
func (g *Generator) parseSuffix(prefix, id string) (int, bool) {
	if id == "" {
		return 0, false
	}
	suffix := strings.TrimPrefix(id, prefix)
	value, err := strconv.Atoi(suffix)
	if err != nil {
		g.logger.Warn("could not parse temp payroll id suffix",
			zap.String("id", id),
			zap.String("prefix", prefix),
		)
		return 0, false
	}
	return value, true
}

// WarmCache は全キャンパスコードについて現在の最大連番をキャッシュへ
// 取り込みます。プロセス起動時に一度だけ呼び出されます。
func (g *Generator) WarmCache(ctx context.Context, campusCodes []int32) error {
	for _, code := range campusCodes {
		if code == 0 {
			continue
		}
		prefix := BuildPrefix(code)
		maxValue, err := g.scanMax(ctx, prefix)
		if err != nil {
			return fmt.Errorf("payrollid: warm cache for %s: %w", prefix, err)
		}
		g.cache.Set(prefix, maxValue)
	}
	return nil
}
