package payrollid

import "sync"

// Cache はキャンパス接頭辞ごとの最終採番値を保持するプロセス内キャッシュです。
// 性能観測のための非権威的な補助であり、採番の正当性には使用されません。
type Cache struct {
	mu   sync.Mutex
	last map[string]int
}

// NewCache は空の Cache を生成します。
func NewCache() *Cache {
	return &Cache{last: make(map[string]int)}
}

// Set は接頭辞の最終採番値を記録します。
func (c *Cache) Set(prefix string, value int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.last[prefix] = value
}

// Get は接頭辞の最終採番値を返します。未登録の場合は 0 を返します。
func (c *Cache) Get(prefix string) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.last[prefix]
}
