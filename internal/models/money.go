package models

import (
	"database/sql/driver"
	"fmt"

	"github.com/shopspring/decimal"
)

// Money 金额类型，定点十进制，两位小数
type Money struct {
	d decimal.Decimal
}

// NewMoney 由 decimal 构造金额
func NewMoney(d decimal.Decimal) Money {
	return Money{d: d.Round(2)}
}

// NewMoneyFromFloat 由浮点数构造金额
func NewMoneyFromFloat(f float64) Money {
	return NewMoney(decimal.NewFromFloat(f))
}

// NewMoneyFromString 由字符串构造金额
func NewMoneyFromString(s string) (Money, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return Money{}, fmt.Errorf("invalid money value %q: %w", s, err)
	}
	return NewMoney(d), nil
}

// Decimal 返回底层 decimal
func (m Money) Decimal() decimal.Decimal {
	return m.d
}

// Add 金额相加
func (m Money) Add(other Money) Money {
	return NewMoney(m.d.Add(other.d))
}

// Sub 金额相减
func (m Money) Sub(other Money) Money {
	return NewMoney(m.d.Sub(other.d))
}

// MulInt 金额乘以整数
func (m Money) MulInt(n int) Money {
	return NewMoney(m.d.Mul(decimal.NewFromInt(int64(n))))
}

// MulFloat 金额乘以浮点系数（如税率）
func (m Money) MulFloat(f float64) Money {
	return NewMoney(m.d.Mul(decimal.NewFromFloat(f)))
}

// IsZero 是否为零
func (m Money) IsZero() bool {
	return m.d.IsZero()
}

// IsNegative 是否为负
func (m Money) IsNegative() bool {
	return m.d.IsNegative()
}

// Cmp 比较金额
func (m Money) Cmp(other Money) int {
	return m.d.Cmp(other.d)
}

// Cents 返回最小货币单位数量（分）
func (m Money) Cents() int64 {
	return m.d.Mul(decimal.NewFromInt(100)).IntPart()
}

// String 返回两位小数字符串
func (m Money) String() string {
	return m.d.StringFixed(2)
}

// Value 实现 driver.Valuer，按两位小数字符串存储
func (m Money) Value() (driver.Value, error) {
	return m.d.StringFixed(2), nil
}

// Scan 实现 sql.Scanner
func (m *Money) Scan(value interface{}) error {
	if value == nil {
		m.d = decimal.Zero
		return nil
	}
	switch v := value.(type) {
	case string:
		d, err := decimal.NewFromString(v)
		if err != nil {
			return err
		}
		m.d = d.Round(2)
	case []byte:
		d, err := decimal.NewFromString(string(v))
		if err != nil {
			return err
		}
		m.d = d.Round(2)
	case float64:
		m.d = decimal.NewFromFloat(v).Round(2)
	case int64:
		m.d = decimal.NewFromInt(v)
	default:
		return fmt.Errorf("unsupported money column type %T", value)
	}
	return nil
}

// MarshalJSON 序列化为两位小数的 JSON 数字
func (m Money) MarshalJSON() ([]byte, error) {
	return []byte(m.d.StringFixed(2)), nil
}

// UnmarshalJSON 接受数字或字符串
func (m *Money) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		m.d = decimal.Zero
		return nil
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return fmt.Errorf("invalid money value %q: %w", s, err)
	}
	m.d = d.Round(2)
	return nil
}

// GormDataType 指定列类型
func (Money) GormDataType() string {
	return "decimal(12,2)"
}
