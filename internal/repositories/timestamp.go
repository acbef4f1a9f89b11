package repositories

import (
	"fmt"
	"time"
)

// timestampLayout は SQLite の TEXT 列と MySQL の DATETIME(6) 列の両方が受け付ける形式です。
// 文字列のまま比較しても時刻順に並びます。
const timestampLayout = "2006-01-02 15:04:05.000000"

// 読み込み時に受け付ける形式
var timestampLayouts = []string{
	timestampLayout,
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05.999999999-07:00",
	time.RFC3339Nano,
}

func formatTimestamp(t time.Time) string {
	return t.UTC().Format(timestampLayout)
}

// timestamp は列の値を time.Time として読み込みます。
// MySQL (parseTime=true) は time.Time を、SQLite は文字列を返します。
type timestamp struct {
	time.Time
}

func (ts *timestamp) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		ts.Time = v.UTC()
		return nil
	case string:
		return ts.parse(v)
	case []byte:
		return ts.parse(string(v))
	case nil:
		ts.Time = time.Time{}
		return nil
	default:
		return fmt.Errorf("unsupported timestamp type %T", src)
	}
}

func (ts *timestamp) parse(s string) error {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			ts.Time = t.UTC()
			return nil
		}
	}
	return fmt.Errorf("could not parse timestamp %q", s)
}
