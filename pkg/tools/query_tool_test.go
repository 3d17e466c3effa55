package tools

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestApplyLimit(t *testing.T) {
	tk := NewToolkit(nil, Config{DefaultLimit: 100, MaxLimit: 1000})

	tests := []struct {
		name      string
		statement string
		limit     int
		want      string
	}{
		{
			name:      "default limit appended",
			statement: "SELECT * FROM orders",
			want:      "SELECT * FROM orders LIMIT 100",
		},
		{
			name:      "explicit limit appended",
			statement: "SELECT * FROM orders",
			limit:     25,
			want:      "SELECT * FROM orders LIMIT 25",
		},
		{
			name:      "limit clamped to max",
			statement: "SELECT * FROM orders",
			limit:     50000,
			want:      "SELECT * FROM orders LIMIT 1000",
		},
		{
			name:      "trailing semicolon stripped",
			statement: "SELECT * FROM orders;",
			want:      "SELECT * FROM orders LIMIT 100",
		},
		{
			name:      "existing limit untouched",
			statement: "SELECT * FROM orders LIMIT 5",
			want:      "SELECT * FROM orders LIMIT 5",
		},
		{
			name:      "existing lowercase limit untouched",
			statement: "select * from orders limit 99999;",
			want:      "select * from orders limit 99999;",
		},
		{
			name:      "limit in identifier does not count",
			statement: "SELECT rate_limit FROM quotas",
			want:      "SELECT rate_limit FROM quotas LIMIT 100",
		},
		{
			name:      "limit in subquery still capped",
			statement: "SELECT * FROM (SELECT * FROM orders LIMIT 10) t",
			want:      "SELECT * FROM (SELECT * FROM orders LIMIT 10) t LIMIT 100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tk.applyLimit(tt.statement, tt.limit))
		})
	}
}
