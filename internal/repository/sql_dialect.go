package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// dbDialectName 获取数据库方言名称，默认按 sqlite 处理。
func dbDialectName(db *gorm.DB) string {
	if db == nil || db.Dialector == nil {
		return "sqlite"
	}
	name := strings.ToLower(strings.TrimSpace(db.Dialector.Name()))
	if name == "" {
		return "sqlite"
	}
	return name
}

func isPostgres(dialect string) bool {
	switch strings.ToLower(strings.TrimSpace(dialect)) {
	case "postgres", "postgresql":
		return true
	default:
		return false
	}
}

// jsonTextColumnByDialect JSON 列按文本比较，postgres 需要显式转换。
func jsonTextColumnByDialect(dialect, column string) string {
	if isPostgres(dialect) {
		return fmt.Sprintf("CAST(%s AS TEXT)", column)
	}
	return column
}

// buildLikeConditionByDialect 构建普通列 + JSON 列的 LIKE 条件，并返回参数数量。
func buildLikeConditionByDialect(dialect string, plainColumns, jsonColumns []string) (string, int) {
	parts := make([]string, 0, len(plainColumns)+len(jsonColumns))
	operator := likeOperatorByDialect(dialect)
	for _, column := range plainColumns {
		if trimmed := strings.TrimSpace(column); trimmed != "" {
			parts = append(parts, fmt.Sprintf("%s %s", trimmed, operator))
		}
	}
	for _, column := range jsonColumns {
		if trimmed := strings.TrimSpace(column); trimmed != "" {
			parts = append(parts, fmt.Sprintf("%s %s", jsonTextColumnByDialect(dialect, trimmed), operator))
		}
	}
	return strings.Join(parts, " OR "), len(parts)
}

// likeOperatorByDialect 返回带占位符的 LIKE 片段，sqlite 需显式声明转义符。
func likeOperatorByDialect(dialect string) string {
	if isPostgres(dialect) {
		return "ILIKE ?"
	}
	return `LIKE ? ESCAPE '\'`
}

// escapeLike 转义 LIKE 通配符
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`).Replace(s)
}

// repeatLikeArgs 生成重复的 LIKE 参数列表。
func repeatLikeArgs(like string, count int) []any {
	args := make([]any, 0, count)
	for i := 0; i < count; i++ {
		args = append(args, like)
	}
	return args
}
