package repository

import (
	"fmt"
	"strings"

	"gorm.io/gorm"
)

// KeywordFilter 目录检索条件
// 关键字非空时：实体自身编号列 ILIKE 关键字，或所属账号资料的名/姓 ILIKE 关键字（经 user_id 关联 profiles）；
// 关键字为空时不附加任何条件。学生、教师、职员列表共用同一套匹配语义。
type KeywordFilter struct {
	Keyword       string
	Table         string
	DirectColumns []string
	// OwnerColumn 指向账号 ID 的列，默认 user_id；账号表自身为 id
	OwnerColumn string
}

// Scope 生成可复用的 GORM scope（列表与计数共用）
func (f KeywordFilter) Scope() func(*gorm.DB) *gorm.DB {
	kw := strings.TrimSpace(f.Keyword)
	owner := f.OwnerColumn
	if owner == "" {
		owner = "user_id"
	}
	return func(db *gorm.DB) *gorm.DB {
		if kw == "" {
			return db
		}
		pattern := "%" + escapeLike(kw) + "%"

		conds := make([]string, 0, len(f.DirectColumns)+1)
		args := make([]interface{}, 0, len(f.DirectColumns)+2)
		for _, col := range f.DirectColumns {
			conds = append(conds, fmt.Sprintf("%s.%s ILIKE ?", f.Table, col))
			args = append(args, pattern)
		}
		conds = append(conds, fmt.Sprintf(
			"%s.%s IN (SELECT profiles.user_id FROM profiles WHERE profiles.first_name ILIKE ? OR profiles.last_name ILIKE ?)",
			f.Table, owner,
		))
		args = append(args, pattern, pattern)

		return db.Where("("+strings.Join(conds, " OR ")+")", args...)
	}
}

// escapeLike 转义 LIKE 通配符，关键字按字面匹配
func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
