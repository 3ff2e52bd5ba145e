package service

import (
	"errors"
	"regexp"
	"strings"

	"gorm.io/gorm"
)

var slugInvalidChars = regexp.MustCompile(`[^a-z0-9-]+`)
var slugDashRuns = regexp.MustCompile(`-{2,}`)

// NormalizeSlug 规范化 slug：小写、去空白、压缩连字符
func NormalizeSlug(raw string) string {
	s := strings.ToLower(strings.TrimSpace(raw))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugInvalidChars.ReplaceAllString(s, "-")
	s = slugDashRuns.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// SlugFromName 由名称生成 slug
func SlugFromName(name string) string {
	return NormalizeSlug(name)
}

// translateSlugConflict 将唯一索引冲突归一化为 ErrSlugExists
// 预检查之外的并发写入仍由数据库唯一索引兜底
func translateSlugConflict(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return ErrSlugExists
	}
	return err
}
