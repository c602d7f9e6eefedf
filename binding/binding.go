// Package binding 负责页眉、页脚与标题文本中的 ${...} 占位符替换，
// 例如 "第 ${page} 页 / 共 ${pages} 页"。路径支持点号与下标：
// ${meta.author}、${tags[0]}。
package binding

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var exprPattern = regexp.MustCompile(`\$\{([^}]+)\}`)

// PageData 构造单页渲染时的标准占位符数据。
func PageData(page, pages int, title string) map[string]any {
	return map[string]any{
		"page":  page,
		"pages": pages,
		"title": title,
	}
}

// Interpolate 将文本中的 ${path} 替换为 data 中对应的值。
// data 为空或路径无法解析时保留原占位符，不视为错误：
// 页面模板里残留的占位符比悄悄替换成空串更容易被发现。
func Interpolate(text string, data any) string {
	if data == nil || !strings.Contains(text, "${") {
		return text
	}
	return exprPattern.ReplaceAllStringFunc(text, func(match string) string {
		path := strings.TrimSpace(match[2 : len(match)-1])
		if path == "" {
			return match
		}
		val, ok := resolve(data, path)
		if !ok {
			return match
		}
		return fmt.Sprint(val)
	})
}

// resolve 沿点号路径逐段下探，每段形如 name、name[i] 或 name[i][j]。
func resolve(data any, path string) (any, bool) {
	current := data
	for _, segment := range strings.Split(path, ".") {
		name, indexes, ok := splitSegment(segment)
		if !ok {
			return nil, false
		}
		if name != "" {
			current, ok = descend(current, name, -1)
			if !ok {
				return nil, false
			}
		}
		for _, idx := range indexes {
			current, ok = descend(current, "", idx)
			if !ok {
				return nil, false
			}
		}
	}
	return current, true
}

// splitSegment 把 "name[1][2]" 拆成名字与下标序列。
func splitSegment(segment string) (string, []int, bool) {
	bracket := strings.IndexByte(segment, '[')
	if bracket == -1 {
		return segment, nil, true
	}

	name := segment[:bracket]
	rest := segment[bracket:]
	var indexes []int
	for rest != "" {
		if rest[0] != '[' {
			return "", nil, false
		}
		end := strings.IndexByte(rest, ']')
		if end == -1 {
			return "", nil, false
		}
		idx, err := strconv.Atoi(rest[1:end])
		if err != nil {
			return "", nil, false
		}
		indexes = append(indexes, idx)
		rest = rest[end+1:]
	}
	return name, indexes, true
}

// descend 下探一层：key 非空走映射，否则按 idx 走切片。
func descend(current any, key string, idx int) (any, bool) {
	if key != "" {
		m, ok := current.(map[string]any)
		if !ok {
			return nil, false
		}
		val, ok := m[key]
		return val, ok
	}

	s, ok := current.([]any)
	if !ok || idx < 0 || idx >= len(s) {
		return nil, false
	}
	return s[idx], true
}
