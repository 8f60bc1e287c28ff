package repository

import "strings"

// toLowerPrefix экранирует LIKE-метасимволы в пользовательском вводе
func toLowerPrefix(prefix string) string {
	p := strings.ToLower(prefix)
	p = strings.ReplaceAll(p, `\`, `\\`)
	p = strings.ReplaceAll(p, "%", `\%`)
	p = strings.ReplaceAll(p, "_", `\_`)
	return p + "%"
}
