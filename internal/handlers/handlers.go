// Package handlers - тонкий HTTP-слой: разбор query-параметров,
// делегирование сервисам и стандартный конверт ответа.
package handlers

import (
	"strconv"
	"strings"
)

// splitCSV режет comma-separated параметр, отбрасывая пустые элементы.
func splitCSV(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

// atoiOr разбирает целое с дефолтом на пустом или кривом значении.
func atoiOr(raw string, def int) int {
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func parseBool(raw string) bool {
	switch strings.ToLower(raw) {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}
