package triage

import "strings"

// DefaultCategoryID is the category used by deployments that run without
// category management. The first-run seed guarantees it exists.
const DefaultCategoryID uint64 = 1

type Category struct {
	CategoryID uint64
	Name       string
	Icon       string
}

// NormalizeIcon keeps only the glyph of an icon value. Icon pickers hand
// over entries like "📱 Smartphone"; only the part before the first space
// is stored.
func NormalizeIcon(icon string) string {
	icon = strings.TrimSpace(icon)
	if icon == "" {
		return ""
	}
	if idx := strings.Index(icon, " "); idx >= 0 {
		return icon[:idx]
	}
	return icon
}
