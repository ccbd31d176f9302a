package domain

import (
	"regexp"
	"strings"
)

// numericSuffix matches slugs shaped like "<prefix>-<digits>".
var numericSuffix = regexp.MustCompile(`^(.*-)(\d+)$`)

// NormalizeSlug lowercases and trims a raw user-supplied slug.
func NormalizeSlug(raw string) string {
	return strings.ToLower(strings.TrimSpace(raw))
}

// SlugCandidates returns the alternate spellings checked during lookup, in
// priority order: the normalized slug itself, then — when the slug ends in a
// numeric suffix — the same slug with that suffix zero-padded to width 2 and
// to width 3. This tolerates legacy slugs that differ only in padding
// ("item-1" vs "item-01" vs "item-001") without a redirect table.
//
// The order of the returned slice is significant: when several candidates
// match distinct records, the earliest candidate wins.
func SlugCandidates(raw string) []string {
	slug := NormalizeSlug(raw)
	if slug == "" {
		return nil
	}

	candidates := []string{slug}
	m := numericSuffix.FindStringSubmatch(slug)
	if m == nil {
		return candidates
	}

	base, digits := m[1], m[2]
	for _, width := range []int{2, 3} {
		padded := base + zeroPad(digits, width)
		if !contains(candidates, padded) {
			candidates = append(candidates, padded)
		}
	}
	return candidates
}

// SlugAliases returns every spelling under which a lookup for this slug may
// have resolved: the slug itself plus the unpadded, width-2 and width-3
// variants of its numeric suffix. A lookup is cached under the slug the
// caller asked for, so a mutation must invalidate all of these, not just
// the stored spelling.
func SlugAliases(slug string) []string {
	slug = NormalizeSlug(slug)
	if slug == "" {
		return nil
	}

	aliases := []string{slug}
	m := numericSuffix.FindStringSubmatch(slug)
	if m == nil {
		return aliases
	}

	base, digits := m[1], m[2]
	trimmed := strings.TrimLeft(digits, "0")
	if trimmed == "" {
		trimmed = "0"
	}
	for _, variant := range []string{trimmed, zeroPad(trimmed, 2), zeroPad(trimmed, 3)} {
		if alias := base + variant; !contains(aliases, alias) {
			aliases = append(aliases, alias)
		}
	}
	return aliases
}

// zeroPad left-pads digits with zeros up to width; longer inputs are
// returned unchanged, mirroring String.padStart.
func zeroPad(digits string, width int) string {
	if len(digits) >= width {
		return digits
	}
	return strings.Repeat("0", width-len(digits)) + digits
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
