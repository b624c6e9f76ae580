// Package geo normalizes Costa Rican locations: it infers the province of a
// record from its canton and canonicalizes capitalization.
package geo

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/caesgo22-droid/IA-Remates-CR/internal/model"
)

// FoldKey lowercases s, trims it and removes combining diacritics, so
// "Pérez Zeledón" becomes "perez zeledon". The tilde of "ñ" is removed too.
func FoldKey(s string) string {
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, strings.ToLower(strings.TrimSpace(s)))
	if err != nil {
		return strings.ToLower(strings.TrimSpace(s))
	}
	return folded
}

// InferProvince returns the province of the first table entry whose key and the
// folded canton contain one another, in either direction.
func InferProvince(canton string) (string, bool) {
	folded := FoldKey(canton)
	if folded == "" {
		return "", false
	}
	for _, c := range Cantons {
		key := FoldKey(c.Key)
		if strings.Contains(folded, key) || strings.Contains(key, folded) {
			return c.Provincia, true
		}
	}
	return "", false
}

// ResolveProvince decides the province of a record and always returns one of
// model.Provincias or the unknown marker. An explicit province wins when it
// names a province, even loosely ("Provincia de Alajuela", "limon"). Otherwise
// the canton decides, then the province text read as a canton.
func ResolveProvince(provincia, canton string) string {
	p := strings.TrimSpace(provincia)
	explicit := p != "" && FoldKey(p) != FoldKey(model.ProvinciaDesconocida)

	if explicit {
		if name, ok := MatchProvince(p); ok {
			return name
		}
	}
	if inferred, ok := InferProvince(canton); ok {
		return inferred
	}
	if explicit {
		if inferred, ok := InferProvince(p); ok {
			return inferred
		}
	}
	return model.ProvinciaDesconocida
}

// MatchProvince finds the province named by s: an exact match after folding,
// or the first province whose name s contains.
func MatchProvince(s string) (string, bool) {
	folded := FoldKey(s)
	if folded == "" {
		return "", false
	}
	for _, p := range model.Provincias {
		if FoldKey(p) == folded {
			return p, true
		}
	}
	for _, p := range model.Provincias {
		if strings.Contains(folded, FoldKey(p)) {
			return p, true
		}
	}
	return "", false
}

// TitleCase uppercases the first letter of every word and lowercases the rest.
// Accented letters count as word characters.
func TitleCase(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	inWord := false
	for _, r := range s {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) {
			if inWord {
				b.WriteRune(unicode.ToLower(r))
			} else {
				b.WriteRune(unicode.ToUpper(r))
				inWord = true
			}
			continue
		}
		inWord = false
		b.WriteRune(r)
	}
	return b.String()
}
