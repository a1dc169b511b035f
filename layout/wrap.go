package layout

import "strings"

// Face measures and identifies one embedded font face. Width returns the
// rendered advance of text at the given size, in points. Family and Style
// name the face to the underlying PDF document.
type Face interface {
	Width(text string, size float64) float64
	Family() string
	Style() string
}

// FontSet resolves style variants to the faces embedded in one document.
// The layout engine never loads fonts itself.
type FontSet interface {
	Face(v Variant) Face
}

// WrapText greedily wraps text into lines no wider than maxWidth: words
// accumulate while the joined line still fits, and a single word wider
// than the bound is broken at rune level so the split always terminates.
// Empty or whitespace-only input yields one empty line. A non-positive
// maxWidth disables wrapping and returns the text as-is.
func WrapText(text string, face Face, size, maxWidth float64) []string {
	if maxWidth <= 0 {
		return []string{text}
	}
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{""}
	}

	var lines []string
	var current string
	for _, word := range words {
		switch {
		case current == "":
			if face.Width(word, size) <= maxWidth {
				current = word
				continue
			}
			var full []string
			full, current = breakWord(word, face, size, maxWidth)
			lines = append(lines, full...)
		case face.Width(current+" "+word, size) <= maxWidth:
			current += " " + word
		default:
			lines = append(lines, current)
			if face.Width(word, size) <= maxWidth {
				current = word
				continue
			}
			var full []string
			full, current = breakWord(word, face, size, maxWidth)
			lines = append(lines, full...)
		}
	}
	return append(lines, current)
}

// breakWord splits a word that alone exceeds maxWidth into rune chunks.
// Every returned chunk fits the bound; the remainder is handed back so the
// caller can keep packing words after it. A single rune wider than
// maxWidth still occupies a chunk of its own.
func breakWord(word string, face Face, size, maxWidth float64) (full []string, rest string) {
	var b strings.Builder
	for _, r := range word {
		if b.Len() > 0 && face.Width(b.String()+string(r), size) > maxWidth {
			full = append(full, b.String())
			b.Reset()
		}
		b.WriteRune(r)
	}
	return full, b.String()
}
