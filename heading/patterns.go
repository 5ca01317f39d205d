package heading

import (
	"regexp"

	"golang.org/x/text/unicode/norm"
)

// sectionPatterns recognise enumeration and section prefixes. All are
// anchored and applied to NFKC-normalised text, so full-width digits,
// periods and parentheses match their ASCII forms.
var sectionPatterns = []*regexp.Regexp{
	// 第一章, 第十二节, 第三篇 ...
	regexp.MustCompile(`^第[一二三四五六七八九十百千零〇两]+[章节篇部条]?`),
	// 一、
	regexp.MustCompile(`^[一二三四五六七八九十百]+、`),
	// (一)
	regexp.MustCompile(`^\([一二三四五六七八九十百]+\)`),
	// 1.2.3
	regexp.MustCompile(`^\d+(\.\d+)+\s`),
	// 3、 or 3
	regexp.MustCompile(`^\d+(、|\s)`),
}

// enumerationPrefix matches "1." and "1、" style numbering.
var enumerationPrefix = regexp.MustCompile(`^\d+[.、]`)

// normalize folds compatibility characters (full-width forms, ideographic
// space) to their canonical equivalents.
func normalize(text string) string {
	return norm.NFKC.String(text)
}

// MatchesPattern reports whether text starts with a recognised chapter,
// section or enumeration marker.
func MatchesPattern(text string) bool {
	text = normalize(text)
	for _, re := range sectionPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}

// HasEnumerationPrefix reports whether text starts with a number followed by
// a period or an ideographic comma.
func HasEnumerationPrefix(text string) bool {
	return enumerationPrefix.MatchString(normalize(text))
}
