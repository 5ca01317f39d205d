// Package heading classifies WordprocessingML paragraphs as headings and
// resolves their level.
//
// Classification is an ordered cascade of rules. Each rule either accepts
// the paragraph as a heading with a level, rejects it outright, or passes
// to the next rule:
//
//  1. empty text is never a heading
//  2. "Heading N" / "标题 N" styles give level N
//  3. single-digit style IDs are user heading slots, resolved from the
//     outline level or from bold text of at least 14pt
//  4. an explicit outline level gives outline level + 1
//  5. short bold text is graded by size, numbering and section patterns
//
// Font sizes are compared in half-points. Use [HalfPoints] to convert a
// point size before comparing against any of the thresholds.
package heading

import (
	"math"
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/tsawler/headingdocx/model"
)

// Thresholds, in half-points unless stated otherwise.
const (
	// Level1HalfPoints is the bold size that marks a level 1 heading (22pt).
	Level1HalfPoints = 44
	// Level2HalfPoints is the bold size that marks a level 2 heading (18pt).
	Level2HalfPoints = 36
	// Level3HalfPoints is the bold size that marks a level 3 heading (16pt).
	Level3HalfPoints = 32
	// NumericStyleHalfPoints is the bold size that confirms a numeric style slot (14pt).
	NumericStyleHalfPoints = 28
	// MaxVisualHeadingRunes is the exclusive text length limit for visual rules.
	MaxVisualHeadingRunes = 200
)

// Rule names reported in Result.Rule.
const (
	RuleEmptyText    = "empty-text"
	RuleHeadingStyle = "heading-style"
	RuleNumericStyle = "numeric-style"
	RuleOutlineLevel = "outline-level"
	RuleVisualFormat = "visual-format"
	RuleNoSignal     = ""
)

var (
	headingStylePattern = regexp.MustCompile(`(?i)^(?:heading|标题)\s*(\d+)$`)
	numericStylePattern = regexp.MustCompile(`^[1-9]$`)
)

// HalfPoints converts a size in points to half-points.
func HalfPoints(points float64) int {
	return int(math.Round(points * 2))
}

// Result is the outcome of classifying one paragraph.
type Result struct {
	IsHeading bool
	// Level is 1-based; 0 when the paragraph is not a heading.
	Level int
	// Rule names the rule that decided, or "" when none did.
	Rule string
}

type verdict int

const (
	pass verdict = iota
	accept
	reject
)

// rule is one step of the cascade.
type rule struct {
	name  string
	apply func(p *model.Paragraph) (verdict, int)
}

// cascade is evaluated top to bottom; the first accept or reject wins.
var cascade = []rule{
	{RuleEmptyText, emptyText},
	{RuleHeadingStyle, headingStyle},
	{RuleNumericStyle, numericStyle},
	{RuleOutlineLevel, outlineLevel},
	{RuleVisualFormat, visualFormat},
}

// Classify decides whether p is a heading and at which level. It never fails:
// a paragraph without any heading signal is simply not a heading.
//
// Heading extraction and heading-based partitioning must both use Classify.
func Classify(p *model.Paragraph) Result {
	if p == nil {
		return Result{}
	}
	for _, r := range cascade {
		switch v, level := r.apply(p); v {
		case accept:
			return Result{IsHeading: true, Level: level, Rule: r.name}
		case reject:
			return Result{Rule: r.name}
		}
	}
	return Result{Rule: RuleNoSignal}
}

// IsHeading is shorthand for Classify(p).IsHeading.
func IsHeading(p *model.Paragraph) bool {
	return Classify(p).IsHeading
}

func emptyText(p *model.Paragraph) (verdict, int) {
	if strings.TrimSpace(p.Text) == "" {
		return reject, 0
	}
	return pass, 0
}

// headingStyle matches "Heading N" and "标题 N" against the style ID and,
// when the styles part defines one, the style's display name. The name is
// not consulted for numeric IDs, which belong to numericStyle.
func headingStyle(p *model.Paragraph) (verdict, int) {
	candidates := []string{p.StyleID}
	if !numericStylePattern.MatchString(strings.TrimSpace(p.StyleID)) {
		candidates = append(candidates, p.StyleName)
	}
	for _, s := range candidates {
		if level, ok := headingStyleLevel(s); ok {
			return accept, level
		}
	}
	return pass, 0
}

func headingStyleLevel(style string) (int, bool) {
	m := headingStylePattern.FindStringSubmatch(strings.TrimSpace(style))
	if m == nil {
		return 0, false
	}
	level, err := strconv.Atoi(m[1])
	if err != nil || level < 1 {
		return 0, false
	}
	return level, true
}

// numericStyle treats style IDs "1" through "9" as user heading slots. It is
// a weak rule: without a supporting signal it passes.
func numericStyle(p *model.Paragraph) (verdict, int) {
	id := strings.TrimSpace(p.StyleID)
	if !numericStylePattern.MatchString(id) {
		return pass, 0
	}
	if p.OutlineLevel != nil {
		return accept, *p.OutlineLevel + 1
	}
	if p.IsBold() && p.HasFontSizeAtLeast(NumericStyleHalfPoints) {
		slot, _ := strconv.Atoi(id)
		return accept, slot
	}
	return pass, 0
}

func outlineLevel(p *model.Paragraph) (verdict, int) {
	if p.OutlineLevel != nil {
		return accept, *p.OutlineLevel + 1
	}
	return pass, 0
}

// visualFormat grades short bold paragraphs by size, numbering and text
// patterns.
func visualFormat(p *model.Paragraph) (verdict, int) {
	if utf8.RuneCountInString(p.Text) >= MaxVisualHeadingRunes {
		return pass, 0
	}
	if !p.IsBold() {
		return pass, 0
	}

	switch {
	case p.HasFontSizeAtLeast(Level1HalfPoints):
		return accept, 1
	case p.HasFontSizeAtLeast(Level2HalfPoints):
		return accept, 2
	case p.HasFontSizeAtLeast(Level3HalfPoints):
		return accept, 3
	case HasEnumerationPrefix(p.Text):
		return accept, 2
	case MatchesPattern(p.Text):
		if p.HasFontSizeAtLeast(Level3HalfPoints) {
			return accept, 1
		}
		return accept, 2
	}
	return pass, 0
}
