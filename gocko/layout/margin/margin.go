// Package margin implements CSS 2.1 §8.3.1 margin collapsing: adjacent
// sibling collapsing, parent/first-child and parent/last-child collapsing,
// through-flow collapsing for empty boxes, and block formatting context
// (BFC) detection.
package margin

import "gockobrowser/gocko/css/values"

// CollapsibleMargin tracks the positive and negative components of a set
// of adjoining margins separately, per CSS 2.1 §8.3.1:
//   - two positive margins collapse to the larger
//   - two negative margins collapse to the more negative
//   - mixed margins collapse to the algebraic sum
type CollapsibleMargin struct {
	// Positive is the largest positive margin component seen (always >= 0).
	Positive float32
	// Negative is the most negative margin component, stored as an
	// absolute value (always >= 0); the actual margin is -Negative.
	Negative float32
}

// Zero returns the zero collapsible margin.
func Zero() CollapsibleMargin {
	return CollapsibleMargin{}
}

// FromMargin builds a CollapsibleMargin from a single margin value.
func FromMargin(value float32) CollapsibleMargin {
	if value >= 0 {
		return CollapsibleMargin{Positive: value}
	}
	return CollapsibleMargin{Negative: -value}
}

// CollapseWith combines this margin with another, taking the max of each
// component, per CSS 2.1.
func (m CollapsibleMargin) CollapseWith(other CollapsibleMargin) CollapsibleMargin {
	return CollapsibleMargin{
		Positive: max32(m.Positive, other.Positive),
		Negative: max32(m.Negative, other.Negative),
	}
}

// Adjoin folds a single margin value into m in place. Equivalent to
// m = m.CollapseWith(FromMargin(value)).
func (m *CollapsibleMargin) Adjoin(value float32) {
	if value >= 0 {
		m.Positive = max32(m.Positive, value)
	} else {
		m.Negative = max32(m.Negative, -value)
	}
}

// Resolve collapses the tracked components to a single margin value:
// Positive - Negative.
func (m CollapsibleMargin) Resolve() float32 {
	return m.Positive - m.Negative
}

// IsZero reports whether the margin is effectively zero.
func (m CollapsibleMargin) IsZero() bool {
	return m.Positive == 0 && m.Negative == 0
}

func max32(a, b float32) float32 {
	if a > b {
		return a
	}
	return b
}

// EstablishesBFC reports whether an element establishes a new block
// formatting context, per CSS 2.1 §9.4.1. The root element also
// establishes a BFC, but that is handled at the layout-tree level rather
// than from per-element style.
func EstablishesBFC(style *values.ComputedStyle, float string) bool {
	if float != "" && float != "none" {
		return true
	}
	if style.Position == "absolute" || style.Position == "fixed" {
		return true
	}
	if style.OverflowX != "visible" || style.OverflowY != "visible" {
		return true
	}
	if style.Display == "inline-block" {
		return true
	}
	if style.IsFlex() || style.Display == "grid" {
		return true
	}
	return false
}

// isAuto reports whether a resolved length represents "auto" sizing.
// The box model's height resolution uses a -1 sentinel for auto (see
// ComputedStyle.ResolveHeight), which this mirrors for the px-or-zero
// comparisons the collapsing predicates need.
func isAuto(l values.Length) bool {
	return l.IsAuto()
}

func lengthPxOrZero(l values.Length) float32 {
	if l.IsAuto() {
		return 0
	}
	if l.Unit == values.UnitPx && l.Value == 0 {
		return 0
	}
	if l.Unit == values.UnitPx {
		return float32(l.Value)
	}
	// Relative units can't be resolved without layout context here; treat
	// as a non-zero sentinel so callers don't mistake them for absent.
	return 1.0
}

// IsMarginCollapsibleThrough reports whether margins can collapse through
// an element (an empty block's own top and bottom margins merging, and
// potentially collapsing further with siblings). All of the following
// must hold:
//   - no in-flow content
//   - no border or padding
//   - no clearance
//   - does not establish a BFC
//   - height is auto (or 0) and min-height is 0 or auto
func IsMarginCollapsibleThrough(
	style *values.ComputedStyle,
	float string,
	hasInFlowContent bool,
	borderTop, borderBottom, paddingTop, paddingBottom float32,
	hasClearance bool,
) bool {
	if hasInFlowContent {
		return false
	}
	if borderTop > 0 || borderBottom > 0 {
		return false
	}
	if paddingTop > 0 || paddingBottom > 0 {
		return false
	}
	if hasClearance {
		return false
	}
	if EstablishesBFC(style, float) {
		return false
	}
	if !isAuto(style.Height) && lengthPxOrZero(style.Height) != 0 {
		return false
	}
	if !isAuto(style.MinHeight) && lengthPxOrZero(style.MinHeight) > 0 {
		return false
	}
	return true
}

// ShouldCollapseWithFirstChild reports whether a parent's top margin
// should collapse with its first in-flow child's top margin: the parent
// must not establish a BFC and must have no top border or padding.
func ShouldCollapseWithFirstChild(parentStyle *values.ComputedStyle, float string, borderTop, paddingTop float32) bool {
	if EstablishesBFC(parentStyle, float) {
		return false
	}
	if borderTop > 0 {
		return false
	}
	if paddingTop > 0 {
		return false
	}
	return true
}

// ShouldCollapseWithLastChild reports whether a parent's bottom margin
// should collapse with its last in-flow child's bottom margin: the
// parent must not establish a BFC, must have no bottom border or
// padding, and must have height:auto with min-height of 0 or auto.
func ShouldCollapseWithLastChild(parentStyle *values.ComputedStyle, float string, borderBottom, paddingBottom float32) bool {
	if EstablishesBFC(parentStyle, float) {
		return false
	}
	if borderBottom > 0 {
		return false
	}
	if paddingBottom > 0 {
		return false
	}
	if !isAuto(parentStyle.Height) {
		return false
	}
	if !isAuto(parentStyle.MinHeight) && lengthPxOrZero(parentStyle.MinHeight) > 0 {
		return false
	}
	return true
}

// Collapse collapses two plain margin values directly, per CSS 2.1:
// two positives take the max, two negatives take the min (most
// negative), and mixed signs take the algebraic sum. This supersedes the
// teacher's original free-standing CollapseMargins helper with the same
// contract.
func Collapse(margin1, margin2 float32) float32 {
	return FromMargin(margin1).CollapseWith(FromMargin(margin2)).Resolve()
}
