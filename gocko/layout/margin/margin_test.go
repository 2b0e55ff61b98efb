package margin

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gockobrowser/gocko/css/values"
)

func TestFromMarginPositive(t *testing.T) {
	m := FromMargin(20.0)
	assert.Equal(t, float32(20.0), m.Positive)
	assert.Equal(t, float32(0.0), m.Negative)
	assert.Equal(t, float32(20.0), m.Resolve())
}

func TestFromMarginNegative(t *testing.T) {
	m := FromMargin(-15.0)
	assert.Equal(t, float32(0.0), m.Positive)
	assert.Equal(t, float32(15.0), m.Negative)
	assert.Equal(t, float32(-15.0), m.Resolve())
}

func TestFromMarginZero(t *testing.T) {
	m := FromMargin(0.0)
	assert.True(t, m.IsZero())
	assert.Equal(t, float32(0.0), m.Resolve())
}

func TestCollapseTwoPositive(t *testing.T) {
	m1 := FromMargin(20.0)
	m2 := FromMargin(30.0)
	assert.Equal(t, float32(30.0), m1.CollapseWith(m2).Resolve())
}

func TestCollapseTwoNegative(t *testing.T) {
	m1 := FromMargin(-10.0)
	m2 := FromMargin(-25.0)
	assert.Equal(t, float32(-25.0), m1.CollapseWith(m2).Resolve())
}

func TestCollapseMixedPositiveWins(t *testing.T) {
	m1 := FromMargin(30.0)
	m2 := FromMargin(-10.0)
	assert.Equal(t, float32(20.0), m1.CollapseWith(m2).Resolve())
}

func TestCollapseMixedNegativeWins(t *testing.T) {
	m1 := FromMargin(10.0)
	m2 := FromMargin(-30.0)
	assert.Equal(t, float32(-20.0), m1.CollapseWith(m2).Resolve())
}

func TestAdjoinPositiveToPositive(t *testing.T) {
	m := FromMargin(10.0)
	m.Adjoin(20.0)
	assert.Equal(t, float32(20.0), m.Resolve())
}

func TestAdjoinNegativeToPositive(t *testing.T) {
	m := FromMargin(30.0)
	m.Adjoin(-10.0)
	assert.Equal(t, float32(20.0), m.Resolve())
}

func TestAdjoinMultiple(t *testing.T) {
	m := Zero()
	m.Adjoin(10.0)
	m.Adjoin(20.0)
	m.Adjoin(-5.0)
	m.Adjoin(-15.0)
	assert.Equal(t, float32(5.0), m.Resolve())
}

func TestCollapseCommutative(t *testing.T) {
	m1 := FromMargin(20.0)
	m2 := FromMargin(-10.0)
	assert.Equal(t, m1.CollapseWith(m2).Resolve(), m2.CollapseWith(m1).Resolve())
}

func TestCollapseMarginsHelper(t *testing.T) {
	assert.Equal(t, float32(20.0), Collapse(10.0, 20.0))
	assert.Equal(t, float32(-20.0), Collapse(-10.0, -20.0))
	assert.Equal(t, float32(10.0), Collapse(20.0, -10.0))
	assert.Equal(t, float32(10.0), Collapse(-10.0, 20.0))
	assert.Equal(t, float32(20.0), Collapse(0.0, 20.0))
	assert.Equal(t, float32(0.0), Collapse(0.0, 0.0))
}

func TestBFCDefaultStyle(t *testing.T) {
	style := values.NewComputedStyle()
	assert.False(t, EstablishesBFC(style, "none"))
}

func TestBFCFloat(t *testing.T) {
	style := values.NewComputedStyle()
	assert.True(t, EstablishesBFC(style, "left"))
	assert.True(t, EstablishesBFC(style, "right"))
}

func TestBFCAbsoluteAndFixedPosition(t *testing.T) {
	style := values.NewComputedStyle()
	style.Position = "absolute"
	assert.True(t, EstablishesBFC(style, "none"))
	style.Position = "fixed"
	assert.True(t, EstablishesBFC(style, "none"))
}

func TestBFCRelativePositionNoBFC(t *testing.T) {
	style := values.NewComputedStyle()
	style.Position = "relative"
	assert.False(t, EstablishesBFC(style, "none"))
}

func TestBFCOverflow(t *testing.T) {
	style := values.NewComputedStyle()
	style.OverflowX = "hidden"
	assert.True(t, EstablishesBFC(style, "none"))

	style = values.NewComputedStyle()
	style.OverflowY = "auto"
	assert.True(t, EstablishesBFC(style, "none"))

	style = values.NewComputedStyle()
	style.OverflowX = "scroll"
	assert.True(t, EstablishesBFC(style, "none"))
}

func TestThroughFlowEmptyElement(t *testing.T) {
	style := values.NewComputedStyle()
	assert.True(t, IsMarginCollapsibleThrough(style, "none", false, 0, 0, 0, 0, false))
}

func TestThroughFlowBlockedByContent(t *testing.T) {
	style := values.NewComputedStyle()
	assert.False(t, IsMarginCollapsibleThrough(style, "none", true, 0, 0, 0, 0, false))
}

func TestThroughFlowBlockedByBorder(t *testing.T) {
	style := values.NewComputedStyle()
	assert.False(t, IsMarginCollapsibleThrough(style, "none", false, 1, 0, 0, 0, false))
}

func TestThroughFlowBlockedByPadding(t *testing.T) {
	style := values.NewComputedStyle()
	assert.False(t, IsMarginCollapsibleThrough(style, "none", false, 0, 0, 10, 0, false))
}

func TestThroughFlowBlockedByClearance(t *testing.T) {
	style := values.NewComputedStyle()
	assert.False(t, IsMarginCollapsibleThrough(style, "none", false, 0, 0, 0, 0, true))
}

func TestThroughFlowBlockedByBFC(t *testing.T) {
	style := values.NewComputedStyle()
	style.OverflowX = "hidden"
	assert.False(t, IsMarginCollapsibleThrough(style, "none", false, 0, 0, 0, 0, false))
}

func TestThroughFlowBlockedByFloat(t *testing.T) {
	style := values.NewComputedStyle()
	assert.False(t, IsMarginCollapsibleThrough(style, "left", false, 0, 0, 0, 0, false))
}

func TestCollapseWithFirstChild(t *testing.T) {
	style := values.NewComputedStyle()
	assert.True(t, ShouldCollapseWithFirstChild(style, "none", 0, 0))
	assert.False(t, ShouldCollapseWithFirstChild(style, "none", 1, 0))
	assert.False(t, ShouldCollapseWithFirstChild(style, "none", 0, 10))

	style.OverflowY = "auto"
	assert.False(t, ShouldCollapseWithFirstChild(style, "none", 0, 0))

	style = values.NewComputedStyle()
	assert.False(t, ShouldCollapseWithFirstChild(style, "right", 0, 0))
}

func TestCollapseWithLastChild(t *testing.T) {
	style := values.NewComputedStyle()
	assert.True(t, ShouldCollapseWithLastChild(style, "none", 0, 0))
	assert.False(t, ShouldCollapseWithLastChild(style, "none", 1, 0))
	assert.False(t, ShouldCollapseWithLastChild(style, "none", 0, 5))

	style.Height = values.Px(100)
	assert.False(t, ShouldCollapseWithLastChild(style, "none", 0, 0))
}
