package flex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gockobrowser/gocko/css/values"
	"gockobrowser/gocko/layout/intrinsic"
)

func newRowContainer(width, height float32) *Container {
	style := values.NewComputedStyle()
	style.FlexDirection = "row"
	return New(width, height, style)
}

func basisItem(basis, grow, shrink float32) *Item {
	return &Item{BasisMode: BasisLength, BasisValue: basis, FlexGrow: grow, FlexShrink: shrink}
}

func TestGrowDistributesFreeSpaceByRatio(t *testing.T) {
	c := newRowContainer(300, 100)
	a := basisItem(50, 1, 1)
	b := basisItem(50, 2, 1)
	c.AddItem(a)
	c.AddItem(b)
	c.Layout()

	// free = 300 - 100 = 200, split 1:2 => a gets +66.67, b gets +133.33
	assert.InDelta(t, 116.67, a.FinalMainSize, 0.1)
	assert.InDelta(t, 183.33, b.FinalMainSize, 0.1)
}

func TestShrinkWeightedByBasisAndFactor(t *testing.T) {
	c := newRowContainer(100, 50)
	a := basisItem(100, 0, 1)
	b := basisItem(100, 0, 1)
	c.AddItem(a)
	c.AddItem(b)
	c.Layout()

	assert.InDelta(t, 50.0, a.FinalMainSize, 0.1)
	assert.InDelta(t, 50.0, b.FinalMainSize, 0.1)
}

func TestMaxMainSizeClampsGrowth(t *testing.T) {
	c := newRowContainer(300, 100)
	a := basisItem(50, 1, 1)
	b := basisItem(50, 1, 1)
	b.MaxMainSize = 60
	c.AddItem(a)
	c.AddItem(b)
	c.Layout()

	assert.LessOrEqual(t, b.FinalMainSize, float32(60.001))
	// Remaining free space should all go to a once b is frozen.
	assert.Greater(t, a.FinalMainSize, float32(190.0))
}

func TestOrderSortsBeforeLayout(t *testing.T) {
	c := newRowContainer(300, 100)
	first := basisItem(10, 0, 0)
	first.Order = 2
	second := basisItem(20, 0, 0)
	second.Order = 1
	c.AddItem(first)
	c.AddItem(second)
	c.Layout()

	// "second" (order 1) should be positioned before "first" (order 2).
	assert.Less(t, second.MainPos, first.MainPos)
}

func TestJustifyContentSpaceBetween(t *testing.T) {
	c := newRowContainer(300, 100)
	c.JustifyContent = "space-between"
	a := basisItem(50, 0, 0)
	b := basisItem(50, 0, 0)
	c.AddItem(a)
	c.AddItem(b)
	c.Layout()

	assert.Equal(t, float32(0), a.MainPos)
	assert.InDelta(t, 250.0, b.MainPos, 0.01)
}

func TestWrapCreatesMultipleLines(t *testing.T) {
	c := newRowContainer(100, 200)
	c.Wrap = "wrap"
	c.AddItem(basisItem(60, 0, 0))
	c.AddItem(basisItem(60, 0, 0))
	c.Layout()

	assert.Len(t, c.Lines, 2)
}

func TestAlignContentStretchDistributesAcrossLines(t *testing.T) {
	c := newRowContainer(100, 100)
	c.Wrap = "wrap"
	c.AlignContent = "stretch"
	itemA := basisItem(60, 0, 0)
	itemA.CrossSize = 20
	itemB := basisItem(60, 0, 0)
	itemB.CrossSize = 20
	c.AddItem(itemA)
	c.AddItem(itemB)
	c.Layout()

	assert.Len(t, c.Lines, 2)
	// 100 cross space split across 2 lines of 20 each => +30 per line.
	assert.InDelta(t, 50.0, c.Lines[0].CrossSize, 0.01)
	assert.InDelta(t, 50.0, c.Lines[1].CrossSize, 0.01)
}

func TestContentBasisUsesIntrinsicCallback(t *testing.T) {
	c := newRowContainer(300, 100)
	item := &Item{BasisMode: BasisContent, FlexGrow: 0, FlexShrink: 0, IntrinsicMain: func() float32 { return 42 }}
	c.AddItem(item)
	c.Layout()

	assert.InDelta(t, 42.0, item.FinalMainSize, 0.01)
}

func TestCrossAxisStretchFillsLine(t *testing.T) {
	c := newRowContainer(100, 100)
	c.AlignItems = "stretch"
	a := basisItem(50, 0, 0)
	a.CrossSize = 20
	b := basisItem(50, 0, 0)
	b.CrossSize = 40
	c.AddItem(a)
	c.AddItem(b)
	c.Layout()

	// The container's cross size is definite (100), so the single line
	// and every stretched item in it take the whole of it.
	assert.InDelta(t, 100.0, a.FinalCrossSize, 0.01)
	assert.InDelta(t, 100.0, b.FinalCrossSize, 0.01)
}

func TestRefitCrossSizeAfterFinalMainKnown(t *testing.T) {
	c := newRowContainer(200, 200)
	// Not stretched, so the final cross size is the re-fit item's own.
	c.AlignItems = "flex-start"
	a := basisItem(100, 1, 1)
	a.CrossSize = 5
	a.CrossForMain = func(finalMain float32) float32 {
		// Pretend wrapped-text height halves as width doubles.
		return 2000 / finalMain
	}
	c.AddItem(a)
	c.Layout()

	expected := 2000 / a.FinalMainSize
	assert.InDelta(t, expected, a.FinalCrossSize, 0.01)
}

func TestContainerAutoSizing(t *testing.T) {
	style := values.NewComputedStyle()
	style.FlexDirection = "row"
	c := New(0, 0, style)
	c.AutoMain = true
	c.AutoCross = true
	a := basisItem(50, 0, 0)
	a.CrossSize = 30
	c.AddItem(a)
	c.Layout()

	assert.InDelta(t, 50.0, c.Width, 0.01)
	assert.InDelta(t, 30.0, c.Height, 0.01)
}

func TestColumnContentBasisUsesBlockCache(t *testing.T) {
	intrinsic.ClearAll()
	intrinsic.UseEpoch(1)

	style := values.NewComputedStyle()
	style.FlexDirection = "column"
	c := New(100, 300, style)

	calls := 0
	item := &Item{
		ID:        42,
		BasisMode: BasisContent,
		IntrinsicMain: func() float32 {
			calls++
			return 77
		},
	}
	c.AddItem(item)
	c.Layout()

	assert.InDelta(t, 77.0, item.FinalMainSize, 0.01)
	assert.Equal(t, 1, calls)

	// The column container's main axis is block (height); the basis
	// must have been memoized in the block cache, not the inline one.
	if _, ok := intrinsic.LookupInline(42, 0, intrinsic.MaxContent); ok {
		t.Fatal("column-axis basis must not populate the inline cache")
	}
	if _, ok := intrinsic.LookupBlock(42, 0, intrinsic.MaxContent); !ok {
		t.Fatal("column-axis basis must be memoized in the block cache")
	}

	// A second container reusing the same item must hit the cache
	// rather than calling IntrinsicMain again.
	c2 := New(100, 300, style)
	c2.AddItem(item)
	c2.Layout()
	assert.Equal(t, 1, calls)
}

func TestItemRectTranslatesColumnAxis(t *testing.T) {
	style := values.NewComputedStyle()
	style.FlexDirection = "column"
	c := New(100, 300, style)
	a := basisItem(50, 0, 0)
	a.CrossSize = 20
	c.AddItem(a)
	c.Layout()

	x, y, w, h := c.ItemRect(a)
	assert.Equal(t, a.CrossPos, x)
	assert.Equal(t, a.MainPos, y)
	assert.Equal(t, a.FinalCrossSize, w)
	assert.Equal(t, a.FinalMainSize, h)
}
