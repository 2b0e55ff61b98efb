// Package flex implements the CSS Flexible Box Layout algorithm: main/
// cross axis resolution, the iterative flex-grow/flex-shrink freeze
// loop, line wrapping, multi-line align-content distribution, cross-axis
// stretch (including a post-layout re-fit for content whose size depends
// on its final main-axis size, e.g. wrapped text), and order-based
// painting order. It generalizes the teacher's original single-pass
// grow/shrink resolver into the full specification algorithm.
package flex

import (
	"sort"

	"gockobrowser/gocko/css/values"
	"gockobrowser/gocko/layout/intrinsic"
)

// BasisMode selects how an item's flex-basis is resolved before the
// flexible-length algorithm runs.
type BasisMode int

const (
	// BasisLength uses an explicit, already-resolved pixel value.
	BasisLength BasisMode = iota
	// BasisContent asks the item's IntrinsicMain callback for its
	// max-content size (flex-basis: content, or flex-basis: auto with
	// width/height: auto).
	BasisContent
)

// Item is one child of a flex container.
type Item struct {
	// ID identifies the source element for intrinsic-cache lookups; 0
	// disables caching for this item.
	ID uintptr
	// StylePtr distinguishes cache entries when the same element is
	// measured under different computed styles.
	StylePtr uintptr

	Order int

	BasisMode  BasisMode
	BasisValue float32 // used when BasisMode == BasisLength

	FlexGrow   float32
	FlexShrink float32

	MinMainSize float32
	MaxMainSize float32 // 0 means unconstrained

	// CrossSize is the item's hypothetical (content-derived) cross
	// size, used when it is not stretched.
	CrossSize float32

	MarginMainStart, MarginMainEnd   float32
	MarginCrossStart, MarginCrossEnd float32

	AlignSelf string // "", "auto", flex-start, flex-end, center, stretch, baseline

	// IntrinsicMain computes the item's max-content main size, called
	// only when BasisMode == BasisContent. Backed by gocko/layout/intrinsic
	// so repeated measurement within one layout pass is memoized.
	IntrinsicMain func() float32

	// CrossForMain, if set, recomputes the item's cross size given its
	// final main-axis size (e.g. wrapped-text height depends on the
	// column width it was given). Used by the post-layout cross re-fit
	// step. A nil callback means CrossSize is independent of MainSize.
	CrossForMain func(finalMain float32) float32

	// outputs
	MainPos, CrossPos             float32
	FinalMainSize, FinalCrossSize float32

	origIndex         int
	flexBasisResolved float32
}

// resolvedBasis returns the item's flex-basis in pixels, memoizing
// content-based measurements through gocko/layout/intrinsic. mainIsColumn
// selects which of the cache's two parallel maps backs this item: a
// row container's main axis is the inline (width) axis, while a column
// container's main axis is the block (height) axis, so the two must not
// share cache entries for the same element/style.
func (it *Item) resolvedBasis(mainIsColumn bool) float32 {
	if it.BasisMode == BasisLength {
		return it.BasisValue
	}
	lookup, store := intrinsic.LookupInline, intrinsic.StoreInline
	if mainIsColumn {
		lookup, store = intrinsic.LookupBlock, intrinsic.StoreBlock
	}
	if it.ID != 0 {
		if v, ok := lookup(it.ID, it.StylePtr, intrinsic.MaxContent); ok {
			return v
		}
	}
	var v float32
	if it.IntrinsicMain != nil {
		v = it.IntrinsicMain()
	}
	if it.ID != 0 {
		store(it.ID, it.StylePtr, intrinsic.MaxContent, v)
	}
	return v
}

// Line is one flex line (wrap row/column).
type Line struct {
	Items      []*Item
	MainSize   float32
	CrossSize  float32
	MainStart  float32
	CrossStart float32
}

// Container holds flex-container properties and the items placed within
// it. Width/Height are the resolved content-box dimensions; set
// AutoMain/AutoCross when the corresponding dimension is "auto" and
// should be derived from content (container auto-sizing, step 13).
type Container struct {
	Width, Height float32
	AutoMain      bool
	AutoCross     bool

	Direction      string
	Wrap           string
	JustifyContent string
	AlignItems     string
	AlignContent   string
	Gap            float32

	Items []*Item
	Lines []Line

	isRow, isReverse, wrapReverse bool
}

// New builds a Container from a container style and resolved content-box
// dimensions.
func New(width, height float32, style *values.ComputedStyle) *Container {
	ctx := values.DefaultContext()
	return &Container{
		Width:          width,
		Height:         height,
		Direction:      style.FlexDirection,
		Wrap:           style.FlexWrap,
		JustifyContent: style.JustifyContent,
		AlignItems:     style.AlignItems,
		AlignContent:   style.AlignContent,
		Gap:            float32(style.Gap.Resolve(ctx)),
	}
}

// AddItem appends an item to the container.
func (c *Container) AddItem(item *Item) {
	item.origIndex = len(c.Items)
	c.Items = append(c.Items, item)
}

// Layout runs the full flexbox pipeline: order sort, axis resolution,
// basis resolution, line wrapping, flexible-length freeze loop, main-axis
// alignment, cross-size determination with multi-line align-content,
// cross-axis alignment, the post-layout cross re-fit, and (when
// requested) container auto-sizing.
func (c *Container) Layout() {
	if len(c.Items) == 0 {
		return
	}

	// Step 1: order-based stable sort. CSS boxes are hit-tested/painted
	// in order-then-source order, and the line-wrapping/alignment
	// algorithm below must see that same order.
	sorted := make([]*Item, len(c.Items))
	copy(sorted, c.Items)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].origIndex < sorted[j].origIndex
	})
	c.Items = sorted

	// Step 2: main/cross axis.
	c.isRow = c.Direction == "row" || c.Direction == "row-reverse"
	c.isReverse = c.Direction == "row-reverse" || c.Direction == "column-reverse"
	c.wrapReverse = c.Wrap == "wrap-reverse"

	var mainSize, crossSize float32
	if c.isRow {
		mainSize, crossSize = c.Width, c.Height
	} else {
		mainSize, crossSize = c.Height, c.Width
	}

	// Step 3: resolve each item's flex basis (content-based items query
	// the intrinsic cache through resolvedBasis).
	basis := make([]float32, len(c.Items))
	for i, item := range c.Items {
		b := item.resolvedBasis(!c.isRow)
		if item.MinMainSize > 0 && b < item.MinMainSize {
			b = item.MinMainSize
		}
		if item.MaxMainSize > 0 && b > item.MaxMainSize {
			b = item.MaxMainSize
		}
		basis[i] = b
	}

	// Step 4: collect into lines.
	c.Lines = c.collectIntoLines(basis, mainSize)

	// Step 5: resolve flexible lengths via the freeze loop.
	for li := range c.Lines {
		c.resolveFlexibleLengths(&c.Lines[li], mainSize)
	}

	// Step 6: main-axis alignment (justify-content), honoring direction
	// reversal.
	for li := range c.Lines {
		c.alignMainAxis(&c.Lines[li], mainSize)
	}

	// Step 7: per-line cross size + multi-line align-content
	// distribution (including Stretch).
	c.determineLineCrossSizes()
	c.distributeAlignContent(crossSize)

	// Step 8: cross-axis stretch sizing for items.
	c.resolveCrossSizes()

	// Step 9: position items within their line (align-items/align-self),
	// honoring wrap-reverse line traversal.
	c.alignCrossAxis()

	// Step 10: post-layout cross re-fit for items whose cross size
	// depends on their final main-axis size (e.g. wrapped text).
	c.refitCrossSizes()

	// Step 13: container auto-sizing, when requested.
	if c.AutoMain || c.AutoCross {
		c.autoSizeContainer()
	}
}

func (c *Container) collectIntoLines(basis []float32, mainSize float32) []Line {
	singleLine := c.Wrap == "nowrap" || c.Wrap == ""

	if singleLine {
		line := Line{Items: c.Items}
		for i, item := range c.Items {
			line.MainSize += basis[i] + item.MarginMainStart + item.MarginMainEnd
		}
		if len(c.Items) > 1 {
			line.MainSize += c.Gap * float32(len(c.Items)-1)
		}
		c.setBasisOnItems(line.Items, basis)
		return []Line{line}
	}

	var lines []Line
	var current Line
	var currentMain float32

	for i, item := range c.Items {
		itemSize := basis[i] + item.MarginMainStart + item.MarginMainEnd
		extra := itemSize
		if len(current.Items) > 0 {
			extra += c.Gap
		}

		if len(current.Items) > 0 && currentMain+extra > mainSize {
			current.MainSize = currentMain
			lines = append(lines, current)
			current = Line{}
			currentMain = itemSize
		} else {
			currentMain += extra
		}

		current.Items = append(current.Items, item)
		item.flexBasisResolved = basis[i]
	}

	if len(current.Items) > 0 {
		current.MainSize = currentMain
		lines = append(lines, current)
	}
	return lines
}

func (c *Container) setBasisOnItems(items []*Item, basis []float32) {
	for i, item := range items {
		item.flexBasisResolved = basis[i]
	}
}

// resolveFlexibleLengths implements the CSS flexbox "resolve the
// flexible lengths" freeze loop: items are grown or shrunk toward the
// line's free space, clamping against min/max and freezing any item
// that hits a clamp, then redistributing remaining space among the
// still-unfrozen items until none remain or no more space can be
// distributed.
func (c *Container) resolveFlexibleLengths(line *Line, availableMain float32) {
	n := len(line.Items)
	frozen := make([]bool, n)
	target := make([]float32, n)

	for i, item := range line.Items {
		target[i] = item.flexBasisResolved
	}

	usedSpace := func() float32 {
		var s float32
		for i, item := range line.Items {
			s += target[i] + item.MarginMainStart + item.MarginMainEnd
		}
		if n > 1 {
			s += c.Gap * float32(n-1)
		}
		return s
	}

	freeSpace := availableMain - usedSpace()
	growing := freeSpace > 0

	for iter := 0; iter < n+1; iter++ {
		var unfrozenGrow, unfrozenShrinkWeighted float32
		anyUnfrozen := false
		for i, item := range line.Items {
			if frozen[i] {
				continue
			}
			anyUnfrozen = true
			unfrozenGrow += item.FlexGrow
			unfrozenShrinkWeighted += item.FlexShrink * item.flexBasisResolved
		}
		if !anyUnfrozen {
			break
		}

		remaining := availableMain - usedSpace()
		if growing {
			if unfrozenGrow <= 0 || remaining <= 0 {
				break
			}
		} else {
			if unfrozenShrinkWeighted <= 0 || remaining >= 0 {
				break
			}
		}

		madeProgress := false
		for i, item := range line.Items {
			if frozen[i] {
				continue
			}
			var delta float32
			if growing {
				if unfrozenGrow <= 0 {
					continue
				}
				delta = remaining * item.FlexGrow / unfrozenGrow
			} else {
				if unfrozenShrinkWeighted <= 0 {
					continue
				}
				weight := item.FlexShrink * item.flexBasisResolved
				delta = remaining * weight / unfrozenShrinkWeighted
			}

			newSize := target[i] + delta
			clamped := newSize
			if item.MinMainSize > 0 && clamped < item.MinMainSize {
				clamped = item.MinMainSize
			}
			if clamped < 0 {
				clamped = 0
			}
			if item.MaxMainSize > 0 && clamped > item.MaxMainSize {
				clamped = item.MaxMainSize
			}

			if clamped != newSize {
				frozen[i] = true
			}
			if clamped != target[i] {
				madeProgress = true
			}
			target[i] = clamped
		}
		if !madeProgress {
			break
		}
	}

	for i, item := range line.Items {
		item.FinalMainSize = target[i]
	}
}

func (c *Container) alignMainAxis(line *Line, mainSize float32) {
	var used float32
	for _, item := range line.Items {
		used += item.FinalMainSize + item.MarginMainStart + item.MarginMainEnd
	}
	n := len(line.Items)
	if n > 1 {
		used += c.Gap * float32(n-1)
	}

	free := mainSize - used
	if free < 0 {
		free = 0
	}

	var start, spacing float32
	switch c.JustifyContent {
	case "flex-end", "end":
		start = free
	case "center":
		start = free / 2
	case "space-between":
		if n > 1 {
			spacing = free / float32(n-1)
		}
	case "space-around":
		spacing = free / float32(n)
		start = spacing / 2
	case "space-evenly":
		spacing = free / float32(n+1)
		start = spacing
	default: // flex-start, start, ""
	}

	items := line.Items
	if c.isReverse {
		reversed := make([]*Item, n)
		for i, it := range items {
			reversed[n-1-i] = it
		}
		items = reversed
	}

	pos := start
	for i, item := range items {
		item.MainPos = pos + item.MarginMainStart
		pos += item.MarginMainStart + item.FinalMainSize + item.MarginMainEnd
		if i < n-1 {
			pos += c.Gap + spacing
		}
	}
}

func (c *Container) determineLineCrossSizes() {
	for li := range c.Lines {
		var maxCross float32
		for _, item := range c.Lines[li].Items {
			total := item.CrossSize + item.MarginCrossStart + item.MarginCrossEnd
			if total > maxCross {
				maxCross = total
			}
		}
		c.Lines[li].CrossSize = maxCross
	}
}

// distributeAlignContent distributes leftover cross-axis space across
// lines per align-content, including an even Stretch distribution
// across every line (not just the first, which a naive implementation
// often gets wrong).
func (c *Container) distributeAlignContent(availableCross float32) {
	var total float32
	for _, l := range c.Lines {
		total += l.CrossSize
	}
	n := len(c.Lines)
	if n > 1 {
		total += c.Gap * float32(n-1)
	}

	free := availableCross - total
	if free < 0 {
		free = 0
	}

	var start, spacing float32
	switch c.AlignContent {
	case "flex-end", "end":
		start = free
	case "center":
		start = free / 2
	case "space-between":
		if n > 1 {
			spacing = free / float32(n-1)
		}
	case "space-around":
		spacing = free / float32(n)
		start = spacing / 2
	case "stretch", "":
		if n > 0 {
			extra := free / float32(n)
			for i := range c.Lines {
				c.Lines[i].CrossSize += extra
			}
		}
	default: // flex-start, start
	}

	order := make([]int, n)
	for i := range order {
		order[i] = i
	}
	if c.wrapReverse {
		for i, j := 0, n-1; i < j; i, j = i+1, j-1 {
			order[i], order[j] = order[j], order[i]
		}
	}

	pos := start
	for k, li := range order {
		c.Lines[li].CrossStart = pos
		pos += c.Lines[li].CrossSize
		if k < n-1 {
			pos += c.Gap + spacing
		}
	}
}

func (c *Container) resolveCrossSizes() {
	for li := range c.Lines {
		line := &c.Lines[li]
		for _, item := range line.Items {
			align := item.AlignSelf
			if align == "" || align == "auto" {
				align = c.AlignItems
			}
			if align == "stretch" || align == "" {
				item.FinalCrossSize = line.CrossSize - item.MarginCrossStart - item.MarginCrossEnd
			} else {
				item.FinalCrossSize = item.CrossSize
			}
		}
	}
}

func (c *Container) alignCrossAxis() {
	for li := range c.Lines {
		line := &c.Lines[li]
		for _, item := range line.Items {
			align := item.AlignSelf
			if align == "" || align == "auto" {
				align = c.AlignItems
			}

			itemSize := item.FinalCrossSize + item.MarginCrossStart + item.MarginCrossEnd

			switch align {
			case "flex-end", "end":
				item.CrossPos = line.CrossStart + line.CrossSize - itemSize + item.MarginCrossStart
			case "center":
				item.CrossPos = line.CrossStart + (line.CrossSize-itemSize)/2 + item.MarginCrossStart
			case "baseline":
				// Baseline alignment needs font-metrics input this
				// package doesn't have; fall back to flex-start like
				// the teacher's original implementation did.
				item.CrossPos = line.CrossStart + item.MarginCrossStart
			default: // flex-start, start, stretch
				item.CrossPos = line.CrossStart + item.MarginCrossStart
			}
		}
	}
}

// refitCrossSizes re-measures any item whose CrossForMain callback is
// set, now that its final main-axis size is known, and re-runs cross
// alignment for lines that changed so stretched/centered neighbors still
// line up against the new size.
func (c *Container) refitCrossSizes() {
	changed := false
	for li := range c.Lines {
		line := &c.Lines[li]
		for _, item := range line.Items {
			if item.CrossForMain == nil {
				continue
			}
			newCross := item.CrossForMain(item.FinalMainSize)
			if newCross != item.CrossSize {
				item.CrossSize = newCross
				changed = true
			}
		}
	}
	if !changed {
		return
	}
	c.determineLineCrossSizes()
	var crossSize float32
	if c.isRow {
		crossSize = c.Height
	} else {
		crossSize = c.Width
	}
	c.distributeAlignContent(crossSize)
	c.resolveCrossSizes()
	c.alignCrossAxis()
}

// autoSizeContainer updates Width/Height from the laid-out content when
// the corresponding axis was marked auto, per CSS flex container
// auto-sizing: the main axis sums line extents (wrapping containers use
// the widest/tallest line), and the cross axis sums every line's size.
func (c *Container) autoSizeContainer() {
	var mainExtent, crossExtent float32
	for _, line := range c.Lines {
		if line.MainSize > mainExtent {
			mainExtent = line.MainSize
		}
		crossExtent += line.CrossSize
	}
	if len(c.Lines) > 1 {
		crossExtent += c.Gap * float32(len(c.Lines)-1)
	}

	if c.isRow {
		if c.AutoMain {
			c.Width = mainExtent
		}
		if c.AutoCross {
			c.Height = crossExtent
		}
	} else {
		if c.AutoMain {
			c.Height = mainExtent
		}
		if c.AutoCross {
			c.Width = crossExtent
		}
	}
}

// ItemRect returns an item's final position and size as (x, y, width,
// height), translating main/cross back to the container's physical axes.
func (c *Container) ItemRect(item *Item) (x, y, w, h float32) {
	if c.isRow {
		return item.MainPos, item.CrossPos, item.FinalMainSize, item.FinalCrossSize
	}
	return item.CrossPos, item.MainPos, item.FinalCrossSize, item.FinalMainSize
}
