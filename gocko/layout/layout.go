// Package layout provides the layout engine for Gocko
package layout

import (
	"strconv"
	"strings"
	"unsafe"

	"gockobrowser/css"
	"gockobrowser/dom"
	"gockobrowser/gocko/box"
	"gockobrowser/gocko/css/values"
	"gockobrowser/gocko/forms"
	"gockobrowser/gocko/layout/flex"
	"gockobrowser/gocko/layout/margin"
)

// Constants
const (
	FontSizeDefault = 15.0
	LineHeight      = 1.4
)

// LayoutContext holds the current layout state
type LayoutContext struct {
	CursorX, CursorY float64
	MaxWidth         float64
	LineHeight       float64
	RowCounter       int

	// PendingMargin accumulates adjoining block margins (CSS 2.1
	// §8.3.1) that haven't been committed to CursorY yet: a sibling's
	// bottom margin waiting to collapse with the next sibling's top
	// margin, or a container's own margin waiting to collapse through
	// to its first/last in-flow child. See margin.EstablishesBFC and
	// friends in layoutElement.
	PendingMargin margin.CollapsibleMargin
}

// BuildLayoutTree creates a layout tree from DOM nodes
func BuildLayoutTree(root *dom.Node, width float64, styles []*css.Stylesheet) *box.Box {
	ctx := &LayoutContext{
		CursorX:    0,
		CursorY:    0,
		MaxWidth:   width,
		LineHeight: FontSizeDefault * LineHeight,
	}

	rootBox := &box.Box{
		Node:    root,
		Width:   width,
		Display: "block",
	}

	layoutChildren(root, rootBox, ctx)
	ctx.CursorY += float64(ctx.PendingMargin.Resolve())
	rootBox.Height = ctx.CursorY + ctx.LineHeight

	return rootBox
}

func layoutChildren(node *dom.Node, container *box.Box, ctx *LayoutContext) {
	for _, child := range node.Children {
		childBox := layoutNode(child, ctx)
		if childBox != nil {
			container.Children = append(container.Children, childBox)
		}
	}
}

func layoutNode(node *dom.Node, ctx *LayoutContext) *box.Box {
	// Skip invisible elements
	if node.Display == dom.DisplayNone {
		return nil
	}

	// Check computed style for display:none
	if node.ComputedStyle != nil {
		if cs, ok := node.ComputedStyle.(*css.ComputedStyle); ok {
			if cs.Display == "none" {
				return nil
			}
		}
	}

	switch node.Type {
	case dom.NodeText:
		return layoutText(node, ctx)
	case dom.NodeElement:
		return layoutElement(node, ctx)
	}

	return nil
}

func layoutText(node *dom.Node, ctx *LayoutContext) *box.Box {
	text := strings.TrimSpace(node.Content)
	if text == "" {
		return nil
	}

	fontSize := FontSizeDefault
	var isBold bool
	var isLink bool
	var linkURL string

	// Get styles from parent
	if node.Parent != nil {
		if node.Parent.ComputedStyle != nil {
			if cs, ok := node.Parent.ComputedStyle.(*css.ComputedStyle); ok {
				if cs.FontSize > 0 {
					fontSize = cs.FontSize
				}
				if cs.FontWeight >= 600 {
					isBold = true
				}
			}
		}

		// Check for link
		if node.Parent.Tag == "a" {
			isLink = true
			linkURL = node.Parent.GetAttr("href")
		}
	}

	lineH := fontSize * LineHeight
	charW := fontSize * 0.55

	// Word wrap
	words := strings.Fields(text)
	var lines []string
	currentLine := ""
	currentWidth := ctx.CursorX

	for _, word := range words {
		wordWidth := float64(len(word)+1) * charW
		if currentWidth+wordWidth > ctx.MaxWidth && currentLine != "" {
			lines = append(lines, strings.TrimSpace(currentLine))
			currentLine = word + " "
			currentWidth = wordWidth
		} else {
			currentLine += word + " "
			currentWidth += wordWidth
		}
	}
	if currentLine != "" {
		lines = append(lines, strings.TrimSpace(currentLine))
	}

	// Create box for first line
	if len(lines) == 0 {
		return nil
	}

	textBox := &box.Box{
		Node:     node,
		Text:     lines[0],
		X:        ctx.CursorX,
		Y:        ctx.CursorY,
		Width:    float64(len(lines[0])) * charW,
		Height:   lineH,
		FontSize: fontSize,
		IsBold:   isBold,
		IsLink:   isLink,
		LinkURL:  linkURL,
		Display:  "inline",
	}

	ctx.CursorX += textBox.Width

	// Handle overflow lines
	for i := 1; i < len(lines); i++ {
		ctx.CursorX = 0
		ctx.CursorY += lineH
		childBox := &box.Box{
			Node:     node,
			Text:     lines[i],
			X:        0,
			Y:        ctx.CursorY,
			Width:    float64(len(lines[i])) * charW,
			Height:   lineH,
			FontSize: fontSize,
			IsBold:   isBold,
			IsLink:   isLink,
			LinkURL:  linkURL,
			Display:  "inline",
		}
		textBox.Children = append(textBox.Children, childBox)
		ctx.CursorX = childBox.Width
	}

	// Move to next line for block parents
	if node.Parent != nil {
		tag := node.Parent.Tag
		if tag == "p" || tag == "div" || tag == "h1" || tag == "h2" || tag == "h3" || tag == "li" {
			ctx.CursorY += lineH
			ctx.CursorX = 0
		}
	}

	return textBox
}

func layoutElement(node *dom.Node, ctx *LayoutContext) *box.Box {
	tag := strings.ToLower(node.Tag)

	// Get element ID
	id := node.GetAttr("id")
	if id == "" {
		id = node.GetAttr("name")
	}
	if id == "" {
		id = tag
	}

	elemBox := &box.Box{
		Node:    node,
		ID:      id,
		X:       ctx.CursorX,
		Y:       ctx.CursorY,
		Display: getDisplayType(node),
	}

	// Apply computed styles
	applyStyles(elemBox, node)

	// Size form controls from their intrinsic sizing formulas (§4.4.1/
	// §4.4.2) rather than generic block/inline flow.
	if kind, ok := forms.KindForNode(tag, node.GetAttr("type")); ok {
		sizeFormControl(elemBox, node, kind, ctx)
		ctx.CursorY += elemBox.Height + 8
		ctx.CursorX = 0
		return elemBox
	}

	// Flex containers hand main/cross-axis placement to the flex
	// package; each child is still measured through the normal
	// block/text layout first to get its content size.
	if elemBox.Display == "flex" || elemBox.Display == "inline-flex" {
		layoutFlexChildren(node, elemBox, ctx)
		return elemBox
	}

	// Handle special elements
	switch tag {
	case "br":
		ctx.CursorX = 0
		ctx.CursorY += ctx.LineHeight
		return nil
	case "hr":
		elemBox.X = 0
		elemBox.Y = ctx.CursorY + 8
		elemBox.Width = ctx.MaxWidth
		elemBox.Height = 2
		ctx.CursorY += 20
		ctx.CursorX = 0
		return elemBox
	case "img":
		src := node.GetAttr("src")
		if src != "" {
			elemBox.IsImage = true
			elemBox.ImageURL = src
			elemBox.Width = 200
			elemBox.Height = 150
			ctx.CursorY += elemBox.Height + 10
			ctx.CursorX = 0
			return elemBox
		}
		return nil
	}

	cs, _ := node.ComputedStyle.(*css.ComputedStyle)
	mStyle := marginStyleFrom(cs)
	float := elemBox.Float

	// Block elements start on new line. The element's own top margin
	// joins whatever margin is still pending from the previous
	// sibling/ancestor boundary; it only stays pending for the first
	// in-flow child to absorb when that child is itself a block
	// element (CSS 2.1 §8.3.1 — text/inline content terminates the
	// collapse chain and the margin must be committed right here).
	startY := ctx.CursorY
	if isBlockElement(tag) {
		if ctx.CursorX > 0 {
			ctx.CursorX = 0
			ctx.CursorY += ctx.LineHeight
		}
		ctx.PendingMargin.Adjoin(float32(elemBox.MarginTop))
		collapseFirst := margin.ShouldCollapseWithFirstChild(mStyle, float, float32(elemBox.BorderTop), float32(elemBox.PaddingTop)) &&
			firstInFlowChildIsBlock(node)
		if !collapseFirst {
			ctx.CursorY += float64(ctx.PendingMargin.Resolve())
			ctx.PendingMargin = margin.Zero()
		}
		ctx.CursorY += getElementSpacing(tag) / 2
		elemBox.X = 0
		elemBox.Y = ctx.CursorY
		startY = ctx.CursorY
	}

	// Layout children
	layoutChildren(node, elemBox, ctx)
	if elemBox.Width == 0 {
		elemBox.Width = ctx.MaxWidth
	}
	if elemBox.Height == 0 {
		elemBox.Height = ctx.CursorY - startY
	}

	// Block element spacing after: the bottom margin either collapses
	// through an empty box, collapses with the last in-flow child's
	// bottom margin, or stands alone as the new pending margin for
	// whatever comes next.
	if isBlockElement(tag) {
		hasInFlowContent := len(elemBox.Children) > 0
		collapsibleThrough := margin.IsMarginCollapsibleThrough(
			mStyle, float, hasInFlowContent,
			float32(elemBox.BorderTop), float32(elemBox.BorderBottom),
			float32(elemBox.PaddingTop), float32(elemBox.PaddingBottom),
			false,
		)
		collapseLast := margin.ShouldCollapseWithLastChild(mStyle, float, float32(elemBox.BorderBottom), float32(elemBox.PaddingBottom)) &&
			lastInFlowChildIsBlock(node)
		switch {
		case collapsibleThrough, collapseLast:
			ctx.PendingMargin.Adjoin(float32(elemBox.MarginBottom))
		default:
			ctx.PendingMargin = margin.FromMargin(float32(elemBox.MarginBottom))
		}
		ctx.CursorY += getElementSpacing(tag) / 2
		ctx.CursorX = 0
	}

	return elemBox
}

// marginStyleFrom adapts the teacher's legacy css.ComputedStyle onto a
// gocko/css/values.ComputedStyle carrying only the fields margin
// collapsing needs (Position/Display/Height/MinHeight). The legacy
// style has no overflow or float properties, so BFC detection through
// those triggers is unavailable from this style source; float is
// passed separately from box.Box.Float (always "" in this pipeline,
// since the legacy cascade never populates it either).
func marginStyleFrom(cs *css.ComputedStyle) *values.ComputedStyle {
	style := values.NewComputedStyle()
	if cs == nil {
		return style
	}
	if cs.Position != "" {
		style.Position = cs.Position
	}
	if cs.Display != "" {
		style.Display = cs.Display
	}
	if cs.Height > 0 {
		style.Height = values.Px(cs.Height)
	}
	if cs.MinHeight > 0 {
		style.MinHeight = values.Px(cs.MinHeight)
	}
	return style
}

// layoutFlexChildren lays out node's children as flex items. Each child
// is first measured through the ordinary layout path (giving it a
// content width/height under the container's available width), then
// handed to the flex package for main/cross-axis placement; the
// measured box's X/Y/Width/Height are overwritten with the flex result.
// Absolutely/fixed-positioned children are removed from flow entirely
// per spec and never reach the flex algorithm. A child with no
// explicit CSS main-size resolves its flex-basis from measured content
// through flex.BasisContent, which the flex package memoizes in its
// axis-aware intrinsic cache keyed on the child's DOM node identity.
func layoutFlexChildren(node *dom.Node, elemBox *box.Box, ctx *LayoutContext) {
	cs, _ := node.ComputedStyle.(*css.ComputedStyle)
	style := flexStyleFrom(cs)
	isRow := style.FlexDirection != "column" && style.FlexDirection != "column-reverse"

	containerWidth := float32(ctx.MaxWidth)
	container := flex.New(containerWidth, 0, style)
	container.AutoCross = true
	if cs != nil {
		container.Gap = float32(cs.Gap)
	}

	type placed struct {
		box  *box.Box
		item *flex.Item
	}
	var children []placed

	for _, child := range node.Children {
		measureCtx := &LayoutContext{MaxWidth: ctx.MaxWidth, LineHeight: ctx.LineHeight}
		childBox := layoutNode(child, measureCtx)
		if childBox == nil {
			continue
		}

		childCS, _ := child.ComputedStyle.(*css.ComputedStyle)

		if childCS != nil && (childCS.Position == "absolute" || childCS.Position == "fixed") {
			elemBox.Children = append(elemBox.Children, childBox)
			continue
		}

		item := &flex.Item{FlexShrink: 1}

		measuredMain, measuredCross := float32(childBox.Width), float32(childBox.Height)
		if !isRow {
			measuredMain, measuredCross = float32(childBox.Height), float32(childBox.Width)
		}

		var explicitMain float32
		switch {
		case childCS != nil && childCS.FlexBasis > 0:
			explicitMain = float32(childCS.FlexBasis)
		case isRow && childCS != nil && childCS.Width > 0:
			explicitMain = float32(childCS.Width)
		case !isRow && childCS != nil && childCS.Height > 0:
			explicitMain = float32(childCS.Height)
		}

		if explicitMain > 0 {
			item.BasisMode = flex.BasisLength
			item.BasisValue = explicitMain
		} else {
			item.BasisMode = flex.BasisContent
			item.ID = uintptr(unsafe.Pointer(child))
			if childCS != nil {
				item.StylePtr = uintptr(unsafe.Pointer(childCS))
			}
			contentMain := measuredMain
			item.IntrinsicMain = func() float32 { return contentMain }
		}

		switch {
		case isRow && childCS != nil && childCS.Height > 0:
			measuredCross = float32(childCS.Height)
		case !isRow && childCS != nil && childCS.Width > 0:
			measuredCross = float32(childCS.Width)
		}
		item.CrossSize = measuredCross

		if childCS != nil {
			item.FlexGrow = float32(childCS.FlexGrow)
			item.FlexShrink = float32(childCS.FlexShrink)
		}

		container.AddItem(item)
		children = append(children, placed{childBox, item})
	}

	container.Layout()

	for _, p := range children {
		x, y, w, h := container.ItemRect(p.item)
		p.box.X = float64(x)
		p.box.Y = float64(y)
		p.box.Width = float64(w)
		p.box.Height = float64(h)
		elemBox.Children = append(elemBox.Children, p.box)
	}

	elemBox.Width = float64(container.Width)
	elemBox.Height = float64(container.Height)
	ctx.CursorY += elemBox.Height
	ctx.CursorX = 0
}

// flexStyleFrom adapts the teacher's legacy css.ComputedStyle flex
// properties onto a gocko/css/values.ComputedStyle, the type the flex
// package is written against.
func flexStyleFrom(cs *css.ComputedStyle) *values.ComputedStyle {
	style := values.NewComputedStyle()
	if cs == nil {
		return style
	}
	if cs.FlexDirection != "" {
		style.FlexDirection = cs.FlexDirection
	}
	if cs.FlexWrap != "" {
		style.FlexWrap = cs.FlexWrap
	}
	if cs.JustifyContent != "" {
		style.JustifyContent = cs.JustifyContent
	}
	if cs.AlignItems != "" {
		style.AlignItems = cs.AlignItems
	}
	if cs.AlignContent != "" {
		style.AlignContent = cs.AlignContent
	}
	return style
}

// sizeFormControl resolves a form control's width/height from its
// intrinsic sizing formulas (spec.md §4.4.1/§4.4.2). The container's
// dominant axis (row vs column) determines which formula is the
// "main" one; outside an explicit flex container that's always row
// (block flow lays out form controls left-to-right on their line,
// stacked vertically), so the row formula drives width and the column
// formula drives height.
func sizeFormControl(b *box.Box, node *dom.Node, kind forms.Kind, ctx *LayoutContext) {
	fontSize := elementFontSize(node)
	label := formControlLabel(node)
	dims := formControlDims(node)

	if b.Width == 0 {
		b.Width = forms.RowMainSize(kind, fontSize, label, dims)
	}
	if b.Height == 0 {
		b.Height = forms.ColumnMainSize(kind, fontSize, label, dims)
	}
}

func elementFontSize(node *dom.Node) float64 {
	if node.ComputedStyle != nil {
		if cs, ok := node.ComputedStyle.(*css.ComputedStyle); ok && cs.FontSize > 0 {
			return cs.FontSize
		}
	}
	return FontSizeDefault
}

func formControlLabel(node *dom.Node) string {
	if label := node.GetAttr("value"); label != "" {
		return label
	}
	var text strings.Builder
	for _, child := range node.Children {
		if child.Type == dom.NodeText {
			text.WriteString(child.Content)
		}
	}
	if s := strings.TrimSpace(text.String()); s != "" {
		return s
	}
	return "Submit"
}

func formControlDims(node *dom.Node) forms.TextAreaDims {
	rows, _ := strconv.Atoi(node.GetAttr("rows"))
	cols, _ := strconv.Atoi(node.GetAttr("cols"))
	return forms.TextAreaDims{Rows: rows, Cols: cols}
}

func applyStyles(b *box.Box, node *dom.Node) {
	if node.ComputedStyle == nil {
		return
	}
	cs, ok := node.ComputedStyle.(*css.ComputedStyle)
	if !ok {
		return
	}

	b.MarginTop = cs.MarginTop
	b.MarginRight = cs.MarginRight
	b.MarginBottom = cs.MarginBottom
	b.MarginLeft = cs.MarginLeft

	b.PaddingTop = cs.PaddingTop
	b.PaddingRight = cs.PaddingRight
	b.PaddingBottom = cs.PaddingBottom
	b.PaddingLeft = cs.PaddingLeft

	if cs.Position != "" {
		b.Position = cs.Position
	}
	if cs.Display != "" {
		b.Display = cs.Display
	}
	// An explicit CSS width/height wins over the generic block-flow
	// sizing layoutElement would otherwise apply; "auto" (the zero
	// value here) leaves the box's dimensions for the caller to fill
	// in from measured content.
	if cs.Width > 0 {
		b.Width = cs.Width
	}
	if cs.Height > 0 {
		b.Height = cs.Height
	}
}

func getDisplayType(node *dom.Node) string {
	if node.ComputedStyle != nil {
		if cs, ok := node.ComputedStyle.(*css.ComputedStyle); ok {
			if cs.Display != "" {
				return cs.Display
			}
		}
	}
	if isBlockElement(node.Tag) {
		return "block"
	}
	return "inline"
}

// firstInFlowChildIsBlock reports whether node's first in-flow child
// (skipping whitespace-only text and display:none elements) is itself a
// block-level element. Only a block child can carry the margin-collapse
// chain through to its own first child in turn; text content stops it.
func firstInFlowChildIsBlock(node *dom.Node) bool {
	for _, child := range node.Children {
		if !isInFlow(child) {
			continue
		}
		return child.Type == dom.NodeElement && isBlockElement(child.Tag)
	}
	return false
}

// lastInFlowChildIsBlock is the bottom-margin counterpart of
// firstInFlowChildIsBlock.
func lastInFlowChildIsBlock(node *dom.Node) bool {
	for i := len(node.Children) - 1; i >= 0; i-- {
		child := node.Children[i]
		if !isInFlow(child) {
			continue
		}
		return child.Type == dom.NodeElement && isBlockElement(child.Tag)
	}
	return false
}

// isInFlow reports whether child participates in normal flow for the
// purpose of margin collapsing: whitespace-only text nodes and
// display:none elements are skipped entirely.
func isInFlow(child *dom.Node) bool {
	if child.Type == dom.NodeText {
		return strings.TrimSpace(child.Content) != ""
	}
	if child.Display == dom.DisplayNone {
		return false
	}
	if cs, ok := child.ComputedStyle.(*css.ComputedStyle); ok && cs.Display == "none" {
		return false
	}
	return true
}

func isBlockElement(tag string) bool {
	blocks := map[string]bool{
		"div": true, "p": true, "h1": true, "h2": true, "h3": true,
		"h4": true, "h5": true, "h6": true, "section": true, "article": true,
		"header": true, "footer": true, "nav": true, "main": true, "aside": true,
		"ul": true, "ol": true, "li": true, "form": true, "fieldset": true,
		"table": true, "tr": true, "pre": true, "blockquote": true,
	}
	return blocks[tag]
}

func getElementSpacing(tag string) float64 {
	spacing := map[string]float64{
		"p": 16, "div": 8, "h1": 24, "h2": 20, "h3": 18,
		"section": 16, "article": 16, "ul": 12, "ol": 12, "li": 8,
		"form": 16, "table": 16, "hr": 16, "fieldset": 16,
	}
	if s, ok := spacing[tag]; ok {
		return s
	}
	return 0
}
