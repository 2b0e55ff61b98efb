package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"gockobrowser/css"
	"gockobrowser/dom"
)

// TestFlexRowPlacesItemsLeftToRight reproduces a basic row-flex layout
// scenario end to end: parse, cascade, and lay out a flex container with
// two fixed-width children.
func TestFlexRowPlacesItemsLeftToRight(t *testing.T) {
	html := `
<html><body>
<div id="row" style="display:flex; flex-direction:row;">
  <div id="a" style="width:100px; height:50px;"></div>
  <div id="b" style="width:150px; height:50px;"></div>
</div>
</body></html>`

	root := dom.ParseHTML(html)
	stylesheets := css.ExtractStylesheets(root)
	css.ApplyStylesToTree(root, stylesheets)
	result := BuildLayoutTree(root, 800, stylesheets)

	row := result.FindByID("row")
	assert.NotNil(t, row)
	assert.Len(t, row.Children, 2)

	a := row.FindByID("a")
	b := row.FindByID("b")
	assert.NotNil(t, a)
	assert.NotNil(t, b)

	assert.InDelta(t, 100.0, a.Width, 0.5)
	assert.InDelta(t, 150.0, b.Width, 0.5)
	assert.Equal(t, 0.0, a.X)
	assert.InDelta(t, a.Width, b.X, 0.5)
}

// TestFlexColumnExcludesAbsolutelyPositionedChild verifies that a
// position:absolute child is removed from normal flex flow entirely: it
// still appears in the tree (painted out-of-flow) but does not occupy a
// flex slot alongside its siblings.
func TestFlexColumnExcludesAbsolutelyPositionedChild(t *testing.T) {
	html := `
<html><body>
<div id="col" style="display:flex; flex-direction:column;">
  <div id="a" style="width:50px; height:40px;"></div>
  <div id="floater" style="position:absolute; width:20px; height:20px;"></div>
  <div id="b" style="width:50px; height:40px;"></div>
</div>
</body></html>`

	root := dom.ParseHTML(html)
	stylesheets := css.ExtractStylesheets(root)
	css.ApplyStylesToTree(root, stylesheets)
	result := BuildLayoutTree(root, 400, stylesheets)

	col := result.FindByID("col")
	assert.NotNil(t, col)

	a := col.FindByID("a")
	b := col.FindByID("b")
	floater := col.FindByID("floater")
	assert.NotNil(t, a)
	assert.NotNil(t, b)
	assert.NotNil(t, floater)

	// b stacks directly under a in the column's main axis: the
	// out-of-flow floater must not have consumed any main-axis space
	// between them.
	assert.InDelta(t, a.Y+a.Height, b.Y, 0.5)
}

// TestFormControlsGetIntrinsicSizes checks that <input> and <button>
// elements are sized from the form-control intrinsic formulas instead
// of falling through to the generic block/inline path with zero size.
func TestFormControlsGetIntrinsicSizes(t *testing.T) {
	html := `
<html><body>
<input id="name" type="text">
<button id="go">Go</button>
</body></html>`

	root := dom.ParseHTML(html)
	stylesheets := css.ExtractStylesheets(root)
	css.ApplyStylesToTree(root, stylesheets)
	result := BuildLayoutTree(root, 800, stylesheets)

	input := result.FindByID("name")
	button := result.FindByID("go")
	assert.NotNil(t, input)
	assert.NotNil(t, button)

	assert.Greater(t, input.Width, 0.0)
	assert.Greater(t, input.Height, 0.0)
	assert.Greater(t, button.Width, 0.0)
	assert.Greater(t, button.Height, 0.0)
}

// TestAdjoiningBlockMarginsCollapse reproduces the classic CSS 2.1
// §8.3.1 case: two sibling paragraphs' adjoining margins collapse to
// the larger of the two rather than summing.
func TestAdjoiningBlockMarginsCollapse(t *testing.T) {
	// blockquote carries no structural default spacing in this engine
	// (unlike p/div), isolating the margin math from that unrelated
	// layout constant.
	html := `
<html><body>
<blockquote id="first" style="margin-top:10px; margin-bottom:30px;">one</blockquote>
<blockquote id="second" style="margin-top:10px; margin-bottom:10px;">two</blockquote>
</body></html>`

	root := dom.ParseHTML(html)
	stylesheets := css.ExtractStylesheets(root)
	css.ApplyStylesToTree(root, stylesheets)
	result := BuildLayoutTree(root, 800, stylesheets)

	first := result.FindByID("first")
	second := result.FindByID("second")
	assert.NotNil(t, first)
	assert.NotNil(t, second)

	gap := second.Y - (first.Y + first.Height)
	// Collapsed margin is max(30, 10) = 30, not 30+10 = 40.
	assert.InDelta(t, 30.0, gap, 1.0)
}
