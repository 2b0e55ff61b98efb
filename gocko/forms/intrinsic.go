package forms

import "strings"

// Kind identifies the intrinsic sizing family a form control belongs
// to, independent of the FormComponent/TagHandler rendering hierarchies.
type Kind int

const (
	KindTextInput Kind = iota
	KindTextArea
	KindButton
	KindCheckbox
	KindRadio
	KindSelect
)

// TextAreaDims carries the rows/cols attributes a <textarea> needs for
// its sizing formula; other kinds ignore it.
type TextAreaDims struct {
	Rows, Cols int
}

// KindForNode classifies a DOM element as a form-control Kind from its
// tag and (for <input>) its type attribute. ok is false for anything
// that isn't a recognized form control.
func KindForNode(tag, typeAttr string) (Kind, bool) {
	switch strings.ToLower(tag) {
	case "textarea":
		return KindTextArea, true
	case "button":
		return KindButton, true
	case "select":
		return KindSelect, true
	case "input":
		switch strings.ToLower(typeAttr) {
		case "checkbox":
			return KindCheckbox, true
		case "radio":
			return KindRadio, true
		case "submit", "reset", "button":
			return KindButton, true
		default:
			return KindTextInput, true
		}
	}
	return 0, false
}

// RowMainSize computes a form control's intrinsic main-axis size when
// laid out as a row (main axis = horizontal), per the form-control
// sizing formulas: f is the element's font size in pixels, label is
// the visible text for buttons, and dims carries textarea rows/cols.
func RowMainSize(kind Kind, f float64, label string, dims TextAreaDims) float64 {
	switch kind {
	case KindTextInput:
		return f * 12
	case KindTextArea:
		cols := dims.Cols
		if cols < 20 {
			cols = 20
		}
		return f * 0.6 * float64(cols)
	case KindButton:
		return float64(len([]rune(label)))*f*0.6 + 24
	case KindCheckbox, KindRadio:
		return f * 1.2
	case KindSelect:
		return f * 10
	}
	return 0
}

// ColumnMainSize computes a form control's intrinsic main-axis size
// when laid out as a column (main axis = vertical). It doubles as the
// cross-axis formula for a row-main container (§4.4.2: the two
// formulas are each other's cross-axis counterpart).
func ColumnMainSize(kind Kind, f float64, label string, dims TextAreaDims) float64 {
	switch kind {
	case KindTextInput:
		return f*1.5 + 8
	case KindTextArea:
		rows := dims.Rows
		if rows < 2 {
			rows = 2
		}
		return f*1.2*float64(rows) + 8
	case KindButton:
		return f*1.5 + 12
	case KindCheckbox, KindRadio:
		return f * 1.2
	case KindSelect:
		return f*1.5 + 8
	}
	return 0
}
