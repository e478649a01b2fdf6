package hxfrp

// SwapMode defines HTMX swap strategies for how an event response replaces
// the session root.
//
// See https://htmx.org/attributes/hx-swap/ for visual examples.
type SwapMode string

const (
	// SwapOuter replaces the entire root element including its tag (outerHTML).
	// This is the default swap mode.
	SwapOuter SwapMode = "outerHTML"

	// SwapInner replaces only the root's contents, preserving the outer tag (innerHTML).
	// Event responses then carry the root's content without the root element.
	SwapInner SwapMode = "innerHTML"

	// SwapMorph morphs the root in place with the idiomorph extension,
	// which keeps focus and caret position in text inputs. The page must load
	// idiomorph-ext and enable it with hx-ext="morph"; without it HTMX
	// rejects the swap style.
	SwapMorph SwapMode = "morph:outerHTML"

	// SwapNone performs no swap - response is discarded.
	// Useful when events only feed server-side state.
	SwapNone SwapMode = "none"
)
