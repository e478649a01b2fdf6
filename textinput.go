package hxfrp

import (
	"github.com/a-h/templ"
	"github.com/pthm/hxfrp/lib/stream"
)

// TextInputConfig configures TextInput. Every field is optional.
type TextInputConfig struct {
	// InitialValue is shown until SetValue emits.
	InitialValue string

	// SetValue overwrites the field's value each time it emits.
	SetValue stream.Observable[string]

	// Attributes are merged into the rendered input. The value attribute
	// and the event wiring always win over entries of the same name.
	// The value attribute follows Value, so a re-render keeps local edits.
	Attributes stream.Observable[templ.Attributes]
}

// TextInputOutputs are the interaction streams of a text input.
type TextInputOutputs struct {
	// Value is the latest of an external SetValue push and a local edit,
	// whichever happened last. It starts with the initial value.
	Value stream.Observable[string]

	// Change carries local edits only.
	Change stream.Observable[string]

	KeyPress stream.Observable[int]
	KeyDown  stream.Observable[int]
	KeyUp    stream.Observable[int]

	// HasFocus starts false and follows focus and blur events.
	HasFocus stream.Observable[bool]
}

var textInputEvents = []string{EventInput, EventKeyPress, EventKeyDown, EventKeyUp, EventFocus, EventBlur}

// TextInput renders a single editable text field and exposes its raw
// interaction streams. It performs no validation or formatting.
//
// Event handlers are registered with h when the fragments are subscribed and
// released when that subscription ends, so a text input inside a Dyn stops
// receiving events as soon as it is replaced.
func TextInput(h Host, cfg TextInputConfig) M[TextInputOutputs] {
	setValue := cfg.SetValue
	if setValue == nil {
		setValue = stream.Never[string]()
	}
	attrs := cfg.Attributes
	if attrs == nil {
		attrs = Attrs(templ.Attributes{})
	}

	var (
		change   = stream.NewSubject[string]()
		keyPress = stream.NewSubject[int]()
		keyDown  = stream.NewSubject[int]()
		keyUp    = stream.NewSubject[int]()
		hasFocus = stream.NewBehaviorSubject(false)
	)
	dispatch := func(ev Event) {
		switch ev.Type {
		case EventInput:
			change.Push(ev.Value)
		case EventKeyPress:
			keyPress.Push(ev.Key)
		case EventKeyDown:
			keyDown.Push(ev.Key)
		case EventKeyUp:
			keyUp.Push(ev.Key)
		case EventFocus:
			hasFocus.Push(true)
		case EventBlur:
			hasFocus.Push(false)
		}
	}

	current := stream.ShareReplay(stream.StartWith(setValue, cfg.InitialValue), 1)
	value := stream.ShareReplay(stream.Merge[string](current, change), 1)

	fragments := stream.New(func(o stream.Observer[[]Node]) func() {
		wiring, release := h.On(textInputEvents, dispatch)
		sub := stream.CombineLatest2(value, attrs, func(v string, a templ.Attributes) []Node {
			merged := make(templ.Attributes, len(a)+len(wiring)+2)
			merged["type"] = "text"
			for k, x := range a {
				merged[k] = x
			}
			merged["value"] = v
			for k, x := range wiring {
				merged[k] = x
			}
			return []Node{h.Element("input", merged, nil)}
		}).Subscribe(o)
		return func() {
			sub.Unsubscribe()
			release()
		}
	})

	return M[TextInputOutputs]{
		Fragments: stream.ShareReplay(fragments, 1),
		Value: TextInputOutputs{
			Value:    value,
			Change:   change,
			KeyPress: keyPress,
			KeyDown:  keyDown,
			KeyUp:    keyUp,
			HasFocus: hasFocus,
		},
	}
}
