package hxfrp

import (
	"net/url"
	"strings"

	"github.com/a-h/templ"
)

// Form fields an event post carries.
const (
	fieldEvent = "hxfrp-e"
	fieldValue = "hxfrp-v"
	fieldKey   = "hxfrp-k"
)

// eventVals is evaluated by HTMX in the browser when the element fires.
const eventVals = `js:{"` + fieldEvent + `": event.type, "` + fieldValue + `": event.target.value, "` + fieldKey + `": event.keyCode || 0}`

// WireAttrs builds the HTMX attributes that post the named events of an
// element to path, carrying token and the event's type, target value and
// key code.
//
// Requests from one element are queued so events arrive in the order they
// fired. target is the id of the element the response replaces; empty
// leaves hx-target unset. An empty swap leaves hx-swap unset.
func WireAttrs(path, token string, events []string, target string, swap SwapMode) templ.Attributes {
	attrs := templ.Attributes{
		"hx-post":    path + "?t=" + url.QueryEscape(token),
		"hx-trigger": strings.Join(events, ", "),
		"hx-sync":    "this:queue all",
		"hx-vals":    eventVals,
	}
	if target != "" {
		attrs["hx-target"] = "#" + target
	}
	if swap != "" {
		attrs["hx-swap"] = string(swap)
	}
	return attrs
}
