package main

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/a-h/templ"
	"github.com/pthm/hxfrp"
	"github.com/pthm/hxfrp/lib/stream"
)

var catalog = []string{
	"Alien",
	"Amelie",
	"Blade Runner",
	"Brazil",
	"Casablanca",
	"Chinatown",
	"Heat",
	"Jaws",
	"Metropolis",
	"Paris, Texas",
	"Stalker",
	"Star Wars",
	"The Third Man",
	"Vertigo",
}

// searchScope holds the streams of the search box that are read before
// they can be defined.
type searchScope struct {
	HasFocus hxfrp.Field[bool]
	Reset    hxfrp.Field[struct{}]
}

type summaryProps struct {
	Shown int
	Total int
}

// searchPage builds the demo tree: a search input that widens while
// focused, a clear button shown while it has text, a result count and the
// matching titles.
func searchPage(titles []string) func(h hxfrp.Host) hxfrp.Fragments {
	return func(h hxfrp.Host) hxfrp.Fragments {
		return hxfrp.Mdo(func(b *hxfrp.Binder) struct{} {
			query := hxfrp.Bind(b, searchInput(h))
			matches := stream.Map(query, func(q string) []string { return filter(titles, q) })

			summary, _ := hxfrp.ToComponent(h, func(p stream.Observable[summaryProps]) hxfrp.M[struct{}] {
				return hxfrp.El(h, "p", hxfrp.Attrs(templ.Attributes{"class": "summary"}),
					hxfrp.DynText(h, stream.Map(p, func(s summaryProps) string {
						return fmt.Sprintf("%d of %d titles", s.Shown, s.Total)
					})))
			})
			hxfrp.Bind(b, hxfrp.Dyn(stream.Map(matches, func(ms []string) hxfrp.M[struct{}] {
				node := summary(summaryProps{Shown: len(ms), Total: len(titles)})
				return hxfrp.M[struct{}]{Fragments: stream.Of([]hxfrp.Node{node})}
			})))

			hxfrp.Bind(b, hxfrp.El(h, "ul", hxfrp.Attrs(templ.Attributes{"class": "results"}),
				hxfrp.List(matches, func(title string) hxfrp.M[struct{}] {
					return hxfrp.El(h, "li", nil, hxfrp.Text(h, title))
				})))
			return struct{}{}
		}).Fragments
	}
}

// searchInput renders the labelled input and returns its value stream.
func searchInput(h hxfrp.Host) hxfrp.M[stream.Observable[string]] {
	label := hxfrp.Attrs(templ.Attributes{"class": "search"})
	return hxfrp.ElBlock(h, "label", label, func(b *hxfrp.Binder) stream.Observable[string] {
		return hxfrp.Rec(func(s *searchScope) stream.Observable[string] {
			attrs := stream.Map(s.HasFocus.Stream(), func(open bool) templ.Attributes {
				a := templ.Attributes{"class": "search-input", "autocomplete": "off"}
				if open {
					a["class"] = "search-input open"
					a["placeholder"] = "Search for media..."
				}
				return a
			})
			in := hxfrp.Bind(b, hxfrp.TextInput(h, hxfrp.TextInputConfig{
				SetValue:   stream.MapTo(s.Reset.Stream(), ""),
				Attributes: attrs,
			}))
			s.HasFocus.Feed(in.HasFocus)

			push, clicks := stream.MakeStream[struct{}]()
			s.Reset.Feed(clicks)

			// Shown only while there is something to clear.
			hxfrp.Bind(b, hxfrp.Dyn(stream.Map(in.Value, func(v string) hxfrp.M[struct{}] {
				if v == "" {
					return hxfrp.Pure(struct{}{})
				}
				return button(h, "clear", push)
			})))
			return in.Value
		})
	})
}

// button renders a clickable element that calls onClick for every click
// while it is mounted.
func button(h hxfrp.Host, label string, onClick func(struct{})) hxfrp.M[struct{}] {
	frags := stream.New(func(o stream.Observer[[]hxfrp.Node]) func() {
		wiring, release := h.On([]string{hxfrp.EventClick}, func(hxfrp.Event) { onClick(struct{}{}) })
		attrs := templ.Attributes{"type": "button", "class": "clear"}
		for k, v := range wiring {
			attrs[k] = v
		}
		o.Next([]hxfrp.Node{h.Element("button", attrs, []hxfrp.Node{h.Text(label)})})
		return release
	})
	return hxfrp.M[struct{}]{Fragments: stream.ShareReplay(frags, 1)}
}

func filter(titles []string, query string) []string {
	q := strings.ToLower(strings.TrimSpace(query))
	out := make([]string, 0, len(titles))
	for _, t := range titles {
		if strings.Contains(strings.ToLower(t), q) {
			out = append(out, t)
		}
	}
	return out
}

// layout wraps a session root in a page that loads HTMX.
func layout(root templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		if _, err := io.WriteString(w, pageHead); err != nil {
			return err
		}
		if err := root.Render(ctx, w); err != nil {
			return err
		}
		_, err := io.WriteString(w, pageFoot)
		return err
	})
}

const pageHead = `<!DOCTYPE html>
<html lang="en">
<head>
<meta charset="utf-8">
<title>hxfrp search</title>
<script src="https://unpkg.com/htmx.org@2.0.4"></script>
<style>
body { font-family: sans-serif; margin: 2rem; }
.search-input { width: 5rem; transition: width .2s; }
.search-input.open { width: 14rem; }
.summary { color: #666; }
</style>
</head>
<body>
`

const pageFoot = `
</body>
</html>
`
