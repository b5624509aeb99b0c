package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/a-h/templ"
)

// writer keeps the first write error so markup can be emitted without
// checking every call.
type writer struct {
	w   io.Writer
	err error
}

func (w *writer) raw(s ...string) {
	for _, part := range s {
		if w.err != nil {
			return
		}
		_, w.err = io.WriteString(w.w, part)
	}
}

// text writes s HTML-escaped, safe for element content and quoted attributes.
func (w *writer) text(s string) {
	w.raw(templ.EscapeString(s))
}

func (w *writer) number(n int) {
	w.raw(strconv.Itoa(n))
}

func (w *writer) component(ctx context.Context, c templ.Component) {
	if w.err != nil {
		return
	}
	w.err = c.Render(ctx, w.w)
}

func component(fn func(ctx context.Context, w *writer)) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, out io.Writer) error {
		w := &writer{w: out}
		fn(ctx, w)
		return w.err
	})
}
