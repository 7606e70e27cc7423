package browser

import "context"

// StaticQuerier always reports the same tabs. The CLI uses it when the page
// to capture is given on the command line.
type StaticQuerier struct {
	Tabs []Tab
}

func (q StaticQuerier) QueryActiveTabs(ctx context.Context) ([]Tab, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	out := make([]Tab, len(q.Tabs))
	copy(out, q.Tabs)
	return out, nil
}
