// Package picker models the autocomplete widget: a dropdown with a
// single active item driven by keyboard, single- and multi-select commit
// behavior, and a debounced remote source with cancel-then-replace.
package picker

// Item is one label/value entry of the dropdown.
type Item struct {
	ID    string
	Label string
}

// Mode selects the commit behavior.
type Mode int

const (
	// ModeSingle sets the underlying control's value on commit.
	ModeSingle Mode = iota
	// ModeMulti adds the committed item to the selected set and clears
	// the filter.
	ModeMulti
)

// Picker is the widget state of one autocomplete control.
type Picker struct {
	mode     Mode
	attached bool

	filter   string
	items    []Item
	active   int
	open     bool

	value    Item
	selected []Item

	onChange func(Item)
}

// Option configures a Picker.
type Option func(*Picker)

// WithChangeFunc sets the change notification fired on single-mode commit.
func WithChangeFunc(fn func(Item)) Option {
	return func(p *Picker) { p.onChange = fn }
}

// New creates a picker in the given mode.
func New(mode Mode, opts ...Option) *Picker {
	p := &Picker{mode: mode}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Attach marks the picker as bound to its control. Attaching twice is a
// no-op; the return value reports whether this call did the binding.
func (p *Picker) Attach() bool {
	if p.attached {
		return false
	}
	p.attached = true
	return true
}

// SetFilter records the current filter text.
func (p *Picker) SetFilter(q string) {
	p.filter = q
}

// Filter returns the current filter text.
func (p *Picker) Filter() string {
	return p.filter
}

// SetItems opens the dropdown with the given items. An empty list closes
// it.
func (p *Picker) SetItems(items []Item) {
	p.items = items
	p.active = 0
	p.open = len(items) > 0
}

// IsOpen reports whether the dropdown is showing.
func (p *Picker) IsOpen() bool {
	return p.open
}

// Active returns the index of the active item, -1 when closed.
func (p *Picker) Active() int {
	if !p.open {
		return -1
	}
	return p.active
}

// MoveDown moves the active index down, clamped to the last item.
func (p *Picker) MoveDown() {
	if !p.open {
		return
	}
	if p.active < len(p.items)-1 {
		p.active++
	}
}

// MoveUp moves the active index up, clamped to the first item.
func (p *Picker) MoveUp() {
	if !p.open {
		return
	}
	if p.active > 0 {
		p.active--
	}
}

// Clear closes the dropdown (Escape or a click outside the widget).
func (p *Picker) Clear() {
	p.items = nil
	p.active = 0
	p.open = false
}

// Commit commits the active item and closes the dropdown. The second
// return is false when there was nothing to commit, or when a multi-mode
// re-selection was ignored as a no-op.
func (p *Picker) Commit() (Item, bool) {
	if !p.open || p.active >= len(p.items) {
		return Item{}, false
	}
	item := p.items[p.active]
	p.Clear()

	switch p.mode {
	case ModeSingle:
		p.value = item
		if p.onChange != nil {
			p.onChange(item)
		}
	case ModeMulti:
		for _, sel := range p.selected {
			if sel.ID == item.ID {
				return item, false
			}
		}
		p.selected = append(p.selected, item)
		p.filter = ""
	}
	return item, true
}

// Value returns the committed value in single mode.
func (p *Picker) Value() Item {
	return p.value
}

// Selected returns the selected items in multi mode, in commit order.
func (p *Picker) Selected() []Item {
	out := make([]Item, len(p.selected))
	copy(out, p.selected)
	return out
}
