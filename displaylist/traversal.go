package displaylist

// DisplayList is the ordered item sequence of one pipeline.
type DisplayList []DisplayItem

// StartingStackingContext returns the stacking context opened by the first
// item together with that item's bounds. The last result is false if the
// list is empty or does not start with a stacking context.
func (dl DisplayList) StartingStackingContext() (*StackingContext, *DisplayItem, bool) {
	if len(dl) == 0 {
		return nil, nil, false
	}
	first := &dl[0]
	push, ok := first.Item.(PushStackingContextItem)
	if !ok {
		return nil, nil, false
	}
	return &push.StackingContext, first, true
}

// Traversal is a forward cursor over a display list.
type Traversal struct {
	list DisplayList
	next int
}

// NewTraversal returns a cursor positioned at the first item.
func NewTraversal(list DisplayList) *Traversal {
	return &Traversal{list: list}
}

// NewTraversalSkippingFirst returns a cursor positioned after the leading
// PushStackingContext item, ready to walk the root context's children.
func NewTraversalSkippingFirst(list DisplayList) *Traversal {
	return &Traversal{list: list, next: 1}
}

// Next returns the next item and advances the cursor, or nil at the end.
func (t *Traversal) Next() *DisplayItem {
	if t.next >= len(t.list) {
		return nil
	}
	item := &t.list[t.next]
	t.next++
	return item
}

// Peek returns the next item without advancing, or nil at the end.
func (t *Traversal) Peek() *DisplayItem {
	if t.next >= len(t.list) {
		return nil
	}
	return &t.list[t.next]
}

// Position returns the index of the next item.
func (t *Traversal) Position() int {
	return t.next
}

// Done reports whether the cursor has consumed every item.
func (t *Traversal) Done() bool {
	return t.next >= len(t.list)
}

// CurrentStackingContextEmpty reports whether the stacking context whose
// push was just consumed has no children: the next item is its pop, or the
// list is exhausted.
func (t *Traversal) CurrentStackingContextEmpty() bool {
	item := t.Peek()
	return item == nil || item.Kind() == KindPopStackingContext
}

// SkipCurrentStackingContext advances past the remainder of the stacking
// context whose push was just consumed, including its matching pop. Nested
// contexts are skipped by balancing pushes and pops.
func (t *Traversal) SkipCurrentStackingContext() {
	depth := 0
	for item := t.Next(); item != nil; item = t.Next() {
		switch item.Kind() {
		case KindPushStackingContext:
			depth++
		case KindPopStackingContext:
			if depth == 0 {
				return
			}
			depth--
		}
	}
}
