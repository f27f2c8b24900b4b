package datastore

// sliceCursor adapts a materialized result set to the engine.Cursor
// interface. Used when scrolling is disabled on the store.
type sliceCursor struct {
	objs []any
	pos  int
}

func newSliceCursor(objs []any) *sliceCursor {
	return &sliceCursor{objs: objs, pos: -1}
}

func (c *sliceCursor) Next() bool {
	if c.pos+1 >= len(c.objs) {
		return false
	}
	c.pos++
	return true
}

func (c *sliceCursor) Entity() any {
	if c.pos < 0 || c.pos >= len(c.objs) {
		return nil
	}
	return c.objs[c.pos]
}

func (c *sliceCursor) Rewind() error {
	c.pos = -1
	return nil
}

func (c *sliceCursor) Err() error {
	return nil
}

func (c *sliceCursor) Close() error {
	c.objs = nil
	c.pos = -1
	return nil
}
