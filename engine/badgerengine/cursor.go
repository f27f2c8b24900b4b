package badgerengine

import (
	badger "github.com/dgraph-io/badger/v4"

	"github.com/neogan74/entitystore/engine"
)

// forwardCursor streams results off a badger iterator, decoding one entity
// per Next call. It cannot rewind.
type forwardCursor struct {
	it      *badger.Iterator
	txn     *badger.Txn
	ownTxn  bool
	meta    engine.ClassMetadata
	current any
	started bool
	err     error
	closed  bool
}

func (c *forwardCursor) Next() bool {
	if c.closed || c.err != nil {
		return false
	}
	if c.started {
		c.it.Next()
	}
	c.started = true

	if !c.it.Valid() {
		return false
	}

	err := c.it.Item().Value(func(val []byte) error {
		obj, derr := decode(c.meta, val)
		if derr != nil {
			return derr
		}
		c.current = obj
		return nil
	})
	if err != nil {
		c.err = err
		return false
	}
	return true
}

func (c *forwardCursor) Entity() any {
	return c.current
}

func (c *forwardCursor) Rewind() error {
	return engine.ErrForwardOnly
}

func (c *forwardCursor) Err() error {
	return c.err
}

func (c *forwardCursor) Close() error {
	if c.closed {
		return nil
	}
	c.closed = true
	c.it.Close()
	// Only discard transactions the cursor opened itself; an active session
	// transaction outlives its cursors.
	if c.ownTxn {
		c.txn.Discard()
	}
	return nil
}

// scrollableCursor walks a result set materialized at open time and can be
// rewound to the start.
type scrollableCursor struct {
	objs []any
	pos  int
}

func (c *scrollableCursor) Next() bool {
	if c.pos+1 >= len(c.objs) {
		return false
	}
	c.pos++
	return true
}

func (c *scrollableCursor) Entity() any {
	if c.pos < 0 || c.pos >= len(c.objs) {
		return nil
	}
	return c.objs[c.pos]
}

func (c *scrollableCursor) Rewind() error {
	c.pos = -1
	return nil
}

func (c *scrollableCursor) Err() error {
	return nil
}

func (c *scrollableCursor) Close() error {
	c.objs = nil
	c.pos = -1
	return nil
}
