package scorer

import "bytes"

// capture accumulates a stream in arrival order up to max bytes. Past the cap it keeps
// accepting writes so the child never blocks on a full pipe, and records the overflow
type capture struct {
	buf      bytes.Buffer
	max      int64
	overflow bool
}

func (c *capture) Write(p []byte) (int, error) {
	if c.max <= 0 {
		return c.buf.Write(p)
	}
	room := c.max - int64(c.buf.Len())
	if room <= 0 {
		c.overflow = c.overflow || len(p) > 0
		return len(p), nil
	}
	if int64(len(p)) > room {
		c.buf.Write(p[:room])
		c.overflow = true
		return len(p), nil
	}
	return c.buf.Write(p)
}

func (c *capture) Bytes() []byte { return c.buf.Bytes() }
