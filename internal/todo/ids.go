package todo

// idGenerator hands out time-derived ids (milliseconds since epoch) that are
// strictly increasing, so two tasks created in the same millisecond still get
// distinct ids.
type idGenerator struct {
	last int64
}

// observe raises the floor so ids never repeat one already in use.
func (g *idGenerator) observe(id int64) {
	if id > g.last {
		g.last = id
	}
}

func (g *idGenerator) next(nowMillis int64) int64 {
	id := nowMillis
	if id <= g.last {
		id = g.last + 1
	}
	g.last = id
	return id
}
