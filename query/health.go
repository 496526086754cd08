package query

import (
	"context"
	"strconv"

	"github.com/kbukum/streamkit/observability"
	"github.com/kbukum/streamkit/util"
)

// CheckHealth reports the state of the sources. An absent or empty source
// is down, a source with null elements is degraded. Each non-empty source
// also reports its digest under "<source>.digest".
func (l *Library) CheckHealth(_ context.Context) observability.Health {
	h := observability.Health{
		Name:    "query",
		Status:  observability.HealthStatusUp,
		Details: make(map[string]string, 6),
	}

	report := func(name string, exists bool, size int, hasNull bool, digest func() string) {
		if size > 0 {
			h.Details[name+".digest"] = digest()
		}
		switch {
		case !exists:
			h.Details[name] = "absent"
			h.Status = observability.HealthStatusDown
			h.Message = name + " collection is absent"
		case size == 0:
			h.Details[name] = "empty"
			h.Status = observability.HealthStatusDown
			h.Message = name + " collection is empty"
		case hasNull:
			h.Details[name] = strconv.Itoa(size) + " elements, some null"
			if h.Status == observability.HealthStatusUp {
				h.Status = observability.HealthStatusDegraded
				h.Message = name + " collection contains null elements"
			}
		default:
			h.Details[name] = strconv.Itoa(size) + " elements"
		}
	}

	report(SourceFruits, l.fruits != nil, len(l.fruits), util.HasNil([]*string(l.fruits)), l.fruits.Digest)
	report(SourceVeggies, l.veggies != nil, len(l.veggies), util.HasNil([]*string(l.veggies)), l.veggies.Digest)
	report(SourceIntegers, l.integers != nil, len(l.integers), util.HasNil([]*int(l.integers)), l.integers.Digest)
	return h
}
