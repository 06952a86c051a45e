package dcr

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddRelation_DeduplicatesByKindSourceTarget(t *testing.T) {
	g := NewGraph("p1")

	added := g.AddRelation(&Relation{Kind: Include, Source: "a", Target: "b"})
	assert.True(t, added)

	added = g.AddRelation(&Relation{Kind: Include, Source: "a", Target: "b"})
	assert.False(t, added)
	assert.Len(t, g.Relations, 1)

	// Same endpoints, different kind: not a duplicate.
	added = g.AddRelation(&Relation{Kind: Response, Source: "a", Target: "b"})
	assert.True(t, added)
	assert.Len(t, g.Relations, 2)
}

func TestAddEvent_PreservesInsertionOrder(t *testing.T) {
	g := NewGraph("p1")
	g.AddEvent(&Event{ID: "b"})
	g.AddEvent(&Event{ID: "a"})
	g.AddEvent(&Event{ID: "b"}) // re-add: overwrites, doesn't move

	assert.Equal(t, []string{"b", "a"}, g.EventOrder)
}
