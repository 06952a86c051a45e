package emit

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/dcr"
)

func TestMarshal_BasicShape(t *testing.T) {
	g := dcr.NewGraph("p1")
	g.AddEvent(&dcr.Event{ID: "start", Label: "Start Event", Marking: dcr.Marking{Included: true, Pending: true}})
	g.AddEvent(&dcr.Event{ID: "t1", Label: "Do Work"})
	g.AddRelation(&dcr.Relation{Kind: dcr.Exclude, Source: "start", Target: "start"})
	g.AddRelation(&dcr.Relation{Kind: dcr.Response, Source: "start", Target: "t1"})
	g.AddRelation(&dcr.Relation{Kind: dcr.Include, Source: "start", Target: "t1"})

	out, err := Marshal(g)
	require.NoError(t, err)
	xmlStr := string(out)

	assert.True(t, strings.HasPrefix(xmlStr, `<?xml version="1.0" encoding="UTF-8"?>`))
	assert.Contains(t, xmlStr, `<dcrgraph>`)
	assert.Contains(t, xmlStr, `<event id="start">`)
	assert.Contains(t, xmlStr, `<event id="t1">`)
	assert.Contains(t, xmlStr, `<label id="Do Work">`)
	assert.Contains(t, xmlStr, `<response sourceId="start" targetId="t1">`)
	assert.Contains(t, xmlStr, `<exclude sourceId="start" targetId="start">`)
	assert.Contains(t, xmlStr, `Relation_1`)
	assert.Contains(t, xmlStr, `Relation_2`)
	assert.Contains(t, xmlStr, `<included>`)
	assert.Contains(t, xmlStr, `<pendingResponses>`)
}

func TestMarshal_RelationCountersAreSequentialAcrossKinds(t *testing.T) {
	g := dcr.NewGraph("p1")
	g.AddEvent(&dcr.Event{ID: "a"})
	g.AddEvent(&dcr.Event{ID: "b"})
	g.AddRelation(&dcr.Relation{Kind: dcr.Response, Source: "a", Target: "b"})
	g.AddRelation(&dcr.Relation{Kind: dcr.Include, Source: "a", Target: "b"})
	g.AddRelation(&dcr.Relation{Kind: dcr.Exclude, Source: "a", Target: "b"})

	out, err := Marshal(g)
	require.NoError(t, err)
	xmlStr := string(out)

	assert.Contains(t, xmlStr, "Relation_1")
	assert.Contains(t, xmlStr, "Relation_2")
	assert.Contains(t, xmlStr, "Relation_3")
}
