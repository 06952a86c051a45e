// Package emit serializes a compiled dcr.Graph to the DCR-JS XML
// interchange format: a <dcrgraph> root holding a <specification> of
// static structure and a <runtime> of the initial marking.
package emit

import (
	"bytes"
	"encoding/xml"
	"sort"
	"strconv"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/dcr"
)

type dcrGraphXML struct {
	XMLName       xml.Name         `xml:"dcrgraph"`
	Specification specificationXML `xml:"specification"`
	Runtime       runtimeXML       `xml:"runtime"`
}

type specificationXML struct {
	Resources   resourcesXML   `xml:"resources"`
	Constraints constraintsXML `xml:"constraints"`
}

type resourcesXML struct {
	Events           eventsXML           `xml:"events"`
	Labels           labelsXML           `xml:"labels"`
	LabelMappings    labelMappingsXML    `xml:"labelMappings"`
	SubProcesses     struct{}            `xml:"subProcesses"`
	Variables        struct{}            `xml:"variables"`
	Expressions      struct{}            `xml:"expressions"`
	VariableAccesses variableAccessesXML `xml:"variableAccesses"`
}

type variableAccessesXML struct {
	ReadAccesses  struct{} `xml:"readAccessess"`
	WriteAccesses struct{} `xml:"writeAccessess"`
}

type labelsXML struct {
	Label []labelXML `xml:"label"`
}

type labelXML struct {
	ID string `xml:"id,attr"`
}

type labelMappingsXML struct {
	LabelMapping []labelMappingXML `xml:"labelMapping"`
}

type labelMappingXML struct {
	EventID string `xml:"eventId,attr"`
	LabelID string `xml:"labelId,attr"`
}

type eventsXML struct {
	Event []eventXML `xml:"event"`
}

type eventXML struct {
	ID     string              `xml:"id,attr"`
	Custom customVisualization `xml:"custom"`
}

type customVisualization struct {
	Visualization visualizationXML `xml:"visualization"`
}

type visualizationXML struct {
	Location locationXML `xml:"location"`
	Size     sizeXML     `xml:"size"`
}

type locationXML struct {
	XLoc string `xml:"xLoc,attr"`
	YLoc string `xml:"yLoc,attr"`
}

type sizeXML struct {
	Width  string `xml:"width,attr"`
	Height string `xml:"height,attr"`
}

type constraintsXML struct {
	Conditions  relationGroupXML `xml:"conditions"`
	Responses   relationGroupXML `xml:"responses"`
	Includes    relationGroupXML `xml:"includes"`
	Excludes    relationGroupXML `xml:"excludes"`
	Coresponces struct{}         `xml:"coresponces"`
	Milestones  struct{}         `xml:"milestones"`
	Updates     struct{}         `xml:"updates"`
	Spawns      struct{}         `xml:"spawns"`
}

// relationGroupXML holds the relations for one constraints/<kind>
// bucket. The element name of each entry is set dynamically through
// relationXML.XMLName, since encoding/xml can't vary a slice's element
// tag by field alone when the same relationXML shape is reused across
// conditions/responses/includes/excludes.
type relationGroupXML struct {
	Relations []relationXML
}

func (g relationGroupXML) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, r := range g.Relations {
		if err := e.Encode(r); err != nil {
			return err
		}
	}
	return e.EncodeToken(start.End())
}

type relationXML struct {
	XMLName  xml.Name
	SourceID string            `xml:"sourceId,attr"`
	TargetID string            `xml:"targetId,attr"`
	Custom   relationCustomXML `xml:"custom"`
}

type relationCustomXML struct {
	Waypoints struct{}      `xml:"waypoints"`
	ID        relationIDXML `xml:"id"`
}

type relationIDXML struct {
	ID string `xml:"id,attr"`
}

type runtimeXML struct {
	Marking markingXML `xml:"marking"`
}

type markingXML struct {
	Executed         eventRefListXML `xml:"executed"`
	Included         eventRefListXML `xml:"included"`
	PendingResponses eventRefListXML `xml:"pendingResponses"`
	GlobalStore      struct{}        `xml:"globalStore"`
}

type eventRefListXML struct {
	Events []eventRefXML `xml:"event"`
}

type eventRefXML struct {
	ID string `xml:"id,attr"`
}

const (
	startX, startY = 100, 100
	stepX, stepY   = 180, 200
	maxX           = 900
)

// Marshal renders g as pretty-printed DCR-JS XML, byte for byte
// reproducing the reference serializer's element order, visualization
// grid layout, and sequential Relation_<n> custom ids.
func Marshal(g *dcr.Graph) ([]byte, error) {
	doc := dcrGraphXML{
		Specification: buildSpecification(g),
		Runtime:       buildRuntime(g),
	}

	var buf bytes.Buffer
	buf.WriteString(xml.Header)
	enc := xml.NewEncoder(&buf)
	enc.Indent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func buildSpecification(g *dcr.Graph) specificationXML {
	labelSet := make(map[string]bool)
	events := make([]eventXML, 0, len(g.EventOrder))
	mappings := make([]labelMappingXML, 0, len(g.EventOrder))

	x, y := startX, startY
	for _, id := range g.EventOrder {
		ev := g.Events[id]
		labelSet[ev.Label] = true

		events = append(events, eventXML{
			ID: ev.ID,
			Custom: customVisualization{
				Visualization: visualizationXML{
					Location: locationXML{XLoc: strconv.Itoa(x), YLoc: strconv.Itoa(y)},
					Size:     sizeXML{Width: "130", Height: "150"},
				},
			},
		})
		mappings = append(mappings, labelMappingXML{EventID: ev.ID, LabelID: ev.Label})

		x += stepX
		if x > maxX {
			x = startX
			y += stepY
		}
	}

	labels := make([]string, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	labelEls := make([]labelXML, 0, len(labels))
	for _, l := range labels {
		labelEls = append(labelEls, labelXML{ID: l})
	}

	conditions, responses, includes, excludes := buildConstraints(g)

	return specificationXML{
		Resources: resourcesXML{
			Events:        eventsXML{Event: events},
			Labels:        labelsXML{Label: labelEls},
			LabelMappings: labelMappingsXML{LabelMapping: mappings},
		},
		Constraints: constraintsXML{
			Conditions: conditions,
			Responses:  responses,
			Includes:   includes,
			Excludes:   excludes,
		},
	}
}

func buildConstraints(g *dcr.Graph) (conditions, responses, includes, excludes relationGroupXML) {
	counter := 1
	for _, r := range g.Relations {
		var name string
		switch r.Kind {
		case dcr.Condition:
			name = "condition"
		case dcr.Response:
			name = "response"
		case dcr.Include:
			name = "include"
		case dcr.Exclude:
			name = "exclude"
		default:
			continue
		}

		rel := relationXML{
			XMLName:  xml.Name{Local: name},
			SourceID: r.Source,
			TargetID: r.Target,
			Custom: relationCustomXML{
				ID: relationIDXML{ID: "Relation_" + strconv.Itoa(counter)},
			},
		}
		counter++

		switch r.Kind {
		case dcr.Condition:
			conditions.Relations = append(conditions.Relations, rel)
		case dcr.Response:
			responses.Relations = append(responses.Relations, rel)
		case dcr.Include:
			includes.Relations = append(includes.Relations, rel)
		case dcr.Exclude:
			excludes.Relations = append(excludes.Relations, rel)
		}
	}
	return
}

func buildRuntime(g *dcr.Graph) runtimeXML {
	var executed, included, pending []eventRefXML
	for _, id := range g.EventOrder {
		ev := g.Events[id]
		if ev.Marking.Executed {
			executed = append(executed, eventRefXML{ID: ev.ID})
		}
		if ev.Marking.Included {
			included = append(included, eventRefXML{ID: ev.ID})
		}
		if ev.Marking.Pending {
			pending = append(pending, eventRefXML{ID: ev.ID})
		}
	}
	return runtimeXML{Marking: markingXML{
		Executed:         eventRefListXML{Events: executed},
		Included:         eventRefListXML{Events: included},
		PendingResponses: eventRefListXML{Events: pending},
	}}
}
