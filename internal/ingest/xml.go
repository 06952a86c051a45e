// Package ingest reads a BPMN 2.0 XML document into the raw bpmn.Process
// graph that the Normalizer/Namer and Gateway Pairing & Validator then
// operate on. Parsing only recognizes the element shapes this compiler
// supports: tasks, start/end events, the three gateway kinds (accepting
// both the lower- and upper-camel-case tag spellings seen in the wild),
// and sequence flows.
package ingest

import (
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/bpmn"
)

var validate = validator.New()

type rawFlow struct {
	ID     string `validate:"required"`
	Source string `validate:"required"`
	Target string `validate:"required"`
}

// rawElement is every task/event/gateway's shared attribute shape, used
// only to catch a missing id before it produces confusing downstream
// failures (a gateway or task with no id can never be wired into a
// flow, and R1-R4 would otherwise report it as a dangling object with
// an empty name instead of the real problem).
type rawElement struct {
	ID string `validate:"required"`
}

// ParseProcess streams r as BPMN XML and builds the raw (unvalidated,
// unnamed) process graph. It deliberately ignores namespace prefixes
// and matches purely on local element names, since real-world BPMN
// exports vary the bpmn: prefix and some tools drop it entirely.
func ParseProcess(r io.Reader) (*bpmn.Process, error) {
	dec := xml.NewDecoder(r)

	var proc *bpmn.Process
	var flows []rawFlow

	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("bpmn: malformed xml: %w", err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}

		switch {
		case start.Name.Local == "process":
			id := attrValue(start, "id")
			if err := validate.Struct(rawElement{ID: id}); err != nil {
				return nil, fmt.Errorf("bpmn: process element missing id: %w", err)
			}
			proc = bpmn.NewProcess(id)
		case proc == nil:
			// Anything before the <process> element (bpmn:definitions,
			// bpmn:collaboration, bpmn:participant) carries no graph data
			// we use.
			continue
		case start.Name.Local == "task":
			id, err := requiredID(start)
			if err != nil {
				return nil, err
			}
			proc.AddObject(&bpmn.Object{
				ID: id, Kind: bpmn.KindTask, DisplayName: attrValue(start, "name"),
			})
		case start.Name.Local == "startEvent":
			id, err := requiredID(start)
			if err != nil {
				return nil, err
			}
			proc.AddObject(&bpmn.Object{
				ID: id, Kind: bpmn.KindEvent, EventKind: bpmn.StartEvent, DisplayName: attrValue(start, "name"),
			})
		case start.Name.Local == "endEvent":
			id, err := requiredID(start)
			if err != nil {
				return nil, err
			}
			proc.AddObject(&bpmn.Object{
				ID: id, Kind: bpmn.KindEvent, EventKind: bpmn.EndEvent, DisplayName: attrValue(start, "name"),
			})
		case gatewayKind(start.Name.Local) != "":
			id, err := requiredID(start)
			if err != nil {
				return nil, err
			}
			proc.AddObject(&bpmn.Object{
				ID: id, Kind: bpmn.KindGateway, GatewayKind: gatewayKind(start.Name.Local), DisplayName: attrValue(start, "name"),
			})
		case start.Name.Local == "sequenceFlow":
			f := rawFlow{
				ID:     attrValue(start, "id"),
				Source: attrValue(start, "sourceRef"),
				Target: attrValue(start, "targetRef"),
			}
			if err := validate.Struct(f); err != nil {
				return nil, fmt.Errorf("bpmn: sequenceFlow missing id/sourceRef/targetRef: %w", err)
			}
			flows = append(flows, f)
		}
	}

	if proc == nil {
		return nil, fmt.Errorf("bpmn: no <process> element found in document")
	}

	for _, f := range flows {
		proc.AddFlow(&bpmn.Flow{ID: f.ID, Source: f.Source, Target: f.Target})
	}
	return proc, nil
}

func requiredID(start xml.StartElement) (string, error) {
	id := attrValue(start, "id")
	if err := validate.Struct(rawElement{ID: id}); err != nil {
		return "", fmt.Errorf("bpmn: <%s> element missing id: %w", start.Name.Local, err)
	}
	return id, nil
}

func attrValue(start xml.StartElement, name string) string {
	for _, a := range start.Attr {
		if a.Name.Local == name {
			return a.Value
		}
	}
	return ""
}

func gatewayKind(local string) bpmn.GatewayKind {
	switch strings.ToLower(local) {
	case "exclusivegateway":
		return bpmn.Exclusive
	case "parallelgateway":
		return bpmn.Parallel
	case "inclusivegateway":
		return bpmn.Inclusive
	default:
		return ""
	}
}
