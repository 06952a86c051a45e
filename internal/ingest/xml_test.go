package ingest

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/bpmn"
)

const straightLineBPMN = `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL">
  <bpmn:process id="proc_1">
    <bpmn:startEvent id="start_1" name="Start"/>
    <bpmn:task id="task_1" name="Do Work"/>
    <bpmn:endEvent id="end_1" name="End"/>
    <bpmn:sequenceFlow id="flow_1" sourceRef="start_1" targetRef="task_1"/>
    <bpmn:sequenceFlow id="flow_2" sourceRef="task_1" targetRef="end_1"/>
  </bpmn:process>
</bpmn:definitions>`

func TestParseProcess_StraightLine(t *testing.T) {
	p, err := ParseProcess(strings.NewReader(straightLineBPMN))
	require.NoError(t, err)

	assert.Equal(t, "proc_1", p.ID)
	require.Contains(t, p.Objects, "start_1")
	require.Contains(t, p.Objects, "task_1")
	require.Contains(t, p.Objects, "end_1")

	assert.Equal(t, bpmn.KindEvent, p.Objects["start_1"].Kind)
	assert.Equal(t, bpmn.StartEvent, p.Objects["start_1"].EventKind)
	assert.Equal(t, bpmn.KindTask, p.Objects["task_1"].Kind)
	assert.Equal(t, "Do Work", p.Objects["task_1"].DisplayName)
	assert.Equal(t, bpmn.KindEvent, p.Objects["end_1"].Kind)
	assert.Equal(t, bpmn.EndEvent, p.Objects["end_1"].EventKind)

	assert.Equal(t, []string{"task_1"}, p.Successors("start_1"))
	assert.Equal(t, []string{"end_1"}, p.Successors("task_1"))
	assert.Equal(t, []string{"start_1"}, p.Predecessors("task_1"))
}

func TestParseProcess_GatewayTagsAreCaseInsensitive(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL">
  <bpmn:process id="proc_1">
    <bpmn:startEvent id="start_1"/>
    <bpmn:exclusiveGateway id="split_1"/>
    <bpmn:EndEvent id="end_1"/>
    <bpmn:task id="ta" name="A"/>
    <bpmn:task id="tb" name="B"/>
    <bpmn:ParallelGateway id="join_1"/>
    <bpmn:sequenceFlow id="f1" sourceRef="start_1" targetRef="split_1"/>
    <bpmn:sequenceFlow id="f2" sourceRef="split_1" targetRef="ta"/>
    <bpmn:sequenceFlow id="f3" sourceRef="split_1" targetRef="tb"/>
    <bpmn:sequenceFlow id="f4" sourceRef="ta" targetRef="join_1"/>
    <bpmn:sequenceFlow id="f5" sourceRef="tb" targetRef="join_1"/>
    <bpmn:sequenceFlow id="f6" sourceRef="join_1" targetRef="end_1"/>
  </bpmn:process>
</bpmn:definitions>`

	p, err := ParseProcess(strings.NewReader(doc))
	require.NoError(t, err)

	require.Contains(t, p.Objects, "split_1")
	assert.Equal(t, bpmn.KindGateway, p.Objects["split_1"].Kind)
	assert.Equal(t, bpmn.Exclusive, p.Objects["split_1"].GatewayKind)

	require.Contains(t, p.Objects, "join_1")
	assert.Equal(t, bpmn.Parallel, p.Objects["join_1"].GatewayKind)
}

func TestParseProcess_FlowsWireBeforeDeclarationOrder(t *testing.T) {
	// The sequenceFlow elements are declared before the task/event they
	// reference, which exercises the two-pass wiring (objects collected
	// first, flows added once the whole document has been scanned).
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL">
  <bpmn:process id="proc_1">
    <bpmn:sequenceFlow id="flow_1" sourceRef="start_1" targetRef="task_1"/>
    <bpmn:startEvent id="start_1"/>
    <bpmn:task id="task_1"/>
  </bpmn:process>
</bpmn:definitions>`

	p, err := ParseProcess(strings.NewReader(doc))
	require.NoError(t, err)
	assert.Equal(t, []string{"task_1"}, p.Successors("start_1"))
}

func TestParseProcess_MissingProcessElementErrors(t *testing.T) {
	_, err := ParseProcess(strings.NewReader(`<?xml version="1.0"?><bpmn:definitions xmlns:bpmn="ns"/>`))
	assert.Error(t, err)
}

func TestParseProcess_MissingElementIDErrors(t *testing.T) {
	doc := `<?xml version="1.0" encoding="UTF-8"?>
<bpmn:definitions xmlns:bpmn="http://www.omg.org/spec/BPMN/20100524/MODEL">
  <bpmn:process id="proc_1">
    <bpmn:startEvent id="start_1"/>
    <bpmn:task name="Do Work"/>
    <bpmn:endEvent id="end_1"/>
  </bpmn:process>
</bpmn:definitions>`

	_, err := ParseProcess(strings.NewReader(doc))
	assert.Error(t, err)
}

func TestParseProcess_MalformedXMLErrors(t *testing.T) {
	_, err := ParseProcess(strings.NewReader(`<bpmn:definitions><bpmn:process id="p"`))
	assert.Error(t, err)
}
