package translate

import (
	"fmt"
	"testing"

	"pgregory.net/rapid"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/bpmn"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/emit"
)

// TestTranslate_DeterministicForStraightLineProcesses checks the
// determinism property: compiling the same BPMN model twice, from two
// freshly built but structurally identical graphs, must produce
// byte-identical DCR XML. Go map iteration is randomized, so this
// would catch any part of the pipeline that leaked map order instead
// of using the insertion-ordered slices bpmn.Process and dcr.Graph
// carry for exactly this reason.
func TestTranslate_DeterministicForStraightLineProcesses(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(1, 12).Draw(t, "taskCount")

		build := func() *bpmn.Process {
			b := bpmn.NewProcessBuilder("p1").StartEvent("start")
			prev := "start"
			for i := 0; i < n; i++ {
				taskID := fmt.Sprintf("task_%d", i)
				b.Task(taskID, fmt.Sprintf("Task %d", i))
				b.Flow(prev, taskID)
				prev = taskID
			}
			b.EndEvent("end")
			b.Flow(prev, "end")
			return b.Build()
		}

		first := mustCompile(t, build())
		second := mustCompile(t, build())

		if string(first) != string(second) {
			t.Fatalf("compiling the same %d-task straight-line process twice produced different output", n)
		}
	})
}

func mustCompile(t *rapid.T, p *bpmn.Process) []byte {
	validated, err := bpmn.Validate(p)
	if err != nil {
		t.Fatalf("unexpected validation failure: %v", err)
	}
	graph := Translate(validated)
	xmlBytes, err := emit.Marshal(graph)
	if err != nil {
		t.Fatalf("unexpected marshal failure: %v", err)
	}
	return xmlBytes
}
