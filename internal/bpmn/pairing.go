package bpmn

import "fmt"

// pairQueueItem is one entry of the split-discovery BFS: a graph node
// reached while walking the process from its start event.
type pairQueueItem struct {
	node string
}

// PairGateways is the Gateway Pairing & Validator. It classifies every
// gateway as a structural Split or Join from its in/out-degree, walks
// the process breadth-first from the start event discovering splits in
// visitation order, and for each split finds its matching join with a
// multi-source BFS that tracks, per frontier node, which split-branch
// it was reached from. A join is accepted once every branch has either
// reached it directly or terminated at an end event.
//
// Exclusive pairs are additionally classified as loop constructs by
// enumerating every acyclic start-to-end path and checking whether the
// join always precedes the split wherever both appear on a path.
// Inclusive pairs get their full branch-to-branch trace table.
//
// Every successfully paired split/join gets its canonical name here,
// since naming depends on pair discovery order. Gateways that cannot
// be matched to a partner are left unpaired and returned as R4
// violations.
func PairGateways(p *Process) []error {
	splitsByKind := make(map[GatewayKind][]string)
	joinsByKind := make(map[GatewayKind][]string)
	isSplit := make(map[string]bool)

	for _, id := range p.ObjectOrder {
		o := p.Objects[id]
		if o.Kind != KindGateway {
			continue
		}
		in, out := len(o.Incoming), len(o.Outgoing)
		switch {
		case in == 1 && out > 1:
			o.GatewayRole = Split
			splitsByKind[o.GatewayKind] = append(splitsByKind[o.GatewayKind], id)
			isSplit[id] = true
		case in > 1 && out == 1:
			o.GatewayRole = Join
			joinsByKind[o.GatewayKind] = append(joinsByKind[o.GatewayKind], id)
		}
		// Neither shape: left unclassified. checkGatewayShape reports
		// the R3 violation; since it joins neither set here it also
		// ends up unpaired below, reported again under R4.
	}

	start := p.StartEventID()
	if start == "" {
		return []error{&RuleError{Rule: "R4", Message: "no start event found to begin gateway pairing traversal"}}
	}

	endSet := make(map[string]bool)
	for _, id := range p.EndEventIDs() {
		endSet[id] = true
	}
	allPaths := allAcyclicPaths(p, start, endSet)

	paired := make(map[string]bool)
	namingCount := make(map[GatewayKind]int)
	loopCounter := 1
	pairID := 1

	visited := map[string]bool{start: true}
	queue := []string{start}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		if isSplit[cur] && !paired[cur] {
			k := p.Objects[cur].GatewayKind
			candidates := unmatched(joinsByKind[k], paired)
			join := findJoin(p, cur, candidates, endSet)
			if join != "" {
				paired[cur] = true
				paired[join] = true

				isLoop := false
				if k == Exclusive {
					isLoop = classifyLoop(allPaths, cur, join)
				}

				namingCount[k]++
				count := namingCount[k]
				pair := &GatewayPair{PairID: pairID, Kind: k, SplitID: cur, JoinID: join, IsLoop: isLoop}
				if isLoop {
					p.Objects[cur].CanonicalName = fmt.Sprintf("%s %d -- Split (Loop %d Out)", k, count, loopCounter)
					p.Objects[join].CanonicalName = fmt.Sprintf("%s %d -- Join (Loop %d In)", k, count, loopCounter)
					loopCounter++
				} else {
					p.Objects[cur].CanonicalName = fmt.Sprintf("%s %d -- Split", k, count)
					p.Objects[join].CanonicalName = fmt.Sprintf("%s %d -- Join", k, count)
				}
				if k == Inclusive {
					pair.InclusiveTraces = traceInclusiveBranches(p, cur, join)
				}
				p.AddPair(pair)
				pairID++
			}
		}

		for _, nxt := range p.Successors(cur) {
			if !visited[nxt] {
				visited[nxt] = true
				queue = append(queue, nxt)
			}
		}
	}

	var errs []error
	for _, id := range p.ObjectOrder {
		o := p.Objects[id]
		if o.Kind != KindGateway {
			continue
		}
		if !paired[id] {
			errs = append(errs, &RuleError{Rule: "R4", Message: fmt.Sprintf(
				"gateway %s could not be paired with a matching split/join; violates Single Entry, Single Exit", o)})
		}
	}
	return errs
}

func unmatched(ids []string, paired map[string]bool) []string {
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if !paired[id] {
			out = append(out, id)
		}
	}
	return out
}

// findJoin runs a multi-source BFS seeded at every immediate successor
// of split, each tagged with its own origin branch. A frontier node's
// origin set accumulates as branches converge on it; a branch that
// reaches an end event is marked terminated instead of carrying
// forward. A candidate matches once its origin set, unioned with
// terminated branches, covers every branch of the split. Candidates
// are checked as the BFS reaches them, and all of them again, in
// candidate order, each time a branch terminates; the first one found
// covered is returned. Returns "" if no candidate is ever fully
// covered.
func findJoin(p *Process, split string, candidates []string, endSet map[string]bool) string {
	branches := p.Successors(split)
	if len(branches) == 0 {
		return ""
	}
	candidateSet := make(map[string]bool, len(candidates))
	for _, c := range candidates {
		candidateSet[c] = true
	}

	reachedBy := make(map[string]map[string]bool) // node -> set of origin branches that reached it
	terminated := make(map[string]bool)            // origin branches that hit an end event

	type frontierEntry struct {
		node   string
		origin string
	}
	var queue []frontierEntry
	for _, b := range branches {
		if reachedBy[b] == nil {
			reachedBy[b] = make(map[string]bool)
		}
		reachedBy[b][b] = true
		queue = append(queue, frontierEntry{node: b, origin: b})
	}

	covers := func(node string) bool {
		seen := reachedBy[node]
		for _, b := range branches {
			if !terminated[b] && (seen == nil || !seen[b]) {
				return false
			}
		}
		return true
	}

	maxSteps := len(p.ObjectOrder) * (len(branches) + 1)
	for step := 0; len(queue) > 0 && step < maxSteps; step++ {
		e := queue[0]
		queue = queue[1:]

		if endSet[e.node] {
			terminated[e.origin] = true
			for _, c := range candidates {
				if covers(c) {
					return c
				}
			}
			continue
		}

		if candidateSet[e.node] && covers(e.node) {
			return e.node
		}

		for _, nxt := range p.Successors(e.node) {
			if reachedBy[nxt] == nil {
				reachedBy[nxt] = make(map[string]bool)
			}
			if reachedBy[nxt][e.origin] {
				continue
			}
			reachedBy[nxt][e.origin] = true
			queue = append(queue, frontierEntry{node: nxt, origin: e.origin})
		}
	}
	return ""
}

// allAcyclicPaths enumerates every simple (no repeated node) path from
// start to any node in endSet. Used only for exclusive-gateway loop
// classification, where graphs are small enough for this to be cheap;
// a graph with very wide branching would make this expensive, which is
// the accepted tradeoff for a readable, directly-translated algorithm.
func allAcyclicPaths(p *Process, start string, endSet map[string]bool) [][]string {
	var paths [][]string
	var walk func(node string, path []string, onPath map[string]bool)
	walk = func(node string, path []string, onPath map[string]bool) {
		path = append(path, node)
		if endSet[node] {
			complete := make([]string, len(path))
			copy(complete, path)
			paths = append(paths, complete)
			return
		}
		onPath[node] = true
		for _, nxt := range p.Successors(node) {
			if onPath[nxt] {
				continue
			}
			walk(nxt, path, onPath)
		}
		delete(onPath, node)
	}
	walk(start, nil, make(map[string]bool))
	return paths
}

// classifyLoop reports whether an exclusive pair is a loop construct:
// it occurs on at least one enumerated path, and on every path where
// both appear the join precedes the split (meaning the split's second
// outgoing branch routes back through already-executed work).
func classifyLoop(paths [][]string, split, join string) bool {
	foundPair := false
	joinAlwaysFirst := true
	for _, path := range paths {
		splitIdx, joinIdx := -1, -1
		for i, id := range path {
			if id == split {
				splitIdx = i
			}
			if id == join {
				joinIdx = i
			}
		}
		if splitIdx == -1 || joinIdx == -1 {
			continue
		}
		foundPair = true
		if splitIdx < joinIdx {
			joinAlwaysFirst = false
			break
		}
	}
	return foundPair && joinAlwaysFirst
}

// traceInclusiveBranches enumerates, for each immediate branch out of
// split, every predecessor-of-join it can reach without leaving the
// split/join span, recorded in BFS-discovery order so the result is
// deterministic. Each (branch start, reachable end) pair becomes one
// numbered InclusiveTrace; the translation engine uses these to know
// which OR-join synchronization paths actually exist.
func traceInclusiveBranches(p *Process, split, join string) []InclusiveTrace {
	branches := p.Successors(split)
	joinPreds := make(map[string]bool)
	for _, pred := range p.Predecessors(join) {
		joinPreds[pred] = true
	}
	if len(branches) == 0 || len(joinPreds) == 0 {
		return nil
	}

	var traces []InclusiveTrace
	traceID := 1
	for _, branchStart := range branches {
		visited := map[string]bool{branchStart: true, split: true, join: true}
		queue := []string{branchStart}
		seenEnd := make(map[string]bool)
		for len(queue) > 0 {
			cur := queue[0]
			queue = queue[1:]
			if joinPreds[cur] && !seenEnd[cur] {
				seenEnd[cur] = true
				traces = append(traces, InclusiveTrace{TraceID: traceID, StartObjectID: branchStart, EndObjectID: cur})
				traceID++
			}
			for _, nxt := range p.Successors(cur) {
				if !visited[nxt] {
					visited[nxt] = true
					queue = append(queue, nxt)
				}
			}
		}
	}
	return traces
}
