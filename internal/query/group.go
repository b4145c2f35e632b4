package query

import (
	"net/url"
	"sort"
	"strings"

	"github.com/me/optrack/pkg/model"
)

// GroupState tracks which operator groups are expanded. Every group starts in
// the default state; exceptions lists the operators toggled away from it.
// The zero value has all groups expanded.
type GroupState struct {
	collapsedByDefault bool
	exceptions         map[string]bool
}

// Expanded reports whether operator's group is open.
func (g GroupState) Expanded(operator string) bool {
	return g.collapsedByDefault == g.exceptions[operator]
}

// Toggle flips one group.
func (g GroupState) Toggle(operator string) GroupState {
	next := GroupState{collapsedByDefault: g.collapsedByDefault, exceptions: make(map[string]bool, len(g.exceptions)+1)}
	for op := range g.exceptions {
		next.exceptions[op] = true
	}
	if next.exceptions[operator] {
		delete(next.exceptions, operator)
	} else {
		next.exceptions[operator] = true
	}
	return next
}

// ExpandAll opens every group.
func (g GroupState) ExpandAll() GroupState {
	return GroupState{}
}

// CollapseAll closes every group.
func (g GroupState) CollapseAll() GroupState {
	return GroupState{collapsedByDefault: true}
}

// Encode writes the state as query parameters. Expanded-by-default state
// repeats "collapsed" once per operator; collapsed-by-default is
// "groups=none" with any open groups repeated under "expanded". Operators are
// free text, so no separator is reserved inside a value.
func (g GroupState) Encode(v url.Values) {
	v.Del("collapsed")
	v.Del("expanded")
	v.Del("groups")
	ops := make([]string, 0, len(g.exceptions))
	for op := range g.exceptions {
		ops = append(ops, op)
	}
	sort.Strings(ops)
	if g.collapsedByDefault {
		v.Set("groups", "none")
		for _, op := range ops {
			v.Add("expanded", op)
		}
		return
	}
	for _, op := range ops {
		v.Add("collapsed", op)
	}
}

// ParseGroupState reads the parameters written by Encode.
func ParseGroupState(v url.Values) GroupState {
	g := GroupState{collapsedByDefault: v.Get("groups") == "none"}
	key := "collapsed"
	if g.collapsedByDefault {
		key = "expanded"
	}
	for _, op := range v[key] {
		if strings.TrimSpace(op) == "" {
			continue
		}
		if g.exceptions == nil {
			g.exceptions = make(map[string]bool)
		}
		g.exceptions[op] = true
	}
	return g
}

// Group is one operator's block of rows.
type Group struct {
	Operator    string              `json:"operator"`
	Count       int                 `json:"count"`
	Expanded    bool                `json:"expanded"`
	Submissions []*model.Submission `json:"submissions"`
}

// GroupByOperator partitions subs by operator, in order of first appearance.
// Rows inside a group keep their input order. Collapsed groups still carry
// their rows; Expanded tells the renderer whether to show them.
func GroupByOperator(subs []*model.Submission, state GroupState) []Group {
	index := make(map[string]int)
	var groups []Group
	for _, s := range subs {
		i, ok := index[s.Operator]
		if !ok {
			i = len(groups)
			index[s.Operator] = i
			groups = append(groups, Group{Operator: s.Operator, Expanded: state.Expanded(s.Operator)})
		}
		groups[i].Submissions = append(groups[i].Submissions, s)
		groups[i].Count++
	}
	return groups
}
