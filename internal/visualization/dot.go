// Package visualization renders the classifier network and serves the
// interactive grid page.
package visualization

import (
	"fmt"
	"strings"

	"github.com/nvandessel/gridnet/internal/constants"
	"github.com/nvandessel/gridnet/internal/network"
	"github.com/nvandessel/gridnet/internal/projection"
	"github.com/nvandessel/gridnet/internal/session"
)

// Format specifies the output format for graph rendering.
type Format string

const (
	FormatDOT  Format = "dot"
	FormatJSON Format = "json"
)

// ParseFormat validates a format name. Empty defaults to DOT.
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case "", FormatDOT:
		return FormatDOT, nil
	case FormatJSON:
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unknown format %q (want dot or json)", s)
	}
}

// levelColors maps highlight levels to DOT fill colors.
var levelColors = map[projection.Level]string{
	projection.LevelNone:    "white",
	projection.LevelPartial: "gold",
	projection.LevelFull:    "tomato",
}

const (
	activeColor   = "steelblue"
	inactiveColor = "lightgray"
)

// Node IDs shared by the DOT and JSON renderings.
func cellID(i int) string   { return fmt.Sprintf("cell%d", i) }
func inputID(i int) string  { return fmt.Sprintf("in%d", i) }
func hiddenID(h int) string { return fmt.Sprintf("h%d", h) }
func outputID(o int) string { return fmt.Sprintf("out%d", o) }

const labelID = "label"

// RenderDOT produces a Graphviz DOT representation of the network with the
// snapshot's highlights applied.
func RenderDOT(n *network.Network, snap session.Snapshot) string {
	hl := snap.Highlights
	inputs := filledSet(hl.Inputs)
	outputs := filledSet(hl.Outputs)

	var b strings.Builder
	b.WriteString("digraph gridnet {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=circle, style=filled, fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	for i := 0; i < constants.CellCount; i++ {
		fill := "white"
		if snap.Pattern[i] == 1 {
			fill = "black"
		}
		b.WriteString(fmt.Sprintf("  %q [shape=square, label=\"\", fillcolor=%q, tooltip=%q];\n",
			cellID(i), fill, constants.CellNames[i]))
	}
	for i := 0; i < constants.CellCount; i++ {
		fill := "white"
		if inputs[i] {
			fill = activeColor
		}
		b.WriteString(fmt.Sprintf("  %q [label=%q, fillcolor=%q];\n",
			inputID(i), fmt.Sprintf("%d", snap.Pattern[i]), fill))
	}
	for h := 0; h < constants.HiddenCount; h++ {
		b.WriteString(fmt.Sprintf("  %q [label=%q, fillcolor=%q, tooltip=%q];\n",
			hiddenID(h), activationLabel(snap.Hidden, h), levelColors[levelAt(hl.Hidden, h)], constants.HiddenUnitNames[h]))
	}
	for o := 0; o < constants.OutputCount; o++ {
		fill := "white"
		if outputs[o] {
			fill = activeColor
		}
		b.WriteString(fmt.Sprintf("  %q [label=%q, fillcolor=%q, tooltip=%q];\n",
			outputID(o), activationLabel(snap.Output, o), fill, constants.OutputUnitNames[o]))
	}
	labelFill := "white"
	if hl.Label {
		labelFill = activeColor
	}
	b.WriteString(fmt.Sprintf("  %q [shape=box, label=%q, fillcolor=%q];\n\n", labelID, snap.Label, labelFill))

	for i := 0; i < constants.CellCount; i++ {
		b.WriteString(fmt.Sprintf("  %q -> %q [color=%q];\n",
			cellID(i), inputID(i), edgeColor(boolAt(hl.GridLinks, i))))
	}
	w := n.Weights()
	for i := range w {
		for h := range w[i] {
			if w[i][h] == 0 {
				continue
			}
			lvl := projection.LevelNone
			if i < len(hl.InputEdges) {
				lvl = levelAt(hl.InputEdges[i], h)
			}
			color := inactiveColor
			if lvl != projection.LevelNone {
				color = levelColors[lvl]
			}
			b.WriteString(fmt.Sprintf("  %q -> %q [color=%q];\n", inputID(i), hiddenID(h), color))
		}
	}
	m := n.Mask()
	for h := range m {
		for o := range m[h] {
			if !m[h][o] {
				continue
			}
			lit := h < len(hl.OutputEdges) && boolAt(hl.OutputEdges[h], o)
			b.WriteString(fmt.Sprintf("  %q -> %q [color=%q];\n", hiddenID(h), outputID(o), edgeColor(lit)))
		}
	}
	for o := 0; o < constants.OutputCount; o++ {
		b.WriteString(fmt.Sprintf("  %q -> %q [color=%q];\n",
			outputID(o), labelID, edgeColor(boolAt(hl.LabelLinks, o))))
	}

	b.WriteString("}\n")
	return b.String()
}

// RenderJSON produces a JSON graph representation with nodes and edges arrays.
func RenderJSON(n *network.Network, snap session.Snapshot) map[string]interface{} {
	hl := snap.Highlights
	inputs := filledSet(hl.Inputs)
	outputs := filledSet(hl.Outputs)

	nodes := make([]map[string]interface{}, 0, 2*constants.CellCount+constants.HiddenCount+constants.OutputCount+1)
	for i := 0; i < constants.CellCount; i++ {
		nodes = append(nodes, map[string]interface{}{
			"id":     cellID(i),
			"layer":  "grid",
			"name":   constants.CellNames[i],
			"value":  snap.Pattern[i],
			"active": snap.Pattern[i] == 1,
		})
	}
	for i := 0; i < constants.CellCount; i++ {
		nodes = append(nodes, map[string]interface{}{
			"id":     inputID(i),
			"layer":  "input",
			"value":  snap.Pattern[i],
			"active": inputs[i],
		})
	}
	for h := 0; h < constants.HiddenCount; h++ {
		node := map[string]interface{}{
			"id":    hiddenID(h),
			"layer": "hidden",
			"name":  constants.HiddenUnitNames[h],
			"level": levelAt(hl.Hidden, h).String(),
		}
		if h < len(snap.Hidden) {
			node["value"] = snap.Hidden[h]
		}
		nodes = append(nodes, node)
	}
	for o := 0; o < constants.OutputCount; o++ {
		node := map[string]interface{}{
			"id":     outputID(o),
			"layer":  "output",
			"name":   constants.OutputUnitNames[o],
			"active": outputs[o],
		}
		if o < len(snap.Output) {
			node["value"] = snap.Output[o]
		}
		nodes = append(nodes, node)
	}
	nodes = append(nodes, map[string]interface{}{
		"id":     labelID,
		"layer":  "label",
		"name":   snap.Label,
		"active": hl.Label,
	})

	var edges []map[string]interface{}
	for i := 0; i < constants.CellCount; i++ {
		edges = append(edges, map[string]interface{}{
			"source": cellID(i),
			"target": inputID(i),
			"level":  boolLevel(boolAt(hl.GridLinks, i)).String(),
		})
	}
	w := n.Weights()
	for i := range w {
		for h := range w[i] {
			if w[i][h] == 0 {
				continue
			}
			lvl := projection.LevelNone
			if i < len(hl.InputEdges) {
				lvl = levelAt(hl.InputEdges[i], h)
			}
			edges = append(edges, map[string]interface{}{
				"source": inputID(i),
				"target": hiddenID(h),
				"weight": w[i][h],
				"level":  lvl.String(),
			})
		}
	}
	m := n.Mask()
	for h := range m {
		for o := range m[h] {
			if !m[h][o] {
				continue
			}
			lit := h < len(hl.OutputEdges) && boolAt(hl.OutputEdges[h], o)
			edges = append(edges, map[string]interface{}{
				"source": hiddenID(h),
				"target": outputID(o),
				"level":  boolLevel(lit).String(),
			})
		}
	}
	for o := 0; o < constants.OutputCount; o++ {
		edges = append(edges, map[string]interface{}{
			"source": outputID(o),
			"target": labelID,
			"level":  boolLevel(boolAt(hl.LabelLinks, o)).String(),
		})
	}

	return map[string]interface{}{
		"session_id": snap.SessionID,
		"phase":      snap.Phase.String(),
		"pattern":    snap.Pattern.String(),
		"label":      snap.Label,
		"nodes":      nodes,
		"edges":      edges,
		"node_count": len(nodes),
		"edge_count": len(edges),
	}
}

// activationLabel returns the computed value at idx, or the pending marker.
func activationLabel(values []int, idx int) string {
	if idx < len(values) {
		return fmt.Sprintf("%d", values[idx])
	}
	return constants.LabelPending
}

func levelAt(levels []projection.Level, idx int) projection.Level {
	if idx < len(levels) {
		return levels[idx]
	}
	return projection.LevelNone
}

func boolAt(flags []bool, idx int) bool {
	return idx < len(flags) && flags[idx]
}

// boolLevel maps an on/off connector to the level scale used for edges.
func boolLevel(lit bool) projection.Level {
	if lit {
		return projection.LevelFull
	}
	return projection.LevelNone
}

func edgeColor(lit bool) string {
	if lit {
		return activeColor
	}
	return inactiveColor
}

func filledSet(indices []int) map[int]bool {
	set := make(map[int]bool, len(indices))
	for _, i := range indices {
		set[i] = true
	}
	return set
}
