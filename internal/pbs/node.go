package pbs

import (
	"strconv"
	"strings"
)

// Node states as reported by pbsnodes.
const (
	NodeStateFree         = "free"
	NodeStateOffline      = "offline"
	NodeStateJobExclusive = "job-exclusive"
	NodeStateDown         = "down"
)

// Derived operational labels for report output.
const (
	LabelIdle        = "idle"
	LabelActive      = "active"
	LabelFullyBusy   = "fully busy"
	LabelUnavailable = "unavailable"
)

const kbPerGB = 1024 * 1024

// NodeRecord is one node's state parsed from pbsnodes XML.
type NodeRecord struct {
	Name        string
	State       string
	Properties  string            // comma-separated node properties
	TotalProcs  int               // np
	JobSlots    string            // raw <jobs> contents ("0/101.m,1/101.m", empty when idle)
	StatusAttrs map[string]string // key=value pairs from the <status> blob

	TotalMemGB int // whole GB by integer division from kb
	AvailMemGB int
}

// UsedProcs returns the number of occupied job slots on the node.
func (n *NodeRecord) UsedProcs() int {
	if strings.TrimSpace(n.JobSlots) == "" {
		return 0
	}
	return len(strings.Split(n.JobSlots, ","))
}

// DerivedState classifies the node's operational state for the report:
// offline nodes are unavailable, job-exclusive nodes are fully busy, free
// nodes are idle or active depending on occupancy, and anything else passes
// through unchanged.
func (n *NodeRecord) DerivedState() string {
	switch {
	case strings.Contains(n.State, NodeStateOffline):
		return LabelUnavailable
	case strings.Contains(n.State, NodeStateJobExclusive):
		return LabelFullyBusy
	case strings.Contains(n.State, NodeStateFree):
		if n.UsedProcs() == 0 {
			return LabelIdle
		}
		return LabelActive
	default:
		return n.State
	}
}

// HasProperty reports whether the node carries the named property.
func (n *NodeRecord) HasProperty(property string) bool {
	if property == "" {
		return false
	}
	for _, p := range strings.Split(n.Properties, ",") {
		if strings.TrimSpace(p) == property {
			return true
		}
	}
	return false
}

// ParseNodeXML parses pbsnodes -x output into node records, one per <Node>
// element, preserving document order.
func ParseNodeXML(blob string) []*NodeRecord {
	var nodes []*NodeRecord

	for _, elem := range ExtractTags(blob, "Node") {
		node := &NodeRecord{
			Name:        strings.TrimSpace(ExtractTag(elem, "name")),
			State:       strings.TrimSpace(ExtractTag(elem, "state")),
			Properties:  strings.TrimSpace(ExtractTag(elem, "properties")),
			JobSlots:    strings.TrimSpace(ExtractTag(elem, "jobs")),
			StatusAttrs: parseStatusAttrs(ExtractTag(elem, "status")),
		}
		node.TotalProcs, _ = strconv.Atoi(strings.TrimSpace(ExtractTag(elem, "np")))

		node.TotalMemGB = memGB(elem, node.StatusAttrs, "totmem")
		node.AvailMemGB = memGB(elem, node.StatusAttrs, "availmem")

		nodes = append(nodes, node)
	}

	return nodes
}

// parseStatusAttrs splits the <status> blob's comma-separated key=value
// pairs into a map. A value may itself contain commas (the jobs= sublist
// does), so a part without an "=" continues the previous key's value; each
// value runs until the next key= token.
func parseStatusAttrs(status string) map[string]string {
	attrs := map[string]string{}
	lastKey := ""
	for _, part := range strings.Split(status, ",") {
		if key, value, ok := strings.Cut(part, "="); ok {
			lastKey = strings.TrimSpace(key)
			attrs[lastKey] = strings.TrimSpace(value)
			continue
		}
		if lastKey != "" {
			attrs[lastKey] += "," + strings.TrimSpace(part)
		}
	}
	return attrs
}

// memGB resolves a memory attribute to whole gigabytes. The value is looked
// up as a tag first and falls back to the status blob, since schedulers
// differ on where they report it. Values are kb-suffixed kilobyte counts;
// conversion is integer division (16777216kb -> 16).
func memGB(elem string, attrs map[string]string, key string) int {
	value := strings.TrimSpace(ExtractTag(elem, key))
	if value == "" {
		value = attrs[key]
	}
	value = strings.TrimSuffix(strings.TrimSpace(value), "kb")
	kb, err := strconv.Atoi(value)
	if err != nil {
		return 0
	}
	return kb / kbPerGB
}

// ActiveJobIDs extracts the distinct job identifiers occupying a node's job
// slots, preserving first occurrence order. An empty slot string means an
// idle node regardless of what the status blob claims.
func ActiveJobIDs(slots string) []string {
	slots = strings.TrimSpace(slots)
	if slots == "" {
		return nil
	}

	var ids []string
	seen := map[string]bool{}

	for _, entry := range strings.Split(slots, ",") {
		entry = strings.TrimSpace(entry)
		// Entries are slot/jobid pairs; the id is everything after the slash.
		if _, id, ok := strings.Cut(entry, "/"); ok {
			entry = id
		}
		if entry == "" || seen[entry] {
			continue
		}
		seen[entry] = true
		ids = append(ids, entry)
	}

	return ids
}
