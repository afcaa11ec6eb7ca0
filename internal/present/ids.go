package present

import "strings"

// virtualIDOffset keeps ids of subscription-backed expenses apart from real ones.
const virtualIDOffset = 100000

// IDMapper assigns small numeric ids to opaque string ids in first-seen order.
// The same source id always maps to the same number for the life of a mapper.
// Ids starting with "sub-" are numbered from virtualIDOffset+1.
type IDMapper struct {
	ids         map[string]int
	nextReal    int
	nextVirtual int
}

// NewIDMapper returns an empty mapper.
func NewIDMapper() *IDMapper {
	return &IDMapper{ids: make(map[string]int)}
}

// ID returns the numeric id of source, assigning one on first use.
func (m *IDMapper) ID(source string) int {
	if id, ok := m.ids[source]; ok {
		return id
	}
	var id int
	if strings.HasPrefix(source, "sub-") {
		m.nextVirtual++
		id = virtualIDOffset + m.nextVirtual
	} else {
		m.nextReal++
		id = m.nextReal
	}
	m.ids[source] = id
	return id
}
