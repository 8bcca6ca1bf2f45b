package discussion

import (
	"errors"
	"sort"

	"dealboard/internal/models"
)

var (
	// ErrUnknownComment is returned when a reply or vote targets an id that
	// is not part of the thread.
	ErrUnknownComment = errors.New("unknown comment")
	// ErrWrongDeal is returned when a comment row belongs to another deal.
	ErrWrongDeal = errors.New("comment belongs to a different deal")
)

// Node is one comment with its assembled replies, newest first.
type Node struct {
	models.Comment
	Replies []*Node `json:"replies"`
}

// Thread holds one deal's comments as a flat arena keyed by id, with
// parent-id back-references. Tree assembly happens on demand; mutations
// never recurse through nested reply slices.
type Thread struct {
	dealID string
	nodes  map[string]*models.Comment
	order  []string
}

// NewThread indexes existing comment rows. Rows pointing at a missing
// parent are kept and surface as roots, so a partially loaded thread still
// renders.
func NewThread(dealID string, rows []models.Comment) *Thread {
	t := &Thread{
		dealID: dealID,
		nodes:  make(map[string]*models.Comment, len(rows)),
		order:  make([]string, 0, len(rows)),
	}
	for i := range rows {
		row := rows[i]
		t.nodes[row.ID] = &row
		t.order = append(t.order, row.ID)
	}
	return t
}

// Add inserts a comment into the arena. Replies must reference a parent
// already present in the thread.
func (t *Thread) Add(c models.Comment) error {
	if c.DealID != t.dealID {
		return ErrWrongDeal
	}
	if c.ParentID != nil {
		if _, ok := t.nodes[*c.ParentID]; !ok {
			return ErrUnknownComment
		}
	}
	row := c
	t.nodes[c.ID] = &row
	t.order = append(t.order, c.ID)
	return nil
}

// Vote adjusts one comment's tally by delta. Flat map lookup; no tree walk.
func (t *Thread) Vote(id string, delta int) (int, error) {
	node, ok := t.nodes[id]
	if !ok {
		return 0, ErrUnknownComment
	}
	node.Votes += delta
	return node.Votes, nil
}

// Len reports the number of comments in the arena.
func (t *Thread) Len() int {
	return len(t.nodes)
}

// Has reports whether id is part of the thread.
func (t *Thread) Has(id string) bool {
	_, ok := t.nodes[id]
	return ok
}

// Tree assembles the reply forest from the flat arena. Siblings are ordered
// newest first at every depth, matching the discussion UI.
func (t *Thread) Tree() []*Node {
	built := make(map[string]*Node, len(t.nodes))
	for _, id := range t.order {
		built[id] = &Node{Comment: *t.nodes[id]}
	}

	var roots []*Node
	for _, id := range t.order {
		node := built[id]
		if node.ParentID != nil {
			if parent, ok := built[*node.ParentID]; ok {
				parent.Replies = append(parent.Replies, node)
				continue
			}
		}
		roots = append(roots, node)
	}

	var sortReplies func(nodes []*Node)
	sortReplies = func(nodes []*Node) {
		sort.SliceStable(nodes, func(i, j int) bool {
			return nodes[i].CreatedAt.After(nodes[j].CreatedAt)
		})
		for _, n := range nodes {
			sortReplies(n.Replies)
		}
	}
	sortReplies(roots)
	return roots
}
