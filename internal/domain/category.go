package domain

import "time"

// Category is a node in the catalog taxonomy, stored flat with a parent
// pointer. The public API returns the assembled tree.
type Category struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	ParentID  *string   `json:"parentId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// CategoryNode is a category with its children resolved.
type CategoryNode struct {
	Category
	Children []*CategoryNode `json:"children"`
}

// BuildCategoryTree assembles the nested tree from a flat parent-pointer
// list. Nodes whose parent is missing from the input are treated as roots
// rather than dropped.
func BuildCategoryTree(flat []Category) []*CategoryNode {
	nodes := make(map[string]*CategoryNode, len(flat))
	for _, c := range flat {
		nodes[c.ID] = &CategoryNode{Category: c, Children: []*CategoryNode{}}
	}
	var roots []*CategoryNode
	for _, c := range flat {
		node := nodes[c.ID]
		if c.ParentID != nil {
			if parent, ok := nodes[*c.ParentID]; ok {
				parent.Children = append(parent.Children, node)
				continue
			}
		}
		roots = append(roots, node)
	}
	return roots
}
