package repository

import "github.com/d60-Lab/blog-service/internal/model"

func childrenByParent(comments []*model.Comment) map[string][]*model.Comment {
	children := make(map[string][]*model.Comment, len(comments))
	for _, c := range comments {
		if c.ParentID != nil {
			children[*c.ParentID] = append(children[*c.ParentID], c)
		}
	}
	return children
}

// BuildThread 按 parent_id 分组重建评论树，保持输入顺序。
// 父评论不在集合内的回复作为根节点返回，不会丢失。
func BuildThread(comments []*model.Comment) []*model.CommentNode {
	present := make(map[string]bool, len(comments))
	for _, c := range comments {
		present[c.ID] = true
	}
	children := childrenByParent(comments)

	var build func(c *model.Comment, seen map[string]bool) *model.CommentNode
	build = func(c *model.Comment, seen map[string]bool) *model.CommentNode {
		seen[c.ID] = true
		node := &model.CommentNode{Comment: *c, Replies: []*model.CommentNode{}}
		for _, child := range children[c.ID] {
			if seen[child.ID] {
				continue
			}
			node.Replies = append(node.Replies, build(child, seen))
		}
		return node
	}

	seen := make(map[string]bool, len(comments))
	roots := make([]*model.CommentNode, 0)
	for _, c := range comments {
		if c.ParentID == nil || !present[*c.ParentID] {
			roots = append(roots, build(c, seen))
		}
	}
	return roots
}

// Descendants 返回 rootID 的全部后代评论 ID（广度优先）
func Descendants(comments []*model.Comment, rootID string) []string {
	children := childrenByParent(comments)
	var out []string
	visited := map[string]bool{rootID: true}
	queue := []string{rootID}
	for len(queue) > 0 {
		id := queue[0]
		queue = queue[1:]
		for _, child := range children[id] {
			if visited[child.ID] {
				continue
			}
			visited[child.ID] = true
			out = append(out, child.ID)
			queue = append(queue, child.ID)
		}
	}
	return out
}
