package domain

// TopicNode - узел дерева раскрытия темы. Дерево строится одним проходом
// TopicExplorer и отбрасывается после сериализации ответа.
type TopicNode struct {
	Keyword   string       `json:"keyword"`
	Subtopics []*TopicNode `json:"subtopics"`
}

func NewTopicNode(keyword string) *TopicNode {
	return &TopicNode{Keyword: keyword, Subtopics: []*TopicNode{}}
}

// Size возвращает число узлов в дереве, включая корень.
func (n *TopicNode) Size() int {
	if n == nil {
		return 0
	}
	total := 1
	for _, sub := range n.Subtopics {
		total += sub.Size()
	}
	return total
}

// Depth возвращает глубину дерева (0 для одиночного корня).
func (n *TopicNode) Depth() int {
	if n == nil {
		return 0
	}
	max := 0
	for _, sub := range n.Subtopics {
		if d := sub.Depth() + 1; d > max {
			max = d
		}
	}
	return max
}
