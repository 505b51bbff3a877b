package kast

// WalkPreOrder visits every block node in document order, descending
// into DecoratedBlock/Collapsible children and List items before moving
// to the next sibling. Used by the TOC builder and the footnote resolver.
func WalkPreOrder(doc *Document, visit func(BlockNode)) {
	for _, child := range doc.Children {
		walkBlockPreOrder(child, visit)
	}
}

func walkBlockPreOrder(n BlockNode, visit func(BlockNode)) {
	visit(n)
	switch v := n.(type) {
	case *DecoratedBlock:
		for _, c := range v.Children {
			walkBlockPreOrder(c, visit)
		}
	case *Collapsible:
		for _, c := range v.Children {
			walkBlockPreOrder(c, visit)
		}
	case *List:
		for _, item := range v.Items {
			walkListItemPreOrder(item, visit)
		}
	}
}

func walkListItemPreOrder(item *ListItem, visit func(BlockNode)) {
	if item.Sublist != nil {
		walkBlockPreOrder(item.Sublist, visit)
	}
}

// WalkPostOrder visits every block node after its children, for callers
// that need to see a block's descendants before the block itself.
func WalkPostOrder(doc *Document, visit func(BlockNode)) {
	for _, child := range doc.Children {
		walkBlockPostOrder(child, visit)
	}
}

func walkBlockPostOrder(n BlockNode, visit func(BlockNode)) {
	switch v := n.(type) {
	case *DecoratedBlock:
		for _, c := range v.Children {
			walkBlockPostOrder(c, visit)
		}
	case *Collapsible:
		for _, c := range v.Children {
			walkBlockPostOrder(c, visit)
		}
	case *List:
		for _, item := range v.Items {
			if item.Sublist != nil {
				walkBlockPostOrder(item.Sublist, visit)
			}
		}
	}
	visit(n)
}

// WalkInline visits every inline node in an InlineSeq, recursing into
// Emphasis children. Used by the footnote resolver.
func WalkInline(seq InlineSeq, visit func(InlineNode)) {
	for _, n := range seq {
		visit(n)
		if em, ok := n.(*Emphasis); ok {
			WalkInline(em.Children, visit)
		}
	}
}
