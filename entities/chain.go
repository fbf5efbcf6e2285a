package entities

import (
	"errors"
	"iter"

	"github.com/charmbracelet/log"
)

var (
	// ErrNotDetached 释放仍然连着后继节点的节点
	ErrNotDetached = errors.New("chain: node still linked to a next node")
	// ErrFreed 重复释放
	ErrFreed = errors.New("chain: node already freed")
)

// Node 是单向链表中的一个节点
type Node[T any] struct {
	Value T
	next  *Node[T]
	freed bool
}

// Next 返回后继节点，尾节点返回 nil
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// Freed 判断节点是否已释放
func (n *Node[T]) Freed() bool {
	return n.freed
}

// Free 释放单个节点。节点必须已经是尾节点（next 为 nil），
// 否则返回 ErrNotDetached 且不做任何修改。
func Free[T any](n *Node[T]) error {
	if n == nil {
		return nil
	}
	if n.next != nil {
		return ErrNotDetached
	}
	if n.freed {
		return ErrFreed
	}
	var zero T
	n.Value = zero
	n.freed = true
	return nil
}

// Chain 是同类元素的单向链表，追加为 O(1)
type Chain[T any] struct {
	head, tail *Node[T]
	n          int
}

// NewChain 用给定的元素构造链表
func NewChain[T any](values ...T) *Chain[T] {
	c := &Chain[T]{}
	for _, v := range values {
		c.Append(v)
	}
	return c
}

// Append 追加到尾部并返回新节点
func (c *Chain[T]) Append(v T) *Node[T] {
	node := &Node[T]{Value: v}
	if c.tail == nil {
		c.head = node
	} else {
		c.tail.next = node
	}
	c.tail = node
	c.n++
	return node
}

// Head 返回头节点
func (c *Chain[T]) Head() *Node[T] {
	if c == nil {
		return nil
	}
	return c.head
}

// Last 返回尾节点
func (c *Chain[T]) Last() *Node[T] {
	if c == nil {
		return nil
	}
	return c.tail
}

func (c *Chain[T]) Len() int {
	if c == nil {
		return 0
	}
	return c.n
}

// All 按顺序遍历所有元素
func (c *Chain[T]) All() iter.Seq[T] {
	return func(yield func(T) bool) {
		for node := c.Head(); node != nil; node = node.next {
			if !yield(node.Value) {
				return
			}
		}
	}
}

// Values 返回元素的切片副本，空链表返回 nil
func (c *Chain[T]) Values() []T {
	if c.Len() == 0 {
		return nil
	}
	values := make([]T, 0, c.n)
	for v := range c.All() {
		values = append(values, v)
	}
	return values
}

// PopFront 摘下头节点，返回的节点已与链表断开
func (c *Chain[T]) PopFront() *Node[T] {
	if c == nil || c.head == nil {
		return nil
	}
	node := c.head
	c.head = node.next
	if c.head == nil {
		c.tail = nil
	}
	node.next = nil
	c.n--
	return node
}

// Clone 复制链表结构，元素通过 copyValue 复制（nil 表示直接赋值）
func (c *Chain[T]) Clone(copyValue func(T) T) *Chain[T] {
	out := &Chain[T]{}
	for v := range c.All() {
		if copyValue != nil {
			v = copyValue(v)
		}
		out.Append(v)
	}
	return out
}

// FreeAll 依次摘下并释放所有节点，返回释放的数量
func (c *Chain[T]) FreeAll(logger *log.Logger) int {
	if c.Len() == 0 {
		if logger != nil {
			logger.Debug("free of an empty chain")
		}
		return 0
	}
	count := 0
	for node := c.PopFront(); node != nil; node = c.PopFront() {
		// PopFront 已断开 next，这里不会失败
		if err := Free(node); err == nil {
			count++
		}
	}
	return count
}
