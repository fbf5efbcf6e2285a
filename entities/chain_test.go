package entities

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/google/go-cmp/cmp"
)

func TestChain_FreeAll(t *testing.T) {
	chain := NewChain(New(LineType), New(ArcType), New(CircleType))
	if chain.Len() != 3 {
		t.Fatalf("长度不符: %d", chain.Len())
	}

	var nodes []*Node[*Record]
	for n := chain.Head(); n != nil; n = n.Next() {
		nodes = append(nodes, n)
	}

	if n := chain.FreeAll(DiscardLogger()); n != 3 {
		t.Errorf("释放数量不符: %d", n)
	}
	if chain.Len() != 0 || chain.Head() != nil || chain.Last() != nil {
		t.Error("释放后链表应为空")
	}
	for i, n := range nodes {
		if !n.Freed() || n.Next() != nil || n.Value != nil {
			t.Errorf("节点 %d 未完全释放", i)
		}
	}
}

func TestChain_FreeNotDetached(t *testing.T) {
	chain := NewChain(1, 2, 3)
	head := chain.Head()

	if err := Free(head); !errors.Is(err, ErrNotDetached) {
		t.Fatalf("期望 ErrNotDetached, 得到 %v", err)
	}
	if head.Freed() || head.Value != 1 || chain.Len() != 3 {
		t.Error("失败的释放不应修改节点")
	}

	// 尾节点可以直接释放
	if err := Free(chain.Last()); err != nil {
		t.Errorf("释放尾节点失败: %v", err)
	}
}

func TestChain_FreeTwice(t *testing.T) {
	chain := NewChain("a", "b")
	n := chain.PopFront()
	if n.Next() != nil {
		t.Fatal("PopFront 应断开节点")
	}
	if err := Free(n); err != nil {
		t.Fatal(err)
	}
	if err := Free(n); !errors.Is(err, ErrFreed) {
		t.Errorf("期望 ErrFreed, 得到 %v", err)
	}
	if diff := cmp.Diff([]string{"b"}, chain.Values()); diff != "" {
		t.Errorf("剩余元素不符 (-want +got):\n%s", diff)
	}
}

func TestChain_FreeAllEmpty(t *testing.T) {
	var buf bytes.Buffer
	logger := log.NewWithOptions(&buf, log.Options{Level: log.DebugLevel})

	var chain *Chain[int]
	if n := chain.FreeAll(logger); n != 0 {
		t.Errorf("空链表释放数量应为 0, 得到 %d", n)
	}
	if !strings.Contains(buf.String(), "free of an empty chain") {
		t.Errorf("空链表应记录日志, 得到 %q", buf.String())
	}
}

func TestChain_Clone(t *testing.T) {
	chain := NewChain(1, 2)
	clone := chain.Clone(nil)
	clone.Append(3)

	if diff := cmp.Diff([]int{1, 2}, chain.Values()); diff != "" {
		t.Errorf("原链表被修改 (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{1, 2, 3}, clone.Values()); diff != "" {
		t.Errorf("副本不符 (-want +got):\n%s", diff)
	}

	var empty Chain[int]
	if empty.Values() != nil {
		t.Error("空链表 Values 应为 nil")
	}
}
