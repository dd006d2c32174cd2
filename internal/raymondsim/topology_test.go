package raymondsim

import (
	"reflect"
	"testing"
)

func TestBuildHeapTree(t *testing.T) {
	tests := []struct {
		name string
		n    int
		want map[NodeID]NodeID
	}{
		{
			name: "single node holds itself",
			n:    1,
			want: map[NodeID]NodeID{1: 1},
		},
		{
			name: "five nodes per spec example",
			n:    5,
			want: map[NodeID]NodeID{1: 1, 2: 1, 3: 1, 4: 2, 5: 2},
		},
		{
			name: "sixteen nodes",
			n:    16,
			want: map[NodeID]NodeID{
				1: 1, 2: 1, 3: 1, 4: 2, 5: 2, 6: 3, 7: 3,
				8: 4, 9: 4, 10: 5, 11: 5, 12: 6, 13: 6, 14: 7, 15: 7, 16: 8,
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := buildHeapTree(tt.n); !reflect.DeepEqual(got, tt.want) {
				t.Errorf("buildHeapTree(%d) = %v, want %v", tt.n, got, tt.want)
			}
		})
	}
}

func TestTreeEdges_MatchesHolderPairs(t *testing.T) {
	edges := treeEdges(5)
	want := map[[2]NodeID]struct{}{
		{1, 2}: {},
		{1, 3}: {},
		{2, 4}: {},
		{2, 5}: {},
	}
	if !reflect.DeepEqual(edges, want) {
		t.Errorf("treeEdges(5) = %v, want %v", edges, want)
	}
}

func TestTreeEdges_SingleNodeHasNoEdges(t *testing.T) {
	if edges := treeEdges(1); len(edges) != 0 {
		t.Errorf("expected no edges for a single node, got %v", edges)
	}
}
