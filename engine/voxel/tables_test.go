package voxel

import "testing"

func TestEdgeTableTrivialMasks(t *testing.T) {
	if EdgeTable[0] != 0 {
		t.Errorf("mask 0 (all outside) should cross no edges, got %#x", EdgeTable[0])
	}
	if EdgeTable[255] != 0 {
		t.Errorf("mask 255 (all inside) should cross no edges, got %#x", EdgeTable[255])
	}
}

func TestEdgeTableComplementSymmetry(t *testing.T) {
	// inverting inside/outside crosses the same edges
	for mask := 0; mask < 256; mask++ {
		if EdgeTable[mask] != EdgeTable[255^mask] {
			t.Errorf("mask %d: %#x != complement %#x", mask, EdgeTable[mask], EdgeTable[255^mask])
		}
	}
}

func TestTriTableConsistentWithEdgeTable(t *testing.T) {
	for mask := 0; mask < 256; mask++ {
		row := TriTable[mask]
		entries := 0
		for _, e := range row {
			if e < 0 {
				break
			}
			entries++
			if e > 11 {
				t.Fatalf("mask %d: edge index %d out of range", mask, e)
			}
			if EdgeTable[mask]&(1<<uint(e)) == 0 {
				t.Errorf("mask %d: triangle uses edge %d which the edge table says is not crossed", mask, e)
			}
		}
		if entries%3 != 0 {
			t.Errorf("mask %d: %d edge entries, not a whole number of triangles", mask, entries)
		}
		if entries > 3*maxTrianglesPerCell {
			t.Errorf("mask %d: %d entries exceeds the %d triangle worst case", mask, entries, maxTrianglesPerCell)
		}
		if EdgeTable[mask] == 0 && entries != 0 {
			t.Errorf("mask %d: edge table empty but triangle table emits %d entries", mask, entries)
		}
		if EdgeTable[mask] != 0 && entries == 0 {
			t.Errorf("mask %d: edges crossed but no triangles", mask)
		}
	}
}

func TestEdgeCornersAreUnitEdges(t *testing.T) {
	for e, corners := range EdgeCorners {
		a := CornerOffsets[corners[0]]
		b := CornerOffsets[corners[1]]
		if ManhattanDistance3(a, b) != 1 {
			t.Errorf("edge %d connects corners %s and %s which are not adjacent", e, a.ToString(), b.ToString())
		}
	}
}
