package testfs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSowCreatesFilesCorrectly(t *testing.T) {
	root := t.TempDir()

	spec := FileTree{
		Volumes: []Volume{
			{
				Root: "vol1",
				Files: []File{
					{Path: "a.txt", Chunks: []Chunk{{Pattern: 'A', Size: "100"}}},
					{Path: "b.txt", Chunks: []Chunk{{Pattern: 'B', Size: "50"}}},
				},
			},
		},
	}

	if err := SowFileTree(root, spec); err != nil {
		t.Fatalf("SowFileTree failed: %v", err)
	}

	contentA, err := os.ReadFile(filepath.Join(root, "vol1", "a.txt"))
	if err != nil {
		t.Fatalf("failed to read a.txt: %v", err)
	}
	if len(contentA) != 100 {
		t.Errorf("a.txt size: got %d, want 100", len(contentA))
	}
	for i, b := range contentA {
		if b != 'A' {
			t.Errorf("a.txt content[%d]: got %q, want 'A'", i, b)
			break
		}
	}

	contentB, err := os.ReadFile(filepath.Join(root, "vol1", "b.txt"))
	if err != nil {
		t.Fatalf("failed to read b.txt: %v", err)
	}
	if len(contentB) != 50 {
		t.Errorf("b.txt size: got %d, want 50", len(contentB))
	}
}

func TestSowMultiChunkContent(t *testing.T) {
	root := t.TempDir()

	spec := FileTree{
		Volumes: []Volume{
			{
				Root: "vol1",
				Files: []File{
					{Path: "multi.txt", Chunks: []Chunk{
						{Pattern: 'A', Size: "100"},
						{Pattern: 'B', Size: "100"},
						{Pattern: 'C', Size: "50"},
					}},
				},
			},
		},
	}

	if err := SowFileTree(root, spec); err != nil {
		t.Fatalf("SowFileTree failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(root, "vol1", "multi.txt"))
	if err != nil {
		t.Fatalf("failed to read multi.txt: %v", err)
	}
	if len(content) != 250 {
		t.Errorf("multi.txt size: got %d, want 250", len(content))
	}
	for i := 0; i < 100; i++ {
		if content[i] != 'A' {
			t.Errorf("content[%d]: got %q, want 'A'", i, content[i])
			break
		}
	}
	for i := 200; i < 250; i++ {
		if content[i] != 'C' {
			t.Errorf("content[%d]: got %q, want 'C'", i, content[i])
			break
		}
	}
}

func TestFileTotalSize(t *testing.T) {
	tests := []struct {
		name   string
		chunks []Chunk
		want   int64
	}{
		{name: "empty chunks", chunks: nil, want: 0},
		{name: "single chunk", chunks: []Chunk{{Pattern: 'A', Size: "1KiB"}}, want: 1024},
		{
			name: "multiple chunks",
			chunks: []Chunk{
				{Pattern: 'A', Size: "1KiB"},
				{Pattern: 'B', Size: "1MiB"},
			},
			want: 1024 + 1048576,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := File{Chunks: tt.chunks}
			if got := f.TotalSize(); got != tt.want {
				t.Errorf("TotalSize() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestHarnessAssertExistsAndAbsent(t *testing.T) {
	given := FileTree{
		Volumes: []Volume{
			{Root: "vol1", Files: []File{
				{Path: "a.txt", Chunks: []Chunk{{Pattern: 'A', Size: "10"}}},
			}},
		},
	}
	h := New(t, given)
	h.AssertExists("vol1/a.txt")
	h.AssertAbsent("vol1/missing.txt")
	h.AssertContent("vol1/a.txt", "AAAAAAAAAA")
}

func TestHarnessCountFiles(t *testing.T) {
	given := FileTree{
		Volumes: []Volume{
			{Root: "vol1", Files: []File{
				{Path: "a.txt", Chunks: []Chunk{{Pattern: 'A', Size: "1"}}},
				{Path: "sub/b.txt", Chunks: []Chunk{{Pattern: 'B', Size: "1"}}},
			}},
		},
	}
	h := New(t, given)
	if got := h.CountFiles("vol1"); got != 2 {
		t.Errorf("CountFiles() = %d, want 2", got)
	}
}
