package scanner

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"sort"
	"testing"
)

func TestFileWalker_Walk(t *testing.T) {
	// Create temp directory structure
	rootDir, err := os.MkdirTemp("", "scanner-test")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(rootDir)

	// Create files
	files := []string{
		"UserDao.java",
		"OrderDAO.java",
		"userdao.java",
		"Main.java",
		"readme.txt",
		"sub/ItemDao.java",
		"target/GeneratedDao.java",
		".git/objects/FakeDao.java",
	}

	for _, f := range files {
		path := filepath.Join(rootDir, f)
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte("public class X {}"), 0644); err != nil {
			t.Fatal(err)
		}
	}

	tests := []struct {
		name     string
		suffixes []string
		excludes []string
		want     []string
	}{
		{
			name:     "Both DAO suffixes, case-sensitive",
			suffixes: []string{"Dao.java", "DAO.java"},
			excludes: []string{"target"},
			want: []string{
				"OrderDAO.java",
				"UserDao.java",
				"sub/ItemDao.java",
			},
		},
		{
			name:     "Single suffix",
			suffixes: []string{"DAO.java"},
			excludes: nil,
			want: []string{
				"OrderDAO.java",
			},
		},
		{
			name:     "File exclusion pattern",
			suffixes: []string{"Dao.java"},
			excludes: []string{"target", "Item*"},
			want: []string{
				"UserDao.java",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			walker := NewFileWalker(tt.suffixes, tt.excludes)

			var got []string
			ctx := context.Background()
			paths, errs := walker.Walk(ctx, rootDir)
			for p := range paths {
				rel, err := filepath.Rel(rootDir, p)
				if err != nil {
					t.Fatalf("Rel error: %v", err)
				}
				got = append(got, filepath.ToSlash(rel))
			}
			if err := <-errs; err != nil {
				t.Fatalf("Walk() error = %v", err)
			}

			sort.Strings(got)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Walk() got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestFileWalker_Cancellation(t *testing.T) {
	rootDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(rootDir, "UserDao.java"), []byte("x"), 0644); err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	walker := NewFileWalker([]string{"Dao.java"}, nil)
	paths, errs := walker.Walk(ctx, rootDir)

	for range paths {
	}
	if err := <-errs; err == nil {
		t.Error("expected a cancellation error from Walk()")
	}
}
