package export

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/lumen/internal/engine/geometry"
)

// Job converts one OBJ file to glTF.
type Job struct {
	Source string
	Target string
}

// ConvertFile loads the OBJ at source and writes it to target as triangles.
// The target extension picks .glb or .gltf output. LoadOBJ rejects files
// without faces.
func ConvertFile(source, target string) error {
	m, err := geometry.LoadOBJ(source)
	if err != nil {
		return err
	}
	doc, err := MeshDocument(m, geometry.Triangles)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	return WriteFile(doc, target)
}

// PlanDir finds every .obj file below dir and maps it to outDir, keeping the
// relative layout and replacing the extension with ext (".glb" or ".gltf").
func PlanDir(dir, outDir, ext string) ([]Job, error) {
	var jobs []Job
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".obj") {
			return nil
		}
		rel, err := filepath.Rel(dir, path)
		if err != nil {
			return err
		}
		target := strings.TrimSuffix(rel, filepath.Ext(rel)) + ext
		jobs = append(jobs, Job{Source: path, Target: filepath.Join(outDir, target)})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning %s: %w", dir, err)
	}
	return jobs, nil
}

// ConvertAll runs jobs with at most limit conversions in flight and stops at
// the first failure. done is called from the worker goroutines after each
// successful job.
func ConvertAll(ctx context.Context, jobs []Job, limit int, done func(Job)) error {
	g, ctx := errgroup.WithContext(ctx)
	if limit > 0 {
		g.SetLimit(limit)
	}
	for _, job := range jobs {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := ConvertFile(job.Source, job.Target); err != nil {
				return fmt.Errorf("%s: %w", job.Source, err)
			}
			if done != nil {
				done(job)
			}
			return nil
		})
	}
	return g.Wait()
}
