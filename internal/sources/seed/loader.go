// Package seed loads an initial set of services from a YAML file into an
// empty store.
package seed

import (
	"context"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/MrSnakeDoc/statuspage/internal/domain"
	"github.com/MrSnakeDoc/statuspage/internal/logger"
	"github.com/MrSnakeDoc/statuspage/internal/store"
)

// Loader reads a seed file from disk.
type Loader struct {
	filePath string
}

// NewLoader creates a new seed loader
func NewLoader(filePath string) *Loader {
	return &Loader{filePath: filePath}
}

// Load reads, expands ${VAR} references and parses the seed file.
func (l *Loader) Load() (*File, error) {
	data, err := os.ReadFile(l.filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var f File
	if err := yaml.Unmarshal([]byte(os.ExpandEnv(string(data))), &f); err != nil {
		return nil, fmt.Errorf("failed to parse seed yaml: %w", err)
	}
	return &f, nil
}

// Fields converts every entry to validated ServiceFields. The first invalid
// entry aborts the whole file.
func (f *File) Fields() ([]domain.ServiceFields, error) {
	out := make([]domain.ServiceFields, 0, len(f.Services))
	for i, e := range f.Services {
		fields, err := e.fields()
		if err != nil {
			return nil, fmt.Errorf("seed entry %d (%q): %w", i+1, e.Name, err)
		}
		out = append(out, fields)
	}
	return out, nil
}

func (e Entry) fields() (domain.ServiceFields, error) {
	name, desc := e.Name, e.Description
	fields := domain.ServiceFields{Name: &name, Description: &desc}

	if e.Status != "" {
		status, err := domain.ParseStatus(e.Status)
		if err != nil {
			return domain.ServiceFields{}, err
		}
		fields.Status = &status
	}

	if err := fields.ValidateCreate(); err != nil {
		return domain.ServiceFields{}, err
	}
	return fields, nil
}

// Apply creates the seed services when the store holds none. It returns the
// number of services created.
func Apply(ctx context.Context, st store.ServiceStore, f *File, log logger.Logger) (int, error) {
	fields, err := f.Fields()
	if err != nil {
		return 0, err
	}

	existing, err := st.List(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list services: %w", err)
	}
	if len(existing) > 0 {
		log.Info("store already populated, skipping seed",
			logger.Int("existing", len(existing)))
		return 0, nil
	}

	for _, fl := range fields {
		svc := fl.NewService()
		if err := st.Create(ctx, svc); err != nil {
			return 0, fmt.Errorf("failed to create seed service %q: %w", svc.Name, err)
		}
		log.Debug("seeded service",
			logger.String("id", svc.ID),
			logger.String("name", svc.Name))
	}

	log.Info("seed applied", logger.Int("services", len(fields)))
	return len(fields), nil
}
