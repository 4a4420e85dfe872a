package mcp

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"dealboard/internal/config"
	"dealboard/internal/crm"
	"dealboard/internal/ingest"

	"golang.org/x/sync/singleflight"
)

// session keeps the relations of the most recently loaded workbook set.
// Concurrent loads of the same files share one parse.
type session struct {
	cfg   *config.AppConfig
	group singleflight.Group

	mu      sync.Mutex
	loaded  map[string]*crm.Relations
	current string
}

func newSession(cfg *config.AppConfig) *session {
	return &session{cfg: cfg, loaded: make(map[string]*crm.Relations)}
}

// resolve makes relative paths absolute against DATA_PATH.
func (s *session) resolve(paths []string) []string {
	out := make([]string, len(paths))
	for i, p := range paths {
		p = strings.TrimSpace(p)
		if !filepath.IsAbs(p) && s.cfg != nil && s.cfg.DataPath != "" {
			p = filepath.Join(s.cfg.DataPath, p)
		}
		out[i] = filepath.Clean(p)
	}
	return out
}

// load parses the files (or reuses a previous parse when reload is false) and makes them current.
func (s *session) load(paths []string, reload bool) (*crm.Relations, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("at least one workbook path is required")
	}
	resolved := s.resolve(paths)
	key := strings.Join(resolved, "\x00")

	s.mu.Lock()
	if rel, ok := s.loaded[key]; ok && !reload {
		s.current = key
		s.mu.Unlock()
		return rel, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do(key, func() (interface{}, error) {
		var aliases map[string]string
		if s.cfg != nil {
			aliases = s.cfg.ColumnAliases
		}
		return ingest.Load(resolved, ingest.Options{Aliases: aliases})
	})
	if err != nil {
		return nil, err
	}
	rel := v.(*crm.Relations)

	s.mu.Lock()
	s.loaded[key] = rel
	s.current = key
	s.mu.Unlock()
	return rel, nil
}

// relations returns the current relation set.
func (s *session) relations() (*crm.Relations, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rel, ok := s.loaded[s.current]
	if !ok {
		return nil, fmt.Errorf("no workbooks loaded; call load_workbooks first")
	}
	return rel, nil
}
