// Package service loads the metadata source once and serves it read-only
package service

import (
	"errors"
	"io/fs"

	"startupsignal/internal/platform/logger"
	"startupsignal/internal/services/api/metadata/domain"
)

// Store holds metadata loaded at startup. It is never mutated after Load
type Store struct {
	path string
	md   domain.Metadata
	err  error
}

// Load reads path once. A missing source is logged at warn and a malformed one at error;
// both leave the store serving empty lists
func Load(path string) *Store {
	s := &Store{path: path}
	log := logger.Named("metadata")

	md, err := Read(path)
	switch {
	case err == nil:
		s.md = md
		log.Info().Str("path", path).
			Int("industries", len(md.Industries)).
			Int("regions", len(md.Regions)).
			Msg("metadata loaded")
	case errors.Is(err, fs.ErrNotExist):
		s.md, s.err = domain.Empty(), err
		log.Warn().Str("path", path).Msg("metadata source not found; serving empty lists")
	default:
		s.md, s.err = domain.Empty(), err
		log.Error().Err(err).Str("path", path).Msg("metadata source unreadable; serving empty lists")
	}
	return s
}

// Static wraps an already known value, mostly for tests and the CLI
func Static(md domain.Metadata) *Store { return &Store{md: md.Normalized()} }

// Get returns the cached metadata
func (s *Store) Get() domain.Metadata { return s.md }

// Err returns the load error, if the source was missing or malformed
func (s *Store) Err() error { return s.err }

// Path returns the configured source path
func (s *Store) Path() string { return s.path }
