// Package memory keeps every repository in process memory. It backs
// DB_DRIVER=memory and the service and handler tests.
package memory

import (
	"context"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/oksasatya/go-portfolio-api/internal/domain/entity"
	"github.com/oksasatya/go-portfolio-api/internal/domain/repository"
	"github.com/oksasatya/go-portfolio-api/pkg/apperror"
)

// Store holds the tables shared by the repositories it hands out.
type Store struct {
	mu   sync.Mutex
	txMu sync.Mutex
	now  func() time.Time

	seq      map[string]int64
	users    map[int64]entity.User
	personas map[int64]entity.Persona
	skills   map[int64]entity.Skill
	projects map[int64]entity.Project
	timeline map[int64]entity.TimelineEvent
}

func NewStore() *Store {
	return &Store{
		now:      time.Now,
		seq:      map[string]int64{},
		users:    map[int64]entity.User{},
		personas: map[int64]entity.Persona{},
		skills:   map[int64]entity.Skill{},
		projects: map[int64]entity.Project{},
		timeline: map[int64]entity.TimelineEvent{},
	}
}

func (s *Store) nextID(table string) int64 {
	s.seq[table]++
	return s.seq[table]
}

type txKey struct{}

// WithinTx serializes fn against other transactions. When fn fails every
// table is restored to its state at the start of the transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(ctx context.Context) error) error {
	if ctx.Value(txKey{}) != nil {
		return fn(ctx)
	}
	s.txMu.Lock()
	defer s.txMu.Unlock()

	snap := s.snapshot()
	if err := fn(context.WithValue(ctx, txKey{}, true)); err != nil {
		s.restore(snap)
		return err
	}
	return nil
}

// tables is a copy of the store contents. Rows are values, so cloning
// the maps is enough: writes replace rows instead of mutating them.
type tables struct {
	seq      map[string]int64
	users    map[int64]entity.User
	personas map[int64]entity.Persona
	skills   map[int64]entity.Skill
	projects map[int64]entity.Project
	timeline map[int64]entity.TimelineEvent
}

func (s *Store) snapshot() tables {
	s.mu.Lock()
	defer s.mu.Unlock()
	return tables{
		seq:      maps.Clone(s.seq),
		users:    maps.Clone(s.users),
		personas: maps.Clone(s.personas),
		skills:   maps.Clone(s.skills),
		projects: maps.Clone(s.projects),
		timeline: maps.Clone(s.timeline),
	}
}

func (s *Store) restore(t tables) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.seq, s.users, s.personas = t.seq, t.users, t.personas
	s.skills, s.projects, s.timeline = t.skills, t.projects, t.timeline
}

var _ repository.Transactor = (*Store)(nil)

func (s *Store) Users() *UserRepository       { return &UserRepository{s: s} }
func (s *Store) Personas() *PersonaRepository { return &PersonaRepository{s: s} }
func (s *Store) Skills() *SkillRepository     { return &SkillRepository{s: s} }
func (s *Store) Projects() *ProjectRepository { return &ProjectRepository{s: s} }
func (s *Store) Timeline() *TimelineRepository {
	return &TimelineRepository{s: s}
}

// sortByOrder orders rows "order" ascending with nulls last, then by less.
func sortByOrder[T any](rows []T, order func(T) *int, less func(a, b T) bool) {
	sort.SliceStable(rows, func(i, j int) bool {
		oi, oj := order(rows[i]), order(rows[j])
		switch {
		case oi != nil && oj == nil:
			return true
		case oi == nil && oj != nil:
			return false
		case oi != nil && oj != nil && *oi != *oj:
			return *oi < *oj
		}
		return less(rows[i], rows[j])
	})
}

func contains[T comparable](s []T, v T) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

func cloneSlice[T any](s []T) []T {
	out := make([]T, len(s))
	copy(out, s)
	return out
}

func applyPtr[T any](dst *T, v *T) bool {
	if v == nil {
		return false
	}
	*dst = *v
	return true
}

func applyOpt[T any](dst **T, o entity.Optional[T]) bool {
	if !o.Set {
		return false
	}
	*dst = o.Ptr()
	return true
}

func applyArray[T any](dst *[]T, o entity.Optional[[]T]) bool {
	if !o.Set {
		return false
	}
	if o.Null || o.Value == nil {
		*dst = []T{}
	} else {
		*dst = cloneSlice(o.Value)
	}
	return true
}

func emptyPatch() error {
	return apperror.Validation("No updatable fields provided.")
}
