package animals

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	"livestock-records/internal/platform/logger"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Service es el store de registros: dueño exclusivo de la lista de animales.
// Se hidrata una vez desde el proveedor (Load) y persiste el documento completo después de cada mutación.
// Todas las operaciones se serializan con mu: hay un solo actor lógico.
type Service struct {
	mu      sync.Mutex
	animals []Animal

	repo Repository
	key  string
	log  logger.Logger

	now   func() time.Time
	newID func() string
}

type Options struct {
	StoreKey string        // default: DefaultStoreKey
	Logger   logger.Logger // default: logger.Nop()
}

func NewService(repo Repository, opts Options) *Service {
	key := strings.TrimSpace(opts.StoreKey)
	if key == "" {
		key = DefaultStoreKey
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	return &Service{
		animals: make([]Animal, 0),
		repo:    repo,
		key:     key,
		log:     log.With(map[string]any{"component": "animals", "store_key": key}),
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Load reemplaza el estado en memoria por el documento persistido.
// Errores de lectura o decodificación degradan a un store vacío (no se propagan).
func (s *Service) Load(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.animals = make([]Animal, 0)

	raw, err := s.repo.Load(ctx, s.key)
	if err != nil {
		if !errors.Is(err, ErrNoDocument) {
			s.log.Warn("load failed, starting empty", map[string]any{"error": err.Error()})
		}
		return nil
	}

	items, err := decodeDocument(raw, s.newID)
	if err != nil {
		s.log.Warn("stored document is corrupt, starting empty", map[string]any{"error": err.Error()})
		return nil
	}

	s.animals = items
	s.log.Info("store loaded", map[string]any{"animals": len(items)})
	return nil
}

func (s *Service) Create(ctx context.Context, in CreateInput) (Animal, error) {
	in.normalize()
	if err := check(in); err != nil {
		return Animal{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.animals, in.ID) >= 0 {
		return Animal{}, fmt.Errorf("%w: %s", ErrDuplicateIdentifier, in.ID)
	}

	a := Animal{
		ID:           in.ID,
		BirthDate:    in.BirthDate,
		Breed:        in.Breed,
		EntryWeight:  *in.EntryWeight,
		Category:     in.Category,
		Weights:      []WeightReading{},
		Illnesses:    []IllnessEpisode{},
		Offspring:    []Offspring{},
		Vaccinations: []Vaccination{},
	}

	if err := s.commit(ctx, "create", func(next []Animal) ([]Animal, error) {
		return append(next, a), nil
	}); err != nil {
		return Animal{}, err
	}
	return a.clone(), nil
}

// Update pisa los campos mutables. El ID nunca cambia.
func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	in.normalize()
	if err := check(in); err != nil {
		return Animal{}, err
	}

	return s.mutateAnimal(ctx, "update", id, func(a *Animal) error {
		a.BirthDate = in.BirthDate
		a.Breed = in.Breed
		a.EntryWeight = *in.EntryWeight
		a.Category = in.Category
		return nil
	})
}

// Delete elimina el animal y, con él, todos sus sub-registros.
func (s *Service) Delete(ctx context.Context, id string) error {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	if indexOf(s.animals, id) < 0 {
		return fmt.Errorf("%w: animal %s", ErrNotFound, id)
	}

	return s.commit(ctx, "delete", func(next []Animal) ([]Animal, error) {
		i := indexOf(next, id)
		return slices.Delete(next, i, i+1), nil
	})
}

func (s *Service) Find(ctx context.Context, id string) (Animal, bool) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	i := indexOf(s.animals, id)
	if i < 0 {
		return Animal{}, false
	}
	return s.animals[i].clone(), true
}

// List filtra por ID o raza (sin distinguir mayúsculas) y ordena por ID.
// El orden es lexicográfico sobre el string crudo: "10" va antes que "2".
func (s *Service) List(ctx context.Context, filterText string) []Animal {
	term := strings.ToLower(strings.TrimSpace(filterText))

	s.mu.Lock()
	matched := lo.FilterMap(s.animals, func(a Animal, _ int) (Animal, bool) {
		if term == "" {
			return a.clone(), true
		}
		ok := strings.Contains(strings.ToLower(a.ID), term) || strings.Contains(strings.ToLower(a.Breed), term)
		return a.clone(), ok
	})
	s.mu.Unlock()

	slices.SortStableFunc(matched, func(a, b Animal) int {
		return strings.Compare(a.ID, b.ID)
	})
	return matched
}

func (s *Service) Count(ctx context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.animals)
}

// ClearAll vacía el store completo (acción destructiva; el caller confirma).
func (s *Service) ClearAll(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.commit(ctx, "clear_all", func(_ []Animal) ([]Animal, error) {
		return make([]Animal, 0), nil
	})
}

// mutateAnimal aplica fn sobre una copia del animal y persiste. Devuelve el animal actualizado.
func (s *Service) mutateAnimal(ctx context.Context, op, id string, fn func(a *Animal) error) (Animal, error) {
	id = strings.TrimSpace(id)

	s.mu.Lock()
	defer s.mu.Unlock()

	var updated Animal
	err := s.commit(ctx, op, func(next []Animal) ([]Animal, error) {
		i := indexOf(next, id)
		if i < 0 {
			return nil, fmt.Errorf("%w: animal %s", ErrNotFound, id)
		}
		if err := fn(&next[i]); err != nil {
			return nil, err
		}
		updated = next[i]
		return next, nil
	})
	if err != nil {
		return Animal{}, err
	}
	return updated.clone(), nil
}

// commit aplica fn sobre una copia profunda del estado, guarda el documento completo
// y recién entonces reemplaza el estado en memoria. Requiere mu tomado.
func (s *Service) commit(ctx context.Context, op string, fn func(next []Animal) ([]Animal, error)) error {
	next := cloneAll(s.animals)

	next, err := fn(next)
	if err != nil {
		return err
	}

	if err := s.persist(ctx, next); err != nil {
		s.log.Error("persist failed", map[string]any{"op": op, "error": err.Error()})
		return err
	}

	s.animals = next
	s.log.Debug("store mutated", map[string]any{"op": op, "animals": len(next)})
	return nil
}

func (s *Service) persist(ctx context.Context, items []Animal) error {
	b, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrPersistence, err)
	}
	if err := s.repo.Save(ctx, s.key, b); err != nil {
		return fmt.Errorf("%w: %v", ErrPersistence, err)
	}
	return nil
}

func indexOf(items []Animal, id string) int {
	return slices.IndexFunc(items, func(a Animal) bool { return a.ID == id })
}

func cloneAll(items []Animal) []Animal {
	return lo.Map(items, func(a Animal, _ int) Animal { return a.clone() })
}
