package animals

import (
	"context"
	"fmt"
	"slices"
	"strings"
)

// Los sub-registros se identifican por UID estable (no por posición), así que
// un índice "viejo" de la vista nunca borra el registro equivocado.

func (s *Service) AddWeight(ctx context.Context, animalID string, in WeightInput) (Animal, error) {
	in.normalize()
	if err := check(in); err != nil {
		return Animal{}, err
	}

	return s.mutateAnimal(ctx, "add_weight", animalID, func(a *Animal) error {
		a.Weights = append(a.Weights, WeightReading{
			UID:  s.newID(),
			Date: in.Date,
			Kg:   in.Kg,
		})
		sortWeights(a.Weights)
		return nil
	})
}

func (s *Service) RemoveWeight(ctx context.Context, animalID, uid string) (Animal, error) {
	return s.mutateAnimal(ctx, "remove_weight", animalID, func(a *Animal) error {
		out, err := removeByUID(a.Weights, uid, func(w WeightReading) string { return w.UID })
		if err != nil {
			return err
		}
		a.Weights = out
		return nil
	})
}

func (s *Service) AddIllness(ctx context.Context, animalID string, in IllnessInput) (Animal, error) {
	in.normalize()
	if err := checkIllness(in); err != nil {
		return Animal{}, err
	}

	return s.mutateAnimal(ctx, "add_illness", animalID, func(a *Animal) error {
		a.Illnesses = append(a.Illnesses, IllnessEpisode{
			UID:       s.newID(),
			Date:      in.Date,
			Diagnosis: in.Diagnosis,
			Treatment: Treatment{
				Name:  in.TreatmentName,
				Dose:  in.Dose,
				Start: in.Start,
				End:   in.End,
			},
		})
		sortIllnesses(a.Illnesses)
		return nil
	})
}

func (s *Service) RemoveIllness(ctx context.Context, animalID, uid string) (Animal, error) {
	return s.mutateAnimal(ctx, "remove_illness", animalID, func(a *Animal) error {
		out, err := removeByUID(a.Illnesses, uid, func(e IllnessEpisode) string { return e.UID })
		if err != nil {
			return err
		}
		a.Illnesses = out
		return nil
	})
}

func (s *Service) AddVaccination(ctx context.Context, animalID string, in VaccinationInput) (Animal, error) {
	in.normalize()
	if err := check(in); err != nil {
		return Animal{}, err
	}

	var withdrawal WithdrawalDays
	if in.WithdrawalDays != nil {
		withdrawal = NewWithdrawalDays(*in.WithdrawalDays)
	}

	return s.mutateAnimal(ctx, "add_vaccination", animalID, func(a *Animal) error {
		a.Vaccinations = append(a.Vaccinations, Vaccination{
			UID:        s.newID(),
			Date:       in.Date,
			Name:       in.Name,
			Lot:        in.Lot,
			Dose:       in.Dose,
			Withdrawal: withdrawal,
		})
		sortVaccinations(a.Vaccinations)
		return nil
	})
}

func (s *Service) RemoveVaccination(ctx context.Context, animalID, uid string) (Animal, error) {
	return s.mutateAnimal(ctx, "remove_vaccination", animalID, func(a *Animal) error {
		out, err := removeByUID(a.Vaccinations, uid, func(v Vaccination) string { return v.UID })
		if err != nil {
			return err
		}
		a.Vaccinations = out
		return nil
	})
}

func (s *Service) AddOffspring(ctx context.Context, animalID string, in OffspringInput) (Animal, error) {
	in.normalize()
	if err := check(in); err != nil {
		return Animal{}, err
	}

	return s.mutateAnimal(ctx, "add_offspring", animalID, func(a *Animal) error {
		a.Offspring = append(a.Offspring, Offspring{
			UID:       s.newID(),
			ID:        in.ID,
			BirthDate: in.BirthDate,
		})
		sortOffspring(a.Offspring)
		return nil
	})
}

func (s *Service) RemoveOffspring(ctx context.Context, animalID, uid string) (Animal, error) {
	return s.mutateAnimal(ctx, "remove_offspring", animalID, func(a *Animal) error {
		out, err := removeByUID(a.Offspring, uid, func(o Offspring) string { return o.UID })
		if err != nil {
			return err
		}
		a.Offspring = out
		return nil
	})
}

func removeByUID[T any](items []T, uid string, uidOf func(T) string) ([]T, error) {
	uid = strings.TrimSpace(uid)
	i := slices.IndexFunc(items, func(it T) bool { return uidOf(it) == uid })
	if uid == "" || i < 0 {
		return nil, fmt.Errorf("%w: sub-record %q", ErrNotFound, uid)
	}
	return slices.Delete(items, i, i+1), nil
}

// Orden estable por fecha: registros del mismo día conservan el orden de carga.

func sortWeights(items []WeightReading) {
	slices.SortStableFunc(items, func(a, b WeightReading) int { return strings.Compare(a.Date, b.Date) })
}

func sortIllnesses(items []IllnessEpisode) {
	slices.SortStableFunc(items, func(a, b IllnessEpisode) int { return strings.Compare(a.Date, b.Date) })
}

func sortVaccinations(items []Vaccination) {
	slices.SortStableFunc(items, func(a, b Vaccination) int { return strings.Compare(a.Date, b.Date) })
}

func sortOffspring(items []Offspring) {
	slices.SortStableFunc(items, func(a, b Offspring) int { return strings.Compare(a.BirthDate, b.BirthDate) })
}
