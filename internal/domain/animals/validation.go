package animals

import (
	"errors"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
		return isISODate(fl.Field().String())
	})
	_ = v.RegisterValidation("finite", func(fl validator.FieldLevel) bool {
		f := fl.Field().Float()
		return !math.IsNaN(f) && !math.IsInf(f, 0)
	})
	return v
}

type CreateInput struct {
	ID          string   `validate:"required"`
	BirthDate   string   `validate:"required,isodate"`
	Breed       string   `validate:"required"`
	EntryWeight *float64 `validate:"required,finite,gte=0"`
	Category    string
}

// UpdateInput no incluye el ID: el identificador es inmutable.
type UpdateInput struct {
	BirthDate   string   `validate:"required,isodate"`
	Breed       string   `validate:"required"`
	EntryWeight *float64 `validate:"required,finite,gte=0"`
	Category    string
}

type WeightInput struct {
	Date string  `validate:"required,isodate"`
	Kg   float64 `validate:"finite,gte=0"`
}

type IllnessInput struct {
	Date          string `validate:"required,isodate"`
	Diagnosis     string `validate:"required"`
	TreatmentName string `validate:"required"`
	Dose          string `validate:"required"`
	Start         string `validate:"required,isodate"`
	End           string `validate:"required,isodate"`
}

type VaccinationInput struct {
	Date           string `validate:"required,isodate"`
	Name           string `validate:"required"`
	Lot            string
	Dose           string
	WithdrawalDays *int `validate:"omitempty,gte=0"`
}

type OffspringInput struct {
	ID        string `validate:"required"`
	BirthDate string `validate:"required,isodate"`
}

func (in *CreateInput) normalize() {
	in.ID = strings.TrimSpace(in.ID)
	in.BirthDate = strings.TrimSpace(in.BirthDate)
	in.Breed = strings.TrimSpace(in.Breed)
	in.Category = strings.TrimSpace(in.Category)
	in.EntryWeight = roundPtr(in.EntryWeight, 2)
}

func (in *UpdateInput) normalize() {
	in.BirthDate = strings.TrimSpace(in.BirthDate)
	in.Breed = strings.TrimSpace(in.Breed)
	in.Category = strings.TrimSpace(in.Category)
	in.EntryWeight = roundPtr(in.EntryWeight, 2)
}

func (in *WeightInput) normalize() {
	in.Date = strings.TrimSpace(in.Date)
	in.Kg = round(in.Kg, 2)
}

func (in *IllnessInput) normalize() {
	in.Date = strings.TrimSpace(in.Date)
	in.Diagnosis = strings.TrimSpace(in.Diagnosis)
	in.TreatmentName = strings.TrimSpace(in.TreatmentName)
	in.Dose = strings.TrimSpace(in.Dose)
	in.Start = strings.TrimSpace(in.Start)
	in.End = strings.TrimSpace(in.End)
}

func (in *VaccinationInput) normalize() {
	in.Date = strings.TrimSpace(in.Date)
	in.Name = strings.TrimSpace(in.Name)
	in.Lot = strings.TrimSpace(in.Lot)
	in.Dose = strings.TrimSpace(in.Dose)
}

func (in *OffspringInput) normalize() {
	in.ID = strings.TrimSpace(in.ID)
	in.BirthDate = strings.TrimSpace(in.BirthDate)
}

// checkIllness agrega la regla cruzada fin >= inicio.
func checkIllness(in IllnessInput) error {
	if err := check(in); err != nil {
		return err
	}
	if in.End < in.Start {
		return fmt.Errorf("%w: treatment end %s is before start %s", ErrInvalidInput, in.End, in.Start)
	}
	return nil
}

// check corre las reglas de tags y traduce los errores del validator a ErrInvalidInput.
func check(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, fmt.Sprintf("%s(%s)", fe.Field(), fe.Tag()))
		}
		return fmt.Errorf("%w: %s", ErrInvalidInput, strings.Join(fields, ", "))
	}
	return fmt.Errorf("%w: %v", ErrInvalidInput, err)
}

func isISODate(s string) bool {
	if len(s) != len(DateLayout) {
		return false
	}
	_, err := time.Parse(DateLayout, s)
	return err == nil
}

// roundPtr redondea sin perder la distinción entre ausente y cero.
func roundPtr(v *float64, decimals int) *float64 {
	if v == nil {
		return nil
	}
	r := round(*v, decimals)
	return &r
}
