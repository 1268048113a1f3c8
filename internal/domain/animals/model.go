package animals

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// DateLayout es el formato fijo de todas las fechas (YYYY-MM-DD).
// Al ser de ancho fijo, comparar strings equivale a comparar fechas.
const DateLayout = "2006-01-02"

// Animal representa un individuo del rodeo con todos sus sub-registros.
// Los tags json son el contrato del documento persistido / exportado.
type Animal struct {
	ID          string  `json:"id"`
	BirthDate   string  `json:"nacimiento"`
	Breed       string  `json:"raza"`
	EntryWeight float64 `json:"pesoIngreso"`
	Category    string  `json:"categoria"`

	Weights      []WeightReading  `json:"pesos"`
	Illnesses    []IllnessEpisode `json:"enfermedades"`
	Offspring    []Offspring      `json:"crias"`
	Vaccinations []Vaccination    `json:"vacunas"`
}

// WeightReading es una pesada fechada.
type WeightReading struct {
	UID  string  `json:"uid"`
	Date string  `json:"fecha"`
	Kg   float64 `json:"kg"`
}

// Treatment es el tratamiento asociado a una enfermedad.
type Treatment struct {
	Name  string `json:"nombre"`
	Dose  string `json:"dosis"`
	Start string `json:"inicio"`
	End   string `json:"fin"`
}

// IllnessEpisode es un diagnóstico fechado con su tratamiento.
type IllnessEpisode struct {
	UID       string    `json:"uid"`
	Date      string    `json:"fecha"`
	Diagnosis string    `json:"diagnostico"`
	Treatment Treatment `json:"tratamiento"`
}

// Vaccination es una aplicación de vacuna. Withdrawal es el período de retiro en días (opcional).
type Vaccination struct {
	UID        string         `json:"uid"`
	Date       string         `json:"fecha"`
	Name       string         `json:"nombre"`
	Lot        string         `json:"lote"`
	Dose       string         `json:"dosis"`
	Withdrawal WithdrawalDays `json:"retiro"`
}

// Offspring es una referencia liviana a una cría; ID no se valida contra otros animales.
type Offspring struct {
	UID       string `json:"uid"`
	ID        string `json:"id"`
	BirthDate string `json:"nacimiento"`
}

// WithdrawalDays modela el retiro como entero opcional.
// En JSON se escribe como número o "" (vacío), igual que los documentos existentes.
type WithdrawalDays struct {
	Days *int
}

// NewWithdrawalDays devuelve un retiro con valor.
func NewWithdrawalDays(days int) WithdrawalDays {
	return WithdrawalDays{Days: &days}
}

func (w WithdrawalDays) IsSet() bool { return w.Days != nil }

func (w WithdrawalDays) MarshalJSON() ([]byte, error) {
	if w.Days == nil {
		return []byte(`""`), nil
	}
	return []byte(strconv.Itoa(*w.Days)), nil
}

// UnmarshalJSON acepta número, string numérico, "" o null.
func (w *WithdrawalDays) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || string(b) == "null" {
		w.Days = nil
		return nil
	}

	raw := string(b)
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		raw = strings.TrimSpace(s)
		if raw == "" {
			w.Days = nil
			return nil
		}
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		// Algunos exports guardan el número como float ("7.0").
		f, ferr := strconv.ParseFloat(raw, 64)
		if ferr != nil || f != float64(int(f)) {
			return fmt.Errorf("retiro must be an integer or empty, got %s", string(b))
		}
		n = int(f)
	}
	if n < 0 {
		return fmt.Errorf("retiro must be non-negative, got %d", n)
	}
	w.Days = &n
	return nil
}

// clone hace una copia profunda; el store nunca entrega referencias a su estado.
func (a Animal) clone() Animal {
	out := a
	out.Weights = append(make([]WeightReading, 0, len(a.Weights)), a.Weights...)
	out.Illnesses = append(make([]IllnessEpisode, 0, len(a.Illnesses)), a.Illnesses...)
	out.Offspring = append(make([]Offspring, 0, len(a.Offspring)), a.Offspring...)
	out.Vaccinations = make([]Vaccination, 0, len(a.Vaccinations))
	for _, v := range a.Vaccinations {
		if v.Withdrawal.Days != nil {
			v.Withdrawal = NewWithdrawalDays(*v.Withdrawal.Days)
		}
		out.Vaccinations = append(out.Vaccinations, v)
	}
	return out
}
