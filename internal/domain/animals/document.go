package animals

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// Import reemplaza el store completo por el documento recibido (no es un merge).
// Cualquier error aborta la importación entera y deja el store intacto.
func (s *Service) Import(ctx context.Context, doc []byte) (int, error) {
	items, err := decodeDocument(doc, s.newID)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.commit(ctx, "import", func(_ []Animal) ([]Animal, error) {
		return items, nil
	}); err != nil {
		return 0, err
	}

	s.log.Info("store imported", map[string]any{"animals": len(items)})
	return len(items), nil
}

// Export serializa el store completo, indentado, sin filtrar.
func (s *Service) Export(ctx context.Context) ([]byte, error) {
	s.mu.Lock()
	items := cloneAll(s.animals)
	s.mu.Unlock()

	b, err := json.MarshalIndent(items, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encode export: %w", err)
	}
	return b, nil
}

// ExportFilename devuelve el nombre de descarga con la fecha actual: ganado-YYYY-MM-DD.json
func (s *Service) ExportFilename() string {
	return ExportFilename(s.now())
}

func ExportFilename(now time.Time) string {
	return "ganado-" + now.Format(DateLayout) + ".json"
}

// decodeDocument valida la forma del documento y completa los campos faltantes.
// - top-level que no es arreglo => ErrMalformedDocument
// - elemento sin id string (o con campos de tipo inválido) => ErrInvalidRecord
// - listas faltantes => vacías; pesoIngreso faltante => 0; categoria faltante => ""
func decodeDocument(doc []byte, newID func() string) ([]Animal, error) {
	trimmed := bytes.TrimSpace(doc)
	if len(trimmed) == 0 || trimmed[0] != '[' {
		return nil, fmt.Errorf("%w: expected an array of animals", ErrMalformedDocument)
	}

	var raws []json.RawMessage
	if err := json.Unmarshal(trimmed, &raws); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	out := make([]Animal, 0, len(raws))
	for i, raw := range raws {
		a, err := decodeRecord(raw, newID)
		if err != nil {
			return nil, fmt.Errorf("%w: record %d: %v", ErrInvalidRecord, i, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func decodeRecord(raw json.RawMessage, newID func() string) (Animal, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(raw, &probe); err != nil || probe == nil {
		return Animal{}, fmt.Errorf("not an object")
	}

	idRaw, ok := probe["id"]
	idRaw = bytes.TrimSpace(idRaw)
	if !ok || len(idRaw) == 0 || idRaw[0] != '"' {
		return Animal{}, fmt.Errorf("missing string id")
	}

	var a Animal
	if err := json.Unmarshal(raw, &a); err != nil {
		return Animal{}, err
	}
	// las búsquedas recortan el id: se guarda ya recortado
	a.ID = strings.TrimSpace(a.ID)
	if a.ID == "" {
		return Animal{}, fmt.Errorf("empty id")
	}

	fillDefaults(&a, newID)
	return a, nil
}

func fillDefaults(a *Animal, newID func() string) {
	if a.Weights == nil {
		a.Weights = []WeightReading{}
	}
	if a.Illnesses == nil {
		a.Illnesses = []IllnessEpisode{}
	}
	if a.Offspring == nil {
		a.Offspring = []Offspring{}
	}
	if a.Vaccinations == nil {
		a.Vaccinations = []Vaccination{}
	}

	for i := range a.Weights {
		if a.Weights[i].UID == "" {
			a.Weights[i].UID = newID()
		}
	}
	for i := range a.Illnesses {
		if a.Illnesses[i].UID == "" {
			a.Illnesses[i].UID = newID()
		}
	}
	for i := range a.Offspring {
		if a.Offspring[i].UID == "" {
			a.Offspring[i].UID = newID()
		}
	}
	for i := range a.Vaccinations {
		if a.Vaccinations[i].UID == "" {
			a.Vaccinations[i].UID = newID()
		}
	}

	sortWeights(a.Weights)
	sortIllnesses(a.Illnesses)
	sortOffspring(a.Offspring)
	sortVaccinations(a.Vaccinations)
}
