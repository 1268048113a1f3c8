package animals

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/samber/lo"
)

// maxImportBytes limita el cuerpo de POST /import.
const maxImportBytes = 10 << 20

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/animals", func(ar chi.Router) {
		ar.Get("/", listAnimalsHandler(svc))
		ar.Post("/", createAnimalHandler(svc))
		ar.Delete("/", clearAnimalsHandler(svc))

		ar.Route("/{animalID}", func(one chi.Router) {
			one.Get("/", getAnimalHandler(svc))
			one.Put("/", updateAnimalHandler(svc))
			one.Delete("/", deleteAnimalHandler(svc))

			one.Post("/weights", addWeightHandler(svc))
			one.Delete("/weights/{uid}", removeSubRecordHandler(svc.RemoveWeight))

			one.Post("/illnesses", addIllnessHandler(svc))
			one.Delete("/illnesses/{uid}", removeSubRecordHandler(svc.RemoveIllness))

			one.Post("/vaccinations", addVaccinationHandler(svc))
			one.Delete("/vaccinations/{uid}", removeSubRecordHandler(svc.RemoveVaccination))

			one.Post("/offspring", addOffspringHandler(svc))
			one.Delete("/offspring/{uid}", removeSubRecordHandler(svc.RemoveOffspring))
		})
	})

	r.Get("/export", exportHandler(svc))
	r.Post("/import", importHandler(svc))
}

type createAnimalRequest struct {
	ID          string   `json:"id"`
	BirthDate   string   `json:"birth_date"` // YYYY-MM-DD
	Breed       string   `json:"breed"`
	EntryWeight *float64 `json:"entry_weight"` // obligatorio (0 se envía explícito)
	Category    string   `json:"category"`
}

type updateAnimalRequest struct {
	BirthDate   string   `json:"birth_date"`
	Breed       string   `json:"breed"`
	EntryWeight *float64 `json:"entry_weight"`
	Category    string   `json:"category"`
}

type addWeightRequest struct {
	Date string  `json:"date"`
	Kg   float64 `json:"kg"`
}

type addIllnessRequest struct {
	Date          string `json:"date"`
	Diagnosis     string `json:"diagnosis"`
	TreatmentName string `json:"treatment_name"`
	Dose          string `json:"dose"`
	Start         string `json:"start"`
	End           string `json:"end"`
}

type addVaccinationRequest struct {
	Date           string `json:"date"`
	Name           string `json:"name"`
	Lot            string `json:"lot"`
	Dose           string `json:"dose"`
	WithdrawalDays *int   `json:"withdrawal_days"` // opcional
}

type addOffspringRequest struct {
	ID        string `json:"id"`
	BirthDate string `json:"birth_date"`
}

type summaryResponse struct {
	CurrentWeight    *float64 `json:"current_weight"`
	TotalGain        *float64 `json:"total_gain"`
	AverageDailyGain *float64 `json:"average_daily_gain"`
	OffspringCount   int      `json:"offspring_count"`
}

type animalListItem struct {
	ID          string          `json:"id"`
	BirthDate   string          `json:"birth_date"`
	Breed       string          `json:"breed"`
	EntryWeight float64         `json:"entry_weight"`
	Category    string          `json:"category"`
	Summary     summaryResponse `json:"summary"`
}

type weightResponse struct {
	UID  string  `json:"uid"`
	Date string  `json:"date"`
	Kg   float64 `json:"kg"`
}

type treatmentResponse struct {
	Name  string `json:"name"`
	Dose  string `json:"dose"`
	Start string `json:"start"`
	End   string `json:"end"`
}

type illnessResponse struct {
	UID       string            `json:"uid"`
	Date      string            `json:"date"`
	Diagnosis string            `json:"diagnosis"`
	Treatment treatmentResponse `json:"treatment"`
}

type vaccinationResponse struct {
	UID            string `json:"uid"`
	Date           string `json:"date"`
	Name           string `json:"name"`
	Lot            string `json:"lot"`
	Dose           string `json:"dose"`
	WithdrawalDays *int   `json:"withdrawal_days"`
}

type offspringResponse struct {
	UID       string `json:"uid"`
	ID        string `json:"id"`
	BirthDate string `json:"birth_date"`
}

type animalResponse struct {
	animalListItem
	Weights      []weightResponse      `json:"weights"`
	Illnesses    []illnessResponse     `json:"illnesses"`
	Vaccinations []vaccinationResponse `json:"vaccinations"`
	Offspring    []offspringResponse   `json:"offspring"`
}

type importResponse struct {
	Imported int `json:"imported"`
}

// listAnimalsHandler godoc
// @Summary Listar animales
// @Description Lista los animales ordenados por ID (orden lexicográfico del string). `q` filtra por ID o raza sin distinguir mayúsculas.
// @Tags animals
// @Produce json
// @Param q query string false "Texto a buscar en ID o raza"
// @Success 200 {array} animalListItem
// @Router /animals [get]
func listAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items := svc.List(r.Context(), r.URL.Query().Get("q"))
		writeJSON(w, http.StatusOK, lo.Map(items, func(a Animal, _ int) animalListItem {
			return toListItem(a)
		}))
	}
}

// createAnimalHandler godoc
// @Summary Alta de animal
// @Tags animals
// @Accept json
// @Produce json
// @Param payload body createAnimalRequest true "Datos del animal; birth_date en formato YYYY-MM-DD"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / campos requeridos / fecha inválida"
// @Failure 409 {string} string "duplicate identifier"
// @Failure 500 {string} string "persistence failure"
// @Router /animals [post]
func createAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createAnimalRequest
		if !decodeBody(w, r, &req) {
			return
		}

		a, err := svc.Create(r.Context(), CreateInput{
			ID:          req.ID,
			BirthDate:   req.BirthDate,
			Breed:       req.Breed,
			EntryWeight: req.EntryWeight,
			Category:    req.Category,
		})
		if err != nil {
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// getAnimalHandler godoc
// @Summary Ficha del animal
// @Description Devuelve el animal con sus sub-registros y métricas derivadas (peso actual, ganancia total, ganancia diaria promedio).
// @Tags animals
// @Produce json
// @Param animalID path string true "ID del animal"
// @Success 200 {object} animalResponse
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [get]
func getAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, ok := svc.Find(r.Context(), chi.URLParam(r, "animalID"))
		if !ok {
			http.Error(w, "animal not found", http.StatusNotFound)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// updateAnimalHandler godoc
// @Summary Editar animal
// @Description Reemplaza nacimiento, raza, peso de ingreso y categoría. El ID no se puede cambiar.
// @Tags animals
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body updateAnimalRequest true "Campos editables"
// @Success 200 {object} animalResponse
// @Failure 400 {string} string "invalid json / campos requeridos / fecha inválida"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [put]
func updateAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req updateAnimalRequest
		if !decodeBody(w, r, &req) {
			return
		}

		a, err := svc.Update(r.Context(), chi.URLParam(r, "animalID"), UpdateInput{
			BirthDate:   req.BirthDate,
			Breed:       req.Breed,
			EntryWeight: req.EntryWeight,
			Category:    req.Category,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// deleteAnimalHandler godoc
// @Summary Eliminar animal
// @Description Elimina el animal junto con todas sus pesadas, enfermedades, vacunas y crías.
// @Tags animals
// @Param animalID path string true "ID del animal"
// @Success 204
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID} [delete]
func deleteAnimalHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), chi.URLParam(r, "animalID")); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// clearAnimalsHandler godoc
// @Summary Borrar todo
// @Description Vacía el registro completo. Requiere `confirm=true`.
// @Tags animals
// @Param confirm query bool true "Confirmación explícita"
// @Success 204
// @Failure 412 {string} string "confirmation required"
// @Router /animals [delete]
func clearAnimalsHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !confirmed(r) {
			http.Error(w, "confirmation required (confirm=true)", http.StatusPreconditionFailed)
			return
		}
		if err := svc.ClearAll(r.Context()); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// addWeightHandler godoc
// @Summary Registrar pesada
// @Tags subrecords
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body addWeightRequest true "Fecha YYYY-MM-DD y kg (>= 0)"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / fecha inválida / kg negativo"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/weights [post]
func addWeightHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addWeightRequest
		if !decodeBody(w, r, &req) {
			return
		}
		a, err := svc.AddWeight(r.Context(), chi.URLParam(r, "animalID"), WeightInput{Date: req.Date, Kg: req.Kg})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// addIllnessHandler godoc
// @Summary Registrar enfermedad
// @Description Todos los campos son obligatorios. El fin del tratamiento no puede ser anterior al inicio.
// @Tags subrecords
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body addIllnessRequest true "Episodio y tratamiento"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / campos requeridos / end < start"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/illnesses [post]
func addIllnessHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addIllnessRequest
		if !decodeBody(w, r, &req) {
			return
		}
		a, err := svc.AddIllness(r.Context(), chi.URLParam(r, "animalID"), IllnessInput{
			Date:          req.Date,
			Diagnosis:     req.Diagnosis,
			TreatmentName: req.TreatmentName,
			Dose:          req.Dose,
			Start:         req.Start,
			End:           req.End,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// addVaccinationHandler godoc
// @Summary Registrar vacuna
// @Tags subrecords
// @Accept json
// @Produce json
// @Param animalID path string true "ID del animal"
// @Param payload body addVaccinationRequest true "Fecha y nombre obligatorios; withdrawal_days opcional (>= 0)"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / campos requeridos"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/vaccinations [post]
func addVaccinationHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addVaccinationRequest
		if !decodeBody(w, r, &req) {
			return
		}
		a, err := svc.AddVaccination(r.Context(), chi.URLParam(r, "animalID"), VaccinationInput{
			Date:           req.Date,
			Name:           req.Name,
			Lot:            req.Lot,
			Dose:           req.Dose,
			WithdrawalDays: req.WithdrawalDays,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// addOffspringHandler godoc
// @Summary Registrar cría
// @Tags subrecords
// @Accept json
// @Produce json
// @Param animalID path string true "ID de la madre"
// @Param payload body addOffspringRequest true "ID de la cría y fecha de nacimiento"
// @Success 201 {object} animalResponse
// @Failure 400 {string} string "invalid json / campos requeridos"
// @Failure 404 {string} string "animal not found"
// @Router /animals/{animalID}/offspring [post]
func addOffspringHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req addOffspringRequest
		if !decodeBody(w, r, &req) {
			return
		}
		a, err := svc.AddOffspring(r.Context(), chi.URLParam(r, "animalID"), OffspringInput{
			ID:        req.ID,
			BirthDate: req.BirthDate,
		})
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toAnimalResponse(a))
	}
}

// removeSubRecordHandler sirve los cuatro DELETE /animals/{animalID}/<lista>/{uid}.
func removeSubRecordHandler(remove func(ctx context.Context, animalID, uid string) (Animal, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		a, err := remove(r.Context(), chi.URLParam(r, "animalID"), chi.URLParam(r, "uid"))
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toAnimalResponse(a))
	}
}

// exportHandler godoc
// @Summary Exportar registro
// @Description Descarga el documento completo (formato de persistencia) como ganado-YYYY-MM-DD.json.
// @Tags document
// @Produce json
// @Success 200 {file} file
// @Router /export [get]
func exportHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		b, err := svc.Export(r.Context())
		if err != nil {
			writeError(w, err)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="`+svc.ExportFilename()+`"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(b)
	}
}

// importHandler godoc
// @Summary Importar registro
// @Description Reemplaza el registro completo por el documento enviado (no hace merge). Requiere `confirm=true`.
// @Tags document
// @Accept json
// @Produce json
// @Param confirm query bool true "Confirmación explícita"
// @Param payload body string true "Arreglo JSON de animales"
// @Success 200 {object} importResponse
// @Failure 400 {string} string "malformed document / invalid record"
// @Failure 412 {string} string "confirmation required"
// @Router /import [post]
func importHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if !confirmed(r) {
			http.Error(w, "confirmation required (confirm=true)", http.StatusPreconditionFailed)
			return
		}

		body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxImportBytes))
		if err != nil {
			http.Error(w, "could not read body", http.StatusBadRequest)
			return
		}

		n, err := svc.Import(r.Context(), body)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, importResponse{Imported: n})
	}
}

func confirmed(r *http.Request) bool {
	ok, _ := strconv.ParseBool(r.URL.Query().Get("confirm"))
	return ok
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return false
	}
	return true
}

// writeError traduce los errores del store a status HTTP.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrInvalidInput),
		errors.Is(err, ErrMalformedDocument),
		errors.Is(err, ErrInvalidRecord):
		http.Error(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, ErrNotFound):
		http.Error(w, err.Error(), http.StatusNotFound)
	case errors.Is(err, ErrDuplicateIdentifier):
		http.Error(w, err.Error(), http.StatusConflict)
	case errors.Is(err, ErrPersistence):
		http.Error(w, "persistence failure", http.StatusInternalServerError)
	default:
		http.Error(w, "internal error", http.StatusInternalServerError)
	}
}

func toListItem(a Animal) animalListItem {
	s := Summarize(a)
	return animalListItem{
		ID:          a.ID,
		BirthDate:   a.BirthDate,
		Breed:       a.Breed,
		EntryWeight: a.EntryWeight,
		Category:    a.Category,
		Summary: summaryResponse{
			CurrentWeight:    s.CurrentWeight,
			TotalGain:        s.TotalGain,
			AverageDailyGain: s.AverageDailyGain,
			OffspringCount:   s.OffspringCount,
		},
	}
}

func toAnimalResponse(a Animal) animalResponse {
	return animalResponse{
		animalListItem: toListItem(a),
		Weights: lo.Map(a.Weights, func(wr WeightReading, _ int) weightResponse {
			return weightResponse{UID: wr.UID, Date: wr.Date, Kg: wr.Kg}
		}),
		Illnesses: lo.Map(a.Illnesses, func(e IllnessEpisode, _ int) illnessResponse {
			return illnessResponse{
				UID:       e.UID,
				Date:      e.Date,
				Diagnosis: e.Diagnosis,
				Treatment: treatmentResponse{
					Name:  e.Treatment.Name,
					Dose:  e.Treatment.Dose,
					Start: e.Treatment.Start,
					End:   e.Treatment.End,
				},
			}
		}),
		Vaccinations: lo.Map(a.Vaccinations, func(v Vaccination, _ int) vaccinationResponse {
			return vaccinationResponse{
				UID:            v.UID,
				Date:           v.Date,
				Name:           v.Name,
				Lot:            v.Lot,
				Dose:           v.Dose,
				WithdrawalDays: v.Withdrawal.Days,
			}
		}),
		Offspring: lo.Map(a.Offspring, func(o Offspring, _ int) offspringResponse {
			return offspringResponse{UID: o.UID, ID: o.ID, BirthDate: o.BirthDate}
		}),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
