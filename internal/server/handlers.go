package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/trainlog/internal/entries"
	"github.com/claude/trainlog/internal/importer"
	"github.com/claude/trainlog/internal/logbook"
	"github.com/claude/trainlog/internal/storage"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	var payload importer.Payload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	started := time.Now()
	var logID int64
	haveLog := false
	if s.db != nil {
		id, logErr := s.db.InsertImportLog(r.Context(), storage.ImportLog{
			Source: "api", Status: "running",
			ExercisesReceived: len(payload.Exercises),
		})
		if logErr != nil {
			s.log.Error("recording import log", "error", logErr)
		} else {
			logID, haveLog = id, true
		}
	}

	result, err := s.imp.Ingest(r.Context(), &payload)

	if haveLog {
		durationMs := int(time.Since(started).Milliseconds())
		entry := storage.ImportLog{
			Source: "api", Status: "success",
			ExercisesReceived: len(payload.Exercises),
			ExercisesInserted: result.ExercisesInserted,
			NotesInserted:     result.NotesInserted,
			WeightsInserted:   result.WeightsInserted,
			SportTypesUpserts: result.SportTypesUpserted,
			DurationMs:        &durationMs,
		}
		if err != nil {
			entry.Status = "error"
			msg := err.Error()
			entry.ErrorMessage = &msg
		}
		if updErr := s.db.UpdateImportLog(r.Context(), logID, entry); updErr != nil {
			s.log.Error("updating import log", "error", updErr)
		}
	}

	if err != nil {
		s.log.Error("ingest error", "error", err)
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, result)
}

// exerciseFilter builds an exercise filter from query parameters. Reference
// criteria are matched by ID, so stand-in objects carrying only the ID are
// enough.
func exerciseFilter(r *http.Request) (entries.EntryFilter, error) {
	f := entries.EntryFilter{Kind: entries.KindExercise}

	var err error
	if f.Start, f.End, err = parseTimeRange(r); err != nil {
		return f, err
	}

	q := r.URL.Query()
	if v := q.Get("sport_type"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, errors.New("sport_type must be an integer ID")
		}
		f.SportType = &entries.SportType{ID: id}
	}
	if v := q.Get("sport_subtype"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, errors.New("sport_subtype must be an integer ID")
		}
		f.SportSubType = &entries.SportSubType{ID: id}
	}
	if v := q.Get("equipment"); v != "" {
		id, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return f, errors.New("equipment must be an integer ID")
		}
		f.Equipment = &entries.Equipment{ID: id}
	}
	if v := q.Get("intensity"); v != "" {
		intensity, err := entries.ParseIntensity(v)
		if err != nil {
			return f, err
		}
		f.Intensity = &intensity
	}
	f.CommentPattern = q.Get("comment")
	f.RegexMode = q.Get("regex") == "true" || q.Get("regex") == "1"
	return f, nil
}

func (s *Server) handleQueryExercises(w http.ResponseWriter, r *http.Request) {
	f, err := exerciseFilter(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}

	found, err := s.book.Exercises(f)
	if err != nil {
		// The only filter failure is a malformed comment regex.
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleGetExercise(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	exercise, err := s.book.ExerciseByID(id)
	if err != nil {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, exercise)
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var payload importer.ExercisePayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	exercise, err := payload.Exercise()
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	if err := s.book.AddExercise(r.Context(), exercise); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, entries.ErrReferenceNotFound) {
			status = http.StatusBadRequest
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, exercise)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise ID"})
		return
	}
	if err := s.book.DeleteExercise(r.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, logbook.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListSportTypes(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.book.SportTypes())
}

func (s *Server) handleUpsertSportType(w http.ResponseWriter, r *http.Request) {
	var sportType entries.SportType
	if err := json.NewDecoder(r.Body).Decode(&sportType); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if idParam := chi.URLParam(r, "id"); idParam != "" {
		id, err := strconv.ParseInt(idParam, 10, 64)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sport type ID"})
			return
		}
		sportType.ID = id
	}
	if sportType.Name == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "name is required"})
		return
	}

	id, err := s.book.UpsertSportType(r.Context(), &sportType)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, entries.ErrReferenceNotFound) {
			// The edit removed a subtype or equipment still in use.
			status = http.StatusConflict
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.book.SportTypeByID(id))
}

func (s *Server) handleDeleteSportType(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid sport type ID"})
		return
	}
	if err := s.book.DeleteSportType(r.Context(), id); err != nil {
		status := http.StatusInternalServerError
		switch {
		case errors.Is(err, logbook.ErrNotFound):
			status = http.StatusNotFound
		case errors.Is(err, logbook.ErrSportTypeInUse):
			status = http.StatusConflict
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// baseFilter builds a filter for the non-exercise entry kinds: date range
// and comment criteria only.
func baseFilter(r *http.Request, kind entries.EntryKind) (entries.EntryFilter, error) {
	f := entries.EntryFilter{Kind: kind}
	var err error
	if f.Start, f.End, err = parseTimeRange(r); err != nil {
		return f, err
	}
	f.CommentPattern = r.URL.Query().Get("comment")
	f.RegexMode = r.URL.Query().Get("regex") == "true" || r.URL.Query().Get("regex") == "1"
	return f, nil
}

func (s *Server) handleQueryNotes(w http.ResponseWriter, r *http.Request) {
	f, err := baseFilter(r, entries.KindNote)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	found, err := s.book.Notes(f)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleAddNote(w http.ResponseWriter, r *http.Request) {
	var note entries.Note
	if err := json.NewDecoder(r.Body).Decode(&note); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if note.DateTime.IsZero() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date_time is required"})
		return
	}
	if err := s.book.AddNote(r.Context(), &note); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, note)
}

func (s *Server) handleDeleteNote(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid note ID"})
		return
	}
	if err := s.book.DeleteNote(r.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, logbook.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleQueryWeights(w http.ResponseWriter, r *http.Request) {
	f, err := baseFilter(r, entries.KindWeight)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	found, err := s.book.Weights(f)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, found)
}

func (s *Server) handleAddWeight(w http.ResponseWriter, r *http.Request) {
	var weight entries.Weight
	if err := json.NewDecoder(r.Body).Decode(&weight); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if weight.DateTime.IsZero() {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "date_time is required"})
		return
	}
	if err := s.book.AddWeight(r.Context(), &weight); err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusCreated, weight)
}

func (s *Server) handleDeleteWeight(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid weight ID"})
		return
	}
	if err := s.book.DeleteWeight(r.Context(), id); err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, logbook.ErrNotFound) {
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleImportLogs(w http.ResponseWriter, r *http.Request) {
	if s.db == nil {
		writeJSON(w, http.StatusServiceUnavailable, map[string]string{"error": "import history requires a database"})
		return
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		limit, _ = strconv.Atoi(v)
	}
	logs, err := s.db.QueryImportLogs(r.Context(), limit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, logs)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// parseTimeRange reads the optional from/to query parameters. Both accept
// RFC 3339 or plain dates; a plain "to" date is extended to the end of that
// day. Absent parameters leave the range unbounded on that side.
func parseTimeRange(r *http.Request) (start, end time.Time, err error) {
	if v := r.URL.Query().Get("from"); v != "" {
		start, err = parseFlexTime(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
	}
	if v := r.URL.Query().Get("to"); v != "" {
		end, err = parseFlexTime(v)
		if err != nil {
			return time.Time{}, time.Time{}, err
		}
		if len(v) == len("2006-01-02") {
			// End of day for date-only
			end = end.Add(24*time.Hour - time.Nanosecond)
		}
	}
	return start, end, nil
}

func parseFlexTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
