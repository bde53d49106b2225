package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/jonathan/resume-builder/internal/assembler"
	"github.com/jonathan/resume-builder/internal/observability"
	"github.com/jonathan/resume-builder/internal/sections"
)

// UpdateEntryRequest is the body of an entry field update
type UpdateEntryRequest struct {
	Field string  `json:"field" validate:"required"`
	Value *string `json:"value" validate:"required"`
}

// SetFieldRequest is the body of a fixed field update
type SetFieldRequest struct {
	Value *string `json:"value" validate:"required"`
}

// SectionCatalog describes one list section
type SectionCatalog struct {
	Name   string   `json:"name"`
	Fields []string `json:"fields"`
}

// FieldCatalog lists every addressable section and fixed field
type FieldCatalog struct {
	Sections    []SectionCatalog `json:"sections"`
	FixedFields []string         `json:"fixed_fields"`
}

// BuildFieldCatalog returns the section and fixed field names in document order
func BuildFieldCatalog() FieldCatalog {
	store := sections.New()
	catalog := FieldCatalog{FixedFields: sections.FixedFields()}
	for _, name := range sections.Sections() {
		fields, _ := store.Fields(name)
		catalog.Sections = append(catalog.Sections, SectionCatalog{Name: string(name), Fields: fields})
	}
	return catalog
}

// handleFields returns the field catalog
func (s *Server) handleFields(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, BuildFieldCatalog())
}

// handleCreateSession opens a new editing session with an empty store
func (s *Server) handleCreateSession(w http.ResponseWriter, _ *http.Request) {
	sess := s.sessions.create(func(id string) *assembler.Submitter {
		return assembler.NewSubmitter(s.sink, s.key+"-"+id, s.logger.With("session", id))
	})
	s.logger.Info("session created", "session", sess.id)
	s.jsonResponse(w, http.StatusCreated, map[string]string{"session_id": sess.id})
}

// handleDeleteSession ends a session, discarding unsubmitted edits
func (s *Server) handleDeleteSession(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := s.sessions.remove(id); err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.logger.Info("session deleted", "session", id)
	w.WriteHeader(http.StatusNoContent)
}

// handleAddEntry appends a blank entry to a section
func (s *Server) handleAddEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	section := sections.Section(r.PathValue("section"))

	sess.mu.Lock()
	index, err := sess.store.AddEntry(section)
	sess.mu.Unlock()

	observability.Mutations.WithLabelValues("add", metricSection(section), observability.Result(err)).Inc()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusCreated, map[string]int{"index": index})
}

// handleUpdateEntry sets one field of one entry
func (s *Server) handleUpdateEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	section := sections.Section(r.PathValue("section"))

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	var req UpdateEntryRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	sess.mu.Lock()
	err = sess.store.UpdateEntryField(section, index, req.Field, *req.Value)
	var entry map[string]string
	if err == nil {
		entry, err = sess.store.Entry(section, index)
	}
	sess.mu.Unlock()

	observability.Mutations.WithLabelValues("update", metricSection(section), observability.Result(err)).Inc()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleGetEntry returns one entry's fields
func (s *Server) handleGetEntry(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	section := sections.Section(r.PathValue("section"))

	index, err := strconv.Atoi(r.PathValue("index"))
	if err != nil {
		s.errorResponse(w, http.StatusBadRequest, "index must be an integer")
		return
	}

	sess.mu.Lock()
	entry, err := sess.store.Entry(section, index)
	sess.mu.Unlock()

	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, entry)
}

// handleSetField sets a contact, summary or interests field
func (s *Server) handleSetField(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}
	name := r.PathValue("name")

	var req SetFieldRequest
	if !s.decodeRequest(w, r, &req) {
		return
	}

	sess.mu.Lock()
	err := sess.store.SetFixedField(name, *req.Value)
	sess.mu.Unlock()

	observability.Mutations.WithLabelValues("set", "fixed", observability.Result(err)).Inc()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	s.jsonResponse(w, http.StatusOK, map[string]string{"field": name, "value": *req.Value})
}

// handleDocument returns the canonical serialization of the session's current state
func (s *Server) handleDocument(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	doc := assembler.Assemble(sess.store)
	sess.mu.Unlock()

	text, err := assembler.Serialize(doc)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte(text)); err != nil {
		s.logger.Error("failed to write document", "error", err)
	}
}

// handleSubmit snapshots the session and writes it to the sink.
// The snapshot is taken under the session lock; the sink write runs outside it
// so a second submit observes the busy Submitter instead of queueing.
func (s *Server) handleSubmit(w http.ResponseWriter, r *http.Request) {
	sess, ok := s.lookupSession(w, r)
	if !ok {
		return
	}

	sess.mu.Lock()
	doc := assembler.Assemble(sess.store)
	sess.mu.Unlock()

	result, err := sess.submitter.SubmitDocument(r.Context(), doc)
	observability.Submits.WithLabelValues(observability.Result(err)).Inc()
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return
	}
	observability.SubmitDuration.Observe(result.Duration.Seconds())

	s.jsonResponse(w, http.StatusOK, map[string]string{"key": result.Key, "status": "saved"})
}

// lookupSession resolves the {id} path value, writing a 404 when it is unknown
func (s *Server) lookupSession(w http.ResponseWriter, r *http.Request) (*session, bool) {
	sess, err := s.sessions.get(r.PathValue("id"))
	if err != nil {
		s.errorResponse(w, HTTPStatus(err), err.Error())
		return nil, false
	}
	return sess, true
}

// decodeRequest decodes and validates a JSON body, writing a 400 on failure
func (s *Server) decodeRequest(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		verr := &ErrValidation{Field: "body", Message: err.Error()}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return false
	}
	if err := s.validator.Struct(dst); err != nil {
		verr := &ErrValidation{Field: "body", Message: err.Error()}
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
			verr = &ErrValidation{Field: strings.ToLower(fieldErrs[0].Field()), Message: fieldErrs[0].Tag()}
		}
		s.errorResponse(w, HTTPStatus(verr), verr.Error())
		return false
	}
	return true
}

// metricSection bounds label cardinality to the known section names
func metricSection(section sections.Section) string {
	for _, known := range sections.Sections() {
		if section == known {
			return string(section)
		}
	}
	return "unknown"
}
