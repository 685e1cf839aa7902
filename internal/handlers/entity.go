package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"pantry/internal/dao"
	applog "pantry/internal/log"
	"pantry/models"
)

// EntityResource handles the /entity collection of vendors and customers.
func (a *API) EntityResource(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/entity"), "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			a.listEntities(w, r)
		case http.MethodPost:
			a.createEntity(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	idValue, err := strconv.Atoi(path)
	if err != nil || idValue <= 0 {
		applog.Debug(r.Context(), "invalid entity identifier", "identifier", path)
		writeMessage(w, http.StatusBadRequest, "Invalid entity ID")
		return
	}
	entityID := uint(idValue)

	switch r.Method {
	case http.MethodGet:
		a.showEntity(w, r, entityID)
	case http.MethodPut:
		a.updateEntity(w, r, entityID)
	case http.MethodDelete:
		a.deleteEntity(w, r, entityID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (a *API) listEntities(w http.ResponseWriter, r *http.Request) {
	typeFilter := strings.TrimSpace(r.URL.Query().Get("type"))
	if typeFilter != "" {
		normalized, ok := models.NormalizeEntityType(typeFilter)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Type must be customer or vendor")
			return
		}
		rows, err := a.entities.FindAllFor(r.Context(), "type", normalized)
		if err != nil {
			writeInternalError(w, r, "failed to list entities", err)
			return
		}
		writeJSON(w, http.StatusOK, rows)
		return
	}

	rows, err := a.entities.FindAll(r.Context())
	if err != nil {
		writeInternalError(w, r, "failed to list entities", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (a *API) showEntity(w http.ResponseWriter, r *http.Request, entityID uint) {
	row, err := a.entities.FindByID(r.Context(), entityID)
	if err != nil {
		writeInternalError(w, r, "failed to load entity", err)
		return
	}
	if row == nil {
		writeMessage(w, http.StatusNotFound, "Entity not found")
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) createEntity(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeBody(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fname, msg := requireString(payload, "fname", "First name")
	if msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}
	lname, msg := requireString(payload, "lname", "Last name")
	if msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}
	email, msg := requireString(payload, "email", "Email")
	if msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}
	phone, msg := requireString(payload, "phone", "Phone")
	if msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}

	typeText, msg := requireString(payload, "type", "Type")
	if msg != "" {
		writeMessage(w, http.StatusBadRequest, msg)
		return
	}
	entityType, ok := models.NormalizeEntityType(typeText)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Type must be customer or vendor")
		return
	}

	entity := models.Entity{
		FName: fname,
		LName: lname,
		Email: email,
		Phone: phone,
		Type:  entityType,
	}

	if value, present := payload["mname"]; present && value != nil {
		mname, ok := value.(string)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Middle name must be a string")
			return
		}
		entity.MName = mname
	}

	if value, present := payload["address_id"]; present && value != nil {
		number, numberOK := value.(float64)
		addressID, idOK := positiveID(number)
		if !numberOK || !idOK {
			writeMessage(w, http.StatusBadRequest, "Address ID must be a positive number")
			return
		}
		exists, err := a.addresses.Exists(r.Context(), addressID)
		if err != nil {
			writeInternalError(w, r, "failed to check address", err)
			return
		}
		if !exists {
			writeMessage(w, http.StatusBadRequest, "Address not found")
			return
		}
		entity.AddressID = &addressID
	}

	if err := a.entities.Insert(r.Context(), &entity); err != nil {
		writeInternalError(w, r, "failed to create entity", err)
		return
	}

	applog.Info(r.Context(), "entity created", "id", entity.ID, "type", entity.Type)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Entity created successfully",
		"entity":  entity,
	})
}

func (a *API) updateEntity(w http.ResponseWriter, r *http.Request, entityID uint) {
	payload, ok := decodeBody(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	fields := map[string]any{}

	for key, label := range map[string]string{
		"fname": "First name",
		"lname": "Last name",
		"email": "Email",
		"phone": "Phone",
	} {
		if _, present := payload[key]; present {
			value, msg := requireString(payload, key, label)
			if msg != "" {
				writeMessage(w, http.StatusBadRequest, msg)
				return
			}
			fields[key] = value
		}
	}

	if value, present := payload["mname"]; present {
		mname, ok := value.(string)
		if value != nil && !ok {
			writeMessage(w, http.StatusBadRequest, "Middle name must be a string")
			return
		}
		fields["mname"] = mname
	}

	if _, present := payload["type"]; present {
		typeText, msg := requireString(payload, "type", "Type")
		if msg != "" {
			writeMessage(w, http.StatusBadRequest, msg)
			return
		}
		entityType, ok := models.NormalizeEntityType(typeText)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Type must be customer or vendor")
			return
		}
		fields["type"] = entityType
	}

	if value, present := payload["address_id"]; present && value != nil {
		number, numberOK := value.(float64)
		addressID, idOK := positiveID(number)
		if !numberOK || !idOK {
			writeMessage(w, http.StatusBadRequest, "Address ID must be a positive number")
			return
		}
		exists, err := a.addresses.Exists(r.Context(), addressID)
		if err != nil {
			writeInternalError(w, r, "failed to check address", err)
			return
		}
		if !exists {
			writeMessage(w, http.StatusBadRequest, "Address not found")
			return
		}
		fields["address_id"] = addressID
	}

	if len(fields) == 0 {
		writeMessage(w, http.StatusBadRequest, "No fields to update")
		return
	}

	row, err := a.entities.UpdateByID(r.Context(), entityID, fields)
	if err != nil {
		writeInternalError(w, r, "failed to update entity", err)
		return
	}
	if row == nil {
		writeMessage(w, http.StatusNotFound, "Entity not found")
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"message": "Entity updated successfully",
		"entity":  row,
	})
}

func (a *API) deleteEntity(w http.ResponseWriter, r *http.Request, entityID uint) {
	// Refuse to orphan ingredient rows that still reference this entity.
	dependents, err := a.ingredients.Count(r.Context(), dao.Where("vendor_id", entityID))
	if err != nil {
		writeInternalError(w, r, "failed to check for dependent ingredients", err)
		return
	}
	if dependents != 0 {
		writeMessage(w, http.StatusBadRequest, "Entity still has ingredients")
		return
	}

	row, err := a.entities.RemoveByID(r.Context(), entityID)
	if err != nil {
		writeInternalError(w, r, "failed to delete entity", err)
		return
	}
	if row == nil {
		writeMessage(w, http.StatusNotFound, "Entity not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
