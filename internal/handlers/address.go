package handlers

import (
	"net/http"
	"strconv"
	"strings"

	applog "pantry/internal/log"
	"pantry/models"
)

// AddressResource handles the /address collection.
func (a *API) AddressResource(w http.ResponseWriter, r *http.Request) {
	path := strings.Trim(strings.TrimPrefix(r.URL.Path, "/address"), "/")

	if path == "" {
		switch r.Method {
		case http.MethodGet:
			a.listAddresses(w, r)
		case http.MethodPost:
			a.createAddress(w, r)
		default:
			w.WriteHeader(http.StatusMethodNotAllowed)
		}
		return
	}

	idValue, err := strconv.Atoi(path)
	if err != nil || idValue <= 0 {
		applog.Debug(r.Context(), "invalid address identifier", "identifier", path)
		writeMessage(w, http.StatusBadRequest, "Invalid address ID")
		return
	}
	addressID := uint(idValue)

	switch r.Method {
	case http.MethodGet:
		a.showAddress(w, r, addressID)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (a *API) listAddresses(w http.ResponseWriter, r *http.Request) {
	rows, err := a.addresses.FindAll(r.Context())
	if err != nil {
		writeInternalError(w, r, "failed to list addresses", err)
		return
	}
	writeJSON(w, http.StatusOK, rows)
}

func (a *API) showAddress(w http.ResponseWriter, r *http.Request, addressID uint) {
	row, err := a.addresses.FindByID(r.Context(), addressID)
	if err != nil {
		writeInternalError(w, r, "failed to load address", err)
		return
	}
	if row == nil {
		writeMessage(w, http.StatusNotFound, "Address not found")
		return
	}
	writeJSON(w, http.StatusOK, row)
}

func (a *API) createAddress(w http.ResponseWriter, r *http.Request) {
	payload, ok := decodeBody(r)
	if !ok {
		writeMessage(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	address := models.Address{}
	required := []struct {
		key    string
		label  string
		target *string
	}{
		{"address_line1", "Address line 1", &address.AddressLine1},
		{"city", "City", &address.City},
		{"state", "State", &address.State},
		{"zip_code", "Zip code", &address.ZipCode},
		{"country", "Country", &address.Country},
	}
	for _, field := range required {
		value, msg := requireString(payload, field.key, field.label)
		if msg != "" {
			writeMessage(w, http.StatusBadRequest, msg)
			return
		}
		*field.target = value
	}

	if value, present := payload["address_line2"]; present && value != nil {
		line2, ok := value.(string)
		if !ok {
			writeMessage(w, http.StatusBadRequest, "Address line 2 must be a string")
			return
		}
		address.AddressLine2 = line2
	}

	if err := a.addresses.Insert(r.Context(), &address); err != nil {
		writeInternalError(w, r, "failed to create address", err)
		return
	}

	applog.Info(r.Context(), "address created", "id", address.ID, "city", address.City)
	writeJSON(w, http.StatusCreated, map[string]any{
		"message": "Address created successfully",
		"address": address,
	})
}
