// SPDX-FileCopyrightText: 2026 The chainprim Authors
//
// SPDX-License-Identifier: GPL-3.0-or-later

package agent

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	log "github.com/sirupsen/logrus"

	"github.com/gorilla/mux"

	"github.com/chainprim/chainprim/pkg/block"
	"github.com/chainprim/chainprim/pkg/scale"
	"github.com/chainprim/chainprim/pkg/storage"
)

// maxBodySize limits the size of POSTed Blocks and Headers.
const maxBodySize = 16 << 20

// RestAgent is a RESTful interface to import Blocks and to query the Store.
type RestAgent struct {
	router   *mux.Router
	importer *Importer
	store    *storage.Store
}

// NewRestAgent creates a new RestAgent and binds its handlers to the router.
func NewRestAgent(router *mux.Router, importer *Importer, store *storage.Store) (ra *RestAgent) {
	ra = &RestAgent{
		router:   router,
		importer: importer,
		store:    store,
	}

	ra.router.HandleFunc("/blocks", ra.handleImport).Methods(http.MethodPost)
	ra.router.HandleFunc("/blocks/{hash}", ra.handleBlock).Methods(http.MethodGet)
	ra.router.HandleFunc("/blocks/{hash}/raw", ra.handleBlockRaw).Methods(http.MethodGet)
	ra.router.HandleFunc("/headers/{number:[0-9]+}", ra.handleHeaders).Methods(http.MethodGet)
	ra.router.HandleFunc("/hash/header", ra.handleHashHeader).Methods(http.MethodPost)

	return ra
}

// ServeHTTP is a http.Handler to be bound to a HTTP endpoint, e.g., /rest.
func (ra *RestAgent) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ra.router.ServeHTTP(w, r)
}

// writeJSON writes a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.WithError(err).Warn("Failed to write REST response")
	}
}

// decodeBody decodes a request's body, which must hold exactly one canonically encoded value.
func decodeBody(w http.ResponseWriter, r *http.Request, u scale.Unmarshaler) error {
	data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		return err
	}
	return scale.Decode(data, u)
}

// loadBlock parses the hash variable and loads the Block. On failure, an error status code is returned.
func (ra *RestAgent) loadBlock(r *http.Request) (b block.Block, status int, err error) {
	hash, err := block.HashFromString(mux.Vars(r)["hash"])
	if err != nil {
		return b, http.StatusBadRequest, err
	}

	if b, err = ra.store.Load(hash); errors.Is(err, storage.ErrNotFound) {
		return b, http.StatusNotFound, err
	} else if err != nil {
		return b, http.StatusInternalServerError, err
	}
	return b, http.StatusOK, nil
}

// handleImport processes /blocks POST requests.
func (ra *RestAgent) handleImport(w http.ResponseWriter, r *http.Request) {
	var (
		b        block.Block
		response RestImportResponse
		status   = http.StatusOK
	)

	if err := decodeBody(w, r, &b); err != nil {
		status, response.Error = http.StatusBadRequest, err.Error()
	} else if inserted, err := ra.importer.Import(b); err != nil {
		status, response.Error = http.StatusUnprocessableEntity, err.Error()
	} else {
		response.Hash = b.Hash().String()
		response.Inserted = inserted
	}

	log.WithFields(log.Fields{
		"response": response,
		"status":   status,
	}).Info("Processing REST block import")

	writeJSON(w, status, response)
}

// handleBlock processes /blocks/{hash} GET requests.
func (ra *RestAgent) handleBlock(w http.ResponseWriter, r *http.Request) {
	b, status, err := ra.loadBlock(r)
	if err != nil {
		writeJSON(w, status, RestBlockResponse{Error: err.Error()})
		return
	}

	writeJSON(w, status, RestBlockResponse{Hash: b.Hash().String(), Block: &b})
}

// handleBlockRaw processes /blocks/{hash}/raw GET requests.
func (ra *RestAgent) handleBlockRaw(w http.ResponseWriter, r *http.Request) {
	b, status, err := ra.loadBlock(r)
	if err != nil {
		writeJSON(w, status, RestBlockResponse{Error: err.Error()})
		return
	}

	w.Header().Set("Content-Type", "application/octet-stream")
	if err := scale.Marshal(&b, w); err != nil {
		log.WithError(err).Warn("Failed to write raw Block")
	}
}

// handleHeaders processes /headers/{number} GET requests.
func (ra *RestAgent) handleHeaders(w http.ResponseWriter, r *http.Request) {
	number, err := strconv.ParseUint(mux.Vars(r)["number"], 10, 32)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, RestHeadersResponse{Error: err.Error()})
		return
	}

	bis, err := ra.store.QueryNumber(uint32(number))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, RestHeadersResponse{Error: err.Error()})
		return
	}

	response := RestHeadersResponse{Headers: []RestHeader{}}
	for _, bi := range bis {
		b, err := bi.Load()
		if err != nil {
			log.WithField("block", bi.Id).WithError(err).Warn("Failed to load Block for REST headers")
			writeJSON(w, http.StatusInternalServerError, RestHeadersResponse{Error: err.Error()})
			return
		}
		response.Headers = append(response.Headers, RestHeader{Hash: bi.Id, Header: b.Header})
	}

	writeJSON(w, http.StatusOK, response)
}

// handleHashHeader processes /hash/header POST requests.
func (ra *RestAgent) handleHashHeader(w http.ResponseWriter, r *http.Request) {
	var header block.Header
	if err := decodeBody(w, r, &header); err != nil {
		writeJSON(w, http.StatusBadRequest, RestHashResponse{Error: err.Error()})
		return
	}

	writeJSON(w, http.StatusOK, RestHashResponse{Hash: header.Hash().String()})
}
