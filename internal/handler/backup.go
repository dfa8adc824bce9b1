package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/saucerburger/pos-service/internal/auth"
	"github.com/saucerburger/pos-service/internal/backup"
	"github.com/saucerburger/pos-service/internal/mail"
	"github.com/saucerburger/pos-service/internal/order"
)

// BackupHandler serves the user-initiated backup and restore paths. Unlike
// the scheduled auto-backup these are blocking: the caller waits for the
// outcome and gets an explicit success or failure.
type BackupHandler struct {
	backups     *backup.Service
	orders      order.Service
	mailer      mail.Mailer
	backupEmail string
}

func NewBackupHandler(backups *backup.Service, orders order.Service, mailer mail.Mailer, backupEmail string) *BackupHandler {
	return &BackupHandler{backups: backups, orders: orders, mailer: mailer, backupEmail: backupEmail}
}

type backupResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Orders    int       `json:"orders"`
	EmailSent bool      `json:"emailSent"`
}

// CreateBackup snapshots the order store and sends the backup email. The
// snapshot is local and authoritative; a failed email is reported but does
// not undo it.
func (h *BackupHandler) CreateBackup(w http.ResponseWriter, r *http.Request) {
	orders := h.orders.Orders(r.Context())

	snap, err := h.backups.CreateSnapshot(r.Context(), orders, auth.UserFromContext(r.Context()))
	if err != nil {
		log.Error().Err(err).Msg("handler: backup snapshot failed")
		respondWithError(w, http.StatusInternalServerError, "failed to create backup")
		return
	}

	if err := h.mailer.SendBackup(r.Context(), orders, h.backupEmail); err != nil {
		log.Error().Err(err).Msg("handler: backup email failed")
		respondWithJSON(w, http.StatusBadGateway, map[string]any{
			"error":     "backup saved locally but the backup email failed",
			"timestamp": snap.Timestamp,
		})
		return
	}

	respondWithJSON(w, http.StatusOK, backupResponse{
		Timestamp: snap.Timestamp,
		Orders:    len(orders),
		EmailSent: h.backupEmail != "",
	})
}

type restoreRequest struct {
	// Timestamp selects a specific snapshot; zero means the latest one.
	Timestamp *time.Time `json:"timestamp"`
}

// Restore replaces the order store with a snapshot, atomically from the
// caller's point of view: either the whole snapshot applies or nothing
// changes.
func (h *BackupHandler) Restore(w http.ResponseWriter, r *http.Request) {
	var req restoreRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			respondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	var (
		restored []order.Order
		err      error
	)
	if req.Timestamp != nil {
		restored, err = h.backups.RestoreAt(r.Context(), *req.Timestamp)
	} else {
		restored, err = h.backups.RestoreLatest(r.Context())
	}
	if err != nil {
		if errors.Is(err, backup.ErrRestoreNotFound) {
			respondWithError(w, http.StatusNotFound, "no backup available")
			return
		}
		log.Error().Err(err).Msg("handler: restore failed")
		respondWithError(w, http.StatusInternalServerError, "failed to restore backup")
		return
	}

	h.orders.ReplaceAll(r.Context(), restored)
	respondWithJSON(w, http.StatusOK, map[string]int{"orders": len(restored)})
}

type snapshotInfo struct {
	Timestamp time.Time `json:"timestamp"`
	Orders    int       `json:"orders"`
	Version   string    `json:"version"`
	DeviceID  string    `json:"deviceId"`
	User      string    `json:"user,omitempty"`
}

// ListSnapshots returns the retained snapshots, newest first, as metadata
// for a restore picker.
func (h *BackupHandler) ListSnapshots(w http.ResponseWriter, r *http.Request) {
	snaps, err := h.backups.List(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("handler: listing snapshots failed")
		respondWithError(w, http.StatusInternalServerError, "failed to list backups")
		return
	}

	infos := make([]snapshotInfo, 0, len(snaps))
	for _, s := range snaps {
		infos = append(infos, snapshotInfo{
			Timestamp: s.Timestamp,
			Orders:    len(s.Orders),
			Version:   s.Version,
			DeviceID:  s.DeviceID,
			User:      s.User,
		})
	}
	respondWithJSON(w, http.StatusOK, infos)
}

// GetStats reports the snapshot inventory.
func (h *BackupHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.backups.Stats(r.Context())
	if err != nil {
		log.Error().Err(err).Msg("handler: backup stats failed")
		respondWithError(w, http.StatusInternalServerError, "failed to read backup stats")
		return
	}
	respondWithJSON(w, http.StatusOK, stats)
}
