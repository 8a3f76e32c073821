package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"sync"

	"github.com/go-chi/chi/v5"
	"github.com/oklog/ulid/v2"
	"github.com/rs/zerolog"

	"github.com/iho/payengine/internal/adapter/csvio"
	"github.com/iho/payengine/internal/adapter/http/dto"
	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/infrastructure/metrics"
	"github.com/iho/payengine/internal/usecase"
)

// ProcessorService defines the engine behavior needed by LedgerHandler.
type ProcessorService interface {
	Apply(ctx context.Context, tx domain.Transaction) usecase.ApplyResult
	ProcessStream(ctx context.Context, source usecase.TransactionSource) (usecase.Summary, error)
}

// LedgerService defines the read behavior needed by LedgerHandler.
type LedgerService interface {
	Snapshot(ctx context.Context) ([]domain.AccountSnapshot, error)
	GetAccountSnapshot(ctx context.Context, clientID uint16) (domain.AccountSnapshot, error)
	CheckConsistency(ctx context.Context) (bool, error)
}

// LedgerHandler handles transaction and account HTTP requests. Writes
// are serialized: the engine is a single-writer fold over its input.
type LedgerHandler struct {
	processorUC ProcessorService
	ledgerUC    LedgerService
	metrics     *metrics.Metrics
	logger      zerolog.Logger

	mu sync.Mutex
}

// NewLedgerHandler creates a new LedgerHandler. metrics may be nil.
func NewLedgerHandler(processorUC ProcessorService, ledgerUC LedgerService, m *metrics.Metrics, logger zerolog.Logger) *LedgerHandler {
	return &LedgerHandler{
		processorUC: processorUC,
		ledgerUC:    ledgerUC,
		metrics:     m,
		logger:      logger,
	}
}

// SubmitTransaction applies a single transaction to the ledger.
func (h *LedgerHandler) SubmitTransaction(w http.ResponseWriter, r *http.Request) {
	var req dto.SubmitTransactionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	h.mu.Lock()
	res := h.processorUC.Apply(r.Context(), req.ToDomain())
	h.mu.Unlock()

	if res.Outcome == usecase.OutcomeRejected {
		writeJSON(w, http.StatusOK, dto.TransactionOutcomeResponse{
			Status: "rejected",
			Reason: domain.ReasonCode(res.Reason),
		})
		return
	}

	writeJSON(w, http.StatusOK, dto.TransactionOutcomeResponse{Status: "applied"})
}

// IngestBatch processes a CSV transaction stream from the request body.
func (h *LedgerHandler) IngestBatch(w http.ResponseWriter, r *http.Request) {
	batchID := ulid.Make().String()
	reader := csvio.NewTransactionReader(r.Body, h.logger)

	h.mu.Lock()
	summary, err := h.processorUC.ProcessStream(r.Context(), reader)
	h.mu.Unlock()

	if err != nil {
		writeError(w, http.StatusBadRequest, "failed to ingest batch", err.Error())
		return
	}

	if h.metrics != nil {
		h.metrics.BatchesIngested.Inc()
	}

	h.logger.Info().
		Str("batch_id", batchID).
		Int("processed", summary.Processed).
		Int("applied", summary.Applied).
		Int("rejected", summary.Rejected).
		Int("skipped", reader.Skipped()).
		Msg("batch ingested")

	writeJSON(w, http.StatusOK, dto.BatchResponse{
		BatchID:   batchID,
		Processed: summary.Processed,
		Applied:   summary.Applied,
		Rejected:  summary.Rejected,
		Skipped:   reader.Skipped(),
	})
}

// ListAccounts returns snapshots of all accounts, sorted by client id.
func (h *LedgerHandler) ListAccounts(w http.ResponseWriter, r *http.Request) {
	snapshots, err := h.ledgerUC.Snapshot(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list accounts", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.ListAccountsResponse{
		Accounts: dto.AccountsFromSnapshots(snapshots),
		Total:    int64(len(snapshots)),
	})
}

// GetAccount returns the snapshot of one client's account.
func (h *LedgerHandler) GetAccount(w http.ResponseWriter, r *http.Request) {
	clientID, err := strconv.ParseUint(chi.URLParam(r, "clientID"), 10, 16)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid client id", err.Error())
		return
	}

	snapshot, err := h.ledgerUC.GetAccountSnapshot(r.Context(), uint16(clientID))
	if err != nil {
		writeError(w, mapDomainError(err), "failed to get account", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.AccountFromSnapshot(snapshot))
}

// Consistency reports whether held balances match open disputes.
func (h *LedgerHandler) Consistency(w http.ResponseWriter, r *http.Request) {
	consistent, err := h.ledgerUC.CheckConsistency(r.Context())
	if err != nil && !errors.Is(err, usecase.ErrInconsistentLedger) {
		writeError(w, http.StatusInternalServerError, "consistency check failed", err.Error())
		return
	}

	status := "ok"
	code := http.StatusOK
	if !consistent {
		status = "inconsistent"
		code = http.StatusConflict
	}

	writeJSON(w, code, dto.ConsistencyResponse{
		Consistent: consistent,
		Status:     status,
	})
}
