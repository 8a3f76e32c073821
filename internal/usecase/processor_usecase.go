package usecase

import (
	"context"
	"errors"
	"io"

	"github.com/rs/zerolog"

	"github.com/iho/payengine/internal/domain"
	"github.com/iho/payengine/internal/infrastructure/metrics"
)

// Outcome reports how the engine handled a transaction.
type Outcome int

const (
	OutcomeApplied Outcome = iota
	OutcomeRejected
)

// ApplyResult is the tagged result of applying one transaction. Reason
// carries the reject sentinel and is nil when the outcome is applied.
type ApplyResult struct {
	Outcome Outcome
	Reason  error
}

// Summary aggregates the result of folding a transaction stream.
type Summary struct {
	Processed int
	Applied   int
	Rejected  int
}

// ProcessorUseCase applies transactions to the ledger. Apply is total:
// a transaction that fails any validity rule leaves the ledger exactly
// as it was and is reported as rejected, never as an error.
type ProcessorUseCase struct {
	ledgerRepo LedgerRepository
	metrics    *metrics.Metrics
	logger     zerolog.Logger
}

// NewProcessorUseCase creates a new ProcessorUseCase. metrics may be nil.
func NewProcessorUseCase(ledgerRepo LedgerRepository, m *metrics.Metrics, logger zerolog.Logger) *ProcessorUseCase {
	return &ProcessorUseCase{
		ledgerRepo: ledgerRepo,
		metrics:    m,
		logger:     logger,
	}
}

// Apply threads one transaction through the ledger state machine.
func (uc *ProcessorUseCase) Apply(ctx context.Context, tx domain.Transaction) ApplyResult {
	reason := tx.Validate()
	if reason == nil {
		switch tx.Type {
		case domain.TransactionTypeDeposit:
			reason = uc.applyDeposit(ctx, tx)
		case domain.TransactionTypeWithdrawal:
			reason = uc.applyWithdrawal(ctx, tx)
		case domain.TransactionTypeDispute:
			reason = uc.applyDispute(ctx, tx)
		case domain.TransactionTypeResolve:
			reason = uc.applyResolve(ctx, tx)
		case domain.TransactionTypeChargeback:
			reason = uc.applyChargeback(ctx, tx)
		}
	}

	if reason != nil {
		if uc.metrics != nil {
			uc.metrics.TransactionsRejected.WithLabelValues(string(tx.Type), domain.ReasonCode(reason)).Inc()
		}
		uc.logger.Debug().
			Str("type", string(tx.Type)).
			Uint16("client", tx.ClientID).
			Uint32("tx", tx.ID).
			Str("reason", domain.ReasonCode(reason)).
			Msg("transaction rejected")

		return ApplyResult{Outcome: OutcomeRejected, Reason: reason}
	}

	if uc.metrics != nil {
		uc.metrics.TransactionsProcessed.WithLabelValues(string(tx.Type)).Inc()
		if tx.Amount.Valid {
			amt, _ := tx.Amount.Decimal.Float64()
			uc.metrics.TransactionAmount.Observe(amt)
		}
	}

	return ApplyResult{Outcome: OutcomeApplied}
}

// ProcessStream folds a transaction source into the ledger, one
// transaction at a time, and returns the processing summary. Only
// source failures surface as errors; rejected transactions are counted.
func (uc *ProcessorUseCase) ProcessStream(ctx context.Context, source TransactionSource) (Summary, error) {
	var summary Summary

	for {
		tx, err := source.Next()
		if errors.Is(err, io.EOF) {
			return summary, nil
		}
		if err != nil {
			return summary, err
		}

		summary.Processed++
		if res := uc.Apply(ctx, tx); res.Outcome == OutcomeApplied {
			summary.Applied++
		} else {
			summary.Rejected++
		}
	}
}

func (uc *ProcessorUseCase) applyDeposit(ctx context.Context, tx domain.Transaction) error {
	if err := uc.checkIDUnused(ctx, tx.ID); err != nil {
		return err
	}

	account, created, err := uc.getOrCreateAccount(ctx, tx.ClientID)
	if err != nil {
		return err
	}
	if account.Locked {
		return domain.ErrAccountLocked
	}

	account.Available = account.Available.Add(tx.Amount.Decimal)

	if err := uc.ledgerRepo.SaveAccount(ctx, account); err != nil {
		return err
	}
	if created && uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return uc.retain(ctx, tx)
}

func (uc *ProcessorUseCase) applyWithdrawal(ctx context.Context, tx domain.Transaction) error {
	if err := uc.checkIDUnused(ctx, tx.ID); err != nil {
		return err
	}

	account, created, err := uc.getOrCreateAccount(ctx, tx.ClientID)
	if err != nil {
		return err
	}
	if err := account.ValidateWithdrawal(tx.Amount.Decimal); err != nil {
		return err
	}

	account.Available = account.Available.Sub(tx.Amount.Decimal)

	if err := uc.ledgerRepo.SaveAccount(ctx, account); err != nil {
		return err
	}
	if created && uc.metrics != nil {
		uc.metrics.AccountsCreated.Inc()
	}

	return uc.retain(ctx, tx)
}

func (uc *ProcessorUseCase) applyDispute(ctx context.Context, tx domain.Transaction) error {
	retained, account, err := uc.lookupDisputeTarget(ctx, tx)
	if err != nil {
		return err
	}
	if retained.Disputed {
		return domain.ErrAlreadyDisputed
	}

	account.Available = account.Available.Sub(retained.Amount)
	account.Held = account.Held.Add(retained.Amount)
	retained.Disputed = true

	return uc.commitDisputeTarget(ctx, account, retained)
}

func (uc *ProcessorUseCase) applyResolve(ctx context.Context, tx domain.Transaction) error {
	retained, account, err := uc.lookupDisputeTarget(ctx, tx)
	if err != nil {
		return err
	}
	if !retained.Disputed {
		return domain.ErrNotDisputed
	}

	account.Held = account.Held.Sub(retained.Amount)
	account.Available = account.Available.Add(retained.Amount)
	retained.Disputed = false

	return uc.commitDisputeTarget(ctx, account, retained)
}

func (uc *ProcessorUseCase) applyChargeback(ctx context.Context, tx domain.Transaction) error {
	retained, account, err := uc.lookupDisputeTarget(ctx, tx)
	if err != nil {
		return err
	}
	if !retained.Disputed {
		return domain.ErrNotDisputed
	}

	account.Held = account.Held.Sub(retained.Amount)
	account.Locked = true

	if err := uc.commitDisputeTarget(ctx, account, retained); err != nil {
		return err
	}

	if uc.metrics != nil {
		uc.metrics.AccountsLocked.Inc()
	}

	return nil
}

// lookupDisputeTarget resolves the retained transaction and account a
// dispute-family transaction references, applying the guards shared by
// dispute, resolve and chargeback: the record must exist, refer to a
// deposit of the same client, and the account must not be locked.
func (uc *ProcessorUseCase) lookupDisputeTarget(ctx context.Context, tx domain.Transaction) (*domain.RetainedTransaction, *domain.Account, error) {
	retained, err := uc.ledgerRepo.GetRetained(ctx, tx.ID)
	if err != nil {
		return nil, nil, err
	}

	if !retained.Disputable() {
		return nil, nil, domain.ErrNotDisputable
	}
	if retained.ClientID != tx.ClientID {
		return nil, nil, domain.ErrClientMismatch
	}

	account, err := uc.ledgerRepo.GetAccount(ctx, retained.ClientID)
	if err != nil {
		return nil, nil, err
	}
	if account.Locked {
		return nil, nil, domain.ErrAccountLocked
	}

	return retained, account, nil
}

func (uc *ProcessorUseCase) commitDisputeTarget(ctx context.Context, account *domain.Account, retained *domain.RetainedTransaction) error {
	if err := uc.ledgerRepo.SaveAccount(ctx, account); err != nil {
		return err
	}
	return uc.ledgerRepo.SaveRetained(ctx, retained)
}

// checkIDUnused enforces global transaction id uniqueness across all
// past deposits and withdrawals.
func (uc *ProcessorUseCase) checkIDUnused(ctx context.Context, id uint32) error {
	_, err := uc.ledgerRepo.GetRetained(ctx, id)
	if err == nil {
		return domain.ErrDuplicateTransaction
	}
	if !errors.Is(err, domain.ErrTransactionNotFound) {
		return err
	}
	return nil
}

func (uc *ProcessorUseCase) getOrCreateAccount(ctx context.Context, clientID uint16) (*domain.Account, bool, error) {
	account, err := uc.ledgerRepo.GetAccount(ctx, clientID)
	if errors.Is(err, domain.ErrAccountNotFound) {
		return domain.NewAccount(clientID), true, nil
	}
	if err != nil {
		return nil, false, err
	}
	return account, false, nil
}

func (uc *ProcessorUseCase) retain(ctx context.Context, tx domain.Transaction) error {
	return uc.ledgerRepo.SaveRetained(ctx, &domain.RetainedTransaction{
		ID:       tx.ID,
		ClientID: tx.ClientID,
		Type:     tx.Type,
		Amount:   tx.Amount.Decimal,
	})
}
