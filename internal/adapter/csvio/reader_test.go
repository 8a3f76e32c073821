package csvio

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/payengine/internal/domain"
)

func readAll(t *testing.T, input string) ([]domain.Transaction, *TransactionReader) {
	t.Helper()

	reader := NewTransactionReader(strings.NewReader(input), zerolog.Nop())

	var txs []domain.Transaction
	for {
		tx, err := reader.Next()
		if errors.Is(err, io.EOF) {
			return txs, reader
		}
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		txs = append(txs, tx)
	}
}

func TestTransactionReader_Basic(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,10.5\n" +
		"withdrawal,1,2,3.25\n" +
		"dispute,1,1,\n"

	txs, reader := readAll(t, input)

	if len(txs) != 3 {
		t.Fatalf("expected 3 transactions, got %d", len(txs))
	}
	if reader.Skipped() != 0 {
		t.Errorf("expected no skipped rows, got %d", reader.Skipped())
	}

	if txs[0].Type != domain.TransactionTypeDeposit || txs[0].ClientID != 1 || txs[0].ID != 1 {
		t.Errorf("unexpected first transaction: %+v", txs[0])
	}
	if !txs[0].Amount.Valid || !txs[0].Amount.Decimal.Equal(decimal.RequireFromString("10.5")) {
		t.Errorf("unexpected first amount: %+v", txs[0].Amount)
	}
	if txs[2].Type != domain.TransactionTypeDispute || txs[2].Amount.Valid {
		t.Errorf("expected dispute without amount, got %+v", txs[2])
	}
}

func TestTransactionReader_TrimsWhitespace(t *testing.T) {
	input := "type, client, tx, amount\n" +
		" deposit , 1 , 1 , 2.0 \n"

	txs, _ := readAll(t, input)

	if len(txs) != 1 {
		t.Fatalf("expected 1 transaction, got %d", len(txs))
	}
	if txs[0].Type != domain.TransactionTypeDeposit || txs[0].ClientID != 1 {
		t.Errorf("unexpected transaction: %+v", txs[0])
	}
	if !txs[0].Amount.Decimal.Equal(decimal.RequireFromString("2.0")) {
		t.Errorf("unexpected amount: %s", txs[0].Amount.Decimal)
	}
}

func TestTransactionReader_MissingAmountColumn(t *testing.T) {
	// Dispute-family rows may omit the amount column entirely.
	input := "type,client,tx,amount\n" +
		"deposit,1,1,5.0\n" +
		"dispute,1,1\n"

	txs, _ := readAll(t, input)

	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if txs[1].Amount.Valid {
		t.Errorf("expected dispute without amount, got %+v", txs[1].Amount)
	}
}

func TestTransactionReader_SkipsMalformedRows(t *testing.T) {
	input := "type,client,tx,amount\n" +
		"deposit,1,1,5.0\n" +
		"transfer,1,2,5.0\n" + // unknown type
		"deposit,not-a-number,3,5.0\n" + // bad client
		"deposit,1,4,lots\n" + // bad amount
		"deposit,70000,5,5.0\n" + // client id out of uint16 range
		"withdrawal,2,6,1.0\n"

	txs, reader := readAll(t, input)

	if len(txs) != 2 {
		t.Fatalf("expected 2 transactions, got %d", len(txs))
	}
	if reader.Skipped() != 4 {
		t.Errorf("expected 4 skipped rows, got %d", reader.Skipped())
	}
	if txs[1].Type != domain.TransactionTypeWithdrawal || txs[1].ID != 6 {
		t.Errorf("unexpected surviving transaction: %+v", txs[1])
	}
}

func TestTransactionReader_MissingHeader(t *testing.T) {
	reader := NewTransactionReader(strings.NewReader(""), zerolog.Nop())

	_, err := reader.Next()

	if !errors.Is(err, ErrMissingHeader) {
		t.Errorf("expected ErrMissingHeader, got %v", err)
	}
}

func TestTransactionReader_HeaderMissingColumn(t *testing.T) {
	reader := NewTransactionReader(strings.NewReader("type,client\n"), zerolog.Nop())

	_, err := reader.Next()

	if !errors.Is(err, ErrMissingHeader) {
		t.Errorf("expected ErrMissingHeader, got %v", err)
	}
}
