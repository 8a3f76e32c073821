package csvio

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/iho/payengine/internal/domain"
)

var (
	// ErrMissingHeader is returned when the input has no usable header row.
	ErrMissingHeader = errors.New("input is missing the transaction header row")
)

// TransactionReader decodes transactions from CSV input one row at a
// time. Expected columns are type, client, tx and amount, located by
// header name; the amount column may be empty or absent for dispute,
// resolve and chargeback rows. Rows that cannot be decoded are skipped
// and counted, never surfaced to the caller.
type TransactionReader struct {
	csv     *csv.Reader
	logger  zerolog.Logger
	columns map[string]int
	skipped int
}

// NewTransactionReader creates a streaming transaction decoder over r.
func NewTransactionReader(r io.Reader, logger zerolog.Logger) *TransactionReader {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true
	cr.FieldsPerRecord = -1

	return &TransactionReader{
		csv:    cr,
		logger: logger,
	}
}

// Next returns the next decodable transaction in input order. It
// returns io.EOF once the stream is exhausted.
func (r *TransactionReader) Next() (domain.Transaction, error) {
	if r.columns == nil {
		if err := r.readHeader(); err != nil {
			return domain.Transaction{}, err
		}
	}

	for {
		record, err := r.csv.Read()
		if err != nil {
			var parseErr *csv.ParseError
			if errors.As(err, &parseErr) {
				r.skip(parseErr.Line, err)
				continue
			}
			return domain.Transaction{}, err
		}

		tx, err := r.decode(record)
		if err != nil {
			line, _ := r.csv.FieldPos(0)
			r.skip(line, err)
			continue
		}

		return tx, nil
	}
}

// Skipped reports how many undecodable rows were dropped so far.
func (r *TransactionReader) Skipped() int {
	return r.skipped
}

func (r *TransactionReader) readHeader() error {
	header, err := r.csv.Read()
	if errors.Is(err, io.EOF) {
		return ErrMissingHeader
	}
	if err != nil {
		return err
	}

	r.columns = make(map[string]int, len(header))
	for i, name := range header {
		r.columns[strings.ToLower(strings.TrimSpace(name))] = i
	}

	for _, required := range []string{"type", "client", "tx"} {
		if _, ok := r.columns[required]; !ok {
			return fmt.Errorf("%w: no %q column", ErrMissingHeader, required)
		}
	}

	return nil
}

func (r *TransactionReader) decode(record []string) (domain.Transaction, error) {
	kind := domain.TransactionType(strings.ToLower(r.field(record, "type")))
	if !kind.Valid() {
		return domain.Transaction{}, fmt.Errorf("%w: %q", domain.ErrUnknownTransactionType, r.field(record, "type"))
	}

	clientID, err := strconv.ParseUint(r.field(record, "client"), 10, 16)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid client id: %w", err)
	}

	txID, err := strconv.ParseUint(r.field(record, "tx"), 10, 32)
	if err != nil {
		return domain.Transaction{}, fmt.Errorf("invalid transaction id: %w", err)
	}

	var amount decimal.NullDecimal
	if raw := r.field(record, "amount"); raw != "" {
		d, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.Transaction{}, fmt.Errorf("invalid amount: %w", err)
		}
		amount = decimal.NullDecimal{Decimal: d, Valid: true}
	}

	return domain.Transaction{
		Type:     kind,
		ClientID: uint16(clientID),
		ID:       uint32(txID),
		Amount:   amount,
	}, nil
}

// field returns the trimmed value of a named column, or "" when the
// row is too short to have one.
func (r *TransactionReader) field(record []string, name string) string {
	idx, ok := r.columns[name]
	if !ok || idx >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[idx])
}

func (r *TransactionReader) skip(line int, err error) {
	r.skipped++
	r.logger.Debug().
		Int("line", line).
		Err(err).
		Msg("skipping undecodable row")
}
