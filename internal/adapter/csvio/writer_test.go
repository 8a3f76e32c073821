package csvio

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/iho/payengine/internal/domain"
)

func TestSnapshotWriter_Write(t *testing.T) {
	snapshots := []domain.AccountSnapshot{
		{
			ClientID:  1,
			Available: decimal.RequireFromString("10.5"),
			Held:      decimal.Zero,
			Total:     decimal.RequireFromString("10.5"),
		},
		{
			ClientID:  2,
			Available: decimal.Zero,
			Held:      decimal.Zero,
			Total:     decimal.Zero,
			Locked:    true,
		},
	}

	var buf bytes.Buffer
	writer := NewSnapshotWriter(&buf, 4)

	if err := writer.Write(snapshots); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "client,available,held,total,locked\n" +
		"1,10.5000,0.0000,10.5000,false\n" +
		"2,0.0000,0.0000,0.0000,true\n"
	if buf.String() != expected {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), expected)
	}
}

func TestSnapshotWriter_Precision(t *testing.T) {
	snapshots := []domain.AccountSnapshot{
		{
			ClientID:  1,
			Available: decimal.RequireFromString("1.23456"),
			Held:      decimal.Zero,
			Total:     decimal.RequireFromString("1.23456"),
		},
	}

	var buf bytes.Buffer
	writer := NewSnapshotWriter(&buf, 2)

	if err := writer.Write(snapshots); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := "client,available,held,total,locked\n" +
		"1,1.23,0.00,1.23,false\n"
	if buf.String() != expected {
		t.Errorf("unexpected output:\n%s\nwant:\n%s", buf.String(), expected)
	}
}
