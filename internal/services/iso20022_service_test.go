package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tinybank/backend/internal/ledger"
	"github.com/tinybank/backend/internal/models"
)

func TestISO20022Service_ExportTransfer(t *testing.T) {
	f := newFixture(t)
	service := NewISO20022Service(f.ledger, testBank)
	alice := f.user(t, "alice", 1, "100")
	bob := f.user(t, "bob", 1, "")

	res, err := f.transactions.SubmitTransfer(context.Background(), models.TransferRequest{
		Amount:             mustDecimal("12.34"),
		ProviderKey:        "alice",
		ProviderAccountID:  alice.AccountIDs[0],
		RecipientKey:       "bob",
		RecipientAccountID: bob.AccountIDs[0],
	})
	require.NoError(t, err)

	t.Run("exported from the debtor side", func(t *testing.T) {
		xml, err := service.ExportTransfer("alice", alice.AccountIDs[0], res.TransactionID)
		require.NoError(t, err)

		assert.Contains(t, xml, "<?xml")
		assert.Contains(t, xml, res.TransactionID.String())
		assert.Contains(t, xml, "12.34")
		assert.Contains(t, xml, "EUR")
		assert.Contains(t, xml, "TINYBANK")
		assert.Contains(t, xml, "user alice")
		assert.Contains(t, xml, bob.AccountIDs[0].String())
	})

	t.Run("exported from the creditor side", func(t *testing.T) {
		xml, err := service.ExportTransfer("bob", bob.AccountIDs[0], res.TransactionID)
		require.NoError(t, err)

		assert.Contains(t, xml, "user bob")
		assert.Contains(t, xml, alice.AccountIDs[0].String())
	})

	t.Run("deposits are not transfers", func(t *testing.T) {
		history, _ := f.transactions.GetAccountHistory("alice", alice.AccountIDs[0])
		_, err := service.ExportTransfer("alice", alice.AccountIDs[0], history[0].ID)
		assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
	})

	t.Run("unknown transaction", func(t *testing.T) {
		_, err := service.ExportTransfer("alice", alice.AccountIDs[0], uuid.New())
		assert.ErrorIs(t, err, ledger.ErrTransactionNotFound)
	})

	t.Run("foreign account", func(t *testing.T) {
		_, err := service.ExportTransfer("alice", bob.AccountIDs[0], res.TransactionID)
		assert.ErrorIs(t, err, ledger.ErrAccountNotFound)
	})
}

func TestISO20022Service_CreatePacs008(t *testing.T) {
	service := NewISO20022Service(nil, testBank)
	service.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	t.Run("requires a counterparty", func(t *testing.T) {
		_, err := service.CreatePacs008(models.Entry{ID: uuid.New(), Amount: mustDecimal("1")}, "John Doe")
		assert.Error(t, err)
	})

	t.Run("header and transaction agree", func(t *testing.T) {
		counterparty := uuid.New()
		entry := models.Entry{
			ID:           uuid.New(),
			Direction:    models.DirectionOutbound,
			Amount:       mustDecimal("99.5"),
			Date:         time.Now(),
			Counterparty: &counterparty,
		}

		doc, err := service.CreatePacs008(entry, "John Doe")
		require.NoError(t, err)

		require.Len(t, doc.CdtTrfTxInf, 1)
		tx := doc.CdtTrfTxInf[0]
		assert.Equal(t, "1", string(doc.GrpHdr.NbOfTxs))
		assert.Equal(t, 99.5, doc.GrpHdr.TtlIntrBkSttlmAmt.Value)
		assert.Equal(t, 99.5, tx.IntrBkSttlmAmt.Value)
		assert.Equal(t, entry.ID.String(), string(tx.PmtId.EndToEndId))
		assert.Equal(t, "John Doe", string(*tx.Dbtr.Nm))
		assert.Equal(t, counterparty.String(), string(*tx.Cdtr.Nm))
	})
}
