package services

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/moov-io/iso20022/pkg/common"
	"github.com/moov-io/iso20022/pkg/pacs_v08"
	"github.com/tinybank/backend/internal/config"
	"github.com/tinybank/backend/internal/ledger"
	"github.com/tinybank/backend/internal/logger"
	"github.com/tinybank/backend/internal/models"
)

const Pacs008MessageType = "pacs.008.001.08"

// ISO20022Service exports completed transfers as ISO 20022 messages.
type ISO20022Service struct {
	ledger *ledger.Ledger
	bank   config.LedgerConfig
	now    func() time.Time
}

func NewISO20022Service(l *ledger.Ledger, bank config.LedgerConfig) *ISO20022Service {
	return &ISO20022Service{ledger: l, bank: bank, now: time.Now}
}

// ExportTransfer builds the pacs.008 document of a transfer that touched one
// of the user's accounts and returns it as XML.
func (iso *ISO20022Service) ExportTransfer(key string, accountID, transactionID uuid.UUID) (string, error) {
	u, ok := iso.ledger.Users().Get(key)
	if !ok {
		return "", fmt.Errorf("%w: key=%s", ledger.ErrUserNotFound, logger.MaskKey(key))
	}

	acc, err := iso.ledger.FindAccount(u, accountID)
	if err != nil {
		return "", err
	}

	entry, err := acc.FindEntry(transactionID)
	if err != nil {
		return "", err
	}
	if !entry.IsTransfer() {
		return "", fmt.Errorf("%w: %s is not a transfer", ledger.ErrTransactionNotFound, transactionID)
	}

	doc, err := iso.CreatePacs008(entry, u.Name)
	if err != nil {
		return "", err
	}
	return iso.ConvertToXML(doc)
}

// CreatePacs008 creates a pacs.008 FIToFICustomerCreditTransfer message from
// one side of a transfer. holder names the owner of entry.AccountID.
func (iso *ISO20022Service) CreatePacs008(entry models.Entry, holder string) (*pacs_v08.FIToFICustomerCreditTransferV08, error) {
	if entry.Counterparty == nil {
		return nil, fmt.Errorf("entry %s has no counterparty", entry.ID)
	}

	debtor, creditor := holder, entry.Counterparty.String()
	if entry.Direction == models.DirectionInbound {
		debtor, creditor = entry.Counterparty.String(), holder
	}

	creDtTm := iso.now().UTC()
	settlementDate := entry.Date
	txID := common.Max35Text(entry.ID.String())
	amount := pacs_v08.ActiveCurrencyAndAmount{
		Ccy:   common.ActiveCurrencyCode(iso.bank.Currency),
		Value: entry.Amount.InexactFloat64(),
	}
	bic := common.BICFIDec2014Identifier(iso.bank.BIC)
	agent := pacs_v08.BranchAndFinancialInstitutionIdentification6{
		FinInstnId: pacs_v08.FinancialInstitutionIdentification18{BICFI: &bic},
	}
	debtorName := common.Max140Text(debtor)
	creditorName := common.Max140Text(creditor)

	doc := &pacs_v08.FIToFICustomerCreditTransferV08{
		GrpHdr: pacs_v08.GroupHeader93{
			MsgId:             common.Max35Text(uuid.NewString()),
			CreDtTm:           common.ISODateTime(creDtTm),
			NbOfTxs:           "1",
			TtlIntrBkSttlmAmt: &amount,
			IntrBkSttlmDt:     (*common.ISODate)(&settlementDate),
			SttlmInf: pacs_v08.SettlementInstruction7{
				// intra-bank book transfer
				SttlmMtd: "INDA",
			},
		},
		CdtTrfTxInf: []pacs_v08.CreditTransferTransaction39{
			{
				PmtId: pacs_v08.PaymentIdentification7{
					InstrId:    &txID,
					EndToEndId: txID,
					TxId:       &txID,
				},
				IntrBkSttlmAmt: amount,
				IntrBkSttlmDt:  (*common.ISODate)(&settlementDate),
				ChrgBr:         "SLEV",
				DbtrAgt:        agent,
				Dbtr:           pacs_v08.PartyIdentification135{Nm: &debtorName},
				CdtrAgt:        agent,
				Cdtr:           pacs_v08.PartyIdentification135{Nm: &creditorName},
			},
		},
	}

	return doc, nil
}

// ConvertToXML converts ISO20022 document to XML string
func (iso *ISO20022Service) ConvertToXML(doc any) (string, error) {
	xmlData, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal XML: %w", err)
	}
	return xml.Header + string(xmlData), nil
}
