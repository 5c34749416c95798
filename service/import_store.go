package service

import (
	"encoding/json"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/flokiorg/tickethub/constants"
	"github.com/flokiorg/tickethub/db"
	"github.com/flokiorg/tickethub/importflow"
	"github.com/flokiorg/tickethub/rates"
	"github.com/flokiorg/tickethub/relay"
	"github.com/flokiorg/tickethub/universallink"
)

type importStore struct {
	db *gorm.DB
}

func newImportStore(gormDB *gorm.DB) *importStore {
	return &importStore{db: gormDB}
}

func (store *importStore) saveSession(session importflow.Session) error {
	record := db.ImportRecord{
		ID:      session.ID,
		Kind:    constants.IMPORT_KIND_FREE,
		State:   string(session.State),
		Reason:  string(session.Reason),
		Error:   session.Error,
		Version: session.Version,
	}
	if session.SignedOrder != nil {
		applyOrder(&record, *session.SignedOrder)
	}

	var err error
	if record.RelayRequest, err = marshalOptional(session.Request); err != nil {
		return err
	}
	if record.TicketSummary, err = marshalOptional(session.TicketSummary); err != nil {
		return err
	}
	if record.Costs, err = marshalOptional(session.Costs); err != nil {
		return err
	}

	// never overwrite a newer snapshot of the same session
	return store.db.Transaction(func(tx *gorm.DB) error {
		var existing db.ImportRecord
		err := tx.Limit(1).Find(&existing, "id = ?", record.ID).Error
		if err != nil {
			return err
		}
		if existing.ID != "" && existing.Version >= record.Version {
			return nil
		}
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "id"}},
			UpdateAll: true,
		}).Create(&record).Error
	})
}

func (store *importStore) savePaidOrder(id string, signedOrder universallink.SignedOrder) error {
	record := db.ImportRecord{
		ID:      id,
		Kind:    constants.IMPORT_KIND_PAID,
		State:   constants.IMPORT_STATE_HANDED_OFF,
		Version: 1,
	}
	applyOrder(&record, signedOrder)
	return store.db.Create(&record).Error
}

func (store *importStore) find(id string) (*db.ImportRecord, error) {
	var record db.ImportRecord
	err := store.db.Limit(1).Find(&record, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	if record.ID == "" {
		return nil, ErrImportNotFound
	}
	return &record, nil
}

// loadSession rebuilds the last persisted snapshot of a free import.
func (store *importStore) loadSession(id string) (*importflow.Session, error) {
	record, err := store.find(id)
	if err != nil {
		return nil, err
	}
	if record.Kind != constants.IMPORT_KIND_FREE {
		return nil, ErrImportNotFound
	}
	return recordToSession(record)
}

func applyOrder(record *db.ImportRecord, signedOrder universallink.SignedOrder) {
	order := signedOrder.Order
	record.ContractAddress = order.ContractAddress.Hex()
	record.Indices = relay.JoinIndices(order.Indices)
	record.Expiry = order.Expiry
	record.Price = order.PriceOrZero().String()
	record.Signature = signedOrder.Signature
}

func recordToSession(record *db.ImportRecord) (*importflow.Session, error) {
	session := &importflow.Session{
		ID:        record.ID,
		Version:   record.Version,
		State:     importflow.State(record.State),
		Reason:    importflow.FailureReason(record.Reason),
		Error:     record.Error,
		UpdatedAt: record.UpdatedAt,
	}

	if record.Signature != "" {
		signedOrder, err := recordToOrder(record)
		if err != nil {
			return nil, err
		}
		session.SignedOrder = &signedOrder
	}

	if len(record.RelayRequest) > 0 {
		session.Request = &relay.Request{}
		if err := json.Unmarshal(record.RelayRequest, session.Request); err != nil {
			return nil, fmt.Errorf("failed to decode relay request of %s: %w", record.ID, err)
		}
	}
	if len(record.TicketSummary) > 0 {
		session.TicketSummary = &importflow.TicketSummary{}
		if err := json.Unmarshal(record.TicketSummary, session.TicketSummary); err != nil {
			return nil, fmt.Errorf("failed to decode ticket summary of %s: %w", record.ID, err)
		}
	}
	if len(record.Costs) > 0 {
		session.Costs = &rates.CostEstimate{}
		if err := json.Unmarshal(record.Costs, session.Costs); err != nil {
			return nil, fmt.Errorf("failed to decode costs of %s: %w", record.ID, err)
		}
	}
	if session.UpdatedAt.IsZero() {
		session.UpdatedAt = time.Now()
	}
	return session, nil
}

func recordToOrder(record *db.ImportRecord) (universallink.SignedOrder, error) {
	var indices []uint16
	if record.Indices != "" {
		for _, part := range strings.Split(record.Indices, ",") {
			index, err := strconv.ParseUint(part, 10, 16)
			if err != nil {
				return universallink.SignedOrder{}, fmt.Errorf("invalid stored index %q: %w", part, err)
			}
			indices = append(indices, uint16(index))
		}
	}

	price, ok := new(big.Int).SetString(record.Price, 10)
	if !ok {
		return universallink.SignedOrder{}, errors.New("invalid stored price")
	}

	return universallink.SignedOrder{
		Order:     universallink.NewOrder(common.HexToAddress(record.ContractAddress), indices, record.Expiry, price),
		Signature: record.Signature,
	}, nil
}

func marshalOptional[T any](value *T) (datatypes.JSON, error) {
	if value == nil {
		return nil, nil
	}
	data, err := json.Marshal(value)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(data), nil
}
