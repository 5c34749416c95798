package service_test

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/flokiorg/tickethub/config"
	"github.com/flokiorg/tickethub/constants"
	"github.com/flokiorg/tickethub/db"
	"github.com/flokiorg/tickethub/importflow"
	"github.com/flokiorg/tickethub/keys"
	"github.com/flokiorg/tickethub/rates"
	"github.com/flokiorg/tickethub/service"
	"github.com/flokiorg/tickethub/tests"
	testsdb "github.com/flokiorg/tickethub/tests/db"
	"github.com/flokiorg/tickethub/tests/mocks"
	"github.com/flokiorg/tickethub/universallink"
)

const (
	testPrefix = universallink.DefaultPrefix
	testExpiry = uint32(1999999999)
)

func testEnv(relayEndpoint string) *config.AppConfig {
	return &config.AppConfig{
		LinkPrefix:    testPrefix,
		RelayEndpoint: relayEndpoint,
		RelayTimeout:  5 * time.Second,
		RelayEncoding: "form",
		WalletAddress: tests.TestWallet,
		TokenName:     "Tickets",
		TokenSymbol:   "TKT",
		Currency:      "USD",
	}
}

func newTestService(t *testing.T, env *config.AppConfig, opts service.Options) service.Service {
	gormDB, err := testsdb.NewDB(t)
	require.NoError(t, err)
	t.Cleanup(func() { testsdb.CloseDB(gormDB) })

	cfg, err := config.NewConfig(env, gormDB)
	require.NoError(t, err)

	if opts.RateService == nil {
		rateService := mocks.NewMockRateService(t)
		rateService.On("GetEthRate", mock.Anything).Return(&rates.EthRate{Code: "USD", Rate: "2000.00"}, nil).Maybe()
		opts.RateService = rateService
	}

	svc, err := service.New(context.Background(), cfg, gormDB, opts)
	require.NoError(t, err)
	t.Cleanup(svc.Shutdown)
	return svc
}

func waitTerminal(t *testing.T, svc service.Service, id string) importflow.Session {
	t.Helper()
	var session *importflow.Session
	require.Eventually(t, func() bool {
		var err error
		session, err = svc.GetImport(id)
		return err == nil && session.State.Terminal()
	}, 5*time.Second, 10*time.Millisecond)
	return *session
}

func TestHandleUniversalLink_FreeTransferSucceeds(t *testing.T) {
	relay := tests.NewMockPaymentRelay(t, http.StatusOK)
	svc := newTestService(t, testEnv(relay.URL), service.Options{})

	signed, _ := tests.NewSignedOrder(t, []uint16{1, 2}, testExpiry, 0)
	link, err := universallink.NewCodec(testPrefix).Encode(signed)
	require.NoError(t, err)

	result, err := svc.HandleUniversalLink(context.Background(), link)
	require.NoError(t, err)

	assert.True(t, result.Handled)
	assert.Equal(t, constants.IMPORT_KIND_FREE, result.Kind)
	require.NotNil(t, result.Session)
	assert.Equal(t, importflow.StatePromptImport, result.Session.State)
	require.NotNil(t, result.Session.TicketSummary)
	assert.Equal(t, 2, result.Session.TicketSummary.Count)
	assert.False(t, result.Session.TicketSummary.Expired)
	require.NotNil(t, result.Session.Costs)
	assert.True(t, result.Session.Costs.Eth.IsZero())
	require.NotNil(t, result.Session.Costs.Fiat)
	assert.True(t, result.Session.Costs.Fiat.Equal(decimal.Zero))

	session, err := svc.ConfirmImport(result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, importflow.StateProcessing, session.State)

	final := waitTerminal(t, svc, result.Session.ID)
	assert.Equal(t, importflow.StateSucceeded, final.State)

	claims := relay.Claims()
	require.Len(t, claims, 1)
	assert.Equal(t, tests.TestWallet, claims[0].Get("address"))
	assert.Equal(t, "1,2", claims[0].Get("indices"))
	assert.Equal(t, "1999999999", claims[0].Get("expiry"))

	// signature is 0x + r(64) + s(64) + v(2)
	sig := signed.Signature
	require.Len(t, sig, 132)
	assert.Equal(t, sig[:66], claims[0].Get("r"))
	assert.Equal(t, "0x"+sig[66:130], claims[0].Get("s"))
	assert.Equal(t, sig[130:], claims[0].Get("v"))
	assert.Len(t, claims[0].Get("r"), 66)
	assert.Len(t, claims[0].Get("s"), 66)
}

func TestHandleUniversalLink_NotATransferLink(t *testing.T) {
	svc := newTestService(t, testEnv("http://localhost:1/claim"), service.Options{})

	result, err := svc.HandleUniversalLink(context.Background(), "https://example.com/something")
	require.NoError(t, err)
	assert.False(t, result.Handled)
	assert.Nil(t, result.Session)
}

func TestHandleUniversalLink_MalformedLinkFails(t *testing.T) {
	svc := newTestService(t, testEnv("http://localhost:1/claim"), service.Options{})

	result, err := svc.HandleUniversalLink(context.Background(), testPrefix+"AAAA")
	require.NoError(t, err)
	assert.True(t, result.Handled)
	require.NotNil(t, result.Session)
	assert.Equal(t, importflow.StateFailed, result.Session.State)
	assert.Equal(t, importflow.ReasonMalformed, result.Session.Reason)
	assert.Nil(t, result.Session.SignedOrder)

	_, err = svc.RetryImport(context.Background(), result.Session.ID)
	assert.ErrorIs(t, err, service.ErrImportNotRetrying)
}

func TestHandleUniversalLink_PaidTransferHandedOff(t *testing.T) {
	importer := mocks.NewMockPaidOrderImporter(t)
	svc := newTestService(t, testEnv("http://localhost:1/claim"), service.Options{PaidOrderImporter: importer})

	signed, _ := tests.NewSignedOrder(t, []uint16{7}, testExpiry, 1000)
	link, err := universallink.NewCodec(testPrefix).Encode(signed)
	require.NoError(t, err)

	importer.On("ImportPaidSignedOrder",
		mock.MatchedBy(func(order universallink.SignedOrder) bool {
			return order.Signature == signed.Signature && order.Order.PriceOrZero().Int64() == 1000
		}),
		universallink.TokenDescriptor{Contract: tests.TestContract, Name: "Tickets", Symbol: "TKT"},
	).Once()

	result, err := svc.HandleUniversalLink(context.Background(), link)
	require.NoError(t, err)
	assert.True(t, result.Handled)
	assert.Equal(t, constants.IMPORT_KIND_PAID, result.Kind)
	assert.Nil(t, result.Session)
}

func TestHandleUniversalLink_PaidOrderPersistedByDefault(t *testing.T) {
	svc := newTestService(t, testEnv("http://localhost:1/claim"), service.Options{})

	link := tests.NewLink(t, testPrefix, []uint16{3, 4}, testExpiry, 5)
	result, err := svc.HandleUniversalLink(context.Background(), link)
	require.NoError(t, err)
	assert.Equal(t, constants.IMPORT_KIND_PAID, result.Kind)

	var records []db.ImportRecord
	require.Eventually(t, func() bool {
		records = nil
		return svc.GetDB().Find(&records).Error == nil && len(records) == 1
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, constants.IMPORT_KIND_PAID, records[0].Kind)
	assert.Equal(t, constants.IMPORT_STATE_HANDED_OFF, records[0].State)
	assert.Equal(t, "3,4", records[0].Indices)
	assert.Equal(t, "5", records[0].Price)
	assert.Equal(t, tests.TestContract.Hex(), records[0].ContractAddress)
}

func TestHandleUniversalLink_NoWalletFailsAsMalformed(t *testing.T) {
	keysMock := mocks.NewMockKeys(t)
	keysMock.On("GetWalletAddress").Return("", keys.ErrNoWallet).Once()
	svc := newTestService(t, testEnv("http://localhost:1/claim"), service.Options{Keys: keysMock})

	link := tests.NewLink(t, testPrefix, []uint16{1}, testExpiry, 0)
	result, err := svc.HandleUniversalLink(context.Background(), link)
	require.NoError(t, err)
	assert.Equal(t, importflow.StateFailed, result.Session.State)
	assert.Equal(t, importflow.ReasonMalformed, result.Session.Reason)
}

func TestHandleUniversalLink_FiatOmittedWithoutRate(t *testing.T) {
	rateService := mocks.NewMockRateService(t)
	rateService.On("GetEthRate", mock.Anything).Return(nil, errors.New("offline")).Once()
	svc := newTestService(t, testEnv("http://localhost:1/claim"), service.Options{RateService: rateService})

	link := tests.NewLink(t, testPrefix, []uint16{1}, testExpiry, 0)
	result, err := svc.HandleUniversalLink(context.Background(), link)
	require.NoError(t, err)
	require.NotNil(t, result.Session.Costs)
	assert.Nil(t, result.Session.Costs.Fiat)
}

func TestRetryImport_AfterRejection(t *testing.T) {
	relay := tests.NewMockPaymentRelay(t, http.StatusInternalServerError)
	svc := newTestService(t, testEnv(relay.URL), service.Options{})

	link := tests.NewLink(t, testPrefix, []uint16{9}, testExpiry, 0)
	result, err := svc.HandleUniversalLink(context.Background(), link)
	require.NoError(t, err)

	_, err = svc.ConfirmImport(result.Session.ID)
	require.NoError(t, err)
	failed := waitTerminal(t, svc, result.Session.ID)
	assert.Equal(t, importflow.StateFailed, failed.State)
	assert.Equal(t, importflow.ReasonServerRejected, failed.Reason)

	retry, err := svc.RetryImport(context.Background(), result.Session.ID)
	require.NoError(t, err)
	require.NotNil(t, retry.Session)
	assert.NotEqual(t, result.Session.ID, retry.Session.ID)
	assert.Equal(t, importflow.StatePromptImport, retry.Session.State)
	assert.Equal(t, failed.SignedOrder.Signature, retry.Session.SignedOrder.Signature)

	// the failed session is untouched
	previous, err := svc.GetImport(result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, failed.Version, previous.Version)
	assert.Equal(t, importflow.StateFailed, previous.State)
}

func TestCancelImport_WhileProcessing(t *testing.T) {
	relay := tests.NewMockPaymentRelay(t, http.StatusOK)
	relay.Hold()
	svc := newTestService(t, testEnv(relay.URL), service.Options{})

	link := tests.NewLink(t, testPrefix, []uint16{1}, testExpiry, 0)
	result, err := svc.HandleUniversalLink(context.Background(), link)
	require.NoError(t, err)

	_, err = svc.ConfirmImport(result.Session.ID)
	require.NoError(t, err)

	session, err := svc.CancelImport(result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, importflow.StateCancelled, session.State)

	require.Eventually(t, func() bool { return len(relay.Claims()) == 1 }, 5*time.Second, 10*time.Millisecond)
	relay.Release()
	// waits for the discarded submission
	svc.Shutdown()

	session, err = svc.GetImport(result.Session.ID)
	require.NoError(t, err)
	assert.Equal(t, importflow.StateCancelled, session.State)
	assert.Equal(t, uint64(4), session.Version)
}

func TestAcknowledgeImport(t *testing.T) {
	relay := tests.NewMockPaymentRelay(t, http.StatusOK)
	relay.Hold()
	svc := newTestService(t, testEnv(relay.URL), service.Options{})

	link := tests.NewLink(t, testPrefix, []uint16{1}, testExpiry, 0)
	result, err := svc.HandleUniversalLink(context.Background(), link)
	require.NoError(t, err)
	id := result.Session.ID

	assert.ErrorIs(t, svc.AcknowledgeImport(id), service.ErrImportNotTerminal)
	assert.ErrorIs(t, svc.AcknowledgeImport("missing"), service.ErrImportNotFound)

	_, err = svc.ConfirmImport(id)
	require.NoError(t, err)
	relay.Release()
	waitTerminal(t, svc, id)

	require.NoError(t, svc.AcknowledgeImport(id))
	_, err = svc.ConfirmImport(id)
	assert.ErrorIs(t, err, service.ErrImportNotFound)
}

func TestGetImport_FallsBackToDatabase(t *testing.T) {
	relay := tests.NewMockPaymentRelay(t, http.StatusOK)
	svc := newTestService(t, testEnv(relay.URL), service.Options{})

	link := tests.NewLink(t, testPrefix, []uint16{5, 6}, testExpiry, 0)
	result, err := svc.HandleUniversalLink(context.Background(), link)
	require.NoError(t, err)
	id := result.Session.ID

	_, err = svc.ConfirmImport(id)
	require.NoError(t, err)
	final := waitTerminal(t, svc, id)
	require.NoError(t, svc.AcknowledgeImport(id))

	// snapshots are persisted asynchronously
	var session *importflow.Session
	require.Eventually(t, func() bool {
		session, err = svc.GetImport(id)
		return err == nil && session.Version == final.Version
	}, 5*time.Second, 10*time.Millisecond)
	assert.Equal(t, importflow.StateSucceeded, session.State)
	require.NotNil(t, session.SignedOrder)
	assert.Equal(t, []uint16{5, 6}, session.SignedOrder.Order.Indices)
	require.NotNil(t, session.Request)
	assert.Equal(t, "5,6", session.Request.Indices)
	require.NotNil(t, session.TicketSummary)
	assert.Equal(t, 2, session.TicketSummary.Count)

	_, err = svc.GetImport("missing")
	assert.ErrorIs(t, err, service.ErrImportNotFound)
}

func TestHandleUniversalLink_AfterShutdown(t *testing.T) {
	svc := newTestService(t, testEnv("http://localhost:1/claim"), service.Options{})
	svc.Shutdown()

	_, err := svc.HandleUniversalLink(context.Background(), tests.NewLink(t, testPrefix, []uint16{1}, testExpiry, 0))
	assert.ErrorIs(t, err, context.Canceled)
}

func TestConfirmImport_AfterShutdown(t *testing.T) {
	relay := tests.NewMockPaymentRelay(t, http.StatusOK)
	svc := newTestService(t, testEnv(relay.URL), service.Options{})

	link := tests.NewLink(t, testPrefix, []uint16{1}, testExpiry, 0)
	result, err := svc.HandleUniversalLink(context.Background(), link)
	require.NoError(t, err)
	id := result.Session.ID

	svc.Shutdown()

	_, err = svc.ConfirmImport(id)
	assert.ErrorIs(t, err, context.Canceled)
	_, err = svc.RetryImport(context.Background(), id)
	assert.ErrorIs(t, err, context.Canceled)

	session, err := svc.GetImport(id)
	require.NoError(t, err)
	assert.Equal(t, importflow.StatePromptImport, session.State)
	assert.Empty(t, relay.Claims())
}

func TestShutdown_ClosesDatabase(t *testing.T) {
	svc := newTestService(t, testEnv("http://localhost:1/claim"), service.Options{})
	sqlDB, err := svc.GetDB().DB()
	require.NoError(t, err)
	require.NoError(t, sqlDB.Ping())

	svc.Shutdown()
	assert.Error(t, sqlDB.Ping())

	// idempotent
	svc.Shutdown()
}
