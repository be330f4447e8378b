package picking_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"
	"time"

	"github.com/jmoiron/sqlx"
	apppicking "github.com/muhammadheryan/picking-engine/application/picking"
	"github.com/muhammadheryan/picking-engine/cmd/config"
	"github.com/muhammadheryan/picking-engine/constant"
	cachemocks "github.com/muhammadheryan/picking-engine/mocks/repository/cache"
	inventorymocks "github.com/muhammadheryan/picking-engine/mocks/repository/inventory"
	ordermocks "github.com/muhammadheryan/picking-engine/mocks/repository/order"
	sessionmocks "github.com/muhammadheryan/picking-engine/mocks/repository/session"
	txmocks "github.com/muhammadheryan/picking-engine/mocks/repository/tx"
	"github.com/muhammadheryan/picking-engine/model"
	cerr "github.com/muhammadheryan/picking-engine/utils/errors"
	"github.com/stretchr/testify/mock"
)

// The publisher is nil in every test; the app skips publishing when unset.

type fields struct {
	config        *config.Config
	txRepo        *txmocks.TxRepository
	orderRepo     *ordermocks.OrderRepository
	inventoryRepo *inventorymocks.InventoryRepository
	sessionRepo   *sessionmocks.SessionRepository
	cacheRepo     *cachemocks.CacheRepository
}

func newFields(t *testing.T) fields {
	return fields{
		config: &config.Config{
			Picking: config.PickingConfig{
				SessionCacheTTL:     time.Hour,
				DefaultMaxOrders:    10,
				RequireLocationScan: true,
			},
		},
		txRepo:        txmocks.NewTxRepository(t),
		orderRepo:     ordermocks.NewOrderRepository(t),
		inventoryRepo: inventorymocks.NewInventoryRepository(t),
		sessionRepo:   sessionmocks.NewSessionRepository(t),
		cacheRepo:     cachemocks.NewCacheRepository(t),
	}
}

func newApp(f fields) apppicking.PickingApp {
	return apppicking.NewPickingApp(f.config, f.txRepo, f.orderRepo, f.inventoryRepo, f.sessionRepo, f.cacheRepo, nil)
}

// baseSession holds one sku shared by two orders: order 101 needs 2 units,
// order 102 needs 3.
func baseSession() *model.PickingSession {
	return &model.PickingSession{
		ID:          "sess-1",
		OrgID:       1,
		WarehouseID: 7,
		PickerID:    42,
		StrategyID:  "batch",
		Status:      constant.SessionStatusInProgress,
		Orders: []model.SessionOrder{
			{OrderID: 101, OrderNumber: "SO-101"},
			{OrderID: 102, OrderNumber: "SO-102"},
		},
		Items: []model.PickingListItem{
			{
				SKU:      "SKU-A",
				Name:     "Widget",
				Barcode:  "123",
				Quantity: 5,
				Zone:     "A",
				Aisle:    "A-01",
				Rack:     "R1",
				Status:   constant.ItemStatusPending,
				Sequence: 1,
				Contributions: []model.OrderContribution{
					{OrderID: 101, OrderNumber: "SO-101", Quantity: 2},
					{OrderID: 102, OrderNumber: "SO-102", Quantity: 3},
				},
			},
		},
		TotalItems:       5,
		TotalOrders:      2,
		EstimatedMinutes: 2,
		StartedAt:        time.Now().UTC().Add(-10 * time.Minute),
	}
}

func assertErrCode(t *testing.T, err error, errCode constant.ErrorType) {
	t.Helper()
	var ce cerr.CustomError
	if !errors.As(err, &ce) {
		t.Fatalf("error type = %T, want CustomError", err)
	}
	if ce.ErrorCode() != constant.ErrorTypeCode[errCode] {
		t.Fatalf("error code = %s, want %s", ce.ErrorCode(), constant.ErrorTypeCode[errCode])
	}
}

func TestPickingApp_CreateSession(t *testing.T) {
	orders := []model.Order{
		{ID: 101, OrderNumber: "SO-101", OrgID: 1, WarehouseID: 7, Items: []model.OrderLineItem{{SKU: "SKU-A", Quantity: 2}}},
		{ID: 102, OrderNumber: "SO-102", OrgID: 1, WarehouseID: 7, Items: []model.OrderLineItem{
			{SKU: "SKU-A", Quantity: 3},
			{SKU: "SKU-B", Quantity: 1},
		}},
	}

	tests := []struct {
		name     string
		req      *model.CreateSessionRequest
		mockCall func(f fields)
		check    func(t *testing.T, got *model.PickingSession)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: explicit order ids with shared sku",
			req: &model.CreateSessionRequest{
				WarehouseID: 7,
				StrategyID:  "batch",
				OrderIDs:    []uint64{101, 102},
			},
			mockCall: func(f fields) {
				f.orderRepo.On("GetUnclaimedOrdersByIDs", mock.Anything, uint64(1), uint64(7), []uint64{101, 102}).
					Return(orders, nil).Once()

				f.inventoryRepo.On("GetBestLocation", mock.Anything, "SKU-A", uint64(7)).Return(&model.SKULocation{
					SKU: "SKU-A", ProductName: "Widget", Barcode: "123", Zone: "A", Aisle: "A-01", Rack: "R1",
				}, nil).Once()
				f.inventoryRepo.On("GetBestLocation", mock.Anything, "SKU-B", uint64(7)).Return(&model.SKULocation{
					SKU: "SKU-B", ProductName: "Gadget", Barcode: "456", Zone: "A", Aisle: "A-02", Rack: "R2",
				}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.orderRepo.On("ClaimOrderTx", mock.Anything, tx, uint64(101), mock.AnythingOfType("string")).Return(true, nil).Once()
				f.orderRepo.On("ClaimOrderTx", mock.Anything, tx, uint64(102), mock.AnythingOfType("string")).Return(true, nil).Once()

				f.sessionRepo.On("InsertSessionTx", mock.Anything, tx, mock.MatchedBy(func(s *model.PickingSession) bool {
					return s.TotalItems == 6 && s.TotalOrders == 2 && s.Status == constant.SessionStatusInProgress
				})).Return(nil).Once()

				f.cacheRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()
			},
			check: func(t *testing.T, got *model.PickingSession) {
				if len(got.Items) != 2 {
					t.Fatalf("items = %d, want 2", len(got.Items))
				}
				shared := got.ItemBySKU("SKU-A")
				if shared.Quantity != 5 || len(shared.Contributions) != 2 {
					t.Fatalf("shared item = qty %d with %d contributions, want 5 and 2", shared.Quantity, len(shared.Contributions))
				}
				if got.EstimatedMinutes <= 0 {
					t.Error("estimated minutes should be positive")
				}
				if got.Items[0].Sequence != 1 || got.Items[1].Sequence != 2 {
					t.Error("items should carry route sequence numbers")
				}
			},
		},
		{
			name: "success: explicit ids truncated to the strategy cap",
			req: &model.CreateSessionRequest{
				WarehouseID: 7,
				StrategyID:  "single",
				OrderIDs:    []uint64{101, 102},
			},
			mockCall: func(f fields) {
				f.orderRepo.On("GetUnclaimedOrdersByIDs", mock.Anything, uint64(1), uint64(7), []uint64{101}).
					Return(orders[:1], nil).Once()

				f.inventoryRepo.On("GetBestLocation", mock.Anything, "SKU-A", uint64(7)).Return(&model.SKULocation{
					SKU: "SKU-A", ProductName: "Widget", Barcode: "123", Zone: "A", Aisle: "A-01", Rack: "R1",
				}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.orderRepo.On("ClaimOrderTx", mock.Anything, tx, uint64(101), mock.AnythingOfType("string")).Return(true, nil).Once()
				f.sessionRepo.On("InsertSessionTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
				f.cacheRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()
			},
			check: func(t *testing.T, got *model.PickingSession) {
				if got.TotalOrders != 1 {
					t.Fatalf("total orders = %d, want 1", got.TotalOrders)
				}
			},
		},
		{
			name: "error: unknown strategy",
			req: &model.CreateSessionRequest{
				WarehouseID: 7,
				StrategyID:  "teleport",
			},
			wantErr: true,
			errCode: constant.ErrInvalidStrategy,
		},
		{
			name: "error: no eligible orders",
			req: &model.CreateSessionRequest{
				WarehouseID: 7,
				StrategyID:  "batch",
				Carrier:     "dhl",
			},
			mockCall: func(f fields) {
				f.orderRepo.On("SelectEligibleOrders", mock.Anything, uint64(1), uint64(7), mock.MatchedBy(func(filter *model.OrderFilter) bool {
					return filter.Carrier == "dhl"
				}), 10).Return([]model.Order{}, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrNoOrdersAvailable,
		},
		{
			name: "error: order claimed by a concurrent session",
			req: &model.CreateSessionRequest{
				WarehouseID: 7,
				StrategyID:  "batch",
				OrderIDs:    []uint64{101},
			},
			mockCall: func(f fields) {
				f.orderRepo.On("GetUnclaimedOrdersByIDs", mock.Anything, uint64(1), uint64(7), []uint64{101}).
					Return(orders[:1], nil).Once()
				f.inventoryRepo.On("GetBestLocation", mock.Anything, "SKU-A", uint64(7)).Return(&model.SKULocation{
					SKU: "SKU-A", ProductName: "Widget",
				}, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("RollbackTx", tx).Return(nil).Once()
				f.orderRepo.On("ClaimOrderTx", mock.Anything, tx, uint64(101), mock.AnythingOfType("string")).Return(false, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrOrderClaimConflict,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := newApp(f)

			got, err := app.CreateSession(context.Background(), 1, 42, tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("CreateSession() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Status != constant.SessionStatusInProgress {
				t.Fatalf("status = %s, want %s", got.Status, constant.SessionStatusInProgress)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestPickingApp_ValidateScan(t *testing.T) {
	tests := []struct {
		name       string
		req        *model.ScanRequest
		mockCall   func(f fields)
		wantResult model.ScanResult
		check      func(t *testing.T, got *model.ScanResponse)
		wantErr    bool
		errCode    constant.ErrorType
	}{
		{
			name: "success: partial scan completes only the first order",
			req:  &model.ScanRequest{Barcode: "123", Quantity: 2},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(baseSession(), nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.sessionRepo.On("UpdateItemTx", mock.Anything, tx, "sess-1", mock.MatchedBy(func(item *model.PickingListItem) bool {
					return item.PickedQuantity == 2 && item.Status == constant.ItemStatusPartial &&
						item.Contributions[0].PickedQuantity == 2 && item.Contributions[1].PickedQuantity == 0
				})).Return(nil).Once()
				f.sessionRepo.On("UpdateCountersTx", mock.Anything, tx, mock.MatchedBy(func(s *model.PickingSession) bool {
					return s.PickedItems == 2 && s.CompletedOrders == 1
				})).Return(nil).Once()
				f.sessionRepo.On("UpdateSessionOrderTx", mock.Anything, tx, "sess-1", mock.MatchedBy(func(o *model.SessionOrder) bool {
					return o.OrderID == 101 && o.Picked && o.PickedAt != nil
				})).Return(nil).Once()
				f.orderRepo.On("MarkOrderPickedTx", mock.Anything, tx, uint64(101), "sess-1").Return(nil).Once()

				f.cacheRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()
			},
			wantResult: model.ScanResultPicked,
			check: func(t *testing.T, got *model.ScanResponse) {
				if len(got.CompletedOrders) != 1 || got.CompletedOrders[0] != 101 {
					t.Fatalf("completed orders = %v, want [101]", got.CompletedOrders)
				}
				if got.Progress.Percentage != 40 {
					t.Errorf("progress = %.2f, want 40", got.Progress.Percentage)
				}
				if got.NextItem == nil || got.NextItem.SKU != "SKU-A" {
					t.Error("next item should still be the partially picked sku")
				}
			},
		},
		{
			name: "success: full scan completes both orders sharing the sku",
			req:  &model.ScanRequest{Barcode: "123", Quantity: 5},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(baseSession(), nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.sessionRepo.On("UpdateItemTx", mock.Anything, tx, "sess-1", mock.MatchedBy(func(item *model.PickingListItem) bool {
					return item.PickedQuantity == 5 && item.Status == constant.ItemStatusPicked
				})).Return(nil).Once()
				f.sessionRepo.On("UpdateCountersTx", mock.Anything, tx, mock.MatchedBy(func(s *model.PickingSession) bool {
					return s.PickedItems == 5 && s.CompletedOrders == 2
				})).Return(nil).Once()
				f.sessionRepo.On("UpdateSessionOrderTx", mock.Anything, tx, "sess-1", mock.Anything).Return(nil).Twice()
				f.orderRepo.On("MarkOrderPickedTx", mock.Anything, tx, uint64(101), "sess-1").Return(nil).Once()
				f.orderRepo.On("MarkOrderPickedTx", mock.Anything, tx, uint64(102), "sess-1").Return(nil).Once()

				f.cacheRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()
			},
			wantResult: model.ScanResultPicked,
			check: func(t *testing.T, got *model.ScanResponse) {
				if len(got.CompletedOrders) != 2 {
					t.Fatalf("completed orders = %v, want both", got.CompletedOrders)
				}
				if got.Progress.Percentage != 100 {
					t.Errorf("progress = %.2f, want 100", got.Progress.Percentage)
				}
				if got.NextItem != nil {
					t.Error("no item should remain pending")
				}
			},
		},
		{
			name: "unknown barcode records a wrong_item error without mutating progress",
			req:  &model.ScanRequest{Barcode: "UNKNOWN"},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(baseSession(), nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.sessionRepo.On("InsertSessionErrorTx", mock.Anything, tx, mock.MatchedBy(func(e *model.SessionError) bool {
					return e.SessionID == "sess-1" && e.Type == constant.SessionErrorWrongItem
				})).Return(nil).Once()
				f.sessionRepo.On("UpdateCountersTx", mock.Anything, tx, mock.MatchedBy(func(s *model.PickingSession) bool {
					return s.ErrorCount == 1 && s.PickedItems == 0
				})).Return(nil).Once()

				f.cacheRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()
			},
			wantResult: model.ScanResultItemNotFound,
			check: func(t *testing.T, got *model.ScanResponse) {
				if got.Progress.PickedItems != 0 {
					t.Errorf("picked items = %d, want 0", got.Progress.PickedItems)
				}
			},
		},
		{
			name: "already picked item is rejected without any write",
			req:  &model.ScanRequest{Barcode: "123"},
			mockCall: func(f fields) {
				s := baseSession()
				s.Items[0].PickedQuantity = 5
				s.Items[0].Status = constant.ItemStatusPicked
				s.PickedItems = 5
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(s, nil).Once()
			},
			wantResult: model.ScanResultAlreadyPicked,
		},
		{
			name: "wrong location scan records the mismatch",
			req:  &model.ScanRequest{Barcode: "123", Location: "B-99"},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(baseSession(), nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.sessionRepo.On("InsertSessionErrorTx", mock.Anything, tx, mock.MatchedBy(func(e *model.SessionError) bool {
					return e.Type == constant.SessionErrorWrongLocation
				})).Return(nil).Once()
				f.sessionRepo.On("UpdateCountersTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
				f.cacheRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()
			},
			wantResult: model.ScanResultWrongLocation,
			check: func(t *testing.T, got *model.ScanResponse) {
				if got.ExpectedLocation != "A-A-01-R1" {
					t.Errorf("expected location = %s, want A-A-01-R1", got.ExpectedLocation)
				}
				if got.ScannedLocation != "B-99" {
					t.Errorf("scanned location = %s, want B-99", got.ScannedLocation)
				}
			},
		},
		{
			name: "quantity above the remaining need is rejected without any write",
			req:  &model.ScanRequest{Barcode: "123", Quantity: 4},
			mockCall: func(f fields) {
				s := baseSession()
				s.Items[0].PickedQuantity = 3
				s.Items[0].Status = constant.ItemStatusPartial
				s.PickedItems = 3
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(s, nil).Once()
			},
			wantResult: model.ScanResultQuantityExceeded,
			check: func(t *testing.T, got *model.ScanResponse) {
				if got.PickedQty != 3 || got.RequiredQty != 5 {
					t.Errorf("qty = %d/%d, want 3/5", got.PickedQty, got.RequiredQty)
				}
			},
		},
		{
			name: "error: paused session rejects scans",
			req:  &model.ScanRequest{Barcode: "123"},
			mockCall: func(f fields) {
				s := baseSession()
				s.Status = constant.SessionStatusPaused
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(s, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrSessionNotActive,
		},
		{
			name: "error: session not found anywhere",
			req:  &model.ScanRequest{Barcode: "123"},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(nil, nil).Once()
				f.sessionRepo.On("GetSessionByID", mock.Anything, "sess-1").Return(nil, sql.ErrNoRows).Once()
			},
			wantErr: true,
			errCode: constant.ErrSessionNotFound,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := newApp(f)

			got, err := app.ValidateScan(context.Background(), "sess-1", tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ValidateScan() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Result != tt.wantResult {
				t.Fatalf("result = %s, want %s", got.Result, tt.wantResult)
			}
			if tt.check != nil {
				tt.check(t, got)
			}
		})
	}
}

func TestPickingApp_ManualPick(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.ManualPickRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: manual pick leaves an audit event",
			req:  &model.ManualPickRequest{SKU: "SKU-A", Quantity: 2, Reason: "barcode unreadable"},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(baseSession(), nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.sessionRepo.On("UpdateItemTx", mock.Anything, tx, "sess-1", mock.MatchedBy(func(item *model.PickingListItem) bool {
					return item.PickedQuantity == 2
				})).Return(nil).Once()
				f.sessionRepo.On("UpdateCountersTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
				f.sessionRepo.On("UpdateSessionOrderTx", mock.Anything, tx, "sess-1", mock.MatchedBy(func(o *model.SessionOrder) bool {
					return o.OrderID == 101 && o.Picked
				})).Return(nil).Once()
				f.orderRepo.On("MarkOrderPickedTx", mock.Anything, tx, uint64(101), "sess-1").Return(nil).Once()
				f.sessionRepo.On("InsertSessionEventTx", mock.Anything, tx, mock.MatchedBy(func(e *model.SessionEvent) bool {
					return e.Type == "manual_pick"
				})).Return(nil).Once()

				f.cacheRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()
			},
		},
		{
			name: "error: sku not on the picking list",
			req:  &model.ManualPickRequest{SKU: "SKU-Z", Quantity: 1, Reason: "damaged"},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(baseSession(), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrItemNotFound,
		},
		{
			name: "error: item already fully picked",
			req:  &model.ManualPickRequest{SKU: "SKU-A", Quantity: 1, Reason: "damaged"},
			mockCall: func(f fields) {
				s := baseSession()
				s.Items[0].PickedQuantity = 5
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(s, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrAlreadyPicked,
		},
		{
			name: "error: quantity above the remaining need",
			req:  &model.ManualPickRequest{SKU: "SKU-A", Quantity: 6, Reason: "damaged"},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(baseSession(), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrQuantityExceeded,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := newApp(f)

			got, err := app.ManualPick(context.Background(), "sess-1", tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ManualPick() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
				return
			}
			if got.Result != model.ScanResultPicked {
				t.Fatalf("result = %s, want %s", got.Result, model.ScanResultPicked)
			}
		})
	}
}

func TestPickingApp_ReportShortage(t *testing.T) {
	tests := []struct {
		name     string
		req      *model.ShortageRequest
		mockCall func(f fields)
		wantErr  bool
		errCode  constant.ErrorType
	}{
		{
			name: "success: shortage flags every contributing order",
			req:  &model.ShortageRequest{SKU: "SKU-A", ExpectedQty: 5, ActualQty: 1, Reason: "bin empty"},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(baseSession(), nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()

				f.sessionRepo.On("UpdateItemTx", mock.Anything, tx, "sess-1", mock.MatchedBy(func(item *model.PickingListItem) bool {
					return item.Status == constant.ItemStatusShortage
				})).Return(nil).Once()
				f.sessionRepo.On("UpdateSessionOrderTx", mock.Anything, tx, "sess-1", mock.MatchedBy(func(o *model.SessionOrder) bool {
					return o.HasShortage
				})).Return(nil).Twice()
				f.sessionRepo.On("InsertSessionErrorTx", mock.Anything, tx, mock.MatchedBy(func(e *model.SessionError) bool {
					return e.Type == constant.SessionErrorShortage
				})).Return(nil).Once()
				f.sessionRepo.On("UpdateCountersTx", mock.Anything, tx, mock.MatchedBy(func(s *model.PickingSession) bool {
					return s.ErrorCount == 1
				})).Return(nil).Once()

				f.cacheRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()
			},
		},
		{
			name: "success: shortage accepted while paused",
			req:  &model.ShortageRequest{SKU: "SKU-A", ExpectedQty: 5, ActualQty: 0, Reason: "bin empty"},
			mockCall: func(f fields) {
				s := baseSession()
				s.Status = constant.SessionStatusPaused
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(s, nil).Once()

				tx := &sqlx.Tx{}
				f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
				f.txRepo.On("CommitTx", tx).Return(nil).Once()
				f.sessionRepo.On("UpdateItemTx", mock.Anything, tx, "sess-1", mock.Anything).Return(nil).Once()
				f.sessionRepo.On("UpdateSessionOrderTx", mock.Anything, tx, "sess-1", mock.Anything).Return(nil).Twice()
				f.sessionRepo.On("InsertSessionErrorTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
				f.sessionRepo.On("UpdateCountersTx", mock.Anything, tx, mock.Anything).Return(nil).Once()
				f.cacheRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()
			},
		},
		{
			name: "error: sku not on the picking list",
			req:  &model.ShortageRequest{SKU: "SKU-Z", ExpectedQty: 1, Reason: "bin empty"},
			mockCall: func(f fields) {
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(baseSession(), nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrItemNotFound,
		},
		{
			name: "error: completed session rejects shortages",
			req:  &model.ShortageRequest{SKU: "SKU-A", ExpectedQty: 1, Reason: "bin empty"},
			mockCall: func(f fields) {
				s := baseSession()
				s.Status = constant.SessionStatusCompleted
				f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(s, nil).Once()
			},
			wantErr: true,
			errCode: constant.ErrSessionNotActive,
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			f := newFields(t)
			if tt.mockCall != nil {
				tt.mockCall(f)
			}
			app := newApp(f)

			err := app.ReportShortage(context.Background(), "sess-1", tt.req)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReportShortage() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				assertErrCode(t, err, tt.errCode)
			}
		})
	}
}

func TestPickingApp_PauseResume(t *testing.T) {
	t.Run("pause stops an in_progress session", func(t *testing.T) {
		f := newFields(t)
		f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(baseSession(), nil).Once()

		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()
		f.sessionRepo.On("UpdateSessionStateTx", mock.Anything, tx, mock.MatchedBy(func(s *model.PickingSession) bool {
			return s.Status == constant.SessionStatusPaused && s.PausedAt != nil
		})).Return(nil).Once()
		f.cacheRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()

		got, err := newApp(f).PauseSession(context.Background(), "sess-1")
		if err != nil {
			t.Fatalf("PauseSession() error = %v", err)
		}
		if got.Status != constant.SessionStatusPaused {
			t.Fatalf("status = %s, want paused", got.Status)
		}
	})

	t.Run("pause on an already paused session is rejected", func(t *testing.T) {
		f := newFields(t)
		s := baseSession()
		s.Status = constant.SessionStatusPaused
		f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(s, nil).Once()

		_, err := newApp(f).PauseSession(context.Background(), "sess-1")
		assertErrCode(t, err, constant.ErrSessionNotActive)
	})

	t.Run("resume restores the session with its progress intact", func(t *testing.T) {
		f := newFields(t)
		s := baseSession()
		s.Status = constant.SessionStatusPaused
		s.Items[0].PickedQuantity = 2
		s.Items[0].Status = constant.ItemStatusPartial
		s.PickedItems = 2
		now := time.Now().UTC()
		s.PausedAt = &now
		f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(s, nil).Once()

		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()
		f.sessionRepo.On("UpdateSessionStateTx", mock.Anything, tx, mock.MatchedBy(func(s *model.PickingSession) bool {
			return s.Status == constant.SessionStatusInProgress && s.ResumedAt != nil
		})).Return(nil).Once()
		f.cacheRepo.On("SetSession", mock.Anything, mock.Anything, time.Hour).Return(nil).Once()

		got, err := newApp(f).ResumeSession(context.Background(), "sess-1")
		if err != nil {
			t.Fatalf("ResumeSession() error = %v", err)
		}
		if got.Status != constant.SessionStatusInProgress {
			t.Fatalf("status = %s, want in_progress", got.Status)
		}
		if got.PickedItems != 2 || got.Items[0].PickedQuantity != 2 {
			t.Fatal("resume must preserve picking progress")
		}
	})

	t.Run("resume on an in_progress session is rejected", func(t *testing.T) {
		f := newFields(t)
		f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(baseSession(), nil).Once()

		_, err := newApp(f).ResumeSession(context.Background(), "sess-1")
		assertErrCode(t, err, constant.ErrSessionNotPaused)
	})
}

func TestPickingApp_CancelSession(t *testing.T) {
	t.Run("cancel releases every claimed order", func(t *testing.T) {
		f := newFields(t)
		f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(baseSession(), nil).Once()

		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()
		f.orderRepo.On("ReleaseOrderTx", mock.Anything, tx, uint64(101), "sess-1").Return(true, nil).Once()
		f.orderRepo.On("ReleaseOrderTx", mock.Anything, tx, uint64(102), "sess-1").Return(true, nil).Once()
		f.sessionRepo.On("UpdateSessionStateTx", mock.Anything, tx, mock.MatchedBy(func(s *model.PickingSession) bool {
			return s.Status == constant.SessionStatusCancelled && s.CancelledAt != nil
		})).Return(nil).Once()
		f.sessionRepo.On("InsertSessionEventTx", mock.Anything, tx, mock.MatchedBy(func(e *model.SessionEvent) bool {
			return e.Type == "session_cancelled"
		})).Return(nil).Once()
		f.cacheRepo.On("DeleteSession", mock.Anything, "sess-1").Return(nil).Once()

		if err := newApp(f).CancelSession(context.Background(), "sess-1", "shift over"); err != nil {
			t.Fatalf("CancelSession() error = %v", err)
		}
	})

	t.Run("cancel on a terminal session is rejected", func(t *testing.T) {
		f := newFields(t)
		s := baseSession()
		s.Status = constant.SessionStatusCancelled
		f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(s, nil).Once()

		err := newApp(f).CancelSession(context.Background(), "sess-1", "again")
		assertErrCode(t, err, constant.ErrSessionNotActive)
	})
}

func TestPickingApp_CompleteSession(t *testing.T) {
	t.Run("clean completion computes metrics and keeps picked orders", func(t *testing.T) {
		f := newFields(t)
		s := baseSession()
		s.Items[0].PickedQuantity = 5
		s.Items[0].Status = constant.ItemStatusPicked
		s.Items[0].Contributions[0].PickedQuantity = 2
		s.Items[0].Contributions[1].PickedQuantity = 3
		s.PickedItems = 5
		s.CompletedOrders = 2
		s.Orders[0].Picked = true
		s.Orders[1].Picked = true
		f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(s, nil).Once()

		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()
		f.sessionRepo.On("UpdateSessionStateTx", mock.Anything, tx, mock.MatchedBy(func(s *model.PickingSession) bool {
			return s.Status == constant.SessionStatusCompleted && s.Metrics != nil && s.CompletedAt != nil
		})).Return(nil).Once()
		f.cacheRepo.On("DeleteSession", mock.Anything, "sess-1").Return(nil).Once()

		got, err := newApp(f).CompleteSession(context.Background(), "sess-1")
		if err != nil {
			t.Fatalf("CompleteSession() error = %v", err)
		}
		if got.Status != constant.SessionStatusCompleted {
			t.Fatalf("status = %s, want completed", got.Status)
		}
		if got.Metrics == nil {
			t.Fatal("metrics should be computed on completion")
		}
		if got.Metrics.AccuracyPct != 100 {
			t.Errorf("accuracy = %.2f, want 100", got.Metrics.AccuracyPct)
		}
		if got.Metrics.ActualMinutes <= 0 || got.Metrics.ItemsPerMinute <= 0 {
			t.Error("duration metrics should be positive")
		}
	})

	t.Run("completion with a shortage releases the unfinished order", func(t *testing.T) {
		f := newFields(t)
		s := baseSession()
		s.Items[0].PickedQuantity = 2
		s.Items[0].Status = constant.ItemStatusShortage
		s.Items[0].Contributions[0].PickedQuantity = 2
		s.PickedItems = 2
		s.CompletedOrders = 1
		s.ErrorCount = 1
		s.Orders[0].Picked = true
		s.Orders[1].HasShortage = true
		f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(s, nil).Once()

		tx := &sqlx.Tx{}
		f.txRepo.On("BeginTx", mock.Anything).Return(tx, nil).Once()
		f.txRepo.On("CommitTx", tx).Return(nil).Once()
		f.orderRepo.On("ReleaseOrderTx", mock.Anything, tx, uint64(102), "sess-1").Return(true, nil).Once()
		f.sessionRepo.On("UpdateSessionStateTx", mock.Anything, tx, mock.MatchedBy(func(s *model.PickingSession) bool {
			return s.Status == constant.SessionStatusCompletedWithIssues
		})).Return(nil).Once()
		f.cacheRepo.On("DeleteSession", mock.Anything, "sess-1").Return(nil).Once()

		got, err := newApp(f).CompleteSession(context.Background(), "sess-1")
		if err != nil {
			t.Fatalf("CompleteSession() error = %v", err)
		}
		if got.Status != constant.SessionStatusCompletedWithIssues {
			t.Fatalf("status = %s, want completed_with_issues", got.Status)
		}
	})

	t.Run("paused session cannot be completed", func(t *testing.T) {
		f := newFields(t)
		s := baseSession()
		s.Status = constant.SessionStatusPaused
		f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(s, nil).Once()

		_, err := newApp(f).CompleteSession(context.Background(), "sess-1")
		assertErrCode(t, err, constant.ErrSessionNotActive)
	})
}

func TestPickingApp_GetSession(t *testing.T) {
	t.Run("falls through cache tiers to durable storage", func(t *testing.T) {
		f := newFields(t)
		s := baseSession()
		f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(nil, nil).Once()
		f.sessionRepo.On("GetSessionByID", mock.Anything, "sess-1").Return(s, nil).Once()
		f.cacheRepo.On("SetSession", mock.Anything, s, time.Hour).Return(nil).Once()

		got, err := newApp(f).GetSession(context.Background(), "sess-1")
		if err != nil {
			t.Fatalf("GetSession() error = %v", err)
		}
		if got.ID != "sess-1" {
			t.Fatalf("session id = %s, want sess-1", got.ID)
		}
	})

	t.Run("terminal session read from durable storage is not cached again", func(t *testing.T) {
		f := newFields(t)
		s := baseSession()
		s.Status = constant.SessionStatusCompleted
		f.cacheRepo.On("GetSession", mock.Anything, "sess-1").Return(nil, nil).Once()
		f.sessionRepo.On("GetSessionByID", mock.Anything, "sess-1").Return(s, nil).Once()

		got, err := newApp(f).GetSession(context.Background(), "sess-1")
		if err != nil {
			t.Fatalf("GetSession() error = %v", err)
		}
		if got.Status != constant.SessionStatusCompleted {
			t.Fatalf("status = %s, want completed", got.Status)
		}
	})

	t.Run("unknown session id", func(t *testing.T) {
		f := newFields(t)
		f.cacheRepo.On("GetSession", mock.Anything, "nope").Return(nil, nil).Once()
		f.sessionRepo.On("GetSessionByID", mock.Anything, "nope").Return(nil, sql.ErrNoRows).Once()

		_, err := newApp(f).GetSession(context.Background(), "nope")
		assertErrCode(t, err, constant.ErrSessionNotFound)
	})
}
