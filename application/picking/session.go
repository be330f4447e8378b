package picking

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/muhammadheryan/picking-engine/application/strategy"
	"github.com/muhammadheryan/picking-engine/cmd/config"
	"github.com/muhammadheryan/picking-engine/constant"
	"github.com/muhammadheryan/picking-engine/model"
	cacherepo "github.com/muhammadheryan/picking-engine/repository/cache"
	inventoryrepo "github.com/muhammadheryan/picking-engine/repository/inventory"
	orderrepo "github.com/muhammadheryan/picking-engine/repository/order"
	sessionrepo "github.com/muhammadheryan/picking-engine/repository/session"
	txrepo "github.com/muhammadheryan/picking-engine/repository/tx"
	"github.com/muhammadheryan/picking-engine/thirdparty/rabbitmq"
	"github.com/muhammadheryan/picking-engine/utils/errors"
	"github.com/muhammadheryan/picking-engine/utils/logger"
	"go.uber.org/zap"
)

type PickingApp interface {
	CreateSession(ctx context.Context, orgID, pickerID uint64, req *model.CreateSessionRequest) (*model.PickingSession, error)
	GetSession(ctx context.Context, sessionID string) (*model.PickingSession, error)
	ValidateScan(ctx context.Context, sessionID string, req *model.ScanRequest) (*model.ScanResponse, error)
	ManualPick(ctx context.Context, sessionID string, req *model.ManualPickRequest) (*model.ScanResponse, error)
	ReportShortage(ctx context.Context, sessionID string, req *model.ShortageRequest) error
	PauseSession(ctx context.Context, sessionID string) (*model.PickingSession, error)
	ResumeSession(ctx context.Context, sessionID string) (*model.PickingSession, error)
	CancelSession(ctx context.Context, sessionID, reason string) error
	CompleteSession(ctx context.Context, sessionID string) (*model.PickingSession, error)
}

type pickingAppImpl struct {
	config        *config.Config
	txRepo        txrepo.TxRepository
	orderRepo     orderrepo.OrderRepository
	inventoryRepo inventoryrepo.InventoryRepository
	sessionRepo   sessionrepo.SessionRepository
	cacheRepo     cacherepo.CacheRepository
	publisher     rabbitmq.EventPublisher
	live          *liveStore
}

func NewPickingApp(config *config.Config, txRepo txrepo.TxRepository, orderRepo orderrepo.OrderRepository,
	inventoryRepo inventoryrepo.InventoryRepository, sessionRepo sessionrepo.SessionRepository,
	cacheRepo cacherepo.CacheRepository, publisher rabbitmq.EventPublisher) PickingApp {
	return &pickingAppImpl{
		config:        config,
		txRepo:        txRepo,
		orderRepo:     orderRepo,
		inventoryRepo: inventoryRepo,
		sessionRepo:   sessionRepo,
		cacheRepo:     cacheRepo,
		publisher:     publisher,
		live:          newLiveStore(),
	}
}

func (a *pickingAppImpl) CreateSession(ctx context.Context, orgID, pickerID uint64, req *model.CreateSessionRequest) (*model.PickingSession, error) {
	strat, err := strategy.Resolve(req.StrategyID)
	if err != nil {
		return nil, err
	}

	maxOrders := req.MaxOrders
	if maxOrders <= 0 {
		maxOrders = a.config.Picking.DefaultMaxOrders
	}
	if maxOrders > strat.MaxOrders {
		maxOrders = strat.MaxOrders
	}

	orders, err := a.selectOrders(ctx, orgID, req, maxOrders)
	if err != nil {
		logger.Error("[CreateSession] select orders", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if len(orders) == 0 {
		return nil, errors.SetCustomError(constant.ErrNoOrdersAvailable)
	}

	items, err := a.buildPickingList(ctx, orders, req.WarehouseID)
	if err != nil {
		logger.Error("[CreateSession] build picking list", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	items = optimizeRoute(items)

	totalItems := 0
	for i := range items {
		totalItems += items[i].Quantity
	}

	s := &model.PickingSession{
		ID:               uuid.NewString(),
		OrgID:            orgID,
		WarehouseID:      req.WarehouseID,
		PickerID:         pickerID,
		PickerName:       req.PickerName,
		StrategyID:       strat.ID,
		Status:           constant.SessionStatusInProgress,
		Items:            items,
		TotalItems:       totalItems,
		TotalOrders:      len(orders),
		EstimatedMinutes: estimateMinutes(items, strat.EfficiencyModifier),
		StartedAt:        time.Now().UTC(),
	}
	for _, o := range orders {
		s.Orders = append(s.Orders, model.SessionOrder{OrderID: o.ID, OrderNumber: o.OrderNumber})
	}

	tx, err := a.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CreateSession] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = a.txRepo.RollbackTx(tx)
		}
	}()

	// Conditional claim per order: losing a race with another session
	// creation fails the whole create instead of double-assigning.
	for _, o := range orders {
		claimed, err := a.orderRepo.ClaimOrderTx(ctx, tx, o.ID, s.ID)
		if err != nil {
			logger.Error("[CreateSession] claim order", zap.Uint64("order_id", o.ID), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if !claimed {
			logger.Info("[CreateSession] order claim conflict", zap.Uint64("order_id", o.ID))
			return nil, errors.SetCustomError(constant.ErrOrderClaimConflict)
		}
	}

	if err := a.sessionRepo.InsertSessionTx(ctx, tx, s); err != nil {
		logger.Error("[CreateSession] insert session", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := a.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CreateSession] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if err := a.storeActive(ctx, s); err != nil {
		return nil, err
	}

	a.publishEvent(rabbitmq.KeySessionCreated, s, "", 0, "", true)
	return s, nil
}

func (a *pickingAppImpl) GetSession(ctx context.Context, sessionID string) (*model.PickingSession, error) {
	return a.loadSession(ctx, sessionID)
}

// loadSession reads through the three tiers: process table, redis, durable
// store, repopulating the faster tiers on the way up.
func (a *pickingAppImpl) loadSession(ctx context.Context, sessionID string) (*model.PickingSession, error) {
	if s := a.live.get(sessionID); s != nil {
		return s, nil
	}

	s, err := a.cacheRepo.GetSession(ctx, sessionID)
	if err != nil {
		logger.Warn("[LoadSession] cache read", zap.String("error", err.Error()))
	}
	if s != nil {
		a.live.put(s)
		return s, nil
	}

	s, err = a.sessionRepo.GetSessionByID(ctx, sessionID)
	if err == sql.ErrNoRows {
		return nil, errors.SetCustomError(constant.ErrSessionNotFound)
	}
	if err != nil {
		logger.Error("[LoadSession] durable read", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if !s.Status.IsTerminal() {
		if err := a.storeActive(ctx, s); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// storeActive writes an in_progress/paused session to both cache tiers.
func (a *pickingAppImpl) storeActive(ctx context.Context, s *model.PickingSession) error {
	a.live.put(s)
	if err := a.cacheRepo.SetSession(ctx, s, a.config.Picking.SessionCacheTTL); err != nil {
		logger.Error("[StoreSession] cache write", zap.String("session_id", s.ID), zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	return nil
}

// dropFromCaches removes a terminal session from both cache tiers; it remains
// in durable storage only.
func (a *pickingAppImpl) dropFromCaches(ctx context.Context, sessionID string) {
	a.live.delete(sessionID)
	if err := a.cacheRepo.DeleteSession(ctx, sessionID); err != nil {
		logger.Warn("[DropSession] cache delete", zap.String("session_id", sessionID), zap.String("error", err.Error()))
	}
}

func (a *pickingAppImpl) ValidateScan(ctx context.Context, sessionID string, req *model.ScanRequest) (*model.ScanResponse, error) {
	unlock := a.live.lock(sessionID)
	defer unlock()

	current, err := a.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.Status != constant.SessionStatusInProgress {
		return nil, errors.SetCustomError(constant.ErrSessionNotActive)
	}

	qty := req.Quantity
	if qty <= 0 {
		qty = 1
	}

	item := findItem(current, req.Barcode)
	if item == nil {
		s := current.Clone()
		payload := fmt.Sprintf(`{"barcode":%q}`, req.Barcode)
		if err := a.recordSessionError(ctx, s, constant.SessionErrorWrongItem, payload); err != nil {
			return nil, err
		}
		return &model.ScanResponse{
			Result:   model.ScanResultItemNotFound,
			Message:  constant.ErrorTypeMessage[constant.ErrItemNotFound],
			Progress: progressOf(s),
			NextItem: s.NextPendingItem(),
		}, nil
	}

	if item.PickedQuantity >= item.Quantity {
		return &model.ScanResponse{
			Result:      model.ScanResultAlreadyPicked,
			Message:     constant.ErrorTypeMessage[constant.ErrAlreadyPicked],
			Item:        item,
			RequiredQty: item.Quantity,
			PickedQty:   item.PickedQuantity,
			Progress:    progressOf(current),
			NextItem:    current.NextPendingItem(),
		}, nil
	}

	if req.Location != "" && a.config.Picking.RequireLocationScan && !strings.EqualFold(req.Location, item.LocationCode()) {
		s := current.Clone()
		payload := fmt.Sprintf(`{"sku":%q,"expected":%q,"scanned":%q}`, item.SKU, item.LocationCode(), req.Location)
		if err := a.recordSessionError(ctx, s, constant.SessionErrorWrongLocation, payload); err != nil {
			return nil, err
		}
		return &model.ScanResponse{
			Result:           model.ScanResultWrongLocation,
			Message:          constant.ErrorTypeMessage[constant.ErrWrongLocation],
			Item:             item,
			ExpectedLocation: item.LocationCode(),
			ScannedLocation:  req.Location,
			Progress:         progressOf(s),
			NextItem:         s.NextPendingItem(),
		}, nil
	}

	if item.PickedQuantity+qty > item.Quantity {
		return &model.ScanResponse{
			Result:      model.ScanResultQuantityExceeded,
			Message:     constant.ErrorTypeMessage[constant.ErrQuantityExceeded],
			Item:        item,
			RequiredQty: item.Quantity,
			PickedQty:   item.PickedQuantity,
			Progress:    progressOf(current),
			NextItem:    current.NextPendingItem(),
		}, nil
	}

	return a.applyPick(ctx, current, item.SKU, qty, false, "")
}

func (a *pickingAppImpl) ManualPick(ctx context.Context, sessionID string, req *model.ManualPickRequest) (*model.ScanResponse, error) {
	unlock := a.live.lock(sessionID)
	defer unlock()

	current, err := a.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.Status != constant.SessionStatusInProgress {
		return nil, errors.SetCustomError(constant.ErrSessionNotActive)
	}

	item := current.ItemBySKU(req.SKU)
	if item == nil {
		return nil, errors.SetCustomError(constant.ErrItemNotFound)
	}
	if item.PickedQuantity >= item.Quantity {
		return nil, errors.SetCustomError(constant.ErrAlreadyPicked)
	}
	if item.PickedQuantity+req.Quantity > item.Quantity {
		return nil, errors.SetCustomError(constant.ErrQuantityExceeded)
	}

	return a.applyPick(ctx, current, item.SKU, req.Quantity, true, req.Reason)
}

// applyPick is the single mutation path for scans and manual picks: allocate
// units to the item and its per-order contributions, detect newly completed
// orders, persist, refresh caches, emit events.
func (a *pickingAppImpl) applyPick(ctx context.Context, current *model.PickingSession, sku string, qty int, manual bool, reason string) (*model.ScanResponse, error) {
	s := current.Clone()
	item := s.ItemBySKU(sku)

	item.PickedQuantity += qty
	allocateToContributions(item, qty)
	if item.PickedQuantity >= item.Quantity {
		item.Status = constant.ItemStatusPicked
	} else {
		item.Status = constant.ItemStatusPartial
	}
	s.PickedItems += qty

	completed := a.trackCompletions(s, item)

	tx, err := a.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ApplyPick] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = a.txRepo.RollbackTx(tx)
		}
	}()

	if err := a.sessionRepo.UpdateItemTx(ctx, tx, s.ID, item); err != nil {
		logger.Error("[ApplyPick] update item", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	if err := a.sessionRepo.UpdateCountersTx(ctx, tx, s); err != nil {
		logger.Error("[ApplyPick] update counters", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	for _, o := range completed {
		if err := a.sessionRepo.UpdateSessionOrderTx(ctx, tx, s.ID, o); err != nil {
			logger.Error("[ApplyPick] update session order", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
		if err := a.orderRepo.MarkOrderPickedTx(ctx, tx, o.OrderID, s.ID); err != nil {
			logger.Error("[ApplyPick] mark order picked", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}
	if manual {
		body, _ := json.Marshal(map[string]interface{}{"sku": item.SKU, "quantity": qty, "reason": reason, "manual_pick": true})
		event := &model.SessionEvent{SessionID: s.ID, Type: "manual_pick", Payload: string(body), CreatedAt: time.Now().UTC()}
		if err := a.sessionRepo.InsertSessionEventTx(ctx, tx, event); err != nil {
			logger.Error("[ApplyPick] insert event", zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := a.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ApplyPick] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if err := a.storeActive(ctx, s); err != nil {
		return nil, err
	}

	a.publishEvent(rabbitmq.KeyItemPicked, s, item.SKU, 0, "", true)
	completedIDs := make([]uint64, 0, len(completed))
	for _, o := range completed {
		completedIDs = append(completedIDs, o.OrderID)
		a.publishEvent(rabbitmq.KeyOrderCompleted, s, "", o.OrderID, "", true)
	}

	return &model.ScanResponse{
		Result:          model.ScanResultPicked,
		Item:            item,
		RequiredQty:     item.Quantity,
		PickedQty:       item.PickedQuantity,
		Progress:        progressOf(s),
		NextItem:        s.NextPendingItem(),
		CompletedOrders: completedIDs,
	}, nil
}

func (a *pickingAppImpl) ReportShortage(ctx context.Context, sessionID string, req *model.ShortageRequest) error {
	unlock := a.live.lock(sessionID)
	defer unlock()

	current, err := a.loadSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if current.Status.IsTerminal() {
		return errors.SetCustomError(constant.ErrSessionNotActive)
	}

	if current.ItemBySKU(req.SKU) == nil {
		return errors.SetCustomError(constant.ErrItemNotFound)
	}

	s := current.Clone()
	item := s.ItemBySKU(req.SKU)
	item.Status = constant.ItemStatusShortage
	s.ErrorCount++

	flagged := make([]*model.SessionOrder, 0, len(item.Contributions))
	for _, c := range item.Contributions {
		for i := range s.Orders {
			if s.Orders[i].OrderID == c.OrderID && !s.Orders[i].HasShortage {
				s.Orders[i].HasShortage = true
				flagged = append(flagged, &s.Orders[i])
			}
		}
	}

	tx, err := a.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[ReportShortage] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = a.txRepo.RollbackTx(tx)
		}
	}()

	if err := a.sessionRepo.UpdateItemTx(ctx, tx, s.ID, item); err != nil {
		logger.Error("[ReportShortage] update item", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	for _, o := range flagged {
		if err := a.sessionRepo.UpdateSessionOrderTx(ctx, tx, s.ID, o); err != nil {
			logger.Error("[ReportShortage] update session order", zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	}
	payload, _ := json.Marshal(map[string]interface{}{
		"sku": req.SKU, "expected_qty": req.ExpectedQty, "actual_qty": req.ActualQty, "reason": req.Reason,
	})
	serr := &model.SessionError{SessionID: s.ID, Type: constant.SessionErrorShortage, Payload: string(payload), CreatedAt: time.Now().UTC()}
	if err := a.sessionRepo.InsertSessionErrorTx(ctx, tx, serr); err != nil {
		logger.Error("[ReportShortage] insert error", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if err := a.sessionRepo.UpdateCountersTx(ctx, tx, s); err != nil {
		logger.Error("[ReportShortage] update counters", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := a.txRepo.CommitTx(tx); err != nil {
		logger.Error("[ReportShortage] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	if err := a.storeActive(ctx, s); err != nil {
		return err
	}

	a.publishEvent(rabbitmq.KeyShortageReported, s, req.SKU, 0, req.Reason, false)
	return nil
}

func (a *pickingAppImpl) PauseSession(ctx context.Context, sessionID string) (*model.PickingSession, error) {
	unlock := a.live.lock(sessionID)
	defer unlock()

	current, err := a.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.Status != constant.SessionStatusInProgress {
		return nil, errors.SetCustomError(constant.ErrSessionNotActive)
	}

	s := current.Clone()
	now := time.Now().UTC()
	s.Status = constant.SessionStatusPaused
	s.PausedAt = &now

	if err := a.persistState(ctx, "PauseSession", s); err != nil {
		return nil, err
	}
	if err := a.storeActive(ctx, s); err != nil {
		return nil, err
	}

	a.publishEvent(rabbitmq.KeySessionPaused, s, "", 0, "", false)
	return s, nil
}

func (a *pickingAppImpl) ResumeSession(ctx context.Context, sessionID string) (*model.PickingSession, error) {
	unlock := a.live.lock(sessionID)
	defer unlock()

	current, err := a.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.Status != constant.SessionStatusPaused {
		return nil, errors.SetCustomError(constant.ErrSessionNotPaused)
	}

	s := current.Clone()
	now := time.Now().UTC()
	s.Status = constant.SessionStatusInProgress
	s.ResumedAt = &now

	if err := a.persistState(ctx, "ResumeSession", s); err != nil {
		return nil, err
	}
	if err := a.storeActive(ctx, s); err != nil {
		return nil, err
	}

	a.publishEvent(rabbitmq.KeySessionResumed, s, "", 0, "", false)
	return s, nil
}

// CancelSession releases every order this session still holds and marks the
// session cancelled. Cancelling a session that is already terminal is
// rejected without touching anything, so repeated cancels cannot release an
// order twice.
func (a *pickingAppImpl) CancelSession(ctx context.Context, sessionID, reason string) error {
	unlock := a.live.lock(sessionID)
	defer unlock()

	current, err := a.loadSession(ctx, sessionID)
	if err != nil {
		return err
	}
	if current.Status.IsTerminal() {
		return errors.SetCustomError(constant.ErrSessionNotActive)
	}

	s := current.Clone()
	now := time.Now().UTC()
	s.Status = constant.SessionStatusCancelled
	s.CancelledAt = &now

	tx, err := a.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CancelSession] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = a.txRepo.RollbackTx(tx)
		}
	}()

	for _, o := range s.Orders {
		// Conditional release: only rows still claimed by this session move.
		if _, err := a.orderRepo.ReleaseOrderTx(ctx, tx, o.OrderID, s.ID); err != nil {
			logger.Error("[CancelSession] release order", zap.Uint64("order_id", o.OrderID), zap.String("error", err.Error()))
			return errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := a.sessionRepo.UpdateSessionStateTx(ctx, tx, s); err != nil {
		logger.Error("[CancelSession] update state", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	body, _ := json.Marshal(map[string]string{"reason": reason})
	event := &model.SessionEvent{SessionID: s.ID, Type: "session_cancelled", Payload: string(body), CreatedAt: now}
	if err := a.sessionRepo.InsertSessionEventTx(ctx, tx, event); err != nil {
		logger.Error("[CancelSession] insert event", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}

	if err := a.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CancelSession] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	a.dropFromCaches(ctx, s.ID)
	a.publishEvent(rabbitmq.KeySessionCancelled, s, "", 0, reason, false)
	return nil
}

func (a *pickingAppImpl) CompleteSession(ctx context.Context, sessionID string) (*model.PickingSession, error) {
	unlock := a.live.lock(sessionID)
	defer unlock()

	current, err := a.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if current.Status != constant.SessionStatusInProgress {
		return nil, errors.SetCustomError(constant.ErrSessionNotActive)
	}

	s := current.Clone()
	now := time.Now().UTC()
	s.CompletedAt = &now
	if sessionHasShortage(s) {
		s.Status = constant.SessionStatusCompletedWithIssues
	} else {
		s.Status = constant.SessionStatusCompleted
	}
	s.Metrics = computeMetrics(s, now)

	tx, err := a.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[CompleteSession] begin tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = a.txRepo.RollbackTx(tx)
		}
	}()

	// The session's exclusive claim ends here: orders it never finished go
	// back to the pool for a follow-up session.
	for _, o := range s.Orders {
		if o.Picked {
			continue
		}
		if _, err := a.orderRepo.ReleaseOrderTx(ctx, tx, o.OrderID, s.ID); err != nil {
			logger.Error("[CompleteSession] release order", zap.Uint64("order_id", o.OrderID), zap.String("error", err.Error()))
			return nil, errors.SetCustomError(constant.ErrInternal)
		}
	}

	if err := a.sessionRepo.UpdateSessionStateTx(ctx, tx, s); err != nil {
		logger.Error("[CompleteSession] update state", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}

	if err := a.txRepo.CommitTx(tx); err != nil {
		logger.Error("[CompleteSession] commit tx", zap.String("error", err.Error()))
		return nil, errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	a.dropFromCaches(ctx, s.ID)
	a.publishEvent(rabbitmq.KeySessionCompleted, s, "", 0, "", true)
	return s, nil
}

// persistState writes status/timestamp/metrics changes in their own tx.
func (a *pickingAppImpl) persistState(ctx context.Context, op string, s *model.PickingSession) error {
	tx, err := a.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("["+op+"] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = a.txRepo.RollbackTx(tx)
		}
	}()

	if err := a.sessionRepo.UpdateSessionStateTx(ctx, tx, s); err != nil {
		logger.Error("["+op+"] update state", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if err := a.txRepo.CommitTx(tx); err != nil {
		logger.Error("["+op+"] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true
	return nil
}

// recordSessionError appends one audit error and bumps the error counter,
// then swaps the updated clone into the cache tiers.
func (a *pickingAppImpl) recordSessionError(ctx context.Context, s *model.PickingSession, errType constant.SessionErrorType, payload string) error {
	s.ErrorCount++

	tx, err := a.txRepo.BeginTx(ctx)
	if err != nil {
		logger.Error("[RecordSessionError] begin tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed := false
	defer func() {
		if !committed {
			_ = a.txRepo.RollbackTx(tx)
		}
	}()

	serr := &model.SessionError{SessionID: s.ID, Type: errType, Payload: payload, CreatedAt: time.Now().UTC()}
	if err := a.sessionRepo.InsertSessionErrorTx(ctx, tx, serr); err != nil {
		logger.Error("[RecordSessionError] insert error", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if err := a.sessionRepo.UpdateCountersTx(ctx, tx, s); err != nil {
		logger.Error("[RecordSessionError] update counters", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	if err := a.txRepo.CommitTx(tx); err != nil {
		logger.Error("[RecordSessionError] commit tx", zap.String("error", err.Error()))
		return errors.SetCustomError(constant.ErrInternal)
	}
	committed = true

	return a.storeActive(ctx, s)
}

// trackCompletions marks orders whose every contribution is now covered by
// its own allocated units. Each order flips to picked exactly once.
func (a *pickingAppImpl) trackCompletions(s *model.PickingSession, item *model.PickingListItem) []*model.SessionOrder {
	completed := make([]*model.SessionOrder, 0)
	for _, c := range item.Contributions {
		for i := range s.Orders {
			o := &s.Orders[i]
			if o.OrderID != c.OrderID || o.Picked {
				continue
			}
			if orderFullyPicked(s, o.OrderID) {
				now := time.Now().UTC()
				o.Picked = true
				o.PickedAt = &now
				s.CompletedOrders++
				completed = append(completed, o)
			}
		}
	}
	return completed
}

// orderFullyPicked checks every item the order contributes to.
func orderFullyPicked(s *model.PickingSession, orderID uint64) bool {
	for i := range s.Items {
		for _, c := range s.Items[i].Contributions {
			if c.OrderID == orderID && c.PickedQuantity < c.Quantity {
				return false
			}
		}
	}
	return true
}

// allocateToContributions assigns freshly picked units to the earliest
// unfilled order contribution. The sum of allocations always equals the
// item's picked quantity, so shared-sku orders never double-count a unit.
func allocateToContributions(item *model.PickingListItem, qty int) {
	for i := range item.Contributions {
		if qty == 0 {
			return
		}
		c := &item.Contributions[i]
		need := c.Quantity - c.PickedQuantity
		if need <= 0 {
			continue
		}
		if need > qty {
			need = qty
		}
		c.PickedQuantity += need
		qty -= need
	}
}

// findItem locates a picking list entry by barcode, falling back to a
// case-insensitive sku match.
func findItem(s *model.PickingSession, barcode string) *model.PickingListItem {
	for i := range s.Items {
		if s.Items[i].Barcode != "" && s.Items[i].Barcode == barcode {
			return &s.Items[i]
		}
	}
	return s.ItemBySKU(barcode)
}

func progressOf(s *model.PickingSession) model.Progress {
	p := model.Progress{
		PickedItems:     s.PickedItems,
		TotalItems:      s.TotalItems,
		CompletedOrders: s.CompletedOrders,
		TotalOrders:     s.TotalOrders,
	}
	if s.TotalItems > 0 {
		p.Percentage = math.Round(float64(s.PickedItems)/float64(s.TotalItems)*10000) / 100
	}
	return p
}

func sessionHasShortage(s *model.PickingSession) bool {
	for i := range s.Orders {
		if s.Orders[i].HasShortage {
			return true
		}
	}
	return false
}

func computeMetrics(s *model.PickingSession, completedAt time.Time) *model.SessionMetrics {
	actual := completedAt.Sub(s.StartedAt).Minutes()
	m := &model.SessionMetrics{ActualMinutes: actual}
	if actual > 0 {
		m.ItemsPerMinute = float64(s.PickedItems) / actual
		m.DurationRatio = float64(s.EstimatedMinutes) / actual
	}
	if s.TotalItems > 0 {
		accuracy := float64(s.TotalItems-s.ErrorCount) / float64(s.TotalItems) * 100
		if accuracy < 0 {
			accuracy = 0
		}
		m.AccuracyPct = accuracy
	} else {
		m.AccuracyPct = 100
	}
	return m
}

func (a *pickingAppImpl) publishEvent(routingKey string, s *model.PickingSession, sku string, orderID uint64, reason string, withProgress bool) {
	if a.publisher == nil {
		return
	}
	msg := rabbitmq.SessionEventMessage{
		SessionID:   s.ID,
		OrgID:       s.OrgID,
		WarehouseID: s.WarehouseID,
		PickerID:    s.PickerID,
		SKU:         sku,
		OrderID:     orderID,
		Reason:      reason,
		OccurredAt:  time.Now().UTC(),
	}
	if withProgress {
		p := progressOf(s)
		msg.Progress = &p
	}
	if err := a.publisher.PublishSessionEvent(routingKey, msg); err != nil {
		logger.Error("[PublishEvent] publish", zap.String("routing_key", routingKey), zap.String("error", err.Error()))
	}
}
