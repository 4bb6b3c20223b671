package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/logging"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/monitoring"
	"github.com/catatduit/go-catatduit/internal/nlp"
	"github.com/catatduit/go-catatduit/internal/receipt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	engineText    = "text"
	engineReceipt = "receipt"

	decisionAuto      = "auto"
	decisionPending   = "pending"
	decisionConfirmed = "confirmed"
	decisionRejected  = "rejected"
)

type InferenceService interface {
	ParseText(ctx context.Context, in models.ParseTextIn) (output *models.ParseTextOut, err error)
	ConfirmPending(ctx context.Context, telegramID string) (recorded *models.Transaction, err error)
	RejectPending(ctx context.Context, telegramID string) (err error)
	StructureReceipt(ctx context.Context, in models.StructureReceiptIn) (output *models.StructureReceiptOut, err error)
	RecordReceipt(ctx context.Context, in models.StructureReceiptIn) (recorded *models.Transaction, data *receipt.Data, err error)
}

type inference service

var _ InferenceService = (*inference)(nil)

// ParseText classifies one chat message. A confident parse with a usable
// amount is recorded immediately; anything weaker is parked as a pending
// parse for the user to confirm.
func (s *inference) ParseText(ctx context.Context, in models.ParseTextIn) (output *models.ParseTextOut, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	usr, err := s.srv.User.GetByTelegramID(ctx, in.TelegramID)
	if err != nil {
		return
	}

	result := s.srv.parser.Parse(in.Text)
	s.srv.metrics.GetInferencePrometheus().Record(engineText, string(result.Intent), result.Confidence)

	output = &models.ParseTextOut{
		Kind:   "parse",
		Result: result,
	}

	if result.Confidence >= s.srv.conf.Inference.ConfidenceThreshold && result.Amount > 0 {
		_, err = s.record(ctx, usr, result, models.TransactionSourceChat, in.Text)
		if err != nil {
			output = nil
			return
		}
		output.AutoAccepted = true
		s.srv.metrics.GetInferencePrometheus().RecordDecision(engineText, decisionAuto)
		return
	}

	pending := models.PendingParse{
		ID:         uuid.NewString(),
		TelegramID: in.TelegramID,
		RawText:    in.Text,
		Result:     result,
		CreatedAt:  time.Now(),
	}
	if err = s.storePending(ctx, pending); err != nil {
		output = nil
		return
	}

	output.PendingID = pending.ID
	s.srv.metrics.GetInferencePrometheus().RecordDecision(engineText, decisionPending)

	return
}

// ConfirmPending records the parked parse for this chat and clears it.
func (s *inference) ConfirmPending(ctx context.Context, telegramID string) (recorded *models.Transaction, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	pending, err := s.getPending(ctx, telegramID)
	if err != nil {
		return
	}

	usr, err := s.srv.User.GetByTelegramID(ctx, telegramID)
	if err != nil {
		return
	}

	recorded, err = s.record(ctx, usr, pending.Result, models.TransactionSourceChat, pending.RawText)
	if err != nil {
		return
	}

	if errDel := s.srv.cacheRepo.Del(ctx, pendingParseKey(telegramID)); errDel != nil {
		// The entry expires on its own; losing the delete is not fatal.
		logging.Warn(ctx, "[INFERENCE.PENDING.DEL]", logging.Err(errDel))
	}
	s.srv.metrics.GetInferencePrometheus().RecordDecision(engineText, decisionConfirmed)

	return
}

// RejectPending drops the parked parse without recording anything.
func (s *inference) RejectPending(ctx context.Context, telegramID string) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	if _, err = s.getPending(ctx, telegramID); err != nil {
		return
	}

	if err = s.srv.cacheRepo.Del(ctx, pendingParseKey(telegramID)); err != nil {
		err = common.ErrInternalServerError
		return
	}
	s.srv.metrics.GetInferencePrometheus().RecordDecision(engineText, decisionRejected)

	return
}

// StructureReceipt runs the receipt engine without touching any data. A
// receipt whose total cannot be extracted is rejected outright.
func (s *inference) StructureReceipt(ctx context.Context, in models.StructureReceiptIn) (output *models.StructureReceiptOut, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	data := s.srv.structurer.Structure(in.RawText)
	s.srv.metrics.GetInferencePrometheus().Record(engineReceipt, string(nlp.IntentExpense), data.Confidence)

	if data.TotalAmount <= 0 {
		err = common.ErrUnreadableReceipt
		return
	}

	output = &models.StructureReceiptOut{
		Kind:   "receipt",
		Result: data,
	}

	return
}

// RecordReceipt structures the OCR text and records the resulting expense.
func (s *inference) RecordReceipt(ctx context.Context, in models.StructureReceiptIn) (recorded *models.Transaction, data *receipt.Data, err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	structured, err := s.StructureReceipt(ctx, in)
	if err != nil {
		return
	}

	usr, err := s.srv.User.GetByTelegramID(ctx, in.TelegramID)
	if err != nil {
		return
	}

	description := structured.Result.MerchantName
	if description == "" {
		description = "Struk belanja"
	}

	recorded, err = s.record(ctx, usr, nlp.ParsedTransaction{
		Intent:      nlp.IntentExpense,
		Amount:      structured.Result.TotalAmount,
		Category:    nlp.CategoryFallback,
		Description: description,
		Confidence:  structured.Result.Confidence,
	}, models.TransactionSourceReceipt, in.RawText)
	if err != nil {
		return
	}

	data = &structured.Result
	return
}

// record turns an engine result into a stored transaction. The wallet comes
// from the parse when named, else the user's default; the category is created
// on first use so engine vocabulary never drifts from the catalog.
func (s *inference) record(ctx context.Context, usr *models.User, result nlp.ParsedTransaction, source, rawInput string) (*models.Transaction, error) {
	wlt, err := s.resolveWallet(ctx, usr.ID, result.Wallet)
	if err != nil {
		return nil, err
	}

	cat, err := s.resolveCategory(ctx, result)
	if err != nil {
		return nil, err
	}

	return s.srv.Transaction.Create(ctx, models.CreateTransactionIn{
		UserID:       usr.ID,
		WalletID:     wlt.ID,
		CategoryID:   cat.ID,
		Type:         models.TransactionType(result.Intent),
		Amount:       decimal.NewFromFloat(result.Amount),
		Description:  result.Description,
		RawInput:     rawInput,
		AIConfidence: decimal.NewNullDecimal(decimal.NewFromFloat(result.Confidence)),
		Source:       source,
	})
}

func (s *inference) resolveWallet(ctx context.Context, userID uuid.UUID, name string) (*models.Wallet, error) {
	repo := s.srv.sqlRepo.GetWalletRepository()

	if name != "" {
		wlt, err := repo.GetByUserAndName(ctx, userID, name)
		if err != nil {
			return nil, common.ErrInternalServerError
		}
		if wlt != nil {
			return wlt, nil
		}
		// An unknown wallet name is created on the fly so "pake gopay"
		// works before the user set GoPay up.
		wlt, err = repo.Create(ctx, &models.CreateWalletIn{UserID: userID, Name: name})
		if err != nil {
			return nil, common.ErrUnableToCreate
		}
		return wlt, nil
	}

	wlt, err := repo.GetByUserAndName(ctx, userID, models.DefaultWalletName)
	if err != nil {
		return nil, common.ErrInternalServerError
	}
	if wlt != nil {
		return wlt, nil
	}

	wallets, err := repo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, common.ErrInternalServerError
	}
	if len(wallets) == 0 {
		return nil, common.ErrWalletNotFound
	}

	return &wallets[0], nil
}

func (s *inference) resolveCategory(ctx context.Context, result nlp.ParsedTransaction) (*models.Category, error) {
	trxType := models.TransactionType(result.Intent)

	cat, err := s.srv.sqlRepo.GetCategoryRepository().GetByNameAndType(ctx, result.Category, trxType)
	if err != nil {
		return nil, common.ErrInternalServerError
	}
	if cat != nil {
		return cat, nil
	}

	cat, err = s.srv.sqlRepo.GetCategoryRepository().Create(ctx, &models.CreateCategoryIn{
		Name:     result.Category,
		Type:     trxType,
		IsSystem: true,
	})
	if err != nil {
		return nil, common.ErrUnableToCreate
	}

	return cat, nil
}

func (s *inference) storePending(ctx context.Context, pending models.PendingParse) error {
	payload, err := json.Marshal(pending)
	if err != nil {
		return fmt.Errorf("unable to marshal pending parse: %w", err)
	}

	if err := s.srv.cacheRepo.Set(ctx, pendingParseKey(pending.TelegramID), payload, s.srv.conf.Inference.PendingTTL); err != nil {
		return common.ErrInternalServerError
	}

	return nil
}

func (s *inference) getPending(ctx context.Context, telegramID string) (*models.PendingParse, error) {
	raw, err := s.srv.cacheRepo.Get(ctx, pendingParseKey(telegramID))
	if err != nil {
		if errors.Is(err, common.ErrDataNotFound) {
			return nil, common.ErrPendingParseNotFound
		}
		return nil, common.ErrInternalServerError
	}

	var pending models.PendingParse
	if err := json.Unmarshal([]byte(raw), &pending); err != nil {
		return nil, fmt.Errorf("unable to unmarshal pending parse: %w", err)
	}

	return &pending, nil
}

func pendingParseKey(telegramID string) string {
	return "pending_parse:" + telegramID
}
