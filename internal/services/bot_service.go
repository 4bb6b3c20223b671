package services

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/catatduit/go-catatduit/internal/common"
	"github.com/catatduit/go-catatduit/internal/common/telegram"
	"github.com/catatduit/go-catatduit/internal/logging"
	"github.com/catatduit/go-catatduit/internal/models"
	"github.com/catatduit/go-catatduit/internal/monitoring"
	"github.com/catatduit/go-catatduit/internal/nlp"

	"github.com/shopspring/decimal"
)

const (
	callbackConfirmYes = "confirm_yes"
	callbackConfirmNo  = "confirm_no"

	// Telegram keeps redelivering an update for roughly a day when it does
	// not get an answer in time.
	updateClaimTTL = 24 * time.Hour

	msgStart = "Halo %s! 👋\nAku CatatDuit, pencatat keuanganmu.\n\n" +
		"Kirim saja pesan seperti <i>beli bakso 15rb pake gopay</i> atau foto struk belanja, " +
		"dan aku catat otomatis.\n\n" +
		"Perintah:\n/today — ringkasan hari ini\n/month — ringkasan bulan ini\n/undo — batalkan catatan terakhir"
	msgUnreadableReceipt = "Maaf, aku tidak bisa membaca total belanja dari struk itu. Coba foto ulang yang lebih jelas ya 🙏"
	msgNothingToUndo     = "Tidak ada transaksi yang bisa dibatalkan."
	msgNoPending         = "Tidak ada catatan yang menunggu konfirmasi."
	msgGenericError      = "Waduh, ada gangguan di sisiku. Coba lagi sebentar ya 🙏"
)

// BotService consumes Telegram webhook updates. Every reply is Indonesian;
// delivery failures are retried with backoff before giving up.
type BotService interface {
	HandleUpdate(ctx context.Context, update models.TelegramUpdate) (err error)
}

type bot service

var _ BotService = (*bot)(nil)

func (s *bot) HandleUpdate(ctx context.Context, update models.TelegramUpdate) (err error) {
	monitor := monitoring.New(ctx)
	defer monitor.Finish(monitoring.WithFinishCheckError(err))

	// Claim the update id before acting on it, so a redelivered update
	// cannot record the same transaction twice.
	claimed, claimErr := s.srv.cacheRepo.SetIfNotExists(ctx, updateClaimKey(update.UpdateID), "1", updateClaimTTL)
	if claimErr != nil {
		// Losing the claim store must not drop user messages.
		logging.Warnf(ctx, "unable to claim telegram update %d: %v", update.UpdateID, claimErr)
	} else if !claimed {
		logging.Infof(ctx, "telegram update %d already handled, skipping", update.UpdateID)
		return nil
	}

	switch {
	case update.CallbackQuery != nil:
		return s.handleCallback(ctx, *update.CallbackQuery)
	case update.Message != nil:
		return s.handleMessage(ctx, *update.Message)
	default:
		// Edits, channel posts and other update kinds are out of scope.
		logging.Debugf(ctx, "ignoring unsupported update %d", update.UpdateID)
		return nil
	}
}

func (s *bot) handleMessage(ctx context.Context, msg models.TelegramMessage) error {
	if msg.From == nil || msg.From.IsBot {
		return nil
	}

	telegramID := strconv.FormatInt(msg.From.ID, 10)
	usr, err := s.srv.User.GetOrRegisterByTelegram(ctx, telegramID, displayName(*msg.From))
	if err != nil {
		s.reply(ctx, msg.Chat.ID, msgGenericError)
		return err
	}

	if len(msg.Photo) > 0 {
		return s.handleReceiptPhoto(ctx, msg, telegramID)
	}

	text := strings.TrimSpace(msg.Text)
	switch {
	case text == "":
		return nil
	case strings.HasPrefix(text, "/start"):
		s.reply(ctx, msg.Chat.ID, fmt.Sprintf(msgStart, usr.Name))
		return nil
	case strings.HasPrefix(text, "/today"):
		return s.handleToday(ctx, msg.Chat.ID, usr)
	case strings.HasPrefix(text, "/month"):
		return s.handleMonth(ctx, msg.Chat.ID, usr)
	case strings.HasPrefix(text, "/undo"):
		return s.handleUndo(ctx, msg.Chat.ID, usr)
	default:
		return s.handleFreeText(ctx, msg.Chat.ID, telegramID, text)
	}
}

func (s *bot) handleFreeText(ctx context.Context, chatID int64, telegramID, text string) error {
	out, err := s.srv.Inference.ParseText(ctx, models.ParseTextIn{TelegramID: telegramID, Text: text})
	if err != nil {
		s.reply(ctx, chatID, msgGenericError)
		return err
	}

	if out.AutoAccepted {
		s.reply(ctx, chatID, fmt.Sprintf("Tercatat ✅\n%s", describeParse(out.Result)))
		return nil
	}

	s.replyWithKeyboard(ctx, chatID,
		fmt.Sprintf("Aku kurang yakin, maksudnya begini?\n%s", describeParse(out.Result)),
		&telegram.InlineKeyboardMarkup{
			InlineKeyboard: [][]telegram.InlineKeyboardButton{{
				{Text: "✅ Benar", CallbackData: callbackConfirmYes},
				{Text: "❌ Bukan", CallbackData: callbackConfirmNo},
			}},
		})
	return nil
}

func (s *bot) handleReceiptPhoto(ctx context.Context, msg models.TelegramMessage, telegramID string) error {
	// Telegram orders photo sizes ascending; the last one is the original.
	fileID := msg.Photo[len(msg.Photo)-1].FileID

	file, err := s.srv.telegramClient.GetFile(ctx, fileID)
	if err != nil {
		s.reply(ctx, msg.Chat.ID, msgGenericError)
		return err
	}

	image, err := s.srv.telegramClient.DownloadFile(ctx, file.FilePath)
	if err != nil {
		s.reply(ctx, msg.Chat.ID, msgGenericError)
		return err
	}

	rawText, err := s.srv.ocrProvider.ExtractText(ctx, image)
	if err != nil {
		s.reply(ctx, msg.Chat.ID, msgGenericError)
		return err
	}

	recorded, data, err := s.srv.Inference.RecordReceipt(ctx, models.StructureReceiptIn{
		TelegramID: telegramID,
		RawText:    rawText,
	})
	if err != nil {
		if errors.Is(err, common.ErrUnreadableReceipt) {
			s.reply(ctx, msg.Chat.ID, msgUnreadableReceipt)
			return nil
		}
		s.reply(ctx, msg.Chat.ID, msgGenericError)
		return err
	}

	reply := fmt.Sprintf("Struk tercatat ✅\n<b>%s</b>\nTotal: %s",
		recorded.Description, formatRupiah(recorded.Amount))
	if len(data.Items) > 0 {
		reply += fmt.Sprintf("\n%d barang dikenali", len(data.Items))
	}
	s.reply(ctx, msg.Chat.ID, reply)
	return nil
}

func (s *bot) handleCallback(ctx context.Context, cb models.TelegramCallbackQuery) error {
	telegramID := strconv.FormatInt(cb.From.ID, 10)

	var (
		ack   string
		reply string
	)
	switch cb.Data {
	case callbackConfirmYes:
		recorded, err := s.srv.Inference.ConfirmPending(ctx, telegramID)
		switch {
		case errors.Is(err, common.ErrPendingParseNotFound):
			ack = msgNoPending
		case err != nil:
			ack = msgGenericError
		default:
			ack = "Tercatat ✅"
			reply = fmt.Sprintf("Tercatat: %s (%s)", recorded.Description, formatRupiah(recorded.Amount))
		}
	case callbackConfirmNo:
		err := s.srv.Inference.RejectPending(ctx, telegramID)
		switch {
		case errors.Is(err, common.ErrPendingParseNotFound):
			ack = msgNoPending
		case err != nil:
			ack = msgGenericError
		default:
			ack = "Oke, tidak jadi dicatat."
		}
	default:
		logging.Debugf(ctx, "ignoring unknown callback data %q", cb.Data)
		return nil
	}

	if err := s.srv.telegramClient.AnswerCallbackQuery(ctx, telegram.AnswerCallbackQueryRequest{
		CallbackQueryID: cb.ID,
		Text:            ack,
	}); err != nil {
		logging.Warn(ctx, "[BOT.CALLBACK.ANSWER]", logging.Err(err))
	}

	if reply != "" && cb.Message != nil {
		s.reply(ctx, cb.Message.Chat.ID, reply)
	}
	return nil
}

func (s *bot) handleToday(ctx context.Context, chatID int64, usr *models.User) error {
	summary, err := s.srv.Transaction.Today(ctx, usr.ID)
	if err != nil {
		s.reply(ctx, chatID, msgGenericError)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>Ringkasan hari ini</b>\nMasuk: %s\nKeluar: %s\n",
		formatRupiah(summary.TotalIncome), formatRupiah(summary.TotalExpense))

	if len(summary.Transactions) == 0 {
		b.WriteString("\nBelum ada transaksi hari ini.")
	} else {
		b.WriteString("\n")
		for _, trx := range summary.Transactions {
			fmt.Fprintf(&b, "• %s — %s (%s)\n", trx.Description, formatRupiah(trx.Amount), trx.CategoryName)
		}
	}

	s.reply(ctx, chatID, b.String())
	return nil
}

func (s *bot) handleMonth(ctx context.Context, chatID int64, usr *models.User) error {
	out, err := s.srv.Analytics.GetMonthly(ctx, usr.ID, "")
	if err != nil {
		s.reply(ctx, chatID, msgGenericError)
		return err
	}

	var b strings.Builder
	fmt.Fprintf(&b, "<b>Ringkasan %s</b>\nPemasukan: %s\nPengeluaran: %s\nBersih: %s\n",
		out.Summary.Month,
		formatRupiah(decimal.NewFromFloat(out.Summary.TotalIncome)),
		formatRupiah(decimal.NewFromFloat(out.Summary.TotalExpense)),
		formatRupiah(decimal.NewFromFloat(out.Summary.NetIncome)))

	if len(out.CategoryBreakdown) > 0 {
		b.WriteString("\nPengeluaran terbesar:\n")
		for _, item := range out.CategoryBreakdown {
			fmt.Fprintf(&b, "• %s — %s (%.0f%%)\n",
				item.Category, formatRupiah(decimal.NewFromFloat(item.Amount)), item.Percentage)
		}
	}

	fmt.Fprintf(&b, "\nTotal %d transaksi bulan ini.", out.TransactionFrequency)

	s.reply(ctx, chatID, b.String())
	return nil
}

func (s *bot) handleUndo(ctx context.Context, chatID int64, usr *models.User) error {
	undone, err := s.srv.Transaction.Undo(ctx, usr.ID)
	if err != nil {
		if errors.Is(err, common.ErrNothingToUndo) {
			s.reply(ctx, chatID, msgNothingToUndo)
			return nil
		}
		s.reply(ctx, chatID, msgGenericError)
		return err
	}

	s.reply(ctx, chatID, fmt.Sprintf("Dibatalkan ↩️\n%s (%s) dihapus dari catatan.",
		undone.Description, formatRupiah(undone.Amount)))
	return nil
}

func (s *bot) reply(ctx context.Context, chatID int64, text string) {
	s.replyWithKeyboard(ctx, chatID, text, nil)
}

func (s *bot) replyWithKeyboard(ctx context.Context, chatID int64, text string, markup *telegram.InlineKeyboardMarkup) {
	req := telegram.SendMessageRequest{
		ChatID:      chatID,
		Text:        text,
		ParseMode:   telegram.ParseModeHTML,
		ReplyMarkup: markup,
	}

	err := s.srv.ebRetry.Retry(ctx,
		func() error {
			return s.srv.telegramClient.SendMessage(ctx, req)
		},
		func() error {
			logging.Warn(ctx, "[BOT.SEND.EXHAUSTED]", logging.Any("chat_id", chatID))
			return nil
		})
	if err != nil {
		logging.Warn(ctx, "[BOT.SEND]", logging.Err(err))
	}
}

func updateClaimKey(updateID int64) string {
	return fmt.Sprintf("telegram_update:%d", updateID)
}

func displayName(from models.TelegramUser) string {
	name := strings.TrimSpace(from.FirstName + " " + from.LastName)
	if name == "" {
		name = from.Username
	}
	return name
}

func describeParse(result nlp.ParsedTransaction) string {
	label := "Pengeluaran"
	switch result.Intent {
	case nlp.IntentIncome:
		label = "Pemasukan"
	case nlp.IntentTransfer:
		label = "Transfer"
	}

	desc := fmt.Sprintf("<b>%s</b> %s\nKategori: %s",
		label, formatRupiah(decimal.NewFromFloat(result.Amount)), result.Category)
	if result.Wallet != "" {
		desc += "\nDompet: " + result.Wallet
	}
	if result.Description != "" {
		desc += "\nCatatan: " + result.Description
	}
	return desc
}
