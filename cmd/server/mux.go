package main

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
	"github.com/samber/lo"

	"github.com/skynet2/bank-sms-importer/pkg/common"
	"github.com/skynet2/bank-sms-importer/pkg/database"
	"github.com/skynet2/bank-sms-importer/pkg/logger"
	"github.com/skynet2/bank-sms-importer/pkg/worker"
)

const (
	defaultListLimit = 50
	maxListLimit     = 500
	telegramSender   = "telegram"
)

type Handler struct {
	worker       MessageWorker
	status       StatusProvider
	transactions TransactionLister
	accounts     AccountLister
	summarizer   Summarizer
	// reactor is optional
	reactor Reactor
	apiKey  string
}

func NewHandler(
	worker MessageWorker,
	status StatusProvider,
	transactions TransactionLister,
	accounts AccountLister,
	summarizer Summarizer,
	reactor Reactor,
	apiKey string,
) *Handler {
	return &Handler{
		worker:       worker,
		status:       status,
		transactions: transactions,
		accounts:     accounts,
		summarizer:   summarizer,
		reactor:      reactor,
		apiKey:       apiKey,
	}
}

func (h *Handler) Router(base zerolog.Logger) *mux.Router {
	r := mux.NewRouter()
	r.Use(logger.Middleware(base))
	r.Use(h.authMiddleware)

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/sms", h.HandleSms).Methods(http.MethodPost)
	api.HandleFunc("/sms/batch", h.HandleSmsBatch).Methods(http.MethodPost)
	api.HandleFunc("/telegram/webhook", h.HandleTelegramWebhook).Methods(http.MethodPost)
	api.HandleFunc("/status", h.HandleStatus).Methods(http.MethodGet)
	api.HandleFunc("/transactions", h.HandleListTransactions).Methods(http.MethodGet)
	api.HandleFunc("/accounts", h.HandleListAccounts).Methods(http.MethodGet)

	return r
}

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		key := r.URL.Query().Get("api_key")
		if key == "" {
			key = r.Header.Get("X-Api-Key")
		}

		if h.apiKey == "" || h.apiKey != key {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}

		next.ServeHTTP(w, r)
	})
}

func (h *Handler) HandleSms(w http.ResponseWriter, r *http.Request) {
	var event SmsEvent
	if err := decodeBody(r, &event); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if strings.TrimSpace(event.Body) == "" {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "body is required"})
		return
	}

	res, err := h.worker.Handle(r.Context(), toRawMessage(event))
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, toResultResponse(res))
}

func (h *Handler) HandleSmsBatch(w http.ResponseWriter, r *http.Request) {
	var batch SmsBatch
	if err := decodeBody(r, &batch); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	results := h.worker.ProcessBatch(r.Context(), lo.Map(batch.Messages, func(event SmsEvent, _ int) database.RawMessage {
		return toRawMessage(event)
	}))

	writeJSON(w, http.StatusOK, BatchResponse{
		Results: lo.Map(results, func(res *worker.Result, _ int) *ResultResponse {
			return toResultResponse(res)
		}),
		Summary: h.summarizer.Summary(results),
	})
}

func (h *Handler) HandleTelegramWebhook(w http.ResponseWriter, r *http.Request) {
	var webhook Webhook
	if err := decodeBody(r, &webhook); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: err.Error()})
		return
	}

	if err := h.ProcessWebhook(r.Context(), webhook); err != nil {
		writeError(r.Context(), w, err)
		return
	}

	w.WriteHeader(http.StatusOK)
}

// ProcessWebhook treats the text of a forwarded Telegram message as an SMS body.
func (h *Handler) ProcessWebhook(
	ctx context.Context,
	webhook Webhook,
) error {
	if strings.TrimSpace(webhook.Message.Text) == "" {
		zerolog.Ctx(ctx).Debug().Int64("update_id", webhook.UpdateId).Msg("webhook without text skipped")
		return nil
	}

	date := webhook.Message.Date
	sender := telegramSender

	if webhook.Message.ForwardOrigin != nil {
		date = webhook.Message.ForwardOrigin.Date

		if name := webhook.Message.ForwardOrigin.SenderUser.UserName; name != "" {
			sender = telegramSender + ":" + name
		}
	}

	res, err := h.worker.Handle(ctx, database.NewRawMessage(webhook.Message.Text, sender, date*1000))
	if err != nil {
		return err
	}

	h.react(ctx, webhook.Message, res.Outcome)

	return nil
}

func (h *Handler) react(ctx context.Context, msg Message, outcome worker.Outcome) {
	if h.reactor == nil || msg.MessageID == 0 {
		return
	}

	reaction := ""

	switch outcome {
	case worker.OutcomeStored:
		reaction = "👍"
	case worker.OutcomeDuplicate:
		reaction = "👀"
	default:
		return
	}

	if err := h.reactor.React(ctx, msg.Chat.Id, msg.MessageID, reaction); err != nil {
		zerolog.Ctx(ctx).Error().Err(err).Msg("failed to react to message")
	}
}

func (h *Handler) HandleStatus(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, h.status.Status())
}

func (h *Handler) HandleListTransactions(w http.ResponseWriter, r *http.Request) {
	limit := defaultListLimit

	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed <= 0 {
			writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
			return
		}

		limit = min(parsed, maxListLimit)
	}

	transactions, err := h.transactions.ListTransactions(r.Context(), limit)
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, lo.Ternary(transactions == nil, []*database.Transaction{}, transactions))
}

func (h *Handler) HandleListAccounts(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accounts.ListActiveAccounts(r.Context())
	if err != nil {
		writeError(r.Context(), w, err)
		return
	}

	writeJSON(w, http.StatusOK, lo.Ternary(accounts == nil, []*database.Account{}, accounts))
}

func toRawMessage(event SmsEvent) database.RawMessage {
	return database.NewRawMessage(event.Body, event.SenderAddress, event.TimestampMillis)
}

func toResultResponse(res *worker.Result) *ResultResponse {
	resp := &ResultResponse{
		Outcome:     res.Outcome,
		Transaction: res.Transaction,
	}

	if res.Error != nil {
		resp.Error = res.Error.Error()
	}

	return resp
}

func decodeBody(r *http.Request, target interface{}) error {
	b, err := io.ReadAll(r.Body)
	if err != nil {
		return errors.Wrap(err, "failed to read body")
	}

	if err = json.Unmarshal(b, target); err != nil {
		return errors.Wrap(err, "invalid json")
	}

	return nil
}

// writeError answers 503 for retryable failures so forwarders redeliver the message.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	retryable := common.IsRetryable(err)

	zerolog.Ctx(ctx).Error().Err(err).Bool("retryable", retryable).Msg("request failed")

	status := http.StatusInternalServerError
	if retryable {
		status = http.StatusServiceUnavailable
	}

	writeJSON(w, status, ErrorResponse{
		Error:     err.Error(),
		Retryable: retryable,
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	_ = json.NewEncoder(w).Encode(body)
}
