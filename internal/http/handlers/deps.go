package handlers

import (
	"github.com/jmoiron/sqlx"

	"bizledger/internal/config"
	"bizledger/internal/messaging"
	"bizledger/internal/repos"
	"bizledger/internal/services"
)

type Deps struct {
	DB             *sqlx.DB
	WebhookHandler *WebhookHandler
	ReportHandler  *ReportHandler
}

// NewDeps wires repos and services. cache may be nil; a nil sender falls
// back to logging replies.
func NewDeps(db *sqlx.DB, cfg config.Config, cache services.SummaryCache, sender messaging.Sender) *Deps {
	bizRepo := repos.NewBusinessRepo(db)
	eventRepo := repos.NewEventRepo(db)
	summaryRepo := repos.NewSummaryRepo(db)

	bizSvc := services.NewBusinessService(bizRepo, cfg.DefaultCurrency)
	recSvc := services.NewRecorderService(eventRepo, cache)
	sumSvc := services.NewSummaryService(summaryRepo, bizRepo, cache)
	bot := services.NewBotService(bizSvc, recSvc, sumSvc)

	if sender == nil {
		sender = messaging.LogSender{}
	}
	return &Deps{
		DB:             db,
		WebhookHandler: &WebhookHandler{Bot: bot, Sender: sender},
		ReportHandler:  &ReportHandler{Summaries: sumSvc},
	}
}
