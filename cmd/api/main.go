package main

import (
	"context"
	"log"
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/xavierca1/imobi-backoffice/internal/automation"
	"github.com/xavierca1/imobi-backoffice/internal/config"
	"github.com/xavierca1/imobi-backoffice/internal/infra/database"
	"github.com/xavierca1/imobi-backoffice/internal/infra/http/handlers"
	"github.com/xavierca1/imobi-backoffice/internal/infra/http/middleware"
	"github.com/xavierca1/imobi-backoffice/internal/infra/mail"
	"github.com/xavierca1/imobi-backoffice/internal/infra/queue"
	"github.com/xavierca1/imobi-backoffice/internal/infra/realtime"
	"github.com/xavierca1/imobi-backoffice/internal/notify"
	"github.com/xavierca1/imobi-backoffice/internal/usecase"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}
	loc := cfg.Location()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// 1. Infra: Postgres, feed de mudanças, RabbitMQ
	db, err := database.NewDBConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("❌ Banco indisponível: %v", err)
	}
	defer db.Close()

	listener, err := realtime.NewListener(cfg.DatabaseURL, cfg.ListenChannel)
	if err != nil {
		log.Fatalf("❌ Feed de mudanças indisponível: %v", err)
	}
	go listener.Run(ctx)

	rabbitMQ, err := queue.NewRabbitMQ(cfg.RabbitUser, cfg.RabbitPass, cfg.RabbitHost, cfg.RabbitPort)
	if err != nil {
		log.Fatalf("❌ RabbitMQ indisponível: %v", err)
	}
	defer rabbitMQ.Conn.Close()
	defer rabbitMQ.Ch.Close()

	// 2. Repositórios
	leadRepo := database.NewLeadRepository(db)
	apptRepo := database.NewAppointmentRepository(db)
	ticketRepo := database.NewTicketRepository(db)
	collabRepo := database.NewCollaboratorRepository(db)

	// 3. Serviços (caches espelho + livro-caixa em memória)
	leadSvc := usecase.NewLeadService(leadRepo)
	agendaSvc := usecase.NewAgendaService(apptRepo, loc)
	ticketSvc := usecase.NewTicketService(ticketRepo)
	collabSvc := usecase.NewCollaboratorService(collabRepo)
	financeSvc := usecase.NewFinanceService(loc)

	// 4. Carga inicial — sem ela o painel abre vazio
	for name, load := range map[string]func(context.Context) error{
		"leads":         leadSvc.Load,
		"agendamentos":  agendaSvc.Load,
		"atendimentos":  ticketSvc.Load,
		"colaboradores": collabSvc.Load,
	} {
		if err := load(ctx); err != nil {
			log.Fatalf("❌ Carga inicial de %s falhou: %v", name, err)
		}
	}

	// 5. Feed → caches
	leadFeed, _ := listener.Subscribe("leads")
	apptFeed, _ := listener.Subscribe("agendamentos")
	ticketFeed, _ := listener.Subscribe("atendimentos")
	messageFeed, _ := listener.Subscribe("mensagens")
	collabFeed, _ := listener.Subscribe("colaboradores")

	go leadSvc.Run(ctx, leadFeed)
	go agendaSvc.Run(ctx, apptFeed)
	go ticketSvc.Run(ctx, ticketFeed, messageFeed)
	go collabSvc.Run(ctx, collabFeed)

	// 6. Notificações + eventos de domínio
	producer := queue.NewProducer(rabbitMQ.Conn, rabbitMQ.Ch)
	mailSender := mail.NewEmailSender(
		cfg.MailHost, cfg.MailPort, cfg.MailUser, cfg.MailPass, cfg.MailFrom, cfg.MailAlertTo,
	)
	center := notify.NewCenter()
	bridge := notify.NewBridge(center, producer, mailSender)

	leadChanges, _ := leadSvc.Subscribe(64)
	apptChanges, _ := agendaSvc.Subscribe(64)
	ticketChanges, _ := ticketSvc.Subscribe(64)
	go bridge.WatchLeads(ctx, leadChanges)
	go bridge.WatchAppointments(ctx, apptChanges)
	go bridge.WatchTickets(ctx, ticketChanges)

	// 7. Console de automação (fila → webhooks de saída)
	registry := automation.NewRegistry()
	dispatcher := automation.NewDispatcher(registry)
	worker := queue.NewWorker(rabbitMQ.Ch, dispatcher)
	go worker.Start(queue.QueueName)

	// 8. Handlers
	leadHandler := handlers.NewLeadHandler(leadSvc)
	agendaHandler := handlers.NewAgendaHandler(agendaSvc)
	ticketHandler := handlers.NewTicketHandler(ticketSvc)
	collabHandler := handlers.NewCollaboratorHandler(collabSvc)
	financeHandler := handlers.NewFinanceHandler(financeSvc)
	webhookHandler := handlers.NewWebhookHandler(registry, dispatcher)
	notifHandler := handlers.NewNotificationHandler(center)
	healthHandler := handlers.NewHealthHandler(db, rabbitMQ.Conn)

	// 9. Router
	r := chi.NewRouter()
	r.Use(chimiddleware.Logger)
	r.Use(middleware.Metrics)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.CORSOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
	}))

	r.Get("/health", healthHandler.Handle)
	r.Handle("/metrics", promhttp.Handler())

	// Endpoint público dos formulários do site
	r.Post("/capture", leadHandler.Capture)

	r.Route("/leads", func(r chi.Router) {
		r.Get("/", leadHandler.List)
		r.Post("/", leadHandler.Create)
		r.Get("/board", leadHandler.Board)
		r.Get("/stats", leadHandler.Stats)
		r.Get("/sources", leadHandler.Sources)
		r.Put("/{id}", leadHandler.Update)
		r.Delete("/{id}", leadHandler.Delete)
		r.Patch("/{id}/status", leadHandler.Transition)
	})

	r.Route("/agenda", func(r chi.Router) {
		r.Get("/", agendaHandler.List)
		r.Post("/", agendaHandler.Create)
		r.Get("/upcoming", agendaHandler.Upcoming)
		r.Get("/stats", agendaHandler.Stats)
		r.Put("/{id}", agendaHandler.Update)
		r.Delete("/{id}", agendaHandler.Delete)
		r.Patch("/{id}/status", agendaHandler.Transition)
	})

	r.Route("/atendimentos", func(r chi.Router) {
		r.Get("/", ticketHandler.List)
		r.Post("/", ticketHandler.Create)
		r.Get("/stats", ticketHandler.Stats)
		r.Put("/{id}", ticketHandler.Update)
		r.Delete("/{id}", ticketHandler.Delete)
		r.Patch("/{id}/status", ticketHandler.Transition)
		r.Post("/{id}/mensagens", ticketHandler.AddMessage)
	})

	r.Route("/colaboradores", func(r chi.Router) {
		r.Get("/", collabHandler.List)
		r.Post("/", collabHandler.Create)
		r.Put("/{id}", collabHandler.Update)
		r.Delete("/{id}", collabHandler.Delete)
		r.Patch("/{id}/toggle", collabHandler.Toggle)
	})

	r.Route("/financeiro", func(r chi.Router) {
		r.Get("/", financeHandler.List)
		r.Post("/", financeHandler.Create)
		r.Get("/recentes", financeHandler.Recent)
		r.Get("/stats", financeHandler.Stats)
		r.Get("/categorias", financeHandler.Categories)
		r.Put("/{id}", financeHandler.Update)
		r.Delete("/{id}", financeHandler.Delete)
	})

	r.Route("/webhooks", func(r chi.Router) {
		r.Get("/", webhookHandler.List)
		r.Post("/", webhookHandler.Create)
		r.Put("/{id}", webhookHandler.Update)
		r.Delete("/{id}", webhookHandler.Delete)
		r.Patch("/{id}/toggle", webhookHandler.Toggle)
		r.Get("/{id}/entregas", webhookHandler.Deliveries)
		r.Post("/{id}/test", webhookHandler.Test)
	})

	r.Route("/notificacoes", func(r chi.Router) {
		r.Get("/", notifHandler.List)
		r.Post("/ler-todas", notifHandler.MarkAllRead)
		r.Patch("/{id}/ler", notifHandler.MarkRead)
		r.Delete("/{id}", notifHandler.Delete)
		r.Delete("/", notifHandler.Clear)
	})

	addr := ":" + cfg.Port
	log.Printf("🔥 Imobi Backoffice rodando na porta %s", addr)
	if err := http.ListenAndServe(addr, r); err != nil {
		log.Fatal(err)
	}
}
