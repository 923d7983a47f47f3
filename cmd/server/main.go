package main

import (
	"log"
	"time"

	"github.com/labstack/echo/v4"
	echoMiddleware "github.com/labstack/echo/v4/middleware"

	"campus/config"
	"campus/database"
	"campus/router"

	"campus/pkg/agent"
	"campus/pkg/ai"
	"campus/pkg/campusinfo"
	"campus/pkg/corpus"
	"campus/pkg/notify"
	"campus/pkg/tools"
	"campus/pkg/voice"
	"campus/pkg/websearch"

	authCtrlImp "campus/pkg/auth/controllerImp"
	authRepoImp "campus/pkg/auth/repositoryImp"
	authSvcImp "campus/pkg/auth/serviceImp"

	chatCtrlImp "campus/pkg/chat/controllerImp"
	histRepoImp "campus/pkg/history/repositoryImp"
	histSvcImp "campus/pkg/history/serviceImp"

	stuCtrlImp "campus/pkg/student/controllerImp"
	stuRepoImp "campus/pkg/student/repositoryImp"
	stuSvcImp "campus/pkg/student/serviceImp"

	healthCtrlImp "campus/pkg/health/controllerImp"
	voiceCtrlImp "campus/pkg/voice/controllerImp"
)

func main() {
	cfg := config.Load()

	db := database.OpenSQLite(cfg.DBPath)
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	// retrieval side
	index := corpus.Load(cfg.CorpusPath)
	web := websearch.New(cfg.SearchEndpoint)
	info := campusinfo.Load(cfg.CampusInfoPath)

	// generative side: primary, direct fallback, then a constant apology
	var llm ai.Client
	backend := "mock"
	if cfg.LLMAPIKey != "" {
		llm = ai.NewChain(
			ai.NewOpenAI(cfg.LLMEndpoint, cfg.LLMAPIKey, cfg.LLMModel),
			ai.NewDirect("https://api.openai.com", cfg.LLMAPIKey, cfg.LLMModel),
			ai.NewStatic(ai.DefaultApology),
		)
		backend = cfg.LLMModel
	} else {
		log.Printf("[main] no LLM_API_KEY set, using mock client")
		llm = ai.NewMock()
	}

	// notifications
	var notifier notify.Notifier = notify.LogOnly{}
	if cfg.SMTPHost != "" {
		notifier = notify.NewMailer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.EmailFrom)
	}

	// services
	stuSvc := stuSvcImp.New(stuRepoImp.New(db), notifier)
	histSvc := histSvcImp.New(histRepoImp.New(db))
	authSvc := authSvcImp.New(authRepoImp.New(db), cfg.JWTSecret, time.Duration(cfg.JWTExpireMinutes)*time.Minute)
	voiceSvc := voice.New(cfg.VoiceEndpoint, cfg.VoiceAPIKey)

	// retrieval pipeline + capability registry behind one dispatcher
	pipeline := agent.NewPipeline(index, web, llm)
	registry := tools.NewRegistry(append(
		append(tools.StudentTools(stuSvc), tools.CampusTools(info, notifier)...),
		tools.KnowledgeTool(pipeline, web),
	)...)
	dispatcher := agent.NewDispatcher(llm, registry)

	// controllers
	authCtrl := authCtrlImp.New(authSvc)
	chatCtrl := chatCtrlImp.New(dispatcher, histSvc, authSvc)
	stuCtrl := stuCtrlImp.New(stuSvc)
	voiceCtrl := voiceCtrlImp.New(voiceSvc)
	healthCtrl := healthCtrlImp.New(db, index.Len(), backend)

	e := echo.New()
	e.HideBanner = true
	e.Use(echoMiddleware.Recover())
	e.Use(echoMiddleware.CORS())

	r := router.New(e, authSvc, authCtrl, chatCtrl, stuCtrl, voiceCtrl, healthCtrl)

	log.Printf("[main] listening on :%s (%d corpus entries, %d tools)", cfg.Port, index.Len(), len(registry.List()))
	if err := r.Start(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
