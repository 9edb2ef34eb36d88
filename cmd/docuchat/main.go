// Command docuchat is an interactive terminal client for a document Q&A
// service: upload PDFs, pick a document, and chat against it.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/docuchat/docuchat-go/internal/config"
	"github.com/docuchat/docuchat-go/internal/domain"
	logpkg "github.com/docuchat/docuchat-go/internal/logger"
	"github.com/docuchat/docuchat-go/internal/timeutil"
	"github.com/docuchat/docuchat-go/internal/transport/ragapi"
	chatuc "github.com/docuchat/docuchat-go/internal/usecase/chat"
	directoryuc "github.com/docuchat/docuchat-go/internal/usecase/directory"
	libraryuc "github.com/docuchat/docuchat-go/internal/usecase/library"
	scopeuc "github.com/docuchat/docuchat-go/internal/usecase/scope"
	"github.com/docuchat/docuchat-go/internal/version"
)

func main() {
	_ = godotenv.Load()

	env := config.GetEnv()
	cfg, err := config.Load(env)
	if err != nil {
		panic("failed to load config: " + err.Error())
	}

	logger, err := logpkg.NewLogger(env, cfg.Logging.Level)
	if err != nil {
		panic("failed to create logger: " + err.Error())
	}
	defer func() { _ = logger.Sync() }()

	logger.Info("Starting docuchat",
		zap.String("version", version.Version),
		zap.String("commit", version.Commit),
		zap.String("env", env),
		zap.String("service_url", cfg.Service.BaseURL),
	)

	gw, err := ragapi.New(&ragapi.Config{
		BaseURL: cfg.Service.BaseURL,
		Timeout: time.Duration(cfg.Service.TimeoutSec) * time.Second,
		Logger:  logger,
	})
	if err != nil {
		logger.Fatal("Failed to create API client", zap.Error(err))
	}

	// Composition root: scope and chat reference each other, so the history
	// binding is installed after construction.
	sc := scopeuc.New()
	dir := directoryuc.New(gw, sc)
	ch := chatuc.New(gw, sc).
		WithTopK(cfg.Query.TopK).
		OnConversationCreated(func(ctx context.Context, _ string) {
			docID, _ := sc.ActiveDocumentID()
			if err := dir.Refresh(ctx, docID); err != nil {
				logger.Warn("Directory refresh failed", zap.Error(err))
			}
		})
	sc.BindHistory(ch)

	app := &app{
		library:   libraryuc.New(gw),
		scope:     sc,
		chat:      ch,
		directory: dir,
		logger:    logger,
	}
	app.run(logpkg.ContextWithLogger(context.Background(), logger))
}

type app struct {
	library   *libraryuc.Service
	scope     *scopeuc.Service
	chat      *chatuc.Service
	directory *directoryuc.Service
	logger    *zap.Logger

	documents []domain.Document
}

func (a *app) run(ctx context.Context) {
	fmt.Println("docuchat — type /help for commands, /quit to exit")
	sc := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print(a.prompt())
		if !sc.Scan() {
			return
		}
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if line == "/quit" || line == "/exit" {
			return
		}
		if strings.HasPrefix(line, "/") {
			a.command(ctx, line)
			continue
		}
		a.send(ctx, line)
	}
}

func (a *app) prompt() string {
	if name, ok := a.scope.ActiveDocumentName(); ok {
		return name + "> "
	}
	if _, ok := a.scope.ActiveDocumentID(); ok {
		return "doc> "
	}
	return "> "
}

func (a *app) command(ctx context.Context, line string) {
	cmd, arg, _ := strings.Cut(line, " ")
	arg = strings.TrimSpace(arg)

	switch cmd {
	case "/help":
		fmt.Println(`  /docs                 list uploaded documents
  /open <n>             chat against document n
  /upload <path>        upload a PDF
  /conversations        list conversations for the active document
  /resume <n>           resume conversation n
  /new                  start a new conversation
  /delete <n>           delete conversation n
  /quit                 exit`)
	case "/docs":
		a.listDocuments(ctx)
	case "/open":
		a.openDocument(arg)
	case "/upload":
		a.upload(ctx, arg)
	case "/conversations":
		a.listConversations(ctx)
	case "/resume":
		a.resume(ctx, arg)
	case "/new":
		a.scope.StartNewConversation()
		fmt.Println("started a new conversation")
	case "/delete":
		a.deleteConversation(ctx, arg)
	default:
		fmt.Printf("unknown command %s (try /help)\n", cmd)
	}
}

func (a *app) listDocuments(ctx context.Context) {
	docs, err := a.library.List(ctx)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	a.documents = docs
	if len(docs) == 0 {
		fmt.Println("no documents uploaded yet (/upload <path>)")
		return
	}
	for i, d := range docs {
		fmt.Printf("  %d. %s (%d chunks)\n", i+1, d.Name, d.Chunks)
	}
}

func (a *app) openDocument(arg string) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(a.documents) {
		fmt.Println("usage: /open <n> (run /docs first)")
		return
	}
	d := a.documents[n-1]
	a.scope.SelectDocument(d.ID, d.Name)
	fmt.Printf("chatting against %s\n", d.Name)
}

func (a *app) upload(ctx context.Context, path string) {
	if path == "" {
		fmt.Println("usage: /upload <path>")
		return
	}
	f, err := os.Open(filepath.Clean(path))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	defer f.Close()

	receipt, err := a.library.Upload(ctx, f, filepath.Base(path))
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("uploaded %s: %d chunks\n", receipt.Filename, receipt.ChunksCreated)
}

func (a *app) listConversations(ctx context.Context) {
	docID, _ := a.scope.ActiveDocumentID()
	if err := a.directory.Refresh(ctx, docID); err != nil {
		fmt.Println("error:", err)
		return
	}
	convs := a.directory.Conversations()
	if len(convs) == 0 {
		fmt.Println("no conversations yet")
		return
	}
	now := time.Now()
	for i, c := range convs {
		fmt.Printf("  %d. %s (%s)\n", i+1, c.DisplayTitle(), timeutil.RelativeAge(c.UpdatedAt, now))
	}
}

func (a *app) conversationAt(arg string) (domain.Conversation, bool) {
	convs := a.directory.Conversations()
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(convs) {
		fmt.Println("usage: <n> from /conversations")
		return domain.Conversation{}, false
	}
	return convs[n-1], true
}

func (a *app) resume(ctx context.Context, arg string) {
	conv, ok := a.conversationAt(arg)
	if !ok {
		return
	}
	if err := a.scope.SelectConversation(ctx, conv); err != nil {
		fmt.Println("error:", err)
		return
	}
	for _, m := range a.chat.Messages() {
		printMessage(m)
	}
}

func (a *app) deleteConversation(ctx context.Context, arg string) {
	conv, ok := a.conversationAt(arg)
	if !ok {
		return
	}
	if err := a.directory.Remove(ctx, conv.ID); err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Printf("deleted %s\n", conv.DisplayTitle())
}

func (a *app) send(ctx context.Context, text string) {
	reply, err := a.chat.Send(ctx, text)
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	printMessage(reply)
}

func printMessage(m domain.Message) {
	switch m.Role {
	case domain.RoleHuman:
		fmt.Printf("you: %s\n", m.Content)
	case domain.RoleAssistant:
		fmt.Printf("assistant: %s\n", m.Content)
		for _, src := range m.Sources {
			excerpt := src.Content
			if len(excerpt) > 80 {
				excerpt = excerpt[:80] + "..."
			}
			if src.Page > 0 {
				fmt.Printf("  [%.2f] p.%d %s\n", src.Score, src.Page, excerpt)
			} else {
				fmt.Printf("  [%.2f] %s\n", src.Score, excerpt)
			}
		}
	}
}
