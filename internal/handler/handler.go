package handler

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/pavelanni/quizbank/internal/bank"
	"github.com/pavelanni/quizbank/internal/handler/views"
	"github.com/pavelanni/quizbank/internal/model"
)

// DefaultTitle is the page title used when the bank has none.
const DefaultTitle = "TOEFL Reading Sprint Diagnostic"

// DefaultQuizURL is the iframe source relative to the base path. It names the
// directory, since the file server redirects requests for index.html.
const DefaultQuizURL = "quiz/"

// bankDataPath is where the quiz front-end fetches its questions from,
// relative to the quiz root.
const bankDataPath = "data/questions_new.json"

// Handler serves the quiz wrapper page, the quiz assets and the converted
// question bank.
type Handler struct {
	doc      *model.Document
	bankJSON []byte
	config   model.ServeConfig
}

// New creates a new Handler for doc.
func New(doc *model.Document, cfg model.ServeConfig) (*Handler, error) {
	if doc == nil {
		return nil, errors.New("no question bank")
	}
	data, err := bank.Marshal(doc, bank.FormatJSON)
	if err != nil {
		return nil, fmt.Errorf("encode bank: %w", err)
	}
	if cfg.QuizURL == "" {
		cfg.QuizURL = DefaultQuizURL
	}
	cfg.BasePath = NormalizeBasePath(cfg.BasePath)
	return &Handler{doc: doc, bankJSON: data, config: cfg}, nil
}

// Routes registers all HTTP routes.
func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.handleIndex)
	r.Get("/healthz", h.handleHealth)
	r.Route("/api", func(api chi.Router) {
		api.Get("/bank", h.handleBank)
		api.Get("/questions/{id}", h.handleQuestion)
	})
	r.Get("/quiz/"+bankDataPath, h.handleBank)
	r.Get("/quiz", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, model.BasePathFromContext(r.Context())+"/quiz/", http.StatusMovedPermanently)
	})
	r.Get("/quiz/*", h.handleStatic)
}

// BasePathMiddleware stores the configured base path in the request context.
func (h *Handler) BasePathMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := model.ContextWithBasePath(r.Context(), h.config.BasePath)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (h *Handler) handleIndex(w http.ResponseWriter, r *http.Request) {
	title := h.doc.Title
	if title == "" {
		title = DefaultTitle
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := views.WrapperPage(title, h.quizURL(r)).Render(r.Context(), w); err != nil {
		slog.Error("render error", "error", err)
	}
}

// quizURL resolves the iframe source. Absolute URLs are used as given;
// relative ones are placed under the base path.
func (h *Handler) quizURL(r *http.Request) string {
	u := h.config.QuizURL
	if strings.Contains(u, "://") || strings.HasPrefix(u, "//") {
		return u
	}
	return model.BasePathFromContext(r.Context()) + "/" + strings.TrimPrefix(u, "/")
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

func (h *Handler) handleBank(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(h.bankJSON)
}

func (h *Handler) handleQuestion(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid question ID", http.StatusBadRequest)
		return
	}

	qs := h.doc.QuestionsByID(id)
	if len(qs) == 0 {
		http.Error(w, "question not found", http.StatusNotFound)
		return
	}

	data, err := bank.MarshalQuestions(qs)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	_, _ = w.Write(data)
}

func (h *Handler) handleStatic(w http.ResponseWriter, r *http.Request) {
	if h.config.StaticDir == "" {
		http.NotFound(w, r)
		return
	}
	rctx := chi.RouteContext(r.Context())
	prefix := strings.TrimSuffix(rctx.RoutePattern(), "/*")
	fs := http.StripPrefix(prefix, http.FileServer(http.Dir(h.config.StaticDir)))
	fs.ServeHTTP(w, r)
}
