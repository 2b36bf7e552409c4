package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"

	appanalysis "github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/application/analysis"
	domain "github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/domain/analysis"
	"github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/domain/llm"
	"github.com/Greenwood-Technologies-Org/cf-compound-selection/internal/middleware"
)

type Router struct {
	analysisSvc *appanalysis.Service
	completer   llm.Completer
}

// NewRouter wires the API surface. completer may be nil, in which case the
// /completion proxy answers 503.
func NewRouter(analysisSvc *appanalysis.Service, completer llm.Completer, allowedOrigins []string, checkers map[string]middleware.HealthChecker) http.Handler {
	r := &Router{analysisSvc: analysisSvc, completer: completer}
	mux := chi.NewRouter()

	if len(allowedOrigins) > 0 {
		mux.Use(cors.Handler(cors.Options{
			AllowedOrigins:   allowedOrigins,
			AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
			AllowedHeaders:   []string{"*"},
			ExposedHeaders:   []string{"*"},
			AllowCredentials: true,
			MaxAge:           600,
		}))
	}

	mux.Get("/health", middleware.HealthHandler(checkers))
	mux.Get("/health/live", middleware.LivenessHandler)
	mux.Get("/metrics", middleware.MetricsHandler)

	mux.Post("/analyze_fibrosis", r.wrap(r.handleAnalyze))
	mux.Get("/analyses", r.wrap(r.handleList))
	mux.Get("/analyses/{id}", r.wrap(r.handleGet))
	mux.Post("/completion", r.wrap(r.handleCompletion))

	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

// apiError carries a status code for wrap; everything else becomes a 500.
type apiError struct {
	code int
	msg  string
}

func (e *apiError) Error() string { return e.msg }

func badRequest(err error) error {
	return &apiError{code: http.StatusBadRequest, msg: err.Error()}
}

// wrap converts handler errors into the {"detail": "..."} error body the
// frontend expects.
func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		err := h(w, req)
		if err == nil {
			return
		}
		code := http.StatusInternalServerError
		var apiErr *apiError
		switch {
		case errors.As(err, &apiErr):
			code = apiErr.code
		case errors.Is(err, domain.ErrReportNotFound):
			code = http.StatusNotFound
		case errors.Is(err, domain.ErrBlankCompound):
			code = http.StatusBadRequest
		}
		writeDetail(w, code, err.Error())
	}
}

func writeDetail(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"detail": msg})
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

// POST /analyze_fibrosis
// Body: {"drug_name": "<compound>"}
func (r *Router) handleAnalyze(w http.ResponseWriter, req *http.Request) error {
	var body struct {
		DrugName string `json:"drug_name"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}
	if err := middleware.ValidateCompoundName(body.DrugName); err != nil {
		return badRequest(err)
	}

	middleware.IncrementAnalyses()
	middleware.IncrementAnalysesRunning()
	defer middleware.DecrementAnalysesRunning()

	report, err := r.analysisSvc.Evaluate(req.Context(), body.DrugName)
	if err != nil {
		middleware.IncrementAnalysesFailed()
		return err
	}
	return writeJSON(w, report)
}

// GET /analyses?page=&page_size=
func (r *Router) handleList(w http.ResponseWriter, req *http.Request) error {
	page, _ := strconv.Atoi(req.URL.Query().Get("page"))
	size, _ := strconv.Atoi(req.URL.Query().Get("page_size"))

	list, err := r.analysisSvc.Paginate(req.Context(),
		middleware.ValidatePage(page), middleware.ValidatePageSize(size))
	if err != nil {
		return err
	}
	if list == nil {
		list = []*domain.Report{}
	}
	return writeJSON(w, list)
}

// GET /analyses/{id}
func (r *Router) handleGet(w http.ResponseWriter, req *http.Request) error {
	id := chi.URLParam(req, "id")
	report, err := r.analysisSvc.Get(req.Context(), domain.ReportID(id))
	if err != nil {
		return err
	}
	return writeJSON(w, report)
}

// POST /completion
// Body: {"messages": [{"role": "...", "content": "..."}]}
func (r *Router) handleCompletion(w http.ResponseWriter, req *http.Request) error {
	if r.completer == nil {
		return &apiError{code: http.StatusServiceUnavailable, msg: "completion service not configured"}
	}

	var body struct {
		Messages []llm.Message `json:"messages"`
	}
	if err := json.NewDecoder(req.Body).Decode(&body); err != nil {
		return badRequest(err)
	}
	if len(body.Messages) == 0 {
		return badRequest(errors.New("messages is required"))
	}

	result, err := r.completer.Complete(req.Context(), body.Messages)
	if err != nil {
		return err
	}
	return writeJSON(w, result)
}
