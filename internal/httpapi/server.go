// Package httpapi exposes the compiler as an HTTP service: a health
// check and a synchronous BPMN-XML-in, DCR-XML-out translate endpoint,
// mirroring the reference implementation's FastAPI surface.
package httpapi

import (
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/hashicorp/go-multierror"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"

	"github.com/mattbarlow-sg/bpmn2dcr/internal/bpmn"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/dcr"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/emit"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/ingest"
	"github.com/mattbarlow-sg/bpmn2dcr/internal/translate"
)

// TranslateRequest is the POST /translate request body: raw BPMN XML.
type TranslateRequest struct {
	BpmnXML string `json:"bpmn_xml" validate:"required"`
}

type requestValidator struct {
	validate *validator.Validate
}

func (v *requestValidator) Validate(i any) error {
	return v.validate.Struct(i)
}

// TranslateResponse is the POST /translate response body.
type TranslateResponse struct {
	Success bool       `json:"success"`
	DcrXML  string     `json:"dcr_xml,omitempty"`
	Graph   *GraphView `json:"graph,omitempty"`
	Error   string     `json:"error,omitempty"`
}

// GraphView is the frontend-facing rendering of a compiled dcr.Graph,
// mirroring the reference server's dcr_graph_to_frontend_format: events
// with their marking flags inlined, relations as flat (source, target,
// type) triples, and the same data again as the three marking id lists
// the frontend's initial-state renderer expects.
type GraphView struct {
	Events    []GraphEventView    `json:"events"`
	Relations []GraphRelationView `json:"relations"`
	Marking   GraphMarkingView    `json:"marking"`
}

type GraphEventView struct {
	ID       string `json:"id"`
	Label    string `json:"label"`
	Included bool   `json:"included"`
	Executed bool   `json:"executed"`
	Pending  bool   `json:"pending"`
}

type GraphRelationView struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Type   string `json:"type"`
}

type GraphMarkingView struct {
	Executed []string `json:"executed"`
	Included []string `json:"included"`
	Pending  []string `json:"pending"`
}

func buildGraphView(g *dcr.Graph) *GraphView {
	view := &GraphView{
		Events:    make([]GraphEventView, 0, len(g.EventOrder)),
		Relations: make([]GraphRelationView, 0, len(g.Relations)),
		Marking:   GraphMarkingView{Executed: []string{}, Included: []string{}, Pending: []string{}},
	}

	for _, id := range g.EventOrder {
		ev := g.Events[id]
		view.Events = append(view.Events, GraphEventView{
			ID:       ev.ID,
			Label:    ev.Label,
			Included: ev.Marking.Included,
			Executed: ev.Marking.Executed,
			Pending:  ev.Marking.Pending,
		})
		if ev.Marking.Executed {
			view.Marking.Executed = append(view.Marking.Executed, ev.ID)
		}
		if ev.Marking.Included {
			view.Marking.Included = append(view.Marking.Included, ev.ID)
		}
		if ev.Marking.Pending {
			view.Marking.Pending = append(view.Marking.Pending, ev.ID)
		}
	}

	for _, r := range g.Relations {
		view.Relations = append(view.Relations, GraphRelationView{
			Source: r.Source,
			Target: r.Target,
			Type:   string(r.Kind),
		})
	}

	return view
}

// NewServer builds the echo instance with every route wired.
func NewServer(logger zerolog.Logger) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = &requestValidator{validate: validator.New()}

	e.Use(middleware.RequestIDWithConfig(middleware.RequestIDConfig{
		Generator: uuid.NewString,
	}))
	e.Use(requestLogger(logger))
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{http.MethodGet, http.MethodPost},
	}))
	e.Use(middleware.Recover())

	e.GET("/", rootHandler)
	e.GET("/health", healthHandler)
	e.POST("/translate", translateHandler)
	return e
}

func requestLogger(logger zerolog.Logger) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			err := next(c)
			logger.Info().
				Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
				Str("method", c.Request().Method).
				Str("path", c.Request().URL.Path).
				Int("status", c.Response().Status).
				Msg("request handled")
			return err
		}
	}
}

func rootHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]any{
		"service": "bpmn2dcr",
		"version": "1.0.0",
		"endpoints": map[string]string{
			"health":    "/health",
			"translate": "/translate",
		},
	})
}

func healthHandler(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "bpmn2dcr",
	})
}

func translateHandler(c echo.Context) error {
	var req TranslateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, TranslateResponse{Success: false, Error: "invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, TranslateResponse{Success: false, Error: "bpmn_xml is required"})
	}

	proc, err := ingest.ParseProcess(strings.NewReader(req.BpmnXML))
	if err != nil {
		return c.JSON(http.StatusOK, TranslateResponse{Success: false, Error: err.Error()})
	}

	validated, err := bpmn.Validate(proc)
	if err != nil {
		return c.JSON(http.StatusOK, TranslateResponse{Success: false, Error: "BPMN validation failed: " + joinErrors(err)})
	}

	graph := translate.Translate(validated)
	xmlBytes, err := emit.Marshal(graph)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, TranslateResponse{Success: false, Error: err.Error()})
	}

	return c.JSON(http.StatusOK, TranslateResponse{
		Success: true,
		DcrXML:  string(xmlBytes),
		Graph:   buildGraphView(graph),
	})
}

func joinErrors(err error) string {
	merr, ok := err.(*multierror.Error)
	if !ok {
		return err.Error()
	}
	parts := make([]string, len(merr.Errors))
	for i, e := range merr.Errors {
		parts[i] = e.Error()
	}
	return strings.Join(parts, "; ")
}
