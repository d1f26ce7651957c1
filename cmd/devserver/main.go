// Command devserver serves a model over a small JSON inspection API. The
// model comes from a CSDL document, a live database schema, or a built-in
// sample, and every endpoint resolves identifiers through the resolver so the
// case-insensitive and ambiguity behavior can be exercised interactively.
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
	servertiming "github.com/mitchellh/go-server-timing"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	edm "github.com/nlstn/go-edm"
	"github.com/nlstn/go-edm/csdl"
	"github.com/nlstn/go-edm/dbmodel"
	"github.com/nlstn/go-edm/internal/observability"
	"github.com/nlstn/go-edm/reflection"
)

func main() {
	addr := flag.String("addr", ":8080", "listen address")
	csdlPath := flag.String("csdl", "", "path to a CSDL XML document to serve")
	dsn := flag.String("db", "", "database DSN to derive the model from")
	driver := flag.String("driver", "sqlite", "database driver (sqlite or postgres)")
	caseInsensitive := flag.Bool("case-insensitive", false, "enable case-insensitive identifier resolution")
	timing := flag.Bool("server-timing", false, "emit Server-Timing response headers")
	flag.Parse()

	logger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(logger)

	model, err := loadModel(*csdlPath, *dsn, *driver, logger)
	if err != nil {
		logger.Error("failed to load model", "error", err)
		os.Exit(1)
	}

	obsOpts := []observability.Option{
		observability.WithServiceName("edm-devserver"),
		observability.WithLogger(logger),
	}
	if *timing {
		obsOpts = append(obsOpts, observability.WithServerTiming())
	}
	obs, err := observability.New(obsOpts...)
	if err != nil {
		logger.Error("failed to initialize observability", "error", err)
		os.Exit(1)
	}

	srv := &server{
		model:    model,
		resolver: edm.Resolver{EnableCaseInsensitive: *caseInsensitive},
		obs:      obs,
		logger:   logger,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/types", srv.handleTypes)
	mux.HandleFunc("/navigation-sources", srv.handleNavigationSources)
	mux.HandleFunc("/operation-imports", srv.handleOperationImports)
	mux.HandleFunc("/bound-operations", srv.handleBoundOperations)
	mux.HandleFunc("/metadata", srv.handleMetadata)

	var handler http.Handler = srv.withRequestID(mux)
	if *timing {
		handler = servertiming.Middleware(handler, nil)
	}

	logger.Info("devserver listening", "addr", *addr, "caseInsensitive", *caseInsensitive)
	if err := http.ListenAndServe(*addr, handler); err != nil {
		logger.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

// loadModel builds the model from the first configured source, falling back
// to the built-in sample entities.
func loadModel(csdlPath, dsn, driver string, logger *slog.Logger) (*edm.Model, error) {
	switch {
	case csdlPath != "":
		data, err := os.ReadFile(csdlPath)
		if err != nil {
			return nil, fmt.Errorf("failed to read CSDL document: %w", err)
		}
		decoder := &csdl.Decoder{Logger: logger}
		return decoder.Decode(data)
	case dsn != "":
		db, err := openDatabase(dsn, driver)
		if err != nil {
			return nil, err
		}
		return dbmodel.FromDB(db, dbmodel.Config{Namespace: "DB", Logger: logger})
	default:
		return reflection.BuildModel("Sample", sampleProduct{}, sampleCategory{})
	}
}

func openDatabase(dsn, driver string) (*gorm.DB, error) {
	switch driver {
	case "sqlite":
		return gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	case "postgres":
		return gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		return nil, errors.New("unknown driver: " + driver)
	}
}

type sampleProduct struct {
	ID       int64
	Name     string
	Category *sampleCategory
}

type sampleCategory struct {
	ID   int64
	Name string
}

type server struct {
	model    *edm.Model
	resolver edm.Resolver
	obs      *observability.Observability
	logger   *slog.Logger
}

// withRequestID tags every request with an ID and logs its outcome.
func (s *server) withRequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-Id", requestID)
		start := time.Now()
		next.ServeHTTP(w, r)
		elapsed := time.Since(start)
		s.obs.RecordRequest(r.Context(), r.URL.Path, elapsed)
		s.logger.Info("request",
			"id", requestID, "method", r.Method, "path", r.URL.Path,
			"query", r.URL.RawQuery, "duration", elapsed)
	})
}

func (s *server) handleTypes(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusOK, typeSummaries(s.model))
		return
	}

	ctx, span := s.obs.StartResolve(r.Context(), "type", name)
	defer span.End()
	stop := s.obs.StartTiming(ctx, "resolve")
	t, err := s.resolver.ResolveType(s.model, name)
	stop()
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	if t == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("type %q not found", name))
		return
	}
	writeJSON(w, http.StatusOK, describeType(t))
}

func (s *server) handleNavigationSources(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeJSON(w, http.StatusOK, sourceSummaries(s.model))
		return
	}

	ctx, span := s.obs.StartResolve(r.Context(), "navigation-source", name)
	defer span.End()
	stop := s.obs.StartTiming(ctx, "resolve")
	source, err := s.resolver.ResolveNavigationSource(s.model, name)
	stop()
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	if source == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("navigation source %q not found", name))
		return
	}
	writeJSON(w, http.StatusOK, describeSource(source))
}

func (s *server) handleOperationImports(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	if name == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing name parameter"))
		return
	}

	ctx, span := s.obs.StartResolve(r.Context(), "operation-import", name)
	defer span.End()
	stop := s.obs.StartTiming(ctx, "resolve")
	imports := s.resolver.ResolveOperationImports(s.model, name)
	stop()
	if imports == nil {
		writeError(w, http.StatusNotFound, errors.New("model has no entity container"))
		return
	}

	out := make([]map[string]any, 0, len(imports))
	for _, imp := range imports {
		out = append(out, map[string]any{
			"name":      imp.Name(),
			"operation": imp.Operation().FullName(),
			"kind":      operationKind(imp.Operation()),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleBoundOperations(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("name")
	typeName := r.URL.Query().Get("type")
	if name == "" || typeName == "" {
		writeError(w, http.StatusBadRequest, errors.New("missing name or type parameter"))
		return
	}

	ctx, span := s.obs.StartResolve(r.Context(), "bound-operation", name)
	defer span.End()

	bindingType, err := s.resolver.ResolveType(s.model, typeName)
	if err != nil {
		writeError(w, http.StatusConflict, err)
		return
	}
	if bindingType == nil {
		writeError(w, http.StatusNotFound, fmt.Errorf("binding type %q not found", typeName))
		return
	}
	var binding edm.Type = bindingType
	if r.URL.Query().Get("collection") == "true" {
		binding = edm.NewCollectionType(bindingType)
	}

	stop := s.obs.StartTiming(ctx, "resolve")
	ops := s.resolver.ResolveBoundOperations(s.model, name, binding)
	stop()

	out := make([]map[string]any, 0, len(ops))
	for _, op := range ops {
		entry := map[string]any{
			"name":       op.FullName(),
			"kind":       operationKind(op),
			"parameters": len(op.Parameters()),
		}
		if ret := op.ReturnType(); ret != nil {
			entry["returnType"] = displayTypeName(ret)
		}
		out = append(out, entry)
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *server) handleMetadata(w http.ResponseWriter, r *http.Request) {
	payload, err := json.MarshalIndent(metadataDocument(s.model), "", "  ")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	etag := strconv.FormatUint(xxhash.Sum64(payload), 16)
	w.Header().Set("ETag", `"`+etag+`"`)
	if match := r.Header.Get("If-None-Match"); match == `"`+etag+`"` {
		w.WriteHeader(http.StatusNotModified)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write(payload)
}

func metadataDocument(model *edm.Model) map[string]any {
	doc := map[string]any{
		"types": typeSummaries(model),
	}
	if model.EntityContainer() != nil {
		doc["container"] = model.EntityContainer().FullName()
		doc["navigationSources"] = sourceSummaries(model)
	}
	return doc
}

func typeSummaries(model *edm.Model) []map[string]any {
	out := []map[string]any{}
	for _, e := range model.SchemaElements() {
		t, ok := e.(edm.SchemaType)
		if !ok {
			continue
		}
		out = append(out, map[string]any{
			"name": t.FullName(),
			"kind": e.ElementKind().String(),
		})
	}
	return out
}

func sourceSummaries(model *edm.Model) []map[string]any {
	out := []map[string]any{}
	container := model.EntityContainer()
	if container == nil {
		return out
	}
	for _, el := range container.Elements() {
		source, ok := el.(edm.NavigationSource)
		if !ok {
			continue
		}
		out = append(out, describeSource(source))
	}
	return out
}

func describeType(t edm.SchemaType) map[string]any {
	out := map[string]any{
		"name": t.FullName(),
		"kind": t.(edm.SchemaElement).ElementKind().String(),
	}
	if st, ok := t.(edm.StructuredType); ok {
		props := []map[string]any{}
		for _, p := range st.Properties() {
			props = append(props, map[string]any{
				"name": p.Name(),
				"type": displayTypeName(p.Type()),
			})
		}
		out["properties"] = props
	}
	return out
}

func describeSource(source edm.NavigationSource) map[string]any {
	bindings := []map[string]any{}
	for _, b := range source.NavigationPropertyBindings() {
		bindings = append(bindings, map[string]any{
			"path":   b.Path().String(),
			"target": b.Target().Name(),
		})
	}
	return map[string]any{
		"name":       source.Name(),
		"entityType": source.EntityType().FullName(),
		"singleton":  source.ContainerElementKind() == edm.ContainerElementKindSingleton,
		"bindings":   bindings,
	}
}

func operationKind(op edm.Operation) string {
	if op.IsFunction() {
		return "function"
	}
	return "action"
}

// displayTypeName names a type for display; collections get the CSDL wrapper form.
func displayTypeName(t edm.Type) string {
	if c, ok := t.(*edm.CollectionType); ok {
		return "Collection(" + displayTypeName(c.ElementType()) + ")"
	}
	if st, ok := t.(edm.SchemaType); ok {
		return st.FullName()
	}
	return fmt.Sprintf("%v", t)
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
