package export

import (
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/gymtracker/internal/auth"
	"github.com/2beens/gymtracker/internal/gymstats/stats"
	"github.com/2beens/gymtracker/internal/telemetry/metrics"
	"github.com/2beens/gymtracker/internal/telemetry/tracing"
	"github.com/2beens/gymtracker/pkg"
)

type Handler struct {
	source         stats.Source
	metricsManager *metrics.Manager
	now            func() time.Time
}

func NewHandler(source stats.Source, metricsManager *metrics.Manager) *Handler {
	return &Handler{
		source:         source,
		metricsManager: metricsManager,
		now:            time.Now,
	}
}

func (handler *Handler) SetClock(now func() time.Time) {
	handler.now = now
}

// HandleExport serves /gymstats/export/{kind} as an xlsx attachment.
func (handler *Handler) HandleExport(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.export")
	defer span.End()

	session, ok := auth.SessionFromContext(ctx)
	if !ok {
		http.Error(w, "no can do", http.StatusUnauthorized)
		return
	}

	kind, err := ParseKind(mux.Vars(r)["kind"])
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusNotFound)
		return
	}
	timeRange, err := stats.ParseTimeRange(r.URL.Query().Get("range"))
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}
	bodyPart := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("bodypart")))

	start := time.Now()
	ds := stats.Load(ctx, handler.source, session.UserID, timeRange, bodyPart, handler.now())
	wb, err := Build(kind, ds, session.Username)
	if err != nil {
		http.Error(w, "error, "+err.Error(), http.StatusBadRequest)
		return
	}
	content, err := wb.Render()
	if err != nil {
		log.Errorf("render %s export for %s: %s", kind, session.Username, err)
		http.Error(w, "error, failed to build export", http.StatusInternalServerError)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterExports.WithLabelValues(string(kind)).Inc()
		handler.metricsManager.HistogramExportDuration.Observe(time.Since(start).Seconds())
	}
	log.Debugf("%s export for %s: %d sheets, %d bytes", kind, session.Username, len(wb.Sheets), len(content))

	pkg.WriteAttachment(w, pkg.ContentType.XLSX, wb.FileName, content)
}
