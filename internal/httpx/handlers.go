package httpx

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime"
	"net/http"
	"strings"

	"github.com/go-chi/render"

	"github.com/AngelCh415/digmar-dash/internal/ingest"
	"github.com/AngelCh415/digmar-dash/internal/metrics"
	"github.com/AngelCh415/digmar-dash/internal/models"
	"github.com/AngelCh415/digmar-dash/internal/report"
	"github.com/AngelCh415/digmar-dash/internal/utils"
)

const formField = "file"

// upload returns the CSV bytes from a multipart "file" field or, for any
// other content type, the raw body. It reads everything up front.
func (h *handler) upload(w http.ResponseWriter, r *http.Request) ([]byte, string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, h.maxBytes)

	mt, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mt == "multipart/form-data" {
		if err := r.ParseMultipartForm(h.maxBytes); err != nil {
			var mbe *http.MaxBytesError
			if errors.As(err, &mbe) {
				return nil, "", err
			}
			return nil, "", fmt.Errorf("parse multipart form: %w", err)
		}
		file, fh, err := r.FormFile(formField)
		if errors.Is(err, http.ErrMissingFile) {
			return nil, "", ingest.ErrEmptyInput
		}
		if err != nil {
			return nil, "", fmt.Errorf("read form file: %w", err)
		}
		defer file.Close()
		b, err := io.ReadAll(file)
		if err != nil {
			return nil, "", fmt.Errorf("read form file: %w", err)
		}
		return b, fh.Filename, nil
	}

	b, err := io.ReadAll(r.Body)
	if err != nil {
		return nil, "", err
	}
	return b, "", nil
}

func (h *handler) load(w http.ResponseWriter, r *http.Request) (*models.Result, string, error) {
	b, name, err := h.upload(w, r)
	if err != nil {
		return nil, "", err
	}
	if len(b) == 0 {
		return nil, "", ingest.ErrEmptyInput
	}
	res, err := h.svc.Analyze(bytes.NewReader(b))
	return res, name, err
}

func (h *handler) index(w http.ResponseWriter, r *http.Request) {
	h.page(w, r, http.StatusOK, h.fmt.Awaiting())
}

// dashboard renders either the full dashboard or the page in awaiting-input
// state with a rejection message.
func (h *handler) dashboard(w http.ResponseWriter, r *http.Request) {
	s := metrics.NewSession(h.svc)
	b, name, err := h.upload(w, r)
	if err == nil {
		err = s.Load(bytes.NewReader(b))
	}
	if s.State() == metrics.Ready {
		h.page(w, r, http.StatusOK, h.fmt.Build(s.Result(), name))
		return
	}

	var se *ingest.SchemaError
	switch {
	case errors.Is(err, ingest.ErrEmptyInput):
		h.page(w, r, http.StatusOK, h.fmt.Awaiting())
	case errors.As(err, &se):
		h.page(w, r, http.StatusUnprocessableEntity, h.fmt.Rejected(report.ErrBadFormat, se.Missing))
	default:
		apiErr := loadError(err)
		h.page(w, r, apiErr.StatusCode, h.fmt.Rejected(report.ErrParseInput+" "+err.Error(), nil))
	}
}

func (h *handler) page(w http.ResponseWriter, r *http.Request, status int, d report.Dashboard) {
	var buf bytes.Buffer
	if err := report.RenderHTML(&buf, d); err != nil {
		h.log.Error("render dashboard", slog.String("err", err.Error()), slog.String("rid", utils.RID(r.Context())))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

type chartPoint struct {
	CampaignName string       `json:"campaign_name"`
	Value        models.Ratio `json:"value"`
}

type chartSeries struct {
	Title  string       `json:"title"`
	Metric string       `json:"metric"`
	Points []chartPoint `json:"points"`
}

type analyzeResponse struct {
	*models.Result
	Charts []chartSeries `json:"charts"`
}

func (h *handler) analyze(w http.ResponseWriter, r *http.Request) {
	res, _, err := h.load(w, r)
	if err != nil {
		renderError(w, r, loadError(err))
		return
	}
	render.JSON(w, r, analyzeResponse{
		Result: res,
		Charts: []chartSeries{
			series("CTR per Campaign", "CTR", res.Campaigns, func(a models.CampaignAggregate) models.Ratio { return a.CTR }),
			series("ROI per Campaign", "ROI", res.Campaigns, func(a models.CampaignAggregate) models.Ratio { return a.ROI }),
		},
	})
}

func series(title, metric string, aggs []models.CampaignAggregate, pick func(models.CampaignAggregate) models.Ratio) chartSeries {
	s := chartSeries{Title: title, Metric: metric, Points: make([]chartPoint, 0, len(aggs))}
	for _, a := range aggs {
		s.Points = append(s.Points, chartPoint{CampaignName: a.CampaignName, Value: pick(a)})
	}
	return s
}

type exportQuery struct {
	Format string `validate:"oneof=csv xlsx json"`
	Table  string `validate:"oneof=campaigns rows"`
}

func (h *handler) export(w http.ResponseWriter, r *http.Request) {
	q := exportQuery{
		Format: strings.ToLower(orDefault(r.URL.Query().Get("format"), report.FormatCSV)),
		Table:  strings.ToLower(orDefault(r.URL.Query().Get("table"), report.TableCampaigns)),
	}
	if err := h.validate.Struct(q); err != nil {
		renderError(w, r, newAPIError(http.StatusBadRequest, "INVALID_PARAMETER", "invalid export parameters", err.Error()))
		return
	}
	res, _, err := h.load(w, r)
	if err != nil {
		renderError(w, r, loadError(err))
		return
	}

	var buf bytes.Buffer
	if err := h.fmt.Export(&buf, res, q.Format, q.Table); err != nil {
		h.log.Error("export", slog.String("err", err.Error()), slog.String("rid", utils.RID(r.Context())))
		renderError(w, r, newAPIError(http.StatusInternalServerError, "EXPORT_FAILED", "export failed", nil))
		return
	}
	w.Header().Set("Content-Type", report.ContentType(q.Format))
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, report.Filename(q.Format, q.Table)))
	w.WriteHeader(http.StatusOK)
	w.Write(buf.Bytes())
}

func orDefault(s, def string) string {
	if s = strings.TrimSpace(s); s == "" {
		return def
	}
	return s
}
