package server

import (
	"context"
	"encoding/json"
	"net"
	nethttp "net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"complaint-service/internal/conf"
	"complaint-service/internal/service"

	"github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/go-kratos/kratos/v2/middleware/logging"
	"github.com/go-kratos/kratos/v2/middleware/recovery"
	"github.com/go-kratos/kratos/v2/transport/http"
	"github.com/google/wire"
)

// ProviderSet is server providers.
var ProviderSet = wire.NewSet(NewHTTPServer)

const (
	defaultPage = 0
	defaultSize = 10
)

// NewHTTPServer new an HTTP server.
func NewHTTPServer(c *conf.Server, complaints *service.ComplaintService, logger log.Logger) *http.Server {
	var opts = []http.ServerOption{
		http.Middleware(
			recovery.Recovery(),
			logging.Server(logger),
		),
		http.ErrorEncoder(errorEncoder),
	}
	if c.HTTP.Network != "" {
		opts = append(opts, http.Network(c.HTTP.Network))
	}
	if c.HTTP.Addr != "" {
		opts = append(opts, http.Address(c.HTTP.Addr))
	}
	if d := c.HTTP.ParseTimeout(); d > 0 {
		opts = append(opts, http.Timeout(d))
	}
	srv := http.NewServer(opts...)

	registerRoutes(srv, complaints)

	srv.HandleFunc("/healthz", func(w nethttp.ResponseWriter, r *nethttp.Request) {
		w.WriteHeader(nethttp.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	return srv
}

func registerRoutes(srv *http.Server, svc *service.ComplaintService) {
	r := srv.Route("/api/v1")

	r.POST("/complaints", createComplaintHandler(svc))
	r.PUT("/complaints/{id}/content", updateComplaintContentHandler(svc))
	r.GET("/complaints/{id}", getComplaintHandler(svc))
	r.GET("/complaints", listComplaintsHandler(svc))
}

func createComplaintHandler(svc *service.ComplaintService) func(http.Context) error {
	return func(ctx http.Context) error {
		var req service.CreateComplaintRequest
		if err := ctx.Bind(&req); err != nil {
			return err
		}
		ip := clientIP(ctx.Request())

		h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			return svc.CreateComplaint(c, &req, ip)
		})
		out, err := h(ctx, &req)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out)
	}
}

func updateComplaintContentHandler(svc *service.ComplaintService) func(http.Context) error {
	return func(ctx http.Context) error {
		var vars struct {
			ID string `json:"id"`
		}
		if err := ctx.BindVars(&vars); err != nil {
			return err
		}

		// Content arrives either as a query parameter or as a JSON body;
		// the query parameter wins.
		content := ctx.Query().Get("content")
		if content == "" {
			var body service.UpdateComplaintContentRequest
			if err := ctx.Bind(&body); err != nil {
				return err
			}
			content = body.Content
		}
		ip := clientIP(ctx.Request())

		h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			return svc.UpdateComplaintContent(c, vars.ID, content, ip)
		})
		out, err := h(ctx, &vars)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out)
	}
}

func getComplaintHandler(svc *service.ComplaintService) func(http.Context) error {
	return func(ctx http.Context) error {
		var vars struct {
			ID string `json:"id"`
		}
		if err := ctx.BindVars(&vars); err != nil {
			return err
		}

		h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			return svc.GetComplaintByID(c, vars.ID)
		})
		out, err := h(ctx, &vars)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out)
	}
}

func listComplaintsHandler(svc *service.ComplaintService) func(http.Context) error {
	return func(ctx http.Context) error {
		req, err := parseListRequest(ctx.Query())
		if err != nil {
			return err
		}

		h := ctx.Middleware(func(c context.Context, _ interface{}) (interface{}, error) {
			return svc.ListComplaints(c, req)
		})
		out, err := h(ctx, req)
		if err != nil {
			return err
		}
		return ctx.Result(nethttp.StatusOK, out)
	}
}

func parseListRequest(query url.Values) (*service.ListComplaintsRequest, error) {
	req := &service.ListComplaintsRequest{
		ProductID:     query.Get("productId"),
		ComplainantID: query.Get("complainantId"),
		Page:          defaultPage,
		Size:          defaultSize,
	}

	if v := query.Get("page"); v != "" {
		page, err := strconv.Atoi(v)
		if err != nil || page < 0 {
			return nil, errors.BadRequest("INVALID_PAGINATION", "page must be a non-negative integer")
		}
		req.Page = page
	}
	if v := query.Get("size"); v != "" {
		size, err := strconv.Atoi(v)
		if err != nil || size <= 0 {
			return nil, errors.BadRequest("INVALID_PAGINATION", "size must be a positive integer")
		}
		req.Size = size
	}
	if v := query.Get("fromDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return nil, errors.BadRequest("INVALID_DATE", "fromDate must be an ISO-8601 date-time")
		}
		req.FromDate = &t
	}
	if v := query.Get("toDate"); v != "" {
		t, err := parseDate(v)
		if err != nil {
			return nil, errors.BadRequest("INVALID_DATE", "toDate must be an ISO-8601 date-time")
		}
		req.ToDate = &t
	}

	return req, nil
}

// parseDate accepts RFC 3339 date-times and the offset-less variant that
// clients commonly send.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02T15:04:05", s)
}

// clientIP extracts the originating client address, preferring the first
// X-Forwarded-For entry set by upstream proxies.
func clientIP(r *nethttp.Request) string {
	if xff := r.Header.Get("X-Forwarded-For"); xff != "" {
		parts := strings.Split(xff, ",")
		if ip := strings.TrimSpace(parts[0]); ip != "" {
			return ip
		}
	}
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}

// ErrorResponse is the JSON error body rendered by the transport.
type ErrorResponse struct {
	Timestamp time.Time `json:"timestamp"`
	Status    int       `json:"status"`
	Error     string    `json:"error"`
	Message   string    `json:"message"`
	Path      string    `json:"path"`
}

func errorEncoder(w nethttp.ResponseWriter, r *nethttp.Request, err error) {
	se := errors.FromError(err)
	status := int(se.Code)
	if status < 100 || status > 599 {
		status = nethttp.StatusInternalServerError
	}

	body := ErrorResponse{
		Timestamp: time.Now().UTC(),
		Status:    status,
		Error:     nethttp.StatusText(status),
		Message:   se.Message,
		Path:      r.URL.Path,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
