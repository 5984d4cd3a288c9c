package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"complaint-service/internal/biz"
	"complaint-service/internal/domain"

	kerrors "github.com/go-kratos/kratos/v2/errors"
	"github.com/go-kratos/kratos/v2/log"
	"github.com/google/wire"
	"github.com/samber/lo"
)

// ProviderSet is service providers.
var ProviderSet = wire.NewSet(NewComplaintService)

const (
	reasonNotFound         = "COMPLAINT_NOT_FOUND"
	reasonValidationFailed = "COMPLAINT_VALIDATION_FAILED"
)

// ComplaintService translates transport requests into workflow calls and
// shapes the two response projections over the Complaint entity.
type ComplaintService struct {
	uc  *biz.ComplaintUsecase
	log *log.Helper
}

// NewComplaintService creates a new complaint service.
func NewComplaintService(uc *biz.ComplaintUsecase, logger log.Logger) *ComplaintService {
	return &ComplaintService{
		uc:  uc,
		log: log.NewHelper(logger),
	}
}

// CreateComplaintRequest is the create payload. All fields are required and
// must not be blank.
type CreateComplaintRequest struct {
	ProductID     string `json:"productId"`
	Content       string `json:"content"`
	ComplainantID string `json:"complainantId"`
}

// UpdateComplaintContentRequest carries replacement content in the request
// body when it is not supplied as a query parameter.
type UpdateComplaintContentRequest struct {
	Content string `json:"content"`
}

// ListComplaintsRequest carries the optional filters and pagination for the
// listing endpoint.
type ListComplaintsRequest struct {
	ProductID     string
	ComplainantID string
	FromDate      *time.Time
	ToDate        *time.Time
	Page          int
	Size          int
}

// ComplaintReply is the basic view returned by create, update and get.
type ComplaintReply struct {
	ID           string     `json:"id"`
	ProductID    string     `json:"productId"`
	Content      string     `json:"content"`
	CreationDate time.Time  `json:"creationDate"`
	UpdateDate   *time.Time `json:"updateDate,omitempty"`
	Country      string     `json:"country"`
}

// ComplaintFullReply is the full view returned by listing; it adds the
// complainant and the submission counter to the basic view.
type ComplaintFullReply struct {
	ID            string     `json:"id"`
	ProductID     string     `json:"productId"`
	Content       string     `json:"content"`
	CreationDate  time.Time  `json:"creationDate"`
	UpdateDate    *time.Time `json:"updateDate,omitempty"`
	ComplainantID string     `json:"complainantId"`
	Country       string     `json:"country"`
	Counter       int        `json:"counter"`
}

// CreateComplaint validates the payload and records the submission.
func (s *ComplaintService) CreateComplaint(ctx context.Context, req *CreateComplaintRequest, ipAddress string) (*ComplaintReply, error) {
	if err := validateCreate(req); err != nil {
		return nil, err
	}

	complaint, err := s.uc.CreateComplaint(ctx, req.ProductID, req.Content, req.ComplainantID, ipAddress)
	if err != nil {
		return nil, s.translate(err, "")
	}
	return toComplaintReply(complaint), nil
}

// UpdateComplaintContent replaces the content of an existing complaint.
func (s *ComplaintService) UpdateComplaintContent(ctx context.Context, id, content, ipAddress string) (*ComplaintReply, error) {
	if strings.TrimSpace(content) == "" {
		return nil, kerrors.New(http.StatusUnprocessableEntity, reasonValidationFailed, "content is required")
	}

	complaint, err := s.uc.UpdateComplaintContent(ctx, id, content, ipAddress)
	if err != nil {
		return nil, s.translate(err, id)
	}
	return toComplaintReply(complaint), nil
}

// GetComplaintByID retrieves a single complaint.
func (s *ComplaintService) GetComplaintByID(ctx context.Context, id string) (*ComplaintReply, error) {
	complaint, err := s.uc.GetComplaintByID(ctx, id)
	if err != nil {
		return nil, s.translate(err, id)
	}
	return toComplaintReply(complaint), nil
}

// ListComplaints retrieves the full views matching the filters.
func (s *ComplaintService) ListComplaints(ctx context.Context, req *ListComplaintsRequest) ([]*ComplaintFullReply, error) {
	complaints, err := s.uc.ListComplaints(ctx, domain.ComplaintFilter{
		ProductID:     req.ProductID,
		ComplainantID: req.ComplainantID,
		FromDate:      req.FromDate,
		ToDate:        req.ToDate,
		Page:          req.Page,
		Size:          req.Size,
	})
	if err != nil {
		return nil, s.translate(err, "")
	}

	return lo.Map(complaints, func(c *domain.Complaint, _ int) *ComplaintFullReply {
		return toComplaintFullReply(c)
	}), nil
}

func validateCreate(req *CreateComplaintRequest) error {
	switch {
	case strings.TrimSpace(req.ProductID) == "":
		return kerrors.New(http.StatusUnprocessableEntity, reasonValidationFailed, "product ID is required")
	case strings.TrimSpace(req.Content) == "":
		return kerrors.New(http.StatusUnprocessableEntity, reasonValidationFailed, "content is required")
	case strings.TrimSpace(req.ComplainantID) == "":
		return kerrors.New(http.StatusUnprocessableEntity, reasonValidationFailed, "complainant ID is required")
	}
	return nil
}

// translate maps domain errors to the boundary taxonomy. Anything
// unclassified surfaces as a generic server fault.
func (s *ComplaintService) translate(err error, id string) error {
	if errors.Is(err, domain.ErrComplaintNotFound) {
		return kerrors.NotFound(reasonNotFound, fmt.Sprintf("complaint not found with ID: %s", id))
	}
	return err
}

func toComplaintReply(c *domain.Complaint) *ComplaintReply {
	return &ComplaintReply{
		ID:           c.ID,
		ProductID:    c.ProductID,
		Content:      c.Content,
		CreationDate: c.CreationDate,
		UpdateDate:   c.UpdateDate,
		Country:      c.Country,
	}
}

func toComplaintFullReply(c *domain.Complaint) *ComplaintFullReply {
	return &ComplaintFullReply{
		ID:            c.ID,
		ProductID:     c.ProductID,
		Content:       c.Content,
		CreationDate:  c.CreationDate,
		UpdateDate:    c.UpdateDate,
		ComplainantID: c.ComplainantID,
		Country:       c.Country,
		Counter:       c.Counter,
	}
}
